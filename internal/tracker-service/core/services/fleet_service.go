package services

import (
	"context"
	"errors"
	"fmt"

	"bus-tracker/internal/mylogger"
	"bus-tracker/internal/tracker-service/core/domain/dto"
	"bus-tracker/internal/tracker-service/core/domain/models"
	"bus-tracker/internal/tracker-service/core/myerrors"
	"bus-tracker/internal/tracker-service/core/ports/driven"
)

// FleetService handles the administrative side: routes, buses, drivers and
// assignments. It relies on the assignment transaction in the repo to keep
// the one-driver-per-bus / one-bus-per-route invariants.
type FleetService struct {
	mylog     mylogger.Logger
	fleetRepo driven.IFleetRepo
	routeRepo driven.IRouteRepo
	userRepo  driven.IUserRepo
	store     driven.ITripStateStore
}

func NewFleetService(mylog mylogger.Logger, fleetRepo driven.IFleetRepo, routeRepo driven.IRouteRepo, userRepo driven.IUserRepo, store driven.ITripStateStore) *FleetService {
	return &FleetService{
		mylog:     mylog,
		fleetRepo: fleetRepo,
		routeRepo: routeRepo,
		userRepo:  userRepo,
		store:     store,
	}
}

func (fs *FleetService) CreateRoute(ctx context.Context, req dto.CreateRouteRequest) (int64, error) {
	if req.RouteNumber == "" {
		return 0, fmt.Errorf("routeNumber is required")
	}
	return fs.routeRepo.Create(ctx, models.Route{
		RouteNumber: req.RouteNumber,
		Stops:       req.Stops,
	})
}

func (fs *FleetService) ListRoutes(ctx context.Context) ([]dto.RouteResponse, error) {
	routes, err := fs.routeRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.RouteResponse, 0, len(routes))
	for _, r := range routes {
		results = append(results, dto.RouteResponse{
			ID:          r.ID,
			RouteNumber: r.RouteNumber,
			Stops:       r.Stops,
		})
	}
	return results, nil
}

func (fs *FleetService) CreateBus(ctx context.Context, req dto.CreateBusRequest) (int64, error) {
	if req.BusNumber == "" {
		return 0, fmt.Errorf("busNumber is required")
	}
	return fs.fleetRepo.CreateBus(ctx, req.BusNumber)
}

func (fs *FleetService) ListBuses(ctx context.Context) ([]dto.BusDetailResponse, error) {
	buses, err := fs.fleetRepo.ListBusDetails(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.BusDetailResponse, 0, len(buses))
	for _, b := range buses {
		results = append(results, busDetailOf(b))
	}
	return results, nil
}

func (fs *FleetService) ListDrivers(ctx context.Context) ([]dto.DriverResponse, error) {
	drivers, err := fs.userRepo.ListDrivers(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DriverResponse, 0, len(drivers))
	for _, d := range drivers {
		results = append(results, dto.DriverResponse{
			UID:       d.UID,
			Name:      d.Name,
			CollegeID: d.CollegeID,
		})
	}
	return results, nil
}

func (fs *FleetService) Assign(ctx context.Context, req dto.AssignRequest) error {
	mylog := fs.mylog.Action("assign_driver")

	if req.DriverUID == "" || req.BusID == 0 || req.RouteNumber == "" {
		return fmt.Errorf("driverUid, busId and routeNumber are required")
	}

	if err := fs.fleetRepo.AssignDriver(ctx, req.DriverUID, req.BusID, req.RouteNumber); err != nil {
		if errors.Is(err, myerrors.ErrNotFound) {
			return err
		}
		mylog.Error("assignment failed", err)
		return err
	}

	mylog.Info("assignment successful", "bus_id", req.BusID, "route_number", req.RouteNumber)
	return nil
}

func (fs *FleetService) MyBus(ctx context.Context, driverUID string) (dto.BusDetailResponse, error) {
	bus, err := fs.store.GetBusByDriver(ctx, driverUID)
	if err != nil {
		return dto.BusDetailResponse{}, err
	}
	return busDetailOf(bus), nil
}

func busDetailOf(b models.Bus) dto.BusDetailResponse {
	return dto.BusDetailResponse{
		BusID:        b.ID,
		BusNumber:    b.BusNumber,
		RouteNumber:  b.RouteNumber,
		DriverUID:    b.DriverUID,
		DriverName:   b.DriverName,
		IsTripActive: b.IsTripActive,
		Lat:          b.Lat,
		Lng:          b.Lng,
		LastUpdate:   b.LastUpdate,
	}
}
