package driver

import (
	"context"

	"bus-tracker/internal/tracker-service/core/domain/dto"
	"bus-tracker/internal/tracker-service/core/domain/models"
	websocketdto "bus-tracker/internal/tracker-service/core/domain/websocket_dto"
	"bus-tracker/internal/tracker-service/core/ports/driven"
)

// ITrackerService is the narrow interface the transport layer talks to.
type ITrackerService interface {
	ReportLocation(ctx context.Context, driverUID string, sample models.LocationSample) (dto.LocationAck, error)
	SetTripStatus(ctx context.Context, busID int64, active bool) (dto.TripStatusAck, error)
	Bootstrap(ctx context.Context, routeNumber string) (websocketdto.BusSnapshot, error)
	Subscribe(sub driven.Subscriber, routeNumber string) (websocketdto.BusSnapshot, error)
	Unsubscribe(sub driven.Subscriber)
	Announce(event websocketdto.Event)
}

type IAuthService interface {
	Signup(ctx context.Context, req dto.SignupRequest) (dto.UserResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
}

type IFleetService interface {
	CreateRoute(ctx context.Context, req dto.CreateRouteRequest) (int64, error)
	ListRoutes(ctx context.Context) ([]dto.RouteResponse, error)
	CreateBus(ctx context.Context, req dto.CreateBusRequest) (int64, error)
	ListBuses(ctx context.Context) ([]dto.BusDetailResponse, error)
	ListDrivers(ctx context.Context) ([]dto.DriverResponse, error)
	Assign(ctx context.Context, req dto.AssignRequest) error
	MyBus(ctx context.Context, driverUID string) (dto.BusDetailResponse, error)
}

type IComplaintService interface {
	Create(ctx context.Context, req dto.CreateComplaintRequest) (int64, error)
	List(ctx context.Context) ([]dto.ComplaintResponse, error)
	ListByUser(ctx context.Context, userID int64) ([]dto.ComplaintResponse, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}

type IAnnouncementService interface {
	Create(ctx context.Context, req dto.CreateAnnouncementRequest) (dto.AnnouncementResponse, error)
	List(ctx context.Context) ([]dto.AnnouncementResponse, error)
	Delete(ctx context.Context, id int64) error
}
