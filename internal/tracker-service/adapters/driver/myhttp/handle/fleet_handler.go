package handle

import (
	"encoding/json"
	"net/http"

	"bus-tracker/internal/mylogger"
	"bus-tracker/internal/tracker-service/core/domain/dto"
	"bus-tracker/internal/tracker-service/core/ports/driver"
)

type FleetHandler struct {
	fleetService driver.IFleetService
	mylog        mylogger.Logger
}

func NewFleetHandler(fleetService driver.IFleetService, mylog mylogger.Logger) *FleetHandler {
	return &FleetHandler{
		fleetService: fleetService,
		mylog:        mylog,
	}
}

func (fh *FleetHandler) ListRoutes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		routes, err := fh.fleetService.ListRoutes(r.Context())
		if err != nil {
			JsonError(w, statusOf(err), err)
			return
		}
		JsonResponse(w, http.StatusOK, routes)
	}
}

func (fh *FleetHandler) CreateRoute() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := dto.CreateRouteRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}

		if _, err := fh.fleetService.CreateRoute(r.Context(), req); err != nil {
			JsonError(w, statusOf(err), err)
			return
		}
		JsonResponse(w, http.StatusCreated, map[string]string{"message": "Route added!"})
	}
}

func (fh *FleetHandler) ListBuses() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buses, err := fh.fleetService.ListBuses(r.Context())
		if err != nil {
			JsonError(w, statusOf(err), err)
			return
		}
		JsonResponse(w, http.StatusOK, buses)
	}
}

func (fh *FleetHandler) CreateBus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := dto.CreateBusRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}

		if _, err := fh.fleetService.CreateBus(r.Context(), req); err != nil {
			JsonError(w, statusOf(err), err)
			return
		}
		JsonResponse(w, http.StatusCreated, map[string]string{"message": "Bus added!"})
	}
}

func (fh *FleetHandler) ListDrivers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		drivers, err := fh.fleetService.ListDrivers(r.Context())
		if err != nil {
			JsonError(w, statusOf(err), err)
			return
		}
		JsonResponse(w, http.StatusOK, drivers)
	}
}

func (fh *FleetHandler) Assign() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := dto.AssignRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}

		if err := fh.fleetService.Assign(r.Context(), req); err != nil {
			JsonError(w, statusOf(err), err)
			return
		}
		JsonResponse(w, http.StatusOK, map[string]string{"message": "Assignment successful!"})
	}
}

// MyBus returns the bus detail for the authenticated driver.
func (fh *FleetHandler) MyBus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		driverUID := r.Header.Get("X-UserId")

		bus, err := fh.fleetService.MyBus(r.Context(), driverUID)
		if err != nil {
			JsonError(w, statusOf(err), err)
			return
		}
		JsonResponse(w, http.StatusOK, bus)
	}
}
