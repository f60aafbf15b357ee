package handle

import (
	"encoding/json"
	"net/http"
	"time"

	"bus-tracker/internal/mylogger"
	"bus-tracker/internal/tracker-service/core/domain/dto"
	"bus-tracker/internal/tracker-service/core/domain/models"
	"bus-tracker/internal/tracker-service/core/ports/driver"
)

// TrackingHandler is the HTTP side of the driver report path. The same
// dispatcher serves the websocket side, there is exactly one write path.
type TrackingHandler struct {
	trackerService driver.ITrackerService
	mylog          mylogger.Logger
}

func NewTrackingHandler(trackerService driver.ITrackerService, mylog mylogger.Logger) *TrackingHandler {
	return &TrackingHandler{
		trackerService: trackerService,
		mylog:          mylog,
	}
}

func (th *TrackingHandler) UpdateLocation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		driverUID := r.Header.Get("X-UserId")

		req := dto.UpdateLocationRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}

		ack, err := th.trackerService.ReportLocation(r.Context(), driverUID, models.LocationSample{
			Lat:        req.Lat,
			Lng:        req.Lng,
			Accuracy:   req.Accuracy,
			CapturedAt: time.Now().UTC(),
		})
		if err != nil {
			JsonError(w, statusOf(err), err)
			return
		}

		JsonResponse(w, http.StatusOK, map[string]interface{}{
			"message":  "Location updated",
			"location": ack,
		})
	}
}

func (th *TrackingHandler) SetTripStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := dto.TripStatusRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}

		ack, err := th.trackerService.SetTripStatus(r.Context(), req.BusID, req.IsTripActive)
		if err != nil {
			JsonError(w, statusOf(err), err)
			return
		}

		JsonResponse(w, http.StatusOK, map[string]interface{}{
			"message": "Trip status updated!",
			"trip":    ack,
		})
	}
}
