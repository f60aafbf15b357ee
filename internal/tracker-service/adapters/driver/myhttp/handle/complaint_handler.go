package handle

import (
	"encoding/json"
	"net/http"
	"strconv"

	"bus-tracker/internal/mylogger"
	"bus-tracker/internal/tracker-service/core/domain/dto"
	"bus-tracker/internal/tracker-service/core/ports/driver"
)

type ComplaintHandler struct {
	complaintService driver.IComplaintService
	mylog            mylogger.Logger
}

func NewComplaintHandler(complaintService driver.IComplaintService, mylog mylogger.Logger) *ComplaintHandler {
	return &ComplaintHandler{
		complaintService: complaintService,
		mylog:            mylog,
	}
}

func (ch *ComplaintHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := dto.CreateComplaintRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}

		if _, err := ch.complaintService.Create(r.Context(), req); err != nil {
			JsonError(w, statusOf(err), err)
			return
		}
		JsonResponse(w, http.StatusCreated, map[string]string{"message": "Complaint submitted!"})
	}
}

func (ch *ComplaintHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		complaints, err := ch.complaintService.List(r.Context())
		if err != nil {
			JsonError(w, statusOf(err), err)
			return
		}
		JsonResponse(w, http.StatusOK, complaints)
	}
}

func (ch *ComplaintHandler) ListByUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.PathValue("user_id"), 10, 64)
		if err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}

		complaints, err := ch.complaintService.ListByUser(r.Context(), userID)
		if err != nil {
			JsonError(w, statusOf(err), err)
			return
		}
		JsonResponse(w, http.StatusOK, complaints)
	}
}

func (ch *ComplaintHandler) UpdateStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}

		req := dto.UpdateComplaintStatusRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}

		if err := ch.complaintService.UpdateStatus(r.Context(), id, req.Status); err != nil {
			JsonError(w, statusOf(err), err)
			return
		}
		JsonResponse(w, http.StatusOK, map[string]string{"message": "Status updated!"})
	}
}
