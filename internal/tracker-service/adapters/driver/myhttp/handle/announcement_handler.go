package handle

import (
	"encoding/json"
	"net/http"
	"strconv"

	"bus-tracker/internal/mylogger"
	"bus-tracker/internal/tracker-service/core/domain/dto"
	"bus-tracker/internal/tracker-service/core/ports/driver"
)

type AnnouncementHandler struct {
	announcementService driver.IAnnouncementService
	mylog               mylogger.Logger
}

func NewAnnouncementHandler(announcementService driver.IAnnouncementService, mylog mylogger.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{
		announcementService: announcementService,
		mylog:               mylog,
	}
}

func (ah *AnnouncementHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		announcements, err := ah.announcementService.List(r.Context())
		if err != nil {
			JsonError(w, statusOf(err), err)
			return
		}
		JsonResponse(w, http.StatusOK, announcements)
	}
}

func (ah *AnnouncementHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := dto.CreateAnnouncementRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}

		announcement, err := ah.announcementService.Create(r.Context(), req)
		if err != nil {
			JsonError(w, statusOf(err), err)
			return
		}
		JsonResponse(w, http.StatusCreated, announcement)
	}
}

func (ah *AnnouncementHandler) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}

		if err := ah.announcementService.Delete(r.Context(), id); err != nil {
			JsonError(w, statusOf(err), err)
			return
		}
		JsonResponse(w, http.StatusOK, map[string]string{"message": "Announcement deleted"})
	}
}
