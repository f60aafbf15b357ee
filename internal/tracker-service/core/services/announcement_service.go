package services

import (
	"context"
	"fmt"

	"bus-tracker/internal/metrics"
	"bus-tracker/internal/mylogger"
	"bus-tracker/internal/tracker-service/core/domain/dto"
	"bus-tracker/internal/tracker-service/core/domain/models"
	"bus-tracker/internal/tracker-service/core/ports/driven"
)

type AnnouncementService struct {
	mylog  mylogger.Logger
	repo   driven.IAnnouncementRepo
	broker driven.IAnnouncementBroker
	mtr    *metrics.Collector
}

func NewAnnouncementService(mylog mylogger.Logger, repo driven.IAnnouncementRepo, broker driven.IAnnouncementBroker, mtr *metrics.Collector) *AnnouncementService {
	return &AnnouncementService{
		mylog:  mylog,
		repo:   repo,
		broker: broker,
		mtr:    mtr,
	}
}

func (as *AnnouncementService) Create(ctx context.Context, req dto.CreateAnnouncementRequest) (dto.AnnouncementResponse, error) {
	mylog := as.mylog.Action("create_announcement")

	if req.Title == "" || req.Message == "" {
		return dto.AnnouncementResponse{}, fmt.Errorf("title and message are required")
	}

	created, err := as.repo.Create(ctx, models.Announcement{
		Title:   req.Title,
		Message: req.Message,
	})
	if err != nil {
		return dto.AnnouncementResponse{}, err
	}

	// Live push is best-effort: the row is durable, clients that miss the
	// event see it on the next page load.
	if err := as.broker.PublishAnnouncement(ctx, created); err != nil {
		mylog.Error("failed to publish announcement to broker", err, "announcement_id", created.ID)
	} else {
		as.mtr.AnnouncementsPublished.Inc()
	}

	return dto.AnnouncementResponse{
		ID:        created.ID,
		Title:     created.Title,
		Message:   created.Message,
		CreatedAt: created.CreatedAt,
	}, nil
}

func (as *AnnouncementService) List(ctx context.Context) ([]dto.AnnouncementResponse, error) {
	announcements, err := as.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.AnnouncementResponse, 0, len(announcements))
	for _, a := range announcements {
		results = append(results, dto.AnnouncementResponse{
			ID:        a.ID,
			Title:     a.Title,
			Message:   a.Message,
			CreatedAt: a.CreatedAt,
		})
	}
	return results, nil
}

func (as *AnnouncementService) Delete(ctx context.Context, id int64) error {
	return as.repo.Delete(ctx, id)
}
