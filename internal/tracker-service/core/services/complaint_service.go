package services

import (
	"context"
	"fmt"

	"bus-tracker/internal/mylogger"
	"bus-tracker/internal/tracker-service/core/domain/dto"
	"bus-tracker/internal/tracker-service/core/domain/models"
	"bus-tracker/internal/tracker-service/core/ports/driven"
)

var allowedComplaintStatuses = map[string]bool{
	models.ComplaintStatusPending:    true,
	models.ComplaintStatusInProgress: true,
	models.ComplaintStatusResolved:   true,
}

type ComplaintService struct {
	mylog mylogger.Logger
	repo  driven.IComplaintRepo
}

func NewComplaintService(mylog mylogger.Logger, repo driven.IComplaintRepo) *ComplaintService {
	return &ComplaintService{mylog: mylog, repo: repo}
}

func (cs *ComplaintService) Create(ctx context.Context, req dto.CreateComplaintRequest) (int64, error) {
	if req.UserID == 0 {
		return 0, fmt.Errorf("userId is required")
	}
	if req.Category == "" || req.Description == "" {
		return 0, fmt.Errorf("category and description are required")
	}

	return cs.repo.Create(ctx, models.Complaint{
		UserID:      req.UserID,
		Category:    req.Category,
		Description: req.Description,
		Status:      models.ComplaintStatusPending,
	})
}

func (cs *ComplaintService) List(ctx context.Context) ([]dto.ComplaintResponse, error) {
	complaints, err := cs.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return complaintResponsesOf(complaints), nil
}

func (cs *ComplaintService) ListByUser(ctx context.Context, userID int64) ([]dto.ComplaintResponse, error) {
	complaints, err := cs.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return complaintResponsesOf(complaints), nil
}

func (cs *ComplaintService) UpdateStatus(ctx context.Context, id int64, status string) error {
	if !allowedComplaintStatuses[status] {
		return fmt.Errorf("unknown status: %q", status)
	}
	return cs.repo.UpdateStatus(ctx, id, status)
}

func complaintResponsesOf(complaints []models.Complaint) []dto.ComplaintResponse {
	results := make([]dto.ComplaintResponse, 0, len(complaints))
	for _, c := range complaints {
		results = append(results, dto.ComplaintResponse{
			ID:          c.ID,
			UserID:      c.UserID,
			UserName:    c.UserName,
			Category:    c.Category,
			Description: c.Description,
			Status:      c.Status,
			CreatedAt:   c.CreatedAt,
		})
	}
	return results
}
