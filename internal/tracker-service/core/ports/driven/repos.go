package driven

import (
	"context"

	"bus-tracker/internal/tracker-service/core/domain/models"
)

type IUserRepo interface {
	Create(ctx context.Context, user models.User) (int64, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	ListDrivers(ctx context.Context) ([]models.User, error)
}

type IRouteRepo interface {
	Create(ctx context.Context, route models.Route) (int64, error)
	List(ctx context.Context) ([]models.Route, error)
}

// IFleetRepo covers the administrative side of the buses table. The trip
// flag and last position stay behind ITripStateStore.
type IFleetRepo interface {
	CreateBus(ctx context.Context, busNumber string) (int64, error)
	ListBusDetails(ctx context.Context) ([]models.Bus, error)
	// AssignDriver rebinds driver and route to the bus in one transaction,
	// releasing any bus the driver held and any bus already on the route.
	AssignDriver(ctx context.Context, driverUID string, busID int64, routeNumber string) error
}

type IComplaintRepo interface {
	Create(ctx context.Context, c models.Complaint) (int64, error)
	List(ctx context.Context) ([]models.Complaint, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Complaint, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}

type IAnnouncementRepo interface {
	Create(ctx context.Context, a models.Announcement) (models.Announcement, error)
	List(ctx context.Context) ([]models.Announcement, error)
	Delete(ctx context.Context, id int64) error
}
