package driven

import (
	"context"
	"time"

	"bus-tracker/internal/tracker-service/core/domain/models"
)

// ITripStateStore is the durable side of the broadcast core. Writes are
// synchronous: a sample is persisted before it is ever broadcast.
type ITripStateStore interface {
	GetBusByDriver(ctx context.Context, driverUID string) (models.Bus, error)
	GetBusByRoute(ctx context.Context, routeNumber string) (models.Bus, error)
	SetTripActive(ctx context.Context, busID int64, active bool) (models.Bus, error)
	SetLastPosition(ctx context.Context, busID int64, lat, lng float64, at time.Time) error
}
