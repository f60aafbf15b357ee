package driven

import (
	"context"

	"bus-tracker/internal/tracker-service/core/domain/models"

	amqp "github.com/rabbitmq/amqp091-go"
)

// IAnnouncementBroker pushes admin announcements through the message broker
// so every running instance can forward them to its own websocket clients.
type IAnnouncementBroker interface {
	PublishAnnouncement(ctx context.Context, a models.Announcement) error
	ConsumeAnnouncements(ctx context.Context) (<-chan amqp.Delivery, error)
	IsAlive() bool
	Close() error
}
