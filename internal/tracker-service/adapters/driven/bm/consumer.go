package bm

import (
	"context"
	"encoding/json"

	"bus-tracker/internal/mylogger"
	"bus-tracker/internal/tracker-service/core/domain/models"
	websocketdto "bus-tracker/internal/tracker-service/core/domain/websocket_dto"
	"bus-tracker/internal/tracker-service/core/ports/driven"
	portsdriver "bus-tracker/internal/tracker-service/core/ports/driver"
)

// Consumer drains the announcement queue and pushes each announcement to
// every connected websocket client through the tracker service.
type Consumer struct {
	ctx     context.Context
	mylog   mylogger.Logger
	broker  driven.IAnnouncementBroker
	tracker portsdriver.ITrackerService
}

func NewConsumer(ctx context.Context, mylog mylogger.Logger, broker driven.IAnnouncementBroker, tracker portsdriver.ITrackerService) *Consumer {
	return &Consumer{
		ctx:     ctx,
		mylog:   mylog,
		broker:  broker,
		tracker: tracker,
	}
}

func (c *Consumer) Run() error {
	mylog := c.mylog.Action("announcement_consumer")

	deliveries, err := c.broker.ConsumeAnnouncements(c.ctx)
	if err != nil {
		return err
	}

	for {
		select {
		case <-c.ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				mylog.Warn("announcement delivery channel closed")
				return nil
			}

			var a models.Announcement
			if err := json.Unmarshal(d.Body, &a); err != nil {
				mylog.Error("failed to decode announcement", err)
				_ = d.Nack(false, false)
				continue
			}

			event, err := websocketdto.NewEvent(websocketdto.EventAnnouncement, websocketdto.AnnouncementMessage{
				ID:        a.ID,
				Title:     a.Title,
				Message:   a.Message,
				CreatedAt: a.CreatedAt,
			})
			if err != nil {
				mylog.Error("failed to build announcement event", err)
				_ = d.Nack(false, false)
				continue
			}

			c.tracker.Announce(event)
			_ = d.Ack(false)
		}
	}
}
