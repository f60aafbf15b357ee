package ws

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"bus-tracker/internal/mylogger"
	"bus-tracker/internal/tracker-service/core/domain/models"
	websocketdto "bus-tracker/internal/tracker-service/core/domain/websocket_dto"
	"bus-tracker/internal/tracker-service/core/myerrors"
	"bus-tracker/internal/tracker-service/core/ports/driver"

	"github.com/gorilla/websocket"
)

const (
	egressBuffer = 32
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = 30 * time.Second
	readLimit    = 1024
)

var errEgressFull = errors.New("subscriber egress buffer full")

// Client is one websocket connection. It owns its subscription lifecycle:
// it subscribes on request, and detaches itself on disconnect. Detaching
// never touches bus state.
type Client struct {
	ctx     context.Context
	cancel  context.CancelFunc
	conn    *websocket.Conn
	tracker driver.ITrackerService
	mylog   mylogger.Logger

	id      string
	userUID string
	role    string

	egress    chan websocketdto.Event
	closeOnce sync.Once
}

func NewClient(ctx context.Context, conn *websocket.Conn, tracker driver.ITrackerService, mylog mylogger.Logger, id, userUID, role string) *Client {
	cctx, cancel := context.WithCancel(ctx)
	return &Client{
		ctx:     cctx,
		cancel:  cancel,
		conn:    conn,
		tracker: tracker,
		mylog:   mylog.With("connection_id", id),
		id:      id,
		userUID: userUID,
		role:    role,
		egress:  make(chan websocketdto.Event, egressBuffer),
	}
}

func (c *Client) ID() string {
	return c.id
}

// Send hands the event to the write pump without blocking. A full buffer
// means this delivery is dropped for this subscriber only.
func (c *Client) Send(event websocketdto.Event) error {
	select {
	case c.egress <- event:
		return nil
	default:
		return errEgressFull
	}
}

func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.tracker.Unsubscribe(c)
		c.cancel()
		c.conn.Close()
	})
}

// ReadPump loops over inbound events until the connection dies.
func (c *Client) ReadPump() {
	defer c.Close()

	c.conn.SetReadLimit(readLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.mylog.Debug("websocket closed unexpectedly", "err", err.Error())
			}
			return
		}

		var event websocketdto.Event
		if err := json.Unmarshal(payload, &event); err != nil {
			c.sendError("BAD_EVENT", "cannot decode event")
			continue
		}

		c.handleEvent(event)
	}
}

// WritePump drains the egress channel onto the wire and keeps the
// connection alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case <-c.ctx.Done():
			return
		case event, ok := <-c.egress:
			if !ok {
				return
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleEvent(event websocketdto.Event) {
	switch event.Type {
	case websocketdto.EventSubscribe:
		c.handleSubscribe(event)
	case websocketdto.EventReportLocation:
		c.handleReportLocation(event)
	case websocketdto.EventTripStatus:
		c.handleTripStatus(event)
	default:
		c.sendError("UNKNOWN_EVENT", "unknown event type: "+event.Type)
	}
}

func (c *Client) handleSubscribe(event websocketdto.Event) {
	var msg websocketdto.SubscribeMessage
	if err := json.Unmarshal(event.Data, &msg); err != nil || msg.RouteNumber == "" {
		c.sendError("BAD_EVENT", "subscribe needs a route_number")
		return
	}

	snapshot, err := c.tracker.Subscribe(c, msg.RouteNumber)
	if err != nil {
		// subscribed anyway, there is just no bus on the route yet
		if errors.Is(err, myerrors.ErrNotFound) {
			c.sendError("NOT_FOUND", "no bus on route "+msg.RouteNumber)
			return
		}
		c.sendError("INTERNAL", "bootstrap failed")
		return
	}

	out, err := websocketdto.NewEvent(websocketdto.EventBootstrap, snapshot)
	if err != nil {
		c.sendError("INTERNAL", "bootstrap failed")
		return
	}
	_ = c.Send(out)
}

func (c *Client) handleReportLocation(event websocketdto.Event) {
	if c.role != "driver" {
		c.sendError("FORBIDDEN", "only drivers report location")
		return
	}

	var msg websocketdto.ReportLocationMessage
	if err := json.Unmarshal(event.Data, &msg); err != nil {
		c.sendError("BAD_EVENT", "cannot decode location report")
		return
	}

	_, err := c.tracker.ReportLocation(c.ctx, c.userUID, models.LocationSample{
		Lat:        msg.Lat,
		Lng:        msg.Lng,
		Accuracy:   msg.Accuracy,
		CapturedAt: time.Now().UTC(),
	})
	switch {
	case err == nil:
	case errors.Is(err, myerrors.ErrLowAccuracy):
		// transient hint, driver retries on the next cadence tick
		c.sendError("LOW_ACCURACY", err.Error())
	case errors.Is(err, myerrors.ErrInvalidCoordinates):
		c.sendError("INVALID_COORDINATES", err.Error())
	case errors.Is(err, myerrors.ErrNoAssignment):
		// terminal for this session until an admin reassigns
		c.sendError("NO_ASSIGNMENT", err.Error())
	default:
		c.mylog.Error("report location failed", err)
		c.sendError("INTERNAL", "failed to process location")
	}
}

func (c *Client) handleTripStatus(event websocketdto.Event) {
	if c.role != "driver" {
		c.sendError("FORBIDDEN", "only drivers toggle trips")
		return
	}

	var msg websocketdto.TripStatusMessage
	if err := json.Unmarshal(event.Data, &msg); err != nil {
		c.sendError("BAD_EVENT", "cannot decode trip status")
		return
	}

	if _, err := c.tracker.SetTripStatus(c.ctx, msg.BusID, msg.IsActive); err != nil {
		if errors.Is(err, myerrors.ErrNotFound) {
			c.sendError("NOT_FOUND", "unknown bus")
			return
		}
		c.mylog.Error("trip status change failed", err)
		c.sendError("INTERNAL", "failed to change trip status")
	}
}

func (c *Client) sendError(code, message string) {
	event, err := websocketdto.NewEvent(websocketdto.EventError, websocketdto.ErrorMessage{
		Code:    code,
		Message: message,
	})
	if err != nil {
		return
	}
	_ = c.Send(event)
}
