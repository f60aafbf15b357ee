package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"bus-tracker/internal/metrics"
	"bus-tracker/internal/mylogger"
	"bus-tracker/internal/tracker-service/core/domain/dto"
	"bus-tracker/internal/tracker-service/core/domain/models"
	websocketdto "bus-tracker/internal/tracker-service/core/domain/websocket_dto"
	"bus-tracker/internal/tracker-service/core/myerrors"
	"bus-tracker/internal/tracker-service/core/ports/driven"
)

// TrackerService is the broadcast dispatcher. It is the only writer of the
// trip flag and last position: every mutation is persisted through the trip
// state store first and only then fanned out to the route channel, so a
// reader that reconciles against the store after a broadcast never sees
// state older than the broadcast implied.
type TrackerService struct {
	mylog    mylogger.Logger
	store    driven.ITripStateStore
	registry driven.IRouteRegistry
	mtr      *metrics.Collector

	mu       sync.Mutex
	busLocks map[int64]*sync.Mutex
}

func NewTrackerService(mylog mylogger.Logger, store driven.ITripStateStore, registry driven.IRouteRegistry, mtr *metrics.Collector) *TrackerService {
	return &TrackerService{
		mylog:    mylog,
		store:    store,
		registry: registry,
		mtr:      mtr,
		busLocks: make(map[int64]*sync.Mutex),
	}
}

// lockBus serializes store writes per bus. Updates to one bus never block
// updates to another.
func (ts *TrackerService) lockBus(busID int64) func() {
	ts.mu.Lock()
	l, ok := ts.busLocks[busID]
	if !ok {
		l = &sync.Mutex{}
		ts.busLocks[busID] = l
	}
	ts.mu.Unlock()

	l.Lock()
	return l.Unlock
}

func (ts *TrackerService) ReportLocation(ctx context.Context, driverUID string, sample models.LocationSample) (dto.LocationAck, error) {
	mylog := ts.mylog.Action("report_location").With("driver_uid", driverUID)

	bus, err := ts.store.GetBusByDriver(ctx, driverUID)
	if err != nil {
		if errors.Is(err, myerrors.ErrNotFound) {
			ts.mtr.SamplesRejected.WithLabelValues("no_assignment").Inc()
			return dto.LocationAck{}, myerrors.ErrNoAssignment
		}
		return dto.LocationAck{}, err
	}

	if err := ValidateSample(sample); err != nil {
		reason := "invalid_coordinates"
		if errors.Is(err, myerrors.ErrLowAccuracy) {
			reason = "low_accuracy"
		}
		ts.mtr.SamplesRejected.WithLabelValues(reason).Inc()
		mylog.Debug("sample rejected", "reason", reason, "accuracy", sample.Accuracy)
		return dto.LocationAck{}, err
	}

	at := sample.CapturedAt
	if at.IsZero() {
		at = time.Now().UTC()
	}

	unlock := ts.lockBus(bus.ID)
	err = ts.store.SetLastPosition(ctx, bus.ID, sample.Lat, sample.Lng, at)
	unlock()
	if err != nil {
		return dto.LocationAck{}, err
	}
	ts.mtr.SamplesAccepted.Inc()

	ack := dto.LocationAck{
		BusID:     bus.ID,
		Lat:       sample.Lat,
		Lng:       sample.Lng,
		UpdatedAt: at,
	}

	// Fan-out happens after the durable write has committed and outside
	// any lock. A bus without a route has no channel to publish to.
	if bus.RouteNumber != nil {
		ack.RouteNumber = *bus.RouteNumber
		event, err := websocketdto.NewEvent(websocketdto.EventLocationUpdate, websocketdto.LocationUpdate{
			RouteNumber: *bus.RouteNumber,
			Location: websocketdto.Location{
				Lat:       sample.Lat,
				Lng:       sample.Lng,
				Timestamp: at,
			},
		})
		if err != nil {
			mylog.Error("failed to build location event", err)
			return ack, nil
		}
		ts.registry.Publish(*bus.RouteNumber, event)
		ts.mtr.EventsPublished.WithLabelValues(websocketdto.EventLocationUpdate).Inc()
	}

	return ack, nil
}

func (ts *TrackerService) SetTripStatus(ctx context.Context, busID int64, active bool) (dto.TripStatusAck, error) {
	mylog := ts.mylog.Action("set_trip_status").With("bus_id", busID)

	unlock := ts.lockBus(busID)
	bus, err := ts.store.SetTripActive(ctx, busID, active)
	unlock()
	if err != nil {
		return dto.TripStatusAck{}, err
	}

	if active {
		ts.mtr.TripsStarted.Inc()
	} else {
		ts.mtr.TripsStopped.Inc()
	}

	// Stopping a trip keeps the last position in the store; subscribers
	// clear their displayed marker on the status event, not us.
	ack := dto.TripStatusAck{
		BusID:        bus.ID,
		IsTripActive: bus.IsTripActive,
		RouteNumber:  bus.RouteNumber,
	}

	if bus.RouteNumber != nil {
		event, err := websocketdto.NewEvent(websocketdto.EventTripStatus, websocketdto.TripStatus{
			RouteNumber: *bus.RouteNumber,
			IsActive:    bus.IsTripActive,
		})
		if err != nil {
			mylog.Error("failed to build trip status event", err)
			return ack, nil
		}
		ts.registry.Publish(*bus.RouteNumber, event)
		ts.mtr.EventsPublished.WithLabelValues(websocketdto.EventTripStatus).Inc()
		ack.Published = true
	} else {
		mylog.Warn("trip status changed on a bus without a route, nothing to publish")
	}

	return ack, nil
}

// Bootstrap lets a subscriber catch up on the current truth straight from
// the store instead of waiting for the next periodic broadcast.
func (ts *TrackerService) Bootstrap(ctx context.Context, routeNumber string) (websocketdto.BusSnapshot, error) {
	bus, err := ts.store.GetBusByRoute(ctx, routeNumber)
	if err != nil {
		return websocketdto.BusSnapshot{}, err
	}
	return snapshotOf(bus, routeNumber), nil
}

// Subscribe attaches the connection to the route channel and returns the
// bootstrap snapshot. The subscription sticks even when the route has no
// bus yet; the snapshot error is a hint, not a failure.
func (ts *TrackerService) Subscribe(sub driven.Subscriber, routeNumber string) (websocketdto.BusSnapshot, error) {
	ts.registry.Subscribe(sub, routeNumber)
	return ts.Bootstrap(context.Background(), routeNumber)
}

func (ts *TrackerService) Unsubscribe(sub driven.Subscriber) {
	ts.registry.Unsubscribe(sub)
}

// Announce pushes an event to every connected client regardless of route.
func (ts *TrackerService) Announce(event websocketdto.Event) {
	ts.registry.BroadcastAll(event)
	ts.mtr.EventsPublished.WithLabelValues(event.Type).Inc()
}

func snapshotOf(bus models.Bus, routeNumber string) websocketdto.BusSnapshot {
	snap := websocketdto.BusSnapshot{
		BusID:        bus.ID,
		BusNumber:    bus.BusNumber,
		RouteNumber:  routeNumber,
		IsTripActive: bus.IsTripActive,
	}
	if bus.Lat != nil && bus.Lng != nil {
		loc := websocketdto.Location{Lat: *bus.Lat, Lng: *bus.Lng}
		if bus.LastUpdate != nil {
			loc.Timestamp = *bus.LastUpdate
		}
		snap.Location = &loc
	}
	return snap
}
