package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"bus-tracker/internal/metrics"
	"bus-tracker/internal/mylogger"
	"bus-tracker/internal/tracker-service/adapters/driven/broadcast"
	"bus-tracker/internal/tracker-service/core/domain/models"
	websocketdto "bus-tracker/internal/tracker-service/core/domain/websocket_dto"
	"bus-tracker/internal/tracker-service/core/myerrors"
)

// fakeTripStore is an in-memory ITripStateStore.
type fakeTripStore struct {
	mu             sync.Mutex
	buses          map[int64]*models.Bus
	positionWrites int
}

func newFakeTripStore(buses ...models.Bus) *fakeTripStore {
	s := &fakeTripStore{buses: make(map[int64]*models.Bus)}
	for i := range buses {
		b := buses[i]
		s.buses[b.ID] = &b
	}
	return s
}

func (s *fakeTripStore) GetBusByDriver(_ context.Context, driverUID string) (models.Bus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.buses {
		if b.DriverUID != nil && *b.DriverUID == driverUID {
			return *b, nil
		}
	}
	return models.Bus{}, myerrors.ErrNotFound
}

func (s *fakeTripStore) GetBusByRoute(_ context.Context, routeNumber string) (models.Bus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.buses {
		if b.RouteNumber != nil && *b.RouteNumber == routeNumber {
			return *b, nil
		}
	}
	return models.Bus{}, myerrors.ErrNotFound
}

func (s *fakeTripStore) SetTripActive(_ context.Context, busID int64, active bool) (models.Bus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.buses[busID]
	if !ok {
		return models.Bus{}, myerrors.ErrNotFound
	}
	b.IsTripActive = active
	return *b, nil
}

func (s *fakeTripStore) SetLastPosition(_ context.Context, busID int64, lat, lng float64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.buses[busID]
	if !ok {
		return myerrors.ErrNotFound
	}
	b.Lat, b.Lng, b.LastUpdate = &lat, &lng, &at
	s.positionWrites++
	return nil
}

func (s *fakeTripStore) writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.positionWrites
}

type recordingSubscriber struct {
	id string

	mu     sync.Mutex
	events []websocketdto.Event
}

func (r *recordingSubscriber) ID() string { return r.id }

func (r *recordingSubscriber) Send(event websocketdto.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordingSubscriber) received() []websocketdto.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]websocketdto.Event, len(r.events))
	copy(out, r.events)
	return out
}

func strPtr(s string) *string { return &s }

func testBus() models.Bus {
	return models.Bus{
		ID:          1,
		BusNumber:   "PB-11-0001",
		RouteNumber: strPtr("R10"),
		DriverUID:   strPtr("driver-1"),
	}
}

func newTracker(t *testing.T, store *fakeTripStore) (*TrackerService, *broadcast.RouteRegistry) {
	t.Helper()
	mylog, err := mylogger.New(mylogger.LevelError)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	mtr := metrics.NewCollector()
	registry := broadcast.NewRouteRegistry(mylog, mtr)
	return NewTrackerService(mylog, store, registry, mtr), registry
}

func TestReportLocationPersistsThenBroadcasts(t *testing.T) {
	store := newFakeTripStore(testBus())
	ts, _ := newTracker(t, store)

	student := &recordingSubscriber{id: "student-1"}
	if _, err := ts.Subscribe(student, "R10"); err != nil {
		t.Fatalf("subscribe returned error: %v", err)
	}

	ack, err := ts.ReportLocation(context.Background(), "driver-1", models.LocationSample{
		Lat: 30.70, Lng: 76.78, Accuracy: 50,
	})
	if err != nil {
		t.Fatalf("expected sample to be accepted, got %v", err)
	}
	if ack.RouteNumber != "R10" || ack.BusID != 1 {
		t.Fatalf("unexpected ack: %+v", ack)
	}

	bus, err := store.GetBusByRoute(context.Background(), "R10")
	if err != nil {
		t.Fatalf("bus lookup failed: %v", err)
	}
	if bus.Lat == nil || *bus.Lat != 30.70 || bus.Lng == nil || *bus.Lng != 76.78 {
		t.Fatalf("position not persisted: %+v", bus)
	}

	events := student.received()
	if len(events) != 1 || events[0].Type != websocketdto.EventLocationUpdate {
		t.Fatalf("expected one location_update, got %+v", events)
	}

	var update websocketdto.LocationUpdate
	if err := json.Unmarshal(events[0].Data, &update); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if update.RouteNumber != "R10" || update.Location.Lat != 30.70 || update.Location.Lng != 76.78 {
		t.Fatalf("unexpected payload: %+v", update)
	}
}

func TestReportLocationLowAccuracyDoesNotMutate(t *testing.T) {
	store := newFakeTripStore(testBus())
	ts, _ := newTracker(t, store)

	student := &recordingSubscriber{id: "student-1"}
	ts.Subscribe(student, "R10")

	_, err := ts.ReportLocation(context.Background(), "driver-1", models.LocationSample{
		Lat: 30.70, Lng: 76.78, Accuracy: 800,
	})
	if !errors.Is(err, myerrors.ErrLowAccuracy) {
		t.Fatalf("expected ErrLowAccuracy, got %v", err)
	}
	if store.writes() != 0 {
		t.Fatalf("rejected sample reached the store")
	}
	if len(student.received()) != 0 {
		t.Fatalf("rejected sample was broadcast")
	}
}

func TestReportLocationLastWriteWins(t *testing.T) {
	store := newFakeTripStore(testBus())
	ts, _ := newTracker(t, store)

	ctx := context.Background()
	samples := []models.LocationSample{
		{Lat: 30.70, Lng: 76.78, Accuracy: 40},
		{Lat: 30.71, Lng: 76.79, Accuracy: 40},
		{Lat: 30.72, Lng: 76.80, Accuracy: 40},
	}
	for _, s := range samples {
		if _, err := ts.ReportLocation(ctx, "driver-1", s); err != nil {
			t.Fatalf("report failed: %v", err)
		}
	}

	bus, _ := store.GetBusByRoute(ctx, "R10")
	if *bus.Lat != 30.72 || *bus.Lng != 76.80 {
		t.Fatalf("store does not hold the latest sample: lat=%v lng=%v", *bus.Lat, *bus.Lng)
	}
	if store.writes() != len(samples) {
		t.Fatalf("expected %d writes, got %d", len(samples), store.writes())
	}
}

func TestReportLocationNoAssignment(t *testing.T) {
	store := newFakeTripStore(testBus())
	ts, _ := newTracker(t, store)

	_, err := ts.ReportLocation(context.Background(), "driver-unknown", models.LocationSample{
		Lat: 30.70, Lng: 76.78, Accuracy: 40,
	})
	if !errors.Is(err, myerrors.ErrNoAssignment) {
		t.Fatalf("expected ErrNoAssignment, got %v", err)
	}
}

func TestReportLocationBusWithoutRoute(t *testing.T) {
	bus := testBus()
	bus.RouteNumber = nil
	store := newFakeTripStore(bus)
	ts, _ := newTracker(t, store)

	ack, err := ts.ReportLocation(context.Background(), "driver-1", models.LocationSample{
		Lat: 30.70, Lng: 76.78, Accuracy: 40,
	})
	if err != nil {
		t.Fatalf("expected sample to be accepted, got %v", err)
	}
	if ack.RouteNumber != "" {
		t.Fatalf("expected empty route in ack, got %q", ack.RouteNumber)
	}
	if store.writes() != 1 {
		t.Fatalf("sample was not persisted")
	}
}

func TestSetTripStatusBroadcastsAndBootstrapAgrees(t *testing.T) {
	store := newFakeTripStore(testBus())
	ts, _ := newTracker(t, store)

	student := &recordingSubscriber{id: "student-1"}
	ts.Subscribe(student, "R10")

	ack, err := ts.SetTripStatus(context.Background(), 1, true)
	if err != nil {
		t.Fatalf("set trip status failed: %v", err)
	}
	if !ack.IsTripActive || !ack.Published {
		t.Fatalf("unexpected ack: %+v", ack)
	}

	events := student.received()
	if len(events) != 1 || events[0].Type != websocketdto.EventTripStatus {
		t.Fatalf("expected one trip_status event, got %+v", events)
	}
	var status websocketdto.TripStatus
	if err := json.Unmarshal(events[0].Data, &status); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if status.RouteNumber != "R10" || !status.IsActive {
		t.Fatalf("unexpected payload: %+v", status)
	}

	// a late joiner bootstrapping after the event sees the same flag
	snap, err := ts.Bootstrap(context.Background(), "R10")
	if err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	if !snap.IsTripActive {
		t.Fatalf("bootstrap disagrees with the broadcast status")
	}
}

func TestStopTripRetainsLastPosition(t *testing.T) {
	store := newFakeTripStore(testBus())
	ts, _ := newTracker(t, store)

	ctx := context.Background()
	if _, err := ts.SetTripStatus(ctx, 1, true); err != nil {
		t.Fatalf("start trip failed: %v", err)
	}
	if _, err := ts.ReportLocation(ctx, "driver-1", models.LocationSample{Lat: 30.70, Lng: 76.78, Accuracy: 40}); err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if _, err := ts.SetTripStatus(ctx, 1, false); err != nil {
		t.Fatalf("stop trip failed: %v", err)
	}

	snap, err := ts.Bootstrap(ctx, "R10")
	if err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	if snap.IsTripActive {
		t.Fatalf("trip still active after stop")
	}
	if snap.Location == nil || snap.Location.Lat != 30.70 {
		t.Fatalf("last position lost on trip stop: %+v", snap.Location)
	}
}

func TestSetTripStatusUnknownBus(t *testing.T) {
	store := newFakeTripStore(testBus())
	ts, _ := newTracker(t, store)

	_, err := ts.SetTripStatus(context.Background(), 42, true)
	if !errors.Is(err, myerrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRouteChannelsAreIsolated(t *testing.T) {
	busA := testBus()
	busB := models.Bus{
		ID:          2,
		BusNumber:   "PB-11-0002",
		RouteNumber: strPtr("R20"),
		DriverUID:   strPtr("driver-2"),
	}
	store := newFakeTripStore(busA, busB)
	ts, _ := newTracker(t, store)

	onR10 := &recordingSubscriber{id: "student-r10"}
	onR20 := &recordingSubscriber{id: "student-r20"}
	ts.Subscribe(onR10, "R10")
	ts.Subscribe(onR20, "R20")

	if _, err := ts.ReportLocation(context.Background(), "driver-1", models.LocationSample{Lat: 30.70, Lng: 76.78, Accuracy: 40}); err != nil {
		t.Fatalf("report failed: %v", err)
	}

	if len(onR10.received()) != 1 {
		t.Fatalf("R10 subscriber missed its update")
	}
	if len(onR20.received()) != 0 {
		t.Fatalf("R20 subscriber received another route's update")
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	store := newFakeTripStore(testBus())
	ts, _ := newTracker(t, store)

	student := &recordingSubscriber{id: "student-1"}
	ts.Subscribe(student, "R10")
	ts.Unsubscribe(student)

	if _, err := ts.ReportLocation(context.Background(), "driver-1", models.LocationSample{Lat: 30.70, Lng: 76.78, Accuracy: 40}); err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if len(student.received()) != 0 {
		t.Fatalf("disconnected subscriber received an update")
	}
}

func TestSubscribeReturnsSnapshot(t *testing.T) {
	bus := testBus()
	lat, lng := 30.70, 76.78
	at := time.Date(2026, 8, 28, 9, 30, 0, 0, time.UTC)
	bus.IsTripActive = true
	bus.Lat, bus.Lng, bus.LastUpdate = &lat, &lng, &at
	store := newFakeTripStore(bus)
	ts, _ := newTracker(t, store)

	student := &recordingSubscriber{id: "student-1"}
	snap, err := ts.Subscribe(student, "R10")
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	if snap.BusID != 1 || !snap.IsTripActive {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if snap.Location == nil || snap.Location.Lat != lat || !snap.Location.Timestamp.Equal(at) {
		t.Fatalf("snapshot missing last position: %+v", snap.Location)
	}
}

func TestSubscribeToRouteWithoutBus(t *testing.T) {
	store := newFakeTripStore(testBus())
	ts, registry := newTracker(t, store)

	student := &recordingSubscriber{id: "student-1"}
	_, err := ts.Subscribe(student, "R99")
	if !errors.Is(err, myerrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// subscription must survive the missing snapshot
	event, _ := websocketdto.NewEvent(websocketdto.EventTripStatus, websocketdto.TripStatus{RouteNumber: "R99", IsActive: true})
	registry.Publish("R99", event)
	if len(student.received()) != 1 {
		t.Fatalf("subscription did not survive a failed bootstrap")
	}
}

func TestAnnounceReachesAllRoutes(t *testing.T) {
	store := newFakeTripStore(testBus())
	ts, _ := newTracker(t, store)

	onR10 := &recordingSubscriber{id: "student-r10"}
	onR20 := &recordingSubscriber{id: "student-r20"}
	ts.Subscribe(onR10, "R10")
	ts.Subscribe(onR20, "R20")

	event, err := websocketdto.NewEvent(websocketdto.EventAnnouncement, websocketdto.AnnouncementMessage{
		ID: 7, Title: "Exam week", Message: "Extra buses on R10 and R20",
	})
	if err != nil {
		t.Fatalf("failed to build event: %v", err)
	}
	ts.Announce(event)

	if len(onR10.received()) != 1 || len(onR20.received()) != 1 {
		t.Fatalf("announcement missed subscribers")
	}
}
