package myhttp

import (
	"net/http"

	"bus-tracker/internal/metrics"
	"bus-tracker/internal/tracker-service/adapters/driver/myhttp/handle"
	"bus-tracker/internal/tracker-service/adapters/driver/myhttp/middleware"
	"bus-tracker/internal/tracker-service/adapters/driver/myhttp/ws"
)

type RouterDeps struct {
	Auth          *handle.AuthHandler
	Fleet         *handle.FleetHandler
	Tracking      *handle.TrackingHandler
	Complaints    *handle.ComplaintHandler
	Announcements *handle.AnnouncementHandler
	Dispatcher    *ws.Dispatcher
	Middleware    *middleware.AuthMiddleware
	Metrics       *metrics.Collector
	Health        http.HandlerFunc
}

func Router(mux *http.ServeMux, d RouterDeps) {
	mdl := d.Middleware

	// open endpoints
	mux.Handle("POST /api/signup", d.Auth.Signup())
	mux.Handle("POST /api/login", d.Auth.Login())
	mux.Handle("GET /health", d.Health)
	mux.Handle("GET /metrics", d.Metrics.Handler())

	// fleet
	mux.Handle("GET /api/routes", mdl.Wrap(d.Fleet.ListRoutes()))
	mux.Handle("POST /api/routes", mdl.WrapRole("admin", d.Fleet.CreateRoute()))
	mux.Handle("GET /api/buses", mdl.Wrap(d.Fleet.ListBuses()))
	mux.Handle("POST /api/buses", mdl.WrapRole("admin", d.Fleet.CreateBus()))
	mux.Handle("GET /api/drivers", mdl.WrapRole("admin", d.Fleet.ListDrivers()))
	mux.Handle("POST /api/assign", mdl.WrapRole("admin", d.Fleet.Assign()))
	mux.Handle("GET /api/my-bus", mdl.WrapRole("driver", d.Fleet.MyBus()))

	// driver report path, same dispatcher as the websocket side
	mux.Handle("POST /api/trip-status", mdl.WrapRole("driver", d.Tracking.SetTripStatus()))
	mux.Handle("POST /api/update-location", mdl.WrapRole("driver", d.Tracking.UpdateLocation()))

	// complaints
	mux.Handle("POST /api/complaints", mdl.Wrap(d.Complaints.Create()))
	mux.Handle("GET /api/complaints", mdl.WrapRole("admin", d.Complaints.List()))
	mux.Handle("GET /api/complaints/user/{user_id}", mdl.Wrap(d.Complaints.ListByUser()))
	mux.Handle("PUT /api/complaints/{id}", mdl.WrapRole("admin", d.Complaints.UpdateStatus()))

	// announcements
	mux.Handle("GET /api/announcements", mdl.Wrap(d.Announcements.List()))
	mux.Handle("POST /api/announcements", mdl.WrapRole("admin", d.Announcements.Create()))
	mux.Handle("DELETE /api/announcements/{id}", mdl.WrapRole("admin", d.Announcements.Delete()))

	// live tracking
	mux.Handle("/ws", d.Dispatcher.WsHandler())
}
