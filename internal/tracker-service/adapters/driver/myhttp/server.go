package myhttp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"bus-tracker/internal/config"
	"bus-tracker/internal/metrics"
	"bus-tracker/internal/mylogger"
	"bus-tracker/internal/tracker-service/adapters/driven/bm"
	"bus-tracker/internal/tracker-service/adapters/driven/broadcast"
	"bus-tracker/internal/tracker-service/adapters/driven/db"
	"bus-tracker/internal/tracker-service/adapters/driver/myhttp/handle"
	"bus-tracker/internal/tracker-service/adapters/driver/myhttp/middleware"
	"bus-tracker/internal/tracker-service/adapters/driver/myhttp/ws"
	"bus-tracker/internal/tracker-service/core/ports/driven"
	"bus-tracker/internal/tracker-service/core/services"
)

var ErrServerClosed = errors.New("server closed")

const WaitTime = 10

type Server struct {
	mux    *http.ServeMux
	cfg    *config.Config
	srv    *http.Server
	mylog  mylogger.Logger
	mtr    *metrics.Collector
	db     *db.DB
	mb     driven.IAnnouncementBroker
	ctx    context.Context
	appCtx context.Context
	mu     sync.Mutex
}

func NewServer(ctx, appCtx context.Context, mylog mylogger.Logger, cfg *config.Config) *Server {
	return &Server{
		ctx:    ctx,
		appCtx: appCtx,
		cfg:    cfg,
		mylog:  mylog,
		mtr:    metrics.NewCollector(),
		mux:    http.NewServeMux(),
	}
}

// Run initializes routes and starts listening. It returns when the server stops.
func (s *Server) Run() error {
	mylog := s.mylog.Action("server_started")

	// Initialize database connection
	database, err := db.New(s.ctx, s.cfg.DB, mylog)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.db = database
	mylog.Info("Successful database connection")

	// Initialize RabbitMQ connection
	mb, err := bm.New(s.appCtx, *s.cfg.RabbitMq, s.mylog)
	if err != nil {
		return fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}
	s.mb = mb
	mylog.Info("Successful message broker connection")

	// Configure routes and handlers
	s.Configure()

	s.mu.Lock()
	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%v", s.cfg.Srv.TrackerServicePort),
		Handler: s.mux,
	}
	s.mu.Unlock()

	mylog = mylog.WithGroup("details").With("port", s.cfg.Srv.TrackerServicePort)
	mylog.Info("server is running")
	return s.startHTTPServer()
}

// Stop provides a programmatic shutdown. Accepts a context for timeout control.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mylog.Info("Shutting down HTTP server...")

	if s.srv != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, WaitTime*time.Second)
		defer cancel()

		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.mylog.Error("Failed to shut down HTTP server gracefully", err)
			return fmt.Errorf("http server shutdown: %w", err)
		}
	}

	if s.mb != nil {
		if err := s.mb.Close(); err != nil {
			s.mylog.Error("Failed to close message broker", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.mylog.Error("Failed to close database", err)
			return fmt.Errorf("db close: %w", err)
		}
		s.mylog.Info("Database closed")
	}

	s.mylog.Info("HTTP server shut down gracefully")
	return nil
}

func (s *Server) startHTTPServer() error {
	errCh := make(chan error, 1)

	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		} else {
			errCh <- nil
		}
	}()

	select {
	case <-s.ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Configure wires repositories, services and handlers onto the mux. The
// route registry is built here and injected, nothing hangs off package
// state, so tests can stand up isolated instances.
func (s *Server) Configure() {
	// Repositories
	busRepo := db.NewBusRepo(s.db)
	userRepo := db.NewUserRepo(s.db)
	routeRepo := db.NewRouteRepo(s.db)
	complaintRepo := db.NewComplaintRepo(s.db)
	announcementRepo := db.NewAnnouncementRepo(s.db)

	// Broadcast core
	registry := broadcast.NewRouteRegistry(s.mylog, s.mtr)
	trackerService := services.NewTrackerService(s.mylog, busRepo, registry, s.mtr)

	// Services
	authService := services.NewAuthService(s.cfg, userRepo, s.mylog)
	fleetService := services.NewFleetService(s.mylog, busRepo, routeRepo, userRepo, busRepo)
	complaintService := services.NewComplaintService(s.mylog, complaintRepo)
	announcementService := services.NewAnnouncementService(s.mylog, announcementRepo, s.mb, s.mtr)

	// Handlers
	authHandler := handle.NewAuthHandler(authService, s.mylog)
	fleetHandler := handle.NewFleetHandler(fleetService, s.mylog)
	trackingHandler := handle.NewTrackingHandler(trackerService, s.mylog)
	complaintHandler := handle.NewComplaintHandler(complaintService, s.mylog)
	announcementHandler := handle.NewAnnouncementHandler(announcementService, s.mylog)

	dispatcher := ws.NewDispatcher(s.appCtx, s.mylog, trackerService, s.mtr, s.cfg.App.JwtSecret)

	// Announcement fan-out from the broker to local websocket clients
	consumer := bm.NewConsumer(s.appCtx, s.mylog, s.mb, trackerService)
	go func() {
		if err := consumer.Run(); err != nil {
			s.mylog.Error("announcement consumer stopped", err)
		}
	}()

	mdl := middleware.NewAuthMiddleware(s.cfg.App.JwtSecret)

	Router(s.mux, RouterDeps{
		Auth:          authHandler,
		Fleet:         fleetHandler,
		Tracking:      trackingHandler,
		Complaints:    complaintHandler,
		Announcements: announcementHandler,
		Dispatcher:    dispatcher,
		Middleware:    mdl,
		Metrics:       s.mtr,
		Health:        s.healthHandler(),
	})
}

func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]string{"database": "up", "broker": "up"}
		code := http.StatusOK

		if err := s.db.IsAlive(); err != nil {
			status["database"] = "down"
			code = http.StatusServiceUnavailable
		}
		if !s.mb.IsAlive() {
			status["broker"] = "down"
			code = http.StatusServiceUnavailable
		}

		handle.JsonResponse(w, code, status)
	}
}
