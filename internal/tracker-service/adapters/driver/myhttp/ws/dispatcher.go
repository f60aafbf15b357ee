package ws

import (
	"context"
	"fmt"
	"net/http"

	"bus-tracker/internal/metrics"
	"bus-tracker/internal/mylogger"
	"bus-tracker/internal/tracker-service/adapters/driver/myhttp/middleware"
	"bus-tracker/internal/tracker-service/core/ports/driver"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// websocketUpgrader upgrades incoming HTTP requests into a persistent
// websocket connection.
var websocketUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Dispatcher owns the websocket endpoint: it authenticates the upgrade and
// spawns the per-connection pumps. Route membership lives in the registry
// behind the tracker service, not here.
type Dispatcher struct {
	ctx     context.Context
	mylog   mylogger.Logger
	tracker driver.ITrackerService
	mtr     *metrics.Collector
	secret  string
}

func NewDispatcher(ctx context.Context, mylog mylogger.Logger, tracker driver.ITrackerService, mtr *metrics.Collector, secret string) *Dispatcher {
	return &Dispatcher{
		ctx:     ctx,
		mylog:   mylog,
		tracker: tracker,
		mtr:     mtr,
		secret:  secret,
	}
}

func (d *Dispatcher) WsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mylog := d.mylog.Action("ws_connect")

		// browsers cannot set headers on websocket dials, token rides the query
		token := r.URL.Query().Get("token")
		if token == "" {
			token = r.Header.Get("Authorization")
		}
		if token == "" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}

		userUID, role, err := middleware.ParseUserClaims(d.secret, token)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		conn, err := websocketUpgrader.Upgrade(w, r, nil)
		if err != nil {
			mylog.Error("cannot upgrade connection", err)
			return
		}

		connectionID := fmt.Sprintf("%s:%s", userUID, uuid.NewString())
		client := NewClient(d.ctx, conn, d.tracker, d.mylog, connectionID, userUID, role)

		d.mtr.ConnectedClients.Inc()
		mylog.Info("client connected", "connection_id", connectionID, "role", role)

		go client.WritePump()
		go func() {
			client.ReadPump()
			d.mtr.ConnectedClients.Dec()
			mylog.Info("client disconnected", "connection_id", connectionID)
		}()
	}
}
