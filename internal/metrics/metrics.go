package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	reg *prometheus.Registry

	ConnectedClients prometheus.Gauge
	ActiveRoutes     prometheus.Gauge

	SamplesAccepted prometheus.Counter
	SamplesRejected *prometheus.CounterVec // reason label: low_accuracy|invalid_coordinates|no_assignment

	EventsPublished   *prometheus.CounterVec // type label
	DeliveriesDropped prometheus.Counter

	TripsStarted prometheus.Counter
	TripsStopped prometheus.Counter

	AnnouncementsPublished prometheus.Counter
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		ConnectedClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tracker_connected_clients",
			Help: "Number of currently connected websocket clients.",
		}),
		ActiveRoutes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tracker_active_route_channels",
			Help: "Number of route channels with at least one subscriber.",
		}),
		SamplesAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tracker_location_samples_accepted_total",
			Help: "Total location samples accepted and persisted.",
		}),
		SamplesRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tracker_location_samples_rejected_total",
			Help: "Total location samples rejected before persistence.",
		}, []string{"reason"}),
		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tracker_events_published_total",
			Help: "Total events handed to the route channel registry.",
		}, []string{"type"}),
		DeliveriesDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tracker_deliveries_dropped_total",
			Help: "Total per-subscriber deliveries dropped because the subscriber was not ready.",
		}),
		TripsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tracker_trips_started_total",
			Help: "Total trip start transitions.",
		}),
		TripsStopped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tracker_trips_stopped_total",
			Help: "Total trip stop transitions.",
		}),
		AnnouncementsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tracker_announcements_published_total",
			Help: "Total announcements published to the message broker.",
		}),
	}

	reg.MustRegister(
		c.ConnectedClients, c.ActiveRoutes,
		c.SamplesAccepted, c.SamplesRejected,
		c.EventsPublished, c.DeliveriesDropped,
		c.TripsStarted, c.TripsStopped,
		c.AnnouncementsPublished,
	)

	return c
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}
