package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	EventsReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "player_events_received_total",
			Help: "Total number of raw player events received, by type",
		},
		[]string{"type"},
	)

	JoinsProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "join_events_processed_total",
			Help: "Total number of join events written to storage",
		},
	)

	ResponseTime = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status_code"},
	)

	QueueSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "join_queue_size",
			Help: "Current size of the join processing queue",
		},
	)

	ActivePlayers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_players",
			Help: "Players with an open session at the last sampler tick",
		},
	)
)

func init() {
	prometheus.MustRegister(EventsReceived)
	prometheus.MustRegister(JoinsProcessed)
	prometheus.MustRegister(ResponseTime)
	prometheus.MustRegister(QueueSize)
	prometheus.MustRegister(ActivePlayers)
}
