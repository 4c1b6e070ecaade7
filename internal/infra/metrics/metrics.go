package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// PollsTotal counts poll iterations by result (ok, fault).
	PollsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homework_bot_polls_total",
			Help: "Number of poll iterations by result",
		},
		[]string{"result"},
	)

	// NotificationsTotal counts Telegram sends by kind (status, fault) and outcome.
	NotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homework_bot_notifications_total",
			Help: "Number of Telegram notifications attempted",
		},
		[]string{"kind", "outcome"},
	)

	FaultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homework_bot_faults_total",
			Help: "Number of faults by kind",
		},
		[]string{"kind"},
	)

	FetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "homework_bot_fetch_duration_seconds",
			Help:    "Duration of Practicum API requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"code"},
	)
)

var once sync.Once

// Init registers the collectors with the default registry. Safe to call more than once.
func Init() {
	once.Do(func() {
		prometheus.MustRegister(PollsTotal, NotificationsTotal, FaultsTotal, FetchDuration)
	})
}
