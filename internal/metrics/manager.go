package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	Namespace = "gym"
	Subsystem = "api"
)

type Manager struct {
	// counters
	CounterRequests     *prometheus.CounterVec
	CounterLogins       *prometheus.CounterVec
	CounterRateLimited  prometheus.Counter
	CounterReassignment prometheus.Counter
	CounterAdoptions    *prometheus.CounterVec

	// gauges
	GaugeRequests prometheus.Gauge

	// histograms
	HistRequestDuration *prometheus.HistogramVec
}

func NewTestManager() *Manager {
	return NewManager(Namespace, "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager(Namespace, "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "requests_total",
		Help:      "The total number of handled requests",
	}, []string{"method", "route", "status"})
	counterLogins := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "logins_total",
		Help:      "Login attempts by result",
	}, []string{"result"})
	counterRateLimited := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "rate_limited_total",
		Help:      "Requests rejected by the login rate limiter",
	})
	counterReassignment := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "trainer_assignments_total",
		Help:      "Committed trainer assignments",
	})
	counterAdoptions := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "routine_adoptions_total",
		Help:      "Routine adoptions, split by whether a new copy was created",
	}, []string{"created"})

	gaugeRequests := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "current_requests",
		Help:      "Current number of requests served",
	})

	histReqDuration := factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			Name:      "request_duration_seconds",
			Help:      "Total duration of requests in seconds",
		},
		[]string{"route"},
	)

	return &Manager{
		CounterRequests:     counterRequests,
		CounterLogins:       counterLogins,
		CounterRateLimited:  counterRateLimited,
		CounterReassignment: counterReassignment,
		CounterAdoptions:    counterAdoptions,
		GaugeRequests:       gaugeRequests,
		HistRequestDuration: histReqDuration,
	}
}
