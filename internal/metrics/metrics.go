package metrics

import (
	"net/http"
	"time"

	"github.com/MarcoPoloResearchLab/marinemap/internal/events"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricPrefix = "marinemap_"

// Recorder exports event collection metrics. It listens to service changes
// and times HTTP requests.
type Recorder struct {
	registry        *prometheus.Registry
	mutations       *prometheus.CounterVec
	eventsTotal     prometheus.Gauge
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewRecorder registers the collectors on a fresh registry.
func NewRecorder() (*Recorder, error) {
	recorder := &Recorder{
		registry: prometheus.NewRegistry(),
		mutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "event_mutations_total",
				Help: "Total committed event mutations by kind",
			},
			[]string{"kind"},
		),
		eventsTotal: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: metricPrefix + "events",
				Help: "Number of events in the collection",
			},
		),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Total HTTP requests by route and status class",
			},
			[]string{"route", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
	}

	collectors := []prometheus.Collector{
		recorder.mutations,
		recorder.eventsTotal,
		recorder.requestsTotal,
		recorder.requestDuration,
	}
	for _, collector := range collectors {
		if err := recorder.registry.Register(collector); err != nil {
			return nil, err
		}
	}
	return recorder, nil
}

// EventsChanged implements events.ChangeListener.
func (r *Recorder) EventsChanged(change events.Change) {
	r.mutations.WithLabelValues(string(change.Kind)).Inc()
	r.eventsTotal.Set(float64(change.Total))
}

// SetEventCount records the collection size after loading.
func (r *Recorder) SetEventCount(total int) {
	r.eventsTotal.Set(float64(total))
}

// ObserveRequest records one HTTP request. Route should be the matched pattern, not the raw path.
func (r *Recorder) ObserveRequest(route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	r.requestsTotal.WithLabelValues(route, statusClass(status)).Inc()
	r.requestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
