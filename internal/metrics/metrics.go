// Package metrics collects and exposes Prometheus metrics for the API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records request-level and domain counters.
type Collector struct {
	httpStatus     *prometheus.CounterVec
	requestLatency prometheus.Histogram
	messagesSent   prometheus.Counter
	logins         prometheus.Counter
	registrations  prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "messagely_http_status_total",
			Help: "Responses by HTTP status code",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "messagely_request_latency_seconds",
			Help:    "Request handling latency in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		messagesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "messagely_messages_sent_total",
			Help: "Messages created",
		}),
		logins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "messagely_logins_total",
			Help: "Successful logins",
		}),
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "messagely_registrations_total",
			Help: "Successful registrations",
		}),
	}

	reg.MustRegister(
		c.httpStatus,
		c.requestLatency,
		c.messagesSent,
		c.logins,
		c.registrations,
	)
	return c
}

func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

func (c *Collector) RecordRequestLatency(d time.Duration) {
	c.requestLatency.Observe(d.Seconds())
}

func (c *Collector) RecordMessageSent() {
	c.messagesSent.Inc()
}

func (c *Collector) RecordLogin() {
	c.logins.Inc()
}

func (c *Collector) RecordRegistration() {
	c.registrations.Inc()
}

// Handler returns the /metrics endpoint for g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
