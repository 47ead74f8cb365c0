// Package metrics collects and exposes Prometheus metrics for the console.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Refresh outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Recorder is what the API client and session layer report to.
type Recorder interface {
	RecordRefresh(outcome string, duration time.Duration)
	RecordQueuedRequests(count int)
	RecordSignOut(reason string)
	RecordUpstreamStatus(method string, statusCode int)
}

// Collector records console metrics in Prometheus.
type Collector struct {
	refreshes      *prometheus.CounterVec
	refreshLatency prometheus.Histogram
	queuedRequests prometheus.Histogram
	signOuts       *prometheus.CounterVec
	upstreamStatus *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "monipaep_token_refresh_total",
			Help: "Token refreshes by outcome.",
		}, []string{"outcome"}),
		refreshLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "monipaep_token_refresh_duration_seconds",
			Help:    "Duration of token refresh calls.",
			Buckets: prometheus.DefBuckets,
		}),
		queuedRequests: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "monipaep_refresh_queue_size",
			Help:    "Requests resumed per settled refresh.",
			Buckets: []float64{1, 2, 4, 8, 16, 32, 64},
		}),
		signOuts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "monipaep_sign_out_total",
			Help: "Session sign-outs by reason.",
		}, []string{"reason"}),
		upstreamStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "monipaep_upstream_responses_total",
			Help: "Surveillance API responses by method and status code.",
		}, []string{"method", "status_code"}),
	}

	reg.MustRegister(
		c.refreshes,
		c.refreshLatency,
		c.queuedRequests,
		c.signOuts,
		c.upstreamStatus,
	)

	return c
}

// RecordRefresh records a settled refresh.
func (c *Collector) RecordRefresh(outcome string, duration time.Duration) {
	c.refreshes.WithLabelValues(outcome).Inc()
	c.refreshLatency.Observe(duration.Seconds())
}

// RecordQueuedRequests records how many waiting requests a refresh resumed.
func (c *Collector) RecordQueuedRequests(count int) {
	c.queuedRequests.Observe(float64(count))
}

// RecordSignOut records a sign-out.
func (c *Collector) RecordSignOut(reason string) {
	c.signOuts.WithLabelValues(reason).Inc()
}

// RecordUpstreamStatus records the status code of an API response.
func (c *Collector) RecordUpstreamStatus(method string, statusCode int) {
	c.upstreamStatus.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordRefresh(string, time.Duration) {}
func (Nop) RecordQueuedRequests(int)            {}
func (Nop) RecordSignOut(string)                {}
func (Nop) RecordUpstreamStatus(string, int)    {}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
