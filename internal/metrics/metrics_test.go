package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterValue returns the value of the counter named name whose labels match labels.
func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metrics:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if labels[lp.GetName()] != lp.GetValue() {
					continue metrics
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

func TestCollector_RecordRefresh(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRefresh(OutcomeSuccess, 20*time.Millisecond)
	c.RecordRefresh(OutcomeSuccess, 30*time.Millisecond)
	c.RecordRefresh(OutcomeFailure, time.Second)

	assert.Equal(t, 2.0, counterValue(t, reg, "monipaep_token_refresh_total", map[string]string{"outcome": OutcomeSuccess}))
	assert.Equal(t, 1.0, counterValue(t, reg, "monipaep_token_refresh_total", map[string]string{"outcome": OutcomeFailure}))

	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == "monipaep_token_refresh_duration_seconds" {
			assert.Equal(t, uint64(3), mf.GetMetric()[0].GetHistogram().GetSampleCount())
		}
	}
}

func TestCollector_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordSignOut("refresh_failed")
	c.RecordUpstreamStatus(http.MethodGet, 200)
	c.RecordUpstreamStatus(http.MethodGet, 200)
	c.RecordUpstreamStatus(http.MethodPut, 401)
	c.RecordQueuedRequests(3)

	assert.Equal(t, 1.0, counterValue(t, reg, "monipaep_sign_out_total", map[string]string{"reason": "refresh_failed"}))
	assert.Equal(t, 2.0, counterValue(t, reg, "monipaep_upstream_responses_total", map[string]string{"method": "GET", "status_code": "200"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "monipaep_upstream_responses_total", map[string]string{"method": "PUT", "status_code": "401"}))
}

func TestHandler_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordSignOut("user")

	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	resp := w.Result()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "monipaep_sign_out_total")
}
