package metrics_test

import (
	"testing"

	"github.com/maxviazov/chat-endpoints/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpstreamError(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.UpstreamError()
	m.UpstreamError()

	n, err := testutil.GatherAndCount(reg, "chat_endpoints_proxy_upstream_errors_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() == "chat_endpoints_proxy_upstream_errors_total" {
			assert.Equal(t, 2.0, mf.GetMetric()[0].GetCounter().GetValue())
		}
	}
}

func TestNew_DoubleRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.New(reg)
	assert.Panics(t, func() { metrics.New(reg) })
}
