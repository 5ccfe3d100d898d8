package metrics

import (
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.ObserveFetch("page", 150*time.Millisecond, ResultSuccess)
	pr.ObserveFetch("by_key", 20*time.Millisecond, ResultNotFound)
	pr.IncPageRender("post", 404)

	mfs, err := reg.Gather()
	require.NoError(t, err)

	counts := map[string]int{}
	for _, mf := range mfs {
		counts[mf.GetName()] = len(mf.GetMetric())
	}
	assert.Equal(t, 2, counts["spacetraveling_content_fetch_results_total"])
	assert.Equal(t, 2, counts["spacetraveling_content_fetch_duration_seconds"])
	assert.Equal(t, 1, counts["spacetraveling_page_renders_total"])
}

func TestNilPrometheusRecorderIsSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.ObserveFetch("page", time.Second, ResultFailure)
	pr.IncPageRender("home", 200)
}
