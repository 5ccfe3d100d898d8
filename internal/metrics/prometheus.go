package metrics

import (
	"net/http"
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	fetchDuration *prom.HistogramVec
	fetchResults  *prom.CounterVec
	pageRenders   *prom.CounterVec
}

// NewPrometheusRecorder constructs the collectors and registers them on reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		fetchDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "spacetraveling",
			Name:      "content_fetch_duration_seconds",
			Help:      "Duration of content API calls",
			Buckets:   prom.DefBuckets,
		}, []string{"op"}),
		fetchResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "spacetraveling",
			Name:      "content_fetch_results_total",
			Help:      "Content API call outcomes",
		}, []string{"op", "result"}),
		pageRenders: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "spacetraveling",
			Name:      "page_renders_total",
			Help:      "Rendered pages by page and HTTP status",
		}, []string{"page", "status"}),
	}
	reg.MustRegister(pr.fetchDuration, pr.fetchResults, pr.pageRenders)
	return pr
}

func (p *PrometheusRecorder) ObserveFetch(op string, d time.Duration, result string) {
	if p == nil {
		return
	}
	p.fetchDuration.WithLabelValues(op).Observe(d.Seconds())
	p.fetchResults.WithLabelValues(op, result).Inc()
}

func (p *PrometheusRecorder) IncPageRender(page string, status int) {
	if p == nil {
		return
	}
	p.pageRenders.WithLabelValues(page, strconv.Itoa(status)).Inc()
}

// HTTPHandler serves the metrics gathered by reg.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
