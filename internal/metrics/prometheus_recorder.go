package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "designpreview"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	buildDuration   prom.Histogram
	buildOutcome    *prom.CounterVec
	discoveredItems prom.Gauge
	excluded        *prom.CounterVec
}

// NewPrometheusRecorder constructs the collectors and registers them with reg.
// A nil registry gets a fresh one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "manifest_build_duration_seconds",
			Help:      "Duration of a full manifest build including the tree scan",
			Buckets:   prom.DefBuckets,
		}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "manifest_builds_total",
			Help:      "Manifest builds by outcome",
		}, []string{"outcome"}),
		discoveredItems: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "discovered_items",
			Help:      "Design documents in the most recent manifest",
		}),
		excluded: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "excluded_files_total",
			Help:      "HTML files skipped by the inclusion filter, by reason",
		}, []string{"reason"}),
	}
	reg.MustRegister(pr.buildDuration, pr.buildOutcome, pr.discoveredItems, pr.excluded)
	return pr
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome OutcomeLabel) {
	if p == nil || p.buildOutcome == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetDiscoveredItems(n int) {
	if p == nil || p.discoveredItems == nil {
		return
	}
	p.discoveredItems.Set(float64(n))
}

func (p *PrometheusRecorder) IncExcluded(reason string) {
	if p == nil || p.excluded == nil {
		return
	}
	p.excluded.WithLabelValues(reason).Inc()
}

// HTTPHandler returns an http.Handler that serves Prometheus metrics for the provided registry.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
