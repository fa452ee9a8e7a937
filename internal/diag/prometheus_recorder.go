package diag

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "zoned"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	loadDuration     prom.Histogram
	loads            *prom.CounterVec
	rejected         *prom.CounterVec
	migrations       *prom.CounterVec
	templatesVersion prom.Gauge
	layouts          prom.Gauge
	storageErrors    *prom.CounterVec
	fallbacks        *prom.CounterVec
	cycles           *prom.CounterVec
}

// NewPrometheusRecorder constructs the collectors and registers them on reg.
// A nil reg gets a private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		loadDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "load_duration_seconds",
			Help:      "Duration of layout loads",
			Buckets:   prom.DefBuckets,
		}),
		loads: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "loads_total",
			Help:      "Layout loads by outcome",
		}, []string{"outcome"}),
		rejected: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "layouts_rejected_total",
			Help:      "Layouts dropped by validation, by failed check",
		}, []string{"check"}),
		migrations: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "migrations_total",
			Help:      "Template migrations by outcome",
		}, []string{"outcome"}),
		templatesVersion: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "templates_version",
			Help:      "Installed template catalog version",
		}),
		layouts: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "layouts",
			Help:      "Number of layouts in the merged list",
		}),
		storageErrors: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "storage_errors_total",
			Help:      "Storage failures by operation",
		}, []string{"op"}),
		fallbacks: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "fallbacks_total",
			Help:      "Dangling selections replaced by a fallback layout",
		}, []string{"kind"}),
		cycles: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "zone_cycles_total",
			Help:      "Zone cycle requests by scope",
		}, []string{"scope"}),
	}
	reg.MustRegister(pr.loadDuration, pr.loads, pr.rejected, pr.migrations, pr.templatesVersion,
		pr.layouts, pr.storageErrors, pr.fallbacks, pr.cycles)
	return pr
}

func (p *PrometheusRecorder) ObserveLoadDuration(d time.Duration) {
	if p == nil || p.loadDuration == nil {
		return
	}
	p.loadDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncLoad(outcome OutcomeLabel) {
	if p == nil || p.loads == nil {
		return
	}
	p.loads.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncRejected(check string) {
	if p == nil || p.rejected == nil {
		return
	}
	p.rejected.WithLabelValues(check).Inc()
}

func (p *PrometheusRecorder) IncMigration(outcome OutcomeLabel) {
	if p == nil || p.migrations == nil {
		return
	}
	p.migrations.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetTemplatesVersion(v int) {
	if p == nil || p.templatesVersion == nil {
		return
	}
	p.templatesVersion.Set(float64(v))
}

func (p *PrometheusRecorder) SetLayoutCount(n int) {
	if p == nil || p.layouts == nil {
		return
	}
	p.layouts.Set(float64(n))
}

func (p *PrometheusRecorder) IncStorageError(op string) {
	if p == nil || p.storageErrors == nil {
		return
	}
	p.storageErrors.WithLabelValues(op).Inc()
}

func (p *PrometheusRecorder) IncFallback(kind string) {
	if p == nil || p.fallbacks == nil {
		return
	}
	p.fallbacks.WithLabelValues(kind).Inc()
}

func (p *PrometheusRecorder) IncCycle(scope string) {
	if p == nil || p.cycles == nil {
		return
	}
	p.cycles.WithLabelValues(scope).Inc()
}
