package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "hypercouple"

// Prometheus records every hook event as a Prometheus metric.
type Prometheus struct {
	couplings        *prometheus.CounterVec
	couplingDuration *prometheus.HistogramVec
	groups           *prometheus.HistogramVec
	unblockings      *prometheus.HistogramVec

	loads          *prometheus.CounterVec
	stageDuration  *prometheus.HistogramVec
	requests       *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	inFlight       prometheus.Gauge
}

var (
	_ CouplingHooks = (*Prometheus)(nil)
	_ PipelineHooks = (*Prometheus)(nil)
	_ HTTPHooks     = (*Prometheus)(nil)
)

// NewPrometheus creates the collectors and registers them with reg.
// It panics if any of them is already registered, like [prometheus.MustRegister].
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	p := &Prometheus{
		couplings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "couplings_total",
			Help:      "Coupling runs by algorithm and outcome.",
		}, []string{"algorithm", "outcome"}),
		couplingDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "coupling_duration_seconds",
			Help:      "Duration of coupling runs.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"algorithm"}),
		groups: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "coupling_groups",
			Help:      "Number of groups returned per coupling run.",
			Buckets:   prometheus.LinearBuckets(0, 4, 10),
		}, []string{"algorithm"}),
		unblockings: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "unblockings",
			Help:      "Unblockings enumerated per frontier-expiries run.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}, []string{"kind"}),
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_loaded_total",
			Help:      "Hypergraph documents loaded by outcome.",
		}, []string{"outcome"}),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_stage_duration_seconds",
			Help:      "Duration of pipeline stages.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"stage"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"method", "route", "code"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "HTTP requests currently being served.",
		}),
	}
	reg.MustRegister(
		p.couplings, p.couplingDuration, p.groups, p.unblockings,
		p.loads, p.stageDuration,
		p.requests, p.requestLatency, p.inFlight,
	)
	return p
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (p *Prometheus) OnCoupleStart(context.Context, string, int, int) {}

func (p *Prometheus) OnCoupleComplete(_ context.Context, algorithm string, groupCount int, d time.Duration, err error) {
	p.couplings.WithLabelValues(algorithm, outcome(err)).Inc()
	p.couplingDuration.WithLabelValues(algorithm).Observe(d.Seconds())
	if err == nil {
		p.groups.WithLabelValues(algorithm).Observe(float64(groupCount))
	}
}

func (p *Prometheus) OnUnblockings(_ context.Context, raw, distinct int) {
	p.unblockings.WithLabelValues("raw").Observe(float64(raw))
	p.unblockings.WithLabelValues("distinct").Observe(float64(distinct))
}

func (p *Prometheus) OnLoadStart(context.Context, string) {}

func (p *Prometheus) OnLoadComplete(_ context.Context, _ string, _, _ int, d time.Duration, err error) {
	p.loads.WithLabelValues(outcome(err)).Inc()
	p.stageDuration.WithLabelValues("load").Observe(d.Seconds())
}

func (p *Prometheus) OnRenderStart(context.Context, string) {}

func (p *Prometheus) OnRenderComplete(_ context.Context, format string, d time.Duration, _ error) {
	p.stageDuration.WithLabelValues("render_" + format).Observe(d.Seconds())
}

func (p *Prometheus) OnRequest(context.Context, string, string) {
	p.inFlight.Inc()
}

func (p *Prometheus) OnResponse(_ context.Context, method, route string, statusCode int, d time.Duration) {
	p.inFlight.Dec()
	p.requests.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	p.requestLatency.WithLabelValues(method, route).Observe(d.Seconds())
}
