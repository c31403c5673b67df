package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusCoupling(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg)
	ctx := context.Background()

	p.OnCoupleComplete(ctx, "frontier-expiries", 2, 10*time.Millisecond, nil)
	p.OnCoupleComplete(ctx, "frontier-expiries", 0, time.Millisecond, errors.New("boom"))
	p.OnUnblockings(ctx, 5, 4)

	if got := testutil.ToFloat64(p.couplings.WithLabelValues("frontier-expiries", "ok")); got != 1 {
		t.Errorf("ok couplings = %v, want 1", got)
	}
	if got := testutil.ToFloat64(p.couplings.WithLabelValues("frontier-expiries", "error")); got != 1 {
		t.Errorf("error couplings = %v, want 1", got)
	}
	if n := testutil.CollectAndCount(p.unblockings); n != 2 {
		t.Errorf("unblockings series = %d, want 2", n)
	}
}

func TestPrometheusHTTP(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg)
	ctx := context.Background()

	p.OnRequest(ctx, "POST", "/couple")
	if got := testutil.ToFloat64(p.inFlight); got != 1 {
		t.Errorf("in flight = %v, want 1", got)
	}
	p.OnResponse(ctx, "POST", "/couple", 200, time.Millisecond)
	if got := testutil.ToFloat64(p.inFlight); got != 0 {
		t.Errorf("in flight = %v, want 0", got)
	}
	if got := testutil.ToFloat64(p.requests.WithLabelValues("POST", "/couple", "200")); got != 1 {
		t.Errorf("requests = %v, want 1", got)
	}
}

func TestPrometheusPipeline(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg)
	ctx := context.Background()

	p.OnLoadComplete(ctx, "graph.json", 5, 5, time.Millisecond, nil)
	p.OnRenderComplete(ctx, "svg", time.Millisecond, nil)

	if got := testutil.ToFloat64(p.loads.WithLabelValues("ok")); got != 1 {
		t.Errorf("loads = %v, want 1", got)
	}
	if n := testutil.CollectAndCount(p.stageDuration); n != 2 {
		t.Errorf("stage series = %d, want 2", n)
	}
}

func TestNewPrometheusDuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewPrometheus(reg)

	defer func() {
		if recover() == nil {
			t.Error("second NewPrometheus on the same registry should panic")
		}
	}()
	NewPrometheus(reg)
}
