package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Coupling hooks
	c := NoopCouplingHooks{}
	c.OnCoupleStart(ctx, "frontier-expiries", 5, 5)
	c.OnCoupleComplete(ctx, "frontier-expiries", 2, time.Second, nil)
	c.OnUnblockings(ctx, 5, 4)

	// Pipeline hooks
	p := NoopPipelineHooks{}
	p.OnLoadStart(ctx, "graph.json")
	p.OnLoadComplete(ctx, "graph.json", 5, 5, time.Second, nil)
	p.OnRenderStart(ctx, "svg")
	p.OnRenderComplete(ctx, "svg", time.Second, nil)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/couple")
	h.OnResponse(ctx, "POST", "/couple", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Coupling().(NoopCouplingHooks); !ok {
		t.Error("Coupling() should return NoopCouplingHooks by default")
	}
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	// Set custom hooks
	customCoupling := &testCouplingHooks{}
	SetCouplingHooks(customCoupling)
	if Coupling() != customCoupling {
		t.Error("SetCouplingHooks should set custom hooks")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Coupling().(NoopCouplingHooks); !ok {
		t.Error("Reset() should restore NoopCouplingHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testCouplingHooks{}
	SetCouplingHooks(custom)

	// Setting nil should be ignored
	SetCouplingHooks(nil)

	if Coupling() != custom {
		t.Error("SetCouplingHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testCouplingHooks struct{ NoopCouplingHooks }
type testPipelineHooks struct{ NoopPipelineHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
