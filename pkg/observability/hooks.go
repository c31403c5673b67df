// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about coupling runs, pipeline stages, and HTTP requests.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// [Prometheus] implements every hook interface on top of
// prometheus/client_golang collectors.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    prom := observability.NewPrometheus(prometheus.DefaultRegisterer)
//	    observability.SetCouplingHooks(prom)
//	    observability.SetPipelineHooks(prom)
//	    observability.SetHTTPHooks(prom)
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Coupling().OnCoupleStart(ctx, "frontier-expiries", nodes, edges)
//	// ... couple ...
//	observability.Coupling().OnCoupleComplete(ctx, "frontier-expiries", groups, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Coupling Hooks
// =============================================================================

// CouplingHooks receives events from the coupling engine.
type CouplingHooks interface {
	OnCoupleStart(ctx context.Context, algorithm string, nodeCount, edgeCount int)
	OnCoupleComplete(ctx context.Context, algorithm string, groupCount int, duration time.Duration, err error)

	// OnUnblockings reports how many unblockings were enumerated and how many
	// survived deduplication.
	OnUnblockings(ctx context.Context, raw, distinct int)
}

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the load and render stages.
type PipelineHooks interface {
	// Load events
	OnLoadStart(ctx context.Context, source string)
	OnLoadComplete(ctx context.Context, source string, nodeCount, edgeCount int, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, format string)
	OnRenderComplete(ctx context.Context, format string, duration time.Duration, err error)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP API.
type HTTPHooks interface {
	// OnRequest records an incoming request. route is the matched pattern.
	OnRequest(ctx context.Context, method, route string)

	// OnResponse records a completed response.
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopCouplingHooks is a no-op implementation of CouplingHooks.
type NoopCouplingHooks struct{}

func (NoopCouplingHooks) OnCoupleStart(context.Context, string, int, int)                       {}
func (NoopCouplingHooks) OnCoupleComplete(context.Context, string, int, time.Duration, error) {}
func (NoopCouplingHooks) OnUnblockings(context.Context, int, int)                               {}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string) {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnRenderStart(context.Context, string)                        {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, time.Duration, error) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	couplingHooks CouplingHooks = NoopCouplingHooks{}
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
	hooksMu       sync.RWMutex
)

// SetCouplingHooks registers custom coupling hooks.
// This should be called once at application startup before any coupling runs.
func SetCouplingHooks(h CouplingHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		couplingHooks = h
	}
}

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before serving requests.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Coupling returns the registered coupling hooks.
func Coupling() CouplingHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return couplingHooks
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	couplingHooks = NoopCouplingHooks{}
	pipelineHooks = NoopPipelineHooks{}
	httpHooks = NoopHTTPHooks{}
}
