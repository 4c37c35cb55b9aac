// Package observability provides hooks for metrics, tracing, and logging.
//
// Consumers register hooks at startup to receive events about estimates,
// artifact caching and API requests. Nothing here depends on a particular
// metrics backend; every hook defaults to a no-op.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetEstimateHooks(&myEstimateHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Estimate().OnEstimateStart(ctx, rows)
//	// ... compare and lay out ...
//	observability.Estimate().OnEstimateComplete(ctx, patches, cheaper, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Estimate Hooks
// =============================================================================

// EstimateHooks receives events from the estimate runner.
type EstimateHooks interface {
	// Estimate events; cheaper is the winning treatment ("" on error).
	OnEstimateStart(ctx context.Context, rows int)
	OnEstimateComplete(ctx context.Context, patches int, cheaper string, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// Request Hooks
// =============================================================================

// RequestHooks receives events from the HTTP API.
type RequestHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopEstimateHooks is a no-op implementation of EstimateHooks.
type NoopEstimateHooks struct{}

func (NoopEstimateHooks) OnEstimateStart(context.Context, int) {}
func (NoopEstimateHooks) OnEstimateComplete(context.Context, int, string, time.Duration, error) {
}
func (NoopEstimateHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopEstimateHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopRequestHooks is a no-op implementation of RequestHooks.
type NoopRequestHooks struct{}

func (NoopRequestHooks) OnRequest(context.Context, string, string)                      {}
func (NoopRequestHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	estimateHooks EstimateHooks = NoopEstimateHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	requestHooks  RequestHooks  = NoopRequestHooks{}
	hooksMu       sync.RWMutex
)

// SetEstimateHooks registers custom estimate hooks. Nil is ignored.
func SetEstimateHooks(h EstimateHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		estimateHooks = h
	}
}

// SetCacheHooks registers custom cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetRequestHooks registers custom request hooks. Nil is ignored.
func SetRequestHooks(h RequestHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		requestHooks = h
	}
}

// Estimate returns the registered estimate hooks.
func Estimate() EstimateHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return estimateHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Request returns the registered request hooks.
func Request() RequestHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return requestHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	estimateHooks = NoopEstimateHooks{}
	cacheHooks = NoopCacheHooks{}
	requestHooks = NoopRequestHooks{}
}
