// Package observability provides hooks for instrumenting matching runs.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register
// hooks at startup to receive events about instance reading, matching
// computation and rendering.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for each event category
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so the solver packages
// never import a backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSolverHooks(&mySolverHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Solver().OnComputeStart(ctx, algorithm, vertices)
//	// ... compute ...
//	observability.Solver().OnComputeComplete(ctx, algorithm, pairs, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Solver Hooks
// =============================================================================

// SolverHooks receives events from the solve pipeline.
type SolverHooks interface {
	// Read events
	OnReadStart(ctx context.Context, source string)
	OnReadComplete(ctx context.Context, source string, vertices, edges int, duration time.Duration, err error)

	// Compute events
	OnComputeStart(ctx context.Context, algorithm string, vertices int)
	OnComputeComplete(ctx context.Context, algorithm string, pairs int, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementation
// =============================================================================

// NoopSolverHooks is a no-op implementation of SolverHooks.
type NoopSolverHooks struct{}

func (NoopSolverHooks) OnReadStart(context.Context, string) {}
func (NoopSolverHooks) OnReadComplete(context.Context, string, int, int, time.Duration, error) {
}
func (NoopSolverHooks) OnComputeStart(context.Context, string, int)                          {}
func (NoopSolverHooks) OnComputeComplete(context.Context, string, int, time.Duration, error) {}
func (NoopSolverHooks) OnRenderStart(context.Context, []string)                              {}
func (NoopSolverHooks) OnRenderComplete(context.Context, []string, time.Duration, error)     {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	solverHooks SolverHooks = NoopSolverHooks{}
	hooksMu     sync.RWMutex
)

// SetSolverHooks registers custom solver hooks.
// This should be called once at application startup before any run.
// A nil h is ignored.
func SetSolverHooks(h SolverHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		solverHooks = h
	}
}

// Solver returns the registered solver hooks.
func Solver() SolverHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return solverHooks
}

// Reset restores the no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	solverHooks = NoopSolverHooks{}
}
