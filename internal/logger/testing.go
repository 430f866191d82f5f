package logger

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// TestContext creates a context carrying a logger that records entries for
// assertions. The returned ObservedLogs exposes what was logged.
func TestContext() (context.Context, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return ContextWithLogger(context.Background(), zap.New(core)), logs
}

// NopContext creates a context with a no-op logger
func NopContext() context.Context {
	return ContextWithLogger(context.Background(), zap.NewNop())
}
