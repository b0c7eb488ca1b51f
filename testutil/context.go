package testutil

import (
	"context"
	"testing"
	"time"
)

const defaultTimeout = 30 * time.Second

// Context returns a context bounded by the test's lifetime and a default
// timeout so a hung call fails instead of stalling the suite.
func Context(t *testing.T) context.Context {
	t.Helper()

	return ContextWithTimeout(t, defaultTimeout)
}

func ContextWithTimeout(t *testing.T, timeout time.Duration) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(t.Context(), timeout)
	t.Cleanup(cancel)

	return ctx
}
