package util

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler(t *testing.T) {
	defer SetDebugMode(false)

	SetDebugMode(false)
	msg := ErrorHandler(errors.New("token unavailable"))
	assert.Contains(t, msg, "token unavailable")
	assert.Contains(t, msg, "--debug")

	SetDebugMode(true)
	msg = ErrorHandler(errors.Wrap(errors.New("boom"), "load failed"))
	assert.Contains(t, msg, "load failed")
	assert.Contains(t, msg, "boom")
	assert.NotContains(t, msg, "--debug")

	assert.Empty(t, ErrorHandler(nil))
}

func TestDebugOnlyLogsInDebugMode(t *testing.T) {
	defer SetDebugMode(false)

	var buf bytes.Buffer
	SetDebugMode(false)
	InitLoggerTo(&buf)
	Debug("hidden", "key", "value")
	assert.NotContains(t, buf.String(), "hidden")

	buf.Reset()
	SetDebugMode(true)
	InitLoggerTo(&buf)
	Debug("visible", "key", "value")
	assert.Contains(t, buf.String(), "visible")
}

func TestInfoAndErrorAlwaysLog(t *testing.T) {
	defer SetDebugMode(false)

	var buf bytes.Buffer
	SetDebugMode(false)
	InitLoggerTo(&buf)
	Info("Serving API", "addr", ":3000")
	Error("Request failed", "status", 502)
	Warn("Search source unavailable")

	out := buf.String()
	assert.Contains(t, out, "Serving API")
	assert.Contains(t, out, ":3000")
	assert.Contains(t, out, "Request failed")
	assert.Contains(t, out, "502")
	assert.Contains(t, out, "Search source unavailable")
}

func TestSharedClientIsReused(t *testing.T) {
	assert.Same(t, GetSharedClient(), GetSharedClient())
}

func TestSharedClientHasNoClientTimeout(t *testing.T) {
	// a client-wide timeout would cut off the 60s and 120s API calls
	assert.Zero(t, GetSharedClient().Timeout)
}

func TestWithRequestTimeout(t *testing.T) {
	ctx, cancel := WithRequestTimeout(context.Background(), 0)
	defer cancel()
	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(DefaultRequestTimeout), deadline, 2*time.Second)

	ctx, cancel = WithRequestTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	deadline, ok = ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(2*time.Minute), deadline, 2*time.Second)
}
