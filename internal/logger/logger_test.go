package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	return m
}

func TestLogger_ContextFieldsAreAttached(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{ServiceName: "storefront", Level: zerolog.InfoLevel, Output: &buf})

	ctx := l.WithRequestID(context.Background(), "req-1")
	ctx = l.WithSessionID(ctx, "sess-1")
	l.Info(ctx, "hello")

	m := decodeLine(t, &buf)
	assert.Equal(t, "storefront", m["service"])
	assert.Equal(t, "req-1", m["request_id"])
	assert.Equal(t, "sess-1", m["session_id"])
	assert.Equal(t, "hello", m["message"])
	assert.Equal(t, "info", m["level"])
}

func TestLogger_ErrorIncludesErr(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{ServiceName: "storefront", Output: &buf})

	l.Error(context.Background(), "checkout.failed", errors.New("boom"))

	m := decodeLine(t, &buf)
	assert.Equal(t, "error", m["level"])
	assert.Equal(t, "boom", m["error"])
}

func TestLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{ServiceName: "storefront", Level: zerolog.WarnLevel, Output: &buf})

	l.Info(context.Background(), "dropped")
	assert.Equal(t, 0, buf.Len())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel(" DEBUG "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("nope"))
}
