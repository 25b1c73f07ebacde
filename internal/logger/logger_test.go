// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captured(t *testing.T, l *Logger) (*Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return &Logger{l.Output(&buf)}, &buf
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestNewLogger_Fields(t *testing.T) {
	l, buf := captured(t, NewLogger("config-server"))

	l.Info().Msg("hello")

	entry := lastEntry(t, buf)
	assert.Equal(t, "config-server", entry["role"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry, "func")
	assert.Equal(t, "func", zerolog.CallerFieldName)
}

func TestNewLeveledLogger_Level(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"warn", zerolog.WarnLevel},
		{"info", zerolog.InfoLevel},
		{"", zerolog.DebugLevel},
		{"shouting", zerolog.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			NewLeveledLogger("test", tt.level)
			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}

	NewLogger("test")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)
	// Output keeps the nop level
	l.Info().Msg("discarded")

	assert.Empty(t, buf.String())
}

func TestChildLoggers(t *testing.T) {
	l, buf := captured(t, NewLogger("config-client"))

	child := l.GetChildLogger()
	assert.NotSame(t, l, child)
	child.Info().Msg("child")
	assert.Equal(t, "config-client", lastEntry(t, buf)["role"])

	l.WithModule("example").Info().Msg("module")
	entry := lastEntry(t, buf)
	assert.Equal(t, "example", entry["module_id"])
	assert.Equal(t, "config-client", entry["role"])

	l.WithPeer("peer-1").Info().Msg("peer")
	assert.Equal(t, "peer-1", lastEntry(t, buf)["peer_id"])
}

func TestFromContext(t *testing.T) {
	require.NotNil(t, FromContext(context.Background()))

	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("trace_id", "abc").Logger()

	FromContext(zl.WithContext(context.Background())).Info().Msg("from context")
	assert.Equal(t, "abc", lastEntry(t, &buf)["trace_id"])
}

func TestFromRequest(t *testing.T) {
	require.NotNil(t, FromRequest(httptest.NewRequest(http.MethodGet, "/", nil)))

	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("trace_id", "xyz").Logger()
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(zl.WithContext(context.Background()))

	FromRequest(req).Info().Msg("from request")
	assert.Equal(t, "xyz", lastEntry(t, &buf)["trace_id"])
}
