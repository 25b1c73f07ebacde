// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog.Logger with the constructors and
// context helpers used by the config server, the config client and the sync
// protocol.
//
// The Logger type embeds zerolog.Logger so all standard zerolog methods
// (Debug, Info, Warn, Error, Fatal, etc.) are available directly on *Logger.
// Components receive *Logger by pointer; request-scoped loggers are obtained
// via FromContext or FromRequest.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is a thin wrapper around zerolog.Logger.
type Logger struct {
	zerolog.Logger
}

func configureGlobals(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.DebugLevel
	}

	zerolog.SetGlobalLevel(lvl)
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"
}

func newLogger(w io.Writer, role string) *Logger {
	logger := zerolog.New(w).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{logger}
}

// NewLogger constructs a JSON *Logger writing to os.Stdout for the given
// role label (e.g. "config-server"). Every entry carries "role", a
// timestamp and a "func" caller field with the fully-qualified function
// name. The global level is Debug.
func NewLogger(role string) *Logger {
	return NewLeveledLogger(role, "")
}

// NewLeveledLogger is [NewLogger] with an explicit global level
// ("debug", "info", "warn", ...). An empty or unknown level means debug.
func NewLeveledLogger(role, level string) *Logger {
	configureGlobals(level)
	return newLogger(os.Stdout, role)
}

// NewClientLogger writes to a "logs" file next to the executable, keeping
// stdout free for the interactive client. It falls back to stdout when the
// file cannot be opened.
func NewClientLogger(role string) *Logger {
	configureGlobals("")

	var w io.Writer = os.Stdout
	if execPath, err := os.Executable(); err == nil {
		logPath := filepath.Join(filepath.Dir(execPath), "logs")
		if logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644); err == nil {
			w = logFile
		}
	}

	return newLogger(w, role)
}

// Nop returns a *Logger that discards all output. Intended for tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a new *Logger inheriting all fields of the receiver.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// WithModule returns a child logger tagged with a config module identifier.
func (l *Logger) WithModule(moduleID string) *Logger {
	return &Logger{l.With().Str("module_id", moduleID).Logger()}
}

// WithPeer returns a child logger tagged with a sync peer identifier.
func (l *Logger) WithPeer(peerID string) *Logger {
	return &Logger{l.With().Str("peer_id", peerID).Logger()}
}

// FromRequest returns the logger attached to the request context by the
// trace-id middleware.
func FromRequest(r *http.Request) *Logger {
	return &Logger{*log.Ctx(r.Context())}
}

// FromContext returns the logger attached to ctx. If none is attached,
// zerolog's default logger is returned, so the result is never nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
