// Package tracelog wraps log/slog with the simulator's own verbosity
// level, mirroring the teacher's core.Trace helper.
package tracelog

import (
	"context"
	"log/slog"
	"os"
)

// LevelTrace sits below Info and above Debug: enough detail to replay
// a scenario from logs without drowning in per-tick chatter at the
// default level.
const LevelTrace slog.Level = slog.LevelInfo - 2

var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

// SetLogger replaces the default logger, e.g. to redirect to a file or
// to inject a test-capturing handler.
func SetLogger(l *slog.Logger) {
	logger = l
}

// Trace logs at LevelTrace.
func Trace(msg string, args ...any) {
	logger.Log(context.Background(), LevelTrace, msg, args...)
}

// Warn logs a reported-not-fatal error (§7): a malformed command or a
// dropped event, logged and then forgotten.
func Warn(msg string, args ...any) {
	logger.Warn(msg, args...)
}

// Fatal logs an internal invariant violation (§7) immediately before
// the core loop exits.
func Fatal(msg string, args ...any) {
	logger.Error(msg, args...)
}
