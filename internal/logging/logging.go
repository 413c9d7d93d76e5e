// Package logging wraps a package-global zap logger the same way
// internal/config keeps a package-global settings struct: a single
// accessor, guarded against concurrent Init, used by the world facade
// and the demo command.
package logging

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu     sync.RWMutex
	global *zap.SugaredLogger
)

func init() {
	l, err := zap.NewProduction()
	if err != nil {
		l = zap.NewNop()
	}
	global = l.Sugar()
}

// Init replaces the global logger, e.g. with a development config for
// the demo command. Safe to call before any worker pool starts.
func Init(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	global = l.Sugar()
}

// L returns the current global logger.
func L() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// Sync flushes buffered log entries; call on shutdown.
func Sync() {
	_ = L().Sync()
}
