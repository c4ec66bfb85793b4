// Package logging holds the process-wide zerolog logger.
//
// Every component writes one JSON object per line with a "ts" field, so request
// logs, migration events and startup messages can be shipped by the same collector.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu     sync.RWMutex
	logger = newLogger(os.Stdout, zerolog.InfoLevel, time.UTC)
)

func newLogger(w io.Writer, level zerolog.Level, loc *time.Location) zerolog.Logger {
	return zerolog.New(w).
		Level(level).
		Hook(tsHook{loc: loc})
}

// tsHook stamps each event in the configured location instead of zerolog's global TimeFunc.
type tsHook struct {
	loc *time.Location
}

func (h tsHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	e.Str("ts", time.Now().In(h.loc).Format(time.RFC3339Nano))
}

// Init replaces the global logger. An unknown level falls back to info.
func Init(w io.Writer, level string, loc *time.Location) {
	if w == nil {
		w = os.Stdout
	}
	if loc == nil {
		loc = time.UTC
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	mu.Lock()
	logger = newLogger(w, lvl, loc)
	mu.Unlock()
}

// New returns a standalone logger writing to w. Used where output must be captured.
func New(w io.Writer, loc *time.Location) zerolog.Logger {
	if loc == nil {
		loc = time.UTC
	}
	return newLogger(w, zerolog.DebugLevel, loc)
}

// L returns the global logger.
func L() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := logger
	return &l
}

// Component returns the global logger tagged with a component name.
func Component(name string) zerolog.Logger {
	return L().With().Str("component", name).Logger()
}
