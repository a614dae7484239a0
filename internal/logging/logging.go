package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"
)

const ringSize = 20

// Logger is a per-service logger handed to each store explicitly; there is
// no package-level singleton, so tests and multi-tenant embedders can run
// isolated instances side by side. The most recent entries are kept in a
// bounded ring for diagnostics screens.
type Logger struct {
	service string
	out     *log.Logger

	mu   sync.Mutex
	ring []string
}

func New(service string, w io.Writer) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return &Logger{
		service: service,
		out:     log.New(w, "", log.LstdFlags),
	}
}

// Named returns a logger sharing this logger's output but tagged with a
// different service name. The debug ring is not shared.
func (l *Logger) Named(service string) *Logger {
	return &Logger{service: service, out: l.out}
}

func (l *Logger) Printf(format string, args ...interface{}) {
	l.record(fmt.Sprintf(format, args...))
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.record("WARN " + fmt.Sprintf(format, args...))
}

func (l *Logger) record(msg string) {
	l.out.Printf("[%s] %s", l.service, msg)
	entry := fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), msg)
	l.mu.Lock()
	l.ring = append(l.ring, entry)
	if len(l.ring) > ringSize {
		l.ring = l.ring[1:]
	}
	l.mu.Unlock()
}

// DebugLog returns a copy of the recent entries, oldest first.
func (l *Logger) DebugLog() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.ring))
	copy(out, l.ring)
	return out
}

// Discard returns a logger that keeps its debug ring but writes nothing,
// for tests that assert on behavior rather than output.
func Discard(service string) *Logger {
	return New(service, io.Discard)
}
