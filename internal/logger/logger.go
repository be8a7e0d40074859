// Package logger provides charmbracelet/log loggers for the command-line
// tools and routes the libraries' schuko tracing through them.
package logger

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/npillmayer/schuko/tracing"
)

// New creates a charm log writing to stderr, leaving stdout to tool output.
func New(prefix string) *log.Logger {
	return NewWithConfig(os.Stderr, prefix, log.GetLevel(), false)
}

// NewWithConfig creates a charm log with custom config
func NewWithConfig(w io.Writer, prefix string, level log.Level, showTimestamp bool) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    false,
		ReportTimestamp: showTimestamp,
		Formatter:       log.TextFormatter,
	})
}

// InstallTracing makes tracing.Select hand out tracers which log to base,
// prefixed with the trace key.
func InstallTracing(base *log.Logger, level tracing.TraceLevel) {
	tracing.SetTraceSelector(&selector{
		base:   base,
		level:  level,
		traces: make(map[string]*trace),
	})
}

type selector struct {
	mu     sync.Mutex
	base   *log.Logger
	level  tracing.TraceLevel
	traces map[string]*trace
}

func (sel *selector) Select(key string) tracing.Trace {
	sel.mu.Lock()
	defer sel.mu.Unlock()
	t, ok := sel.traces[key]
	if !ok {
		t = &trace{l: sel.base.WithPrefix(key)}
		t.SetTraceLevel(sel.level)
		sel.traces[key] = t
	}
	return t
}

// trace adapts a charm logger to tracing.Trace.
type trace struct {
	l     *log.Logger
	level tracing.TraceLevel
}

func (t *trace) Errorf(msg string, args ...interface{}) { t.l.Errorf(msg, args...) }
func (t *trace) Infof(msg string, args ...interface{})  { t.l.Infof(msg, args...) }
func (t *trace) Debugf(msg string, args ...interface{}) { t.l.Debugf(msg, args...) }

func (t *trace) P(key string, value interface{}) tracing.Trace {
	return &trace{l: t.l.With(key, value), level: t.level}
}

func (t *trace) SetTraceLevel(level tracing.TraceLevel) {
	t.level = level
	switch level {
	case tracing.LevelDebug:
		t.l.SetLevel(log.DebugLevel)
	case tracing.LevelInfo:
		t.l.SetLevel(log.InfoLevel)
	default:
		t.l.SetLevel(log.ErrorLevel)
	}
}

func (t *trace) GetTraceLevel() tracing.TraceLevel { return t.level }

func (t *trace) SetOutput(w io.Writer) { t.l.SetOutput(w) }

// Setup sets the global log level, creates the tool's logger and routes
// library tracing through it at the matching level.
func Setup(prefix string, level log.Level) *log.Logger {
	log.SetLevel(level)
	l := New(prefix)
	traceLevel := tracing.LevelError
	switch {
	case level <= log.DebugLevel:
		traceLevel = tracing.LevelDebug
	case level <= log.InfoLevel:
		traceLevel = tracing.LevelInfo
	}
	InstallTracing(l, traceLevel)
	return l
}
