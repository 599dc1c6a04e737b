// Package slogbackend implements the facade backend on top of log/slog.
package slogbackend

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/oshokin/logfacade/facade"
)

// Supported handler formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

const (
	// LoggerKey is the attribute holding the logger name.
	LoggerKey = "logger"
	// ErrorKey is the attribute holding the record cause.
	ErrorKey = "error"
)

// LevelTrace sits below slog.LevelDebug the same distance as debug below info.
const LevelTrace = slog.LevelDebug - 4

// errHandlerIsNotSet is returned when New receives a nil handler.
var errHandlerIsNotSet = errors.New("slog handler is not set")

// Backend hands out sinks sharing one slog.Handler.
type Backend struct {
	handler slog.Handler
}

// New creates a Backend over handler.
func New(handler slog.Handler) (*Backend, error) {
	if handler == nil {
		return nil, errHandlerIsNotSet
	}

	return &Backend{handler: handler}, nil
}

// NewHandler creates a text or JSON handler writing to w.
// AddSource is enabled so the caller resolved by the facade is printed.
//
//nolint:ireturn // slog.Handler is the slog contract.
func NewHandler(w io.Writer, format string, level slog.Leveler) slog.Handler {
	opts := &slog.HandlerOptions{
		AddSource:   true,
		Level:       level,
		ReplaceAttr: replaceLevel,
	}

	if format == FormatJSON {
		return slog.NewJSONHandler(w, opts)
	}

	return slog.NewTextHandler(w, opts)
}

// Sink returns a sink whose records carry the logger attribute.
// The root name adds no attribute.
//
//nolint:ireturn // facade.Sink is the backend contract.
func (b *Backend) Sink(name string) (facade.Sink, error) {
	handler := b.handler
	if name != "" {
		handler = handler.WithAttrs([]slog.Attr{slog.String(LoggerKey, name)})
	}

	return &sink{handler: handler}, nil
}

// ToSlogLevel maps a facade level onto slog.
func ToSlogLevel(l facade.Level) slog.Level {
	switch l {
	case facade.TraceLevel:
		return LevelTrace
	case facade.DebugLevel:
		return slog.LevelDebug
	case facade.InfoLevel:
		return slog.LevelInfo
	case facade.WarnLevel:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// replaceLevel renders LevelTrace as TRACE instead of DEBUG-4.
func replaceLevel(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}

	if level, ok := a.Value.Any().(slog.Level); ok && level == LevelTrace {
		a.Value = slog.StringValue("TRACE")
	}

	return a
}

type sink struct {
	handler slog.Handler
}

func (s *sink) Enabled(level facade.Level) bool {
	return s.handler.Enabled(context.Background(), ToSlogLevel(level))
}

// Write passes the facade caller as the record PC. Handler errors are returned unchanged.
//
//nolint:gocritic // facade.Sink passes records by value.
func (s *sink) Write(record facade.Record) error {
	r := slog.NewRecord(record.Time, ToSlogLevel(record.Level), record.Message, record.Caller.PC)

	for _, f := range record.Fields {
		r.AddAttrs(slog.Any(f.Key, f.Value))
	}

	if record.Cause != nil {
		r.AddAttrs(slog.String(ErrorKey, record.Cause.Error()))
	}

	return s.handler.Handle(context.Background(), r)
}
