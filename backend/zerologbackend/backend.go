// Package zerologbackend implements the facade backend on top of zerolog.
package zerologbackend

import (
	"github.com/rs/zerolog"

	"github.com/oshokin/logfacade/facade"
)

// LoggerKey is the field holding the logger name.
const LoggerKey = "logger"

// Backend hands out sinks derived from one zerolog.Logger.
type Backend struct {
	log zerolog.Logger
}

// New creates a Backend over log.
func New(log zerolog.Logger) *Backend {
	return &Backend{log: log}
}

// Sink returns a sink whose events carry the logger field.
// The root name adds no field.
//
//nolint:ireturn // facade.Sink is the backend contract.
func (b *Backend) Sink(name string) (facade.Sink, error) {
	log := b.log
	if name != "" {
		log = log.With().Str(LoggerKey, name).Logger()
	}

	return &sink{log: log}, nil
}

// ToZerologLevel maps a facade level onto zerolog.
func ToZerologLevel(l facade.Level) zerolog.Level {
	switch l {
	case facade.TraceLevel:
		return zerolog.TraceLevel
	case facade.DebugLevel:
		return zerolog.DebugLevel
	case facade.InfoLevel:
		return zerolog.InfoLevel
	case facade.WarnLevel:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

type sink struct {
	log zerolog.Logger
}

// Enabled honors both the logger level and the zerolog global level.
func (s *sink) Enabled(level facade.Level) bool {
	lvl := ToZerologLevel(level)

	return lvl >= s.log.GetLevel() && lvl >= zerolog.GlobalLevel()
}

// Write emits one event. zerolog reports writer failures through zerolog.ErrorHandler.
//
//nolint:gocritic // facade.Sink passes records by value.
func (s *sink) Write(record facade.Record) error {
	event := s.log.WithLevel(ToZerologLevel(record.Level))
	if event == nil {
		return nil
	}

	if !record.Time.IsZero() {
		event = event.Time(zerolog.TimestampFieldName, record.Time)
	}

	if record.Caller.Defined() {
		event = event.Str(zerolog.CallerFieldName, record.Caller.String())
	}

	for _, f := range record.Fields {
		event = event.Interface(f.Key, f.Value)
	}

	if record.Cause != nil {
		event = event.Err(record.Cause)
	}

	event.Msg(record.Message)

	return nil
}
