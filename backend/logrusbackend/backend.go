// Package logrusbackend implements the facade backend on top of logrus.
package logrusbackend

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oshokin/logfacade/facade"
)

const (
	// LoggerKey is the field holding the logger name.
	LoggerKey = "logger"
	// CallerKey is the field holding the caller resolved by the facade.
	CallerKey = "caller"
)

// errLoggerIsNotSet is returned when New receives a nil logger.
var errLoggerIsNotSet = errors.New("logrus logger is not set")

// Backend hands out sinks sharing one *logrus.Logger.
type Backend struct {
	log *logrus.Logger
}

// New creates a Backend over log.
// logrus caller reporting is left to the facade: ReportCaller would name this package.
func New(log *logrus.Logger) (*Backend, error) {
	if log == nil {
		return nil, errLoggerIsNotSet
	}

	return &Backend{log: log}, nil
}

// Sink returns a sink whose entries carry the logger field.
// The root name adds no field.
//
//nolint:ireturn // facade.Sink is the backend contract.
func (b *Backend) Sink(name string) (facade.Sink, error) {
	entry := logrus.NewEntry(b.log)
	if name != "" {
		entry = entry.WithField(LoggerKey, name)
	}

	return &sink{entry: entry}, nil
}

// ToLogrusLevel maps a facade level onto logrus.
func ToLogrusLevel(l facade.Level) logrus.Level {
	switch l {
	case facade.TraceLevel:
		return logrus.TraceLevel
	case facade.DebugLevel:
		return logrus.DebugLevel
	case facade.InfoLevel:
		return logrus.InfoLevel
	case facade.WarnLevel:
		return logrus.WarnLevel
	default:
		return logrus.ErrorLevel
	}
}

type sink struct {
	entry *logrus.Entry
}

func (s *sink) Enabled(level facade.Level) bool {
	return s.entry.Logger.IsLevelEnabled(ToLogrusLevel(level))
}

// Write logs one entry. logrus reports writer failures on stderr itself.
//
//nolint:gocritic // facade.Sink passes records by value.
func (s *sink) Write(record facade.Record) error {
	level := ToLogrusLevel(record.Level)
	if !s.entry.Logger.IsLevelEnabled(level) {
		return nil
	}

	fields := make(logrus.Fields, len(record.Fields)+1)
	for _, f := range record.Fields {
		fields[f.Key] = f.Value
	}

	if record.Caller.Defined() {
		fields[CallerKey] = record.Caller.String()
	}

	entry := s.entry.WithFields(fields)

	if !record.Time.IsZero() {
		entry = entry.WithTime(record.Time)
	}

	if record.Cause != nil {
		entry = entry.WithError(record.Cause)
	}

	entry.Log(level, record.Message)

	return nil
}
