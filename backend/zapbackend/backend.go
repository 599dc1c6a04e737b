package zapbackend

import (
	"errors"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/oshokin/logfacade/facade"
)

// errLoggerIsNotSet is returned when New receives a nil logger.
var errLoggerIsNotSet = errors.New("zap logger is not set")

// Backend hands out sinks backed by named children of a base zap logger.
type Backend struct {
	// base is the root logger; sinks are its named children.
	base *zap.Logger
	// overrides hold per-name levels.
	overrides []levelOverride
}

// Option configures a Backend.
type Option func(*Backend)

// WithOverride sets the level of every logger named prefix or below it
// ("db" covers "db", "db.pool" and "db/pool"). The longest matching prefix wins.
// The empty prefix overrides the root and every name without a longer match.
func WithOverride(prefix string, level facade.Level) Option {
	return func(b *Backend) {
		b.overrides = append(b.overrides, levelOverride{
			prefix: strings.TrimSpace(prefix),
			level:  ToZapLevel(level),
		})
	}
}

// New creates a Backend over base.
func New(base *zap.Logger, opts ...Option) (*Backend, error) {
	if base == nil {
		return nil, errLoggerIsNotSet
	}

	b := &Backend{base: base}

	for _, opt := range opts {
		opt(b)
	}

	return b, nil
}

// Sink returns a sink bound to base.Named(name), applying any level override.
//
//nolint:ireturn // facade.Sink is the backend contract.
func (b *Backend) Sink(name string) (facade.Sink, error) {
	log := b.base.Named(name)

	if override, ok := b.override(name); ok {
		log = log.WithOptions(WithLevel(override.level))
	}

	return &sink{log: log}, nil
}

// Sync flushes buffered entries of the base logger.
func (b *Backend) Sync() error {
	return b.base.Sync()
}

// override returns the override with the longest prefix matching name.
func (b *Backend) override(name string) (levelOverride, bool) {
	var (
		best  levelOverride
		found bool
	)

	for _, o := range b.overrides {
		if !o.matches(name) {
			continue
		}

		if !found || len(o.prefix) > len(best.prefix) {
			best, found = o, true
		}
	}

	return best, found
}

// sink writes facade records through a zap logger.
type sink struct {
	log *zap.Logger
}

func (s *sink) Enabled(level facade.Level) bool {
	return s.log.Core().Enabled(ToZapLevel(level))
}

// Write checks the entry and replaces zap's own caller with the record's.
// zap reports its write failures to the logger's ErrorOutput.
//
//nolint:gocritic // facade.Sink passes records by value.
func (s *sink) Write(record facade.Record) error {
	ce := s.log.Check(ToZapLevel(record.Level), record.Message)
	if ce == nil {
		return nil
	}

	if !record.Time.IsZero() {
		ce.Time = record.Time
	}

	if record.Caller.Defined() {
		ce.Caller = zapcore.EntryCaller{
			Defined:  true,
			PC:       record.Caller.PC,
			File:     record.Caller.File,
			Line:     record.Caller.Line,
			Function: record.Caller.Function,
		}
	}

	fields := make([]zap.Field, 0, len(record.Fields)+1)
	for _, f := range record.Fields {
		fields = append(fields, zap.Any(f.Key, f.Value))
	}

	if record.Cause != nil {
		fields = append(fields, zap.Error(record.Cause))
	}

	ce.Write(fields...)

	return nil
}
