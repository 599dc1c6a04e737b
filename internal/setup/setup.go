// Package setup builds a facade factory from a validated configuration.
package setup

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/oshokin/logfacade/backend/logrusbackend"
	"github.com/oshokin/logfacade/backend/metered"
	"github.com/oshokin/logfacade/backend/slogbackend"
	"github.com/oshokin/logfacade/backend/zapbackend"
	"github.com/oshokin/logfacade/backend/zerologbackend"
	"github.com/oshokin/logfacade/facade"
	"github.com/oshokin/logfacade/internal/config"
)

// logDirPermissions is used when the log file directory has to be created.
const logDirPermissions = 0o750

// errUnknownBackend is returned for a backend name Build does not know.
var errUnknownBackend = errors.New("unknown backend")

// Cleanup flushes buffered records and releases the output.
type Cleanup func() error

// Build creates a factory for cfg. When cfg.Metrics is set the backend is
// wrapped with Prometheus counters registered with reg; a nil reg uses the
// default registerer, so a second Build with metrics and a nil reg in the
// same process fails with prometheus.AlreadyRegisteredError. The returned
// cleanup must be called before exit.
func Build(cfg *config.Config, reg prometheus.Registerer) (*facade.Factory, Cleanup, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, nil, err
	}

	// Validate has accepted the level.
	level, _ := facade.ParseLevel(cfg.Level)

	out := openOutput(cfg)

	backend, syncBackend, err := newBackend(cfg, level, out.writer)
	if err != nil {
		_ = out.close()

		return nil, nil, err
	}

	if cfg.Metrics {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}

		backend, err = metered.New(backend, reg)
		if err != nil {
			_ = out.close()

			return nil, nil, err
		}
	}

	factory, err := facade.NewFactory(backend,
		facade.WithEmptyNames(!cfg.DisallowEmptyNames),
		facade.WithInternalPackages(cfg.InternalPackages...),
	)
	if err != nil {
		_ = out.close()

		return nil, nil, err
	}

	cleanup := func() error {
		var syncErr error
		if out.file {
			syncErr = syncBackend()
		}

		return errors.Join(syncErr, out.close())
	}

	return factory, cleanup, nil
}

// newBackend creates the backend named by cfg.Backend writing to w.
// The returned function flushes buffered entries.
//
//nolint:ireturn // facade.Backend is the facade contract.
func newBackend(cfg *config.Config, level facade.Level, w io.Writer) (facade.Backend, func() error, error) {
	noSync := func() error { return nil }

	switch cfg.Backend {
	case config.BackendZap:
		return newZapBackend(cfg, level, w)
	case config.BackendSlog:
		b, err := slogbackend.New(slogbackend.NewHandler(w, cfg.Format, slogbackend.ToSlogLevel(level)))

		return b, noSync, err
	case config.BackendZerolog:
		return zerologbackend.New(newZerologLogger(cfg.Format, level, w)), noSync, nil
	case config.BackendLogrus:
		b, err := logrusbackend.New(newLogrusLogger(cfg.Format, level, w))

		return b, noSync, err
	case config.BackendNop:
		return facade.NopBackend{}, noSync, nil
	default:
		return nil, nil, fmt.Errorf("%w %q", errUnknownBackend, cfg.Backend)
	}
}

// newZapBackend creates the zap backend with the per-name level overrides of cfg.
func newZapBackend(cfg *config.Config, level facade.Level, w io.Writer) (facade.Backend, func() error, error) {
	log := zapbackend.NewLogger(zapcore.AddSync(w), cfg.Format, zap.NewAtomicLevelAt(zapbackend.ToZapLevel(level)))

	opts := make([]zapbackend.Option, 0, len(cfg.Levels))

	for prefix, name := range cfg.Levels {
		// Validate has accepted every override level.
		override, _ := facade.ParseLevel(name)
		opts = append(opts, zapbackend.WithOverride(prefix, override))
	}

	b, err := zapbackend.New(log, opts...)
	if err != nil {
		return nil, nil, err
	}

	return b, b.Sync, nil
}

// newZerologLogger creates a zerolog logger; the text format uses the console writer without colors.
func newZerologLogger(format string, level facade.Level, w io.Writer) zerolog.Logger {
	out := w
	if format != config.FormatJSON {
		out = zerolog.ConsoleWriter{Out: w, NoColor: true}
	}

	return zerolog.New(out).Level(zerologbackend.ToZerologLevel(level))
}

// newLogrusLogger creates a logrus logger writing to w.
func newLogrusLogger(format string, level facade.Level, w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(logrusbackend.ToLogrusLevel(level))

	if format == config.FormatJSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	return log
}

// output is the destination of records.
type output struct {
	writer io.Writer
	// file is set for rotated file output.
	file  bool
	close func() error
}

// openOutput selects the writer for cfg.Output.
// File output creates the directory and falls back to stderr with a warning when it can not.
func openOutput(cfg *config.Config) output {
	noClose := func() error { return nil }

	switch cfg.Output {
	case config.OutputStdout:
		return output{writer: os.Stdout, close: noClose}
	case config.OutputFile:
		dir := filepath.Dir(cfg.File.Path)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, logDirPermissions); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, //nolint:errcheck // bootstrap stderr
					"WARNING: failed to create log directory %q: %v, falling back to stderr\n", dir, err)

				return output{writer: os.Stderr, close: noClose}
			}
		}

		rotated := &lumberjack.Logger{
			Filename:   cfg.File.Path,
			MaxSize:    cfg.File.MaxSizeMB,
			MaxBackups: cfg.File.MaxBackups,
			MaxAge:     cfg.File.MaxAgeDays,
			Compress:   cfg.File.Compress,
		}

		return output{writer: rotated, file: true, close: rotated.Close}
	default:
		return output{writer: os.Stderr, close: noClose}
	}
}
