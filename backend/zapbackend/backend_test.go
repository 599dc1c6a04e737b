package zapbackend

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/oshokin/logfacade/facade"
)

func observedFactory(t *testing.T, level zapcore.Level, opts ...Option) (*facade.Factory, *observer.ObservedLogs) {
	t.Helper()

	core, logs := observer.New(level)

	backend, err := New(zap.New(core), opts...)
	require.NoError(t, err)

	f, err := facade.NewFactory(backend)
	require.NoError(t, err)

	return f, logs
}

// TestNew_NilLogger verifies a nil base logger is rejected.
func TestNew_NilLogger(t *testing.T) {
	t.Parallel()

	b, err := New(nil)
	require.Error(t, err)
	require.Nil(t, b)
}

// TestSink_NamesCauseAndFields checks logger names, fields and causes reach zap.
func TestSink_NamesCauseAndFields(t *testing.T) {
	t.Parallel()

	f, logs := observedFactory(t, zapcore.InfoLevel)

	h, err := f.Logger("billing")
	require.NoError(t, err)

	h.With(facade.F("invoice", 42)).Error("charge failed", errors.New("card declined"))

	root, err := f.Default()
	require.NoError(t, err)
	root.Info("root")

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)

	require.Equal(t, "billing", entries[0].LoggerName)
	require.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	require.Equal(t, "charge failed", entries[0].Message)
	require.Equal(t, map[string]any{"invoice": int64(42), "error": "card declined"}, entries[0].ContextMap())

	require.Empty(t, entries[1].LoggerName)
}

// TestSink_InjectsFacadeCaller ensures the caller resolved by the facade replaces zap's.
func TestSink_InjectsFacadeCaller(t *testing.T) {
	t.Parallel()

	f, logs := observedFactory(t, zapcore.InfoLevel)

	h, err := f.ContextAwareLogger("aware")
	require.NoError(t, err)

	h.Info("where")

	entries := logs.All()
	require.Len(t, entries, 1)
	require.True(t, entries[0].Caller.Defined)
	require.Equal(t, "github.com/oshokin/logfacade/backend/zapbackend.TestSink_InjectsFacadeCaller", entries[0].Caller.Function)
	require.Contains(t, entries[0].Caller.File, "backend_test.go")
}

// TestSink_Enabled verifies level checks are delegated to the core.
func TestSink_Enabled(t *testing.T) {
	t.Parallel()

	f, logs := observedFactory(t, zapcore.WarnLevel)

	h, err := f.Logger("quiet")
	require.NoError(t, err)

	require.False(t, h.Enabled(facade.InfoLevel))
	require.True(t, h.Enabled(facade.WarnLevel))

	h.Info("dropped")
	h.Warn("kept")

	require.Equal(t, 1, logs.Len())
}

// TestOverrides checks prefix overrides raise and lower levels, longest prefix first.
func TestOverrides(t *testing.T) {
	t.Parallel()

	f, logs := observedFactory(t, zapcore.InfoLevel,
		WithOverride("db", facade.ErrorLevel),
		WithOverride("db.migrations", facade.DebugLevel),
		WithOverride("http", facade.TraceLevel),
	)

	cases := []struct {
		name    string
		level   facade.Level
		enabled bool
	}{
		{name: "db", level: facade.WarnLevel, enabled: false},
		{name: "db.pool", level: facade.WarnLevel, enabled: false},
		{name: "db/pool", level: facade.ErrorLevel, enabled: true},
		{name: "db.migrations", level: facade.DebugLevel, enabled: true},
		{name: "dbx", level: facade.InfoLevel, enabled: true},
		{name: "http.router", level: facade.TraceLevel, enabled: true},
		{name: "other", level: facade.DebugLevel, enabled: false},
	}

	for _, tc := range cases {
		h, err := f.Logger(tc.name)
		require.NoError(t, err)
		require.Equal(t, tc.enabled, h.Enabled(tc.level), tc.name)
	}

	h, err := f.Logger("http.router")
	require.NoError(t, err)
	h.Trace("lowered below the core level")

	entries := logs.AllUntimed()
	require.Len(t, entries, 1)
	require.Equal(t, TraceLevel, entries[0].Level)
}

// TestNewLogger_JSONTrace encodes a trace entry and checks the level name and logger key.
func TestNewLogger_JSONTrace(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	base := NewLogger(zapcore.AddSync(&buf), FormatJSON, zap.NewAtomicLevelAt(TraceLevel))

	backend, err := New(base)
	require.NoError(t, err)

	f, err := facade.NewFactory(backend)
	require.NoError(t, err)

	h, err := f.Logger("tracer")
	require.NoError(t, err)

	h.Trace("step")
	require.NoError(t, backend.Sync())

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "TRACE", line["level"])
	require.Equal(t, "tracer", line["logger"])
	require.Equal(t, "step", line["message"])
	require.Contains(t, line["caller"], "zapbackend/backend_test.go:")
}

// TestNewLogger_Console checks the console encoder output and the default level.
func TestNewLogger_Console(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	base := NewLogger(zapcore.AddSync(&buf), FormatConsole, nil)

	backend, err := New(base)
	require.NoError(t, err)

	sink, err := backend.Sink("console")
	require.NoError(t, err)
	require.False(t, sink.Enabled(facade.DebugLevel))

	require.NoError(t, sink.Write(facade.Record{Level: facade.InfoLevel, Message: "hello"}))
	require.Contains(t, buf.String(), "console, hello")
}

// TestToZapLevel verifies the level mapping.
func TestToZapLevel(t *testing.T) {
	t.Parallel()

	cases := map[facade.Level]zapcore.Level{
		facade.TraceLevel: TraceLevel,
		facade.DebugLevel: zapcore.DebugLevel,
		facade.InfoLevel:  zapcore.InfoLevel,
		facade.WarnLevel:  zapcore.WarnLevel,
		facade.ErrorLevel: zapcore.ErrorLevel,
	}
	for in, want := range cases {
		require.Equal(t, want, ToZapLevel(in))
	}
}
