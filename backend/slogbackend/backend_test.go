package slogbackend

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/logfacade/facade"
	"github.com/oshokin/logfacade/facade/facadetest"
)

// TestNew_NilHandler verifies a nil handler is rejected.
func TestNew_NilHandler(t *testing.T) {
	t.Parallel()

	b, err := New(nil)
	require.Error(t, err)
	require.Nil(t, b)
}

// TestJSON_RecordShape checks name, level, cause, fields and source of a JSON record.
func TestJSON_RecordShape(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	backend, err := New(NewHandler(&buf, FormatJSON, LevelTrace))
	require.NoError(t, err)

	f, err := facade.NewFactory(backend)
	require.NoError(t, err)

	h, err := f.ContextAwareLogger("payments")
	require.NoError(t, err)

	h.With(facade.F("attempt", 2)).Trace("retrying", errors.New("timeout"))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "TRACE", line[slog.LevelKey])
	require.Equal(t, "payments", line[LoggerKey])
	require.Equal(t, "retrying", line[slog.MessageKey])
	require.Equal(t, "timeout", line[ErrorKey])
	require.InDelta(t, 2, line["attempt"], 0)

	source, ok := line[slog.SourceKey].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "github.com/oshokin/logfacade/backend/slogbackend.TestJSON_RecordShape", source["function"])
}

// logThroughInlinedRelay is the application frame behind an inlined wrapper.
//
//go:noinline
func logThroughInlinedRelay(h facade.Handle, msg string) {
	facadetest.RelayInlined(h, msg)
}

// TestJSON_SourceSkipsInlinedWrapper ensures the source names the application
// frame when the skipped wrapper was inlined into it.
func TestJSON_SourceSkipsInlinedWrapper(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	backend, err := New(NewHandler(&buf, FormatJSON, slog.LevelInfo))
	require.NoError(t, err)

	f, err := facade.NewFactory(backend, facade.WithInternalPackages(facadetest.PackagePath))
	require.NoError(t, err)

	h, err := f.ContextAwareLogger("payments")
	require.NoError(t, err)

	logThroughInlinedRelay(h, "settled")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))

	source, ok := line[slog.SourceKey].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "github.com/oshokin/logfacade/backend/slogbackend.logThroughInlinedRelay", source["function"])

	file, _ := source["file"].(string)
	require.True(t, strings.HasSuffix(file, "backend_test.go"), file)
}

// TestText_RootAndLevels verifies the root logger adds no name and levels are filtered.
func TestText_RootAndLevels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	backend, err := New(NewHandler(&buf, FormatText, slog.LevelInfo))
	require.NoError(t, err)

	sink, err := backend.Sink("")
	require.NoError(t, err)

	require.False(t, sink.Enabled(facade.DebugLevel))
	require.True(t, sink.Enabled(facade.WarnLevel))

	require.NoError(t, sink.Write(facade.Record{Level: facade.WarnLevel, Message: "root"}))

	out := buf.String()
	require.Contains(t, out, "level=WARN")
	require.Contains(t, out, "msg=root")
	require.False(t, strings.Contains(out, LoggerKey+"="))
}
