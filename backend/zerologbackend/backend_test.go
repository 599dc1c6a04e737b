package zerologbackend

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/logfacade/facade"
)

// TestSink_EventShape checks name, level, caller, fields and cause of an event.
func TestSink_EventShape(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	f, err := facade.NewFactory(New(zerolog.New(&buf).Level(zerolog.TraceLevel)))
	require.NoError(t, err)

	h, err := f.Logger("queue")
	require.NoError(t, err)

	h.With(facade.F("depth", 7)).Warn("backlog", errors.New("slow consumer"))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "warn", line[zerolog.LevelFieldName])
	require.Equal(t, "queue", line[LoggerKey])
	require.Equal(t, "backlog", line[zerolog.MessageFieldName])
	require.Equal(t, "slow consumer", line[zerolog.ErrorFieldName])
	require.InDelta(t, 7, line["depth"], 0)
	require.Contains(t, line[zerolog.CallerFieldName], "backend_test.go:")
}

// TestSink_Enabled verifies the logger level filters records.
func TestSink_Enabled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	backend := New(zerolog.New(&buf).Level(zerolog.WarnLevel))

	sink, err := backend.Sink("")
	require.NoError(t, err)

	require.False(t, sink.Enabled(facade.InfoLevel))
	require.True(t, sink.Enabled(facade.ErrorLevel))

	require.NoError(t, sink.Write(facade.Record{Level: facade.InfoLevel, Message: "dropped"}))
	require.Empty(t, buf.String())

	require.NoError(t, sink.Write(facade.Record{Level: facade.ErrorLevel, Message: "kept"}))
	require.Contains(t, buf.String(), `"message":"kept"`)
	require.NotContains(t, buf.String(), LoggerKey)
}

// TestToZerologLevel verifies the level mapping.
func TestToZerologLevel(t *testing.T) {
	t.Parallel()

	require.Equal(t, zerolog.TraceLevel, ToZerologLevel(facade.TraceLevel))
	require.Equal(t, zerolog.InfoLevel, ToZerologLevel(facade.InfoLevel))
	require.Equal(t, zerolog.ErrorLevel, ToZerologLevel(facade.ErrorLevel))
}
