package stdlogbridge_test

import (
	"log"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/logfacade/bridge/stdlogbridge"
	"github.com/oshokin/logfacade/facade"
	"github.com/oshokin/logfacade/facade/facadetest"
)

const testPackage = stdlogbridge.PackagePath + "_test"

func newHandle(t *testing.T) (facade.Handle, *facadetest.Backend) {
	t.Helper()

	spy := facadetest.NewBackend()

	f, err := facade.NewFactory(spy)
	require.NoError(t, err)

	h, err := f.ContextAwareLogger("stdlog")
	require.NoError(t, err)

	return h, spy
}

// TestNew_WritesLines checks each printed line becomes one record attributed to the printer.
func TestNew_WritesLines(t *testing.T) {
	t.Parallel()

	h, spy := newHandle(t)

	logger := stdlogbridge.New(h, facade.WarnLevel)
	logger.Println("disk", "almost", "full")
	logger.Printf("retry %d", 2)

	records := spy.Records()
	require.Len(t, records, 2)
	require.Equal(t, "disk almost full", records[0].Message)
	require.Equal(t, facade.WarnLevel, records[0].Level)
	require.Equal(t, "retry 2", records[1].Message)
	require.Equal(t, testPackage+".TestNew_WritesLines", records[0].Caller.Function)
}

// TestRedirect verifies the default logger is redirected and restored.
//
//nolint:paralleltest // Mutates the standard library's default logger.
func TestRedirect(t *testing.T) {
	h, spy := newHandle(t)

	flags := log.Flags()

	restore := stdlogbridge.Redirect(h, facade.InfoLevel)
	log.Print("through the facade")
	restore()

	require.Equal(t, flags, log.Flags())

	records := spy.Records()
	require.Len(t, records, 1)
	require.Equal(t, "through the facade", records[0].Message)
	require.Equal(t, testPackage+".TestRedirect", records[0].Caller.Function)
}
