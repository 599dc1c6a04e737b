package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/logfacade/facade"
	"github.com/oshokin/logfacade/internal/config"
)

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)

	err := root.Execute()

	return out.String(), err
}

// writeConfig stores a zap JSON file configuration and returns its path and log path.
func writeConfig(t *testing.T) (string, string) {
	t.Helper()

	dir := t.TempDir()

	cfg := config.Default()
	cfg.Format = config.FormatJSON
	cfg.Level = "debug"
	cfg.Output = config.OutputFile
	cfg.File.Path = filepath.Join(dir, "app.log")

	path := filepath.Join(dir, "logfacade.yaml")
	require.NoError(t, config.Save(path, cfg))

	return path, cfg.File.Path
}

// readFile returns the contents of path.
func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(data)
}

// TestConfigInitAndShow writes the defaults and prints them back.
func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logfacade.yaml")

	out, err := execute(t, "config", "init", path)
	require.NoError(t, err)
	require.Contains(t, out, path)

	_, err = execute(t, "config", "init", path)
	require.ErrorIs(t, err, errConfigExists)

	_, err = execute(t, "config", "init", "--force", path)
	require.NoError(t, err)

	out, err = execute(t, "--config", path, "config", "show")
	require.NoError(t, err)
	require.Contains(t, out, "backend: zap")
	require.Contains(t, out, "format: console")
}

// TestEmit_Named writes a formatted record with a cause under the given name.
func TestEmit_Named(t *testing.T) {
	cfgPath, logPath := writeConfig(t)

	_, err := execute(t, "--config", cfgPath, "emit",
		"--name", "orders", "--level", "warn", "--cause", "stock exhausted", "--arg", "42",
		"order", "#1", "rejected")
	require.NoError(t, err)

	out := readFile(t, logPath)
	require.Contains(t, out, `"message":"order 42 rejected"`)
	require.Contains(t, out, `"level":"WARN"`)
	require.Contains(t, out, `"logger":"orders"`)
	require.Contains(t, out, `"error":"stock exhausted"`)
	require.Contains(t, out, "emit.go")
}

// TestEmit_RestoresGlobalAndRepeatsWithMetrics runs emit twice with metrics in one
// process and checks the global factory is put back after each run.
func TestEmit_RestoresGlobalAndRepeatsWithMetrics(t *testing.T) {
	dir := t.TempDir()

	cfg := config.Default()
	cfg.Format = config.FormatJSON
	cfg.Output = config.OutputFile
	cfg.File.Path = filepath.Join(dir, "app.log")
	cfg.Metrics = true

	cfgPath := filepath.Join(dir, "logfacade.yaml")
	require.NoError(t, config.Save(cfgPath, cfg))

	before := facade.Global()

	_, err := execute(t, "--config", cfgPath, "emit", "--name", "jobs", "first")
	require.NoError(t, err)
	require.Same(t, before, facade.Global())

	_, err = execute(t, "--config", cfgPath, "emit", "--name", "jobs", "second")
	require.NoError(t, err)
	require.Same(t, before, facade.Global())

	out := readFile(t, cfg.File.Path)
	require.Contains(t, out, `"message":"first"`)
	require.Contains(t, out, `"message":"second"`)
}

// TestEmit_TypeName names the logger after the request type.
func TestEmit_TypeName(t *testing.T) {
	cfgPath, logPath := writeConfig(t)

	_, err := execute(t, "--config", cfgPath, "emit", "--type-name", "--attributed", "typed")
	require.NoError(t, err)

	out := readFile(t, logPath)
	require.Contains(t, out, `"logger":"github.com/oshokin/logfacade/cmd/logfacade/cmd.emitRequest"`)
	require.Contains(t, out, `"message":"typed"`)
}

// TestEmit_Rejects reports invalid flag combinations.
func TestEmit_Rejects(t *testing.T) {
	cfgPath, _ := writeConfig(t)

	_, err := execute(t, "--config", cfgPath, "emit", "--name", "a", "--type-name", "both")
	require.ErrorIs(t, err, errConflictingNames)

	_, err = execute(t, "--config", cfgPath, "emit", "--level", "loud", "noise")
	require.ErrorIs(t, err, errUnknownLevel)

	_, err = execute(t, "--config", filepath.Join(t.TempDir(), "absent.yaml"), "emit", "lost")
	require.Error(t, err)

	_, err = execute(t, "emit")
	require.Error(t, err)
}
