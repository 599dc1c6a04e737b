// Package grpclogbridge routes gRPC's internal logging through a facade handle.
//
// Records are attributed to the gRPC code that logged them: the bridge and
// grpclog packages are registered as internal on context-aware handles.
package grpclogbridge

import (
	"fmt"
	"os"
	"strings"

	"google.golang.org/grpc/grpclog"

	"github.com/oshokin/logfacade/facade"
)

// PackagePath is the import path of this package.
const PackagePath = "github.com/oshokin/logfacade/bridge/grpclogbridge"

// skippedPackages sit between gRPC call sites and the handle.
//
//nolint:gochecknoglobals // Constant list of import paths.
var skippedPackages = []string{
	PackagePath,
	"google.golang.org/grpc/grpclog",
	"google.golang.org/grpc/internal/grpclog",
}

// Logger implements grpclog.LoggerV2 over a facade handle.
type Logger struct {
	// handle receives every gRPC log line.
	handle facade.Handle
	// verbosity is the highest V level reported as enabled.
	verbosity int
	// exit terminates the process after Fatal messages.
	exit func(code int)
}

var _ grpclog.LoggerV2 = (*Logger)(nil)

// New creates a Logger writing through h. Messages gated by V(l) are enabled
// for l <= verbosity.
func New(h facade.Handle, verbosity int) *Logger {
	return &Logger{
		handle:    facade.SkipPackages(h, skippedPackages...),
		verbosity: verbosity,
		exit:      os.Exit,
	}
}

// Install makes gRPC log through h. It must be called before any gRPC
// function, as grpclog.SetLoggerV2 requires.
func Install(h facade.Handle, verbosity int) {
	grpclog.SetLoggerV2(New(h, verbosity))
}

func (l *Logger) Info(args ...any) { l.handle.Info(fmt.Sprint(args...)) }

func (l *Logger) Infoln(args ...any) { l.handle.Info(sprintln(args...)) }

func (l *Logger) Infof(format string, args ...any) { l.handle.Info(fmt.Sprintf(format, args...)) }

func (l *Logger) Warning(args ...any) { l.handle.Warn(fmt.Sprint(args...)) }

func (l *Logger) Warningln(args ...any) { l.handle.Warn(sprintln(args...)) }

func (l *Logger) Warningf(format string, args ...any) { l.handle.Warn(fmt.Sprintf(format, args...)) }

func (l *Logger) Error(args ...any) { l.handle.Error(fmt.Sprint(args...)) }

func (l *Logger) Errorln(args ...any) { l.handle.Error(sprintln(args...)) }

func (l *Logger) Errorf(format string, args ...any) { l.handle.Error(fmt.Sprintf(format, args...)) }

// Fatal logs at the error level and exits with status 1, as grpclog requires.
func (l *Logger) Fatal(args ...any) {
	l.handle.Error(fmt.Sprint(args...))
	l.exit(1)
}

// Fatalln logs at the error level and exits with status 1.
func (l *Logger) Fatalln(args ...any) {
	l.handle.Error(sprintln(args...))
	l.exit(1)
}

// Fatalf logs at the error level and exits with status 1.
func (l *Logger) Fatalf(format string, args ...any) {
	l.handle.Error(fmt.Sprintf(format, args...))
	l.exit(1)
}

// V reports whether verbosity level v is enabled.
func (l *Logger) V(v int) bool {
	return v <= l.verbosity
}

// sprintln is fmt.Sprintln without the trailing newline.
func sprintln(args ...any) string {
	return strings.TrimSuffix(fmt.Sprintln(args...), "\n")
}
