// Package stdlogbridge adapts the standard library log package to a facade handle,
// for libraries that only accept a *log.Logger.
package stdlogbridge

import (
	"log"
	"strings"

	"github.com/oshokin/logfacade/facade"
)

// PackagePath is the import path of this package.
const PackagePath = "github.com/oshokin/logfacade/bridge/stdlogbridge"

// stdlibLogPackage is skipped so records name the code calling log.Print.
const stdlibLogPackage = "log"

// writer turns each line written by a *log.Logger into one record.
type writer struct {
	handle facade.Handle
	level  facade.Level
}

// Write logs p without its trailing newline. It never fails.
func (w *writer) Write(p []byte) (int, error) {
	w.handle.Log(w.level, strings.TrimRight(string(p), "\n"))

	return len(p), nil
}

// New returns a *log.Logger writing every line through h at level.
// Prefix and flags are left empty: the backend adds time and caller.
func New(h facade.Handle, level facade.Level) *log.Logger {
	return log.New(newWriter(h, level), "", 0)
}

// Redirect sends the output of the standard library's default logger through h
// and returns a function restoring the previous output, prefix and flags.
func Redirect(h facade.Handle, level facade.Level) (restore func()) {
	var (
		output = log.Writer()
		prefix = log.Prefix()
		flags  = log.Flags()
	)

	log.SetOutput(newWriter(h, level))
	log.SetPrefix("")
	log.SetFlags(0)

	return func() {
		log.SetOutput(output)
		log.SetPrefix(prefix)
		log.SetFlags(flags)
	}
}

func newWriter(h facade.Handle, level facade.Level) *writer {
	return &writer{
		handle: facade.SkipPackages(h, PackagePath, stdlibLogPackage),
		level:  level,
	}
}
