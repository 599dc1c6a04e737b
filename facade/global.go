package facade

import (
	"reflect"
	"sync/atomic"
)

// global is the process-wide factory used by the package-level functions.
//
//nolint:gochecknoglobals // The default factory is shared by the whole process.
var global atomic.Pointer[Factory]

func init() { //nolint:gochecknoinits // Package functions must work before SetGlobal is called.
	f, _ := NewFactory(NopBackend{})
	global.Store(f)
}

// Global returns the process-wide factory. It discards everything until
// SetGlobal installs a real one.
func Global() *Factory {
	return global.Load()
}

// SetGlobal replaces the process-wide factory. A nil factory is ignored.
func SetGlobal(f *Factory) {
	if f != nil {
		global.Store(f)
	}
}

// GetLogger returns a plain handle from the global factory.
//
//nolint:ireturn // Handle is the public capability.
func GetLogger(name string) (Handle, error) {
	return Global().Logger(name)
}

// GetLoggerFor returns a type-based plain handle from the global factory.
//
//nolint:ireturn // Handle is the public capability.
func GetLoggerFor(t reflect.Type) (Handle, error) {
	return Global().LoggerFor(t)
}

// GetDefaultLogger returns the root handle of the global factory.
//
//nolint:ireturn // Handle is the public capability.
func GetDefaultLogger() (Handle, error) {
	return Global().Default()
}

// GetContextAwareLogger returns a context-aware handle from the global factory.
//
//nolint:ireturn // Handle is the public capability.
func GetContextAwareLogger(name string) (Handle, error) {
	return Global().ContextAwareLogger(name)
}
