package facade

import (
	"fmt"
	"os"
	"reflect"
)

const (
	// StatusLoggerName is the name of the handle the facade reports its own diagnostics to.
	StatusLoggerName = "logfacade"
	// UnknownCaller is bound by CallerLogger when the calling package cannot be determined.
	UnknownCaller = "unknown"
)

// Factory hands out handles backed by a Backend.
// A Factory is immutable and safe for concurrent use.
type Factory struct {
	// backend performs formatting and output.
	backend Backend
	// allowEmptyNames permits the empty (root) name in Logger.
	allowEmptyNames bool
	// caller enables caller capture for plain handles.
	caller bool
	// internal lists wrapper packages skipped by context-aware handles.
	internal packageSet
	// onWriteError receives backend write failures.
	onWriteError func(error)
}

// Option configures a Factory.
type Option func(*Factory)

// WithEmptyNames controls whether Logger accepts the empty name. Allowed by default.
func WithEmptyNames(allowed bool) Option {
	return func(f *Factory) {
		f.allowEmptyNames = allowed
	}
}

// WithInternalPackages registers wrapper packages that context-aware handles
// skip while looking for the calling frame.
func WithInternalPackages(pkgs ...string) Option {
	return func(f *Factory) {
		f.internal = f.internal.with(pkgs...)
	}
}

// WithCaller toggles caller capture for plain handles. Enabled by default.
func WithCaller(enabled bool) Option {
	return func(f *Factory) {
		f.caller = enabled
	}
}

// WithWriteErrorHandler sets the function receiving backend write failures.
// The error is passed unchanged.
func WithWriteErrorHandler(handler func(error)) Option {
	return func(f *Factory) {
		if handler != nil {
			f.onWriteError = handler
		}
	}
}

// NewFactory creates a Factory over backend.
func NewFactory(backend Backend, opts ...Option) (*Factory, error) {
	if backend == nil {
		return nil, errNilBackend
	}

	f := &Factory{
		backend:         backend,
		allowEmptyNames: true,
		caller:          true,
		onWriteError:    reportWriteError,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

// Logger returns a plain handle bound to name.
// Backend failures are returned unchanged.
//
//nolint:ireturn // Handle is the public capability.
func (f *Factory) Logger(name string) (Handle, error) {
	if name == "" && !f.allowEmptyNames {
		return nil, errEmptyName
	}

	return f.plain(name)
}

// LoggerFor returns a plain handle named after the fully qualified name of t.
//
//nolint:ireturn // Handle is the public capability.
func (f *Factory) LoggerFor(t reflect.Type) (Handle, error) {
	if t == nil {
		return nil, errNilType
	}

	return f.plain(TypeName(t))
}

// LoggerOf returns a plain handle named after the dynamic type of v.
//
//nolint:ireturn // Handle is the public capability.
func (f *Factory) LoggerOf(v any) (Handle, error) {
	if v == nil {
		return nil, errNilType
	}

	return f.plain(TypeName(reflect.TypeOf(v)))
}

// Default returns the root handle. It is the same as Logger("") but is
// accepted even when empty names are disallowed.
//
//nolint:ireturn // Handle is the public capability.
func (f *Factory) Default() (Handle, error) {
	return f.plain("")
}

// CallerLogger returns a plain handle named after the package of the code
// calling it. When the package cannot be determined the handle is bound to
// UnknownCaller and a warning goes to the status logger.
//
//nolint:ireturn // Handle is the public capability.
func (f *Factory) CallerLogger() (Handle, error) {
	frame, found := locateCaller(f.internal)
	if found {
		return f.plain(funcPackage(frame.Function))
	}

	status, err := f.plain(StatusLoggerName)
	if err != nil {
		return nil, err
	}

	status.Warn("Unable to determine calling package, using fallback logger name " + UnknownCaller)

	return f.plain(UnknownCaller)
}

// ContextAwareLogger returns a handle bound to name that attributes each
// record to the first frame outside the facade and internal packages.
//
//nolint:ireturn // Handle is the public capability.
func (f *Factory) ContextAwareLogger(name string) (Handle, error) {
	if name == "" && !f.allowEmptyNames {
		return nil, errEmptyName
	}

	return f.contextAware(name)
}

// ContextAwareLoggerFor is the type-based form of ContextAwareLogger.
//
//nolint:ireturn // Handle is the public capability.
func (f *Factory) ContextAwareLoggerFor(t reflect.Type) (Handle, error) {
	if t == nil {
		return nil, errNilType
	}

	return f.contextAware(TypeName(t))
}

// For returns a plain handle named after T.
//
//nolint:ireturn // Handle is the public capability.
func For[T any](f *Factory) (Handle, error) {
	return f.LoggerFor(reflect.TypeFor[T]())
}

//nolint:ireturn // Returning the interface keeps failed lookups a true nil.
func (f *Factory) plain(name string) (Handle, error) {
	sink, err := f.backend.Sink(name)
	if err != nil {
		return nil, err
	}

	return &plainHandle{
		core:   f.core(name, sink),
		caller: f.caller,
	}, nil
}

//nolint:ireturn // Returning the interface keeps failed lookups a true nil.
func (f *Factory) contextAware(name string) (Handle, error) {
	sink, err := f.backend.Sink(name)
	if err != nil {
		return nil, err
	}

	return &contextAwareHandle{
		core:     f.core(name, sink),
		internal: f.internal,
	}, nil
}

func (f *Factory) core(name string, sink Sink) core {
	return core{
		name:         name,
		sink:         sink,
		onWriteError: f.onWriteError,
	}
}

// TypeName returns the fully qualified name used for type-based handles.
// Pointer types resolve to their element type; unnamed types use their
// reflect string form. A recursive pointer type such as `type P *P`
// stops at the first named type seen twice.
func TypeName(t reflect.Type) string {
	seen := make(map[reflect.Type]struct{})

	for t.Kind() == reflect.Pointer {
		if _, ok := seen[t]; ok {
			break
		}

		seen[t] = struct{}{}
		t = t.Elem()
	}

	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}

	return t.String()
}

// reportWriteError is the default write error handler.
func reportWriteError(err error) {
	_, _ = fmt.Fprintf(os.Stderr, "logfacade: write failed: %v\n", err)
}
