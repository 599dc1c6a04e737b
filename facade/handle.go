package facade

import (
	"context"
	"errors"
	"time"
)

// Handle is a leveled writer bound to a logger name.
//
// Each write method accepts optional causes; several causes are joined with
// errors.Join and nil causes are dropped.
//
// Write methods return nothing. A backend write failure never reaches the
// caller: it goes to the handler set with WithWriteErrorHandler.
type Handle interface {
	// Name returns the name the handle was requested with.
	Name() string
	// Enabled reports whether the backend would write records of the level.
	Enabled(level Level) bool

	Trace(msg string, cause ...error)
	Debug(msg string, cause ...error)
	Info(msg string, cause ...error)
	Warn(msg string, cause ...error)
	Error(msg string, cause ...error)

	// Log writes msg at an arbitrary level.
	Log(level Level, msg string, cause ...error)

	// ErrorCause writes err at the error level using err.Error() as the message.
	// A nil err writes nothing.
	ErrorCause(err error)

	// With returns a handle of the same variant carrying additional fields.
	With(fields ...Field) Handle
	// WithContext returns a handle carrying the trace and span IDs found in ctx.
	WithContext(ctx context.Context) Handle
}

// core holds what both handle variants share.
type core struct {
	// name is the requested logger name.
	name string
	// sink is the backend sink bound to name.
	sink Sink
	// fields are attached to every record.
	fields []Field
	// onWriteError receives sink write failures.
	onWriteError func(error)
}

// Name returns the bound logger name.
func (c *core) Name() string {
	return c.name
}

// Enabled delegates to the sink.
func (c *core) Enabled(level Level) bool {
	return c.sink.Enabled(level)
}

// emit builds the record and hands it to the sink.
func (c *core) emit(level Level, msg string, cause error, caller Frame) {
	record := Record{
		Time:       time.Now(),
		Level:      level,
		LoggerName: c.name,
		Message:    msg,
		Cause:      cause,
		Caller:     caller,
		Fields:     c.fields,
	}

	if err := c.sink.Write(record); err != nil {
		c.onWriteError(err)
	}
}

// withFields returns a copy of c with fields appended without aliasing.
func (c *core) withFields(fields []Field) core {
	merged := make([]Field, 0, len(c.fields)+len(fields))
	merged = append(merged, c.fields...)
	merged = append(merged, fields...)

	cloned := *c
	cloned.fields = merged

	return cloned
}

// plainHandle reports the immediate caller of its write methods.
type plainHandle struct {
	core

	// caller enables caller capture.
	caller bool
}

func (h *plainHandle) Trace(msg string, cause ...error) { h.log(TraceLevel, msg, cause) }

func (h *plainHandle) Debug(msg string, cause ...error) { h.log(DebugLevel, msg, cause) }

func (h *plainHandle) Info(msg string, cause ...error) { h.log(InfoLevel, msg, cause) }

func (h *plainHandle) Warn(msg string, cause ...error) { h.log(WarnLevel, msg, cause) }

func (h *plainHandle) Error(msg string, cause ...error) { h.log(ErrorLevel, msg, cause) }

func (h *plainHandle) Log(level Level, msg string, cause ...error) { h.log(level, msg, cause) }

func (h *plainHandle) ErrorCause(err error) {
	if err == nil {
		return
	}

	h.log(ErrorLevel, err.Error(), []error{err})
}

func (h *plainHandle) With(fields ...Field) Handle {
	return &plainHandle{core: h.withFields(fields), caller: h.caller}
}

func (h *plainHandle) WithContext(ctx context.Context) Handle {
	return h.With(traceFields(ctx)...)
}

// log must be called directly from the exported write methods:
// the caller frame is taken at a fixed depth.
func (h *plainHandle) log(level Level, msg string, causes []error) {
	if !h.sink.Enabled(level) {
		return
	}

	var caller Frame
	if h.caller {
		// 0 is log, 1 the write method, 2 its caller.
		caller = callerAt(2)
	}

	h.emit(level, msg, joinCauses(causes), caller)
}

// contextAwareHandle resolves the caller on every write by walking the stack
// past the facade and the registered internal packages.
type contextAwareHandle struct {
	core

	// internal lists wrapper packages skipped by attribution.
	internal packageSet
}

func (h *contextAwareHandle) Trace(msg string, cause ...error) { h.log(TraceLevel, msg, cause) }

func (h *contextAwareHandle) Debug(msg string, cause ...error) { h.log(DebugLevel, msg, cause) }

func (h *contextAwareHandle) Info(msg string, cause ...error) { h.log(InfoLevel, msg, cause) }

func (h *contextAwareHandle) Warn(msg string, cause ...error) { h.log(WarnLevel, msg, cause) }

func (h *contextAwareHandle) Error(msg string, cause ...error) { h.log(ErrorLevel, msg, cause) }

func (h *contextAwareHandle) Log(level Level, msg string, cause ...error) { h.log(level, msg, cause) }

func (h *contextAwareHandle) ErrorCause(err error) {
	if err == nil {
		return
	}

	h.log(ErrorLevel, err.Error(), []error{err})
}

func (h *contextAwareHandle) With(fields ...Field) Handle {
	return &contextAwareHandle{core: h.withFields(fields), internal: h.internal}
}

func (h *contextAwareHandle) WithContext(ctx context.Context) Handle {
	return h.With(traceFields(ctx)...)
}

func (h *contextAwareHandle) log(level Level, msg string, causes []error) {
	if !h.sink.Enabled(level) {
		return
	}

	// A miss falls back to the nearest frame outside the facade.
	caller, _ := locateCaller(h.internal)

	h.emit(level, msg, joinCauses(causes), caller)
}

// SkipPackages returns a context-aware handle that also treats pkgs as
// internal. Plain handles are returned unchanged.
//
//nolint:ireturn // Handle is the public capability.
func SkipPackages(h Handle, pkgs ...string) Handle {
	aware, ok := h.(*contextAwareHandle)
	if !ok {
		return h
	}

	return &contextAwareHandle{core: aware.core, internal: aware.internal.with(pkgs...)}
}

// joinCauses collapses the optional causes of a write method.
func joinCauses(causes []error) error {
	switch len(causes) {
	case 0:
		return nil
	case 1:
		return causes[0]
	default:
		return errors.Join(causes...)
	}
}
