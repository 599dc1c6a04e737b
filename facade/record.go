package facade

import (
	"strconv"
	"time"
)

// Field is a key-value pair attached to every record written by a handle.
type Field struct {
	// Key is the field name.
	Key string
	// Value is the field value, rendered by the backend.
	Value any
}

// F builds a Field.
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Frame identifies the code location that originated a log call.
type Frame struct {
	// Function is the fully qualified function name, e.g. "example.com/app.(*Server).Run".
	Function string
	// File is the absolute source file path.
	File string
	// Line is the source line number.
	Line int
	// PC is the return address of the call as reported by runtime.Callers,
	// the form slog.NewRecord expects.
	PC uintptr
}

// Defined reports whether the frame carries a location.
func (f Frame) Defined() bool {
	return f.PC != 0 || f.File != ""
}

// String renders the frame as "file:line".
func (f Frame) String() string {
	if !f.Defined() {
		return "undefined"
	}

	return f.File + ":" + strconv.Itoa(f.Line)
}

// Record is a single log event handed to a Sink.
type Record struct {
	// Time is when the handle method was called.
	Time time.Time
	// Level is the record severity.
	Level Level
	// LoggerName is the name the handle was bound to.
	LoggerName string
	// Message is the log message.
	Message string
	// Cause is the optional error attached to the record.
	Cause error
	// Caller is the originating frame, zero when caller capture is off.
	Caller Frame
	// Fields are the handle fields in the order they were added.
	Fields []Field
}
