package facade

// Sink is a leveled writer bound to one logger name by a Backend.
type Sink interface {
	// Enabled reports whether records of the level would be written.
	Enabled(level Level) bool
	// Write emits the record. Errors come from the backend's sinks.
	Write(record Record) error
}

// Backend is the logging implementation behind the facade.
// Implementations must be safe for concurrent use.
type Backend interface {
	// Sink returns a sink bound to name. The empty name is the root logger.
	Sink(name string) (Sink, error)
}

// NopBackend discards every record.
type NopBackend struct{}

// Sink returns a sink that is never enabled.
func (NopBackend) Sink(string) (Sink, error) {
	return nopSink{}, nil
}

type nopSink struct{}

func (nopSink) Enabled(Level) bool { return false }

func (nopSink) Write(Record) error { return nil }
