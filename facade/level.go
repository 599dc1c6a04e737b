package facade

import (
	"strconv"
	"strings"
)

// Level is the severity of a log record.
type Level int8

const (
	// TraceLevel is the most verbose level, used to follow execution flow.
	TraceLevel Level = iota - 2
	// DebugLevel is used for detailed diagnostics.
	DebugLevel
	// InfoLevel is the default level for significant events.
	InfoLevel
	// WarnLevel is used for recoverable issues.
	WarnLevel
	// ErrorLevel is used for failures that need attention.
	ErrorLevel
)

// String returns the lowercase name of the level.
func (l Level) String() string {
	switch l {
	case TraceLevel:
		return "trace"
	case DebugLevel:
		return "debug"
	case InfoLevel:
		return "info"
	case WarnLevel:
		return "warn"
	case ErrorLevel:
		return "error"
	default:
		return "level(" + strconv.Itoa(int(l)) + ")"
	}
}

// ParseLevel converts a textual level into a Level.
// Unknown values return InfoLevel and false.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return TraceLevel, true
	case "debug":
		return DebugLevel, true
	case "info":
		return InfoLevel, true
	case "warn", "warning":
		return WarnLevel, true
	case "error", "err":
		return ErrorLevel, true
	default:
		return InfoLevel, false
	}
}
