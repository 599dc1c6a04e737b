package zapbackend

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/oshokin/logfacade/facade"
)

// Supported encoder formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// TraceLevel is the zap level used for facade.TraceLevel.
const TraceLevel = zapcore.DebugLevel - 1

// EncoderConfig returns the encoder configuration shared by both formats.
// Colors are only used by the console format.
func EncoderConfig(format string) zapcore.EncoderConfig {
	levelEncoder := capitalColorLevelEncoder
	if format == FormatJSON {
		levelEncoder = capitalLevelEncoder
	}

	//nolint:exhaustruct // I'm okay with default encoder configuration values.
	return zapcore.EncoderConfig{
		TimeKey:          "time",
		MessageKey:       "message",
		LevelKey:         "level",
		NameKey:          "logger",
		CallerKey:        "caller",
		FunctionKey:      zapcore.OmitKey,
		StacktraceKey:    "stacktrace",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      levelEncoder,
		EncodeTime:       zapcore.ISO8601TimeEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		EncodeCaller:     zapcore.ShortCallerEncoder,
		EncodeName:       zapcore.FullNameEncoder,
		ConsoleSeparator: ", ",
	}
}

// NewLogger creates a *zap.Logger writing to ws in the given format.
// If the level is not provided, info is used.
func NewLogger(ws zapcore.WriteSyncer, format string, level zapcore.LevelEnabler, options ...zap.Option) *zap.Logger {
	if level == nil {
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	var encoder zapcore.Encoder
	if format == FormatJSON {
		encoder = zapcore.NewJSONEncoder(EncoderConfig(format))
	} else {
		encoder = zapcore.NewConsoleEncoder(EncoderConfig(format))
	}

	return zap.New(zapcore.NewCore(encoder, ws, level), options...)
}

// ToZapLevel maps a facade level onto zap.
func ToZapLevel(l facade.Level) zapcore.Level {
	switch l {
	case facade.TraceLevel:
		return TraceLevel
	case facade.DebugLevel:
		return zapcore.DebugLevel
	case facade.InfoLevel:
		return zapcore.InfoLevel
	case facade.WarnLevel:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

// capitalLevelEncoder extends zapcore.CapitalLevelEncoder with TRACE.
func capitalLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	if l == TraceLevel {
		enc.AppendString("TRACE")

		return
	}

	zapcore.CapitalLevelEncoder(l, enc)
}

// capitalColorLevelEncoder extends zapcore.CapitalColorLevelEncoder with TRACE.
func capitalColorLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	if l == TraceLevel {
		// Same color zap uses for debug.
		enc.AppendString("\x1b[35mTRACE\x1b[0m")

		return
	}

	zapcore.CapitalColorLevelEncoder(l, enc)
}

// levelOverride binds a level to every logger name starting with prefix.
type levelOverride struct {
	prefix string
	level  zapcore.Level
}

// matches reports whether name is prefix itself or a dotted or slashed child of it.
func (o levelOverride) matches(name string) bool {
	if o.prefix == "" || name == o.prefix {
		return true
	}

	if !strings.HasPrefix(name, o.prefix) {
		return false
	}

	next := name[len(o.prefix)]

	return next == '.' || next == '/'
}
