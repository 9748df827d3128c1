package logging

import (
	"io"
	"os"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// LogEntry is the JSON shape of a single log line.
type LogEntry struct {
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

// Logger writes JSON lines through a zap core. Fields attached with WithField
// are nested under "fields" together with per-call fields.
type Logger struct {
	out    io.Writer
	level  zap.AtomicLevel
	fields map[string]interface{}
	zl     *zap.Logger
}

var Default = New()

func New() *Logger {
	l := &Logger{
		out:   os.Stdout,
		level: zap.NewAtomicLevelAt(zapcore.InfoLevel),
	}
	l.build()
	return l
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		MessageKey:     "message",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    logLevelEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
}

// logLevelEncoder maps zap levels onto the four Level names.
func logLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	switch l {
	case zapcore.DebugLevel:
		enc.AppendString(LevelDebug.String())
	case zapcore.InfoLevel:
		enc.AppendString(LevelInfo.String())
	case zapcore.WarnLevel:
		enc.AppendString(LevelWarn.String())
	default:
		enc.AppendString(LevelError.String())
	}
}

func (l *Logger) build() {
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig()),
		zapcore.Lock(zapcore.AddSync(l.out)),
		l.level,
	)
	l.zl = zap.New(core)
}

func (l *Logger) SetOutput(w io.Writer) *Logger {
	l.out = w
	l.build()
	return l
}

func (l *Logger) SetLevel(level Level) *Logger {
	l.level.SetLevel(level.zapLevel())
	return l
}

// WithField returns a child logger that adds key to every entry.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	fields := make(map[string]interface{}, len(l.fields)+1)
	for k, v := range l.fields {
		fields[k] = v
	}
	fields[key] = value
	return &Logger{
		out:    l.out,
		level:  l.level,
		fields: fields,
		zl:     l.zl,
	}
}

func (l *Logger) Debug(msg string, fields ...map[string]interface{}) {
	l.log(LevelDebug, msg, fields)
}

func (l *Logger) Info(msg string, fields ...map[string]interface{}) {
	l.log(LevelInfo, msg, fields)
}

func (l *Logger) Warn(msg string, fields ...map[string]interface{}) {
	l.log(LevelWarn, msg, fields)
}

func (l *Logger) Error(msg string, fields ...map[string]interface{}) {
	l.log(LevelError, msg, fields)
}

func (l *Logger) log(level Level, msg string, extra []map[string]interface{}) {
	ce := l.zl.Check(level.zapLevel(), msg)
	if ce == nil {
		return
	}

	merged := make(map[string]interface{}, len(l.fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for _, m := range extra {
		for k, v := range m {
			merged[k] = v
		}
	}
	if len(merged) == 0 {
		ce.Write()
		return
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	zfields := make([]zap.Field, 0, len(keys)+1)
	zfields = append(zfields, zap.Namespace("fields"))
	for _, k := range keys {
		zfields = append(zfields, zap.Any(k, merged[k]))
	}
	ce.Write(zfields...)
}

func SetDefaultLevel(level Level) {
	Default.SetLevel(level)
}

func Debug(msg string, fields ...map[string]interface{}) {
	Default.Debug(msg, fields...)
}

func Info(msg string, fields ...map[string]interface{}) {
	Default.Info(msg, fields...)
}

func Warn(msg string, fields ...map[string]interface{}) {
	Default.Warn(msg, fields...)
}

func Error(msg string, fields ...map[string]interface{}) {
	Default.Error(msg, fields...)
}
