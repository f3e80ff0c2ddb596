package log

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level names a logging severity. It is a plain string so callers can
// carry it through configuration structs.
type Level string

const (
	DebugLevel Level = "debug"
	InfoLevel  Level = "info"
	WarnLevel  Level = "warn"
	ErrorLevel Level = "error"
)

var (
	mu     sync.RWMutex
	logger = newDefault()
)

func newDefault() *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		l = zap.NewNop()
	}
	return l.Sugar()
}

// SetLogger replaces the package logger. Pass nil to silence all output.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		logger = zap.NewNop().Sugar()
		return
	}
	logger = l.WithOptions(zap.AddCallerSkip(1)).Sugar()
}

// Log emits msg at the given level. err may be nil. keysAndValues are
// alternating key/value structured fields, sugar style. Unknown levels
// log at info.
func Log(level Level, msg string, err error, keysAndValues ...interface{}) {
	mu.RLock()
	l := logger
	mu.RUnlock()

	if err != nil {
		keysAndValues = append(keysAndValues, "error", err)
	}

	switch level {
	case DebugLevel:
		l.Debugw(msg, keysAndValues...)
	case WarnLevel:
		l.Warnw(msg, keysAndValues...)
	case ErrorLevel:
		l.Errorw(msg, keysAndValues...)
	default:
		l.Infow(msg, keysAndValues...)
	}
}

func Debug(msg string, err error, keysAndValues ...interface{}) {
	Log(DebugLevel, msg, err, keysAndValues...)
}

func Info(msg string, err error, keysAndValues ...interface{}) {
	Log(InfoLevel, msg, err, keysAndValues...)
}

func Warn(msg string, err error, keysAndValues ...interface{}) {
	Log(WarnLevel, msg, err, keysAndValues...)
}

func Error(msg string, err error, keysAndValues ...interface{}) {
	Log(ErrorLevel, msg, err, keysAndValues...)
}
