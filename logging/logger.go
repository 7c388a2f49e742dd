package logging

import (
	"io"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// Logger is the structured logging interface used throughout the planner. It is a subset of
// *zap.SugaredLogger, kept as an interface so the orchestrator can be constructed with a fake
// in tests without pulling in zap's concrete type everywhere.
type Logger interface {
	Debug(args ...interface{})
	Debugf(template string, args ...interface{})
	Debugw(msg string, keysAndValues ...interface{})
	Info(args ...interface{})
	Infof(template string, args ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warn(args ...interface{})
	Warnf(template string, args ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Error(args ...interface{})
	Errorf(template string, args ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
	Named(name string) Logger
	Sync() error
}

type zapLogger struct {
	*zap.SugaredLogger
}

func (l *zapLogger) Named(name string) Logger {
	return &zapLogger{l.SugaredLogger.Named(name)}
}

// globalLogger is used only by NewFileAppender to report a failure to rotate the log file; it
// is never used for planner-cycle logging, which always goes through an explicit Logger.
var globalLogger Logger = NewDevelopmentLogger("corelattice")

// appenderCore adapts one or more Appenders to the zapcore.Core interface, so a Logger can be
// built directly on top of the Appender abstraction instead of zap's own encoder/sink pairing.
type appenderCore struct {
	appenders []Appender
	level     zapcore.LevelEnabler
	fields    []zapcore.Field
}

// newAppenderCore builds a zapcore.Core that fans every log entry out to each of appenders.
func newAppenderCore(level zapcore.LevelEnabler, appenders ...Appender) zapcore.Core {
	return &appenderCore{appenders: appenders, level: level}
}

func (c *appenderCore) Enabled(lvl zapcore.Level) bool { return c.level.Enabled(lvl) }

func (c *appenderCore) With(fields []zapcore.Field) zapcore.Core {
	merged := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	merged = append(merged, c.fields...)
	merged = append(merged, fields...)
	return &appenderCore{appenders: c.appenders, level: c.level, fields: merged}
}

func (c *appenderCore) Check(entry zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return ce.AddCore(entry, c)
	}
	return ce
}

func (c *appenderCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	all := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	all = append(all, c.fields...)
	all = append(all, fields...)
	var err error
	for _, a := range c.appenders {
		if writeErr := a.Write(entry, all); writeErr != nil {
			err = writeErr
		}
	}
	return err
}

func (c *appenderCore) Sync() error {
	var err error
	for _, a := range c.appenders {
		if syncErr := a.Sync(); syncErr != nil {
			err = syncErr
		}
	}
	return err
}

// NewDevelopmentLogger returns a human-readable, debug-level Logger suitable for local runs and
// for embedding a default into an orchestrator that was not given one explicitly. It writes
// through a ConsoleAppender over stdout.
func NewDevelopmentLogger(name string) Logger {
	core := newAppenderCore(zapcore.DebugLevel, NewStdoutAppender())
	zl := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.Development())
	return &zapLogger{zl.Sugar().Named(name)}
}

// NewFileLogger returns a Logger that writes through the rotating appender NewFileAppender opens
// at filename, plus
// the io.Closer the caller must close at shutdown to release the open file handle.
func NewFileLogger(name, filename string) (Logger, io.Closer) {
	appender, closer := NewFileAppender(filename)
	core := newAppenderCore(zapcore.InfoLevel, appender)
	zl := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	return &zapLogger{zl.Sugar().Named(name)}, closer
}

// NewTestLogger returns a debug-level Logger that writes every entry, at any level, through
// tb.Log. It never marks the test as failed.
func NewTestLogger(tb testing.TB) Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(testWriter{tb}),
		zapcore.DebugLevel,
	)
	return &zapLogger{zap.New(core).Sugar().Named(tb.Name())}
}

// NewObservedLogger returns a Logger together with the zaptest/observer sink backing it, so
// tests can assert on which structured fields a component emitted without parsing log text.
func NewObservedLogger() (Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &zapLogger{zap.New(core).Sugar()}, logs
}

type testWriter struct {
	tb testing.TB
}

func (w testWriter) Write(p []byte) (int, error) {
	w.tb.Log(string(p))
	return len(p), nil
}
