// Package logging is the leveled, structured logger used by the translator
// and the CLI. The standard implementation writes through logrus.
package logging

import (
	"io"
	"maps"

	"github.com/sirupsen/logrus"
)

// Level is a log level.
type Level uint8

const (
	// Error is for failures the caller must act on.
	Error Level = iota
	// Warn is for recoverable problems.
	Warn
	// Info is the default level.
	Info
	// Debug traces every rejected encoding.
	Debug
)

// String implements fmt.Stringer.
func (l Level) String() string {
	switch l {
	case Error:
		return "error"
	case Warn:
		return "warn"
	case Info:
		return "info"
	case Debug:
		return "debug"
	}
	return "unknown"
}

// Logger is the logging interface the rest of the module depends on.
type Logger interface {
	Debug(fmt string, a ...any)
	Info(fmt string, a ...any)
	Warn(fmt string, a ...any)
	Error(fmt string, a ...any)

	// WithFields returns a Logger that adds fields to every entry.
	WithFields(fields map[string]any) Logger

	GetLevel() Level
	SetLevel(Level)
}

// StandardLogger is the logrus backed Logger.
type StandardLogger struct {
	logger *logrus.Logger
	fields map[string]any
}

// New returns a StandardLogger writing to stderr at Info level.
func New() *StandardLogger {
	return &StandardLogger{logger: logrus.New()}
}

// SetOutput sets the destination of log entries.
func (l *StandardLogger) SetOutput(w io.Writer) {
	l.logger.SetOutput(w)
}

// SetFormatter sets the entry formatter, see GetFormatter.
func (l *StandardLogger) SetFormatter(formatter logrus.Formatter) {
	l.logger.SetFormatter(formatter)
}

// WithFields implements Logger.WithFields.
func (l *StandardLogger) WithFields(fields map[string]any) Logger {
	cp := *l
	cp.fields = make(map[string]any, len(l.fields)+len(fields))
	maps.Copy(cp.fields, l.fields)
	maps.Copy(cp.fields, fields)
	return &cp
}

func (l *StandardLogger) entry() *logrus.Entry {
	return l.logger.WithFields(l.fields)
}

// SetLevel implements Logger.SetLevel.
func (l *StandardLogger) SetLevel(level Level) {
	var lvl logrus.Level
	switch level {
	case Error:
		lvl = logrus.ErrorLevel
	case Warn:
		lvl = logrus.WarnLevel
	case Info:
		lvl = logrus.InfoLevel
	case Debug:
		lvl = logrus.DebugLevel
	default:
		l.Warn("unknown log level %v", level)
		return
	}
	l.logger.SetLevel(lvl)
}

// GetLevel implements Logger.GetLevel.
func (l *StandardLogger) GetLevel() Level {
	switch l.logger.Level {
	case logrus.DebugLevel, logrus.TraceLevel:
		return Debug
	case logrus.InfoLevel:
		return Info
	case logrus.WarnLevel:
		return Warn
	}
	return Error
}

// Debug implements Logger.Debug.
func (l *StandardLogger) Debug(fmt string, a ...any) {
	if len(a) == 0 {
		l.entry().Debug(fmt)
		return
	}
	l.entry().Debugf(fmt, a...)
}

// Info implements Logger.Info.
func (l *StandardLogger) Info(fmt string, a ...any) {
	if len(a) == 0 {
		l.entry().Info(fmt)
		return
	}
	l.entry().Infof(fmt, a...)
}

// Warn implements Logger.Warn.
func (l *StandardLogger) Warn(fmt string, a ...any) {
	if len(a) == 0 {
		l.entry().Warn(fmt)
		return
	}
	l.entry().Warnf(fmt, a...)
}

// Error implements Logger.Error.
func (l *StandardLogger) Error(fmt string, a ...any) {
	if len(a) == 0 {
		l.entry().Error(fmt)
		return
	}
	l.entry().Errorf(fmt, a...)
}

// NoOpLogger discards everything.
type NoOpLogger struct {
	level Level
}

// NewNoOpLogger returns a NoOpLogger.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{level: Info}
}

// WithFields implements Logger.WithFields.
func (l *NoOpLogger) WithFields(map[string]any) Logger { return l }

// Debug implements Logger.Debug.
func (*NoOpLogger) Debug(string, ...any) {}

// Info implements Logger.Info.
func (*NoOpLogger) Info(string, ...any) {}

// Warn implements Logger.Warn.
func (*NoOpLogger) Warn(string, ...any) {}

// Error implements Logger.Error.
func (*NoOpLogger) Error(string, ...any) {}

// SetLevel implements Logger.SetLevel.
func (l *NoOpLogger) SetLevel(level Level) { l.level = level }

// GetLevel implements Logger.GetLevel.
func (l *NoOpLogger) GetLevel() Level { return l.level }
