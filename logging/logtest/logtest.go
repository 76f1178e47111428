// Package logtest provides a logging.Logger that records entries in memory.
package logtest

import (
	"fmt"
	"maps"
	"sync"

	"github.com/a32ir/a32ir/logging"
)

// Entry is a recorded log message.
type Entry struct {
	Level   logging.Level
	Fields  map[string]any
	Message string
}

// Logger records every entry at or above its level.
type Logger struct {
	level   logging.Level
	fields  map[string]any
	entries *[]Entry
	mtx     *sync.Mutex
}

// New returns a Logger at Debug level.
func New() *Logger {
	return &Logger{level: logging.Debug, entries: &[]Entry{}, mtx: &sync.Mutex{}}
}

// WithFields implements logging.Logger.WithFields. The returned Logger
// records into the same buffer.
func (l *Logger) WithFields(fields map[string]any) logging.Logger {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	cp := *l
	cp.fields = make(map[string]any, len(l.fields)+len(fields))
	maps.Copy(cp.fields, l.fields)
	maps.Copy(cp.fields, fields)
	return &cp
}

func (l *Logger) Debug(f string, a ...any) { l.append(logging.Debug, f, a...) }
func (l *Logger) Info(f string, a ...any)  { l.append(logging.Info, f, a...) }
func (l *Logger) Warn(f string, a ...any)  { l.append(logging.Warn, f, a...) }
func (l *Logger) Error(f string, a ...any) { l.append(logging.Error, f, a...) }

func (l *Logger) SetLevel(level logging.Level) { l.level = level }
func (l *Logger) GetLevel() logging.Level      { return l.level }

// Entries returns the recorded entries.
func (l *Logger) Entries() []Entry {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	return append([]Entry(nil), *l.entries...)
}

func (l *Logger) append(level logging.Level, f string, a ...any) {
	if level > l.level {
		return
	}
	l.mtx.Lock()
	defer l.mtx.Unlock()
	*l.entries = append(*l.entries, Entry{Level: level, Fields: l.fields, Message: fmt.Sprintf(f, a...)})
}
