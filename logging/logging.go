package logging

import (
	"io"
	"os"
	"sync"

	log "github.com/sirupsen/logrus"
)

type Level = log.Level

const (
	DebugLevel = log.DebugLevel
	InfoLevel  = log.InfoLevel
	WarnLevel  = log.WarnLevel
	ErrorLevel = log.ErrorLevel
)

type Fields = log.Fields

type Logger interface {
	Debug(msg string, fields ...Fields)
	Info(msg string, fields ...Fields)
	Warn(msg string, fields ...Fields)
	Error(err error, msg string, fields ...Fields)
	WithFields(fields Fields) Logger
}

// streamHook writes entries of its levels to w. The logger's own output is
// discarded, so the hooks decide which stream a line lands on.
type streamHook struct {
	mu     sync.Mutex
	w      io.Writer
	levels []log.Level
}

func (h *streamHook) Levels() []log.Level {
	return h.levels
}

func (h *streamHook) Fire(entry *log.Entry) error {
	line, err := entry.String()
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = io.WriteString(h.w, line)
	return err
}

// configure sends debug and info to stdout, warn and above to stderr.
func configure(l *log.Logger, stdout, stderr io.Writer, level Level) {
	l.SetOutput(io.Discard)
	l.SetLevel(level)
	l.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	l.ReplaceHooks(make(log.LevelHooks))
	l.AddHook(&streamHook{w: stdout, levels: []log.Level{log.TraceLevel, log.DebugLevel, log.InfoLevel}})
	l.AddHook(&streamHook{w: stderr, levels: []log.Level{log.WarnLevel, log.ErrorLevel, log.FatalLevel, log.PanicLevel}})
}

// DefaultLogger wraps a logrus entry. Loggers derived with WithFields share
// the underlying logrus logger and so its level.
type DefaultLogger struct {
	entry *log.Entry
}

func New(stdout, stderr io.Writer, level Level) *DefaultLogger {
	l := log.New()
	configure(l, stdout, stderr, level)
	return &DefaultLogger{entry: log.NewEntry(l)}
}

func (d *DefaultLogger) SetLevel(level Level) {
	d.entry.Logger.SetLevel(level)
}

func (d *DefaultLogger) with(fields []Fields) *log.Entry {
	e := d.entry
	for _, f := range fields {
		e = e.WithFields(f)
	}
	return e
}

func (d *DefaultLogger) Debug(msg string, fields ...Fields) {
	d.with(fields).Debug(msg)
}

func (d *DefaultLogger) Info(msg string, fields ...Fields) {
	d.with(fields).Info(msg)
}

func (d *DefaultLogger) Warn(msg string, fields ...Fields) {
	d.with(fields).Warn(msg)
}

func (d *DefaultLogger) Error(err error, msg string, fields ...Fields) {
	d.with(fields).WithError(err).Error(msg)
}

func (d *DefaultLogger) WithFields(fields Fields) Logger {
	return &DefaultLogger{entry: d.entry.WithFields(fields)}
}

var discard = New(io.Discard, io.Discard, log.PanicLevel)

// NoOpLogger drops everything; the default for library callers and tests.
type NoOpLogger struct{}

func (NoOpLogger) Debug(msg string, fields ...Fields)            { discard.Debug(msg, fields...) }
func (NoOpLogger) Info(msg string, fields ...Fields)             { discard.Info(msg, fields...) }
func (NoOpLogger) Warn(msg string, fields ...Fields)             { discard.Warn(msg, fields...) }
func (NoOpLogger) Error(err error, msg string, fields ...Fields) { discard.Error(err, msg, fields...) }
func (n NoOpLogger) WithFields(fields Fields) Logger             { return n }

var global = &DefaultLogger{entry: log.NewEntry(log.StandardLogger())}

func init() {
	configure(log.StandardLogger(), os.Stdout, os.Stderr, InfoLevel)
}

// Global is backed by the logrus standard logger.
func Global() *DefaultLogger {
	return global
}

func SetLevel(level Level) {
	log.SetLevel(level)
}

func WithFields(fields Fields) Logger {
	return global.WithFields(fields)
}
