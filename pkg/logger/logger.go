package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Config controls log output for the process.
type Config struct {
	Level  string
	Format string // "json" or "text"
}

// Logger is a thin wrapper around a logrus entry so call sites stay
// decoupled from the underlying library.
type Logger struct {
	*logrus.Entry
}

// New builds a logger from configuration.
func New(cfg Config) *Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)

	switch strings.ToLower(cfg.Format) {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	return &Logger{Entry: logrus.NewEntry(l)}
}

// NewDefault returns an info-level text logger tagged with the service name.
func NewDefault(service string) *Logger {
	log := New(Config{Level: "info", Format: "text"})
	return log.Named(service)
}

// Named returns a copy of the logger tagged with a service field.
func (l *Logger) Named(service string) *Logger {
	return &Logger{Entry: l.Entry.WithField("service", service)}
}
