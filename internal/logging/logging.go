package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var base = newBase()

func newBase() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.WarnLevel)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return l
}

// NewLogger returns a logger entry tagged with the given component name
func NewLogger(component string) *logrus.Entry {
	return base.WithField("component", component)
}

// SetLevel sets the level of all component loggers. Unknown names fall back to warn.
func SetLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.WarnLevel
	}
	base.SetLevel(lvl)
	return lvl
}

// SetOutput redirects all component loggers
func SetOutput(w io.Writer) {
	base.SetOutput(w)
}

// Discard returns a logger entry that drops everything
func Discard() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}
