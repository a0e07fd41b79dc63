package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// Setup configures the shared logger for the given environment and level
func Setup(env, level string) {
	log.SetOutput(os.Stdout)
	if env == "production" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
}

// L returns the shared logger
func L() *logrus.Logger {
	return log
}

// WithFields starts an entry with structured fields
func WithFields(fields logrus.Fields) *logrus.Entry {
	return log.WithFields(fields)
}
