package logger

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// New builds a logrus logger from LOG_LEVEL / LOG_FORMAT settings.
func New(level, format string) *logrus.Logger {
	log := logrus.New()

	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	if strings.EqualFold(format, "json") {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return log
}
