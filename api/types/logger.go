package types

import (
	"os"

	"github.com/sirupsen/logrus"
)

type Logger interface {
	Printf(format string, v ...interface{})
}

// this is a safeguard, breaking on compile time in case
// `logrus.Logger` does not adhere to our `Logger` interface.
var _ Logger = &logrus.Logger{}

// DefaultLogger returns a `Logger` implementation writing text lines to stdout.
func DefaultLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return logger
}

func NewLogger(custom Logger) Logger {
	if custom != nil {
		return custom
	}

	return DefaultLogger()
}
