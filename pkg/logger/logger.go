// Package logger provides the process-wide structured logger.
package logger

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// L is the shared logger instance. It is safe for concurrent use.
var L = logrus.New()

func init() {
	L.Formatter = &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
		},
		TimestampFormat: time.RFC3339Nano,
	}
	L.Out = os.Stdout
}

// Init adjusts the logger for the given environment.
func Init(environment string) {
	if environment == "development" {
		L.SetLevel(logrus.DebugLevel)
		return
	}
	L.SetLevel(logrus.InfoLevel)
}
