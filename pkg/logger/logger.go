package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the application-wide logger. It is usable before Init with
// logrus defaults so packages can log from tests.
var Log = logrus.New()

// Init configures the global logger from the environment.
// It must be called once from main before anything else logs.
func Init(out io.Writer) {
	Log = logrus.New()

	// LOG_LEVEL picks the level, "info" unless set. "debug" adds per-frame detail.
	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	// "json" for collected logs, text otherwise.
	logFormat := strings.ToLower(os.Getenv("LOG_FORMAT"))
	if logFormat == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	// The terminal backend owns stdout, so main chooses where logs go.
	if out == nil {
		out = os.Stderr
	}
	Log.SetOutput(out)
}
