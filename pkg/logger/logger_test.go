package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestInitReadsEnvironment(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "JSON")

	var buf bytes.Buffer
	Init(&buf)

	if Log.GetLevel() != logrus.DebugLevel {
		t.Errorf("Expected debug level, got %v", Log.GetLevel())
	}

	Log.WithField("map", "level.json").Debug("loaded")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected a JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["map"] != "level.json" || entry["msg"] != "loaded" {
		t.Errorf("Unexpected log entry %v", entry)
	}
}

func TestInitFallsBackToInfo(t *testing.T) {
	t.Setenv("LOG_LEVEL", "shouting")
	t.Setenv("LOG_FORMAT", "")

	var buf bytes.Buffer
	Init(&buf)

	if Log.GetLevel() != logrus.InfoLevel {
		t.Errorf("Expected info level, got %v", Log.GetLevel())
	}
	if _, ok := Log.Formatter.(*logrus.TextFormatter); !ok {
		t.Errorf("Expected text formatter, got %T", Log.Formatter)
	}
}
