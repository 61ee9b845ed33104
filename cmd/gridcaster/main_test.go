package main

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunSnapshotClosesLogFile(t *testing.T) {
	dir := t.TempDir()
	opts := options{
		configPath: filepath.Join(dir, "missing.json"),
		backend:    "ebiten",
		logPath:    filepath.Join(dir, "gridcaster.log"),
		snapshot:   filepath.Join(dir, "frame.png"),
	}

	if err := run(opts); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	f, err := os.Open(opts.snapshot)
	if err != nil {
		t.Fatalf("Failed to open snapshot: %v", err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("Expected a PNG snapshot, got %v", err)
	}

	logs, err := os.ReadFile(opts.logPath)
	if err != nil {
		t.Fatalf("Failed to read log: %v", err)
	}
	if !strings.Contains(string(logs), "Wrote snapshot") {
		t.Errorf("Expected the snapshot to be logged, got %q", logs)
	}
}

func TestRunReturnsErrors(t *testing.T) {
	dir := t.TempDir()
	badConfig := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(badConfig, []byte(`{"render": {"width": -1}}`), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	tests := []struct {
		name string
		opts options
		want string
	}{
		{"bad config", options{configPath: badConfig, logPath: filepath.Join(dir, "a.log")}, "failed to load config"},
		{"missing map", options{configPath: filepath.Join(dir, "none.json"), mapPath: filepath.Join(dir, "none-map.json"), logPath: filepath.Join(dir, "b.log")}, "failed to load game"},
		{"unknown backend", options{configPath: filepath.Join(dir, "none.json"), backend: "vga", logPath: filepath.Join(dir, "c.log")}, "unknown backend"},
		{"unwritable log", options{logPath: filepath.Join(dir, "no-dir", "x.log")}, "failed to open log file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(tt.opts)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
