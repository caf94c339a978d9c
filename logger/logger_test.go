package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestWithComponent(t *testing.T) {
	log := Discard()
	entry := log.WithComponent("forecast")
	if v, ok := entry.Entry.Data["component"]; !ok || v != "forecast" {
		t.Fatalf("component field missing: %v", entry.Entry.Data)
	}

	entry = entry.WithFields(Fields{"commodity": "tomato"})
	if entry.Entry.Data["component"] != "forecast" || entry.Entry.Data["commodity"] != "tomato" {
		t.Fatalf("fields not merged: %v", entry.Entry.Data)
	}
}

func TestNewInvalidOptions(t *testing.T) {
	if _, err := New(Options{Level: "loud"}); err == nil {
		t.Error("expected error for invalid level")
	}
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Error("expected error for invalid format")
	}
}

func TestNewDefaultsToWarn(t *testing.T) {
	log, err := New(Options{})
	if err != nil {
		t.Fatal(err)
	}
	if log.GetLevel().String() != "warning" {
		t.Errorf("expected warn level, got %s", log.GetLevel())
	}
}

func TestJSONOutput(t *testing.T) {
	log, err := New(Options{Level: "info", Format: "json"})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	log.SetOutput(&buf)

	log.WithComponent("app").Info("session started")

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if line["message"] != "session started" || line["component"] != "app" {
		t.Errorf("unexpected log line: %v", line)
	}
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cropforecast.log")
	log, err := New(Options{Level: "debug", File: path})
	if err != nil {
		t.Fatal(err)
	}

	log.WithComponent("test").Debug("written to file")
	if err := log.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("written to file")) {
		t.Errorf("log file missing entry: %s", data)
	}
}

func TestSetLogger(t *testing.T) {
	prev := GetLogger()
	defer SetLogger(prev)

	l := Discard()
	SetLogger(l)
	if GetLogger() != l {
		t.Error("SetLogger did not replace the global logger")
	}
	SetLogger(nil)
	if GetLogger() != l {
		t.Error("SetLogger(nil) should be ignored")
	}
}

func TestCloseKeepsStderrOpen(t *testing.T) {
	log, err := New(Options{})
	if err != nil {
		t.Fatal(err)
	}
	if err := log.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := os.Stderr.Stat(); err != nil {
		t.Fatalf("stderr closed by Close: %v", err)
	}
	if err := log.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}
