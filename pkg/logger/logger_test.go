package logger

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNewWithWriter_ServiceField(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("syncstok", "info", &buf)

	l.Info("hello")

	var out map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if got := out["service"]; got != "syncstok" {
		t.Errorf("service = %v, want %q", got, "syncstok")
	}
	if got := out["msg"]; got != "hello" {
		t.Errorf("msg = %v, want %q", got, "hello")
	}
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("syncstok", "warn", &buf)

	l.Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("info record emitted at warn level: %s", buf.String())
	}

	l.Warn("kept")
	if buf.Len() == 0 {
		t.Error("warn record not emitted at warn level")
	}
}

func TestNewWithWriter_UnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("syncstok", "chatty", &buf)

	l.Debug("dropped")
	if buf.Len() != 0 {
		t.Errorf("debug record emitted at default level: %s", buf.String())
	}

	l.Info("kept")
	if buf.Len() == 0 {
		t.Error("info record not emitted at default level")
	}
}

func TestWithRunID(t *testing.T) {
	var buf bytes.Buffer
	l := WithRunID(NewWithWriter("syncstok", "info", &buf), "run-42")

	l.Info("tagged")

	var out map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if got := out["run_id"]; got != "run-42" {
		t.Errorf("run_id = %v, want %q", got, "run-42")
	}
}
