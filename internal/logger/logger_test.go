package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("debug", &buf)

	if l.GetLevel() != zerolog.DebugLevel {
		t.Errorf("Expected debug level, got %s", l.GetLevel())
	}

	l.Info().Str("key", "quotes").Msg("Quotes loaded")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected JSON log line, got %q: %v", buf.String(), err)
	}

	if entry["message"] != "Quotes loaded" {
		t.Errorf("Expected message 'Quotes loaded', got %v", entry["message"])
	}
	if entry["key"] != "quotes" {
		t.Errorf("Expected key field, got %v", entry["key"])
	}
	for _, field := range []string{"pid", "go_version", "git_revision", "caller", "time"} {
		if _, ok := entry[field]; !ok {
			t.Errorf("Expected field %q in log entry", field)
		}
	}

	session, _ := entry["session"].(string)
	if _, err := uuid.Parse(session); err != nil {
		t.Errorf("Expected session to be a UUID, got %q", session)
	}
}

func TestInvalidLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("loud", &buf)

	if l.GetLevel() != zerolog.InfoLevel {
		t.Errorf("Expected info level, got %s", l.GetLevel())
	}

	l.Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("Expected debug message to be filtered, got %q", buf.String())
	}
}

func TestLevelIsCaseInsensitive(t *testing.T) {
	l := NewWithWriter("WARN", &bytes.Buffer{})
	if l.GetLevel() != zerolog.WarnLevel {
		t.Errorf("Expected warn level, got %s", l.GetLevel())
	}
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	l := Component(NewWithWriter("info", &buf), "storage")

	l.Info().Msg("Storage opened")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["component"] != "storage" {
		t.Errorf("Expected component storage, got %v", entry["component"])
	}
}
