package audit

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestLoggerAppendsJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "actions.jsonl")
	l := NewLogger(path)

	if err := l.Log("admin@example.com", "create", "role", "success", ""); err != nil {
		t.Fatalf("Log: %v", err)
	}
	if err := l.Log("admin@example.com", "delete", "role/3", "failure", "upstream 500"); err != nil {
		t.Fatalf("Log: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()

	var events []Event
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e Event
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			t.Fatalf("line is not JSON: %v", err)
		}
		events = append(events, e)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Action != "create" || events[0].Outcome != "success" {
		t.Fatalf("unexpected first event: %+v", events[0])
	}
	if events[1].Target != "role/3" || events[1].Detail != "upstream 500" {
		t.Fatalf("unexpected second event: %+v", events[1])
	}
	if events[0].At == "" {
		t.Fatal("event missing timestamp")
	}
}

func TestLoggerWithoutPathDiscards(t *testing.T) {
	if err := NewLogger("").Log("a", "b", "c", "d", ""); err != nil {
		t.Fatalf("pathless logger should discard silently: %v", err)
	}
	var l *Logger
	if err := l.Log("a", "b", "c", "d", ""); err != nil {
		t.Fatalf("nil logger should discard silently: %v", err)
	}
}
