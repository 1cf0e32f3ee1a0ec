package format

import (
	"errors"
	"strings"
	"testing"
)

func TestWriteJSON(t *testing.T) {
	var sb strings.Builder
	if err := WriteJSON(&sb, map[string]int{"id": 7}, false); err != nil {
		t.Fatal(err)
	}
	if got := sb.String(); got != "{\"id\":7}\n" {
		t.Errorf("got %q", got)
	}
}

func TestWriteJSONPretty(t *testing.T) {
	var sb strings.Builder
	if err := WriteJSON(&sb, map[string]int{"id": 7}, true); err != nil {
		t.Fatal(err)
	}
	got := sb.String()
	if !strings.Contains(got, "\n  \"id\": 7\n") {
		t.Errorf("expected indented output, got %q", got)
	}
}

func TestWriteError(t *testing.T) {
	var sb strings.Builder
	if err := WriteError(&sb, errors.New("boom"), false); err != nil {
		t.Fatal(err)
	}
	if got := sb.String(); got != "{\"error\":\"boom\"}\n" {
		t.Errorf("got %q", got)
	}
}
