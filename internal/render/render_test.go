package render

import (
	"bytes"
	"strings"
	"testing"
)

func TestJSONIndents(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, []byte(`{"a":1}`)); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	want := "{\n  \"a\": 1\n}\n"
	if buf.String() != want {
		t.Errorf("JSON output = %q, want %q", buf.String(), want)
	}
}

func TestJSONFallsBackToRaw(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, []byte("plain text\n")); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if buf.String() != "plain text\n" {
		t.Errorf("JSON output = %q", buf.String())
	}
}

func TestPipeFlatList(t *testing.T) {
	var buf bytes.Buffer
	body := `[{"id":"aaa","name":"One"},{"id":"bbb","name":"Two"}]`
	if err := Pipe(&buf, []byte(body)); err != nil {
		t.Fatalf("Pipe: %v", err)
	}
	if buf.String() != "aaa\nbbb\n" {
		t.Errorf("Pipe output = %q", buf.String())
	}
}

func TestPipeNestedEvents(t *testing.T) {
	var buf bytes.Buffer
	body := `[{"event":{"id":"evt-1"},"instances":[]},{"event":{"id":"evt-2"},"instances":[]}]`
	if err := Pipe(&buf, []byte(body)); err != nil {
		t.Fatalf("Pipe: %v", err)
	}
	if buf.String() != "evt-1\nevt-2\n" {
		t.Errorf("Pipe output = %q", buf.String())
	}
}

func TestPipeSingleObject(t *testing.T) {
	var buf bytes.Buffer
	if err := Pipe(&buf, []byte(`{"id":"ccc","name":"Solo"}`)); err != nil {
		t.Fatalf("Pipe: %v", err)
	}
	if buf.String() != "ccc\n" {
		t.Errorf("Pipe output = %q", buf.String())
	}
}

func TestCount(t *testing.T) {
	if got := Count([]byte(`[1,2,3]`)); got != 3 {
		t.Errorf("Count = %d, want 3", got)
	}
	if got := Count([]byte(`{"id":"x"}`)); got != 0 {
		t.Errorf("Count of object = %d, want 0", got)
	}
	if got := Count([]byte(`[]`)); got != 0 {
		t.Errorf("Count of empty array = %d, want 0", got)
	}
}

func TestSummaryEmptyList(t *testing.T) {
	var buf bytes.Buffer
	if err := Summary(&buf, []byte(`[]`)); err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if !strings.Contains(buf.String(), "No results found.") {
		t.Errorf("Summary output = %q", buf.String())
	}
}

func TestSummaryCalendarList(t *testing.T) {
	var buf bytes.Buffer
	body := `[
		{"id":"a","name":"Work","is_active":true,"timezone":"UTC"},
		{"id":"b","name":"Personal","is_active":false,"timezone":"Europe/Zagreb"}
	]`
	if err := Summary(&buf, []byte(body)); err != nil {
		t.Fatalf("Summary: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "[OK] Work [UTC]") {
		t.Errorf("missing active calendar line in %q", out)
	}
	if !strings.Contains(out, "[X] Personal [Europe/Zagreb]") {
		t.Errorf("missing inactive calendar line in %q", out)
	}
}

func TestSummaryAgendaItems(t *testing.T) {
	var buf bytes.Buffer
	body := `[{
		"event": {"id":"e1","name":"Standup","is_active":true},
		"instances": [
			{"start":"2026-08-23T09:00:00Z","end":"2026-08-23T09:15:00Z","is_all_day":false},
			{"start":"2026-08-24T00:00:00Z","end":"2026-08-24T23:59:59Z","is_all_day":true}
		]
	}]`
	if err := Summary(&buf, []byte(body)); err != nil {
		t.Fatalf("Summary: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "[OK] Standup") {
		t.Errorf("missing event line in %q", out)
	}
	if !strings.Contains(out, "2026-08-23T09:00:00Z - 2026-08-23T09:15:00Z") {
		t.Errorf("missing instance line in %q", out)
	}
	if !strings.Contains(out, "[all day]") {
		t.Errorf("missing all-day marker in %q", out)
	}
}

func TestSummaryObject(t *testing.T) {
	var buf bytes.Buffer
	body := `{
		"id": "hidden",
		"name": "Weekly sync",
		"is_active": true,
		"description": null,
		"recurrence_text": "` + strings.Repeat("x", 80) + `"
	}`
	if err := Summary(&buf, []byte(body)); err != nil {
		t.Fatalf("Summary: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("id leaked into summary: %q", out)
	}
	if !strings.Contains(out, "Name: Weekly sync") {
		t.Errorf("missing name line in %q", out)
	}
	if !strings.Contains(out, "Is Active: Yes") {
		t.Errorf("missing boolean rendering in %q", out)
	}
	if strings.Contains(out, "Description") {
		t.Errorf("null field rendered: %q", out)
	}
	if !strings.Contains(out, "...") {
		t.Errorf("long string not truncated: %q", out)
	}
	if strings.Contains(out, strings.Repeat("x", 61)) {
		t.Errorf("long string rendered in full: %q", out)
	}
}

func TestTitleWords(t *testing.T) {
	if got := titleWords("recurrence_text"); got != "Recurrence Text" {
		t.Errorf("titleWords = %q", got)
	}
	if got := titleWords("name"); got != "Name" {
		t.Errorf("titleWords = %q", got)
	}
}
