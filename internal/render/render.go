// Package render formats API responses for the terminal: indented JSON
// (--raw), bare IDs for piping (--pipe), or a human-readable summary.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/tidwall/gjson"
)

// JSON writes the response body as indented JSON, falling back to the raw
// bytes when the body is not JSON.
func JSON(w io.Writer, raw []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		_, werr := fmt.Fprintln(w, strings.TrimSpace(string(raw)))
		return werr
	}
	_, err := fmt.Fprintln(w, buf.String())
	return err
}

// Pipe writes only resource IDs, one per line, for chaining into other
// commands. Agenda and search items nest the event under an "event" key.
func Pipe(w io.Writer, raw []byte) error {
	v := gjson.ParseBytes(raw)

	switch {
	case v.IsArray():
		for _, item := range v.Array() {
			if ev := item.Get("event"); ev.IsObject() {
				fmt.Fprintln(w, ev.Get("id").String())
			} else if item.IsObject() {
				fmt.Fprintln(w, item.Get("id").String())
			} else {
				fmt.Fprintln(w, item.String())
			}
		}
	case v.IsObject():
		fmt.Fprintln(w, v.Get("id").String())
	default:
		fmt.Fprintln(w, v.String())
	}
	return nil
}

// Count returns the number of items in a JSON array body, or 0.
func Count(raw []byte) int {
	v := gjson.ParseBytes(raw)
	if !v.IsArray() {
		return 0
	}
	return len(v.Array())
}

// Summary writes a human-readable rendering of a response body.
func Summary(w io.Writer, raw []byte) error {
	v := gjson.ParseBytes(raw)

	switch {
	case v.IsArray():
		summarizeList(w, v)
	case v.IsObject():
		summarizeObject(w, v)
	default:
		fmt.Fprintln(w, v.String())
	}
	return nil
}

func summarizeList(w io.Writer, list gjson.Result) {
	items := list.Array()
	if len(items) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	// Agenda and search items nest the event with its instances.
	if items[0].Get("event").IsObject() {
		for _, item := range items {
			summarizeAgendaItem(w, item)
		}
		return
	}

	for _, item := range items {
		if !item.IsObject() {
			fmt.Fprintf(w, "  %s\n", item.String())
			continue
		}
		name := firstOf(item, "name", "id")
		name = activeMarker(item) + name

		switch {
		case item.Get("event_count").Exists():
			fmt.Fprintf(w, "  %s (%d events)\n", name, item.Get("event_count").Int())
		case item.Get("timezone").Exists():
			fmt.Fprintf(w, "  %s [%s]\n", name, item.Get("timezone").String())
		default:
			fmt.Fprintf(w, "  %s\n", name)
		}
	}
}

func summarizeAgendaItem(w io.Writer, item gjson.Result) {
	ev := item.Get("event")
	name := firstOf(ev, "display_name", "name", "id")
	name = activeMarker(ev) + name
	if score := item.Get("score"); score.Exists() {
		name = fmt.Sprintf("%s (score: %.2f)", name, score.Float())
	}
	fmt.Fprintf(w, "  %s\n", name)

	for _, inst := range item.Get("instances").Array() {
		suffix := ""
		if inst.Get("is_all_day").Bool() {
			suffix = " [all day]"
		}
		fmt.Fprintf(w, "    %s - %s%s\n", inst.Get("start").String(), inst.Get("end").String(), suffix)
	}
}

func summarizeObject(w io.Writer, obj gjson.Result) {
	obj.ForEach(func(key, value gjson.Result) bool {
		k := key.String()
		if k == "id" {
			// Skipped in detail views; shown by the command when relevant.
			return true
		}

		if value.IsObject() || value.IsArray() {
			if len(value.Array()) > 0 || (value.IsObject() && value.Raw != "{}") {
				fmt.Fprintf(w, "\n%s:\n", titleWords(k))
				_ = Summary(w, []byte(value.Raw))
			}
			return true
		}
		if value.Type == gjson.Null {
			return true
		}

		display := value.String()
		switch {
		case value.Type == gjson.True:
			display = "Yes"
		case value.Type == gjson.False:
			display = "No"
		case value.Type == gjson.String && len(display) > 60:
			display = display[:57] + "..."
		}
		fmt.Fprintf(w, "  %s: %s\n", titleWords(k), display)
		return true
	})
}

// firstOf returns the first non-empty string field of obj, or "N/A".
func firstOf(obj gjson.Result, keys ...string) string {
	for _, k := range keys {
		if v := obj.Get(k); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	return "N/A"
}

// activeMarker prefixes a status indicator when the object carries is_active.
func activeMarker(obj gjson.Result) string {
	v := obj.Get("is_active")
	if !v.Exists() {
		return ""
	}
	if v.Bool() {
		return "[OK] "
	}
	return "[X] "
}

// titleWords turns a snake_case key into a title-cased label.
func titleWords(key string) string {
	words := strings.Split(strings.ReplaceAll(key, "_", " "), " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
