package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sineways/anymoment-cli/internal/tokenstore"
)

func TestTokenTable(t *testing.T) {
	var buf bytes.Buffer
	TokenTable(&buf, map[string]tokenstore.Status{
		"https://b.example.com": {Expired: true, ExpiresAt: "2023-11-14T22:13:20Z"},
		"https://a.example.com": {ExpiresAt: "2030-01-01T00:00:00Z"},
		"https://c.example.com": {},
		"https://d.example.com": {Invalid: true, Expired: true},
	})

	out := buf.String()
	for _, want := range []string{
		"HOST", "STATUS", "EXPIRES",
		"https://a.example.com", "valid", "2030-01-01T00:00:00Z",
		"https://b.example.com", "expired", "2023-11-14T22:13:20Z",
		"https://c.example.com", "never",
		"https://d.example.com", "invalid",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}

	// Hosts render in lexical order.
	if strings.Index(out, "a.example.com") > strings.Index(out, "b.example.com") {
		t.Error("hosts not sorted")
	}
}
