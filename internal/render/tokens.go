package render

import (
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sineways/anymoment-cli/internal/tokenstore"
)

// TokenTable writes the cached-token listing as a table, one row per host,
// ordered by host for stable output.
func TokenTable(w io.Writer, statuses map[string]tokenstore.Status) {
	hosts := make([]string, 0, len(statuses))
	for host := range statuses {
		hosts = append(hosts, host)
	}
	sort.Strings(hosts)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Host", "Status", "Expires"})

	for _, host := range hosts {
		status := statuses[host]
		t.AppendRow(table.Row{host, tokenStatusText(status), tokenExpiryText(status)})
	}

	t.SetStyle(table.StyleLight)
	t.Render()
}

func tokenStatusText(s tokenstore.Status) string {
	switch {
	case s.Invalid:
		return "invalid"
	case s.Expired:
		return "expired"
	default:
		return "valid"
	}
}

func tokenExpiryText(s tokenstore.Status) string {
	if s.ExpiresAt == "" {
		return "never"
	}
	return s.ExpiresAt
}
