package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// AgendaQuery selects events and their instances within a time window.
type AgendaQuery struct {
	// Start and End bound the window, ISO 8601.
	Start string
	End   string

	// CalendarIDs restricts the window to specific calendars.
	CalendarIDs []string

	UseCache        bool
	IncludeWebhooks bool
}

// SearchQuery is a fuzzy event search, optionally bounded to a time window.
type SearchQuery struct {
	Query       string
	Start       string
	End         string
	CalendarIDs []string
	IsActive    *bool
	Limit       int
	Offset      int

	// IncludeInstances includes instances in the response when a window is
	// given.
	IncludeInstances bool
}

// Agenda fetches events and their instances within a time window.
func (c *Client) Agenda(ctx context.Context, q AgendaQuery) ([]byte, error) {
	if err := validateIDs("calendar", q.CalendarIDs); err != nil {
		return nil, err
	}

	v := url.Values{}
	v.Set("start", q.Start)
	v.Set("end", q.End)
	v.Set("use_cache", strconv.FormatBool(q.UseCache))
	v.Set("include_webhooks", strconv.FormatBool(q.IncludeWebhooks))
	for _, id := range q.CalendarIDs {
		v.Add("calendar_ids", id)
	}
	return c.Do(ctx, http.MethodGet, "/agenda", v, nil)
}

// SearchEvents performs a fuzzy search over events by name.
func (c *Client) SearchEvents(ctx context.Context, q SearchQuery) ([]byte, error) {
	if err := validateIDs("calendar", q.CalendarIDs); err != nil {
		return nil, err
	}

	v := url.Values{}
	v.Set("q", strings.TrimSpace(q.Query))
	v.Set("limit", strconv.Itoa(q.Limit))
	v.Set("offset", strconv.Itoa(q.Offset))
	v.Set("include_instances", strconv.FormatBool(q.IncludeInstances))
	if q.Start != "" {
		v.Set("start", q.Start)
	}
	if q.End != "" {
		v.Set("end", q.End)
	}
	setBool(v, "is_active", q.IsActive)
	for _, id := range q.CalendarIDs {
		v.Add("calendar_ids", id)
	}
	return c.Do(ctx, http.MethodGet, "/agenda/search", v, nil)
}

func validateIDs(kind string, ids []string) error {
	for _, id := range ids {
		if err := validateID(kind, id); err != nil {
			return err
		}
	}
	return nil
}
