package api

import (
	"context"
	"net/http"
	"net/url"
)

// EventListQuery filters event listings.
type EventListQuery struct {
	CalendarID string
	IsActive   *bool
	Limit      *int
	Offset     *int
	Minimal    bool
}

// CreateEventParams describe an event created from natural language text.
type CreateEventParams struct {
	RecurrenceText string  `json:"recurrence_text"`
	Name           *string `json:"name,omitempty"`
	Description    *string `json:"description,omitempty"`
	Timezone       string  `json:"timezone"`
	CalendarID     *string `json:"calendar_id,omitempty"`
	Model          string  `json:"model"`
}

// InstanceQuery bounds an instance listing to a date range.
type InstanceQuery struct {
	From      string
	To        string
	Optimized bool
}

// ListEvents lists the authenticated user's events.
func (c *Client) ListEvents(ctx context.Context, q EventListQuery) ([]byte, error) {
	v := url.Values{}
	if q.CalendarID != "" {
		if err := validateID("calendar", q.CalendarID); err != nil {
			return nil, err
		}
		v.Set("calendar_id", q.CalendarID)
	}
	setBool(v, "is_active", q.IsActive)
	setInt(v, "limit", q.Limit)
	setInt(v, "offset", q.Offset)
	if q.Minimal {
		v.Set("minimal", "true")
	}
	return c.Do(ctx, http.MethodGet, "/events", v, nil)
}

// GetEvent fetches one event by ID.
func (c *Client) GetEvent(ctx context.Context, eventID string) ([]byte, error) {
	if err := validateID("event", eventID); err != nil {
		return nil, err
	}
	return c.Do(ctx, http.MethodGet, "/events/"+eventID, nil, nil)
}

// CreateEventFromText creates an event from a natural-language recurrence
// description.
func (c *Client) CreateEventFromText(ctx context.Context, p CreateEventParams) ([]byte, error) {
	if p.CalendarID != nil {
		if err := validateID("calendar", *p.CalendarID); err != nil {
			return nil, err
		}
	}
	return c.Do(ctx, http.MethodPost, "/events/from-text", nil, p)
}

// UpdateEvent changes an event's name and/or description.
func (c *Client) UpdateEvent(ctx context.Context, eventID string, name, description *string) ([]byte, error) {
	if err := validateID("event", eventID); err != nil {
		return nil, err
	}
	body := map[string]string{}
	if name != nil {
		body["name"] = *name
	}
	if description != nil {
		body["description"] = *description
	}
	return c.Do(ctx, http.MethodPut, "/events/"+eventID, nil, body)
}

// DeleteEvent removes an event.
func (c *Client) DeleteEvent(ctx context.Context, eventID string) error {
	if err := validateID("event", eventID); err != nil {
		return err
	}
	_, err := c.Do(ctx, http.MethodDelete, "/events/"+eventID, nil, nil)
	return err
}

// ToggleEvent flips an event's active status.
func (c *Client) ToggleEvent(ctx context.Context, eventID string) ([]byte, error) {
	if err := validateID("event", eventID); err != nil {
		return nil, err
	}
	return c.Do(ctx, http.MethodPatch, "/events/"+eventID+"/toggle", nil, nil)
}

// EventInstances lists an event's instances within a date range.
func (c *Client) EventInstances(ctx context.Context, eventID string, q InstanceQuery) ([]byte, error) {
	if err := validateID("event", eventID); err != nil {
		return nil, err
	}
	v := url.Values{}
	if q.From != "" {
		v.Set("from", q.From)
	}
	if q.To != "" {
		v.Set("to", q.To)
	}
	if q.Optimized {
		v.Set("optimized", "true")
	}
	return c.Do(ctx, http.MethodGet, "/events/"+eventID+"/instances", v, nil)
}

// NextEventInstance fetches the next upcoming instance of an event.
func (c *Client) NextEventInstance(ctx context.Context, eventID string) ([]byte, error) {
	if err := validateID("event", eventID); err != nil {
		return nil, err
	}
	return c.Do(ctx, http.MethodGet, "/events/"+eventID+"/next-instance", nil, nil)
}
