package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"
)

// ListQuery holds common pagination and filter parameters.
type ListQuery struct {
	IsActive *bool
	Limit    *int
	Offset   *int
}

func (q ListQuery) values() url.Values {
	v := url.Values{}
	setBool(v, "is_active", q.IsActive)
	setInt(v, "limit", q.Limit)
	setInt(v, "offset", q.Offset)
	return v
}

// CreateCalendarParams are the fields accepted by calendar creation.
type CreateCalendarParams struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Timezone    string  `json:"timezone"`
	Color       *string `json:"color,omitempty"`
}

// UpdateCalendarParams carries a partial calendar update; nil fields are
// left unchanged.
type UpdateCalendarParams struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Timezone    *string `json:"timezone,omitempty"`
	Color       *string `json:"color,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// ListCalendars lists the authenticated user's calendars.
func (c *Client) ListCalendars(ctx context.Context, q ListQuery) ([]byte, error) {
	return c.Do(ctx, http.MethodGet, "/calendars", q.values(), nil)
}

// GetCalendar fetches one calendar by ID.
func (c *Client) GetCalendar(ctx context.Context, calendarID string) ([]byte, error) {
	if err := validateID("calendar", calendarID); err != nil {
		return nil, err
	}
	return c.Do(ctx, http.MethodGet, "/calendars/"+calendarID, nil, nil)
}

// CreateCalendar creates a new calendar.
func (c *Client) CreateCalendar(ctx context.Context, p CreateCalendarParams) ([]byte, error) {
	return c.Do(ctx, http.MethodPost, "/calendars", nil, p)
}

// UpdateCalendar applies a partial update to a calendar.
func (c *Client) UpdateCalendar(ctx context.Context, calendarID string, p UpdateCalendarParams) ([]byte, error) {
	if err := validateID("calendar", calendarID); err != nil {
		return nil, err
	}
	return c.Do(ctx, http.MethodPut, "/calendars/"+calendarID, nil, p)
}

// DeleteCalendar removes a calendar.
func (c *Client) DeleteCalendar(ctx context.Context, calendarID string) error {
	if err := validateID("calendar", calendarID); err != nil {
		return err
	}
	_, err := c.Do(ctx, http.MethodDelete, "/calendars/"+calendarID, nil, nil)
	return err
}

// ShareCalendar grants another user a role on a calendar.
func (c *Client) ShareCalendar(ctx context.Context, calendarID, userID, role string) ([]byte, error) {
	if err := validateID("calendar", calendarID); err != nil {
		return nil, err
	}
	body := map[string]string{
		"user_id": userID,
		"role":    role,
	}
	return c.Do(ctx, http.MethodPost, "/calendars/"+calendarID+"/share", nil, body)
}

// CalendarWebhookURL fetches the inbound webhook URL for a calendar.
func (c *Client) CalendarWebhookURL(ctx context.Context, calendarID string) ([]byte, error) {
	if err := validateID("calendar", calendarID); err != nil {
		return nil, err
	}
	return c.Do(ctx, http.MethodGet, "/calendars/"+calendarID+"/webhook-url", nil, nil)
}

// LinkEvent attaches an event to a calendar.
func (c *Client) LinkEvent(ctx context.Context, calendarID, eventID string, displayOrder *int, colorOverride *string) ([]byte, error) {
	if err := validateID("calendar", calendarID); err != nil {
		return nil, err
	}
	if err := validateID("event", eventID); err != nil {
		return nil, err
	}
	body := map[string]any{}
	if displayOrder != nil {
		body["display_order"] = *displayOrder
	}
	if colorOverride != nil {
		body["color_override"] = *colorOverride
	}
	return c.Do(ctx, http.MethodPost, "/calendars/"+calendarID+"/events/"+eventID, nil, body)
}

// UnlinkEvent detaches an event from a calendar.
func (c *Client) UnlinkEvent(ctx context.Context, calendarID, eventID string) error {
	if err := validateID("calendar", calendarID); err != nil {
		return err
	}
	if err := validateID("event", eventID); err != nil {
		return err
	}
	_, err := c.Do(ctx, http.MethodDelete, "/calendars/"+calendarID+"/events/"+eventID, nil, nil)
	return err
}

// validateID rejects malformed resource IDs before any request is sent.
func validateID(kind, id string) error {
	if err := uuid.Validate(id); err != nil {
		return validationError("invalid %s ID %q", kind, id)
	}
	return nil
}

func setBool(v url.Values, key string, b *bool) {
	if b != nil {
		v.Set(key, strconv.FormatBool(*b))
	}
}

func setInt(v url.Values, key string, i *int) {
	if i != nil {
		v.Set(key, strconv.Itoa(*i))
	}
}
