package api

import (
	"errors"
	"testing"
)

func TestErrorDetail(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"json with detail", `{"detail":"calendar not found"}`, "calendar not found"},
		{"json without detail", `{"message":"nope"}`, `{"message":"nope"}`},
		{"plain text", "Service Unavailable", "Service Unavailable"},
		{"empty body", "", "HTTP 503"},
		{"whitespace body", "  \n", "HTTP 503"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorDetail(503, []byte(tt.body)); got != tt.want {
				t.Errorf("errorDetail = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateID(t *testing.T) {
	if err := validateID("calendar", "0b1c2d3e-4f50-6172-8394-a5b6c7d8e9f0"); err != nil {
		t.Errorf("validateID rejected a valid UUID: %v", err)
	}

	err := validateID("calendar", "not-a-uuid")
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("validateID error = %v, want *Error", err)
	}
	if apiErr.Kind != KindValidation {
		t.Errorf("Kind = %v, want validation", apiErr.Kind)
	}
}

func TestErrorString(t *testing.T) {
	e := &Error{Kind: KindNotFound, StatusCode: 404, Detail: "event not found"}
	if got := e.Error(); got != "not found error (HTTP 404): event not found" {
		t.Errorf("Error() = %q", got)
	}

	e = &Error{Kind: KindTransport, Detail: "connection refused"}
	if got := e.Error(); got != "transport error: connection refused" {
		t.Errorf("Error() = %q", got)
	}
}
