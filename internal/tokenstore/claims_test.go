package tokenstore

import (
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"
)

// makeToken builds an unsigned JWT carrying the given claims. The signature
// segment is filler; nothing in this package verifies it.
func makeToken(t *testing.T, claims map[string]any) string {
	t.Helper()

	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload, err := json.Marshal(claims)
	if err != nil {
		t.Fatalf("marshaling claims: %v", err)
	}
	body := base64.RawURLEncoding.EncodeToString(payload)

	return header + "." + body + ".sig"
}

func TestIsExpired(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{
			name:  "empty token",
			token: "",
			want:  true,
		},
		{
			name:  "not a jwt",
			token: "opaque-token",
			want:  true,
		},
		{
			name:  "three segments of garbage",
			token: "###.###.###",
			want:  true,
		},
		{
			name:  "future expiry",
			token: makeToken(t, map[string]any{"exp": now.Add(time.Hour).Unix()}),
			want:  false,
		},
		{
			name:  "past expiry",
			token: makeToken(t, map[string]any{"exp": now.Add(-time.Hour).Unix()}),
			want:  true,
		},
		{
			name:  "no expiry claim is permanent",
			token: makeToken(t, map[string]any{"sub": "user-1"}),
			want:  false,
		},
		{
			name:  "non-numeric expiry",
			token: makeToken(t, map[string]any{"exp": "tomorrow"}),
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsExpired(tt.token); got != tt.want {
				t.Errorf("IsExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsExpiredAtBoundary(t *testing.T) {
	at := time.Unix(1700000000, 0)
	token := makeToken(t, map[string]any{"exp": at.Unix()})

	orig := timeNow
	defer func() { timeNow = orig }()

	timeNow = func() time.Time { return at.Add(-time.Second) }
	if IsExpired(token) {
		t.Error("token expired one second before its exp claim")
	}

	timeNow = func() time.Time { return at }
	if !IsExpired(token) {
		t.Error("token still valid at its exact exp claim")
	}
}

func TestIsWellFormed(t *testing.T) {
	if !IsWellFormed("a.b.c") {
		t.Error("IsWellFormed rejected a three-segment token")
	}
	if IsWellFormed("a.b") {
		t.Error("IsWellFormed accepted a two-segment token")
	}
	if IsWellFormed("") {
		t.Error("IsWellFormed accepted an empty token")
	}
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := makeToken(t, map[string]any{"exp": exp.Unix()})

	got := TokenExpiry(token)
	if got == nil {
		t.Fatal("TokenExpiry() = nil for token with exp claim")
	}
	if *got != exp.Unix() {
		t.Errorf("TokenExpiry() = %d, want %d", *got, exp.Unix())
	}

	if got := TokenExpiry(makeToken(t, map[string]any{"sub": "x"})); got != nil {
		t.Errorf("TokenExpiry() = %d for token without exp claim, want nil", *got)
	}
	if got := TokenExpiry("not-a-jwt"); got != nil {
		t.Errorf("TokenExpiry() = %d for malformed token, want nil", *got)
	}
}
