package tokenstore

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Store reads and writes per-host authentication tokens.
type Store interface {
	// Get returns the stored token for host, or "" when no usable token
	// exists. A token that is expired or cannot be decrypted is reported
	// the same way as a missing one.
	Get(ctx context.Context, host string) (string, error)

	// Save encrypts and upserts the token for host, recording the token's
	// own expiry claim alongside it. Records for other hosts are untouched.
	Save(ctx context.Context, host, token string) error

	// Delete removes the record for host. No-op if absent.
	Delete(ctx context.Context, host string) error

	// Clear empties the entire store.
	Clear(ctx context.Context) error

	// List reports the status of every readable record. Records that cannot
	// be decrypted are omitted entirely.
	List(ctx context.Context) (map[string]Status, error)
}

// Status is a read-only view of a stored token. It never exposes the token
// itself.
type Status struct {
	// Expired reports whether the token's expiry claim has passed (or the
	// token cannot be decoded at all).
	Expired bool

	// Invalid reports whether the token is not shaped like a JWT.
	Invalid bool

	// ExpiresAt is the recorded expiry in RFC 3339 UTC, or "" for tokens
	// that never expire.
	ExpiresAt string
}

// StorageError wraps a genuine I/O fault in the token store. File-absent and
// record-undecryptable conditions are normal states and never produce one.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("token store: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// record is one entry of the persisted document. In the file backend Token
// holds sealed ciphertext; in the keyring backend it holds the plaintext
// token (the OS vault provides the confidentiality layer).
type record struct {
	Token     string `json:"token"`
	ExpiresAt *int64 `json:"expires_at"`
}

// document maps a normalized host URL to its record. The document is read
// and rewritten wholesale on every mutation; tokens inside an in-memory
// document are always plaintext.
type document map[string]record

// backend loads and stores a plaintext document. Backends drop records they
// cannot recover instead of failing the whole load.
type backend interface {
	load(ctx context.Context) (document, error)
	store(ctx context.Context, doc document) error
}

// documentStore implements Store on top of a backend.
type documentStore struct {
	backend backend
}

var _ Store = (*documentStore)(nil)

// normalizeHost strips trailing slashes so one logical host maps to at most
// one record.
func normalizeHost(host string) string {
	return strings.TrimRight(host, "/")
}

func (s *documentStore) Get(ctx context.Context, host string) (string, error) {
	doc, err := s.backend.load(ctx)
	if err != nil {
		return "", err
	}

	rec, ok := doc[normalizeHost(host)]
	if !ok {
		return "", nil
	}
	if IsExpired(rec.Token) {
		return "", nil
	}
	return rec.Token, nil
}

func (s *documentStore) Save(ctx context.Context, host, token string) error {
	doc, err := s.backend.load(ctx)
	if err != nil {
		return err
	}

	doc[normalizeHost(host)] = record{
		Token:     token,
		ExpiresAt: TokenExpiry(token),
	}
	return s.backend.store(ctx, doc)
}

func (s *documentStore) Delete(ctx context.Context, host string) error {
	doc, err := s.backend.load(ctx)
	if err != nil {
		return err
	}

	key := normalizeHost(host)
	if _, ok := doc[key]; !ok {
		return nil
	}
	delete(doc, key)
	return s.backend.store(ctx, doc)
}

func (s *documentStore) Clear(ctx context.Context) error {
	return s.backend.store(ctx, document{})
}

func (s *documentStore) List(ctx context.Context) (map[string]Status, error) {
	doc, err := s.backend.load(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make(map[string]Status, len(doc))
	for host, rec := range doc {
		if rec.Token == "" {
			continue
		}
		statuses[host] = Status{
			Expired:   IsExpired(rec.Token),
			Invalid:   !IsWellFormed(rec.Token),
			ExpiresAt: formatExpiry(rec.ExpiresAt),
		}
	}
	return statuses, nil
}

// maxExpiryUnix bounds the recorded expiry to year 9999; anything beyond is
// treated as never expiring, matching the handling of malformed timestamps.
const maxExpiryUnix = 253402300799

// formatExpiry renders a recorded expiry as RFC 3339 UTC. Nonsensical
// timestamps are treated as "never expires" rather than propagated.
func formatExpiry(ts *int64) string {
	if ts == nil || *ts <= 0 || *ts > maxExpiryUnix {
		return ""
	}
	return time.Unix(*ts, 0).UTC().Format(time.RFC3339)
}
