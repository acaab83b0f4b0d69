package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// NewKeyringStore creates a Store holding the token document as a single
// secret in OS-native credential storage (macOS Keychain, Windows Credential
// Manager, Linux Secret Service). Tokens are stored without an extra
// ciphertext layer; the OS vault provides confidentiality, and the secret is
// not portable between machines by construction.
func NewKeyringStore(service, user string) (Store, error) {
	if service == "" {
		return nil, fmt.Errorf("service cannot be empty")
	}
	if user == "" {
		return nil, fmt.Errorf("user cannot be empty")
	}

	return &documentStore{backend: &keyringBackend{
		service: service,
		user:    user,
	}}, nil
}

type keyringBackend struct {
	service string
	user    string
}

var _ backend = (*keyringBackend)(nil)

// load reads the document from the keyring. A missing secret is an empty
// store, mirroring the file backend's missing-file behavior.
func (k *keyringBackend) load(ctx context.Context) (document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := keyring.Get(k.service, k.user)
	if errors.Is(err, keyring.ErrNotFound) {
		return document{}, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "read", Err: err}
	}

	var doc document
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, &StorageError{Op: "decode", Err: err}
	}
	return doc, nil
}

func (k *keyringBackend) store(ctx context.Context, doc document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return &StorageError{Op: "encode", Err: err}
	}

	if err := keyring.Set(k.service, k.user, string(data)); err != nil {
		return &StorageError{Op: "write", Err: err}
	}
	return nil
}
