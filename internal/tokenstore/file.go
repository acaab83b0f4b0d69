package tokenstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// NewFileStore creates a Store backed by an encrypted JSON document at
// filePath, creating parent directories with 0700 permissions if needed.
// Tokens are sealed under the machine-bound key from DeriveKey, so the file
// is only readable on the machine and home directory that wrote it.
func NewFileStore(filePath string) (Store, error) {
	if filePath == "" {
		return nil, fmt.Errorf("file path cannot be empty")
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0700); err != nil {
		return nil, err
	}

	key, err := DeriveKey()
	if err != nil {
		return nil, err
	}
	s, err := newSealer(key)
	if err != nil {
		return nil, err
	}

	return &documentStore{backend: &fileBackend{
		filePath: filePath,
		sealer:   s,
	}}, nil
}

// fileBackend persists the document as JSON with per-record sealed tokens.
type fileBackend struct {
	filePath string
	sealer   *sealer
}

var _ backend = (*fileBackend)(nil)

// load reads and decrypts the document. A missing file is an empty store.
// Records that fail to open (foreign machine key, tampered ciphertext) are
// dropped; they must never abort an operation affecting other hosts.
func (f *fileBackend) load(ctx context.Context) (document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.filePath)
	if os.IsNotExist(err) {
		return document{}, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "read", Err: err}
	}

	var sealed document
	if err := json.Unmarshal(data, &sealed); err != nil {
		return nil, &StorageError{Op: "decode", Err: err}
	}

	doc := make(document, len(sealed))
	for host, rec := range sealed {
		token, err := f.sealer.open(rec.Token)
		if err != nil {
			continue
		}
		doc[host] = record{Token: token, ExpiresAt: rec.ExpiresAt}
	}
	return doc, nil
}

// store encrypts every record and rewrites the document wholesale using
// temp file + rename, so a crash never leaves a half-written store behind.
func (f *fileBackend) store(ctx context.Context, doc document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sealed := make(document, len(doc))
	for host, rec := range doc {
		ciphertext, err := f.sealer.seal(rec.Token)
		if err != nil {
			return &StorageError{Op: "encrypt", Err: err}
		}
		sealed[host] = record{Token: ciphertext, ExpiresAt: rec.ExpiresAt}
	}

	data, err := json.MarshalIndent(sealed, "", "  ")
	if err != nil {
		return &StorageError{Op: "encode", Err: err}
	}

	dir := filepath.Dir(f.filePath)
	tempFile, err := os.CreateTemp(dir, "*.tmp")
	if err != nil {
		return &StorageError{Op: "write", Err: err}
	}
	tempName := tempFile.Name()
	// Cleanup deferred for all exit paths
	defer func() { _ = os.Remove(tempName) }()
	defer func() { _ = tempFile.Close() }()

	if _, err := tempFile.Write(data); err != nil {
		return &StorageError{Op: "write", Err: err}
	}
	if err := tempFile.Close(); err != nil {
		return &StorageError{Op: "write", Err: err}
	}

	if err := os.Rename(tempName, f.filePath); err != nil {
		return &StorageError{Op: "write", Err: err}
	}

	// Owner read/write only
	if err := os.Chmod(f.filePath, 0600); err != nil {
		return &StorageError{Op: "write", Err: err}
	}

	return nil
}
