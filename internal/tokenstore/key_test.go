package tokenstore

import (
	"bytes"
	"testing"
)

func TestDeriveKey(t *testing.T) {
	key, err := DeriveKey()
	if err != nil {
		t.Fatalf("DeriveKey: %v", err)
	}
	if len(key) != keyLength {
		t.Fatalf("key length = %d, want %d", len(key), keyLength)
	}

	again, err := DeriveKey()
	if err != nil {
		t.Fatalf("DeriveKey: %v", err)
	}
	if !bytes.Equal(key, again) {
		t.Error("DeriveKey is not deterministic on the same machine")
	}
}
