package tokenstore

import (
	"bytes"
	"strings"
	"testing"
)

func testKey(b byte) []byte {
	return bytes.Repeat([]byte{b}, keyLength)
}

func TestSealerRoundTrip(t *testing.T) {
	s, err := newSealer(testKey(0x42))
	if err != nil {
		t.Fatalf("newSealer: %v", err)
	}

	plaintext := "eyJhbGciOiJIUzI1NiJ9.payload.sig"
	sealed, err := s.seal(plaintext)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if sealed == plaintext {
		t.Fatal("seal returned the plaintext unchanged")
	}

	opened, err := s.open(sealed)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if opened != plaintext {
		t.Errorf("open = %q, want %q", opened, plaintext)
	}
}

func TestSealerWrongKey(t *testing.T) {
	a, err := newSealer(testKey(0x01))
	if err != nil {
		t.Fatalf("newSealer: %v", err)
	}
	b, err := newSealer(testKey(0x02))
	if err != nil {
		t.Fatalf("newSealer: %v", err)
	}

	sealed, err := a.seal("secret")
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if _, err := b.open(sealed); err == nil {
		t.Error("open succeeded with a different key")
	}
}

func TestSealerTamper(t *testing.T) {
	s, err := newSealer(testKey(0x42))
	if err != nil {
		t.Fatalf("newSealer: %v", err)
	}

	sealed, err := s.seal("secret")
	if err != nil {
		t.Fatalf("seal: %v", err)
	}

	// Flip one character of the encoded payload.
	tampered := []byte(sealed)
	last := len(tampered) - 1
	if tampered[last] == 'A' {
		tampered[last] = 'B'
	} else {
		tampered[last] = 'A'
	}
	if _, err := s.open(string(tampered)); err == nil {
		t.Error("open succeeded on tampered ciphertext")
	}
}

func TestSealerOpenRejectsGarbage(t *testing.T) {
	s, err := newSealer(testKey(0x42))
	if err != nil {
		t.Fatalf("newSealer: %v", err)
	}

	if _, err := s.open("not base64!!"); err == nil {
		t.Error("open accepted undecodable input")
	}
	if _, err := s.open("AAAA"); err == nil {
		t.Error("open accepted ciphertext shorter than the nonce")
	}
}

func TestNewSealerKeyLength(t *testing.T) {
	if _, err := newSealer([]byte("short")); err == nil {
		t.Fatal("newSealer accepted a short key")
	} else if !strings.Contains(err.Error(), "32 bytes") {
		t.Errorf("unexpected error: %v", err)
	}
}
