package tokenstore

import (
	"crypto/sha256"
	"fmt"
	"os"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// keyTag namespaces the derived key so other tools deriving from the
	// same machine identity cannot decrypt this store.
	keyTag = "anymoment-token-key"

	kdfIterations = 100000
	keyLength     = 32
)

// DeriveKey produces the machine-bound symmetric key used to seal tokens at
// rest. The key is a deterministic function of the machine's network name,
// the user's home directory, and keyTag: the same machine and user always
// derive the same key, and a token file copied elsewhere decrypts to nothing.
//
// The key is never persisted; it is recomputed on every process start.
func DeriveKey() ([]byte, error) {
	// An unresolvable hostname degrades to the empty string. That keeps the
	// derivation total; if the hostname later becomes resolvable the old
	// records simply read as corrupt, which the store already tolerates.
	hostname, _ := os.Hostname()

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolving home directory: %w", err)
	}

	material := []byte(hostname + ":" + home + ":" + keyTag)
	digest := sha256.Sum256(material)
	salt := digest[:16]

	return pbkdf2.Key(material, salt, kdfIterations, keyLength, sha256.New), nil
}
