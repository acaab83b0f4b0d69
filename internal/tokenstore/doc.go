// Package tokenstore persists per-host authentication tokens.
//
// Tokens are kept in a single host-keyed document with two backends:
//   - File: JSON document on the local filesystem, each token sealed with
//     AES-256-GCM under a machine-bound key (atomic writes, 0600 permissions)
//   - Keyring: the same document held as one secret in OS-native credential
//     storage (macOS Keychain, Windows Credential Manager, Secret Service)
//
// The file backend's key is derived from the machine name and the user's
// home directory, so copying the token file to another machine renders every
// record undecryptable. Undecryptable records are treated as absent, never
// as errors: an unusable token is equivalent to no token.
package tokenstore
