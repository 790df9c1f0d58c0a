package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// apiKey is a configured credential. Only its digest is kept in memory.
type apiKey struct {
	digest   [sha256.Size]byte
	clientID string
}

// StaticKeys authenticates requests against a fixed set of API keys.
type StaticKeys struct {
	keys []apiKey
}

// NewStaticKeys builds a StaticKeys from plaintext keys. Each key is
// identified in logs by a short fingerprint of its digest.
func NewStaticKeys(keys []string) *StaticKeys {
	s := &StaticKeys{keys: make([]apiKey, 0, len(keys))}

	for _, k := range keys {
		d := sha256.Sum256([]byte(k))
		s.keys = append(s.keys, apiKey{digest: d, clientID: "key-" + hex.EncodeToString(d[:4])})
	}

	return s
}

// Len returns the number of configured keys.
func (s *StaticKeys) Len() int { return len(s.keys) }

// Authenticate returns the client ID bound to key. Every configured key is
// compared so the running time does not depend on which one matched.
func (s *StaticKeys) Authenticate(key string) (string, bool) {
	d := sha256.Sum256([]byte(key))

	var clientID string

	for i := range s.keys {
		if subtle.ConstantTimeCompare(d[:], s.keys[i].digest[:]) == 1 {
			clientID = s.keys[i].clientID
		}
	}

	return clientID, clientID != ""
}

// keyHash returns a hex-encoded SHA-256 digest so raw keys never reach logs or maps.
func keyHash(key string) string {
	h := sha256.Sum256([]byte(key))
	return hex.EncodeToString(h[:])
}
