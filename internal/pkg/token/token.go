package token

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/segmentio/ksuid"
)

// NewID returns a k-sortable identifier for primary keys.
func NewID() string {
	return ksuid.New().String()
}

// NewOpaque returns a URL-safe bearer token with n bytes of entropy.
// Resume and tracking tokens are usable without further authentication,
// so they come straight from crypto/rand.
func NewOpaque(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

const referenceAlphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// NewReferenceCode returns a short human-facing code such as "CI-7K2M9X".
// Ambiguous characters (I, L, O, U) are excluded.
func NewReferenceCode(prefix string, length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, length)
	for i, b := range buf {
		out[i] = referenceAlphabet[int(b)%len(referenceAlphabet)]
	}
	return prefix + "-" + string(out), nil
}
