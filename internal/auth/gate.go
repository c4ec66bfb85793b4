// Package auth guards report endpoints behind a single shared secret.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"
)

// ErrSecretRequired is returned by NewGate when no secret is configured.
var ErrSecretRequired = errors.New("auth: shared secret is required")

// Decision is the outcome of an authorization check.
type Decision int

const (
	Denied Decision = iota
	Authorized
)

func (d Decision) String() string {
	if d == Authorized {
		return "authorized"
	}
	return "denied"
}

// Gate compares presented credentials against the configured secret.
// It is immutable and safe for concurrent use.
type Gate struct {
	digest [sha256.Size]byte
}

// NewGate builds a Gate for secret. An empty secret is refused so that the
// process cannot start open.
func NewGate(secret string) (*Gate, error) {
	if secret == "" {
		return nil, ErrSecretRequired
	}
	return &Gate{digest: sha256.Sum256([]byte(secret))}, nil
}

// Authorize reports whether presented equals the configured secret.
// Both sides are reduced to fixed-size digests first, so the comparison time
// depends on neither the presented length nor the position of the first mismatch.
func (g *Gate) Authorize(presented string) Decision {
	if g == nil {
		return Denied
	}
	d := sha256.Sum256([]byte(presented))
	match := subtle.ConstantTimeCompare(d[:], g.digest[:])
	if match == 1 && presented != "" {
		return Authorized
	}
	return Denied
}
