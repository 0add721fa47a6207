package credential

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used when none is configured. At this
// cost a single hash takes tens of milliseconds, which bounds per-login CPU
// time while keeping offline guessing expensive.
const DefaultCost = 10

// ErrEmptySecret is returned when an empty password is offered for hashing.
var ErrEmptySecret = errors.New("secret must not be empty")

// Hasher derives and checks salted one-way password digests.
type Hasher struct {
	cost int
}

// NewHasher builds a Hasher with the given bcrypt cost. Costs outside the
// algorithm's legal range fall back to DefaultCost.
func NewHasher(cost int) Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return Hasher{cost: cost}
}

// Hash derives a salted digest of secret. Two calls with the same secret
// produce different digests; both verify.
func (h Hasher) Hash(secret string) ([]byte, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return bcrypt.GenerateFromPassword([]byte(secret), h.cost)
}

// Verify reports whether secret matches hash. Malformed or truncated hashes
// count as a mismatch; callers cannot tell a wrong password from a corrupt
// record, and bcrypt's comparison is constant-time.
func (h Hasher) Verify(secret string, hash []byte) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(secret)) == nil
}
