package token

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/myflix/myflix/internal/credential"
)

var (
	// ErrTokenExpired means the signature checked out but the validity
	// window has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid covers malformed, unsigned, signature-mismatched and
	// claim-incomplete tokens.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrForbidden means an authenticated identity does not own the target
	// resource.
	ErrForbidden = errors.New("identity does not own resource")
)

// Identity is the decoded subject of a verified bearer token.
type Identity struct {
	Username string
}

// Finder confirms that an account still exists. Only consulted in strict mode.
type Finder interface {
	FindByUsername(ctx context.Context, username string) (credential.User, error)
}

// Authority mints and validates HS256 bearer tokens. It holds the only copy
// of the signing secret; it never sees raw passwords. Safe for concurrent use:
// all fields are read-only after construction.
type Authority struct {
	secret   []byte
	ttl      time.Duration
	accounts Finder
	now      func() time.Time
}

// Option configures an Authority.
type Option func(*Authority)

// WithAccountCheck enables strict validation: every Authenticate call
// re-fetches the subject's account and rejects tokens for deleted accounts,
// at the cost of one repository lookup per request.
func WithAccountCheck(accounts Finder) Option {
	return func(a *Authority) { a.accounts = accounts }
}

// NewAuthority builds a token authority. The secret comes from configuration;
// rotating it invalidates every token issued before the rotation.
func NewAuthority(secret string, ttl time.Duration, opts ...Option) *Authority {
	a := &Authority{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Issue signs a claim set for an already-verified user and returns the
// compact token along with its expiry.
func (a *Authority) Issue(user credential.User) (string, time.Time, error) {
	now := a.now()
	exp := now.Add(a.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   user.Username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Authenticate verifies a presented token and returns the identity it proves.
// Expiry is reported as ErrTokenExpired; every other defect as ErrTokenInvalid.
func (a *Authority) Authenticate(ctx context.Context, raw string) (Identity, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		// A token can be both tampered with and past its expiry; the
		// signature verdict wins so that forgeries never read as merely
		// expired.
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid),
			errors.Is(err, jwt.ErrTokenMalformed),
			errors.Is(err, jwt.ErrTokenUnverifiable):
			return Identity{}, ErrTokenInvalid
		case errors.Is(err, jwt.ErrTokenExpired):
			return Identity{}, ErrTokenExpired
		default:
			return Identity{}, ErrTokenInvalid
		}
	}
	if claims.Subject == "" {
		return Identity{}, ErrTokenInvalid
	}

	if a.accounts != nil {
		if _, err := a.accounts.FindByUsername(ctx, claims.Subject); err != nil {
			return Identity{}, ErrTokenInvalid
		}
	}

	return Identity{Username: claims.Subject}, nil
}

// Authorize allows the identity to act on a resource owned by owner. The
// comparison is exact and case-sensitive; a mismatch yields ErrForbidden with
// no hint about the actual owner.
func Authorize(id Identity, owner string) error {
	if id.Username != owner {
		return ErrForbidden
	}
	return nil
}
