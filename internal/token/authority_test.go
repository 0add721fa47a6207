package token

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/myflix/myflix/internal/credential"
)

const testSecret = "unit-test-secret"

func testUser() credential.User {
	return credential.User{Username: "alice77", Email: "alice@example.com"}
}

func TestIssueAndAuthenticate(t *testing.T) {
	a := NewAuthority(testSecret, time.Hour)

	signed, exp, err := a.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if until := time.Until(exp); until < 59*time.Minute || until > time.Hour {
		t.Fatalf("unexpected expiry %s", exp)
	}

	identity, err := a.Authenticate(context.Background(), signed)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if identity.Username != "alice77" {
		t.Fatalf("expected subject alice77, got %q", identity.Username)
	}
}

func TestAuthenticateExpired(t *testing.T) {
	a := NewAuthority(testSecret, time.Hour)
	a.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	signed, _, err := a.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, err = a.Authenticate(context.Background(), signed)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestAuthenticateTamperedSignature(t *testing.T) {
	a := NewAuthority(testSecret, time.Hour)

	signed, _, err := a.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	flipped := flipSignatureByte(signed)
	if _, err := a.Authenticate(context.Background(), flipped); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

// A token that is both expired and forged must read as invalid, never as
// merely expired.
func TestTamperedBeatsExpired(t *testing.T) {
	a := NewAuthority(testSecret, time.Hour)
	a.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	signed, _, err := a.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	flipped := flipSignatureByte(signed)
	_, err = a.Authenticate(context.Background(), flipped)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
	if errors.Is(err, ErrTokenExpired) {
		t.Fatalf("forged token must not surface as expired")
	}
}

func TestAuthenticateGarbled(t *testing.T) {
	a := NewAuthority(testSecret, time.Hour)

	for _, raw := range []string{"", "garbage", "a.b", "a.b.c.d", "not.a.jwt"} {
		if _, err := a.Authenticate(context.Background(), raw); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("token %q: expected ErrTokenInvalid, got %v", raw, err)
		}
	}
}

func TestAuthenticateWrongSecret(t *testing.T) {
	issuer := NewAuthority("one-secret", time.Hour)
	verifier := NewAuthority("another-secret", time.Hour)

	signed, _, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := verifier.Authenticate(context.Background(), signed); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestAuthenticateMissingSubject(t *testing.T) {
	a := NewAuthority(testSecret, time.Hour)

	signed, _, err := a.Issue(credential.User{})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := a.Authenticate(context.Background(), signed); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestStrictModeRejectsDeletedAccount(t *testing.T) {
	repo := credential.NewMemoryRepository()
	users := credential.NewService(repo, credential.NewHasher(4))
	ctx := context.Background()

	if _, err := users.Register(ctx, credential.RegisterInput{Username: "alice77", Password: "pw", Email: "a@example.com"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	a := NewAuthority(testSecret, time.Hour, WithAccountCheck(repo))
	signed, _, err := a.Issue(credential.User{Username: "alice77"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := a.Authenticate(ctx, signed); err != nil {
		t.Fatalf("authenticate with live account: %v", err)
	}

	if err := users.Remove(ctx, "alice77"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	if _, err := a.Authenticate(ctx, signed); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid after account deletion, got %v", err)
	}
}

func TestAuthorize(t *testing.T) {
	if err := Authorize(Identity{Username: "alice"}, "alice"); err != nil {
		t.Fatalf("expected owner to be authorized: %v", err)
	}
	if err := Authorize(Identity{Username: "alice"}, "bob"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	// Exact, case-sensitive match.
	if err := Authorize(Identity{Username: "Alice"}, "alice"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected case mismatch to be forbidden, got %v", err)
	}
}

// flipSignatureByte corrupts the first byte of the signature segment. The
// final base64url character carries unused padding bits, so the first one is
// the reliable place to force a MAC mismatch.
func flipSignatureByte(signed string) string {
	dot := strings.LastIndex(signed, ".")
	first := signed[dot+1]
	replacement := byte('A')
	if first == replacement {
		replacement = 'B'
	}
	return signed[:dot+1] + string(replacement) + signed[dot+2:]
}
