package account

import (
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("pw1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Fatalf("expected self-describing bcrypt digest, got %q", hash)
	}
	if !VerifyPassword(hash, "pw1") {
		t.Fatal("expected password to verify against its own digest")
	}
	if VerifyPassword(hash, "wrong") {
		t.Fatal("expected wrong password to fail verification")
	}
}

func TestHashPasswordSaltsEveryCall(t *testing.T) {
	first, err := HashPassword("pw1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	second, err := HashPassword("pw1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if first == second {
		t.Fatal("expected salted digests to differ across calls")
	}
	if !VerifyPassword(first, "pw1") || !VerifyPassword(second, "pw1") {
		t.Fatal("expected both digests to verify")
	}
}

func TestVerifyPasswordMalformedDigest(t *testing.T) {
	for _, bad := range []string{"", "not-a-digest", "$2a$broken"} {
		if VerifyPassword(bad, "pw1") {
			t.Fatalf("expected malformed digest %q to verify false", bad)
		}
	}
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	if _, err := HashPassword(""); err == nil {
		t.Fatal("expected error for empty password")
	}
}
