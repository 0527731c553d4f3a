package utils

import "testing"

func TestHashPassword_VerifyRoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret1", 4) // min cost keeps the test fast
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "secret1" {
		t.Fatal("hash must never equal the plaintext")
	}
	if !VerifyPassword(hash, "secret1") {
		t.Fatal("expected hash to verify against original plaintext")
	}
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret1", 4)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if VerifyPassword(hash, "wrong") {
		t.Fatal("expected mismatch for wrong password")
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	t.Parallel()

	// A malformed stored hash must yield false, never panic or error.
	if VerifyPassword("not-a-bcrypt-hash", "secret1") {
		t.Fatal("expected false for malformed hash")
	}
	if VerifyPassword("", "secret1") {
		t.Fatal("expected false for empty hash")
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("secret1", 4)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	h2, err := HashPassword("secret1", 4)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if h1 == h2 {
		t.Fatal("two hashes of the same password should differ by salt")
	}
}
