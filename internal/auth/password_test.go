package auth

import (
	"strings"
	"testing"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hasher := NewPasswordHasher()

	hash, err := hasher.Hash("s3cure-pass")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$") {
		t.Errorf("Unexpected hash format: %s", hash)
	}

	ok, err := hasher.Verify("s3cure-pass", hash)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !ok {
		t.Error("Expected password to verify")
	}

	ok, err = hasher.Verify("wrong-pass", hash)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if ok {
		t.Error("Expected wrong password to fail verification")
	}

	// Hashing the same password twice produces different salts
	hash2, err := hasher.Hash("s3cure-pass")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if hash == hash2 {
		t.Error("Expected distinct salts for repeated hashes")
	}
}

func TestPasswordVerifyMalformedHash(t *testing.T) {
	hasher := NewPasswordHasher()

	if _, err := hasher.Verify("pass", "not-a-hash"); err == nil {
		t.Error("Expected error for malformed hash")
	}
	if _, err := hasher.Verify("pass", "$argon2id$v=19$m=x,t=y,p=z$salt$hash"); err == nil {
		t.Error("Expected error for malformed parameters")
	}
}
