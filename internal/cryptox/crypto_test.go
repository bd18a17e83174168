package cryptox

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	pin := []byte("secret-password")
	salt := []byte("fixed-salt")

	key1 := DeriveKey(pin, salt)
	key2 := DeriveKey(pin, salt)

	if !bytes.Equal(key1, key2) {
		t.Errorf("expected same result for same inputs, got different")
	}

	// snapshot of argon2id(t=1, m=64MiB, p=4, 32 bytes)
	expectedHex := "34f7a1c64df63ab1ad5b5ee06e64db5713b35f81839823304db63e8e5e6a6a39"
	if hex.EncodeToString(key1) != expectedHex {
		t.Errorf("expected %s, got %s", expectedHex, hex.EncodeToString(key1))
	}
}

func TestDeriveKey_DifferentSalts(t *testing.T) {
	pin := []byte("1234")

	if bytes.Equal(DeriveKey(pin, []byte("salt-1")), DeriveKey(pin, []byte("salt-2"))) {
		t.Errorf("expected different results for different salts, got same")
	}
}

func TestCheckVerifier(t *testing.T) {
	salt := []byte("0123456789abcdef")
	want := MakeVerifier(DeriveKey([]byte("4321"), salt))

	if !CheckVerifier([]byte("4321"), salt, want) {
		t.Fatal("expected matching PIN to verify")
	}
	if CheckVerifier([]byte("0000"), salt, want) {
		t.Fatal("expected wrong PIN to be rejected")
	}
	if CheckVerifier([]byte("4321"), salt, nil) {
		t.Fatal("expected empty verifier to be rejected")
	}
}

func TestHashPIN_CheckPIN(t *testing.T) {
	hash, err := HashPIN("1234")
	if err != nil {
		t.Fatalf("HashPIN: %v", err)
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Fatalf("expected bcrypt hash, got %q", hash)
	}
	if !CheckPIN(hash, "1234") {
		t.Fatal("expected PIN to match its hash")
	}
	if CheckPIN(hash, "9999") {
		t.Fatal("expected wrong PIN to fail")
	}
	if CheckPIN("not-a-hash", "1234") {
		t.Fatal("expected malformed hash to fail")
	}
}
