// Package cryptox wraps the key-derivation and hashing primitives used for
// PINs: argon2id verifiers for the local history lock and bcrypt hashes for
// document PINs stored by the registry.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// SaltSize is the length of salts generated for DeriveKey.
const SaltSize = 16

// DeriveKey stretches a PIN into a 32-byte key with argon2id.
func DeriveKey(pin []byte, salt []byte) []byte {
	return argon2.IDKey(pin, salt, 1, 64*1024, 4, 32)
}

// MakeVerifier returns a value that can be stored to check a derived key
// later without storing the key itself.
func MakeVerifier(key []byte) []byte {
	hash := sha256.Sum256(key)
	return hash[:]
}

// CheckVerifier derives a key from pin and salt and compares its verifier
// with want in constant time.
func CheckVerifier(pin, salt, want []byte) bool {
	got := MakeVerifier(DeriveKey(pin, salt))
	return subtle.ConstantTimeCompare(got, want) == 1
}

// HashPIN produces a bcrypt hash for storage next to a document.
func HashPIN(pin string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPIN reports whether pin matches a hash produced by HashPIN.
func CheckPIN(hash, pin string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
}
