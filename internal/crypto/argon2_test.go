package crypto

import (
	"bytes"
	"testing"
)

func TestPasswordHash_Deterministic(t *testing.T) {
	password := []byte("correct horse battery staple")
	salt := bytes.Repeat([]byte{0x01}, SaltSize)

	first := PasswordHash(password, salt)
	second := PasswordHash(password, salt)

	if !bytes.Equal(first, second) {
		t.Error("identical inputs produced different hashes")
	}
	if len(first) != PasswordHashSize {
		t.Errorf("hash length = %d, want %d", len(first), PasswordHashSize)
	}
}

func TestPasswordHash_SaltSensitivity(t *testing.T) {
	password := []byte("correct horse battery staple")
	saltA := bytes.Repeat([]byte{0x01}, SaltSize)
	saltB := bytes.Repeat([]byte{0x02}, SaltSize)

	if bytes.Equal(PasswordHash(password, saltA), PasswordHash(password, saltB)) {
		t.Error("different salts produced the same hash")
	}
}

func TestPasswordHash_PasswordSensitivity(t *testing.T) {
	salt := bytes.Repeat([]byte{0x01}, SaltSize)

	if bytes.Equal(PasswordHash([]byte("password one"), salt), PasswordHash([]byte("password two"), salt)) {
		t.Error("different passwords produced the same hash")
	}
}

func TestStretchKey_Deterministic(t *testing.T) {
	passphrase := []byte("vault passphrase")
	salt := bytes.Repeat([]byte{0x07}, SaltSize)

	first := StretchKey(passphrase, salt)
	second := StretchKey(passphrase, salt)

	if !bytes.Equal(first[:], second[:]) {
		t.Error("identical inputs produced different keys")
	}
}

func TestStretchKey_SaltSensitivity(t *testing.T) {
	passphrase := []byte("vault passphrase")
	saltA := bytes.Repeat([]byte{0x07}, SaltSize)
	saltB := bytes.Repeat([]byte{0x08}, SaltSize)

	if bytes.Equal(StretchKey(passphrase, saltA)[:], StretchKey(passphrase, saltB)[:]) {
		t.Error("different salts produced the same key")
	}
}

func BenchmarkPasswordHash(b *testing.B) {
	password := []byte("correct horse battery staple")
	salt := make([]byte, SaltSize)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		PasswordHash(password, salt)
	}
}
