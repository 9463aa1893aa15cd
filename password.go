package e2ee

import (
	"crypto/subtle"

	"github.com/idan2025/tor-chat-app-sub000/internal/crypto"
)

// HashPassword derives a password verification record: a fresh random
// salt and the Argon2id hash of the password under it, salt || hash,
// text-encoded. The cost constants are fixed and shared with every
// client that verifies these records; changing them would orphan every
// record already stored.
func HashPassword(password string) (string, error) {
	salt, err := crypto.RandomBytes(crypto.SaltSize)
	if err != nil {
		return "", wrapCryptoError("hash password", err)
	}
	hash := crypto.PasswordHash([]byte(password), salt)

	record := make([]byte, 0, crypto.SaltSize+crypto.PasswordHashSize)
	record = append(record, salt...)
	record = append(record, hash...)
	return crypto.ToBase64(record), nil
}

// VerifyPassword reports whether password matches a record produced by
// HashPassword. The comparison is constant-time. A malformed record is a
// failed verification, never a panic or an error: whatever mangled the
// record, the credentials cannot be accepted.
func VerifyPassword(password, record string) bool {
	raw, err := crypto.FromBase64(record)
	if err != nil {
		return false
	}
	if len(raw) != crypto.SaltSize+crypto.PasswordHashSize {
		return false
	}

	salt := raw[:crypto.SaltSize]
	want := raw[crypto.SaltSize:]
	got := crypto.PasswordHash([]byte(password), salt)
	return subtle.ConstantTimeCompare(want, got) == 1
}
