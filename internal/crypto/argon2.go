package crypto

import (
	"golang.org/x/crypto/argon2"
)

// PasswordHash derives the credential hash for a password and salt using
// Argon2id at the fixed cost constants. Deterministic for identical
// inputs; the constants are shared by every client that will ever verify
// a record produced here and must not change without versioning records.
func PasswordHash(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, ArgonOpsLimit, ArgonMemLimit, ArgonThreads, PasswordHashSize)
}

// StretchKey derives a 32-byte secretbox key from a passphrase and salt,
// at the same Argon2id cost as PasswordHash. Used to key the encrypted
// storage vault.
func StretchKey(passphrase, salt []byte) *[KeySize]byte {
	secret := argon2.IDKey(passphrase, salt, ArgonOpsLimit, ArgonMemLimit, ArgonThreads, KeySize)
	key := new([KeySize]byte)
	copy(key[:], secret)
	return key
}
