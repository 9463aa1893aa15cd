package crypto

import "errors"

var (
	// ErrDecryptionFailed is returned when an AEAD authenticator does not
	// verify. The caller cannot tell a wrong key from tampered ciphertext
	// and must not try to.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrInvalidPayload is returned when a payload is structurally
	// unusable, for example too short to contain a nonce and tag.
	ErrInvalidPayload = errors.New("invalid payload")

	// ErrInvalidKeySize is returned when key material is not exactly
	// KeySize bytes.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrEntropySource is returned when the random source fails a read
	// or the self-test. Nothing in this package is safe to run after it.
	ErrEntropySource = errors.New("entropy source failure")
)
