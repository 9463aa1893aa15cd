package crypto

import (
	"golang.org/x/crypto/nacl/secretbox"
)

// EncryptSymmetric seals plaintext under a 32-byte symmetric key. The
// returned payload is nonce || ciphertext-with-tag, with a fresh random
// nonce for every call. Empty plaintext is valid.
func EncryptSymmetric(plaintext []byte, key *[KeySize]byte) ([]byte, error) {
	nonce, err := newNonce()
	if err != nil {
		return nil, err
	}
	return secretbox.Seal(nonce[:], plaintext, nonce, key), nil
}

// DecryptSymmetric opens a payload produced by EncryptSymmetric. It
// returns ErrInvalidPayload when the payload is too short to contain a
// nonce and tag, and ErrDecryptionFailed when the authenticator does not
// verify (wrong key or tampered ciphertext, indistinguishable).
func DecryptSymmetric(payload []byte, key *[KeySize]byte) ([]byte, error) {
	if len(payload) < NonceSize+TagSize {
		return nil, ErrInvalidPayload
	}
	var nonce [NonceSize]byte
	copy(nonce[:], payload[:NonceSize])
	plaintext, ok := secretbox.Open(nil, payload[NonceSize:], &nonce, key)
	if !ok {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}
