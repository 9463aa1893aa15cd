package crypto

import (
	"fmt"

	"golang.org/x/crypto/nacl/box"
)

// Keypair is a Curve25519 keypair for box encryption.
type Keypair struct {
	// PublicKey is the shareable half of the identity.
	PublicKey *[PublicKeySize]byte
	// PrivateKey never leaves the local device.
	PrivateKey *[PrivateKeySize]byte
}

// GenerateKeypair creates a new Curve25519 keypair.
func GenerateKeypair() (*Keypair, error) {
	pub, priv, err := box.GenerateKey(randReader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEntropySource, err)
	}
	return &Keypair{PublicKey: pub, PrivateKey: priv}, nil
}

// EncryptAsymmetric seals plaintext for the holder of peerPublic using
// the sender's private key. Framing matches EncryptSymmetric:
// nonce || ciphertext-with-tag, fresh random nonce per call.
func EncryptAsymmetric(plaintext []byte, peerPublic *[PublicKeySize]byte, ownPrivate *[PrivateKeySize]byte) ([]byte, error) {
	nonce, err := newNonce()
	if err != nil {
		return nil, err
	}
	return box.Seal(nonce[:], plaintext, nonce, peerPublic, ownPrivate), nil
}

// DecryptAsymmetric opens a payload produced by EncryptAsymmetric, given
// the sender's public key and the recipient's private key. Error split is
// the same as DecryptSymmetric: ErrInvalidPayload for short payloads,
// ErrDecryptionFailed when the authenticator does not verify.
func DecryptAsymmetric(payload []byte, peerPublic *[PublicKeySize]byte, ownPrivate *[PrivateKeySize]byte) ([]byte, error) {
	if len(payload) < NonceSize+TagSize {
		return nil, ErrInvalidPayload
	}
	var nonce [NonceSize]byte
	copy(nonce[:], payload[:NonceSize])
	plaintext, ok := box.Open(nil, payload[NonceSize:], &nonce, peerPublic, ownPrivate)
	if !ok {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}
