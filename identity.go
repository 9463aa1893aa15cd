package e2ee

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/idan2025/tor-chat-app-sub000/internal/crypto"
	"github.com/idan2025/tor-chat-app-sub000/keystore"
)

// Keypair is a text-encoded Curve25519 identity keypair. The public key
// is published through the user directory; the private key never leaves
// the local device.
type Keypair struct {
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey"`
}

// GenerateKeypair creates a fresh identity keypair. Pure computation:
// nothing is stored until the caller decides to.
func GenerateKeypair() (*Keypair, error) {
	kp, err := crypto.GenerateKeypair()
	if err != nil {
		return nil, wrapCryptoError("generate keypair", err)
	}
	return &Keypair{
		PublicKey:  crypto.ToBase64(kp.PublicKey[:]),
		PrivateKey: crypto.ToBase64(kp.PrivateKey[:]),
	}, nil
}

// StoreKeypair persists kp as the local identity, replacing any existing
// keypair. Replacing the identity makes everything sealed to the old
// public key undecryptable; callers that must not lose an identity check
// HasKeypair first.
func (k *Keyring) StoreKeypair(kp *Keypair) error {
	if err := k.checkClosed(); err != nil {
		return err
	}
	if kp == nil {
		return fmt.Errorf("%w: nil keypair", ErrInvalidKey)
	}
	if _, err := decodeKey(kp.PublicKey); err != nil {
		return err
	}
	if _, err := decodeKey(kp.PrivateKey); err != nil {
		return err
	}

	record, err := json.Marshal(kp)
	if err != nil {
		return fmt.Errorf("marshal keypair: %w", err)
	}
	if err := k.store.Put(keypairStorageKey, record); err != nil {
		return wrapStorageError("store keypair", err)
	}

	k.log.Debugf("stored identity keypair")
	return nil
}

// LoadKeypair returns the stored identity keypair, or ErrKeypairNotFound
// when this device has none.
func (k *Keyring) LoadKeypair() (*Keypair, error) {
	if err := k.checkClosed(); err != nil {
		return nil, err
	}

	record, err := k.store.Get(keypairStorageKey)
	if err != nil {
		if errors.Is(err, keystore.ErrKeyNotFound) {
			return nil, ErrKeypairNotFound
		}
		return nil, wrapStorageError("load keypair", err)
	}

	var kp Keypair
	if err := json.Unmarshal(record, &kp); err != nil {
		return nil, fmt.Errorf("%w: keypair record: %v", ErrInvalidPayload, err)
	}
	if kp.PublicKey == "" || kp.PrivateKey == "" {
		return nil, fmt.Errorf("%w: keypair record missing fields", ErrInvalidPayload)
	}
	return &kp, nil
}

// HasKeypair reports whether an identity keypair is stored.
func (k *Keyring) HasKeypair() (bool, error) {
	if err := k.checkClosed(); err != nil {
		return false, err
	}

	_, err := k.store.Get(keypairStorageKey)
	if errors.Is(err, keystore.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, wrapStorageError("check keypair", err)
	}
	return true, nil
}

// DeleteKeypair removes the stored identity keypair. Irreversible:
// payloads sealed to the deleted public key are unrecoverable. Deleting
// when no keypair is stored is not an error.
func (k *Keyring) DeleteKeypair() error {
	if err := k.checkClosed(); err != nil {
		return err
	}
	if err := k.store.Delete(keypairStorageKey); err != nil {
		return wrapStorageError("delete keypair", err)
	}

	k.log.Debugf("deleted identity keypair")
	return nil
}

// identity loads the stored keypair in the decoded form the box
// operations take.
func (k *Keyring) identity() (*crypto.Keypair, error) {
	kp, err := k.LoadKeypair()
	if err != nil {
		return nil, err
	}
	pub, err := decodeKey(kp.PublicKey)
	if err != nil {
		return nil, err
	}
	priv, err := decodeKey(kp.PrivateKey)
	if err != nil {
		return nil, err
	}
	return &crypto.Keypair{PublicKey: pub, PrivateKey: priv}, nil
}
