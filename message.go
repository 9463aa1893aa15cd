package e2ee

import (
	"fmt"

	"github.com/idan2025/tor-chat-app-sub000/internal/crypto"
)

// EncryptMessage seals plaintext under a room key. The payload is
// nonce || ciphertext-with-tag, text-encoded, with a fresh random nonce
// per call: encrypting the same plaintext twice yields different
// payloads. Empty plaintext is valid and round-trips.
func EncryptMessage(plaintext []byte, roomKey string) (string, error) {
	key, err := decodeKey(roomKey)
	if err != nil {
		return "", err
	}
	sealed, err := crypto.EncryptSymmetric(plaintext, key)
	if err != nil {
		return "", wrapCryptoError("encrypt message", err)
	}
	return crypto.ToBase64(sealed), nil
}

// DecryptMessage opens a payload produced by EncryptMessage under the
// same room key. A structurally unusable payload is ErrInvalidPayload; a
// wrong key or tampered ciphertext is ErrDecryptionFailed, and those two
// causes are indistinguishable.
func DecryptMessage(payload, roomKey string) ([]byte, error) {
	key, err := decodeKey(roomKey)
	if err != nil {
		return nil, err
	}
	raw, err := decodePayload(payload)
	if err != nil {
		return nil, err
	}
	plaintext, err := crypto.DecryptSymmetric(raw, key)
	if err != nil {
		return nil, wrapCryptoError("decrypt message", err)
	}
	return plaintext, nil
}

// EncryptRoomMessage encrypts plaintext for roomID with the stored room
// key. A room this device holds no key for is ErrRoomKeyNotFound here,
// unlike RoomKey: the operation cannot proceed without the key.
func (k *Keyring) EncryptRoomMessage(roomID string, plaintext []byte) (string, error) {
	key, ok, err := k.RoomKey(roomID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrRoomKeyNotFound, roomID)
	}
	return EncryptMessage(plaintext, key)
}

// DecryptRoomMessage decrypts a payload for roomID with the stored room
// key.
func (k *Keyring) DecryptRoomMessage(roomID, payload string) ([]byte, error) {
	key, ok, err := k.RoomKey(roomID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRoomKeyNotFound, roomID)
	}
	return DecryptMessage(payload, key)
}
