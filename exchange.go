package e2ee

import (
	"fmt"

	"github.com/idan2025/tor-chat-app-sub000/internal/crypto"
)

// EncryptForUser seals plaintext for one recipient, authenticated by the
// sender's private key. Framing and encoding match EncryptMessage. This
// is the only path room keys travel between identities; bulk content
// never goes through it.
func EncryptForUser(plaintext []byte, recipientPublicKey, senderPrivateKey string) (string, error) {
	pub, err := decodeKey(recipientPublicKey)
	if err != nil {
		return "", err
	}
	priv, err := decodeKey(senderPrivateKey)
	if err != nil {
		return "", err
	}
	sealed, err := crypto.EncryptAsymmetric(plaintext, pub, priv)
	if err != nil {
		return "", wrapCryptoError("encrypt for user", err)
	}
	return crypto.ToBase64(sealed), nil
}

// DecryptFromUser opens a payload produced by EncryptForUser, given the
// sender's public key and the recipient's private key. The error split
// matches DecryptMessage: ErrInvalidPayload for malformed payloads,
// ErrDecryptionFailed when the authenticator does not verify.
func DecryptFromUser(payload, senderPublicKey, recipientPrivateKey string) ([]byte, error) {
	pub, err := decodeKey(senderPublicKey)
	if err != nil {
		return nil, err
	}
	priv, err := decodeKey(recipientPrivateKey)
	if err != nil {
		return nil, err
	}
	raw, err := decodePayload(payload)
	if err != nil {
		return nil, err
	}
	plaintext, err := crypto.DecryptAsymmetric(raw, pub, priv)
	if err != nil {
		return nil, wrapCryptoError("decrypt from user", err)
	}
	return plaintext, nil
}

// ExportRoomKey seals the stored key for roomID to one recipient,
// authenticated by the local identity's private key. The envelope
// plaintext is the text-encoded key, which is what ImportRoomKey on the
// recipient's side expects. Requires a stored identity keypair and a
// stored key for the room.
func (k *Keyring) ExportRoomKey(roomID, recipientPublicKey string) (string, error) {
	ident, err := k.identity()
	if err != nil {
		return "", err
	}
	key, ok, err := k.RoomKey(roomID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrRoomKeyNotFound, roomID)
	}

	pub, err := decodeKey(recipientPublicKey)
	if err != nil {
		return "", err
	}
	sealed, err := crypto.EncryptAsymmetric([]byte(key), pub, ident.PrivateKey)
	if err != nil {
		return "", wrapCryptoError("export room key", err)
	}

	k.log.Debugf("exported room key for %s", roomID)
	return crypto.ToBase64(sealed), nil
}

// ImportRoomKey opens a room-key envelope from the named sender with the
// local identity's private key and stores the recovered key for roomID,
// replacing any existing key. The recovered content must be a valid
// text-encoded key; anything else is ErrInvalidKey.
func (k *Keyring) ImportRoomKey(roomID, payload, senderPublicKey string) error {
	ident, err := k.identity()
	if err != nil {
		return err
	}
	pub, err := decodeKey(senderPublicKey)
	if err != nil {
		return err
	}
	raw, err := decodePayload(payload)
	if err != nil {
		return err
	}

	opened, err := crypto.DecryptAsymmetric(raw, pub, ident.PrivateKey)
	if err != nil {
		return wrapCryptoError("import room key", err)
	}
	if err := k.StoreRoomKey(roomID, string(opened)); err != nil {
		return err
	}

	k.log.Debugf("imported room key for %s", roomID)
	return nil
}
