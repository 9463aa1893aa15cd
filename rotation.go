package e2ee

import (
	"github.com/idan2025/tor-chat-app-sub000/internal/crypto"
)

// RotateRoomKey generates a fresh key for roomID, stores it locally, and
// seals it once per recipient with the local identity's private key,
// keyed by the caller's user identifiers. Messages encrypted under the
// old key stop decrypting with the stored key the moment this returns.
//
// A failure sealing for one recipient is returned as a *RecipientError
// naming them, together with the envelopes sealed so far. The new key is
// already stored locally at that point; the caller re-exports to the
// remaining recipients with ExportRoomKey rather than rotating again.
func (k *Keyring) RotateRoomKey(roomID string, recipients map[string]string) (map[string]string, error) {
	ident, err := k.identity()
	if err != nil {
		return nil, err
	}

	newKey, err := GenerateRoomKey()
	if err != nil {
		return nil, err
	}
	if err := k.StoreRoomKey(roomID, newKey); err != nil {
		return nil, err
	}

	envelopes := make(map[string]string, len(recipients))
	for userID, publicKey := range recipients {
		pub, err := decodeKey(publicKey)
		if err != nil {
			return envelopes, &RecipientError{UserID: userID, Err: err}
		}
		sealed, err := crypto.EncryptAsymmetric([]byte(newKey), pub, ident.PrivateKey)
		if err != nil {
			return envelopes, &RecipientError{UserID: userID, Err: wrapCryptoError("seal room key", err)}
		}
		envelopes[userID] = crypto.ToBase64(sealed)
	}

	k.log.Noticef("rotated room key for %s, %d recipients", roomID, len(recipients))
	return envelopes, nil
}
