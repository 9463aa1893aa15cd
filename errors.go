package e2ee

import (
	"errors"
	"fmt"

	"github.com/idan2025/tor-chat-app-sub000/internal/crypto"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrInitializationFailed is returned when the random source fails
	// its self-test or a read. Nothing produced after this error can be
	// trusted, so construction and key generation refuse to proceed.
	ErrInitializationFailed = errors.New("crypto initialization failed")

	// ErrKeyringClosed is returned when operations are attempted on a
	// closed keyring.
	ErrKeyringClosed = errors.New("keyring has been closed")

	// ErrKeypairNotFound is returned when no identity keypair is stored.
	ErrKeypairNotFound = errors.New("keypair not found")

	// ErrRoomKeyNotFound is returned by operations that need a room key
	// this device does not hold.
	ErrRoomKeyNotFound = errors.New("room key not found")

	// ErrInvalidKey is returned when key material is not valid base64 or
	// does not decode to exactly 32 bytes.
	ErrInvalidKey = errors.New("invalid key material")

	// ErrInvalidPayload is returned when an encrypted payload or stored
	// record is malformed: not valid base64, too short to contain a nonce
	// and tag, or the wrong shape. Distinct from ErrDecryptionFailed.
	ErrInvalidPayload = errors.New("invalid payload")

	// ErrDecryptionFailed is returned when an authenticator does not
	// verify. Wrong key and tampered ciphertext are indistinguishable;
	// callers must not retry or guess.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrInvalidImportData is returned when an exported identity fails
	// validation on import.
	ErrInvalidImportData = errors.New("invalid import data")
)

// E2EEError is implemented by all structured errors from this package.
type E2EEError interface {
	error
	E2EEError() // marker method
}

// StorageError reports a keystore failure during a keyring operation.
// The wrapped error is the backend's own, so errors.Is still matches
// keystore sentinels such as keystore.ErrClosed.
type StorageError struct {
	Op  string // the keyring operation that hit the failure
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure in %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// E2EEError implements the E2EEError interface.
func (e *StorageError) E2EEError() {}

// RecipientError reports which recipient a rotation broadcast failed
// for. The new room key is already stored locally when this is returned;
// the caller re-exports to the named recipient.
type RecipientError struct {
	UserID string
	Err    error
}

func (e *RecipientError) Error() string {
	return fmt.Sprintf("sealing for recipient %s: %v", e.UserID, e.Err)
}

// Unwrap returns the underlying error.
func (e *RecipientError) Unwrap() error {
	return e.Err
}

// E2EEError implements the E2EEError interface.
func (e *RecipientError) E2EEError() {}

// wrapStorageError wraps a keystore error in a StorageError naming the
// failed operation.
func wrapStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// wrapCryptoError converts internal crypto errors to public sentinels.
// This ensures that errors.Is() checks work with public errors without
// internal types escaping the package boundary.
func wrapCryptoError(op string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, crypto.ErrDecryptionFailed):
		return fmt.Errorf("%s: %w", op, ErrDecryptionFailed)
	case errors.Is(err, crypto.ErrInvalidPayload):
		return fmt.Errorf("%s: %w", op, ErrInvalidPayload)
	case errors.Is(err, crypto.ErrInvalidKeySize):
		return fmt.Errorf("%s: %w", op, ErrInvalidKey)
	case errors.Is(err, crypto.ErrEntropySource):
		return fmt.Errorf("%s: %w", op, ErrInitializationFailed)
	}

	return fmt.Errorf("%s: %w", op, err)
}
