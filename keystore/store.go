package keystore

import "errors"

var (
	// ErrKeyNotFound is returned by Get when no value is stored under the
	// requested key.
	ErrKeyNotFound = errors.New("keystore: key not found")

	// ErrClosed is returned by operations on a closed store.
	ErrClosed = errors.New("keystore: store closed")

	// ErrVaultAuthFailed is returned when sealed storage fails to
	// authenticate: a wrong passphrase or master key, or a tampered or
	// corrupted vault. The cases are indistinguishable.
	ErrVaultAuthFailed = errors.New("keystore: vault authentication failed")

	// ErrVaultMalformed is returned when a vault file is structurally
	// unusable, for example truncated below the minimum framing size.
	ErrVaultMalformed = errors.New("keystore: vault file malformed")
)

// Store is the secure storage contract the encryption core persists
// through. Implementations must make writes all-or-nothing: after an
// error from Put or Delete the previously stored state is still intact.
type Store interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(key string) ([]byte, error)

	// Put stores value under key, replacing any existing value.
	Put(key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error

	// Close releases the store. Operations after Close fail.
	Close() error
}
