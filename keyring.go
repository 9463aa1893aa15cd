package e2ee

import (
	"fmt"
	"sync"

	"gopkg.in/op/go-logging.v1"

	"github.com/idan2025/tor-chat-app-sub000/internal/crypto"
	"github.com/idan2025/tor-chat-app-sub000/keystore"
	"github.com/idan2025/tor-chat-app-sub000/log"
)

// Storage keys shared with the other platform clients. The records under
// them are JSON, so migrating a device between platforms is a JSON
// transform, never a re-encryption.
const (
	keypairStorageKey  = "crypto:user-keypair"
	roomKeysStorageKey = "crypto:room-keys"
)

// Keyring is the end-to-end encryption core for one local identity. It
// owns the stored identity keypair, the per-room symmetric keys, and the
// storage handle they persist through.
//
// All methods are safe for concurrent use. Every operation is a
// synchronous, CPU-bound call; password hashing and key generation can
// take tens of milliseconds, so callers with an event loop run them off
// it.
type Keyring struct {
	store keystore.Store
	log   *logging.Logger

	// roomKeys caches the persisted room-key map, text-encoded exactly
	// as stored. Updated only after a persist succeeds, so cache and
	// store never diverge.
	roomKeys map[string]string
	mu       sync.RWMutex
	closed   bool
}

// New creates a keyring with the given options. The random source
// self-test runs first: if the CSPRNG fails, construction is refused
// with ErrInitializationFailed, because no key or nonce generated
// afterwards could be trusted.
func New(opts ...Option) (*Keyring, error) {
	if err := crypto.SelfTest(); err != nil {
		return nil, wrapCryptoError("self-test", err)
	}

	cfg := &keyringConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.store == nil {
		cfg.store = keystore.NewMemory()
	}
	if cfg.logBackend == nil {
		cfg.logBackend = log.Disabled()
	}

	k := &Keyring{
		store:    cfg.store,
		log:      cfg.logBackend.GetLogger("e2ee"),
		roomKeys: make(map[string]string),
	}

	k.log.Debugf("keyring ready")
	return k, nil
}

// checkClosed returns ErrKeyringClosed if the keyring has been closed.
func (k *Keyring) checkClosed() error {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if k.closed {
		return ErrKeyringClosed
	}
	return nil
}

// Close closes the keyring and the store it owns. Close is idempotent;
// every other method fails with ErrKeyringClosed afterwards.
func (k *Keyring) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.closed {
		return nil
	}
	k.closed = true
	k.roomKeys = make(map[string]string)

	if err := k.store.Close(); err != nil {
		return wrapStorageError("close", err)
	}
	return nil
}

// decodeKey decodes text-encoded key material into the fixed-size form
// the cipher implementations take. Room keys, public keys, and private
// keys are all 32 bytes.
func decodeKey(text string) (*[crypto.KeySize]byte, error) {
	raw, err := crypto.FromBase64(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	key, err := crypto.KeyFromBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidKey, len(raw))
	}
	return key, nil
}

// decodePayload decodes a text-encoded encrypted payload to raw bytes.
func decodePayload(text string) ([]byte, error) {
	raw, err := crypto.FromBase64(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return raw, nil
}
