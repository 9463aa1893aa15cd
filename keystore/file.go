package keystore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/op/go-logging.v1"

	"github.com/idan2025/tor-chat-app-sub000/internal/crypto"
	"github.com/idan2025/tor-chat-app-sub000/log"
)

// File is a Store persisted as a single encrypted vault file. The entire
// key-value state is CBOR-serialized and sealed with XSalsa20-Poly1305
// under a key stretched from the passphrase with Argon2id. On-disk layout
// is salt || nonce || ciphertext-with-tag; the salt is fixed at vault
// creation, the nonce is fresh for every write.
type File struct {
	sync.RWMutex

	logger *logging.Logger

	path string
	salt []byte
	key  *[crypto.KeySize]byte

	values map[string][]byte
	closed bool
}

// FileOption is an option for OpenFile.
type FileOption func(*File)

// WithFileLogger sets the logger used by the vault. The default discards
// everything.
func WithFileLogger(l *logging.Logger) FileOption {
	return func(f *File) {
		f.logger = l
	}
}

// OpenFile opens the vault at path with the given passphrase, creating an
// empty vault if the file does not exist. A wrong passphrase and a
// corrupted vault are indistinguishable and both surface as
// ErrVaultAuthFailed.
func OpenFile(path string, passphrase []byte, opts ...FileOption) (*File, error) {
	f := &File{
		path:   path,
		values: make(map[string][]byte),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		f.logger = log.Disabled().GetLogger("keystore/file")
	}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := f.create(passphrase); err != nil {
			return nil, err
		}
		f.logger.Noticef("created vault %s", path)
	case err != nil:
		return nil, err
	default:
		if err := f.load(raw, passphrase); err != nil {
			return nil, err
		}
		f.logger.Noticef("opened vault %s with %d entries", path, len(f.values))
	}
	return f, nil
}

func (f *File) create(passphrase []byte) error {
	salt, err := crypto.RandomBytes(crypto.SaltSize)
	if err != nil {
		return err
	}
	f.salt = salt
	f.key = crypto.StretchKey(passphrase, salt)
	return f.write()
}

func (f *File) load(raw, passphrase []byte) error {
	if len(raw) < crypto.SaltSize+crypto.NonceSize+crypto.TagSize {
		return ErrVaultMalformed
	}
	f.salt = append([]byte(nil), raw[:crypto.SaltSize]...)
	f.key = crypto.StretchKey(passphrase, f.salt)

	plaintext, err := crypto.DecryptSymmetric(raw[crypto.SaltSize:], f.key)
	if err != nil {
		return ErrVaultAuthFailed
	}
	if err := cbor.Unmarshal(plaintext, &f.values); err != nil {
		return fmt.Errorf("%w: %v", ErrVaultMalformed, err)
	}
	if f.values == nil {
		f.values = make(map[string][]byte)
	}
	return nil
}

// write seals the current state and atomically replaces the vault file,
// keeping the previous version as a ~ backup. Callers hold the lock.
func (f *File) write() error {
	plaintext, err := cbor.Marshal(f.values)
	if err != nil {
		return err
	}
	sealed, err := crypto.EncryptSymmetric(plaintext, f.key)
	if err != nil {
		return err
	}
	blob := make([]byte, 0, len(f.salt)+len(sealed))
	blob = append(blob, f.salt...)
	blob = append(blob, sealed...)

	tmpFn := f.path + ".tmp"
	backupFn := f.path + "~"
	out, err := os.OpenFile(tmpFn, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	if _, err = out.Write(blob); err != nil {
		out.Close()
		return err
	}
	if err = out.Sync(); err != nil {
		out.Close()
		return err
	}
	if err = out.Close(); err != nil {
		return err
	}
	if err := os.Rename(f.path, backupFn); err != nil && !os.IsNotExist(err) {
		return err
	}
	dir, err := os.Open(filepath.Dir(f.path))
	if err != nil {
		return err
	}
	defer dir.Close()
	if err := dir.Sync(); err != nil {
		return err
	}
	if err := os.Rename(tmpFn, f.path); err != nil {
		return err
	}
	return dir.Sync()
}

// Get returns the value stored under key, or ErrKeyNotFound.
func (f *File) Get(key string) ([]byte, error) {
	f.RLock()
	defer f.RUnlock()

	if f.closed {
		return nil, ErrClosed
	}
	value, ok := f.values[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Put stores value under key and persists the vault. If the write fails
// the in-memory state is rolled back so it never diverges from disk.
func (f *File) Put(key string, value []byte) error {
	f.Lock()
	defer f.Unlock()

	if f.closed {
		return ErrClosed
	}
	old, existed := f.values[key]
	stored := make([]byte, len(value))
	copy(stored, value)
	f.values[key] = stored

	if err := f.write(); err != nil {
		if existed {
			f.values[key] = old
		} else {
			delete(f.values, key)
		}
		return err
	}
	f.logger.Debugf("stored %s", key)
	return nil
}

// Delete removes key and persists the vault. Deleting an absent key is
// not an error and does not rewrite the file.
func (f *File) Delete(key string) error {
	f.Lock()
	defer f.Unlock()

	if f.closed {
		return ErrClosed
	}
	old, existed := f.values[key]
	if !existed {
		return nil
	}
	delete(f.values, key)

	if err := f.write(); err != nil {
		f.values[key] = old
		return err
	}
	f.logger.Debugf("deleted %s", key)
	return nil
}

// Close wipes the derived vault key from memory and marks the store
// unusable. The file itself is already persistent; nothing is flushed.
func (f *File) Close() error {
	f.Lock()
	defer f.Unlock()

	if f.closed {
		return ErrClosed
	}
	f.closed = true
	for i := range f.key {
		f.key[i] = 0
	}
	f.values = nil
	f.logger.Debugf("closed vault %s", f.path)
	return nil
}
