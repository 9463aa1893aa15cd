package keystore

import (
	"fmt"

	bolt "go.etcd.io/bbolt"
	"gopkg.in/op/go-logging.v1"

	"github.com/idan2025/tor-chat-app-sub000/internal/crypto"
	"github.com/idan2025/tor-chat-app-sub000/log"
)

const (
	storageBucket  = "storage"
	metadataBucket = "metadata"
	versionKey     = "version"

	// vaultKeyContext domain-separates the value-sealing subkey from any
	// other use of the same master key.
	vaultKeyContext = "e2ee:keystore:bolt:v1"
)

// Bolt is a Store backed by a bbolt database. With a master key
// configured, each value is sealed with XSalsa20-Poly1305 under an
// HKDF-derived subkey before it is written; without one, values are
// stored in the clear for hosts whose disk is already encrypted.
type Bolt struct {
	logger *logging.Logger

	db       *bolt.DB
	master   []byte
	vaultKey *[crypto.KeySize]byte
}

// BoltOption is an option for NewBolt.
type BoltOption func(*Bolt)

// WithVaultKey configures value sealing under a subkey derived from the
// 32-byte master key. The same master key must be supplied on every open.
func WithVaultKey(master []byte) BoltOption {
	return func(b *Bolt) {
		b.master = master
	}
}

// WithBoltLogger sets the logger used by the store. The default discards
// everything.
func WithBoltLogger(l *logging.Logger) BoltOption {
	return func(b *Bolt) {
		b.logger = l
	}
}

// NewBolt creates (or loads) a bolt-backed store at the file f.
func NewBolt(f string, opts ...BoltOption) (*Bolt, error) {
	b := new(Bolt)
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = log.Disabled().GetLogger("keystore/bolt")
	}
	if b.master != nil {
		vaultKey, err := crypto.DeriveSubkey(b.master, vaultKeyContext)
		if err != nil {
			return nil, err
		}
		b.vaultKey = vaultKey
		b.master = nil
	}

	var err error
	b.db, err = bolt.Open(f, 0600, nil)
	if err != nil {
		return nil, err
	}

	if err = b.db.Update(func(tx *bolt.Tx) error {
		mBkt, err := tx.CreateBucketIfNotExists([]byte(metadataBucket))
		if err != nil {
			return err
		}
		if _, err = tx.CreateBucketIfNotExists([]byte(storageBucket)); err != nil {
			return err
		}

		if ver := mBkt.Get([]byte(versionKey)); ver != nil {
			// Loaded an existing database.
			if len(ver) != 1 || ver[0] != 0 {
				return fmt.Errorf("keystore: incompatible bolt database version: %d", uint(ver[0]))
			}
			return nil
		}
		return mBkt.Put([]byte(versionKey), []byte{0})
	}); err != nil {
		// The struct isn't getting returned so clean up the database.
		b.db.Close()
		return nil, err
	}

	b.logger.Noticef("opened bolt store %s (sealed values: %v)", f, b.vaultKey != nil)
	return b, nil
}

// Get returns the value stored under key, or ErrKeyNotFound. With a
// master key configured, a value that fails to unseal surfaces as
// ErrVaultAuthFailed.
func (b *Bolt) Get(key string) ([]byte, error) {
	var value []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket([]byte(storageBucket)).Get([]byte(key))
		if raw == nil {
			return ErrKeyNotFound
		}
		// raw is only valid inside the transaction.
		value = make([]byte, len(raw))
		copy(value, raw)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if b.vaultKey != nil {
		plaintext, err := crypto.DecryptSymmetric(value, b.vaultKey)
		if err != nil {
			return nil, ErrVaultAuthFailed
		}
		value = plaintext
	}
	return value, nil
}

// Put stores value under key, replacing any existing value. The bolt
// transaction makes the write all-or-nothing.
func (b *Bolt) Put(key string, value []byte) error {
	stored := value
	if b.vaultKey != nil {
		sealed, err := crypto.EncryptSymmetric(value, b.vaultKey)
		if err != nil {
			return err
		}
		stored = sealed
	}

	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(storageBucket)).Put([]byte(key), stored)
	})
	if err == nil {
		b.logger.Debugf("stored %s", key)
	}
	return err
}

// Delete removes key. Deleting an absent key is not an error.
func (b *Bolt) Delete(key string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(storageBucket)).Delete([]byte(key))
	})
}

// Close syncs and closes the database.
func (b *Bolt) Close() error {
	if err := b.db.Sync(); err != nil {
		b.db.Close()
		return err
	}
	return b.db.Close()
}
