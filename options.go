package e2ee

import (
	"github.com/idan2025/tor-chat-app-sub000/keystore"
	"github.com/idan2025/tor-chat-app-sub000/log"
)

// keyringConfig holds configuration for the keyring.
type keyringConfig struct {
	store      keystore.Store
	logBackend *log.Backend
}

// Option configures the keyring.
type Option func(*keyringConfig)

// WithStore sets the storage backend for persisted key material.
// The keyring takes ownership of the store and closes it on Close.
// Default: an in-memory store (keys are lost when the process exits).
func WithStore(s keystore.Store) Option {
	return func(c *keyringConfig) {
		c.store = s
	}
}

// WithLogBackend sets the logging backend.
// Default: logging disabled.
func WithLogBackend(b *log.Backend) Option {
	return func(c *keyringConfig) {
		c.logBackend = b
	}
}
