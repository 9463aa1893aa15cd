package crypto

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"io"
)

// randReader is the random source used for all key, nonce, and salt
// generation. It defaults to crypto/rand and can be overridden for testing.
var randReader io.Reader = rand.Reader

// RandomBytes returns n cryptographically random bytes.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(randReader, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEntropySource, err)
	}
	return b, nil
}

// newNonce returns a fresh random nonce.
func newNonce() (*[NonceSize]byte, error) {
	nonce := new([NonceSize]byte)
	if _, err := io.ReadFull(randReader, nonce[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEntropySource, err)
	}
	return nonce, nil
}

// SelfTest sanity-checks the random source: two reads must succeed,
// differ from each other, and not be all zero. A failure means the
// process cannot generate keys or nonces safely and must not proceed to
// any other operation.
func SelfTest() error {
	a, err := RandomBytes(KeySize)
	if err != nil {
		return err
	}
	b, err := RandomBytes(KeySize)
	if err != nil {
		return err
	}
	if bytes.Equal(a, b) {
		return fmt.Errorf("%w: repeated output", ErrEntropySource)
	}
	zero := make([]byte, KeySize)
	if bytes.Equal(a, zero) || bytes.Equal(b, zero) {
		return fmt.Errorf("%w: all-zero output", ErrEntropySource)
	}
	return nil
}
