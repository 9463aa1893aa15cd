package crypto

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// DeriveSubkey derives a purpose-bound subkey from a 32-byte master key
// using HKDF-SHA-256. The context string provides domain separation so
// distinct uses of the same master key never share key material.
func DeriveSubkey(master []byte, context string) (*[KeySize]byte, error) {
	if len(master) != KeySize {
		return nil, ErrInvalidKeySize
	}

	reader := hkdf.New(sha256.New, master, nil, []byte(context))
	key := new([KeySize]byte)
	if _, err := io.ReadFull(reader, key[:]); err != nil {
		return nil, fmt.Errorf("failed to derive subkey: %w", err)
	}
	return key, nil
}
