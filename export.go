package e2ee

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/idan2025/tor-chat-app-sub000/internal/crypto"
)

// ExportVersion is the current identity export format version.
const ExportVersion = 1

// ExportedIdentity contains all data needed to restore a local identity.
// WARNING: This contains private key material - handle securely.
type ExportedIdentity struct {
	// Version is the export format version. MUST be 1.
	Version int `json:"version"`
	// PublicKey is the identity public key (base64, 32 bytes decoded).
	PublicKey string `json:"publicKey"`
	// PrivateKey is the identity private key (base64, 32 bytes decoded).
	PrivateKey string `json:"privateKey"`
	// ExportedAt is the export timestamp. Informational only.
	ExportedAt time.Time `json:"exportedAt"`
}

// Validate checks that the exported data is usable before any of it is
// stored.
func (e *ExportedIdentity) Validate() error {
	if e.Version != ExportVersion {
		return fmt.Errorf("%w: unsupported version %d, expected %d", ErrInvalidImportData, e.Version, ExportVersion)
	}

	if e.PublicKey == "" {
		return fmt.Errorf("%w: publicKey is required", ErrInvalidImportData)
	}
	publicKey, err := crypto.FromBase64(e.PublicKey)
	if err != nil {
		return fmt.Errorf("%w: invalid publicKey encoding", ErrInvalidImportData)
	}
	if len(publicKey) != crypto.PublicKeySize {
		return fmt.Errorf("%w: publicKey size %d, expected %d", ErrInvalidImportData, len(publicKey), crypto.PublicKeySize)
	}

	if e.PrivateKey == "" {
		return fmt.Errorf("%w: privateKey is required", ErrInvalidImportData)
	}
	privateKey, err := crypto.FromBase64(e.PrivateKey)
	if err != nil {
		return fmt.Errorf("%w: invalid privateKey encoding", ErrInvalidImportData)
	}
	if len(privateKey) != crypto.PrivateKeySize {
		return fmt.Errorf("%w: privateKey size %d, expected %d", ErrInvalidImportData, len(privateKey), crypto.PrivateKeySize)
	}

	return nil
}

// ExportIdentity returns a backup snapshot of the stored identity
// keypair. The caller owns where it goes; anywhere it lands holds key
// material equivalent to the identity itself.
func (k *Keyring) ExportIdentity() (*ExportedIdentity, error) {
	kp, err := k.LoadKeypair()
	if err != nil {
		return nil, err
	}

	return &ExportedIdentity{
		Version:    ExportVersion,
		PublicKey:  kp.PublicKey,
		PrivateKey: kp.PrivateKey,
		ExportedAt: time.Now().UTC(),
	}, nil
}

// ImportIdentity validates an exported identity and stores it as the
// local keypair, replacing any existing one.
func (k *Keyring) ImportIdentity(data *ExportedIdentity) error {
	if data == nil {
		return fmt.Errorf("%w: nil export", ErrInvalidImportData)
	}
	if err := data.Validate(); err != nil {
		return err
	}

	return k.StoreKeypair(&Keypair{
		PublicKey:  data.PublicKey,
		PrivateKey: data.PrivateKey,
	})
}

// ExportIdentityToFile exports the identity to a JSON file with secure
// permissions (0600).
func (k *Keyring) ExportIdentityToFile(filePath string) error {
	data, err := k.ExportIdentity()
	if err != nil {
		return err
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal identity export: %w", err)
	}

	if err := os.WriteFile(filePath, jsonData, 0600); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// ImportIdentityFromFile imports an identity from a JSON file produced
// by ExportIdentityToFile.
func (k *Keyring) ImportIdentityFromFile(filePath string) error {
	jsonData, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	var data ExportedIdentity
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImportData, err)
	}

	return k.ImportIdentity(&data)
}
