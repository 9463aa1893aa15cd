package keystore

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoltRoundTrip(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "store.db")

	b, err := NewBolt(path)
	require.NoError(err, "NewBolt()")

	require.NoError(b.Put("crypto:user-keypair", []byte("record")))

	value, err := b.Get("crypto:user-keypair")
	require.NoError(err)
	require.Equal([]byte("record"), value)
	require.NoError(b.Close())

	reopened, err := NewBolt(path)
	require.NoError(err, "NewBolt() reopen")
	defer reopened.Close()

	value, err = reopened.Get("crypto:user-keypair")
	require.NoError(err)
	require.Equal([]byte("record"), value)
}

func TestBoltGetMissing(t *testing.T) {
	require := require.New(t)

	b, err := NewBolt(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(err)
	defer b.Close()

	_, err = b.Get("nope")
	require.ErrorIs(err, ErrKeyNotFound)
}

func TestBoltDelete(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	b, err := NewBolt(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(err)
	defer b.Close()

	require.NoError(b.Put("k", []byte("v")))
	require.NoError(b.Delete("k"))

	_, err = b.Get("k")
	assert.ErrorIs(err, ErrKeyNotFound)
	assert.NoError(b.Delete("k"), "deleting an absent key is not an error")
}

func TestBoltSealedValues(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "store.db")
	master := bytes.Repeat([]byte{0x42}, 32)
	plaintext := []byte("room key material")

	b, err := NewBolt(path, WithVaultKey(master))
	require.NoError(err)
	require.NoError(b.Put("k", plaintext))

	value, err := b.Get("k")
	require.NoError(err)
	require.Equal(plaintext, value)
	require.NoError(b.Close())

	// Without the master key the stored value is ciphertext.
	raw, err := NewBolt(path)
	require.NoError(err)
	sealed, err := raw.Get("k")
	require.NoError(err)
	require.NotEqual(plaintext, sealed)
	require.Greater(len(sealed), len(plaintext), "sealed form carries nonce and tag")
	require.NoError(raw.Close())

	// The right master key unseals after reopen.
	again, err := NewBolt(path, WithVaultKey(master))
	require.NoError(err)
	defer again.Close()

	value, err = again.Get("k")
	require.NoError(err)
	require.Equal(plaintext, value)
}

func TestBoltWrongMasterKey(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "store.db")

	b, err := NewBolt(path, WithVaultKey(bytes.Repeat([]byte{0x42}, 32)))
	require.NoError(err)
	require.NoError(b.Put("k", []byte("v")))
	require.NoError(b.Close())

	wrong, err := NewBolt(path, WithVaultKey(bytes.Repeat([]byte{0x43}, 32)))
	require.NoError(err)
	defer wrong.Close()

	_, err = wrong.Get("k")
	require.ErrorIs(err, ErrVaultAuthFailed)
}

func TestBoltInvalidMasterKey(t *testing.T) {
	require := require.New(t)

	_, err := NewBolt(filepath.Join(t.TempDir(), "store.db"), WithVaultKey([]byte("short")))
	require.Error(err, "master key must be 32 bytes")
}
