package crypto

const (
	// KeySize is the size of a symmetric room key in bytes.
	KeySize = 32
	// NonceSize is the size of an XSalsa20-Poly1305 nonce in bytes.
	NonceSize = 24
	// TagSize is the size of the Poly1305 authenticator in bytes.
	TagSize = 16

	// PublicKeySize is the size of a Curve25519 public key in bytes.
	PublicKeySize = 32
	// PrivateKeySize is the size of a Curve25519 private key in bytes.
	PrivateKeySize = 32

	// SaltSize is the size of a password salt in bytes.
	SaltSize = 16
	// PasswordHashSize is the size of a derived credential hash in bytes.
	PasswordHashSize = 32

	// ArgonOpsLimit is the Argon2id pass count. Together with
	// ArgonMemLimit it matches libsodium's interactive cost level, which
	// is what the other clients hash with.
	ArgonOpsLimit = 2
	// ArgonMemLimit is the Argon2id memory cost in KiB (64 MiB).
	ArgonMemLimit = 64 * 1024
	// ArgonThreads is the Argon2id lane count. libsodium always computes
	// crypto_pwhash with a single lane, so records verify across
	// platforms only at 1.
	ArgonThreads = 1
)
