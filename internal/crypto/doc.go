// Package crypto provides the cryptographic primitives for the chat
// encryption core. It is the only package that reads the system CSPRNG or
// executes cipher and hash operations; everything above it works with the
// byte formats produced here and encodes them at the storage/wire boundary.
//
// # Algorithm Suite
//
// The suite is fixed by the payload formats of the existing mobile and
// desktop clients, which are built on libsodium:
//
//   - XSalsa20-Poly1305 (crypto_secretbox): symmetric AEAD for message
//     and file content under a shared room key. 32-byte keys, 24-byte
//     nonces, 16-byte tags.
//
//   - Curve25519-XSalsa20-Poly1305 (crypto_box): asymmetric AEAD used to
//     deliver room keys between identities. The sender's private key and
//     the recipient's public key jointly derive the encryption key.
//
//   - Argon2id: memory-hard password hashing at libsodium's interactive
//     cost (2 passes, 64 MiB) with a single lane, so hashes verify
//     byte-for-byte against records produced by the other clients.
//
//   - HKDF-SHA-256: derives purpose-bound subkeys from a master key for
//     storage encryption, with context strings for domain separation.
//
// # Payload Framing
//
// Both AEAD constructions emit nonce || ciphertext-with-tag as a single
// byte sequence. [DecryptSymmetric] and [DecryptAsymmetric] split the
// first NonceSize bytes off as the nonce and reject anything too short to
// hold a nonce and tag before attempting the open.
//
// # Nonce Discipline
//
// Nonces are freshly random for every encryption. Reusing a nonce under
// the same key breaks XSalsa20-Poly1305 completely, so no counter or
// derived nonces exist anywhere in this package; the private newNonce
// helper is the only way one is produced.
//
// # Encoding
//
// [ToBase64] and [FromBase64] implement standard base64 with padding
// (RFC 4648 section 4), the encoding every interoperating client uses for
// stored and transmitted values. Decoding is strict: malformed input is
// reported, never truncated.
package crypto
