// Package keystore provides the local secure storage backends the
// encryption core persists key material through.
//
// The contract is a small key-value store of text keys to opaque binary
// values, with all-or-nothing writes. Three backends implement it:
//
//   - [Memory]: map-backed and ephemeral. The default, the test double,
//     and the right choice when the host platform supplies its own secure
//     storage above the core.
//
//   - [File]: a single-file encrypted vault. The whole store is
//     CBOR-serialized and sealed with XSalsa20-Poly1305 under a key
//     stretched from a passphrase with Argon2id. Every write replaces the
//     file atomically, keeping a one-deep backup.
//
//   - [Bolt]: a bbolt database, optionally sealing each value with a key
//     derived from a caller-supplied master key. Suited to desktop hosts
//     where the database file lives on an encrypted disk or the master
//     key comes from an OS keychain.
//
// The core stores only small records here (an identity keypair, a map of
// room keys), so none of the backends are tuned for bulk data.
package keystore
