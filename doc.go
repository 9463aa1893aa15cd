// Package e2ee is the end-to-end encryption and key-management core for
// a TOR-routed chat application.
//
// Message confidentiality uses XSalsa20-Poly1305 (crypto_secretbox) under
// per-room symmetric keys, room keys travel between users sealed with
// Curve25519 crypto_box, and password records use Argon2id. Every payload
// and stored record is byte-compatible with the libsodium-based mobile
// and desktop clients.
//
// Basic usage:
//
//	keyring, err := e2ee.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer keyring.Close()
//
//	// Generate and store a room key
//	roomKey, err := e2ee.GenerateRoomKey()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := keyring.StoreRoomKey(roomID, roomKey); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Encrypt a message for the room
//	payload, err := keyring.EncryptRoomMessage(roomID, []byte("hello"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Payload:", payload)
package e2ee
