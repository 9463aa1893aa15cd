package crypto

// KeyFromBytes copies 32 key bytes into the fixed-size form the cipher
// implementations take. All key types in this core (room keys, public
// keys, private keys) are 32 bytes.
func KeyFromBytes(b []byte) (*[KeySize]byte, error) {
	if len(b) != KeySize {
		return nil, ErrInvalidKeySize
	}
	key := new([KeySize]byte)
	copy(key[:], b)
	return key, nil
}
