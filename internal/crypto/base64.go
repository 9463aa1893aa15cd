package crypto

import (
	"encoding/base64"
)

// ToBase64 encodes bytes to standard base64 with padding. Every stored or
// transmitted binary value in this core uses this encoding, matching the
// other platforms byte-for-byte.
func ToBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// FromBase64 decodes standard padded base64 to bytes. Decoding is strict:
// invalid characters, bad padding, and non-canonical trailing bits are
// all reported as errors, never silently truncated.
func FromBase64(s string) ([]byte, error) {
	return base64.StdEncoding.Strict().DecodeString(s)
}
