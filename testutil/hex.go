package testutil

import "encoding/hex"

// MustDecodeHex decodes s or panics.
func MustDecodeHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}
