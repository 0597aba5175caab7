package massutil

import (
	"hash"

	"golang.org/x/crypto/ripemd160"
	"massnet.org/sha2/crypto/sha2"
)

// Calculate the hash of hasher over buf.
func calcHash(buf []byte, hasher hash.Hash) []byte {
	hasher.Write(buf)
	return hasher.Sum(nil)
}

// Hash160 returns ripemd160(sha256(b)).
func Hash160(data []byte) []byte {
	s := sha2.Sum256(data)
	return calcHash(s[:], ripemd160.New())
}

// Hash256 returns sha256(sha256(data))
func Hash256(data []byte) []byte {
	h1 := sha2.Sum256(data)
	h2 := sha2.Sum256(h1[:])
	return h2[:]
}

// DoubleSum returns H(H(data)) for any variant.
func DoubleSum(v sha2.Variant, data []byte) sha2.Digest {
	first := sha2.Sum(v, data)
	return sha2.Sum(v, first.Bytes())
}

// Sha256 returns sha256(data)
func Sha256(data []byte) []byte {
	h := sha2.Sum256(data)
	return h[:]
}

// Sha512 returns sha512(data)
func Sha512(data []byte) []byte {
	h := sha2.Sum512(data)
	return h[:]
}

// Ripemd160 return ripemd16(data)
func Ripemd160(data []byte) []byte {
	return calcHash(data, ripemd160.New())
}
