// Package sha2 implements the SHA-224, SHA-256, SHA-384, SHA-512,
// SHA-512/224 and SHA-512/256 hash algorithms as defined in FIPS 180-4.
//
// Every digest is computed by a single call over a byte slice of known
// length. A call keeps its state, block buffers and message schedule on its
// own stack and reads only immutable tables, so calls are safe to run
// concurrently and the result depends on nothing but the input.
//
// There is no incremental hash.Hash here; use crypto/sha256 and
// crypto/sha512 when data arrives in pieces.
package sha2
