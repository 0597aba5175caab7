package sha2

import (
	"encoding/hex"
	"errors"
)

// ErrInvalidDigestLength indicates a hex string whose length does not match the variant.
var ErrInvalidDigestLength = errors.New("sha2: invalid length for digest")

// Digest is the output of one computation. It is a comparable value; bytes
// past Size are always zero.
type Digest struct {
	v   Variant
	sum [Size512]byte
}

// Variant returns the algorithm that produced d.
func (d Digest) Variant() Variant {
	return d.v
}

// Size returns the digest length in bytes.
func (d Digest) Size() int {
	return d.v.Size()
}

// Bytes returns a copy of the digest bytes.
func (d Digest) Bytes() []byte {
	bs := make([]byte, d.Size())
	copy(bs, d.sum[:])
	return bs
}

// String converts Digest to lowercase hex.
func (d Digest) String() string {
	return hex.EncodeToString(d.sum[:d.Size()])
}

// DecodeDigest decodes a hex string produced by Digest.String.
func DecodeDigest(v Variant, str string) (Digest, error) {
	if !v.Available() {
		return Digest{}, ErrUnknownVariant
	}
	if len(str) != 2*v.Size() {
		return Digest{}, ErrInvalidDigestLength
	}
	d := Digest{v: v}
	if _, err := hex.Decode(d.sum[:], []byte(str)); err != nil {
		return Digest{}, err
	}
	return d, nil
}

// Sum returns the v digest of data. It panics if v is not Available.
func Sum(v Variant, data []byte) Digest {
	p := v.profile()

	var full [Size512]byte
	if p.wide {
		sum(&family512, &p.iv64, data, full[:])
	} else {
		sum(&family256, &p.iv32, data, full[:8*family256.wordSize])
	}

	d := Digest{v: v}
	copy(d.sum[:p.size], full[:])
	return d
}

// Sum224 returns the SHA-224 digest of data.
func Sum224(data []byte) (out [Size224]byte) {
	d := Sum(SHA224, data)
	copy(out[:], d.sum[:])
	return
}

// Sum256 returns the SHA-256 digest of data.
func Sum256(data []byte) (out [Size256]byte) {
	d := Sum(SHA256, data)
	copy(out[:], d.sum[:])
	return
}

// Sum384 returns the SHA-384 digest of data.
func Sum384(data []byte) (out [Size384]byte) {
	d := Sum(SHA384, data)
	copy(out[:], d.sum[:])
	return
}

// Sum512 returns the SHA-512 digest of data.
func Sum512(data []byte) (out [Size512]byte) {
	d := Sum(SHA512, data)
	copy(out[:], d.sum[:])
	return
}

// Sum512_224 returns the SHA-512/224 digest of data.
func Sum512_224(data []byte) (out [Size512224]byte) {
	d := Sum(SHA512_224, data)
	copy(out[:], d.sum[:])
	return
}

// Sum512_256 returns the SHA-512/256 digest of data.
func Sum512_256(data []byte) (out [Size512256]byte) {
	d := Sum(SHA512_256, data)
	copy(out[:], d.sum[:])
	return
}
