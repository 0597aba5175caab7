package sha2

import (
	"errors"
	"strconv"
	"strings"
)

// The size of each digest in bytes.
const (
	Size224    = 28
	Size256    = 32
	Size384    = 48
	Size512    = 64
	Size512224 = 28
	Size512256 = 32
)

// The block size of each word width in bytes.
const (
	BlockSize256 = 64
	BlockSize512 = 128
)

// ErrUnknownVariant is returned by ParseVariant for names outside the SHA-2 family.
var ErrUnknownVariant = errors.New("sha2: unknown variant")

// Variant identifies one algorithm of the SHA-2 family.
type Variant uint8

const (
	SHA224 Variant = 1 + iota
	SHA256
	SHA384
	SHA512
	SHA512_224
	SHA512_256
	maxVariant
)

// profile is the immutable per-variant record: initial state and the number
// of digest bytes kept from the final state. Word width, rounds and round
// constants come from the family selected by wide.
type profile struct {
	name string
	size int
	wide bool
	iv32 [8]uint32
	iv64 [8]uint64
}

var profiles = [maxVariant]profile{
	SHA224: {
		name: "SHA-224",
		size: Size224,
		iv32: [8]uint32{init0_224, init1_224, init2_224, init3_224, init4_224, init5_224, init6_224, init7_224},
	},
	SHA256: {
		name: "SHA-256",
		size: Size256,
		iv32: [8]uint32{init0_256, init1_256, init2_256, init3_256, init4_256, init5_256, init6_256, init7_256},
	},
	SHA384: {
		name: "SHA-384",
		size: Size384,
		wide: true,
		iv64: [8]uint64{init0_384, init1_384, init2_384, init3_384, init4_384, init5_384, init6_384, init7_384},
	},
	SHA512: {
		name: "SHA-512",
		size: Size512,
		wide: true,
		iv64: [8]uint64{init0_512, init1_512, init2_512, init3_512, init4_512, init5_512, init6_512, init7_512},
	},
	SHA512_224: {
		name: "SHA-512/224",
		size: Size512224,
		wide: true,
		iv64: [8]uint64{init0_512_224, init1_512_224, init2_512_224, init3_512_224, init4_512_224, init5_512_224, init6_512_224, init7_512_224},
	},
	SHA512_256: {
		name: "SHA-512/256",
		size: Size512256,
		wide: true,
		iv64: [8]uint64{init0_512_256, init1_512_256, init2_512_256, init3_512_256, init4_512_256, init5_512_256, init6_512_256, init7_512_256},
	},
}

// Available reports whether v names a member of the family.
func (v Variant) Available() bool {
	return v > 0 && v < maxVariant
}

func (v Variant) profile() *profile {
	if !v.Available() {
		panic("sha2: requested variant #" + strconv.Itoa(int(v)) + " is unavailable")
	}
	return &profiles[v]
}

// String returns the FIPS 180-4 name, e.g. "SHA-512/256".
func (v Variant) String() string {
	if !v.Available() {
		return "unknown variant #" + strconv.Itoa(int(v))
	}
	return profiles[v].name
}

// Size returns the digest length in bytes.
func (v Variant) Size() int {
	return v.profile().size
}

// BlockSize returns the size of one padded block in bytes.
func (v Variant) BlockSize() int {
	if v.profile().wide {
		return BlockSize512
	}
	return BlockSize256
}

// Variants lists the family in declaration order.
func Variants() []Variant {
	return []Variant{SHA224, SHA256, SHA384, SHA512, SHA512_224, SHA512_256}
}

// ParseVariant accepts the FIPS name as returned by String as well as the
// usual command line spellings ("sha256", "sha512-256", "SHA512_224").
func ParseVariant(name string) (Variant, error) {
	key := strings.ToLower(name)
	key = strings.NewReplacer("-", "", "_", "", "/", "").Replace(key)
	switch key {
	case "sha224":
		return SHA224, nil
	case "sha256":
		return SHA256, nil
	case "sha384":
		return SHA384, nil
	case "sha512":
		return SHA512, nil
	case "sha512224":
		return SHA512_224, nil
	case "sha512256":
		return SHA512_256, nil
	}
	return 0, ErrUnknownVariant
}
