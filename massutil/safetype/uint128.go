package safetype

import (
	"errors"
	"math/big"
	"math/bits"
)

const (
	// Uint128Bytes the number of bytes Uint128 type will take.
	Uint128Bytes = 16
	// Uint128Bits defines the number of bits for Uint128 type.
	Uint128Bits = 128
)

var (
	// ErrUint128Overflow indicates the value is greater than maximum of 2^128-1.
	ErrUint128Overflow = errors.New("Uint128: overflow")

	// ErrUint128Underflow indicates the value is less than minimum of 0.
	ErrUint128Underflow = errors.New("Uint128: underflow")

	// ErrUint128InvalidBytes indicates the bytes size is greater than Uint128Bytes.
	ErrUint128InvalidBytes = errors.New("Uint128: invalid bytes")

	// ErrUint128InvalidString indicates the string is not valid when converted to Uint128.
	ErrUint128InvalidString = errors.New("Uint128: invalid string")
)

// Uint128 is a fixed-width unsigned 128-bit integer held in two words.
// It is a plain value: arithmetic never allocates, which lets the digest
// padder encode 128-bit message lengths on the stack.
//
// Checked operations report ErrUint128Overflow / ErrUint128Underflow:
//			 u1, err = u1.Add(u2)
//			 u1, err = u1.Sub(u2)
//			 u1, err = u1.MulUint(x)
// Shifts discard bits moved past either end:
//			 u1 = u1.Lsh(n)
//			 u1 = u1.Rsh(n)
type Uint128 struct {
	hi, lo uint64
}

// NewUint128FromUint returns a new Uint128 with given value.
func NewUint128FromUint(i uint64) Uint128 {
	return Uint128{lo: i}
}

// NewUint128FromBytes converts big-endian byte slice to Uint128, len(bytes) must be not greater than Uint128Bytes.
func NewUint128FromBytes(bs []byte) (Uint128, error) {
	if len(bs) > Uint128Bytes {
		return Uint128{}, ErrUint128InvalidBytes
	}
	var u Uint128
	for _, b := range bs {
		u = u.Lsh(8)
		u.lo |= uint64(b)
	}
	return u, nil
}

// NewUint128FromString parses a decimal string.
func NewUint128FromString(str string) (Uint128, error) {
	if len(str) == 0 {
		return Uint128{}, ErrUint128InvalidString
	}
	if str[0] == '-' {
		if len(str) > 1 && isDigits(str[1:]) {
			return Uint128{}, ErrUint128Underflow
		}
		return Uint128{}, ErrUint128InvalidString
	}
	if !isDigits(str) {
		return Uint128{}, ErrUint128InvalidString
	}
	var u Uint128
	var err error
	for i := 0; i < len(str); i++ {
		if u, err = u.MulUint(10); err != nil {
			return Uint128{}, err
		}
		if u, err = u.Add(NewUint128FromUint(uint64(str[i] - '0'))); err != nil {
			return Uint128{}, err
		}
	}
	return u, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

// NewUint128FromBigInt returns a new Uint128 struct with given value and value check.
func NewUint128FromBigInt(i *big.Int) (Uint128, error) {
	if i.Sign() < 0 {
		return Uint128{}, ErrUint128Underflow
	}
	if i.BitLen() > Uint128Bits {
		return Uint128{}, ErrUint128Overflow
	}
	return NewUint128FromBytes(i.Bytes())
}

// Bytes returns the value of u as a big-endian byte array.
func (u Uint128) Bytes() [Uint128Bytes]byte {
	var ret [Uint128Bytes]byte
	u.PutBytes(ret[:])
	return ret
}

// PutBytes writes the low-order len(b) bytes of u into b, big-endian.
// Higher-order bytes that do not fit are dropped.
func (u Uint128) PutBytes(b []byte) {
	for i := len(b) - 1; i >= 0; i-- {
		b[i] = byte(u.lo)
		u = u.Rsh(8)
	}
}

// BigValue returns u as a new big.Int.
func (u Uint128) BigValue() *big.Int {
	bs := u.Bytes()
	return new(big.Int).SetBytes(bs[:])
}

// String returns the decimal representation of u.
func (u Uint128) String() string {
	return u.BigValue().Text(10)
}

// UintValue returns the uint64 representation of u.
// Panic if u is greater than maximum uint64
func (u Uint128) UintValue() uint64 {
	if u.hi != 0 {
		panic("too big to be converted to uint64: " + u.String())
	}
	return u.lo
}

// Add returns u + x
func (u Uint128) Add(x Uint128) (Uint128, error) {
	lo, carry := bits.Add64(u.lo, x.lo, 0)
	hi, carry := bits.Add64(u.hi, x.hi, carry)
	if carry != 0 {
		return Uint128{}, ErrUint128Overflow
	}
	return Uint128{hi: hi, lo: lo}, nil
}

// Sub returns u - x
func (u Uint128) Sub(x Uint128) (Uint128, error) {
	lo, borrow := bits.Sub64(u.lo, x.lo, 0)
	hi, borrow := bits.Sub64(u.hi, x.hi, borrow)
	if borrow != 0 {
		return Uint128{}, ErrUint128Underflow
	}
	return Uint128{hi: hi, lo: lo}, nil
}

// MulUint returns u * x
func (u Uint128) MulUint(x uint64) (Uint128, error) {
	carry, lo := bits.Mul64(u.lo, x)
	over, hi := bits.Mul64(u.hi, x)
	hi, c := bits.Add64(hi, carry, 0)
	if over != 0 || c != 0 {
		return Uint128{}, ErrUint128Overflow
	}
	return Uint128{hi: hi, lo: lo}, nil
}

// Lsh returns u<<n
func (u Uint128) Lsh(n uint) Uint128 {
	switch {
	case n >= 128:
		return Uint128{}
	case n >= 64:
		return Uint128{hi: u.lo << (n - 64)}
	case n == 0:
		return u
	}
	return Uint128{hi: u.hi<<n | u.lo>>(64-n), lo: u.lo << n}
}

// Rsh returns u>>n
func (u Uint128) Rsh(n uint) Uint128 {
	switch {
	case n >= 128:
		return Uint128{}
	case n >= 64:
		return Uint128{lo: u.hi >> (n - 64)}
	case n == 0:
		return u
	}
	return Uint128{hi: u.hi >> n, lo: u.lo>>n | u.hi<<(64-n)}
}

// Cmp compares u and x and returns:
//
//   -1 if u <  x
//    0 if u == x
//   +1 if u >  x
func (u Uint128) Cmp(x Uint128) int {
	switch {
	case u.hi > x.hi:
		return 1
	case u.hi < x.hi:
		return -1
	case u.lo > x.lo:
		return 1
	case u.lo < x.lo:
		return -1
	}
	return 0
}

// Gt returns whether u is greater than x
func (u Uint128) Gt(x Uint128) bool {
	return u.Cmp(x) > 0
}

// Lt returns whether u is less than x
func (u Uint128) Lt(x Uint128) bool {
	return u.Cmp(x) < 0
}

// Eq returns whether u is equal to x
func (u Uint128) Eq(x Uint128) bool {
	return u == x
}

func (u Uint128) IsZero() bool {
	return u.hi == 0 && u.lo == 0
}
