package sha2

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectBlocks(msg []byte, blockSize, lenSize int) [][]byte {
	var (
		pad    padder
		blocks [][]byte
	)
	pad.reset(msg, blockSize, lenSize)
	for block, ok := pad.next(); ok; block, ok = pad.next() {
		blocks = append(blocks, append([]byte(nil), block...))
	}
	return blocks
}

func TestPadderBlockCount(t *testing.T) {
	families := []struct {
		name      string
		blockSize int
		lenSize   int
	}{
		{"32-bit words", BlockSize256, 8},
		{"64-bit words", BlockSize512, 16},
	}

	for _, fam := range families {
		bs := fam.blockSize
		lengths := map[string]int{
			"empty":             0,
			"one byte":          1,
			"block minus one":   bs - 1,
			"block":             bs,
			"block plus one":    bs + 1,
			"last fit":          bs - fam.lenSize - 1,
			"two padding":       bs - fam.lenSize,
			"two blocks + more": 2*bs + bs - fam.lenSize + 3,
		}
		for name, n := range lengths {
			t.Run(fam.name+"/"+name, func(t *testing.T) {
				blocks := collectBlocks(make([]byte, n), bs, fam.lenSize)
				want := blockCount(n, bs, fam.lenSize)
				require.Len(t, blocks, want, spew.Sdump(blocks))
				for _, b := range blocks {
					assert.Len(t, b, bs)
				}
			})
		}

		// Marker and length field still fit after bs-lenSize-1 bytes; one more
		// byte pushes them into a second padding block.
		assert.Equal(t, 1, blockCount(bs-fam.lenSize-1, bs, fam.lenSize))
		assert.Equal(t, 2, blockCount(bs-fam.lenSize, bs, fam.lenSize))
		assert.Equal(t, 1, blockCount(0, bs, fam.lenSize))
	}
}

func TestPadderLayout(t *testing.T) {
	for n := 0; n <= 3*BlockSize512; n++ {
		msg := bytes.Repeat([]byte{0xab}, n)

		for _, lenSize := range []int{8, 16} {
			bs := BlockSize256
			if lenSize == 16 {
				bs = BlockSize512
			}
			padded := bytes.Join(collectBlocks(msg, bs, lenSize), nil)

			require.Zero(t, len(padded)%bs)
			require.Equal(t, msg, padded[:n])
			require.Equal(t, byte(0x80), padded[n])

			field := padded[len(padded)-lenSize:]
			for _, b := range padded[n+1 : len(padded)-lenSize] {
				require.Zero(t, b, "len %d", n)
			}
			for _, b := range field[:lenSize-8] {
				require.Zero(t, b)
			}
			require.Equal(t, uint64(8*n), binary.BigEndian.Uint64(field[lenSize-8:]))
		}
	}
}

// Full blocks are served from the caller's slice without copying.
func TestPadderAliasesMessage(t *testing.T) {
	msg := make([]byte, 2*BlockSize256+5)
	var pad padder
	pad.reset(msg, BlockSize256, 8)

	first, ok := pad.next()
	require.True(t, ok)
	assert.True(t, &msg[0] == &first[0])
}

// The padded "abc" block has only W[0] and W[15] set, so W[16] collapses to W[0].
func TestExpandSHA256(t *testing.T) {
	var w [maxRounds]uint32
	blocks := collectBlocks([]byte("abc"), BlockSize256, 8)
	require.Len(t, blocks, 1)
	family256.expand(blocks[0], &w)

	assert.Equal(t, uint32(0x61626380), w[0])
	for i := 1; i < 15; i++ {
		assert.Zero(t, w[i])
	}
	assert.Equal(t, uint32(0x18), w[15])

	s0 := func(x uint32) uint32 { return (x>>7 | x<<25) ^ (x>>18 | x<<14) ^ x>>3 }
	s1 := func(x uint32) uint32 { return (x>>17 | x<<15) ^ (x>>19 | x<<13) ^ x>>10 }
	for i := 16; i < 64; i++ {
		assert.Equal(t, s1(w[i-2])+w[i-7]+s0(w[i-15])+w[i-16], w[i], "W[%d]", i)
	}
	assert.Equal(t, uint32(0x61626380), w[16])
}

func TestExpandSHA512(t *testing.T) {
	var w [maxRounds]uint64
	blocks := collectBlocks([]byte("abc"), BlockSize512, 16)
	require.Len(t, blocks, 1)
	family512.expand(blocks[0], &w)

	assert.Equal(t, uint64(0x6162638000000000), w[0])
	assert.Equal(t, uint64(0x18), w[15])

	rotr := func(x uint64, n uint) uint64 { return x>>n | x<<(64-n) }
	s0 := func(x uint64) uint64 { return rotr(x, 1) ^ rotr(x, 8) ^ x>>7 }
	s1 := func(x uint64) uint64 { return rotr(x, 19) ^ rotr(x, 61) ^ x>>6 }
	for i := 16; i < 80; i++ {
		assert.Equal(t, s1(w[i-2])+w[i-7]+s0(w[i-15])+w[i-16], w[i], "W[%d]", i)
	}
}

// A single compression of the padded "abc" block must land on the published
// SHA-256 intermediate hash value, which is also the final digest.
func TestCompressSHA256(t *testing.T) {
	var w [maxRounds]uint32
	blocks := collectBlocks([]byte("abc"), BlockSize256, 8)
	family256.expand(blocks[0], &w)

	state := profiles[SHA256].iv32
	family256.compress(&state, &w)

	want := [8]uint32{0xba7816bf, 0x8f01cfea, 0x414140de, 0x5dae2223, 0xb00361a3, 0x96177a9c, 0xb410ff61, 0xf20015ad}
	assert.Equal(t, want, state, spew.Sdump(state))
}

func TestStoreTruncation(t *testing.T) {
	state := [8]uint64{0x0102030405060708, 0x1112131415161718, 0x2122232425262728, 0x3132333435363738}
	var out [Size512]byte
	family512.store(&state, out[:])

	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}, out[:8])
	// SHA-512/224 keeps three whole words and the high half of the fourth.
	assert.Equal(t, []byte{0x31, 0x32, 0x33, 0x34}, out[24:Size512224])
}
