package sha2_test

import (
	"bytes"
	gosha256 "crypto/sha256"
	gosha512 "crypto/sha512"
	"errors"
	"math/bits"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"massnet.org/sha2/crypto/sha2"
	"massnet.org/sha2/testutil"
)

const (
	msg448 = "abcdbcdecdefdefgefghfghighijhijkijkljklmklmnlmnomnopnopq"
	msg896 = "abcdefghbcdefghicdefghijdefghijkefghijklfghijklmghijklmnhijklmnoijklmnopjklmnopqklmnopqrlmnopqrsmnopqrstnopqrstu"
	fox    = "The quick brown fox jumps over the lazy dog"
)

var knownAnswers = []struct {
	variant sha2.Variant
	in      string
	out     string
}{
	{sha2.SHA224, "", "d14a028c2a3a2bc9476102bb288234c415a2b01f828ea62ac5b3e42f"},
	{sha2.SHA224, "abc", "23097d223405d8228642a477bda255b32aadbce4bda0b3f7e36c9da7"},
	{sha2.SHA224, msg448, "75388b16512776cc5dba5da1fd890150b0c6455cb4f58b1952522525"},
	{sha2.SHA224, fox, "730e109bd7a8a32b1cb9d9a09aa2325d2430587ddbc0c38bad911525"},

	{sha2.SHA256, "", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
	{sha2.SHA256, "abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
	{sha2.SHA256, msg448, "248d6a61d20638b8e5c026930c3e6039a33ce45964ff2167f6ecedd419db06c1"},
	{sha2.SHA256, fox, "d7a8fbb307d7809469ca9abcb0082e4f8d5651e46d3cdb762d02d0bf37c9e592"},

	{sha2.SHA384, "", "38b060a751ac96384cd9327eb1b1e36a21fdb71114be07434c0cc7bf63f6e1da274edebfe76f65fbd51ad2f14898b95b"},
	{sha2.SHA384, "abc", "cb00753f45a35e8bb5a03d699ac65007272c32ab0eded1631a8b605a43ff5bed8086072ba1e7cc2358baeca134c825a7"},
	{sha2.SHA384, msg896, "09330c33f71147e83d192fc782cd1b4753111b173b3b05d22fa08086e3b0f712fcc7c71a557e2db966c3e9fa91746039"},
	{sha2.SHA384, fox, "ca737f1014a48f4c0b6dd43cb177b0afd9e5169367544c494011e3317dbf9a509cb1e5dc1e85a941bbee3d7f2afbc9b1"},

	{sha2.SHA512, "", "cf83e1357eefb8bdf1542850d66d8007d620e4050b5715dc83f4a921d36ce9ce47d0d13c5d85f2b0ff8318d2877eec2f63b931bd47417a81a538327af927da3e"},
	{sha2.SHA512, "abc", "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f"},
	{sha2.SHA512, msg896, "8e959b75dae313da8cf4f72814fc143f8f7779c6eb9f7fa17299aeadb6889018501d289e4900f7e4331b99dec4b5433ac7d329eeb6dd26545e96e55b874be909"},
	{sha2.SHA512, fox, "07e547d9586f6a73f73fbac0435ed76951218fb7d0c8d788a309d785436bbb642e93a252a954f23912547d1e8a3b5ed6e1bfd7097821233fa0538f3db854fee6"},

	{sha2.SHA512_224, "", "6ed0dd02806fa89e25de060c19d3ac86cabb87d6a0ddd05c333b84f4"},
	{sha2.SHA512_224, "abc", "4634270f707b6a54daae7530460842e20e37ed265ceee9a43e8924aa"},
	{sha2.SHA512_224, fox, "944cd2847fb54558d4775db0485a50003111c8e5daa63fe722c6aa37"},

	{sha2.SHA512_256, "", "c672b8d1ef56ed28ab87c3622c5114069bdd3ad7b8f9737498d0c01ecef0967a"},
	{sha2.SHA512_256, "abc", "53048e2681941ef99b2e29b76b4c7dabe4c2d0c634fc6d46e0e2f13107e7af23"},
	{sha2.SHA512_256, fox, "dd9d67b371519c339ed8dbd25af90e976a1eeefd4ad3d889005e532fc5bef04d"},
}

// reference digests from the standard library.
var reference = map[sha2.Variant]func([]byte) []byte{
	sha2.SHA224:     func(b []byte) []byte { s := gosha256.Sum224(b); return s[:] },
	sha2.SHA256:     func(b []byte) []byte { s := gosha256.Sum256(b); return s[:] },
	sha2.SHA384:     func(b []byte) []byte { s := gosha512.Sum384(b); return s[:] },
	sha2.SHA512:     func(b []byte) []byte { s := gosha512.Sum512(b); return s[:] },
	sha2.SHA512_224: func(b []byte) []byte { s := gosha512.Sum512_224(b); return s[:] },
	sha2.SHA512_256: func(b []byte) []byte { s := gosha512.Sum512_256(b); return s[:] },
}

func TestKnownAnswers(t *testing.T) {
	for _, tt := range knownAnswers {
		t.Run(tt.variant.String()+"/"+shorten(tt.in), func(t *testing.T) {
			d := sha2.Sum(tt.variant, []byte(tt.in))
			assert.Equal(t, tt.out, d.String())
			assert.Equal(t, testutil.MustDecodeHex(tt.out), d.Bytes())
		})
	}
}

func TestFixedSizeFunctions(t *testing.T) {
	in := []byte("abc")

	s224 := sha2.Sum224(in)
	s256 := sha2.Sum256(in)
	s384 := sha2.Sum384(in)
	s512 := sha2.Sum512(in)
	s512224 := sha2.Sum512_224(in)
	s512256 := sha2.Sum512_256(in)

	assert.Equal(t, sha2.Sum(sha2.SHA224, in).Bytes(), s224[:])
	assert.Equal(t, sha2.Sum(sha2.SHA256, in).Bytes(), s256[:])
	assert.Equal(t, sha2.Sum(sha2.SHA384, in).Bytes(), s384[:])
	assert.Equal(t, sha2.Sum(sha2.SHA512, in).Bytes(), s512[:])
	assert.Equal(t, sha2.Sum(sha2.SHA512_224, in).Bytes(), s512224[:])
	assert.Equal(t, sha2.Sum(sha2.SHA512_256, in).Bytes(), s512256[:])
}

// The generated arrays are a build-time rendering of the same function.
func TestGeneratedDigests(t *testing.T) {
	assert.Equal(t, katEmpty256, sha2.Sum256(nil))
	assert.Equal(t, katAbc512, sha2.Sum512([]byte("abc")))
}

func TestDigestSize(t *testing.T) {
	sizes := map[sha2.Variant]int{
		sha2.SHA224:     28,
		sha2.SHA256:     32,
		sha2.SHA384:     48,
		sha2.SHA512:     64,
		sha2.SHA512_224: 28,
		sha2.SHA512_256: 32,
	}
	for _, v := range sha2.Variants() {
		for _, n := range []int{0, 1, 55, 56, 64, 111, 112, 128, 1000} {
			d := sha2.Sum(v, make([]byte, n))
			assert.Equal(t, sizes[v], d.Size(), "%s len %d", v, n)
			assert.Len(t, d.Bytes(), sizes[v])
			assert.Len(t, d.String(), 2*sizes[v])
			assert.Equal(t, v, d.Variant())
		}
	}
}

func TestDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, v := range sha2.Variants() {
		for i := 0; i < 16; i++ {
			in := make([]byte, rng.Intn(4*v.BlockSize()))
			rng.Read(in)
			first := sha2.Sum(v, in)
			second := sha2.Sum(v, append([]byte(nil), in...))
			assert.Equal(t, first, second)
		}
	}
}

// Flipping one input bit should flip about half of the output bits.
func TestAvalanche(t *testing.T) {
	inputs := [][]byte{
		[]byte(""),
		[]byte("abc"),
		[]byte(fox),
		bytes.Repeat([]byte{0x5a}, 200),
	}
	for _, v := range sha2.Variants() {
		for _, in := range inputs {
			base := sha2.Sum(v, in).Bytes()

			flipped := append([]byte(nil), in...)
			if len(flipped) == 0 {
				flipped = []byte{0x01}
			} else {
				flipped[len(flipped)/2] ^= 0x01
			}
			other := sha2.Sum(v, flipped).Bytes()

			changed := 0
			for i := range base {
				changed += bits.OnesCount8(base[i] ^ other[i])
			}
			total := 8 * len(base)
			assert.True(t, changed > total*3/10 && changed < total*7/10,
				"%s: %d of %d bits changed", v, changed, total)
		}
	}
}

func TestReference(t *testing.T) {
	rng := rand.New(rand.NewSource(180))
	for _, v := range sha2.Variants() {
		ref := reference[v]
		for n := 0; n <= 4*v.BlockSize(); n++ {
			in := make([]byte, n)
			rng.Read(in)
			require.Equal(t, ref(in), sha2.Sum(v, in).Bytes(), "%s len %d", v, n)
		}
	}
}

// Concatenating inputs is the only way to feed several pieces; the digest
// must match the reference fed piecewise.
func TestConcatenation(t *testing.T) {
	parts := []string{"The quick brown fox ", "jumps over ", "", "the lazy dog"}
	joined := []byte(strings.Join(parts, ""))

	h := gosha512.New()
	for _, p := range parts {
		h.Write([]byte(p))
	}
	assert.Equal(t, h.Sum(nil), sha2.Sum(sha2.SHA512, joined).Bytes())
}

// monteCarlo chains MD_i = H(MD_{i-3} || MD_{i-2} || MD_{i-1}) as in the
// SHAVS Monte Carlo test, checking every checkpoint against the reference.
func monteCarlo(t *testing.T, v sha2.Variant, checkpoints, iterations int) {
	ref := reference[v]
	seed := ref([]byte("sha2 monte carlo seed"))

	for j := 0; j < checkpoints; j++ {
		md0, md1, md2 := seed, seed, seed
		for i := 0; i < iterations; i++ {
			msg := make([]byte, 0, 3*len(seed))
			msg = append(append(append(msg, md0...), md1...), md2...)
			md0, md1, md2 = md1, md2, sha2.Sum(v, msg).Bytes()
		}

		msg := make([]byte, 0, 3*len(seed))
		msg = append(append(append(msg, md0...), md1...), md2...)
		want := ref(msg)
		require.Equal(t, want, sha2.Sum(v, msg).Bytes(), "%s checkpoint %d", v, j)
		seed = md2
	}
}

func TestMonteCarloShort(t *testing.T) {
	for _, v := range sha2.Variants() {
		monteCarlo(t, v, 5, 50)
	}
}

func TestMonteCarloFull(t *testing.T) {
	testutil.SkipCI(t)
	for _, v := range sha2.Variants() {
		monteCarlo(t, v, 100, 1000)
	}
}

func TestSumUnknownVariant(t *testing.T) {
	assert.False(t, sha2.Variant(0).Available())
	assert.False(t, sha2.Variant(200).Available())
	assert.Panics(t, func() { sha2.Sum(sha2.Variant(0), nil) })
	assert.Equal(t, "unknown variant #7", sha2.Variant(7).String())
}

func TestParseVariant(t *testing.T) {
	tests := []struct {
		name string
		want sha2.Variant
		err  error
	}{
		{"SHA-224", sha2.SHA224, nil},
		{"sha256", sha2.SHA256, nil},
		{"SHA384", sha2.SHA384, nil},
		{"sha-512", sha2.SHA512, nil},
		{"SHA-512/224", sha2.SHA512_224, nil},
		{"sha512_256", sha2.SHA512_256, nil},
		{"sha512-256", sha2.SHA512_256, nil},
		{"sha1", 0, sha2.ErrUnknownVariant},
		{"", 0, sha2.ErrUnknownVariant},
	}
	for _, tt := range tests {
		got, err := sha2.ParseVariant(tt.name)
		assert.Equal(t, tt.err, err, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}

	for _, v := range sha2.Variants() {
		got, err := sha2.ParseVariant(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestDecodeDigest(t *testing.T) {
	d := sha2.Sum(sha2.SHA256, []byte("abc"))

	decoded, err := sha2.DecodeDigest(sha2.SHA256, d.String())
	require.NoError(t, err)
	assert.Equal(t, d, decoded)

	_, err = sha2.DecodeDigest(sha2.SHA256, "0123456789")
	assert.Equal(t, sha2.ErrInvalidDigestLength, err)

	_, err = sha2.DecodeDigest(sha2.SHA224, d.String())
	assert.Equal(t, sha2.ErrInvalidDigestLength, err)

	_, err = sha2.DecodeDigest(sha2.SHA256, "g"+d.String()[1:])
	assert.True(t, testutil.SameErrorString(err, errors.New("encoding/hex: invalid byte: U+0067 'g'")))

	_, err = sha2.DecodeDigest(sha2.Variant(0), d.String())
	assert.Equal(t, sha2.ErrUnknownVariant, err)
}

func shorten(s string) string {
	if len(s) > 12 {
		return s[:12] + "..."
	}
	if s == "" {
		return "empty"
	}
	return s
}

func BenchmarkSum256(b *testing.B) {
	data := make([]byte, 1024)
	b.SetBytes(int64(len(data)))
	for i := 0; i < b.N; i++ {
		sha2.Sum256(data)
	}
}

func BenchmarkSum512(b *testing.B) {
	data := make([]byte, 1024)
	b.SetBytes(int64(len(data)))
	for i := 0; i < b.N; i++ {
		sha2.Sum512(data)
	}
}
