package sumfile

import (
	"strings"

	"gopkg.in/fatih/set.v0"
	"massnet.org/sha2/crypto/sha2"
	cerrors "massnet.org/sha2/errors"
	"massnet.org/sha2/massutil"
)

// Algorithm is one digest a Hasher can compute: a SHA-2 variant or one of
// the composite hashes built on it.
type Algorithm struct {
	name string
	tag  string
	size int
	sum  func([]byte) []byte
}

func variantAlgorithm(v sha2.Variant) Algorithm {
	name := strings.ToLower(strings.Replace(strings.Replace(v.String(), "-", "", 1), "/", "-", 1))
	return Algorithm{
		name: name,
		tag:  strings.ToUpper(name),
		size: v.Size(),
		sum: func(data []byte) []byte {
			return sha2.Sum(v, data).Bytes()
		},
	}
}

var (
	SHA224     = variantAlgorithm(sha2.SHA224)
	SHA256     = variantAlgorithm(sha2.SHA256)
	SHA384     = variantAlgorithm(sha2.SHA384)
	SHA512     = variantAlgorithm(sha2.SHA512)
	SHA512_224 = variantAlgorithm(sha2.SHA512_224)
	SHA512_256 = variantAlgorithm(sha2.SHA512_256)

	// SHA256D is sha256(sha256(x)).
	SHA256D = Algorithm{name: "sha256d", tag: "SHA256D", size: sha2.Size256, sum: massutil.Hash256}
	// HASH160 is ripemd160(sha256(x)).
	HASH160 = Algorithm{name: "hash160", tag: "HASH160", size: 20, sum: massutil.Hash160}
)

// registered in inference preference order: a bare digest of 28 or 32 bytes
// is taken as SHA-224 or SHA-256.
var algorithms = []Algorithm{SHA224, SHA256, SHA384, SHA512, SHA512_224, SHA512_256, SHA256D, HASH160}

// Algorithms lists every supported algorithm.
func Algorithms() []Algorithm {
	return append([]Algorithm(nil), algorithms...)
}

// Name is the lower case command line name, e.g. "sha512-256".
func (a Algorithm) Name() string { return a.name }

// Tag is the BSD checksum line tag, e.g. "SHA512-256".
func (a Algorithm) Tag() string { return a.tag }

// Size is the digest length in bytes.
func (a Algorithm) Size() int { return a.size }

func (a Algorithm) String() string { return a.name }

// IsZero reports whether a is the zero Algorithm.
func (a Algorithm) IsZero() bool { return a.sum == nil }

// Sum digests data.
func (a Algorithm) Sum(data []byte) []byte {
	return a.sum(data)
}

func normalizeName(name string) string {
	return strings.NewReplacer("-", "", "_", "", "/", "", " ", "").Replace(strings.ToLower(name))
}

// LookupAlgorithm finds an algorithm by name or tag, ignoring case and
// separators: "SHA512/256", "sha512_256" and "sha512-256" are the same.
func LookupAlgorithm(name string) (Algorithm, error) {
	n := normalizeName(name)
	for _, a := range algorithms {
		if normalizeName(a.name) == n {
			return a, nil
		}
	}
	return Algorithm{}, cerrors.Errorf(cerrors.ErrInvalidAlgorithm, "unknown algorithm %q", name)
}

// ParseAlgorithms parses a comma separated list. Duplicates are dropped,
// first occurrence order is kept.
func ParseAlgorithms(list string) ([]Algorithm, error) {
	seen := set.New(set.NonThreadSafe)
	var algos []Algorithm
	for _, field := range strings.Split(list, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		a, err := LookupAlgorithm(field)
		if err != nil {
			return nil, err
		}
		if seen.Has(a.name) {
			continue
		}
		seen.Add(a.name)
		algos = append(algos, a)
	}
	if len(algos) == 0 {
		return nil, cerrors.New(cerrors.ErrInvalidAlgorithm, "no algorithm given")
	}
	return algos, nil
}

// InferAlgorithm picks the algorithm for an untagged digest of size bytes.
// Candidates in prefer are tried first, then the registry order.
func InferAlgorithm(size int, prefer []Algorithm) (Algorithm, bool) {
	for _, a := range prefer {
		if a.size == size {
			return a, true
		}
	}
	for _, a := range algorithms {
		if a.size == size {
			return a, true
		}
	}
	return Algorithm{}, false
}
