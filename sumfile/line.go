package sumfile

import (
	"encoding/hex"
	"strings"

	cerrors "massnet.org/sha2/errors"
)

// Format selects the checksum line layout.
type Format uint8

const (
	// FormatGNU is "<hex>  <path>", as written by sha256sum.
	FormatGNU Format = iota
	// FormatBSD is "<TAG> (<path>) = <hex>", as written by sha256sum --tag.
	FormatBSD
)

// Entry is one parsed checksum line.
type Entry struct {
	// Algorithm is zero for GNU lines, which carry no tag.
	Algorithm Algorithm
	Path      string
	Digest    []byte
	Binary    bool
}

var (
	pathEscaper   = strings.NewReplacer("\\", "\\\\", "\n", "\\n", "\r", "\\r")
	pathUnescaper = strings.NewReplacer("\\\\", "\\", "\\n", "\n", "\\r", "\r")
)

// FormatLine renders one checksum line without the trailing newline. Paths
// holding a backslash or a line break are escaped and the line starts with
// a backslash.
func FormatLine(format Format, algo Algorithm, path string, digest []byte) string {
	escaped := pathEscaper.Replace(path)
	prefix := ""
	if escaped != path {
		prefix = "\\"
	}
	if format == FormatBSD {
		return prefix + algo.tag + " (" + escaped + ") = " + hex.EncodeToString(digest)
	}
	return prefix + hex.EncodeToString(digest) + "  " + escaped
}

// ParseLine parses a line in either format.
func ParseLine(line string) (Entry, error) {
	line = strings.TrimRight(line, "\r\n")
	escaped := strings.HasPrefix(line, "\\")
	if escaped {
		line = line[1:]
	}

	var (
		entry Entry
		err   error
	)
	if sp := strings.IndexByte(line, ' '); sp > 0 && isHex(line[:sp]) {
		entry, err = parseGNU(line, sp)
	} else if open := strings.Index(line, " ("); open > 0 {
		entry, err = parseBSD(line, open)
	} else {
		err = badLine(line)
	}
	if err != nil {
		return Entry{}, err
	}
	if escaped {
		entry.Path = pathUnescaper.Replace(entry.Path)
	}
	return entry, nil
}

func parseBSD(line string, open int) (Entry, error) {
	algo, err := LookupAlgorithm(line[:open])
	if err != nil {
		return Entry{}, err
	}
	rest := line[open+2:]
	end := strings.LastIndex(rest, ") = ")
	if end < 0 {
		return Entry{}, badLine(line)
	}
	digest, err := decodeDigest(rest[end+4:], algo.size)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Algorithm: algo, Path: rest[:end], Digest: digest}, nil
}

func parseGNU(line string, sp int) (Entry, error) {
	if sp+2 > len(line) {
		return Entry{}, badLine(line)
	}
	digest, err := decodeDigest(line[:sp], 0)
	if err != nil {
		return Entry{}, err
	}
	var binary bool
	switch line[sp+1] {
	case ' ':
	case '*':
		binary = true
	default:
		return Entry{}, badLine(line)
	}
	path := line[sp+2:]
	if path == "" {
		return Entry{}, badLine(line)
	}
	return Entry{Path: path, Digest: digest, Binary: binary}, nil
}

func decodeDigest(s string, size int) ([]byte, error) {
	digest, err := hex.DecodeString(s)
	if err != nil || len(digest) == 0 {
		return nil, cerrors.Errorf(cerrors.ErrInvalidDigest, "invalid digest %q", s)
	}
	if size > 0 && len(digest) != size {
		return nil, cerrors.Errorf(cerrors.ErrInvalidDigest, "digest %q has %d bytes, want %d", s, len(digest), size)
	}
	return digest, nil
}

func isHex(s string) bool {
	if len(s) == 0 || len(s)%2 != 0 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

func badLine(line string) error {
	return cerrors.Errorf(cerrors.ErrChecksumBadLine, "improperly formatted checksum line %q", line)
}
