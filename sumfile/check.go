package sumfile

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	cmap "github.com/orcaman/concurrent-map"
	pkgerrors "github.com/pkg/errors"
	cerrors "massnet.org/sha2/errors"
	"massnet.org/sha2/logging"
)

// Status is the verdict on one checksum line.
type Status uint8

const (
	StatusOK Status = iota
	StatusFailed
	StatusMissing
	StatusUnreadable
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusFailed:
		return "FAILED"
	case StatusMissing:
		return "FAILED open or read"
	case StatusUnreadable:
		return "FAILED read"
	default:
		return "invalid status #" + strconv.Itoa(int(s))
	}
}

type CheckOptions struct {
	// Prefer resolves untagged digests whose length fits several algorithms.
	Prefer []Algorithm
	// Dir is the base of relative paths, empty means the working directory.
	Dir string
	// IgnoreMissing does not count files that do not exist as failures.
	IgnoreMissing bool
}

type CheckResult struct {
	Line   int // 1-based
	Entry  Entry
	Status Status
	Err    error
}

type CheckReport struct {
	Results    []CheckResult
	BadLines   int
	Failed     int
	Missing    int
	Unreadable int
	ignoreMiss bool
}

// Err summarizes the report as a coded error, nil when every listed file
// matched.
func (r *CheckReport) Err() error {
	switch {
	case len(r.Results) == 0:
		return cerrors.New(cerrors.ErrChecksumNoneFound, "no properly formatted checksum lines found")
	case r.Failed > 0:
		return cerrors.Errorf(cerrors.ErrChecksumMismatch, "%d computed checksum(s) did NOT match", r.Failed)
	case r.Unreadable > 0 || (r.Missing > 0 && !r.ignoreMiss):
		return cerrors.Errorf(cerrors.ErrChecksumMissingFile, "%d listed file(s) could not be read", r.Missing+r.Unreadable)
	}
	return nil
}

// Check verifies every line of list. Malformed lines are counted and
// skipped. The returned error covers reading list only; verdicts are in the
// report.
func (h *Hasher) Check(ctx context.Context, list io.Reader, opts CheckOptions) (*CheckReport, error) {
	report := &CheckReport{ignoreMiss: opts.IgnoreMissing}

	scanner := bufio.NewScanner(list)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for n := 1; scanner.Scan(); n++ {
		text := scanner.Text()
		if strings.TrimSpace(text) == "" || strings.HasPrefix(text, "#") {
			continue
		}
		entry, err := ParseLine(text)
		if err == nil && entry.Algorithm.IsZero() {
			algo, ok := InferAlgorithm(len(entry.Digest), opts.Prefer)
			if !ok {
				err = cerrors.Errorf(cerrors.ErrInvalidDigest, "no algorithm has %d byte digests", len(entry.Digest))
			}
			entry.Algorithm = algo
		}
		if err != nil {
			report.BadLines++
			logging.VPrint(logging.WARN, "skip checksum line", logging.LogFormat{"line": n, "err": err})
			continue
		}
		report.Results = append(report.Results, CheckResult{Line: n, Entry: entry})
	}
	if err := scanner.Err(); err != nil {
		return nil, cerrors.Wrap(cerrors.ErrFileRead, err, "read checksum list")
	}

	m := cmap.New()
	h.run(ctx, len(report.Results), func(i int) {
		entry := report.Results[i].Entry
		m.Set(strconv.Itoa(i), h.sumFile(resolve(opts.Dir, entry.Path), []Algorithm{entry.Algorithm})[0])
	}, func(i int, err error) {
		m.Set(strconv.Itoa(i), Result{Err: err})
	})

	for i, r := range collect(m, len(report.Results)) {
		res := &report.Results[i]
		switch {
		case r.Err != nil && os.IsNotExist(pkgerrors.Cause(r.Err)):
			res.Status, res.Err = StatusMissing, r.Err
			report.Missing++
		case r.Err != nil:
			res.Status, res.Err = StatusUnreadable, r.Err
			report.Unreadable++
		case !bytes.Equal(r.Digest, res.Entry.Digest):
			res.Status = StatusFailed
			report.Failed++
		default:
			res.Status = StatusOK
		}
	}

	logging.VPrint(logging.INFO, "checksum list verified", logging.LogFormat{
		"entries":    len(report.Results),
		"bad_lines":  report.BadLines,
		"failed":     report.Failed,
		"missing":    report.Missing,
		"unreadable": report.Unreadable,
	})
	return report, nil
}

func resolve(dir, path string) string {
	if dir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
