package sumfile

import (
	"context"
	"io"
	"io/ioutil"
	"os"
	"runtime"
	"strconv"
	"sync"

	cmap "github.com/orcaman/concurrent-map"
	"github.com/panjf2000/ants"
	"github.com/shirou/gopsutil/mem"
	cerrors "massnet.org/sha2/errors"
	"massnet.org/sha2/logging"
	"massnet.org/sha2/massutil/ccache"
)

const (
	// DefaultMaxFileSize bounds the size of a single input, files are read whole.
	DefaultMaxFileSize int64 = 1 << 30
	DefaultCacheSize         = 1024
)

// StdinName is the path used for standard input.
const StdinName = "-"

type Options struct {
	// Workers <= 0 uses one worker per CPU.
	Workers int
	// MaxFileSize <= 0 uses DefaultMaxFileSize.
	MaxFileSize int64
	// Cache memoizes digests across calls, nil disables it.
	Cache *ccache.DigestCache
}

// Result is the outcome for one (path, algorithm) pair.
type Result struct {
	Path      string
	Algorithm Algorithm
	Digest    []byte
	Cached    bool
	Err       error
}

// Hasher digests files on a bounded worker pool.
type Hasher struct {
	pool        *ants.Pool
	maxFileSize int64
	cache       *ccache.DigestCache

	// available memory probe, replaced in tests
	memAvailable func() (uint64, error)
}

func NewHasher(opts Options) (*Hasher, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	maxFileSize := opts.MaxFileSize
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, cerrors.Wrap(cerrors.ErrWorkerPool, err, "create worker pool")
	}
	return &Hasher{
		pool:         pool,
		maxFileSize:  maxFileSize,
		cache:        opts.Cache,
		memAvailable: availableMemory,
	}, nil
}

func availableMemory() (uint64, error) {
	stat, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return stat.Available, nil
}

// Close releases the worker pool.
func (h *Hasher) Close() {
	h.pool.Release()
}

// run calls task(i) for i in [0, n) on the pool and waits for all of them.
// Tasks that cannot start because ctx is done or the pool refuses them are
// passed to fail instead.
func (h *Hasher) run(ctx context.Context, n int, task func(i int), fail func(i int, err error)) {
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			fail(i, err)
			continue
		}
		i := i
		wg.Add(1)
		err := h.pool.Submit(func() {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				fail(i, err)
				return
			}
			task(i)
		})
		if err != nil {
			wg.Done()
			fail(i, cerrors.Wrap(cerrors.ErrWorkerPool, err, "submit task"))
		}
	}
	wg.Wait()
}

// collect returns the n results stored under their decimal index.
func collect(m cmap.ConcurrentMap, n int) []Result {
	results := make([]Result, n)
	for i := range results {
		if v, ok := m.Get(strconv.Itoa(i)); ok {
			results[i] = v.(Result)
		}
	}
	return results
}

// SumFiles digests every path with every algorithm. Each file is read at
// most once. Results are ordered path-major, in input order.
func (h *Hasher) SumFiles(ctx context.Context, paths []string, algos []Algorithm) []Result {
	m := cmap.New()
	store := func(i, j int, r Result) { m.Set(strconv.Itoa(i*len(algos)+j), r) }

	h.run(ctx, len(paths), func(i int) {
		for j, r := range h.sumFile(paths[i], algos) {
			store(i, j, r)
		}
	}, func(i int, err error) {
		for j, a := range algos {
			store(i, j, Result{Path: paths[i], Algorithm: a, Err: err})
		}
	})

	results := collect(m, len(paths)*len(algos))
	logging.VPrint(logging.DEBUG, "files summed", logging.LogFormat{
		"files": len(paths),
		"algos": len(algos),
	})
	return results
}

// SumReader digests r, read whole, with every algorithm.
func (h *Hasher) SumReader(name string, r io.Reader, algos []Algorithm) []Result {
	data, err := ioutil.ReadAll(io.LimitReader(r, h.maxFileSize+1))
	if err == nil && int64(len(data)) > h.maxFileSize {
		err = cerrors.Errorf(cerrors.ErrFileTooLarge, "%s: larger than %d bytes", name, h.maxFileSize)
	} else if err != nil {
		err = cerrors.Wrapf(cerrors.ErrFileRead, err, "read %s", name)
	}
	results := make([]Result, len(algos))
	for j, a := range algos {
		results[j] = Result{Path: name, Algorithm: a, Err: err}
		if err == nil {
			results[j].Digest = a.Sum(data)
		}
	}
	return results
}

func (h *Hasher) sumFile(path string, algos []Algorithm) []Result {
	results := make([]Result, len(algos))
	for j, a := range algos {
		results[j] = Result{Path: path, Algorithm: a}
	}
	fail := func(err error) []Result {
		for j := range results {
			results[j].Err = err
		}
		logging.VPrint(logging.WARN, "cannot sum file", logging.LogFormat{"path": path, "err": err})
		return results
	}

	info, err := os.Stat(path)
	if err != nil {
		return fail(cerrors.WithCode(cerrors.ErrFileOpen, err))
	}
	if info.IsDir() {
		return fail(cerrors.Errorf(cerrors.ErrFileRead, "%s: is a directory", path))
	}

	keys := make([]ccache.Key, len(algos))
	pending := 0
	for j, a := range algos {
		keys[j] = ccache.Key{Algorithm: a.name, Path: path, Size: info.Size(), ModTime: info.ModTime().UnixNano()}
		if h.cache != nil {
			if digest, ok := h.cache.Get(keys[j]); ok {
				results[j].Digest, results[j].Cached = digest, true
				continue
			}
		}
		pending++
	}
	if pending == 0 {
		return results
	}

	data, err := h.readFile(path, info.Size())
	if err != nil {
		return fail(err)
	}
	for j, a := range algos {
		if results[j].Cached {
			continue
		}
		results[j].Digest = a.Sum(data)
		if h.cache != nil {
			h.cache.Add(keys[j], results[j].Digest)
		}
	}
	return results
}

func (h *Hasher) readFile(path string, size int64) ([]byte, error) {
	if size > h.maxFileSize {
		return nil, cerrors.Errorf(cerrors.ErrFileTooLarge, "%s: %d bytes exceeds limit of %d", path, size, h.maxFileSize)
	}
	if avail, err := h.memAvailable(); err == nil && uint64(size) > avail {
		return nil, cerrors.Errorf(cerrors.ErrFileTooLarge, "%s: %d bytes exceeds available memory %d", path, size, avail)
	}
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, cerrors.WithCode(cerrors.ErrFileRead, err)
	}
	if int64(len(data)) > h.maxFileSize {
		return nil, cerrors.Errorf(cerrors.ErrFileTooLarge, "%s: grew past limit of %d bytes", path, h.maxFileSize)
	}
	return data, nil
}
