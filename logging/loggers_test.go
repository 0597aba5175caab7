package logging

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempLogDir(t *testing.T) string {
	dir, err := ioutil.TempDir("", "sha2sum-log")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

func readLog(t *testing.T, dir, name string) string {
	files, err := filepath.Glob(filepath.Join(dir, name+"-*.log"))
	require.NoError(t, err)
	require.NotEmpty(t, files)
	var out strings.Builder
	for _, f := range files {
		data, err := ioutil.ReadFile(f)
		require.NoError(t, err)
		out.Write(data)
	}
	return out.String()
}

func TestWarn(t *testing.T) {
	dir := tempLogDir(t)
	Init(dir, "test", WarnLevel, 1, false)

	CPrint(WARN, "digest mismatch", LogFormat{"path": "a.txt", "algo": "sha256"})
	CPrint(ERROR, "cannot open file", nil)
	VPrint(INFO, "dropped below level", LogFormat{"files": 3})
	VPrint(WARN, "file only", LogFormat{"files": 3})

	out := readLog(t, dir, "test")
	assert.Contains(t, out, "digest mismatch")
	assert.Contains(t, out, "path=a.txt")
	assert.Contains(t, out, "cannot open file")
	assert.Contains(t, out, "file only")
	assert.NotContains(t, out, "dropped below level")
}

func TestDebug(t *testing.T) {
	dir := tempLogDir(t)
	Init(dir, "test", DebugLevel, 0, true)

	CPrint(TRACE, "trace is filtered", nil)
	CPrint(DEBUG, "debug passes", LogFormat{"workers": 4})
	VPrint(DEBUG, "hashed", LogFormat{"bytes": 1024})

	out := readLog(t, dir, "test")
	assert.NotContains(t, out, "trace is filtered")
	assert.Contains(t, out, "debug passes")
	assert.Contains(t, out, "bytes=1024")
	assert.Contains(t, out, "func=")
}

func TestGid(t *testing.T) {
	dir := tempLogDir(t)
	Init(dir, "test", InfoLevel, 0, true)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			VPrint(INFO, "worker done", LogFormat{"index": i})
		}(i)
	}
	wg.Wait()

	out := readLog(t, dir, "test")
	assert.Equal(t, 10, strings.Count(out, "worker done"))
	assert.NotZero(t, GetGID())
}

func TestMergeLogFormats(t *testing.T) {
	merged := mergeLogFormats(LogFormat{"a": 1, "b": 1}, nil, LogFormat{"b": 2})
	assert.Equal(t, 1, merged["a"])
	assert.Equal(t, 2, merged["b"])
	assert.Contains(t, merged, "tid")
}

func TestLevels(t *testing.T) {
	assert.True(t, ValidLevel(TraceLevel))
	assert.False(t, ValidLevel("verbose"))
	assert.Equal(t, convertLevel(InfoLevel), convertLevel("verbose"))
}

func TestCallRelation(t *testing.T) {
	assert.Equal(t, MsgFormatMulti, callRelation(logrus.PanicLevel))
	assert.Equal(t, MsgFormatMulti, callRelation(logrus.ErrorLevel))
	assert.Equal(t, MsgFormatSingle, callRelation(logrus.WarnLevel))
	assert.Equal(t, MsgFormatSingle, callRelation(logrus.TraceLevel))

	dir := tempLogDir(t)
	Init(dir, "test", TraceLevel, 0, true)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				VPrint(ERROR, "failed", LogFormat{"index": i})
			} else {
				VPrint(WARN, "skipped", LogFormat{"index": i})
			}
		}(i)
	}
	wg.Wait()

	lines := strings.Split(readLog(t, dir, "test"), "\n")
	var failed, skipped int
	for _, line := range lines {
		switch {
		case strings.Contains(line, "msg=failed"):
			failed++
			assert.Contains(t, line, "f8=")
			assert.NotContains(t, line, "func=")
		case strings.Contains(line, "msg=skipped"):
			skipped++
			assert.Contains(t, line, "func=")
			assert.NotContains(t, line, "f8=")
		}
	}
	assert.Equal(t, 16, failed)
	assert.Equal(t, 16, skipped)
}

func TestDefaultLoggers(t *testing.T) {
	mu.Lock()
	saved := [2]*Logger{clog, vlog}
	clog = newDiscardLogger()
	vlog = clog
	mu.Unlock()
	defer func() {
		mu.Lock()
		clog, vlog = saved[0], saved[1]
		mu.Unlock()
	}()

	c, v := loggers()
	assert.Same(t, c, v)
	assert.Equal(t, ioutil.Discard, c.Out)
	assert.Empty(t, c.Hooks)

	CPrint(ERROR, "nowhere", nil)
	VPrint(WARN, "nowhere", nil)
	c2, v2 := loggers()
	assert.Same(t, c, c2)
	assert.Same(t, v, v2)
}
