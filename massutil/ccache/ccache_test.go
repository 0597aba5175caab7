package ccache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigestCache(t *testing.T) {
	c := NewDigestCache(2)
	k1 := Key{Algorithm: "sha256", Path: "a", Size: 3, ModTime: 1}
	k2 := Key{Algorithm: "sha512", Path: "a", Size: 3, ModTime: 1}
	k3 := Key{Algorithm: "sha256", Path: "a", Size: 3, ModTime: 2}

	_, ok := c.Get(k1)
	assert.False(t, ok)

	digest := []byte{1, 2, 3}
	c.Add(k1, digest)
	digest[0] = 9 // cache keeps its own copy

	got, ok := c.Get(k1)
	assert.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, got)
	got[1] = 9
	got, _ = c.Get(k1)
	assert.Equal(t, []byte{1, 2, 3}, got)

	c.Add(k2, []byte{4})
	c.Add(k3, []byte{5})
	assert.Equal(t, 2, c.Len())

	// k1 was least recently used
	_, ok = c.Get(k1)
	assert.False(t, ok)

	hits, miss := c.Stats()
	assert.Equal(t, uint64(2), hits)
	assert.Equal(t, uint64(2), miss)

	c.Remove(k2)
	assert.Equal(t, 1, c.Len())
	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestDigestCacheConcurrent(t *testing.T) {
	c := NewDigestCache(16)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			k := Key{Algorithm: "sha256", Path: string(rune('a' + i))}
			for j := 0; j < 100; j++ {
				c.Add(k, []byte{byte(i)})
				v, ok := c.Get(k)
				if ok {
					assert.Equal(t, []byte{byte(i)}, v)
				}
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 8, c.Len())
}
