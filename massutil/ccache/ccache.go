package ccache

import (
	"sync"

	"github.com/golang/groupcache/lru"
)

// Key identifies one file content as seen by one algorithm. A file that is
// rewritten in place gets a new size or modification time and so a new key.
type Key struct {
	Algorithm string
	Path      string
	Size      int64
	ModTime   int64 // unix nanoseconds
}

// DigestCache is a concurrent safe lru cache of digests.
type DigestCache struct {
	l     sync.Mutex
	cache *lru.Cache
	hits  uint64
	miss  uint64
}

func NewDigestCache(maxEntries int) *DigestCache {
	return &DigestCache{
		cache: lru.New(maxEntries),
	}
}

// Get returns a copy of the cached digest.
func (c *DigestCache) Get(key Key) ([]byte, bool) {
	c.l.Lock()
	defer c.l.Unlock()
	v, ok := c.cache.Get(key)
	if !ok {
		c.miss++
		return nil, false
	}
	c.hits++
	return append([]byte(nil), v.([]byte)...), true
}

func (c *DigestCache) Add(key Key, digest []byte) {
	c.l.Lock()
	c.cache.Add(key, append([]byte(nil), digest...))
	c.l.Unlock()
}

func (c *DigestCache) Remove(key Key) {
	c.l.Lock()
	c.cache.Remove(key)
	c.l.Unlock()
}

func (c *DigestCache) Clear() {
	c.l.Lock()
	c.cache.Clear()
	c.l.Unlock()
}

func (c *DigestCache) Len() int {
	c.l.Lock()
	defer c.l.Unlock()
	return c.cache.Len()
}

// Stats returns the number of hits and misses seen by Get.
func (c *DigestCache) Stats() (hits, miss uint64) {
	c.l.Lock()
	defer c.l.Unlock()
	return c.hits, c.miss
}
