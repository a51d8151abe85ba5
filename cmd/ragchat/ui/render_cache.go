package ui

import (
	"hash/fnv"
	"sync"
)

// RenderCache memoizes rendered bot replies. The transcript is re-rendered
// on every spinner tick, and markdown rendering is far slower than a lookup.
type RenderCache struct {
	mu      sync.Mutex
	entries map[uint64]string
	maxSize int
}

// NewRenderCache creates a cache holding at most maxSize entries. When it is
// full the next insert starts over from empty.
func NewRenderCache(maxSize int) *RenderCache {
	if maxSize <= 0 {
		maxSize = 256
	}
	return &RenderCache{
		entries: make(map[uint64]string),
		maxSize: maxSize,
	}
}

// CacheKey hashes the inputs that determine a rendering: the text, the wrap
// width and the palette.
func CacheKey(text string, width int, dark bool) uint64 {
	h := fnv.New64a()
	h.Write([]byte(text))

	var b [9]byte
	u := uint64(width)
	for i := 0; i < 8; i++ {
		b[i] = byte(u >> (8 * i))
	}
	if dark {
		b[8] = 1
	}
	h.Write(b[:])
	return h.Sum64()
}

// GetOrCompute returns the cached rendering for key, calling compute on a
// miss.
func (rc *RenderCache) GetOrCompute(key uint64, compute func() string) string {
	rc.mu.Lock()
	if content, ok := rc.entries[key]; ok {
		rc.mu.Unlock()
		return content
	}
	rc.mu.Unlock()

	content := compute()

	rc.mu.Lock()
	defer rc.mu.Unlock()
	if len(rc.entries) >= rc.maxSize {
		rc.entries = make(map[uint64]string)
	}
	rc.entries[key] = content
	return content
}

// Len reports the number of cached renderings.
func (rc *RenderCache) Len() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return len(rc.entries)
}
