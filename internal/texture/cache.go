package texture

import (
	"errors"
	"fmt"
	"sync"

	"oldschool-fx/internal/postprocess"
	"oldschool-fx/internal/raster"
)

// ErrNotFound is returned when neither the asset directory nor the
// procedural set knows a texture name.
var ErrNotFound = errors.New("texture: not found")

// Provider resolves a texture name to pixels. Returned buffers are shared:
// callers that modify a texture must Clone it first.
type Provider interface {
	Texture(name string) (*raster.FrameBuffer, error)
}

// Cache is a concurrency-safe texture cache over an asset index. Names the
// index does not know fall through to the procedural textures.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
	index *Index
}

type cacheEntry struct {
	fb  *raster.FrameBuffer
	err error
}

// NewCache creates a new texture cache backed by the given index.
// A nil index serves procedural textures only.
func NewCache(index *Index) *Cache {
	if index == nil {
		index = &Index{entries: map[string]string{}}
	}
	return &Cache{
		items: make(map[string]*cacheEntry),
		index: index,
	}
}

// Texture loads and caches a texture by name.
func (c *Cache) Texture(name string) (*raster.FrameBuffer, error) {
	key := name
	path, onDisk := c.index.ResolvePath(name)
	if onDisk {
		key = path
	}

	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[key]; exists {
		c.mu.RUnlock()
		return entry.fb, entry.err
	}
	c.mu.RUnlock()

	// Slow path: load from disk or generate
	var (
		fb  *raster.FrameBuffer
		err error
	)
	if onDisk {
		fb, err = Load(path)
	} else {
		fb, err = Builtin(name)
	}

	// Write lock with double-check
	c.mu.Lock()
	if entry, exists := c.items[key]; exists {
		c.mu.Unlock()
		return entry.fb, entry.err
	}
	c.items[key] = &cacheEntry{fb: fb, err: err}
	c.mu.Unlock()

	return fb, err
}

// Procedural is a Provider serving only the built-in textures.
type Procedural struct{}

// Texture implements Provider.
func (Procedural) Texture(name string) (*raster.FrameBuffer, error) {
	return Builtin(name)
}

// Sized fetches name from p and rescales it to w×h when it differs.
// The result is always a private copy.
func Sized(p Provider, name string, w, h int) (*raster.FrameBuffer, error) {
	fb, err := p.Texture(name)
	if err != nil {
		return nil, err
	}
	if fb.Width == w && fb.Height == h {
		return fb.Clone(), nil
	}
	if fb.Width == 0 || fb.Height == 0 {
		return nil, fmt.Errorf("texture: %s is empty", name)
	}
	return raster.FromImage(postprocess.Fit(fb.NRGBA(), w, h)), nil
}
