package texture

import (
	"image"
	"sync"
)

// Cache decodes indexed textures on first use and keeps them. Names that
// resolve to the same file share one entry, and concurrent first requests for
// a file decode it once.
type Cache struct {
	index *Index

	mu      sync.Mutex
	entries map[string]func() (*image.NRGBA, error)
}

// NewCache creates a new texture cache backed by the given index.
func NewCache(index *Index) *Cache {
	return &Cache{
		index:   index,
		entries: make(map[string]func() (*image.NRGBA, error)),
	}
}

// Resolve returns the decoded texture, or nil if it is not indexed or can't
// be decoded.
func (c *Cache) Resolve(texName string) *image.NRGBA {
	img, _ := c.Load(texName)
	return img
}

// Load is Resolve with the reason for a miss. A name that isn't indexed
// yields (nil, nil). Decode errors are kept like images.
func (c *Cache) Load(texName string) (*image.NRGBA, error) {
	path, ok := c.index.ResolvePath(texName)
	if !ok {
		return nil, nil
	}

	c.mu.Lock()
	load, exists := c.entries[path]
	if !exists {
		load = sync.OnceValues(func() (*image.NRGBA, error) {
			return LoadTexture(path)
		})
		c.entries[path] = load
	}
	c.mu.Unlock()

	return load()
}

// Len returns the number of files requested so far.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
