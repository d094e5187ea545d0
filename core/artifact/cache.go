package artifact

import (
	"fmt"
	"sync"

	"github.com/gridwatt/demandcast/core/model"
	"github.com/gridwatt/demandcast/core/region"
)

// Store abstracts the read-only artifact directory.
type Store interface {
	Exists(path string) bool
	ReadFile(path string) ([]byte, error)
}

// Cache loads artifacts lazily and memoizes them by (region code, family)
// for the process lifetime. Loaded handles are never mutated. The mutex
// keeps at most one load per key when the cache serves a long-lived process.
type Cache struct {
	dir   string
	store Store

	mu     sync.Mutex
	loaded map[string]Model
}

// NewCache builds a Cache over the artifact directory.
func NewCache(dir string, store Store) *Cache {
	return &Cache{dir: dir, store: store, loaded: make(map[string]Model)}
}

// Get returns the loaded artifact for a region label and family, loading it
// on first use. Sequence-model artifacts are never deserialized: if the file
// exists, a region-tagged Placeholder is cached instead, absorbing what
// would otherwise be a load error.
func (c *Cache) Get(label string, family model.ModelFamily) (Model, error) {
	code := region.Normalize(label)
	key := code + "_" + family.String()

	c.mu.Lock()
	defer c.mu.Unlock()
	if m, ok := c.loaded[key]; ok {
		return m, nil
	}

	path := Locate(c.dir, code, family)
	if !c.store.Exists(path) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	var m Model
	if family.IsSequence() {
		m = Placeholder{Region: label}
	} else {
		raw, err := c.store.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLoad, path, err)
		}
		lm, err := decodeLinear(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLoad, path, err)
		}
		m = lm
	}

	c.loaded[key] = m
	return m, nil
}

// Available returns the families whose artifact path exists in the store.
// Read-only: nothing is loaded or cached.
func (c *Cache) Available(label string) []model.ModelFamily {
	code := region.Normalize(label)
	var out []model.ModelFamily
	for _, f := range model.Families() {
		if c.store.Exists(Locate(c.dir, code, f)) {
			out = append(out, f)
		}
	}
	return out
}
