package category

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
)

// Cache is the on-disk category store, a flat JSON object mapping package
// name to category. It lives inside the project's .pubsweep directory so
// repeated runs in the same project avoid the network entirely.
type Cache struct {
	// Path is the JSON file location.
	Path string
}

// NewCache creates a cache handle. The file is created lazily on first Put.
func NewCache(path string) *Cache {
	return &Cache{Path: path}
}

// Categories returns the cached entries for the requested names. A missing
// cache file is an empty cache, not an error.
func (c *Cache) Categories(_ context.Context, names []string) (map[string]string, error) {
	stored, err := c.load()
	if err != nil {
		return nil, err
	}

	hits := make(map[string]string)
	for _, name := range names {
		if cat, ok := stored[name]; ok {
			hits[name] = cat
		}
	}
	return hits, nil
}

// Put merges entries into the cache file, creating it and its directory if
// needed. Existing entries for the same names are overwritten.
func (c *Cache) Put(entries map[string]string) error {
	stored, err := c.load()
	if err != nil {
		// A corrupt cache is rebuilt from scratch rather than abandoned.
		stored = make(map[string]string)
	}
	for name, cat := range entries {
		stored[name] = cat
	}

	if err := os.MkdirAll(filepath.Dir(c.Path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.Path, append(data, '\n'), 0o644)
}

func (c *Cache) load() (map[string]string, error) {
	data, err := os.ReadFile(c.Path)
	if os.IsNotExist(err) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, err
	}
	stored := make(map[string]string)
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, err
	}
	return stored, nil
}
