// Package category resolves pub.dev package names to display categories for
// grouped manifest rewrites. Resolution is layered: a local JSON cache, a
// remote category API, and a name-based heuristic that always answers.
package category

import (
	"context"

	"github.com/fluttertools/pubsweep/internal/logging"
)

// FallbackCategory is used for packages no layer can classify.
const FallbackCategory = "Other"

// Provider resolves a batch of package names to categories. A provider may
// answer for a subset of the names; missing entries fall through to the next
// layer. Only transport-level failures are errors.
type Provider interface {
	Categories(ctx context.Context, names []string) (map[string]string, error)
}

// Chain resolves categories through an ordered set of layers. Lookups never
// fail: a layer error is logged and the next layer consulted, and the
// heuristic layer at the end answers for everything.
type Chain struct {
	cache     *Cache
	remote    *Remote
	heuristic *Heuristic
}

// NewChain assembles the standard three-layer resolver. remote may be nil,
// in which case lookups go straight from cache to heuristic.
func NewChain(cache *Cache, remote *Remote, heuristic *Heuristic) *Chain {
	return &Chain{cache: cache, remote: remote, heuristic: heuristic}
}

// Resolve returns a category for every requested name.
//
// Cache hits are served as-is. Remote answers are persisted to the cache and,
// when publishing is enabled, echoed back to the API so the shared dataset
// grows. Heuristic answers are persisted to the cache only; guesses are never
// published.
func (c *Chain) Resolve(ctx context.Context, names []string) map[string]string {
	resolved := make(map[string]string, len(names))
	pending := names

	if c.cache != nil {
		hits, err := c.cache.Categories(ctx, pending)
		if err != nil {
			logging.Warn("category cache unreadable, skipping", "error", err)
		}
		pending = c.absorb(resolved, hits, pending)
	}

	if c.remote != nil && len(pending) > 0 {
		hits, err := c.remote.Categories(ctx, pending)
		if err != nil {
			logging.Warn("category API unavailable, falling back to heuristics", "error", err)
		} else {
			c.persist(hits)
			if c.remote.Publish {
				c.remote.PublishCategories(ctx, hits)
			}
		}
		pending = c.absorb(resolved, hits, pending)
	}

	if len(pending) > 0 {
		hits, _ := c.heuristic.Categories(ctx, pending)
		c.persist(hits)
		pending = c.absorb(resolved, hits, pending)
	}

	for _, name := range pending {
		resolved[name] = FallbackCategory
	}

	return resolved
}

// absorb merges hits into resolved and returns the names still unanswered.
func (c *Chain) absorb(resolved, hits map[string]string, names []string) []string {
	var rest []string
	for _, name := range names {
		if cat, ok := hits[name]; ok && cat != "" {
			resolved[name] = cat
		} else {
			rest = append(rest, name)
		}
	}
	return rest
}

// persist stores resolved categories in the cache, best effort.
func (c *Chain) persist(hits map[string]string) {
	if c.cache == nil || len(hits) == 0 {
		return
	}
	if err := c.cache.Put(hits); err != nil {
		logging.Warn("failed to update category cache", "error", err)
	}
}
