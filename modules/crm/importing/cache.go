package importing

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ResolutionCache is the run-scoped name→id lookup for one referenced
// entity kind. It is seeded once from the tenant's existing entities
// and grows when the run creates a new one, so duplicate names within
// a run never create duplicate entities. Never shared across runs or
// tenants, and never the tenant boundary itself: the repositories
// re-verify ownership on every create.
type ResolutionCache struct {
	ids map[string]uuid.UUID
}

func NewResolutionCache() *ResolutionCache {
	return &ResolutionCache{ids: map[string]uuid.UUID{}}
}

// Seed inserts an existing entity. Names are matched case-insensitively
// after trimming; no fuzzy matching.
func (c *ResolutionCache) Seed(name string, id uuid.UUID) {
	key := cacheKey(name)
	if key == "" {
		return
	}
	c.ids[key] = id
}

// Lookup returns the id for a name, exact match only.
func (c *ResolutionCache) Lookup(name string) (uuid.UUID, bool) {
	id, ok := c.ids[cacheKey(name)]
	return id, ok
}

// ResolveOrCreate looks the name up and, on a miss, creates a new
// entity through the given constructor. The id is cached before
// returning, so the first-seen casing wins for the rest of the run.
func (c *ResolutionCache) ResolveOrCreate(
	ctx context.Context,
	name string,
	create func(ctx context.Context, name string) (uuid.UUID, error),
) (uuid.UUID, error) {
	if id, ok := c.Lookup(name); ok {
		return id, nil
	}

	id, err := create(ctx, strings.TrimSpace(name))
	if err != nil {
		return uuid.Nil, err
	}
	c.Seed(name, id)
	return id, nil
}

// ResolveStrict resolves a name via the caller-supplied overrides
// first, then the cache. It never creates: ambiguous names must be
// resolved by the caller, not guessed.
func (c *ResolutionCache) ResolveStrict(name string, overrides Overrides) (uuid.UUID, error) {
	if id, ok := overrides.Lookup(name); ok {
		return id, nil
	}
	if id, ok := c.Lookup(name); ok {
		return id, nil
	}
	return uuid.Nil, fmt.Errorf("%q not found and not resolved", strings.TrimSpace(name))
}

// Overrides maps source-provided labels to existing entity ids, keyed
// case-insensitively by the literal label.
type Overrides map[string]uuid.UUID

func (o Overrides) Lookup(label string) (uuid.UUID, bool) {
	for candidate, id := range o {
		if cacheKey(candidate) == cacheKey(label) {
			return id, true
		}
	}
	return uuid.Nil, false
}

func cacheKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
