package importing

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestResolutionCache_LookupIsCaseInsensitiveAndTrimmed(t *testing.T) {
	cache := NewResolutionCache()
	id := uuid.New()
	cache.Seed("Acme Corp", id)

	for _, name := range []string{"Acme Corp", "acme corp", "ACME CORP", "  Acme Corp  "} {
		got, ok := cache.Lookup(name)
		require.True(t, ok, "lookup %q", name)
		require.Equal(t, id, got)
	}

	_, ok := cache.Lookup("Acme")
	require.False(t, ok, "no fuzzy matching")
}

func TestResolutionCache_ResolveOrCreate_CreatesOncePerName(t *testing.T) {
	cache := NewResolutionCache()
	created := 0
	create := func(ctx context.Context, name string) (uuid.UUID, error) {
		created++
		return uuid.New(), nil
	}

	first, err := cache.ResolveOrCreate(context.Background(), "Acme", create)
	require.NoError(t, err)

	// Different casing of the same name resolves to the cached id.
	second, err := cache.ResolveOrCreate(context.Background(), "ACME", create)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, 1, created)
}

func TestResolutionCache_ResolveOrCreate_DoesNotCacheFailures(t *testing.T) {
	cache := NewResolutionCache()
	boom := errors.New("insert failed")

	_, err := cache.ResolveOrCreate(context.Background(), "Acme",
		func(ctx context.Context, name string) (uuid.UUID, error) {
			return uuid.Nil, boom
		})
	require.ErrorIs(t, err, boom)

	_, ok := cache.Lookup("Acme")
	require.False(t, ok)
}

func TestResolutionCache_ResolveStrict_OverridesWin(t *testing.T) {
	cache := NewResolutionCache()
	cachedID := uuid.New()
	overrideID := uuid.New()
	cache.Seed("Acme", cachedID)

	got, err := cache.ResolveStrict("acme", Overrides{"ACME": overrideID})
	require.NoError(t, err)
	require.Equal(t, overrideID, got)
}

func TestResolutionCache_ResolveStrict_NeverCreates(t *testing.T) {
	cache := NewResolutionCache()

	_, err := cache.ResolveStrict("Globex", nil)
	require.Error(t, err)
	require.EqualError(t, err, `"Globex" not found and not resolved`)
}
