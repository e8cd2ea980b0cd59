package climate

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexiusacademia/gonbc/internal/nbc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	gaspe    = Site{ID: "Gaspé", GroundSnowLoad: 4.9, AssociatedRainLoad: 0.32, RainfallMM: 96}
	montreal = Site{ID: "Montréal", GroundSnowLoad: 2.6, AssociatedRainLoad: 0.4, RainfallMM: 93}
)

func TestMapSource_Lookup(t *testing.T) {
	src := NewMapSource(gaspe, montreal)

	site, err := src.Lookup(context.Background(), "Gaspé")
	require.NoError(t, err)
	assert.Equal(t, gaspe, site)

	_, err = src.Lookup(context.Background(), "Atlantis")
	require.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, nbc.ErrLookupFailure)
	assert.Contains(t, err.Error(), "Atlantis")
}

func TestSite_Validate(t *testing.T) {
	require.NoError(t, gaspe.Validate())

	bad := gaspe
	bad.GroundSnowLoad = -1
	assert.ErrorIs(t, bad.Validate(), nbc.ErrInvalidInput)

	assert.ErrorIs(t, Site{}.Validate(), nbc.ErrInvalidInput)

	for _, mutate := range []func(*Site){
		func(s *Site) { s.GroundSnowLoad = math.NaN() },
		func(s *Site) { s.GroundSnowLoad = math.Inf(1) },
		func(s *Site) { s.AssociatedRainLoad = math.NaN() },
		func(s *Site) { s.RainfallMM = math.Inf(-1) },
	} {
		s := gaspe
		mutate(&s)
		assert.ErrorIs(t, s.Validate(), nbc.ErrInvalidInput, "%+v", s)
	}
}

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "loads.db"), time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_UpsertAndLookup(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, gaspe, montreal))

	site, err := store.Lookup(ctx, "Montréal")
	require.NoError(t, err)
	assert.Equal(t, montreal, site)

	updated := montreal
	updated.GroundSnowLoad = 2.7
	require.NoError(t, store.Upsert(ctx, updated))

	site, err = store.Lookup(ctx, "Montréal")
	require.NoError(t, err)
	assert.Equal(t, 2.7, site.GroundSnowLoad)

	sites, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, sites, 2)
	assert.Equal(t, "Gaspé", sites[0].ID)
}

func TestSQLiteStore_NotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Lookup(context.Background(), "nowhere")
	require.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, nbc.ErrLookupFailure)
}

func TestSQLiteStore_UpsertRejectsInvalidSite(t *testing.T) {
	store := openTestStore(t)

	err := store.Upsert(context.Background(), Site{ID: "bad", GroundSnowLoad: -2})
	require.ErrorIs(t, err, nbc.ErrInvalidInput)

	sites, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sites)
}

// --- CachedSource ---

type countingSource struct {
	calls int
	inner Source
}

func (c *countingSource) Lookup(ctx context.Context, siteID string) (Site, error) {
	c.calls++
	return c.inner.Lookup(ctx, siteID)
}

func TestCachedSource_Hit(t *testing.T) {
	inner := &countingSource{inner: NewMapSource(gaspe)}
	cached := NewCachedSource(inner, 10)

	for i := 0; i < 3; i++ {
		site, err := cached.Lookup(context.Background(), "Gaspé")
		require.NoError(t, err)
		assert.Equal(t, 4.9, site.GroundSnowLoad)
	}
	assert.Equal(t, 1, inner.calls, "should only call inner once")
}

func TestCachedSource_MissesAreNotCached(t *testing.T) {
	inner := &countingSource{inner: NewMapSource()}
	cached := NewCachedSource(inner, 10)

	_, err := cached.Lookup(context.Background(), "Gaspé")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = cached.Lookup(context.Background(), "Gaspé")
	require.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, 2, inner.calls)
}

func TestLRUCache_Eviction(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", Site{ID: "a"})
	c.put("b", Site{ID: "b"})
	c.get("a")
	c.put("c", Site{ID: "c"}) // evicts "b"

	_, ok := c.get("b")
	assert.False(t, ok, "b should have been evicted")
	_, ok = c.get("a")
	assert.True(t, ok)
	_, ok = c.get("c")
	assert.True(t, ok)
}

func TestLoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sites.yaml")
	content := `sites:
  - location: Gaspé
    snow: 4.9
    snow_rain: 0.32
    rain: 96
  - location: Montréal
    snow: 2.6
    snow_rain: 0.4
    rain: 93
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	sites, err := LoadSeedFile(path)
	require.NoError(t, err)
	assert.Equal(t, []Site{gaspe, montreal}, sites)
}

func TestLoadSeedFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sites.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sites:\n  - location: x\n    snow: -1\n"), 0o644))

	_, err := LoadSeedFile(path)
	require.ErrorIs(t, err, nbc.ErrInvalidInput)

	_, err = LoadSeedFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
