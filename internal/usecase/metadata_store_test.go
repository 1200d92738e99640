package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fconline-tracker/internal/domain/metadata"
	"github.com/stretchr/testify/require"
)

func TestMetadataStore_Load_InvalidTable(t *testing.T) {
	t.Parallel()

	store := newTestStore(newFakeCache(), newFakeSource(testTables()), nil)
	for _, name := range []metadata.TableName{"", "spids", "players", "SPID", "metadata:spid"} {
		_, err := store.Load(context.Background(), name)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("table %q: expected ErrInvalidArgument, got %v", name, err)
		}
	}
}

func TestMetadataStore_Load_CacheHitSkipsOrigins(t *testing.T) {
	t.Parallel()

	cache := newFakeCache()
	file := newFakeSource(testTables())
	remote := newFakeSource(testTables())
	store := newTestStore(cache, file, remote)
	ctx := context.Background()

	first, err := store.Load(ctx, metadata.TableSpID)
	require.NoError(t, err)
	second, err := store.Load(ctx, metadata.TableSpID)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, 1, file.callCount(metadata.TableSpID))
	require.Equal(t, 0, remote.callCount(metadata.TableSpID))
}

func TestMetadataStore_Load_FileWinsOverRemote(t *testing.T) {
	t.Parallel()

	cache := newFakeCache()
	file := newFakeSource(testTables())
	remote := newFakeSource(testTables())
	store := newTestStore(cache, file, remote)

	table, err := store.Load(context.Background(), metadata.TableDivision)
	require.NoError(t, err)
	require.Len(t, table, 1)
	require.Equal(t, 0, remote.callCount(metadata.TableDivision))

	e, ok := cache.entry("metadata:division")
	require.True(t, ok)
	require.Equal(t, 24*time.Hour, e.ttl)
}

func TestMetadataStore_Load_RemoteFallbackIsCached(t *testing.T) {
	t.Parallel()

	cache := newFakeCache()
	file := failingSource()
	remote := newFakeSource(testTables())
	store := newTestStore(cache, file, remote)
	ctx := context.Background()

	table, err := store.Load(ctx, metadata.TableSeasonID)
	require.NoError(t, err)
	require.Len(t, table, 2)
	require.Equal(t, 1, remote.callCount(metadata.TableSeasonID))

	_, err = store.Load(ctx, metadata.TableSeasonID)
	require.NoError(t, err)
	require.Equal(t, 1, remote.callCount(metadata.TableSeasonID))
	require.Equal(t, 1, file.callCount(metadata.TableSeasonID))
}

func TestMetadataStore_Load_ReloadsOnceAfterTTL(t *testing.T) {
	t.Parallel()

	cache := newFakeCache()
	file := newFakeSource(testTables())
	store := newTestStore(cache, file, nil)
	ctx := context.Background()

	_, err := store.Load(ctx, metadata.TableMatchType)
	require.NoError(t, err)

	cache.advance(24*time.Hour - time.Minute)
	_, _ = store.Load(ctx, metadata.TableMatchType)
	require.Equal(t, 1, file.callCount(metadata.TableMatchType))

	cache.advance(time.Minute)
	_, _ = store.Load(ctx, metadata.TableMatchType)
	_, _ = store.Load(ctx, metadata.TableMatchType)
	require.Equal(t, 2, file.callCount(metadata.TableMatchType))

	e, ok := cache.entry("metadata:matchtype")
	require.True(t, ok)
	require.True(t, e.expiresAt.After(cache.now))
}

func TestMetadataStore_Load_UnavailableReturnsNil(t *testing.T) {
	t.Parallel()

	cache := newFakeCache()
	store := newTestStore(cache, failingSource(), failingSource())

	table, err := store.Load(context.Background(), metadata.TablePosition)
	require.NoError(t, err)
	require.Nil(t, table)
	require.Equal(t, 0, cache.sets)
}

func TestMetadataStore_Load_CacheErrorsFallThrough(t *testing.T) {
	t.Parallel()

	cache := newFakeCache()
	cache.getErr = errors.New("redis down")
	file := newFakeSource(testTables())
	store := newTestStore(cache, file, nil)

	table, err := store.Load(context.Background(), metadata.TableSpID)
	require.NoError(t, err)
	require.Len(t, table, 2)
}

func TestMetadataStore_Load_CorruptCacheEntryIsMiss(t *testing.T) {
	t.Parallel()

	cache := newFakeCache()
	require.NoError(t, cache.Set(context.Background(), "metadata:spid", []byte("{broken"), time.Hour))
	file := newFakeSource(testTables())
	store := newTestStore(cache, file, nil)

	table, err := store.Load(context.Background(), metadata.TableSpID)
	require.NoError(t, err)
	require.Len(t, table, 2)
	require.Equal(t, 1, file.callCount(metadata.TableSpID))
}

func TestMetadataStore_Load_NullFileFallsBackToRemote(t *testing.T) {
	t.Parallel()

	cache := newFakeCache()
	file := newFakeSource(map[metadata.TableName]metadata.Table{metadata.TableSpID: nil})
	remote := newFakeSource(testTables())
	store := newTestStore(cache, file, remote)
	ctx := context.Background()

	table, err := store.Load(ctx, metadata.TableSpID)
	require.NoError(t, err)
	require.Len(t, table, 2)
	require.Equal(t, 1, remote.callCount(metadata.TableSpID))

	e, ok := cache.entry("metadata:spid")
	require.True(t, ok)
	require.NotEqual(t, "null", string(e.value))

	resolver := &NameResolver{store: store}
	require.Equal(t, "Pelé", resolver.PlayerName(ctx, 100))
}

func TestMetadataStore_Load_NullFromEveryOriginIsNotCached(t *testing.T) {
	t.Parallel()

	cache := newFakeCache()
	nullTables := map[metadata.TableName]metadata.Table{metadata.TableSpID: nil}
	store := newTestStore(cache, newFakeSource(nullTables), newFakeSource(nullTables))

	table, err := store.Load(context.Background(), metadata.TableSpID)
	require.NoError(t, err)
	require.Nil(t, table)
	require.Equal(t, 0, cache.sets)
}

func TestMetadataStore_Load_CachedNullIsMiss(t *testing.T) {
	t.Parallel()

	cache := newFakeCache()
	require.NoError(t, cache.Set(context.Background(), "metadata:spid", []byte("null"), time.Hour))
	file := newFakeSource(testTables())
	store := newTestStore(cache, file, nil)

	table, err := store.Load(context.Background(), metadata.TableSpID)
	require.NoError(t, err)
	require.Len(t, table, 2)
	require.Equal(t, 1, file.callCount(metadata.TableSpID))
}

func TestMetadataStore_NilCacheStillLoads(t *testing.T) {
	t.Parallel()

	file := newFakeSource(testTables())
	store := newTestStore(nil, file, nil)

	table, err := store.Load(context.Background(), metadata.TableSpID)
	require.NoError(t, err)
	require.Len(t, table, 2)
}

func TestMetadataStore_Warmup(t *testing.T) {
	t.Parallel()

	tables := testTables()
	delete(tables, metadata.TablePosition)
	store := newTestStore(newFakeCache(), newFakeSource(tables), failingSource())

	report := store.Warmup(context.Background())
	require.Len(t, report.Tables, len(metadata.Tables))
	require.False(t, report.OK())
	require.Equal(t, 4, report.LoadedCount())

	for _, item := range report.Tables {
		if item.Table == metadata.TablePosition {
			require.False(t, item.Loaded)
			continue
		}
		require.True(t, item.Loaded)
		require.Equal(t, len(tables[item.Table]), item.Items)
	}

	full := newTestStore(newFakeCache(), newFakeSource(testTables()), nil).Warmup(context.Background())
	require.True(t, full.OK())
}

func TestMetadataStore_Invalidate(t *testing.T) {
	t.Parallel()

	cache := newFakeCache()
	file := newFakeSource(testTables())
	store := newTestStore(cache, file, nil)
	ctx := context.Background()

	_, _ = store.Load(ctx, metadata.TableSpID)
	require.NoError(t, store.Invalidate(ctx, metadata.TableSpID))
	_, _ = store.Load(ctx, metadata.TableSpID)
	require.Equal(t, 2, file.callCount(metadata.TableSpID))

	err := store.Invalidate(ctx, metadata.TableName("bogus"))
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestMetadataStore_Index(t *testing.T) {
	t.Parallel()

	store := newTestStore(newFakeCache(), newFakeSource(testTables()), nil)
	index, err := store.Index(context.Background(), metadata.TableSeasonID)
	require.NoError(t, err)
	require.Len(t, index, 2)
	require.Equal(t, "ICON", index[101].String("className"))

	missing := newTestStore(newFakeCache(), failingSource(), nil)
	index, err = missing.Index(context.Background(), metadata.TableSeasonID)
	require.NoError(t, err)
	require.Nil(t, index)
}
