package library

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finchley/lexi/internal/domain"
	"github.com/finchley/lexi/internal/store"
)

func testSet(t *testing.T, name string, terms ...string) *domain.StudySet {
	t.Helper()

	words := make([]*domain.WordItem, 0, len(terms))
	for _, term := range terms {
		w, err := domain.NewWordItem(term)
		require.NoError(t, err)
		words = append(words, w)
	}

	set, err := domain.NewStudySet(name, domain.SetTypeText, words)
	require.NoError(t, err)
	return set
}

func newTestLibrary(t *testing.T, storage store.Storage) *Library {
	t.Helper()

	lib, err := New(context.Background(), storage, slog.Default())
	require.NoError(t, err)
	return lib
}

func TestSaveReplacesByName(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	lib := newTestLibrary(t, store.NewMemoryStorage())

	first := testSet(t, "chapter one", "alpha")
	second := testSet(t, "chapter one", "beta", "gamma")

	require.NoError(t, lib.Save(ctx, first))
	require.NoError(t, lib.Save(ctx, second))

	sets := lib.List(ctx)
	require.Len(t, sets, 1, "re-saving the same name must replace, not duplicate")
	assert.Equal(t, second.ID, sets[0].ID, "the second set's contents win")
	assert.Equal(t, 2, sets[0].WordCount)
}

func TestSaveEvictsPastCapacity(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	lib := newTestLibrary(t, store.NewMemoryStorage())

	for i := 0; i < MaxSets+1; i++ {
		require.NoError(t, lib.Save(ctx, testSet(t, fmt.Sprintf("set-%02d", i), "word")))
	}

	sets := lib.List(ctx)
	require.Len(t, sets, MaxSets)

	names := make(map[string]bool, len(sets))
	for _, s := range sets {
		names[s.Name] = true
	}
	assert.False(t, names["set-00"], "the oldest set is evicted")
	assert.True(t, names["set-20"], "the newest set survives")
	assert.Equal(t, "set-20", sets[0].Name, "most recent first")
}

func TestDeleteIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	lib := newTestLibrary(t, store.NewMemoryStorage())

	set := testSet(t, "short-lived", "word")
	require.NoError(t, lib.Save(ctx, set))

	require.NoError(t, lib.Delete(ctx, set.ID))
	assert.Empty(t, lib.List(ctx))

	// Second delete of the same ID is a no-op.
	require.NoError(t, lib.Delete(ctx, set.ID))
	assert.Empty(t, lib.List(ctx))

	// Unknown IDs are equally fine.
	require.NoError(t, lib.Delete(ctx, uuid.New()))
}

func TestGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	lib := newTestLibrary(t, store.NewMemoryStorage())

	set := testSet(t, "lookup", "word")
	require.NoError(t, lib.Save(ctx, set))

	got, err := lib.Get(ctx, set.ID)
	require.NoError(t, err)
	assert.Equal(t, set.Name, got.Name)

	_, err = lib.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrSetNotFound)
}

func TestSaveSurvivesFlushFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	storage := store.NewMemoryStorage()
	lib := newTestLibrary(t, storage)

	storage.FailSets = fmt.Errorf("storage quota exceeded")

	set := testSet(t, "unlucky", "word")
	err := lib.Save(ctx, set)
	require.Error(t, err)

	var storeErr *store.StoreError
	assert.ErrorAs(t, err, &storeErr)

	// Memory stays authoritative even though the mirror write failed.
	sets := lib.List(ctx)
	require.Len(t, sets, 1)
	assert.Equal(t, set.ID, sets[0].ID)
}

func TestNewReloadsPersistedSets(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	storage := store.NewMemoryStorage()

	lib := newTestLibrary(t, storage)
	require.NoError(t, lib.Save(ctx, testSet(t, "persisted", "alpha", "beta")))

	reloaded := newTestLibrary(t, storage)
	sets := reloaded.List(ctx)
	require.Len(t, sets, 1)
	assert.Equal(t, "persisted", sets[0].Name)
	require.Len(t, sets[0].Words, 2)
	assert.Equal(t, "alpha", sets[0].Words[0].Term)
}

func TestSaveRejectsInvalidSet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	lib := newTestLibrary(t, store.NewMemoryStorage())

	set := testSet(t, "broken", "word")
	set.WordCount = 7

	assert.ErrorIs(t, lib.Save(ctx, set), store.ErrInvalidEntity)
	assert.ErrorIs(t, lib.Save(ctx, nil), store.ErrInvalidEntity)
}
