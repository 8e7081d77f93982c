package sqlite

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finchley/lexi/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openTestStorage(t *testing.T) *Storage {
	t.Helper()

	path := filepath.Join(t.TempDir(), "lexi.db")
	s, err := New(path, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewValidatesArguments(t *testing.T) {
	t.Parallel()

	_, err := New("", testLogger())
	assert.Error(t, err)

	_, err = New(filepath.Join(t.TempDir(), "lexi.db"), nil)
	assert.Error(t, err)
}

func TestGetMissingKey(t *testing.T) {
	t.Parallel()

	s := openTestStorage(t)

	_, err := s.Get(context.Background(), store.KeyLibrary)
	assert.ErrorIs(t, err, store.ErrKeyNotFound)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSetAndGetRoundTrip(t *testing.T) {
	t.Parallel()

	s := openTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, store.KeyHistory, []byte(`[{"term":"apple"}]`)))

	got, err := s.Get(ctx, store.KeyHistory)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"term":"apple"}]`, string(got))
}

func TestSetReplacesExistingValue(t *testing.T) {
	t.Parallel()

	s := openTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, store.KeyMissed, []byte(`["apple"]`)))
	require.NoError(t, s.Set(ctx, store.KeyMissed, []byte(`["banana"]`)))

	got, err := s.Get(ctx, store.KeyMissed)
	require.NoError(t, err)
	assert.JSONEq(t, `["banana"]`, string(got))
}

func TestKeysAreIndependent(t *testing.T) {
	t.Parallel()

	s := openTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, store.KeyLibrary, []byte(`[]`)))

	_, err := s.Get(ctx, store.KeyHistory)
	assert.ErrorIs(t, err, store.ErrKeyNotFound)
}

func TestValuesSurviveReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "lexi.db")
	ctx := context.Background()

	s, err := New(path, testLogger())
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, store.KeyLibrary, []byte(`["persisted"]`)))
	require.NoError(t, s.Close())

	reopened, err := New(path, testLogger())
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, store.KeyLibrary)
	require.NoError(t, err)
	assert.JSONEq(t, `["persisted"]`, string(got))
}
