package quiz

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finchley/lexi/internal/domain"
	"github.com/finchley/lexi/internal/progress"
	"github.com/finchley/lexi/internal/store"
)

func seedRecent(t *testing.T, count int) *progress.Progress {
	t.Helper()

	prog, err := progress.New(context.Background(), store.NewMemoryStorage(), slog.Default())
	require.NoError(t, err)

	for i := 0; i < count; i++ {
		w, err := domain.NewWordItem(fmt.Sprintf("recent-%02d", i))
		require.NoError(t, err)
		require.NoError(t, prog.RecordCorrect(context.Background(), w))
	}
	return prog
}

func TestIsEligibleThreshold(t *testing.T) {
	t.Parallel()

	tests := []struct {
		recent int
		want   bool
	}{
		{0, false},
		{2, false},
		{3, true},
		{10, true},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("%d recent words", tc.recent), func(t *testing.T) {
			t.Parallel()

			gate, err := NewGate(seedRecent(t, tc.recent))
			require.NoError(t, err)
			assert.Equal(t, tc.want, gate.IsEligible())
		})
	}
}

func TestNeeded(t *testing.T) {
	t.Parallel()

	gate, err := NewGate(seedRecent(t, 1))
	require.NoError(t, err)
	assert.Equal(t, 2, gate.Needed())

	gate, err = NewGate(seedRecent(t, 5))
	require.NoError(t, err)
	assert.Zero(t, gate.Needed())
}

func TestSampleForQuizBelowThreshold(t *testing.T) {
	t.Parallel()

	gate, err := NewGate(seedRecent(t, 2))
	require.NoError(t, err)

	_, err = gate.SampleForQuiz()
	assert.ErrorIs(t, err, ErrNotEligible)
}

func TestSampleForQuizReturnsEveryWordOnceBelowCap(t *testing.T) {
	t.Parallel()

	gate, err := NewGate(seedRecent(t, 3), WithRand(rand.New(rand.NewSource(1))))
	require.NoError(t, err)

	sample, err := gate.SampleForQuiz()
	require.NoError(t, err)
	require.Len(t, sample, 3, "min(10, 3) = 3")

	seen := make(map[string]bool)
	for _, w := range sample {
		assert.False(t, seen[w.Key()], "no duplicates in a sample")
		seen[w.Key()] = true
	}
	assert.Len(t, seen, 3, "no omissions either")
}

func TestSampleForQuizCapsAtTen(t *testing.T) {
	t.Parallel()

	gate, err := NewGate(seedRecent(t, 25), WithRand(rand.New(rand.NewSource(7))))
	require.NoError(t, err)

	sample, err := gate.SampleForQuiz()
	require.NoError(t, err)
	assert.Len(t, sample, MaxSampleSize)

	seen := make(map[string]bool)
	for _, w := range sample {
		assert.False(t, seen[w.Key()])
		seen[w.Key()] = true
	}
}

func TestSampleForQuizIsAPermutation(t *testing.T) {
	t.Parallel()

	prog := seedRecent(t, 6)

	first, err := NewGate(prog, WithRand(rand.New(rand.NewSource(3))))
	require.NoError(t, err)
	second, err := NewGate(prog, WithRand(rand.New(rand.NewSource(3))))
	require.NoError(t, err)

	a, err := first.SampleForQuiz()
	require.NoError(t, err)
	b, err := second.SampleForQuiz()
	require.NoError(t, err)

	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Term, b[i].Term, "the same seed yields the same permutation")
	}
}
