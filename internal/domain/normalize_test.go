package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTerms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "case-folded duplicates keep the first occurrence",
			input: []string{"apple", "Apple", "banana"},
			want:  []string{"apple", "banana"},
		},
		{
			name:  "original casing of the survivor is preserved",
			input: []string{"Ephemeral", "ephemeral", "EPHEMERAL"},
			want:  []string{"Ephemeral"},
		},
		{
			name:  "blank terms are dropped",
			input: []string{"", "   ", "cat", "\t"},
			want:  []string{"cat"},
		},
		{
			name:  "empty input yields empty output",
			input: nil,
			want:  []string{},
		},
		{
			name:  "fully duplicate input collapses to one",
			input: []string{"dog", "DOG", "Dog", "dOg"},
			want:  []string{"dog"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			items := NormalizeTerms(tc.input)
			require.Len(t, items, len(tc.want))

			for i, item := range items {
				assert.Equal(t, tc.want[i], item.Term)
				assert.NotEqual(t, uuid.Nil, item.ID, "every item gets a fresh ID")
				assert.Zero(t, item.MasteryLevel)
				assert.True(t, item.LastMemorizedAt.IsZero())
			}
		})
	}
}

func TestNormalizeRecordsFirstWinsLosesLaterEnrichment(t *testing.T) {
	t.Parallel()

	items := NormalizeRecords([]WordRecord{
		{Term: "ostensible"},
		{Term: "Ostensible", Definition: "apparent", Example: "an ostensible reason"},
		{Term: "candor", Definition: "frankness"},
	})

	require.Len(t, items, 2)

	// The first, unenriched occurrence wins; the duplicate's fields are lost.
	assert.Equal(t, "ostensible", items[0].Term)
	assert.Empty(t, items[0].Definition)
	assert.Empty(t, items[0].Example)

	assert.Equal(t, "candor", items[1].Term)
	assert.Equal(t, "frankness", items[1].Definition)
}

func TestNormalizeRecordsAssignsUniqueIDs(t *testing.T) {
	t.Parallel()

	items := NormalizeRecords([]WordRecord{{Term: "one"}, {Term: "two"}, {Term: "three"}})
	require.Len(t, items, 3)

	seen := make(map[uuid.UUID]bool)
	for _, item := range items {
		assert.False(t, seen[item.ID], "IDs must never repeat")
		seen[item.ID] = true
	}
}

func TestDedupWordsKeepsExistingIDs(t *testing.T) {
	t.Parallel()

	first, err := NewWordItem("echo")
	require.NoError(t, err)
	dup, err := NewWordItem("Echo")
	require.NoError(t, err)
	other, err := NewWordItem("delta")
	require.NoError(t, err)

	out := DedupWords([]*WordItem{first, dup, other, nil})
	require.Len(t, out, 2)
	assert.Equal(t, first.ID, out[0].ID, "dedup must not reassign IDs")
	assert.Equal(t, other.ID, out[1].ID)
}
