package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finchley/lexi/internal/domain"
	"github.com/finchley/lexi/internal/progress"
	"github.com/finchley/lexi/internal/store"
)

func TestProgressEndpoints(t *testing.T) {
	t.Parallel()

	prog, err := progress.New(context.Background(), store.NewMemoryStorage(), testLogger())
	require.NoError(t, err)

	words := domain.NormalizeTerms([]string{"apple", "banana"})
	require.NoError(t, prog.RecordCorrect(context.Background(), words[0]))
	require.NoError(t, prog.RecordIncorrect(context.Background(), words[1]))

	h := NewProgressHandler(prog)

	rec := httptest.NewRecorder()
	h.GetHistory(rec, httptest.NewRequest(http.MethodGet, "/api/progress/history", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var history []WordResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	require.Len(t, history, 1)
	assert.Equal(t, "apple", history[0].Term)
	assert.NotNil(t, history[0].LastMemorizedAt)

	rec = httptest.NewRecorder()
	h.GetMissed(rec, httptest.NewRequest(http.MethodGet, "/api/progress/missed", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var missed []WordResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &missed))
	require.Len(t, missed, 1)
	assert.Equal(t, "banana", missed[0].Term)
}
