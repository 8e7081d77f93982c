// Package progress implements the learner's long-term progress state: a
// recency-ordered, bounded history of memorized words and the set of
// words the learner has missed. Both collections live in memory and are
// mirrored to durable storage on every mutation.
package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/finchley/lexi/internal/domain"
	"github.com/finchley/lexi/internal/store"
)

// HistoryCap bounds the history collection. The cap is generous enough
// that eviction only trims long-abandoned entries from the tail.
const HistoryCap = 500

// Progress is the store.ProgressStore implementation.
type Progress struct {
	mu      sync.Mutex
	history []*domain.WordItem
	missed  []*domain.WordItem
	storage store.Storage
	logger  *slog.Logger

	// now is injectable so recency-window tests don't sleep.
	now func() time.Time
}

// New creates a Progress store loaded from durable storage. Absent blobs
// mean a fresh install; corrupt blobs are an error.
func New(ctx context.Context, storage store.Storage, logger *slog.Logger) (*Progress, error) {
	if storage == nil {
		return nil, errors.New("storage cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	p := &Progress{
		storage: storage,
		logger:  logger.With(slog.String("component", "progress")),
		now:     time.Now,
	}

	if err := p.load(ctx, store.KeyHistory, &p.history); err != nil {
		return nil, err
	}
	if err := p.load(ctx, store.KeyMissed, &p.missed); err != nil {
		return nil, err
	}

	p.logger.Debug("progress loaded",
		"history_count", len(p.history),
		"missed_count", len(p.missed))
	return p, nil
}

func (p *Progress) load(ctx context.Context, key store.Key, into *[]*domain.WordItem) error {
	blob, err := p.storage.Get(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return nil
		}
		return store.NewStoreError(string(key), "load", err)
	}

	if err := json.Unmarshal(blob, into); err != nil {
		return store.NewStoreError(string(key), "load", fmt.Errorf("decode words: %w", err))
	}
	return nil
}

// RecordCorrect stamps the word as memorized now, moves it to the front
// of history (capping the collection), and clears it from the missed set.
// Flush errors are reported but the in-memory mutation is kept.
func (p *Progress) RecordCorrect(ctx context.Context, word *domain.WordItem) error {
	if word == nil || word.Key() == "" {
		return fmt.Errorf("%w: word with empty term", store.ErrInvalidEntity)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	word.LastMemorizedAt = p.now().UTC()
	key := word.Key()

	p.history = removeByTerm(p.history, key)
	p.history = append([]*domain.WordItem{word}, p.history...)
	if len(p.history) > HistoryCap {
		p.history = p.history[:HistoryCap]
	}

	missedBefore := len(p.missed)
	p.missed = removeByTerm(p.missed, key)

	err := p.flush(ctx, store.KeyHistory, p.history)
	if missedBefore != len(p.missed) {
		err = errors.Join(err, p.flush(ctx, store.KeyMissed, p.missed))
	}
	return err
}

// RecordIncorrect adds the word to the missed set unless an entry with
// the same folded term already exists. History is untouched.
func (p *Progress) RecordIncorrect(ctx context.Context, word *domain.WordItem) error {
	if word == nil || word.Key() == "" {
		return fmt.Errorf("%w: word with empty term", store.ErrInvalidEntity)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	key := word.Key()
	for _, w := range p.missed {
		if w.Key() == key {
			return nil
		}
	}

	p.missed = append(p.missed, word)
	return p.flush(ctx, store.KeyMissed, p.missed)
}

// RecentlyMemorized returns the history entries memorized within the
// trailing window, preserving history order.
func (p *Progress) RecentlyMemorized(window time.Duration) []*domain.WordItem {
	p.mu.Lock()
	defer p.mu.Unlock()

	cutoff := p.now().UTC().Add(-window)
	recent := make([]*domain.WordItem, 0)
	for _, w := range p.history {
		if !w.LastMemorizedAt.IsZero() && !w.LastMemorizedAt.Before(cutoff) {
			recent = append(recent, w)
		}
	}
	return recent
}

// LookupHistory resolves a term to its history entry by folded term.
func (p *Progress) LookupHistory(term string) (*domain.WordItem, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := domain.Fold(term)
	for _, w := range p.history {
		if w.Key() == key {
			return w, true
		}
	}
	return nil, false
}

// History returns a copy of the history, most recently memorized first.
func (p *Progress) History() []*domain.WordItem {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]*domain.WordItem, len(p.history))
	copy(out, p.history)
	return out
}

// Missed returns a copy of the missed-word set.
func (p *Progress) Missed() []*domain.WordItem {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]*domain.WordItem, len(p.missed))
	copy(out, p.missed)
	return out
}

// flush rewrites one whole blob. Callers must hold p.mu.
func (p *Progress) flush(ctx context.Context, key store.Key, words []*domain.WordItem) error {
	blob, err := json.Marshal(words)
	if err != nil {
		return store.NewStoreError(string(key), "flush", err)
	}

	if err := p.storage.Set(ctx, key, blob); err != nil {
		p.logger.Error("progress flush failed, in-memory state remains authoritative",
			"key", string(key), "error", err)
		return store.NewStoreError(string(key), "flush", err)
	}

	return nil
}

// removeByTerm drops every entry whose folded term matches key.
func removeByTerm(words []*domain.WordItem, key string) []*domain.WordItem {
	kept := words[:0]
	for _, w := range words {
		if w.Key() != key {
			kept = append(kept, w)
		}
	}
	return kept
}
