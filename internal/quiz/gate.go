// Package quiz implements the weekly-test eligibility gate: the rule
// deciding whether enough recently memorized material exists to justify
// generating a quiz, and the sampling of candidate terms for it.
package quiz

import (
	"errors"
	"math/rand"
	"time"

	"github.com/finchley/lexi/internal/domain"
	"github.com/finchley/lexi/internal/store"
)

// Eligibility thresholds
const (
	// RecencyWindow is the trailing period a memorized word counts
	// toward eligibility.
	RecencyWindow = 7 * 24 * time.Hour

	// MinRecentWords is how many recently memorized words eligibility
	// requires.
	MinRecentWords = 3

	// MaxSampleSize caps how many candidate terms are forwarded to quiz
	// generation.
	MaxSampleSize = 10
)

// ErrNotEligible is returned when sampling is requested below the
// eligibility threshold. The gate never reaches the generation path in
// that case.
var ErrNotEligible = errors.New("not enough recently memorized words for a quiz")

// Gate computes quiz eligibility from the progress store and samples the
// candidate subset for quiz generation.
type Gate struct {
	progress store.ProgressStore
	rng      *rand.Rand
}

// Option configures a Gate.
type Option func(*Gate)

// WithRand injects a deterministic random source. Sampling has no
// reproducibility requirement in production; tests use this to pin the
// permutation.
func WithRand(rng *rand.Rand) Option {
	return func(g *Gate) {
		g.rng = rng
	}
}

// NewGate creates a Gate over the given progress store.
func NewGate(progress store.ProgressStore, opts ...Option) (*Gate, error) {
	if progress == nil {
		return nil, errors.New("progress store cannot be nil")
	}

	g := &Gate{
		progress: progress,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// IsEligible reports whether the learner has memorized enough words in
// the recency window to take a quiz.
func (g *Gate) IsEligible() bool {
	return len(g.progress.RecentlyMemorized(RecencyWindow)) >= MinRecentWords
}

// Needed returns how many more recently memorized words the learner
// needs before a quiz can be generated. Zero means eligible.
func (g *Gate) Needed() int {
	n := MinRecentWords - len(g.progress.RecentlyMemorized(RecencyWindow))
	if n < 0 {
		return 0
	}
	return n
}

// SampleForQuiz draws a uniform random permutation of the recency window
// and returns the first min(MaxSampleSize, count) words, the candidate
// terms forwarded to quiz generation. Returns ErrNotEligible below the
// threshold; the caller surfaces how many more words are needed via
// Needed.
func (g *Gate) SampleForQuiz() ([]*domain.WordItem, error) {
	recent := g.progress.RecentlyMemorized(RecencyWindow)
	if len(recent) < MinRecentWords {
		return nil, ErrNotEligible
	}

	g.rng.Shuffle(len(recent), func(i, j int) {
		recent[i], recent[j] = recent[j], recent[i]
	})

	if len(recent) > MaxSampleSize {
		recent = recent[:MaxSampleSize]
	}
	return recent, nil
}
