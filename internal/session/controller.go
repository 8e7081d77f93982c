// Package session implements the study session state machine. A session
// walks an ordered item list one flashcard or quiz question at a time,
// scores answers into SessionStats, and writes outcomes into the
// progress store. The engine assumes a single active session.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/finchley/lexi/internal/domain"
	"github.com/finchley/lexi/internal/store"
)

// State identifies where the session machine currently is. Sessions move
// LANDING → LEARNING|TESTING → SUMMARY → LANDING.
type State string

// Session states
const (
	StateLanding  State = "landing"
	StateLearning State = "learning"
	StateTesting  State = "testing"
	StateSummary  State = "summary"
)

// Controller errors
var (
	// ErrNoWords is returned when a session is started on an empty (or
	// fully duplicate, hence empty after dedup) item list.
	ErrNoWords = errors.New("session needs at least one item")

	// ErrWrongState is returned when an operation does not apply to the
	// machine's current state.
	ErrWrongState = errors.New("operation not valid in current session state")

	// ErrAnswerInFlight is returned when an answer arrives while the
	// previous one is still being committed. The second answer is
	// dropped, not queued: the latch serializes rapid double submissions.
	ErrAnswerInFlight = errors.New("an answer is already being processed")

	// ErrNothingToReview is returned when a review round is requested
	// but the finished session had no misses.
	ErrNothingToReview = errors.New("no missed words to review")
)

// Summary is the result of a finished session.
type Summary struct {
	Stats    domain.SessionStats `json:"stats"`
	Accuracy int                 `json:"accuracy"`
	Missed   []*domain.WordItem  `json:"missed"`
}

// Option configures a Controller.
type Option func(*Controller)

// WithSettlingDelay installs a hook that runs between accepting an
// answer and committing it. The visual layer uses this to animate; a
// non-visual run leaves it nil and commits immediately. Correctness does
// not depend on the hook.
func WithSettlingDelay(hook func()) Option {
	return func(c *Controller) {
		c.delay = hook
	}
}

// Controller drives one session at a time. Answer handling is serialized
// by the processing latch: at most one answer is in flight, and any
// answer submitted while the latch is held is dropped.
type Controller struct {
	progress store.ProgressStore
	logger   *slog.Logger
	delay    func()

	// mu guards the fields below. The latch, not the mutex, is what
	// serializes answers: the mutex is only held for short reads and
	// commits, never across the settling delay.
	mu         sync.Mutex
	state      State
	words      []*domain.WordItem
	questions  []domain.QuizQuestion
	index      int
	processing bool
	stats      domain.SessionStats
	missed     []*domain.WordItem
}

// NewController creates a Controller in the landing state.
func NewController(progress store.ProgressStore, logger *slog.Logger, opts ...Option) (*Controller, error) {
	if progress == nil {
		return nil, errors.New("progress store cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	c := &Controller{
		progress: progress,
		logger:   logger.With(slog.String("component", "session_controller")),
		state:    StateLanding,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// State returns the machine's current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Stats returns a snapshot of the running session stats.
func (c *Controller) Stats() domain.SessionStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Position returns the zero-based index of the current item and the item
// count of the active session.
func (c *Controller) Position() (index, total int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index, c.stats.WordCount
}

// StartLearning begins a flashcard session over the given words. The
// input is deduplicated again by folded term (callers may pass
// overlapping sets); the previous session's stats are discarded.
func (c *Controller) StartLearning(words []*domain.WordItem) error {
	deduped := domain.DedupWords(words)
	if len(deduped) == 0 {
		return ErrNoWords
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.startLearning(deduped)
	return nil
}

// startLearning resets the machine for a learning round. Callers must
// hold c.mu and pass an already-deduplicated, non-empty list.
func (c *Controller) startLearning(words []*domain.WordItem) {
	c.state = StateLearning
	c.words = words
	c.questions = nil
	c.index = 0
	c.processing = false
	c.stats = domain.NewSessionStats(len(words))
	c.missed = nil

	c.logger.Info("learning session started", "word_count", len(words))
}

// StartQuiz begins a multiple-choice session over the given questions.
func (c *Controller) StartQuiz(questions []domain.QuizQuestion) error {
	if len(questions) == 0 {
		return ErrNoWords
	}
	for _, q := range questions {
		if err := q.Validate(); err != nil {
			return err
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = StateTesting
	c.words = nil
	c.questions = questions
	c.index = 0
	c.processing = false
	c.stats = domain.NewSessionStats(len(questions))
	c.missed = nil

	c.logger.Info("quiz session started", "question_count", len(questions))
	return nil
}

// CurrentWord returns the flashcard the session is waiting on.
func (c *Controller) CurrentWord() (*domain.WordItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateLearning {
		return nil, ErrWrongState
	}
	return c.words[c.index], nil
}

// CurrentQuestion returns the quiz question the session is waiting on.
func (c *Controller) CurrentQuestion() (domain.QuizQuestion, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateTesting {
		return domain.QuizQuestion{}, ErrWrongState
	}
	return c.questions[c.index], nil
}

// Answer scores the current flashcard. A correct answer is written to
// history; an incorrect one goes to the missed set and the session's own
// miss list. A persistence error does not stop the session: the answer
// is committed in memory, the index advances, and the error is returned
// for surfacing.
func (c *Controller) Answer(ctx context.Context, success bool) error {
	word, err := c.acquireLearning()
	if err != nil {
		return err
	}

	// The latch, not the mutex, is held across the settling delay.
	if c.delay != nil {
		c.delay()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var persistErr error
	if success {
		c.stats.Correct++
		persistErr = c.progress.RecordCorrect(ctx, word)
	} else {
		c.stats.Incorrect++
		c.missed = append(c.missed, word)
		persistErr = c.progress.RecordIncorrect(ctx, word)
	}

	c.advance()
	return persistErr
}

// acquireLearning takes the processing latch for a learning answer and
// returns the flashcard it applies to.
func (c *Controller) acquireLearning() (*domain.WordItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateLearning {
		return nil, ErrWrongState
	}
	if c.processing {
		return nil, ErrAnswerInFlight
	}
	c.processing = true
	return c.words[c.index], nil
}

// AnswerQuiz scores the current question against the selected option.
// Questions reference terms, not items, so a miss resolves the original
// WordItem from history before persisting. A term that cannot be
// resolved is still counted in the stats but cannot be written to the
// missed set.
func (c *Controller) AnswerQuiz(ctx context.Context, selected string) error {
	question, err := c.acquireTesting()
	if err != nil {
		return err
	}

	if c.delay != nil {
		c.delay()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	correct := selected == question.Answer

	var persistErr error
	if correct {
		c.stats.Correct++
		if word, ok := c.progress.LookupHistory(question.Term); ok {
			persistErr = c.progress.RecordCorrect(ctx, word)
		}
	} else {
		c.stats.Incorrect++
		if word, ok := c.progress.LookupHistory(question.Term); ok {
			c.missed = append(c.missed, word)
			persistErr = c.progress.RecordIncorrect(ctx, word)
		} else {
			c.logger.Warn("quiz miss could not be resolved in history, counted but not persisted",
				"term", question.Term)
		}
	}

	c.advance()
	return persistErr
}

// acquireTesting takes the processing latch for a quiz answer and
// returns the question it applies to.
func (c *Controller) acquireTesting() (domain.QuizQuestion, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateTesting {
		return domain.QuizQuestion{}, ErrWrongState
	}
	if c.processing {
		return domain.QuizQuestion{}, ErrAnswerInFlight
	}
	c.processing = true
	return c.questions[c.index], nil
}

// Summary returns the finished session's result.
func (c *Controller) Summary() (Summary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateSummary {
		return Summary{}, ErrWrongState
	}

	missed := make([]*domain.WordItem, len(c.missed))
	copy(missed, c.missed)

	return Summary{
		Stats:    c.stats,
		Accuracy: c.stats.Accuracy(),
		Missed:   missed,
	}, nil
}

// ReviewMissed re-enters a learning session over the words missed in the
// round that just finished.
func (c *Controller) ReviewMissed() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateSummary {
		return ErrWrongState
	}
	if len(c.missed) == 0 {
		return ErrNothingToReview
	}

	// A quiz round can miss the same folded term more than once when the
	// question list repeats it, so the miss list is deduplicated again
	// before it becomes a word list.
	c.startLearning(domain.DedupWords(c.missed))
	return nil
}

// Finish returns the machine to the landing state.
func (c *Controller) Finish() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = StateLanding
	c.words = nil
	c.questions = nil
	c.index = 0
	c.processing = false
	c.missed = nil
}

// advance moves to the next item or, past the last one, to the summary.
// The latch is released either way; in the summary state it no longer
// guards anything.
func (c *Controller) advance() {
	last := c.index >= c.stats.WordCount-1
	if last {
		c.state = StateSummary
		c.logger.Info("session finished",
			"correct", c.stats.Correct,
			"incorrect", c.stats.Incorrect,
			"accuracy", c.stats.Accuracy())
	} else {
		c.index++
	}
	c.processing = false
}
