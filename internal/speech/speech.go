// Package speech provides word pronunciation through an external
// text-to-speech command. Playback is fire-and-forget: starting a new
// utterance cancels whatever is still playing, so rapid card flips never
// queue up a backlog of audio.
package speech

import (
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
)

// ErrEmptyText indicates there was nothing to speak.
var ErrEmptyText = errors.New("text to speak cannot be empty")

// Speaker pronounces a piece of text out loud.
type Speaker interface {
	// Speak starts pronouncing text, cancelling any utterance still in
	// flight. It returns once playback has started, not once it finishes.
	Speak(ctx context.Context, text string) error
}

// SilentSpeaker accepts every utterance and plays nothing. Used when no
// TTS command is configured so the rest of the system never has to check.
type SilentSpeaker struct{}

// Speak implements Speaker without producing audio.
func (SilentSpeaker) Speak(_ context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}
	return nil
}

// CommandSpeaker runs a configurable external TTS command (espeak, say)
// with the text as its final argument. At most one utterance plays at a
// time.
type CommandSpeaker struct {
	command string
	args    []string
	logger  *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewCommandSpeaker creates a speaker that shells out to the given
// command line, e.g. "espeak" or "say -v Samantha".
func NewCommandSpeaker(commandLine string, logger *slog.Logger) (*CommandSpeaker, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	parts := strings.Fields(commandLine)
	if len(parts) == 0 {
		return nil, errors.New("speech command cannot be empty")
	}
	return &CommandSpeaker{
		command: parts[0],
		args:    parts[1:],
		logger:  logger.With(slog.String("component", "speaker")),
	}, nil
}

// Speak implements Speaker. The previous utterance, if any, is killed
// before the new one starts.
func (s *CommandSpeaker) Speak(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyText
	}

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.mu.Unlock()

	cmd := exec.CommandContext(runCtx, s.command, append(append([]string{}, s.args...), text)...)
	if err := cmd.Start(); err != nil {
		cancel()
		return err
	}

	go func() {
		defer cancel()
		if err := cmd.Wait(); err != nil && runCtx.Err() == nil {
			s.logger.Warn("speech command failed",
				slog.String("command", s.command),
				slog.String("error", err.Error()))
		}
	}()

	return nil
}
