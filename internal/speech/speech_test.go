package speech

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewCommandSpeakerValidation(t *testing.T) {
	t.Parallel()

	_, err := NewCommandSpeaker("", testLogger())
	assert.Error(t, err)

	_, err = NewCommandSpeaker("   ", testLogger())
	assert.Error(t, err)

	_, err = NewCommandSpeaker("espeak", nil)
	assert.Error(t, err)
}

func TestSpeakRejectsEmptyText(t *testing.T) {
	t.Parallel()

	s, err := NewCommandSpeaker("true", testLogger())
	require.NoError(t, err)

	err = s.Speak(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestSpeakRunsCommandWithText(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "spoken.txt")
	script := filepath.Join(t.TempDir(), "tts.sh")
	require.NoError(t, os.WriteFile(script,
		[]byte("#!/bin/sh\necho \"$1\" > "+out+"\n"), 0o755))

	s, err := NewCommandSpeaker(script, testLogger())
	require.NoError(t, err)

	require.NoError(t, s.Speak(context.Background(), "serendipity"))

	require.Eventually(t, func() bool {
		data, readErr := os.ReadFile(out)
		return readErr == nil && string(data) == "serendipity\n"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSpeakCancelsPriorUtterance(t *testing.T) {
	t.Parallel()

	s, err := NewCommandSpeaker("sleep 30", testLogger())
	require.NoError(t, err)

	require.NoError(t, s.Speak(context.Background(), "first"))

	s.mu.Lock()
	firstCancel := s.cancel
	s.mu.Unlock()
	require.NotNil(t, firstCancel)

	require.NoError(t, s.Speak(context.Background(), "second"))

	s.mu.Lock()
	secondCancel := s.cancel
	s.mu.Unlock()
	assert.NotNil(t, secondCancel)
}

func TestSpeakMissingCommand(t *testing.T) {
	t.Parallel()

	s, err := NewCommandSpeaker("definitely-not-a-real-tts-binary", testLogger())
	require.NoError(t, err)

	err = s.Speak(context.Background(), "hello")
	assert.Error(t, err)
}
