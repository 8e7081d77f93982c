package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finchley/lexi/internal/config"
)

func TestSetupLevels(t *testing.T) {
	tests := []struct {
		level      string
		debugShown bool
	}{
		{"debug", true},
		{"info", false},
		{"warn", false},
		{"error", false},
	}

	for _, tc := range tests {
		t.Run(tc.level, func(t *testing.T) {
			var buf bytes.Buffer
			log := setup(config.ServerConfig{Port: 8080, LogLevel: tc.level}, &buf)

			log.Debug("debug line")
			assert.Equal(t, tc.debugShown, buf.Len() > 0)
		})
	}
}

func TestSetupEmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	log := setup(config.ServerConfig{Port: 8080, LogLevel: "info"}, &buf)

	log.Info("hello", "answer", 42)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.EqualValues(t, 42, entry["answer"])
}

func TestSetupInvalidLevelFallsBack(t *testing.T) {
	var buf bytes.Buffer
	log := setup(config.ServerConfig{Port: 8080, LogLevel: "shouting"}, &buf)

	log.Debug("hidden")
	assert.Zero(t, buf.Len(), "fallback level is info, debug stays hidden")

	log.Info("shown")
	assert.NotZero(t, buf.Len())
}
