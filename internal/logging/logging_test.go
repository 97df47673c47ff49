package logging

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewWithWriterLevels(t *testing.T) {
	var buf strings.Builder
	log := NewWithWriter(&buf, "warn", false)

	log.Info().Msg("suppressed")
	log.Warn().Msg("emitted")

	out := buf.String()
	assert.NotContains(t, out, "suppressed")
	assert.Contains(t, out, "emitted")
}

func TestNewWithWriterUnknownLevelFallsBackToInfo(t *testing.T) {
	log := NewWithWriter(&strings.Builder{}, "chatty", false)
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
}

func TestNewWithWriterJSONOutput(t *testing.T) {
	var buf strings.Builder
	log := NewWithWriter(&buf, "info", false)

	log.Info().Str("agent_id", "agent-123").Msg("created agent")

	out := buf.String()
	assert.Contains(t, out, `"agent_id":"agent-123"`)
	assert.Contains(t, out, `"level":"info"`)
}
