package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLevels(t *testing.T) {
	var buf bytes.Buffer

	assert.Equal(t, zerolog.DebugLevel, InitTo(&buf, "DEBUG", false))
	assert.Equal(t, zerolog.WarnLevel, InitTo(&buf, " warn ", false))
	assert.Equal(t, zerolog.InfoLevel, InitTo(&buf, "loud", false))
	assert.Equal(t, zerolog.InfoLevel, InitTo(&buf, "", false))
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	InitTo(&buf, "debug", false)

	log := WithComponent("gogoanime")
	log.Debug().Int("status", 200).Msg("fetched")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "gogoanime", line["component"])
	assert.Equal(t, "fetched", line["message"])
	assert.EqualValues(t, 200, line["status"])
	assert.Contains(t, line, "time")
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	InitTo(&buf, "warn", false)

	log := WithComponent("x")
	log.Info().Msg("hidden")
	assert.Empty(t, buf.String())
}
