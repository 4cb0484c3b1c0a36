package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel(" debug ", zerolog.InfoLevel))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warning", zerolog.InfoLevel))
	assert.Equal(t, zerolog.Disabled, ParseLevel("off", zerolog.InfoLevel))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("chatty", zerolog.InfoLevel))
}

func TestConsoleRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log, closeFn, err := New(Config{Level: "warn", Console: &buf})
	require.NoError(t, err)
	defer closeFn()

	log.Info().Msg("quiet")
	log.Warn().Str("feature", "f1").Msg("loud")
	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
	assert.Contains(t, buf.String(), "f1")
}

func TestFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "roadmap.log")
	log, closeFn, err := New(Config{Level: "debug", File: path})
	require.NoError(t, err)

	log.Debug().Msg("drag: begin")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"drag: begin"`)
}

func TestNoSinkDiscards(t *testing.T) {
	log, _, err := New(Config{})
	require.NoError(t, err)
	assert.Equal(t, zerolog.Disabled, log.GetLevel())
}
