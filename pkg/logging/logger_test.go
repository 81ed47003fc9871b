package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	// Packages
	zerolog "github.com/rs/zerolog"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

// Create a logger
func Test_logger_001(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info")
	require.NotNil(t, log)

	log.Info().Msg("test message")
	assert.Contains(t, buf.String(), "test message")
}

// Create a logger on the default writer
func Test_logger_002(t *testing.T) {
	log := New(nil, "info")
	require.NotNil(t, log)
}

// Sub-loggers
func Test_logger_003(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "debug")
	sub := log.Sub("controller").Sub("httpclient")

	sub.Info().Msg("sub message")
	output := buf.String()
	assert.Contains(t, output, "sub message")
	assert.Contains(t, output, "httpclient")
}

// Log levels filter output
func Test_logger_004(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn")

	log.Debug().Msg("debug msg")
	log.Info().Msg("info msg")
	assert.Empty(t, buf.String())

	log.Warn().Msg("warn msg")
	assert.Contains(t, buf.String(), "warn msg")

	buf.Reset()
	log.Error().Msg("error msg")
	assert.Contains(t, buf.String(), "error msg")
}

// Parse level names
func Test_logger_005(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"silent", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"unknown", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.input))
		})
	}
}

// Nop logger
func Test_logger_006(t *testing.T) {
	log := Nop()
	log.Error().Msg("discarded")
	assert.Equal(t, zerolog.Disabled, log.Zerolog().GetLevel())
}

// Create a file logger
func Test_logger_007(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "txtai.log")
	log, closer, err := NewFile(path, "debug")
	require.NoError(t, err)
	log.Debug().Str("agent", "MyAgent").Msg("file message")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "file message")
	assert.Contains(t, string(data), `"agent":"MyAgent"`)
}
