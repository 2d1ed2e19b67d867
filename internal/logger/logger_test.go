package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"INFO", zapcore.InfoLevel},
		{"bogus", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestNew(t *testing.T) {
	log := New(DefaultConfig())
	require.NotNil(t, log)
	log.Info("logger constructed")
	_ = log.Sync()
}

func TestNewJSONToFile(t *testing.T) {
	path := t.TempDir() + "/client.log"
	log := New(&Config{Level: "debug", Format: "json", Output: path})
	require.NotNil(t, log)
	log.Debug("written to file")
	require.NoError(t, log.Sync())
}
