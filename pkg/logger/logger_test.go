package logger_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huynhanx03/go-hybridrow/pkg/logger"
	"github.com/huynhanx03/go-hybridrow/pkg/settings"
)

// =============================================================================
// New Tests
// =============================================================================

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hybridrow.log")
	log, err := logger.New(settings.Logger{LogLevel: "warn", FileLogName: path, MaxSize: 1})
	require.NoError(t, err)

	log.Info("dropped")
	log.Warn("kept")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry), "exactly one entry is written")
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "warn", entry["level"])
}

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level   string
		wantErr bool
	}{
		{"", false},
		{"debug", false},
		{"error", false},
		{"loud", true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			_, err := logger.New(settings.Logger{LogLevel: tt.level})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
