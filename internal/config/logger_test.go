package config

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerTo(t *testing.T) {
	t.Run("production writes json at info", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLoggerTo("production", &buf)

		logger.Debug("hidden")
		logger.Info("session issued", "correlation_id", "abc")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "session issued", entry["msg"])
		assert.Equal(t, "abc", entry["correlation_id"])
		assert.NotContains(t, buf.String(), "hidden")
	})

	t.Run("development writes text at debug", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLoggerTo("development", &buf)

		logger.Debug("polling")

		assert.Contains(t, buf.String(), "msg=polling")
		assert.Contains(t, buf.String(), "source=")
	})
}
