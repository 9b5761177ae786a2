package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pipeline-crm/pkg/logger"
)

func TestNewWithWriter_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithWriter(&buf, "warn")

	l.Info().Msg("hidden")
	l.Warn().Str("customer_id", "CUST-1").Msg("shown")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "CUST-1", entry["customer_id"])
	assert.Equal(t, "shown", entry["message"])
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() { logger.Nop().Error().Msg("discarded") })
}
