package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesServiceField(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "santa-test", false)

	l.Info().Str("exchange_id", "global-exchange").Msg("draw completed")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "santa-test", entry["service"])
	assert.Equal(t, "global-exchange", entry["exchange_id"])
	assert.Equal(t, "info", entry["level"])
}

func TestNewLevelFollowsDebugFlag(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "svc", false).Debug().Msg("hidden")
	assert.Zero(t, buf.Len())

	New(&buf, "svc", true).Debug().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}
