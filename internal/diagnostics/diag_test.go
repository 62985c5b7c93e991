package diagnostics

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithCopiesEvidence(t *testing.T) {
	a := New(Warn, "CONTROL.REJECTED", "jump rejected").With("stage", 12)
	b := a.With("action", "jump")
	assert.Len(t, a.Evidence, 1)
	assert.Len(t, b.Evidence, 2)
	assert.False(t, a.At.IsZero())
}

func TestJSONShape(t *testing.T) {
	b, err := json.Marshal(New(Info, "X", "y"))
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, "info", m["severity"])
	assert.NotContains(t, m, "detail")
}
