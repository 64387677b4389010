package telemetry

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFiltersBelowThreshold(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, WARN)

	l.Debug("noisy")
	l.Info("still noisy")
	assert.Empty(t, buf.String())

	l.Warn("audible")
	assert.Contains(t, buf.String(), "audible")
}

func TestSetLevelRaisesThreshold(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, INFO)
	l.SetLevel(DEBUG)

	l.Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")
}

func TestStructuredDataParamsAreEncoded(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, DEBUG)

	l.Info("session opened", KV{Key: "session_id", Value: "abc-123"})
	assert.Contains(t, buf.String(), "session_id")
	assert.Contains(t, buf.String(), "abc-123")
}
