package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn")

	log.Info("hidden message id=%d", 1)
	log.Warn("visible message id=%d", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden message")
	assert.Contains(t, out, "visible message id=2")
}

func TestNew_UnknownLevel(t *testing.T) {
	_, err := New("", "verbose")
	require.Error(t, err)
}
