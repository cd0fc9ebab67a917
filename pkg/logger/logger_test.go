package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestNewWithWriterLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, slog.LevelInfo, true)

	l.Debug("hidden")
	l.Info("rewrote script", "tables", 2)
	l.Error("failed", Error(errors.New("boom")))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "rewrote script")
	assert.Contains(t, out, "tables=2")
	assert.Contains(t, out, "boom")
	assert.NotContains(t, out, "\x1b[")
}

func TestInterface(t *testing.T) {
	var _ Interface = New()
	assert.NotNil(t, New().GetSlogLogger())
}
