package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMavenHandler_Format(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	handler := NewMavenHandler(&buf, nil)

	record := slog.NewRecord(
		time.Date(2025, 10, 10, 14, 30, 5, 0, time.UTC),
		slog.LevelInfo,
		"updated transaction",
		0,
	)
	record.AddAttrs(slog.String("id", "t1"))

	// Act
	require.NoError(t, handler.Handle(context.Background(), record))

	// Assert - plain writer gets no color codes
	assert.Equal(t, "[INFO] [14:30:05] updated transaction id=t1\n", buf.String())
}

func TestMavenHandler_SystemBracket(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	logger := slog.New(NewMavenHandler(&buf, nil)).With("system", "sync")

	// Act
	logger.Warn("auto-accepting date mismatch", slog.Int("diff_days", 3))

	// Assert - system promoted to a bracket, not rendered as key=value
	out := buf.String()
	assert.Contains(t, out, "[WARN] [sync] [")
	assert.Contains(t, out, "auto-accepting date mismatch diff_days=3")
	assert.NotContains(t, out, "system=")
}

func TestMavenHandler_LevelFiltering(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	level := slog.LevelWarn
	handler := NewMavenHandler(&buf, &slog.HandlerOptions{Level: level})

	// Act & Assert
	assert.False(t, handler.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, handler.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, handler.Enabled(context.Background(), slog.LevelError))
}
