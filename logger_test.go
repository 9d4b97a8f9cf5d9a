package engram_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/engram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_SaveLoad(t *testing.T) {
	var logs bytes.Buffer
	logger := engram.NewLogger(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := context.Background()

	logger.LogSave(ctx, "a.eng", 42, nil)
	logger.LogLoad(ctx, "b.eng", 0, errors.New("boom"))

	out := logs.String()
	assert.Contains(t, out, "save completed")
	assert.Contains(t, out, "name=a.eng")
	assert.Contains(t, out, "size=42")
	assert.Contains(t, out, "load failed")
	assert.Contains(t, out, "error=boom")
}

func TestLogger_With(t *testing.T) {
	var logs bytes.Buffer
	logger := engram.NewLogger(slog.NewJSONHandler(&logs, nil)).
		WithName("state.eng").
		WithVersion(3).
		WithTypeID("shapes.Circle").
		WithCount(2)

	logger.Info("hello")

	out := logs.String()
	assert.Contains(t, out, `"name":"state.eng"`)
	assert.Contains(t, out, `"format_version":3`)
	assert.Contains(t, out, `"type_id":"shapes.Circle"`)
	assert.Contains(t, out, `"count":2`)
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engram.log")

	logger, closer, err := engram.NewFileLogger(engram.FileLogConfig{Filename: path, MaxSize: 1}, slog.LevelInfo)
	require.NoError(t, err)

	logger.LogSave(context.Background(), "a.eng", 1, errors.New("disk full"))
	logger.Debug("filtered")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"save failed"`)
	assert.NotContains(t, string(data), "filtered")
}

func TestNewFileLogger_Invalid(t *testing.T) {
	_, _, err := engram.NewFileLogger(engram.FileLogConfig{}, slog.LevelInfo)
	assert.Error(t, err)

	_, _, err = engram.NewFileLogger(engram.FileLogConfig{Filename: t.TempDir()}, slog.LevelInfo)
	assert.Error(t, err)
}
