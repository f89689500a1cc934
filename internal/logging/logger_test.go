package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
		wantErr  bool
	}{
		{input: "debug", expected: LevelDebug},
		{input: "INFO", expected: LevelInfo},
		{input: "", expected: LevelInfo},
		{input: "warning", expected: LevelWarn},
		{input: "error", expected: LevelError},
		{input: "verbose", expected: LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestScriptsLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{
		Level:  LevelDebug,
		Format: "json",
		Output: &buf,
	})

	logger.WithComponent("bundle").
		With("tag_id", "alpha-beta").
		Error(context.Background(), errors.New("boom"), "render failed", "sources", 2)

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))

	assert.Equal(t, "render failed", record["msg"])
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "bundle", record["component"])
	assert.Equal(t, "boom", record["error"])
	assert.Equal(t, "alpha-beta", record["tag_id"])
	assert.EqualValues(t, 2, record["sources"])
}

func TestScriptsLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{
		Level:  LevelWarn,
		Format: "text",
		Output: &buf,
	})

	ctx := context.Background()
	logger.Debug(ctx, "hidden debug")
	logger.Info(ctx, "hidden info")
	assert.Empty(t, buf.String())

	logger.Warn(ctx, nil, "visible warning")
	assert.Contains(t, buf.String(), "visible warning")
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	assert.NotPanics(t, func() {
		logger.Error(context.Background(), errors.New("ignored"), "nothing")
		logger.With("k", "v").WithComponent("x").Info(context.Background(), "nothing")
	})
}

func TestPerfLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LevelDebug, Format: "text", Output: &buf})

	op := logger.StartOperation("combine")
	op.End(context.Background())
	assert.Contains(t, buf.String(), "Operation completed")
	assert.Contains(t, buf.String(), "operation=combine")

	buf.Reset()
	op = logger.StartOperation("combine")
	op.EndWithError(context.Background(), errors.New("missing file"))
	assert.Contains(t, buf.String(), "Operation failed")
	assert.Contains(t, buf.String(), "missing file")
}
