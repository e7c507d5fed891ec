package common

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for name, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseLevel("verbose")
	assert.EqualError(t, err, "invalid log level: verbose")
}

func TestNewHandler(t *testing.T) {
	for _, format := range []string{"console", "json", "color"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			handler, err := NewHandler(&buf, slog.LevelInfo, format)
			require.NoError(t, err)

			slog.New(handler).Info("analysis finished", ErrAttr(errors.New("boom")))
			assert.Contains(t, buf.String(), "analysis finished")
			assert.Contains(t, buf.String(), "boom")
		})
	}

	_, err := NewHandler(&bytes.Buffer{}, slog.LevelInfo, "xml")
	assert.EqualError(t, err, "invalid log format: xml")
}
