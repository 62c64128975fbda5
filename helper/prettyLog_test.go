package helper

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrettyHandler(t *testing.T) {
	var buf bytes.Buffer
	handler := NewPrettyHandler(&buf, PrettyHandlerOptions{})

	require.NotNil(t, handler, "Expected NewPrettyHandler to return a non-nil handler")
	assert.NotNil(t, handler.Handler, "Expected handler to have a non-nil Handler field")
	assert.NotNil(t, handler.l, "Expected handler to have a non-nil logger field")
}

func TestPrettyHandlerHandle(t *testing.T) {
	tests := []struct {
		name     string
		level    slog.Level
		attrs    []slog.Attr
		contains []string
	}{
		{
			name:     "Debug level",
			level:    slog.LevelDebug,
			attrs:    []slog.Attr{slog.String("path", "A")},
			contains: []string{"DEBUG:", "path", "A"},
		},
		{
			name:     "Info level",
			level:    slog.LevelInfo,
			attrs:    []slog.Attr{slog.Int("entities", 2)},
			contains: []string{"INFO:", "entities", "2"},
		},
		{
			name:     "Warn level",
			level:    slog.LevelWarn,
			attrs:    []slog.Attr{slog.Bool("passed", false)},
			contains: []string{"WARN:", "passed", "false"},
		},
		{
			name:     "Error level",
			level:    slog.LevelError,
			attrs:    []slog.Attr{slog.String("error", "entity sequences differ")},
			contains: []string{"ERROR:", "entity sequences differ"},
		},
		{
			name:     "No attributes",
			level:    slog.LevelInfo,
			contains: []string{"INFO:", "{}"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			handler := NewPrettyHandler(&buf, PrettyHandlerOptions{
				SlogOpts: slog.HandlerOptions{Level: slog.LevelDebug},
			})

			record := slog.NewRecord(time.Now(), tt.level, "check finished", 0)
			record.AddAttrs(tt.attrs...)

			err := handler.Handle(context.Background(), record)
			require.NoError(t, err)

			output := buf.String()
			assert.Contains(t, output, "check finished")
			for _, s := range tt.contains {
				assert.Contains(t, output, s)
			}
			assert.Regexp(t, `\[\d{2}:\d{2}:\d{2}\.\d{3}\]`, output, "Expected formatted timestamp")
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("Respects level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf, slog.LevelInfo)

		logger.Debug("hidden")
		logger.Info("shown", slog.String("language", "en"))

		output := buf.String()
		assert.NotContains(t, output, "hidden")
		assert.Contains(t, output, "shown")
		assert.Contains(t, output, "language")
	})
}
