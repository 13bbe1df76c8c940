package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/bluegem/pkg/logger"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  slog.Level
	}{
		{name: "debug", input: "debug", want: slog.LevelDebug},
		{name: "info", input: "info", want: slog.LevelInfo},
		{name: "warn", input: "warn", want: slog.LevelWarn},
		{name: "warning alias", input: "warning", want: slog.LevelWarn},
		{name: "upper case", input: "DEBUG", want: slog.LevelDebug},
		{name: "surrounding space", input: " error ", want: slog.LevelError},
		{name: "error", input: "error", want: slog.LevelError},
		{name: "empty defaults to info", input: "", want: slog.LevelInfo},
		{name: "unknown defaults to info", input: "trace", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := logger.ParseLevel(tt.input)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()
	require.NotNil(t, logger.New("info", logger.FormatText))
}

func TestNewWithWriter_Formats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format string
		want   []string
	}{
		{format: "text", want: []string{"level=INFO", "msg=sale", "watch=gold"}},
		{format: "json", want: []string{`"level":"INFO"`, `"msg":"sale"`, `"watch":"gold"`}},
		{format: " JSON ", want: []string{`"msg":"sale"`}},
		{format: "logfmt", want: []string{"msg=sale"}},
		{format: "", want: []string{"msg=sale"}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger.NewWithWriter(&buf, "info", tt.format).Info("sale", "watch", "gold")
			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level   string
		record  slog.Level
		visible bool
	}{
		{level: "debug", record: slog.LevelDebug, visible: true},
		{level: "info", record: slog.LevelDebug, visible: false},
		{level: "info", record: slog.LevelInfo, visible: true},
		{level: "warn", record: slog.LevelInfo, visible: false},
		{level: "error", record: slog.LevelWarn, visible: false},
		{level: "error", record: slog.LevelError, visible: true},
	}

	for _, tt := range tests {
		t.Run(tt.level+"/"+tt.record.String(), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger.NewWithWriter(&buf, tt.level, "text").Log(t.Context(), tt.record, "probe")
			assert.Equal(t, tt.visible, buf.Len() > 0)
		})
	}
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	l := logger.Discard()
	require.NotNil(t, l)
	assert.False(t, l.Enabled(t.Context(), slog.LevelError))
}
