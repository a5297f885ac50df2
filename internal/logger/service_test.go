package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		level slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{" error ", slog.LevelError},
	}

	for _, c := range cases {
		level, err := ParseLevel(c.name)
		require.NoError(t, err)
		require.Equal(t, c.level, level)
	}

	_, err := ParseLevel("verbose")
	require.Error(t, err)
}

// Not parallel: replaces the process-wide default logger.
func TestInitializeAndNamed(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf bytes.Buffer
	Initialize(&buf, slog.LevelInfo, FormatJSON)

	Named("exporter").Debug("hidden")
	Named("exporter").Info("visible", "network", "1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "visible", entry["msg"])
	require.Equal(t, "exporter", entry["name"])
	require.Equal(t, "1", entry["network"])

	buf.Reset()
	Initialize(&buf, slog.LevelDebug, FormatText)
	Named("exporter").Debug("text line")
	require.Contains(t, buf.String(), "msg=\"text line\"")
	require.Contains(t, buf.String(), "name=exporter")
}
