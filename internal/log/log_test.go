package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func logSingleField(t *testing.T, key, value string) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	handler := NewRedactingHandler(slog.NewJSONHandler(&buf, nil))
	logger := slog.New(handler)
	logger.Info("test message", key, value)

	out := map[string]any{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestRedactionPasswordField(t *testing.T) {
	t.Parallel()
	out := logSingleField(t, "password", "hunter2")
	require.Equal(t, "[REDACTED]", out["password"])
}

func TestRedactionValueField(t *testing.T) {
	t.Parallel()
	out := logSingleField(t, "value", "s3cret-doc")
	require.Equal(t, "[REDACTED]", out["value"])
}

func TestRedactionIsCaseInsensitive(t *testing.T) {
	t.Parallel()
	out := logSingleField(t, "Password", "hunter2")
	require.Equal(t, "[REDACTED]", out["Password"])
}

func TestRedactionLeavesOtherFieldsAlone(t *testing.T) {
	t.Parallel()
	out := logSingleField(t, "title", "Gmail")
	require.Equal(t, "Gmail", out["title"])
}

func TestRedactionAppliesInsideGroups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewRedactingHandler(slog.NewJSONHandler(&buf, nil)))
	logger.Info("msg", slog.Group("request", slog.String("secret", "abc"), slog.String("id", "r1")))

	out := map[string]any{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	group, ok := out["request"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "[REDACTED]", group["secret"])
	require.Equal(t, "r1", group["id"])
}

// panicOnceHandler blows up on its first record and behaves afterwards, so
// the recovered fallback record still gets through.
type panicOnceHandler struct {
	slog.Handler
	calls int
}

func (h *panicOnceHandler) Handle(ctx context.Context, record slog.Record) error {
	h.calls++
	if h.calls == 1 {
		panic("handler boom")
	}
	return h.Handler.Handle(ctx, record)
}

func TestRedactionRecoversFromHandlerPanic(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	inner := &panicOnceHandler{Handler: slog.NewJSONHandler(&buf, nil)}
	logger := slog.New(NewRedactingHandler(inner))

	require.NotPanics(t, func() {
		logger.Info("msg", "title", "Gmail")
	})

	out := map[string]any{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Equal(t, "redaction handler panic recovered", out["msg"])
	require.Equal(t, "[REDACTED]", out["panic"])
	require.NotContains(t, buf.String(), "handler boom")
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	_, err := Setup(Options{Level: "loud"})
	require.Error(t, err)
}

func TestSetupCreatesLogDirectory(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "logs")
	logger, err := Setup(Options{Level: "info", File: filepath.Join(dir, "app.log")})
	require.NoError(t, err)
	require.NotNil(t, logger)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestSetupLevelFiltering(t *testing.T) {
	t.Parallel()

	logger, err := Setup(Options{Level: "warn"})
	require.NoError(t, err)
	require.False(t, logger.Enabled(context.Background(), slog.LevelInfo))
	require.True(t, logger.Enabled(context.Background(), slog.LevelWarn))
}
