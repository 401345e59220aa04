package observability_test

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/suma737/webharness/internal/config"
	"github.com/suma737/webharness/internal/observability"
)

// syncBuffer is a minimal WriteSyncer over a bytes.Buffer.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) Sync() error { return nil }

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestInitialize_JSONFormat(t *testing.T) {
	observability.ResetForTest()
	t.Cleanup(observability.ResetForTest)

	buf := &syncBuffer{}
	observability.Initialize(config.LoggerConfig{
		Level:       "debug",
		Format:      "json",
		ServiceName: "webharness-test",
	}, zapcore.AddSync(buf))

	logger := observability.GetLogger()
	require.NotNil(t, logger)
	logger.Info("hello from the harness")
	require.NoError(t, logger.Sync())

	out := buf.String()
	assert.Contains(t, out, `"msg":"hello from the harness"`)
	assert.Contains(t, out, "webharness-test")
}

func TestInitialize_OnlyOnce(t *testing.T) {
	observability.ResetForTest()
	t.Cleanup(observability.ResetForTest)

	first := &syncBuffer{}
	second := &syncBuffer{}
	observability.Initialize(config.LoggerConfig{Level: "info", Format: "json", ServiceName: "a"}, zapcore.AddSync(first))
	observability.Initialize(config.LoggerConfig{Level: "info", Format: "json", ServiceName: "b"}, zapcore.AddSync(second))

	logger := observability.GetLogger()
	logger.Info("routed to the first writer")
	_ = logger.Sync()

	assert.Contains(t, first.String(), "routed to the first writer")
	assert.Empty(t, second.String())
}

func TestInitialize_BadLevelFallsBackToInfo(t *testing.T) {
	observability.ResetForTest()
	t.Cleanup(observability.ResetForTest)

	buf := &syncBuffer{}
	observability.Initialize(config.LoggerConfig{Level: "not-a-level", Format: "json", ServiceName: "t"}, zapcore.AddSync(buf))

	logger := observability.GetLogger()
	logger.Debug("dropped")
	logger.Info("kept")
	_ = logger.Sync()

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "kept")
}

func TestGetLogger_FallbackBeforeInitialize(t *testing.T) {
	observability.ResetForTest()
	t.Cleanup(observability.ResetForTest)

	assert.NotNil(t, observability.GetLogger())
}
