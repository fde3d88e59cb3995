package logging

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

// newTestLogger creates a logger that writes JSON entries to a buffer so the
// output can be inspected.
func newTestLogger(t *testing.T) (Logger, *zaptest.Buffer) {
	t.Helper()
	buf := &zaptest.Buffer{}
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderConfig)
	core := zapcore.NewCore(encoder, buf, zapcore.DebugLevel)
	return &zapLogger{z: zap.New(core)}, buf
}

func TestNewLogger_JSONFormat(t *testing.T) {
	l, err := NewLogger(Config{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, l)
}

func TestNewLogger_ConsoleFormat(t *testing.T) {
	l, err := NewLogger(Config{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, l)
}

func TestNewLogger_DefaultsApplied(t *testing.T) {
	// Empty config must not fail; all fields default.
	l, err := NewLogger(Config{})
	require.NoError(t, err)
	assert.NotNil(t, l)
}

func TestLogger_EmitsStructuredFields(t *testing.T) {
	l, buf := newTestLogger(t)

	l.Info("render complete",
		String("compound", "dopamine"),
		Int("atoms", 22),
		Float64("angle_deg", 90.0),
		Bool("auto_orient", true),
		Duration("elapsed", 12*time.Millisecond),
	)

	out := buf.String()
	assert.Contains(t, out, `"render complete"`)
	assert.Contains(t, out, `"compound":"dopamine"`)
	assert.Contains(t, out, `"atoms":22`)
	assert.Contains(t, out, `"auto_orient":true`)
}

func TestLogger_ErrField(t *testing.T) {
	l, buf := newTestLogger(t)

	l.Error("resolution failed", Err(errors.New("connection refused")))
	assert.Contains(t, buf.String(), "connection refused")

	buf.Reset()
	l.Warn("no cause", Err(nil))
	assert.Contains(t, buf.String(), "<nil>")
}

func TestLogger_WithAndNamed(t *testing.T) {
	l, buf := newTestLogger(t)

	child := l.With(String("pipeline", "render3d")).Named("orient")
	child.Info("branch selected")

	out := buf.String()
	assert.Contains(t, out, `"pipeline":"render3d"`)
	assert.Contains(t, out, "orient")

	// Parent remains unaffected by With.
	buf.Reset()
	l.Info("plain")
	assert.NotContains(t, buf.String(), "pipeline")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("WARN"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("unknown"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel(""))
}

func TestNopLogger_IsSilentAndChainable(t *testing.T) {
	l := NewNopLogger()
	l.Info("ignored")
	assert.NotNil(t, l.With(String("k", "v")))
	assert.NotNil(t, l.Named("sub"))
}

func TestDefaultLogger_SetAndGet(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	l, _ := newTestLogger(t)
	SetDefault(l)
	assert.Equal(t, l, Default())

	// nil must be ignored.
	SetDefault(nil)
	assert.Equal(t, l, Default())
}
