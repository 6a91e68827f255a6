package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_ParsesLevel(t *testing.T) {
	l, err := New("debug")
	require.NoError(t, err)
	require.True(t, l.Desugar().Core().Enabled(zapcore.DebugLevel))

	l, err = New("nonsense")
	require.NoError(t, err)
	require.False(t, l.Desugar().Core().Enabled(zapcore.DebugLevel))
	require.True(t, l.Desugar().Core().Enabled(zapcore.InfoLevel))
}

func TestFromCtx(t *testing.T) {
	base := zap.NewNop().Sugar()
	scoped := base.With("request_id", "abc")

	require.Same(t, base, FromCtx(context.Background(), base))
	require.Same(t, scoped, FromCtx(WithContext(context.Background(), scoped), base))
}
