package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "defaults", cfg: Config{}},
		{name: "console debug", cfg: Config{Level: "debug", Encoding: "console"}},
		{name: "development", cfg: Config{Level: "warn", Development: true, Encoding: "console"}},
		{name: "bad level", cfg: Config{Level: "loud"}, wantErr: true},
		{name: "bad encoding", cfg: Config{Encoding: "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, l)
		})
	}
}

func TestReplaceAndPackageHelpers(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := Replace(zap.New(core))
	defer restore()

	Debug("debug message")
	Info("info message", zap.Int("rows", 3))
	Warn("warn message")
	With(zap.String("table", "ibm")).Info("scoped")

	require.Equal(t, 4, logs.Len())
	assert.Equal(t, "info message", logs.All()[1].Message)
	assert.Equal(t, int64(3), logs.All()[1].ContextMap()["rows"])
	assert.Equal(t, "ibm", logs.All()[3].ContextMap()["table"])
}

func TestWithContext(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	restore := Replace(zap.New(core))
	defer restore()

	ctx := context.WithValue(context.Background(), TableKey, "prices")
	ctx = context.WithValue(ctx, OperationKey, "select_by_idx")
	WithContext(ctx).Info("selected")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "prices", fields["table"])
	assert.Equal(t, "select_by_idx", fields["op"])
}

func TestGetNeverReturnsNil(t *testing.T) {
	assert.NotNil(t, Get())
}
