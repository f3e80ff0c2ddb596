package log

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func captureLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, observed := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })
	return observed
}

func TestLogLevels(t *testing.T) {
	observed := captureLogs(t)

	Debug("d", nil)
	Info("i", nil)
	Warn("w", nil)
	Error("e", nil)

	entries := observed.All()
	require.Len(t, entries, 4)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
}

func TestLogAttachesErrorAndFields(t *testing.T) {
	observed := captureLogs(t)

	Log(WarnLevel, "operation failed", errors.New("boom"), "name", "n")

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "operation failed", entries[0].Message)

	fields := entries[0].ContextMap()
	assert.Equal(t, "n", fields["name"])
	assert.Contains(t, fields, "error")
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	observed := captureLogs(t)

	Log(Level("verbose"), "msg", nil)

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
}
