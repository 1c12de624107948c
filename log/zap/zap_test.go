package zap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/unkn0wn-root/flightcache"
)

func TestLevelsAndFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := New(zap.New(core))

	l.Debug("fetch started", flightcache.Fields{"ns": "config"})
	l.Warn("fetch failed", flightcache.Fields{"err": errors.New("boom")})
	l.Info("no fields", nil)
	l.Error("bad", flightcache.Fields{})

	entries := logs.All()
	require.Len(t, entries, 4)

	require.Equal(t, zapcore.DebugLevel, entries[0].Level)
	require.Equal(t, "flightcache", entries[0].LoggerName)
	require.Equal(t, "config", entries[0].ContextMap()["ns"])

	require.Equal(t, zapcore.WarnLevel, entries[1].Level)
	require.Equal(t, "boom", entries[1].ContextMap()["err"])

	require.Equal(t, zapcore.InfoLevel, entries[2].Level)
	require.Empty(t, entries[2].Context)
	require.Equal(t, zapcore.ErrorLevel, entries[3].Level)
}
