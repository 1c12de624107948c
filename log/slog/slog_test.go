package slog

import (
	"bytes"
	stdslog "log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/flightcache"
)

func TestStableAttrOrder(t *testing.T) {
	var buf bytes.Buffer
	l := Logger{L: stdslog.New(stdslog.NewTextHandler(&buf, &stdslog.HandlerOptions{Level: stdslog.LevelDebug}))}

	l.Debug("held value dropped", flightcache.Fields{"reason": "corrupt", "key": "flight:x:1"})

	line := buf.String()
	require.Contains(t, line, "level=DEBUG")
	require.Contains(t, line, `msg="held value dropped"`)
	require.Less(t, strings.Index(line, "key="), strings.Index(line, "reason="))
}

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := Logger{L: stdslog.New(stdslog.NewTextHandler(&buf, &stdslog.HandlerOptions{Level: stdslog.LevelWarn}))}

	l.Debug("hidden", nil)
	l.Info("hidden", nil)
	require.Zero(t, buf.Len())

	l.Warn("shown", nil)
	l.Error("shown too", flightcache.Fields{"err": "boom"})
	require.Equal(t, 2, strings.Count(buf.String(), "\n"))
}
