// Package zap adapts a *zap.Logger to flightcache.Logger.
package zap

import (
	"go.uber.org/zap"

	"github.com/unkn0wn-root/flightcache"
)

var _ flightcache.Logger = Logger{}

type Logger struct{ L *zap.Logger }

// New names the logger "flightcache" so cache lines are easy to filter.
func New(l *zap.Logger) Logger { return Logger{L: l.Named("flightcache")} }

func (z Logger) Debug(msg string, f flightcache.Fields) { z.L.Debug(msg, fields(f)...) }
func (z Logger) Info(msg string, f flightcache.Fields)  { z.L.Info(msg, fields(f)...) }
func (z Logger) Warn(msg string, f flightcache.Fields)  { z.L.Warn(msg, fields(f)...) }
func (z Logger) Error(msg string, f flightcache.Fields) { z.L.Error(msg, fields(f)...) }

func fields(f flightcache.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(f))
	for k, v := range f {
		if err, ok := v.(error); ok {
			out = append(out, zap.NamedError(k, err))
			continue
		}
		out = append(out, zap.Any(k, v))
	}
	return out
}
