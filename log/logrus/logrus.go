// Package logrus adapts a *logrus.Entry to flightcache.Logger.
package logrus

import (
	"github.com/sirupsen/logrus"

	"github.com/unkn0wn-root/flightcache"
)

var _ flightcache.Logger = Logger{}

type Logger struct{ E *logrus.Entry }

// New tags every line with component=flightcache.
func New(l *logrus.Logger) Logger {
	return Logger{E: l.WithField("component", "flightcache")}
}

func (l Logger) Debug(msg string, f flightcache.Fields) { l.E.WithFields(logrus.Fields(f)).Debug(msg) }
func (l Logger) Info(msg string, f flightcache.Fields)  { l.E.WithFields(logrus.Fields(f)).Info(msg) }
func (l Logger) Warn(msg string, f flightcache.Fields)  { l.E.WithFields(logrus.Fields(f)).Warn(msg) }
func (l Logger) Error(msg string, f flightcache.Fields) { l.E.WithFields(logrus.Fields(f)).Error(msg) }
