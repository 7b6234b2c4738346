// SPDX-License-Identifier: GPL-2.0-or-later

// Package trace carries diagnostics out of the simulation. Nothing in here
// influences the simulation result.
package trace

import (
	"go.uber.org/zap"

	"quakemove/collision"
)

// Record describes one tagged world query.
type Record struct {
	Tag    string
	Ray    collision.Ray
	Hit    bool
	Result collision.Intersection
}

type Sink interface {
	Trace(r Record)
}

type SinkFunc func(r Record)

func (f SinkFunc) Trace(r Record) { f(r) }

type tee []Sink

func (t tee) Trace(r Record) {
	for _, s := range t {
		s.Trace(r)
	}
}

// Tee forwards every record to all non nil sinks.
func Tee(sinks ...Sink) Sink {
	var t tee
	for _, s := range sinks {
		if s != nil {
			t = append(t, s)
		}
	}
	if len(t) == 1 {
		return t[0]
	}
	return t
}

// LogSink writes records to a zap logger at debug level.
type LogSink struct {
	L *zap.Logger
}

func (s LogSink) Trace(r Record) {
	if s.L == nil {
		return
	}
	fields := []zap.Field{
		zap.String("tag", r.Tag),
		zap.Float64s("origin", r.Ray.Origin[:]),
		zap.Float64s("vector", r.Ray.Vector[:]),
		zap.Bool("hit", r.Hit),
	}
	if r.Hit {
		fields = append(fields,
			zap.Float64("fraction", r.Result.Fraction),
			zap.Float64s("normal", r.Result.Normal[:]))
	}
	s.L.Debug("trace", fields...)
}
