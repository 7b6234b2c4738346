// SPDX-License-Identifier: GPL-2.0-or-later

package trace

import (
	"bytes"
	"reflect"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"quakemove/collision"
	"quakemove/math/vec"
)

func hitRecord(tag string) Record {
	return Record{
		Tag: tag,
		Ray: collision.Ray{Origin: vec.Vec3{0, 1, 0}, Vector: vec.Vec3{0, -2, 0}},
		Hit: true,
		Result: collision.Intersection{
			Fraction: 0.5,
			Normal:   vec.Up,
			Triangle: collision.Triangle{V0: vec.Vec3{-1, 0, -1}, V1: vec.Vec3{-1, 0, 1}, V2: vec.Vec3{1, 0, -1}},
		},
	}
}

func TestRecorderKeepsNewestFirst(t *testing.T) {
	r := NewRecorder(3)
	for i := uint64(1); i <= 5; i++ {
		r.LogFrame(Frame{Tick: i})
		r.LogChange(Change{Field: "tick", To: "x"})
	}
	logs := r.Logs()
	if len(logs) != 3 {
		t.Fatalf("len(Logs()) = %d want 3", len(logs))
	}
	for i, want := range []uint64{5, 4, 3} {
		if logs[i].Tick != want {
			t.Errorf("Logs()[%d].Tick = %d want %d", i, logs[i].Tick, want)
		}
		if len(logs[i].Changes) != 1 {
			t.Errorf("Logs()[%d] has %d changes want 1", i, len(logs[i].Changes))
		}
	}
}

func TestRecorderAttachesToCurrentFrame(t *testing.T) {
	r := NewRecorder(0)
	// nothing to attach to yet
	r.Trace(hitRecord("lost"))
	r.LogFrame(Frame{Tick: 1})
	r.Trace(hitRecord("a"))
	r.Trace(hitRecord("b"))
	logs := r.Logs()
	if len(logs) != 1 || len(logs[0].Traces) != 2 {
		t.Fatalf("Logs() = %+v, want one frame with two traces", logs)
	}
	if logs[0].Traces[0].Tag != "a" || logs[0].Traces[1].Tag != "b" {
		t.Errorf("trace order = %q %q", logs[0].Traces[0].Tag, logs[0].Traces[1].Tag)
	}
	// Logs returns copies
	logs[0].Traces[0].Tag = "changed"
	if r.Logs()[0].Traces[0].Tag != "a" {
		t.Errorf("Logs() aliases the recorder")
	}
}

func TestRecorderPause(t *testing.T) {
	r := NewRecorder(10)
	r.LogFrame(Frame{Tick: 1})
	r.Pause()
	if !r.Paused() {
		t.Fatalf("Paused() = false after Pause")
	}
	r.LogFrame(Frame{Tick: 2})
	r.Trace(hitRecord("paused"))
	r.Resume()
	logs := r.Logs()
	if len(logs) != 1 || len(logs[0].Traces) != 0 {
		t.Errorf("paused recorder recorded: %+v", logs)
	}
}

func TestWriteToRoundTrip(t *testing.T) {
	r := NewRecorder(10)
	r.LogFrame(Frame{
		Tick: 7,
		Dt:   1.0 / 60,
		Move: vec.Vec3{0, 0, -1},
		Jump: true,
		State: Snapshot{
			Origin:   vec.Vec3{0, 0.7, 3},
			Velocity: vec.Vec3{0.5, -0.1, 0},
			OnGround: true,
		},
	})
	r.LogChange(Change{Field: "onGround", From: "false", To: "true"})
	r.Trace(hitRecord("categorize"))
	r.Trace(Record{Tag: "walk", Ray: collision.Ray{Vector: vec.Vec3{1, 0, 0}}})
	r.LogFrame(Frame{Tick: 8})

	var buf bytes.Buffer
	if _, err := r.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	session, frames, err := Unmarshal(buf.Bytes())
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if session != r.Session() {
		t.Errorf("session = %v want %v", session, r.Session())
	}
	want := r.Logs()
	want[0], want[1] = want[1], want[0]
	if !reflect.DeepEqual(frames, want) {
		t.Errorf("Unmarshal = %+v\nwant %+v", frames, want)
	}
}

func TestUnmarshalTruncated(t *testing.T) {
	r := NewRecorder(10)
	r.LogFrame(Frame{Tick: 1})
	r.Trace(hitRecord("x"))
	var buf bytes.Buffer
	if _, err := r.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	b := buf.Bytes()
	if _, _, err := Unmarshal(b[:len(b)-3]); err == nil {
		t.Errorf("Unmarshal of truncated log succeeded")
	}
}

func TestTee(t *testing.T) {
	var a, b []string
	s := Tee(nil, SinkFunc(func(r Record) { a = append(a, r.Tag) }), SinkFunc(func(r Record) { b = append(b, r.Tag) }))
	s.Trace(Record{Tag: "x"})
	if len(a) != 1 || len(b) != 1 {
		t.Errorf("Tee delivered %v %v", a, b)
	}
}

func TestLogSink(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := LogSink{L: zap.New(core)}
	s.Trace(hitRecord("ground"))
	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d log entries want 1", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["tag"] != "ground" || ctx["hit"] != true || ctx["fraction"] != 0.5 {
		t.Errorf("log context = %v", ctx)
	}
}
