// SPDX-License-Identifier: GPL-2.0-or-later

package trace

import (
	"sync"

	"github.com/google/uuid"

	"quakemove/math/vec"
)

// Snapshot is the player state as seen at the start of a tick.
type Snapshot struct {
	Origin   vec.Vec3
	Velocity vec.Vec3
	OnGround bool
	Fly      bool
	NoClip   bool
	Jumped   bool
}

// Change notes a single state transition within a tick.
type Change struct {
	Field string
	From  string
	To    string
}

// Frame is one logged tick.
type Frame struct {
	Tick    uint64
	Dt      float64
	Move    vec.Vec3
	Jump    bool
	State   Snapshot
	Changes []Change
	Traces  []Record
}

// Recorder keeps the last Limit ticks with their changes and traces.
// It implements Sink. While paused, nothing is recorded.
type Recorder struct {
	mu      sync.Mutex
	session uuid.UUID
	limit   int
	paused  bool
	frames  []Frame
}

const DefaultLimit = 600

func NewRecorder(limit int) *Recorder {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Recorder{
		session: uuid.Must(uuid.NewV7()),
		limit:   limit,
	}
}

func (r *Recorder) Session() uuid.UUID {
	return r.session
}

// LogFrame starts a new tick entry.
func (r *Recorder) LogFrame(f Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.paused {
		return
	}
	f.Changes = append([]Change(nil), f.Changes...)
	f.Traces = append([]Record(nil), f.Traces...)
	if len(r.frames) == r.limit {
		copy(r.frames, r.frames[1:])
		r.frames = r.frames[:len(r.frames)-1]
	}
	r.frames = append(r.frames, f)
}

func (r *Recorder) current() *Frame {
	if r.paused || len(r.frames) == 0 {
		return nil
	}
	return &r.frames[len(r.frames)-1]
}

// LogChange attaches a state change to the current tick.
func (r *Recorder) LogChange(c Change) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f := r.current(); f != nil {
		f.Changes = append(f.Changes, c)
	}
}

// Trace attaches a query record to the current tick.
func (r *Recorder) Trace(rec Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f := r.current(); f != nil {
		f.Traces = append(f.Traces, rec)
	}
}

func (r *Recorder) Pause() {
	r.mu.Lock()
	r.paused = true
	r.mu.Unlock()
}

func (r *Recorder) Resume() {
	r.mu.Lock()
	r.paused = false
	r.mu.Unlock()
}

func (r *Recorder) Paused() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.paused
}

// Logs returns a copy of the recorded ticks, newest first.
func (r *Recorder) Logs() []Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Frame, len(r.frames))
	for i, f := range r.frames {
		f.Changes = append([]Change(nil), f.Changes...)
		f.Traces = append([]Record(nil), f.Traces...)
		out[len(out)-1-i] = f
	}
	return out
}
