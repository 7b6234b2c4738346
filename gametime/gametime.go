// SPDX-License-Identifier: GPL-2.0-or-later

// Package gametime turns real frame times into simulation frame times.
package gametime

import (
	"quakemove/cvars"
	"quakemove/math"
)

const minFrameTime = 0.001

type GameTime struct {
	time       float64
	frameTime  float64
	frameCount int
}

func (h *GameTime) Reset() {
	*h = GameTime{}
}

func (h *GameTime) Time() float64      { return h.time }
func (h *GameTime) FrameTime() float64 { return h.frameTime }
func (h *GameTime) FrameCount() int    { return h.frameCount }

// Advance takes the real time since the last frame and returns the time
// step to simulate. host_timescale scales it, host_framerate replaces it,
// otherwise it is clamped to [0.001, host_maxframetime].
func (h *GameTime) Advance(real float64) float64 {
	ft := real
	switch {
	case cvars.HostTimeScale.Value() > 0:
		ft *= cvars.HostTimeScale.Value()
	case cvars.HostFrameRate.Value() > 0:
		ft = cvars.HostFrameRate.Value()
	default:
		maxFT := cvars.HostMaxFrameTime.Value()
		if maxFT < minFrameTime {
			maxFT = minFrameTime
		}
		// also catches NaN
		if !(ft >= minFrameTime) {
			ft = minFrameTime
		}
		ft = math.Clamp(minFrameTime, ft, maxFT)
	}
	h.frameTime = ft
	h.time += ft
	h.frameCount++
	return ft
}
