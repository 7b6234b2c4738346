// SPDX-License-Identifier: GPL-2.0-or-later

package math

import "math"

// RadMod changes an angle to be within [0, 2π)
func RadMod(a float64) float64 {
	return a - math.Floor(a/(2*math.Pi))*2*math.Pi
}

// RadMod32 changes an angle to be within [0, 2π)
func RadMod32(a float32) float32 {
	r := float32(RadMod(float64(a)))
	if r >= 2*math.Pi {
		// float32 rounding of values just below 2π
		return 0
	}
	return r
}
