// seehuhn.de/go/ribbon - styled stroke ribbons
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package ribbon

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// AlphaTest is the opacity below which a fragment is discarded instead of
// blended.  Fragments with exactly this opacity are kept.
const AlphaTest = 2.0 / 255.0

// aaScale converts the screen-space gradient of a stepped quantity into
// the half-width of the antialiasing band.
const aaScale = 0.7

// Displace runs the displacement stage for one vertex.  The vertex is
// moved along its normal by half the thickness, scaled by the signed miter
// factor.  The z coordinate is passed through unchanged.
func Displace(v Vertex, thickness float64) (pos vec.Vec2, z float64) {
	s := thickness / 2 * v.Miter
	return v.Position.Add(v.Normal.Mul(s)), v.Z
}

// EdgeMode selects how the width of antialiased edges is obtained.
type EdgeMode int

const (
	// EdgeDerivative derives the edge width from the screen-space rate of
	// change of the stepped quantity.  This is the default.
	EdgeDerivative EdgeMode = iota

	// EdgeFixed uses a configured constant edge width.
	EdgeFixed

	// EdgeHard disables antialiasing of dash edges.
	EdgeHard
)

func (m EdgeMode) String() string {
	switch m {
	case EdgeDerivative:
		return "derivative"
	case EdgeFixed:
		return "fixed"
	case EdgeHard:
		return "hard"
	default:
		return "EdgeMode(?)"
	}
}

// Edge is the antialiasing policy of the fragment stage.
type Edge struct {
	Mode EdgeMode

	// Width is the half-width of the transition band for EdgeFixed, in
	// length units.  It is also used by EdgeDerivative when no usable
	// derivative is available.
	Width float64
}

// width returns the half-width of the smoothstep band for a quantity whose
// screen-space gradient has magnitude slope.  Derivatives are preferred,
// then the fixed width, then a hard step (width 0).
func (e Edge) width(slope float64) float64 {
	if e.Mode == EdgeDerivative && slope >= 0 && !math.IsInf(slope, 1) {
		return aaScale * slope
	}
	if e.Mode != EdgeHard && e.Width > 0 {
		return e.Width
	}
	return 0
}

// AAStep is an antialiased version of the step function.  It returns 0 for
// value well below threshold, 1 for value well above it, and blends with a
// smoothstep curve over [threshold-width, threshold+width].  If width is
// not positive, AAStep is a hard threshold which returns 1 for
// value >= threshold.
//
// The result lies in [0, 1] and is non-decreasing in value-threshold.
func AAStep(threshold, value, width float64) float64 {
	if !(width > 0) {
		if value >= threshold {
			return 1
		}
		return 0
	}
	return smoothstep(threshold-width, threshold+width, value)
}

func smoothstep(e0, e1, x float64) float64 {
	t := (x - e0) / (e1 - e0)
	t = max(0, min(1, t))
	return t * t * (3 - 2*t)
}

// floorMod returns x modulo y with the sign of y, like GLSL mod().
func floorMod(x, y float64) float64 {
	return x - y*math.Floor(x/y)
}

// DashOpacity returns the dash modulation factor at position u.  The
// result is 1 inside a dash, 0 inside a gap, and blends over an
// antialiasing band of the given half-width at the end of each dash.
// Without an active dash pattern the factor is 1.
//
// The phase of the pattern combines the dash offset with the trim offset
// scaled by the total stroke length, so that dashes travel together with
// an animated trim window.
func DashOpacity(u LineU, p *Params, width float64) float64 {
	if !p.DashActive() {
		return 1
	}
	offset := p.DashOffset*0.5 - p.TrimOffset*u.Total
	period := p.DashLength + p.DashGap
	phase := floorMod(u.Distance+offset, period)
	return AAStep(phase, p.DashLength, width)
}

// TrimVisible reports whether position u lies inside the visible trim
// window.  The window is cyclic: when shifted past either end of the
// stroke it wraps around to the other end.  A collapsed window (start equal
// to end) hides everything.
//
// Strokes of zero total length are always visible, since no fractional
// position can be computed for them.
func TrimVisible(u LineU, p *Params) bool {
	if !p.TrimActive() || u.Total == 0 {
		return true
	}

	per := u.Distance / u.Total
	start := min(p.TrimStart, p.TrimEnd) + p.TrimOffset
	end := max(p.TrimStart, p.TrimEnd) + p.TrimOffset

	switch {
	case start == end:
		return false
	case end > 1:
		// window wraps past the far end
		return !(per > end-1 && per < start)
	case start < 0:
		// window wraps before the near end
		return !(per > end && per < start+1)
	default:
		return !(per < start || per > end)
	}
}

// Composite combines the dash and trim factors with the global opacity.
// It returns the final opacity and false if the fragment must be
// discarded.
func Composite(dash, trim, opacity float64) (float64, bool) {
	a := dash * trim * opacity
	if a < AlphaTest {
		return 0, false
	}
	return a, true
}

// Fragment is the input of the fragment stage for one pixel sample.
type Fragment struct {
	// U is the interpolated distance value.
	U LineU

	// Slope is the magnitude of the screen-space gradient of U.Distance,
	// in length units per pixel.  Negative values mean that no derivative
	// is available.
	Slope float64
}

// Shade runs the fragment stage.  It returns the opacity of the fragment
// and false if the fragment is discarded.  The colour of a kept fragment is
// always p.Diffuse.
func Shade(f Fragment, p *Params, e Edge) (float64, bool) {
	dash := DashOpacity(f.U, p, e.width(f.Slope))
	trim := 1.0
	if !TrimVisible(f.U, p) {
		trim = 0
	}
	return Composite(dash, trim, p.Opacity)
}
