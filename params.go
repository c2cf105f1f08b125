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
	"fmt"
	"image/color"
	"math"
)

// RGB is a colour with components in the range [0, 1].
type RGB struct {
	R, G, B float64
}

// White is the default stroke colour.
var White = RGB{R: 1, G: 1, B: 1}

// RGBFromColor converts any [color.Color] to RGB, dropping alpha.
// Premultiplied components are divided by alpha first.
func RGBFromColor(c color.Color) RGB {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{
		R: float64(nc.R) / 255,
		G: float64(nc.G) / 255,
		B: float64(nc.B) / 255,
	}
}

// NRGBA returns the colour with the given alpha as an 8-bit NRGBA value.
func (c RGB) NRGBA(alpha float64) color.NRGBA {
	return color.NRGBA{
		R: unitToByte(c.R),
		G: unitToByte(c.G),
		B: unitToByte(c.B),
		A: unitToByte(alpha),
	}
}

// String returns the colour in #rrggbb notation.
func (c RGB) String() string {
	nc := c.NRGBA(1)
	return fmt.Sprintf("#%02x%02x%02x", nc.R, nc.G, nc.B)
}

func unitToByte(x float64) uint8 {
	return uint8(math.Round(max(0, min(1, x)) * 255))
}

// Side selects which faces of the ribbon are drawn.
type Side int

const (
	// DoubleSide draws both faces. This is the default.
	DoubleSide Side = iota

	// FrontSide draws only triangles with positive orientation in device
	// space.
	FrontSide

	// BackSide draws only triangles with negative orientation in device
	// space.
	BackSide
)

func (s Side) String() string {
	switch s {
	case DoubleSide:
		return "double"
	case FrontSide:
		return "front"
	case BackSide:
		return "back"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// Params is the per-draw configuration of a stroke.
//
// A Params value is a snapshot: a draw reads only the copy it was given,
// so the host can keep changing its [Material] while earlier snapshots are
// being rendered.
type Params struct {
	// Thickness is the full width of the ribbon in user-space units.
	Thickness float64

	// Opacity is a global alpha multiplier.
	Opacity float64

	// Diffuse is the base stroke colour.
	Diffuse RGB

	// DashLength, DashGap and DashOffset describe the dash pattern in
	// user-space length units.  Dashing is active only when both DashLength
	// and DashGap are strictly positive.
	DashLength float64
	DashGap    float64
	DashOffset float64

	// TrimStart and TrimEnd bound the visible part of the stroke as
	// fractions of its total length.  The order of the two values does not
	// matter, and values outside [0, 1] express a window which wraps around
	// the ends of the stroke.  TrimOffset shifts the window.
	TrimStart  float64
	TrimEnd    float64
	TrimOffset float64

	// Side selects which faces are drawn.
	Side Side
}

// DefaultParams returns the default stroke configuration: 4 units wide,
// opaque white, no dashing, no trimming, both faces drawn.
func DefaultParams() Params {
	return Params{
		Thickness:  defaultThickness,
		Opacity:    1,
		Diffuse:    White,
		DashLength: 0,
		DashGap:    defaultDashGap,
		DashOffset: 0,
		TrimStart:  0,
		TrimEnd:    1,
		TrimOffset: 0,
		Side:       DoubleSide,
	}
}

// DashActive reports whether the dash pattern modulates the stroke.
func (p *Params) DashActive() bool {
	return p.DashLength > 0 && p.DashGap > 0
}

// TrimActive reports whether the trim window hides part of the stroke.
// An offset alone, with the default [0, 1] window, does not activate
// trimming.
func (p *Params) TrimActive() bool {
	return p.TrimStart > 0 || p.TrimEnd < 1
}

// Default values for stroke parameters.
const (
	defaultThickness = 4.0
	defaultDashGap   = 10.0
)
