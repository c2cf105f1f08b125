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

// Package testcases holds declarative ribbon stroke cases shared by the
// tests, the benchmarks and the export command.
package testcases

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// TestCase defines a single rendering test.
type TestCase struct {
	Name   string        // lowercase a-z, 0-9 and _ only
	Path   path.Path     // the centreline to stroke
	Width  int           // canvas width in pixels
	Height int           // canvas height in pixels
	Stroke Stroke        // ribbon geometry and material
	CTM    matrix.Matrix // transformation matrix (zero-value means no transform)
}

// Stroke describes the ribbon geometry and the material settings of a
// test case.
type Stroke struct {
	Thickness  float64                // ribbon width (>0)
	Cap        graphics.LineCapStyle  // LineCapButt, LineCapRound, LineCapSquare
	Join       graphics.LineJoinStyle // LineJoinMiter, LineJoinRound, LineJoinBevel
	MiterLimit float64                // miter limit
	Opacity    float64                // zero means fully opaque
	Dash       *Dash                  // nil for solid
	Trim       *Trim                  // nil for the full length
}

// Dash is a dash pattern in user-space length units.
type Dash struct {
	Length, Gap, Offset float64
}

// Trim is a visible window, as fractions of the total length.
type Trim struct {
	Start, End, Offset float64
}

// solid returns a butt-capped, miter-joined stroke of the given thickness.
func solid(thickness float64) Stroke {
	return Stroke{
		Thickness:  thickness,
		Cap:        graphics.LineCapButt,
		Join:       graphics.LineJoinMiter,
		MiterLimit: 10,
	}
}

// dashed returns a solid stroke with a dash pattern.
func dashed(thickness, length, gap, offset float64) Stroke {
	s := solid(thickness)
	s.Dash = &Dash{Length: length, Gap: gap, Offset: offset}
	return s
}

// trimmed returns a solid stroke with a trim window.
func trimmed(thickness, start, end, offset float64) Stroke {
	s := solid(thickness)
	s.Trim = &Trim{Start: start, End: end, Offset: offset}
	return s
}

// pt is a helper to create a vec.Vec2 from x, y coordinates.
func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

func moveTo(yield func(path.Command, []vec.Vec2) bool, x, y float64) bool {
	return yield(path.CmdMoveTo, []vec.Vec2{pt(x, y)})
}

func lineTo(yield func(path.Command, []vec.Vec2) bool, x, y float64) bool {
	return yield(path.CmdLineTo, []vec.Vec2{pt(x, y)})
}

// polyline builds an open path through the given points.
func polyline(pts ...vec.Vec2) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		for i, p := range pts {
			cmd := path.CmdLineTo
			if i == 0 {
				cmd = path.CmdMoveTo
			}
			if !yield(cmd, []vec.Vec2{p}) {
				return
			}
		}
	}
}

// polygon builds a closed path through the given points.
func polygon(pts ...vec.Vec2) path.Path {
	open := polyline(pts...)
	return func(yield func(path.Command, []vec.Vec2) bool) {
		for cmd, p := range open {
			if !yield(cmd, p) {
				return
			}
		}
		yield(path.CmdClose, nil)
	}
}
