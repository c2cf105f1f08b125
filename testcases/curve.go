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

package testcases

import (
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// kappa is the control point distance for a quarter circle cubic Bézier.
const kappa = 0.5522847498

var curveCases = []TestCase{
	{
		Name:   "quadratic",
		Path:   quadraticCurveOpen(8, 52, 32, 0, 56, 52),
		Width:  64,
		Height: 64,
		Stroke: solid(4),
	},
	{
		Name:   "quadratic_s_shape",
		Path:   sCurveQuadratic(6, 32, 58, 32),
		Width:  64,
		Height: 64,
		Stroke: withJoin(solid(4), graphics.LineJoinRound),
	},
	{
		Name:   "cubic",
		Path:   cubicCurveOpen(6, 50, 20, 0, 44, 64, 58, 14),
		Width:  64,
		Height: 64,
		Stroke: withCap(solid(5), graphics.LineCapRound),
	},
	{
		Name:   "cubic_loop",
		Path:   cubicCurveOpen(10, 50, 70, 0, -6, 0, 54, 50),
		Width:  64,
		Height: 64,
		Stroke: solid(3),
	},
	{
		Name:   "circle",
		Path:   circle(32, 32, 22),
		Width:  64,
		Height: 64,
		Stroke: solid(6),
	},
	{
		Name:   "circle_dashed",
		Path:   circle(32, 32, 22),
		Width:  64,
		Height: 64,
		Stroke: dashed(4, 8, 6, 0),
	},
	{
		Name:   "ellipse_thin",
		Path:   ellipse(32, 32, 28, 12),
		Width:  64,
		Height: 64,
		Stroke: solid(1),
	},
}

// quadraticCurveOpen builds an open path with a quadratic Bézier curve.
func quadraticCurveOpen(x1, y1, cx, cy, x2, y2 float64) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		if !moveTo(yield, x1, y1) {
			return
		}
		yield(path.CmdQuadTo, []vec.Vec2{pt(cx, cy), pt(x2, y2)})
	}
}

// cubicCurveOpen builds an open path with a cubic Bézier curve.
func cubicCurveOpen(x1, y1, c1x, c1y, c2x, c2y, x2, y2 float64) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		if !moveTo(yield, x1, y1) {
			return
		}
		yield(path.CmdCubeTo, []vec.Vec2{pt(c1x, c1y), pt(c2x, c2y), pt(x2, y2)})
	}
}

// sCurveQuadratic builds an open S-shaped path from two quadratic Bézier curves.
func sCurveQuadratic(x1, y1, x2, y2 float64) path.Path {
	midX := (x1 + x2) / 2
	midY := (y1 + y2) / 2
	return func(yield func(path.Command, []vec.Vec2) bool) {
		if !moveTo(yield, x1, y1) {
			return
		}
		if !yield(path.CmdQuadTo, []vec.Vec2{pt((x1+midX)/2, y1-20), pt(midX, midY)}) {
			return
		}
		yield(path.CmdQuadTo, []vec.Vec2{pt((midX+x2)/2, y2+20), pt(x2, y2)})
	}
}

// circle builds an approximate circle using four cubic Bézier curves.
func circle(cx, cy, r float64) path.Path {
	return ellipse(cx, cy, r, r)
}

// ellipse builds an approximate ellipse using four cubic Bézier curves.
func ellipse(cx, cy, rx, ry float64) path.Path {
	kx := rx * kappa
	ky := ry * kappa
	quadrants := [4][3]vec.Vec2{
		{pt(cx+rx, cy-ky), pt(cx+kx, cy-ry), pt(cx, cy-ry)}, // top-right
		{pt(cx-kx, cy-ry), pt(cx-rx, cy-ky), pt(cx-rx, cy)}, // top-left
		{pt(cx-rx, cy+ky), pt(cx-kx, cy+ry), pt(cx, cy+ry)}, // bottom-left
		{pt(cx+kx, cy+ry), pt(cx+rx, cy+ky), pt(cx+rx, cy)}, // bottom-right
	}
	return func(yield func(path.Command, []vec.Vec2) bool) {
		if !moveTo(yield, cx+rx, cy) {
			return
		}
		for _, q := range quadrants {
			if !yield(path.CmdCubeTo, q[:]) {
				return
			}
		}
		yield(path.CmdClose, nil)
	}
}
