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
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

var strokeCases = []TestCase{
	{
		Name:   "line_butt",
		Path:   horizontalLine(10, 32, 54),
		Width:  64,
		Height: 64,
		Stroke: solid(8),
	},
	{
		Name:   "line_round",
		Path:   horizontalLine(10, 32, 54),
		Width:  64,
		Height: 64,
		Stroke: withCap(solid(8), graphics.LineCapRound),
	},
	{
		Name:   "line_square",
		Path:   horizontalLine(10, 32, 54),
		Width:  64,
		Height: 64,
		Stroke: withCap(solid(8), graphics.LineCapSquare),
	},
	{
		Name:   "line_diagonal",
		Path:   polyline(pt(8, 56), pt(56, 8)),
		Width:  64,
		Height: 64,
		Stroke: solid(5),
	},
	{
		Name:   "corner_miter",
		Path:   corner(10, 50, 32, 14, 54, 50),
		Width:  64,
		Height: 64,
		Stroke: solid(6),
	},
	{
		Name:   "corner_round",
		Path:   corner(10, 50, 32, 14, 54, 50),
		Width:  64,
		Height: 64,
		Stroke: withJoin(solid(6), graphics.LineJoinRound),
	},
	{
		Name:   "corner_bevel",
		Path:   corner(10, 50, 32, 14, 54, 50),
		Width:  64,
		Height: 64,
		Stroke: withJoin(solid(6), graphics.LineJoinBevel),
	},
	{
		// interior angle of about 10°, beyond the default miter limit
		Name:   "corner_sharp_limit",
		Path:   corner(8, 56, 32, 8, 40, 56),
		Width:  64,
		Height: 64,
		Stroke: solid(4),
	},
	{
		Name:   "zigzag",
		Path:   zigzagPath(6, 32, 58, 16),
		Width:  64,
		Height: 64,
		Stroke: withJoin(solid(5), graphics.LineJoinRound),
	},
	{
		Name:   "reversal",
		Path:   polyline(pt(10, 32), pt(50, 32), pt(20, 32)),
		Width:  64,
		Height: 64,
		Stroke: withCap(solid(6), graphics.LineCapRound),
	},
	{
		Name:   "translucent",
		Path:   horizontalLine(10, 32, 54),
		Width:  64,
		Height: 64,
		Stroke: withOpacity(solid(10), 0.5),
	},
	{
		Name:   "hairline",
		Path:   polyline(pt(4, 4), pt(60, 30), pt(4, 60)),
		Width:  64,
		Height: 64,
		Stroke: solid(0.5),
	},
}

func withCap(s Stroke, c graphics.LineCapStyle) Stroke {
	s.Cap = c
	return s
}

func withJoin(s Stroke, j graphics.LineJoinStyle) Stroke {
	s.Join = j
	return s
}

func withOpacity(s Stroke, a float64) Stroke {
	s.Opacity = a
	return s
}

// horizontalLine builds a horizontal line segment.
func horizontalLine(x1, y, x2 float64) path.Path {
	return polyline(pt(x1, y), pt(x2, y))
}

// corner builds a path with two line segments meeting at a corner.
func corner(x1, y1, x2, y2, x3, y3 float64) path.Path {
	return polyline(pt(x1, y1), pt(x2, y2), pt(x3, y3))
}

// zigzagPath builds a zigzag between x1 and x2 with five segments.
func zigzagPath(x1, cy, x2, amplitude float64) path.Path {
	const segments = 5
	segWidth := (x2 - x1) / segments

	pts := []vec.Vec2{pt(x1, cy)}
	for i := 1; i <= segments; i++ {
		y := cy + amplitude
		if i%2 == 1 {
			y = cy - amplitude
		}
		pts = append(pts, pt(x1+float64(i)*segWidth, y))
	}
	return polyline(pts...)
}

// regularPolygon returns the corners of a regular n-gon, starting at the top.
func regularPolygon(cx, cy, r float64, n int) []vec.Vec2 {
	pts := make([]vec.Vec2, n)
	for i := range n {
		angle := float64(i)*2*math.Pi/float64(n) - math.Pi/2
		pts[i] = pt(cx+r*math.Cos(angle), cy+r*math.Sin(angle))
	}
	return pts
}
