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
)

var subpathCases = []TestCase{
	{
		Name:   "two_lines",
		Path:   concat(horizontalLine(8, 20, 56), horizontalLine(8, 44, 40)),
		Width:  64,
		Height: 64,
		Stroke: dashed(4, 6, 3, 0),
	},
	{
		// each subpath has its own length for trimming
		Name:   "two_lines_trimmed",
		Path:   concat(horizontalLine(8, 20, 56), horizontalLine(8, 44, 40)),
		Width:  64,
		Height: 64,
		Stroke: trimmed(4, 0, 0.5, 0),
	},
	{
		Name:   "closed_square",
		Path:   polygon(pt(12, 12), pt(52, 12), pt(52, 52), pt(12, 52)),
		Width:  64,
		Height: 64,
		Stroke: solid(6),
	},
	{
		Name:   "triangle_and_point",
		Path:   concat(polygon(pt(32, 8), pt(56, 52), pt(8, 52)), point(32, 36)),
		Width:  64,
		Height: 64,
		Stroke: solid(3),
	},
	{
		Name:   "many_segments",
		Path:   concat(manyLines(8, 6)...),
		Width:  64,
		Height: 64,
		Stroke: dashed(2, 3, 1, 0),
	},
}

// concat joins several paths into one.
func concat(paths ...path.Path) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		for _, p := range paths {
			for cmd, pts := range p {
				if !yield(cmd, pts) {
					return
				}
			}
		}
	}
}

// point builds a subpath consisting of a single point.
func point(x, y float64) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		if !moveTo(yield, x, y) {
			return
		}
		yield(path.CmdClose, nil)
	}
}

// manyLines builds rows of short horizontal lines.
func manyLines(rows, cols int) []path.Path {
	var res []path.Path
	for i := range rows {
		y := 6 + float64(i)*7
		for j := range cols {
			x := 4 + float64(j)*10
			res = append(res, horizontalLine(x, y, x+7))
		}
	}
	return res
}
