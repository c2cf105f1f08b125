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

import "seehuhn.de/go/pdf/graphics"

var dashCases = []TestCase{
	{
		Name:   "dash_basic",
		Path:   horizontalLine(4, 32, 60),
		Width:  64,
		Height: 64,
		Stroke: dashed(6, 3, 2, 0),
	},
	{
		Name:   "dash_equal",
		Path:   horizontalLine(4, 32, 60),
		Width:  64,
		Height: 64,
		Stroke: dashed(4, 8, 8, 0),
	},
	{
		Name:   "dash_long_short",
		Path:   horizontalLine(4, 32, 60),
		Width:  64,
		Height: 64,
		Stroke: dashed(4, 16, 2, 0),
	},
	{
		Name:   "dash_short_long",
		Path:   horizontalLine(4, 32, 60),
		Width:  64,
		Height: 64,
		Stroke: dashed(4, 2, 12, 0),
	},
	{
		// the offset is halved before it shifts the pattern
		Name:   "dash_offset",
		Path:   horizontalLine(4, 32, 60),
		Width:  64,
		Height: 64,
		Stroke: dashed(4, 8, 8, 8),
	},
	{
		Name:   "dash_negative_offset",
		Path:   horizontalLine(4, 32, 60),
		Width:  64,
		Height: 64,
		Stroke: dashed(4, 8, 8, -6),
	},
	{
		Name:   "dash_subpixel",
		Path:   horizontalLine(4, 32, 60),
		Width:  64,
		Height: 64,
		Stroke: dashed(4, 0.5, 0.5, 0),
	},
	{
		Name:   "dash_corner",
		Path:   corner(10, 50, 32, 14, 54, 50),
		Width:  64,
		Height: 64,
		Stroke: withJoin(dashed(5, 6, 4, 0), graphics.LineJoinRound),
	},
	{
		// zero gap disables dashing
		Name:   "dash_no_gap",
		Path:   horizontalLine(4, 32, 60),
		Width:  64,
		Height: 64,
		Stroke: dashed(4, 8, 0, 0),
	},
	{
		Name:   "dash_with_trim",
		Path:   horizontalLine(4, 32, 60),
		Width:  64,
		Height: 64,
		Stroke: withTrim(dashed(4, 6, 4, 0), 0.25, 0.75, 0.1),
	},
}

func withTrim(s Stroke, start, end, offset float64) Stroke {
	s.Trim = &Trim{Start: start, End: end, Offset: offset}
	return s
}
