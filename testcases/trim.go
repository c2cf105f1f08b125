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

var trimCases = []TestCase{
	{
		Name:   "trim_first_half",
		Path:   horizontalLine(4, 32, 60),
		Width:  64,
		Height: 64,
		Stroke: trimmed(6, 0, 0.5, 0),
	},
	{
		// start and end may be given in either order
		Name:   "trim_reversed",
		Path:   horizontalLine(4, 32, 60),
		Width:  64,
		Height: 64,
		Stroke: trimmed(6, 0.75, 0.25, 0),
	},
	{
		Name:   "trim_wrap_end",
		Path:   horizontalLine(4, 32, 60),
		Width:  64,
		Height: 64,
		Stroke: trimmed(6, 0.8, 1.1, 0),
	},
	{
		Name:   "trim_wrap_start",
		Path:   horizontalLine(4, 32, 60),
		Width:  64,
		Height: 64,
		Stroke: trimmed(6, -0.1, 0.4, 0),
	},
	{
		Name:   "trim_offset",
		Path:   horizontalLine(4, 32, 60),
		Width:  64,
		Height: 64,
		Stroke: trimmed(6, 0, 0.3, 0.6),
	},
	{
		Name:   "trim_collapsed",
		Path:   horizontalLine(4, 32, 60),
		Width:  64,
		Height: 64,
		Stroke: trimmed(6, 0.4, 0.4, 0),
	},
	{
		Name:   "trim_closed",
		Path:   polygon(regularPolygon(32, 32, 24, 6)...),
		Width:  64,
		Height: 64,
		Stroke: trimmed(4, 0.1, 0.6, 0),
	},
	{
		Name:   "trim_curve",
		Path:   circle(32, 32, 22),
		Width:  64,
		Height: 64,
		Stroke: trimmed(5, 0, 0.75, 0.125),
	},
}
