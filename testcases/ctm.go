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

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf/graphics"
)

var ctmCases = []TestCase{
	{
		Name:   "scale_2x",
		Path:   horizontalLineCentered(-12, 0, 12),
		Width:  64,
		Height: 64,
		Stroke: solid(3),
		CTM:    matrix.Scale(2, 2).Translate(32, 32),
	},
	{
		Name:   "scale_half",
		Path:   horizontalLineCentered(-48, 0, 48),
		Width:  64,
		Height: 64,
		Stroke: dashed(12, 16, 16, 0),
		CTM:    matrix.Scale(0.5, 0.5).Translate(32, 32),
	},
	{
		Name:   "rotate_45deg",
		Path:   horizontalLineCentered(-20, 0, 20),
		Width:  64,
		Height: 64,
		Stroke: withCap(solid(6), graphics.LineCapSquare),
		CTM:    matrix.RotateDeg(45).Translate(32, 32),
	},
	{
		Name:   "rotate_90deg",
		Path:   horizontalLineCentered(-20, 0, 20),
		Width:  64,
		Height: 64,
		Stroke: dashed(4, 5, 3, 0),
		CTM:    matrix.RotateDeg(90).Translate(32, 32),
	},
	{
		Name:   "scale_2x_1y",
		Path:   cornerCentered(0, 8, math.Pi/2),
		Width:  128,
		Height: 64,
		Stroke: withJoin(solid(4), graphics.LineJoinRound),
		CTM:    matrix.Scale(2, 1).Translate(64, 32),
	},
	{
		Name:   "shear_horizontal",
		Path:   horizontalLineCentered(-16, 0, 16),
		Width:  64,
		Height: 64,
		Stroke: withCap(solid(8), graphics.LineCapRound),
		CTM:    matrix.Matrix{1, 0, 0.5, 1, 0, 0}.Translate(32, 32),
	},
	{
		// flips the orientation of every triangle
		Name:   "mirror",
		Path:   cornerCentered(0, 8, math.Pi/3),
		Width:  64,
		Height: 64,
		Stroke: trimmed(4, 0, 0.7, 0),
		CTM:    matrix.Scale(-1, 1).Translate(32, 32),
	},
}

// horizontalLineCentered creates a horizontal line at height y.
func horizontalLineCentered(x1, y, x2 float64) path.Path {
	return horizontalLine(x1, y, x2)
}

// cornerCentered creates a corner path with its apex at (cx, cy) and the
// given opening angle.
func cornerCentered(cx, cy float64, angle float64) path.Path {
	const length = 20.0
	halfAngle := angle / 2
	dx := length * math.Sin(halfAngle)
	dy := length * math.Cos(halfAngle)
	return corner(cx-dx, cy-dy, cx, cy, cx+dx, cy-dy)
}
