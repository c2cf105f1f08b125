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
	"maps"
	"math"
	"slices"
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/ribbon/testcases"
)

func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

// displaced returns all mesh vertices after the displacement stage.
func displaced(m *Mesh, thickness float64) []vec.Vec2 {
	res := make([]vec.Vec2, len(m.Vertices))
	for i, v := range m.Vertices {
		res[i], _ = Displace(v, thickness)
	}
	return res
}

func bounds(pts []vec.Vec2) (xMin, yMin, xMax, yMax float64) {
	xMin, yMin = math.Inf(1), math.Inf(1)
	xMax, yMax = math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		xMin, xMax = min(xMin, p.X), max(xMax, p.X)
		yMin, yMax = min(yMin, p.Y), max(yMax, p.Y)
	}
	return
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func checkIndices(t *testing.T, m *Mesh) {
	t.Helper()
	if len(m.Indices)%3 != 0 {
		t.Fatalf("%d indices, not a triangle list", len(m.Indices))
	}
	for _, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			t.Fatalf("index %d out of range (%d vertices)", idx, len(m.Vertices))
		}
	}
}

func TestMeshStraightLine(t *testing.T) {
	m := NewMeshBuilder().Build(linePath(pt(0, 0), pt(10, 0)))
	checkIndices(t, m)

	if len(m.Vertices) != 4 || m.Triangles() != 2 {
		t.Fatalf("got %d vertices and %d triangles, want 4 and 2",
			len(m.Vertices), m.Triangles())
	}
	wantDist := []float64{0, 0, 10, 10}
	wantMiter := []float64{1, -1, 1, -1}
	for i, v := range m.Vertices {
		if v.U.Distance != wantDist[i] || v.U.Total != 10 {
			t.Errorf("vertex %d: lineU %+v", i, v.U)
		}
		if v.Miter != wantMiter[i] {
			t.Errorf("vertex %d: miter %g, want %g", i, v.Miter, wantMiter[i])
		}
		if v.Normal != pt(0, 1) {
			t.Errorf("vertex %d: normal %v, want (0, 1)", i, v.Normal)
		}
	}

	// the cross-section has exactly the stroke thickness
	for _, thickness := range []float64{1, 4, 7.5} {
		d := displaced(m, thickness)
		for i := 0; i < len(d); i += 2 {
			if w := d[i].Sub(d[i+1]).Length(); !near(w, thickness) {
				t.Errorf("thickness %g: pair %d has width %g", thickness, i/2, w)
			}
		}
	}
}

func TestMeshDistances(t *testing.T) {
	m := NewMeshBuilder().Build(linePath(pt(0, 0), pt(3, 0), pt(3, 4), pt(9, 12)))
	checkIndices(t, m)

	const total = 3 + 4 + 10
	prev := 0.0
	for i, v := range m.Vertices {
		if v.U.Total != total {
			t.Errorf("vertex %d: total %g, want %d", i, v.U.Total, total)
		}
		if v.U.Distance < prev {
			t.Errorf("vertex %d: distance %g decreases", i, v.U.Distance)
		}
		prev = v.U.Distance
	}
	if m.Vertices[0].U.Distance != 0 {
		t.Errorf("first distance %g, want 0", m.Vertices[0].U.Distance)
	}
	if last := m.Vertices[len(m.Vertices)-1].U.Distance; !near(last, total) {
		t.Errorf("last distance %g, want %d", last, total)
	}
}

func TestMeshSubpathTotals(t *testing.T) {
	two := func(yield func(path.Command, []vec.Vec2) bool) {
		_ = yield(path.CmdMoveTo, []vec.Vec2{pt(0, 0)}) &&
			yield(path.CmdLineTo, []vec.Vec2{pt(10, 0)}) &&
			yield(path.CmdMoveTo, []vec.Vec2{pt(0, 5)}) &&
			yield(path.CmdLineTo, []vec.Vec2{pt(5, 5)})
	}
	m := NewMeshBuilder().Build(two)
	checkIndices(t, m)

	if len(m.Vertices) != 8 || m.Triangles() != 4 {
		t.Fatalf("got %d vertices and %d triangles, want 8 and 4",
			len(m.Vertices), m.Triangles())
	}
	for i, v := range m.Vertices {
		want := LineU{Total: 10}
		if i >= 4 {
			want.Total = 5
		}
		if i%4 >= 2 {
			want.Distance = want.Total
		}
		if v.U != want {
			t.Errorf("vertex %d: lineU %+v, want %+v", i, v.U, want)
		}
	}

	// no triangle connects the two strips
	for tri := 0; tri < len(m.Indices); tri += 3 {
		lo := m.Indices[tri] < 4
		for _, idx := range m.Indices[tri : tri+3] {
			if (idx < 4) != lo {
				t.Errorf("triangle %d spans both subpaths", tri/3)
			}
		}
	}
}

func TestMeshMiterJoin(t *testing.T) {
	b := NewMeshBuilder()
	m := b.Build(linePath(pt(0, 0), pt(10, 0), pt(10, 10)))
	checkIndices(t, m)

	if len(m.Vertices) != 6 {
		t.Fatalf("got %d vertices, want 6", len(m.Vertices))
	}
	join := m.Vertices[2]
	if !near(join.Miter, math.Sqrt2) {
		t.Errorf("miter %g, want √2", join.Miter)
	}
	d := displaced(m, 2)
	if !near(d[2].X, 9) || !near(d[2].Y, 1) {
		t.Errorf("inner corner at %v, want (9, 1)", d[2])
	}
	if !near(d[3].X, 11) || !near(d[3].Y, -1) {
		t.Errorf("outer corner at %v, want (11, -1)", d[3])
	}
}

func TestMeshMiterLimit(t *testing.T) {
	// a 10° turn needs a miter of about 11.5
	angle := 170 * math.Pi / 180
	sharp := linePath(pt(0, 0), pt(10, 0), pt(10+10*math.Cos(angle), 10*math.Sin(angle)))

	b := NewMeshBuilder()
	m := b.Build(sharp)
	if len(m.Vertices) != 8 {
		t.Errorf("limit %g: got %d vertices, want 8 (bevel)", b.MiterLimit, len(m.Vertices))
	}

	b.MiterLimit = 12
	m = b.Build(sharp)
	if len(m.Vertices) != 6 {
		t.Errorf("limit %g: got %d vertices, want 6 (miter)", b.MiterLimit, len(m.Vertices))
	}
}

func TestMeshJoins(t *testing.T) {
	corner := linePath(pt(0, 0), pt(10, 0), pt(10, 10))

	b := NewMeshBuilder()
	b.Join = graphics.LineJoinBevel
	bevel := b.Build(corner)
	if len(bevel.Vertices) != 8 {
		t.Errorf("bevel: got %d vertices, want 8", len(bevel.Vertices))
	}

	b.Join = graphics.LineJoinRound
	b.Width = 2
	round := b.Build(corner)
	checkIndices(t, round)
	if len(round.Vertices) <= len(bevel.Vertices) {
		t.Errorf("round: got %d vertices, want more than bevel", len(round.Vertices))
	}
	// This is a left turn, so the + side is inside.  Outer vertices lie
	// on the circle around the corner, inner ones at the inner miter point.
	d := displaced(round, 2)
	for i := 2; i < len(d)-2; i++ {
		v := round.Vertices[i]
		if !near(math.Abs(v.Miter), 1) {
			t.Errorf("vertex %d: miter %g", i, v.Miter)
		}
		if i%2 == 0 {
			if !near(d[i].X, 9) || !near(d[i].Y, 1) {
				t.Errorf("inner vertex %d at %v, want (9, 1)", i, d[i])
			}
		} else if r := d[i].Sub(pt(10, 0)).Length(); !near(r, 1) {
			t.Errorf("outer vertex %d at distance %g from the corner, want 1", i, r)
		}
	}
}

// coveredArea returns the summed area of all displaced triangles.
func coveredArea(m *Mesh, thickness float64) float64 {
	d := displaced(m, thickness)
	area := 0.0
	for t := 0; t+2 < len(m.Indices); t += 3 {
		p0, p1, p2 := d[m.Indices[t]], d[m.Indices[t+1]], d[m.Indices[t+2]]
		e1, e2 := p1.Sub(p0), p2.Sub(p0)
		area += math.Abs(e1.X*e2.Y-e1.Y*e2.X) / 2
	}
	return area
}

func TestMeshJoinsDoNotOverlap(t *testing.T) {
	// Two 10×2 bands meeting at a right angle.  Without overlap, the
	// triangles add up to the area of the outline: 39 for the bands, plus
	// the outer corner piece.
	corner := linePath(pt(0, 0), pt(10, 0), pt(10, 10))
	for _, right := range []bool{false, true} {
		path := corner
		if right {
			path = linePath(pt(0, 0), pt(10, 0), pt(10, -10))
		}
		cases := []struct {
			join     graphics.LineJoinStyle
			min, max float64
		}{
			{graphics.LineJoinMiter, 40, 40},
			{graphics.LineJoinBevel, 39.5, 39.5},
			{graphics.LineJoinRound, 39.5, 39 + math.Pi/4},
		}
		for _, c := range cases {
			b := NewMeshBuilder()
			b.Join = c.join
			b.Width = 2
			area := coveredArea(b.Build(path), 2)
			if area < c.min-1e-9 || area > c.max+1e-9 {
				t.Errorf("join %d, right=%t: area %g, want [%g, %g]", c.join, right, area, c.min, c.max)
			}
		}
	}
}

func TestMeshClosedAreas(t *testing.T) {
	// A closed square ribbon must not cover its start corner twice.
	square := closedPath(pt(0, 0), pt(10, 0), pt(10, 10), pt(0, 10))
	want := map[graphics.LineJoinStyle]float64{
		graphics.LineJoinMiter: 12*12 - 8*8,
		graphics.LineJoinBevel: 12*12 - 8*8 - 4*0.5,
	}
	for join, area := range want {
		b := NewMeshBuilder()
		b.Join = join
		m := b.Build(square)
		if got := coveredArea(m, 2); !near(got, area) {
			t.Errorf("join %d: area %g, want %g", join, got, area)
		}
	}
}

func TestMeshCusp(t *testing.T) {
	m := NewMeshBuilder().Build(linePath(pt(0, 0), pt(10, 0), pt(0, 0)))
	checkIndices(t, m)
	if len(m.Vertices) != 8 {
		t.Fatalf("got %d vertices, want 8", len(m.Vertices))
	}
	if m.Vertices[2].Normal != pt(0, 1) || m.Vertices[4].Normal != pt(0, -1) {
		t.Errorf("cusp normals %v, %v", m.Vertices[2].Normal, m.Vertices[4].Normal)
	}
}

func TestMeshCaps(t *testing.T) {
	line := linePath(pt(0, 0), pt(10, 0))
	cases := []struct {
		cap        graphics.LineCapStyle
		xMin, xMax float64
	}{
		{graphics.LineCapButt, 0, 10},
		{graphics.LineCapSquare, -1, 11},
		{graphics.LineCapRound, -1, 11},
	}
	for _, c := range cases {
		b := NewMeshBuilder()
		b.Cap = c.cap
		b.Width = 2
		m := b.Build(line)
		checkIndices(t, m)

		xMin, yMin, xMax, yMax := bounds(displaced(m, 2))
		if !near(xMin, c.xMin) || !near(xMax, c.xMax) {
			t.Errorf("cap %d: x range [%g, %g], want [%g, %g]", c.cap, xMin, xMax, c.xMin, c.xMax)
		}
		if !near(yMin, -1) || !near(yMax, 1) {
			t.Errorf("cap %d: y range [%g, %g], want [-1, 1]", c.cap, yMin, yMax)
		}

		for i, v := range m.Vertices {
			want := 0.0
			if v.Position.X > 5 {
				want = 10
			}
			if v.U.Distance != want {
				t.Errorf("cap %d, vertex %d: distance %g, want %g", c.cap, i, v.U.Distance, want)
			}
		}
	}
}

func TestMeshRoundCapRadius(t *testing.T) {
	b := NewMeshBuilder()
	b.Cap = graphics.LineCapRound
	b.Width = 40
	m := b.Build(linePath(pt(0, 0), pt(100, 0)))

	d := displaced(m, 40)
	for i, p := range d {
		end := pt(0, 0)
		if m.Vertices[i].Position.X > 50 {
			end = pt(100, 0)
		}
		if r := p.Sub(end).Length(); r > 20+1e-9 {
			t.Errorf("vertex %d at distance %g from the end point", i, r)
		}
	}
}

func TestMeshClosed(t *testing.T) {
	square := closedPath(pt(0, 0), pt(10, 0), pt(10, 10), pt(0, 10))
	m := NewMeshBuilder().Build(square)
	checkIndices(t, m)

	if len(m.Vertices) != 10 || m.Triangles() != 8 {
		t.Fatalf("got %d vertices and %d triangles, want 10 and 8",
			len(m.Vertices), m.Triangles())
	}
	first, last := m.Vertices[0], m.Vertices[len(m.Vertices)-1]
	if first.U.Distance != 0 || last.U.Distance != 40 || first.U.Total != 40 {
		t.Errorf("closed path: first %+v, last %+v", first.U, last.U)
	}
	// the ribbon starts and ends with the same cross-section
	if first.Normal != m.Vertices[len(m.Vertices)-2].Normal || first.Miter != m.Vertices[len(m.Vertices)-2].Miter {
		t.Error("closing join differs from the opening join")
	}
	if !near(first.Miter, math.Sqrt2) {
		t.Errorf("opening join miter %g, want √2", first.Miter)
	}
}

func TestMeshDegenerate(t *testing.T) {
	single := func(yield func(path.Command, []vec.Vec2) bool) {
		yield(path.CmdMoveTo, []vec.Vec2{pt(5, 5)})
	}
	cases := map[string]path.Path{
		"move_only":   single,
		"zero_length": linePath(pt(5, 5), pt(5, 5)),
		"closed_dot":  closedPath(pt(5, 5)),
		"empty":       func(yield func(path.Command, []vec.Vec2) bool) {},
	}
	for name, p := range cases {
		m := NewMeshBuilder().Build(p)
		if len(m.Vertices) != 0 || len(m.Indices) != 0 {
			t.Errorf("%s: got %d vertices, want none", name, len(m.Vertices))
		}
	}

	// zero-length pieces inside a path are skipped
	m := NewMeshBuilder().Build(linePath(pt(0, 0), pt(0, 0), pt(10, 0), pt(10, 0)))
	if len(m.Vertices) != 4 {
		t.Errorf("got %d vertices, want 4", len(m.Vertices))
	}
}

func TestMeshCurve(t *testing.T) {
	quad := func(yield func(path.Command, []vec.Vec2) bool) {
		_ = yield(path.CmdMoveTo, []vec.Vec2{pt(0, 0)}) &&
			yield(path.CmdQuadTo, []vec.Vec2{pt(50, 100), pt(100, 0)})
	}
	b := NewMeshBuilder()
	m := b.Build(quad)
	checkIndices(t, m)

	total := m.Vertices[0].U.Total
	chord := 100.0
	hull := 2 * math.Hypot(50, 100)
	if total <= chord || total >= hull {
		t.Errorf("curve length %g outside (%g, %g)", total, chord, hull)
	}
	if len(m.Vertices) <= 4 {
		t.Errorf("curve was not subdivided (%d vertices)", len(m.Vertices))
	}

	// a finer device resolution gives more segments
	coarse := len(m.Vertices)
	b.CTM = matrix.Scale(4, 4)
	if fine := len(b.Build(quad).Vertices); fine <= coarse {
		t.Errorf("scaled CTM: %d vertices, want more than %d", fine, coarse)
	}
}

func TestMeshAppendTo(t *testing.T) {
	b := NewMeshBuilder()
	m := b.Build(linePath(pt(0, 0), pt(10, 0)))
	n := len(m.Vertices)

	b.AppendTo(m, linePath(pt(0, 5), pt(20, 5)))
	checkIndices(t, m)
	if len(m.Vertices) != 2*n || m.Triangles() != 4 {
		t.Fatalf("got %d vertices and %d triangles", len(m.Vertices), m.Triangles())
	}
	for _, idx := range m.Indices[6:] {
		if int(idx) < n {
			t.Errorf("appended triangle refers to vertex %d of the first strip", idx)
		}
	}
	if m.Vertices[n].U.Total != 20 {
		t.Errorf("appended total %g, want 20", m.Vertices[n].U.Total)
	}

	m.Reset()
	if len(m.Vertices) != 0 || m.Triangles() != 0 {
		t.Error("Reset did not empty the mesh")
	}
}

func TestMeshAllCases(t *testing.T) {
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			b, _ := caseParams(tc)
			m := b.Build(tc.Path)
			checkIndices(t, m)
			for i, v := range m.Vertices {
				if v.U.Distance < -1e-9 || v.U.Distance > v.U.Total+1e-9 {
					t.Errorf("%s_%s vertex %d: lineU %+v", category, tc.Name, i, v.U)
					break
				}
			}
		}
	}
}
