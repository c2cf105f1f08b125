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

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// LineU is the distance information carried by every vertex and
// interpolated across each triangle.
type LineU struct {
	Distance float64 // distance from the start of the subpath
	Total    float64 // total length of the subpath
}

// Vertex is one corner of a ribbon mesh.
type Vertex struct {
	// Position is the centreline point in user space.
	Position vec.Vec2

	// Z is the depth coordinate, passed through the displacement stage.
	Z float64

	// Normal is the cross-section direction at this vertex.  It has unit
	// length, except for the inner vertices of bevel and round joins which
	// reach the inner miter point.
	Normal vec.Vec2

	// Miter is the signed displacement factor.  The sign selects the side
	// of the centreline, the magnitude compensates for joins (1 on straight
	// segments).
	Miter float64

	// U holds the distance along the stroke.
	U LineU
}

// Mesh is a triangle list describing one or more ribbons.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32 // three indices per triangle
}

// Triangles returns the number of triangles in the mesh.
func (m *Mesh) Triangles() int {
	return len(m.Indices) / 3
}

// Reset empties the mesh, keeping the allocated storage.
func (m *Mesh) Reset() {
	m.Vertices = m.Vertices[:0]
	m.Indices = m.Indices[:0]
}

// strokeSegment represents a line segment in user coordinates
type strokeSegment struct {
	A, B vec.Vec2 // endpoints in user space
	T    vec.Vec2 // unit tangent (A→B direction)
	N    vec.Vec2 // unit normal (90° CCW from T)
	Len  float64  // length of the segment
}

// MeshBuilder converts paths into ribbon meshes.  The thickness of the
// ribbon is not part of the mesh: it is applied later by the displacement
// stage, so one mesh can be drawn at any width.
//
// A MeshBuilder reuses internal buffers between calls and is not safe for
// concurrent use.
type MeshBuilder struct {
	// Join sets the style for corners (miter, round, or bevel).
	Join graphics.LineJoinStyle

	// Cap sets the style for the ends of open subpaths.
	Cap graphics.LineCapStyle

	// MiterLimit is the longest miter, as a multiple of half the
	// thickness, before a miter join is drawn as a bevel.  Must be at
	// least 1.
	MiterLimit float64

	// Flatness controls curve approximation accuracy in device pixels.
	// Must be positive.
	Flatness float64

	// CTM maps user space to device space.  It is only used to choose the
	// number of segments for curves, round joins and round caps.
	CTM matrix.Matrix

	// Width is the expected stroke thickness, used to subdivide round
	// joins and caps.  If zero, a fixed subdivision is used.
	Width float64

	segs          []strokeSegment // all segments from all subpaths, contiguous
	segsOffsets   []int           // start index of each subpath in segs
	subpathClosed []bool          // whether each subpath is closed
	degenerate    int             // subpaths without orientation
	stripStart    int             // first vertex of the current strip
}

// NewMeshBuilder returns a MeshBuilder with miter joins, butt caps and
// the usual PDF defaults for the remaining parameters.
func NewMeshBuilder() *MeshBuilder {
	return &MeshBuilder{
		Join:       graphics.LineJoinMiter,
		Cap:        graphics.LineCapButt,
		MiterLimit: defaultMiterLimit,
		Flatness:   defaultFlatness,
		CTM:        matrix.Identity,
	}
}

// Build returns a new mesh for the path.
func (b *MeshBuilder) Build(p path.Path) *Mesh {
	m := &Mesh{}
	b.AppendTo(m, p)
	return m
}

// AppendTo adds the ribbons for all subpaths of p to m.  Every subpath
// forms its own strip, with distances measured from the subpath start.
// Subpaths which consist of a single point produce no geometry.
func (b *MeshBuilder) AppendTo(m *Mesh, p path.Path) {
	b.flattenPath(p)

	v0, t0 := len(m.Vertices), m.Triangles()
	for i := range b.segsOffsets {
		b.buildStrip(m, b.getSubpathSegments(i), b.subpathClosed[i])
	}

	Logger().Debug("ribbon mesh built",
		"subpaths", len(b.segsOffsets),
		"degenerate", b.degenerate,
		"vertices", len(m.Vertices)-v0,
		"triangles", m.Triangles()-t0)
}

// getSubpathSegments returns the segments for subpath i as a slice into segs.
func (b *MeshBuilder) getSubpathSegments(i int) []strokeSegment {
	start := b.segsOffsets[i]
	var end int
	if i+1 < len(b.segsOffsets) {
		end = b.segsOffsets[i+1]
	} else {
		end = len(b.segs)
	}
	return b.segs[start:end]
}

// flattenPath walks the path, flattens curves, and populates the flattening
// buffers with precomputed segment geometry.
func (b *MeshBuilder) flattenPath(p path.Path) {
	b.segs = b.segs[:0]
	b.segsOffsets = b.segsOffsets[:0]
	b.subpathClosed = b.subpathClosed[:0]
	b.degenerate = 0

	var currentPt vec.Vec2
	var subpathStartPt vec.Vec2
	subpathStartIdx := 0
	inSubpath := false
	sawDrawingCmd := false

	endSubpath := func(closed bool) {
		if len(b.segs) == subpathStartIdx {
			if sawDrawingCmd || closed {
				b.degenerate++
			}
			return
		}
		b.segsOffsets = append(b.segsOffsets, subpathStartIdx)
		b.subpathClosed = append(b.subpathClosed, closed)
	}

	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			if inSubpath {
				endSubpath(false)
			}
			currentPt = pts[0]
			subpathStartPt = currentPt
			subpathStartIdx = len(b.segs)
			inSubpath = true
			sawDrawingCmd = false

		case path.CmdLineTo:
			if !inSubpath {
				continue
			}
			sawDrawingCmd = true
			b.addStrokeSegment(currentPt, pts[0])
			currentPt = pts[0]

		case path.CmdQuadTo:
			if !inSubpath {
				continue
			}
			sawDrawingCmd = true
			b.flattenQuadratic(currentPt, pts[0], pts[1], b.addStrokeSegment)
			currentPt = pts[1]

		case path.CmdCubeTo:
			if !inSubpath {
				continue
			}
			sawDrawingCmd = true
			b.flattenCubic(currentPt, pts[0], pts[1], pts[2], b.addStrokeSegment)
			currentPt = pts[2]

		case path.CmdClose:
			if inSubpath {
				if currentPt != subpathStartPt {
					b.addStrokeSegment(currentPt, subpathStartPt)
				}
				endSubpath(true)
				currentPt = subpathStartPt
				subpathStartIdx = len(b.segs)
				inSubpath = false
				sawDrawingCmd = false
			}
		}
	}

	if inSubpath {
		endSubpath(false)
	}
}

// addStrokeSegment adds a line segment to the flattening buffer.
func (b *MeshBuilder) addStrokeSegment(from, to vec.Vec2) {
	d := to.Sub(from)
	length := d.Length()
	if length < zeroLengthThreshold {
		return // skip degenerate segment
	}
	t := d.Mul(1 / length)         // unit tangent
	n := vec.Vec2{X: -t.Y, Y: t.X} // unit normal (90° CCW)
	b.segs = append(b.segs, strokeSegment{A: from, B: to, T: t, N: n, Len: length})
}

// transformLinear applies only the 2×2 linear part of CTM to a vector.
func (b *MeshBuilder) transformLinear(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: b.CTM[0]*v.X + b.CTM[2]*v.Y,
		Y: b.CTM[1]*v.X + b.CTM[3]*v.Y,
	}
}

// flattenQuadratic flattens a quadratic Bézier and calls emit for each line segment.
// p0 is the start point (current point), p1 is control, p2 is endpoint.
func (b *MeshBuilder) flattenQuadratic(p0, p1, p2 vec.Vec2, emit func(from, to vec.Vec2)) {
	// Compute error vector: e = (P0 - 2*P1 + P2) / 4
	e := p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)
	errDev := b.transformLinear(e).Length()

	n := 1
	if errDev > b.Flatness {
		n = int(math.Ceil(math.Sqrt(errDev / b.Flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		// B(t) = (1-t)²P0 + 2(1-t)tP1 + t²P2
		omt := 1 - t
		pt := p0.Mul(omt * omt).Add(p1.Mul(2 * omt * t)).Add(p2.Mul(t * t))
		emit(prev, pt)
		prev = pt
	}
}

// flattenCubic flattens a cubic Bézier and calls emit for each line segment.
// p0 is start, p1/p2 are controls, p3 is endpoint.
func (b *MeshBuilder) flattenCubic(p0, p1, p2, p3 vec.Vec2, emit func(from, to vec.Vec2)) {
	d1 := p0.Sub(p1.Mul(2)).Add(p2) // P0 - 2*P1 + P2
	d2 := p1.Sub(p2.Mul(2)).Add(p3) // P1 - 2*P2 + P3

	// Wang's formula: n = ceil(sqrt(3 * m / (4 * ε)))
	mDev := max(b.transformLinear(d1).Length(), b.transformLinear(d2).Length())
	n := 1
	if mDev > 0 {
		nFloat := math.Sqrt(3 * mDev / (4 * b.Flatness))
		if nFloat > 1 {
			n = int(math.Ceil(nFloat))
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		// B(t) = (1-t)³P0 + 3(1-t)²tP1 + 3(1-t)t²P2 + t³P3
		omt := 1 - t
		omt2 := omt * omt
		t2 := t * t
		pt := p0.Mul(omt2 * omt).Add(p1.Mul(3 * omt2 * t)).Add(p2.Mul(3 * omt * t2)).Add(p3.Mul(t2 * t))
		emit(prev, pt)
		prev = pt
	}
}

// buildStrip emits the vertex pairs and triangles for one subpath.
func (b *MeshBuilder) buildStrip(m *Mesh, segs []strokeSegment, closed bool) {
	total := 0.0
	for i := range segs {
		total += segs[i].Len
	}

	b.stripStart = len(m.Vertices)
	first := &segs[0]
	last := &segs[len(segs)-1]

	if closed {
		// The full join is emitted at the end of the strip.  The start
		// only needs the pair through which the join leaves.
		nPlus, nMinus, miter := b.joinExit(last, first)
		b.addPair(m, first.A, nPlus, nMinus, miter, LineU{Distance: 0, Total: total})
	} else {
		b.addCap(m, first.A, first.N, first.T.Mul(-1), LineU{Distance: 0, Total: total}, true)
	}

	dist := 0.0
	for i := range segs {
		seg := &segs[i]
		dist += seg.Len
		u := LineU{Distance: dist, Total: total}
		switch {
		case i < len(segs)-1:
			b.addJoin(m, seg.B, seg, &segs[i+1], u)
		case closed:
			b.addJoin(m, seg.B, seg, first, u)
		default:
			b.addCap(m, seg.B, seg.N, seg.T, u, false)
		}
	}
}

// addPair appends two vertices at centreline point p, one on each side,
// and connects them to the previous pair of the current strip.
func (b *MeshBuilder) addPair(m *Mesh, p, nPlus, nMinus vec.Vec2, miter float64, u LineU) {
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices,
		Vertex{Position: p, Normal: nPlus, Miter: miter, U: u},
		Vertex{Position: p, Normal: nMinus, Miter: -miter, U: u},
	)
	if int(base)-b.stripStart >= 2 {
		a, c := base-2, base-1 // previous pair: +, -
		m.Indices = append(m.Indices,
			a, c, base,
			c, base+1, base,
		)
	}
}

// addJoin emits the vertex pairs at point p where segment s1 turns into
// segment s2.
//
// Bevel and round joins are fans around the inner miter point: the outer
// vertices sweep from s1.N to s2.N while all inner vertices sit at the
// point where the two inner edges meet, so that no triangles overlap.
func (b *MeshBuilder) addJoin(m *Mesh, p vec.Vec2, s1, s2 *strokeSegment, u LineU) {
	cosTheta := s1.T.Dot(s2.T)
	sinTheta := s1.T.X*s2.T.Y - s1.T.Y*s2.T.X

	// Nearly collinear: a single pair with the shared normal
	if math.Abs(sinTheta) < collinearityThreshold && cosTheta > 0 {
		b.addPair(m, p, s1.N, s1.N, 1, u)
		return
	}

	// Cusp: the path doubles back, end one segment and start the next
	if cosTheta < cuspCosineThreshold {
		b.addPair(m, p, s1.N, s1.N, 1, u)
		b.addPair(m, p, s2.N, s2.N, 1, u)
		return
	}

	bisector, miter, ok := b.miter(s1, s2)
	if b.Join == graphics.LineJoinMiter && ok {
		b.addPair(m, p, bisector, bisector, miter, u)
		return
	}

	steps := 1
	angle := math.Atan2(sinTheta, cosTheta)
	if b.Join == graphics.LineJoinRound {
		steps = b.arcSteps(math.Abs(angle))
	}
	for i := range steps + 1 {
		var outer vec.Vec2
		switch i {
		case 0:
			outer = s1.N
		case steps:
			outer = s2.N
		default:
			outer = rotate(s1.N, angle*float64(i)/float64(steps))
		}
		b.addFanPair(m, p, outer, bisector.Mul(miter), ok, sinTheta > 0, u)
	}
}

// joinExit returns the last vertex pair which addJoin emits for the turn
// from s1 into s2.
func (b *MeshBuilder) joinExit(s1, s2 *strokeSegment) (nPlus, nMinus vec.Vec2, miter float64) {
	cosTheta := s1.T.Dot(s2.T)
	sinTheta := s1.T.X*s2.T.Y - s1.T.Y*s2.T.X
	switch {
	case math.Abs(sinTheta) < collinearityThreshold && cosTheta > 0:
		return s1.N, s1.N, 1
	case cosTheta < cuspCosineThreshold:
		return s2.N, s2.N, 1
	}

	bisector, m, ok := b.miter(s1, s2)
	switch {
	case b.Join == graphics.LineJoinMiter && ok:
		return bisector, bisector, m
	case !ok:
		return s2.N, s2.N, 1
	case sinTheta > 0:
		return bisector.Mul(m), s2.N, 1
	default:
		return s2.N, bisector.Mul(m), 1
	}
}

// miter returns the unit bisector of the normals of s1 and s2 and the
// miter length in units of half the thickness, which is 1/cos(φ/2) for
// the angle φ between the normals.  The result is only valid if ok is
// true, i.e. if the miter does not exceed the miter limit.
func (b *MeshBuilder) miter(s1, s2 *strokeSegment) (bisector vec.Vec2, miter float64, ok bool) {
	bisector = s1.N.Add(s2.N)
	bisectorLen := bisector.Length()
	if bisectorLen <= zeroLengthThreshold {
		return vec.Vec2{}, 0, false
	}
	bisector = bisector.Mul(1 / bisectorLen)
	cosHalf := bisector.Dot(s1.N)
	const miterEpsilon = 1e-10
	if cosHalf <= 0 || 1/cosHalf > b.MiterLimit+miterEpsilon {
		return vec.Vec2{}, 0, false
	}
	return bisector, 1 / cosHalf, true
}

// addFanPair appends one pair of a bevel or round join.  The outer vertex
// is displaced along outer, the inner one to the inner miter point.  The
// inner side is the + side for left turns.  Without a usable inner miter
// point both vertices use the outer normal.
func (b *MeshBuilder) addFanPair(m *Mesh, p, outer, inner vec.Vec2, hasInner, left bool, u LineU) {
	switch {
	case !hasInner:
		b.addPair(m, p, outer, outer, 1, u)
	case left:
		b.addPair(m, p, inner, outer, 1, u)
	default:
		b.addPair(m, p, outer, inner, 1, u)
	}
}

// addCap emits the vertex pairs for the end of an open subpath at point p.
// n is the normal of the end segment, out is the unit vector pointing away
// from the line.  For the start cap, the cap pairs come before the first
// segment pair; for the end cap they come after.
func (b *MeshBuilder) addCap(m *Mesh, p, n, out vec.Vec2, u LineU, isStart bool) {
	switch b.Cap {
	case graphics.LineCapSquare:
		// The outer pair lies half a thickness beyond p.  Both corners are
		// reached through diagonal normals scaled by √2.
		diagPlus := n.Add(out).Mul(1 / math.Sqrt2)
		diagMinus := n.Sub(out).Mul(1 / math.Sqrt2)
		if isStart {
			b.addPair(m, p, diagPlus, diagMinus, math.Sqrt2, u)
			b.addPair(m, p, n, n, 1, u)
		} else {
			b.addPair(m, p, n, n, 1, u)
			b.addPair(m, p, diagPlus, diagMinus, math.Sqrt2, u)
		}

	case graphics.LineCapRound:
		// Chords of a half disk, parallel to the end of the line.  The
		// chord at angle θ connects p + d(n cosθ + out sinθ) and
		// p - d(n cosθ - out sinθ).
		steps := b.arcSteps(math.Pi / 2)
		for i := range steps + 1 {
			k := i
			if isStart {
				k = steps - i
			}
			theta := math.Pi / 2 * float64(k) / float64(steps)
			cos, sin := math.Cos(theta), math.Sin(theta)
			nPlus := n.Mul(cos).Add(out.Mul(sin))
			nMinus := n.Mul(cos).Sub(out.Mul(sin))
			b.addPair(m, p, nPlus, nMinus, 1, u)
		}

	default:
		// Butt cap: the ribbon ends at p
		b.addPair(m, p, n, n, 1, u)
	}
}

// arcSteps returns the number of segments for an arc with the given sweep
// angle on a circle of radius Width/2.
func (b *MeshBuilder) arcSteps(sweep float64) int {
	radius := b.Width / 2
	devRadius := max(
		b.transformLinear(vec.Vec2{X: radius, Y: 0}).Length(),
		b.transformLinear(vec.Vec2{X: 0, Y: radius}).Length(),
	)

	// For a chord subtending angle θ on a circle of radius r, the maximum
	// deviation is r*(1 - cos(θ/2)).  Solving for the flatness tolerance
	// gives θ = 2*acos(1 - ε/r).
	angleStep := math.Pi / 8
	if devRadius > b.Flatness {
		angleStep = 2 * math.Acos(1-b.Flatness/devRadius)
	}
	if angleStep <= 0 || math.IsNaN(angleStep) {
		angleStep = math.Pi / 8
	}
	return max(int(math.Ceil(sweep/angleStep)), 1)
}

// rotate rotates v counter-clockwise by angle radians.
func rotate(v vec.Vec2, angle float64) vec.Vec2 {
	cos, sin := math.Cos(angle), math.Sin(angle)
	return vec.Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Default values for mesh builder parameters.
const (
	// defaultFlatness is the default curve flattening tolerance in device
	// pixels. Values of 0.25-1.0 are typical; 0.25 is below the threshold
	// of visual perception.
	defaultFlatness = 0.25

	// defaultMiterLimit is the default miter limit, matching PDF/PostScript.
	// This converts joins to bevels when the interior angle is less than
	// approximately 11.5 degrees.
	defaultMiterLimit = 10.0
)

// Numerical tolerances for mesh construction.
const (
	// zeroLengthThreshold is the minimum length for a stroke segment.
	// Segments shorter than this are skipped.
	zeroLengthThreshold = 1e-10

	// collinearityThreshold is used to detect nearly collinear segments
	// where no join is needed.
	collinearityThreshold = 1e-6

	// cuspCosineThreshold is the cosine threshold for detecting cusps
	// (path doubling back on itself). cos(179.43°) ≈ -0.9999
	cuspCosineThreshold = -0.9999
)
