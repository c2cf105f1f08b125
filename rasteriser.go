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
	"cmp"
	"image"
	"math"
	"slices"

	"golang.org/x/image/draw"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// edge represents a line segment in device coordinates.
type edge struct {
	x0, y0 float64 // start point
	x1, y1 float64 // end point
	dxdy   float64 // (x1-x0)/(y1-y0), precomputed for x-intercept calculation
}

// plane is an affine function of device coordinates,
// f(x, y) = f0 + dx*(x-x0) + dy*(y-y0), clamped to [lo, hi].
//
// Pixel centres of partially covered pixels can lie outside the triangle.
// The clamp keeps the value at such points within the range spanned by the
// triangle's corners.
type plane struct {
	x0, y0 float64
	f0     float64
	dx, dy float64
	lo, hi float64
}

func (p *plane) at(x, y float64) float64 {
	return min(max(p.f0+p.dx*(x-p.x0)+p.dy*(y-p.y0), p.lo), p.hi)
}

// Stats summarises the work done by one call to [Rasteriser.Draw].
type Stats struct {
	Vertices   int // vertices displaced
	Triangles  int // triangles in the mesh
	Culled     int // triangles skipped because of the side setting
	Degenerate int // triangles with zero area in device space
	Fragments  int // pixels with non-zero coverage, summed over triangles
	Discarded  int // fragments removed by the alpha test
}

// Rasteriser draws ribbon meshes into images.
//
// Each triangle is displaced, transformed to device space and converted to
// exact area coverage.  The distance attribute is interpolated at pixel
// centres and shaded; coverage times opacity is accumulated into a
// single-channel layer which is finally composited over the destination in
// the diffuse colour.  The depth coordinate of vertices is ignored.
//
// The caller creates one instance and reuses it for many draws.
// Internal buffers grow as needed but never shrink.  A Rasteriser is not
// safe for concurrent use.
type Rasteriser struct {
	// CTM is the current transformation matrix (user space to device space).
	// Must be a non-singular matrix.
	CTM matrix.Matrix

	// Clip defines the output region in device coordinates.
	// Must be a non-empty rectangle with integer-aligned coordinates.
	Clip rect.Rect

	// Edge selects how dash boundaries are antialiased.
	Edge Edge

	// smallPathThreshold is the maximum bounding box area (in pixels) for
	// using 2D buffers (Approach A). Triangles with larger bounding boxes
	// use the active edge list (Approach B).
	smallPathThreshold int

	// Internal buffers (reused across calls)
	cover     []float32  // coverage accumulation: cover change per pixel; reused as output
	area      []float32  // coverage accumulation: area within pixel
	edges     []edge     // edge list for current triangle (device coordinates)
	activeIdx []int      // indices of active edges
	rowXMin   []int      // per-scanline minimum x with edge contribution
	rowXMax   []int      // per-scanline maximum x with edge contribution
	crossings []float64  // y values where edge crosses pixel boundaries
	dev       []vec.Vec2 // displaced vertices in device space
	layer     []float32  // per-draw opacity, indexed relative to region
	mask      *image.Alpha

	// Per-draw state used by shadeRow
	region   image.Rectangle
	params   *Params
	distance plane
	total    plane
	slope    float64
	stats    Stats
	emit     func(y, xMin int, coverage []float32)
}

// NewRasteriser creates a new Rasteriser with the given clip rectangle,
// the identity transformation and derivative-based antialiasing.
func NewRasteriser(clip rect.Rect) *Rasteriser {
	r := &Rasteriser{
		CTM:  matrix.Identity,
		Clip: clip,
		Edge: Edge{Mode: EdgeDerivative, Width: defaultAAEdge},

		smallPathThreshold: smallPathThreshold,
	}
	r.emit = r.shadeRow
	return r
}

// Reset resets the Rasteriser to its initial state with the given clip rectangle,
// preserving internal buffer capacity for reuse. This is equivalent to creating
// a new Rasteriser but without allocations if buffers are already large enough.
func (r *Rasteriser) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Edge = Edge{Mode: EdgeDerivative, Width: defaultAAEdge}

	r.cover = r.cover[:0]
	r.area = r.area[:0]
	r.edges = r.edges[:0]
	r.activeIdx = r.activeIdx[:0]
	r.rowXMin = r.rowXMin[:0]
	r.rowXMax = r.rowXMax[:0]
	r.crossings = r.crossings[:0]
	r.dev = r.dev[:0]
	r.layer = r.layer[:0]
	r.params = nil
	if r.emit == nil {
		r.emit = r.shadeRow
	}
}

// Draw renders the mesh with the given parameters into dst.  Only pixels
// inside both the clip rectangle and the bounds of dst are changed.
func (r *Rasteriser) Draw(dst draw.Image, m *Mesh, p Params) Stats {
	r.stats = Stats{Vertices: len(m.Vertices), Triangles: m.Triangles()}
	if r.emit == nil {
		r.emit = r.shadeRow
	}

	region, ok := r.displace(m, p.Thickness)
	if !ok {
		return r.stats
	}
	region = region.Intersect(dst.Bounds())
	if region.Empty() {
		return r.stats
	}
	r.region = region
	r.params = &p

	n := region.Dx() * region.Dy()
	r.layer = slices.Grow(r.layer[:0], n)[:n]
	clear(r.layer)

	for t := 0; t+2 < len(m.Indices); t += 3 {
		i0, i1, i2 := m.Indices[t], m.Indices[t+1], m.Indices[t+2]
		r.drawTriangle(m, i0, i1, i2, p.Side)
	}

	r.composite(dst, p.Diffuse)
	r.params = nil

	Logger().Debug("ribbon drawn",
		"vertices", r.stats.Vertices,
		"triangles", r.stats.Triangles,
		"culled", r.stats.Culled,
		"degenerate", r.stats.Degenerate,
		"fragments", r.stats.Fragments,
		"discarded", r.stats.Discarded)
	return r.stats
}

// displace runs the displacement stage on all vertices and returns the
// device-space bounding box, clamped to the clip rectangle.
func (r *Rasteriser) displace(m *Mesh, thickness float64) (image.Rectangle, bool) {
	r.dev = slices.Grow(r.dev[:0], len(m.Vertices))[:len(m.Vertices)]
	if len(m.Vertices) == 0 || len(m.Indices) < 3 {
		return image.Rectangle{}, false
	}

	devXMin, devYMin := math.Inf(1), math.Inf(1)
	devXMax, devYMax := math.Inf(-1), math.Inf(-1)
	for i, v := range m.Vertices {
		pos, _ := Displace(v, thickness)
		d := vec.Vec2{
			X: r.CTM[0]*pos.X + r.CTM[2]*pos.Y + r.CTM[4],
			Y: r.CTM[1]*pos.X + r.CTM[3]*pos.Y + r.CTM[5],
		}
		r.dev[i] = d
		devXMin = min(devXMin, d.X)
		devXMax = max(devXMax, d.X)
		devYMin = min(devYMin, d.Y)
		devYMax = max(devYMax, d.Y)
	}

	xMin := max(int(math.Floor(devXMin)), int(r.Clip.LLx))
	xMax := min(int(math.Floor(devXMax))+1, int(r.Clip.URx))
	yMin := max(int(math.Floor(devYMin)), int(r.Clip.LLy))
	yMax := min(int(math.Floor(devYMax))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return image.Rectangle{}, false
	}
	return image.Rect(xMin, yMin, xMax, yMax), true
}

// drawTriangle culls, sets up attribute interpolation and rasterises one
// triangle into the layer.
func (r *Rasteriser) drawTriangle(m *Mesh, i0, i1, i2 uint32, side Side) {
	p0, p1, p2 := r.dev[i0], r.dev[i1], r.dev[i2]
	e1 := p1.Sub(p0)
	e2 := p2.Sub(p0)
	area2 := e1.X*e2.Y - e1.Y*e2.X
	if math.Abs(area2) < degenerateAreaThreshold || math.IsNaN(area2) {
		r.stats.Degenerate++
		return
	}
	if side == FrontSide && area2 < 0 || side == BackSide && area2 > 0 {
		r.stats.Culled++
		return
	}

	u0, u1, u2 := m.Vertices[i0].U, m.Vertices[i1].U, m.Vertices[i2].U
	r.distance = attributePlane(p0, e1, e2, area2, u0.Distance, u1.Distance, u2.Distance)
	r.total = attributePlane(p0, e1, e2, area2, u0.Total, u1.Total, u2.Total)
	r.slope = math.Hypot(r.distance.dx, r.distance.dy)

	r.edges = r.edges[:0]
	r.addEdge(p0, p1)
	r.addEdge(p1, p2)
	r.addEdge(p2, p0)
	if len(r.edges) == 0 {
		return
	}

	xMin := max(int(math.Floor(min(p0.X, p1.X, p2.X))), r.region.Min.X)
	xMax := min(int(math.Floor(max(p0.X, p1.X, p2.X)))+1, r.region.Max.X)
	yMin := max(int(math.Floor(min(p0.Y, p1.Y, p2.Y))), r.region.Min.Y)
	yMax := min(int(math.Floor(max(p0.Y, p1.Y, p2.Y)))+1, r.region.Max.Y)
	if xMin >= xMax || yMin >= yMax {
		return
	}

	if (xMax-xMin)*(yMax-yMin) < r.smallPathThreshold {
		r.fillSmallPath(xMin, xMax, yMin, yMax, r.emit)
	} else {
		r.fillLargePath(xMin, xMax, yMin, yMax, r.emit)
	}
}

// attributePlane returns the affine interpolant through the values f0, f1,
// f2 at the triangle corners p0, p0+e1, p0+e2.
func attributePlane(p0, e1, e2 vec.Vec2, area2, f0, f1, f2 float64) plane {
	df1 := f1 - f0
	df2 := f2 - f0
	return plane{
		x0: p0.X,
		y0: p0.Y,
		f0: f0,
		dx: (df1*e2.Y - df2*e1.Y) / area2,
		dy: (df2*e1.X - df1*e2.X) / area2,
		lo: min(f0, f1, f2),
		hi: max(f0, f1, f2),
	}
}

// shadeRow runs the fragment stage for one row of coverage values and
// accumulates the result into the layer.
func (r *Rasteriser) shadeRow(y, xMin int, coverage []float32) {
	p := r.params
	yc := float64(y) + 0.5
	rowOffset := (y-r.region.Min.Y)*r.region.Dx() - r.region.Min.X
	for i, c := range coverage {
		if c <= 0 {
			continue
		}
		r.stats.Fragments++

		x := xMin + i
		xc := float64(x) + 0.5
		f := Fragment{
			U: LineU{
				Distance: r.distance.at(xc, yc),
				Total:    r.total.at(xc, yc),
			},
			Slope: r.slope,
		}
		a, keep := Shade(f, p, r.Edge)
		if !keep {
			r.stats.Discarded++
			continue
		}

		idx := rowOffset + x
		r.layer[idx] = min(1, r.layer[idx]+c*float32(a))
	}
}

// composite blends the layer over dst in colour c.
func (r *Rasteriser) composite(dst draw.Image, c RGB) {
	w, h := r.region.Dx(), r.region.Dy()
	n := w * h
	if r.mask == nil || cap(r.mask.Pix) < n {
		r.mask = image.NewAlpha(r.region)
	} else {
		r.mask.Pix = r.mask.Pix[:n]
		r.mask.Stride = w
		r.mask.Rect = r.region
	}
	for i, a := range r.layer {
		r.mask.Pix[i] = unitToByte(float64(a))
	}

	src := image.NewUniform(c.NRGBA(1))
	draw.DrawMask(dst, r.region, src, image.Point{}, r.mask, r.region.Min, draw.Over)
}

// addEdge adds a device-space edge to the edge list.
func (r *Rasteriser) addEdge(p0, p1 vec.Vec2) {
	// Skip horizontal edges
	dy := p1.Y - p0.Y
	if dy > -horizontalEdgeThreshold && dy < horizontalEdgeThreshold {
		return
	}

	r.edges = append(r.edges, edge{
		x0: p0.X, y0: p0.Y,
		x1: p1.X, y1: p1.Y,
		dxdy: (p1.X - p0.X) / dy,
	})
}

// Coverage accumulation model:
//
// For each pixel, we track two values:
//   cover: signed vertical extent of edges crossing this pixel column
//   area:  horizontal position weighting (how far right the crossing is)
//
// An edge crossing a pixel contributes:
//   cover = sign * dy   (where sign is +1 for downward, -1 for upward)
//   area  = cover * (1 - xFrac)   (where xFrac is the horizontal position within the pixel)
//
// Final coverage is computed by integrateScanline:
//   pixel_coverage = accumulated_cover + area[i]
//   accumulated_cover += cover[i]   (carry forward for next pixel)
//
// This computes the signed area of the triangle within each pixel.  Taking
// the absolute value makes the result independent of the orientation.

// accumulateEdge adds a single edge's contribution to the cover and area buffers.
// The buffers are indexed by (x - bboxXMin), where bboxXMin/bboxXMax define the buffer range.
// For edges spanning multiple pixels horizontally, this function splits the edge at pixel
// boundaries and computes separate contributions for each pixel crossed.
func (r *Rasteriser) accumulateEdge(e *edge, y int, cover, area []float32, bboxXMin, bboxXMax int) {
	// Compute the portion of the edge within this scanline [y, y+1)
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	if yBot <= yTop {
		return
	}

	// Sign based on edge direction: +1 for downward (y1 > y0), -1 for upward
	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xAtYTop := e.x0 + e.dxdy*(yTop-e.y0)
	xAtYBot := e.x0 + e.dxdy*(yBot-e.y0)
	xLeft, xRight := min(xAtYTop, xAtYBot), max(xAtYTop, xAtYBot)

	pixLeft := int(math.Floor(xLeft))
	pixRight := int(math.Floor(xRight))

	// Edge entirely to the left of bbox: full cover enters at the first pixel
	if pixRight < bboxXMin {
		coverVal := sign * float32(yBot-yTop)
		cover[0] += coverVal
		area[0] += coverVal
		return
	}
	if pixLeft >= bboxXMax {
		return
	}

	if pixLeft == pixRight {
		r.accumulateSegment(e, yTop, yBot, sign, cover, area, bboxXMin, bboxXMax)
		return
	}

	// Edge spans multiple pixels: split at every integer x
	dydx := 1 / e.dxdy
	r.crossings = append(r.crossings[:0], yTop, yBot)
	for x := pixLeft + 1; x <= pixRight; x++ {
		yAtX := e.y0 + dydx*(float64(x)-e.x0)
		if yAtX > yTop && yAtX < yBot {
			r.crossings = append(r.crossings, yAtX)
		}
	}
	slices.Sort(r.crossings)

	for i := range len(r.crossings) - 1 {
		y0, y1 := r.crossings[i], r.crossings[i+1]
		if y1 <= y0 {
			continue
		}
		r.accumulateSegment(e, y0, y1, sign, cover, area, bboxXMin, bboxXMax)
	}
}

// accumulateSegment handles a piece of an edge which lies within a single
// pixel column.
func (r *Rasteriser) accumulateSegment(e *edge, yTop, yBot float64, sign float32, cover, area []float32, bboxXMin, bboxXMax int) {
	coverVal := sign * float32(yBot-yTop)

	yMid := (yTop + yBot) / 2
	xMid := e.x0 + e.dxdy*(yMid-e.y0)
	pix := int(math.Floor(xMid))

	if pix < bboxXMin {
		cover[0] += coverVal
		area[0] += coverVal
		return
	}
	if pix >= bboxXMax {
		return
	}

	xFrac := xMid - float64(pix)
	idx := pix - bboxXMin
	cover[idx] += coverVal
	area[idx] += coverVal * float32(1-xFrac)
}

// integrateScanline converts accumulated cover/area to final coverage
// values. The cover slice is modified in place.
func integrateScanline(cover, area []float32) {
	var accum float32
	for i := range cover {
		raw := accum + area[i]
		accum += cover[i]

		// clamp(abs(raw), 0, 1)
		cov := raw
		if raw < 0 {
			cov = -raw
		}
		if cov > 1 {
			cov = 1
		}
		cover[i] = cov
	}
}

// trimZeros returns the non-zero portion of coverage and its starting offset.
// Returns nil, 0 if coverage is entirely zero.
func trimZeros(coverage []float32) (trimmed []float32, offset int) {
	n := len(coverage)
	lo := 0
	for lo < n && coverage[lo] == 0 {
		lo++
	}
	if lo == n {
		return nil, 0
	}
	hi := n - 1
	for hi > lo && coverage[hi] == 0 {
		hi--
	}
	return coverage[lo : hi+1], lo
}

// rowMidX returns the pixel column of the edge's midpoint within scanline
// y, clamped to [xMin, xMax).
func rowMidX(e *edge, y, xMin, xMax int) (int, bool) {
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	if yBot <= yTop {
		return 0, false
	}
	yMid := (yTop + yBot) / 2
	x := int(math.Floor(e.x0 + e.dxdy*(yMid-e.y0)))
	return min(max(x, xMin), xMax-1), true
}

// fillSmallPath rasterises using 2D buffers (Approach A).
// xMin, xMax, yMin, yMax define the bounding box (already clamped).
func (r *Rasteriser) fillSmallPath(xMin, xMax, yMin, yMax int, emit func(y, xMin int, coverage []float32)) {
	width := xMax - xMin
	height := yMax - yMin

	size := width * height
	r.cover = slices.Grow(r.cover[:0], size)[:size]
	r.area = slices.Grow(r.area[:0], size)[:size]
	clear(r.cover)
	clear(r.area)

	r.rowXMin = slices.Grow(r.rowXMin[:0], height)[:height]
	r.rowXMax = slices.Grow(r.rowXMax[:0], height)[:height]
	for i := range r.rowXMin {
		r.rowXMin[i] = width
		r.rowXMax[i] = -1
	}

	for i := range r.edges {
		e := &r.edges[i]

		edgeYMin := max(int(math.Floor(min(e.y0, e.y1))), yMin)
		edgeYMax := min(int(math.Floor(max(e.y0, e.y1)))+1, yMax)

		for y := edgeYMin; y < edgeYMax; y++ {
			row := y - yMin
			rowOffset := row * width
			r.accumulateEdge(e, y, r.cover[rowOffset:rowOffset+width], r.area[rowOffset:rowOffset+width], xMin, xMax)

			if x, ok := rowMidX(e, y, xMin, xMax); ok {
				xIdx := x - xMin
				r.rowXMin[row] = min(r.rowXMin[row], xIdx)
				r.rowXMax[row] = max(r.rowXMax[row], xIdx)
			}
		}
	}

	for row := range height {
		if r.rowXMax[row] < 0 {
			continue // no edges touched this row
		}

		rowOffset := row * width
		coverage := r.cover[rowOffset : rowOffset+width]
		integrateScanline(coverage, r.area[rowOffset:rowOffset+width])

		if trimmed, offset := trimZeros(coverage); trimmed != nil {
			emit(yMin+row, xMin+offset, trimmed)
		}
	}
}

// fillLargePath rasterises using 1D buffers and an active edge list (Approach B).
// xMin, xMax, yMin, yMax define the bounding box (already clamped).
func (r *Rasteriser) fillLargePath(xMin, xMax, yMin, yMax int, emit func(y, xMin int, coverage []float32)) {
	width := xMax - xMin

	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(min(a.y0, a.y1), min(b.y0, b.y1))
	})

	r.activeIdx = r.activeIdx[:0]
	nextEdge := 0

	for y := yMin; y < yMax; y++ {
		yf := float64(y)
		yfNext := float64(y + 1)

		// Add edges that start at this scanline
		for nextEdge < len(r.edges) {
			e := &r.edges[nextEdge]
			if min(e.y0, e.y1) >= yfNext {
				break
			}
			r.activeIdx = append(r.activeIdx, nextEdge)
			nextEdge++
		}

		if len(r.activeIdx) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		touched := false

		for i := 0; i < len(r.activeIdx); {
			e := &r.edges[r.activeIdx[i]]

			if max(e.y0, e.y1) <= yf {
				// Remove from active list (swap with last)
				r.activeIdx[i] = r.activeIdx[len(r.activeIdx)-1]
				r.activeIdx = r.activeIdx[:len(r.activeIdx)-1]
				continue
			}

			r.accumulateEdge(e, y, r.cover, r.area, xMin, xMax)
			if _, ok := rowMidX(e, y, xMin, xMax); ok {
				touched = true
			}
			i++
		}

		if !touched {
			continue
		}

		integrateScanline(r.cover, r.area)
		if trimmed, offset := trimZeros(r.cover); trimmed != nil {
			emit(y, xMin+offset, trimmed)
		}
	}
}

// Numerical tolerances and defaults for the rasteriser.
const (
	// horizontalEdgeThreshold is the minimum vertical extent for an edge
	// to contribute to coverage. Edges with |y1 - y0| below this threshold
	// are skipped as horizontal.
	horizontalEdgeThreshold = 1e-10

	// degenerateAreaThreshold is the minimum doubled device-space area of
	// a triangle.  Smaller triangles cover nothing and have no usable
	// attribute gradient.
	degenerateAreaThreshold = 1e-12

	// smallPathThreshold is the maximum bounding box area (in pixels) for
	// using 2D buffers (Approach A). Triangles with larger bounding boxes
	// use the active edge list (Approach B).
	smallPathThreshold = 65536

	// defaultAAEdge is the fixed antialiasing half-width, in length units,
	// used when no derivative is available.
	defaultAAEdge = 0.5
)
