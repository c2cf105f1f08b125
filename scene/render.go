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

package scene

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/ribbon"
)

// Render draws the scene into a new image.  The trim phase is added to the
// trim offset of every stroke.
//
// Render only reads s, so several frames of one scene can be rendered
// concurrently.
func Render(s *Scene, trimPhase float64) (*image.NRGBA, error) {
	ss := max(s.Supersample, 1)
	w, h := s.Width*ss, s.Height*ss
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", s.Width, s.Height)
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	if s.Background != nil {
		bg := image.NewUniform(*s.Background)
		draw.Draw(img, img.Bounds(), bg, image.Point{}, draw.Src)
	}

	ctm := s.CTM()
	for i := range ctm {
		ctm[i] *= float64(ss)
	}
	edge, err := s.Edge()
	if err != nil {
		return nil, err
	}

	r := ribbon.NewRasteriser(rect.Rect{LLx: 0, LLy: 0, URx: float64(w), URy: float64(h)})
	r.CTM = ctm
	r.Edge = edge
	mesh := &ribbon.Mesh{}
	for i := range s.Strokes {
		st := &s.Strokes[i]
		p, err := st.Path()
		if err != nil {
			return nil, fmt.Errorf("stroke %d: %w", i, err)
		}
		b, err := st.Builder(ctm)
		if err != nil {
			return nil, fmt.Errorf("stroke %d: %w", i, err)
		}
		params, err := st.Params(trimPhase)
		if err != nil {
			return nil, fmt.Errorf("stroke %d: %w", i, err)
		}

		mesh.Reset()
		b.AppendTo(mesh, p)
		stats := r.Draw(img, mesh, params)
		ribbon.Logger().Debug("stroke rendered",
			"stroke", i,
			"name", st.Name,
			"triangles", stats.Triangles,
			"fragments", stats.Fragments)
	}

	if ss == 1 {
		return img, nil
	}
	out := image.NewNRGBA(image.Rect(0, 0, s.Width, s.Height))
	draw.CatmullRom.Scale(out, out.Bounds(), img, img.Bounds(), draw.Src, nil)
	return out, nil
}
