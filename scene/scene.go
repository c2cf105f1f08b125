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

// Package scene reads and writes YAML descriptions of ribbon strokes and
// renders them to images.
//
// A scene file looks like this:
//
//	width: 200
//	height: 100
//	background: "#202020"
//	strokes:
//	  - path: M 10,50 C 60,0 140,100 190,50
//	    thickness: 6
//	    diffuse: "#ffcc00"
//	    dash: 12
//	    dashGap: 6
//	    trimEnd: 0.8
//
// Material fields which are left out take their default values.
package scene

import (
	"fmt"
	"image/color"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/ribbon"
)

// Scene is a canvas with a list of strokes.
type Scene struct {
	Width       int       `yaml:"width"`
	Height      int       `yaml:"height"`
	Background  *Color    `yaml:"background,omitempty"`
	Supersample int       `yaml:"supersample,omitempty"` // 0 means 1
	Transform   []float64 `yaml:"transform,omitempty,flow"`
	Antialias   string    `yaml:"antialias,omitempty"` // derivative, fixed or hard
	AAEdge      float64   `yaml:"aaEdge,omitempty"`
	Strokes     []Stroke  `yaml:"strokes"`
}

// Stroke is one ribbon of a scene.  The geometry is given either as path
// data or as a list of points.
type Stroke struct {
	Name       string       `yaml:"name,omitempty"`
	PathData   string       `yaml:"path,omitempty"`
	Points     [][2]float64 `yaml:"points,omitempty,flow"`
	Closed     bool         `yaml:"closed,omitempty"`
	Join       string       `yaml:"join,omitempty"`
	Cap        string       `yaml:"cap,omitempty"`
	MiterLimit float64      `yaml:"miterLimit,omitempty"`

	Thickness  *float64 `yaml:"thickness,omitempty"`
	Alpha      *float64 `yaml:"alpha,omitempty"`
	Diffuse    *Color   `yaml:"diffuse,omitempty"`
	Dash       *float64 `yaml:"dash,omitempty"`
	DashGap    *float64 `yaml:"dashGap,omitempty"`
	DashOffset *float64 `yaml:"dashOffset,omitempty"`
	TrimStart  *float64 `yaml:"trimStart,omitempty"`
	TrimEnd    *float64 `yaml:"trimEnd,omitempty"`
	TrimOffset *float64 `yaml:"trimOffset,omitempty"`
	Side       string   `yaml:"side,omitempty"`
}

// Color is an sRGB colour, written as #rrggbb or #rrggbbaa.
type Color color.NRGBA

// RGBA implements the color.Color interface.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA(c).RGBA()
}

// UnmarshalYAML implements yaml.Unmarshaler for Color.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler for Color.
func (c Color) MarshalYAML() (any, error) {
	return c.String(), nil
}

func (c Color) String() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// ParseColor parses a colour in #rrggbb or #rrggbbaa notation.
func ParseColor(s string) (Color, error) {
	var c Color
	var err error
	switch len(s) {
	case 7:
		c.A = 255
		_, err = fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	case 9:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	default:
		err = fmt.Errorf("wrong length")
	}
	if err != nil {
		return Color{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return c, nil
}

var joinNames = map[string]graphics.LineJoinStyle{
	"miter": graphics.LineJoinMiter,
	"round": graphics.LineJoinRound,
	"bevel": graphics.LineJoinBevel,
}

var capNames = map[string]graphics.LineCapStyle{
	"butt":   graphics.LineCapButt,
	"round":  graphics.LineCapRound,
	"square": graphics.LineCapSquare,
}

var sideNames = map[string]ribbon.Side{
	"double": ribbon.DoubleSide,
	"front":  ribbon.FrontSide,
	"back":   ribbon.BackSide,
}

var edgeNames = map[string]ribbon.EdgeMode{
	"derivative": ribbon.EdgeDerivative,
	"fixed":      ribbon.EdgeFixed,
	"hard":       ribbon.EdgeHard,
}

// lookup returns the value for name, or def if name is empty.
func lookup[T any](kind string, names map[string]T, name string, def T) (T, error) {
	if name == "" {
		return def, nil
	}
	v, ok := names[name]
	if !ok {
		return def, fmt.Errorf("unknown %s %q", kind, name)
	}
	return v, nil
}

// JoinName returns the scene file name of a join style.
func JoinName(j graphics.LineJoinStyle) string {
	return nameOf(joinNames, j)
}

// CapName returns the scene file name of a cap style.
func CapName(c graphics.LineCapStyle) string {
	return nameOf(capNames, c)
}

func nameOf[T comparable](names map[string]T, v T) string {
	for name, x := range names {
		if x == v {
			return name
		}
	}
	return ""
}

// Load reads a scene from r and checks it for errors.
func Load(r io.Reader) (*Scene, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	s := &Scene{}
	if err := dec.Decode(s); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadFile reads a scene from the named file.
func LoadFile(name string) (*Scene, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return s, nil
}

// Save writes the scene to w.
func (s *Scene) Save(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	return nil
}

// Validate checks the scene for errors.
func (s *Scene) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("invalid canvas size %dx%d", s.Width, s.Height)
	}
	if s.Supersample < 0 || s.Supersample > maxSupersample {
		return fmt.Errorf("supersample factor %d out of range [0, %d]", s.Supersample, maxSupersample)
	}
	if len(s.Transform) != 0 && len(s.Transform) != 6 {
		return fmt.Errorf("transform needs 6 numbers, got %d", len(s.Transform))
	}
	if _, err := s.Edge(); err != nil {
		return err
	}
	for i := range s.Strokes {
		st := &s.Strokes[i]
		if _, err := st.Path(); err != nil {
			return fmt.Errorf("stroke %d: %w", i, err)
		}
		if _, err := st.Builder(matrix.Identity); err != nil {
			return fmt.Errorf("stroke %d: %w", i, err)
		}
		if _, err := st.Params(0); err != nil {
			return fmt.Errorf("stroke %d: %w", i, err)
		}
	}
	return nil
}

// CTM returns the user-to-device transformation of the scene, before
// supersampling.
func (s *Scene) CTM() matrix.Matrix {
	if len(s.Transform) != 6 {
		return matrix.Identity
	}
	var m matrix.Matrix
	copy(m[:], s.Transform)
	return m
}

// Edge returns the antialiasing policy of the scene.
func (s *Scene) Edge() (ribbon.Edge, error) {
	mode, err := lookup("antialias mode", edgeNames, s.Antialias, ribbon.EdgeDerivative)
	if err != nil {
		return ribbon.Edge{}, err
	}
	width := s.AAEdge
	if width == 0 {
		width = defaultAAEdge
	}
	return ribbon.Edge{Mode: mode, Width: width}, nil
}

// Path returns the centreline of the stroke.
func (st *Stroke) Path() (path.Path, error) {
	switch {
	case st.PathData != "" && len(st.Points) > 0:
		return nil, fmt.Errorf("both path and points given")
	case st.PathData != "":
		return ParsePath(st.PathData)
	case len(st.Points) > 0:
		pts := make([]vec.Vec2, len(st.Points))
		for i, p := range st.Points {
			pts[i] = vec.Vec2{X: p[0], Y: p[1]}
		}
		return polyline(pts, st.Closed), nil
	default:
		return nil, fmt.Errorf("no geometry")
	}
}

func polyline(pts []vec.Vec2, closed bool) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		for i := range pts {
			cmd := path.CmdLineTo
			if i == 0 {
				cmd = path.CmdMoveTo
			}
			if !yield(cmd, pts[i:i+1]) {
				return
			}
		}
		if closed {
			yield(path.CmdClose, nil)
		}
	}
}

// Builder returns a mesh builder configured for the stroke.
func (st *Stroke) Builder(ctm matrix.Matrix) (*ribbon.MeshBuilder, error) {
	b := ribbon.NewMeshBuilder()
	b.CTM = ctm

	var err error
	if b.Join, err = lookup("join", joinNames, st.Join, b.Join); err != nil {
		return nil, err
	}
	if b.Cap, err = lookup("cap", capNames, st.Cap, b.Cap); err != nil {
		return nil, err
	}
	if st.MiterLimit != 0 {
		if st.MiterLimit < 1 {
			return nil, fmt.Errorf("miter limit %g is less than 1", st.MiterLimit)
		}
		b.MiterLimit = st.MiterLimit
	}
	if st.Thickness != nil {
		b.Width = *st.Thickness
	} else {
		b.Width = ribbon.DefaultParams().Thickness
	}
	return b, nil
}

// Material returns a material holding the stroke settings.
func (st *Stroke) Material() (*ribbon.Material, error) {
	side, err := lookup("side", sideNames, st.Side, ribbon.DoubleSide)
	if err != nil {
		return nil, err
	}

	opts := []ribbon.MaterialOption{ribbon.WithSide(side)}
	floatOpts := []struct {
		v   *float64
		opt func(float64) ribbon.MaterialOption
	}{
		{st.Thickness, ribbon.WithThickness},
		{st.Alpha, ribbon.WithOpacity},
		{st.Dash, ribbon.WithDash},
		{st.DashGap, ribbon.WithDashGap},
		{st.DashOffset, ribbon.WithDashOffset},
		{st.TrimStart, ribbon.WithTrimStart},
		{st.TrimEnd, ribbon.WithTrimEnd},
		{st.TrimOffset, ribbon.WithTrimOffset},
	}
	for _, fo := range floatOpts {
		if fo.v != nil {
			opts = append(opts, fo.opt(*fo.v))
		}
	}
	if st.Diffuse != nil {
		opts = append(opts, ribbon.WithDiffuse(ribbon.RGBFromColor(*st.Diffuse)))
	}
	return ribbon.NewMaterial(opts...), nil
}

// Params returns the parameter snapshot for drawing the stroke.  The trim
// phase is added to the trim offset, for animating the visible window.
func (st *Stroke) Params(trimPhase float64) (ribbon.Params, error) {
	m, err := st.Material()
	if err != nil {
		return ribbon.Params{}, err
	}
	if trimPhase != 0 {
		m.SetTrimOffset(m.TrimOffset() + trimPhase)
	}
	return m.Commit(), nil
}

// Float returns a pointer to x, for filling in optional stroke fields.
func Float(x float64) *float64 {
	return &x
}

const (
	maxSupersample = 8
	defaultAAEdge  = 0.5
)
