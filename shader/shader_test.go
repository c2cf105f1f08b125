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

package shader

import (
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/ribbon"
)

func TestCompile(t *testing.T) {
	if Source == "" {
		t.Fatal("stroke shader source is empty")
	}

	words, err := Compile()
	if err != nil {
		// Check for known naga limitations and skip gracefully
		msg := err.Error()
		if strings.Contains(msg, "not yet implemented") || strings.Contains(msg, "not supported") {
			t.Skipf("Skipping: naga feature not yet implemented: %v", err)
		}
		t.Fatalf("failed to compile stroke shader: %v", err)
	}

	if len(words) == 0 {
		t.Fatal("SPIR-V output is empty")
	}
	if words[0] != 0x07230203 {
		t.Errorf("invalid SPIR-V magic: 0x%08X, want 0x07230203", words[0])
	}
}

func TestCompileInvalid(t *testing.T) {
	_, err := CompileSource("fn broken( {")
	if err == nil {
		t.Fatal("expected an error for invalid WGSL")
	}
	if !strings.Contains(err.Error(), "compile stroke shader") {
		t.Errorf("error %q lacks context", err)
	}
}

func TestSourceEntryPoints(t *testing.T) {
	for _, name := range []string{VertexEntry, FragmentEntry} {
		if !strings.Contains(Source, "fn "+name+"(") {
			t.Errorf("entry point %s not found in shader source", name)
		}
	}
}

func readFloat(b []byte, i int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
}

func TestUniformsMarshal(t *testing.T) {
	p := ribbon.DefaultParams()
	p.Thickness = 3
	p.Opacity = 0.5
	p.Diffuse = ribbon.RGB{R: 1, G: 0.5, B: 0.25}
	p.DashLength = 6
	p.DashGap = 2
	p.DashOffset = 1
	p.TrimStart = 0.2
	p.TrimEnd = 0.9
	p.TrimOffset = 0.1

	ctm := matrix.Matrix{2, 0, 0, 2, 10, 20}
	u := NewUniforms(&p, ctm, 640, 480, ribbon.Edge{Mode: ribbon.EdgeFixed, Width: 0.5})
	buf := u.Marshal()
	if len(buf) != UniformSize {
		t.Fatalf("uniform block has %d bytes, want %d", len(buf), UniformSize)
	}

	want := []float32{
		2, 0, 0, 2,
		10, 20, 640, 480,
		1, 0.5, 0.25, 0.5,
		6, 2, 1, 0,
		0.2, 0.9, 0.1, 0,
		3, 1, 0.5, 0,
	}
	for i, w := range want {
		if got := readFloat(buf, i); got != w {
			t.Errorf("word %d: got %g, want %g", i, got, w)
		}
	}
}

func TestPackVertices(t *testing.T) {
	m := &ribbon.Mesh{
		Vertices: []ribbon.Vertex{
			{
				Position: vec.Vec2{X: 1, Y: 2},
				Z:        3,
				Normal:   vec.Vec2{X: 0, Y: 1},
				Miter:    -1.5,
				U:        ribbon.LineU{Distance: 4, Total: 8},
			},
		},
		Indices: []uint32{0, 0, 0},
	}

	buf := PackVertices(m)
	if len(buf) != VertexStride {
		t.Fatalf("packed %d bytes, want %d", len(buf), VertexStride)
	}

	// each attribute must be found at the offset declared in the layout
	layout := VertexLayout()[0]
	if layout.ArrayStride != VertexStride {
		t.Errorf("stride %d, want %d", layout.ArrayStride, VertexStride)
	}
	want := map[uint32][]float32{
		0: {1, 2, 3},
		1: {0, 1},
		2: {-1.5},
		3: {4, 8},
	}
	for _, attr := range layout.Attributes {
		vals := want[attr.ShaderLocation]
		for k, w := range vals {
			if got := readFloat(buf, int(attr.Offset)/4+k); got != w {
				t.Errorf("location %d component %d: got %g, want %g",
					attr.ShaderLocation, k, got, w)
			}
		}
	}

	idx := PackIndices(m)
	if len(idx) != 12 {
		t.Errorf("index buffer has %d bytes, want 12", len(idx))
	}
}

func TestPipelineCulling(t *testing.T) {
	cases := []struct {
		side ribbon.Side
		want gputypes.CullMode
	}{
		{ribbon.DoubleSide, gputypes.CullModeNone},
		{ribbon.FrontSide, gputypes.CullModeBack},
		{ribbon.BackSide, gputypes.CullModeFront},
	}
	for _, c := range cases {
		ps := Pipeline(c.side, gputypes.TextureFormatRGBA8Unorm)
		if ps.Primitive.CullMode != c.want {
			t.Errorf("%s: cull mode %v, want %v", c.side, ps.Primitive.CullMode, c.want)
		}
		if ps.Primitive.Topology != gputypes.PrimitiveTopologyTriangleList {
			t.Errorf("%s: unexpected topology %v", c.side, ps.Primitive.Topology)
		}
		if len(ps.Targets) != 1 || ps.Targets[0].Blend == nil {
			t.Errorf("%s: ribbons must be drawn with blending", c.side)
		}
	}
}
