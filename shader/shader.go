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

// Package shader contains the ribbon stroke program in WGSL, together with
// the buffer layouts and pipeline state needed to run it on a GPU.
package shader

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/ribbon"
)

// Source is the WGSL source of the stroke program.
//
//go:embed stroke.wgsl
var Source string

// Entry points of the stroke program.
const (
	VertexEntry   = "vs_main"
	FragmentEntry = "fs_main"
)

// Compile compiles the stroke program to SPIR-V.
func Compile() ([]uint32, error) {
	return CompileSource(Source)
}

// CompileSource compiles WGSL source to SPIR-V words.
func CompileSource(src string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("compile stroke shader: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("compile stroke shader: SPIR-V length %d is not a multiple of 4", len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(spirvBytes[4*i:])
	}
	ribbon.Logger().Debug("stroke shader compiled", "words", len(words))
	return words, nil
}

// UniformSize is the size of the uniform block in bytes.
const UniformSize = 96

// Uniforms is the uniform block of the stroke program.
// Marshal writes it in the layout of the WGSL Uniforms struct: six vec4<f32>.
type Uniforms struct {
	CTM       matrix.Matrix // user space to device pixels
	Viewport  [2]float64    // width and height in pixels
	Thickness float64
	Opacity   float64
	Diffuse   ribbon.RGB
	Dash      [3]float64 // length, gap, offset
	Trim      [3]float64 // start, end, offset
	Edge      ribbon.Edge
}

// NewUniforms fills a uniform block from a parameter snapshot.
func NewUniforms(p *ribbon.Params, ctm matrix.Matrix, width, height int, e ribbon.Edge) Uniforms {
	return Uniforms{
		CTM:       ctm,
		Viewport:  [2]float64{float64(width), float64(height)},
		Thickness: p.Thickness,
		Opacity:   p.Opacity,
		Diffuse:   p.Diffuse,
		Dash:      [3]float64{p.DashLength, p.DashGap, p.DashOffset},
		Trim:      [3]float64{p.TrimStart, p.TrimEnd, p.TrimOffset},
		Edge:      e,
	}
}

// Marshal serializes the uniform block into a byte buffer suitable for GPU
// upload.
func (u *Uniforms) Marshal() []byte {
	vals := [UniformSize / 4]float64{
		u.CTM[0], u.CTM[1], u.CTM[2], u.CTM[3],
		u.CTM[4], u.CTM[5], u.Viewport[0], u.Viewport[1],
		u.Diffuse.R, u.Diffuse.G, u.Diffuse.B, u.Opacity,
		u.Dash[0], u.Dash[1], u.Dash[2], 0,
		u.Trim[0], u.Trim[1], u.Trim[2], 0,
		u.Thickness, float64(u.Edge.Mode), u.Edge.Width, 0,
	}
	buf := make([]byte, UniformSize)
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(float32(v)))
	}
	return buf
}

// VertexStride is the size of one packed vertex in bytes.
const VertexStride = 32

// VertexLayout returns the vertex buffer layout matching [PackVertices].
func VertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x2, Offset: 12, ShaderLocation: 1}, // normal
				{Format: gputypes.VertexFormatFloat32, Offset: 20, ShaderLocation: 2},   // miter
				{Format: gputypes.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 3}, // distance, total
			},
		},
	}
}

// PackVertices converts the mesh vertices into a vertex buffer.
func PackVertices(m *ribbon.Mesh) []byte {
	buf := make([]byte, len(m.Vertices)*VertexStride)
	for i, v := range m.Vertices {
		vals := [VertexStride / 4]float64{
			v.Position.X, v.Position.Y, v.Z,
			v.Normal.X, v.Normal.Y,
			v.Miter,
			v.U.Distance, v.U.Total,
		}
		b := buf[i*VertexStride:]
		for j, x := range vals {
			binary.LittleEndian.PutUint32(b[4*j:], math.Float32bits(float32(x)))
		}
	}
	return buf
}

// PackIndices converts the mesh indices into a uint32 index buffer.
func PackIndices(m *ribbon.Mesh) []byte {
	buf := make([]byte, 4*len(m.Indices))
	for i, idx := range m.Indices {
		binary.LittleEndian.PutUint32(buf[4*i:], idx)
	}
	return buf
}

// PipelineState collects the fixed-function state of a ribbon draw.
type PipelineState struct {
	VertexEntry   string
	FragmentEntry string
	Buffers       []gputypes.VertexBufferLayout
	Primitive     gputypes.PrimitiveState
	Targets       []gputypes.ColorTargetState
}

// Pipeline returns the pipeline state for drawing ribbons with the given
// side setting into a colour target of the given format.
//
// Triangles with positive orientation in device space (y pointing down)
// are clockwise in clip space, so they are declared front-facing.
func Pipeline(side ribbon.Side, format gputypes.TextureFormat) PipelineState {
	cull := gputypes.CullModeNone
	switch side {
	case ribbon.FrontSide:
		cull = gputypes.CullModeBack
	case ribbon.BackSide:
		cull = gputypes.CullModeFront
	}

	blend := gputypes.BlendStateAlpha()
	return PipelineState{
		VertexEntry:   VertexEntry,
		FragmentEntry: FragmentEntry,
		Buffers:       VertexLayout(),
		Primitive: gputypes.PrimitiveState{
			Topology:  gputypes.PrimitiveTopologyTriangleList,
			FrontFace: gputypes.FrontFaceCW,
			CullMode:  cull,
		},
		Targets: []gputypes.ColorTargetState{
			{
				Format:    format,
				Blend:     &blend,
				WriteMask: gputypes.ColorWriteMaskAll,
			},
		},
	}
}
