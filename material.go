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

import "sync"

// Material holds the named stroke properties of a host object.
//
// Setters may be called at any time, from any goroutine.  Draws never see
// a Material directly: [Material.Commit] returns a snapshot which is then
// passed to the renderer, so changes made while a draw is in flight only
// affect later snapshots.
type Material struct {
	mu sync.RWMutex
	p  Params
}

// MaterialOption configures a Material during creation.
type MaterialOption func(*Params)

// NewMaterial returns a Material with the default parameters, modified by
// the given options.
//
// Example:
//
//	m := ribbon.NewMaterial(
//	    ribbon.WithThickness(2),
//	    ribbon.WithDash(6), ribbon.WithDashGap(3),
//	)
func NewMaterial(opts ...MaterialOption) *Material {
	m := &Material{p: DefaultParams()}
	for _, opt := range opts {
		opt(&m.p)
	}
	return m
}

// WithThickness sets the ribbon width.
func WithThickness(v float64) MaterialOption {
	return func(p *Params) { p.Thickness = v }
}

// WithOpacity sets the global alpha multiplier.
func WithOpacity(v float64) MaterialOption {
	return func(p *Params) { p.Opacity = v }
}

// WithDiffuse sets the stroke colour.
func WithDiffuse(c RGB) MaterialOption {
	return func(p *Params) { p.Diffuse = c }
}

// WithDash sets the length of the dashes.
func WithDash(v float64) MaterialOption {
	return func(p *Params) { p.DashLength = v }
}

// WithDashGap sets the length of the gaps between dashes.
func WithDashGap(v float64) MaterialOption {
	return func(p *Params) { p.DashGap = v }
}

// WithDashOffset sets the phase offset of the dash pattern.
func WithDashOffset(v float64) MaterialOption {
	return func(p *Params) { p.DashOffset = v }
}

// WithTrimStart sets the start of the visible window.
func WithTrimStart(v float64) MaterialOption {
	return func(p *Params) { p.TrimStart = v }
}

// WithTrimEnd sets the end of the visible window.
func WithTrimEnd(v float64) MaterialOption {
	return func(p *Params) { p.TrimEnd = v }
}

// WithTrimOffset sets the offset of the visible window.
func WithTrimOffset(v float64) MaterialOption {
	return func(p *Params) { p.TrimOffset = v }
}

// WithSide selects which faces are drawn.
func WithSide(s Side) MaterialOption {
	return func(p *Params) { p.Side = s }
}

// Name returns the material name.
func (m *Material) Name() string {
	return "StrokeMaterial"
}

// Transparent reports whether the material is alpha blended.  Strokes are
// always blended with the destination.
func (m *Material) Transparent() bool {
	return true
}

// Commit returns a snapshot of the current parameters.
func (m *Material) Commit() Params {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.p
}

func (m *Material) get(field func(*Params) float64) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return field(&m.p)
}

func (m *Material) set(update func(*Params)) {
	m.mu.Lock()
	update(&m.p)
	m.mu.Unlock()
}

// Thickness returns the ribbon width.
func (m *Material) Thickness() float64 {
	return m.get(func(p *Params) float64 { return p.Thickness })
}

// SetThickness sets the ribbon width.
func (m *Material) SetThickness(v float64) {
	m.set(func(p *Params) { p.Thickness = v })
}

// Alpha returns the global opacity.
func (m *Material) Alpha() float64 {
	return m.get(func(p *Params) float64 { return p.Opacity })
}

// SetAlpha sets the global opacity.
func (m *Material) SetAlpha(v float64) {
	m.set(func(p *Params) { p.Opacity = v })
}

// Diffuse returns the stroke colour.
func (m *Material) Diffuse() RGB {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.p.Diffuse
}

// SetDiffuse sets the stroke colour.
func (m *Material) SetDiffuse(c RGB) {
	m.set(func(p *Params) { p.Diffuse = c })
}

// Dash returns the dash length.
func (m *Material) Dash() float64 {
	return m.get(func(p *Params) float64 { return p.DashLength })
}

// SetDash sets the dash length.
func (m *Material) SetDash(v float64) {
	m.set(func(p *Params) { p.DashLength = v })
}

// DashGap returns the gap length.
func (m *Material) DashGap() float64 {
	return m.get(func(p *Params) float64 { return p.DashGap })
}

// SetDashGap sets the gap length.
func (m *Material) SetDashGap(v float64) {
	m.set(func(p *Params) { p.DashGap = v })
}

// DashOffset returns the dash phase offset.
func (m *Material) DashOffset() float64 {
	return m.get(func(p *Params) float64 { return p.DashOffset })
}

// SetDashOffset sets the dash phase offset.
func (m *Material) SetDashOffset(v float64) {
	m.set(func(p *Params) { p.DashOffset = v })
}

// TrimStart returns the start of the visible window.
func (m *Material) TrimStart() float64 {
	return m.get(func(p *Params) float64 { return p.TrimStart })
}

// SetTrimStart sets the start of the visible window.
func (m *Material) SetTrimStart(v float64) {
	m.set(func(p *Params) { p.TrimStart = v })
}

// TrimEnd returns the end of the visible window.
func (m *Material) TrimEnd() float64 {
	return m.get(func(p *Params) float64 { return p.TrimEnd })
}

// SetTrimEnd sets the end of the visible window.
func (m *Material) SetTrimEnd(v float64) {
	m.set(func(p *Params) { p.TrimEnd = v })
}

// TrimOffset returns the offset of the visible window.
func (m *Material) TrimOffset() float64 {
	return m.get(func(p *Params) float64 { return p.TrimOffset })
}

// SetTrimOffset sets the offset of the visible window.
func (m *Material) SetTrimOffset(v float64) {
	m.set(func(p *Params) { p.TrimOffset = v })
}

// Side returns which faces are drawn.
func (m *Material) Side() Side {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.p.Side
}

// SetSide selects which faces are drawn.
func (m *Material) SetSide(s Side) {
	m.set(func(p *Params) { p.Side = s })
}
