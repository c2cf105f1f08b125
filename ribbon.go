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

// Package ribbon renders variable-width polyline strokes as ribbon meshes.
//
// A [MeshBuilder] expands a path into a quad strip whose vertices carry a
// normal, a signed miter factor and the distance travelled along the stroke.
// Drawing runs two stages, mirroring a GPU pipeline:
//
//   - the displacement stage ([Displace]) pushes every vertex outward by
//     half the stroke thickness along its normal;
//   - the fragment stage ([Shade]) turns the interpolated distance into an
//     opacity, applying an antialiased dash pattern ([DashOpacity]) and a
//     cyclic trim window ([TrimVisible]) before the alpha test.
//
// The [Rasteriser] evaluates both stages in software with exact area
// coverage. Package shader contains the same program in WGSL for use on a
// real GPU.
package ribbon

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards all records. Enabled reports false, so callers skip
// formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger sets the logger used by this package and its sub-packages.
// By default nothing is logged. Passing nil restores the silent default.
//
// Debug records describe mesh construction and per-draw statistics.
// SetLogger is safe for concurrent use.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
