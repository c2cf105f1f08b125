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

// Command export writes every test case as a scene file, so that the cases
// can be rendered and inspected with the ribbon command.
// Run from the module root directory.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/ribbon/scene"
	"seehuhn.de/go/ribbon/testcases"
)

func main() {
	outDir := flag.String("d", filepath.Join("testdata", "scenes"), "output directory")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		slog.Error("create output directory", "err", err)
		os.Exit(1)
	}

	n := 0
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			fname := filepath.Join(*outDir, name+".yaml")
			if err := writeScene(fname, name, tc); err != nil {
				slog.Error("export test case", "name", name, "err", err)
				os.Exit(1)
			}
			n++
		}
	}
	slog.Info("test cases exported", "count", n, "dir", *outDir)
}

func writeScene(fname, name string, tc testcases.TestCase) (err error) {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	s := toScene(name, tc)
	if err := s.Validate(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return s.Save(f)
}

func toScene(name string, tc testcases.TestCase) *scene.Scene {
	st := scene.Stroke{
		Name:       name,
		PathData:   scene.FormatPath(tc.Path),
		Join:       scene.JoinName(tc.Stroke.Join),
		Cap:        scene.CapName(tc.Stroke.Cap),
		MiterLimit: tc.Stroke.MiterLimit,
		Thickness:  scene.Float(tc.Stroke.Thickness),
	}
	if tc.Stroke.Opacity != 0 {
		st.Alpha = scene.Float(tc.Stroke.Opacity)
	}
	if d := tc.Stroke.Dash; d != nil {
		st.Dash = scene.Float(d.Length)
		st.DashGap = scene.Float(d.Gap)
		st.DashOffset = scene.Float(d.Offset)
	}
	if tr := tc.Stroke.Trim; tr != nil {
		st.TrimStart = scene.Float(tr.Start)
		st.TrimEnd = scene.Float(tr.End)
		st.TrimOffset = scene.Float(tr.Offset)
	}

	s := &scene.Scene{
		Width:      tc.Width,
		Height:     tc.Height,
		Background: &scene.Color{A: 255},
		Strokes:    []scene.Stroke{st},
	}
	if tc.CTM != (matrix.Matrix{}) {
		s.Transform = tc.CTM[:]
	}
	return s
}
