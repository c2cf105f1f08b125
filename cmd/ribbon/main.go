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

// Command ribbon renders a scene file to PNG.
//
// With -frames n, the trim window of every stroke is animated over one full
// cycle and n numbered images are written.  Frames are rendered
// concurrently.
package main

import (
	"context"
	"encoding/binary"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"seehuhn.de/go/ribbon"
	"seehuhn.de/go/ribbon/scene"
	"seehuhn.de/go/ribbon/shader"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ribbon: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	out := flag.String("o", "out.png", "output file (for several frames, a `pattern` like frame-%03d.png)")
	frames := flag.Int("frames", 1, "number of frames of the trim animation")
	jobs := flag.Int("j", runtime.NumCPU(), "number of frames rendered in parallel")
	verbose := flag.Bool("v", false, "log mesh and draw statistics")
	spirv := flag.String("spirv", "", "also write the compiled stroke shader to this `file`")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] scene.yaml\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Render ribbon strokes described by a scene file.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	ribbon.SetLogger(logger)

	if *spirv != "" {
		if err := writeShader(*spirv); err != nil {
			return err
		}
	}

	s, err := scene.LoadFile(flag.Arg(0))
	if err != nil {
		return err
	}

	if *frames <= 1 {
		img, err := scene.Render(s, 0)
		if err != nil {
			return err
		}
		if err := writePNG(*out, img); err != nil {
			return err
		}
		slog.Info("image written", "file", *out, "width", s.Width, "height", s.Height)
		return nil
	}

	return renderFrames(context.Background(), s, *out, *frames, max(*jobs, 1))
}

// renderFrames renders n frames with the trim phase stepping through [0, 1).
func renderFrames(ctx context.Context, s *scene.Scene, pattern string, n, jobs int) error {
	bar := progressbar.Default(int64(n), "rendering")
	defer bar.Close()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i := range n {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := scene.Render(s, float64(i)/float64(n))
			if err != nil {
				return fmt.Errorf("frame %d: %w", i, err)
			}
			if err := writePNG(frameName(pattern, i), img); err != nil {
				return err
			}
			bar.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("frames written", "count", n, "pattern", pattern)
	return nil
}

// frameName returns the file name for frame i.  Patterns without a verb
// get the frame number inserted before the extension.
func frameName(pattern string, i int) string {
	if strings.Contains(pattern, "%") {
		return fmt.Sprintf(pattern, i)
	}
	ext := filepath.Ext(pattern)
	return fmt.Sprintf("%s-%04d%s", strings.TrimSuffix(pattern, ext), i, ext)
}

func writePNG(name string, img image.Image) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", name, cerr)
		}
	}()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return nil
}

func writeShader(name string) error {
	words, err := shader.Compile()
	if err != nil {
		return err
	}
	buf := make([]byte, 4*len(words))
	for i, w := range words {
		binary.LittleEndian.PutUint32(buf[4*i:], w)
	}
	if err := os.WriteFile(name, buf, 0644); err != nil {
		return fmt.Errorf("write shader: %w", err)
	}
	slog.Info("shader written", "file", name, "bytes", len(buf))
	return nil
}
