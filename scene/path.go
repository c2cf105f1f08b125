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
	"errors"
	"fmt"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// ErrSyntax is returned when path data cannot be parsed.
var ErrSyntax = errors.New("invalid path data")

// segment is one command of a parsed path, in absolute coordinates.
type segment struct {
	cmd path.Command
	pts []vec.Vec2
}

// pathData is a parsed path.
type pathData []segment

// iter returns the path as an iterator.
func (d pathData) iter() path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		for _, seg := range d {
			if !yield(seg.cmd, seg.pts) {
				return
			}
		}
	}
}

// ParsePath parses path data in SVG syntax.  The commands M, L, H, V, Q,
// C and Z are supported, in absolute (upper case) and relative (lower
// case) form.  Numbers may be separated by white space or commas.
func ParsePath(s string) (path.Path, error) {
	d, err := parsePath(s)
	if err != nil {
		return nil, err
	}
	return d.iter(), nil
}

func parsePath(s string) (pathData, error) {
	sc := &pathScanner{s: s}

	var d pathData
	var cur, start vec.Vec2
	var cmd byte
	hasMove := false
	for {
		sc.skipSpace()
		if sc.eof() {
			break
		}

		c := sc.s[sc.pos]
		if isCommand(c) {
			cmd = c
			sc.pos++
		} else if cmd == 0 {
			return nil, sc.errorf("expected a command, found %q", c)
		}

		rel := cmd >= 'a' && cmd <= 'z'
		upper := cmd &^ 0x20
		if upper != 'M' && upper != 'Z' && !hasMove {
			return nil, sc.errorf("%c command before the first moveto", cmd)
		}

		switch upper {
		case 'M':
			p, err := sc.point(cur, rel)
			if err != nil {
				return nil, err
			}
			d = append(d, segment{cmd: path.CmdMoveTo, pts: []vec.Vec2{p}})
			cur, start = p, p
			hasMove = true
			// further coordinate pairs are implicit lineto commands
			cmd = 'L' | cmd&0x20

		case 'L':
			p, err := sc.point(cur, rel)
			if err != nil {
				return nil, err
			}
			d = append(d, segment{cmd: path.CmdLineTo, pts: []vec.Vec2{p}})
			cur = p

		case 'H', 'V':
			x, err := sc.number()
			if err != nil {
				return nil, err
			}
			p := cur
			switch {
			case upper == 'H' && rel:
				p.X += x
			case upper == 'H':
				p.X = x
			case rel:
				p.Y += x
			default:
				p.Y = x
			}
			d = append(d, segment{cmd: path.CmdLineTo, pts: []vec.Vec2{p}})
			cur = p

		case 'Q':
			pts, err := sc.points(cur, rel, 2)
			if err != nil {
				return nil, err
			}
			d = append(d, segment{cmd: path.CmdQuadTo, pts: pts})
			cur = pts[1]

		case 'C':
			pts, err := sc.points(cur, rel, 3)
			if err != nil {
				return nil, err
			}
			d = append(d, segment{cmd: path.CmdCubeTo, pts: pts})
			cur = pts[2]

		case 'Z':
			if hasMove {
				d = append(d, segment{cmd: path.CmdClose})
			}
			cur = start
			cmd = 0
		}
	}
	return d, nil
}

// FormatPath writes a path in the syntax understood by [ParsePath].
func FormatPath(p path.Path) string {
	var b strings.Builder
	for cmd, pts := range p {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		switch cmd {
		case path.CmdMoveTo:
			b.WriteByte('M')
		case path.CmdLineTo:
			b.WriteByte('L')
		case path.CmdQuadTo:
			b.WriteByte('Q')
		case path.CmdCubeTo:
			b.WriteByte('C')
		case path.CmdClose:
			b.WriteByte('Z')
		}
		for _, pt := range pts {
			b.WriteByte(' ')
			b.WriteString(formatNumber(pt.X))
			b.WriteByte(',')
			b.WriteString(formatNumber(pt.Y))
		}
	}
	return b.String()
}

func formatNumber(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

func isCommand(c byte) bool {
	return strings.IndexByte("MmLlHhVvQqCcZz", c) >= 0
}

// pathScanner splits path data into numbers.
type pathScanner struct {
	s   string
	pos int
}

func (sc *pathScanner) eof() bool {
	return sc.pos >= len(sc.s)
}

func (sc *pathScanner) skipSpace() {
	for !sc.eof() {
		switch sc.s[sc.pos] {
		case ' ', '\t', '\n', '\r', ',':
			sc.pos++
		default:
			return
		}
	}
}

func (sc *pathScanner) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s at offset %d", ErrSyntax, fmt.Sprintf(format, args...), sc.pos)
}

func (sc *pathScanner) number() (float64, error) {
	sc.skipSpace()
	start := sc.pos
	if !sc.eof() && (sc.s[sc.pos] == '+' || sc.s[sc.pos] == '-') {
		sc.pos++
	}
	for !sc.eof() && (isDigit(sc.s[sc.pos]) || sc.s[sc.pos] == '.') {
		sc.pos++
	}
	if !sc.eof() && (sc.s[sc.pos] == 'e' || sc.s[sc.pos] == 'E') {
		sc.pos++
		if !sc.eof() && (sc.s[sc.pos] == '+' || sc.s[sc.pos] == '-') {
			sc.pos++
		}
		for !sc.eof() && isDigit(sc.s[sc.pos]) {
			sc.pos++
		}
	}
	if sc.pos == start {
		if sc.eof() {
			return 0, sc.errorf("unexpected end of data")
		}
		return 0, sc.errorf("expected a number, found %q", sc.s[sc.pos])
	}

	tok := sc.s[start:sc.pos]
	x, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		sc.pos = start
		return 0, sc.errorf("malformed number %q", tok)
	}
	return x, nil
}

// point reads a coordinate pair, relative to cur if rel is set.
func (sc *pathScanner) point(cur vec.Vec2, rel bool) (vec.Vec2, error) {
	x, err := sc.number()
	if err != nil {
		return vec.Vec2{}, err
	}
	y, err := sc.number()
	if err != nil {
		return vec.Vec2{}, err
	}
	p := vec.Vec2{X: x, Y: y}
	if rel {
		p = p.Add(cur)
	}
	return p, nil
}

// points reads n coordinate pairs, all relative to the same cur if rel is
// set.
func (sc *pathScanner) points(cur vec.Vec2, rel bool, n int) ([]vec.Vec2, error) {
	pts := make([]vec.Vec2, n)
	for i := range pts {
		p, err := sc.point(cur, rel)
		if err != nil {
			return nil, err
		}
		pts[i] = p
	}
	return pts, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
