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

package main

import "testing"

func TestFrameName(t *testing.T) {
	cases := []struct {
		pattern string
		i       int
		want    string
	}{
		{"frame-%03d.png", 7, "frame-007.png"},
		{"out.png", 12, "out-0012.png"},
		{"anim/out", 3, "anim/out-0003"},
	}
	for _, c := range cases {
		if got := frameName(c.pattern, c.i); got != c.want {
			t.Errorf("frameName(%q, %d) = %q, want %q", c.pattern, c.i, got, c.want)
		}
	}
}
