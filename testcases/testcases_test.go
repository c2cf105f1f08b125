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

package testcases

import (
	"regexp"
	"testing"
)

var validName = regexp.MustCompile(`^[a-z0-9_]+$`)

func TestCaseNames(t *testing.T) {
	seen := make(map[string]bool)
	for category, cases := range All {
		if len(cases) == 0 {
			t.Errorf("category %q is empty", category)
		}
		for _, tc := range cases {
			name := category + "_" + tc.Name
			if !validName.MatchString(tc.Name) {
				t.Errorf("%s: invalid name", name)
			}
			if seen[name] {
				t.Errorf("%s: duplicate name", name)
			}
			seen[name] = true

			if tc.Width <= 0 || tc.Height <= 0 {
				t.Errorf("%s: invalid canvas %dx%d", name, tc.Width, tc.Height)
			}
			if tc.Stroke.Thickness <= 0 {
				t.Errorf("%s: thickness %g", name, tc.Stroke.Thickness)
			}
			if tc.Path == nil {
				t.Errorf("%s: no path", name)
			}
		}
	}
}
