// Copyright 2024 The LSTF Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package token

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestPositionString(t *testing.T) {
	testCases := []struct {
		name string
		pos  Position
		want string
	}{
		{"full", Position{Filename: "a.lstf", Offset: 10, Line: 2, Column: 5}, "a.lstf:2:5"},
		{"no filename", Position{Line: 2, Column: 5}, "2:5"},
		{"no line info", Position{Filename: "a.lstf"}, "a.lstf"},
		{"zero", Position{}, "-"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			qt.Assert(t, qt.Equals(tc.pos.String(), tc.want))
		})
	}
}

func TestPositionIsValid(t *testing.T) {
	qt.Assert(t, qt.IsFalse(NoPos.IsValid()))
	qt.Assert(t, qt.IsTrue(Position{Line: 1, Column: 1}.IsValid()))
}

func TestDefaultFor(t *testing.T) {
	ref := DefaultFor("script.lstf")
	qt.Assert(t, qt.Equals(ref.String(), "script.lstf:1:1"))
	qt.Assert(t, qt.IsTrue(ref.IsValid()))
	qt.Assert(t, qt.Equals(ref.Begin, ref.End))
}
