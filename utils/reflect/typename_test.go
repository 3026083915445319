/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package reflect_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	uref "dirpx.dev/urx/utils/reflect"
)

type View struct{ title string }

type Generic[T any] struct{ v T }

type named struct{}

func (named) EntityName() string { return "docs.readme" }

type blankNamer struct{}

func (blankNamer) EntityName() string { return "" }

func TestTypeName(t *testing.T) {
	testCases := []struct {
		name string
		v    any
		want string
	}{
		{name: "struct", v: View{}, want: "reflect_test.View"},
		{name: "pointer", v: &View{}, want: "*reflect_test.View"},
		{name: "double pointer", v: func() **View { p := &View{}; return &p }(), want: "**reflect_test.View"},
		{name: "generic", v: Generic[int]{}, want: "reflect_test.Generic"},
		{name: "builtin", v: 42, want: "int"},
		{name: "unnamed", v: []string{}, want: "[]string"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, uref.NameOf(tc.v))
		})
	}
}

func TestNameOf_PrefersNamer(t *testing.T) {
	assert.Equal(t, "docs.readme", uref.NameOf(named{}))
	assert.Equal(t, "reflect_test.blankNamer", uref.NameOf(blankNamer{}))
	assert.Equal(t, "<nil>", uref.NameOf(nil))
}

func TestTypeNameFor_Interface(t *testing.T) {
	assert.Equal(t, "io.Reader", uref.TypeNameFor[io.Reader]())
	assert.Equal(t, "*reflect_test.View", uref.TypeNameFor[*View]())
}

func TestComparable(t *testing.T) {
	assert.True(t, uref.Comparable(&View{}))
	assert.True(t, uref.Comparable("x"))
	assert.False(t, uref.Comparable([]int{1}))
	assert.False(t, uref.Comparable(map[string]int{}))
	assert.False(t, uref.Comparable(struct{ s []int }{}))
	assert.False(t, uref.Comparable(nil))
}

func TestIsNil(t *testing.T) {
	var v *View
	var r io.Reader
	assert.True(t, uref.IsNil(nil))
	assert.True(t, uref.IsNil(v))
	assert.True(t, uref.IsNil(r))
	assert.True(t, uref.IsNil([]int(nil)))
	assert.False(t, uref.IsNil(&View{}))
	assert.False(t, uref.IsNil(View{}))
	assert.False(t, uref.IsNil(0))
}
