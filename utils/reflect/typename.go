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

package reflect

import (
	"path"
	"reflect"
	"strings"

	"dirpx.dev/urx/apis"
)

// NameOf returns the diagnostic name of v: its EntityName when v implements
// apis.Namer, otherwise the TypeName of its dynamic type.
func NameOf(v any) string {
	if v == nil {
		return "<nil>"
	}
	if n, ok := v.(apis.Namer); ok {
		if name := n.EntityName(); name != "" {
			return name
		}
	}
	return TypeName(reflect.TypeOf(v))
}

// TypeName returns a stable "pkg.Type" name for t. Pointers are rendered
// with a leading '*', generic instantiation parameters are dropped and
// unnamed types fall back to their reflect string.
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	stars := 0
	for t.Kind() == reflect.Ptr && t.Name() == "" {
		t = t.Elem()
		stars++
	}
	name := t.Name()
	if name == "" {
		return strings.Repeat("*", stars) + t.String()
	}
	name = stripTypeParams(name)
	if p := t.PkgPath(); p != "" {
		name = path.Base(p) + "." + name
	}
	return strings.Repeat("*", stars) + name
}

// TypeNameFor returns the TypeName of T. It also works for interface types.
func TypeNameFor[T any]() string {
	return TypeName(reflect.TypeFor[T]())
}

// stripTypeParams removes generic type instantiation suffix: "T[int,string]" -> "T".
func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}

// Comparable reports whether v can be used as a map key without panicking.
func Comparable(v any) bool {
	if v == nil {
		return false
	}
	return reflect.ValueOf(v).Comparable()
}
