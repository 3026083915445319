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

package apis

import (
	"io"
)

// Disposable is implemented by objects that release resources when closed.
type Disposable interface {
	Dispose()
}

// Refreshable is implemented by objects that can redraw themselves after
// being placed.
type Refreshable interface {
	Refresh()
}

// Namer lets an object choose the name it is reported under in diagnostics.
type Namer interface {
	// EntityName returns a short, stable name for the object.
	EntityName() string
}

// Dispose releases v if it exposes a disposal capability: Disposable first,
// then io.Closer. It reports whether v was disposable.
func Dispose(v any) (bool, error) {
	switch d := v.(type) {
	case Disposable:
		d.Dispose()
		return true, nil
	case io.Closer:
		return true, d.Close()
	default:
		return false, nil
	}
}

// Refresh refreshes v if it is Refreshable and reports whether it was.
func Refresh(v any) bool {
	r, ok := v.(Refreshable)
	if ok {
		r.Refresh()
	}
	return ok
}

// DisposeFunc adapts a function to Disposable.
type DisposeFunc func()

// Dispose calls f.
func (f DisposeFunc) Dispose() { f() }
