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

package dragdrop

// Key is a typed payload format. Keys compare by identity, so two keys with
// the same name are distinct formats.
type Key[T any] struct {
	name string
}

// NewKey returns a new payload format named name.
func NewKey[T any](name string) *Key[T] {
	return &Key[T]{name: name}
}

// Name returns the name the key was created with.
func (k *Key[T]) Name() string { return k.name }

// String implements fmt.Stringer.
func (k *Key[T]) String() string { return k.name }

// SetPayload stores v under key for the rest of the gesture.
func SetPayload[T any](t *Transfer, key *Key[T], v T) error {
	if key == nil {
		return ErrNilKey
	}
	if !t.IsActive() {
		return ErrNotDragging
	}
	t.payload[key] = v
	return nil
}

// Payload returns the value stored under key, or the zero T when none is.
func Payload[T any](t *Transfer, key *Key[T]) (T, error) {
	var zero T
	if key == nil {
		return zero, ErrNilKey
	}
	if !t.IsActive() {
		return zero, ErrNotDragging
	}
	v, _ := t.payload[key].(T)
	return v, nil
}

// HasPayload reports whether a value is stored under key. It is false while
// no drag is active.
func HasPayload[T any](t *Transfer, key *Key[T]) bool {
	if key == nil || !t.IsActive() {
		return false
	}
	_, ok := t.payload[key]
	return ok
}
