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
	"dirpx.dev/urx/address"
)

// Registry stores every currently open resolved object together with its
// metadata and a recycled integer id.
//
// Implementations are not required to be safe for concurrent use: callers
// serialize all mutations onto one logical owner.
type Registry interface {
	// Add inserts obj and assigns it an id from the pool. It fails when the
	// pool is exhausted or obj is already present; a duplicate insert never
	// consumes an id.
	Add(obj any, md Metadata) error
	// Remove deletes obj and returns its id to the pool. Removing an absent
	// object is a no-op.
	Remove(obj any) error
	// Contains reports whether obj is present.
	Contains(obj any) bool
	// Get returns the object holding id, or an error when no object does.
	Get(id int) (any, error)
	// Metadata returns the metadata of obj, or an error when obj is absent.
	Metadata(obj any) (Metadata, error)
	// UpdateAddress replaces the logical address of obj, keeping its id and
	// cleanup handle.
	UpdateAddress(obj any, addr address.Address) error
	// Entries returns a snapshot of the registry (order is unspecified).
	Entries() []Entry
	// Count returns the number of objects present.
	Count() int
}

// Entry is a single (object, metadata) pair in a Registry snapshot.
type Entry struct {
	// Object is the resolved object.
	Object any
	// Metadata is the immutable metadata recorded for Object.
	Metadata Metadata
}

// Metadata is the immutable record kept for an open object.
type Metadata struct {
	addr     address.Address
	cleanup  Disposable
	id       int
	assigned bool
}

// NewMetadata constructs Metadata without an id.
func NewMetadata(addr address.Address, cleanup Disposable) Metadata {
	return Metadata{addr: addr, cleanup: cleanup, id: -1}
}

// Address returns the address the object was opened with, or the one set
// later through Registry.UpdateAddress.
func (m Metadata) Address() address.Address { return m.addr }

// Cleanup returns the handle that closes the object.
func (m Metadata) Cleanup() Disposable { return m.cleanup }

// ID returns the assigned id; ok is false until the object is registered.
func (m Metadata) ID() (id int, ok bool) { return m.id, m.assigned }

// WithID returns a copy with id assigned. An id can be assigned only once;
// ok is false if m already carries one.
func (m Metadata) WithID(id int) (out Metadata, ok bool) {
	if m.assigned {
		return m, false
	}
	m.id, m.assigned = id, true
	return m, true
}

// WithAddress returns a copy with addr as the logical address.
func (m Metadata) WithAddress(addr address.Address) Metadata {
	m.addr = addr
	return m
}
