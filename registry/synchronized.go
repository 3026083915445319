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

package registry

import (
	"sync"

	"dirpx.dev/urx/address"
	"dirpx.dev/urx/apis"
)

// NewSynchronized wraps reg so that every call holds one mutex. Use it when
// opens and closes are not confined to a single goroutine; a whole
// open or close still needs external ordering for the same object.
func NewSynchronized(reg apis.Registry) apis.Registry {
	if s, ok := reg.(*synchronized); ok {
		return s
	}
	return &synchronized{reg: reg}
}

// synchronized serializes access to an inner Registry.
type synchronized struct {
	mu  sync.Mutex
	reg apis.Registry
}

// Ensure synchronized implements apis.Registry.
var _ apis.Registry = (*synchronized)(nil)

// Add registers obj under the lock.
func (s *synchronized) Add(obj any, md apis.Metadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.Add(obj, md)
}

// Remove unregisters obj under the lock.
func (s *synchronized) Remove(obj any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.Remove(obj)
}

// Contains reports whether obj is registered.
func (s *synchronized) Contains(obj any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.Contains(obj)
}

// Get returns the object registered under id.
func (s *synchronized) Get(id int) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.Get(id)
}

// Metadata returns the metadata of obj.
func (s *synchronized) Metadata(obj any) (apis.Metadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.Metadata(obj)
}

// UpdateAddress replaces the address stored for obj.
func (s *synchronized) UpdateAddress(obj any, addr address.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.UpdateAddress(obj, addr)
}

// Entries returns a snapshot taken under the lock.
func (s *synchronized) Entries() []apis.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.Entries()
}

// Count returns the number of registered objects.
func (s *synchronized) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.Count()
}
