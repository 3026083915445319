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
	"fmt"
	"math/rand/v2"

	"dirpx.dev/urx/address"
	"dirpx.dev/urx/apis"
	"dirpx.dev/urx/config"
	"dirpx.dev/urx/errdefs"
	uref "dirpx.dev/urx/utils/reflect"
)

var (
	// ErrNilObject is returned when a nil object is provided.
	ErrNilObject = fmt.Errorf("urx(registry): %w: nil object provided", errdefs.ErrValidation)
	// ErrIncomparable is returned for objects that cannot be tracked by identity
	// (slices, maps, funcs or structs containing them). Register pointers instead.
	ErrIncomparable = fmt.Errorf("urx(registry): %w: object is not comparable", errdefs.ErrValidation)
	// ErrNilCleanup is returned when metadata carries no cleanup handle.
	ErrNilCleanup = fmt.Errorf("urx(registry): %w: metadata has no cleanup handle", errdefs.ErrValidation)
	// ErrCapacityExceeded is returned when every id of the pool is in use.
	ErrCapacityExceeded = fmt.Errorf("urx(registry): %w: amount of objects that could be opened is exceeded", errdefs.ErrCapacity)
	// ErrDuplicate is returned when an object is added twice.
	ErrDuplicate = fmt.Errorf("urx(registry): %w: object already registered", errdefs.ErrConsistency)
	// ErrNotFound is returned when looking up an object that is not registered.
	ErrNotFound = fmt.Errorf("urx(registry): %w: object not registered", errdefs.ErrConsistency)
	// ErrUnknownID is returned when no registered object holds an id.
	ErrUnknownID = fmt.Errorf("urx(registry): %w: no object with id", errdefs.ErrConsistency)
)

// Option customizes a registry built by New.
type Option func(*registry)

// WithRand makes the initial id permutation come from rnd, for reproducible
// id sequences in tests.
func WithRand(rnd *rand.Rand) Option {
	return func(r *registry) {
		r.rnd = rnd
	}
}

// New constructs a Registry whose id universe is [0, cfg.MaxResolvedID].
// A negative MaxResolvedID falls back to the default.
//
// The returned registry performs no locking; wrap it with NewSynchronized
// when several goroutines mutate it.
func New(cfg apis.Config, opts ...Option) apis.Registry {
	if cfg.MaxResolvedID < 0 {
		cfg.MaxResolvedID = config.DefaultMaxResolvedID
	}
	r := &registry{
		byObject: make(map[any]apis.Metadata),
		byID:     make(map[int]any),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.pool = newIDPool(cfg.MaxResolvedID, r.rnd)
	return r
}

// registry is a map-backed Registry with a FIFO id pool.
type registry struct {
	// byObject maps each object to its metadata.
	byObject map[any]apis.Metadata
	// byID is the reverse id -> object map.
	byID map[int]any
	// pool holds the ids not in use.
	pool *idPool
	// rnd optionally seeds the initial permutation.
	rnd *rand.Rand
}

// Ensure registry implements apis.Registry.
var _ apis.Registry = (*registry)(nil)

// Add inserts obj and assigns it the next id from the pool.
func (r *registry) Add(obj any, md apis.Metadata) error {
	// Validate inputs early.
	if err := checkObject(obj); err != nil {
		return err
	}
	if md.Cleanup() == nil {
		return ErrNilCleanup
	}
	// Duplicates must not consume an id.
	if _, ok := r.byObject[obj]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, uref.NameOf(obj))
	}

	id, ok := r.pool.take()
	if !ok {
		return ErrCapacityExceeded
	}
	md, ok = md.WithID(id)
	if !ok {
		r.pool.put(id)
		return errdefs.Consistencyf("metadata of %s already carries an id", uref.NameOf(obj))
	}
	r.byObject[obj] = md
	r.byID[id] = obj
	return nil
}

// Remove deletes obj and recycles its id. Absent objects are ignored.
func (r *registry) Remove(obj any) error {
	if err := checkObject(obj); err != nil {
		return err
	}
	md, ok := r.byObject[obj]
	if !ok {
		return nil
	}
	id, _ := md.ID()
	delete(r.byObject, obj)
	delete(r.byID, id)
	r.pool.put(id)
	return nil
}

// Contains reports whether obj is registered.
func (r *registry) Contains(obj any) bool {
	if checkObject(obj) != nil {
		return false
	}
	_, ok := r.byObject[obj]
	return ok
}

// Get returns the object holding id.
func (r *registry) Get(id int) (any, error) {
	if obj, ok := r.byID[id]; ok {
		return obj, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownID, id)
}

// Metadata returns the metadata recorded for obj.
func (r *registry) Metadata(obj any) (apis.Metadata, error) {
	if err := checkObject(obj); err != nil {
		return apis.Metadata{}, err
	}
	if md, ok := r.byObject[obj]; ok {
		return md, nil
	}
	return apis.Metadata{}, fmt.Errorf("%w: %s", ErrNotFound, uref.NameOf(obj))
}

// UpdateAddress replaces the logical address of obj.
func (r *registry) UpdateAddress(obj any, addr address.Address) error {
	md, err := r.Metadata(obj)
	if err != nil {
		return err
	}
	r.byObject[obj] = md.WithAddress(addr)
	return nil
}

// Entries returns a snapshot of the registry (order is unspecified).
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, len(r.byObject))
	for obj, md := range r.byObject {
		entries = append(entries, apis.Entry{Object: obj, Metadata: md})
	}
	return entries
}

// Count returns the number of registered objects.
func (r *registry) Count() int {
	return len(r.byObject)
}

// checkObject rejects values that cannot be map keys.
func checkObject(obj any) error {
	if obj == nil {
		return ErrNilObject
	}
	if !uref.Comparable(obj) {
		return fmt.Errorf("%w: %s", ErrIncomparable, uref.NameOf(obj))
	}
	return nil
}
