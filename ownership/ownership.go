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

package ownership

import (
	"fmt"

	"dirpx.dev/urx/apis"
	"dirpx.dev/urx/errdefs"
	uref "dirpx.dev/urx/utils/reflect"
)

var (
	// ErrNilObject is returned when a nil object is provided.
	ErrNilObject = fmt.Errorf("urx(ownership): %w: nil object provided", errdefs.ErrValidation)
	// ErrIncomparable is returned for objects that cannot be tracked by identity.
	ErrIncomparable = fmt.Errorf("urx(ownership): %w: object is not comparable", errdefs.ErrValidation)
	// ErrNilConnector is returned when Set is called with a nil connector.
	ErrNilConnector = fmt.Errorf("urx(ownership): %w: nil connector provided", errdefs.ErrValidation)
	// ErrNoOwner is returned when an object has no recorded connector.
	ErrNoOwner = fmt.Errorf("urx(ownership): %w: entry hasn't been found", errdefs.ErrConsistency)
)

// table is a map-backed OwnershipTable. Like the registry it performs no
// locking.
type table struct {
	owners map[any]apis.Connector
}

// Ensure table implements apis.OwnershipTable.
var _ apis.OwnershipTable = (*table)(nil)

// New constructs an empty OwnershipTable.
func New() apis.OwnershipTable {
	return &table{owners: make(map[any]apis.Connector)}
}

// Get returns the connector owning obj.
func (t *table) Get(obj any) (apis.Connector, error) {
	if err := checkObject(obj); err != nil {
		return nil, err
	}
	if c, ok := t.owners[obj]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNoOwner, uref.NameOf(obj))
}

// Set records c as the owner of obj.
func (t *table) Set(obj any, c apis.Connector) error {
	if err := checkObject(obj); err != nil {
		return err
	}
	if uref.IsNil(c) {
		return ErrNilConnector
	}
	t.owners[obj] = c
	return nil
}

// Remove deletes the entry of obj. Removing an object without an owner is an
// error: every registered object is expected to have one.
func (t *table) Remove(obj any) error {
	if err := checkObject(obj); err != nil {
		return err
	}
	if _, ok := t.owners[obj]; !ok {
		return fmt.Errorf("%w: %s", ErrNoOwner, uref.NameOf(obj))
	}
	delete(t.owners, obj)
	return nil
}

// Contains reports whether obj has an owner.
func (t *table) Contains(obj any) bool {
	if checkObject(obj) != nil {
		return false
	}
	_, ok := t.owners[obj]
	return ok
}

// Len returns the number of owned objects.
func (t *table) Len() int {
	return len(t.owners)
}

func checkObject(obj any) error {
	if obj == nil {
		return ErrNilObject
	}
	if !uref.Comparable(obj) {
		return fmt.Errorf("%w: %s", ErrIncomparable, uref.NameOf(obj))
	}
	return nil
}
