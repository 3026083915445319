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

// Connector attaches resolved objects to, and detaches them from, a concrete
// UI placement.
type Connector interface {
	// Connect places obj.
	Connect(obj any) error
	// Disconnect removes obj from the placement.
	Disconnect(obj any) error
	// ResponsibleForRefresh reports whether the connector already refreshes
	// the object on connect. When true the object's own Refreshable
	// capability is not invoked.
	ResponsibleForRefresh() bool
}

// OwnershipTable records which connector is currently responsible for
// disconnecting each object. Lookups of absent objects are errors; there is
// no default owner.
type OwnershipTable interface {
	// Get returns the connector owning obj.
	Get(obj any) (Connector, error)
	// Set records c as the owner of obj, overwriting any previous owner.
	Set(obj any, c Connector) error
	// Remove deletes the entry of obj.
	Remove(obj any) error
	// Contains reports whether obj has an owner.
	Contains(obj any) bool
	// Len returns the number of owned objects.
	Len() int
}
