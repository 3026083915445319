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

// AttachmentSelector maps a correlation id embedded into an address back to
// the attachment it stands for. It returns nil for unknown ids.
type AttachmentSelector func(id string) any

// ModuleItemResolver turns an address into a domain object. It is looked
// up by the address module and item, case-insensitively.
type ModuleItemResolver interface {
	// Resolve returns the object named by addr. A nil object with a nil
	// error means "resolved to nothing" and ends the open quietly.
	Resolve(addr address.Address, attachments AttachmentSelector) (any, error)
}

// ModuleItemResolverFunc adapts a function to ModuleItemResolver.
type ModuleItemResolverFunc func(addr address.Address, attachments AttachmentSelector) (any, error)

// Resolve calls f.
func (f ModuleItemResolverFunc) Resolve(addr address.Address, attachments AttachmentSelector) (any, error) {
	return f(addr, attachments)
}

// PlacementResolver picks the connector that will host a resolved object.
// Resolvers are consulted in registration order; the first non-nil
// connector wins.
type PlacementResolver interface {
	// Resolve returns a connector willing to host obj, or nil to decline.
	Resolve(obj any, addr address.Address, attachments AttachmentSelector) Connector
}

// PlacementResolverFunc adapts a function to PlacementResolver.
type PlacementResolverFunc func(obj any, addr address.Address, attachments AttachmentSelector) Connector

// Resolve calls f.
func (f PlacementResolverFunc) Resolve(obj any, addr address.Address, attachments AttachmentSelector) Connector {
	return f(obj, addr, attachments)
}
