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

package resolver

import (
	"dirpx.dev/urx/address"
	"dirpx.dev/urx/apis"
	uref "dirpx.dev/urx/utils/reflect"
)

// Chain constructs an apis.PlacementResolver that asks the given resolvers
// in order and returns the first connector offered. Nil resolvers are
// ignored.
func Chain(resolvers ...apis.PlacementResolver) apis.PlacementResolver {
	// Filter out nils to avoid nil-interface panics on call sites.
	out := make([]apis.PlacementResolver, 0, len(resolvers))
	for _, r := range resolvers {
		if r != nil {
			out = append(out, r)
		}
	}
	return chain{resolvers: out}
}

// chain is an immutable, order-preserving placement resolver.
type chain struct {
	resolvers []apis.PlacementResolver
}

// Resolve runs resolvers in order until one accepts obj.
// Returns nil if every resolver declined.
func (c chain) Resolve(obj any, addr address.Address, attachments apis.AttachmentSelector) apis.Connector {
	for _, r := range c.resolvers {
		if conn := r.Resolve(obj, addr, attachments); !uref.IsNil(conn) {
			return conn
		}
	}
	return nil
}
