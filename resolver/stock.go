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
	"fmt"

	"dirpx.dev/urx/address"
	"dirpx.dev/urx/apis"
	"dirpx.dev/urx/errdefs"
)

// TitleParam is the address parameter read by Entitled.
const TitleParam = "title"

// ErrNilFactory is returned by stock resolvers built without a factory.
var ErrNilFactory = fmt.Errorf("urx(resolver): %w: nil factory provided", errdefs.ErrValidation)

// Parameterless returns a resolver that ignores the address and builds the
// object with factory.
func Parameterless[T any](factory func() T) apis.ModuleItemResolver {
	return apis.ModuleItemResolverFunc(func(address.Address, apis.AttachmentSelector) (any, error) {
		if factory == nil {
			return nil, ErrNilFactory
		}
		return factory(), nil
	})
}

// Entitled returns a resolver that builds the object from the address title
// parameter. Addresses without a title pass their formatted form instead.
func Entitled[T any](codec address.Codec, factory func(title string) T) apis.ModuleItemResolver {
	return apis.ModuleItemResolverFunc(func(addr address.Address, _ apis.AttachmentSelector) (any, error) {
		if factory == nil {
			return nil, ErrNilFactory
		}
		title, ok := addr.Param(TitleParam)
		if !ok {
			title = codec.Format(addr)
		}
		return factory(title), nil
	})
}
