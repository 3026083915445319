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

// Package address implements the opaque identifiers that name UI-hosted
// objects: a structured Address value, the Codec that turns it into a URI
// of the form
//
//	scheme://placement[:ownerTag]/module/item[?name=value&...]
//
// and back, a fluent Builder, and the "{N}" attachment placeholders that
// bind caller-supplied objects into an address indirectly.
package address

import (
	"maps"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// MinOwnerTag is the smallest owner tag an address can carry.
	MinOwnerTag = 0
	// MaxOwnerTag is the largest owner tag an address can carry; the tag
	// travels in the URI port slot.
	MaxOwnerTag = 65535
)

// Address is an immutable, structured identifier of a resolvable object and
// of the placement that should host it. The zero value is a valid address
// with every component empty. Use Start or Edit to construct one.
type Address struct {
	placement string
	ownerTag  int
	module    string
	item      string
	params    map[string]string
}

// Placement returns the name of the placement (URI host).
func (a Address) Placement() string { return a.placement }

// OwnerTag returns the numeric owner tag (URI port, 0 when absent).
func (a Address) OwnerTag() int { return a.ownerTag }

// Module returns the first path segment.
func (a Address) Module() string { return a.module }

// Item returns the remaining path after the module segment.
func (a Address) Item() string { return a.item }

// Key returns the case-insensitive module-item resolver key of the address.
func (a Address) Key() Key { return NewKey(a.module, a.item) }

// Param returns the value of the named parameter.
func (a Address) Param(name string) (string, bool) {
	v, ok := a.params[name]
	return v, ok
}

// ParamOr returns the value of the named parameter or def when it is absent.
func (a Address) ParamOr(name, def string) string {
	if v, ok := a.params[name]; ok {
		return v
	}
	return def
}

// Params returns a copy of the parameters.
func (a Address) Params() map[string]string {
	return maps.Clone(a.params)
}

// ParamNames returns the parameter names in ascending order.
func (a Address) ParamNames() []string {
	return slices.Sorted(maps.Keys(a.params))
}

// Equal reports whether a and b name the same address component-wise.
func (a Address) Equal(b Address) bool {
	return a.placement == b.placement &&
		a.ownerTag == b.ownerTag &&
		a.module == b.module &&
		a.item == b.item &&
		maps.Equal(a.params, b.params)
}

// Edit returns a Builder seeded with a copy of a.
func (a Address) Edit() *Builder {
	b := Start()
	b.a = a
	b.a.params = maps.Clone(a.params)
	return b
}

// yamlAddress is the serialized shape of an Address.
type yamlAddress struct {
	Placement  string            `yaml:"placement"`
	OwnerTag   int               `yaml:"ownerTag"`
	Module     string            `yaml:"module"`
	Item       string            `yaml:"item"`
	Parameters map[string]string `yaml:"parameters,omitempty"`
}

// MarshalYAML implements yaml.Marshaler.
func (a Address) MarshalYAML() (any, error) {
	return yamlAddress{
		Placement:  a.placement,
		OwnerTag:   a.ownerTag,
		Module:     a.module,
		Item:       a.item,
		Parameters: a.params,
	}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler. The decoded components are
// validated exactly like Builder input.
func (a *Address) UnmarshalYAML(node *yaml.Node) error {
	var y yamlAddress
	if err := node.Decode(&y); err != nil {
		return err
	}
	b := Start().Placement(y.Placement).OwnerTag(y.OwnerTag).Module(y.Module).Item(y.Item)
	for _, name := range slices.Sorted(maps.Keys(y.Parameters)) {
		b.Param(name, y.Parameters[name])
	}
	out, err := b.Build()
	if err != nil {
		return err
	}
	*a = out
	return nil
}

// Key identifies a module-item resolver. Module and item are compared
// case-insensitively.
type Key struct {
	module string
	item   string
}

// NewKey constructs a Key, folding module and item to lower case.
func NewKey(module, item string) Key {
	return Key{module: strings.ToLower(module), item: strings.ToLower(item)}
}

// Module returns the lower-cased module.
func (k Key) Module() string { return k.module }

// Item returns the lower-cased item.
func (k Key) Item() string { return k.item }

// String returns "module/item".
func (k Key) String() string { return k.module + "/" + k.item }
