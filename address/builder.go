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

package address

import (
	"errors"
	"fmt"
	"maps"
	"regexp"
	"strings"

	"dirpx.dev/urx/errdefs"
)

var (
	// ErrOwnerTagRange is returned when an owner tag falls outside
	// [MinOwnerTag, MaxOwnerTag].
	ErrOwnerTagRange = fmt.Errorf("urx(address): %w: owner tag out of range", errdefs.ErrValidation)
	// ErrInvalidPlacement is returned for placements that are not a valid
	// URI host name.
	ErrInvalidPlacement = fmt.Errorf("urx(address): %w: invalid placement", errdefs.ErrValidation)
	// ErrInvalidPath is returned for modules or items that cannot survive a
	// round trip through the URI path.
	ErrInvalidPath = fmt.Errorf("urx(address): %w: invalid module or item", errdefs.ErrValidation)
	// ErrInvalidParamName is returned for empty parameter names and
	// negative attachment indexes.
	ErrInvalidParamName = fmt.Errorf("urx(address): %w: invalid parameter name", errdefs.ErrValidation)
)

// placementRe matches an unreserved-only URI host.
var placementRe = regexp.MustCompile(`^[A-Za-z0-9._~-]*$`)

// Builder assembles an Address fluently. Validation errors are collected and
// reported by Build.
type Builder struct {
	a    Address
	errs []error
}

// Start returns an empty Builder.
func Start() *Builder {
	return &Builder{}
}

// Placement sets the placement.
func (b *Builder) Placement(placement string) *Builder {
	if !placementRe.MatchString(placement) {
		b.fail(ErrInvalidPlacement, "placement %q", placement)
	}
	b.a.placement = placement
	return b
}

// OwnerTag sets the owner tag; it must lie within [MinOwnerTag, MaxOwnerTag].
func (b *Builder) OwnerTag(tag int) *Builder {
	if err := CheckOwnerTag(tag); err != nil {
		b.errs = append(b.errs, err)
	}
	b.a.ownerTag = tag
	return b
}

// Module sets the module segment.
func (b *Builder) Module(module string) *Builder {
	if strings.Contains(module, "/") {
		b.fail(ErrInvalidPath, "module %q contains '/'", module)
	}
	b.a.module = module
	return b
}

// Item sets the item path. Inner slashes are allowed, a trailing one is not.
func (b *Builder) Item(item string) *Builder {
	if strings.HasSuffix(item, "/") {
		b.fail(ErrInvalidPath, "item %q ends with '/'", item)
	}
	b.a.item = item
	return b
}

// Param sets a parameter; the last value written for a name wins. Any
// non-empty name is accepted, reserved characters are escaped by Format.
func (b *Builder) Param(name, value string) *Builder {
	if name == "" {
		b.fail(ErrInvalidParamName, "parameter name %q", name)
	}
	if b.a.params == nil {
		b.a.params = make(map[string]string)
	}
	b.a.params[name] = value
	return b
}

// Attachment binds the named parameter to the attachment at index.
func (b *Builder) Attachment(name string, index int) *Builder {
	if index < 0 {
		b.fail(ErrInvalidParamName, "attachment %q has negative index %d", name, index)
	}
	return b.Param(name, Placeholder(index))
}

// Without removes a parameter.
func (b *Builder) Without(name string) *Builder {
	delete(b.a.params, name)
	return b
}

// Build returns the address or the joined validation errors.
func (b *Builder) Build() (Address, error) {
	if len(b.errs) > 0 {
		return Address{}, errors.Join(b.errs...)
	}
	a := b.a
	if len(a.params) == 0 {
		a.params = nil
	}
	// Detach from the builder so later edits don't leak into a.
	b.a.params = maps.Clone(a.params)
	return a, nil
}

// MustBuild is like Build but panics on invalid input.
func (b *Builder) MustBuild() Address {
	a, err := b.Build()
	if err != nil {
		panic(err)
	}
	return a
}

func (b *Builder) fail(kind error, format string, args ...any) {
	b.errs = append(b.errs, fmt.Errorf("%w: "+format, append([]any{kind}, args...)...))
}

// CheckOwnerTag validates tag against [MinOwnerTag, MaxOwnerTag].
func CheckOwnerTag(tag int) error {
	if tag < MinOwnerTag || tag > MaxOwnerTag {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrOwnerTagRange, tag, MinOwnerTag, MaxOwnerTag)
	}
	return nil
}
