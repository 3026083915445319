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

package shell

import (
	"weak"

	"dirpx.dev/urx/apis"
	uref "dirpx.dev/urx/utils/reflect"
)

// placement is one placement resolver registration, held either strongly or
// through a weak pointer.
type placement struct {
	strong apis.PlacementResolver
	live   func() apis.PlacementResolver
	same   func(v any) bool
}

func (p placement) resolver() apis.PlacementResolver {
	if p.live != nil {
		return p.live()
	}
	return p.strong
}

func (p placement) is(v any) bool {
	if p.same != nil {
		return p.same(v)
	}
	return uref.Comparable(v) && uref.Comparable(p.strong) && any(p.strong) == v
}

// AddPlacementResolver registers r after the existing placement resolvers.
// The shell keeps r alive until RemovePlacementResolver. Registering the
// same resolver twice is a no-op. Only comparable resolvers can be found
// again, so register a pointer rather than a bare
// apis.PlacementResolverFunc when it has to be removed later.
func (s *Shell) AddPlacementResolver(r apis.PlacementResolver) error {
	if uref.IsNil(r) {
		return ErrNilResolver
	}
	if s.hasPlacement(r) {
		return nil
	}
	s.placements = append(s.placements, placement{strong: r})
	return nil
}

// RemovePlacementResolver unregisters r and reports whether it was registered.
func (s *Shell) RemovePlacementResolver(r apis.PlacementResolver) bool {
	for i, p := range s.placements {
		if p.is(r) {
			s.placements = append(s.placements[:i], s.placements[i+1:]...)
			return true
		}
	}
	return false
}

// AddWeakPlacementResolver registers r without keeping it alive: once r is
// garbage collected it silently drops out of the placement resolvers.
// *R must implement apis.PlacementResolver.
func AddWeakPlacementResolver[R any](s *Shell, r *R) error {
	if r == nil {
		return ErrNilResolver
	}
	if _, ok := any(r).(apis.PlacementResolver); !ok {
		return ErrNotPlacementResolver
	}
	if s.hasPlacement(r) {
		return nil
	}

	wp := weak.Make(r)
	s.placements = append(s.placements, placement{
		live: func() apis.PlacementResolver {
			p := wp.Value()
			if p == nil {
				return nil
			}
			return any(p).(apis.PlacementResolver)
		},
		same: func(v any) bool {
			p, ok := v.(*R)
			return ok && p != nil && weak.Make(p) == wp
		},
	})
	return nil
}

// PlacementResolvers returns the live placement resolvers in registration
// order. Collected weak registrations are swept.
func (s *Shell) PlacementResolvers() []apis.PlacementResolver {
	out := make([]apis.PlacementResolver, 0, len(s.placements))
	kept := s.placements[:0]
	for _, p := range s.placements {
		r := p.resolver()
		if r == nil {
			continue
		}
		kept = append(kept, p)
		out = append(out, r)
	}
	if swept := len(s.placements) - len(kept); swept > 0 {
		clear(s.placements[len(kept):])
		s.logger.Debug("swept collected placement resolvers", "count", swept)
	}
	s.placements = kept
	return out
}

func (s *Shell) hasPlacement(v any) bool {
	for _, p := range s.placements {
		if p.is(v) {
			return true
		}
	}
	return false
}
