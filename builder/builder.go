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

package builder

import (
	"math/rand/v2"

	"dirpx.dev/urx/apis"
	"dirpx.dev/urx/ownership"
	"dirpx.dev/urx/registry"
)

// Option customizes the stores built by a builder.
type Option func(*builder)

// Synchronized makes BuildRegistry return a registry guarded by a mutex.
func Synchronized() Option {
	return func(b *builder) {
		b.synchronized = true
	}
}

// WithRand seeds the id permutation of every built registry.
func WithRand(rnd *rand.Rand) Option {
	return func(b *builder) {
		b.rnd = rnd
	}
}

// New creates and returns a new instance of an apis.Builder.
func New(opts ...Option) apis.Builder {
	b := &builder{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// builder holds the options applied to every store it builds.
type builder struct {
	synchronized bool
	rnd          *rand.Rand
}

// BuildRegistry builds and returns a new apis.Registry whose id universe is
// [0, cfg.MaxResolvedID].
func (b *builder) BuildRegistry(cfg apis.Config) apis.Registry {
	var opts []registry.Option
	if b.rnd != nil {
		opts = append(opts, registry.WithRand(b.rnd))
	}
	reg := registry.New(cfg, opts...)
	if b.synchronized {
		reg = registry.NewSynchronized(reg)
	}
	return reg
}

// BuildOwnership builds and returns an empty apis.OwnershipTable.
func (b *builder) BuildOwnership(apis.Config) apis.OwnershipTable {
	return ownership.New()
}
