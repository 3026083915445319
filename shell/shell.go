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

// Package shell is the facade over the resolution core: it owns the
// resolver registrations, the shared registry and ownership table, and the
// drag transfer, and starts a resolution pipeline per open.
//
// A Shell is not safe for concurrent use. Confine it to one goroutine (the
// UI goroutine in a typical host), or build it with a synchronized registry
// and serialize the remaining calls yourself.
package shell

import (
	"errors"
	"fmt"
	"maps"

	"github.com/charmbracelet/log"

	"dirpx.dev/urx/address"
	"dirpx.dev/urx/apis"
	"dirpx.dev/urx/builder"
	"dirpx.dev/urx/config"
	"dirpx.dev/urx/dragdrop"
	"dirpx.dev/urx/errdefs"
	"dirpx.dev/urx/resolution"
)

var (
	// ErrNilResolver is returned when a nil resolver is registered.
	ErrNilResolver = fmt.Errorf("urx(shell): %w: nil resolver provided", errdefs.ErrValidation)
	// ErrNotPlacementResolver is returned by AddWeakPlacementResolver for a
	// pointer whose type does not implement apis.PlacementResolver.
	ErrNotPlacementResolver = fmt.Errorf("urx(shell): %w: value does not implement PlacementResolver", errdefs.ErrValidation)
	// ErrDuplicateResolver is returned when a module item key is registered twice.
	ErrDuplicateResolver = fmt.Errorf("urx(shell): %w: module item resolver already registered", errdefs.ErrConsistency)
	// ErrNotOpen is returned for objects that are not opened in the shell.
	ErrNotOpen = fmt.Errorf("urx(shell): %w: object is not opened in the shell", errdefs.ErrConsistency)
)

// Option customizes a Shell.
type Option func(*Shell)

// WithLogger sets the logger shared by the shell, its pipelines and its drag
// transfer.
func WithLogger(l *log.Logger) Option {
	return func(s *Shell) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithBuilder sets the builder of the registry and ownership table.
func WithBuilder(b apis.Builder) Option {
	return func(s *Shell) {
		if b != nil {
			s.builder = b
		}
	}
}

// WithPipelineOptions appends options applied to every pipeline.
func WithPipelineOptions(opts ...resolution.Option) Option {
	return func(s *Shell) {
		s.pipelineOpts = append(s.pipelineOpts, opts...)
	}
}

// Shell hosts the resolution core for one configuration.
type Shell struct {
	codec        address.Codec
	logger       *log.Logger
	builder      apis.Builder
	reg          apis.Registry
	owners       apis.OwnershipTable
	drag         *dragdrop.Transfer
	items        map[address.Key]apis.ModuleItemResolver
	placements   []placement
	pipelineOpts []resolution.Option
}

// Ensure Shell implements apis.Customization.
var _ apis.Customization = (*Shell)(nil)

// New constructs a Shell for cfg.
func New(cfg apis.Config, opts ...Option) (*Shell, error) {
	// Validate inputs early.
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	codec, err := address.NewCodec(cfg.Scheme)
	if err != nil {
		return nil, err
	}

	s := &Shell{
		codec:   codec,
		logger:  log.Default().WithPrefix("urx"),
		builder: builder.New(),
		items:   make(map[address.Key]apis.ModuleItemResolver),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.reg = s.builder.BuildRegistry(cfg)
	s.owners = s.builder.BuildOwnership(cfg)
	s.drag = dragdrop.New(s.owners, dragdrop.WithLogger(s.logger))
	return s, nil
}

// Codec returns the address codec of the shell scheme.
func (s *Shell) Codec() address.Codec { return s.codec }

// DragDrop returns the drag transfer shared by every placement.
func (s *Shell) DragDrop() *dragdrop.Transfer { return s.drag }

// AddModuleItemResolver registers r for key. Each key can be registered once.
func (s *Shell) AddModuleItemResolver(key address.Key, r apis.ModuleItemResolver) error {
	if r == nil {
		return ErrNilResolver
	}
	if _, ok := s.items[key]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateResolver, key)
	}
	s.items[key] = r
	return nil
}

// ModuleItemResolver returns the resolver registered for key.
func (s *Shell) ModuleItemResolver(key address.Key) (apis.ModuleItemResolver, bool) {
	r, ok := s.items[key]
	return r, ok
}

// ModuleItemResolvers returns a copy of the module item registrations.
func (s *Shell) ModuleItemResolvers() map[address.Key]apis.ModuleItemResolver {
	return maps.Clone(s.items)
}

// Resolve starts a pipeline opening addr. Attachments are referenced from
// the address by "{N}" parameter values.
func (s *Shell) Resolve(addr address.Address, attachments ...any) (*resolution.Pipeline, error) {
	return resolution.New(addr, attachments, resolution.Deps{
		Registry:      s.reg,
		Ownership:     s.owners,
		Customization: s,
		Codec:         s.codec,
		Logger:        s.logger,
	}, s.pipelineOpts...)
}

// ResolveURI parses raw and starts a pipeline opening it.
func (s *Shell) ResolveURI(raw string, attachments ...any) (*resolution.Pipeline, error) {
	addr, err := s.codec.Parse(raw)
	if err != nil {
		return nil, err
	}
	return s.Resolve(addr, attachments...)
}

// IsResolvedOpen reports whether obj is currently opened.
func (s *Shell) IsResolvedOpen(obj any) bool {
	return s.reg.Contains(obj)
}

// ResolvedID returns the id assigned to obj.
func (s *Shell) ResolvedID(obj any) (int, error) {
	md, err := s.metadata(obj)
	if err != nil {
		return 0, err
	}
	id, _ := md.ID()
	return id, nil
}

// ResolvedByID returns the opened object holding id.
func (s *Shell) ResolvedByID(id int) (any, error) {
	return s.reg.Get(id)
}

// ResolvedAddress returns the current logical address of obj.
func (s *Shell) ResolvedAddress(obj any) (address.Address, error) {
	md, err := s.metadata(obj)
	if err != nil {
		return address.Address{}, err
	}
	return md.Address(), nil
}

// UpdateResolvedAddress replaces the logical address of obj, for objects
// whose state moved away from the address they were opened with.
func (s *Shell) UpdateResolvedAddress(obj any, addr address.Address) error {
	if _, err := s.metadata(obj); err != nil {
		return err
	}
	return s.reg.UpdateAddress(obj, addr)
}

// CloseResolved closes obj through the cleanup chain of its open.
func (s *Shell) CloseResolved(obj any) error {
	md, err := s.metadata(obj)
	if err != nil {
		return err
	}
	md.Cleanup().Dispose()
	return nil
}

// CloseResolvedList closes every object of objs. It keeps going after a
// failure and returns the joined errors.
func (s *Shell) CloseResolvedList(objs []any) error {
	list := append([]any(nil), objs...)
	var errs []error
	for _, obj := range list {
		if err := s.CloseResolved(obj); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Shell) metadata(obj any) (apis.Metadata, error) {
	if !s.reg.Contains(obj) {
		return apis.Metadata{}, ErrNotOpen
	}
	return s.reg.Metadata(obj)
}
