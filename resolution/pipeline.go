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

package resolution

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"dirpx.dev/urx/address"
	"dirpx.dev/urx/apis"
	"dirpx.dev/urx/cleanup"
	"dirpx.dev/urx/errdefs"
	"dirpx.dev/urx/resolver"
	uref "dirpx.dev/urx/utils/reflect"
)

var (
	// ErrMissingDependency is returned by New when a required collaborator is nil.
	ErrMissingDependency = fmt.Errorf("urx(resolution): %w: missing dependency", errdefs.ErrValidation)
	// ErrAlreadyOpened is returned when a pipeline is opened a second time.
	ErrAlreadyOpened = fmt.Errorf("urx(resolution): %w: pipeline has been already opened", errdefs.ErrConsistency)
	// ErrSetupAlreadyDone is returned when a second typed setup is played
	// through the same pipeline.
	ErrSetupAlreadyDone = fmt.Errorf("urx(resolution): %w: setup has been already done", errdefs.ErrConsistency)
	// ErrPanicked wraps a panic raised by an external collaborator while opening.
	ErrPanicked = errors.New("urx(resolution): collaborator panicked")
)

// Deps are the shared collaborators of every pipeline.
type Deps struct {
	// Registry stores opened objects.
	Registry apis.Registry
	// Ownership records the connector of each opened object.
	Ownership apis.OwnershipTable
	// Customization supplies the resolvers.
	Customization apis.Customization
	// Codec formats addresses for logs and errors.
	Codec address.Codec
	// Logger receives pipeline diagnostics. Nil means the package default.
	Logger *log.Logger
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithCorrelationIDs replaces the generator of attachment correlation ids.
func WithCorrelationIDs(gen func() string) Option {
	return func(p *Pipeline) {
		if gen != nil {
			p.newID = gen
		}
	}
}

// player runs a typed setup against the resolved object.
type player func(uri string, obj any, logger *log.Logger, chain *cleanup.Chain)

// Pipeline opens one address. It is not reusable: a second open fails.
type Pipeline struct {
	addr        address.Address
	attachments []any
	deps        Deps
	logger      *log.Logger
	newID       func() string
	player      player
	opened      bool
}

// New constructs a Pipeline opening addr with the given attachments.
func New(addr address.Address, attachments []any, deps Deps, opts ...Option) (*Pipeline, error) {
	// Validate inputs early.
	switch {
	case deps.Registry == nil:
		return nil, fmt.Errorf("%w: registry", ErrMissingDependency)
	case deps.Ownership == nil:
		return nil, fmt.Errorf("%w: ownership table", ErrMissingDependency)
	case deps.Customization == nil:
		return nil, fmt.Errorf("%w: customization", ErrMissingDependency)
	case deps.Codec.Scheme() == "":
		return nil, fmt.Errorf("%w: codec", ErrMissingDependency)
	}

	p := &Pipeline{
		addr:        addr,
		attachments: attachments,
		deps:        deps,
		logger:      deps.Logger,
		newID:       uuid.NewString,
	}
	if p.logger == nil {
		p.logger = log.Default().WithPrefix("urx")
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Address returns the address the pipeline opens.
func (p *Pipeline) Address() address.Address { return p.addr }

// Open opens the address and logs any failure of the resolve and connect
// steps. The returned chain is never nil; after a failure disposing it is a
// no-op.
func (p *Pipeline) Open() *cleanup.Chain {
	chain, err := p.OpenOrThrow()
	if err != nil {
		p.logger.Error("error when opening the view", "uri", p.deps.Codec.Format(p.addr), "err", err)
	}
	return chain
}

// OpenOrThrow opens the address and returns the chain that closes it.
// Panics raised by resolvers or connectors are returned as errors wrapping
// ErrPanicked. The chain is never nil, so it can be disposed even when err
// is set.
func (p *Pipeline) OpenOrThrow() (*cleanup.Chain, error) {
	chain := cleanup.New()
	if p.opened {
		return chain, ErrAlreadyOpened
	}
	p.opened = true

	err := guard(func() error { return p.open(chain) })
	return chain, err
}

func (p *Pipeline) open(chain *cleanup.Chain) error {
	addr, attachments, err := p.embedAttachments()
	if err != nil {
		return err
	}

	obj, err := p.resolveModuleItem(addr, attachments)
	if err != nil {
		return err
	}
	if uref.IsNil(obj) {
		p.logger.Debug("address resolved to nothing", "uri", p.deps.Codec.Format(addr))
		return nil
	}

	conn, err := p.resolvePlacement(obj, addr, attachments)
	if err != nil {
		return err
	}
	if err := p.connect(obj, addr, conn, chain); err != nil {
		return err
	}

	p.playSetup(addr, obj, chain)
	p.deferClose(obj, chain)

	p.logger.Info("address has been opened", "uri", p.deps.Codec.Format(addr))

	p.sendRefresh(obj, conn)
	return nil
}

// embedAttachments replaces placeholder parameters that index into the
// attachments with fresh correlation ids.
func (p *Pipeline) embedAttachments() (address.Address, apis.AttachmentSelector, error) {
	if len(p.attachments) == 0 {
		return p.addr, func(string) any { return nil }, nil
	}

	embedded := make(map[string]any, len(p.attachments))
	b := p.addr.Edit()
	for _, name := range p.addr.ParamNames() {
		value, _ := p.addr.Param(name)
		index, ok := address.PlaceholderIndex(value)
		if !ok || index >= len(p.attachments) {
			continue
		}
		id := p.newID()
		embedded[id] = p.attachments[index]
		b.Param(name, id)
	}
	addr, err := b.Build()
	if err != nil {
		return address.Address{}, nil, err
	}
	return addr, func(id string) any { return embedded[id] }, nil
}

func (p *Pipeline) resolveModuleItem(addr address.Address, attachments apis.AttachmentSelector) (any, error) {
	key := addr.Key()
	r, ok := p.deps.Customization.ModuleItemResolver(key)
	if !ok || r == nil {
		return nil, errdefs.NewResolutionError(p.deps.Codec.Format(addr),
			fmt.Sprintf("no module item resolver has been registered for %q", key), nil)
	}
	obj, err := r.Resolve(addr, attachments)
	if err != nil {
		return nil, errdefs.NewResolutionError(p.deps.Codec.Format(addr),
			fmt.Sprintf("module item resolver for %q failed", key), err)
	}
	return obj, nil
}

func (p *Pipeline) resolvePlacement(obj any, addr address.Address, attachments apis.AttachmentSelector) (apis.Connector, error) {
	conn := resolver.Chain(p.deps.Customization.PlacementResolvers()...).Resolve(obj, addr, attachments)
	if conn == nil {
		return nil, errdefs.NewResolutionError(p.deps.Codec.Format(addr),
			"none of the placement resolvers accepted the object", nil)
	}
	return conn, nil
}

// connect places obj and registers it. Registration failures undo the
// placement before returning.
func (p *Pipeline) connect(obj any, addr address.Address, conn apis.Connector, chain *cleanup.Chain) error {
	if err := conn.Connect(obj); err != nil {
		return fmt.Errorf("urx(resolution): connect %s: %w", uref.NameOf(obj), err)
	}

	err := p.deps.Registry.Add(obj, apis.NewMetadata(addr, chain))
	if err == nil {
		if err = p.deps.Ownership.Set(obj, conn); err != nil {
			err = errors.Join(err, p.deps.Registry.Remove(obj))
		}
	}
	if err != nil {
		// When registration fails, disconnect the object from the UI.
		return errors.Join(err, conn.Disconnect(obj))
	}
	return nil
}

func (p *Pipeline) playSetup(addr address.Address, obj any, chain *cleanup.Chain) {
	if p.player == nil {
		return
	}
	uri := p.deps.Codec.Format(addr)
	defer func() {
		// Setup failures should not affect opening.
		if r := recover(); r != nil {
			p.logger.Error("error during setup", "uri", uri, "panic", r)
		}
	}()
	p.player(uri, obj, p.logger, chain)
}

// deferClose appends the close action to chain. The action disconnects obj
// through its current owner, disposes it, then forgets it.
func (p *Pipeline) deferClose(obj any, chain *cleanup.Chain) {
	reg, owners, logger := p.deps.Registry, p.deps.Ownership, p.logger
	chain.Append(func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("error when closing the view", "object", uref.NameOf(obj), "err", fmt.Errorf("%w: panic: %v", errdefs.ErrTeardown, r))
			}
		}()
		if err := closeObject(obj, reg, owners); err != nil {
			logger.Error("error when closing the view", "object", uref.NameOf(obj), "err", err)
		}
	})
}

func closeObject(obj any, reg apis.Registry, owners apis.OwnershipTable) error {
	conn, err := owners.Get(obj)
	if err != nil {
		return fmt.Errorf("%w: %w", errdefs.ErrTeardown, err)
	}
	if err := conn.Disconnect(obj); err != nil {
		return fmt.Errorf("%w: disconnect: %w", errdefs.ErrTeardown, err)
	}
	if _, err := apis.Dispose(obj); err != nil {
		return fmt.Errorf("%w: dispose: %w", errdefs.ErrTeardown, err)
	}
	if err := owners.Remove(obj); err != nil {
		return fmt.Errorf("%w: %w", errdefs.ErrTeardown, err)
	}
	if err := reg.Remove(obj); err != nil {
		return fmt.Errorf("%w: %w", errdefs.ErrTeardown, err)
	}
	return nil
}

// sendRefresh refreshes obj unless conn already does.
func (p *Pipeline) sendRefresh(obj any, conn apis.Connector) {
	if conn.ResponsibleForRefresh() {
		return
	}
	apis.Refresh(obj)
}

// receivePlayer installs the typed setup player.
func (p *Pipeline) receivePlayer(pl player) error {
	if p.player != nil {
		return fmt.Errorf("%w: %s", ErrSetupAlreadyDone, p.deps.Codec.Format(p.addr))
	}
	p.player = pl
	return nil
}

// guard runs fn, turning a panic into an error.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = fmt.Errorf("%w: %w", ErrPanicked, e)
				return
			}
			err = fmt.Errorf("%w: %v", ErrPanicked, r)
		}
	}()
	return fn()
}
