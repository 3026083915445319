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
	"fmt"
	"reflect"

	"github.com/charmbracelet/log"

	"dirpx.dev/urx/cleanup"
	"dirpx.dev/urx/errdefs"
	uref "dirpx.dev/urx/utils/reflect"
)

// SetupBuilder collects typed callbacks for the object a Pipeline resolves.
type SetupBuilder[T any] struct {
	p          *Pipeline
	onReady    func(T)
	onFinished func(T)
}

// Setup starts a typed setup of p. The callbacks only run when the resolved
// object is a T.
func Setup[T any](p *Pipeline) *SetupBuilder[T] {
	return &SetupBuilder[T]{p: p}
}

// OnReady sets the callback invoked right after the object is placed.
// Setting it again replaces the previous callback.
func (s *SetupBuilder[T]) OnReady(fn func(T)) *SetupBuilder[T] {
	s.onReady = fn
	return s
}

// OnFinished sets the callback invoked when the object is closed.
// Setting it again replaces the previous callback.
func (s *SetupBuilder[T]) OnFinished(fn func(T)) *SetupBuilder[T] {
	s.onFinished = fn
	return s
}

// Open installs the setup and opens the pipeline like Pipeline.Open.
func (s *SetupBuilder[T]) Open() *cleanup.Chain {
	if err := s.send(); err != nil {
		s.p.logger.Error("error when opening the view", "uri", s.p.deps.Codec.Format(s.p.addr), "err", err)
		return cleanup.New()
	}
	return s.p.Open()
}

// OpenOrThrow installs the setup and opens the pipeline like
// Pipeline.OpenOrThrow.
func (s *SetupBuilder[T]) OpenOrThrow() (*cleanup.Chain, error) {
	if err := s.send(); err != nil {
		return cleanup.New(), err
	}
	return s.p.OpenOrThrow()
}

// send hands the player to the pipeline. Without callbacks there is no player.
func (s *SetupBuilder[T]) send() error {
	pl := newPlayer(s.onReady, s.onFinished)
	if pl == nil {
		return nil
	}
	return s.p.receivePlayer(pl)
}

func newPlayer[T any](onReady, onFinished func(T)) player {
	if onReady == nil && onFinished == nil {
		return nil
	}
	return func(uri string, obj any, logger *log.Logger, chain *cleanup.Chain) {
		cast, ok := obj.(T)
		if !ok {
			logger.Warn("setup wasn't called due to type mismatch",
				"uri", uri,
				"expected", uref.TypeNameFor[T](),
				"actual", uref.TypeName(reflect.TypeOf(obj)),
				"err", errdefs.ErrSetupMismatch)
			return
		}

		if onReady != nil {
			onReady(cast)
		}
		if onFinished != nil {
			chain.Append(func() {
				defer func() {
					if r := recover(); r != nil {
						logger.Error("error in finished callback", "object", uref.NameOf(obj), "err", fmt.Errorf("%w: panic: %v", errdefs.ErrTeardown, r))
					}
				}()
				onFinished(cast)
			})
		}
	}
}
