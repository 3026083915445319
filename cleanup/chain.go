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

// Package cleanup provides Chain, the ordered teardown handle returned by
// every open.
package cleanup

import (
	"dirpx.dev/urx/apis"
)

// Chain is an ordered list of teardown actions that runs at most once.
//
// Dispose runs the actions in append order, each exactly once; later calls
// are no-ops. An action appended after the chain has already run executes
// immediately, so teardown registered late is never lost. Chain does not
// recover panics: callers composing fallible actions guard them.
//
// Chain is not safe for concurrent use.
type Chain struct {
	actions  []func()
	disposed bool
}

// Ensure Chain implements apis.Disposable.
var _ apis.Disposable = (*Chain)(nil)

// New returns a Chain holding the given actions. Nil actions are ignored.
func New(actions ...func()) *Chain {
	c := &Chain{}
	for _, a := range actions {
		c.Append(a)
	}
	return c
}

// Append adds action to the end of the chain.
func (c *Chain) Append(action func()) *Chain {
	if action == nil {
		return c
	}
	if c.disposed {
		action()
		return c
	}
	c.actions = append(c.actions, action)
	return c
}

// Dispose runs every pending action in append order.
func (c *Chain) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true

	actions := c.actions
	c.actions = nil
	for _, a := range actions {
		a()
	}
}

// Disposed reports whether Dispose has been called.
func (c *Chain) Disposed() bool { return c.disposed }

// Len returns the number of pending actions.
func (c *Chain) Len() int { return len(c.actions) }
