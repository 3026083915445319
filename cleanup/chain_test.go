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

package cleanup_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dirpx.dev/urx/cleanup"
)

func TestChain_RunsInOrderOnce(t *testing.T) {
	var calls []int
	c := cleanup.New(func() { calls = append(calls, 1) })
	c.Append(func() { calls = append(calls, 2) }).Append(func() { calls = append(calls, 3) })
	assert.Equal(t, 3, c.Len())

	c.Dispose()
	c.Dispose()

	assert.Equal(t, []int{1, 2, 3}, calls)
	assert.True(t, c.Disposed())
	assert.Zero(t, c.Len())
}

func TestChain_EmptyIsSafe(t *testing.T) {
	c := cleanup.New()
	assert.NotPanics(t, c.Dispose)
	assert.NotPanics(t, c.Dispose)
}

func TestChain_NilActionsIgnored(t *testing.T) {
	c := cleanup.New(nil)
	c.Append(nil)
	assert.Zero(t, c.Len())
}

func TestChain_AppendAfterDisposeRunsImmediately(t *testing.T) {
	c := cleanup.New()
	c.Dispose()

	n := 0
	c.Append(func() { n++ })
	assert.Equal(t, 1, n)

	c.Dispose()
	assert.Equal(t, 1, n)
}

func TestChain_DoesNotRecoverPanics(t *testing.T) {
	ran := false
	c := cleanup.New(func() { panic("boom") }, func() { ran = true })

	assert.Panics(t, c.Dispose)
	assert.False(t, ran)
	// The chain is spent even though an action panicked.
	assert.NotPanics(t, c.Dispose)
}
