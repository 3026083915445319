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

package urx

import (
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/urx/apis"
	"dirpx.dev/urx/config"
	"dirpx.dev/urx/errdefs"
)

// reset drops the published state so each test starts uninitialized.
func reset(tb testing.TB) {
	tb.Helper()
	buildMu.Lock()
	st.Store(nil)
	buildMu.Unlock()
	tb.Cleanup(func() {
		buildMu.Lock()
		st.Store(nil)
		buildMu.Unlock()
	})
}

func TestInitialize_Once(t *testing.T) {
	reset(t)

	require.NoError(t, Initialize(config.NewConfig(config.WithScheme("App"))))
	assert.True(t, Initialized())
	assert.Equal(t, "app", Codec().Scheme())
	assert.Equal(t, "app", Config().Scheme)

	err := Initialize(config.DefaultConfig())
	assert.ErrorIs(t, err, ErrAlreadyInitialized)
	assert.ErrorIs(t, err, errdefs.ErrConsistency)
	assert.Equal(t, "app", Codec().Scheme(), "a failed initialize keeps the first config")
}

func TestInitialize_AfterFirstUse(t *testing.T) {
	reset(t)

	assert.False(t, Initialized())
	assert.Equal(t, config.DefaultScheme, Codec().Scheme())
	assert.ErrorIs(t, Initialize(config.NewConfig(config.WithScheme("late"))), ErrAlreadyInitialized)
}

func TestInitialize_InvalidConfig(t *testing.T) {
	reset(t)

	err := Initialize(apis.Config{Scheme: "no scheme"})
	assert.ErrorIs(t, err, config.ErrInvalidScheme)
	assert.False(t, Initialized(), "a rejected config does not consume the initialization")
	require.NoError(t, Initialize(config.DefaultConfig()))
}

func TestParseFormatShortcuts(t *testing.T) {
	reset(t)

	a, err := Parse("urx://tabs/docs/readme?title=Hi")
	require.NoError(t, err)
	assert.Equal(t, "tabs", a.Placement())
	assert.Equal(t, "urx://tabs/docs/readme?title=Hi", Format(a))

	_, err = Resolve("urx://tabs/docs/readme")
	require.NoError(t, err)
}

// TestShell_ConcurrentFirstUse verifies that concurrent first use publishes
// exactly one shell.
func TestShell_ConcurrentFirstUse(t *testing.T) {
	reset(t)

	workers := runtime.GOMAXPROCS(0) * 4
	got := make(chan any, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			got <- Shell()
		}()
	}
	wg.Wait()
	close(got)

	first := Shell()
	for s := range got {
		assert.Same(t, first, s)
	}
}
