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

package resolution_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/urx/config"
	"dirpx.dev/urx/resolution"
)

type titled interface{ Title() string }

func (p *page) Title() string { return p.title }

func TestSetup_ReadyAndFinished(t *testing.T) {
	f := newFixture(t, config.DefaultConfig())
	obj := &page{title: "readme"}
	f.servePage(obj)

	var ready, finished []string
	chain, err := resolution.Setup[titled](f.pipeline(t, "urx://tabs/docs/readme", nil)).
		OnReady(func(v titled) { ready = append(ready, v.Title()) }).
		OnFinished(func(v titled) { finished = append(finished, v.Title()) }).
		OpenOrThrow()
	require.NoError(t, err)

	assert.Equal(t, []string{"readme"}, ready)
	assert.Empty(t, finished)

	chain.Dispose()
	assert.Equal(t, []string{"readme"}, finished)
	assert.False(t, f.reg.Contains(obj))
}

func TestSetup_ReRegisteringReplaces(t *testing.T) {
	f := newFixture(t, config.DefaultConfig())
	f.servePage(&page{})

	var calls []string
	_, err := resolution.Setup[*page](f.pipeline(t, "urx://tabs/docs/readme", nil)).
		OnReady(func(*page) { calls = append(calls, "first") }).
		OnReady(func(*page) { calls = append(calls, "second") }).
		OpenOrThrow()
	require.NoError(t, err)
	assert.Equal(t, []string{"second"}, calls)
}

func TestSetup_TypeMismatchIsSkipped(t *testing.T) {
	f := newFixture(t, config.DefaultConfig())
	obj := &page{}
	f.servePage(obj)

	called := false
	_, err := resolution.Setup[*recorder](f.pipeline(t, "urx://tabs/docs/readme", nil)).
		OnReady(func(*recorder) { called = true }).
		OpenOrThrow()
	require.NoError(t, err)

	assert.False(t, called)
	assert.True(t, f.reg.Contains(obj), "a mismatch never undoes the open")
	logs := f.logs.String()
	assert.Contains(t, logs, "type mismatch")
	assert.Contains(t, logs, "resolution_test.recorder")
	assert.Contains(t, logs, "resolution_test.page")
}

func TestSetup_CallbackPanicIsLogged(t *testing.T) {
	f := newFixture(t, config.DefaultConfig())
	obj := &page{}
	f.servePage(obj)

	chain, err := resolution.Setup[*page](f.pipeline(t, "urx://tabs/docs/readme", nil)).
		OnReady(func(*page) { panic("ready exploded") }).
		OpenOrThrow()
	require.NoError(t, err)
	assert.True(t, f.reg.Contains(obj))
	assert.Contains(t, f.logs.String(), "error during setup")

	chain.Dispose()
	assert.False(t, f.reg.Contains(obj), "close is still deferred after a failed setup")
}

func TestSetup_OnlyOnePlayer(t *testing.T) {
	f := newFixture(t, config.DefaultConfig())
	f.servePage(&page{})
	p := f.pipeline(t, "urx://tabs/docs/readme", nil)

	// A setup without callbacks creates no player.
	_ = resolution.Setup[*page](p)

	first := resolution.Setup[*page](p).OnReady(func(*page) {})
	second := resolution.Setup[*page](p).OnFinished(func(*page) {})

	_, err := first.OpenOrThrow()
	require.NoError(t, err)
	_, err = second.OpenOrThrow()
	assert.ErrorIs(t, err, resolution.ErrSetupAlreadyDone)
}

func TestSetup_WithoutCallbacksOpensPlainly(t *testing.T) {
	f := newFixture(t, config.DefaultConfig())
	obj := &page{}
	f.servePage(obj)

	chain := resolution.Setup[*page](f.pipeline(t, "urx://tabs/docs/readme", nil)).Open()
	require.NotNil(t, chain)
	assert.True(t, f.reg.Contains(obj))
	assert.NotContains(t, f.logs.String(), "type mismatch")
}
