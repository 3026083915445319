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
	"fmt"
	"sync"
	"sync/atomic"

	"dirpx.dev/urx/address"
	"dirpx.dev/urx/apis"
	"dirpx.dev/urx/config"
	"dirpx.dev/urx/errdefs"
	"dirpx.dev/urx/resolution"
	"dirpx.dev/urx/shell"
)

// ErrAlreadyInitialized is returned by Initialize once the process-wide
// shell exists, either from an earlier Initialize or from first use.
var ErrAlreadyInitialized = fmt.Errorf("urx: %w: already initialized", errdefs.ErrConsistency)

var (
	// st is the published process-wide state; nil until initialized.
	st atomic.Pointer[state]
	// buildMu serializes the construction of st.
	buildMu sync.Mutex
)

// state is the immutable snapshot published in st.
type state struct {
	cfg   apis.Config
	shell *shell.Shell
}

// Initialize builds the process-wide shell for cfg. It succeeds at most once
// per process and must run before the first call to Shell, Codec or any
// helper that uses them.
func Initialize(cfg apis.Config, opts ...shell.Option) error {
	buildMu.Lock()
	defer buildMu.Unlock()

	if st.Load() != nil {
		return ErrAlreadyInitialized
	}
	s, err := build(cfg, opts...)
	if err != nil {
		return err
	}
	st.Store(s)
	return nil
}

// Initialized reports whether the process-wide shell exists.
func Initialized() bool {
	return st.Load() != nil
}

// Shell returns the process-wide shell, building it with the default
// configuration on first use.
func Shell() *shell.Shell {
	return load().shell
}

// Config returns the configuration of the process-wide shell.
func Config() apis.Config {
	return load().cfg
}

// Codec returns the address codec of the process-wide shell.
func Codec() address.Codec {
	return load().shell.Codec()
}

// Parse decodes raw with the process-wide codec.
func Parse(raw string) (address.Address, error) {
	return Codec().Parse(raw)
}

// Format encodes a with the process-wide codec.
func Format(a address.Address) string {
	return Codec().Format(a)
}

// Resolve starts a pipeline opening raw in the process-wide shell.
func Resolve(raw string, attachments ...any) (*resolution.Pipeline, error) {
	return Shell().ResolveURI(raw, attachments...)
}

// load returns the published state, publishing the default one if needed.
func load() *state {
	if s := st.Load(); s != nil {
		return s
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Someone may have initialized while we waited.
	if s := st.Load(); s != nil {
		return s
	}
	s, err := build(config.DefaultConfig())
	if err != nil {
		// The default configuration is always valid.
		panic(err)
	}
	st.Store(s)
	return s
}

func build(cfg apis.Config, opts ...shell.Option) (*state, error) {
	sh, err := shell.New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &state{cfg: cfg, shell: sh}, nil
}
