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

// Package urx provides a process-wide address shell: it turns URI addresses
// such as
//
//	urx://tabs:3/docs/readme?title=Read%20me
//
// into domain objects placed in a UI, and keeps track of every object it has
// opened until it is closed again.
//
// # Design
//
// The work is split across small packages, each owning one concern:
//
//   - address: the Address value, its Codec (parse/format) and a fluent
//     Builder. The host of the URI is the placement, the port an owner tag,
//     the first path segment the module and the rest the item.
//
//   - registry: every open object with its metadata and a recycled integer
//     id taken from a shuffled pool.
//
//   - ownership: which connector must be asked to disconnect each object.
//
//   - resolution: the pipeline that resolves, places, registers and refreshes
//     an object, and returns the cleanup chain that closes it.
//
//   - dragdrop: the connector that owns an object while it is dragged
//     between placements.
//
//   - shell: the facade that owns the resolver registrations and the shared
//     stores above.
//
// This package holds one shell for the whole process.
//
// # Global API
//
//  1. Initialization:
//
//     Initialize(cfg apis.Config, opts ...shell.Option) error
//
//     Initialize runs at most once. It fails with ErrAlreadyInitialized
//     when called a second time, or after the shell was first used with
//     the default configuration. The scheme is therefore fixed for the
//     lifetime of the process.
//
//  2. Read helpers:
//
//     Shell() *shell.Shell
//     Config() apis.Config
//     Codec() address.Codec
//
//  3. Shortcuts:
//
//     Parse(raw string) (address.Address, error)
//     Format(a address.Address) string
//     Resolve(raw string, attachments ...any) (*resolution.Pipeline, error)
//
// # Concurrency model
//
// The snapshot is published through an atomic pointer, so the read helpers
// are safe from any goroutine. The shell itself is not: every open, close
// and drag must happen on one logical owner, typically the UI goroutine.
//
// # Usage pattern in a binary
//
//	if err := urx.Initialize(config.NewConfig(config.WithScheme("app"))); err != nil {
//	    return err
//	}
//	sh := urx.Shell()
//	_ = sh.AddModuleItemResolver(address.NewKey("docs", "readme"),
//	    resolver.Parameterless(newReadme))
//	_ = sh.AddPlacementResolver(tabs)
//
//	p, err := urx.Resolve("app://tabs/docs/readme")
//	if err != nil {
//	    return err
//	}
//	closer := p.Open()
//	defer closer.Dispose()
package urx
