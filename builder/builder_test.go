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

package builder_test

import (
	"math/rand/v2"
	"runtime"
	"sync"
	"testing"

	"dirpx.dev/urx/address"
	"dirpx.dev/urx/apis"
	"dirpx.dev/urx/builder"
	"dirpx.dev/urx/config"
)

// view is a plain resolved object tracked by pointer identity.
type view struct{}

// conn is a connector that does nothing.
type conn struct{}

func (conn) Connect(any) error           { return nil }
func (conn) Disconnect(any) error        { return nil }
func (conn) ResponsibleForRefresh() bool { return false }

func metadata() apis.Metadata {
	return apis.NewMetadata(address.Address{}, apis.DisposeFunc(func() {}))
}

// TestBuildRegistry_Basic asserts that BuildRegistry returns a non-nil,
// working Registry that supports Add/Contains/Get/Count.
func TestBuildRegistry_Basic(t *testing.T) {
	b := builder.New()

	reg := b.BuildRegistry(config.DefaultConfig())
	if reg == nil {
		t.Fatal("BuildRegistry returned nil")
	}

	v := &view{}
	if err := reg.Add(v, metadata()); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if !reg.Contains(v) {
		t.Fatal("Contains = false, want true")
	}

	md, err := reg.Metadata(v)
	if err != nil {
		t.Fatalf("Metadata failed: %v", err)
	}
	id, _ := md.ID()
	if got, err := reg.Get(id); err != nil || got != v {
		t.Fatalf("Get(%d) = %v, %v; want the added view", id, got, err)
	}
	if c := reg.Count(); c != 1 {
		t.Fatalf("Count = %d, want 1", c)
	}
}

// TestBuildRegistry_Capacity asserts that the built registry honors
// cfg.MaxResolvedID.
func TestBuildRegistry_Capacity(t *testing.T) {
	reg := builder.New().BuildRegistry(config.NewConfig(config.WithMaxResolvedID(2)))

	for i := 0; i < 3; i++ {
		if err := reg.Add(&view{}, metadata()); err != nil {
			t.Fatalf("Add #%d failed: %v", i, err)
		}
	}
	if err := reg.Add(&view{}, metadata()); err == nil {
		t.Fatal("Add beyond capacity succeeded, want capacity error")
	}
}

// TestBuildRegistry_SeededIsReproducible verifies that WithRand gives the
// same id order for the same seed.
func TestBuildRegistry_SeededIsReproducible(t *testing.T) {
	firstID := func() int {
		b := builder.New(builder.WithRand(rand.New(rand.NewPCG(9, 9))))
		reg := b.BuildRegistry(config.NewConfig(config.WithMaxResolvedID(1023)))
		v := &view{}
		if err := reg.Add(v, metadata()); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		md, _ := reg.Metadata(v)
		id, _ := md.ID()
		return id
	}
	if a, b := firstID(), firstID(); a != b {
		t.Fatalf("seeded ids differ: %d vs %d", a, b)
	}
}

// TestBuildOwnership_Basic asserts that BuildOwnership returns an empty,
// working table.
func TestBuildOwnership_Basic(t *testing.T) {
	tbl := builder.New().BuildOwnership(config.DefaultConfig())
	if tbl == nil {
		t.Fatal("BuildOwnership returned nil")
	}
	if n := tbl.Len(); n != 0 {
		t.Fatalf("Len = %d, want 0", n)
	}

	v := &view{}
	if err := tbl.Set(v, conn{}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, err := tbl.Get(v); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
}

// TestBuildRegistry_Synchronized_Smoke hammers a synchronized registry in
// parallel to ensure it is safe to mutate concurrently.
func TestBuildRegistry_Synchronized_Smoke(t *testing.T) {
	reg := builder.New(builder.Synchronized()).BuildRegistry(config.DefaultConfig())

	workers := runtime.GOMAXPROCS(0) * 4
	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				v := &view{}
				if err := reg.Add(v, metadata()); err != nil {
					t.Errorf("Add failed: %v", err)
					return
				}
				_ = reg.Contains(v)
				if err := reg.Remove(v); err != nil {
					t.Errorf("Remove failed: %v", err)
					return
				}
			}
		}()
	}

	wg.Wait()
	if c := reg.Count(); c != 0 {
		t.Fatalf("Count = %d, want 0", c)
	}
}

// Compile-time check: builder.New() must satisfy apis.Builder.
var _ apis.Builder = builder.New()
