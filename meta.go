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

package meta

import (
	"errors"
	"sync"
	"sync/atomic"

	"dirpx.dev/meta/apis"
	"dirpx.dev/meta/builder"
	"dirpx.dev/meta/config"
	"dirpx.dev/meta/model"
)

var (
	// ErrNilRoot is returned when SetDefault is given a nil root.
	ErrNilRoot = errors.New("meta: nil root")
	// ErrNilBuilder is returned when SetBuilder is given a nil builder.
	ErrNilBuilder = errors.New("meta: nil builder")
)

// Default returns the process-wide model root, building it from the
// current configuration and builder on first use.
func Default() *model.Root {
	if s := st.Load(); s != nil {
		return s.root
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Re-check under lock in case another goroutine published meanwhile.
	if s := st.Load(); s != nil {
		return s.root
	}
	s, err := build(config.DefaultConfig(), builder.New(), nil)
	if err != nil {
		// The default builder always yields a complete pipeline.
		panic(err)
	}
	st.Store(s)
	return s.root
}

// Config returns the configuration of the process-wide root.
func Config() apis.Config {
	return Default().Config()
}

// Builder returns the builder of the process-wide root.
func Builder() apis.Builder {
	return Default().Builder()
}

// SetConfig replaces the process-wide root with a fresh one built from cfg.
// Registered factories and declared constructors carry over; nodes and
// settings do not. On error the current root stays in place.
func SetConfig(cfg apis.Config) error {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := current()
	s, err := build(cfg, old.bld, old.root)
	if err != nil {
		return err
	}
	st.Store(s)
	return nil
}

// SetBuilder replaces the process-wide root with a fresh one composed by b.
// Registered factories and declared constructors are handed to b.
func SetBuilder(b apis.Builder) error {
	if b == nil {
		return ErrNilBuilder
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := current()
	s, err := build(old.cfg, b, old.root)
	if err != nil {
		return err
	}
	st.Store(s)
	return nil
}

// SetDefault installs root as the process-wide root.
func SetDefault(root *model.Root) error {
	if root == nil {
		return ErrNilRoot
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	st.Store(&state{cfg: root.Config(), bld: root.Builder(), root: root})
	return nil
}

// Reset drops the process-wide root. The next Default builds a new one
// from defaults.
func Reset() {
	buildMu.Lock()
	defer buildMu.Unlock()
	st.Store(nil)
}

// current returns the published state, or the defaults when none is
// published yet. buildMu must be held.
func current() *state {
	if s := st.Load(); s != nil {
		return s
	}
	return &state{cfg: config.DefaultConfig(), bld: builder.New()}
}

// build assembles a new state. prev, if any, is migrated by the builder.
func build(cfg apis.Config, b apis.Builder, prev *model.Root) (*state, error) {
	opts := []model.Option{model.WithConfig(cfg), model.WithBuilder(b)}
	if prev != nil {
		opts = append(opts, model.WithMigration(prev))
	}
	root, err := model.NewRoot(opts...)
	if err != nil {
		return nil, err
	}
	return &state{cfg: root.Config(), bld: b, root: root}, nil
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global state. Nil until first use.
var st atomic.Pointer[state]

// state is the global state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	// cfg is the configuration root was built with.
	cfg apis.Config
	// bld is the builder root was composed with.
	bld apis.Builder
	// root is the process-wide model root.
	root *model.Root
}
