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

package factory

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/meta/apis"
	uref "dirpx.dev/meta/utils/reflect"
)

var (
	// ErrNilFactory is returned when a nil factory is registered.
	ErrNilFactory = errors.New("meta(factory): nil factory provided")
)

// NewRegistry constructs an empty FactoryRegistry.
func NewRegistry() apis.FactoryRegistry {
	r := &registry{}
	r.list.Store(&[]apis.Factory{})
	return r
}

// registry is an append-only FactoryRegistry. Readers load the published
// slice without locking; writers copy it under mu and publish the copy.
type registry struct {
	// mu serializes writers.
	mu sync.Mutex
	// list is the published, never-mutated factory slice.
	list atomic.Pointer[[]apis.Factory]
}

// Ensure registry implements apis.FactoryRegistry.
var _ apis.FactoryRegistry = (*registry)(nil)

// Register appends f. Several factories may be bound to the same type;
// the first one registered wins on Lookup.
func (r *registry) Register(f apis.Factory) error {
	if f == nil {
		return fmt.Errorf("%w: %w", apis.ErrInvalidArgument, ErrNilFactory)
	}
	if err := uref.CheckSettingsType(f.SettingsType()); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	old := *r.list.Load()
	next := make([]apis.Factory, len(old), len(old)+1)
	copy(next, old)
	next = append(next, f)
	r.list.Store(&next)
	return nil
}

// Lookup returns the first factory bound to t.
func (r *registry) Lookup(t reflect.Type) (apis.Factory, bool) {
	if t == nil {
		return nil, false
	}
	for _, f := range *r.list.Load() {
		if f.SettingsType() == t {
			return f, true
		}
	}
	return nil, false
}

// Entries returns the factories in registration order.
func (r *registry) Entries() []apis.Factory {
	list := *r.list.Load()
	out := make([]apis.Factory, len(list))
	copy(out, list)
	return out
}

// Count returns the number of registered factories.
func (r *registry) Count() int {
	return len(*r.list.Load())
}
