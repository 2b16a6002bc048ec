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

package strategy

import (
	"reflect"
	"sync/atomic"

	"dirpx.dev/meta/apis"
)

// view is a node as seen by a factory while Create runs. Get-or-create
// misses through it continue the in-flight trail, so a factory asking for
// the key it is building hits the cycle check instead of waiting on its
// own flight. Once Create returns the view behaves like the plain node.
type view struct {
	apis.Node
	trail apis.Trail
	done  *atomic.Bool
}

// newView binds n to trail until the returned func is called.
func newView(n apis.Node, trail apis.Trail) (apis.Node, func()) {
	if n == nil {
		return nil, func() {}
	}
	done := new(atomic.Bool)
	return &view{Node: n, trail: trail, done: done}, func() { done.Store(true) }
}

// Parent returns a view of the parent bound to the same trail.
func (v *view) Parent() apis.Node {
	p := v.Node.Parent()
	if p == v.Node {
		return v
	}
	return &view{Node: p, trail: v.trail, done: v.done}
}

// Settings returns the node's store, trail-bound while the factory runs.
func (v *view) Settings() apis.Store {
	st := v.Node.Settings()
	if v.done.Load() {
		return st
	}
	return &viewStore{Store: st, trail: v.trail}
}

// viewStore routes get-or-create through the cascade entry points.
type viewStore struct {
	apis.Store
	trail apis.Trail
}

func (s *viewStore) GetOrCreate(t reflect.Type) (any, error) {
	return s.Store.Cascade(t, s.trail)
}

func (s *viewStore) GetOrCreateNamed(t reflect.Type, name string) (any, error) {
	return s.Store.CascadeNamed(t, name, s.trail)
}
