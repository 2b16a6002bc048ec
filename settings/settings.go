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

package settings

import (
	"errors"
	"fmt"
	"reflect"

	"dirpx.dev/meta/apis"
	uref "dirpx.dev/meta/utils/reflect"
)

var (
	// ErrNilNode is returned when a helper is bound to a nil node.
	ErrNilNode = errors.New("meta(settings): nil node")
	// ErrNilParent is returned when Derived gets nil parent settings.
	ErrNilParent = errors.New("meta(settings): nil parent settings")
)

// Base binds settings to the node they were built for.
type Base struct {
	node apis.Node
}

// NewBase returns a Base bound to n.
func NewBase(n apis.Node) (Base, error) {
	if n == nil {
		return Base{}, fmt.Errorf("%w: %w", apis.ErrInvalidArgument, ErrNilNode)
	}
	return Base{node: n}, nil
}

// Node returns the owning node.
func (b Base) Node() apis.Node { return b.node }

// Model returns the owning node's model, or nil for an unbound Base.
func (b Base) Model() apis.Model {
	if b.node == nil {
		return nil
	}
	return b.node.Model()
}

// Derived is a Base that also carries the parent node's settings of type P.
type Derived[P any] struct {
	Base
	parent P
}

// NewDerived returns a Derived bound to n and parent.
func NewDerived[P any](n apis.Node, parent P) (Derived[P], error) {
	b, err := NewBase(n)
	if err != nil {
		return Derived[P]{}, err
	}
	if uref.IsNil(reflect.ValueOf(&parent).Elem()) {
		return Derived[P]{}, fmt.Errorf("%w: %w (%s)", apis.ErrInvalidArgument, ErrNilParent, uref.Name(reflect.TypeFor[P]()))
	}
	return Derived[P]{Base: b, parent: parent}, nil
}

// ParentSettings returns the parent node's settings.
func (d Derived[P]) ParentSettings() P { return d.parent }
