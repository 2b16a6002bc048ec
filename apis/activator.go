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

package apis

import "reflect"

// Shape is the constructor form a Plan invokes.
type Shape uint8

const (
	// ShapeEmpty calls a zero-argument constructor.
	ShapeEmpty Shape = iota + 1
	// ShapeNodeOnly calls a constructor taking the origin node.
	ShapeNodeOnly
	// ShapeNodeAndParent calls a constructor taking the origin node and a
	// settings value resolved on the origin's parent.
	ShapeNodeAndParent
)

// String implements fmt.Stringer.
func (s Shape) String() string {
	switch s {
	case ShapeEmpty:
		return "empty"
	case ShapeNodeOnly:
		return "node"
	case ShapeNodeAndParent:
		return "node+parent"
	default:
		return "unknown"
	}
}

// Plan is the cached decision of how to build one settings type.
type Plan struct {
	// Settings is the type the plan builds.
	Settings reflect.Type
	// Shape is the chosen constructor form.
	Shape Shape
	// Parent is the parent-scoped dependency type (ShapeNodeAndParent only).
	Parent reflect.Type
	// Constructor is the diagnostic name of the chosen constructor.
	Constructor string
}

// Declaration is the set of constructor functions declared for a type.
type Declaration struct {
	Type  reflect.Type
	Funcs []any
}

// Activator synthesizes settings values from node context when no factory
// handles a type. Implementations must be safe for concurrent use.
type Activator interface {
	// Declare registers constructor functions for t.
	Declare(t reflect.Type, fns ...any) error
	// Declarations returns a snapshot of the declared constructor sets.
	Declarations() []Declaration
	// Plan returns the (memoized) construction plan for t.
	Plan(t reflect.Type) (Plan, error)
	// Activate builds a value for req by executing the plan for req.Type.
	Activate(req Request) (any, error)
}

// Constructible is implemented by settings types that declare their own
// constructor functions. It is called on the type's zero value, so
// pointer receivers must not dereference.
type Constructible interface {
	SettingsConstructors() []any
}
