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

package descriptor

import (
	"reflect"

	"dirpx.dev/meta/apis"
	uref "dirpx.dev/meta/utils/reflect"
)

// Type describes a Go type.
type Type struct {
	t reflect.Type
}

// Ensure Type implements apis.MemberResolver.
var _ apis.MemberResolver = Type{}

// Of returns the descriptor of T.
func Of[T any]() Type {
	return Type{t: reflect.TypeFor[T]()}
}

// TypeOf returns the descriptor of t.
func TypeOf(t reflect.Type) Type {
	return Type{t: t}
}

// Type returns the described reflect.Type.
func (d Type) Type() reflect.Type { return d.t }

// String implements fmt.Stringer.
func (d Type) String() string { return uref.Name(d.t) }

// ResolveMember looks name up as a field (on the struct, through one
// pointer) and then as a method (on the type and on its pointer).
func (d Type) ResolveMember(name string) (any, bool) {
	if d.t == nil || name == "" {
		return nil, false
	}
	if m, ok := FieldOf(d.t, name); ok {
		return m, true
	}
	if m, ok := MethodOf(d.t, name); ok {
		return m, true
	}
	return nil, false
}
