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

	uref "dirpx.dev/meta/utils/reflect"
)

// MemberKind tags the kind of a described member.
type MemberKind uint8

const (
	// Field is a struct field.
	Field MemberKind = iota + 1
	// Method is a method of the type or of its pointer.
	Method
)

// String implements fmt.Stringer.
func (k MemberKind) String() string {
	switch k {
	case Field:
		return "field"
	case Method:
		return "method"
	default:
		return "unknown"
	}
}

// Member describes a field or method of a Go type.
type Member struct {
	owner reflect.Type
	name  string
	kind  MemberKind
	typ   reflect.Type
}

// FieldOf describes field name of t. Pointer types are dereferenced once.
func FieldOf(t reflect.Type, name string) (Member, bool) {
	if t == nil {
		return Member{}, false
	}
	st := t
	if st.Kind() == reflect.Pointer {
		st = st.Elem()
	}
	if st.Kind() != reflect.Struct {
		return Member{}, false
	}
	f, ok := st.FieldByName(name)
	if !ok {
		return Member{}, false
	}
	return Member{owner: t, name: f.Name, kind: Field, typ: f.Type}, true
}

// MethodOf describes method name of t, falling back to the method set of *t.
func MethodOf(t reflect.Type, name string) (Member, bool) {
	if t == nil {
		return Member{}, false
	}
	if m, ok := t.MethodByName(name); ok {
		return Member{owner: t, name: m.Name, kind: Method, typ: m.Type}, true
	}
	if t.Kind() != reflect.Pointer && t.Kind() != reflect.Interface {
		if m, ok := reflect.PointerTo(t).MethodByName(name); ok {
			return Member{owner: t, name: m.Name, kind: Method, typ: m.Type}, true
		}
	}
	return Member{}, false
}

// Owner returns the type the member was resolved on.
func (m Member) Owner() reflect.Type { return m.owner }

// Name returns the member name.
func (m Member) Name() string { return m.name }

// Kind returns the member kind.
func (m Member) Kind() MemberKind { return m.kind }

// Type returns the field type or the method's func type.
func (m Member) Type() reflect.Type { return m.typ }

// String renders the member as "pkg.Owner.Name".
func (m Member) String() string {
	return uref.Name(m.owner) + "." + m.name
}
