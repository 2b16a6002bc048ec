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
	"fmt"
	"reflect"

	"dirpx.dev/meta/apis"
)

// TypeNode returns the node for descriptor d in the process-wide root.
func TypeNode(d any) (apis.TypeNode, error) {
	return Default().TypeNode(d)
}

// TypeSettings returns the settings T of the type node for d in the
// process-wide root, creating both on first use.
func TypeSettings[T any](d any) (T, error) {
	return cast[T](Default().GetOrCreateTypeSettings(reflect.TypeFor[T](), d))
}

// RegisterFactory registers f with the process-wide root.
func RegisterFactory(f apis.Factory) error {
	return Default().RegisterFactory(f)
}

// Declare registers constructor funcs for T with the process-wide root.
func Declare[T any](fns ...any) error {
	return Default().DeclareConstructors(reflect.TypeFor[T](), fns...)
}

// GetOrCreate returns n's settings T, building them on a miss.
func GetOrCreate[T any](n apis.Node) (T, error) {
	s, err := storeOf(n)
	if err != nil {
		var zero T
		return zero, err
	}
	return cast[T](s.GetOrCreate(reflect.TypeFor[T]()))
}

// GetOrCreateNamed returns n's settings T named name, building them on a miss.
func GetOrCreateNamed[T any](n apis.Node, name string) (T, error) {
	s, err := storeOf(n)
	if err != nil {
		var zero T
		return zero, err
	}
	return cast[T](s.GetOrCreateNamed(reflect.TypeFor[T](), name))
}

// GetOrCreateWith returns n's settings T, calling fn on a miss.
func GetOrCreateWith[T any](n apis.Node, fn func() (T, error)) (T, error) {
	s, err := storeOf(n)
	if err != nil {
		var zero T
		return zero, err
	}
	if fn == nil {
		var zero T
		return zero, fmt.Errorf("%w: nil factory func", apis.ErrInvalidArgument)
	}
	return cast[T](s.GetOrCreateWith(reflect.TypeFor[T](), erase(fn)))
}

// GetOrCreateNamedWith returns n's settings T named name, calling fn on a miss.
func GetOrCreateNamedWith[T any](n apis.Node, name string, fn func() (T, error)) (T, error) {
	s, err := storeOf(n)
	if err != nil {
		var zero T
		return zero, err
	}
	if fn == nil {
		var zero T
		return zero, fmt.Errorf("%w: nil factory func", apis.ErrInvalidArgument)
	}
	return cast[T](s.GetOrCreateNamedWith(reflect.TypeFor[T](), name, erase(fn)))
}

// Get returns n's settings T.
func Get[T any](n apis.Node) (T, error) {
	s, err := storeOf(n)
	if err != nil {
		var zero T
		return zero, err
	}
	return cast[T](s.Get(reflect.TypeFor[T]()))
}

// GetNamed returns n's settings T named name.
func GetNamed[T any](n apis.Node, name string) (T, error) {
	s, err := storeOf(n)
	if err != nil {
		var zero T
		return zero, err
	}
	return cast[T](s.GetNamed(reflect.TypeFor[T](), name))
}

// TryGet returns n's settings T, if present.
func TryGet[T any](n apis.Node) (T, bool) {
	var zero T
	if n == nil {
		return zero, false
	}
	v, ok := n.Settings().TryGet(reflect.TypeFor[T]())
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// TryGetNamed returns n's settings T named name, if present.
func TryGetNamed[T any](n apis.Node, name string) (T, bool) {
	var zero T
	if n == nil {
		return zero, false
	}
	v, ok := n.Settings().TryGetNamed(reflect.TypeFor[T](), name)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// Has reports whether n holds settings T.
func Has[T any](n apis.Node) bool {
	return n != nil && n.Settings().Has(reflect.TypeFor[T]())
}

// HasNamed reports whether n holds settings T named name.
func HasNamed[T any](n apis.Node, name string) bool {
	return n != nil && n.Settings().HasNamed(reflect.TypeFor[T](), name)
}

// Add stores v as n's settings T.
func Add[T any](n apis.Node, v T) error {
	s, err := storeOf(n)
	if err != nil {
		return err
	}
	return s.Add(reflect.TypeFor[T](), v)
}

// AddNamed stores v as n's settings T named name.
func AddNamed[T any](n apis.Node, name string, v T) error {
	s, err := storeOf(n)
	if err != nil {
		return err
	}
	return s.AddNamed(reflect.TypeFor[T](), name, v)
}

func storeOf(n apis.Node) (apis.Store, error) {
	if n == nil {
		return nil, fmt.Errorf("%w: nil node", apis.ErrInvalidArgument)
	}
	return n.Settings(), nil
}

func erase[T any](fn func() (T, error)) func() (any, error) {
	return func() (any, error) {
		v, err := fn()
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

// cast converts a store result to T. The store only holds values
// assignable to their key type, so the assertion holds for any non-nil v.
func cast[T any](v any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: value of type %T is not %s", apis.ErrConstructionFailed, v, reflect.TypeFor[T]())
	}
	return t, nil
}
