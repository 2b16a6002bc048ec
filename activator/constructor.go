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

package activator

import (
	"errors"
	"fmt"
	"reflect"

	"dirpx.dev/meta/apis"
	uref "dirpx.dev/meta/utils/reflect"
)

var (
	// ErrNotAFunc is returned when a declared constructor is not a func.
	ErrNotAFunc = errors.New("meta(activator): constructor is not a func")
	// ErrBadSignature is returned when a declared constructor's results do
	// not produce the settings type.
	ErrBadSignature = errors.New("meta(activator): constructor has an unusable signature")
)

var (
	nodeType          = reflect.TypeFor[apis.Node]()
	errorType         = reflect.TypeFor[error]()
	constructibleType = reflect.TypeFor[apis.Constructible]()
)

// constructor is one introspected way of building a settings value.
type constructor struct {
	// name is the diagnostic name ("pkg.NewX").
	name string
	// params are the declared parameter types.
	params []reflect.Type
	// call invokes the constructor.
	call func(args []reflect.Value) (any, error)
}

// introspect turns fn into a constructor of t. fn must be a non-variadic
// func returning T or (T, error), where T is assignable to t.
func introspect(t reflect.Type, fn any) (constructor, error) {
	fv := reflect.ValueOf(fn)
	if !fv.IsValid() || fv.Kind() != reflect.Func || fv.IsNil() {
		return constructor{}, fmt.Errorf("%w: settings %s: %w (%T)", apis.ErrInvalidArgument, uref.Name(t), ErrNotAFunc, fn)
	}
	ft := fv.Type()
	name := uref.FuncName(fv)

	bad := func(reason string) (constructor, error) {
		return constructor{}, fmt.Errorf("%w: settings %s: %s: %w: %s", apis.ErrInvalidArgument, uref.Name(t), name, ErrBadSignature, reason)
	}
	if ft.IsVariadic() {
		return bad("variadic")
	}
	switch {
	case ft.NumOut() == 1:
	case ft.NumOut() == 2 && ft.Out(1) == errorType:
	default:
		return bad("must return T or (T, error)")
	}
	if !ft.Out(0).AssignableTo(t) {
		return bad(fmt.Sprintf("result %s is not assignable", uref.Name(ft.Out(0))))
	}

	params := make([]reflect.Type, ft.NumIn())
	for i := range params {
		params[i] = ft.In(i)
	}
	withErr := ft.NumOut() == 2

	return constructor{
		name:   name,
		params: params,
		call: func(args []reflect.Value) (any, error) {
			outs := fv.Call(args)
			if withErr && !outs[1].IsNil() {
				return nil, outs[1].Interface().(error)
			}
			return outs[0].Interface(), nil
		},
	}, nil
}

// implicitZero is the constructor used for pointer-to-struct settings
// that declare none.
func implicitZero(t reflect.Type) constructor {
	elem := t.Elem()
	return constructor{
		name: "new(" + uref.Name(elem) + ")",
		call: func([]reflect.Value) (any, error) {
			return reflect.New(elem).Interface(), nil
		},
	}
}

// declaredBy returns the constructor funcs t declares about itself
// through apis.Constructible.
func declaredBy(t reflect.Type) []any {
	if t.Kind() == reflect.Interface || !t.Implements(constructibleType) {
		return nil
	}
	var zero reflect.Value
	if t.Kind() == reflect.Pointer {
		// A fresh value keeps value-receiver methods from dereferencing nil.
		zero = reflect.New(t.Elem())
	} else {
		zero = reflect.Zero(t)
	}
	return zero.Interface().(apis.Constructible).SettingsConstructors()
}
