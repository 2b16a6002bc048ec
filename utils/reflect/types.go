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

package reflect

import (
	"errors"
	"fmt"
	"path"
	"reflect"
	"runtime"
	"strings"
	"sync"

	"dirpx.dev/meta/apis"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectNotReferenceable indicates a value type (struct, int, ...)
	// where a nullable-capable type is required.
	ErrReflectNotReferenceable = errors.New("reflect: type is not referenceable")
)

// Referenceable reports whether values of t can be nil:
// pointers, interfaces, maps, slices, channels and funcs.
func Referenceable(t reflect.Type) bool {
	if t == nil {
		return false
	}
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}

// CheckSettingsType validates t as a settings type. Errors wrap
// apis.ErrInvalidArgument.
func CheckSettingsType(t reflect.Type) error {
	if t == nil {
		return fmt.Errorf("%w: %w", apis.ErrInvalidArgument, ErrReflectNilType)
	}
	if !Referenceable(t) {
		return fmt.Errorf("%w: settings %s: %w", apis.ErrInvalidArgument, Name(t), ErrReflectNotReferenceable)
	}
	return nil
}

// CheckValue validates that v is a non-nil value assignable to t.
func CheckValue(t reflect.Type, v any) error {
	if v == nil {
		return fmt.Errorf("%w: nil value for settings %s", apis.ErrInvalidArgument, Name(t))
	}
	rv := reflect.ValueOf(v)
	if !rv.Type().AssignableTo(t) {
		return fmt.Errorf("%w: value of type %s is not assignable to settings %s",
			apis.ErrInvalidArgument, Name(rv.Type()), Name(t))
	}
	if IsNil(rv) {
		return fmt.Errorf("%w: nil value for settings %s", apis.ErrInvalidArgument, Name(t))
	}
	return nil
}

// IsNil reports whether v is invalid or a nil value of a nillable kind.
func IsNil(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return v.IsNil()
	default:
		return false
	}
}

// typeNameCache caches resolved type names.
var typeNameCache sync.Map // key: reflect.Type, val: string

// Name returns a stable, human-readable "pkg.Type" name for t. Pointers
// keep their "*" prefixes; unnamed types fall back to t.String().
func Name(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if v, ok := typeNameCache.Load(t); ok {
		return v.(string)
	}

	base, stars := t, 0
	for base.Kind() == reflect.Pointer && base.Name() == "" {
		base = base.Elem()
		stars++
	}

	var name string
	switch {
	case base.Name() == "":
		name = base.String()
	case base.PkgPath() == "":
		name = base.Name()
	default:
		name = path.Base(base.PkgPath()) + "." + base.Name()
	}
	name = strings.Repeat("*", stars) + name

	typeNameCache.Store(t, name)
	return name
}

// FuncName returns the short "pkg.Func" name of a func value, or "" if
// fn is not a func.
func FuncName(fn reflect.Value) string {
	if !fn.IsValid() || fn.Kind() != reflect.Func || fn.IsNil() {
		return ""
	}
	f := runtime.FuncForPC(fn.Pointer())
	if f == nil {
		return ""
	}
	return path.Base(f.Name())
}
