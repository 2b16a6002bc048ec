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
	"reflect"

	"dirpx.dev/meta/apis"
)

// Func adapts a typed function into an apis.Factory bound to T.
type Func[T any] func(origin apis.Node) (T, error)

// Ensure Func implements apis.Factory.
var _ apis.Factory = Func[*struct{}](nil)

// SettingsType returns T.
func (fn Func[T]) SettingsType() reflect.Type {
	return reflect.TypeFor[T]()
}

// Create calls fn.
func (fn Func[T]) Create(origin apis.Node) (any, error) {
	v, err := fn(origin)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Of returns a factory for T that never fails.
func Of[T any](fn func(origin apis.Node) T) apis.Factory {
	return Func[T](func(origin apis.Node) (T, error) {
		return fn(origin), nil
	})
}
