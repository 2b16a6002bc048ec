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
	"reflect"

	"dirpx.dev/meta/apis"
	uref "dirpx.dev/meta/utils/reflect"
)

// plan is a built apis.Plan plus the constructor it selected.
type plan struct {
	apis.Plan
	ctor constructor
	// decl is the declaration the plan was built from, nil if none.
	decl any
}

// shapeOf classifies a constructor's parameter list. ok is false for
// lists matching none of the supported shapes.
func shapeOf(params []reflect.Type) (shape apis.Shape, parent reflect.Type, ok bool) {
	switch len(params) {
	case 0:
		return apis.ShapeEmpty, nil, true
	case 1:
		if params[0] == nodeType {
			return apis.ShapeNodeOnly, nil, true
		}
	case 2:
		if params[0] == nodeType && uref.Referenceable(params[1]) {
			return apis.ShapeNodeAndParent, params[1], true
		}
	}
	return 0, nil, false
}

// choose picks the valid constructor with the most parameters. Ties keep
// declaration order.
func choose(t reflect.Type, ctors []constructor) (*plan, error) {
	var best *plan
	for _, c := range ctors {
		shape, parent, ok := shapeOf(c.params)
		if !ok {
			continue
		}
		if best != nil && len(c.params) <= len(best.ctor.params) {
			continue
		}
		best = &plan{
			Plan: apis.Plan{
				Settings:    t,
				Shape:       shape,
				Parent:      parent,
				Constructor: c.name,
			},
			ctor: c,
		}
	}

	if best == nil {
		reason := "no valid constructor"
		if len(ctors) == 0 {
			reason = "no valid constructor: none declared"
		}
		return nil, &apis.ConstructionError{
			Kind:     apis.ErrUnsupportedConstruction,
			Settings: t,
			Reason:   reason,
		}
	}
	return best, nil
}
