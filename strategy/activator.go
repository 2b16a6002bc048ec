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
	"dirpx.dev/meta/apis"
)

// NewActivatorStrategy creates an apis.Strategy backed by an Activator.
func NewActivatorStrategy(act apis.Activator) apis.Strategy {
	return activatorStrategy{act: act}
}

// activatorStrategy is the universal fallback: it always handles the
// request, so it belongs at the end of a chain.
type activatorStrategy struct {
	act apis.Activator
}

// Ensure activatorStrategy implements apis.Strategy.
var _ apis.Strategy = activatorStrategy{}

// TryActivate builds the value from the type's construction plan.
func (s activatorStrategy) TryActivate(req apis.Request) (any, bool, error) {
	if s.act == nil {
		return nil, false, nil
	}
	v, err := s.act.Activate(req)
	return v, true, err
}
