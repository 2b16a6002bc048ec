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

// Request is one creation request flowing through a Resolver.
type Request struct {
	// Type is the requested settings type.
	Type reflect.Type
	// Origin is the node the value is built for.
	Origin Node
	// Trail is the resolution path, including the request itself.
	Trail Trail
}

// Step is one get-or-create on a resolution path.
type Step struct {
	Node Node
	Type reflect.Type
	Name string
}

// Trail is the ordered list of get-or-create steps that are in flight for
// one top-level call.
type Trail []Step

// Contains reports whether the (node, type, name) step is already in flight.
func (t Trail) Contains(n Node, typ reflect.Type, name string) bool {
	for _, s := range t {
		if s.Node == n && s.Type == typ && s.Name == name {
			return true
		}
	}
	return false
}

// With returns a copy of t extended by s. t itself is never modified.
func (t Trail) With(s Step) Trail {
	out := make(Trail, len(t), len(t)+1)
	copy(out, t)
	return append(out, s)
}

// Depth returns the number of steps in flight.
func (t Trail) Depth() int { return len(t) }
