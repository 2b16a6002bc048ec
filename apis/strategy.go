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

// Strategy is a pluggable creation step. A Resolver chains multiple
// strategies in order (e.g., Factory -> Activator).
type Strategy interface {
	// TryActivate attempts to build a value for req.
	// It returns handled=false to fall through to the next strategy.
	// Once a strategy handles a request its value or error is final.
	TryActivate(req Request) (v any, handled bool, err error)
}
