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

// Factory builds settings values of exactly one type. Factories take
// precedence over generic construction.
type Factory interface {
	// SettingsType returns the settings type the factory is bound to.
	SettingsType() reflect.Type
	// Create builds a value for origin. While Create runs, get-or-create
	// calls through origin (and its parents) continue the resolution in
	// flight, so a factory requesting its own key fails instead of
	// blocking.
	Create(origin Node) (any, error)
}

// FactoryRegistry is an ordered, append-only list of factories.
// Lookups return the first factory registered for a type.
type FactoryRegistry interface {
	// Register appends f.
	Register(f Factory) error
	// Lookup returns the first factory bound to t.
	Lookup(t reflect.Type) (f Factory, ok bool)
	// Entries returns the factories in registration order.
	Entries() []Factory
	// Count returns the number of registered factories.
	Count() int
}
