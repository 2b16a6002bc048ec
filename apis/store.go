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

// Store maps settings types (and optionally names) to settings values for
// exactly one node. Entries are immutable once populated.
// Implementations must be safe for concurrent use.
type Store interface {
	// Has reports whether an unnamed value of type t exists.
	Has(t reflect.Type) bool
	// HasNamed reports whether a value of type t named name exists.
	HasNamed(t reflect.Type, name string) bool

	// Add stores v as the unnamed value of type t.
	// It fails with ErrDuplicateKey if one already exists.
	Add(t reflect.Type, v any) error
	// AddNamed stores v as the value of type t named name.
	// It fails with ErrDuplicateKey if one already exists.
	AddNamed(t reflect.Type, name string, v any) error

	// Get returns the unnamed value of type t or ErrNotFound.
	Get(t reflect.Type) (any, error)
	// GetNamed returns the value of type t named name or ErrNotFound.
	GetNamed(t reflect.Type, name string) (any, error)

	// TryGet returns the unnamed value of type t, if present.
	TryGet(t reflect.Type) (any, bool)
	// TryGetNamed returns the value of type t named name, if present.
	TryGetNamed(t reflect.Type, name string) (any, bool)

	// GetOrCreate returns the unnamed value of type t, building it through
	// the model's creation pipeline on first use.
	GetOrCreate(t reflect.Type) (any, error)
	// GetOrCreateNamed is GetOrCreate scoped by name.
	GetOrCreateNamed(t reflect.Type, name string) (any, error)

	// GetOrCreateWith is GetOrCreate using fn instead of the pipeline.
	// fn must not request the key it is building from the same store.
	GetOrCreateWith(t reflect.Type, fn func() (any, error)) (any, error)
	// GetOrCreateNamedWith is GetOrCreateNamed using fn instead of the pipeline.
	GetOrCreateNamedWith(t reflect.Type, name string, fn func() (any, error)) (any, error)

	// Cascade is GetOrCreate issued from inside an in-flight activation.
	// trail is the resolution path that led here.
	Cascade(t reflect.Type, trail Trail) (any, error)
	// CascadeNamed is Cascade scoped by name.
	CascadeNamed(t reflect.Type, name string, trail Trail) (any, error)

	// Entries returns a snapshot for diagnostics/docs, sorted by type then name.
	Entries() []Entry
	// Count returns the number of stored values, named ones included.
	Count() int
}

// Entry is a single (type, name) association in a Store snapshot.
type Entry struct {
	// Type is the settings type.
	Type reflect.Type
	// Name is the settings name, or "" for the unnamed value.
	Name string
}
