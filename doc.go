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

// Package meta provides a hierarchical metadata model whose nodes carry
// typed, lazily created settings.
//
// A model is a tree of nodes:
//
//   - the Root, which is its own parent and its own model;
//   - one Type node per modeled type, keyed by a comparable descriptor
//     (for example descriptor.Of[Order]());
//   - one Member node per member of a modeled type.
//
// Every node owns a settings store: at most one value per settings type,
// plus any number of named values per type. Named and unnamed values are
// independent.
//
// # Creation pipeline
//
// A get-or-create miss asks the model to build the value. The model runs
// an ordered chain of strategies:
//
//  1. Factories. The first factory registered for the settings type
//     builds the value; its outcome is final.
//  2. The activator. It picks the widest constructor of the settings type
//     among the supported shapes and calls it:
//
//     func() T
//     func(apis.Node) T
//     func(apis.Node, P) T
//
//     Any of them may also return (T, error). The last shape cascades: P is
//     got-or-created on the parent node first. Constructors come from
//     Declare, from the type's own SettingsConstructors method, or, for
//     pointer-to-struct types without either, from new(Elem).
//
// Construction failures are reported as *apis.ConstructionError values
// that match apis.ErrUnsupportedConstruction or apis.ErrConstructionFailed
// with errors.Is and unwrap to their cause. A failed construction stores
// nothing.
//
// # Global API
//
// The package holds a process-wide Root behind an atomic pointer. Default
// builds it on first use. SetConfig and SetBuilder replace it with a fresh
// Root; registered factories and declared constructors carry over, nodes
// and settings do not. SetDefault installs an explicit Root and Reset drops
// it.
//
//	if err := meta.Declare[*Display](NewDisplay); err != nil {
//		return err
//	}
//	d, err := meta.TypeSettings[*Display](descriptor.Of[Order]())
//
// Generic helpers (GetOrCreate, GetNamed, TryGet, Add, ...) work on any node.
//
// # Concurrency model
//
// Reads of the process-wide Root are lock-free. Node creation takes one
// short lock per parent. A store builds each (type, name) at most once at
// a time and installs the result before any concurrent caller returns, so
// every caller observes the same instance. No lock is held while a value
// is built.
package meta
