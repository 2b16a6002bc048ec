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

// Package descriptor provides reflect-backed descriptors for hosts that
// model Go types with the meta node hierarchy.
//
// The core treats descriptors as opaque comparable keys. Type and Member
// are comparable values, so two descriptors for the same Go type (or the
// same member of it) address the same node.
//
//	td := descriptor.Of[Order]()
//	tn, _ := root.TypeNode(td)
//	mn, _ := tn.Member("Total") // resolved through td.ResolveMember
package descriptor
