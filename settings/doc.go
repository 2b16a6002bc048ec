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

// Package settings provides embeddable helpers for authoring settings
// types.
//
// A settings type bound to its node embeds Base:
//
//	type Display struct {
//		settings.Base
//		Width int
//	}
//
//	func NewDisplay(n apis.Node) (*Display, error) {
//		b, err := settings.NewBase(n)
//		return &Display{Base: b}, err
//	}
//
// A settings type that extends the parent node's settings of type P
// embeds Derived[P]; its constructor takes (apis.Node, P), which makes the
// activator cascade P from the parent node.
package settings
