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

package model

import (
	"fmt"

	"go.uber.org/zap"

	"dirpx.dev/meta/apis"
)

// Member is the node of one member of a modeled type. Its parent is the
// owning Type and its model is the Root.
type Member struct {
	node

	owner *Type
	desc  any
}

// Ensure Member implements apis.MemberNode.
var _ apis.MemberNode = (*Member)(nil)

func newMember(owner *Type, d any) (*Member, error) {
	m := &Member{owner: owner, desc: d}
	if err := m.init(apis.KindMember, m, owner.root.cfg.Log().With(zap.String("component", "store"))); err != nil {
		return nil, err
	}
	return m, nil
}

// Model returns the Root.
func (m *Member) Model() apis.Model { return m.owner.root }

// Parent returns the owning Type.
func (m *Member) Parent() apis.Node { return m.owner }

// Owner returns the owning Type.
func (m *Member) Owner() apis.TypeNode { return m.owner }

// Descriptor returns the member descriptor.
func (m *Member) Descriptor() any { return m.desc }

// String implements fmt.Stringer.
func (m *Member) String() string { return fmt.Sprint(m.desc) }
