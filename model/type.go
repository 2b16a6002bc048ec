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
	"sync"

	"go.uber.org/zap"

	"dirpx.dev/meta/apis"
	"dirpx.dev/meta/store"
)

// Type is the node of one modeled type. Its parent and model are the Root.
type Type struct {
	node

	root *Root
	desc any

	// mu guards member node creation.
	mu      sync.Mutex
	members sync.Map // key: descriptor, val: *Member
}

// Ensure Type implements apis.TypeNode.
var _ apis.TypeNode = (*Type)(nil)

func newType(r *Root, d any) (*Type, error) {
	t := &Type{root: r, desc: d}
	if err := t.init(apis.KindType, t, r.cfg.Log().With(zap.String("component", "store"))); err != nil {
		return nil, err
	}
	return t, nil
}

// Model returns the Root.
func (t *Type) Model() apis.Model { return t.root }

// Parent returns the Root.
func (t *Type) Parent() apis.Node { return t.root }

// Descriptor returns the type descriptor.
func (t *Type) Descriptor() any { return t.desc }

// String implements fmt.Stringer.
func (t *Type) String() string { return fmt.Sprint(t.desc) }

// MemberNode returns the node for member descriptor d, creating it on first use.
func (t *Type) MemberNode(d any) (apis.MemberNode, error) {
	if err := checkDescriptor(d); err != nil {
		return nil, err
	}

	// Fast read path.
	if v, ok := t.members.Load(d); ok {
		return v.(*Member), nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// Re-check under lock in case another goroutine created it meanwhile.
	if v, ok := t.members.Load(d); ok {
		return v.(*Member), nil
	}

	m, err := newMember(t, d)
	if err != nil {
		return nil, err
	}
	t.members.Store(d, m)

	t.root.log.Debug("member node created",
		zap.String("node", m.id),
		zap.String("owner", t.id),
		zap.String("descriptor", fmt.Sprint(d)),
	)
	return m, nil
}

// Member resolves name through the type descriptor and returns its node.
func (t *Type) Member(name string) (apis.MemberNode, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: %w", apis.ErrInvalidArgument, store.ErrEmptyName)
	}
	mr, ok := t.desc.(apis.MemberResolver)
	if !ok {
		return nil, fmt.Errorf("%w: member %q: descriptor %T cannot resolve member names", apis.ErrNotFound, name, t.desc)
	}
	d, ok := mr.ResolveMember(name)
	if !ok {
		return nil, fmt.Errorf("%w: member %q of %v", apis.ErrNotFound, name, t.desc)
	}
	return t.MemberNode(d)
}

// Members returns a snapshot of the existing member nodes.
func (t *Type) Members() []apis.MemberNode {
	var out []apis.MemberNode
	t.members.Range(func(_, value any) bool {
		out = append(out, value.(*Member))
		return true
	})
	return out
}
