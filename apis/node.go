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

// NodeKind tags the variant of a metadata node.
type NodeKind uint8

const (
	// KindRoot is the model root. Its Model and Parent are itself.
	KindRoot NodeKind = iota + 1
	// KindType is a node describing one modeled type.
	KindType
	// KindMember is a node describing one member of a modeled type.
	KindMember
)

// String implements fmt.Stringer.
func (k NodeKind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindType:
		return "type"
	case KindMember:
		return "member"
	default:
		return "unknown"
	}
}

// Node is a metadata node that owns a settings Store.
type Node interface {
	// ID returns a diagnostic identity, unique per node instance.
	ID() string
	// Kind returns the node variant.
	Kind() NodeKind
	// Model returns the root model. The root returns itself.
	Model() Model
	// Parent returns the owning node. The root returns itself.
	Parent() Node
	// Settings returns the node's store. It is never replaced.
	Settings() Store
}

// Model is the root of the node hierarchy. It owns the factory registry,
// the activator and every type node.
type Model interface {
	Node

	// Config returns the configuration the model was built with.
	Config() Config

	// TypeNode returns the node for descriptor d, creating it on first use.
	// d must be non-nil and comparable.
	TypeNode(d any) (TypeNode, error)

	// Types returns a snapshot of the existing type nodes (order is unspecified).
	Types() []TypeNode

	// GetOrCreateTypeSettings is TypeNode(d) followed by Settings().GetOrCreate(t).
	GetOrCreateTypeSettings(t reflect.Type, d any) (any, error)

	// RegisterFactory appends f to the factory registry.
	// It is meant for the setup phase before concurrent traffic starts.
	RegisterFactory(f Factory) error

	// DeclareConstructors registers constructor functions for settings type t.
	DeclareConstructors(t reflect.Type, fns ...any) error

	// TryActivate runs the creation pipeline for t with origin as the
	// requesting node. The result is not stored anywhere.
	TryActivate(t reflect.Type, origin Node) (any, error)

	// Activate is TryActivate for a request already on a resolution trail.
	Activate(req Request) (any, error)
}

// TypeNode describes one modeled type.
type TypeNode interface {
	Node

	// Descriptor returns the opaque descriptor the node is keyed by.
	Descriptor() any

	// MemberNode returns the node for member descriptor d, creating it on first use.
	MemberNode(d any) (MemberNode, error)

	// Member resolves a member by name through the type descriptor.
	// It fails with ErrNotFound when the descriptor cannot resolve names.
	Member(name string) (MemberNode, error)

	// Members returns a snapshot of the existing member nodes (order is unspecified).
	Members() []MemberNode
}

// MemberNode describes one member of a modeled type.
type MemberNode interface {
	Node

	// Descriptor returns the opaque descriptor the node is keyed by.
	Descriptor() any

	// Owner returns the type node the member belongs to.
	Owner() TypeNode
}

// MemberResolver is implemented by type descriptors that can turn a member
// name into a member descriptor.
type MemberResolver interface {
	ResolveMember(name string) (member any, ok bool)
}
