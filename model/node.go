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
	"errors"
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dirpx.dev/meta/apis"
	"dirpx.dev/meta/store"
)

var (
	// ErrNilDescriptor is returned when a node is requested for a nil descriptor.
	ErrNilDescriptor = errors.New("meta(model): nil descriptor")
	// ErrIncomparableDescriptor is returned for descriptors that cannot be map keys.
	ErrIncomparableDescriptor = errors.New("meta(model): descriptor is not comparable")
	// ErrForeignNode is returned when a node of another model is passed in.
	ErrForeignNode = errors.New("meta(model): node belongs to another model")
)

// node holds the state shared by every node variant.
type node struct {
	id   string
	kind apis.NodeKind
	st   apis.Store
}

// init assigns identity and creates the store. owner is the outer node
// embedding n.
func (n *node) init(kind apis.NodeKind, owner apis.Node, log *zap.Logger) error {
	n.id = uuid.NewString()
	n.kind = kind
	st, err := store.New(owner, log)
	if err != nil {
		return err
	}
	n.st = st
	return nil
}

// ID returns the node's diagnostic identity.
func (n *node) ID() string { return n.id }

// Kind returns the node variant.
func (n *node) Kind() apis.NodeKind { return n.kind }

// Settings returns the node's store.
func (n *node) Settings() apis.Store { return n.st }

// checkDescriptor validates d as a node key.
func checkDescriptor(d any) error {
	if d == nil {
		return fmt.Errorf("%w: %w", apis.ErrInvalidArgument, ErrNilDescriptor)
	}
	if !reflect.TypeOf(d).Comparable() || !hashable(d) {
		return fmt.Errorf("%w: %w (%T)", apis.ErrInvalidArgument, ErrIncomparableDescriptor, d)
	}
	return nil
}

// hashable reports whether d can be used as a map key. A comparable type
// can still hold an unhashable value behind an interface field.
func hashable(d any) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	m := make(map[any]struct{}, 1)
	m[d] = struct{}{}
	return len(m) == 1
}
