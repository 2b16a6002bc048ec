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
	"sort"

	"gopkg.in/yaml.v3"

	"dirpx.dev/meta/apis"
	uref "dirpx.dev/meta/utils/reflect"
)

// Tree is a point-in-time view of a node and its descendants.
type Tree struct {
	Kind       string  `yaml:"kind"`
	ID         string  `yaml:"id"`
	Descriptor string  `yaml:"descriptor,omitempty"`
	Settings   []Entry `yaml:"settings,omitempty"`
	Children   []Tree  `yaml:"children,omitempty"`
}

// Entry names one settings object held by a node.
type Entry struct {
	Type string `yaml:"type"`
	Name string `yaml:"name,omitempty"`
}

// Snapshot captures the tree rooted at m. Children are ordered by descriptor.
func Snapshot(m apis.Model) Tree {
	root := snapshotNode(m, "")
	for _, tn := range m.Types() {
		child := snapshotNode(tn, fmt.Sprint(tn.Descriptor()))
		for _, mn := range tn.Members() {
			child.Children = append(child.Children, snapshotNode(mn, fmt.Sprint(mn.Descriptor())))
		}
		sortTrees(child.Children)
		root.Children = append(root.Children, child)
	}
	sortTrees(root.Children)
	return root
}

// YAML renders t.
func (t Tree) YAML() ([]byte, error) {
	return yaml.Marshal(t)
}

func snapshotNode(n apis.Node, desc string) Tree {
	entries := n.Settings().Entries()
	out := Tree{
		Kind:       n.Kind().String(),
		ID:         n.ID(),
		Descriptor: desc,
	}
	if len(entries) > 0 {
		out.Settings = make([]Entry, 0, len(entries))
		for _, e := range entries {
			out.Settings = append(out.Settings, Entry{Type: uref.Name(e.Type), Name: e.Name})
		}
	}
	return out
}

func sortTrees(ts []Tree) {
	sort.SliceStable(ts, func(i, j int) bool { return ts[i].Descriptor < ts[j].Descriptor })
}
