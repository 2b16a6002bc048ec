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

package settings_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/meta/apis"
	"dirpx.dev/meta/model"
	"dirpx.dev/meta/settings"
)

type Theme struct {
	settings.Base
	Color string
}

func NewTheme(n apis.Node) (*Theme, error) {
	b, err := settings.NewBase(n)
	return &Theme{Base: b, Color: "blue"}, err
}

type Widget struct {
	settings.Derived[*Theme]
}

func NewWidget(n apis.Node, th *Theme) (*Widget, error) {
	d, err := settings.NewDerived(n, th)
	return &Widget{Derived: d}, err
}

func TestNewBase(t *testing.T) {
	root, err := model.NewRoot()
	require.NoError(t, err)

	b, err := settings.NewBase(root)
	require.NoError(t, err)
	assert.Same(t, root, b.Node())
	assert.Same(t, root, b.Model())

	_, err = settings.NewBase(nil)
	assert.ErrorIs(t, err, apis.ErrInvalidArgument)
	assert.ErrorIs(t, err, settings.ErrNilNode)

	assert.Nil(t, settings.Base{}.Model())
}

func TestNewDerived(t *testing.T) {
	root, err := model.NewRoot()
	require.NoError(t, err)
	th := &Theme{}

	d, err := settings.NewDerived(root, th)
	require.NoError(t, err)
	assert.Same(t, th, d.ParentSettings())
	assert.Same(t, root, d.Node())

	_, err = settings.NewDerived[*Theme](root, nil)
	assert.ErrorIs(t, err, settings.ErrNilParent)
	_, err = settings.NewDerived[apis.Node](root, nil)
	assert.ErrorIs(t, err, settings.ErrNilParent)
	_, err = settings.NewDerived(nil, th)
	assert.ErrorIs(t, err, settings.ErrNilNode)

	// Non-nillable parents are always present.
	v, err := settings.NewDerived(root, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, v.ParentSettings())
}

func TestHelpers_ThroughModel(t *testing.T) {
	root, err := model.NewRoot()
	require.NoError(t, err)
	require.NoError(t, root.DeclareConstructors(reflect.TypeFor[*Theme](), NewTheme))
	require.NoError(t, root.DeclareConstructors(reflect.TypeFor[*Widget](), NewWidget))

	tn, err := root.TypeNode("dashboard")
	require.NoError(t, err)

	v, err := tn.Settings().GetOrCreate(reflect.TypeFor[*Widget]())
	require.NoError(t, err)
	w := v.(*Widget)
	assert.Same(t, tn, w.Node())
	assert.Same(t, root, w.Model())
	assert.Equal(t, "blue", w.ParentSettings().Color)
	assert.Same(t, root, w.ParentSettings().Node())
}
