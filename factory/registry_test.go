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

package factory_test

import (
	"errors"
	"reflect"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/meta/apis"
	"dirpx.dev/meta/factory"
)

type Cfg struct{ From string }
type Other struct{}

func TestRegistry_FirstMatchWins(t *testing.T) {
	reg := factory.NewRegistry()

	first := factory.Of(func(apis.Node) *Cfg { return &Cfg{From: "first"} })
	second := factory.Of(func(apis.Node) *Cfg { return &Cfg{From: "second"} })
	require.NoError(t, reg.Register(first))
	require.NoError(t, reg.Register(second))

	f, ok := reg.Lookup(reflect.TypeOf(&Cfg{}))
	require.True(t, ok)
	v, err := f.Create(nil)
	require.NoError(t, err)
	assert.Equal(t, "first", v.(*Cfg).From)
	assert.Equal(t, 2, reg.Count())
}

func TestRegistry_Miss(t *testing.T) {
	reg := factory.NewRegistry()
	require.NoError(t, reg.Register(factory.Of(func(apis.Node) *Cfg { return &Cfg{} })))

	_, ok := reg.Lookup(reflect.TypeOf(&Other{}))
	assert.False(t, ok)
	_, ok = reg.Lookup(nil)
	assert.False(t, ok)
}

func TestRegistry_RejectsInvalid(t *testing.T) {
	reg := factory.NewRegistry()

	err := reg.Register(nil)
	require.ErrorIs(t, err, apis.ErrInvalidArgument)
	require.ErrorIs(t, err, factory.ErrNilFactory)

	valueType := factory.Func[Cfg](func(apis.Node) (Cfg, error) { return Cfg{}, nil })
	require.ErrorIs(t, reg.Register(valueType), apis.ErrInvalidArgument)
	assert.Equal(t, 0, reg.Count())
}

func TestRegistry_EntriesIsSnapshot(t *testing.T) {
	reg := factory.NewRegistry()
	require.NoError(t, reg.Register(factory.Of(func(apis.Node) *Cfg { return &Cfg{} })))

	snap := reg.Entries()
	require.NoError(t, reg.Register(factory.Of(func(apis.Node) *Other { return &Other{} })))

	assert.Len(t, snap, 1)
	assert.Len(t, reg.Entries(), 2)
}

func TestFunc_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	f := factory.Func[*Cfg](func(apis.Node) (*Cfg, error) { return nil, boom })

	assert.Equal(t, reflect.TypeOf(&Cfg{}), f.SettingsType())
	v, err := f.Create(nil)
	require.ErrorIs(t, err, boom)
	assert.Nil(t, v)
}

// TestRegistry_ConcurrentLookup verifies lock-free reads stay consistent
// while writers append.
func TestRegistry_ConcurrentLookup(t *testing.T) {
	reg := factory.NewRegistry()
	require.NoError(t, reg.Register(factory.Of(func(apis.Node) *Cfg { return &Cfg{From: "first"} })))

	cfgT := reflect.TypeOf(&Cfg{})
	workers := runtime.GOMAXPROCS(0) * 4

	var wg sync.WaitGroup
	wg.Add(workers * 2)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				f, ok := reg.Lookup(cfgT)
				if !ok {
					t.Error("lookup miss")
					return
				}
				v, _ := f.Create(nil)
				if v.(*Cfg).From != "first" {
					t.Errorf("got factory %q, want first", v.(*Cfg).From)
					return
				}
			}
		}()
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				_ = reg.Register(factory.Of(func(apis.Node) *Cfg { return &Cfg{From: "late"} }))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1+workers*50, reg.Count())
}
