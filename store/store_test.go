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

package store_test

import (
	"errors"
	"reflect"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"dirpx.dev/meta/apis"
	"dirpx.dev/meta/config"
	"dirpx.dev/meta/store"
)

// Local settings types.
type Alpha struct{ N int }
type Beta struct{}

var (
	alphaT = reflect.TypeOf(&Alpha{})
	betaT  = reflect.TypeOf(&Beta{})
)

// ---------------------- Test doubles ----------------------

// stubModel is a root-like node whose creation pipeline is a func.
type stubModel struct {
	cfg   apis.Config
	st    apis.Store
	calls atomic.Int32
	build func(req apis.Request) (any, error)
}

func newStub(tb testing.TB, build func(req apis.Request) (any, error)) *stubModel {
	tb.Helper()
	m := &stubModel{cfg: config.DefaultConfig(), build: build}
	st, err := store.New(m, nil)
	require.NoError(tb, err)
	m.st = st
	return m
}

func (m *stubModel) ID() string             { return "stub" }
func (m *stubModel) Kind() apis.NodeKind    { return apis.KindRoot }
func (m *stubModel) Model() apis.Model      { return m }
func (m *stubModel) Parent() apis.Node      { return m }
func (m *stubModel) Settings() apis.Store   { return m.st }
func (m *stubModel) Config() apis.Config    { return m.cfg }
func (m *stubModel) Types() []apis.TypeNode { return nil }
func (m *stubModel) TypeNode(any) (apis.TypeNode, error) {
	return nil, apis.ErrNotFound
}
func (m *stubModel) GetOrCreateTypeSettings(reflect.Type, any) (any, error) {
	return nil, apis.ErrNotFound
}
func (m *stubModel) RegisterFactory(apis.Factory) error               { return nil }
func (m *stubModel) DeclareConstructors(reflect.Type, ...any) error { return nil }
func (m *stubModel) TryActivate(t reflect.Type, origin apis.Node) (any, error) {
	return m.Activate(apis.Request{Type: t, Origin: origin})
}
func (m *stubModel) Activate(req apis.Request) (any, error) {
	m.calls.Add(1)
	return m.build(req)
}

func newAlpha(apis.Request) (any, error) { return &Alpha{}, nil }

// ---------------------- Tests ----------------------

func TestNew_NilOwner(t *testing.T) {
	_, err := store.New(nil, nil)
	require.ErrorIs(t, err, apis.ErrInvalidArgument)
	require.ErrorIs(t, err, store.ErrNilOwner)
}

func TestAdd_Duplicate(t *testing.T) {
	st := newStub(t, newAlpha).Settings()

	require.NoError(t, st.Add(alphaT, &Alpha{N: 1}))
	err := st.Add(alphaT, &Alpha{N: 2})
	require.ErrorIs(t, err, apis.ErrDuplicateKey)

	v, err := st.Get(alphaT)
	require.NoError(t, err)
	assert.Equal(t, 1, v.(*Alpha).N, "first value must survive")
}

func TestAdd_InvalidArguments(t *testing.T) {
	st := newStub(t, newAlpha).Settings()

	cases := []struct {
		name string
		typ  reflect.Type
		val  any
	}{
		{"nil type", nil, &Alpha{}},
		{"value type", reflect.TypeOf(Alpha{}), Alpha{}},
		{"nil value", alphaT, nil},
		{"typed nil", alphaT, (*Alpha)(nil)},
		{"wrong type", alphaT, &Beta{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, st.Add(tc.typ, tc.val), apis.ErrInvalidArgument)
		})
	}
	assert.Equal(t, 0, st.Count())
}

func TestAddNamed(t *testing.T) {
	st := newStub(t, newAlpha).Settings()

	require.NoError(t, st.AddNamed(alphaT, "a", &Alpha{N: 1}))
	require.NoError(t, st.AddNamed(alphaT, "b", &Alpha{N: 2}))
	require.ErrorIs(t, st.AddNamed(alphaT, "a", &Alpha{}), apis.ErrDuplicateKey)
	require.ErrorIs(t, st.AddNamed(alphaT, "", &Alpha{}), apis.ErrInvalidArgument)

	assert.True(t, st.HasNamed(alphaT, "a"))
	assert.False(t, st.Has(alphaT), "named values never satisfy unnamed lookups")
	assert.Equal(t, 2, st.Count())
}

func TestGet_NotFound(t *testing.T) {
	st := newStub(t, newAlpha).Settings()

	_, err := st.Get(alphaT)
	require.ErrorIs(t, err, apis.ErrNotFound)
	_, err = st.GetNamed(alphaT, "x")
	require.ErrorIs(t, err, apis.ErrNotFound)

	v, ok := st.TryGet(alphaT)
	assert.False(t, ok)
	assert.Nil(t, v)
	v, ok = st.TryGetNamed(alphaT, "x")
	assert.False(t, ok)
	assert.Nil(t, v)

	_, ok = st.TryGet(nil)
	assert.False(t, ok)
}

func TestGetOrCreate_Idempotent(t *testing.T) {
	m := newStub(t, newAlpha)
	st := m.Settings()

	v1, err := st.GetOrCreate(alphaT)
	require.NoError(t, err)
	v2, err := st.GetOrCreate(alphaT)
	require.NoError(t, err)

	assert.Same(t, v1.(*Alpha), v2.(*Alpha))
	assert.Equal(t, int32(1), m.calls.Load())
	assert.True(t, st.Has(alphaT))
}

func TestGetOrCreate_RequestCarriesTrail(t *testing.T) {
	var got apis.Request
	m := newStub(t, func(req apis.Request) (any, error) {
		got = req
		return &Alpha{}, nil
	})

	_, err := m.Settings().GetOrCreate(alphaT)
	require.NoError(t, err)

	assert.Equal(t, alphaT, got.Type)
	assert.Equal(t, apis.Node(m), got.Origin)
	require.Len(t, got.Trail, 1)
	assert.True(t, got.Trail.Contains(m, alphaT, ""))
}

func TestGetOrCreate_ValueTypeRejected(t *testing.T) {
	m := newStub(t, newAlpha)
	_, err := m.Settings().GetOrCreate(reflect.TypeOf(Alpha{}))
	require.ErrorIs(t, err, apis.ErrInvalidArgument)
	assert.Equal(t, int32(0), m.calls.Load())
}

func TestGetOrCreate_FailureNotStored(t *testing.T) {
	boom := errors.New("boom")
	fail := true
	m := newStub(t, func(apis.Request) (any, error) {
		if fail {
			return nil, boom
		}
		return &Alpha{}, nil
	})
	st := m.Settings()

	_, err := st.GetOrCreate(alphaT)
	require.ErrorIs(t, err, boom)
	assert.False(t, st.Has(alphaT))

	fail = false
	v, err := st.GetOrCreate(alphaT)
	require.NoError(t, err)
	assert.NotNil(t, v)
}

func TestGetOrCreate_NilResult(t *testing.T) {
	m := newStub(t, func(apis.Request) (any, error) { return (*Alpha)(nil), nil })

	_, err := m.Settings().GetOrCreate(alphaT)
	require.ErrorIs(t, err, apis.ErrConstructionFailed)
	assert.Equal(t, 0, m.Settings().Count())
}

func TestGetOrCreate_WrongResultType(t *testing.T) {
	m := newStub(t, func(apis.Request) (any, error) { return &Beta{}, nil })

	_, err := m.Settings().GetOrCreate(alphaT)
	require.ErrorIs(t, err, apis.ErrConstructionFailed)
}

func TestGetOrCreateWith(t *testing.T) {
	m := newStub(t, newAlpha)
	st := m.Settings()

	calls := 0
	fn := func() (any, error) {
		calls++
		return &Alpha{N: 7}, nil
	}

	v1, err := st.GetOrCreateWith(alphaT, fn)
	require.NoError(t, err)
	v2, err := st.GetOrCreateWith(alphaT, fn)
	require.NoError(t, err)

	assert.Same(t, v1.(*Alpha), v2.(*Alpha))
	assert.Equal(t, 7, v1.(*Alpha).N)
	assert.Equal(t, 1, calls)
	assert.Equal(t, int32(0), m.calls.Load(), "explicit factory bypasses the pipeline")

	_, err = st.GetOrCreateWith(alphaT, nil)
	require.ErrorIs(t, err, apis.ErrInvalidArgument)
}

func TestGetOrCreateNamed_Isolation(t *testing.T) {
	m := newStub(t, newAlpha)
	st := m.Settings()

	a, err := st.GetOrCreateNamed(alphaT, "a")
	require.NoError(t, err)
	b, err := st.GetOrCreateNamed(alphaT, "b")
	require.NoError(t, err)
	a2, err := st.GetOrCreateNamed(alphaT, "a")
	require.NoError(t, err)

	assert.NotSame(t, a.(*Alpha), b.(*Alpha))
	assert.Same(t, a.(*Alpha), a2.(*Alpha))
	assert.True(t, st.HasNamed(alphaT, "a"))
	assert.False(t, st.Has(alphaT))

	u, err := st.GetOrCreate(alphaT)
	require.NoError(t, err)
	assert.NotSame(t, a.(*Alpha), u.(*Alpha))

	n, err := st.GetOrCreateNamedWith(alphaT, "c", func() (any, error) { return &Alpha{N: 3}, nil })
	require.NoError(t, err)
	assert.Equal(t, 3, n.(*Alpha).N)

	_, err = st.GetOrCreateNamed(alphaT, "")
	require.ErrorIs(t, err, apis.ErrInvalidArgument)
}

func TestCascade_Circular(t *testing.T) {
	m := newStub(t, newAlpha)
	trail := apis.Trail{}.With(apis.Step{Node: m, Type: alphaT})

	_, err := m.Settings().Cascade(alphaT, trail)
	require.ErrorIs(t, err, apis.ErrUnsupportedConstruction)
	require.ErrorIs(t, err, store.ErrCircular)
	assert.Equal(t, int32(0), m.calls.Load())
}

func TestCascadeNamed_Circular(t *testing.T) {
	m := newStub(t, newAlpha)
	trail := apis.Trail{}.With(apis.Step{Node: m, Type: alphaT, Name: "x"})

	_, err := m.Settings().CascadeNamed(alphaT, "x", trail)
	require.ErrorIs(t, err, store.ErrCircular)
	assert.Equal(t, int32(0), m.calls.Load())

	// Another name of the same type is a different key.
	v, err := m.Settings().CascadeNamed(alphaT, "y", trail)
	require.NoError(t, err)
	assert.NotNil(t, v)
	assert.True(t, m.Settings().HasNamed(alphaT, "y"))

	_, err = m.Settings().CascadeNamed(alphaT, "", trail)
	require.ErrorIs(t, err, apis.ErrInvalidArgument)
}

func TestCascade_TooDeep(t *testing.T) {
	m := newStub(t, newAlpha)
	m.cfg = config.NewConfig(config.WithMaxCascadeDepth(2))

	trail := apis.Trail{}.
		With(apis.Step{Node: m, Type: betaT, Name: "x"}).
		With(apis.Step{Node: m, Type: betaT, Name: "y"})

	_, err := m.Settings().Cascade(alphaT, trail)
	require.ErrorIs(t, err, apis.ErrUnsupportedConstruction)
	require.ErrorIs(t, err, store.ErrTooDeep)
}

func TestEntries_Sorted(t *testing.T) {
	st := newStub(t, newAlpha).Settings()
	require.NoError(t, st.Add(betaT, &Beta{}))
	require.NoError(t, st.AddNamed(alphaT, "z", &Alpha{}))
	require.NoError(t, st.Add(alphaT, &Alpha{}))
	require.NoError(t, st.AddNamed(alphaT, "a", &Alpha{}))

	assert.Equal(t, []apis.Entry{
		{Type: alphaT},
		{Type: alphaT, Name: "a"},
		{Type: alphaT, Name: "z"},
		{Type: betaT},
	}, st.Entries())
}

// TestGetOrCreate_Concurrent verifies that concurrent first access builds
// exactly one value and every caller observes it.
func TestGetOrCreate_Concurrent(t *testing.T) {
	release := make(chan struct{})
	m := newStub(t, func(apis.Request) (any, error) {
		<-release
		return &Alpha{}, nil
	})
	st := m.Settings()

	workers := runtime.GOMAXPROCS(0) * 4
	results := make([]any, workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			v, err := st.GetOrCreate(alphaT)
			if err != nil {
				t.Errorf("worker %d: %v", id, err)
				return
			}
			results[id] = v
		}(w)
	}
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), m.calls.Load())
	for i := 1; i < workers; i++ {
		assert.Same(t, results[0].(*Alpha), results[i].(*Alpha))
	}
}

// TestNamedIsolation_Property checks that any set of names yields one
// independent value per name and never an unnamed value.
func TestNamedIsolation_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		m := newStub(t, newAlpha)
		st := m.Settings()

		names := rapid.SliceOfNDistinct(rapid.StringMatching(`[a-z]{1,6}`), 1, 8, rapid.ID[string]).Draw(rt, "names")
		seen := make(map[*Alpha]string, len(names))
		for _, n := range names {
			v, err := st.GetOrCreateNamed(alphaT, n)
			if err != nil {
				rt.Fatalf("GetOrCreateNamed(%q): %v", n, err)
			}
			p := v.(*Alpha)
			if other, dup := seen[p]; dup {
				rt.Fatalf("names %q and %q share an instance", other, n)
			}
			seen[p] = n
		}
		for _, n := range names {
			if !st.HasNamed(alphaT, n) {
				rt.Fatalf("HasNamed(%q) = false", n)
			}
		}
		if st.Has(alphaT) {
			rt.Fatalf("Has(unnamed) = true after named creations only")
		}
		if got := int(m.calls.Load()); got != len(names) {
			rt.Fatalf("constructions = %d, want %d", got, len(names))
		}
	})
}

// TestUniqueness_Property checks that a second Add always fails.
func TestUniqueness_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		st := newStub(t, newAlpha).Settings()
		name := rapid.StringMatching(`[a-z]{0,4}`).Draw(rt, "name")

		add := func() error {
			if name == "" {
				return st.Add(alphaT, &Alpha{})
			}
			return st.AddNamed(alphaT, name, &Alpha{})
		}
		if err := add(); err != nil {
			rt.Fatalf("first add: %v", err)
		}
		if err := add(); !errors.Is(err, apis.ErrDuplicateKey) {
			rt.Fatalf("second add: got %v, want ErrDuplicateKey", err)
		}
	})
}
