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

package store

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"dirpx.dev/meta/apis"
	uref "dirpx.dev/meta/utils/reflect"
)

var (
	// ErrNilOwner is returned when a store is created without an owning node.
	ErrNilOwner = errors.New("meta(store): nil owner node")
	// ErrEmptyName is returned when a named operation gets an empty name.
	ErrEmptyName = errors.New("meta(store): empty settings name")
	// ErrCircular indicates that a get-or-create re-entered itself through
	// the parent-settings cascade.
	ErrCircular = errors.New("meta(store): circular settings dependency")
	// ErrTooDeep indicates that a cascade exceeded Config.MaxCascadeDepth.
	ErrTooDeep = errors.New("meta(store): settings cascade too deep")
)

// New constructs a Store owned by owner. Creation requests on a miss go
// to owner.Model().
func New(owner apis.Node, log *zap.Logger) (apis.Store, error) {
	if owner == nil {
		return nil, fmt.Errorf("%w: %w", apis.ErrInvalidArgument, ErrNilOwner)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &store{
		owner:   owner,
		log:     log,
		byType:  make(map[reflect.Type]any),
		byNamed: make(map[reflect.Type]map[string]any),
	}, nil
}

// store is a map-backed Store. mu guards the maps; flight makes sure a
// given (type, name) is constructed at most once at a time, and the result
// is installed before the flight ends, so at most one value is ever visible.
type store struct {
	owner apis.Node
	log   *zap.Logger

	mu      sync.RWMutex
	byType  map[reflect.Type]any
	byNamed map[reflect.Type]map[string]any
	count   int

	flight singleflight.Group
}

// Ensure store implements apis.Store.
var _ apis.Store = (*store)(nil)

// Has reports whether an unnamed value of type t exists.
func (s *store) Has(t reflect.Type) bool {
	_, ok := s.TryGet(t)
	return ok
}

// HasNamed reports whether a value of type t named name exists.
func (s *store) HasNamed(t reflect.Type, name string) bool {
	_, ok := s.TryGetNamed(t, name)
	return ok
}

// Add stores v as the unnamed value of type t.
func (s *store) Add(t reflect.Type, v any) error {
	if err := checkEntry(t, v); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.install(t, "", false, v)
}

// AddNamed stores v as the value of type t named name.
func (s *store) AddNamed(t reflect.Type, name string, v any) error {
	if err := checkName(name); err != nil {
		return err
	}
	if err := checkEntry(t, v); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.install(t, name, true, v)
}

// Get returns the unnamed value of type t.
func (s *store) Get(t reflect.Type) (any, error) {
	if v, ok := s.TryGet(t); ok {
		return v, nil
	}
	return nil, fmt.Errorf("%w: settings %s", apis.ErrNotFound, uref.Name(t))
}

// GetNamed returns the value of type t named name.
func (s *store) GetNamed(t reflect.Type, name string) (any, error) {
	if v, ok := s.TryGetNamed(t, name); ok {
		return v, nil
	}
	return nil, fmt.Errorf("%w: settings %s named %q", apis.ErrNotFound, uref.Name(t), name)
}

// TryGet returns the unnamed value of type t, if present.
func (s *store) TryGet(t reflect.Type) (any, bool) {
	if t == nil {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.byType[t]
	return v, ok
}

// TryGetNamed returns the value of type t named name, if present.
func (s *store) TryGetNamed(t reflect.Type, name string) (any, bool) {
	if t == nil {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.byNamed[t][name]
	return v, ok
}

// GetOrCreate returns the unnamed value of type t, building it on a miss.
func (s *store) GetOrCreate(t reflect.Type) (any, error) {
	return s.getOrCreate(t, "", false, nil, nil)
}

// GetOrCreateNamed returns the value of type t named name, building it on a miss.
func (s *store) GetOrCreateNamed(t reflect.Type, name string) (any, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	return s.getOrCreate(t, name, true, nil, nil)
}

// GetOrCreateWith returns the unnamed value of type t, calling fn on a miss.
func (s *store) GetOrCreateWith(t reflect.Type, fn func() (any, error)) (any, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: nil factory func", apis.ErrInvalidArgument)
	}
	return s.getOrCreate(t, "", false, nil, fn)
}

// GetOrCreateNamedWith returns the value of type t named name, calling fn on a miss.
func (s *store) GetOrCreateNamedWith(t reflect.Type, name string, fn func() (any, error)) (any, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, fmt.Errorf("%w: nil factory func", apis.ErrInvalidArgument)
	}
	return s.getOrCreate(t, name, true, nil, fn)
}

// Cascade is GetOrCreate on behalf of an activation already in flight.
func (s *store) Cascade(t reflect.Type, trail apis.Trail) (any, error) {
	return s.getOrCreate(t, "", false, trail, nil)
}

// CascadeNamed is GetOrCreateNamed on behalf of an activation already in flight.
func (s *store) CascadeNamed(t reflect.Type, name string, trail apis.Trail) (any, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	return s.getOrCreate(t, name, true, trail, nil)
}

// Entries returns a snapshot for diagnostics/docs.
func (s *store) Entries() []apis.Entry {
	s.mu.RLock()
	entries := make([]apis.Entry, 0, s.count)
	for t := range s.byType {
		entries = append(entries, apis.Entry{Type: t})
	}
	for t, names := range s.byNamed {
		for name := range names {
			entries = append(entries, apis.Entry{Type: t, Name: name})
		}
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		ni, nj := uref.Name(entries[i].Type), uref.Name(entries[j].Type)
		if ni != nj {
			return ni < nj
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// Count returns the number of stored values.
func (s *store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}

// getOrCreate is the shared get-or-create path. A nil build runs the
// model's creation pipeline.
func (s *store) getOrCreate(t reflect.Type, name string, named bool, trail apis.Trail, build func() (any, error)) (any, error) {
	if err := uref.CheckSettingsType(t); err != nil {
		return nil, err
	}

	// Fast read path.
	if v, ok := s.lookup(t, name, named); ok {
		return v, nil
	}

	if trail.Contains(s.owner, t, name) {
		return nil, &apis.ConstructionError{
			Kind:     apis.ErrUnsupportedConstruction,
			Settings: t,
			Reason:   "requested again while being constructed on the same node",
			Cause:    ErrCircular,
		}
	}
	if limit := s.owner.Model().Config().MaxCascadeDepth; limit > 0 && trail.Depth() >= limit {
		return nil, &apis.ConstructionError{
			Kind:     apis.ErrUnsupportedConstruction,
			Settings: t,
			Reason:   fmt.Sprintf("more than %d nested resolutions", limit),
			Cause:    ErrTooDeep,
		}
	}

	if build == nil {
		next := trail.With(apis.Step{Node: s.owner, Type: t, Name: name})
		build = func() (any, error) {
			return s.owner.Model().Activate(apis.Request{Type: t, Origin: s.owner, Trail: next})
		}
	}

	v, err, shared := s.flight.Do(flightKey(t, name, named), func() (any, error) {
		// Re-check: a previous flight may have installed the value already.
		if v, ok := s.lookup(t, name, named); ok {
			return v, nil
		}

		v, err := build()
		if err != nil {
			return nil, err
		}
		if err := checkBuilt(t, v); err != nil {
			return nil, err
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		if err := s.install(t, name, named, v); err != nil {
			// Added directly by another caller while we were building.
			if existing, ok := s.lookupLocked(t, name, named); ok {
				return existing, nil
			}
			return nil, err
		}

		s.log.Debug("settings created",
			zap.String("node", s.owner.ID()),
			zap.Stringer("kind", s.owner.Kind()),
			zap.String("settings", uref.Name(t)),
			zap.String("name", name),
		)
		return v, nil
	})
	if err != nil {
		s.log.Debug("settings construction failed",
			zap.String("node", s.owner.ID()),
			zap.String("settings", uref.Name(t)),
			zap.String("name", name),
			zap.Bool("shared", shared),
			zap.Error(err),
		)
		return nil, err
	}
	return v, nil
}

// lookup reads an entry under the read lock.
func (s *store) lookup(t reflect.Type, name string, named bool) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lookupLocked(t, name, named)
}

// lookupLocked reads an entry. mu must be held.
func (s *store) lookupLocked(t reflect.Type, name string, named bool) (any, bool) {
	if named {
		v, ok := s.byNamed[t][name]
		return v, ok
	}
	v, ok := s.byType[t]
	return v, ok
}

// install stores v, failing on duplicates. mu must be held for writing.
func (s *store) install(t reflect.Type, name string, named bool, v any) error {
	if !named {
		if _, ok := s.byType[t]; ok {
			return fmt.Errorf("%w: settings %s", apis.ErrDuplicateKey, uref.Name(t))
		}
		s.byType[t] = v
		s.count++
		return nil
	}

	names, ok := s.byNamed[t]
	if !ok {
		names = make(map[string]any)
		s.byNamed[t] = names
	}
	if _, ok := names[name]; ok {
		return fmt.Errorf("%w: settings %s named %q", apis.ErrDuplicateKey, uref.Name(t), name)
	}
	names[name] = v
	s.count++
	return nil
}

// flightKey identifies a (type, name) pair within one store. reflect.Type
// values are unique per type and never freed, so their address is a
// stable identity.
func flightKey(t reflect.Type, name string, named bool) string {
	if !named {
		return fmt.Sprintf("%p", t)
	}
	return fmt.Sprintf("%p\x00%s", t, name)
}

func checkName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: %w", apis.ErrInvalidArgument, ErrEmptyName)
	}
	return nil
}

func checkEntry(t reflect.Type, v any) error {
	if err := uref.CheckSettingsType(t); err != nil {
		return err
	}
	return uref.CheckValue(t, v)
}

// checkBuilt validates a freshly built value. Failures are construction
// failures, not caller errors.
func checkBuilt(t reflect.Type, v any) error {
	if err := uref.CheckValue(t, v); err != nil {
		return &apis.ConstructionError{
			Kind:     apis.ErrConstructionFailed,
			Settings: t,
			Reason:   "built value rejected",
			Cause:    err,
		}
	}
	return nil
}
