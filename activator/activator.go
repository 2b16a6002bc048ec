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

package activator

import (
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"

	"dirpx.dev/meta/apis"
	uref "dirpx.dev/meta/utils/reflect"
)

// New constructs an Activator for cfg.
func New(cfg apis.Config) apis.Activator {
	return &activator{
		cfg: cfg,
		log: cfg.Log().With(zap.String("component", "activator")),
	}
}

// activator builds settings from declared constructor funcs. Plans are
// memoized per settings type; building a plan takes no lock, concurrent
// duplicate builds are tolerated and the first installed plan wins.
type activator struct {
	cfg apis.Config
	log *zap.Logger

	// decls maps a settings type to its declaration.
	decls sync.Map // key: reflect.Type, val: *declaration
	// plans caches built plans.
	plans sync.Map // key: reflect.Type, val: *plan
}

// declaration keeps both the raw funcs (for migration) and their
// introspected form.
type declaration struct {
	funcs []any
	ctors []constructor
}

// Ensure activator implements apis.Activator.
var _ apis.Activator = (*activator)(nil)

// Declare registers constructor funcs for t. A type can be declared once;
// a plan already cached for t, or being built concurrently, is dropped so
// the next use sees the declared constructors. Activations already
// holding the old plan finish with it.
func (a *activator) Declare(t reflect.Type, fns ...any) error {
	if err := uref.CheckSettingsType(t); err != nil {
		return err
	}
	if len(fns) == 0 {
		return fmt.Errorf("%w: settings %s: no constructors given", apis.ErrInvalidArgument, uref.Name(t))
	}

	d := &declaration{funcs: append([]any(nil), fns...)}
	for _, fn := range fns {
		c, err := introspect(t, fn)
		if err != nil {
			return err
		}
		d.ctors = append(d.ctors, c)
	}

	if _, loaded := a.decls.LoadOrStore(t, d); loaded {
		return fmt.Errorf("%w: constructors for settings %s", apis.ErrDuplicateKey, uref.Name(t))
	}
	a.plans.Delete(t)

	a.log.Debug("constructors declared",
		zap.String("settings", uref.Name(t)),
		zap.Int("count", len(d.ctors)),
	)
	return nil
}

// Declarations returns a snapshot of the declared constructor sets
// (order is unspecified).
func (a *activator) Declarations() []apis.Declaration {
	var out []apis.Declaration
	a.decls.Range(func(key, value any) bool {
		d := value.(*declaration)
		out = append(out, apis.Declaration{
			Type:  key.(reflect.Type),
			Funcs: append([]any(nil), d.funcs...),
		})
		return true
	})
	return out
}

// Plan returns the memoized construction plan for t.
func (a *activator) Plan(t reflect.Type) (apis.Plan, error) {
	p, err := a.plan(t)
	if err != nil {
		return apis.Plan{}, err
	}
	return p.Plan, nil
}

// Activate builds a value for req.
func (a *activator) Activate(req apis.Request) (any, error) {
	if req.Origin == nil {
		return nil, fmt.Errorf("%w: nil origin node", apis.ErrInvalidArgument)
	}
	p, err := a.plan(req.Type)
	if err != nil {
		return nil, err
	}

	var args []reflect.Value
	switch p.Shape {
	case apis.ShapeEmpty:
	case apis.ShapeNodeOnly:
		args = []reflect.Value{reflect.ValueOf(req.Origin)}
	case apis.ShapeNodeAndParent:
		pv, err := req.Origin.Parent().Settings().Cascade(p.Parent, req.Trail)
		if err != nil {
			return nil, &apis.ConstructionError{
				Kind:        apis.ErrUnsupportedConstruction,
				Settings:    p.Settings,
				Constructor: p.Constructor,
				Param:       &apis.Param{Index: 1, Name: "parent", Type: p.Parent},
				Reason:      "parent settings unavailable",
				Cause:       err,
			}
		}
		args = []reflect.Value{reflect.ValueOf(req.Origin), reflect.ValueOf(pv)}
	}

	v, err := p.ctor.call(args)
	if err != nil {
		return nil, &apis.ConstructionError{
			Kind:        apis.ErrConstructionFailed,
			Settings:    p.Settings,
			Constructor: p.Constructor,
			Reason:      "constructor returned an error",
			Cause:       err,
		}
	}
	return v, nil
}

// plan loads or builds the plan for t.
func (a *activator) plan(t reflect.Type) (*plan, error) {
	if err := uref.CheckSettingsType(t); err != nil {
		return nil, err
	}
	if v, ok := a.plans.Load(t); ok {
		return v.(*plan), nil
	}

	decl, _ := a.decls.Load(t)
	p, err := choose(t, a.constructors(t, decl))
	if err != nil {
		// Failures are not cached: a later Declare may make t constructible.
		return nil, err
	}

	p.decl = decl

	// Install-if-absent: a concurrent build may have won.
	actual, loaded := a.plans.LoadOrStore(t, p)

	// A Declare that raced with the build may have dropped the plans
	// before this one was installed. Drop it and build against the new set.
	if cur, _ := a.decls.Load(t); actual.(*plan).decl != cur {
		a.plans.CompareAndDelete(t, actual)
		return a.plan(t)
	}
	if !loaded {
		a.log.Debug("plan built",
			zap.String("settings", uref.Name(t)),
			zap.Stringer("shape", p.Shape),
			zap.String("constructor", p.Constructor),
		)
	}
	return actual.(*plan), nil
}

// constructors collects the candidate constructors of t: declared funcs
// first, then the type's own Constructible funcs, then (when allowed and
// nothing else exists) the implicit new(Elem).
func (a *activator) constructors(t reflect.Type, decl any) []constructor {
	var out []constructor
	if d, ok := decl.(*declaration); ok {
		out = append(out, d.ctors...)
	}
	for _, fn := range declaredBy(t) {
		c, err := introspect(t, fn)
		if err != nil {
			a.log.Warn("ignoring self-declared constructor",
				zap.String("settings", uref.Name(t)),
				zap.Error(err),
			)
			continue
		}
		out = append(out, c)
	}
	if len(out) == 0 && a.cfg.ImplicitZero && t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Struct {
		out = append(out, implicitZero(t))
	}
	return out
}
