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
	"reflect"
	"sync"

	"go.uber.org/zap"

	"dirpx.dev/meta/apis"
	"dirpx.dev/meta/builder"
	"dirpx.dev/meta/config"
	uref "dirpx.dev/meta/utils/reflect"
)

// Option configures NewRoot.
type Option func(*options)

type options struct {
	cfg  apis.Config
	bld  apis.Builder
	prev *Root
}

// WithConfig sets the configuration.
func WithConfig(cfg apis.Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithBuilder sets the builder used to compose the pipeline.
func WithBuilder(b apis.Builder) Option {
	return func(o *options) {
		if b != nil {
			o.bld = b
		}
	}
}

// WithMigration hands prev's factory registry and constructor declarations
// to the builder. Nodes and settings are never migrated.
func WithMigration(prev *Root) Option {
	return func(o *options) { o.prev = prev }
}

// Root is the model root. It is its own model and its own parent.
type Root struct {
	node

	cfg apis.Config
	log *zap.Logger
	bld apis.Builder

	factories apis.FactoryRegistry
	act       apis.Activator
	res       apis.Resolver

	// mu guards type node creation. Lookups go through types without it.
	mu    sync.Mutex
	types sync.Map // key: descriptor, val: *Type
}

// Ensure Root implements apis.Model.
var _ apis.Model = (*Root)(nil)

// NewRoot constructs a Root.
func NewRoot(opts ...Option) (*Root, error) {
	o := options{cfg: config.DefaultConfig(), bld: builder.New()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.cfg.MaxCascadeDepth <= 0 {
		o.cfg.MaxCascadeDepth = config.DefaultMaxCascadeDepth
	}

	r := &Root{
		cfg: o.cfg,
		log: o.cfg.Log().With(zap.String("component", "model")),
		bld: o.bld,
	}
	if err := r.init(apis.KindRoot, r, o.cfg.Log().With(zap.String("component", "store"))); err != nil {
		return nil, err
	}

	var prevFac apis.FactoryRegistry
	var prevAct apis.Activator
	if o.prev != nil {
		prevFac, prevAct = o.prev.factories, o.prev.act
	}
	r.factories = r.bld.BuildFactories(r.cfg, prevFac)
	r.act = r.bld.BuildActivator(r.cfg, prevAct)
	r.res = r.bld.BuildResolver(r.cfg, r.factories, r.act)
	if r.factories == nil || r.act == nil || r.res == nil {
		return nil, fmt.Errorf("%w: builder returned a nil component", apis.ErrInvalidArgument)
	}

	r.log.Debug("root created", zap.String("node", r.id))
	return r, nil
}

// Model returns r.
func (r *Root) Model() apis.Model { return r }

// Parent returns r.
func (r *Root) Parent() apis.Node { return r }

// Config returns the configuration r was built with.
func (r *Root) Config() apis.Config { return r.cfg }

// Builder returns the builder r was composed with.
func (r *Root) Builder() apis.Builder { return r.bld }

// Factories returns r's factory registry.
func (r *Root) Factories() apis.FactoryRegistry { return r.factories }

// Activator returns r's activator.
func (r *Root) Activator() apis.Activator { return r.act }

// TypeNode returns the node for descriptor d, creating it on first use.
func (r *Root) TypeNode(d any) (apis.TypeNode, error) {
	if err := checkDescriptor(d); err != nil {
		return nil, err
	}

	// Fast read path.
	if v, ok := r.types.Load(d); ok {
		return v.(*Type), nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine created it meanwhile.
	if v, ok := r.types.Load(d); ok {
		return v.(*Type), nil
	}

	t, err := newType(r, d)
	if err != nil {
		return nil, err
	}
	r.types.Store(d, t)

	r.log.Debug("type node created",
		zap.String("node", t.id),
		zap.String("descriptor", fmt.Sprint(d)),
	)
	return t, nil
}

// Types returns a snapshot of the existing type nodes.
func (r *Root) Types() []apis.TypeNode {
	var out []apis.TypeNode
	r.types.Range(func(_, value any) bool {
		out = append(out, value.(*Type))
		return true
	})
	return out
}

// GetOrCreateTypeSettings returns the settings t of the type node for d.
func (r *Root) GetOrCreateTypeSettings(t reflect.Type, d any) (any, error) {
	tn, err := r.TypeNode(d)
	if err != nil {
		return nil, err
	}
	return tn.Settings().GetOrCreate(t)
}

// RegisterFactory appends f to the factory registry.
func (r *Root) RegisterFactory(f apis.Factory) error {
	if err := r.factories.Register(f); err != nil {
		return err
	}
	r.log.Debug("factory registered", zap.String("settings", uref.Name(f.SettingsType())))
	return nil
}

// DeclareConstructors registers constructor funcs for t with the activator.
func (r *Root) DeclareConstructors(t reflect.Type, fns ...any) error {
	return r.act.Declare(t, fns...)
}

// TryActivate runs the creation pipeline for t on behalf of origin. The
// result is not stored.
func (r *Root) TryActivate(t reflect.Type, origin apis.Node) (any, error) {
	if origin == nil {
		return nil, fmt.Errorf("%w: nil origin node", apis.ErrInvalidArgument)
	}
	return r.Activate(apis.Request{
		Type:   t,
		Origin: origin,
		Trail:  apis.Trail{}.With(apis.Step{Node: origin, Type: t}),
	})
}

// Activate runs the creation pipeline for req. A nil value, or one not
// assignable to req.Type, fails with ErrConstructionFailed.
func (r *Root) Activate(req apis.Request) (any, error) {
	if err := uref.CheckSettingsType(req.Type); err != nil {
		return nil, err
	}
	if req.Origin == nil {
		return nil, fmt.Errorf("%w: nil origin node", apis.ErrInvalidArgument)
	}
	if req.Origin.Model() != apis.Model(r) {
		return nil, fmt.Errorf("%w: %w", apis.ErrInvalidArgument, ErrForeignNode)
	}

	v, err := r.res.Activate(req)
	if err == nil {
		if cerr := uref.CheckValue(req.Type, v); cerr != nil {
			err = &apis.ConstructionError{
				Kind:     apis.ErrConstructionFailed,
				Settings: req.Type,
				Reason:   "built value rejected",
				Cause:    cerr,
			}
		}
	}
	if err != nil {
		r.log.Warn("settings activation failed",
			zap.String("node", req.Origin.ID()),
			zap.Stringer("kind", req.Origin.Kind()),
			zap.String("settings", uref.Name(req.Type)),
			zap.Error(err),
		)
		return nil, err
	}
	return v, nil
}
