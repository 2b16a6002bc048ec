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

package builder

import (
	"dirpx.dev/meta/activator"
	"dirpx.dev/meta/apis"
	"dirpx.dev/meta/factory"
	"dirpx.dev/meta/resolver"
	"dirpx.dev/meta/strategy"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildFactories builds and returns a new apis.FactoryRegistry. If a
// pre-existing registry is provided, its factories are copied over in order.
func (b *builder) BuildFactories(_ apis.Config, prev apis.FactoryRegistry) apis.FactoryRegistry {
	reg := factory.NewRegistry()
	if prev != nil {
		for _, f := range prev.Entries() {
			_ = reg.Register(f)
		}
	}
	return reg
}

// BuildActivator builds and returns a new apis.Activator. If a pre-existing
// activator is provided, its constructor declarations are re-declared.
// Cached plans are not carried over since cfg may change their outcome.
func (b *builder) BuildActivator(cfg apis.Config, prev apis.Activator) apis.Activator {
	act := activator.New(cfg)
	if prev != nil {
		for _, d := range prev.Declarations() {
			_ = act.Declare(d.Type, d.Funcs...)
		}
	}
	return act
}

// BuildResolver builds and returns a new apis.Resolver: factories first,
// then the activator.
func (b *builder) BuildResolver(cfg apis.Config, fac apis.FactoryRegistry, act apis.Activator) apis.Resolver {
	return resolver.New(
		strategy.NewFactoryStrategy(fac, cfg.Log().Named("factory")),
		strategy.NewActivatorStrategy(act),
	)
}
