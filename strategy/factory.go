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

package strategy

import (
	"go.uber.org/zap"

	"dirpx.dev/meta/apis"
	uref "dirpx.dev/meta/utils/reflect"
)

// NewFactoryStrategy creates an apis.Strategy that consults a FactoryRegistry.
func NewFactoryStrategy(reg apis.FactoryRegistry, log *zap.Logger) apis.Strategy {
	if log == nil {
		log = zap.NewNop()
	}
	return &factoryStrategy{reg: reg, log: log}
}

// factoryStrategy hands the request to the first factory registered for
// the requested type. When one exists its outcome is final.
type factoryStrategy struct {
	reg apis.FactoryRegistry
	log *zap.Logger
}

// Ensure factoryStrategy implements apis.Strategy.
var _ apis.Strategy = (*factoryStrategy)(nil)

// TryActivate looks the type up in the registry and calls the factory.
func (s *factoryStrategy) TryActivate(req apis.Request) (any, bool, error) {
	if s.reg == nil || req.Type == nil {
		return nil, false, nil
	}
	f, ok := s.reg.Lookup(req.Type)
	if !ok {
		return nil, false, nil
	}

	s.log.Debug("factory hit", zap.String("settings", uref.Name(req.Type)))

	origin, release := newView(req.Origin, req.Trail)
	v, err := f.Create(origin)
	release()
	if err != nil {
		return nil, true, &apis.ConstructionError{
			Kind:     apis.ErrConstructionFailed,
			Settings: req.Type,
			Reason:   "factory returned an error",
			Cause:    err,
		}
	}
	return v, true, nil
}
