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

package config

import (
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"dirpx.dev/meta/apis"
)

// Keys read by FromViper.
const (
	KeyImplicitZero    = "settings.implicit_zero"
	KeyMaxCascadeDepth = "settings.max_cascade_depth"
	KeyLogLevel        = "log.level"
	KeyLogDevelopment  = "log.development"
)

// FromViper builds an apis.Config from v on top of DefaultConfig.
// Unset keys keep their defaults. When log.level is set a zap logger is
// built for it; otherwise logging stays disabled. Extra options are
// applied last.
func FromViper(v *viper.Viper, opts ...Option) (apis.Config, error) {
	if v == nil {
		return apis.Config{}, fmt.Errorf("%w: nil viper instance", apis.ErrInvalidArgument)
	}

	v.SetDefault(KeyImplicitZero, DefaultImplicitZero)
	v.SetDefault(KeyMaxCascadeDepth, DefaultMaxCascadeDepth)

	all := []Option{
		WithImplicitZero(v.GetBool(KeyImplicitZero)),
		WithMaxCascadeDepth(v.GetInt(KeyMaxCascadeDepth)),
	}

	if v.IsSet(KeyLogLevel) {
		logger, err := buildLogger(v.GetString(KeyLogLevel), v.GetBool(KeyLogDevelopment))
		if err != nil {
			return apis.Config{}, err
		}
		all = append(all, WithLogger(logger))
	}

	return NewConfig(append(all, opts...)...), nil
}

// buildLogger creates a zap logger at the given level.
func buildLogger(level string, development bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", apis.ErrInvalidArgument, KeyLogLevel, err)
	}

	zc := zap.NewProductionConfig()
	if development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("config: build logger: %w", err)
	}
	return logger, nil
}
