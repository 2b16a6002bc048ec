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
	"go.uber.org/zap"

	"dirpx.dev/meta/apis"
)

const (
	// DefaultImplicitZero represents the default for ImplicitZero.
	// When true, pointer-to-struct settings without declared constructors
	// are built as new(Elem).
	DefaultImplicitZero = true
	// DefaultMaxCascadeDepth represents the default for MaxCascadeDepth.
	// A value of 64 should be sufficient for all practical hierarchies.
	DefaultMaxCascadeDepth = 64
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure MaxCascadeDepth is valid.
	if cfg.MaxCascadeDepth <= 0 {
		cfg.MaxCascadeDepth = DefaultMaxCascadeDepth
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		ImplicitZero:    DefaultImplicitZero,
		MaxCascadeDepth: DefaultMaxCascadeDepth,
		Logger:          zap.NewNop(),
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithImplicitZero sets the ImplicitZero option.
func WithImplicitZero(allow bool) Option {
	return func(c *apis.Config) {
		c.ImplicitZero = allow
	}
}

// WithMaxCascadeDepth sets the MaxCascadeDepth option.
// A non-positive value resets to the default.
func WithMaxCascadeDepth(depth int) Option {
	return func(c *apis.Config) {
		if depth <= 0 {
			c.MaxCascadeDepth = DefaultMaxCascadeDepth
			return
		}
		c.MaxCascadeDepth = depth
	}
}

// WithLogger sets the Logger option. A nil logger disables logging.
func WithLogger(l *zap.Logger) Option {
	return func(c *apis.Config) {
		if l == nil {
			l = zap.NewNop()
		}
		c.Logger = l
	}
}
