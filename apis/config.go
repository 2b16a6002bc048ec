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

package apis

import "go.uber.org/zap"

// Config carries read-only knobs that influence settings construction.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// ImplicitZero allows a pointer-to-struct settings type that declares
	// no constructors at all to be built as new(Elem).
	ImplicitZero bool

	// MaxCascadeDepth limits how many nested parent-settings resolutions a
	// single get-or-create may trigger.
	// Acts as a safety guard against runaway dependency chains.
	MaxCascadeDepth int

	// Logger receives diagnostic events. A nil Logger disables logging.
	Logger *zap.Logger
}

// Log returns the configured logger, or a no-op logger when none is set.
func (c Config) Log() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
