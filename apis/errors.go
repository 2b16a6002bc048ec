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

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
)

var (
	// ErrDuplicateKey is returned when a settings value (or named value)
	// already exists for the node, type and name.
	ErrDuplicateKey = errors.New("meta: duplicate settings key")
	// ErrNotFound is returned by direct lookups of absent entries.
	ErrNotFound = errors.New("meta: not found")
	// ErrUnsupportedConstruction is returned when no factory handles a
	// settings type and no valid constructor shape exists, or when a
	// parent-scoped dependency cannot be produced.
	ErrUnsupportedConstruction = errors.New("meta: unsupported construction")
	// ErrConstructionFailed is returned when a factory or constructor ran
	// but reported an error or produced a nil value.
	ErrConstructionFailed = errors.New("meta: construction failed")
	// ErrInvalidArgument is returned for nil or malformed inputs.
	ErrInvalidArgument = errors.New("meta: invalid argument")
)

// Param identifies one constructor parameter in diagnostics.
type Param struct {
	// Index is the zero-based position of the parameter.
	Index int
	// Name is a conventional name ("origin", "parent").
	Name string
	// Type is the declared parameter type.
	Type reflect.Type
}

// String renders the parameter as "#2 parent *pkg.Type".
func (p Param) String() string {
	s := "#" + strconv.Itoa(p.Index+1)
	if p.Name != "" {
		s += " " + p.Name
	}
	if p.Type != nil {
		s += " " + p.Type.String()
	}
	return s
}

// ConstructionError describes why a settings value could not be built.
// It matches Kind with errors.Is and unwraps to Cause.
type ConstructionError struct {
	// Kind is ErrUnsupportedConstruction or ErrConstructionFailed.
	Kind error
	// Settings is the settings type that was requested.
	Settings reflect.Type
	// Constructor is the diagnostic name of the chosen constructor, if any.
	Constructor string
	// Param is the offending parameter, if any.
	Param *Param
	// Reason is a short human-readable explanation.
	Reason string
	// Cause is the nested failure, if any.
	Cause error
}

// Error implements error.
func (e *ConstructionError) Error() string {
	var b strings.Builder
	kind := e.Kind
	if kind == nil {
		kind = ErrUnsupportedConstruction
	}
	b.WriteString(kind.Error())
	if e.Settings != nil {
		b.WriteString(": settings ")
		b.WriteString(e.Settings.String())
	}
	if e.Constructor != "" {
		b.WriteString(": constructor ")
		b.WriteString(e.Constructor)
	}
	if e.Param != nil {
		b.WriteString(": parameter ")
		b.WriteString(e.Param.String())
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Is reports whether target is the kind sentinel of e.
func (e *ConstructionError) Is(target error) bool {
	if e.Kind == nil {
		return target == ErrUnsupportedConstruction
	}
	return target == e.Kind
}

// Unwrap returns the nested cause.
func (e *ConstructionError) Unwrap() error { return e.Cause }
