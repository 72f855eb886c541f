// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package eval

import (
	"github.com/cxxfe/cxxfe/cxx/strings"
	"github.com/cxxfe/cxxfe/cxx/symbols"
	"github.com/cxxfe/cxxfe/cxx/types"
)

// StorageDuration mirrors original_source's StorageDuration enum,
// consulted to validate constinit requires static/thread storage.
type StorageDuration int

const (
	Automatic StorageDuration = iota
	Static
	Thread
	Global
)

// Context is spec.md 4.6's EvaluationContext: {symbols, storage_duration,
// is_constinit, step_count, max_steps, current_depth,
// max_recursion_depth, optional_parser_for_lazy_instantiation,
// optional_struct_info_for_sizeof}.
type Context struct {
	Symbols         *symbols.Table
	Types           *types.Registry
	Interner        *strings.Interner
	StorageDuration StorageDuration
	IsConstinit     bool

	StepCount int
	MaxSteps  int

	CurrentDepth     int
	MaxRecursionDepth int

	// Bindings is the mutable local-variable map for the constexpr
	// function body currently executing, fresh per call and restored
	// by the caller afterward (spec.md 4.6: "the caller's map is
	// preserved across the call").
	Bindings map[strings.Handle]Value
}

// NewContext returns a Context with the default step/recursion limits
// original_source hard-codes (1,000,000 steps, 512 levels of recursion).
func NewContext(symbolTable *symbols.Table, reg *types.Registry, interner *strings.Interner) *Context {
	return &Context{
		Symbols:           symbolTable,
		Types:             reg,
		Interner:          interner,
		MaxSteps:          1000000,
		MaxRecursionDepth: 512,
		Bindings:          map[strings.Handle]Value{},
	}
}

// Step increments the step counter and reports whether the complexity
// budget is exhausted (spec.md 4.6: "step-count ... exhaustion ...
// yield Error").
func (c *Context) Step() bool {
	c.StepCount++
	return c.StepCount <= c.MaxSteps
}

// pushFrame swaps in a fresh binding map for a nested constexpr
// function call, returning a restore function the caller defers.
func (c *Context) pushFrame() func() {
	saved := c.Bindings
	c.Bindings = map[strings.Handle]Value{}
	c.CurrentDepth++
	return func() {
		c.Bindings = saved
		c.CurrentDepth--
	}
}
