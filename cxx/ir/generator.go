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

package ir

import (
	"fmt"

	"github.com/cxxfe/cxxfe/cxx/ast"
	"github.com/cxxfe/cxxfe/cxx/mangling"
	"github.com/cxxfe/cxxfe/cxx/mangling/itanium"
	"github.com/cxxfe/cxxfe/cxx/strings"
	"github.com/cxxfe/cxxfe/cxx/symbols"
	"github.com/cxxfe/cxxfe/cxx/types"
)

// cleanup is one destructor-call action registered by entering a scope
// that owns a non-trivially-destructible local.
type cleanup struct {
	name strings.Handle
	typ  types.Index
	temp TempVar
}

// Generator walks the AST in program order emitting a flat
// Instruction stream, spec.md 4.8's per-function state.
type Generator struct {
	Arena    *ast.Arena
	Symbols  *symbols.Table
	Types    *types.Registry
	Interner *strings.Interner

	// Mangler produces the pre-mangled name spec.md 4.8 requires on
	// every emitted function; set by the driver from
	// compilectx.Context.ManglingStyle (see Context.Mangler's doc
	// comment), defaulting to the Itanium scheme so a caller that never
	// sets it still gets a deterministic name.
	Mangler mangling.Mangler

	Instructions []Instruction

	varCounter int

	// scopeDestructorStack is a stack of stacks of cleanup actions;
	// enterScope/exitScope runs a scope's cleanups in reverse order.
	scopeDestructorStack [][]cleanup

	currentStructName    strings.Handle
	currentFunctionName  strings.Handle
	currentNamespaceStack []strings.Handle

	locals map[strings.Handle]localVar

	labelCounter int
	lambdaCounter int

	// pendingLambdas and emittedLambdas implement the lambda worklist:
	// genLambdaExpression appends an entry per lambda it encounters, and
	// drainLambdaWorklist (called once the enclosing function's own body
	// is emitted) pops and generates each one's __invoke body, skipping
	// an ID already present in emittedLambdas.
	pendingLambdas []pendingLambda
	emittedLambdas map[int]bool

	// sehFinallyStack and sehLeaveStack mirror
	// scopeDestructorStack for MSVC structured exception handling:
	// sehFinallyStack is the enclosing `__finally` handler bodies a
	// `return` must run first (spec.md 4.8's "SEH / exception hooks"
	// bullet); sehLeaveStack is the label each enclosing `__try` body's
	// `__leave` jumps to.
	sehFinallyStack []ast.Handle
	sehLeaveStack   []strings.Handle
}

type localVar struct {
	temp    TempVar
	typ     types.Index
	ptrDepth int
	ref     types.ReferenceKind
}

// NewGenerator constructs a Generator bound to shared compiler state.
func NewGenerator(arena *ast.Arena, symTable *symbols.Table, reg *types.Registry, interner *strings.Interner) *Generator {
	return &Generator{
		Arena:    arena,
		Symbols:  symTable,
		Types:    reg,
		Interner: interner,
		Mangler:  itanium.Mangle,
		locals:   map[strings.Handle]localVar{},
		emittedLambdas: map[int]bool{},
	}
}

// newTemp allocates the next TempVar, spec.md 4.8's var_counter.
func (g *Generator) newTemp() TempVar {
	g.varCounter++
	return TempVar(g.varCounter)
}

// newLabel allocates a fresh synthetic label name.
func (g *Generator) newLabel(prefix string) strings.Handle {
	g.labelCounter++
	return g.Interner.Intern(fmt.Sprintf("%s_%d", prefix, g.labelCounter))
}

func (g *Generator) emit(i Instruction) TempVar {
	g.Instructions = append(g.Instructions, i)
	return i.Result
}

// enterScope pushes a fresh cleanup stack, spec.md 4.8's
// scope_destructor_stack / enter_scope.
func (g *Generator) enterScope() {
	g.scopeDestructorStack = append(g.scopeDestructorStack, nil)
}

// exitScope runs the current scope's registered destructor calls in
// reverse declaration order, then pops the scope.
func (g *Generator) exitScope() {
	n := len(g.scopeDestructorStack)
	if n == 0 {
		return
	}
	top := g.scopeDestructorStack[n-1]
	for i := len(top) - 1; i >= 0; i-- {
		c := top[i]
		g.emit(Instruction{
			Op:   OpDestructorCall,
			Name: c.name,
			Operands: []TypedValue{{
				Base:      g.Types.Get(c.typ).Base,
				TypeIndex: c.typ,
				Value:     Temp(c.temp),
			}},
		})
	}
	g.scopeDestructorStack = g.scopeDestructorStack[:n-1]
}

// registerCleanup records a destructor call to run when the current
// scope exits, skipped by callers for trivially-destructible types.
func (g *Generator) registerCleanup(name strings.Handle, typ types.Index, temp TempVar) {
	n := len(g.scopeDestructorStack)
	if n == 0 {
		g.enterScope()
		n = 1
	}
	g.scopeDestructorStack[n-1] = append(g.scopeDestructorStack[n-1], cleanup{name, typ, temp})
}

func typedValueOf(reg *types.Registry, idx types.Index, ptrDepth int, ref types.ReferenceKind, v Value) TypedValue {
	info := reg.Get(idx)
	return TypedValue{
		Base:         info.Base,
		SizeInBits:   info.SizeInBits,
		PointerDepth: ptrDepth,
		Reference:    ref,
		TypeIndex:    idx,
		Value:        v,
	}
}
