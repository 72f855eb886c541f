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

// Package cxx wires the front end's subsystems together into the
// single entry point a driver calls: Compile takes one translation
// unit's tokens and a CompileContext and returns its parsed
// declarations, generated IR, and accumulated diagnostics. Building
// every subsystem in the order spec.md 9 lists (interner, namespace/
// type registry, symbol table, parser, template engine, IR generator)
// is this package's one job; none of the subsystems reach for a
// package-global of their own.
package cxx

import (
	"fmt"
	"os"

	"github.com/cxxfe/cxxfe/core/log"
	"github.com/cxxfe/cxxfe/cxx/ast"
	"github.com/cxxfe/cxxfe/cxx/compilectx"
	"github.com/cxxfe/cxxfe/cxx/concepts"
	"github.com/cxxfe/cxxfe/cxx/diag"
	"github.com/cxxfe/cxxfe/cxx/eval"
	"github.com/cxxfe/cxxfe/cxx/ir"
	"github.com/cxxfe/cxxfe/cxx/lexer"
	"github.com/cxxfe/cxxfe/cxx/mangling"
	manglingc "github.com/cxxfe/cxxfe/cxx/mangling/c"
	"github.com/cxxfe/cxxfe/cxx/mangling/itanium"
	"github.com/cxxfe/cxxfe/cxx/mangling/msvc"
	"github.com/cxxfe/cxxfe/cxx/parser"
	"github.com/cxxfe/cxxfe/cxx/strings"
	"github.com/cxxfe/cxxfe/cxx/symbols"
	"github.com/cxxfe/cxxfe/cxx/templates"
	"github.com/cxxfe/cxxfe/cxx/types"
)

// Unit holds everything produced by compiling one translation unit:
// the arena and string interner the AST and IR reference by handle,
// the symbol table and type registry populated along the way, and the
// generated instruction stream.
type Unit struct {
	Interner *strings.Interner
	Arena    *ast.Arena
	Types    *types.Registry
	Symbols  *symbols.Table
	Concepts *concepts.Registry

	Decls []ast.Handle
	IR    []ir.Instruction

	Diags *diag.Sink
}

// Mangler resolves ctx.ManglingStyle to a concrete mangling.Mangler,
// the three concrete implementations being the only thing
// compilectx.Context itself declines to depend on directly (see
// Context.Mangler's doc comment).
func Mangler(style compilectx.ManglingStyle) mangling.Mangler {
	switch style {
	case compilectx.MSVC:
		return msvc.Mangle
	default:
		return itanium.Mangle
	}
}

// MangleC is the C-linkage mangler (no name mangling beyond a leading
// underscore on some ABIs), exposed for callers that need to mangle an
// `extern "C"` declaration outside of ctx.ManglingStyle's two C++ ABIs.
var MangleC mangling.Mangler = manglingc.Mangle

// Compile parses cursor's token stream as one translation unit under
// ctx, populating a fresh type registry, symbol table and concept
// registry, then generates IR for every function and struct the parse
// produced (spec.md 9's parse -> instantiate -> generate pipeline; template
// instantiation itself happens inline during parsing, triggered at
// each template-id use site per spec.md 4.5.4).
func Compile(cursor lexer.Cursor, ctx *compilectx.Context, logCtx log.Context) *Unit {
	interner := strings.New()
	arena := ast.NewArena()
	reg := types.NewRegistry(interner)
	symtab := symbols.New(arena)
	conceptReg := concepts.New()
	sink := diag.NewSink(logCtx)

	queue := templates.NewQueue(interner)
	members := templates.NewLazyMemberRegistry(reg)
	inst := templates.NewInstantiator(arena, interner, reg, queue, members, conceptReg)

	p := parser.New(cursor, arena, interner, sink, ctx, reg, symtab, queue, members, inst, conceptReg)
	decls := p.ParseTranslationUnit()

	u := &Unit{
		Interner: interner,
		Arena:    arena,
		Types:    reg,
		Symbols:  symtab,
		Concepts: conceptReg,
		Decls:    decls,
		Diags:    sink,
	}

	evalCtx := eval.NewContext(symtab, reg, interner)
	gen := ir.NewGenerator(arena, symtab, reg, interner)
	gen.Mangler = ctx.Mangler(Mangler)
	u.generate(decls, gen, evalCtx)
	u.IR = gen.Instructions
	return u
}

// generate walks the top-level declarations (recursing through
// namespaces, which carry no IR of their own) and hands each function
// or struct to the IR generator, and each constexpr variable's
// initializer to the constant evaluator (spec.md 4.6: "a constexpr
// variable's initializer is evaluated at its point of declaration").
// A per-declaration failure is reported and does not stop the rest of
// the unit from being generated, matching spec.md 7's "keep going"
// recovery policy.
func (u *Unit) generate(decls []ast.Handle, gen *ir.Generator, evalCtx *eval.Context) {
	for _, h := range decls {
		switch n := u.Arena.Get(h).(type) {
		case *ast.FunctionDecl:
			if len(n.TemplateParams) > 0 {
				continue // instantiated lazily at each use, not emitted from its pattern
			}
			if err := gen.GenFunctionDecl(n); err != nil {
				u.Diags.Reportf(diag.Invariant, n.Token, "%s", err.Error())
			}
		case *ast.StructDecl:
			if len(n.TemplateParams) > 0 {
				continue
			}
			if err := gen.GenStructDecl(n); err != nil {
				u.Diags.Reportf(diag.Invariant, n.Token, "%s", err.Error())
			}
		case *ast.VarDecl:
			if n.IsConstexpr && n.Initializer != nil {
				if _, err := eval.Evaluate(u.Arena, n.Initializer, evalCtx); err != nil {
					u.Diags.Reportf(diag.ConstantEvaluation, n.Token, "%s", err.Error())
				}
			}
		case *ast.NamespaceDecl:
			u.generate(n.Decls, gen, evalCtx)
		}
	}
}

// CheckErrors prints every diagnostic in sink (up to maxErrors) to
// stderr and returns them as a single error, or nil if sink recorded
// nothing.
func CheckErrors(unitName string, sink *diag.Sink, maxErrors int) error {
	all := sink.All()
	if len(all) == 0 {
		return nil
	}
	shown := all
	if len(shown) > maxErrors {
		shown = shown[:maxErrors]
	}
	for _, d := range shown {
		fmt.Fprintln(os.Stderr, d.Error())
	}
	if len(all) > maxErrors {
		fmt.Fprintf(os.Stderr, "and %d more diagnostics in %s\n", len(all)-maxErrors, unitName)
	}
	return fmt.Errorf("%s: %d diagnostic(s)", unitName, len(all))
}
