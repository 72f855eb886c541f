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

package parser_test

import (
	"testing"

	"github.com/cxxfe/cxxfe/core/assert"
	"github.com/cxxfe/cxxfe/core/log"
	"github.com/cxxfe/cxxfe/cxx/ast"
)

func TestParseSimpleFunctionDecl(t *testing.T) {
	ctx := log.Testing(t)
	f := newFixture("int add(int a, int b) { return a + b; }")
	decls := f.Parser.ParseTranslationUnit()

	assert.For(ctx, "no diagnostics").ThatBoolean(f.Diags.HasErrors()).IsFalse()
	assert.For(ctx, "one top-level decl").ThatInteger(len(decls)).Equals(1)

	fn, ok := f.Arena.Get(decls[0]).(*ast.FunctionDecl)
	assert.For(ctx, "decl is a FunctionDecl").ThatBoolean(ok).IsTrue()
	assert.For(ctx, "function name").ThatString(f.name(fn.Name)).Equals("add")
	assert.For(ctx, "two parameters").ThatInteger(len(fn.Params)).Equals(2)
	assert.For(ctx, "has a body").ThatBoolean(fn.Body != ast.Nil).IsTrue()
}

func TestParseNamespaceWithNestedDecl(t *testing.T) {
	ctx := log.Testing(t)
	f := newFixture("namespace ns { int x; }")
	decls := f.Parser.ParseTranslationUnit()

	assert.For(ctx, "no diagnostics").ThatBoolean(f.Diags.HasErrors()).IsFalse()
	assert.For(ctx, "one top-level decl").ThatInteger(len(decls)).Equals(1)

	ns, ok := f.Arena.Get(decls[0]).(*ast.NamespaceDecl)
	assert.For(ctx, "decl is a NamespaceDecl").ThatBoolean(ok).IsTrue()
	assert.For(ctx, "one nested decl").ThatInteger(len(ns.Decls)).Equals(1)

	v, ok := f.Arena.Get(ns.Decls[0]).(*ast.VarDecl)
	assert.For(ctx, "nested decl is a VarDecl").ThatBoolean(ok).IsTrue()
	assert.For(ctx, "variable name").ThatString(f.name(v.Name)).Equals("x")
}

func TestParseTemplateFunction(t *testing.T) {
	ctx := log.Testing(t)
	f := newFixture("template<class T> T identity(T x) { return x; }")
	decls := f.Parser.ParseTranslationUnit()

	assert.For(ctx, "no diagnostics").ThatBoolean(f.Diags.HasErrors()).IsFalse()
	assert.For(ctx, "one top-level decl").ThatInteger(len(decls)).Equals(1)

	fn, ok := f.Arena.Get(decls[0]).(*ast.FunctionDecl)
	assert.For(ctx, "decl is a FunctionDecl").ThatBoolean(ok).IsTrue()
	assert.For(ctx, "one template param").ThatInteger(len(fn.TemplateParams)).Equals(1)
	assert.For(ctx, "template param is a type param").ThatBoolean(fn.TemplateParams[0].IsType).IsTrue()
}

func TestParseConstexprVariable(t *testing.T) {
	ctx := log.Testing(t)
	f := newFixture("constexpr int k = 42;")
	decls := f.Parser.ParseTranslationUnit()

	assert.For(ctx, "no diagnostics").ThatBoolean(f.Diags.HasErrors()).IsFalse()
	assert.For(ctx, "one top-level decl").ThatInteger(len(decls)).Equals(1)

	v, ok := f.Arena.Get(decls[0]).(*ast.VarDecl)
	assert.For(ctx, "decl is a VarDecl").ThatBoolean(ok).IsTrue()
	assert.For(ctx, "marked constexpr").ThatBoolean(v.IsConstexpr).IsTrue()
	assert.For(ctx, "has an initializer").ThatBoolean(v.Initializer != nil).IsTrue()
}
