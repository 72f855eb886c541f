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

func TestParseSimpleStruct(t *testing.T) {
	ctx := log.Testing(t)
	f := newFixture("struct Point { int x; int y; };")
	decls := f.Parser.ParseTranslationUnit()

	assert.For(ctx, "no diagnostics").ThatBoolean(f.Diags.HasErrors()).IsFalse()
	s, ok := f.Arena.Get(decls[0]).(*ast.StructDecl)
	assert.For(ctx, "decl is a StructDecl").ThatBoolean(ok).IsTrue()
	assert.For(ctx, "struct name").ThatString(f.name(s.Name)).Equals("Point")
	assert.For(ctx, "two members").ThatInteger(len(s.Members)).Equals(2)
}

// TestParseStructWithNestedMemberFunctionTemplate covers the bug fixed
// this session: a `template<...>` member with no dispatch case in
// parseStructBody's switch fell through to the identifier parser,
// which reported a syntax error on the `template` keyword without
// consuming it, spinning the enclosing loop forever on the same
// token. This must now terminate and produce both struct members.
func TestParseStructWithNestedMemberFunctionTemplate(t *testing.T) {
	ctx := log.Testing(t)
	f := newFixture("struct Box { template<class U> U get() { return val; } int val; };")
	decls := f.Parser.ParseTranslationUnit()

	assert.For(ctx, "one top-level decl").ThatInteger(len(decls)).Equals(1)
	s, ok := f.Arena.Get(decls[0]).(*ast.StructDecl)
	assert.For(ctx, "decl is a StructDecl").ThatBoolean(ok).IsTrue()
	assert.For(ctx, "two members").ThatInteger(len(s.Members)).Equals(2)

	fn, ok := f.Arena.Get(s.Members[0]).(*ast.FunctionDecl)
	assert.For(ctx, "first member is a FunctionDecl").ThatBoolean(ok).IsTrue()
	assert.For(ctx, "member function name").ThatString(f.name(fn.Name)).Equals("get")
	assert.For(ctx, "one template param").ThatInteger(len(fn.TemplateParams)).Equals(1)

	v, ok := f.Arena.Get(s.Members[1]).(*ast.VarDecl)
	assert.For(ctx, "second member is a VarDecl").ThatBoolean(ok).IsTrue()
	assert.For(ctx, "field name").ThatString(f.name(v.Name)).Equals("val")
}

// TestParseStructWithNestedClassTemplate is the sibling regression
// case: a nested `template<...> struct` member, routed to
// parseStructDecl instead of parseStructMember.
func TestParseStructWithNestedClassTemplate(t *testing.T) {
	ctx := log.Testing(t)
	f := newFixture("struct Outer { template<class T> struct Inner { T v; }; };")
	decls := f.Parser.ParseTranslationUnit()

	assert.For(ctx, "one top-level decl").ThatInteger(len(decls)).Equals(1)
	outer, ok := f.Arena.Get(decls[0]).(*ast.StructDecl)
	assert.For(ctx, "decl is a StructDecl").ThatBoolean(ok).IsTrue()
	assert.For(ctx, "one member").ThatInteger(len(outer.Members)).Equals(1)

	inner, ok := f.Arena.Get(outer.Members[0]).(*ast.StructDecl)
	assert.For(ctx, "nested member is a StructDecl").ThatBoolean(ok).IsTrue()
	assert.For(ctx, "nested struct name").ThatString(f.name(inner.Name)).Equals("Inner")
	assert.For(ctx, "one template param").ThatInteger(len(inner.TemplateParams)).Equals(1)
}
