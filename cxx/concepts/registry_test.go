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

package concepts_test

import (
	"testing"

	"github.com/cxxfe/cxxfe/core/assert"
	"github.com/cxxfe/cxxfe/core/log"
	"github.com/cxxfe/cxxfe/cxx/ast"
	"github.com/cxxfe/cxxfe/cxx/concepts"
	"github.com/cxxfe/cxxfe/cxx/strings"
)

func TestRegisterAndLookup(t *testing.T) {
	ctx := log.Testing(t)
	arena := ast.NewArena()
	in := strings.New()
	reg := concepts.New()

	name := in.Intern("Integral")
	decl := arena.Add(&ast.ConceptDecl{Name: name})

	reg.Register(name, decl)

	found, ok := reg.Lookup(name)
	assert.For(ctx, "lookup found").ThatBoolean(ok).IsTrue()
	assert.For(ctx, "lookup handle").ThatInteger(int(found)).Equals(int(decl))
	assert.For(ctx, "has reports true").ThatBoolean(reg.Has(name)).IsTrue()
}

func TestLookupMissingConceptFails(t *testing.T) {
	ctx := log.Testing(t)
	in := strings.New()
	reg := concepts.New()

	_, ok := reg.Lookup(in.Intern("Addable"))
	assert.For(ctx, "lookup of unregistered concept fails").ThatBoolean(ok).IsFalse()
}

func TestRegisterOverwritesPriorDeclaration(t *testing.T) {
	ctx := log.Testing(t)
	arena := ast.NewArena()
	in := strings.New()
	reg := concepts.New()

	name := in.Intern("Sized")
	first := arena.Add(&ast.ConceptDecl{Name: name})
	second := arena.Add(&ast.ConceptDecl{Name: name})

	reg.Register(name, first)
	reg.Register(name, second)

	found, _ := reg.Lookup(name)
	assert.For(ctx, "second registration wins").ThatInteger(int(found)).Equals(int(second))
}

func TestCheckConstraintGatesUnregisteredNames(t *testing.T) {
	ctx := log.Testing(t)
	arena := ast.NewArena()
	in := strings.New()
	reg := concepts.New()

	name := in.Intern("Hashable")
	reg.Register(name, arena.Add(&ast.ConceptDecl{Name: name}))

	assert.For(ctx, "registered constraint satisfied").ThatBoolean(reg.CheckConstraint(name)).IsTrue()
	assert.For(ctx, "no constraint always satisfied").ThatBoolean(reg.CheckConstraint(strings.Invalid)).IsTrue()
	assert.For(ctx, "unregistered constraint fails").ThatBoolean(reg.CheckConstraint(in.Intern("Unknown"))).IsFalse()
}
