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

package eval_test

import (
	"testing"

	"github.com/cxxfe/cxxfe/core/assert"
	"github.com/cxxfe/cxxfe/core/log"
	"github.com/cxxfe/cxxfe/cxx/ast"
	"github.com/cxxfe/cxxfe/cxx/eval"
)

func TestEvaluateUnaryTypeTrait(t *testing.T) {
	ctx := log.Testing(t)
	e, arena, in := newContext()

	intSpec := arena.Add(&ast.TypeSpecifier{Name: in.Intern("int"), ArrayExtent: -1})
	trait := &ast.TypeTraitExpression{Trait: "__is_integral", Lhs: intSpec, Rhs: ast.Nil}

	v, err := eval.Evaluate(arena, trait, e)
	assert.For(ctx, "__is_integral(int) succeeds").ThatError(err).Succeeded()
	assert.For(ctx, "__is_integral(int) is true").That(v.AsBool()).Equals(true)
}

func TestEvaluateBinaryTypeTrait(t *testing.T) {
	ctx := log.Testing(t)
	e, arena, in := newContext()

	intSpec := arena.Add(&ast.TypeSpecifier{Name: in.Intern("int"), ArrayExtent: -1})
	floatSpec := arena.Add(&ast.TypeSpecifier{Name: in.Intern("float"), ArrayExtent: -1})
	trait := &ast.TypeTraitExpression{Trait: "is_same", Lhs: intSpec, Rhs: floatSpec}

	v, err := eval.Evaluate(arena, trait, e)
	assert.For(ctx, "is_same(int, float) succeeds").ThatError(err).Succeeded()
	assert.For(ctx, "is_same(int, float) is false").That(v.AsBool()).Equals(false)
}

func TestEvaluateUnknownTypeTraitErrors(t *testing.T) {
	ctx := log.Testing(t)
	e, arena, in := newContext()

	intSpec := arena.Add(&ast.TypeSpecifier{Name: in.Intern("int"), ArrayExtent: -1})
	trait := &ast.TypeTraitExpression{Trait: "__is_something_made_up", Lhs: intSpec, Rhs: ast.Nil}

	_, err := eval.Evaluate(arena, trait, e)
	assert.For(ctx, "unknown trait errors").ThatError(err).Failed()
}
