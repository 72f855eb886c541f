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
	"math"
	"testing"

	"github.com/cxxfe/cxxfe/core/assert"
	"github.com/cxxfe/cxxfe/core/log"
	"github.com/cxxfe/cxxfe/cxx/ast"
	"github.com/cxxfe/cxxfe/cxx/eval"
)

func TestAddOverflowErrors(t *testing.T) {
	ctx := log.Testing(t)
	e, arena, _ := newContext()

	expr := &ast.BinaryOp{
		Op:   "+",
		Left: &ast.NumericLiteral{Int: math.MaxInt64},
		Right: &ast.NumericLiteral{Int: 1},
	}
	_, err := eval.Evaluate(arena, expr, e)
	assert.For(ctx, "int64 add overflow errors").ThatError(err).Failed()
}

func TestSubtractOverflowErrors(t *testing.T) {
	ctx := log.Testing(t)
	e, arena, _ := newContext()

	expr := &ast.BinaryOp{
		Op:    "-",
		Left:  &ast.NumericLiteral{Int: math.MinInt64},
		Right: &ast.NumericLiteral{Int: 1},
	}
	_, err := eval.Evaluate(arena, expr, e)
	assert.For(ctx, "int64 subtract overflow errors").ThatError(err).Failed()
}

func TestMultiplyOverflowErrors(t *testing.T) {
	ctx := log.Testing(t)
	e, arena, _ := newContext()

	expr := &ast.BinaryOp{
		Op:    "*",
		Left:  &ast.NumericLiteral{Int: math.MaxInt64},
		Right: &ast.NumericLiteral{Int: 2},
	}
	_, err := eval.Evaluate(arena, expr, e)
	assert.For(ctx, "int64 multiply overflow errors").ThatError(err).Failed()
}

func TestModuloByZeroErrors(t *testing.T) {
	ctx := log.Testing(t)
	e, arena, _ := newContext()

	expr := &ast.BinaryOp{Op: "%", Left: &ast.NumericLiteral{Int: 5}, Right: &ast.NumericLiteral{Int: 0}}
	_, err := eval.Evaluate(arena, expr, e)
	assert.For(ctx, "modulo by zero errors").ThatError(err).Failed()
}

func TestNegateIntMinErrors(t *testing.T) {
	ctx := log.Testing(t)
	e, arena, _ := newContext()

	expr := &ast.UnaryOp{Op: "-", Operand: &ast.NumericLiteral{Int: math.MinInt64}}
	_, err := eval.Evaluate(arena, expr, e)
	assert.For(ctx, "negating INT_MIN errors").ThatError(err).Failed()
}

func TestNegativeShiftAmountErrors(t *testing.T) {
	ctx := log.Testing(t)
	e, arena, _ := newContext()

	expr := &ast.BinaryOp{
		Op:   ">>",
		Left: &ast.NumericLiteral{Int: 8},
		Right: &ast.UnaryOp{Op: "-", Operand: &ast.NumericLiteral{Int: 1}},
	}
	_, err := eval.Evaluate(arena, expr, e)
	assert.For(ctx, "negative shift amount errors").ThatError(err).Failed()
}

func TestBitwiseAndOr(t *testing.T) {
	ctx := log.Testing(t)
	e, arena, _ := newContext()

	and := &ast.BinaryOp{Op: "&", Left: &ast.NumericLiteral{Int: 0b1100}, Right: &ast.NumericLiteral{Int: 0b1010}}
	v, err := eval.Evaluate(arena, and, e)
	assert.For(ctx, "and succeeds").ThatError(err).Succeeded()
	assert.For(ctx, "0b1100 & 0b1010 == 0b1000").ThatInteger(int(v.AsInt())).Equals(0b1000)

	or := &ast.BinaryOp{Op: "|", Left: &ast.NumericLiteral{Int: 0b1100}, Right: &ast.NumericLiteral{Int: 0b0010}}
	v, err = eval.Evaluate(arena, or, e)
	assert.For(ctx, "or succeeds").ThatError(err).Succeeded()
	assert.For(ctx, "0b1100 | 0b0010 == 0b1110").ThatInteger(int(v.AsInt())).Equals(0b1110)
}

func TestFloatDivisionByZeroErrors(t *testing.T) {
	ctx := log.Testing(t)
	e, arena, _ := newContext()

	expr := &ast.BinaryOp{Op: "/", Left: &ast.NumericLiteral{IsFloat: true, Float: 1.0}, Right: &ast.NumericLiteral{IsFloat: true, Float: 0.0}}
	_, err := eval.Evaluate(arena, expr, e)
	assert.For(ctx, "floating-point division by zero errors").ThatError(err).Failed()
}

func TestUnsignedUnderflowErrors(t *testing.T) {
	ctx := log.Testing(t)
	e, arena, _ := newContext()

	expr := &ast.BinaryOp{
		Op:   "-",
		Left: &ast.NumericLiteral{Int: 1, IsUnsigned: true},
		Right: &ast.NumericLiteral{Int: 2, IsUnsigned: true},
	}
	_, err := eval.Evaluate(arena, expr, e)
	assert.For(ctx, "unsigned underflow errors").ThatError(err).Failed()
}
