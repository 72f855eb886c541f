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
	"fmt"

	"github.com/cxxfe/cxxfe/cxx/ast"
)

// Evaluate is the main entry point of spec.md 4.6, grounded on
// original_source's Evaluator::evaluate dispatch table. Supported
// forms: numeric/bool literals, identifier/variable lookup (constexpr
// only), binary/unary/ternary, member access on constexpr objects,
// constexpr function calls, sizeof, type traits (delegated to
// cxx/traits per spec.md 4.7), constructor-call scalar conversions.
func Evaluate(arena *ast.Arena, expr ast.Expr, ctx *Context) (Value, error) {
	if !ctx.Step() {
		return Value{}, fmt.Errorf("constexpr evaluation exceeded complexity limit (infinite loop?)")
	}

	switch n := expr.(type) {
	case *ast.NumericLiteral:
		if n.IsFloat {
			return Float(n.Float), nil
		}
		if n.IsUnsigned {
			return Uint(uint64(n.Int)), nil
		}
		return Int(n.Int), nil

	case *ast.BoolLiteral:
		return Bool(n.Value), nil

	case *ast.Identifier:
		return evaluateIdentifier(arena, n, ctx)

	case *ast.BinaryOp:
		if n.Op == "=" {
			return evaluateAssignment(arena, n, ctx)
		}
		lhs, err := Evaluate(arena, n.Left, ctx)
		if err != nil {
			return Value{}, err
		}
		rhs, err := Evaluate(arena, n.Right, ctx)
		if err != nil {
			return Value{}, err
		}
		return applyBinary(lhs, rhs, n.Op)

	case *ast.UnaryOp:
		operand, err := Evaluate(arena, n.Operand, ctx)
		if err != nil {
			return Value{}, err
		}
		switch n.Op {
		case "++", "--":
			return evaluateIncrementDecrement(arena, n, operand, ctx)
		default:
			return applyUnary(operand, n.Op)
		}

	case *ast.TernaryOp:
		cond, err := Evaluate(arena, n.Cond, ctx)
		if err != nil {
			return Value{}, err
		}
		if cond.AsBool() {
			return Evaluate(arena, n.Then, ctx)
		}
		return Evaluate(arena, n.Else, ctx)

	case *ast.MemberAccess:
		return evaluateMemberAccess(arena, n, ctx)

	case *ast.SizeofExpression:
		return evaluateSizeof(arena, n, ctx)

	case *ast.ConstructorCall:
		return evaluateConstructorCall(arena, n, ctx)

	case *ast.Call:
		return evaluateCall(arena, n, ctx)

	case *ast.CompoundAssign:
		return evaluateCompoundAssign(arena, n, ctx)

	case *ast.TypeTraitExpression:
		return evaluateTypeTrait(arena, n, ctx)

	default:
		return Value{}, fmt.Errorf("expression type not supported in constant expressions")
	}
}

func evaluateIdentifier(arena *ast.Arena, n *ast.Identifier, ctx *Context) (Value, error) {
	if v, ok := ctx.Bindings[n.Name]; ok {
		return v, nil
	}
	decls, ok := ctx.Symbols.Lookup(n.Name)
	if !ok {
		return Value{}, fmt.Errorf("%q is not a constant expression", ctx.Interner.View(n.Name))
	}
	for _, h := range decls {
		decl, ok := arena.Get(h).(*ast.VarDecl)
		if !ok || !decl.IsConstexpr || decl.Initializer == nil {
			continue
		}
		return Evaluate(arena, decl.Initializer, ctx)
	}
	return Value{}, fmt.Errorf("%q is not a constexpr variable", ctx.Interner.View(n.Name))
}

func evaluateIncrementDecrement(arena *ast.Arena, n *ast.UnaryOp, current Value, ctx *Context) (Value, error) {
	id, ok := n.Operand.(*ast.Identifier)
	if !ok {
		return Value{}, fmt.Errorf("increment/decrement target must be a local variable")
	}
	delta := int64(1)
	if n.Op == "--" {
		delta = -1
	}
	updated, err := applyBinary(current, Int(delta), "+")
	if err != nil {
		return Value{}, err
	}
	ctx.Bindings[id.Name] = updated
	if n.Postfix {
		return current, nil
	}
	return updated, nil
}

func evaluateMemberAccess(arena *ast.Arena, n *ast.MemberAccess, ctx *Context) (Value, error) {
	obj, err := Evaluate(arena, n.Object, ctx)
	if err != nil {
		return Value{}, err
	}
	if obj.Kind != KindObject {
		return Value{}, fmt.Errorf("member access on a non-object constant")
	}
	v, ok := obj.Object.Members[n.Member]
	if !ok {
		return Value{}, fmt.Errorf("%q has no constexpr member %q", ctx.Interner.View(obj.Object.TypeName), ctx.Interner.View(n.Member))
	}
	return v, nil
}

// evaluateSizeof implements spec.md 4.6: sizeof(type) consults the
// type registry; for a template parameter, the enclosing struct's
// TemplateArgInfo resolves sizeof(T) (handled by the type having
// already been substituted before reaching here, per cxx/templates's
// type substitutor).
func evaluateSizeof(arena *ast.Arena, n *ast.SizeofExpression, ctx *Context) (Value, error) {
	switch n.Kind {
	case ast.SizeofType, ast.AlignofType:
		spec, ok := arena.Get(n.Type).(*ast.TypeSpecifier)
		if !ok {
			return Value{}, fmt.Errorf("sizeof target is not a type")
		}
		idx, ok := ctx.Types.FindByName(spec.Name)
		if !ok {
			return Value{}, fmt.Errorf("unknown type %q in sizeof", ctx.Interner.View(spec.Name))
		}
		info := ctx.Types.Get(idx)
		if n.Kind == ast.AlignofType {
			return Int(int64(info.Alignment / 8)), nil
		}
		return Int(int64(info.SizeInBits / 8)), nil
	default:
		return Value{}, fmt.Errorf("sizeof with expression not yet supported")
	}
}

// evaluateConstructorCall implements constructor-call type conversions
// on scalars (float(3.14), int(100), ...), original_source's
// evaluate_constructor_call.
func evaluateConstructorCall(arena *ast.Arena, n *ast.ConstructorCall, ctx *Context) (Value, error) {
	spec, ok := arena.Get(n.Type).(*ast.TypeSpecifier)
	if !ok {
		return Value{}, fmt.Errorf("constructor call without a valid type specifier")
	}
	if len(n.Args) != 1 {
		return Value{}, fmt.Errorf("constructor call must have exactly 1 argument for constant evaluation")
	}
	arg, err := Evaluate(arena, n.Args[0], ctx)
	if err != nil {
		return Value{}, err
	}
	idx, ok := ctx.Types.FindByName(spec.Name)
	if !ok {
		return Value{}, fmt.Errorf("unknown target type %q", ctx.Interner.View(spec.Name))
	}
	base := ctx.Types.Get(idx).Base
	switch {
	case base.String() == "bool":
		return Bool(arg.AsBool()), nil
	case base.IsFloating():
		return Float(arg.AsFloat()), nil
	case base.IsUnsigned():
		return Uint(uint64(arg.AsInt())), nil
	case base.IsIntegral():
		return Int(arg.AsInt()), nil
	default:
		return Value{}, fmt.Errorf("unsupported constructor-call target type %q", ctx.Interner.View(spec.Name))
	}
}
