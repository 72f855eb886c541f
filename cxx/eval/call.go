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

// evaluateCall implements constexpr function calls (spec.md 4.6):
// parameters are bound in a fresh map, the body is evaluated
// recursively up to max_recursion_depth, and a nested call's map
// replaces (then restores) the caller's.
func evaluateCall(arena *ast.Arena, n *ast.Call, ctx *Context) (Value, error) {
	id, ok := n.Callee.(*ast.Identifier)
	if !ok {
		return Value{}, fmt.Errorf("only direct calls to named functions are constant expressions")
	}
	decls, ok := ctx.Symbols.Lookup(id.Name)
	if !ok {
		return Value{}, fmt.Errorf("%q is not a constexpr function", ctx.Interner.View(id.Name))
	}

	var fn *ast.FunctionDecl
	for _, h := range decls {
		if f, ok := arena.Get(h).(*ast.FunctionDecl); ok && (f.IsConstexpr || f.IsConsteval) && len(f.Params) == len(n.Args) {
			fn = f
			break
		}
	}
	if fn == nil {
		return Value{}, fmt.Errorf("%q has no matching constexpr overload", ctx.Interner.View(id.Name))
	}
	if fn.Body == ast.Nil {
		return Value{}, fmt.Errorf("%q has no definition available for constant evaluation", ctx.Interner.View(id.Name))
	}
	if ctx.CurrentDepth+1 > ctx.MaxRecursionDepth {
		return Value{}, fmt.Errorf("constexpr evaluation exceeded maximum recursion depth")
	}

	args := make([]Value, len(n.Args))
	for i, a := range n.Args {
		v, err := Evaluate(arena, a, ctx)
		if err != nil {
			return Value{}, err
		}
		args[i] = v
	}

	restore := ctx.pushFrame()
	defer restore()
	for i, p := range fn.Params {
		ctx.Bindings[p.Name] = args[i]
	}

	result, returned, err := execBlock(arena, fn.Body, ctx)
	if err != nil {
		return Value{}, err
	}
	if !returned {
		return Value{}, nil
	}
	return result, nil
}

// evaluateAssignment implements simple `=` assignment against a local
// binding, spec.md 4.6's "assignments (simple and compound)".
func evaluateAssignment(arena *ast.Arena, n *ast.BinaryOp, ctx *Context) (Value, error) {
	id, ok := n.Left.(*ast.Identifier)
	if !ok {
		return Value{}, fmt.Errorf("assignment target must be a local variable")
	}
	if _, ok := ctx.Bindings[id.Name]; !ok {
		return Value{}, fmt.Errorf("%q is not an assignable local variable", ctx.Interner.View(id.Name))
	}
	rhs, err := Evaluate(arena, n.Right, ctx)
	if err != nil {
		return Value{}, err
	}
	ctx.Bindings[id.Name] = rhs
	return rhs, nil
}

// evaluateCompoundAssign implements `+=`, `-=`, etc. against a local
// binding.
func evaluateCompoundAssign(arena *ast.Arena, n *ast.CompoundAssign, ctx *Context) (Value, error) {
	id, ok := n.Left.(*ast.Identifier)
	if !ok {
		return Value{}, fmt.Errorf("compound assignment target must be a local variable")
	}
	current, ok := ctx.Bindings[id.Name]
	if !ok {
		return Value{}, fmt.Errorf("%q is not an assignable local variable", ctx.Interner.View(id.Name))
	}
	rhs, err := Evaluate(arena, n.Right, ctx)
	if err != nil {
		return Value{}, err
	}
	op := n.Op
	if len(op) > 1 && op[len(op)-1] == '=' {
		op = op[:len(op)-1]
	}
	updated, err := applyBinary(current, rhs, op)
	if err != nil {
		return Value{}, err
	}
	ctx.Bindings[id.Name] = updated
	return updated, nil
}
