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

// execBlock runs a constexpr function body, spec.md 4.6: "variable
// declarations, assignments ..., pre/post increment/decrement,
// if/while/for with a local mutable binding map, and return". Returns
// (value, true, nil) if a return statement ran, (zero, false, nil) if
// control fell off the end of the block.
func execBlock(arena *ast.Arena, h ast.Handle, ctx *Context) (Value, bool, error) {
	block, ok := arena.Get(h).(*ast.Block)
	if !ok {
		return Value{}, false, fmt.Errorf("constexpr function body is not a block")
	}
	for _, stmtHandle := range block.Stmts {
		v, returned, brk, cont, err := execStatement(arena, stmtHandle, ctx)
		if err != nil {
			return Value{}, false, err
		}
		if returned {
			return v, true, nil
		}
		if brk || cont {
			// A bare break/continue reaching block scope (not consumed
			// by an enclosing loop) is a malformed constexpr body.
			return Value{}, false, fmt.Errorf("break/continue outside of a loop")
		}
	}
	return Value{}, false, nil
}

// execStatement runs one statement, reporting whether it returned,
// broke, or continued so enclosing loops/blocks can react.
func execStatement(arena *ast.Arena, h ast.Handle, ctx *Context) (value Value, returned, brk, cont bool, err error) {
	if !ctx.Step() {
		return Value{}, false, false, false, fmt.Errorf("constexpr evaluation exceeded complexity limit (infinite loop?)")
	}

	switch s := arena.Get(h).(type) {
	case *ast.VarDecl:
		var v Value
		if s.Initializer != nil {
			v, err = Evaluate(arena, s.Initializer, ctx)
			if err != nil {
				return Value{}, false, false, false, err
			}
		}
		ctx.Bindings[s.Name] = v
		return Value{}, false, false, false, nil

	case *ast.Return:
		if s.Value == nil {
			return Value{}, true, false, false, nil
		}
		v, err := Evaluate(arena, s.Value, ctx)
		if err != nil {
			return Value{}, false, false, false, err
		}
		return v, true, false, false, nil

	case *ast.Break:
		return Value{}, false, true, false, nil

	case *ast.Continue:
		return Value{}, false, false, true, nil

	case *ast.Block:
		v, returned, err := execBlock(arena, h, ctx)
		return v, returned, false, false, err

	case *ast.If:
		cond, err := Evaluate(arena, s.Cond, ctx)
		if err != nil {
			return Value{}, false, false, false, err
		}
		if cond.AsBool() {
			v, returned, brk, cont, err := execStatement(arena, s.Then, ctx)
			return v, returned, brk, cont, err
		}
		if s.Else != ast.Nil {
			v, returned, brk, cont, err := execStatement(arena, s.Else, ctx)
			return v, returned, brk, cont, err
		}
		return Value{}, false, false, false, nil

	case *ast.While:
		for {
			cond, err := Evaluate(arena, s.Cond, ctx)
			if err != nil {
				return Value{}, false, false, false, err
			}
			if !cond.AsBool() {
				return Value{}, false, false, false, nil
			}
			v, returned, brk, _, err := execStatement(arena, s.Body, ctx)
			if err != nil {
				return Value{}, false, false, false, err
			}
			if returned {
				return v, true, false, false, nil
			}
			if brk {
				return Value{}, false, false, false, nil
			}
		}

	case *ast.For:
		if s.Init != ast.Nil {
			if _, _, _, _, err := execStatement(arena, s.Init, ctx); err != nil {
				return Value{}, false, false, false, err
			}
		}
		for {
			if s.Cond != nil {
				cond, err := Evaluate(arena, s.Cond, ctx)
				if err != nil {
					return Value{}, false, false, false, err
				}
				if !cond.AsBool() {
					break
				}
			}
			v, returned, brk, _, err := execStatement(arena, s.Body, ctx)
			if err != nil {
				return Value{}, false, false, false, err
			}
			if returned {
				return v, true, false, false, nil
			}
			if brk {
				break
			}
			if s.Post != nil {
				if _, err := Evaluate(arena, s.Post, ctx); err != nil {
					return Value{}, false, false, false, err
				}
			}
		}
		return Value{}, false, false, false, nil

	case ast.Expr:
		if _, err := Evaluate(arena, s, ctx); err != nil {
			return Value{}, false, false, false, err
		}
		return Value{}, false, false, false, nil

	default:
		return Value{}, false, false, false, fmt.Errorf("statement kind not supported in constant expressions")
	}
}
