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
)

// genBlock walks a Block's statements in order, entering and exiting a
// destructor-cleanup scope around it (spec.md 4.8's
// scope_destructor_stack / enter_scope / exit_scope).
func (g *Generator) genBlock(h ast.Handle) error {
	block, ok := g.Arena.Get(h).(*ast.Block)
	if !ok {
		return fmt.Errorf("ir: expected a block")
	}
	g.enterScope()
	defer g.exitScope()
	for _, s := range block.Stmts {
		if err := g.genStatement(s); err != nil {
			return err
		}
	}
	return nil
}

// genStatement dispatches one statement node, mirroring
// CodeGen_Visitors.cpp's AstToIr::visit per-kind switch.
func (g *Generator) genStatement(h ast.Handle) error {
	switch s := g.Arena.Get(h).(type) {
	case *ast.Block:
		return g.genBlock(h)

	case *ast.VarDecl:
		return g.genVarDecl(s)

	case *ast.If:
		return g.genIf(s)

	case *ast.While:
		return g.genWhile(s)

	case *ast.For:
		return g.genFor(s)

	case *ast.Return:
		return g.genReturn(s)

	case *ast.SEHTryExcept:
		return g.genSEHTryExcept(s)

	case *ast.SEHTryFinally:
		return g.genSEHTryFinally(s)

	case *ast.SEHLeave:
		return g.genSEHLeave(s)

	case ast.Expr:
		_, _, err := g.genExpr(s)
		return err

	default:
		return fmt.Errorf("ir: statement kind not yet supported by the generator")
	}
}

// genSEHTryExcept lowers `__try body __except (filter) handler`: the
// body runs unconditionally (this flat IR has no unwind opcode to
// express "only on exception"), followed by the filter-expression
// branch guarding the handler, matching the branch-if-false convention
// genIf already establishes.
func (g *Generator) genSEHTryExcept(s *ast.SEHTryExcept) error {
	bodyEnd := g.newLabel("seh_try_end")
	g.sehLeaveStack = append(g.sehLeaveStack, bodyEnd)
	err := g.genStatement(s.Body)
	g.sehLeaveStack = g.sehLeaveStack[:len(g.sehLeaveStack)-1]
	if err != nil {
		return err
	}
	g.emit(Instruction{Op: OpLabel, Name: bodyEnd})

	filter, _, err := g.genExpr(s.Filter)
	if err != nil {
		return err
	}
	endLabel := g.newLabel("seh_except_end")
	g.emit(Instruction{Op: OpConditionalBranch, Operands: []TypedValue{filter}, Target: endLabel})
	if err := g.genStatement(s.Handler); err != nil {
		return err
	}
	g.emit(Instruction{Op: OpLabel, Name: endLabel})
	return nil
}

// genSEHTryFinally lowers `__try body __finally handler`: the handler
// runs after the body completes normally, and is additionally run by
// genReturn before any `return` lexically inside body, via
// sehFinallyStack (spec.md 4.8's "SEH / exception hooks" bullet).
func (g *Generator) genSEHTryFinally(s *ast.SEHTryFinally) error {
	bodyEnd := g.newLabel("seh_try_end")
	g.sehLeaveStack = append(g.sehLeaveStack, bodyEnd)
	g.sehFinallyStack = append(g.sehFinallyStack, s.Handler)
	err := g.genStatement(s.Body)
	g.sehFinallyStack = g.sehFinallyStack[:len(g.sehFinallyStack)-1]
	g.sehLeaveStack = g.sehLeaveStack[:len(g.sehLeaveStack)-1]
	if err != nil {
		return err
	}
	g.emit(Instruction{Op: OpLabel, Name: bodyEnd})
	return g.genStatement(s.Handler)
}

// genSEHLeave lowers `__leave;` to a branch out of the innermost
// enclosing `__try` body, the SEH analogue of `break`.
func (g *Generator) genSEHLeave(s *ast.SEHLeave) error {
	if len(g.sehLeaveStack) == 0 {
		return fmt.Errorf("ir: __leave outside an SEH try block")
	}
	g.emit(Instruction{Op: OpBranch, Target: g.sehLeaveStack[len(g.sehLeaveStack)-1]})
	return nil
}

func (g *Generator) genVarDecl(s *ast.VarDecl) error {
	resolved, err := g.resolveTypeSpecifier(s.Type)
	if err != nil {
		return err
	}
	temp := g.newTemp()

	// Aggregate initialization (`T v{.a=1,.b=2}` or `T v{1,2}`) takes a
	// separate path: declare the zero-valued slot with a single
	// OpVariableStore, same as the no-initializer case below, then emit
	// one OpMemberStore per initializer-list entry (spec.md 4.8's
	// "Initializer lists" bullet) instead of folding it into that one
	// store.
	if il, ok := s.Initializer.(*ast.InitializerList); ok {
		zero := typedValueOf(g.Types, resolved.Index, resolved.PointerDepth, resolved.Reference, U64(0))
		g.emit(Instruction{Op: OpVariableStore, Name: s.Name, Result: temp, Operands: []TypedValue{zero}})
		g.locals[s.Name] = localVar{temp: temp, typ: resolved.Index, ptrDepth: resolved.PointerDepth, ref: resolved.Reference}
		if err := g.genAggregateInit(s.Name, resolved.Index, il); err != nil {
			return err
		}
		if !isTriviallyDestructible(g.Types, resolved.Index) {
			g.registerCleanup(s.Name, resolved.Index, temp)
		}
		return nil
	}

	v := typedValueOf(g.Types, resolved.Index, resolved.PointerDepth, resolved.Reference, U64(0))
	if s.Initializer != nil {
		initialized, _, err := g.genExpr(s.Initializer)
		if err != nil {
			return err
		}
		v = initialized
	}
	g.emit(Instruction{Op: OpVariableStore, Name: s.Name, Result: temp, Operands: []TypedValue{v}})
	g.locals[s.Name] = localVar{temp: temp, typ: resolved.Index, ptrDepth: resolved.PointerDepth, ref: resolved.Reference}
	if !isTriviallyDestructible(g.Types, resolved.Index) {
		g.registerCleanup(s.Name, resolved.Index, temp)
	}
	return nil
}

func (g *Generator) genIf(s *ast.If) error {
	if s.Init != ast.Nil {
		if err := g.genStatement(s.Init); err != nil {
			return err
		}
	}
	cond, _, err := g.genExpr(s.Cond)
	if err != nil {
		return err
	}
	elseLabel := g.newLabel("if_else")
	endLabel := g.newLabel("if_end")
	g.emit(Instruction{Op: OpConditionalBranch, Operands: []TypedValue{cond}, Target: elseLabel})
	if err := g.genStatement(s.Then); err != nil {
		return err
	}
	g.emit(Instruction{Op: OpBranch, Target: endLabel})
	g.emit(Instruction{Op: OpLabel, Name: elseLabel})
	if s.Else != ast.Nil {
		if err := g.genStatement(s.Else); err != nil {
			return err
		}
	}
	g.emit(Instruction{Op: OpLabel, Name: endLabel})
	return nil
}

func (g *Generator) genWhile(s *ast.While) error {
	startLabel := g.newLabel("while_start")
	endLabel := g.newLabel("while_end")
	g.emit(Instruction{Op: OpLabel, Name: startLabel})
	cond, _, err := g.genExpr(s.Cond)
	if err != nil {
		return err
	}
	g.emit(Instruction{Op: OpConditionalBranch, Operands: []TypedValue{cond}, Target: endLabel})
	if err := g.genStatement(s.Body); err != nil {
		return err
	}
	g.emit(Instruction{Op: OpBranch, Target: startLabel})
	g.emit(Instruction{Op: OpLabel, Name: endLabel})
	return nil
}

func (g *Generator) genFor(s *ast.For) error {
	if s.Init != ast.Nil {
		if err := g.genStatement(s.Init); err != nil {
			return err
		}
	}
	startLabel := g.newLabel("for_start")
	endLabel := g.newLabel("for_end")
	g.emit(Instruction{Op: OpLabel, Name: startLabel})
	if s.Cond != nil {
		cond, _, err := g.genExpr(s.Cond)
		if err != nil {
			return err
		}
		g.emit(Instruction{Op: OpConditionalBranch, Operands: []TypedValue{cond}, Target: endLabel})
	}
	if err := g.genStatement(s.Body); err != nil {
		return err
	}
	if s.Post != nil {
		if _, _, err := g.genExpr(s.Post); err != nil {
			return err
		}
	}
	g.emit(Instruction{Op: OpBranch, Target: startLabel})
	g.emit(Instruction{Op: OpLabel, Name: endLabel})
	return nil
}

// genReturn lowers every return statement the same way: it evaluates
// the value as an rvalue, runs enclosing __finally handlers and emits
// Return. A function returning a reference does not get the address of
// its operand, and a return in a function with a hidden return
// parameter is not marked for copy elision; GenFunctionDecl only
// records HasHiddenReturnParam on FunctionInfo.
func (g *Generator) genReturn(s *ast.Return) error {
	var v TypedValue
	if s.Value != nil {
		var err error
		v, _, err = g.genExpr(s.Value)
		if err != nil {
			return err
		}
	}
	if err := g.runEnclosingFinallyHandlers(); err != nil {
		return err
	}
	if s.Value == nil {
		g.emit(Instruction{Op: OpReturn})
		return nil
	}
	g.emit(Instruction{Op: OpReturn, Operands: []TypedValue{v}})
	return nil
}

// runEnclosingFinallyHandlers runs every `__finally` handler whose
// `__try` body lexically encloses the current point, innermost first,
// spec.md 4.8's "return within any enclosing __finally scope emits
// calls to each enclosing finally funclet before the actual return".
func (g *Generator) runEnclosingFinallyHandlers() error {
	for i := len(g.sehFinallyStack) - 1; i >= 0; i-- {
		if err := g.genStatement(g.sehFinallyStack[i]); err != nil {
			return err
		}
	}
	return nil
}
