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
	"github.com/cxxfe/cxxfe/cxx/strings"
	"github.com/cxxfe/cxxfe/cxx/types"
)

const (
	lambdaThisMember     = "__this"
	lambdaCopyThisMember = "__copy_this"
	lambdaClosureParam   = "__closure"
)

// pendingLambda is a lambda expression discovered while emitting an
// enclosing function, queued for its closure struct and __invoke body
// to be generated once the enclosing function's own body is done
// (spec.md's "collect nested lambdas during enclosing-function
// emission, flush the worklist until no new lambdas appear").
type pendingLambda struct {
	expr        *ast.LambdaExpression
	closureName strings.Handle
	structIdx   types.Index
}

// genLambdaExpression synthesizes a closure struct type with one
// member per capture (plus `__this`/`__copy_this` for a `[this]`/
// `[*this]` capture), emits the instance construction inline at the
// lambda's source position, and queues the lambda's body for deferred
// `__invoke` emission. Every occurrence is queued; drainLambdaWorklist's
// emittedLambdas set skips an ID whose `__invoke` was already emitted,
// so each lambda ID's `__invoke` appears at most once per generator run.
func (g *Generator) genLambdaExpression(e *ast.LambdaExpression) (TypedValue, *LValueInfo, error) {
	closureName := g.Interner.Intern(fmt.Sprintf("__lambda_%d", e.ID))

	var members []types.Member
	var offset uint32
	addMember := func(name strings.Handle, typ types.Index) {
		info := g.Types.Get(typ)
		size := uint32(64)
		if info != nil {
			size = info.SizeInBits
			if size == 0 {
				size = 64
			}
		}
		members = append(members, types.Member{Name: name, Type: typ, SizeInBits: size, ByteOffset: offset})
		offset += (size + 7) / 8
	}

	for _, c := range e.Captures {
		switch {
		case c.This:
			structIdx, _ := g.Types.FindByName(g.currentStructName)
			addMember(g.Interner.Intern(lambdaThisMember), structIdx)
		case c.StarThis:
			structIdx, _ := g.Types.FindByName(g.currentStructName)
			addMember(g.Interner.Intern(lambdaCopyThisMember), structIdx)
		default:
			lv, ok := g.locals[c.Name]
			typ := types.Invalid
			if ok {
				typ = lv.typ
			}
			addMember(c.Name, typ)
		}
	}

	structIdx := g.Types.Add(types.Info{
		Name:       closureName,
		Base:       types.Struct,
		SizeInBits: offset * 8,
		StructInfo: g.Types.AddStruct(types.StructInfo{Members: members}),
	})

	instTemp := g.newTemp()
	zero := typedValueOf(g.Types, structIdx, 0, types.NotReference, U64(0))
	g.emit(Instruction{Op: OpVariableStore, Name: closureName, Result: instTemp, Operands: []TypedValue{zero}})

	for _, c := range e.Captures {
		var name strings.Handle
		var v TypedValue
		switch {
		case c.This:
			name = g.Interner.Intern(lambdaThisMember)
			structIdx, _ := g.Types.FindByName(g.currentStructName)
			v = TypedValue{Base: types.Struct, TypeIndex: structIdx, PointerDepth: 1, Value: Temp(thisTemp)}
		case c.StarThis:
			name = g.Interner.Intern(lambdaCopyThisMember)
			structIdx, _ := g.Types.FindByName(g.currentStructName)
			v = TypedValue{Base: types.Struct, TypeIndex: structIdx, Value: Temp(thisTemp)}
		default:
			name = c.Name
			loaded, _, err := g.genExpr(&ast.Identifier{Name: c.Name})
			if err != nil {
				return TypedValue{}, nil, err
			}
			v = loaded
		}
		m, ok := findAggregateMember(g.Types, structIdx, name, 0)
		if !ok {
			continue
		}
		g.emit(Instruction{
			Op:       OpMemberStore,
			Name:     name,
			Operands: []TypedValue{v},
			LValue:   &LValueInfo{Kind: Member, Base: instTemp, Offset: m.ByteOffset, MemberName: name},
		})
	}

	g.pendingLambdas = append(g.pendingLambdas, pendingLambda{expr: e, closureName: closureName, structIdx: structIdx})

	return typedValueOf(g.Types, structIdx, 0, types.NotReference, Temp(instTemp)), nil, nil
}

// drainLambdaWorklist emits every lambda queued during the current
// function's body generation, including lambdas nested inside lambdas
// already drained by this same loop (genLambdaInvoke's own call to
// genBlock can append more entries to g.pendingLambdas before the loop
// exits).
func (g *Generator) drainLambdaWorklist() error {
	for len(g.pendingLambdas) > 0 {
		p := g.pendingLambdas[0]
		g.pendingLambdas = g.pendingLambdas[1:]
		if g.emittedLambdas[p.expr.ID] {
			continue
		}
		g.emittedLambdas[p.expr.ID] = true
		if err := g.genLambdaInvoke(p); err != nil {
			return err
		}
	}
	return nil
}

// genLambdaInvoke emits p's dedicated __invoke function: the closure
// struct pointer as a hidden first parameter, the lambda's own declared
// parameters following it, and at the top of the body one load per
// capture binding the captured name as an ordinary local (so the body's
// identifier references resolve through g.locals exactly as they would
// inside any other function, without a separate AST-rewrite pass).
func (g *Generator) genLambdaInvoke(p pendingLambda) error {
	invokeName := g.Interner.Intern(g.Interner.View(p.closureName) + "__invoke")

	savedStruct := g.currentStructName
	savedFunction := g.currentFunctionName
	g.currentStructName = 0
	defer func() {
		g.currentStructName = savedStruct
		g.currentFunctionName = savedFunction
	}()

	g.varCounter = 0
	g.locals = map[strings.Handle]localVar{}
	g.scopeDestructorStack = nil
	g.currentFunctionName = invokeName

	info := &FunctionInfo{Name: invokeName, MangledName: invokeName, IsInline: true, IsExternalLinkage: false}

	closureTemp := g.newTemp()
	g.locals[g.Interner.Intern(lambdaClosureParam)] = localVar{temp: closureTemp, typ: p.structIdx, ptrDepth: 1}
	info.Params = append(info.Params, typedValueOf(g.Types, p.structIdx, 1, types.NotReference, Temp(closureTemp)))

	params, ok := paramsOf(g.Arena, p.expr.Params)
	if !ok {
		return fmt.Errorf("ir: malformed lambda parameter list")
	}
	for _, param := range params {
		resolved, err := g.resolveTypeSpecifier(param.Type)
		if err != nil {
			return err
		}
		temp := g.newTemp()
		g.locals[param.Name] = localVar{temp: temp, typ: resolved.Index, ptrDepth: resolved.PointerDepth, ref: resolved.Reference}
		info.Params = append(info.Params, typedValueOf(g.Types, resolved.Index, resolved.PointerDepth, resolved.Reference, Temp(temp)))
	}

	g.emit(Instruction{Op: OpFunctionDecl, Name: invokeName, Function: info})

	for _, c := range p.expr.Captures {
		name := c.Name
		if c.This {
			name = g.Interner.Intern(lambdaThisMember)
		} else if c.StarThis {
			name = g.Interner.Intern(lambdaCopyThisMember)
		}
		m, ok := findAggregateMember(g.Types, p.structIdx, name, 0)
		if !ok {
			continue
		}
		loadTemp := g.emit(Instruction{
			Op:     OpMemberAccess,
			Result: g.newTemp(),
			Name:   name,
			LValue: &LValueInfo{Kind: Member, Base: closureTemp, Offset: m.ByteOffset, MemberName: name},
		})
		bindTemp := g.newTemp()
		bound := typedValueOf(g.Types, m.Type, 0, types.NotReference, Temp(loadTemp))
		g.emit(Instruction{Op: OpVariableStore, Name: name, Result: bindTemp, Operands: []TypedValue{bound}})
		g.locals[name] = localVar{temp: bindTemp, typ: m.Type}
	}

	if p.expr.Body == ast.Nil {
		return nil
	}
	return g.genBlock(p.expr.Body)
}

// paramsOf resolves a lambda's []ast.Handle parameter list (each a
// *ast.Parameter node) into concrete values, the same shape
// FunctionDecl.Params already carries for an ordinary function.
func paramsOf(arena *ast.Arena, handles []ast.Handle) ([]ast.Parameter, bool) {
	out := make([]ast.Parameter, 0, len(handles))
	for _, h := range handles {
		p, ok := arena.Get(h).(*ast.Parameter)
		if !ok {
			return nil, false
		}
		out = append(out, *p)
	}
	return out, true
}

// genInitializerListExpr is the fallback lowering for an initializer
// list appearing outside a VarDecl's direct initializer (genVarDecl's
// genAggregateInit handles the typed, member-resolved case): evaluate
// each entry for side effects and return the last entry's value, since
// there is no target type here to resolve member offsets against.
func (g *Generator) genInitializerListExpr(e *ast.InitializerList) (TypedValue, *LValueInfo, error) {
	var last TypedValue
	for _, entry := range e.Entries {
		v, _, err := g.genExpr(entry.Value)
		if err != nil {
			return TypedValue{}, nil, err
		}
		last = v
	}
	return last, nil, nil
}
