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

var binaryOpcodes = map[string]Opcode{
	"+": OpAdd, "-": OpSub, "*": OpMul, "/": OpDiv, "%": OpMod,
	"<<": OpShl, ">>": OpShr, "&": OpAnd, "|": OpOr, "^": OpXor,
	"&&": OpLogicalAnd, "||": OpLogicalOr,
	"==": OpCmpEq, "!=": OpCmpNe, "<": OpCmpLt, ">": OpCmpGt, "<=": OpCmpLe, ">=": OpCmpGe,
}

// genExpr walks an expression in program order, emitting instructions
// and returning the TempVar holding its value plus any lvalue metadata
// recorded for it (spec.md 4.8's "lvalue metadata" and "Member
// access"/"Assignment unification" bullets).
func (g *Generator) genExpr(expr ast.Expr) (TypedValue, *LValueInfo, error) {
	switch e := expr.(type) {
	case *ast.NumericLiteral:
		if e.IsFloat {
			return TypedValue{Base: types.Double, SizeInBits: 64, Value: F64(e.Float)}, nil, nil
		}
		if e.IsUnsigned {
			return TypedValue{Base: types.UnsignedInt, SizeInBits: 32, Value: U64(uint64(e.Int))}, nil, nil
		}
		return TypedValue{Base: types.Int, SizeInBits: 32, Value: U64(uint64(e.Int))}, nil, nil

	case *ast.BoolLiteral:
		v := uint64(0)
		if e.Value {
			v = 1
		}
		return TypedValue{Base: types.Bool, SizeInBits: 8, Value: U64(v)}, nil, nil

	case *ast.StringLiteral:
		return TypedValue{Base: types.Char, PointerDepth: 1, Value: StringValue(e.Value)}, nil, nil

	case *ast.Identifier:
		return g.genIdentifier(e)

	case *ast.BinaryOp:
		if e.Op == "=" {
			return g.genAssignment(e)
		}
		return g.genBinaryOp(e)

	case *ast.CompoundAssign:
		return g.genCompoundAssign(e)

	case *ast.UnaryOp:
		return g.genUnaryOp(e)

	case *ast.TernaryOp:
		return g.genTernary(e)

	case *ast.MemberAccess:
		return g.genMemberAccess(e)

	case *ast.ArraySubscript:
		return g.genArraySubscript(e)

	case *ast.Call:
		return g.genCall(e)

	case *ast.InitializerList:
		return g.genInitializerListExpr(e)

	case *ast.LambdaExpression:
		return g.genLambdaExpression(e)

	default:
		return TypedValue{}, nil, fmt.Errorf("ir: expression kind not yet supported by the generator")
	}
}

func (g *Generator) genIdentifier(e *ast.Identifier) (TypedValue, *LValueInfo, error) {
	lv, ok := g.locals[e.Name]
	if !ok {
		return TypedValue{}, nil, fmt.Errorf("ir: %q is not a known local", g.Interner.View(e.Name))
	}
	result := g.emit(Instruction{
		Op:     OpVariableLoad,
		Result: g.newTemp(),
		Name:   e.Name,
	})
	tv := typedValueOf(g.Types, lv.typ, lv.ptrDepth, lv.ref, Temp(result))
	return tv, &LValueInfo{Kind: Direct, Base: lv.temp}, nil
}

func (g *Generator) genBinaryOp(e *ast.BinaryOp) (TypedValue, *LValueInfo, error) {
	lhs, _, err := g.genExpr(e.Left)
	if err != nil {
		return TypedValue{}, nil, err
	}
	rhs, _, err := g.genExpr(e.Right)
	if err != nil {
		return TypedValue{}, nil, err
	}
	op, ok := binaryOpcodes[e.Op]
	if !ok {
		return TypedValue{}, nil, fmt.Errorf("ir: unsupported binary operator %q", e.Op)
	}
	result := g.emit(Instruction{Op: op, Result: g.newTemp(), Operands: []TypedValue{lhs, rhs}})
	base := lhs.Base
	size := lhs.SizeInBits
	if isComparisonOpcode(op) || op == OpLogicalAnd || op == OpLogicalOr {
		base, size = types.Bool, 8
	}
	return TypedValue{Base: base, SizeInBits: size, TypeIndex: lhs.TypeIndex, Value: Temp(result)}, nil, nil
}

func isComparisonOpcode(op Opcode) bool {
	switch op {
	case OpCmpEq, OpCmpNe, OpCmpLt, OpCmpGt, OpCmpLe, OpCmpGe:
		return true
	default:
		return false
	}
}

func (g *Generator) genUnaryOp(e *ast.UnaryOp) (TypedValue, *LValueInfo, error) {
	operand, lv, err := g.genExpr(e.Operand)
	if err != nil {
		return TypedValue{}, nil, err
	}
	switch e.Op {
	case "&":
		if lv == nil {
			return TypedValue{}, nil, fmt.Errorf("ir: cannot take the address of a non-lvalue")
		}
		result := g.emit(Instruction{Op: OpAddressOf, Result: g.newTemp(), Operands: []TypedValue{operand}})
		v := operand
		v.PointerDepth++
		v.Value = Temp(result)
		return v, nil, nil
	case "*":
		result := g.emit(Instruction{Op: OpDereference, Result: g.newTemp(), Operands: []TypedValue{operand}})
		v := operand
		if v.PointerDepth > 0 {
			v.PointerDepth--
		}
		v.Value = Temp(result)
		return v, &LValueInfo{Kind: Indirect, Base: result}, nil
	case "-":
		result := g.emit(Instruction{Op: OpNeg, Result: g.newTemp(), Operands: []TypedValue{operand}})
		operand.Value = Temp(result)
		return operand, nil, nil
	case "!":
		result := g.emit(Instruction{Op: OpLogicalNot, Result: g.newTemp(), Operands: []TypedValue{operand}})
		return TypedValue{Base: types.Bool, SizeInBits: 8, Value: Temp(result)}, nil, nil
	case "~":
		result := g.emit(Instruction{Op: OpNot, Result: g.newTemp(), Operands: []TypedValue{operand}})
		operand.Value = Temp(result)
		return operand, nil, nil
	case "++", "--":
		return g.genIncrementDecrement(e, operand, lv)
	default:
		return TypedValue{}, nil, fmt.Errorf("ir: unsupported unary operator %q", e.Op)
	}
}

func (g *Generator) genIncrementDecrement(e *ast.UnaryOp, current TypedValue, lv *LValueInfo) (TypedValue, *LValueInfo, error) {
	if lv == nil {
		return TypedValue{}, nil, fmt.Errorf("ir: increment/decrement target is not addressable")
	}
	one := TypedValue{Base: current.Base, SizeInBits: current.SizeInBits, Value: U64(1)}
	op := OpAdd
	if e.Op == "--" {
		op = OpSub
	}
	updated := g.emit(Instruction{Op: op, Result: g.newTemp(), Operands: []TypedValue{current, one}})
	updatedValue := current
	updatedValue.Value = Temp(updated)
	g.storeLValue(lv, updatedValue)
	if e.Postfix {
		return current, nil, nil
	}
	return updatedValue, nil, nil
}

// genTernary lowers `cond ? then : else` into a branch around a
// synthetic hidden local that each arm stores its result into, since
// the flat instruction stream has no dedicated select/phi opcode
// (spec.md 3.6's opcode list).
func (g *Generator) genTernary(e *ast.TernaryOp) (TypedValue, *LValueInfo, error) {
	cond, _, err := g.genExpr(e.Cond)
	if err != nil {
		return TypedValue{}, nil, err
	}
	slot := g.newLabel("ternary_result")
	elseLabel := g.newLabel("ternary_else")
	endLabel := g.newLabel("ternary_end")
	g.emit(Instruction{Op: OpConditionalBranch, Operands: []TypedValue{cond}, Target: elseLabel})
	then, _, err := g.genExpr(e.Then)
	if err != nil {
		return TypedValue{}, nil, err
	}
	g.emit(Instruction{Op: OpVariableStore, Name: slot, Operands: []TypedValue{then}})
	g.emit(Instruction{Op: OpBranch, Target: endLabel})
	g.emit(Instruction{Op: OpLabel, Name: elseLabel})
	els, _, err := g.genExpr(e.Else)
	if err != nil {
		return TypedValue{}, nil, err
	}
	g.emit(Instruction{Op: OpVariableStore, Name: slot, Operands: []TypedValue{els}})
	g.emit(Instruction{Op: OpLabel, Name: endLabel})
	result := g.emit(Instruction{Op: OpVariableLoad, Result: g.newTemp(), Name: slot})
	return TypedValue{Base: then.Base, SizeInBits: then.SizeInBits, Value: Temp(result)}, nil, nil
}

// genMemberAccess resolves `a.b`/`a->b` to a (base, member-name)
// tuple recorded as LValueInfo::Member, spec.md 4.8's "Member access"
// bullet. Offset/bitfield resolution against the struct registry is
// the lazy member resolver's job (cxx/templates); here the member name
// is carried on the instruction and lvalue metadata for the caller
// (MemberStore, MemberAccess) to resolve at lower-level emission.
func (g *Generator) genMemberAccess(e *ast.MemberAccess) (TypedValue, *LValueInfo, error) {
	obj, objLv, err := g.genExpr(e.Object)
	if err != nil {
		return TypedValue{}, nil, err
	}
	baseTemp := obj.Value.Temp
	if objLv != nil {
		baseTemp = objLv.Base
	}
	result := g.emit(Instruction{
		Op:       OpMemberAccess,
		Result:   g.newTemp(),
		Name:     e.Member,
		Operands: []TypedValue{obj},
	})
	memberType, bitfield := g.resolveMemberType(obj.TypeIndex, e.Member)
	tv := typedValueOf(g.Types, memberType, 0, types.NotReference, Temp(result))
	return tv, &LValueInfo{Kind: Member, Base: baseTemp, MemberName: e.Member, BitfieldWidth: bitfield}, nil
}

// resolveMemberType looks up a member's declared type and bitfield
// width on the owning struct; an unknown struct or member falls back
// to the object's own type index so codegen can still proceed (the
// lazy member resolver is expected to have already validated the
// access during symbol resolution).
func (g *Generator) resolveMemberType(structType types.Index, member strings.Handle) (types.Index, uint32) {
	info := g.Types.Get(structType)
	if info == nil || (info.Base != types.Struct && info.Base != types.Union) {
		return structType, 0
	}
	s := g.Types.Struct(info.StructInfo)
	if s == nil {
		return structType, 0
	}
	for _, m := range s.Members {
		if m.Name == member {
			if m.IsBitfield {
				return m.Type, m.BitfieldWidth
			}
			return m.Type, 0
		}
	}
	return structType, 0
}

func (g *Generator) genArraySubscript(e *ast.ArraySubscript) (TypedValue, *LValueInfo, error) {
	arr, _, err := g.genExpr(e.Array)
	if err != nil {
		return TypedValue{}, nil, err
	}
	idx, _, err := g.genExpr(e.Index)
	if err != nil {
		return TypedValue{}, nil, err
	}
	result := g.emit(Instruction{Op: OpArrayAccess, Result: g.newTemp(), Operands: []TypedValue{arr, idx}})
	elem := arr
	if elem.PointerDepth > 0 {
		elem.PointerDepth--
	}
	elem.Value = Temp(result)
	return elem, &LValueInfo{Kind: ArrayElement, Base: arr.Value.Temp, ArrayIndex: &idx}, nil
}

func (g *Generator) genCall(e *ast.Call) (TypedValue, *LValueInfo, error) {
	id, ok := e.Callee.(*ast.Identifier)
	if !ok {
		return TypedValue{}, nil, fmt.Errorf("ir: only direct calls are supported by the generator")
	}
	args := make([]TypedValue, len(e.Args))
	for i, a := range e.Args {
		v, _, err := g.genExpr(a)
		if err != nil {
			return TypedValue{}, nil, err
		}
		args[i] = v
	}
	result := g.emit(Instruction{Op: OpFunctionCall, Result: g.newTemp(), Name: id.Name, Operands: args})
	return TypedValue{Value: Temp(result)}, nil, nil
}

// genAssignment implements simple `=`, dispatching on the LHS's
// lvalue metadata (spec.md 4.8's "Assignment unification" bullet). The
// target is resolved via genLValue rather than genExpr so a plain
// `x = v` does not emit a throwaway load of x's current value.
func (g *Generator) genAssignment(e *ast.BinaryOp) (TypedValue, *LValueInfo, error) {
	rhs, _, err := g.genExpr(e.Right)
	if err != nil {
		return TypedValue{}, nil, err
	}
	lv, err := g.genLValue(e.Left)
	if err != nil {
		return TypedValue{}, nil, err
	}
	g.storeLValue(lv, rhs)
	return rhs, lv, nil
}

// genLValue resolves an expression's address without loading its
// current value, used by plain assignment where only the store target
// is needed.
func (g *Generator) genLValue(expr ast.Expr) (*LValueInfo, error) {
	if id, ok := expr.(*ast.Identifier); ok {
		lv, ok := g.locals[id.Name]
		if !ok {
			return nil, fmt.Errorf("ir: %q is not a known local", g.Interner.View(id.Name))
		}
		return &LValueInfo{Kind: Direct, Base: lv.temp}, nil
	}
	_, lv, err := g.genExpr(expr)
	if err != nil {
		return nil, err
	}
	if lv == nil {
		return nil, fmt.Errorf("ir: assignment target is not addressable")
	}
	return lv, nil
}

func (g *Generator) genCompoundAssign(e *ast.CompoundAssign) (TypedValue, *LValueInfo, error) {
	current, lv, err := g.genExpr(e.Left)
	if err != nil {
		return TypedValue{}, nil, err
	}
	if lv == nil {
		return TypedValue{}, nil, fmt.Errorf("ir: compound assignment target is not addressable")
	}
	rhs, _, err := g.genExpr(e.Right)
	if err != nil {
		return TypedValue{}, nil, err
	}
	op := e.Op
	if len(op) > 1 && op[len(op)-1] == '=' {
		op = op[:len(op)-1]
	}
	opcode, ok := binaryOpcodes[op]
	if !ok {
		return TypedValue{}, nil, fmt.Errorf("ir: unsupported compound-assignment operator %q", e.Op)
	}
	result := g.emit(Instruction{Op: opcode, Result: g.newTemp(), Operands: []TypedValue{current, rhs}})
	updated := current
	updated.Value = Temp(result)
	g.storeLValue(lv, updated)
	return updated, lv, nil
}

// storeLValue emits the store instruction matching an lvalue's kind,
// spec.md 4.8's "Assignment unification" dispatch table.
func (g *Generator) storeLValue(lv *LValueInfo, v TypedValue) {
	switch lv.Kind {
	case ArrayElement:
		operands := []TypedValue{v}
		if lv.ArrayIndex != nil {
			operands = append(operands, *lv.ArrayIndex)
		}
		g.emit(Instruction{Op: OpArrayStore, Operands: operands})
	case Member:
		g.emit(Instruction{Op: OpMemberStore, Name: lv.MemberName, Operands: []TypedValue{v}})
	case Indirect:
		g.emit(Instruction{Op: OpDereferenceStore, Operands: []TypedValue{v}})
	case Global:
		g.emit(Instruction{Op: OpGlobalStore, Operands: []TypedValue{v}})
	default:
		g.emit(Instruction{Op: OpVariableStore, Operands: []TypedValue{v}})
	}
}
