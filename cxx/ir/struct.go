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

// thisTemp is the TempVar reserved for the implicit `this` parameter of
// every non-static member function (spec.md 4.8's var_counter rule).
const thisTemp = TempVar(1)

// vptrName is the synthetic member name the vtable pointer is stored
// under at offset 0 of a polymorphic object.
const vptrName = "__vptr"

// GenStructDecl emits every member function of s, in declaration
// order, mirroring CodeGen_Visitors.cpp's visitStructDeclarationNode:
// struct declarations themselves produce no IR, only their members do.
func (g *Generator) GenStructDecl(s *ast.StructDecl) error {
	savedStruct := g.currentStructName
	g.currentStructName = s.Name
	defer func() { g.currentStructName = savedStruct }()

	idx, ok := g.Types.FindByName(s.Name)
	if !ok {
		return fmt.Errorf("ir: struct %q not registered", g.Interner.View(s.Name))
	}

	for _, h := range s.Members {
		switch m := g.Arena.Get(h).(type) {
		case *ast.FunctionDecl:
			if err := g.genMemberFunction(m, idx); err != nil {
				return err
			}
		case *ast.VarDecl:
			if m.IsStatic {
				if err := g.genStaticMember(m, s.Name); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (g *Generator) genMemberFunction(fn *ast.FunctionDecl, structIdx types.Index) error {
	switch {
	case fn.IsConstructor:
		return g.genConstructor(fn, structIdx)
	case fn.IsDestructor:
		return g.genDestructor(fn, structIdx)
	case fn.OperatorName == "=" && fn.Body == ast.Nil:
		return g.genImplicitOperatorAssign(fn, structIdx)
	case fn.OperatorName == "<=>" && fn.Body == ast.Nil:
		return g.genDefaultedSpaceship(fn, structIdx)
	case isSynthesizableComparison(fn.OperatorName) && fn.Body == ast.Nil:
		return g.genSynthesizedComparison(fn, structIdx)
	default:
		return g.GenFunctionDecl(fn)
	}
}

func isSynthesizableComparison(op string) bool {
	switch op {
	case "==", "!=", "<", ">", "<=", ">=":
		return true
	}
	return false
}

func structInfoOf(reg *types.Registry, idx types.Index) *types.StructInfo {
	info := reg.Get(idx)
	if info == nil {
		return nil
	}
	return reg.Struct(info.StructInfo)
}

// hasAnyConstructor reports whether idx's struct declares at least one
// constructor, gating whether an implicit base-class construction call
// is emitted at all (avoids linking against a nonexistent symbol).
func hasAnyConstructor(reg *types.Registry, idx types.Index) bool {
	s := structInfoOf(reg, idx)
	if s == nil {
		return false
	}
	for _, f := range s.MemberFunctions {
		if f.IsConstructor {
			return true
		}
	}
	return false
}

// isCopyOrMoveParam reports whether fn's sole parameter is a reference
// to its own enclosing struct type, the shape the parser gives an
// implicit copy or move constructor.
func isCopyOrMoveParam(g *Generator, fn *ast.FunctionDecl, structIdx types.Index) (isMove bool, ok bool) {
	if len(fn.Params) != 1 {
		return false, false
	}
	resolved, err := g.resolveTypeSpecifier(fn.Params[0].Type)
	if err != nil || resolved.Reference == types.NotReference || resolved.Index != structIdx {
		return false, false
	}
	return resolved.Reference == types.RValueReference, true
}

// genConstructor implements spec.md 4.8's "Constructors" rule: base
// constructors at their subobject offsets, then the vtable-pointer
// store, then member initialization, then the user's own body (if
// any). Implicit copy/move constructors additionally copy/move each
// base and memberwise-copy/move the members instead of default-init.
func (g *Generator) genConstructor(fn *ast.FunctionDecl, structIdx types.Index) error {
	s := structInfoOf(g.Types, structIdx)
	if s == nil {
		return fmt.Errorf("ir: constructor for unregistered struct")
	}

	g.beginMemberFunction(fn)
	g.emit(Instruction{Op: OpFunctionDecl, Name: fn.Name, Function: g.functionInfoFor(fn, structIdx, false)})

	isMove, isCopyOrMove := isCopyOrMoveParam(g, fn, structIdx)

	for _, base := range s.BaseClasses {
		if !hasAnyConstructor(g.Types, base.Type) {
			continue
		}
		args := []TypedValue(nil)
		if isCopyOrMove {
			args = []TypedValue{otherOperand(g, base.Type, isMove)}
		}
		g.emit(Instruction{
			Op:       OpConstructorCall,
			Name:     base.Name,
			Operands: append([]TypedValue{thisOperand(structIdx)}, args...),
		})
	}

	if s.HasVTable {
		g.emitVptrStore(s)
	}

	if isCopyOrMove {
		g.emitMembersCopy(s.Members)
	} else {
		g.emitMembersDefaultInit(s.Members)
	}

	if fn.Body != ast.Nil {
		return g.genBlock(fn.Body)
	}
	return nil
}

// genDestructor implements spec.md 4.8's "Destructors" rule and P10:
// run the body, then call base destructors in reverse declaration
// order.
func (g *Generator) genDestructor(fn *ast.FunctionDecl, structIdx types.Index) error {
	s := structInfoOf(g.Types, structIdx)
	if s == nil {
		return fmt.Errorf("ir: destructor for unregistered struct")
	}

	g.beginMemberFunction(fn)
	g.emit(Instruction{Op: OpFunctionDecl, Name: fn.Name, Function: g.functionInfoFor(fn, structIdx, false)})

	if fn.Body != ast.Nil {
		if err := g.genBlock(fn.Body); err != nil {
			return err
		}
	}

	for i := len(s.BaseClasses) - 1; i >= 0; i-- {
		base := s.BaseClasses[i]
		g.emit(Instruction{
			Op:       OpDestructorCall,
			Name:     base.Name,
			Operands: []TypedValue{thisOperand(structIdx)},
		})
	}
	return nil
}

// genImplicitOperatorAssign implements spec.md 4.8's "Implicit
// operator=": memberwise load from the source parameter, store into
// `*this`, return `*this` (a dereference of the `this` pointer).
func (g *Generator) genImplicitOperatorAssign(fn *ast.FunctionDecl, structIdx types.Index) error {
	s := structInfoOf(g.Types, structIdx)
	if s == nil {
		return fmt.Errorf("ir: operator= for unregistered struct")
	}

	g.beginMemberFunction(fn)
	g.emit(Instruction{Op: OpFunctionDecl, Name: fn.Name, Function: g.functionInfoFor(fn, structIdx, true)})

	g.emitMembersCopy(s.Members)

	this := thisOperand(structIdx)
	this.PointerDepth = 0
	g.emit(Instruction{Op: OpReturn, Operands: []TypedValue{this}})
	return nil
}

// genDefaultedSpaceship implements spec.md 4.8's defaulted
// `operator<=>`: memberwise three-way compare in declaration order,
// branching to return -1 or +1 on the first unequal member, with a
// final fallthrough returning 0.
func (g *Generator) genDefaultedSpaceship(fn *ast.FunctionDecl, structIdx types.Index) error {
	s := structInfoOf(g.Types, structIdx)
	if s == nil {
		return fmt.Errorf("ir: operator<=> for unregistered struct")
	}

	g.beginMemberFunction(fn)
	g.emit(Instruction{Op: OpFunctionDecl, Name: fn.Name, Function: g.functionInfoFor(fn, structIdx, true)})

	// Conditional branches follow the same branch-if-false convention
	// as genIf/genWhile: the Target is where control goes when the
	// tested condition is false, falling through when it's true.
	for _, m := range s.Members {
		lhs := g.emitMemberLoad("this", m)
		rhs := g.emitMemberLoad("other", m)

		eqTemp := g.newTemp()
		g.emit(Instruction{Op: OpCmpEq, Result: eqTemp, Operands: []TypedValue{lhs, rhs}})
		eqCond := TypedValue{Base: types.Bool, SizeInBits: 8, Value: Temp(eqTemp)}

		compareLabel := g.newLabel("spaceship_compare")
		memberEqualLabel := g.newLabel("spaceship_equal")
		g.emit(Instruction{Op: OpConditionalBranch, Operands: []TypedValue{eqCond}, Target: compareLabel})
		g.emit(Instruction{Op: OpBranch, Target: memberEqualLabel})
		g.emit(Instruction{Op: OpLabel, Name: compareLabel})

		ltTemp := g.newTemp()
		g.emit(Instruction{Op: OpCmpLt, Result: ltTemp, Operands: []TypedValue{lhs, rhs}})
		ltCond := TypedValue{Base: types.Bool, SizeInBits: 8, Value: Temp(ltTemp)}
		greaterLabel := g.newLabel("spaceship_greater")
		g.emit(Instruction{Op: OpConditionalBranch, Operands: []TypedValue{ltCond}, Target: greaterLabel})
		g.emit(Instruction{Op: OpReturn, Operands: []TypedValue{int32Const(-1)}})
		g.emit(Instruction{Op: OpLabel, Name: greaterLabel})
		g.emit(Instruction{Op: OpReturn, Operands: []TypedValue{int32Const(1)}})

		g.emit(Instruction{Op: OpLabel, Name: memberEqualLabel})
	}
	g.emit(Instruction{Op: OpReturn, Operands: []TypedValue{int32Const(0)}})
	return nil
}

// genSynthesizedComparison implements spec.md 4.8's synthesized
// `operator==`/`!=`/`<`/`>`/`<=`/`>=`: call the class's defaulted
// `operator<=>` and compare the result against 0 with the matching
// opcode.
func (g *Generator) genSynthesizedComparison(fn *ast.FunctionDecl, structIdx types.Index) error {
	op, ok := comparisonOpcodes[fn.OperatorName]
	if !ok {
		return fmt.Errorf("ir: unsupported synthesized comparison %q", fn.OperatorName)
	}

	g.beginMemberFunction(fn)
	g.emit(Instruction{Op: OpFunctionDecl, Name: fn.Name, Function: g.functionInfoFor(fn, structIdx, true)})

	spaceship := g.Interner.Intern("operator<=>")
	cmp := g.emit(Instruction{
		Op:       OpFunctionCall,
		Result:   g.newTemp(),
		Name:     spaceship,
		Operands: []TypedValue{thisOperand(structIdx), otherOperand(g, structIdx, false)},
	})
	result := TypedValue{Base: types.Int, SizeInBits: 32, Value: Temp(cmp)}
	cmpTemp := g.emit(Instruction{Op: op, Result: g.newTemp(), Operands: []TypedValue{result, int32Const(0)}})
	g.emit(Instruction{Op: OpReturn, Operands: []TypedValue{{Base: types.Bool, SizeInBits: 8, Value: Temp(cmpTemp)}}})
	return nil
}

var comparisonOpcodes = map[string]Opcode{
	"==": OpCmpEq,
	"!=": OpCmpNe,
	"<":  OpCmpLt,
	">":  OpCmpGt,
	"<=": OpCmpLe,
	">=": OpCmpGe,
}

// genStaticMember implements spec.md 4.8's "Static members" rule: a
// static data member is emitted once, as a GlobalVariableDecl under
// its fully-qualified name. Only a numeric-literal initializer is
// lowered into the declaration; any other initializer, including a
// constant expression, is not evaluated (neither here nor by a caller)
// and the member is zero-initialized.
func (g *Generator) genStaticMember(v *ast.VarDecl, structName strings.Handle) error {
	qualified := g.Interner.Intern(fmt.Sprintf("%s::%s", g.Interner.View(structName), g.Interner.View(v.Name)))
	resolved, err := g.resolveTypeSpecifier(v.Type)
	if err != nil {
		return err
	}
	init := typedValueOf(g.Types, resolved.Index, resolved.PointerDepth, resolved.Reference, U64(0))
	if lit, ok := v.Initializer.(*ast.NumericLiteral); ok {
		init.Value = U64(uint64(lit.Int))
	}
	g.emit(Instruction{Op: OpGlobalVariableDecl, Name: qualified, Operands: []TypedValue{init}})
	return nil
}

// beginMemberFunction resets per-function generator state and
// reserves TempVar(1) for `this`, spec.md 4.8's var_counter rule for
// member functions (constructors and destructors always reserve it,
// even though they have no user-visible return value).
func (g *Generator) beginMemberFunction(fn *ast.FunctionDecl) {
	g.varCounter = 1
	g.locals = map[strings.Handle]localVar{}
	g.scopeDestructorStack = nil
	g.currentFunctionName = fn.Name
}

func (g *Generator) functionInfoFor(fn *ast.FunctionDecl, structIdx types.Index, hasReturn bool) *FunctionInfo {
	info := &FunctionInfo{
		Name:              fn.Name,
		MangledName:       g.mangledNameFor(fn),
		IsInline:          true,
		IsExternalLinkage: true,
		VarCounterStart:   1,
	}
	if hasReturn {
		info.ReturnType = thisOperand(structIdx)
		info.ReturnType.PointerDepth = 0
	}
	params := make([]TypedValue, 0, len(fn.Params))
	for _, p := range fn.Params {
		resolved, err := g.resolveTypeSpecifier(p.Type)
		if err != nil {
			continue
		}
		ptrDepth := resolved.PointerDepth
		if resolved.Reference == types.LValueReference {
			ptrDepth++
		}
		temp := g.newTemp()
		g.locals[p.Name] = localVar{temp: temp, typ: resolved.Index, ptrDepth: ptrDepth, ref: resolved.Reference}
		params = append(params, typedValueOf(g.Types, resolved.Index, ptrDepth, resolved.Reference, Temp(temp)))
	}
	info.Params = params
	return info
}

func thisOperand(structIdx types.Index) TypedValue {
	return TypedValue{Base: types.Struct, TypeIndex: structIdx, PointerDepth: 1, Value: Temp(thisTemp)}
}

// otherOperand builds the TypedValue passed as the copy/move source
// parameter to a base constructor or a synthesized comparison,
// matching the mangled base type so the right overload links.
func otherOperand(g *Generator, baseType types.Index, isMove bool) TypedValue {
	ref := types.LValueReference
	if isMove {
		ref = types.RValueReference
	}
	return TypedValue{Base: types.Struct, TypeIndex: baseType, Reference: ref, PointerDepth: 1, Value: Temp(otherTemp(g))}
}

// otherTemp resolves the TempVar bound to the implicit/compiler
// generated `other` parameter of a copy/move constructor or
// comparison operator.
func otherTemp(g *Generator) TempVar {
	if lv, ok := g.locals[g.Interner.Intern("other")]; ok {
		return lv.temp
	}
	return TempVar(2)
}

func (g *Generator) emitVptrStore(s *types.StructInfo) {
	g.emit(Instruction{
		Op:       OpMemberStore,
		Name:     g.Interner.Intern(vptrName),
		Operands: []TypedValue{{Base: types.Void, PointerDepth: 1, Value: StringValue(s.VTableSymbol)}},
	})
}

// bitfieldStorageUnitBits mirrors the parser/template layout constant of
// the same name: bitfields sharing a ByteOffset were packed into one
// storage unit of this width and are folded back into one store here.
const bitfieldStorageUnitBits = 32

// emitMembersDefaultInit default-initializes every member of s in
// declaration order, folding a run of bitfields that share a storage
// unit (equal ByteOffset) into a single combined store instead of one
// OpMemberStore per bitfield (spec.md 4.8).
func (g *Generator) emitMembersDefaultInit(members []types.Member) {
	for i := 0; i < len(members); {
		m := members[i]
		if !m.IsBitfield {
			g.emitMemberDefaultInit(m)
			i++
			continue
		}
		j := i + 1
		for j < len(members) && members[j].IsBitfield && members[j].ByteOffset == m.ByteOffset {
			j++
		}
		g.emitCombinedBitfieldDefaultInit(m)
		i = j
	}
}

// emitMembersCopy is emitMembersDefaultInit's memberwise-copy
// counterpart, used by both the implicit copy/move constructor and
// implicit operator=.
func (g *Generator) emitMembersCopy(members []types.Member) {
	for i := 0; i < len(members); {
		m := members[i]
		if !m.IsBitfield {
			g.emitMemberwiseCopy(m)
			i++
			continue
		}
		j := i + 1
		for j < len(members) && members[j].IsBitfield && members[j].ByteOffset == m.ByteOffset {
			j++
		}
		g.emitCombinedBitfieldCopy(m)
		i = j
	}
}

// emitCombinedBitfieldDefaultInit zero-fills an entire bitfield storage
// unit in one store, named after the first bitfield declared in it.
func (g *Generator) emitCombinedBitfieldDefaultInit(first types.Member) {
	zero := TypedValue{Base: types.Int, SizeInBits: bitfieldStorageUnitBits, Value: U64(0)}
	g.emit(Instruction{
		Op:       OpMemberStore,
		Name:     first.Name,
		Operands: []TypedValue{zero},
		LValue:   &LValueInfo{Kind: Member, Base: thisTemp, Offset: first.ByteOffset, MemberName: first.Name, BitfieldWidth: bitfieldStorageUnitBits},
	})
}

// emitCombinedBitfieldCopy loads an entire bitfield storage unit from
// `other` and stores it into `this` as one unit, rather than
// reconstructing and re-storing each bitfield at its sub-offset: a
// whole-unit copy reproduces every packed bitfield's value exactly,
// since none of them is reinterpreted along the way.
func (g *Generator) emitCombinedBitfieldCopy(first types.Member) {
	unit := types.Member{Name: first.Name, Type: first.Type, SizeInBits: bitfieldStorageUnitBits, ByteOffset: first.ByteOffset}
	v := g.emitMemberLoad("other", unit)
	g.emit(Instruction{
		Op:       OpMemberStore,
		Name:     first.Name,
		Operands: []TypedValue{v},
		LValue:   &LValueInfo{Kind: Member, Base: thisTemp, Offset: first.ByteOffset, MemberName: first.Name, BitfieldWidth: bitfieldStorageUnitBits},
	})
}

// emitMemberDefaultInit zero-initializes a member, or calls its
// constructor at the member's offset when the member's own type has
// one, per spec.md 4.8's "struct members with constructors are
// initialized by calling their constructor ... rather than by
// zero-init".
func (g *Generator) emitMemberDefaultInit(m types.Member) {
	if hasAnyConstructor(g.Types, m.Type) {
		g.emit(Instruction{
			Op:       OpConstructorCall,
			Operands: []TypedValue{thisOperand(m.Type)},
			LValue:   &LValueInfo{Kind: Member, Base: thisTemp, Offset: m.ByteOffset, MemberName: m.Name, BitfieldWidth: m.BitfieldWidth},
		})
		return
	}
	info := g.Types.Get(m.Type)
	zero := TypedValue{Base: info.Base, SizeInBits: m.SizeInBits, TypeIndex: m.Type, Value: U64(0)}
	g.emit(Instruction{
		Op:       OpMemberStore,
		Name:     m.Name,
		Operands: []TypedValue{zero},
		LValue:   &LValueInfo{Kind: Member, Base: thisTemp, Offset: m.ByteOffset, MemberName: m.Name, BitfieldWidth: m.BitfieldWidth},
	})
}

// emitMemberwiseCopy loads member m from `other` and stores it into
// `this`, the shared core of implicit copy/move constructors and
// implicit operator=.
func (g *Generator) emitMemberwiseCopy(m types.Member) {
	v := g.emitMemberLoad("other", m)
	g.emit(Instruction{
		Op:       OpMemberStore,
		Name:     m.Name,
		Operands: []TypedValue{v},
		LValue:   &LValueInfo{Kind: Member, Base: thisTemp, Offset: m.ByteOffset, MemberName: m.Name, BitfieldWidth: m.BitfieldWidth},
	})
}

func (g *Generator) emitMemberLoad(object string, m types.Member) TypedValue {
	base := thisTemp
	if object == "other" {
		base = otherTemp(g)
	}
	info := g.Types.Get(m.Type)
	temp := g.emit(Instruction{
		Op:   OpMemberAccess,
		Result: g.newTemp(),
		Name: m.Name,
		LValue: &LValueInfo{Kind: Member, Base: base, Offset: m.ByteOffset, MemberName: m.Name, BitfieldWidth: m.BitfieldWidth},
	})
	return TypedValue{Base: info.Base, SizeInBits: m.SizeInBits, TypeIndex: m.Type, Value: Temp(temp)}
}

// genAggregateInit lowers `T v{...}`'s initializer-list entries into
// one OpMemberStore per entry against the already-declared, zero-valued
// local named by base (spec.md 4.8's "Initializer lists" bullet):
// designated entries resolve the named member, recursing into base
// classes so the combined offset includes the base subobject's own
// offset; positional entries walk the flattened base-then-own member
// list in declaration order. Members the list doesn't mention keep the
// zero value the preceding OpVariableStore already gave them.
func (g *Generator) genAggregateInit(name strings.Handle, structIdx types.Index, il *ast.InitializerList) error {
	flattened, ok := flattenAggregateMembers(g.Types, structIdx, 0)
	if !ok {
		return fmt.Errorf("ir: aggregate initializer on a non-struct type")
	}

	positional := 0
	for _, entry := range il.Entries {
		var m types.Member
		if entry.Designator != strings.Invalid {
			found, ok := findAggregateMember(g.Types, structIdx, entry.Designator, 0)
			if !ok {
				return fmt.Errorf("ir: %q is not a member of this aggregate", g.Interner.View(entry.Designator))
			}
			m = found
		} else {
			if positional >= len(flattened) {
				return fmt.Errorf("ir: too many initializer-list entries for this aggregate")
			}
			m = flattened[positional]
			positional++
		}
		v, _, err := g.genExpr(entry.Value)
		if err != nil {
			return err
		}
		g.emit(Instruction{
			Op:       OpMemberStore,
			Name:     m.Name,
			Operands: []TypedValue{v},
			LValue:   &LValueInfo{Kind: Member, Base: thisTempFor(g, name), Offset: m.ByteOffset, MemberName: m.Name, BitfieldWidth: m.BitfieldWidth},
		})
	}
	return nil
}

// thisTempFor returns the TempVar a local variable named name was
// declared under, the aggregate-init store's base rather than thisTemp
// (which names the implicit `this` of a member function, not relevant
// here: aggregate-initialized locals store into themselves).
func thisTempFor(g *Generator, name strings.Handle) TempVar {
	if lv, ok := g.locals[name]; ok {
		return lv.temp
	}
	return TempVar(0)
}

// flattenAggregateMembers returns structIdx's members in aggregate
// positional-initialization order: each base class's own flattened
// members (recursively, offset by the base's ByteOffset) followed by
// structIdx's own declared members, offset by baseOffset throughout.
func flattenAggregateMembers(reg *types.Registry, structIdx types.Index, baseOffset uint32) ([]types.Member, bool) {
	info := reg.Get(structIdx)
	if info == nil || (info.Base != types.Struct && info.Base != types.Union) {
		return nil, false
	}
	s := reg.Struct(info.StructInfo)
	if s == nil {
		return nil, false
	}
	var out []types.Member
	for _, b := range s.BaseClasses {
		baseMembers, ok := flattenAggregateMembers(reg, b.Type, baseOffset+b.ByteOffset)
		if ok {
			out = append(out, baseMembers...)
		}
	}
	for _, m := range s.Members {
		shifted := m
		shifted.ByteOffset += baseOffset
		out = append(out, shifted)
	}
	return out, true
}

// findAggregateMember looks up name as a direct member of structIdx,
// recursing into base classes (combining offsets) when not found
// directly, per spec.md 4.8's "recurse on nested struct members
// (combining offsets)".
func findAggregateMember(reg *types.Registry, structIdx types.Index, name strings.Handle, baseOffset uint32) (types.Member, bool) {
	info := reg.Get(structIdx)
	if info == nil || (info.Base != types.Struct && info.Base != types.Union) {
		return types.Member{}, false
	}
	s := reg.Struct(info.StructInfo)
	if s == nil {
		return types.Member{}, false
	}
	for _, m := range s.Members {
		if m.Name == name {
			shifted := m
			shifted.ByteOffset += baseOffset
			return shifted, true
		}
	}
	for _, b := range s.BaseClasses {
		if m, ok := findAggregateMember(reg, b.Type, name, baseOffset+b.ByteOffset); ok {
			return m, true
		}
	}
	return types.Member{}, false
}

func int32Const(n int64) TypedValue {
	return TypedValue{Base: types.Int, SizeInBits: 32, Value: U64(uint64(n))}
}
