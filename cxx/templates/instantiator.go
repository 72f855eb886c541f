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

package templates

import (
	"fmt"

	"github.com/cxxfe/cxxfe/cxx/ast"
	"github.com/cxxfe/cxxfe/cxx/concepts"
	"github.com/cxxfe/cxxfe/cxx/lexer"
	"github.com/cxxfe/cxxfe/cxx/strings"
	"github.com/cxxfe/cxxfe/cxx/types"
)

// Instantiator is the top-level template-instantiation operation of
// spec.md 4.5.4, tying the instantiation queue, the substitutors, and
// the type registry together.
type Instantiator struct {
	arena    *ast.Arena
	interner *strings.Interner
	reg      *types.Registry
	queue    *Queue
	members  *LazyMemberRegistry
	concepts *concepts.Registry
}

// NewInstantiator returns an Instantiator sharing the given arena,
// interner, type registry and instantiation queue with the rest of the
// compilation. concepts may be nil, in which case constraint checking
// (spec.md new 3.7) is skipped.
func NewInstantiator(arena *ast.Arena, interner *strings.Interner, reg *types.Registry, queue *Queue, members *LazyMemberRegistry, conceptReg *concepts.Registry) *Instantiator {
	return &Instantiator{arena: arena, interner: interner, reg: reg, queue: queue, members: members, concepts: conceptReg}
}

// bitfieldStorageUnitBits mirrors the parser's plain-struct constant of
// the same name (cxx/parser/struct.go): adjacent bitfield members
// narrower than this share one packed storage unit.
const bitfieldStorageUnitBits = 32

// InstantiateStruct instantiates a class template pattern with args,
// implementing spec.md 4.5.4's six steps for class templates.
func (in *Instantiator) InstantiateStruct(pattern *ast.StructDecl, args []types.TemplateArgument, tok lexer.Token) (types.Index, error) {
	key := types.InstantiationKey{Base: pattern.Name, Args: args}

	// 1. Check the instantiation queue cache.
	if idx, ok := in.queue.Result(key); ok {
		return idx, nil
	}
	if status, ok := in.queue.Status(key); ok && status == Failed {
		return types.Invalid, fmt.Errorf("previously failed instantiation of %s", in.interner.View(pattern.Name))
	}

	// 2. mark_in_progress; fail on cycle.
	in.queue.Enqueue(key, tok)
	if !in.queue.MarkInProgress(key) {
		msg := fmt.Sprintf("cyclic instantiation of %s", in.interner.View(pattern.Name))
		in.queue.MarkFailed(key, msg)
		return types.Invalid, fmt.Errorf("%s", msg)
	}

	// 3. Bind parameters to arguments.
	bindings, err := in.bindParameters(pattern.TemplateParams, args)
	if err != nil {
		in.queue.MarkFailed(key, err.Error())
		return types.Invalid, err
	}
	typeSubst := NewTypeSubstitutor(in.arena, in.interner, bindings, in.queue)
	exprSubst := NewExpressionSubstitutor(in.arena, in.interner, bindings, in.queue)

	// 4. Run the substitutors over a clone of the pattern's members.
	structInfo := types.StructInfo{IsUnion: pattern.IsUnion, IsFinal: pattern.IsFinal}
	var offset uint32
	for _, baseSpec := range pattern.Bases {
		substitutedBase := typeSubst.Substitute(baseSpec.Type)
		baseTypeSpec, _ := in.arena.Get(substitutedBase).(*ast.TypeSpecifier)
		var baseIdx types.Index
		if baseTypeSpec != nil {
			if idx, ok := in.reg.FindByName(baseTypeSpec.Name); ok {
				baseIdx = idx
			}
		}
		baseSize := in.reg.Get(baseIdx).SizeInBits / 8
		structInfo.BaseClasses = append(structInfo.BaseClasses, types.BaseClass{
			Name:       baseTypeSpecName(baseTypeSpec),
			Type:       baseIdx,
			ByteOffset: offset,
			Access:     types.Access(baseSpec.Access),
		})
		offset += baseSize
	}

	var bitUnitOffset, bitCursor uint32
	inBitfieldRun := false
	for _, memberHandle := range pattern.Members {
		switch m := in.arena.Get(memberHandle).(type) {
		case *ast.VarDecl:
			if m.IsBitfield {
				if !inBitfieldRun || bitCursor+m.BitfieldWidth > bitfieldStorageUnitBits {
					offset = alignUp(offset, bitfieldStorageUnitBits/8)
					bitUnitOffset, bitCursor, inBitfieldRun = offset, 0, true
					offset += bitfieldStorageUnitBits / 8
				}
				structInfo.Members = append(structInfo.Members, types.Member{
					Name:              m.Name,
					Type:              in.resolveFieldType(typeSubst.Substitute(m.Type)),
					SizeInBits:        m.BitfieldWidth,
					ByteOffset:        bitUnitOffset,
					IsBitfield:        true,
					BitfieldWidth:     m.BitfieldWidth,
					BitfieldBitOffset: bitCursor,
				})
				bitCursor += m.BitfieldWidth
				continue
			}
			inBitfieldRun = false

			newType := typeSubst.Substitute(m.Type)
			fieldIdx := in.resolveFieldType(newType)
			sizeInBits := in.reg.Get(fieldIdx).SizeInBits
			alignBytes := bitsToBytes(in.reg.Get(fieldIdx).Alignment)
			offset = alignUp(offset, alignBytes)
			structInfo.Members = append(structInfo.Members, types.Member{
				Name:       m.Name,
				Type:       fieldIdx,
				SizeInBits: sizeInBits,
				ByteOffset: offset,
			})
			offset += bitsToBytes(sizeInBits)

		case *ast.FunctionDecl:
			// 6. Register (but do not yet emit) each member function in
			// the lazy member registry; emission happens only when a
			// call site references it (spec.md 4.5.4 step 6).
			clone := *m
			clone.ReturnType = typeSubst.Substitute(m.ReturnType)
			clone.Params = substituteParams(typeSubst, m.Params)
			if m.Body != ast.Nil {
				clone.Body = substituteBody(in.arena, exprSubst, typeSubst, m.Body)
			}
			cloneHandle := in.arena.Add(&clone)
			structInfo.MemberFunctions = append(structInfo.MemberFunctions, types.MemberFunction{
				Name:          m.Name,
				Operator:      operatorKindOf(m),
				IsConstructor: m.IsConstructor,
				IsDestructor:  m.IsDestructor,
				IsVirtual:     m.IsVirtual,
				IsStatic:      m.IsStatic,
				FunctionDecl:  cloneHandle,
			})
		}
	}

	// 5. Assign a canonical instantiated name, create the TypeInfo.
	name := types.InstantiatedName(in.interner, key)
	nameHandle := in.interner.Intern(name)
	structIdx := in.reg.AddStruct(structInfo)
	idx := in.reg.Add(types.Info{
		Name:       nameHandle,
		Base:       types.Struct,
		SizeInBits: offset * 8,
		Alignment:  8,
		Template:   &types.TemplateInfo{BaseTemplate: pattern.Name, Arguments: args},
		StructInfo: structIdx,
	})

	for i, mf := range structInfo.MemberFunctions {
		in.members.Register(idx, mf.Name, i)
	}

	// 7. Mark Complete.
	in.queue.MarkComplete(key, idx)
	return idx, nil
}

// InstantiateFunction instantiates a function-template pattern with
// args, the function-template sibling of InstantiateStruct (spec.md
// 4.5.4's six steps, specialized for a FunctionDecl instead of a
// StructDecl: there is no member list or base-class layout to compute,
// only a return type, parameter list, and body to substitute).
func (in *Instantiator) InstantiateFunction(pattern *ast.FunctionDecl, args []types.TemplateArgument, tok lexer.Token) (ast.Handle, error) {
	key := types.InstantiationKey{Base: pattern.Name, Args: args}

	if h, ok := in.queue.ResultAST(key); ok {
		return h, nil
	}
	if status, ok := in.queue.Status(key); ok && status == Failed {
		return ast.Nil, fmt.Errorf("previously failed instantiation of %s", in.interner.View(pattern.Name))
	}

	in.queue.Enqueue(key, tok)
	if !in.queue.MarkInProgress(key) {
		msg := fmt.Sprintf("cyclic instantiation of %s", in.interner.View(pattern.Name))
		in.queue.MarkFailed(key, msg)
		return ast.Nil, fmt.Errorf("%s", msg)
	}

	bindings, err := in.bindParameters(pattern.TemplateParams, args)
	if err != nil {
		in.queue.MarkFailed(key, err.Error())
		return ast.Nil, err
	}
	typeSubst := NewTypeSubstitutor(in.arena, in.interner, bindings, in.queue)
	exprSubst := NewExpressionSubstitutor(in.arena, in.interner, bindings, in.queue)

	clone := *pattern
	clone.ReturnType = typeSubst.Substitute(pattern.ReturnType)
	clone.Params = substituteParams(typeSubst, pattern.Params)
	if pattern.Body != ast.Nil {
		clone.Body = substituteBody(in.arena, exprSubst, typeSubst, pattern.Body)
	}

	name := types.InstantiatedName(in.interner, key)
	clone.Name = in.interner.Intern(name)
	clone.TemplateParams = nil
	h := in.arena.Add(&clone)

	in.queue.MarkCompleteAST(key, h)
	return h, nil
}

// InstantiateVariable instantiates a variable-template pattern with
// args, producing a concrete VarDecl under the canonical instantiated
// name (spec.md 4.5.4, specialized for the single Type/Initializer
// pair a variable template carries instead of a member list).
func (in *Instantiator) InstantiateVariable(pattern *ast.VariableTemplateDecl, args []types.TemplateArgument, tok lexer.Token) (ast.Handle, error) {
	key := types.InstantiationKey{Base: pattern.Name, Args: args}

	if h, ok := in.queue.ResultAST(key); ok {
		return h, nil
	}
	if status, ok := in.queue.Status(key); ok && status == Failed {
		return ast.Nil, fmt.Errorf("previously failed instantiation of %s", in.interner.View(pattern.Name))
	}

	in.queue.Enqueue(key, tok)
	if !in.queue.MarkInProgress(key) {
		msg := fmt.Sprintf("cyclic instantiation of %s", in.interner.View(pattern.Name))
		in.queue.MarkFailed(key, msg)
		return ast.Nil, fmt.Errorf("%s", msg)
	}

	bindings, err := in.bindParameters(pattern.TemplateParams, args)
	if err != nil {
		in.queue.MarkFailed(key, err.Error())
		return ast.Nil, err
	}
	typeSubst := NewTypeSubstitutor(in.arena, in.interner, bindings, in.queue)
	exprSubst := NewExpressionSubstitutor(in.arena, in.interner, bindings, in.queue)

	name := types.InstantiatedName(in.interner, key)
	out := &ast.VarDecl{
		Name: in.interner.Intern(name),
		Type: typeSubst.Substitute(pattern.Type),
	}
	out.Token = tok
	if pattern.Initializer != nil {
		out.Initializer = exprSubst.Substitute(pattern.Initializer)
	}
	h := in.arena.Add(out)

	in.queue.MarkCompleteAST(key, h)
	return h, nil
}

func baseTypeSpecName(spec *ast.TypeSpecifier) strings.Handle {
	if spec == nil {
		return strings.Invalid
	}
	return spec.Name
}

// resolveFieldType looks up (or, for a still-unregistered substituted
// struct type, falls back to) the TypeIndex named by a substituted
// TypeSpecifier.
func (in *Instantiator) resolveFieldType(h ast.Handle) types.Index {
	spec, ok := in.arena.Get(h).(*ast.TypeSpecifier)
	if !ok {
		return types.Invalid
	}
	if idx, ok := in.reg.FindByName(spec.Name); ok {
		return idx
	}
	return types.Invalid
}

func bitsToBytes(bits uint32) uint32 {
	return (bits + 7) / 8
}

func alignUp(offset, align uint32) uint32 {
	if align == 0 {
		return offset
	}
	if r := offset % align; r != 0 {
		return offset + (align - r)
	}
	return offset
}

func operatorKindOf(f *ast.FunctionDecl) types.OperatorKind {
	switch f.OperatorName {
	case "=":
		return types.OperatorAssign
	case "<=>":
		return types.OperatorSpaceship
	case "==":
		return types.OperatorEq
	case "!=":
		return types.OperatorNe
	case "<":
		return types.OperatorLt
	case ">":
		return types.OperatorGt
	case "<=":
		return types.OperatorLe
	case ">=":
		return types.OperatorGe
	case "":
		return types.NotOperator
	default:
		return types.OperatorOther
	}
}

// bindParameters zips a template parameter list with a concrete
// argument list into a Bindings, expanding the trailing pack parameter
// (if any) over the remaining arguments.
func (in *Instantiator) bindParameters(params []ast.TemplateParam, args []types.TemplateArgument) (*Bindings, error) {
	b := NewBindings()
	for i, p := range params {
		if err := in.checkConstraint(p); err != nil {
			return nil, err
		}
		if p.IsPack {
			var packArgs []Argument
			for _, a := range args[i:] {
				packArgs = append(packArgs, in.toArgument(a))
			}
			b.BindPack(p.Name, packArgs)
			return b, nil
		}
		if i >= len(args) {
			if p.Default == ast.Nil {
				return nil, fmt.Errorf("missing template argument for parameter %s", in.interner.View(p.Name))
			}
			continue
		}
		b.Bind(p.Name, in.toArgument(args[i]))
	}
	return b, nil
}

// checkConstraint implements spec.md new 3.7's gate: a constrained
// type parameter (`template<Concept T>` or `template<class T>
// requires Concept<T>`) must name a concept registered in the process-
// wide concepts.Registry before substitution proceeds.
func (in *Instantiator) checkConstraint(p ast.TemplateParam) error {
	if in.concepts == nil || p.Constraint == strings.Invalid {
		return nil
	}
	if !in.concepts.CheckConstraint(p.Constraint) {
		return fmt.Errorf("constraint %s unsatisfied for template parameter %s", in.interner.View(p.Constraint), in.interner.View(p.Name))
	}
	return nil
}

func (in *Instantiator) toArgument(a types.TemplateArgument) Argument {
	if a.Kind == types.ValueArgument {
		return Argument{Kind: IntegerArg, Integer: a.Value}
	}
	info := in.reg.Get(a.Type)
	spec := &ast.TypeSpecifier{
		Name:         info.Name,
		PointerDepth: a.PointerDepth,
		Reference:    ast.ReferenceKind(a.Reference),
		ArrayExtent:  a.ArrayExtent,
	}
	return Argument{Kind: TypeArg, Type: in.arena.Add(spec)}
}

func substituteParams(typeSubst *TypeSubstitutor, params []ast.Parameter) []ast.Parameter {
	out := make([]ast.Parameter, len(params))
	for i, p := range params {
		out[i] = p
		out[i].Type = typeSubst.Substitute(p.Type)
	}
	return out
}

// substituteBody clones a function body, substituting every expression
// it reaches via the expression substitutor. Statement-level cloning is
// shallow (the block's own node is copied) since only expression and
// type positions can reference template parameters.
func substituteBody(arena *ast.Arena, exprSubst *ExpressionSubstitutor, typeSubst *TypeSubstitutor, body ast.Handle) ast.Handle {
	block, ok := arena.Get(body).(*ast.Block)
	if !ok {
		return body
	}
	out := *block
	out.Stmts = make([]ast.Handle, len(block.Stmts))
	for i, s := range block.Stmts {
		out.Stmts[i] = substituteStatement(arena, exprSubst, typeSubst, s)
	}
	return arena.Add(&out)
}

// substituteStatement rewrites one statement-list entry. Bodies only
// need expression and type positions substituted; an entry that is
// itself an Expr (an expression-statement, stored bare per spec.md
// 3.3) is run through the expression substitutor directly.
func substituteStatement(arena *ast.Arena, exprSubst *ExpressionSubstitutor, typeSubst *TypeSubstitutor, h ast.Handle) ast.Handle {
	switch s := arena.Get(h).(type) {
	case *ast.Return:
		out := *s
		if s.Value != nil {
			out.Value = exprSubst.Substitute(s.Value)
		}
		return arena.Add(&out)
	case *ast.VarDecl:
		out := *s
		out.Type = typeSubst.Substitute(s.Type)
		if s.Initializer != nil {
			out.Initializer = exprSubst.Substitute(s.Initializer)
		}
		return arena.Add(&out)
	case *ast.Block:
		return substituteBody(arena, exprSubst, typeSubst, h)
	case ast.Expr:
		return arena.Add(exprSubst.Substitute(s))
	default:
		return h
	}
}
