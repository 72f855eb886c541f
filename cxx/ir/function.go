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
	"github.com/cxxfe/cxxfe/cxx/ast"
	"github.com/cxxfe/cxxfe/cxx/mangling"
	"github.com/cxxfe/cxxfe/cxx/strings"
	"github.com/cxxfe/cxxfe/cxx/types"
)

// hiddenReturnThresholdBits is the ABI small-return threshold above
// which a struct return gets a hidden pointer parameter instead of
// being returned in registers (spec.md 4.8's "Hidden return
// parameter" bullet; 128 bits matches the two-register Itanium ABI
// classification original_source's codegen targets).
const hiddenReturnThresholdBits = 128

// GenFunctionDecl emits one FunctionDecl instruction plus its body,
// spec.md 4.8's FunctionDecl emission rule. The generator's
// var_counter, locals, and instruction stream are reset per function.
func (g *Generator) GenFunctionDecl(fn *ast.FunctionDecl) error {
	g.varCounter = 0
	g.locals = map[strings.Handle]localVar{}
	g.scopeDestructorStack = nil
	g.currentFunctionName = fn.Name

	info := &FunctionInfo{
		Name:              fn.Name,
		MangledName:       g.mangledNameFor(fn),
		IsVariadic:        fn.IsVariadic,
		IsInline:          fn.IsInline || g.currentStructName != 0,
		IsExternalLinkage: !fn.IsStatic,
	}

	if fn.ReturnType != ast.Nil {
		ret, err := g.resolveTypeSpecifier(fn.ReturnType)
		if err != nil {
			return err
		}
		info.ReturnType = typedValueOf(g.Types, ret.Index, ret.PointerDepth, ret.Reference, Value{})
		if g.needsHiddenReturnParam(ret) {
			info.HasHiddenReturnParam = true
			info.HiddenReturnType = ret.Index
		}
	}

	if g.currentStructName != 0 {
		g.varCounter = 1 // reserve TempVar(1) for `this`
		info.VarCounterStart = 1
	}

	params := make([]TypedValue, 0, len(fn.Params))
	for _, p := range fn.Params {
		resolved, err := g.resolveTypeSpecifier(p.Type)
		if err != nil {
			return err
		}
		ptrDepth := resolved.PointerDepth
		// Lvalue references lift pointer depth by one to model
		// pass-by-pointer; rvalue references keep the depth but are
		// still flagged by Reference (spec.md 4.8's FunctionDecl rule).
		if resolved.Reference == types.LValueReference {
			ptrDepth++
		}
		temp := g.newTemp()
		g.locals[p.Name] = localVar{temp: temp, typ: resolved.Index, ptrDepth: ptrDepth, ref: resolved.Reference}
		params = append(params, typedValueOf(g.Types, resolved.Index, ptrDepth, resolved.Reference, Temp(temp)))
	}
	info.Params = params

	g.emit(Instruction{Op: OpFunctionDecl, Name: fn.Name, Function: info})

	if fn.Body == ast.Nil {
		return nil
	}
	if err := g.genBlock(fn.Body); err != nil {
		return err
	}
	return g.drainLambdaWorklist()
}

// needsHiddenReturnParam implements spec.md 4.8's RVO/NRVO bullet: a
// non-trivial, non-pointer, non-reference struct return larger than
// the ABI small-return threshold gets a hidden pointer parameter.
func (g *Generator) needsHiddenReturnParam(ret resolvedType) bool {
	if ret.PointerDepth > 0 || ret.Reference != types.NotReference {
		return false
	}
	info := g.Types.Get(ret.Index)
	if info == nil || (info.Base != types.Struct && info.Base != types.Union) {
		return false
	}
	if isTriviallyDestructible(g.Types, ret.Index) && info.SizeInBits <= hiddenReturnThresholdBits {
		return false
	}
	return true
}

// mangledNameFor builds the cxx/mangling entity tree for fn and
// mangles it with g.Mangler (compilectx.Context.ManglingStyle's choice
// of Itanium or MSVC, wired in by the driver), satisfying spec.md
// 4.8's "pre-mangled name" requirement.
func (g *Generator) mangledNameFor(fn *ast.FunctionDecl) strings.Handle {
	entity := &mangling.Function{
		Name:   g.Interner.View(fn.Name),
		Const:  fn.IsConst,
		Static: fn.IsStatic,
	}
	if g.currentStructName != 0 {
		entity.Parent = &mangling.Class{Name: g.Interner.View(g.currentStructName)}
	}
	for _, p := range fn.Params {
		resolved, err := g.resolveTypeSpecifier(p.Type)
		if err != nil {
			continue
		}
		entity.Parameters = append(entity.Parameters, g.manglingTypeFor(resolved))
	}
	return g.Interner.Intern(g.Mangler(entity))
}

func (g *Generator) manglingTypeFor(r resolvedType) mangling.Type {
	var t mangling.Type
	info := g.Types.Get(r.Index)
	switch {
	case info != nil && (info.Base == types.Struct || info.Base == types.Union):
		t = &mangling.Class{Name: g.Interner.View(info.Name)}
	default:
		t = builtinFor(info)
	}
	for i := 0; i < r.PointerDepth; i++ {
		t = mangling.Pointer{To: t}
	}
	return t
}

func builtinFor(info *types.Info) mangling.Builtin {
	if info == nil {
		return mangling.Void
	}
	switch info.Base {
	case types.Void:
		return mangling.Void
	case types.Bool:
		return mangling.Bool
	case types.Char:
		return mangling.Char
	case types.Short:
		return mangling.Short
	case types.Int:
		return mangling.Int
	case types.Long, types.LongLong:
		return mangling.S64
	case types.UnsignedChar:
		return mangling.UChar
	case types.UnsignedShort:
		return mangling.UShort
	case types.UnsignedInt:
		return mangling.UInt
	case types.UnsignedLong, types.UnsignedLongLong:
		return mangling.U64
	case types.Float:
		return mangling.Float
	case types.Double, types.LongDouble:
		return mangling.Double
	default:
		return mangling.Int
	}
}
