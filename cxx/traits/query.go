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

// Package traits implements the C++20 type-trait evaluator of spec.md
// 4.7, grounded on
// _examples/original_source/src/TypeTraitEvaluator.h's
// evaluateTypeTrait: a pure function of (trait kind, decorated type,
// optional StructTypeInfo) with no dependency on the constant-expression
// evaluator or any other compiler state.
package traits

import (
	"fmt"

	"github.com/cxxfe/cxxfe/cxx/ast"
	"github.com/cxxfe/cxxfe/cxx/types"
)

// Query is the decorated-type view evaluateTypeTrait's first overload
// takes as separate parameters (base type, reference-ness, pointer
// depth, cv-qualification, array-ness). Resolved once per trait
// expression by FromTypeSpecifier rather than re-walking the AST node
// for every sub-check.
type Query struct {
	Base              types.Base
	IsReference       bool
	IsLValueReference bool
	IsRValueReference bool
	PointerDepth      int
	Const             bool
	Volatile          bool
	IsArray           bool
	ArraySize         int // -1 if unknown/unbounded
	Struct            *types.StructInfo
	StructIndex       types.Index
}

// FromTypeSpecifier resolves an ast.TypeSpecifier (as written at a
// trait's use site) against the type registry into a Query, following
// the registry lookup the constant-expression evaluator's sizeof
// handling already does for type names.
func FromTypeSpecifier(spec *ast.TypeSpecifier, reg *types.Registry) (Query, error) {
	idx, ok := reg.FindByName(spec.Name)
	if !ok {
		return Query{}, fmt.Errorf("unknown type in type trait query")
	}
	info := reg.Get(idx)

	q := Query{
		Base:         info.Base,
		PointerDepth: spec.PointerDepth,
		Const:        spec.Const,
		Volatile:     spec.Volatile,
		IsArray:      spec.ArrayExtent >= 0,
		ArraySize:    spec.ArrayExtent,
		StructIndex:  idx,
	}
	switch spec.Reference {
	case ast.LValueReference:
		q.IsReference = true
		q.IsLValueReference = true
	case ast.RValueReference:
		q.IsReference = true
		q.IsRValueReference = true
	}
	if info.Base == types.Struct || info.Base == types.Union {
		q.Struct = reg.Struct(info.StructInfo)
	}
	return q, nil
}

func isArithmeticType(b types.Base) bool {
	return b >= types.Bool && b <= types.LongDouble
}

func isFundamentalType(b types.Base) bool {
	return b == types.Void || b == types.Nullptr || isArithmeticType(b)
}

func isScalarType(q Query) bool {
	if q.IsReference {
		return false
	}
	if q.PointerDepth > 0 {
		return true
	}
	switch q.Base {
	case types.Bool, types.Char, types.Short, types.Int, types.Long, types.LongLong,
		types.UnsignedChar, types.UnsignedShort, types.UnsignedInt, types.UnsignedLong, types.UnsignedLongLong,
		types.Float, types.Double, types.LongDouble, types.Enum, types.Nullptr,
		types.MemberObjectPointer, types.MemberFunctionPointer:
		return true
	default:
		return false
	}
}
