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

package traits

import (
	"fmt"

	"github.com/cxxfe/cxxfe/cxx/types"
)

func errUnsupportedUnaryTrait(kind Kind) error {
	return fmt.Errorf("type trait %d is binary/variadic and has no unary evaluation", kind)
}

// EvaluateBinary implements spec.md 4.7's binary traits, resolved
// structurally against the type registry rather than evaluateTypeTrait's
// "return failure" stub (original_source punts these to the caller;
// the registry gives us everything needed to resolve them for real).
func EvaluateBinary(kind Kind, lhs, rhs Query, reg *types.Registry) (bool, error) {
	switch kind {
	case IsSame:
		return sameType(lhs, rhs), nil

	case IsBaseOf:
		return isBaseOf(lhs, rhs, reg), nil

	case IsConvertible, IsNothrowConvertible:
		return isConvertible(lhs, rhs), nil

	case IsAssignable, IsTriviallyAssignable, IsNothrowAssignable:
		return isAssignable(lhs, rhs), nil

	case IsLayoutCompatible:
		return layoutCompatible(lhs, rhs), nil

	case IsPointerInterconvertibleBaseOf:
		return isBaseOf(lhs, rhs, reg) && lhs.PointerDepth == 0 && rhs.PointerDepth == 0, nil

	default:
		return false, fmt.Errorf("type trait %d is not a binary trait", kind)
	}
}

func sameType(lhs, rhs Query) bool {
	return lhs.Base == rhs.Base &&
		lhs.PointerDepth == rhs.PointerDepth &&
		lhs.Const == rhs.Const &&
		lhs.Volatile == rhs.Volatile &&
		lhs.IsReference == rhs.IsReference &&
		lhs.IsRValueReference == rhs.IsRValueReference &&
		lhs.StructIndex == rhs.StructIndex
}

// isBaseOf walks derived's base-class list (BFS, mirroring the lazy
// member resolver's own traversal) looking for base among its ancestors.
// A struct is considered its own base, matching std::is_base_of.
func isBaseOf(base, derived Query, reg *types.Registry) bool {
	if base.Struct == nil || derived.Struct == nil {
		return false
	}
	if base.StructIndex == derived.StructIndex {
		return true
	}
	queue := append([]types.Index{}, derivedBaseIndices(derived.Struct)...)
	seen := map[types.Index]bool{}
	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		if seen[idx] {
			continue
		}
		seen[idx] = true
		if idx == base.StructIndex {
			return true
		}
		info := reg.Get(idx)
		if info.Base != types.Struct && info.Base != types.Union {
			continue
		}
		if s := reg.Struct(info.StructInfo); s != nil {
			queue = append(queue, derivedBaseIndices(s)...)
		}
	}
	return false
}

func derivedBaseIndices(s *types.StructInfo) []types.Index {
	out := make([]types.Index, len(s.BaseClasses))
	for i, b := range s.BaseClasses {
		out[i] = b.Type
	}
	return out
}

// isConvertible implements the scalar-conversion subset std::is_convertible
// resolves without a full overload-resolution pass: identical types,
// arithmetic-to-arithmetic, and any-pointer-to-void-pointer all convert.
func isConvertible(from, to Query) bool {
	if sameType(from, to) {
		return true
	}
	if isArithmeticType(from.Base) && from.PointerDepth == 0 && isArithmeticType(to.Base) && to.PointerDepth == 0 {
		return true
	}
	if from.PointerDepth > 0 && to.PointerDepth > 0 && to.Base == types.Void {
		return true
	}
	return false
}

// isAssignable approximates std::is_assignable for scalars and
// same-struct assignment; user-defined operator= overload sets are not
// modeled here.
func isAssignable(to, from Query) bool {
	if to.IsReference && to.PointerDepth == 0 && !to.Const {
		return isConvertible(from, to)
	}
	return false
}

func layoutCompatible(lhs, rhs Query) bool {
	return sameType(lhs, rhs)
}
