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

import "github.com/cxxfe/cxxfe/cxx/types"

// Kind enumerates the C++20 type traits spec.md 4.7 names, mirroring
// original_source's TypeTraitKind.
type Kind int

const (
	IsConstantEvaluated Kind = iota
	IsVoid
	IsNullptr
	IsIntegral
	IsFloatingPoint
	IsArray
	IsPointer
	IsLvalueReference
	IsRvalueReference
	IsMemberObjectPointer
	IsMemberFunctionPointer
	IsEnum
	IsUnion
	IsClass
	IsFunction
	IsReference
	IsArithmetic
	IsFundamental
	IsObject
	IsScalar
	IsCompound
	IsConst
	IsVolatile
	IsSigned
	IsUnsigned
	IsBoundedArray
	IsUnboundedArray
	IsPolymorphic
	IsFinal
	IsAbstract
	IsEmpty
	IsAggregate
	IsStandardLayout
	HasUniqueObjectRepresentations
	IsTriviallyCopyable
	IsTrivial
	IsPod
	IsLiteralType
	IsDestructible
	IsTriviallyDestructible
	HasTrivialDestructor
	IsNothrowDestructible
	HasVirtualDestructor
	IsConstructible
	IsTriviallyConstructible
	IsNothrowConstructible

	// Binary/variadic traits, handled by binary.go.
	IsBaseOf
	IsSame
	IsConvertible
	IsNothrowConvertible
	IsAssignable
	IsTriviallyAssignable
	IsNothrowAssignable
	IsLayoutCompatible
	IsPointerInterconvertibleBaseOf
	UnderlyingType
)

func hasUserDefinedConstructor(s *types.StructInfo) bool {
	for _, f := range s.MemberFunctions {
		if f.IsConstructor {
			return true
		}
	}
	return false
}

func hasUserDefinedDestructor(s *types.StructInfo) bool {
	for _, f := range s.MemberFunctions {
		if f.IsDestructor {
			return true
		}
	}
	return false
}

func allMembersSameAccess(s *types.StructInfo) bool {
	if len(s.Members) <= 1 {
		return true
	}
	first := s.Members[0].Access
	for _, m := range s.Members {
		if m.Access != first {
			return false
		}
	}
	return true
}

func allMembersPublic(s *types.StructInfo) bool {
	for _, m := range s.Members {
		if m.Access != types.Public {
			return false
		}
	}
	return true
}

// Evaluate implements the unary traits of evaluateTypeTrait's main
// switch. constantEvaluated reports whether evaluation is happening
// inside a constexpr context, the one trait (is_constant_evaluated)
// whose result depends on the caller rather than on q alone.
func Evaluate(kind Kind, q Query, constantEvaluated bool) (bool, error) {
	switch kind {
	case IsConstantEvaluated:
		return constantEvaluated, nil

	case IsVoid:
		return q.Base == types.Void && !q.IsReference && q.PointerDepth == 0, nil

	case IsNullptr:
		return q.Base == types.Nullptr && !q.IsReference && q.PointerDepth == 0, nil

	case IsIntegral:
		return q.Base.IsIntegral() && !q.IsReference && q.PointerDepth == 0, nil

	case IsFloatingPoint:
		return q.Base.IsFloating() && !q.IsReference && q.PointerDepth == 0, nil

	case IsArray:
		return q.IsArray && !q.IsReference && q.PointerDepth == 0, nil

	case IsPointer:
		return q.PointerDepth > 0 && !q.IsReference, nil

	case IsLvalueReference:
		return q.IsLValueReference || (q.IsReference && !q.IsRValueReference), nil

	case IsRvalueReference:
		return q.IsRValueReference, nil

	case IsMemberObjectPointer:
		return q.Base == types.MemberObjectPointer && !q.IsReference && q.PointerDepth == 0, nil

	case IsMemberFunctionPointer:
		return q.Base == types.MemberFunctionPointer && !q.IsReference && q.PointerDepth == 0, nil

	case IsEnum:
		return q.Base == types.Enum && !q.IsReference && q.PointerDepth == 0, nil

	case IsUnion:
		return q.Struct != nil && q.Struct.IsUnion && !q.IsReference && q.PointerDepth == 0, nil

	case IsClass:
		return (q.Base == types.Struct || q.Base == types.UserDefined) &&
			q.Struct != nil && !q.Struct.IsUnion && !q.IsReference && q.PointerDepth == 0, nil

	case IsFunction:
		return q.Base == types.FunctionPointer && !q.IsReference && q.PointerDepth == 0, nil

	case IsReference:
		return q.IsReference || q.IsRValueReference, nil

	case IsArithmetic:
		return isArithmeticType(q.Base) && !q.IsReference && q.PointerDepth == 0, nil

	case IsFundamental:
		return isFundamentalType(q.Base) && !q.IsReference && q.PointerDepth == 0, nil

	case IsObject:
		return q.Base != types.FunctionPointer && q.Base != types.Void && !q.IsReference && !q.IsRValueReference, nil

	case IsScalar:
		return isScalarType(q), nil

	case IsCompound:
		return !(isFundamentalType(q.Base) && !q.IsReference && q.PointerDepth == 0), nil

	case IsConst:
		return q.Const, nil

	case IsVolatile:
		return q.Volatile, nil

	case IsSigned:
		switch q.Base {
		case types.Char, types.Short, types.Int, types.Long, types.LongLong:
			return !q.IsReference && q.PointerDepth == 0, nil
		}
		return false, nil

	case IsUnsigned:
		return q.Base.IsUnsigned() && !q.IsReference && q.PointerDepth == 0, nil

	case IsBoundedArray:
		return q.IsArray && q.ArraySize > 0 && !q.IsReference && q.PointerDepth == 0, nil

	case IsUnboundedArray:
		return q.IsArray && q.ArraySize <= 0 && !q.IsReference && q.PointerDepth == 0, nil

	case IsPolymorphic:
		return q.Struct != nil && q.Struct.HasVTable && !q.IsReference && q.PointerDepth == 0, nil

	case IsFinal:
		return q.Struct != nil && q.Struct.IsFinal && !q.IsReference && q.PointerDepth == 0, nil

	case IsAbstract:
		return q.Struct != nil && q.Struct.IsAbstract && !q.IsReference && q.PointerDepth == 0, nil

	case IsEmpty:
		if q.Struct != nil && !q.Struct.IsUnion && !q.IsReference && q.PointerDepth == 0 {
			return len(q.Struct.Members) == 0 && !q.Struct.HasVTable, nil
		}
		return false, nil

	case IsAggregate:
		if q.Struct != nil && !q.IsReference && q.PointerDepth == 0 {
			return !hasUserDefinedConstructor(q.Struct) && !q.Struct.HasVTable && allMembersPublic(q.Struct), nil
		}
		if q.IsArray && !q.IsReference && q.PointerDepth == 0 {
			return true, nil
		}
		return false, nil

	case IsStandardLayout:
		if q.Struct != nil && !q.Struct.IsUnion && !q.IsReference && q.PointerDepth == 0 {
			return !q.Struct.HasVTable && allMembersSameAccess(q.Struct), nil
		}
		return isScalarType(q), nil

	case HasUniqueObjectRepresentations:
		if q.IsReference || q.PointerDepth != 0 {
			return false, nil
		}
		switch q.Base {
		case types.Char, types.Short, types.Int, types.Long, types.LongLong,
			types.UnsignedChar, types.UnsignedShort, types.UnsignedInt, types.UnsignedLong, types.UnsignedLongLong:
			return true, nil
		}
		return false, nil

	case IsTriviallyCopyable:
		if isScalarType(q) {
			return true, nil
		}
		if q.Struct != nil && !q.IsReference && q.PointerDepth == 0 {
			return !q.Struct.HasVTable, nil
		}
		return false, nil

	case IsTrivial:
		if isScalarType(q) {
			return true, nil
		}
		if q.Struct != nil && !q.IsReference && q.PointerDepth == 0 {
			return !q.Struct.HasVTable && !hasUserDefinedConstructor(q.Struct), nil
		}
		return false, nil

	case IsPod:
		if isScalarType(q) {
			return true, nil
		}
		if q.Struct != nil && !q.Struct.IsUnion && !q.IsReference && q.PointerDepth == 0 {
			return !q.Struct.HasVTable && !hasUserDefinedConstructor(q.Struct) && allMembersSameAccess(q.Struct), nil
		}
		return false, nil

	case IsLiteralType:
		if isScalarType(q) || q.IsReference {
			return true, nil
		}
		if q.Struct != nil && q.PointerDepth == 0 {
			return !q.Struct.HasVTable && !hasUserDefinedConstructor(q.Struct), nil
		}
		return false, nil

	case IsDestructible:
		if isScalarType(q) {
			return true, nil
		}
		return q.Struct != nil && !q.IsReference && q.PointerDepth == 0, nil

	case IsTriviallyDestructible, HasTrivialDestructor:
		if isScalarType(q) {
			return true, nil
		}
		if q.Struct != nil && !q.IsReference && q.PointerDepth == 0 {
			if q.Struct.IsUnion {
				return true, nil
			}
			return !q.Struct.HasVTable && !hasUserDefinedDestructor(q.Struct), nil
		}
		return false, nil

	case IsNothrowDestructible:
		if isScalarType(q) {
			return true, nil
		}
		return q.Struct != nil && !q.IsReference && q.PointerDepth == 0, nil

	case HasVirtualDestructor:
		if q.Struct == nil || q.Struct.IsUnion || q.IsReference || q.PointerDepth != 0 {
			return false, nil
		}
		return q.Struct.HasVTable && hasUserDefinedDestructor(q.Struct), nil

	case IsConstructible, IsTriviallyConstructible, IsNothrowConstructible:
		if isScalarType(q) {
			return true, nil
		}
		if q.Struct != nil && !q.Struct.IsUnion && !q.IsReference && q.PointerDepth == 0 {
			if kind == IsConstructible {
				return !hasUserDefinedConstructor(q.Struct) || len(q.Struct.MemberFunctions) > 0, nil
			}
			return !q.Struct.HasVTable && !hasUserDefinedConstructor(q.Struct), nil
		}
		return false, nil

	default:
		return false, errUnsupportedUnaryTrait(kind)
	}
}
