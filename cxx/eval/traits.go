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
	"strings"

	"github.com/cxxfe/cxxfe/cxx/ast"
	"github.com/cxxfe/cxxfe/cxx/traits"
)

// traitKinds maps a trait's spelling (accepted with or without the
// compiler-intrinsic "__" prefix, e.g. both "__is_integral" and
// "is_integral") to traits.Kind. Delegated to from Evaluate per
// spec.md 4.6's "type traits (delegated to §4.7)".
var traitKinds = map[string]traits.Kind{
	"is_constant_evaluated":                traits.IsConstantEvaluated,
	"is_void":                              traits.IsVoid,
	"is_null_pointer":                      traits.IsNullptr,
	"is_nullptr":                           traits.IsNullptr,
	"is_integral":                          traits.IsIntegral,
	"is_floating_point":                    traits.IsFloatingPoint,
	"is_array":                             traits.IsArray,
	"is_pointer":                           traits.IsPointer,
	"is_lvalue_reference":                  traits.IsLvalueReference,
	"is_rvalue_reference":                  traits.IsRvalueReference,
	"is_member_object_pointer":             traits.IsMemberObjectPointer,
	"is_member_function_pointer":           traits.IsMemberFunctionPointer,
	"is_enum":                              traits.IsEnum,
	"is_union":                             traits.IsUnion,
	"is_class":                             traits.IsClass,
	"is_function":                          traits.IsFunction,
	"is_reference":                         traits.IsReference,
	"is_arithmetic":                        traits.IsArithmetic,
	"is_fundamental":                       traits.IsFundamental,
	"is_object":                            traits.IsObject,
	"is_scalar":                            traits.IsScalar,
	"is_compound":                          traits.IsCompound,
	"is_const":                             traits.IsConst,
	"is_volatile":                          traits.IsVolatile,
	"is_signed":                            traits.IsSigned,
	"is_unsigned":                          traits.IsUnsigned,
	"is_bounded_array":                     traits.IsBoundedArray,
	"is_unbounded_array":                   traits.IsUnboundedArray,
	"is_polymorphic":                       traits.IsPolymorphic,
	"is_final":                             traits.IsFinal,
	"is_abstract":                          traits.IsAbstract,
	"is_empty":                             traits.IsEmpty,
	"is_aggregate":                         traits.IsAggregate,
	"is_standard_layout":                   traits.IsStandardLayout,
	"has_unique_object_representations":    traits.HasUniqueObjectRepresentations,
	"is_trivially_copyable":                traits.IsTriviallyCopyable,
	"is_trivial":                           traits.IsTrivial,
	"is_pod":                               traits.IsPod,
	"is_literal_type":                      traits.IsLiteralType,
	"is_destructible":                      traits.IsDestructible,
	"is_trivially_destructible":            traits.IsTriviallyDestructible,
	"has_trivial_destructor":               traits.HasTrivialDestructor,
	"is_nothrow_destructible":              traits.IsNothrowDestructible,
	"has_virtual_destructor":               traits.HasVirtualDestructor,
	"is_constructible":                     traits.IsConstructible,
	"is_trivially_constructible":           traits.IsTriviallyConstructible,
	"is_nothrow_constructible":             traits.IsNothrowConstructible,
	"is_base_of":                           traits.IsBaseOf,
	"is_same":                              traits.IsSame,
	"is_convertible":                       traits.IsConvertible,
	"is_nothrow_convertible":               traits.IsNothrowConvertible,
	"is_assignable":                        traits.IsAssignable,
	"is_trivially_assignable":              traits.IsTriviallyAssignable,
	"is_nothrow_assignable":                traits.IsNothrowAssignable,
	"is_layout_compatible":                 traits.IsLayoutCompatible,
	"is_pointer_interconvertible_base_of":  traits.IsPointerInterconvertibleBaseOf,
}

func lookupTraitKind(name string) (traits.Kind, bool) {
	k, ok := traitKinds[strings.TrimLeft(name, "_")]
	return k, ok
}

// evaluateTypeTrait implements spec.md 4.6's type-trait dispatch by
// resolving each operand's ast.TypeSpecifier into a traits.Query and
// delegating to cxx/traits, which has no dependency back on eval: a
// pure function of (kind, query[, query]).
func evaluateTypeTrait(arena *ast.Arena, n *ast.TypeTraitExpression, ctx *Context) (Value, error) {
	kind, ok := lookupTraitKind(n.Trait)
	if !ok {
		return Value{}, fmt.Errorf("unknown type trait %q", n.Trait)
	}

	lhsSpec, ok := arena.Get(n.Lhs).(*ast.TypeSpecifier)
	if !ok {
		return Value{}, fmt.Errorf("type trait %q's first operand is not a type", n.Trait)
	}
	lhs, err := traits.FromTypeSpecifier(lhsSpec, ctx.Types)
	if err != nil {
		return Value{}, err
	}

	if n.Rhs == ast.Nil {
		result, err := traits.Evaluate(kind, lhs, true)
		if err != nil {
			return Value{}, err
		}
		return Bool(result), nil
	}

	rhsSpec, ok := arena.Get(n.Rhs).(*ast.TypeSpecifier)
	if !ok {
		return Value{}, fmt.Errorf("type trait %q's second operand is not a type", n.Trait)
	}
	rhs, err := traits.FromTypeSpecifier(rhsSpec, ctx.Types)
	if err != nil {
		return Value{}, err
	}
	result, err := traits.EvaluateBinary(kind, lhs, rhs, ctx.Types)
	if err != nil {
		return Value{}, err
	}
	return Bool(result), nil
}
