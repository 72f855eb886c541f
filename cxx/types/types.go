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

// Package types holds the process-wide, append-only type registry: a
// contiguous vector of TypeInfo records addressed by TypeIndex, plus a
// side-table of StructTypeInfo for class/struct/union shapes.
package types

import "github.com/cxxfe/cxxfe/cxx/strings"

// Index is the stable handle of a TypeInfo record in a Registry. 0 is
// the reserved invalid/void slot (spec.md 3.1).
type Index uint32

// Invalid is the reserved invalid/void type index.
const Invalid Index = 0

// Base enumerates the fundamental shape of a type, mirroring spec.md
// 3.2's base_type enumeration.
type Base int

const (
	Void Base = iota
	Bool
	Char
	Short
	Int
	Long
	LongLong
	UnsignedChar
	UnsignedShort
	UnsignedInt
	UnsignedLong
	UnsignedLongLong
	Float
	Double
	LongDouble
	Nullptr
	Enum
	Struct
	Union
	UserDefined
	Template
	Auto
	FunctionPointer
	MemberObjectPointer
	MemberFunctionPointer
)

func (b Base) String() string {
	switch b {
	case Void:
		return "void"
	case Bool:
		return "bool"
	case Char:
		return "char"
	case Short:
		return "short"
	case Int:
		return "int"
	case Long:
		return "long"
	case LongLong:
		return "long long"
	case UnsignedChar:
		return "unsigned char"
	case UnsignedShort:
		return "unsigned short"
	case UnsignedInt:
		return "unsigned int"
	case UnsignedLong:
		return "unsigned long"
	case UnsignedLongLong:
		return "unsigned long long"
	case Float:
		return "float"
	case Double:
		return "double"
	case LongDouble:
		return "long double"
	case Nullptr:
		return "nullptr_t"
	case Enum:
		return "enum"
	case Struct:
		return "struct"
	case Union:
		return "union"
	case UserDefined:
		return "user-defined"
	case Template:
		return "template"
	case Auto:
		return "auto"
	case FunctionPointer:
		return "function-pointer"
	case MemberObjectPointer:
		return "member-object-pointer"
	case MemberFunctionPointer:
		return "member-function-pointer"
	default:
		return "unknown"
	}
}

// IsIntegral reports whether b denotes one of the integral base types
// (used by the type-trait evaluator, spec.md 4.7).
func (b Base) IsIntegral() bool {
	switch b {
	case Bool, Char, Short, Int, Long, LongLong,
		UnsignedChar, UnsignedShort, UnsignedInt, UnsignedLong, UnsignedLongLong:
		return true
	default:
		return false
	}
}

// IsFloating reports whether b denotes a floating-point base type.
func (b Base) IsFloating() bool {
	switch b {
	case Float, Double, LongDouble:
		return true
	default:
		return false
	}
}

// IsUnsigned reports whether b denotes an unsigned integral base type.
func (b Base) IsUnsigned() bool {
	switch b {
	case UnsignedChar, UnsignedShort, UnsignedInt, UnsignedLong, UnsignedLongLong, Bool:
		return true
	default:
		return false
	}
}

// ReferenceKind distinguishes non-reference, lvalue-reference and
// rvalue-reference types, used both on TypeInfo and on IR TypedValue
// payloads (spec.md 3.6).
type ReferenceKind int

const (
	NotReference ReferenceKind = iota
	LValueReference
	RValueReference
)

// ArgumentKind distinguishes the two shapes a TemplateArgument may
// take (spec.md 3.2).
type ArgumentKind int

const (
	TypeArgument ArgumentKind = iota
	ValueArgument
	TemplateArgumentKind
)

// TemplateArgument is one entry of an instantiation's argument list,
// either a type (with its ABI-relevant decoration) or a non-type value.
type TemplateArgument struct {
	Kind Kind

	// Populated when Kind == TypeArgument or TemplateArgumentKind.
	Type Index

	// ABI-relevant decoration applied at the use site, independent of
	// the decorated type's own TypeInfo (spec.md 3.2: "pointer depth,
	// CV qualifiers on each pointer level, reference kind, array extent").
	PointerDepth int
	CVPerLevel   []CVQualifiers
	Reference    ReferenceKind
	ArrayExtent  int // -1 if not an array, 0 if unbounded ([])

	// Populated when Kind == ValueArgument (non-type template parameter).
	Value int64
}

// Kind is an alias kept for readability at call sites; see ArgumentKind.
type Kind = ArgumentKind

// CVQualifiers packs const/volatile at one pointer level.
type CVQualifiers struct {
	Const    bool
	Volatile bool
}

// TemplateInfo carries the instantiation metadata a TypeInfo has iff it
// is a template instantiation (spec.md 3.2).
type TemplateInfo struct {
	BaseTemplate strings.Handle
	Arguments    []TemplateArgument
}

// Info is a TypeInfo record (spec.md 3.2), stored by value in a
// Registry's contiguous, append-only vector.
type Info struct {
	Name       strings.Handle
	Base       Base
	SizeInBits uint32
	Alignment  uint32

	// Template instantiates this type iff non-nil.
	Template *TemplateInfo

	// StructInfo indexes into Registry.structs iff Base is Struct or Union.
	StructInfo StructIndex
}

// StructIndex addresses a StructTypeInfo in a Registry's struct
// side-table. Invalid (0) means "no struct info".
type StructIndex uint32

// InvalidStruct is the reserved "no struct info" index.
const InvalidStruct StructIndex = 0
