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

package types

import "github.com/cxxfe/cxxfe/cxx/strings"

// Access is a C++ access specifier.
type Access int

const (
	Public Access = iota
	Protected
	Private
)

// Member is one ordered entry of a StructInfo's member list (spec.md 3.2).
type Member struct {
	Name               strings.Handle
	Type               Index
	SizeInBits         uint32
	ByteOffset         uint32
	Access             Access
	IsBitfield         bool
	BitfieldWidth      uint32
	BitfieldBitOffset  uint32 // offset within the storage unit, not the object
	DefaultInitializer interface{} // ast.Expr, left untyped here to avoid an import cycle
	IsReference        bool
	IsRValueReference  bool
}

// BaseClass is one ordered entry of a StructInfo's base-class list.
type BaseClass struct {
	Name       strings.Handle
	Type       Index
	ByteOffset uint32
	Access     Access
}

// OperatorKind tags member functions that are operator overloads or
// special members, so the IR generator (spec.md 4.8) can dispatch on
// them without re-parsing the name.
type OperatorKind int

const (
	NotOperator OperatorKind = iota
	OperatorAssign
	OperatorSpaceship // operator<=>
	OperatorEq
	OperatorNe
	OperatorLt
	OperatorGt
	OperatorLe
	OperatorGe
	OperatorOther
)

// MemberFunction is one ordered entry of a StructInfo's method list.
type MemberFunction struct {
	Name          strings.Handle
	Access        Access
	Operator      OperatorKind
	ParentStruct  strings.Handle
	IsConstructor bool
	IsDestructor  bool
	IsVirtual     bool
	IsStatic      bool
	FunctionDecl  interface{} // ast handle for the declaration; untyped to avoid an import cycle
	MangledName   strings.Handle
}

// StaticMember is a member declared `static`, emitted once as a
// GlobalVariableDecl (spec.md 4.8).
type StaticMember struct {
	Member
	Initializer interface{} // ast.Expr
}

// StructInfo is the side-table entry for a struct/class/union
// TypeInfo (spec.md 3.2).
type StructInfo struct {
	Members         []Member
	BaseClasses     []BaseClass
	MemberFunctions []MemberFunction
	StaticMembers   []StaticMember

	IsUnion                  bool
	IsFinal                  bool
	IsAbstract               bool
	HasVTable                bool
	NeedsDefaultConstructor  bool
	IsIncompleteInstantiation bool

	VTableSymbol    strings.Handle
	EnclosingClass  Index // Invalid if not nested
	Friends         []strings.Handle
}

// TotalSize returns the struct's total size in bits, the max of every
// member and base-class extent (used to validate P3 layout soundness).
func (s *StructInfo) TotalSize(reg *Registry) uint32 {
	var max uint32
	for _, m := range s.Members {
		end := m.ByteOffset*8 + m.SizeInBits
		if end > max {
			max = end
		}
	}
	for _, b := range s.BaseClasses {
		baseInfo := reg.Get(b.Type)
		end := b.ByteOffset*8 + baseInfo.SizeInBits
		if end > max {
			max = end
		}
	}
	return max
}
