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

// Package ir implements the flat instruction stream of spec.md 3.6 and
// the generator of spec.md 4.8, grounded structurally on
// _examples/original_source/src/CodeGen_Visitors.cpp's AstToIr visitor
// (minus its LLVM backend: this package stops at the typed instruction
// stream spec.md 6.4 names as the external interface, the same place
// the teacher's compiler/*.go split kept its own IR from its backend).
package ir

import (
	"github.com/cxxfe/cxxfe/cxx/strings"
	"github.com/cxxfe/cxxfe/cxx/types"
)

// TempVar is an SSA-ish numbered temporary, spec.md 3.6's TempVar. 0 is
// reserved/invalid; for non-static member functions TempVar(1) is
// reserved for the implicit `this` (spec.md 4.8).
type TempVar uint32

// ValueKind tags Value's active field.
type ValueKind int

const (
	ValueU64 ValueKind = iota
	ValueF64
	ValueString
	ValueTemp
)

// Value is spec.md 3.6's `{u64, f64, StringHandle, TempVar}` variant.
type Value struct {
	Kind   ValueKind
	U64    uint64
	F64    float64
	Str    strings.Handle
	Temp   TempVar
}

func U64(v uint64) Value         { return Value{Kind: ValueU64, U64: v} }
func F64(v float64) Value        { return Value{Kind: ValueF64, F64: v} }
func StringValue(v strings.Handle) Value { return Value{Kind: ValueString, Str: v} }
func Temp(v TempVar) Value       { return Value{Kind: ValueTemp, Temp: v} }

// TypedValue is spec.md 3.6's payload: a value decorated with enough
// ABI information to load/store/convert it without re-consulting the
// type registry.
type TypedValue struct {
	Base         types.Base
	SizeInBits   uint32
	PointerDepth int
	Reference    types.ReferenceKind
	TypeIndex    types.Index
	Value        Value
}

// LValueKind distinguishes how an lvalue-producing TempVar should be
// written back to on assignment (spec.md 4.8).
type LValueKind int

const (
	Direct LValueKind = iota
	Temporary
	Member
	Indirect
	ArrayElement
	Global
)

// LValueInfo decorates a TempVar with the addressing metadata needed
// to dispatch an assignment (spec.md 4.8's "lvalue metadata").
type LValueInfo struct {
	Kind                LValueKind
	Base                TempVar
	Offset              uint32
	MemberName          strings.Handle
	BitfieldWidth       uint32
	ArrayIndex          *TypedValue
	IsPointerToMember   bool
	IsPointerToArray    bool
}
