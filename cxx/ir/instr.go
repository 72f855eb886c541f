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
	stdstrings "strings"

	"github.com/cxxfe/cxxfe/cxx/strings"
	"github.com/cxxfe/cxxfe/cxx/types"
)

// Opcode enumerates spec.md 3.6's instruction set.
type Opcode int

const (
	OpFunctionDecl Opcode = iota
	OpGlobalVariableDecl
	OpReturn
	OpLabel
	OpBranch
	OpConditionalBranch

	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpShl
	OpShr
	OpAnd
	OpOr
	OpXor
	OpNot
	OpNeg
	OpLogicalAnd
	OpLogicalOr
	OpLogicalNot

	OpCmpEq
	OpCmpNe
	OpCmpLt
	OpCmpGt
	OpCmpLe
	OpCmpGe

	OpAddressOf
	OpDereference
	OpDereferenceStore
	OpMemberAccess
	OpMemberStore
	OpArrayAccess
	OpArrayStore
	OpGlobalLoad
	OpGlobalStore
	OpVariableLoad
	OpVariableStore

	OpFunctionAddress
	OpFunctionCall
	OpConstructorCall
	OpDestructorCall
)

// Instruction is one opcode-plus-payload entry of the flat stream.
type Instruction struct {
	Op Opcode

	// Result is the TempVar this instruction defines, 0 if it defines
	// none (e.g. Return, Branch, stores).
	Result TempVar

	// Operands, populated per opcode; unused fields are zero.
	Operands []TypedValue

	// FunctionName/GlobalName/Member name the symbol an instruction
	// addresses, when applicable.
	Name strings.Handle

	// Target is a label/branch target, populated for control-flow
	// instructions.
	Target strings.Handle
	ElseTarget strings.Handle

	// LValue carries assignment-dispatch metadata for the instructions
	// that produce an addressable TempVar.
	LValue *LValueInfo

	// FunctionInfo is populated for OpFunctionDecl.
	Function *FunctionInfo
}

// FunctionInfo records an emitted function's ABI-relevant shape
// (spec.md 4.8's FunctionDecl emission rule).
type FunctionInfo struct {
	Name                 strings.Handle
	MangledName          strings.Handle
	ReturnType           TypedValue
	Params               []TypedValue
	IsVariadic           bool
	IsInline             bool
	IsExternalLinkage    bool
	HasHiddenReturnParam bool
	HiddenReturnType     types.Index
	VarCounterStart      int // 1 for non-static member functions (reserving this), else 0
}

var opcodeNames = [...]string{
	OpFunctionDecl:       "FunctionDecl",
	OpGlobalVariableDecl: "GlobalVariableDecl",
	OpReturn:             "Return",
	OpLabel:              "Label",
	OpBranch:             "Branch",
	OpConditionalBranch:  "ConditionalBranch",

	OpAdd:         "Add",
	OpSub:         "Sub",
	OpMul:         "Mul",
	OpDiv:         "Div",
	OpMod:         "Mod",
	OpShl:         "Shl",
	OpShr:         "Shr",
	OpAnd:         "And",
	OpOr:          "Or",
	OpXor:         "Xor",
	OpNot:         "Not",
	OpNeg:         "Neg",
	OpLogicalAnd:  "LogicalAnd",
	OpLogicalOr:   "LogicalOr",
	OpLogicalNot:  "LogicalNot",

	OpCmpEq: "CmpEq",
	OpCmpNe: "CmpNe",
	OpCmpLt: "CmpLt",
	OpCmpGt: "CmpGt",
	OpCmpLe: "CmpLe",
	OpCmpGe: "CmpGe",

	OpAddressOf:        "AddressOf",
	OpDereference:      "Dereference",
	OpDereferenceStore: "DereferenceStore",
	OpMemberAccess:     "MemberAccess",
	OpMemberStore:      "MemberStore",
	OpArrayAccess:      "ArrayAccess",
	OpArrayStore:       "ArrayStore",
	OpGlobalLoad:       "GlobalLoad",
	OpGlobalStore:      "GlobalStore",
	OpVariableLoad:     "VariableLoad",
	OpVariableStore:    "VariableStore",

	OpFunctionAddress: "FunctionAddress",
	OpFunctionCall:    "FunctionCall",
	OpConstructorCall: "ConstructorCall",
	OpDestructorCall:  "DestructorCall",
}

// String names the opcode the way spec.md 3.6 spells it.
func (o Opcode) String() string {
	if int(o) < 0 || int(o) >= len(opcodeNames) {
		return fmt.Sprintf("Opcode(%d)", int(o))
	}
	return opcodeNames[o]
}

// String renders one disassembled instruction line. Operand and
// function payloads print their interned names as raw handles
// (#<n>); a caller that wants source text back needs the interner
// that produced them, which the flat instruction stream does not
// carry.
func (i Instruction) String() string {
	var b stdstrings.Builder
	if i.Result != 0 {
		fmt.Fprintf(&b, "t%d = ", i.Result)
	}
	fmt.Fprint(&b, i.Op.String())
	if i.Name != strings.Invalid {
		fmt.Fprintf(&b, " %s", i.Name)
	}
	if i.Function != nil {
		fmt.Fprintf(&b, " [mangled=%s]", i.Function.MangledName)
	}
	if i.Target != strings.Invalid {
		fmt.Fprintf(&b, " -> %s", i.Target)
	}
	if i.ElseTarget != strings.Invalid {
		fmt.Fprintf(&b, ", %s", i.ElseTarget)
	}
	for _, op := range i.Operands {
		fmt.Fprintf(&b, " %v", op.Value)
	}
	return b.String()
}
