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
	"io"

	"github.com/cxxfe/cxxfe/core/data/binary"
	"github.com/cxxfe/cxxfe/core/data/endian"
	"github.com/cxxfe/cxxfe/cxx/strings"
)

// WriteBinary serializes an instruction stream to w in the given byte
// order, the `compile -binary` driver option's wire format: a more
// compact alternative to Instruction.String()'s text dump, read back by
// nothing in this package (no consumer needs the stream back as
// Instructions yet, so only the Writer side is implemented).
func WriteBinary(w io.Writer, order endian.Endian, interner *strings.Interner, instrs []Instruction) error {
	bw := endian.Writer(w, order)
	bw.Uint32(uint32(len(instrs)))
	for _, inst := range instrs {
		writeInstruction(bw, interner, inst)
	}
	return bw.Error()
}

func writeInstruction(bw binary.Writer, interner *strings.Interner, inst Instruction) {
	bw.Uint8(uint8(inst.Op))
	bw.Uint32(uint32(inst.Result))
	bw.String(viewOrEmpty(interner, inst.Name))
	bw.String(viewOrEmpty(interner, inst.Target))
	bw.String(viewOrEmpty(interner, inst.ElseTarget))

	bw.Uint32(uint32(len(inst.Operands)))
	for _, operand := range inst.Operands {
		writeTypedValue(bw, interner, operand)
	}

	bw.Bool(inst.LValue != nil)
	if inst.LValue != nil {
		writeLValue(bw, interner, *inst.LValue)
	}

	bw.Bool(inst.Function != nil)
	if inst.Function != nil {
		writeFunctionInfo(bw, interner, *inst.Function)
	}
}

func writeTypedValue(bw binary.Writer, interner *strings.Interner, v TypedValue) {
	bw.Uint8(uint8(v.Base))
	bw.Uint32(v.SizeInBits)
	bw.Int32(int32(v.PointerDepth))
	bw.Uint8(uint8(v.Reference))
	bw.Uint32(uint32(v.TypeIndex))
	writeValue(bw, interner, v.Value)
}

func writeValue(bw binary.Writer, interner *strings.Interner, v Value) {
	bw.Uint8(uint8(v.Kind))
	switch v.Kind {
	case ValueF64:
		bw.Float64(v.F64)
	case ValueString:
		bw.String(viewOrEmpty(interner, v.Str))
	case ValueTemp:
		bw.Uint32(uint32(v.Temp))
	default:
		bw.Uint64(v.U64)
	}
}

func writeLValue(bw binary.Writer, interner *strings.Interner, lv LValueInfo) {
	bw.Uint8(uint8(lv.Kind))
	bw.Uint32(uint32(lv.Base))
	bw.Uint32(lv.Offset)
	bw.String(viewOrEmpty(interner, lv.MemberName))
	bw.Uint32(lv.BitfieldWidth)
}

func writeFunctionInfo(bw binary.Writer, interner *strings.Interner, info FunctionInfo) {
	bw.String(viewOrEmpty(interner, info.Name))
	bw.String(viewOrEmpty(interner, info.MangledName))
	writeTypedValue(bw, interner, info.ReturnType)
	bw.Uint32(uint32(len(info.Params)))
	for _, p := range info.Params {
		writeTypedValue(bw, interner, p)
	}
	bw.Bool(info.IsVariadic)
	bw.Bool(info.IsInline)
	bw.Bool(info.IsExternalLinkage)
	bw.Bool(info.HasHiddenReturnParam)
	bw.Uint32(uint32(info.HiddenReturnType))
	bw.Int32(int32(info.VarCounterStart))
}

func viewOrEmpty(interner *strings.Interner, h strings.Handle) string {
	if h == strings.Invalid {
		return ""
	}
	return interner.View(h)
}
