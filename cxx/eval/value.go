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

// Package eval implements the constant-expression evaluator of
// spec.md 4.6, grounded on
// _examples/original_source/src/ConstExprEvaluator.h's EvalResult /
// EvaluationContext / Evaluator shape, reworked into Go's
// (value, error) idiom instead of a success-flag-plus-variant result.
package eval

import (
	"fmt"

	"github.com/cxxfe/cxxfe/cxx/strings"
)

// Kind tags a Value's active field, mirroring the std::variant in
// original_source's EvalResult.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindUint
	KindFloat
	KindObject
)

// Value is the tagged union a constant expression evaluates to.
type Value struct {
	Kind   Kind
	Bool   bool
	Int    int64
	Uint   uint64
	Float  float64
	Object *Object
}

// Object is a constexpr struct/class instance: a flat name-to-Value
// member map, matching original_source's ObjectValue.
type Object struct {
	TypeName strings.Handle
	Members  map[strings.Handle]Value
}

func Bool(v bool) Value    { return Value{Kind: KindBool, Bool: v} }
func Int(v int64) Value    { return Value{Kind: KindInt, Int: v} }
func Uint(v uint64) Value  { return Value{Kind: KindUint, Uint: v} }
func Float(v float64) Value { return Value{Kind: KindFloat, Float: v} }

// AsBool implements "any non-zero value is true" (original_source's
// EvalResult::as_bool).
func (v Value) AsBool() bool {
	switch v.Kind {
	case KindBool:
		return v.Bool
	case KindInt:
		return v.Int != 0
	case KindUint:
		return v.Uint != 0
	case KindFloat:
		return v.Float != 0
	default:
		return false
	}
}

// AsInt implements EvalResult::as_int's coercion table.
func (v Value) AsInt() int64 {
	switch v.Kind {
	case KindBool:
		if v.Bool {
			return 1
		}
		return 0
	case KindInt:
		return v.Int
	case KindUint:
		return int64(v.Uint)
	case KindFloat:
		return int64(v.Float)
	default:
		return 0
	}
}

// AsFloat implements EvalResult::as_double's coercion table.
func (v Value) AsFloat() float64 {
	switch v.Kind {
	case KindBool:
		if v.Bool {
			return 1
		}
		return 0
	case KindInt:
		return float64(v.Int)
	case KindUint:
		return float64(v.Uint)
	case KindFloat:
		return v.Float
	default:
		return 0
	}
}

func (v Value) String() string {
	switch v.Kind {
	case KindBool:
		return fmt.Sprintf("%v", v.Bool)
	case KindInt:
		return fmt.Sprintf("%d", v.Int)
	case KindUint:
		return fmt.Sprintf("%d", v.Uint)
	case KindFloat:
		return fmt.Sprintf("%g", v.Float)
	case KindObject:
		return fmt.Sprintf("<object %d>", v.Object.TypeName)
	default:
		return "<invalid>"
	}
}
