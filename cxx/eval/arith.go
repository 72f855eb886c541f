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
	"math"
)

// applyBinary implements spec.md 4.6's overflow-checked 64-bit
// arithmetic: overflow, divide/modulo by zero, shift >= 64 or
// negative, and INT_MIN / -1 all yield an error instead of UB.
func applyBinary(lhs, rhs Value, op string) (Value, error) {
	switch op {
	case "&&":
		return Bool(lhs.AsBool() && rhs.AsBool()), nil
	case "||":
		return Bool(lhs.AsBool() || rhs.AsBool()), nil
	}

	if lhs.Kind == KindFloat || rhs.Kind == KindFloat {
		return applyFloatBinary(lhs.AsFloat(), rhs.AsFloat(), op)
	}
	if lhs.Kind == KindUint || rhs.Kind == KindUint {
		return applyUintBinary(uint64(lhs.AsInt()), uint64(rhs.AsInt()), op)
	}
	return applyIntBinary(lhs.AsInt(), rhs.AsInt(), op)
}

func applyIntBinary(a, b int64, op string) (Value, error) {
	switch op {
	case "+":
		sum := a + b
		if (b > 0 && sum < a) || (b < 0 && sum > a) {
			return Value{}, fmt.Errorf("integer overflow in %d + %d", a, b)
		}
		return Int(sum), nil
	case "-":
		diff := a - b
		if (b < 0 && diff < a) || (b > 0 && diff > a) {
			return Value{}, fmt.Errorf("integer overflow in %d - %d", a, b)
		}
		return Int(diff), nil
	case "*":
		if a != 0 && b != 0 {
			prod := a * b
			if prod/a != b {
				return Value{}, fmt.Errorf("integer overflow in %d * %d", a, b)
			}
			return Int(prod), nil
		}
		return Int(0), nil
	case "/":
		if b == 0 {
			return Value{}, fmt.Errorf("division by zero")
		}
		if a == math.MinInt64 && b == -1 {
			return Value{}, fmt.Errorf("integer overflow in INT_MIN / -1")
		}
		return Int(a / b), nil
	case "%":
		if b == 0 {
			return Value{}, fmt.Errorf("modulo by zero")
		}
		if a == math.MinInt64 && b == -1 {
			return Value{}, fmt.Errorf("integer overflow in INT_MIN %% -1")
		}
		return Int(a % b), nil
	case "<<", ">>":
		if b < 0 || b >= 64 {
			return Value{}, fmt.Errorf("shift amount %d out of range", b)
		}
		if op == "<<" {
			return Int(a << uint(b)), nil
		}
		return Int(a >> uint(b)), nil
	case "&":
		return Int(a & b), nil
	case "|":
		return Int(a | b), nil
	case "^":
		return Int(a ^ b), nil
	case "==":
		return Bool(a == b), nil
	case "!=":
		return Bool(a != b), nil
	case "<":
		return Bool(a < b), nil
	case ">":
		return Bool(a > b), nil
	case "<=":
		return Bool(a <= b), nil
	case ">=":
		return Bool(a >= b), nil
	default:
		return Value{}, fmt.Errorf("unsupported integer operator %q", op)
	}
}

func applyUintBinary(a, b uint64, op string) (Value, error) {
	switch op {
	case "+":
		sum := a + b
		if sum < a {
			return Value{}, fmt.Errorf("unsigned overflow in %d + %d", a, b)
		}
		return Uint(sum), nil
	case "-":
		if b > a {
			return Value{}, fmt.Errorf("unsigned underflow in %d - %d", a, b)
		}
		return Uint(a - b), nil
	case "*":
		if a != 0 && b != 0 {
			prod := a * b
			if prod/a != b {
				return Value{}, fmt.Errorf("unsigned overflow in %d * %d", a, b)
			}
			return Uint(prod), nil
		}
		return Uint(0), nil
	case "/":
		if b == 0 {
			return Value{}, fmt.Errorf("division by zero")
		}
		return Uint(a / b), nil
	case "%":
		if b == 0 {
			return Value{}, fmt.Errorf("modulo by zero")
		}
		return Uint(a % b), nil
	case "<<", ">>":
		if b >= 64 {
			return Value{}, fmt.Errorf("shift amount %d out of range", b)
		}
		if op == "<<" {
			return Uint(a << b), nil
		}
		return Uint(a >> b), nil
	case "&":
		return Uint(a & b), nil
	case "|":
		return Uint(a | b), nil
	case "^":
		return Uint(a ^ b), nil
	case "==":
		return Bool(a == b), nil
	case "!=":
		return Bool(a != b), nil
	case "<":
		return Bool(a < b), nil
	case ">":
		return Bool(a > b), nil
	case "<=":
		return Bool(a <= b), nil
	case ">=":
		return Bool(a >= b), nil
	default:
		return Value{}, fmt.Errorf("unsupported unsigned operator %q", op)
	}
}

func applyFloatBinary(a, b float64, op string) (Value, error) {
	switch op {
	case "+":
		return Float(a + b), nil
	case "-":
		return Float(a - b), nil
	case "*":
		return Float(a * b), nil
	case "/":
		if b == 0 {
			return Value{}, fmt.Errorf("floating-point division by zero")
		}
		return Float(a / b), nil
	case "==":
		return Bool(a == b), nil
	case "!=":
		return Bool(a != b), nil
	case "<":
		return Bool(a < b), nil
	case ">":
		return Bool(a > b), nil
	case "<=":
		return Bool(a <= b), nil
	case ">=":
		return Bool(a >= b), nil
	default:
		return Value{}, fmt.Errorf("unsupported floating-point operator %q", op)
	}
}

// applyUnary implements unary +/-/!/~ with the same overflow checks.
func applyUnary(v Value, op string) (Value, error) {
	switch op {
	case "-":
		if v.Kind == KindFloat {
			return Float(-v.Float), nil
		}
		if v.AsInt() == math.MinInt64 {
			return Value{}, fmt.Errorf("integer overflow negating INT_MIN")
		}
		return Int(-v.AsInt()), nil
	case "+":
		return v, nil
	case "!":
		return Bool(!v.AsBool()), nil
	case "~":
		return Int(^v.AsInt()), nil
	default:
		return Value{}, fmt.Errorf("unsupported unary operator %q", op)
	}
}
