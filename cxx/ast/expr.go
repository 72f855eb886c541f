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

package ast

import "github.com/cxxfe/cxxfe/cxx/strings"

// The expression node set of spec.md 3.3. Each type is a case of the
// closed Expr sum; emission and evaluation code type-switches over
// these rather than calling virtual methods, the "tagged AST instead
// of deep inheritance" design note (spec.md 9).

// NumericLiteral is an integer or floating-point literal.
type NumericLiteral struct {
	base
	IsFloat bool
	Int     int64
	Float   float64
	IsUnsigned bool
}

func (*NumericLiteral) isExpr() {}

// BoolLiteral is `true` or `false`.
type BoolLiteral struct {
	base
	Value bool
}

func (*BoolLiteral) isExpr() {}

// StringLiteral is a string literal.
type StringLiteral struct {
	base
	Value strings.Handle
}

func (*StringLiteral) isExpr() {}

// Identifier is an unqualified name reference.
type Identifier struct {
	base
	Name strings.Handle
}

func (*Identifier) isExpr() {}

// QualifiedIdentifier is `ns::name`, the namespace path recorded as a
// list of handles rather than a concatenated string (spec.md 3.4).
type QualifiedIdentifier struct {
	base
	Path []strings.Handle
	Name strings.Handle
}

func (*QualifiedIdentifier) isExpr() {}

// MemberAccess is `.` or `->` member access.
type MemberAccess struct {
	base
	Object  Expr
	Member  strings.Handle
	Arrow   bool
}

func (*MemberAccess) isExpr() {}

// PointerToMemberAccess is `.*` or `->*`.
type PointerToMemberAccess struct {
	base
	Object Expr
	Member Expr
	Arrow  bool
}

func (*PointerToMemberAccess) isExpr() {}

// ArraySubscript is `a[i]`.
type ArraySubscript struct {
	base
	Array Expr
	Index Expr
}

func (*ArraySubscript) isExpr() {}

// Call is an ordinary (non-member) function call, optionally with
// explicit template arguments for function-template calls (spec.md
// 4.5.2).
type Call struct {
	base
	Callee Expr
	Args   []Expr
	// TemplateArgs holds explicit template arguments (`f<int, 4>(...)`),
	// nil if none given. Each handle is either a *TypeSpecifier or an
	// Expr, exactly like TypeSpecifier.TemplateArgs, since an explicit
	// function-template argument can be either.
	TemplateArgs []Handle
}

func (*Call) isExpr() {}

// MemberCall is `obj.method(args)` / `obj->method(args)`.
type MemberCall struct {
	base
	Object Expr
	Method strings.Handle
	Args   []Expr
	Arrow  bool
}

func (*MemberCall) isExpr() {}

// ConstructorCall is `Type(args)` or `Type{args}`.
type ConstructorCall struct {
	base
	Type Handle // a TypeSpecifier node
	Args []Expr
	Braced bool
}

func (*ConstructorCall) isExpr() {}

// UnaryOp covers prefix/postfix unary operators including ++/--.
type UnaryOp struct {
	base
	Op       string
	Operand  Expr
	Postfix  bool
}

func (*UnaryOp) isExpr() {}

// BinaryOp covers arithmetic, relational, logical and bitwise binary
// operators.
type BinaryOp struct {
	base
	Op    string
	Left  Expr
	Right Expr
}

func (*BinaryOp) isExpr() {}

// TernaryOp is `cond ? then : else`.
type TernaryOp struct {
	base
	Cond, Then, Else Expr
}

func (*TernaryOp) isExpr() {}

// CompoundAssign covers `+=`, `-=`, etc.
type CompoundAssign struct {
	base
	Op    string
	Left  Expr
	Right Expr
}

func (*CompoundAssign) isExpr() {}

// SizeofKind distinguishes sizeof(type) from sizeof(expr).
type SizeofKind int

const (
	SizeofType SizeofKind = iota
	SizeofExpr
	AlignofType
	OffsetofExpr
)

// SizeofExpression covers sizeof/alignof/offsetof.
type SizeofExpression struct {
	base
	Kind       SizeofKind
	Type       Handle // valid when Kind is SizeofType or AlignofType
	Operand    Expr   // valid when Kind is SizeofExpr
	MemberPath []strings.Handle // valid when Kind is OffsetofExpr
}

func (*SizeofExpression) isExpr() {}

// TypeTraitExpression is `__is_trait(T[, U])` (spec.md 4.7).
type TypeTraitExpression struct {
	base
	Trait string
	Lhs   Handle
	Rhs   Handle // Nil if the trait is unary
}

func (*TypeTraitExpression) isExpr() {}

// NoexceptExpression is `noexcept(expr)`.
type NoexceptExpression struct {
	base
	Operand Expr
}

func (*NoexceptExpression) isExpr() {}

// InitializerEntry is one entry of an InitializerList, optionally
// designated (`.field = value`).
type InitializerEntry struct {
	Designator strings.Handle // Invalid if positional
	Value      Expr
}

// InitializerList is `{a, b, .c = d}`.
type InitializerList struct {
	base
	Entries []InitializerEntry
}

func (*InitializerList) isExpr() {}

// Capture is one lambda capture entry.
type Capture struct {
	Name   strings.Handle // Invalid for [this]/[*this]/[=]/[&]
	ByRef  bool
	This   bool
	StarThis bool
}

// LambdaExpression generates a closure type at IR-gen time (spec.md
// 4.8): `__lambda_<counter>` with one member per capture.
type LambdaExpression struct {
	base
	Captures []Capture
	Params   []Handle // ParameterDecl nodes
	Body     Handle    // Block statement
	ID       int       // assigned at parse time, used to emit each lambda at most once
}

func (*LambdaExpression) isExpr() {}

// FoldExpression is a C++17 fold over a parameter pack.
type FoldExpression struct {
	base
	Op      string
	Pack    Expr
	Init    Expr // nil for unary folds
	LeftFold bool
}

func (*FoldExpression) isExpr() {}

// DecltypeExpression is `decltype(expr)`.
type DecltypeExpression struct {
	base
	Operand Expr
}

func (*DecltypeExpression) isExpr() {}

// PseudoDestructorCall is `p->~T()` on a scalar/pointer pseudo-object.
type PseudoDestructorCall struct {
	base
	Object Expr
	Type   Handle
}

func (*PseudoDestructorCall) isExpr() {}

// NewExpression is `new T(args)` / `new T[n]`.
type NewExpression struct {
	base
	Type      Handle
	Args      []Expr
	ArrayExtent Expr // nil if not an array-new
}

func (*NewExpression) isExpr() {}

// DeleteExpression is `delete p` / `delete[] p`.
type DeleteExpression struct {
	base
	Operand Expr
	IsArray bool
}

func (*DeleteExpression) isExpr() {}

// CastKind distinguishes the C++ cast forms.
type CastKind int

const (
	CStyleCast CastKind = iota
	StaticCast
	DynamicCast
	ConstCast
	ReinterpretCast
)

// CastExpression covers every cast form.
type CastExpression struct {
	base
	Kind    CastKind
	Type    Handle
	Operand Expr
}

func (*CastExpression) isExpr() {}

// PackExpansion is `args...`.
type PackExpansion struct {
	base
	Pattern Expr
}

func (*PackExpansion) isExpr() {}

// TemplateParamRef refers to an enclosing template's parameter by
// name, resolved by the expression/type substitutor (spec.md 4.5.2/3)
// during instantiation.
type TemplateParamRef struct {
	base
	Name strings.Handle
}

func (*TemplateParamRef) isExpr() {}

// TypeSpecifier is not itself an Expr — it names a type the way the
// parser wrote it, before or after template-argument substitution
// (spec.md 4.5.3). Stored in the arena like any other node so handles
// into it from TemplateArgument-bearing expressions stay stable.
type TypeSpecifier struct {
	base
	Name         strings.Handle
	PointerDepth int
	Reference    ReferenceKind
	Const        bool
	Volatile     bool
	ArrayExtent  int // -1 if not an array
	TemplateArgs []Handle // nested TypeSpecifier/literal nodes, nil if not a template-id
}

func (*TypeSpecifier) isNode() {}

// ReferenceKind mirrors types.ReferenceKind without importing the
// types package, which would otherwise create an import cycle
// (types -> strings only; ast needs no dependency on types).
type ReferenceKind int

const (
	NotReference ReferenceKind = iota
	LValueReference
	RValueReference
)
