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

// Parameter is one function parameter declaration.
type Parameter struct {
	base
	Name    strings.Handle
	Type    Handle
	Default Expr // nil if none
}

func (*Parameter) isNode() {}

// TemplateParam is one template parameter-list entry: a type
// parameter (`class T`), a non-type parameter (`int N`), or a
// template-template parameter. Constraint is the optional concept
// name constraining a type parameter (spec.md new 3.7).
type TemplateParam struct {
	IsType     bool
	IsPack     bool
	Name       strings.Handle
	Type       Handle // valid when !IsType: the parameter's own type
	Constraint strings.Handle
	Default    Handle // Nil if none
}

// FunctionDecl is a function, member function, or special-member
// declaration. Retained across speculative-parse rewinds (spec.md 4.4)
// because template instantiations may already hold a pointer to it.
type FunctionDecl struct {
	base
	Name           strings.Handle
	Params         []Parameter
	ReturnType     Handle // Nil for auto-deduced, resolved lazily
	Body           Handle // Nil for a declaration without a definition
	IsVariadic     bool
	IsInline       bool
	IsConstexpr    bool
	IsConsteval    bool
	IsStatic       bool
	IsVirtual      bool
	IsConst        bool // trailing const on a member function
	TemplateParams []TemplateParam // nil if not a template

	// Special-member recognition (spec.md 4.4's parser responsibility).
	IsConstructor bool
	IsDestructor  bool
	IsConversion  bool
	OperatorName  string // "", "=", "<=>", "==", etc.
}

func (*FunctionDecl) isStmt() {}

// StructDecl is a struct/class/union declaration. Retained across
// speculative-parse rewinds for the same reason as FunctionDecl.
type StructDecl struct {
	base
	Name           strings.Handle
	IsUnion        bool
	IsFinal        bool
	Bases          []BaseSpecifier
	Members        []Handle // VarDecl or FunctionDecl nodes in declaration order
	TemplateParams []TemplateParam // nil if not a class template
	PackAlignment  int             // active #pragma pack value at declaration point, 0 if default
}

func (*StructDecl) isStmt() {}

// BaseSpecifier is one entry of a class's base-class list.
type BaseSpecifier struct {
	Type   Handle
	Access int // mirrors types.Access without importing types
}

// VariableTemplateDecl is `template<class T> constexpr T pi = ...;`.
type VariableTemplateDecl struct {
	base
	Name           strings.Handle
	TemplateParams []TemplateParam
	Type           Handle
	Initializer    Expr
}

func (*VariableTemplateDecl) isStmt() {}

// AliasTemplateDecl is `template<class T> using Vec = vector<T>;`.
type AliasTemplateDecl struct {
	base
	Name           strings.Handle
	TemplateParams []TemplateParam
	Aliased        Handle
}

func (*AliasTemplateDecl) isStmt() {}

// ConceptDecl is a C++20 `template<class T> concept Name = constraint;`
// declaration (spec.md new 3.7, grounded on original_source's
// ConceptRegistry.h).
type ConceptDecl struct {
	base
	Name           strings.Handle
	TemplateParams []TemplateParam
	Constraint     Expr
}

func (*ConceptDecl) isStmt() {}

// NamespaceDecl is `namespace ns { decls... }`.
type NamespaceDecl struct {
	base
	Path    []strings.Handle
	IsInline bool
	Decls   []Handle
}

func (*NamespaceDecl) isStmt() {}
