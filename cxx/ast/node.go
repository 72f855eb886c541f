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

import "github.com/cxxfe/cxxfe/cxx/lexer"

// Node is implemented by every expression and statement kind. Each
// concrete type additionally implements isExpr() or isStmt() so the
// two families cannot be confused at compile time; this is the same
// closed-sum-type-via-dummy-marker idiom the teacher uses for its own
// AST (compare gapil/ast/type.go's isNode()).
type Node interface {
	// Tok returns the token the node was parsed from, for diagnostics.
	Tok() lexer.Token
	isNode()
}

// Expr is any expression node (spec.md 3.3).
type Expr interface {
	Node
	isExpr()
}

// Stmt is any statement node (spec.md 3.3).
type Stmt interface {
	Node
	isStmt()
}

// base carries the common position field every node needs; embedded
// by every concrete node type so Tok() only has to be written once.
type base struct {
	Token lexer.Token
}

func (b base) Tok() lexer.Token { return b.Token }
func (base) isNode()            {}
