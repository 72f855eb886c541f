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

package parser

import (
	"github.com/cxxfe/cxxfe/cxx/ast"
	"github.com/cxxfe/cxxfe/cxx/lexer"
	"github.com/cxxfe/cxxfe/cxx/strings"
)

// parseParameter parses one function parameter: a type, an optional
// name, and an optional default argument. The node is added to the
// arena (lambda capture lists and forward references store the handle,
// not the value).
func (p *Parser) parseParameter() ast.Handle {
	tok := p.peek()
	p.parseDeclSpecifiers()
	typeHandle := p.parseTypeSpecifier()
	name := strings.Invalid
	if p.atKind(lexer.Identifier) {
		name, _ = p.expectIdentifier()
	}
	var def ast.Expr
	if p.acceptPunct("=") {
		def = p.parseAssignmentExpression()
	}
	out := &ast.Parameter{Name: name, Type: typeHandle, Default: def}
	out.Token = tok
	return p.arena.Add(out)
}

// parseParameterList parses `( params... )`, reporting whether a
// trailing `...` marks the function variadic.
func (p *Parser) parseParameterList() ([]ast.Parameter, bool) {
	p.expectPunct("(")
	var params []ast.Parameter
	variadic := false
	for !p.atPunct(")") {
		if len(params) > 0 {
			p.expectPunct(",")
		}
		if p.acceptPunct("...") {
			variadic = true
			break
		}
		h := p.parseParameter()
		params = append(params, *p.arena.Get(h).(*ast.Parameter))
	}
	p.expectPunct(")")
	return params, variadic
}

// parseTrailingQualifiers consumes `const`, `noexcept`/`noexcept(expr)`,
// `override`/`final`, and a trailing-return-type `-> T`, updating spec
// in place and returning the trailing return type handle (Nil if
// absent).
func (p *Parser) parseTrailingQualifiers(spec *declSpecifiers) ast.Handle {
	for {
		switch {
		case p.acceptKeyword("const"):
			spec.Const = true
		case p.acceptKeyword("noexcept"):
			if p.acceptPunct("(") {
				p.parseExpression()
				p.expectPunct(")")
			}
		case p.acceptKeyword("override"), p.acceptKeyword("final"):
		case p.acceptPunct("->"):
			return p.parseTypeSpecifier()
		default:
			return ast.Nil
		}
	}
}

// parseFunctionBody parses either a `{ ... }` definition, a bare `;`
// declaration, or `= default;`/`= delete;`/`= 0;`, returning the body
// handle (Nil when there is none to generate).
func (p *Parser) parseFunctionBody() ast.Handle {
	switch {
	case p.atPunct("{"):
		return p.parseBlock()
	case p.acceptPunct("="):
		p.advance() // default / delete / 0
		p.expectPunct(";")
		return ast.Nil
	default:
		p.expectPunct(";")
		return ast.Nil
	}
}

// finishFunctionDecl parses the parameter list, trailing qualifiers and
// body/declaration tail shared by every function form (free functions,
// member functions, constructors/destructors/conversion operators) and
// fills out the remaining FunctionDecl fields.
func (p *Parser) finishFunctionDecl(fn *ast.FunctionDecl, spec declSpecifiers) *ast.FunctionDecl {
	params, variadic := p.parseParameterList()
	fn.Params = params
	fn.IsVariadic = variadic

	if trailingReturn := p.parseTrailingQualifiers(&spec); trailingReturn != ast.Nil {
		fn.ReturnType = trailingReturn
	}
	fn.IsConst = spec.Const
	fn.IsInline = fn.IsInline || spec.IsInline
	fn.IsConstexpr = fn.IsConstexpr || spec.IsConstexpr
	fn.IsConsteval = fn.IsConsteval || spec.IsConsteval
	fn.IsStatic = fn.IsStatic || spec.IsStatic
	fn.IsVirtual = fn.IsVirtual || spec.IsVirtual

	fn.Body = p.parseFunctionBody()
	return fn
}
