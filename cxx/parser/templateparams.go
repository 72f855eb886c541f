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
)

// parseTemplateHeader parses `template < params >` and returns the
// parsed parameter list, or (nil, false) if the next token isn't
// "template" at all (the common case of a non-template declaration).
func (p *Parser) parseTemplateHeader() ([]ast.TemplateParam, bool) {
	if !p.acceptKeyword("template") {
		return nil, false
	}
	p.expectPunct("<")
	var params []ast.TemplateParam
	for !p.closesTemplateArgumentList() {
		if len(params) > 0 {
			p.expectPunct(",")
		}
		params = append(params, p.parseTemplateParam())
	}
	p.consumeTemplateArgumentListCloser()
	return params, true
}

// parseTemplateParam parses one entry of a template-parameter-list: a
// type parameter (`class T`, `typename T`, optionally constrained by a
// concept name in place of the keyword: `Integral T`), a pack
// (`class... Ts`), or a non-type parameter (`int N`), each with an
// optional default.
func (p *Parser) parseTemplateParam() ast.TemplateParam {
	var param ast.TemplateParam
	switch {
	case p.acceptKeyword("class") || p.acceptKeyword("typename"):
		param.IsType = true
	case p.atKind(lexer.Identifier):
		// A concept name used directly as the introducer, e.g.
		// `template<Integral T> ...` (C++20 abbreviated constraint).
		constraint, _ := p.expectIdentifier()
		param.IsType = true
		param.Constraint = constraint
	default:
		param.Type = p.parseTypeSpecifier()
	}

	if p.acceptPunct("...") {
		param.IsPack = true
	}

	if p.atKind(lexer.Identifier) {
		param.Name, _ = p.expectIdentifier()
	}

	if param.IsType && p.acceptPunct("=") {
		param.Default = p.parseTypeSpecifier()
	} else if !param.IsType && p.acceptPunct("=") {
		param.Default = p.arena.Add(p.parseConditionalExpression())
	}
	return param
}
