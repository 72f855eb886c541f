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

// parseBlock parses `{ stmts... }`, pushing and popping a block scope
// on the symbol table so names declared inside don't leak to the
// enclosing scope (spec.md 3.4).
func (p *Parser) parseBlock() ast.Handle {
	tok := p.expectPunct("{")
	if p.symtab != nil {
		p.symtab.PushBlock()
		defer p.symtab.Pop()
	}
	var stmts []ast.Handle
	for !p.atPunct("}") && !p.atEOF() {
		stmts = append(stmts, p.parseStatement())
	}
	p.expectPunct("}")
	out := &ast.Block{Stmts: stmts}
	out.Token = tok
	return p.arena.Add(out)
}

// parseStatement dispatches on the leading keyword/token to one of the
// statement forms of spec.md 3.3, falling through to a declaration or
// an expression statement.
func (p *Parser) parseStatement() ast.Handle {
	switch {
	case p.atPunct("{"):
		return p.parseBlock()
	case p.atKeyword("if"):
		return p.parseIf()
	case p.atKeyword("while"):
		return p.parseWhile()
	case p.atKeyword("do"):
		return p.parseDoWhile()
	case p.atKeyword("for"):
		return p.parseFor()
	case p.atKeyword("switch"):
		return p.parseSwitch()
	case p.atKeyword("break"):
		return p.parseBreak()
	case p.atKeyword("continue"):
		return p.parseContinue()
	case p.atKeyword("goto"):
		return p.parseGoto()
	case p.atKeyword("return"):
		return p.parseReturn()
	case p.atKeyword("try"):
		return p.parseTry()
	case p.atKeyword("throw"):
		return p.parseThrow()
	case p.atKeyword("__try"):
		return p.parseSEHTry()
	case p.atKeyword("__leave"):
		return p.parseSEHLeave()
	case p.atKeyword("using"):
		return p.parseUsing()
	case p.atKeyword("namespace"):
		return p.parseNamespaceAlias()
	case p.atKeyword("typedef"):
		return p.parseTypedef()
	case p.atPunct(";"):
		p.advance()
		return ast.Nil
	default:
		return p.parseDeclarationOrExpressionStatement()
	}
}

func (p *Parser) parseIf() ast.Handle {
	tok := p.advance() // if
	p.expectPunct("(")
	var init ast.Handle
	sp := p.save()
	if maybeInit, ok := p.tryParseInitStatement(); ok {
		init = maybeInit
	} else {
		p.restore(sp)
	}
	cond := p.parseExpression()
	p.expectPunct(")")
	then := p.parseStatement()
	var els ast.Handle
	if p.acceptKeyword("else") {
		els = p.parseStatement()
	}
	out := &ast.If{Init: init, Cond: cond, Then: then, Else: els}
	out.Token = tok
	return p.arena.Add(out)
}

// tryParseInitStatement attempts the optional init-statement of
// `if (init; cond)`: a simple declaration or expression followed by
// `;`. Returns ok=false (leaving the cursor for the caller to restore)
// if no `;` is found before `)`.
func (p *Parser) tryParseInitStatement() (ast.Handle, bool) {
	if p.atPunct(";") {
		return ast.Nil, false
	}
	sp := p.save()
	found := false
	for depth := 0; !p.atEOF(); p.advance() {
		switch {
		case p.atPunct("(") || p.atPunct("{"):
			depth++
		case p.atPunct(")") || p.atPunct("}"):
			depth--
		case p.atPunct(";") && depth == 0:
			found = true
		}
		if found || depth < 0 {
			break
		}
	}
	p.restore(sp)
	if !found {
		return ast.Nil, false
	}
	stmt := p.parseDeclarationOrExpressionStatement()
	return stmt, true
}

func (p *Parser) parseWhile() ast.Handle {
	tok := p.advance()
	p.expectPunct("(")
	cond := p.parseExpression()
	p.expectPunct(")")
	body := p.parseStatement()
	out := &ast.While{Cond: cond, Body: body}
	out.Token = tok
	return p.arena.Add(out)
}

func (p *Parser) parseDoWhile() ast.Handle {
	tok := p.advance() // do
	body := p.parseStatement()
	p.expectKeyword("while")
	p.expectPunct("(")
	cond := p.parseExpression()
	p.expectPunct(")")
	p.expectPunct(";")
	out := &ast.DoWhile{Body: body, Cond: cond}
	out.Token = tok
	return p.arena.Add(out)
}

func (p *Parser) expectKeyword(text string) {
	if !p.acceptKeyword(text) {
		tok := p.peek()
		p.errorf(tok, "expected %q, found %q", text, tok.Text)
	}
}

// parseFor disambiguates a classic C-style for loop from a ranged-for
// by speculatively parsing the init-clause and checking for a `:`.
func (p *Parser) parseFor() ast.Handle {
	tok := p.advance() // for
	p.expectPunct("(")

	sp := p.save()
	if decl, ok := p.tryParseRangedForDecl(); ok {
		rangeExpr := p.parseExpression()
		p.expectPunct(")")
		body := p.parseStatement()
		out := &ast.RangedFor{Decl: decl, Range: rangeExpr, Body: body}
		out.Token = tok
		return p.arena.Add(out)
	}
	p.restore(sp)

	var init ast.Handle
	if !p.atPunct(";") {
		init = p.parseDeclarationOrExpressionStatement()
	} else {
		p.advance()
	}
	var cond ast.Expr
	if !p.atPunct(";") {
		cond = p.parseExpression()
	}
	p.expectPunct(";")
	var post ast.Expr
	if !p.atPunct(")") {
		post = p.parseExpression()
	}
	p.expectPunct(")")
	body := p.parseStatement()
	out := &ast.For{Init: init, Cond: cond, Post: post, Body: body}
	out.Token = tok
	return p.arena.Add(out)
}

// tryParseRangedForDecl attempts `type name :` (the ranged-for
// declarator), returning ok=false if a `:` doesn't directly follow a
// single declared name.
func (p *Parser) tryParseRangedForDecl() (ast.Handle, bool) {
	if !p.looksLikeTypeName() && !p.atKeyword("auto") && !p.atKeyword("const") {
		return ast.Nil, false
	}
	tok := p.peek()
	spec := p.parseDeclSpecifiers()
	typeHandle := p.parseTypeSpecifier()
	if !p.atKind(lexer.Identifier) {
		return ast.Nil, false
	}
	name, _ := p.expectIdentifier()
	if !p.acceptPunct(":") {
		return ast.Nil, false
	}
	out := &ast.VarDecl{Name: name, Type: typeHandle, IsConstexpr: spec.IsConstexpr}
	out.Token = tok
	return p.arena.Add(out), true
}

func (p *Parser) parseSwitch() ast.Handle {
	tok := p.advance() // switch
	p.expectPunct("(")
	cond := p.parseExpression()
	p.expectPunct(")")
	p.expectPunct("{")
	var cases []ast.SwitchCase
	for !p.atPunct("}") && !p.atEOF() {
		cases = append(cases, p.parseSwitchCase())
	}
	p.expectPunct("}")
	out := &ast.Switch{Cond: cond, Cases: cases}
	out.Token = tok
	return p.arena.Add(out)
}

func (p *Parser) parseSwitchCase() ast.SwitchCase {
	var c ast.SwitchCase
	if p.acceptKeyword("case") {
		c.Value = p.parseExpression()
	} else {
		p.expectKeyword("default")
		c.IsDefault = true
	}
	p.expectPunct(":")
	for !p.atKeyword("case") && !p.atKeyword("default") && !p.atPunct("}") && !p.atEOF() {
		c.Stmts = append(c.Stmts, p.parseStatement())
	}
	return c
}

func (p *Parser) parseBreak() ast.Handle {
	tok := p.advance()
	p.expectPunct(";")
	out := &ast.Break{}
	out.Token = tok
	return p.arena.Add(out)
}

func (p *Parser) parseContinue() ast.Handle {
	tok := p.advance()
	p.expectPunct(";")
	out := &ast.Continue{}
	out.Token = tok
	return p.arena.Add(out)
}

func (p *Parser) parseGoto() ast.Handle {
	tok := p.advance() // goto
	label, _ := p.expectIdentifier()
	p.expectPunct(";")
	out := &ast.Goto{Label: label}
	out.Token = tok
	return p.arena.Add(out)
}

func (p *Parser) parseReturn() ast.Handle {
	tok := p.advance() // return
	var value ast.Expr
	if !p.atPunct(";") {
		value = p.parseExpression()
	}
	p.expectPunct(";")
	out := &ast.Return{Value: value}
	out.Token = tok
	return p.arena.Add(out)
}

func (p *Parser) parseTry() ast.Handle {
	tok := p.advance() // try
	body := p.parseBlock()
	var catches []ast.Catch
	for p.acceptKeyword("catch") {
		p.expectPunct("(")
		var decl ast.Handle
		if p.acceptPunct("...") {
			decl = ast.Nil
		} else {
			declTok := p.peek()
			spec := p.parseDeclSpecifiers()
			typeHandle := p.parseTypeSpecifier()
			name := strings.Invalid
			if p.atKind(lexer.Identifier) {
				name, _ = p.expectIdentifier()
			}
			v := &ast.VarDecl{Name: name, Type: typeHandle, IsConstexpr: spec.IsConstexpr}
			v.Token = declTok
			decl = p.arena.Add(v)
		}
		p.expectPunct(")")
		catchBody := p.parseBlock()
		catches = append(catches, ast.Catch{Decl: decl, Body: catchBody})
	}
	out := &ast.Try{Body: body, Catches: catches}
	out.Token = tok
	return p.arena.Add(out)
}

func (p *Parser) parseThrow() ast.Handle {
	tok := p.advance() // throw
	var value ast.Expr
	if !p.atPunct(";") {
		value = p.parseExpression()
	}
	p.expectPunct(";")
	out := &ast.Throw{Value: value}
	out.Token = tok
	return p.arena.Add(out)
}

func (p *Parser) parseSEHTry() ast.Handle {
	tok := p.advance() // __try
	body := p.parseBlock()
	switch {
	case p.acceptKeyword("__except"):
		p.expectPunct("(")
		filter := p.parseExpression()
		p.expectPunct(")")
		handler := p.parseBlock()
		out := &ast.SEHTryExcept{Body: body, Filter: filter, Handler: handler}
		out.Token = tok
		return p.arena.Add(out)
	case p.acceptKeyword("__finally"):
		handler := p.parseBlock()
		out := &ast.SEHTryFinally{Body: body, Handler: handler}
		out.Token = tok
		return p.arena.Add(out)
	default:
		p.errorf(p.peek(), "expected __except or __finally after __try")
		return ast.Nil
	}
}

func (p *Parser) parseSEHLeave() ast.Handle {
	tok := p.advance()
	p.expectPunct(";")
	out := &ast.SEHLeave{}
	out.Token = tok
	return p.arena.Add(out)
}

// parseUsing dispatches among `using namespace ns;`, `using enum E;`,
// and `using ns::name;` / `using Name = Type;`.
func (p *Parser) parseUsing() ast.Handle {
	tok := p.advance() // using
	if p.acceptKeyword("namespace") {
		path := p.parseNamespacePath()
		p.expectPunct(";")
		if p.symtab != nil {
			p.symtab.Current().AddUsingDirective(path)
		}
		out := &ast.UsingDirective{Path: path}
		out.Token = tok
		return p.arena.Add(out)
	}
	if p.acceptKeyword("enum") {
		typeHandle := p.parseTypeSpecifier()
		p.expectPunct(";")
		out := &ast.UsingEnumDeclaration{Type: typeHandle}
		out.Token = tok
		return p.arena.Add(out)
	}

	first, _ := p.expectIdentifier()
	if p.acceptPunct("=") {
		aliased := p.parseTypeSpecifier()
		p.expectPunct(";")
		out := &ast.Typedef{Name: first, Type: aliased}
		out.Token = tok
		h := p.arena.Add(out)
		p.insert(first, h, tok)
		return h
	}

	path := []strings.Handle{first}
	name := first
	for p.atPunct("::") {
		p.advance()
		name, _ = p.expectIdentifier()
		path = append(path, name)
	}
	path = path[:len(path)-1]
	p.expectPunct(";")
	if p.symtab != nil {
		p.symtab.Current().AddUsingDeclaration(path, name)
	}
	out := &ast.UsingDeclaration{Path: path, Name: name}
	out.Token = tok
	return p.arena.Add(out)
}

// parseNamespacePath parses a `::`-separated namespace path used by
// `using namespace a::b;` and namespace aliases.
func (p *Parser) parseNamespacePath() []strings.Handle {
	var path []strings.Handle
	name, _ := p.expectIdentifier()
	path = append(path, name)
	for p.atPunct("::") {
		p.advance()
		name, _ = p.expectIdentifier()
		path = append(path, name)
	}
	return path
}

// parseNamespaceAlias handles the `namespace A = B::C;` statement form
// (a true `namespace ns { ... }` declaration is parsed by decl.go at
// the top level, since it introduces declarations rather than a single
// statement).
func (p *Parser) parseNamespaceAlias() ast.Handle {
	tok := p.advance() // namespace
	alias, _ := p.expectIdentifier()
	p.expectPunct("=")
	path := p.parseNamespacePath()
	p.expectPunct(";")
	if p.symtab != nil {
		p.symtab.Current().AddNamespaceAlias(alias, path)
	}
	out := &ast.NamespaceAlias{Alias: alias, Path: path}
	out.Token = tok
	return p.arena.Add(out)
}

func (p *Parser) parseTypedef() ast.Handle {
	tok := p.advance() // typedef
	typeHandle := p.parseTypeSpecifier()
	name, _ := p.expectIdentifier()
	p.expectPunct(";")
	out := &ast.Typedef{Name: name, Type: typeHandle}
	out.Token = tok
	h := p.arena.Add(out)
	p.insert(name, h, tok)
	return h
}

// parseDeclarationOrExpressionStatement disambiguates a local variable
// declaration (including a structured binding) from an expression
// statement by looking at the leading tokens, then falls back to
// speculative parsing when that's inconclusive.
func (p *Parser) parseDeclarationOrExpressionStatement() ast.Handle {
	if p.atKeyword("auto") && p.peekAheadIsBracket() {
		return p.parseStructuredBinding()
	}
	if p.looksLikeTypeName() || p.atKeyword("const") || p.atKeyword("static") ||
		p.atKeyword("constexpr") || p.atKeyword("constinit") || p.atKeyword("auto") {
		sp := p.save()
		if decl, ok := p.tryParseVarDecl(); ok {
			return decl
		}
		p.restore(sp)
	}
	tok := p.peek()
	expr := p.parseExpression()
	p.expectPunct(";")
	out := &ast.ExpressionStatement{Expr: expr}
	out.Token = tok
	return p.arena.Add(out)
}

// peekAheadIsBracket is a narrow one-token lookahead used only to tell
// `auto [a, b] = ...` (structured binding) apart from `auto x = ...`;
// it does not consume anything.
func (p *Parser) peekAheadIsBracket() bool {
	sp := p.save()
	p.advance() // auto
	is := p.atPunct("[")
	p.restore(sp)
	return is
}

func (p *Parser) parseStructuredBinding() ast.Handle {
	tok := p.advance() // auto
	p.expectPunct("[")
	var elems []ast.StructuredBindingElement
	for !p.atPunct("]") {
		if len(elems) > 0 {
			p.expectPunct(",")
		}
		name, _ := p.expectIdentifier()
		elems = append(elems, ast.StructuredBindingElement{Name: name})
	}
	p.expectPunct("]")
	p.expectPunct("=")
	init := p.parseAssignmentExpression()
	p.expectPunct(";")
	out := &ast.StructuredBinding{Elements: elems, Initializer: init}
	out.Token = tok
	return p.arena.Add(out)
}

// tryParseVarDecl attempts `decl-specifiers type name [= init];`,
// returning ok=false (leaving the cursor for the caller to restore) if
// the tokens after the type don't look like a declarator, so the
// caller can fall back to an expression statement.
func (p *Parser) tryParseVarDecl() (ast.Handle, bool) {
	tok := p.peek()
	spec := p.parseDeclSpecifiers()
	typeHandle := p.parseTypeSpecifier()
	if !p.atKind(lexer.Identifier) {
		return ast.Nil, false
	}
	name, _ := p.expectIdentifier()
	// Direct-initialization syntax `Type name(args);` is ambiguous with a
	// function declaration at block scope; this parser requires `=` or
	// `{}` for local direct-init, the same simplification
	// looksLikeTypeName already makes for the sizeof/cast ambiguity.
	var init ast.Expr
	switch {
	case p.acceptPunct("="):
		init = p.parseAssignmentExpression()
	case p.atPunct("{"):
		init = p.parseInitializerList()
	}
	if !p.atPunct(";") {
		return ast.Nil, false
	}
	p.advance()
	out := &ast.VarDecl{
		Name:        name,
		Type:        typeHandle,
		Initializer: init,
		IsStatic:    spec.IsStatic,
		IsConstexpr: spec.IsConstexpr,
		IsConstinit: spec.IsConstinit,
	}
	out.Token = tok
	h := p.arena.Add(out)
	p.insert(name, h, tok)
	return h, true
}
