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
	"strconv"

	"github.com/cxxfe/cxxfe/cxx/ast"
	"github.com/cxxfe/cxxfe/cxx/lexer"
	"github.com/cxxfe/cxxfe/cxx/strings"
	"github.com/cxxfe/cxxfe/cxx/types"
)

// binaryPrecedence assigns each binary operator spelling its C++
// precedence level, highest number binding tightest. Assignment and
// the ternary are handled by their own functions rather than this
// table, matching how most precedence-climbing parsers carve those two
// out (they are right-associative and, for `?:`, not left-recursive).
var binaryPrecedence = map[string]int{
	"||": 1,
	"&&": 2,
	"|":  3,
	"^":  4,
	"&":  5,
	"==": 6, "!=": 6,
	"<": 7, ">": 7, "<=": 7, ">=": 7,
	"<<": 8, ">>": 8,
	"+": 9, "-": 9,
	"*": 10, "/": 10, "%": 10,
}

var compoundAssignOps = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"&=": true, "|=": true, "^=": true, "<<=": true, ">>=": true,
}

// parseExpression parses a full assignment-level expression, the
// entry point used everywhere an expression is expected (statement
// bodies, initializers, call arguments).
func (p *Parser) parseExpression() ast.Expr {
	return p.parseAssignmentExpression()
}

// parseAssignmentExpression implements the right-associative
// assignment/compound-assignment operators sitting just below the
// conditional expression in the C++ grammar.
func (p *Parser) parseAssignmentExpression() ast.Expr {
	lhs := p.parseConditionalExpression()
	tok := p.peek()
	if tok.Kind != lexer.Punctuation || !compoundAssignOps[tok.Text] {
		return lhs
	}
	p.advance()
	rhs := p.parseAssignmentExpression()
	if tok.Text == "=" {
		return &ast.BinaryOp{Op: "=", Left: lhs, Right: rhs}
	}
	return &ast.CompoundAssign{Op: tok.Text, Left: lhs, Right: rhs}
}

// parseConditionalExpression parses `cond ? then : else`, falling
// through to the binary-operator chain when no `?` follows.
func (p *Parser) parseConditionalExpression() ast.Expr {
	cond := p.parseBinaryExpression(1)
	if !p.acceptPunct("?") {
		return cond
	}
	then := p.parseAssignmentExpression()
	p.expectPunct(":")
	els := p.parseConditionalExpression()
	return &ast.TernaryOp{Cond: cond, Then: then, Else: els}
}

// parseBinaryExpression is a standard precedence-climbing loop: it
// parses a unary expression, then repeatedly consumes any binary
// operator whose precedence is at least minPrec, recursing with
// minPrec+1 for the right-hand side (left-associative).
func (p *Parser) parseBinaryExpression(minPrec int) ast.Expr {
	lhs := p.parseUnaryExpression()
	for {
		tok := p.peek()
		if tok.Kind != lexer.Punctuation {
			return lhs
		}
		prec, ok := binaryPrecedence[tok.Text]
		if !ok || prec < minPrec {
			return lhs
		}
		p.advance()
		rhs := p.parseBinaryExpression(prec + 1)
		lhs = &ast.BinaryOp{Op: tok.Text, Left: lhs, Right: rhs}
	}
}

var prefixUnaryOps = map[string]bool{
	"+": true, "-": true, "!": true, "~": true, "*": true, "&": true, "++": true, "--": true,
}

// parseUnaryExpression handles prefix operators, sizeof/alignof,
// noexcept, the four named casts plus C-style casts, new/delete, and
// otherwise falls through to a postfix expression.
func (p *Parser) parseUnaryExpression() ast.Expr {
	tok := p.peek()
	switch {
	case tok.Kind == lexer.Punctuation && prefixUnaryOps[tok.Text]:
		p.advance()
		operand := p.parseUnaryExpression()
		return &ast.UnaryOp{Op: tok.Text, Operand: operand}
	case p.atKeyword("sizeof"):
		return p.parseSizeofExpression()
	case p.atKeyword("alignof") || p.atKeyword("__alignof"):
		return p.parseAlignofExpression()
	case p.atKeyword("noexcept"):
		p.advance()
		p.expectPunct("(")
		operand := p.parseExpression()
		p.expectPunct(")")
		return &ast.NoexceptExpression{Operand: operand}
	case p.atKeyword("static_cast"):
		return p.parseNamedCast(ast.StaticCast)
	case p.atKeyword("dynamic_cast"):
		return p.parseNamedCast(ast.DynamicCast)
	case p.atKeyword("const_cast"):
		return p.parseNamedCast(ast.ConstCast)
	case p.atKeyword("reinterpret_cast"):
		return p.parseNamedCast(ast.ReinterpretCast)
	case p.atKeyword("new"):
		return p.parseNewExpression()
	case p.atKeyword("delete"):
		return p.parseDeleteExpression()
	default:
		return p.parsePostfixExpression()
	}
}

func (p *Parser) parseSizeofExpression() ast.Expr {
	p.advance() // sizeof
	if p.atPunct("(") {
		sp := p.save()
		p.advance()
		if typeHandle, ok := p.tryParseTypeInParens(); ok {
			return &ast.SizeofExpression{Kind: ast.SizeofType, Type: typeHandle}
		}
		p.restore(sp)
	}
	operand := p.parseUnaryExpression()
	return &ast.SizeofExpression{Kind: ast.SizeofExpr, Operand: operand}
}

func (p *Parser) parseAlignofExpression() ast.Expr {
	p.advance()
	p.expectPunct("(")
	typeHandle := p.parseTypeSpecifier()
	p.expectPunct(")")
	return &ast.SizeofExpression{Kind: ast.AlignofType, Type: typeHandle}
}

// tryParseTypeInParens attempts `(` type-specifier `)`; the caller has
// already consumed the opening paren. Used by sizeof, where `(expr)`
// and `(type)` are both grammatically valid and only one commits.
func (p *Parser) tryParseTypeInParens() (ast.Handle, bool) {
	if !p.looksLikeTypeName() {
		return ast.Nil, false
	}
	h := p.parseTypeSpecifier()
	if !p.acceptPunct(")") {
		return ast.Nil, false
	}
	return h, true
}

// looksLikeTypeName is a shallow heuristic: the next token is an
// identifier naming a known type, a fundamental-type keyword, or a
// cv-qualifier/storage keyword that can only begin a type-id in this
// position. Real C++ disambiguation needs full name lookup; this
// front end's parser has the type registry in hand, so it uses that
// directly rather than guessing from spelling alone.
func (p *Parser) looksLikeTypeName() bool {
	tok := p.peek()
	if tok.Kind == lexer.Keyword {
		switch tok.Text {
		case "const", "volatile", "struct", "class", "union", "enum",
			"unsigned", "signed", "int", "char", "short", "long", "float",
			"double", "bool", "void", "auto":
			return true
		}
		return false
	}
	if tok.Kind != lexer.Identifier {
		return false
	}
	_, ok := p.reg.FindByName(p.interner.Intern(tok.Text))
	return ok
}

func (p *Parser) parseNamedCast(kind ast.CastKind) ast.Expr {
	p.advance()
	p.expectPunct("<")
	typeHandle := p.parseTypeSpecifier()
	p.consumeTemplateArgumentListCloser()
	p.expectPunct("(")
	operand := p.parseExpression()
	p.expectPunct(")")
	return &ast.CastExpression{Kind: kind, Type: typeHandle, Operand: operand}
}

func (p *Parser) parseNewExpression() ast.Expr {
	p.advance() // new
	typeHandle := p.parseTypeSpecifier()
	var extent ast.Expr
	if p.acceptPunct("[") {
		extent = p.parseExpression()
		p.expectPunct("]")
	}
	var args []ast.Expr
	if p.acceptPunct("(") {
		args = p.parseExpressionList(")")
		p.expectPunct(")")
	}
	return &ast.NewExpression{Type: typeHandle, Args: args, ArrayExtent: extent}
}

func (p *Parser) parseDeleteExpression() ast.Expr {
	p.advance() // delete
	isArray := p.acceptPunct("[")
	if isArray {
		p.expectPunct("]")
	}
	operand := p.parseUnaryExpression()
	return &ast.DeleteExpression{Operand: operand, IsArray: isArray}
}

// parsePostfixExpression parses a primary expression, then any number
// of trailing `[]`, `()`, `.`/`->` (member access or member call),
// `.*`/`->*`, and postfix `++`/`--`.
func (p *Parser) parsePostfixExpression() ast.Expr {
	e := p.parsePrimaryExpression()
	for {
		switch {
		case p.acceptPunct("["):
			idx := p.parseExpression()
			p.expectPunct("]")
			e = &ast.ArraySubscript{Array: e, Index: idx}
		case p.acceptPunct("("):
			args := p.parseExpressionList(")")
			p.expectPunct(")")
			e = &ast.Call{Callee: e, Args: args}
		case p.atPunct(".") || p.atPunct("->"):
			e = p.parseMemberAccessOrCall(e)
		case p.acceptPunct("++"):
			e = &ast.UnaryOp{Op: "++", Operand: e, Postfix: true}
		case p.acceptPunct("--"):
			e = &ast.UnaryOp{Op: "--", Operand: e, Postfix: true}
		default:
			return e
		}
	}
}

func (p *Parser) parseMemberAccessOrCall(object ast.Expr) ast.Expr {
	tok := p.advance() // "." or "->"
	arrow := tok.Text == "->"
	if p.acceptPunct("*") {
		member := p.parseUnaryExpression()
		return &ast.PointerToMemberAccess{Object: object, Member: member, Arrow: arrow}
	}
	if p.atPunct("~") {
		p.advance()
		typeHandle := p.parseTypeSpecifier()
		p.expectPunct("(")
		p.expectPunct(")")
		return &ast.PseudoDestructorCall{Object: object, Type: typeHandle}
	}
	name, _ := p.expectIdentifier()
	if p.acceptPunct("(") {
		args := p.parseExpressionList(")")
		p.expectPunct(")")
		return &ast.MemberCall{Object: object, Method: name, Args: args, Arrow: arrow}
	}
	return &ast.MemberAccess{Object: object, Member: name, Arrow: arrow}
}

// parseExpressionList parses a comma-separated list of assignment
// expressions up to (but not consuming) the closer, for call
// arguments and constructor-call argument lists.
func (p *Parser) parseExpressionList(closer string) []ast.Expr {
	var args []ast.Expr
	for !p.atPunct(closer) {
		if len(args) > 0 {
			p.expectPunct(",")
		}
		if p.acceptPunct("...") {
			args = append(args, &ast.PackExpansion{Pattern: p.parseAssignmentExpression()})
			continue
		}
		args = append(args, p.parseAssignmentExpression())
	}
	return args
}

// parsePrimaryExpression parses literals, identifiers (plain,
// qualified, or a constructor-call/template-id use), parenthesized
// expressions, braced initializer lists, and lambda expressions.
func (p *Parser) parsePrimaryExpression() ast.Expr {
	tok := p.peek()
	switch {
	case tok.Kind == lexer.NumericLiteral:
		p.advance()
		return parseNumericLiteral(tok)
	case tok.Kind == lexer.StringLiteral:
		p.advance()
		return &ast.StringLiteral{Value: p.interner.Intern(tok.Text)}
	case p.atKeyword("true"):
		p.advance()
		return &ast.BoolLiteral{Value: true}
	case p.atKeyword("false"):
		p.advance()
		return &ast.BoolLiteral{Value: false}
	case p.atPunct("("):
		p.advance()
		e := p.parseExpression()
		p.expectPunct(")")
		return e
	case p.atPunct("{"):
		return p.parseInitializerList()
	case p.atPunct("["):
		return p.parseLambdaExpression()
	case p.atKeyword("decltype"):
		p.advance()
		p.expectPunct("(")
		operand := p.parseExpression()
		p.expectPunct(")")
		return &ast.DecltypeExpression{Operand: operand}
	case tok.Kind == lexer.Identifier || tok.Kind == lexer.Keyword:
		return p.parseIdentifierOrConstructorCall()
	default:
		p.errorf(tok, "expected expression, found %q", tok.Text)
		p.advance()
		return &ast.Identifier{Name: strings.Invalid}
	}
}

// parseIdentifierOrConstructorCall disambiguates a bare/qualified
// identifier from `Type(args)`/`Type{args}` (a constructor call) and
// from `Type<Args>(...)` (an explicit function-template call), since
// all three start the same way.
func (p *Parser) parseIdentifierOrConstructorCall() ast.Expr {
	var path []strings.Handle
	name, tok := p.expectIdentifier()
	for p.atPunct("::") {
		p.advance()
		path = append(path, name)
		name, _ = p.expectIdentifier()
	}

	var templateArgs []ast.Handle
	if p.atPunct("<") {
		sp := p.save()
		args := p.parseTemplateArgumentList()
		switch {
		case p.atPunct("("):
			templateArgs = args
		case len(path) == 0 && p.varPatterns[name] != nil:
			// A variable-template reference (`pi<double>`), not a call:
			// instantiate immediately since there's no further use site
			// that would trigger it (spec.md 4.5.4).
			if instantiated, ok := p.instantiateVariableTemplateName(name, args, tok); ok {
				name = instantiated
			}
		default:
			p.restore(sp)
		}
	}

	if _, ok := p.reg.FindByName(name); ok && (p.atPunct("(") || p.atPunct("{")) && len(path) == 0 {
		braced := p.atPunct("{")
		closer := ")"
		if braced {
			closer = "}"
		}
		p.advance()
		args := p.parseExpressionList(closer)
		p.expectPunct(closer)
		typeHandle := p.arena.Add(&ast.TypeSpecifier{Name: name, ArrayExtent: -1})
		return &ast.ConstructorCall{Type: typeHandle, Args: args, Braced: braced}
	}

	if len(path) == 0 && len(templateArgs) > 0 {
		if instantiated, ok := p.instantiateFunctionTemplateName(name, templateArgs, tok); ok {
			name = instantiated
		}
	}

	var callee ast.Expr
	if len(path) == 0 {
		callee = &ast.Identifier{Name: name}
	} else {
		callee = &ast.QualifiedIdentifier{Path: path, Name: name}
	}
	if p.acceptPunct("(") {
		args := p.parseExpressionList(")")
		p.expectPunct(")")
		return &ast.Call{Callee: callee, Args: args, TemplateArgs: templateArgs}
	}
	return callee
}

// instantiateFunctionTemplateName resolves name as a function-template
// pattern and, if it is one, instantiates it with explicit template
// arguments and returns the canonical `name$<hash>` it was filed under
// (spec.md 4.5.4's "assign a canonical instantiated name", mirrored
// here from instantiateTemplateIdTypeSpecifier's class-template
// handling). Reports a diagnostic and returns ok=false on failure, so
// the caller falls back to the call's unqualified name.
func (p *Parser) instantiateFunctionTemplateName(name strings.Handle, templateArgs []ast.Handle, tok lexer.Token) (strings.Handle, bool) {
	if p.inst == nil {
		return name, false
	}
	pattern, ok := p.funcPatterns[name]
	if !ok {
		return name, false
	}
	args := make([]types.TemplateArgument, 0, len(templateArgs))
	for _, argHandle := range templateArgs {
		args = append(args, p.resolveTemplateArgument(argHandle))
	}
	h, err := p.inst.InstantiateFunction(pattern, args, tok)
	if err != nil {
		p.errorf(tok, "%s", err.Error())
		return name, false
	}
	fn, ok := p.arena.Get(h).(*ast.FunctionDecl)
	if !ok {
		return name, false
	}
	return fn.Name, true
}

// instantiateVariableTemplateName is instantiateFunctionTemplateName's
// variable-template counterpart, triggered at a bare `Name<Args>`
// reference rather than a call.
func (p *Parser) instantiateVariableTemplateName(name strings.Handle, templateArgs []ast.Handle, tok lexer.Token) (strings.Handle, bool) {
	if p.inst == nil {
		return name, false
	}
	pattern, ok := p.varPatterns[name]
	if !ok {
		return name, false
	}
	args := make([]types.TemplateArgument, 0, len(templateArgs))
	for _, argHandle := range templateArgs {
		args = append(args, p.resolveTemplateArgument(argHandle))
	}
	h, err := p.inst.InstantiateVariable(pattern, args, tok)
	if err != nil {
		p.errorf(tok, "%s", err.Error())
		return name, false
	}
	v, ok := p.arena.Get(h).(*ast.VarDecl)
	if !ok {
		return name, false
	}
	return v.Name, true
}

func (p *Parser) parseInitializerList() ast.Expr {
	p.advance() // "{"
	var entries []ast.InitializerEntry
	for !p.atPunct("}") {
		if len(entries) > 0 {
			p.expectPunct(",")
		}
		if p.atPunct("}") {
			break
		}
		var designator strings.Handle
		if p.acceptPunct(".") {
			designator, _ = p.expectIdentifier()
			p.expectPunct("=")
		}
		entries = append(entries, ast.InitializerEntry{Designator: designator, Value: p.parseAssignmentExpression()})
	}
	p.expectPunct("}")
	return &ast.InitializerList{Entries: entries}
}

func (p *Parser) parseLambdaExpression() ast.Expr {
	p.advance() // "["
	var captures []ast.Capture
	for !p.atPunct("]") {
		if len(captures) > 0 {
			p.expectPunct(",")
		}
		captures = append(captures, p.parseLambdaCapture())
	}
	p.expectPunct("]")

	var params []ast.Handle
	if p.acceptPunct("(") {
		for !p.atPunct(")") {
			if len(params) > 0 {
				p.expectPunct(",")
			}
			params = append(params, p.parseParameter())
		}
		p.expectPunct(")")
	}
	for p.acceptKeyword("mutable") || p.atKeyword("noexcept") {
		if p.acceptKeyword("noexcept") && p.acceptPunct("(") {
			p.parseExpression()
			p.expectPunct(")")
		}
	}
	body := p.parseBlock()
	p.lambdaCounter++
	return &ast.LambdaExpression{Captures: captures, Params: params, Body: body, ID: p.lambdaCounter}
}

func (p *Parser) parseLambdaCapture() ast.Capture {
	switch {
	case p.acceptPunct("&"):
		if p.atKind(lexer.Identifier) {
			name, _ := p.expectIdentifier()
			return ast.Capture{Name: name, ByRef: true}
		}
		return ast.Capture{ByRef: true}
	case p.acceptPunct("="):
		return ast.Capture{}
	case p.acceptPunct("*"):
		p.expectPunct("this")
		return ast.Capture{StarThis: true}
	case p.atKeyword("this"):
		p.advance()
		return ast.Capture{This: true}
	default:
		name, _ := p.expectIdentifier()
		return ast.Capture{Name: name}
	}
}

func parseNumericLiteral(tok lexer.Token) ast.Expr {
	text := tok.Text
	isUnsigned := false
	for len(text) > 0 {
		last := text[len(text)-1]
		if last == 'u' || last == 'U' {
			isUnsigned = true
			text = text[:len(text)-1]
			continue
		}
		if last == 'l' || last == 'L' || last == 'f' || last == 'F' {
			text = text[:len(text)-1]
			continue
		}
		break
	}
	if isFloatLiteral(text) {
		f, _ := strconv.ParseFloat(text, 64)
		return &ast.NumericLiteral{IsFloat: true, Float: f}
	}
	n, _ := strconv.ParseInt(text, 0, 64)
	return &ast.NumericLiteral{Int: n, IsUnsigned: isUnsigned}
}

func isFloatLiteral(text string) bool {
	for _, r := range text {
		if r == '.' || r == 'e' || r == 'E' {
			return true
		}
	}
	return false
}
