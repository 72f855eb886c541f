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
	"github.com/cxxfe/cxxfe/cxx/types"
)

// declSpecifiers accumulates the storage-class, cv, and other prefix
// keywords spec.md 4.4's second bullet assigns to the parser's policy.
// Calling-convention and attribute keywords are recognized and
// discarded here (ABI-neutral in this front end's IR) rather than
// carried on TypeSpecifier, which has no field for them.
type declSpecifiers struct {
	IsStatic    bool
	IsExtern    bool
	IsInline    bool
	IsConstexpr bool
	IsConsteval bool
	IsConstinit bool
	IsVirtual   bool
	IsMutable   bool
	IsFriend    bool
	IsExplicit  bool
	IsTypedef   bool
	Const       bool
	Volatile    bool
}

var callingConventionKeywords = map[string]bool{
	"__cdecl": true, "__stdcall": true, "__fastcall": true, "__vectorcall": true, "__thiscall": true,
}

var storageKeywords = map[string]bool{
	"static": true, "extern": true, "inline": true, "constexpr": true, "consteval": true,
	"constinit": true, "virtual": true, "mutable": true, "friend": true, "explicit": true, "typedef": true,
}

// parseDeclSpecifiers consumes every recognized prefix keyword,
// attribute, and calling-convention token in any order, the way a C++
// declaration may freely interleave them (`static constexpr inline`,
// `explicit virtual`, etc).
func (p *Parser) parseDeclSpecifiers() declSpecifiers {
	var spec declSpecifiers
	for {
		switch {
		case p.atPunct("[[") :
			p.skipBracketAttribute()
		case p.atKeyword("__attribute__"):
			p.skipGNUAttribute()
		case p.peek().Kind == lexer.Keyword && callingConventionKeywords[p.peek().Text]:
			p.advance()
		case p.atKeyword("const"):
			p.advance()
			spec.Const = true
		case p.atKeyword("volatile"):
			p.advance()
			spec.Volatile = true
		case p.peek().Kind == lexer.Keyword && storageKeywords[p.peek().Text]:
			p.applyStorageKeyword(&spec, p.advance().Text)
		default:
			return spec
		}
	}
}

func (p *Parser) applyStorageKeyword(spec *declSpecifiers, text string) {
	switch text {
	case "static":
		spec.IsStatic = true
	case "extern":
		spec.IsExtern = true
	case "inline":
		spec.IsInline = true
	case "constexpr":
		spec.IsConstexpr = true
	case "consteval":
		spec.IsConsteval = true
	case "constinit":
		spec.IsConstinit = true
	case "virtual":
		spec.IsVirtual = true
	case "mutable":
		spec.IsMutable = true
	case "friend":
		spec.IsFriend = true
	case "explicit":
		spec.IsExplicit = true
	case "typedef":
		spec.IsTypedef = true
	}
}

// skipBracketAttribute consumes a `[[ ... ]]` C++11 attribute, which
// carries no semantic weight in this IR.
func (p *Parser) skipBracketAttribute() {
	p.advance() // "[["
	depth := 1
	for depth > 0 && !p.atEOF() {
		switch {
		case p.atPunct("[["):
			depth++
			p.advance()
		case p.atPunct("]]"):
			depth--
			p.advance()
		default:
			p.advance()
		}
	}
}

// skipGNUAttribute consumes `__attribute__((...))`, balancing the
// inner parens.
func (p *Parser) skipGNUAttribute() {
	p.advance() // __attribute__
	if !p.acceptPunct("(") {
		return
	}
	depth := 1
	for depth > 0 && !p.atEOF() {
		switch {
		case p.atPunct("("):
			depth++
			p.advance()
		case p.atPunct(")"):
			depth--
			p.advance()
		default:
			p.advance()
		}
	}
}

// parseTypeSpecifier parses a base type name, an optional
// `<template-args>` list, any number of `*` pointer levels, an
// optional `&`/`&&` reference, and an optional `[extent]` array
// suffix — then, if the base name is a known class-template pattern,
// triggers instantiation and rewrites Name to the canonical
// instantiated name (spec.md 4.4's "triggering ... instantiation when
// a use is encountered", 4.5.4).
func (p *Parser) parseTypeSpecifier() ast.Handle {
	spec := p.parseDeclSpecifiers()
	tok := p.peek()

	name := p.parseTypeName()
	out := &ast.TypeSpecifier{Name: name, ArrayExtent: -1, Const: spec.Const, Volatile: spec.Volatile}
	out.Token = tok

	if p.atPunct("<") {
		out.TemplateArgs = p.parseTemplateArgumentList()
	}

	for p.acceptPunct("*") {
		out.PointerDepth++
	}
	switch {
	case p.acceptPunct("&&"):
		out.Reference = ast.RValueReference
	case p.acceptPunct("&"):
		out.Reference = ast.LValueReference
	}
	if p.acceptPunct("[") {
		if p.atKind(lexer.NumericLiteral) {
			out.ArrayExtent = parseIntLiteral(p.advance().Text)
		} else {
			out.ArrayExtent = 0
		}
		p.expectPunct("]")
	}

	h := p.arena.Add(out)
	if len(out.TemplateArgs) > 0 {
		h = p.instantiateTemplateIdTypeSpecifier(h)
	}
	return h
}

// parseTypeName reads a possibly-qualified type name (`ns::Name`,
// `::Name`, or a bare `Name`) and returns its final component; the
// namespace path itself is folded away here since TypeSpecifier, like
// the rest of this tree, only keeps the innermost name (spec.md 3.2
// names the symbol table, not the type registry, as the owner of
// qualified lookup).
func (p *Parser) parseTypeName() strings.Handle {
	p.acceptPunct("::")
	name, _ := p.expectIdentifier()
	for p.atPunct("::") {
		p.advance()
		name, _ = p.expectIdentifier()
	}
	return name
}

// parseTemplateArgumentList parses `<arg, arg, ...>`, splitting a `>>`
// closer into two `>` tokens via the cursor's one-shot injector so
// nested template-ids (`Box<Box<int>>`) parse without a separate
// tokenizer mode (spec.md 4.4's second paragraph).
func (p *Parser) parseTemplateArgumentList() []ast.Handle {
	p.advance() // "<"
	var args []ast.Handle
	for !p.closesTemplateArgumentList() {
		if len(args) > 0 {
			p.expectPunct(",")
		}
		args = append(args, p.parseTemplateArgument())
	}
	p.consumeTemplateArgumentListCloser()
	return args
}

// closesTemplateArgumentList reports whether the next token ends the
// argument list, without consuming it: either a literal `>` or a `>>`
// that will be split by consumeTemplateArgumentListCloser.
func (p *Parser) closesTemplateArgumentList() bool {
	return p.atPunct(">") || p.atPunct(">>") || p.atPunct(">=") || p.atPunct(">>=")
}

// consumeTemplateArgumentListCloser consumes one `>` worth of closer.
// A `>>` (or `>>=`) is split: one `>` is consumed now, the remainder
// is pushed back via Cursor.Inject so the enclosing argument list (if
// any) sees its own `>` next.
func (p *Parser) consumeTemplateArgumentListCloser() {
	tok := p.advance()
	switch tok.Text {
	case ">":
		return
	case ">>":
		p.injectPunct(tok, ">")
	case ">=":
		p.injectPunct(tok, "=")
	case ">>=":
		p.injectPunct(tok, ">=")
	}
}

func (p *Parser) injectPunct(like lexer.Token, text string) {
	p.cursor.Inject(lexer.Token{Kind: lexer.Punctuation, Text: text, Line: like.Line, Column: like.Column + 1, FileIndex: like.FileIndex})
}

// parseTemplateArgument parses one template argument: a type (the
// common case) or, when the leading token is a numeric/bool literal,
// a non-type value expression wrapped so the caller can tell the two
// apart by node kind (*ast.TypeSpecifier vs ast.Expr).
func (p *Parser) parseTemplateArgument() ast.Handle {
	if p.atKind(lexer.NumericLiteral) || p.atKeyword("true") || p.atKeyword("false") {
		return p.arena.Add(p.parseConditionalExpression())
	}
	return p.parseTypeSpecifier()
}

func parseIntLiteral(text string) int {
	n := 0
	for _, r := range text {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
	}
	return n
}

// instantiateTemplateIdTypeSpecifier checks whether spec's base name
// is a registered class-template pattern; if so it resolves the
// argument list against the type registry, instantiates (or fetches
// the cached instantiation of) the pattern, and rewrites spec.Name to
// the canonical `Name$<hash>` the registry filed it under — the same
// "Otherwise return a copy" / canonical-rename convention
// cxx/templates.TypeSubstitutor uses at substitution time.
func (p *Parser) instantiateTemplateIdTypeSpecifier(h ast.Handle) ast.Handle {
	spec := p.arena.Get(h).(*ast.TypeSpecifier)
	if p.inst == nil {
		return h
	}
	pattern, ok := p.structPatterns[spec.Name]
	if !ok {
		return h
	}
	args := make([]types.TemplateArgument, 0, len(spec.TemplateArgs))
	for _, argHandle := range spec.TemplateArgs {
		args = append(args, p.resolveTemplateArgument(argHandle))
	}
	idx, err := p.inst.InstantiateStruct(pattern, args, spec.Token)
	if err != nil {
		p.errorf(spec.Token, "%s", err.Error())
		return h
	}
	out := *spec
	out.Name = p.reg.Get(idx).Name
	out.TemplateArgs = nil
	return p.arena.Add(&out)
}

func (p *Parser) resolveTemplateArgument(h ast.Handle) types.TemplateArgument {
	if lit, ok := p.arena.Get(h).(*ast.NumericLiteral); ok {
		return types.TemplateArgument{Kind: types.ValueArgument, Value: lit.Int}
	}
	spec, ok := p.arena.Get(h).(*ast.TypeSpecifier)
	if !ok {
		return types.TemplateArgument{}
	}
	idx, _ := p.reg.FindByName(spec.Name)
	ref := types.NotReference
	switch spec.Reference {
	case ast.LValueReference:
		ref = types.LValueReference
	case ast.RValueReference:
		ref = types.RValueReference
	}
	return types.TemplateArgument{Kind: types.TypeArgument, Type: idx, PointerDepth: spec.PointerDepth, Reference: ref, ArrayExtent: spec.ArrayExtent}
}
