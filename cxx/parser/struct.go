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

// parseStructDecl parses a struct/class/union declaration, with or
// without a preceding template header. It owns the policy bullets
// spec.md 4.4 assigns the parser: special-member recognition, the
// `#pragma pack` stack, and (for class templates) registering the
// parsed pattern for later use-triggered instantiation (spec.md 4.5.4).
func (p *Parser) parseStructDecl(templateParams []ast.TemplateParam) ast.Handle {
	tok := p.peek()
	isUnion := p.acceptKeyword("union")
	if !isUnion {
		p.expectKeywordEither("struct", "class")
	}

	p.skipAttributesAndCallingConvention()
	name, _ := p.expectIdentifier()

	var bases []ast.BaseSpecifier
	if p.acceptPunct(":") {
		bases = p.parseBaseSpecifierList()
	}

	isFinal := p.acceptKeyword("final")

	decl := &ast.StructDecl{
		Name:           name,
		IsUnion:        isUnion,
		IsFinal:        isFinal,
		Bases:          bases,
		TemplateParams: templateParams,
		PackAlignment:  p.currentPackAlignment(),
	}
	decl.Token = tok

	if !p.atPunct("{") {
		// Forward declaration: `struct Name;`.
		p.expectPunct(";")
		h := p.arena.Add(decl)
		p.insert(name, h, tok)
		return h
	}

	p.parseStructBody(decl)
	p.expectPunct(";")

	h := p.arena.Add(decl)
	p.insert(name, h, tok)

	if len(templateParams) > 0 {
		p.structPatterns[name] = decl
		return h
	}
	p.registerConcreteStruct(decl, h)
	return h
}

func (p *Parser) expectKeywordEither(a, b string) {
	if p.acceptKeyword(a) || p.acceptKeyword(b) {
		return
	}
	tok := p.peek()
	p.errorf(tok, "expected %q or %q, found %q", a, b, tok.Text)
}

func (p *Parser) skipAttributesAndCallingConvention() {
	for {
		switch {
		case p.atPunct("[["):
			p.skipBracketAttribute()
		case p.atKeyword("__attribute__"):
			p.skipGNUAttribute()
		default:
			return
		}
	}
}

func (p *Parser) parseBaseSpecifierList() []ast.BaseSpecifier {
	var bases []ast.BaseSpecifier
	for {
		access := types.Private
		switch {
		case p.acceptKeyword("public"):
			access = types.Public
		case p.acceptKeyword("protected"):
			access = types.Protected
		case p.acceptKeyword("private"):
			access = types.Private
		}
		p.acceptKeyword("virtual")
		typeHandle := p.parseTypeSpecifier()
		bases = append(bases, ast.BaseSpecifier{Type: typeHandle, Access: int(access)})
		if !p.acceptPunct(",") {
			break
		}
	}
	return bases
}

// parseStructBody parses `{ members... }`, tracking the current access
// specifier (private by default for `class`, handled uniformly here
// since the caller doesn't distinguish class/struct after the keyword
// is consumed) and dispatching each member to a field or a method.
func (p *Parser) parseStructBody(decl *ast.StructDecl) {
	p.expectPunct("{")
	if p.symtab != nil {
		p.symtab.PushBlock()
		defer p.symtab.Pop()
	}
	for !p.atPunct("}") && !p.atEOF() {
		switch {
		case p.atKeyword("public") || p.atKeyword("protected") || p.atKeyword("private"):
			p.advance()
			p.expectPunct(":")
		case p.tryParsePragmaPack():
			decl.PackAlignment = p.currentPackAlignment()
		case p.atKeyword("friend"):
			p.advance()
			p.parseTopLevelDecl()
		case p.atKeyword("enum"):
			p.skipEnumDecl()
		case p.atKeyword("template"):
			templateParams, _ := p.parseTemplateHeader()
			if p.atKeyword("struct") || p.atKeyword("class") || p.atKeyword("union") {
				decl.Members = append(decl.Members, p.parseStructDecl(templateParams))
			} else {
				decl.Members = append(decl.Members, p.parseStructMember(decl.Name, templateParams))
			}
		case p.atPunct(";"):
			p.advance()
		default:
			decl.Members = append(decl.Members, p.parseStructMember(decl.Name, nil))
		}
	}
	p.expectPunct("}")
}

// parseStructMember parses one struct/class member: a constructor,
// destructor, conversion operator, operator overload, ordinary member
// function, or a field declaration, recognizing each the way spec.md
// 4.4's first policy bullet assigns to the parser rather than the
// grammar. templateParams is non-nil when a `template<...>` header
// directly preceded this member (a member function template).
func (p *Parser) parseStructMember(ownerName strings.Handle, templateParams []ast.TemplateParam) ast.Handle {
	tok := p.peek()
	spec := p.parseDeclSpecifiers()

	if p.acceptPunct("~") {
		name, _ := p.expectIdentifier()
		fn := &ast.FunctionDecl{Name: name, IsDestructor: true}
		fn.Token = tok
		out := p.finishFunctionDecl(fn, spec)
		h := p.arena.Add(out)
		p.insert(ownerName, h, tok)
		return h
	}

	if p.atKind(lexer.Identifier) && p.identifierTextEquals(ownerName) && p.peekIsConstructorStart() {
		name, _ := p.expectIdentifier()
		fn := &ast.FunctionDecl{Name: name, IsConstructor: true, TemplateParams: templateParams}
		fn.Token = tok
		out := p.finishFunctionDecl(fn, spec)
		h := p.arena.Add(out)
		p.insert(ownerName, h, tok)
		return h
	}

	if p.acceptKeyword("operator") {
		return p.parseOperatorMember(tok, spec, ownerName)
	}

	returnType := p.parseTypeSpecifier()
	name, _ := p.expectIdentifier()
	if p.atPunct("(") {
		fn := &ast.FunctionDecl{Name: name, ReturnType: returnType, TemplateParams: templateParams}
		fn.Token = tok
		out := p.finishFunctionDecl(fn, spec)
		h := p.arena.Add(out)
		p.insert(ownerName, h, tok)
		return h
	}

	var isBitfield bool
	var bitfieldWidth uint32
	if p.acceptPunct(":") {
		isBitfield = true
		bitfieldWidth = uint32(parseIntLiteral(p.advance().Text))
	}

	var init ast.Expr
	if !isBitfield {
		if p.acceptPunct("=") {
			init = p.parseAssignmentExpression()
		} else if p.atPunct("{") {
			init = p.parseInitializerList()
		}
	}
	p.expectPunct(";")
	out := &ast.VarDecl{
		Name: name, Type: returnType, Initializer: init,
		IsStatic: spec.IsStatic, IsConstexpr: spec.IsConstexpr,
		IsBitfield: isBitfield, BitfieldWidth: bitfieldWidth,
	}
	out.Token = tok
	h := p.arena.Add(out)
	p.insert(name, h, tok)
	return h
}

// parseOperatorMember parses `operator<op>(...)`, including the
// conversion-operator form `operator Type()`, `operator=`, and
// `operator<=>` (whose six synthesized comparisons spec.md 4.4 assigns
// the parser to recognize; here that recognition is recorded on
// OperatorName and left for the IR generator to expand, matching how
// cxx/ir already owns implicit special-member synthesis).
func (p *Parser) parseOperatorMember(tok lexer.Token, spec declSpecifiers, ownerName strings.Handle) ast.Handle {
	if !p.atOperatorOverloadStart() {
		// Conversion operator: `operator Type() const;`.
		returnType := p.parseTypeSpecifier()
		fn := &ast.FunctionDecl{Name: ownerName, ReturnType: returnType, IsConversion: true}
		fn.Token = tok
		out := p.finishFunctionDecl(fn, spec)
		h := p.arena.Add(out)
		p.insert(ownerName, h, tok)
		return h
	}

	opName := p.consumeOperatorSymbol()
	fn := &ast.FunctionDecl{Name: ownerName, OperatorName: opName}
	fn.Token = tok
	out := p.finishFunctionDecl(fn, spec)
	h := p.arena.Add(out)
	p.insert(ownerName, h, tok)
	return h
}

var operatorSymbols = []string{
	"<=>", "==", "!=", "<=", ">=", "<<=", ">>=", "&&", "||", "++", "--", "->*", "->",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<", ">>",
	"=", "+", "-", "*", "/", "%", "&", "|", "^", "~", "!", "<", ">", "[]", "()",
}

// atOperatorOverloadStart reports whether the tokens after `operator`
// begin an operator-overload declarator (`()`, `[]`, or a punctuation
// operator symbol) rather than a conversion-operator's target type.
func (p *Parser) atOperatorOverloadStart() bool {
	return p.atPunct("(") || p.atPunct("[") || p.looksLikeOperatorSymbol()
}

func (p *Parser) looksLikeOperatorSymbol() bool {
	t := p.peek()
	if t.Kind != lexer.Punctuation {
		return false
	}
	for _, s := range operatorSymbols {
		if t.Text == s {
			return true
		}
	}
	return false
}

// consumeOperatorSymbol consumes `operator[]`/`operator()`'s two-token
// spelling or a single operator-punctuation token, and returns its text.
func (p *Parser) consumeOperatorSymbol() string {
	if p.atPunct("[") {
		p.advance()
		p.expectPunct("]")
		return "[]"
	}
	if p.atPunct("(") {
		p.advance()
		p.expectPunct(")")
		return "()"
	}
	tok := p.advance()
	return tok.Text
}

// identifierTextEquals reports whether the next token, if an
// identifier, interns to the same handle as name, without consuming it.
func (p *Parser) identifierTextEquals(name strings.Handle) bool {
	t := p.peek()
	return t.Kind == lexer.Identifier && p.interner.Intern(t.Text) == name
}

// peekIsConstructorStart looks one token past the candidate
// constructor name for `(`, disambiguating a constructor declaration
// from a field or method whose type happens to share the class name
// (e.g. a nested `Name Name;` is nonsensical in C++ so this is safe).
func (p *Parser) peekIsConstructorStart() bool {
	sp := p.save()
	p.advance()
	is := p.atPunct("(")
	p.restore(sp)
	return is
}

// tryParsePragmaPack recognizes `#pragma pack(...)` and applies it to
// ctx's alignment stack, returning true if a pragma was consumed.
// Spec.md 4.4's third policy bullet: the parser itself owns this stack.
func (p *Parser) tryParsePragmaPack() bool {
	if !p.atPunct("#") {
		return false
	}
	sp := p.save()
	p.advance() // #
	if !(p.atKeyword("pragma") || p.identifierTextEquals(p.interner.Intern("pragma"))) {
		p.restore(sp)
		return false
	}
	p.advance()
	if !p.identifierTextEquals(p.interner.Intern("pack")) {
		p.restore(sp)
		return false
	}
	p.advance()
	p.expectPunct("(")
	switch {
	case p.identifierTextEquals(p.interner.Intern("push")):
		p.advance()
		n := 0
		if p.acceptPunct(",") {
			n = parseIntLiteral(p.advance().Text)
		}
		p.ctx.PushPack(n)
		p.packAlignment = append(p.packAlignment, n)
	case p.identifierTextEquals(p.interner.Intern("pop")):
		p.advance()
		p.ctx.PopPack()
		if len(p.packAlignment) > 0 {
			p.packAlignment = p.packAlignment[:len(p.packAlignment)-1]
		}
	case p.atKind(lexer.NumericLiteral):
		n := parseIntLiteral(p.advance().Text)
		p.ctx.PushPack(n)
		p.packAlignment = append(p.packAlignment, n)
	default:
		p.ctx.PushPack(0)
		p.packAlignment = append(p.packAlignment, 0)
	}
	p.expectPunct(")")
	return true
}

// bitfieldStorageUnitBits is the width of the allocation unit adjacent
// bitfield members are packed into (spec.md 4.8's "bitfields at the
// same storage unit are folded into a single combined store"), matching
// a plain `int`'s width as most ABIs the original targets do.
const bitfieldStorageUnitBits = 32

// registerConcreteStruct adds a non-template struct/class/union to the
// type registry so later type-id uses resolve it via FindByName, the
// same entry point a class template's instantiations are filed under
// (spec.md 4.2).
func (p *Parser) registerConcreteStruct(decl *ast.StructDecl, declHandle ast.Handle) types.Index {
	var members []types.Member
	var methods []types.MemberFunction
	var bitUnitOffset, bitCursor uint32
	inBitfieldRun := false
	for _, m := range decl.Members {
		switch node := p.arena.Get(m).(type) {
		case *ast.VarDecl:
			if node.IsBitfield {
				if !inBitfieldRun || bitCursor+node.BitfieldWidth > bitfieldStorageUnitBits {
					bitUnitOffset, bitCursor, inBitfieldRun = 0, 0, true
				}
				members = append(members, types.Member{
					Name:              node.Name,
					Type:              p.resolveTemplateArgument(node.Type).Type,
					SizeInBits:        node.BitfieldWidth,
					ByteOffset:        bitUnitOffset,
					IsBitfield:        true,
					BitfieldWidth:     node.BitfieldWidth,
					BitfieldBitOffset: bitCursor,
				})
				bitCursor += node.BitfieldWidth
				continue
			}
			inBitfieldRun = false
			members = append(members, types.Member{Name: node.Name, Type: p.resolveTemplateArgument(node.Type).Type})
		case *ast.FunctionDecl:
			methods = append(methods, types.MemberFunction{
				Name:          node.Name,
				IsConstructor: node.IsConstructor,
				IsDestructor:  node.IsDestructor,
				IsVirtual:     node.IsVirtual,
				IsStatic:      node.IsStatic,
				FunctionDecl:  m,
			})
		}
	}
	base := types.Struct
	if decl.IsUnion {
		base = types.Union
	}
	structIdx := p.reg.AddStruct(types.StructInfo{
		Members:         members,
		IsUnion:         decl.IsUnion,
		IsFinal:         decl.IsFinal,
		MemberFunctions: methods,
	})
	return p.reg.Add(types.Info{Name: decl.Name, Base: base, StructInfo: structIdx})
}
