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

// Package parser implements the recursive-descent parser of spec.md
// 4.4: bounded lookahead over a lexer.Cursor, a save/restore point that
// rewinds the cursor and the token injector but keeps declaration
// nodes alive in the arena, and the policy decisions the grammar
// itself doesn't encode (special-member recognition, pack-alignment
// pragmas, triggering template instantiation at a use site).
//
// Structurally this mirrors the teacher's gapil/parser package — one
// file per grammar area, small peek/require helpers instead of a
// generated table — adapted from gapil's rune-level core/text/parse
// scanner to the token-level lexer.Cursor this front end is handed by
// an external scanner (spec.md 1's tokenization non-goal).
package parser

import (
	"github.com/cxxfe/cxxfe/cxx/ast"
	"github.com/cxxfe/cxxfe/cxx/compilectx"
	"github.com/cxxfe/cxxfe/cxx/concepts"
	"github.com/cxxfe/cxxfe/cxx/diag"
	"github.com/cxxfe/cxxfe/cxx/lexer"
	"github.com/cxxfe/cxxfe/cxx/strings"
	"github.com/cxxfe/cxxfe/cxx/symbols"
	"github.com/cxxfe/cxxfe/cxx/templates"
	"github.com/cxxfe/cxxfe/cxx/types"
)

// Parser holds everything one translation unit's parse needs: the
// token source, the arena new nodes are appended to, the shared string
// interner, a diagnostics sink, the compile configuration (for the
// #pragma pack stack), and the template machinery the parser drives
// directly when a template-id use is encountered (spec.md 4.4's last
// bullet).
type Parser struct {
	cursor   lexer.Cursor
	arena    *ast.Arena
	interner *strings.Interner
	diags    *diag.Sink
	ctx      *compilectx.Context
	reg      *types.Registry
	queue    *templates.Queue
	members  *templates.LazyMemberRegistry
	inst     *templates.Instantiator
	concepts *concepts.Registry

	// symtab receives every declaration the parser recognizes, in the
	// scope it was written in (spec.md 4.3's insert, driven directly by
	// the parser rather than a separate pass, matching the
	// interner->registry->symbol-table->parser initialization order
	// this front end builds its Context in). May be nil for callers
	// that only want the AST.
	symtab *symbols.Table

	// structPatterns maps a class-template's name to its parsed pattern,
	// populated as `template<...> struct/class Name { ... }` is parsed
	// and consulted whenever a later type-id `Name<Args>` is seen.
	structPatterns map[strings.Handle]*ast.StructDecl

	// funcPatterns and varPatterns are the function- and
	// variable-template analogues of structPatterns, populated as
	// `template<...> ReturnType Name(...)` / `template<...> Type Name =
	// ...` is parsed and consulted at a later call expression or
	// variable reference (spec.md 4.5.4).
	funcPatterns map[strings.Handle]*ast.FunctionDecl
	varPatterns  map[strings.Handle]*ast.VariableTemplateDecl

	// packAlignment tracks the #pragma pack(...) stack (spec.md 4.4's
	// third policy bullet), applied to each StructDecl as it is parsed.
	packAlignment []int

	lambdaCounter int
}

// New returns a Parser reading from cursor and sharing arena/interner/
// diags/ctx/reg with the rest of the compilation. inst, queue and
// members drive template instantiation triggered from type- and
// expression-parsing (spec.md 4.4, 4.5.4); inst may be nil for callers
// (such as tests of a single grammar area) that never reach a
// template-id use. symtab may be nil for callers that don't need
// declarations bound into scope. conceptReg may be nil for callers that
// never reach a `concept` declaration or constrained template parameter.
func New(cursor lexer.Cursor, arena *ast.Arena, interner *strings.Interner, diags *diag.Sink, ctx *compilectx.Context, reg *types.Registry, symtab *symbols.Table, queue *templates.Queue, members *templates.LazyMemberRegistry, inst *templates.Instantiator, conceptReg *concepts.Registry) *Parser {
	return &Parser{
		cursor:         cursor,
		arena:          arena,
		interner:       interner,
		diags:          diags,
		ctx:            ctx,
		reg:            reg,
		symtab:         symtab,
		queue:          queue,
		members:        members,
		inst:           inst,
		concepts:       conceptReg,
		structPatterns: map[strings.Handle]*ast.StructDecl{},
		funcPatterns:   map[strings.Handle]*ast.FunctionDecl{},
		varPatterns:    map[strings.Handle]*ast.VariableTemplateDecl{},
	}
}

// insert binds name to node in the current scope if a symbol table was
// supplied, reporting a NameResolution diagnostic on a rejected
// duplicate (spec.md 4.3's "duplicate non-function symbol ... is
// rejected").
func (p *Parser) insert(name strings.Handle, node ast.Handle, tok lexer.Token) {
	if p.symtab == nil || name == strings.Invalid {
		return
	}
	if p.symtab.Insert(name, node) == symbols.Rejected && p.diags != nil {
		p.diags.Reportf(diag.NameResolution, tok, "redeclaration of %q", p.interner.View(name))
	}
}

func (p *Parser) currentPackAlignment() int {
	if len(p.packAlignment) == 0 {
		return 0
	}
	return p.packAlignment[len(p.packAlignment)-1]
}

// savePoint is the parser's speculative-parse checkpoint of spec.md
// 4.4: the lexer position (which itself captures any pending injected
// token) and the arena's append high-watermark.
type savePoint struct {
	lexer lexer.Position
	mark  ast.Mark
}

func (p *Parser) save() savePoint {
	return savePoint{lexer: p.cursor.Save(), mark: p.arena.Watermark()}
}

// restore rewinds the cursor and discards every non-declaration node
// created since sp was taken. FunctionDecl and StructDecl nodes are
// never discarded by Arena.Discard, matching spec.md 4.4's rule that a
// template instantiation may already hold a pointer into them.
func (p *Parser) restore(sp savePoint) {
	p.cursor.Restore(sp.lexer)
	p.arena.Discard(sp.mark)
}

func (p *Parser) peek() lexer.Token { return p.cursor.Peek() }

func (p *Parser) advance() lexer.Token { return p.cursor.Advance() }

func (p *Parser) atEOF() bool { return p.peek().Kind == lexer.EndOfFile }

func (p *Parser) atKind(k lexer.Kind) bool { return p.peek().Kind == k }

// atPunct reports whether the next token is exactly the given
// punctuation spelling.
func (p *Parser) atPunct(text string) bool {
	t := p.peek()
	return t.Kind == lexer.Punctuation && t.Text == text
}

// atKeyword reports whether the next token is exactly the given
// keyword spelling.
func (p *Parser) atKeyword(text string) bool {
	t := p.peek()
	return t.Kind == lexer.Keyword && t.Text == text
}

// acceptPunct consumes and returns true if the next token is text;
// otherwise leaves the cursor untouched.
func (p *Parser) acceptPunct(text string) bool {
	if p.atPunct(text) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) acceptKeyword(text string) bool {
	if p.atKeyword(text) {
		p.advance()
		return true
	}
	return false
}

// expectPunct consumes the next token, reporting a Syntax diagnostic
// if it isn't text. The core keeps parsing after a recoverable
// mistake (spec.md 7), so this never aborts the parse — it returns the
// token it actually found.
func (p *Parser) expectPunct(text string) lexer.Token {
	if p.atPunct(text) {
		return p.advance()
	}
	tok := p.peek()
	p.errorf(tok, "expected %q, found %q", text, tok.Text)
	return tok
}

func (p *Parser) expectIdentifier() (strings.Handle, lexer.Token) {
	tok := p.peek()
	if tok.Kind != lexer.Identifier {
		p.errorf(tok, "expected identifier, found %q", tok.Text)
		return strings.Invalid, tok
	}
	p.advance()
	return p.interner.Intern(tok.Text), tok
}

func (p *Parser) errorf(tok lexer.Token, format string, args ...interface{}) {
	if p.diags == nil {
		return
	}
	p.diags.Reportf(diag.Syntax, tok, format, args...)
}

// ParseTranslationUnit parses a sequence of top-level declarations
// until end of file, recovering to the next top-level declaration
// after a syntax error so a single mistake doesn't stop the rest of
// the unit from being diagnosed (spec.md 7).
func (p *Parser) ParseTranslationUnit() []ast.Handle {
	var decls []ast.Handle
	for !p.atEOF() {
		sp := p.save()
		h, ok := p.parseTopLevelDecl()
		if !ok {
			p.restore(sp)
			p.recoverToNextDeclaration()
			continue
		}
		if h != ast.Nil {
			decls = append(decls, h)
		}
	}
	return decls
}

// recoverToNextDeclaration advances past tokens until a `;` or `}` is
// consumed, or EOF is reached, so the next ParseTranslationUnit
// iteration starts at a plausible declaration boundary.
func (p *Parser) recoverToNextDeclaration() {
	for !p.atEOF() {
		tok := p.advance()
		if tok.Kind == lexer.Punctuation && (tok.Text == ";" || tok.Text == "}") {
			return
		}
	}
}
