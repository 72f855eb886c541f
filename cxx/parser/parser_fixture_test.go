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

package parser_test

import (
	"strings"
	"unicode"

	"github.com/cxxfe/cxxfe/cxx/ast"
	"github.com/cxxfe/cxxfe/cxx/compilectx"
	"github.com/cxxfe/cxxfe/cxx/concepts"
	cxxlog "github.com/cxxfe/cxxfe/core/log"
	"github.com/cxxfe/cxxfe/cxx/diag"
	"github.com/cxxfe/cxxfe/cxx/lexer"
	"github.com/cxxfe/cxxfe/cxx/parser"
	cxxstrings "github.com/cxxfe/cxxfe/cxx/strings"
	"github.com/cxxfe/cxxfe/cxx/symbols"
	"github.com/cxxfe/cxxfe/cxx/templates"
	"github.com/cxxfe/cxxfe/cxx/types"
)

var testKeywords = map[string]bool{
	"struct": true, "class": true, "union": true, "template": true,
	"typename": true, "public": true, "private": true, "protected": true,
	"namespace": true, "using": true, "const": true, "constexpr": true,
	"return": true, "if": true, "else": true, "while": true, "for": true,
	"virtual": true, "static": true, "final": true, "int": true,
	"void": true, "bool": true, "concept": true, "operator": true,
	"requires": true, "true": true, "false": true,
}

var testPunctuators = []string{
	"...", "::", "->", "<=", ">=", "==", "!=", "&&", "||", "<<", ">>",
	"{", "}", "(", ")", "[", "]", ";", ":", "?", ".", "~", "!",
	"+", "-", "*", "/", "%", "^", "&", "|", "<", ">", "=", ",",
}

// tokenize is a small fixture scanner, just enough C++ lexical syntax
// to drive cxx/parser's test snippets: identifiers, keywords, decimal
// integers, and the punctuators the parser package actually switches
// on. It is not a general-purpose tokenizer; the module's only
// production cxx/lexer.Cursor lives in cmd/cxxfe, a main package these
// tests cannot import.
func tokenize(src string) []lexer.Token {
	var toks []lexer.Token
	i, line, col := 0, 1, 1
	advance := func() byte {
		b := src[i]
		i++
		if b == '\n' {
			line++
			col = 1
		} else {
			col++
		}
		return b
	}
	for i < len(src) {
		if unicode.IsSpace(rune(src[i])) {
			advance()
			continue
		}
		startLine, startCol := line, col
		c := src[i]
		switch {
		case c == '_' || unicode.IsLetter(rune(c)):
			start := i
			for i < len(src) && (src[i] == '_' || unicode.IsLetter(rune(src[i])) || unicode.IsDigit(rune(src[i]))) {
				advance()
			}
			text := src[start:i]
			kind := lexer.Identifier
			if testKeywords[text] {
				kind = lexer.Keyword
			}
			toks = append(toks, lexer.Token{Kind: kind, Text: text, Line: startLine, Column: startCol})
		case unicode.IsDigit(rune(c)):
			start := i
			for i < len(src) && unicode.IsDigit(rune(src[i])) {
				advance()
			}
			toks = append(toks, lexer.Token{Kind: lexer.NumericLiteral, Text: src[start:i], Line: startLine, Column: startCol})
		default:
			matched := false
			for _, p := range testPunctuators {
				if strings.HasPrefix(src[i:], p) {
					for range p {
						advance()
					}
					toks = append(toks, lexer.Token{Kind: lexer.Punctuation, Text: p, Line: startLine, Column: startCol})
					matched = true
					break
				}
			}
			if !matched {
				advance()
			}
		}
	}
	toks = append(toks, lexer.Token{Kind: lexer.EndOfFile, Line: line, Column: col})
	return toks
}

// fixtureCursor is the simplest lexer.Cursor: a fixed token slice plus
// the one-slot injector the `>>`-splitting template-argument-list
// parsing needs.
type fixtureCursor struct {
	toks     []lexer.Token
	pos      int
	injected *lexer.Token
}

func newFixtureCursor(src string) *fixtureCursor {
	return &fixtureCursor{toks: tokenize(src)}
}

func (c *fixtureCursor) Peek() lexer.Token {
	if c.injected != nil {
		return *c.injected
	}
	if c.pos >= len(c.toks) {
		return lexer.Token{Kind: lexer.EndOfFile}
	}
	return c.toks[c.pos]
}

func (c *fixtureCursor) Advance() lexer.Token {
	if c.injected != nil {
		t := *c.injected
		c.injected = nil
		return t
	}
	t := c.Peek()
	if c.pos < len(c.toks) {
		c.pos++
	}
	return t
}

func (c *fixtureCursor) Inject(t lexer.Token) { c.injected = &t }

func (c *fixtureCursor) Save() lexer.Position {
	return lexer.Position{Offset: c.pos, Injected: c.injected}
}

func (c *fixtureCursor) Restore(p lexer.Position) {
	c.pos = p.Offset
	c.injected = p.Injected
}

// fixture bundles one parser.New call's worth of fresh subsystem state
// so each test starts from a clean interner/registry/symbol table.
type fixture struct {
	Arena    *ast.Arena
	Interner *cxxstrings.Interner
	Types    *types.Registry
	Symbols  *symbols.Table
	Diags    *diag.Sink
	Parser   *parser.Parser
}

func newFixture(src string) *fixture {
	arena := ast.NewArena()
	interner := cxxstrings.New()
	reg := types.NewRegistry(interner)
	symtab := symbols.New(arena)
	conceptReg := concepts.New()
	sink := diag.NewSink(cxxlog.Background())
	queue := templates.NewQueue(interner)
	members := templates.NewLazyMemberRegistry(reg)
	inst := templates.NewInstantiator(arena, interner, reg, queue, members, conceptReg)
	ctx := compilectx.New()

	p := parser.New(newFixtureCursor(src), arena, interner, sink, ctx, reg, symtab, queue, members, inst, conceptReg)
	return &fixture{
		Arena:    arena,
		Interner: interner,
		Types:    reg,
		Symbols:  symtab,
		Diags:    sink,
		Parser:   p,
	}
}

func (f *fixture) name(h cxxstrings.Handle) string {
	return f.Interner.View(h)
}
