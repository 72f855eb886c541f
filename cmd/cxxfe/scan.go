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

package main

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cxxfe/cxxfe/cxx/lexer"
)

// scan tokenizes src into the flat token stream cxx/lexer.Cursor walks.
// This lives here, not in cxx/lexer, because tokenization is an
// explicit external-collaborator non-goal of the core (spec.md 1); the
// CLI is the one place in this repository that has to actually own a
// scanner so `compile`/`dump-types` can run on real source text.
func scan(fileIndex int, src string) []lexer.Token {
	s := &scanner{src: src, fileIndex: fileIndex, line: 1, column: 1}
	var toks []lexer.Token
	for {
		tok, ok := s.next()
		if !ok {
			break
		}
		toks = append(toks, tok)
	}
	toks = append(toks, lexer.Token{Kind: lexer.EndOfFile, Line: s.line, Column: s.column, FileIndex: fileIndex})
	return toks
}

var keywords = map[string]bool{
	"alignas": true, "alignof": true, "asm": true, "auto": true, "bool": true,
	"break": true, "case": true, "catch": true, "char": true, "class": true,
	"concept": true, "const": true, "consteval": true, "constexpr": true,
	"constinit": true, "continue": true, "decltype": true, "default": true,
	"delete": true, "do": true, "double": true, "dynamic_cast": true,
	"else": true, "enum": true, "explicit": true, "export": true,
	"extern": true, "false": true, "final": true, "float": true, "for": true,
	"friend": true, "goto": true, "if": true, "inline": true, "int": true,
	"long": true, "mutable": true, "namespace": true, "new": true,
	"noexcept": true, "nullptr": true, "operator": true, "override": true,
	"private": true, "protected": true, "public": true, "register": true,
	"reinterpret_cast": true, "requires": true, "return": true, "short": true,
	"signed": true, "sizeof": true, "static": true, "static_assert": true,
	"static_cast": true, "struct": true, "switch": true, "template": true,
	"this": true, "thread_local": true, "throw": true, "true": true,
	"try": true, "typedef": true, "typeid": true, "typename": true,
	"union": true, "unsigned": true, "using": true, "virtual": true,
	"void": true, "volatile": true, "wchar_t": true, "while": true,
	"__attribute__": true, "__cdecl": true, "__stdcall": true,
	"__fastcall": true, "__vectorcall": true, "__thiscall": true,
	"__try": true, "__except": true, "__finally": true, "__leave": true,
}

// punctuators is tried longest-spelling-first so `>>=` is never split
// into `>>` plus `=` (cxx/parser's own `>>`-splitting injector handles
// the one ambiguous case, a closing `>>` that should have been two
// `>`s, not the scanner).
var punctuators = []string{
	"<=>", "...", "->*", "<<=", ">>=",
	"::", "->", "++", "--", "<<", ">>", "<=", ">=", "==", "!=",
	"&&", "||", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=",
	"##", "[[", "]]",
	"{", "}", "(", ")", "[", "]", ";", ":", "?", ".", "~", "!",
	"+", "-", "*", "/", "%", "^", "&", "|", "<", ">", "=", ",", "#",
}

type scanner struct {
	src       string
	pos       int
	line      int
	column    int
	fileIndex int
}

func (s *scanner) peekByte() byte {
	if s.pos >= len(s.src) {
		return 0
	}
	return s.src[s.pos]
}

func (s *scanner) advanceByte() byte {
	b := s.src[s.pos]
	s.pos++
	if b == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	return b
}

func (s *scanner) skipWhitespaceAndComments() {
	for s.pos < len(s.src) {
		switch {
		case unicode.IsSpace(rune(s.peekByte())):
			s.advanceByte()
		case strings.HasPrefix(s.src[s.pos:], "//"):
			for s.pos < len(s.src) && s.peekByte() != '\n' {
				s.advanceByte()
			}
		case strings.HasPrefix(s.src[s.pos:], "/*"):
			s.advanceByte()
			s.advanceByte()
			for s.pos < len(s.src) && !strings.HasPrefix(s.src[s.pos:], "*/") {
				s.advanceByte()
			}
			if s.pos < len(s.src) {
				s.advanceByte()
				s.advanceByte()
			}
		default:
			return
		}
	}
}

// next returns the next token, or ok=false at end of input.
func (s *scanner) next() (lexer.Token, bool) {
	s.skipWhitespaceAndComments()
	if s.pos >= len(s.src) {
		return lexer.Token{}, false
	}

	startLine, startCol := s.line, s.column
	c := s.peekByte()

	switch {
	case c == '"':
		return s.scanStringLiteral(startLine, startCol)
	case c == '\'':
		return s.scanCharLiteral(startLine, startCol)
	case isIdentStart(c):
		return s.scanIdentifier(startLine, startCol)
	case isDigit(c):
		return s.scanNumber(startLine, startCol)
	default:
		return s.scanPunctuation(startLine, startCol)
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= utf8.RuneSelf
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (s *scanner) scanIdentifier(line, col int) (lexer.Token, bool) {
	start := s.pos
	for s.pos < len(s.src) && isIdentPart(s.peekByte()) {
		s.advanceByte()
	}
	text := s.src[start:s.pos]
	kind := lexer.Identifier
	if keywords[text] {
		kind = lexer.Keyword
	}
	return lexer.Token{Kind: kind, Text: text, Line: line, Column: col, FileIndex: s.fileIndex}, true
}

func (s *scanner) scanNumber(line, col int) (lexer.Token, bool) {
	start := s.pos
	for s.pos < len(s.src) && (isIdentPart(s.peekByte()) || s.peekByte() == '.') {
		// Accept a trailing exponent sign (1e+10, 0x1p-3) without
		// stopping the digit run early.
		if (s.peekByte() == '+' || s.peekByte() == '-') &&
			s.pos > start && (s.src[s.pos-1] == 'e' || s.src[s.pos-1] == 'E' || s.src[s.pos-1] == 'p' || s.src[s.pos-1] == 'P') {
			s.advanceByte()
			continue
		}
		s.advanceByte()
	}
	return lexer.Token{Kind: lexer.NumericLiteral, Text: s.src[start:s.pos], Line: line, Column: col, FileIndex: s.fileIndex}, true
}

func (s *scanner) scanStringLiteral(line, col int) (lexer.Token, bool) {
	start := s.pos
	s.advanceByte() // opening quote
	for s.pos < len(s.src) && s.peekByte() != '"' {
		if s.peekByte() == '\\' && s.pos+1 < len(s.src) {
			s.advanceByte()
		}
		s.advanceByte()
	}
	if s.pos < len(s.src) {
		s.advanceByte() // closing quote
	}
	return lexer.Token{Kind: lexer.StringLiteral, Text: s.src[start:s.pos], Line: line, Column: col, FileIndex: s.fileIndex}, true
}

func (s *scanner) scanCharLiteral(line, col int) (lexer.Token, bool) {
	start := s.pos
	s.advanceByte() // opening quote
	for s.pos < len(s.src) && s.peekByte() != '\'' {
		if s.peekByte() == '\\' && s.pos+1 < len(s.src) {
			s.advanceByte()
		}
		s.advanceByte()
	}
	if s.pos < len(s.src) {
		s.advanceByte() // closing quote
	}
	return lexer.Token{Kind: lexer.CharLiteral, Text: s.src[start:s.pos], Line: line, Column: col, FileIndex: s.fileIndex}, true
}

func (s *scanner) scanPunctuation(line, col int) (lexer.Token, bool) {
	rest := s.src[s.pos:]
	for _, p := range punctuators {
		if strings.HasPrefix(rest, p) {
			for range p {
				s.advanceByte()
			}
			return lexer.Token{Kind: lexer.Punctuation, Text: p, Line: line, Column: col, FileIndex: s.fileIndex}, true
		}
	}
	// Unrecognized byte: emit it as a one-character punctuation token
	// rather than dropping it, so the parser's error recovery sees it
	// and can report a diagnostic anchored at a real position.
	text := string(s.advanceByte())
	return lexer.Token{Kind: lexer.Punctuation, Text: text, Line: line, Column: col, FileIndex: s.fileIndex}, true
}

// sliceCursor is the simplest lexer.Cursor: an already-tokenized slice
// plus the one-slot injector cxx/parser's template-argument-list
// splitting needs.
type sliceCursor struct {
	toks     []lexer.Token
	pos      int
	injected *lexer.Token
}

func newSliceCursor(toks []lexer.Token) *sliceCursor {
	return &sliceCursor{toks: toks}
}

func (c *sliceCursor) Peek() lexer.Token {
	if c.injected != nil {
		return *c.injected
	}
	if c.pos >= len(c.toks) {
		return lexer.Token{Kind: lexer.EndOfFile}
	}
	return c.toks[c.pos]
}

func (c *sliceCursor) Advance() lexer.Token {
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

func (c *sliceCursor) Inject(t lexer.Token) {
	c.injected = &t
}

func (c *sliceCursor) Save() lexer.Position {
	return lexer.Position{Offset: c.pos, Injected: c.injected}
}

func (c *sliceCursor) Restore(p lexer.Position) {
	c.pos = p.Offset
	c.injected = p.Injected
}
