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

// Package lexer defines the narrow external contract the core relies
// on from a token scanner (spec.md 6.1). It intentionally contains no
// scanning logic: tokenization, preprocessing and macro expansion are
// explicit Non-goals (spec.md 1) supplied by an external collaborator.
package lexer

// Kind enumerates the categories of token the core's parser switches
// on. The specific keyword/punctuation spellings are carried in Text,
// not encoded as distinct Kinds, so the core never needs updating when
// a scanner adds a new keyword.
type Kind int

const (
	Identifier Kind = iota
	Keyword
	Punctuation
	NumericLiteral
	StringLiteral
	CharLiteral
	EndOfFile
)

// Token is one lexical unit, positioned for diagnostics (spec.md 6.1).
type Token struct {
	Kind       Kind
	Text       string
	Line       int
	Column     int
	FileIndex  int
}

// Cursor is the narrow interface the parser drives a token source
// through: one-token lookahead, save/restore, and single-slot
// injection so the parser can split a `>>` it receives as one token
// into two `>` tokens (spec.md 4.4, 9).
type Cursor interface {
	// Peek returns the next token without consuming it.
	Peek() Token
	// Advance consumes and returns the next token, draining any
	// injected token first.
	Advance() Token
	// Inject pushes a synthetic token to be returned by the next
	// Advance, ahead of the underlying stream.
	Inject(t Token)

	// Save returns an opaque position usable with Restore. Save/Restore
	// never rewind AST or arena state; that is the parser's job
	// (spec.md 4.4).
	Save() Position
	Restore(p Position)
}

// Position is an opaque lexer save point returned by Cursor.Save.
type Position struct {
	Offset    int
	Injected  *Token // nil if no token was pending at save time
}
