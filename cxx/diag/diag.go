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

// Package diag is the front end's diagnostics sink (spec.md 1's "out
// of scope" collaborator, 4.9): every subsystem reports through here
// rather than returning bare errors, so the driver can keep parsing
// after a recoverable mistake and still surface every diagnostic found
// (spec.md 7, "the core keeps parsing to uncover as many diagnostics
// as possible"). Built on the teacher's structured log records
// (core/log) rather than a bespoke error list, the same way gapil
// threads a log.Context through its resolver and parser.
package diag

import (
	"fmt"

	"github.com/cxxfe/cxxfe/core/log"
	"github.com/cxxfe/cxxfe/cxx/lexer"
)

// Kind classifies a diagnostic per spec.md 7's error taxonomy.
type Kind int

const (
	Syntax Kind = iota
	NameResolution
	Template
	ConstantEvaluation
	Type
	Invariant
)

func (k Kind) String() string {
	switch k {
	case Syntax:
		return "syntax"
	case NameResolution:
		return "name-resolution"
	case Template:
		return "template"
	case ConstantEvaluation:
		return "constant-evaluation"
	case Type:
		return "type"
	case Invariant:
		return "invariant"
	default:
		return "unknown"
	}
}

// Diagnostic is one reported problem, anchored at the token that
// produced it so the caller can synchronize/recover (spec.md 7).
type Diagnostic struct {
	Kind    Kind
	Token   lexer.Token
	Message string
	// Fatal marks an internal invariant violation (spec.md 7): the
	// driver should stop emission for the enclosing function/unit.
	Fatal bool
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s: %s", tokenFile(d.Token), d.Token.Line, d.Token.Column, d.Kind, d.Message)
}

func tokenFile(t lexer.Token) string {
	return fmt.Sprintf("<tu%d>", t.FileIndex)
}

// Sink accumulates diagnostics for one translation unit and mirrors
// each one into the logging context as it arrives, so a driver running
// with -verbose sees diagnostics interleaved with the rest of its log
// rather than only at the end.
type Sink struct {
	ctx   log.Context
	items []Diagnostic
}

// NewSink wraps a log.Context (or plain context.Context, via log.Wrap
// at the call site) as a diagnostics sink.
func NewSink(ctx log.Context) *Sink {
	return &Sink{ctx: ctx}
}

// Report records a diagnostic and logs it at Error (or Critical, if
// Fatal) severity.
func (s *Sink) Report(d Diagnostic) {
	s.items = append(s.items, d)
	logger := s.ctx.Error()
	if d.Fatal {
		logger = s.ctx.Critical()
	}
	logger.Logf("[%s] %d:%d: %s", d.Kind, d.Token.Line, d.Token.Column, d.Message)
}

// Reportf is a convenience wrapper formatting the message.
func (s *Sink) Reportf(kind Kind, tok lexer.Token, format string, args ...interface{}) {
	s.Report(Diagnostic{Kind: kind, Token: tok, Message: fmt.Sprintf(format, args...)})
}

// Fatal records a fatal invariant violation.
func (s *Sink) Fatal(tok lexer.Token, format string, args ...interface{}) {
	s.Report(Diagnostic{Kind: Invariant, Token: tok, Message: fmt.Sprintf(format, args...), Fatal: true})
}

// HasErrors reports whether any diagnostic was recorded.
func (s *Sink) HasErrors() bool { return len(s.items) > 0 }

// HasFatal reports whether any recorded diagnostic was fatal.
func (s *Sink) HasFatal() bool {
	for _, d := range s.items {
		if d.Fatal {
			return true
		}
	}
	return false
}

// All returns every diagnostic recorded so far, in report order.
func (s *Sink) All() []Diagnostic { return s.items }
