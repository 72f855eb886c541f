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

// Package templates implements the template engine of spec.md 4.5: the
// instantiation queue, the expression and type substitutors, the
// top-level instantiator, and the lazy member resolver. Grounded
// structurally on original_source's InstantiationQueue.h (ported from
// its vector-plus-three-maps design to Go maps keyed by the type
// registry's canonical fingerprint) and on the teacher's
// resolver/generic_subroutine.go substitution-and-clone idiom.
package templates

import (
	"github.com/cxxfe/cxxfe/cxx/ast"
	"github.com/cxxfe/cxxfe/cxx/lexer"
	"github.com/cxxfe/cxxfe/cxx/strings"
	"github.com/cxxfe/cxxfe/cxx/types"
)

// Status is the instantiation state of spec.md 4.5.1.
type Status int

const (
	Pending Status = iota
	InProgress
	Complete
	Failed
)

// PointOfInstantiation is where a use triggered the instantiation,
// recorded for diagnostics (spec.md 4.5.1).
type PointOfInstantiation struct {
	File   int
	Line   int
	Column int
}

func pointOf(tok lexer.Token) PointOfInstantiation {
	return PointOfInstantiation{File: tok.FileIndex, Line: tok.Line, Column: tok.Column}
}

// record is one tracked instantiation. result holds a class-template
// instantiation's TypeIndex; astResult holds a function- or
// variable-template instantiation's specialized AST node instead,
// since neither has a TypeIndex of its own (spec.md 4.5.4 tracks all
// three kinds through the same queue, keyed by the same
// InstantiationKey fingerprint).
type record struct {
	key       types.InstantiationKey
	status    Status
	result    types.Index
	astResult ast.Handle
	message   string
	poi       PointOfInstantiation
}

// Queue is the instantiation queue of spec.md 4.5.1, deduplicating
// keyed by (template_name_handle, [TemplateArgument]).
type Queue struct {
	interner *strings.Interner
	byKey    map[string]*record
}

// NewQueue returns an empty Queue.
func NewQueue(interner *strings.Interner) *Queue {
	return &Queue{interner: interner, byKey: map[string]*record{}}
}

func (q *Queue) fingerprint(key types.InstantiationKey) string {
	return types.Fingerprint(q.interner, key)
}

// Enqueue records key as Pending if it is not already tracked (skips
// if already Pending/InProgress/Complete/Failed, per spec.md 4.5.1's
// "enqueue skips if already tracked").
func (q *Queue) Enqueue(key types.InstantiationKey, tok lexer.Token) {
	fp := q.fingerprint(key)
	if _, ok := q.byKey[fp]; ok {
		return
	}
	q.byKey[fp] = &record{key: key, status: Pending, poi: pointOf(tok)}
}

// Status returns the current status of key, or (Pending, false) if the
// key was never enqueued.
func (q *Queue) Status(key types.InstantiationKey) (Status, bool) {
	r, ok := q.byKey[q.fingerprint(key)]
	if !ok {
		return Pending, false
	}
	return r.status, true
}

// Result returns the completed TypeIndex for key, if Complete.
func (q *Queue) Result(key types.InstantiationKey) (types.Index, bool) {
	r, ok := q.byKey[q.fingerprint(key)]
	if !ok || r.status != Complete {
		return types.Invalid, false
	}
	return r.result, true
}

// ResultAST returns the completed ast.Handle for key, if Complete. Used
// for function- and variable-template instantiations (MarkCompleteAST),
// as opposed to the TypeIndex Result returns for class templates.
func (q *Queue) ResultAST(key types.InstantiationKey) (ast.Handle, bool) {
	r, ok := q.byKey[q.fingerprint(key)]
	if !ok || r.status != Complete {
		return ast.Nil, false
	}
	return r.astResult, true
}

// MarkCompleteAST transitions key to Complete with the given
// specialized AST node handle.
func (q *Queue) MarkCompleteAST(key types.InstantiationKey, result ast.Handle) {
	fp := q.fingerprint(key)
	r, ok := q.byKey[fp]
	if !ok {
		r = &record{key: key}
		q.byKey[fp] = r
	}
	r.status = Complete
	r.astResult = result
}

// MarkInProgress transitions key to InProgress. Returns false if the
// key is already InProgress — a cycle (spec.md 4.5.1).
func (q *Queue) MarkInProgress(key types.InstantiationKey) bool {
	fp := q.fingerprint(key)
	r, ok := q.byKey[fp]
	if !ok {
		r = &record{key: key}
		q.byKey[fp] = r
	}
	if r.status == InProgress {
		return false
	}
	r.status = InProgress
	return true
}

// MarkComplete transitions key to Complete with the given result.
func (q *Queue) MarkComplete(key types.InstantiationKey, result types.Index) {
	fp := q.fingerprint(key)
	r, ok := q.byKey[fp]
	if !ok {
		r = &record{key: key}
		q.byKey[fp] = r
	}
	r.status = Complete
	r.result = result
}

// MarkFailed transitions key to Failed with the given message.
func (q *Queue) MarkFailed(key types.InstantiationKey, message string) {
	fp := q.fingerprint(key)
	r, ok := q.byKey[fp]
	if !ok {
		r = &record{key: key}
		q.byKey[fp] = r
	}
	r.status = Failed
	r.message = message
}

// Pending returns the fingerprints of every instantiation still in the
// Pending state, for a driver's worklist loop.
func (q *Queue) Pending() []string {
	var out []string
	for fp, r := range q.byKey {
		if r.status == Pending {
			out = append(out, fp)
		}
	}
	return out
}
