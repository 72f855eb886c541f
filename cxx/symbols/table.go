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

package symbols

import (
	"encoding/binary"

	"github.com/cxxfe/cxxfe/cxx/ast"
	"github.com/cxxfe/cxxfe/cxx/strings"
)

// Table is a stack of Scopes plus the persistent namespace_symbols_ map
// of spec.md 3.4: "a namespace reopened in a later block still see[s]
// symbols written in earlier blocks of the same namespace."
type Table struct {
	arena  *ast.Arena
	scopes []*Scope

	// namespaceSymbols is keyed on the namespace path, encoded as a
	// byte string of the raw handles (never the concatenated name
	// text spec.md 3.4 explicitly warns against, since two distinct
	// paths can stringify to the same text under namespace aliasing).
	namespaceSymbols map[string]map[strings.Handle][]ast.Handle

	// path tracks the namespace path of nested Namespace scopes, so a
	// symbol inserted while inside `namespace a { namespace b { ... } }`
	// is recorded under the full path [a, b].
	path []strings.Handle
}

// New returns a Table with its Global scope already pushed.
func New(arena *ast.Arena) *Table {
	t := &Table{
		arena:            arena,
		namespaceSymbols: map[string]map[strings.Handle][]ast.Handle{},
	}
	t.scopes = append(t.scopes, newScope(Global, nil))
	return t
}

func pathKey(path []strings.Handle) string {
	buf := make([]byte, 4*len(path))
	for i, h := range path {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(h))
	}
	return string(buf)
}

// PushNamespace enters (or reopens) the namespace named component,
// nested in the current namespace path, e.g. PushNamespace(b) while
// already inside namespace a records the scope under the full path
// [a, b].
func (t *Table) PushNamespace(component strings.Handle) {
	t.path = append(t.path, component)
	full := append([]strings.Handle(nil), t.path...)
	t.scopes = append(t.scopes, newScope(Namespace, full))
}

// PushFunction enters a function-body scope.
func (t *Table) PushFunction() { t.scopes = append(t.scopes, newScope(Function, nil)) }

// PushBlock enters a nested block scope.
func (t *Table) PushBlock() { t.scopes = append(t.scopes, newScope(Block, nil)) }

// Pop leaves the innermost scope.
func (t *Table) Pop() {
	s := t.top()
	if s.Kind == Namespace && len(t.path) > 0 {
		t.path = t.path[:len(t.path)-1]
	}
	t.scopes = t.scopes[:len(t.scopes)-1]
}

func (t *Table) top() *Scope { return t.scopes[len(t.scopes)-1] }

// Current returns the innermost scope, for callers that need to attach
// using-directives/declarations/aliases to it.
func (t *Table) Current() *Scope { return t.top() }

// InsertResult reports what Insert did, for diagnostics.
type InsertResult int

const (
	Inserted InsertResult = iota
	Upgraded
	Rejected
)

// Insert binds name to node in the current scope (spec.md 4.3).
// Non-function symbols reject an existing binding outright. Function
// declarations are compared by sameSignature; a match upgrades the
// existing entry in place (both the scope map and, if inside a
// namespace, the persistent namespace map) when the new node carries a
// body and the old one didn't, and is otherwise rejected as a
// duplicate.
func (t *Table) Insert(name strings.Handle, node ast.Handle) InsertResult {
	s := t.top()
	existing := s.names[name]

	fn, isFunc := t.arena.Get(node).(*ast.FunctionDecl)
	if !isFunc {
		if len(existing) > 0 {
			return Rejected
		}
		s.names[name] = []ast.Handle{node}
		t.recordNamespace(name, node, false)
		return Inserted
	}

	for i, other := range existing {
		otherFn, ok := t.arena.Get(other).(*ast.FunctionDecl)
		if !ok || !t.sameSignature(fn, otherFn) {
			continue
		}
		if fn.Body != ast.Nil && otherFn.Body == ast.Nil {
			s.names[name][i] = node
			t.recordNamespace(name, node, true)
			return Upgraded
		}
		return Rejected
	}

	s.names[name] = append(s.names[name], node)
	t.recordNamespace(name, node, false)
	return Inserted
}

func (t *Table) recordNamespace(name strings.Handle, node ast.Handle, upgrade bool) {
	if t.top().Kind != Namespace {
		return
	}
	key := pathKey(t.path)
	byName, ok := t.namespaceSymbols[key]
	if !ok {
		byName = map[strings.Handle][]ast.Handle{}
		t.namespaceSymbols[key] = byName
	}
	if upgrade {
		list := byName[name]
		for i, n := range list {
			if fnA, ok := t.arena.Get(n).(*ast.FunctionDecl); ok {
				if fnB, ok := t.arena.Get(node).(*ast.FunctionDecl); ok && t.sameSignature(fnA, fnB) {
					list[i] = node
					return
				}
			}
		}
	}
	byName[name] = append(byName[name], node)
}

// sameSignature implements spec.md 4.3's duplicate-function test:
// parameter types (after pointer/CV normalization) AND return type.
func (t *Table) sameSignature(a, b *ast.FunctionDecl) bool {
	if len(a.Params) != len(b.Params) {
		return false
	}
	for i := range a.Params {
		if !t.sameType(a.Params[i].Type, b.Params[i].Type) {
			return false
		}
	}
	return t.sameType(a.ReturnType, b.ReturnType)
}

func (t *Table) sameType(a, b ast.Handle) bool {
	// Unresolved (auto-deduced) return types compare equal to each
	// other only; they never disambiguate an overload.
	if a == ast.Nil || b == ast.Nil {
		return a == b
	}
	return t.typeSpecEqual(a, b)
}

// MergeInlineNamespace copies every entry of child's full path into
// parent's, per spec.md 4.3's "Merging inline namespaces" rule.
func (t *Table) MergeInlineNamespace(child, parent []strings.Handle) {
	childMap, ok := t.namespaceSymbols[pathKey(child)]
	if !ok {
		return
	}
	parentKey := pathKey(parent)
	parentMap, ok := t.namespaceSymbols[parentKey]
	if !ok {
		parentMap = map[strings.Handle][]ast.Handle{}
		t.namespaceSymbols[parentKey] = parentMap
	}
	for name, decls := range childMap {
		parentMap[name] = append(parentMap[name], decls...)
	}
}
