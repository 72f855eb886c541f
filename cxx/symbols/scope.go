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

// Package symbols is the scoped, namespace-aware symbol table of
// spec.md 3.4/4.3, grounded structurally on the teacher's
// owner/scope-walking idiom (gapil/semantic's Owner chain and
// gapil/resolver's find/addNamed/with scope stack), generalized from
// the gapil API-definition grammar to C++ namespaces, blocks, and
// overload sets.
package symbols

import "github.com/cxxfe/cxxfe/cxx/ast"
import "github.com/cxxfe/cxxfe/cxx/strings"

// Kind is the scope kind of spec.md 3.4.
type Kind int

const (
	Global Kind = iota
	Namespace
	Function
	Block
)

// UsingDeclaration is a local name bound to (namespace path, original
// name) by `using ns::name;`.
type UsingDeclaration struct {
	Path []strings.Handle
	Name strings.Handle
}

// Scope is one entry of the symbol table's scope stack.
type Scope struct {
	Kind Kind

	// NamespacePath is this scope's namespace path component(s), valid
	// only when Kind == Namespace (e.g. `namespace a::b { ... }` pushes
	// path [a, b]).
	NamespacePath []strings.Handle

	// names maps an unqualified name to its ordered declaration list,
	// the "ordered list permits overloaded functions" of spec.md 3.4.
	names map[strings.Handle][]ast.Handle

	usingDirectives []usingDirective
	usingDecls      map[strings.Handle]UsingDeclaration
	namespaceAlias  map[strings.Handle][]strings.Handle
}

type usingDirective struct {
	path []strings.Handle
}

func newScope(kind Kind, path []strings.Handle) *Scope {
	return &Scope{
		Kind:           kind,
		NamespacePath:  path,
		names:          map[strings.Handle][]ast.Handle{},
		usingDecls:     map[strings.Handle]UsingDeclaration{},
		namespaceAlias: map[strings.Handle][]strings.Handle{},
	}
}

// AddUsingDirective records `using namespace path;` in this scope.
func (s *Scope) AddUsingDirective(path []strings.Handle) {
	s.usingDirectives = append(s.usingDirectives, usingDirective{path})
}

// AddUsingDeclaration records `using path::name;` in this scope.
func (s *Scope) AddUsingDeclaration(path []strings.Handle, name strings.Handle) {
	s.usingDecls[name] = UsingDeclaration{Path: path, Name: name}
}

// AddNamespaceAlias records `namespace alias = path;` in this scope.
func (s *Scope) AddNamespaceAlias(alias strings.Handle, path []strings.Handle) {
	s.namespaceAlias[alias] = path
}

// Declarations returns the ordered overload set bound to name directly
// in this scope, or nil if none.
func (s *Scope) Declarations(name strings.Handle) []ast.Handle {
	return s.names[name]
}
