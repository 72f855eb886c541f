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
	"github.com/cxxfe/cxxfe/cxx/ast"
	"github.com/cxxfe/cxxfe/cxx/strings"
)

// Lookup walks the scope stack from inner to outer per spec.md 4.3's
// ordered rule: at each scope, (1) using-declarations, (2) direct
// symbols, (3) using-directives (resolved as a qualified lookup in the
// named namespace), (4) — only for namespace scopes — the persistent
// namespace map for any block of that namespace, with the namespace
// path progressively shortened as the walk moves outward.
func (t *Table) Lookup(name strings.Handle) ([]ast.Handle, bool) {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		s := t.scopes[i]

		if ud, ok := s.usingDecls[name]; ok {
			if decls, ok := t.LookupQualified(ud.Path, ud.Name); ok {
				return decls, true
			}
		}

		if decls := s.Declarations(name); len(decls) > 0 {
			return decls, true
		}

		for _, dir := range s.usingDirectives {
			if decls, ok := t.LookupQualified(dir.path, name); ok {
				return decls, true
			}
		}

		if s.Kind == Namespace {
			for end := len(s.NamespacePath); end > 0; end-- {
				if decls, ok := t.namespaceSymbols[pathKey(s.NamespacePath[:end])][name]; ok && len(decls) > 0 {
					return decls, true
				}
			}
		}
	}
	return nil, false
}

// LookupQualified resolves namespace aliases on the first path
// component (searching the scope stack from innermost outward, since
// an alias may be declared in any enclosing scope), then queries the
// persistent namespace map (spec.md 4.3).
func (t *Table) LookupQualified(path []strings.Handle, name strings.Handle) ([]ast.Handle, bool) {
	resolved := t.resolveAlias(path)
	decls, ok := t.namespaceSymbols[pathKey(resolved)][name]
	if !ok || len(decls) == 0 {
		return nil, false
	}
	return decls, true
}

func (t *Table) resolveAlias(path []strings.Handle) []strings.Handle {
	if len(path) == 0 {
		return path
	}
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if target, ok := t.scopes[i].namespaceAlias[path[0]]; ok {
			return append(append([]strings.Handle(nil), target...), path[1:]...)
		}
	}
	return path
}
