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

// Package concepts is the process-wide registry of C++20 concept
// declarations (SPEC_FULL.md 3.7), grounded on
// _examples/original_source/src/ConceptRegistry.h: a flat name-to-
// declaration map with no scoping of its own, since concepts are
// always declared at namespace or global scope and looked up by their
// (possibly qualified) name alone.
package concepts

import (
	"github.com/cxxfe/cxxfe/cxx/ast"
	"github.com/cxxfe/cxxfe/cxx/strings"
)

// Registry maps a concept's name to its ConceptDecl node, mirroring
// ConceptRegistry's concepts_ map.
type Registry struct {
	decls map[strings.Handle]ast.Handle
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{decls: map[strings.Handle]ast.Handle{}}
}

// Register binds name to decl, overwriting any prior registration
// under the same name (mirroring concepts_[key] = concept_node's
// unconditional overwrite).
func (r *Registry) Register(name strings.Handle, decl ast.Handle) {
	r.decls[name] = decl
}

// Lookup returns the ConceptDecl registered under name, if any.
func (r *Registry) Lookup(name strings.Handle) (ast.Handle, bool) {
	decl, ok := r.decls[name]
	return decl, ok
}

// Has reports whether name is a registered concept.
func (r *Registry) Has(name strings.Handle) bool {
	_, ok := r.decls[name]
	return ok
}

// CheckConstraint implements SPEC_FULL.md 3.7's template-parameter
// constraint gate: the template instantiator calls this before
// substitution to verify a named constraint is a known concept. Full
// constraint-expression satisfaction checking is stubbed, matching
// spec.md's "constraint unsatisfied (stubbed)" non-goal — this only
// verifies the constraint name resolves to a declared concept.
func (r *Registry) CheckConstraint(name strings.Handle) bool {
	if name == strings.Invalid {
		return true
	}
	return r.Has(name)
}

// Names returns every registered concept's name, for diagnostics and
// tests (mirroring getAllConceptNames).
func (r *Registry) Names() []strings.Handle {
	names := make([]strings.Handle, 0, len(r.decls))
	for name := range r.decls {
		names = append(names, name)
	}
	return names
}
