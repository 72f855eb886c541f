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

package templates

import (
	"github.com/cxxfe/cxxfe/cxx/ast"
	"github.com/cxxfe/cxxfe/cxx/strings"
)

// TypeSubstitutor implements spec.md 4.5.3: given a TypeSpecifierNode,
// replace template-parameter references with their bound arguments,
// and recursively substitute (then enqueue instantiation of) any
// struct type whose name encodes a template-argument list.
type TypeSubstitutor struct {
	arena    *ast.Arena
	interner *strings.Interner
	bindings *Bindings
	queue    *Queue
}

// NewTypeSubstitutor returns a TypeSubstitutor bound to one
// instantiation's parameter map.
func NewTypeSubstitutor(arena *ast.Arena, interner *strings.Interner, bindings *Bindings, queue *Queue) *TypeSubstitutor {
	return &TypeSubstitutor{arena: arena, interner: interner, bindings: bindings, queue: queue}
}

// Substitute rewrites the TypeSpecifier at h and returns the handle of
// the (possibly new) substituted node.
func (s *TypeSubstitutor) Substitute(h ast.Handle) ast.Handle {
	if h == ast.Nil {
		return ast.Nil
	}
	spec, ok := s.arena.Get(h).(*ast.TypeSpecifier)
	if !ok {
		return h
	}

	// Direct parameter reference: replace with the bound argument,
	// unioning the caller's pointer depth / reference / CV with the
	// argument's own decoration (spec.md 4.5.3).
	if arg, ok := s.bindings.Lookup(spec.Name); ok && arg.Kind == TypeArg {
		bound, ok := s.arena.Get(arg.Type).(*ast.TypeSpecifier)
		if !ok {
			return arg.Type
		}
		merged := *bound
		merged.Token = spec.Token
		merged.PointerDepth += spec.PointerDepth
		if spec.Reference != ast.NotReference {
			merged.Reference = spec.Reference
		}
		merged.Const = merged.Const || spec.Const
		merged.Volatile = merged.Volatile || spec.Volatile
		if spec.ArrayExtent >= 0 {
			merged.ArrayExtent = spec.ArrayExtent
		}
		return s.arena.Add(&merged)
	}

	// Template-id: recursively substitute the argument list, then
	// enqueue instantiation of the base template with the substituted
	// arguments (spec.md 4.5.3's second bullet).
	if len(spec.TemplateArgs) > 0 {
		substituted := make([]ast.Handle, 0, len(spec.TemplateArgs))
		for _, argHandle := range spec.TemplateArgs {
			substituted = append(substituted, s.substituteArgNode(argHandle))
		}
		out := *spec
		out.TemplateArgs = substituted
		return s.arena.Add(&out)
	}

	// Otherwise return a copy, matching spec.md 4.5.3's "Otherwise
	// return a copy" so callers never alias the pattern's own nodes.
	out := *spec
	return s.arena.Add(&out)
}

// substituteArgNode substitutes one entry of a TypeSpecifier's
// TemplateArgs list, which may itself be a nested TypeSpecifier or a
// literal expression node (a non-type template argument).
func (s *TypeSubstitutor) substituteArgNode(h ast.Handle) ast.Handle {
	if h == ast.Nil {
		return ast.Nil
	}
	if _, ok := s.arena.Get(h).(*ast.TypeSpecifier); ok {
		return s.Substitute(h)
	}
	expr, ok := s.arena.Get(h).(ast.Expr)
	if !ok {
		return h
	}
	result := NewExpressionSubstitutor(s.arena, s.interner, s.bindings, s.queue).Substitute(expr)
	return s.arena.Add(result)
}
