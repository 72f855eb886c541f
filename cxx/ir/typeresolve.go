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

package ir

import (
	"fmt"

	"github.com/cxxfe/cxxfe/cxx/ast"
	"github.com/cxxfe/cxxfe/cxx/types"
)

// resolvedType is a TypeSpecifier resolved against the registry,
// carrying the use-site ABI decoration spec.md 3.2 keeps separate from
// the registry's own Info (pointer depth, reference kind).
type resolvedType struct {
	Index        types.Index
	PointerDepth int
	Reference    types.ReferenceKind
}

func (g *Generator) resolveTypeSpecifier(h ast.Handle) (resolvedType, error) {
	spec, ok := g.Arena.Get(h).(*ast.TypeSpecifier)
	if !ok {
		return resolvedType{}, fmt.Errorf("expected a type specifier")
	}
	idx, ok := g.Types.FindByName(spec.Name)
	if !ok {
		return resolvedType{}, fmt.Errorf("unknown type %q", g.Interner.View(spec.Name))
	}
	ref := types.NotReference
	switch spec.Reference {
	case ast.LValueReference:
		ref = types.LValueReference
	case ast.RValueReference:
		ref = types.RValueReference
	}
	return resolvedType{Index: idx, PointerDepth: spec.PointerDepth, Reference: ref}, nil
}

func isTriviallyDestructible(reg *types.Registry, idx types.Index) bool {
	info := reg.Get(idx)
	if info.Base != types.Struct && info.Base != types.Union {
		return true
	}
	s := reg.Struct(info.StructInfo)
	if s == nil {
		return true
	}
	for _, f := range s.MemberFunctions {
		if f.IsDestructor {
			return false
		}
	}
	return true
}
