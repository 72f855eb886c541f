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

import "github.com/cxxfe/cxxfe/cxx/ast"

// typeSpecEqual compares two TypeSpecifier nodes after pointer/CV
// normalization (spec.md 4.3: "parameter types (after pointer/CV
// normalization)"). Reference-ness is ignored, mirroring the standard
// rule that `f(int)` and `f(int&)` redeclare the same function for
// overload purposes; array extents and nested template arguments are
// compared structurally.
func (t *Table) typeSpecEqual(a, b ast.Handle) bool {
	as, aok := t.arena.Get(a).(*ast.TypeSpecifier)
	bs, bok := t.arena.Get(b).(*ast.TypeSpecifier)
	if !aok || !bok {
		return a == b
	}
	if as.Name != bs.Name || as.PointerDepth != bs.PointerDepth || as.ArrayExtent != bs.ArrayExtent {
		return false
	}
	if len(as.TemplateArgs) != len(bs.TemplateArgs) {
		return false
	}
	for i := range as.TemplateArgs {
		if !t.typeSpecEqual(as.TemplateArgs[i], bs.TemplateArgs[i]) {
			return false
		}
	}
	return true
}
