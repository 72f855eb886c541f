// Copyright (C) 2018 Google Inc.
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

// Package msvc implements a subset of the MSVC C++ name decoration
// scheme (the mangling used by cl.exe's linker), mirroring the
// structure of the sibling itanium package: a mangler value walks the
// mangling.Entity tree and writes decorated bytes. Covers the shapes
// spec.md 6.5 calls out by name: plain free functions, member
// functions with their calling-convention/qualifier code, and the
// "??0"/"??1" constructor/destructor markers. Not a complete
// implementation of the (unpublished, reverse-engineered) MSVC scheme.
package msvc

import (
	"bytes"
	"fmt"

	"github.com/cxxfe/cxxfe/cxx/mangling"
)

// Mangle returns the entity decorated conforming to the MSVC scheme.
func Mangle(s mangling.Entity) string {
	m := mangler{bytes.Buffer{}}
	m.mangle(s)
	return m.String()
}

type mangler struct {
	bytes.Buffer
}

func (m *mangler) mangle(v mangling.Entity) {
	m.WriteRune('?')
	m.name(v)
	m.WriteString("@@")
	if f, ok := v.(*mangling.Function); ok {
		m.qualifiers(f)
		m.callingConvention()
		m.returnType(f)
		m.parameters(f)
	}
}

// name writes <unqualified-name>@<scope>@<scope> ..., innermost name
// first; the caller writes the closing "@@". A constructor or destructor
// marker ("?0"/"?1") is followed by its class name with no '@' between.
func (m *mangler) name(v mangling.Entity) {
	m.unqualifiedName(v)
	sep := true
	if f, ok := v.(*mangling.Function); ok && (f.IsConstructor || f.IsDestructor) {
		sep = false
	}
	if s, ok := v.(mangling.Scoped); ok {
		for scope := s.Scope(); scope != nil; {
			if sep {
				m.WriteRune('@')
			}
			sep = true
			m.unqualifiedName(scope)
			if next, ok := scope.(mangling.Scoped); ok {
				scope = next.Scope()
			} else {
				scope = nil
			}
		}
	}
}

func (m *mangler) unqualifiedName(v mangling.Entity) {
	if f, ok := v.(*mangling.Function); ok {
		switch {
		case f.IsConstructor:
			m.WriteString("?0")
			return
		case f.IsDestructor:
			m.WriteString("?1")
			return
		}
	}
	n, ok := v.(mangling.Named)
	if !ok {
		unhandled("name", v)
		return
	}
	m.WriteString(n.GetName())
	if t, ok := v.(mangling.Templated); ok && len(t.TemplateArguments()) > 0 {
		m.WriteRune('@')
		for _, a := range t.TemplateArguments() {
			m.ty(a)
		}
		m.WriteString("@@")
	}
}

// qualifiers writes the access/static/const code of a member function,
// calling-convention letter included: QAE = public non-static non-const
// __thiscall, QBE = the const form, SA = public static __cdecl. The
// rest of the MSVC table is not reproduced here.
func (m *mangler) qualifiers(f *mangling.Function) {
	switch {
	case f.Static:
		m.WriteString("SA")
	case f.Const:
		m.WriteString("QBE")
	default:
		m.WriteString("QAE")
	}
}

// callingConvention writes nothing: qualifiers already ends with the
// calling-convention letter, and the parser records no other convention.
func (m *mangler) callingConvention() {}

func (m *mangler) returnType(f *mangling.Function) {
	if f.IsConstructor || f.IsDestructor {
		m.WriteString("@")
		return
	}
	m.ty(f.Return)
}

func (m *mangler) parameters(f *mangling.Function) {
	if len(f.Parameters) == 0 {
		m.WriteString("XZ")
		return
	}
	for _, p := range f.Parameters {
		m.ty(p)
	}
	m.WriteString("@Z")
}

func (m *mangler) ty(t mangling.Type) {
	switch t := t.(type) {
	case mangling.Builtin:
		m.builtin(t)
	case *mangling.Class:
		m.WriteString("U")
		m.name(t)
		m.WriteString("@@")
	case mangling.Pointer:
		m.WriteString("PEA")
		m.ty(t.To)
	case mangling.TemplateParameter:
		fmt.Fprintf(m, "$%d", int(t))
	default:
		unhandled("type", t)
	}
}

func (m *mangler) builtin(t mangling.Type) {
	switch t {
	case mangling.Void:
		m.WriteRune('X')
	case mangling.Bool:
		m.WriteString("_N")
	case mangling.Char:
		m.WriteRune('D')
	case mangling.SChar:
		m.WriteRune('C')
	case mangling.UChar:
		m.WriteRune('E')
	case mangling.Short:
		m.WriteRune('F')
	case mangling.UShort:
		m.WriteRune('G')
	case mangling.Int:
		m.WriteRune('H')
	case mangling.UInt:
		m.WriteRune('I')
	case mangling.Long:
		m.WriteRune('J')
	case mangling.ULong:
		m.WriteRune('K')
	case mangling.S64:
		m.WriteString("_J")
	case mangling.U64:
		m.WriteString("_K")
	case mangling.Float:
		m.WriteRune('M')
	case mangling.Double:
		m.WriteRune('N')
	default:
		unhandled("builtin", t)
	}
}

func unhandled(kind string, v mangling.Entity) {
	panic(fmt.Errorf("msvc: unhandled %v: %T(%+v)", kind, v, v))
}
