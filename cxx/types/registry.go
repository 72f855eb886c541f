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

package types

import (
	"fmt"

	"github.com/cxxfe/cxxfe/core/data/id"
	"github.com/cxxfe/cxxfe/cxx/strings"
)

// Registry is the process-wide, append-only type table (spec.md 4.2).
// TypeInfo records are never deleted or reordered; an Index returned by
// Add stays valid for the whole compilation.
type Registry struct {
	interner *strings.Interner

	infos   []Info       // index 0 is the reserved Invalid/void slot
	structs []StructInfo // index 0 is the reserved InvalidStruct slot
	byName  map[strings.Handle]Index
}

// NewRegistry creates a Registry seeded with the reserved Invalid/void
// TypeInfo at index 0, following the initialization order of spec.md 9
// ("type registry (seed with builtins)").
func NewRegistry(interner *strings.Interner) *Registry {
	r := &Registry{
		interner: interner,
		infos:    make([]Info, 1, 64),
		structs:  make([]StructInfo, 1, 8),
		byName:   make(map[strings.Handle]Index, 64),
	}
	r.infos[0] = Info{Name: interner.Intern("void"), Base: Void}
	r.byName[r.infos[0].Name] = Invalid
	r.seedBuiltins()
	return r
}

// seedBuiltins registers the fundamental arithmetic and pointer-adjacent
// types so the parser and evaluator can resolve primitive type names
// without special-casing them outside the registry.
func (r *Registry) seedBuiltins() {
	builtins := []struct {
		name string
		base Base
		bits uint32
	}{
		{"bool", Bool, 8},
		{"char", Char, 8},
		{"short", Short, 16},
		{"int", Int, 32},
		{"long", Long, 64}, // overridden per DataModel by compilectx at startup
		{"long long", LongLong, 64},
		{"unsigned char", UnsignedChar, 8},
		{"unsigned short", UnsignedShort, 16},
		{"unsigned int", UnsignedInt, 32},
		{"unsigned long", UnsignedLong, 64},
		{"unsigned long long", UnsignedLongLong, 64},
		{"float", Float, 32},
		{"double", Double, 64},
		{"long double", LongDouble, 128},
		{"nullptr_t", Nullptr, 64},
	}
	for _, b := range builtins {
		r.Add(Info{Name: r.interner.Intern(b.name), Base: b.base, SizeInBits: b.bits, Alignment: b.bits})
	}
}

// Add appends a new TypeInfo and returns its stable Index (spec.md
// 4.2's add_type). If info.Name already names a registered type, Add
// still appends a distinct record — callers that want dedup-by-name
// must check FindByName first, which is the path FindOrAddStruct uses.
func (r *Registry) Add(info Info) Index {
	idx := Index(len(r.infos))
	r.infos = append(r.infos, info)
	if info.Name != strings.Invalid {
		if _, exists := r.byName[info.Name]; !exists {
			r.byName[info.Name] = idx
		}
	}
	return idx
}

// Get returns a pointer to the TypeInfo at idx. The returned pointer is
// stable for the registry's lifetime; records are never reordered.
func (r *Registry) Get(idx Index) *Info {
	return &r.infos[idx]
}

// Len returns the number of TypeInfo records registered so far.
func (r *Registry) Len() int { return len(r.infos) }

// FindByName returns the Index registered for handle, if any.
func (r *Registry) FindByName(handle strings.Handle) (Index, bool) {
	idx, ok := r.byName[handle]
	return idx, ok
}

// IsTemplateInstantiation reports whether idx names a fully or
// partially substituted template instantiation (spec.md 4.2).
func (r *Registry) IsTemplateInstantiation(idx Index) bool {
	return r.infos[idx].Template != nil
}

// AddStruct allocates a new StructInfo side-table entry and returns its
// StructIndex. Callers set Info.StructInfo to the result after calling
// Add for the owning TypeInfo.
func (r *Registry) AddStruct(s StructInfo) StructIndex {
	idx := StructIndex(len(r.structs))
	r.structs = append(r.structs, s)
	return idx
}

// Struct returns a pointer to the StructInfo at idx.
func (r *Registry) Struct(idx StructIndex) *StructInfo {
	return &r.structs[idx]
}

// InstantiationKey computes the canonical (base, [argument fingerprints])
// key used to deduplicate template instantiations (spec.md 4.2).
type InstantiationKey struct {
	Base strings.Handle
	Args []TemplateArgument
}

// Fingerprint hashes an InstantiationKey into the 16 hex characters
// that suffix an instantiation's mangled/display name
// ("base$<16-hex>", spec.md 4.2/4.5.4). It is grounded on the teacher's
// core/data/id SHA1-based content hashing, reused here exactly the way
// gapid uses it to fingerprint capture-local resource identities.
func Fingerprint(interner *strings.Interner, key InstantiationKey) string {
	content := id.OfString(fingerprintSeed(interner, key)...)
	return fmt.Sprintf("%x", content[:8]) // 8 bytes -> 16 hex chars
}

func fingerprintSeed(interner *strings.Interner, key InstantiationKey) []string {
	parts := make([]string, 0, 1+len(key.Args)*6)
	parts = append(parts, interner.View(key.Base))
	for _, a := range key.Args {
		switch a.Kind {
		case TypeArgument, TemplateArgumentKind:
			parts = append(parts,
				"T",
				fmt.Sprint(a.Type),
				fmt.Sprint(a.PointerDepth),
				fmt.Sprint(a.Reference),
				fmt.Sprint(a.ArrayExtent),
				cvString(a.CVPerLevel),
			)
		case ValueArgument:
			parts = append(parts, "V", fmt.Sprint(a.Value))
		}
	}
	return parts
}

func cvString(cv []CVQualifiers) string {
	s := make([]byte, 0, len(cv)*2)
	for _, q := range cv {
		if q.Const {
			s = append(s, 'c')
		}
		if q.Volatile {
			s = append(s, 'v')
		}
		s = append(s, ';')
	}
	return string(s)
}

// InstantiatedName returns "base$<16-hex>" for the given key, the
// canonical name a template instantiation registers itself under
// (spec.md 4.5.4 step 5).
func InstantiatedName(interner *strings.Interner, key InstantiationKey) string {
	return fmt.Sprintf("%s$%s", interner.View(key.Base), Fingerprint(interner, key))
}
