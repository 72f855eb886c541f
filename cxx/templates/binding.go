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

// Bindings maps a template's parameter names to the concrete arguments
// of one instantiation (spec.md 4.5.2: "configured with (parameter-name
// -> argument) and (pack-name -> argument list)").
type Bindings struct {
	Single map[strings.Handle]Argument
	Packs  map[strings.Handle][]Argument
}

// NewBindings returns an empty Bindings ready for Bind/BindPack calls.
func NewBindings() *Bindings {
	return &Bindings{Single: map[strings.Handle]Argument{}, Packs: map[strings.Handle][]Argument{}}
}

// Bind records the argument substituted for a single (non-pack)
// template parameter.
func (b *Bindings) Bind(param strings.Handle, arg Argument) {
	b.Single[param] = arg
}

// BindPack records the argument list substituted for a pack parameter.
func (b *Bindings) BindPack(pack strings.Handle, args []Argument) {
	b.Packs[pack] = args
}

// Lookup returns the argument bound to a non-pack parameter name.
func (b *Bindings) Lookup(name strings.Handle) (Argument, bool) {
	a, ok := b.Single[name]
	return a, ok
}

// IsPack reports whether name is bound as a pack, per spec.md 4.5.2's
// "an identifier node whose name lives in the pack map ... counts as a
// pack expansion".
func (b *Bindings) IsPack(name strings.Handle) bool {
	_, ok := b.Packs[name]
	return ok
}

// LookupPack returns the argument list bound to a pack parameter name.
func (b *Bindings) LookupPack(name strings.Handle) ([]Argument, bool) {
	a, ok := b.Packs[name]
	return a, ok
}

// ArgumentKind distinguishes what kind of value a template argument
// substitutes to, mirroring spec.md 4.5.2's "(a) a numeric/bool literal
// for non-type args, (b) a TypeSpecifierNode for type args".
type ArgumentKind int

const (
	TypeArg ArgumentKind = iota
	IntegerArg
	BoolArg
)

// Argument is one concrete template argument bound into a Bindings
// map, carried as a small tagged union rather than an ast.Expr so the
// substitutor can synthesize the right literal/TypeSpecifier node
// without first having to build then immediately discard one.
type Argument struct {
	Kind    ArgumentKind
	Type    ast.Handle // valid when Kind == TypeArg: an ast.TypeSpecifier handle
	Integer int64
	Bool    bool
}
