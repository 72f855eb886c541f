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

// Package compilectx holds the CompileContext configuration object of
// spec.md 6.3: the small set of options every subsystem consults
// (mangling ABI, data model, pack-alignment stack, access control,
// exceptions, verbosity). Built once by the driver and threaded
// explicitly through every subsystem, never a package-global
// singleton — the design note of spec.md 9 ("In a language without
// free globals, they are held in one Context struct threaded
// explicitly through every subsystem").
package compilectx

import "github.com/cxxfe/cxxfe/cxx/mangling"

// ManglingStyle selects the name-mangling ABI (spec.md 6.3/6.5).
type ManglingStyle int

const (
	Itanium ManglingStyle = iota
	MSVC
)

func (s ManglingStyle) String() string {
	if s == MSVC {
		return "msvc"
	}
	return "itanium"
}

// DataModel selects the width of `long` and pointer-sized integers
// (spec.md 6.3).
type DataModel int

const (
	// LP64: long is 64 bits (Itanium Unix convention).
	LP64 DataModel = iota
	// LLP64: long is 32 bits, long long is 64 bits (Windows convention).
	LLP64
)

// LongBits returns the width of `long` under this data model.
func (d DataModel) LongBits() int {
	if d == LLP64 {
		return 32
	}
	return 64
}

// Context is the CompileContext of spec.md 6.3.
type Context struct {
	ManglingStyle       ManglingStyle
	DataModel           DataModel
	AccessControlDisabled bool
	ExceptionsEnabled   bool
	Verbose             bool

	// packStack is the active #pragma pack(...) alignment stack
	// consulted during struct layout (spec.md 4.4, 6.3). A value of 0
	// at the top means "no override, use the natural alignment".
	packStack []int
}

// New returns a Context with the defaults of a hosted LP64/Itanium
// build: exceptions enabled, access control enforced, natural
// alignment.
func New() *Context {
	return &Context{
		ManglingStyle:     Itanium,
		DataModel:         LP64,
		ExceptionsEnabled: true,
	}
}

// Mangler returns the mangling.Mangler matching ManglingStyle. The
// concrete itanium/msvc/c packages are wired by the caller (api.go) to
// avoid this package depending on all three mangler implementations
// merely to pick one by enum.
func (c *Context) Mangler(mangle func(ManglingStyle) mangling.Mangler) mangling.Mangler {
	return mangle(c.ManglingStyle)
}

// PushPack pushes a new #pragma pack(n) alignment; n == 0 restores
// natural alignment at this nesting level.
func (c *Context) PushPack(n int) { c.packStack = append(c.packStack, n) }

// PopPack pops the most recently pushed #pragma pack value. A no-op if
// the stack is already empty (an unmatched `#pragma pack(pop)`).
func (c *Context) PopPack() {
	if len(c.packStack) > 0 {
		c.packStack = c.packStack[:len(c.packStack)-1]
	}
}

// PackAlignment returns the currently active pack alignment in bytes,
// or 0 if no `#pragma pack` is active (natural alignment applies).
func (c *Context) PackAlignment() int {
	if len(c.packStack) == 0 {
		return 0
	}
	return c.packStack[len(c.packStack)-1]
}
