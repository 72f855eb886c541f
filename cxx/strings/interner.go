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

// Package strings interns identifier and mangled-name byte strings into
// small integer handles, so the rest of the compiler core can compare
// names by handle equality instead of byte comparison.
package strings

import "fmt"

// Handle identifies an interned byte string. Equal handles mean equal
// bytes; hashing and equality elsewhere in the core always operate on
// the handle, never on the underlying bytes.
type Handle uint32

// Invalid is the zero handle; no interned string ever receives it.
const Invalid Handle = 0

func (h Handle) String() string {
	return fmt.Sprintf("#%d", uint32(h))
}

// Interner deduplicates byte strings into Handles. The backing store is
// append-only: once a Handle is assigned it is stable and its bytes
// remain valid for the lifetime of the Interner.
type Interner struct {
	byBytes map[string]Handle
	byIndex []string
}

// New creates an empty Interner, pre-populated with the handles the
// core reserves by contract (spec.md 4.1): "this", "__vptr",
// "__copy_this", "__this", "other".
func New() *Interner {
	in := &Interner{
		byBytes: make(map[string]Handle, 64),
		byIndex: make([]string, 1, 64), // index 0 is reserved for Invalid
	}
	for _, s := range reservedNames {
		in.Intern(s)
	}
	return in
}

var reservedNames = []string{"this", "__vptr", "__copy_this", "__this", "other"}

// Intern returns the Handle for s, assigning a new one the first time s
// is seen. Two calls with equal bytes always return equal handles.
func (in *Interner) Intern(s string) Handle {
	if h, ok := in.byBytes[s]; ok {
		return h
	}
	h := Handle(len(in.byIndex))
	in.byIndex = append(in.byIndex, s)
	in.byBytes[s] = h
	return h
}

// View returns the bytes a Handle was interned from. It panics if h was
// never returned by this Interner's Intern, since that indicates a bug
// in the caller rather than a recoverable condition.
func (in *Interner) View(h Handle) string {
	if int(h) >= len(in.byIndex) {
		panic(fmt.Sprintf("strings: handle %v out of range", h))
	}
	return in.byIndex[h]
}

// Lookup returns the Handle for s without interning it, reporting
// whether s has already been interned.
func (in *Interner) Lookup(s string) (Handle, bool) {
	h, ok := in.byBytes[s]
	return h, ok
}

// ParamName returns the reserved "__param_<n>" handle for the n'th
// synthesized parameter (spec.md 4.1).
func (in *Interner) ParamName(n int) Handle {
	return in.Intern(fmt.Sprintf("__param_%d", n))
}

// Len reports how many distinct strings have been interned, including
// the reserved names and the Invalid slot.
func (in *Interner) Len() int {
	return len(in.byIndex)
}
