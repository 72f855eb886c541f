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

package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/cxxfe/cxxfe/core/app"
	"github.com/cxxfe/cxxfe/core/log"
	"github.com/cxxfe/cxxfe/cxx"
	"github.com/cxxfe/cxxfe/cxx/compilectx"
	"github.com/cxxfe/cxxfe/cxx/types"
)

func init() {
	app.AddVerb(&app.Verb{
		Name:       "dump-types",
		ShortHelp:  "Parses a translation unit and prints its type registry",
		ShortUsage: "<file.cpp>",
		Action:     &dumpTypesVerb{},
	})
}

// dumpTypesVerb parses a file (no IR generation) and prints every type
// the parse and its template instantiations registered, one line per
// entry: name, size and alignment in bits, matching the shape
// spec.md 4.2's TypeInfo record carries. Builtins seeded by
// types.NewRegistry print too, so the output is a complete registry
// dump rather than a diff against an instance the caller never held.
type dumpTypesVerb struct{}

func (v *dumpTypesVerb) Run(ctx context.Context, flags flag.FlagSet) error {
	args := flags.Args()
	if len(args) != 1 {
		return fmt.Errorf("usage: cxxfe dump-types <file.cpp>")
	}
	path := args[0]

	toks, err := readTokens(path)
	if err != nil {
		return log.Err(ctx, err, "Failed to read source file")
	}

	unit := cxx.Compile(newSliceCursor(toks), compilectx.New(), log.Wrap(ctx))

	for i := 0; i < unit.Types.Len(); i++ {
		info := unit.Types.Get(types.Index(i))
		if info == nil {
			continue
		}
		fmt.Printf("%-24s base=%-10s size=%-4d align=%d\n",
			unit.Interner.View(info.Name), info.Base, info.SizeInBits, info.Alignment)
	}

	if unit.Diags.HasErrors() {
		return cxx.CheckErrors(path, unit.Diags, 20)
	}
	return nil
}
