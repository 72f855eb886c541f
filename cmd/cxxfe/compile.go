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
	"os"

	"github.com/cxxfe/cxxfe/core/app"
	"github.com/cxxfe/cxxfe/core/data/endian"
	"github.com/cxxfe/cxxfe/core/log"
	"github.com/cxxfe/cxxfe/cxx"
	"github.com/cxxfe/cxxfe/cxx/compilectx"
	"github.com/cxxfe/cxxfe/cxx/ir"
)

func init() {
	app.AddVerb(&app.Verb{
		Name:      "compile",
		ShortHelp: "Parses a translation unit and prints its generated IR",
		ShortUsage: "<file.cpp>",
		Action:    &compileVerb{Mangling: "itanium", DataModel: "lp64", MaxErrors: 20},
	})
}

// compileVerb runs one file through cxx.Compile. Its exported fields
// mirror compilectx.Context (spec.md 6.6: "flags bind to
// compilectx.Context fields"); Mangling/DataModel are spelled out as
// strings rather than the enum types themselves so the teacher's
// reflection-based flag binder, which only knows bool/string/int, can
// bind them without a custom flag.Value.
type compileVerb struct {
	Mangling              string `help:"name mangling ABI to target: itanium or msvc"`
	DataModel             string `help:"data model to target: lp64 or llp64"`
	AccessControlDisabled bool   `help:"treat private/protected members as accessible everywhere"`
	ExceptionsDisabled    bool   `help:"compile as if -fno-exceptions were given"`
	Verbose               bool   `help:"set the compile context's Verbose field; it does not change what is printed"`
	MaxErrors             int    `help:"stop printing diagnostics after this many"`
	Binary                string `help:"write the IR stream in binary form to this path instead of printing text"`
	BigEndian             bool   `help:"use big-endian byte order for -binary (default little-endian)"`
}

func (v *compileVerb) Run(ctx context.Context, flags flag.FlagSet) error {
	args := flags.Args()
	if len(args) != 1 {
		return fmt.Errorf("usage: cxxfe compile <file.cpp>")
	}
	path := args[0]

	toks, err := readTokens(path)
	if err != nil {
		return log.Err(ctx, err, "Failed to read source file")
	}

	cctx := compilectx.New()
	if v.Mangling == "msvc" {
		cctx.ManglingStyle = compilectx.MSVC
	}
	if v.DataModel == "llp64" {
		cctx.DataModel = compilectx.LLP64
	}
	cctx.AccessControlDisabled = v.AccessControlDisabled
	cctx.ExceptionsEnabled = !v.ExceptionsDisabled
	cctx.Verbose = v.Verbose

	unit := cxx.Compile(newSliceCursor(toks), cctx, log.Wrap(ctx))

	if v.Binary != "" {
		if err := v.writeBinary(unit); err != nil {
			return log.Err(ctx, err, "Failed to write binary IR")
		}
	} else {
		for _, instr := range unit.IR {
			fmt.Println(instr.String())
		}
	}

	if unit.Diags.HasErrors() {
		return cxx.CheckErrors(path, unit.Diags, v.MaxErrors)
	}
	return nil
}

// writeBinary serializes unit.IR with core/data/binary+core/data/endian
// instead of the default text dump, the `-binary` flag's whole point.
func (v *compileVerb) writeBinary(unit *cxx.Unit) error {
	order := endian.LittleEndian
	if v.BigEndian {
		order = endian.BigEndian
	}
	f, err := os.Create(v.Binary)
	if err != nil {
		return err
	}
	defer f.Close()
	return ir.WriteBinary(f, order, unit.Interner, unit.IR)
}
