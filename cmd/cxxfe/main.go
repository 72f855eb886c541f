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

// Command cxxfe is the command line driver for the front end: a
// verb-based tool (spec.md 6.6) with a `compile` verb that runs a
// source file through parse, instantiation and IR generation and a
// `dump-types` verb that prints the type registry a parse produced.
package main

import (
	"os"

	"github.com/cxxfe/cxxfe/core/app"
	"github.com/cxxfe/cxxfe/cxx/lexer"
)

func main() {
	app.ShortHelp = "cxxfe parses and generates IR for a single C++ translation unit."
	app.Run(app.VerbMain)
}

// readTokens scans path into a token stream ready for a lexer.Cursor,
// the one piece of plumbing every verb in this command needs: the
// core's parser takes a lexer.Cursor but, by spec.md 1's design, never
// supplies one itself.
func readTokens(path string) ([]lexer.Token, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return scan(0, string(src)), nil
}
