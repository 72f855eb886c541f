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

package diag_test

import (
	"testing"

	"github.com/cxxfe/cxxfe/core/assert"
	"github.com/cxxfe/cxxfe/core/log"
	"github.com/cxxfe/cxxfe/cxx/diag"
	"github.com/cxxfe/cxxfe/cxx/lexer"
)

func TestSinkAccumulates(t *testing.T) {
	ctx := log.Wrap(log.Testing(t))
	s := diag.NewSink(ctx)

	assert.For(ctx, "fresh sink").ThatBoolean(s.HasErrors()).IsFalse()

	s.Reportf(diag.NameResolution, lexer.Token{Line: 3, Column: 7}, "unknown identifier %q", "foo")
	assert.For(ctx, "after Reportf").ThatBoolean(s.HasErrors()).IsTrue()
	assert.For(ctx, "after Reportf").ThatBoolean(s.HasFatal()).IsFalse()
	assert.For(ctx, "recorded count").ThatInteger(len(s.All())).Equals(1)

	s.Fatal(lexer.Token{Line: 10}, "invariant broken")
	assert.For(ctx, "after Fatal").ThatBoolean(s.HasFatal()).IsTrue()
	assert.For(ctx, "recorded count").ThatInteger(len(s.All())).Equals(2)
}

func TestDiagnosticErrorFormatting(t *testing.T) {
	ctx := log.Testing(t)
	d := diag.Diagnostic{Kind: diag.Syntax, Token: lexer.Token{Line: 1, Column: 2}, Message: "unexpected token"}
	assert.For(ctx, "formatted").ThatString(d.Error()).Contains("syntax")
	assert.For(ctx, "formatted").ThatString(d.Error()).Contains("unexpected token")
}
