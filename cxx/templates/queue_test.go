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

package templates_test

import (
	"testing"

	"github.com/cxxfe/cxxfe/core/assert"
	"github.com/cxxfe/cxxfe/core/log"
	"github.com/cxxfe/cxxfe/cxx/lexer"
	"github.com/cxxfe/cxxfe/cxx/strings"
	"github.com/cxxfe/cxxfe/cxx/templates"
	"github.com/cxxfe/cxxfe/cxx/types"
)

func TestEnqueueSkipsAlreadyTracked(t *testing.T) {
	ctx := log.Testing(t)
	in := strings.New()
	q := templates.NewQueue(in)

	key := types.InstantiationKey{Base: in.Intern("vector"), Args: []types.TemplateArgument{
		{Kind: types.TypeArgument, Type: types.Index(1)},
	}}
	tok := lexer.Token{Line: 10, Column: 3}

	q.Enqueue(key, tok)
	status, ok := q.Status(key)
	assert.For(ctx, "tracked after enqueue").ThatBoolean(ok).IsTrue()
	assert.For(ctx, "starts pending").ThatInteger(int(status)).Equals(int(templates.Pending))

	q.MarkInProgress(key)
	q.Enqueue(key, tok) // must not reset status back to Pending
	status, _ = q.Status(key)
	assert.For(ctx, "still in progress after re-enqueue").ThatInteger(int(status)).Equals(int(templates.InProgress))
}

func TestMarkInProgressDetectsCycle(t *testing.T) {
	ctx := log.Testing(t)
	in := strings.New()
	q := templates.NewQueue(in)

	key := types.InstantiationKey{Base: in.Intern("recur"), Args: nil}
	first := q.MarkInProgress(key)
	second := q.MarkInProgress(key)

	assert.For(ctx, "first transition succeeds").ThatBoolean(first).IsTrue()
	assert.For(ctx, "second transition detects cycle").ThatBoolean(second).IsFalse()
}

func TestMarkCompleteStoresResult(t *testing.T) {
	ctx := log.Testing(t)
	in := strings.New()
	q := templates.NewQueue(in)

	key := types.InstantiationKey{Base: in.Intern("optional"), Args: []types.TemplateArgument{
		{Kind: types.TypeArgument, Type: types.Index(7)},
	}}
	q.MarkInProgress(key)
	q.MarkComplete(key, types.Index(42))

	status, ok := q.Status(key)
	assert.For(ctx, "tracked").ThatBoolean(ok).IsTrue()
	assert.For(ctx, "complete").ThatInteger(int(status)).Equals(int(templates.Complete))

	result, ok := q.Result(key)
	assert.For(ctx, "result present").ThatBoolean(ok).IsTrue()
	assert.For(ctx, "result value").ThatInteger(int(result)).Equals(42)
}

func TestDistinctArgumentListsAreDistinctKeys(t *testing.T) {
	ctx := log.Testing(t)
	in := strings.New()
	q := templates.NewQueue(in)

	base := in.Intern("vector")
	keyInt := types.InstantiationKey{Base: base, Args: []types.TemplateArgument{{Kind: types.TypeArgument, Type: types.Index(1)}}}
	keyFloat := types.InstantiationKey{Base: base, Args: []types.TemplateArgument{{Kind: types.TypeArgument, Type: types.Index(2)}}}

	q.MarkComplete(keyInt, types.Index(100))
	_, ok := q.Status(keyFloat)
	assert.For(ctx, "distinct args not conflated").ThatBoolean(ok).IsFalse()
}
