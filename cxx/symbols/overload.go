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

package symbols

import (
	"fmt"

	"github.com/cxxfe/cxxfe/cxx/ast"
	"github.com/cxxfe/cxxfe/cxx/types"
)

// Rank is a per-argument conversion rank, ordered worst-to-best so
// that a higher Rank is a strictly better match (spec.md 4.3).
type Rank int

const (
	NoMatch Rank = iota
	UserDefined
	Conversion
	Promotion
	ExactMatch
)

// RankArgument ranks binding an argument of type arg to a parameter of
// type param (spec.md 4.3). Distinct pointer/reference TypeInfo
// records already bake pointee identity into Index equality, so
// pointer-depth/pointee matching falls out of the param == arg and
// Base-equality checks below rather than needing separate handling.
func RankArgument(reg *types.Registry, param, arg types.Index) Rank {
	if param == arg {
		return ExactMatch
	}
	if int(param) >= reg.Len() || int(arg) >= reg.Len() {
		return NoMatch
	}
	pt, at := reg.Get(param), reg.Get(arg)
	if pt.Base == at.Base {
		return ExactMatch
	}
	if isIntegralPromotion(pt.Base, at.Base) {
		return Promotion
	}
	if pt.Base.IsIntegral() && at.Base.IsIntegral() {
		return Conversion
	}
	if pt.Base.IsFloating() && at.Base.IsFloating() {
		return Conversion
	}
	if pt.Base.IsIntegral() && at.Base.IsFloating() || pt.Base.IsFloating() && at.Base.IsIntegral() {
		return Conversion
	}
	return NoMatch
}

// isIntegralPromotion reports whether converting from `from` to `to`
// is a standard integral promotion (narrower-than-int, or bool/char,
// widening to int) rather than a general conversion.
func isIntegralPromotion(to, from types.Base) bool {
	promotable := map[types.Base]bool{
		types.Bool: true, types.Char: true, types.Short: true,
		types.UnsignedChar: true, types.UnsignedShort: true,
	}
	return promotable[from] && to == types.Int
}

// Candidate is one overload-resolution candidate: its declaration and
// its parameter-type signature.
type Candidate struct {
	Decl   ast.Handle
	Params []types.Index
}

// ResolveOverload implements spec.md 4.3: compute a per-argument Rank
// for every candidate, then select the candidate that is
// not-worse-on-every-argument and strictly-better-on-at-least-one
// versus every other candidate. Two incomparable survivors is
// ambiguous; zero candidates that convert at all is no-match.
func ResolveOverload(reg *types.Registry, candidates []Candidate, args []types.Index) (ast.Handle, error) {
	type scored struct {
		cand  Candidate
		ranks []Rank
	}

	var viable []scored
	for _, c := range candidates {
		if len(c.Params) != len(args) {
			continue
		}
		ranks := make([]Rank, len(args))
		ok := true
		for i, a := range args {
			r := RankArgument(reg, c.Params[i], a)
			if r == NoMatch {
				ok = false
				break
			}
			ranks[i] = r
		}
		if ok {
			viable = append(viable, scored{c, ranks})
		}
	}

	if len(viable) == 0 {
		return ast.Nil, fmt.Errorf("no matching overload")
	}
	if len(viable) == 1 {
		return viable[0].cand.Decl, nil
	}

	var best *scored
	ambiguous := false
	for i := range viable {
		isBest := true
		strictlyBetterThanAll := true
		for j := range viable {
			if i == j {
				continue
			}
			cmp := compareRanks(viable[i].ranks, viable[j].ranks)
			if cmp > 0 {
				isBest = false
				break
			}
			if cmp == 0 {
				strictlyBetterThanAll = false
			}
		}
		if isBest {
			if best != nil && !strictlyBetterThanAll {
				ambiguous = true
			}
			best = &viable[i]
		}
	}
	if ambiguous {
		return ast.Nil, fmt.Errorf("ambiguous overload")
	}
	return best.cand.Decl, nil
}

// compareRanks returns -1 if a is not-worse-on-every-argument and
// strictly-better on at least one (a wins), +1 for the symmetric case
// (b wins), 0 if incomparable (neither dominates).
func compareRanks(a, b []Rank) int {
	aBetter, bBetter := false, false
	for i := range a {
		switch {
		case a[i] > b[i]:
			aBetter = true
		case a[i] < b[i]:
			bBetter = true
		}
	}
	switch {
	case aBetter && !bBetter:
		return -1
	case bBetter && !aBetter:
		return 1
	default:
		return 0
	}
}
