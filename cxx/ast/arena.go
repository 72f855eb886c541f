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

// Package ast defines the tagged-union AST node set of the C++ front
// end and the append-only arena that owns them.
//
// Nodes are stored by value in a contiguous, never-reordered slice and
// referenced by the stable Handle returned from Arena.Add. This is the
// "arena + indices instead of pointer cycles" design (spec.md 9): a
// newly instantiated class can refer back to its pattern's nodes via a
// plain integer, with no shared-pointer cycle to manage.
package ast

// Handle addresses one Node stored in an Arena. The zero Handle (Nil)
// never addresses a real node.
type Handle uint32

// Nil is the reserved "no node" handle.
const Nil Handle = 0

// Arena is the append-only store for every AST node produced while
// parsing one translation unit (spec.md 3.3). Handles into it stay
// valid even across speculative-parse rewinds, because rewinding moves
// non-declaration nodes to the discard pool instead of truncating the
// slice (spec.md 4.4, 9).
type Arena struct {
	nodes    []Node // index 0 is Nil
	discards map[Handle]bool
}

// NewArena creates an empty Arena with the Nil slot reserved.
func NewArena() *Arena {
	return &Arena{nodes: make([]Node, 1, 256), discards: make(map[Handle]bool)}
}

// Add appends n and returns its stable Handle.
func (a *Arena) Add(n Node) Handle {
	h := Handle(len(a.nodes))
	a.nodes = append(a.nodes, n)
	return h
}

// Get returns the node stored at h. Discarded nodes remain readable:
// outstanding handles held by completed instantiations or type records
// must stay valid even after the speculative prefix that produced them
// was abandoned (spec.md 4.4).
func (a *Arena) Get(h Handle) Node {
	return a.nodes[h]
}

// Mark is a save point for speculative parsing: the arena's current
// high-watermark, paired by the parser with the lexer cursor and
// injected-token buffer (spec.md 4.4).
type Mark int

// Watermark returns the current save point.
func (a *Arena) Watermark() Mark {
	return Mark(len(a.nodes))
}

// Discard moves every non-declaration node created since mark into the
// discard pool and reports their handles as no longer part of the live
// tree, without removing them from the backing slice: Get must keep
// working for any handle a completed instantiation or type record
// still points at (spec.md 4.4, 9 — "do not try to truncate the
// arena"). Declaration nodes (FunctionDecl, StructDecl) are identified
// by isRetainedDeclaration and are never discarded, since template
// instantiation bookkeeping may already reference them.
func (a *Arena) Discard(mark Mark) {
	for i := int(mark); i < len(a.nodes); i++ {
		if isRetainedDeclaration(a.nodes[i]) {
			continue
		}
		a.discards[Handle(i)] = true
	}
}

// IsDiscarded reports whether h was moved to the discard pool by a
// speculative-parse rewind. The node is still readable via Get; this
// only tells a caller (typically a printer or validator) that h is not
// part of the live tree produced by the successful parse.
func (a *Arena) IsDiscarded(h Handle) bool {
	return a.discards[h]
}

func isRetainedDeclaration(n Node) bool {
	switch n.(type) {
	case *FunctionDecl, *StructDecl:
		return true
	default:
		return false
	}
}

// Len reports how many nodes (including discarded ones) the arena
// holds.
func (a *Arena) Len() int {
	return len(a.nodes)
}
