// Copyright 2024 The Erigon Authors
// This file is part of Erigon.
//
// Erigon is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Erigon is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Erigon. If not, see <http://www.gnu.org/licenses/>.

package state

import (
	gbtree "github.com/google/btree"
	tbtree "github.com/tidwall/btree"
)

// GBTreeIndex is a secondary ordering backed by google/btree, suited to
// orderings that are scanned from one end (order-book by price, comment
// by cashout time, pending action by execution time): google/btree's
// AscendGreaterOrEqual gives the cheapest "next N in order" walk.
type GBTreeIndex[O Object] struct {
	name string
	less func(a, b O) bool
	tree *gbtree.BTreeG[O]
}

func NewGBTreeIndex[O Object](name string, less func(a, b O) bool) *GBTreeIndex[O] {
	lessAdapter := func(a, b O) bool { return less(a, b) }
	return &GBTreeIndex[O]{
		name: name,
		less: less,
		tree: gbtree.NewG(32, lessAdapter),
	}
}

func (idx *GBTreeIndex[O]) Name() string { return idx.name }

func (idx *GBTreeIndex[O]) Insert(o O) { idx.tree.ReplaceOrInsert(o) }

func (idx *GBTreeIndex[O]) Remove(o O) { idx.tree.Delete(o) }

func (idx *GBTreeIndex[O]) Update(oldObj, newObj O) {
	idx.tree.Delete(oldObj)
	idx.tree.ReplaceOrInsert(newObj)
}

// AscendRange walks [from, ...) in increasing order, stopping when fn
// returns false. Used for "best N orders at or better than this price".
func (idx *GBTreeIndex[O]) AscendRange(from O, fn func(O) bool) {
	idx.tree.AscendGreaterOrEqual(from, func(item O) bool { return fn(item) })
}

func (idx *GBTreeIndex[O]) Len() int { return idx.tree.Len() }

// TBTreeIndex is a secondary ordering backed by tidwall/btree, used for
// orderings read from both ends (witness vote rank needs top-21 from the
// high end and low-water eviction from the low end).
type TBTreeIndex[O Object] struct {
	name string
	tree *tbtree.BTreeG[O]
}

func NewTBTreeIndex[O Object](name string, less func(a, b O) bool) *TBTreeIndex[O] {
	return &TBTreeIndex[O]{
		name: name,
		tree: tbtree.NewBTreeG(less),
	}
}

func (idx *TBTreeIndex[O]) Name() string { return idx.name }

func (idx *TBTreeIndex[O]) Insert(o O) { idx.tree.Set(o) }

func (idx *TBTreeIndex[O]) Remove(o O) { idx.tree.Delete(o) }

func (idx *TBTreeIndex[O]) Update(oldObj, newObj O) {
	idx.tree.Delete(oldObj)
	idx.tree.Set(newObj)
}

// Descend walks from the greatest key downward, used to take the top-N
// ranked witnesses.
func (idx *TBTreeIndex[O]) Descend(fn func(O) bool) {
	max, ok := idx.tree.Max()
	if !ok {
		return
	}
	idx.tree.Descend(max, func(item O) bool { return fn(item) })
}

func (idx *TBTreeIndex[O]) Len() int { return idx.tree.Len() }
