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
	"testing"

	"github.com/stretchr/testify/require"
)

type widget struct {
	Base
	Name  string
	Value int64
}

func TestTableCreateFindGet(t *testing.T) {
	store := NewStore(nil)
	widgets := NewTable[widget](store, "widget")

	w := widgets.Create(func(w *widget) { w.Name = "alpha"; w.Value = 1 })
	require.Equal(t, ID(0), w.ObjectID())

	got, ok := widgets.Find(w.ID)
	require.True(t, ok)
	require.Equal(t, "alpha", got.Name)

	_, err := widgets.Get(ID(99))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSessionUndoRollsBackCreateModifyRemove(t *testing.T) {
	store := NewStore(nil)
	widgets := NewTable[widget](store, "widget")

	base := widgets.Create(func(w *widget) { w.Name = "base"; w.Value = 10 })

	sess := store.StartSession()
	widgets.Modify(base, func(w *widget) { w.Value = 20 })
	second := widgets.Create(func(w *widget) { w.Name = "second"; w.Value = 30 })
	widgets.Remove(base)
	sess.Undo()

	restoredBase, ok := widgets.Find(base.ID)
	require.True(t, ok)
	require.Equal(t, int64(10), restoredBase.Value)

	_, ok = widgets.Find(second.ID)
	require.False(t, ok)
}

func TestSessionPushMergesIntoParent(t *testing.T) {
	store := NewStore(nil)
	widgets := NewTable[widget](store, "widget")

	outer := store.StartSession()
	w := widgets.Create(func(w *widget) { w.Name = "nested"; w.Value = 1 })

	inner := store.StartSession()
	widgets.Modify(w, func(w *widget) { w.Value = 2 })
	inner.Push()

	outer.Undo()

	_, ok := widgets.Find(w.ID)
	require.False(t, ok, "outer undo should also discard the merged inner change")
}

func TestSessionNestingRevision(t *testing.T) {
	store := NewStore(nil)
	require.Equal(t, uint64(0), store.Revision())

	sess := store.StartSession()
	sess.Push()
	require.Equal(t, uint64(1), store.Revision())
}

func TestUndoLastRetreatsCommittedHistory(t *testing.T) {
	store := NewStore(nil)
	widgets := NewTable[widget](store, "widget")

	sess := store.StartSession()
	w := widgets.Create(func(w *widget) { w.Name = "block1"; w.Value = 1 })
	sess.Push()
	require.Equal(t, uint64(1), store.Revision())
	require.Equal(t, 1, store.UndoDepth())

	store.UndoLast()
	require.Equal(t, uint64(0), store.Revision())
	_, ok := widgets.Find(w.ID)
	require.False(t, ok, "popping the committed session should remove the created object")
}

func TestCommitDropsUndoHistory(t *testing.T) {
	store := NewStore(nil)
	widgets := NewTable[widget](store, "widget")

	for i := 0; i < 3; i++ {
		sess := store.StartSession()
		widgets.Create(func(w *widget) { w.Value = int64(i) })
		sess.Push()
	}
	require.Equal(t, 3, store.UndoDepth())

	store.Commit(2)
	require.Equal(t, 1, store.UndoDepth())

	store.UndoLast()
	require.Equal(t, uint64(2), store.Revision())
	require.Panics(t, func() { store.UndoLast() }, "history below the commit point is gone")
}

func TestOutOfOrderDisposalPanics(t *testing.T) {
	store := NewStore(nil)
	outer := store.StartSession()
	_ = store.StartSession()

	require.Panics(t, func() { outer.Undo() })
}

func TestGBTreeIndexOrdering(t *testing.T) {
	store := NewStore(nil)
	widgets := NewTable[widget](store, "widget")
	idx := NewGBTreeIndex[widget]("by_value", func(a, b widget) bool { return a.Value < b.Value })
	widgets.AddIndex(idx)

	widgets.Create(func(w *widget) { w.Value = 30 })
	widgets.Create(func(w *widget) { w.Value = 10 })
	widgets.Create(func(w *widget) { w.Value = 20 })

	var order []int64
	idx.AscendRange(widget{Value: 0}, func(w widget) bool {
		order = append(order, w.Value)
		return true
	})
	require.Equal(t, []int64{10, 20, 30}, order)
}

func TestTBTreeIndexDescend(t *testing.T) {
	store := NewStore(nil)
	widgets := NewTable[widget](store, "widget")
	idx := NewTBTreeIndex[widget]("by_value", func(a, b widget) bool { return a.Value < b.Value })
	widgets.AddIndex(idx)

	widgets.Create(func(w *widget) { w.Value = 5 })
	widgets.Create(func(w *widget) { w.Value = 15 })

	var order []int64
	idx.Descend(func(w widget) bool {
		order = append(order, w.Value)
		return true
	})
	require.Equal(t, []int64{15, 5}, order)
}
