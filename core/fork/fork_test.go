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

package fork

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func id(b byte) ID {
	var i ID
	i[0] = b
	return i
}

func TestPushBlockLongestChainWins(t *testing.T) {
	db := NewDB(100)
	db.Reset(Item{ID: id(0), Num: 1})

	h, err := db.PushBlock(Item{ID: id(1), Num: 2, Parent: id(0)})
	require.NoError(t, err)
	require.Equal(t, id(1), h.ID)

	// Competing branch reaches height 3 first.
	h, err = db.PushBlock(Item{ID: id(2), Num: 2, Parent: id(0)})
	require.NoError(t, err)
	require.Equal(t, id(1), h.ID, "tie broken by first-seen")

	h, err = db.PushBlock(Item{ID: id(3), Num: 3, Parent: id(2)})
	require.NoError(t, err)
	require.Equal(t, id(3), h.ID)
}

func TestPushBlockUnlinkable(t *testing.T) {
	db := NewDB(100)
	db.Reset(Item{ID: id(0), Num: 1})
	_, err := db.PushBlock(Item{ID: id(9), Num: 2, Parent: id(99)})
	require.ErrorIs(t, err, ErrUnlinkable)
}

func TestFetchBranchFromCommonAncestor(t *testing.T) {
	db := NewDB(100)
	db.Reset(Item{ID: id(0), Num: 1})
	_, err := db.PushBlock(Item{ID: id(1), Num: 2, Parent: id(0)})
	require.NoError(t, err)
	_, err = db.PushBlock(Item{ID: id(2), Num: 2, Parent: id(0)})
	require.NoError(t, err)
	_, err = db.PushBlock(Item{ID: id(3), Num: 3, Parent: id(1)})
	require.NoError(t, err)
	_, err = db.PushBlock(Item{ID: id(4), Num: 3, Parent: id(2)})
	require.NoError(t, err)

	branchA, branchB, err := db.FetchBranchFrom(id(3), id(4))
	require.NoError(t, err)
	require.Equal(t, []Item{{ID: id(3), Num: 3, Parent: id(1)}, {ID: id(1), Num: 2, Parent: id(0)}}, branchA)
	require.Equal(t, []Item{{ID: id(4), Num: 3, Parent: id(2)}, {ID: id(2), Num: 2, Parent: id(0)}}, branchB)
}

func TestPopBlock(t *testing.T) {
	db := NewDB(100)
	db.Reset(Item{ID: id(0), Num: 1})
	_, err := db.PushBlock(Item{ID: id(1), Num: 2, Parent: id(0)})
	require.NoError(t, err)

	popped, ok := db.PopBlock()
	require.True(t, ok)
	require.Equal(t, id(1), popped.ID)

	head, ok := db.Head()
	require.True(t, ok)
	require.Equal(t, id(0), head.ID)
}

func TestSetMaxSizeEvicts(t *testing.T) {
	db := NewDB(100)
	db.SetMaxSize(1)
	db.Reset(Item{ID: id(0), Num: 1})
	_, err := db.PushBlock(Item{ID: id(1), Num: 2, Parent: id(0)})
	require.NoError(t, err)
	_, err = db.PushBlock(Item{ID: id(2), Num: 3, Parent: id(1)})
	require.NoError(t, err)

	_, ok := db.FetchBlock(id(0))
	require.False(t, ok, "height 1 should be evicted once head is height 3 with maxSize 1")
}

func TestEvictedBlockStaysInRecentCache(t *testing.T) {
	db := NewDB(100)
	db.SetMaxSize(1)
	db.Reset(Item{ID: id(0), Num: 1})
	_, err := db.PushBlock(Item{ID: id(1), Num: 2, Parent: id(0)})
	require.NoError(t, err)
	_, err = db.PushBlock(Item{ID: id(2), Num: 3, Parent: id(1)})
	require.NoError(t, err)
	_, err = db.PushBlock(Item{ID: id(3), Num: 4, Parent: id(2)})
	require.NoError(t, err)

	// Height 2 is below the low-water mark and gone from the tree, but
	// it went through PushBlock, so the recent-block cache still serves it.
	got, ok := db.FetchBlock(id(1))
	require.True(t, ok)
	require.Equal(t, uint32(2), got.Num)
	// The Reset root never passed through PushBlock and is truly gone.
	_, ok = db.FetchBlock(id(0))
	require.False(t, ok)
}
