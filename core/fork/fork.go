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

// Package fork implements the fork database: an in-memory tree of
// recently-seen blocks keyed by id, longest-chain head selection (ties
// broken by first-seen), and branch-to-common-ancestor walks for fork
// switching. A small LRU backs the recent-block cache.
package fork

import (
	"github.com/pkg/errors"
	lru "github.com/hashicorp/golang-lru/v2"
)

// ErrUnlinkable is returned by Push when the block's parent is not known
// to the fork db.
var ErrUnlinkable = errors.New("fork: block is unlinkable, parent not found")

// ErrCheckpointMismatch is returned when a block's id disagrees with a
// pinned checkpoint at its height.
var ErrCheckpointMismatch = errors.New("fork: block id does not match checkpoint")

// ID names a block identity. The fork db is otherwise agnostic to block
// contents; core/chain supplies the parent/id/number accessors.
type ID [32]byte

// Item is one node in the fork tree: the minimal identity fields the
// fork db needs, plus an opaque payload (the full signed block) the
// caller can recover via Item.Block.
type Item struct {
	ID     ID
	Num    uint32
	Parent ID
	Block  any // the caller's concrete signed-block type
}

type node struct {
	item     Item
	seq      uint64 // first-seen order, used to break height ties
	children []ID
}

// DB is the in-memory fork tree. Not safe for concurrent use; the engine
// serializes all mutation under its own write lock.
type DB struct {
	nodes     map[ID]*node
	head      ID
	hasHead   bool
	maxSize   uint32
	nextSeq   uint64
	cache     *lru.Cache[ID, Item]
	checkpoints map[uint32]ID
}

// NewDB constructs an empty fork database with a recent-block LRU cache
// of the given size (independent of maxSize, the retention low-water
// mark set via SetMaxSize).
func NewDB(cacheSize int) *DB {
	c, _ := lru.New[ID, Item](cacheSize)
	return &DB{
		nodes:       make(map[ID]*node),
		maxSize:     1000,
		cache:       c,
		checkpoints: make(map[uint32]ID),
	}
}

// SetCheckpoint pins a required block id at a height; PushBlock rejects
// any other id at that height.
func (db *DB) SetCheckpoint(num uint32, id ID) { db.checkpoints[num] = id }

// HighestCheckpoint returns the largest pinned checkpoint height, or 0
// if none are set. Below this height verification steps may be safely
// skipped.
func (db *DB) HighestCheckpoint() uint32 {
	var max uint32
	for n := range db.checkpoints {
		if n > max {
			max = n
		}
	}
	return max
}

// Reset seeds the tree with a single root item (e.g. the current head
// read back from the block log on startup), with no parent requirement.
func (db *DB) Reset(root Item) {
	db.nodes = map[ID]*node{root.ID: {item: root, seq: db.nextSeq}}
	db.nextSeq++
	db.head = root.ID
	db.hasHead = true
}

// PushBlock adds item to the tree and returns the new head (the tip of
// the longest chain by numeric height, ties broken by first-seen). If
// item's parent is not present, returns ErrUnlinkable. If a checkpoint is
// pinned at item.Num and disagrees, returns ErrCheckpointMismatch.
func (db *DB) PushBlock(item Item) (Item, error) {
	if cp, ok := db.checkpoints[item.Num]; ok && cp != item.ID {
		return Item{}, ErrCheckpointMismatch
	}
	if !db.hasHead {
		db.Reset(item)
		return item, nil
	}
	parent, ok := db.nodes[item.Parent]
	if !ok {
		return Item{}, ErrUnlinkable
	}
	n := &node{item: item, seq: db.nextSeq}
	db.nextSeq++
	db.nodes[item.ID] = n
	parent.children = append(parent.children, item.ID)
	db.cache.Add(item.ID, item)

	head := db.nodes[db.head]
	if item.Num > head.item.Num || (item.Num == head.item.Num && n.seq < head.seq) {
		db.head = item.ID
	}
	db.evict()
	return db.nodes[db.head].item, nil
}

// Head returns the current longest-chain tip.
func (db *DB) Head() (Item, bool) {
	if !db.hasHead {
		return Item{}, false
	}
	return db.nodes[db.head].item, true
}

// SetHead force-sets the head pointer, used by fork-switch reapplication
// once each new-branch block has been successfully reapplied.
func (db *DB) SetHead(id ID) bool {
	if _, ok := db.nodes[id]; !ok {
		return false
	}
	db.head = id
	db.hasHead = true
	return true
}

// FetchBlock looks up an item by id. Blocks evicted from the tree (below
// the retention low-water mark) remain fetchable while they stay in the
// recent-block cache, so late fetch-by-id requests during sync don't
// miss just because the tree was trimmed.
func (db *DB) FetchBlock(id ID) (Item, bool) {
	if n, ok := db.nodes[id]; ok {
		return n.item, true
	}
	return db.cache.Get(id)
}

// FetchBlockOnMainBranchByNumber walks from the head back to height num
// along parent pointers. O(head.Num - num); fine for the fork db's
// shallow retention window.
func (db *DB) FetchBlockOnMainBranchByNumber(num uint32) (Item, bool) {
	if !db.hasHead {
		return Item{}, false
	}
	cur, ok := db.nodes[db.head]
	for ok && cur.item.Num > num {
		cur, ok = db.nodes[cur.item.Parent]
	}
	if !ok || cur.item.Num != num {
		return Item{}, false
	}
	return cur.item, true
}

// FetchBranchFrom returns, for two block ids, the path from each back to
// their nearest common ancestor (exclusive), each ordered newest-first.
// This is the walk that drives a fork switch.
func (db *DB) FetchBranchFrom(a, b ID) (branchA, branchB []Item, err error) {
	pathA, err := db.pathToRoot(a)
	if err != nil {
		return nil, nil, err
	}
	pathB, err := db.pathToRoot(b)
	if err != nil {
		return nil, nil, err
	}
	seen := make(map[ID]int, len(pathA))
	for i, item := range pathA {
		seen[item.ID] = i
	}
	commonIdx := -1
	var bIdx int
	for i, item := range pathB {
		if j, ok := seen[item.ID]; ok {
			commonIdx = j
			bIdx = i
			break
		}
	}
	if commonIdx == -1 {
		return nil, nil, errors.New("fork: no common ancestor found")
	}
	return pathA[:commonIdx], pathB[:bIdx], nil
}

func (db *DB) pathToRoot(id ID) ([]Item, error) {
	cur, ok := db.nodes[id]
	if !ok {
		return nil, errors.Errorf("fork: %x is not in the fork db", id)
	}
	var out []Item
	for ok {
		out = append(out, cur.item)
		if cur.item.Parent == cur.item.ID {
			break // a zero-id root is its own zero parent
		}
		cur, ok = db.nodes[cur.item.Parent]
	}
	return out, nil
}

// PopBlock removes the current head from the tree and moves the head
// pointer to its parent, returning the popped item. Used both when the
// engine pops a block and by fork-switch rollback.
func (db *DB) PopBlock() (Item, bool) {
	if !db.hasHead {
		return Item{}, false
	}
	cur := db.nodes[db.head]
	popped := cur.item
	delete(db.nodes, db.head)
	db.head = cur.item.Parent
	return popped, true
}

// Remove deletes a block (and implicitly orphans its descendants — the
// caller is expected to have already popped them) from the tree.
func (db *DB) Remove(id ID) { delete(db.nodes, id) }

// SetMaxSize sets the retention low-water mark: Evict (called after every
// PushBlock) discards any item older than head.Num - k.
func (db *DB) SetMaxSize(k uint32) { db.maxSize = k }

func (db *DB) evict() {
	head, ok := db.nodes[db.head]
	if !ok || head.item.Num <= db.maxSize {
		return
	}
	low := head.item.Num - db.maxSize
	for id, n := range db.nodes {
		if n.item.Num < low {
			delete(db.nodes, id)
		}
	}
}

// Len reports the number of blocks currently retained.
func (db *DB) Len() int { return len(db.nodes) }
