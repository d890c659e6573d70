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

// Package state implements the object store and undo-session contract
// every other core package is built on: find/get/create/modify/remove of
// versioned objects, nested undo sessions, and declared secondary
// orderings. The reference backend is in-memory, a layered overlay
// generalized to arbitrary object kinds.
package state

import (
	"github.com/pkg/errors"
)

// ErrNotFound is returned by Get when an id does not exist. Find never
// returns it; it reports absence through its ok return instead.
var ErrNotFound = errors.New("state: object not found")

// ID is a per-kind, monotonically increasing primary key.
type ID uint64

// Object is the minimal contract every stored type satisfies: it knows its
// own id within its kind's table. Concrete object types (Account, Comment,
// Witness, SSTObject, ...) embed an ID field and implement this.
type Object interface {
	ObjectID() ID
}

// Indexer builds one secondary ordering over a table. Re-indexed on every
// create/modify/remove, so secondary-key ordering is maintained under
// all mutations. Implementations wrap google/btree or tidwall/btree
// b-trees keyed by the ordering's own comparator.
type Indexer[O Object] interface {
	// Name identifies the ordering for lookups (e.g. "by_vote_power",
	// "by_cashout_time", "by_expiration").
	Name() string
	Insert(o O)
	Remove(o O)
	// Update re-homes o after a modify call changed its ordering key.
	Update(oldObj, newObj O)
}
