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
	"sync"

	"github.com/erigontech/erigon-lib/log/v3"
)

// frame holds one open session's undo log: closures that, applied in
// reverse order, restore every table touched during the session to its
// pre-session contents.
type frame struct {
	actions []func()
}

// Store is the top-level container of every object table and the shared
// undo-session stack. A session spans all tables registered on the Store,
// so a single block application can open one session and have every
// table's mutations roll back together on failure.
//
// Sessions pushed at the base level are retained as committed frames
// rather than discarded: this is the undo history that lets the engine
// pop already-applied blocks during a fork switch. Commit(rev) is the
// irreversibility cutoff that finally drops them.
type Store struct {
	mu        sync.Mutex
	frames    []*frame
	committed []*frame // one per base-level push, oldest first
	baseRev   uint64   // revision of the oldest retained committed frame, minus one
	revision  uint64
	log       log.Logger
}

func NewStore(logger log.Logger) *Store {
	if logger == nil {
		logger = log.Root()
	}
	return &Store{log: logger}
}

// record appends an undo closure to the innermost open frame. Outside any
// session the mutation is permanent and nothing is recorded.
func (s *Store) record(undo func()) {
	if len(s.frames) == 0 {
		return
	}
	top := s.frames[len(s.frames)-1]
	top.actions = append(top.actions, undo)
}

// Session is a handle returned by StartSession. Exactly one disposition
// (Push, Squash, or Undo) must be applied; Close implements the "undo on
// drop" default for callers using defer.
type Session struct {
	store    *Store
	depth    int
	disposed bool
}

// StartSession opens a new nested session. Sessions form a stack: only the
// innermost open session may be disposed of next.
func (s *Store) StartSession() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = append(s.frames, &frame{})
	return &Session{store: s, depth: len(s.frames) - 1}
}

func (sess *Session) assertTop() {
	if sess.disposed {
		panic("state: session already disposed")
	}
	if sess.depth != len(sess.store.frames)-1 {
		// A programming error: a session further up the stack was
		// closed (or never closed) out of order.
		panic("state: session is not the innermost open session")
	}
}

// Push commits this session's changes so they become visible to (and
// undoable only via) the parent session. If there is no parent, the
// changes are kept as a committed undo frame (rolled back by UndoLast
// until Commit discards it) and the store's revision counter advances.
func (sess *Session) Push() {
	sess.store.mu.Lock()
	defer sess.store.mu.Unlock()
	sess.assertTop()
	sess.merge()
}

// Squash merges this session into its parent as if they had always
// been a single session. Functionally identical to Push in this
// reference implementation; kept distinct because callers express
// different intent with each.
func (sess *Session) Squash() {
	sess.store.mu.Lock()
	defer sess.store.mu.Unlock()
	sess.assertTop()
	sess.merge()
}

func (sess *Session) merge() {
	s := sess.store
	mine := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	if len(s.frames) == 0 {
		s.committed = append(s.committed, mine)
		s.revision++
	} else {
		parent := s.frames[len(s.frames)-1]
		parent.actions = append(parent.actions, mine.actions...)
	}
	sess.disposed = true
}

// Undo discards every change made during this session, applying its undo
// log in reverse (LIFO) order.
func (sess *Session) Undo() {
	sess.store.mu.Lock()
	defer sess.store.mu.Unlock()
	sess.assertTop()
	s := sess.store
	mine := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	for i := len(mine.actions) - 1; i >= 0; i-- {
		mine.actions[i]()
	}
	sess.disposed = true
}

// Close implements the "drop without explicit disposition: undo" default,
// safe to call unconditionally via defer after an explicit Push/Squash.
func (sess *Session) Close() {
	if sess.disposed {
		return
	}
	sess.Undo()
}

// Revision returns the number of sessions committed all the way to the
// base level so far.
func (s *Store) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// SetRevision force-sets the revision counter without touching any undo
// history, used once at genesis/open so revision tracks the head block
// number.
func (s *Store) SetRevision(rev uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.frames) != 0 || len(s.committed) != 0 {
		panic("state: set_revision with undo history present")
	}
	s.revision = rev
	s.baseRev = rev
}

// UndoLast rolls back the most recently committed base-level session,
// retreating the revision counter. This is pop_block's state side: one
// committed frame per block.
func (s *Store) UndoLast() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.frames) != 0 {
		panic("state: undo of committed history while a session is open")
	}
	if len(s.committed) == 0 {
		panic("state: no committed undo history to roll back")
	}
	last := s.committed[len(s.committed)-1]
	s.committed = s.committed[:len(s.committed)-1]
	for i := len(last.actions) - 1; i >= 0; i-- {
		last.actions[i]()
	}
	s.revision--
}

// UndoDepth reports how many committed sessions can still be rolled back.
func (s *Store) UndoDepth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.committed)
}

// Commit irrevocably discards undo history up to and including rev:
// frames that old can no longer be rolled back. The chain calls this
// with the last irreversible block number as blocks become irreversible.
func (s *Store) Commit(rev uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rev > s.revision {
		panic("state: commit of a revision beyond the current one")
	}
	if rev <= s.baseRev {
		return
	}
	drop := rev - s.baseRev
	if drop > uint64(len(s.committed)) {
		drop = uint64(len(s.committed))
	}
	s.committed = s.committed[drop:]
	s.baseRev = rev
}
