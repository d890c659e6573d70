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

// Package signals implements the engine's observer/notification dispatch:
// typed pre/post hooks the chain fires around block, transaction and
// operation application. Delivery order is registration order within a
// priority group.
package signals

import (
	"sort"

	"github.com/erigontech/erigon-lib/log/v3"
)

// Priority groups deliver in ascending numeric order; within a group,
// handlers fire in registration order.
type Priority int

const (
	PriorityPlugin Priority = 0
	PriorityCore   Priority = 100
	PriorityLate   Priority = 200
)

type handler[N any] struct {
	priority Priority
	seq      int
	fn       func(N) error
}

// Signal is a typed broadcast point. The zero value is ready to use.
type Signal[N any] struct {
	handlers []handler[N]
	nextSeq  int
}

// Connect registers fn at the given priority, returning a token that
// Disconnect accepts. Handlers are never silently dropped, only
// explicitly removed.
func (s *Signal[N]) Connect(priority Priority, fn func(N) error) int {
	tok := s.nextSeq
	s.nextSeq++
	s.handlers = append(s.handlers, handler[N]{priority: priority, seq: tok, fn: fn})
	sort.SliceStable(s.handlers, func(i, j int) bool {
		if s.handlers[i].priority != s.handlers[j].priority {
			return s.handlers[i].priority < s.handlers[j].priority
		}
		return s.handlers[i].seq < s.handlers[j].seq
	})
	return tok
}

func (s *Signal[N]) Disconnect(token int) {
	for i, h := range s.handlers {
		if h.seq == token {
			s.handlers = append(s.handlers[:i], s.handlers[i+1:]...)
			return
		}
	}
}

// Emit calls every registered handler in order, stopping and returning the
// first error (a handler vetoing a pre-apply signal aborts the operation
// it guards).
func (s *Signal[N]) Emit(n N) error {
	for _, h := range s.handlers {
		if err := h.fn(n); err != nil {
			return err
		}
	}
	return nil
}

// BlockNotification carries the block number and id around apply_block.
type BlockNotification struct {
	BlockNum uint64
	BlockID  [32]byte
}

// TransactionNotification wraps one transaction's identity during apply.
type TransactionNotification struct {
	TxID     [32]byte
	BlockNum uint64
}

// OperationNotification fires once per operation, before and after it is
// evaluated, carrying the operation itself for virtual-op style observers.
type OperationNotification struct {
	BlockNum uint64
	TxIndex  int
	OpIndex  int
	Op       any
	Virtual  bool
}

// ActionNotification fires around required/optional action execution.
type ActionNotification struct {
	BlockNum uint64
	Action   any
	Required bool
}

// ReindexNotification brackets a full chain replay.
type ReindexNotification struct {
	StartBlockNum uint64
	EndBlockNum   uint64
}

// Hub bundles every signal the engine exposes, one struct per consumer so
// plugin-style observers only need to Connect the ones they care about.
type Hub struct {
	PreApplyBlock   Signal[BlockNotification]
	PostApplyBlock  Signal[BlockNotification]
	PreApplyTx      Signal[TransactionNotification]
	PostApplyTx     Signal[TransactionNotification]
	PreApplyOp      Signal[OperationNotification]
	PostApplyOp     Signal[OperationNotification]
	PreApplyAction  Signal[ActionNotification]
	PostApplyAction Signal[ActionNotification]
	OnIrreversibleBlock Signal[BlockNotification]
	PreReindex      Signal[ReindexNotification]
	PostReindex     Signal[ReindexNotification]
	GenerateOptionalActions Signal[BlockNotification]

	log log.Logger
}

func NewHub(logger log.Logger) *Hub {
	if logger == nil {
		logger = log.Root()
	}
	return &Hub{log: logger}
}

// LogEachBlock is a convenience PostApplyBlock handler used by the
// default CLI wiring (cmd/freezoned) to trace block application.
func (h *Hub) LogEachBlock(n BlockNotification) error {
	h.log.Info("applied block", "num", n.BlockNum)
	return nil
}
