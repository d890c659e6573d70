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

package chain

import (
	"sort"
	"sync"

	"github.com/erigontech/erigon-lib/log/v3"
	"github.com/pkg/errors"

	"github.com/fresszonesongs/freezone/core/blocklog"
	"github.com/fresszonesongs/freezone/core/consensus"
	"github.com/fresszonesongs/freezone/core/evaluator"
	"github.com/fresszonesongs/freezone/core/fork"
	"github.com/fresszonesongs/freezone/core/maintenance"
	"github.com/fresszonesongs/freezone/core/objects"
	"github.com/fresszonesongs/freezone/core/signals"
	"github.com/fresszonesongs/freezone/core/state"
	"github.com/fresszonesongs/freezone/core/types"
)

// MaxTimeUntilExpiration is freezone_MAX_TIME_UNTIL_EXPIRATION.
const MaxTimeUntilExpiration = 3600

// Chain is the top-level engine: one per process, owning the store, the
// fork database, the block log and the maintenance state. All state
// mutation happens on the caller's goroutine under the write lock.
type Chain struct {
	mu  sync.RWMutex
	cfg Config

	World    *World
	ForkDB   *fork.DB
	BlockLog *blocklog.Log
	Hub      *signals.Hub
	Registry *evaluator.Registry

	ms  *maintenance.State
	log log.Logger

	pendingSession *state.Session
	pendingTxs     []pendingTx
	poppedTxs      []pendingTx

	blockVirtualOps []types.VirtualOp
	virtualOpSeq    int
	currentTxIndex  int
}

type pendingTx struct {
	Tx types.SignedTransaction
	ID types.TxID
}

// New constructs and genesis-initializes an engine. blockLog may be nil
// (skip_block_log mode); the log is then kept only in the fork db.
func New(cfg Config, blockLog *blocklog.Log, logger log.Logger) *Chain {
	if logger == nil {
		logger = log.Root()
	}
	store := state.NewStore(logger)
	world := NewWorld(store, logger)

	c := &Chain{
		cfg:      cfg,
		World:    world,
		ForkDB:   fork.NewDB(1024),
		BlockLog: blockLog,
		Hub:      signals.NewHub(logger),
		Registry: evaluator.NewRegistry(),
		log:      logger,
	}
	for num, id := range cfg.Checkpoints {
		c.ForkDB.SetCheckpoint(num, fork.ID(id))
	}
	c.ForkDB.SetMaxSize(cfg.MaxUndoHistory)

	world.SetEmitter(c.emitVirtual)
	c.ms = world.MaintenanceState(cfg.Hardforks, c.emitVirtual)

	world.InitGenesis(cfg)
	c.ForkDB.Reset(fork.Item{Num: 0})
	return c
}

// emitVirtual numbers a virtual operation within the current block and
// notifies observers.
func (c *Chain) emitVirtual(op types.VirtualOp) {
	c.virtualOpSeq++
	c.blockVirtualOps = append(c.blockVirtualOps, op)
	g := c.World.globals()
	_ = c.Hub.PostApplyOp.Emit(signals.OperationNotification{
		BlockNum: uint64(g.HeadBlockNumber),
		TxIndex:  c.currentTxIndex,
		OpIndex:  c.virtualOpSeq,
		Op:       op,
		Virtual:  true,
	})
}

// BlockVirtualOps returns the virtual operations emitted while applying
// the most recent block, in emission order.
func (c *Chain) BlockVirtualOps() []types.VirtualOp {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]types.VirtualOp, len(c.blockVirtualOps))
	copy(out, c.blockVirtualOps)
	return out
}

// WithReadLock runs f with shared access to the state.
func (c *Chain) WithReadLock(f func()) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	f()
}

// PushBlock ingests one signed block. The pending-transaction
// session is undone first and surviving pending transactions re-applied
// after.
func (c *Chain) PushBlock(b *types.SignedBlock, skip SkipFlags) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closePendingSession()
	err := c.pushBlockLocked(b, skip)
	c.reapplyPending(skip)
	return err
}

func (c *Chain) pushBlockLocked(b *types.SignedBlock, skip SkipFlags) error {
	if skip.Has(SkipForkDB) {
		return c.applyBlockSession(b, skip)
	}

	prevHead, _ := c.ForkDB.Head()
	item := fork.Item{ID: fork.ID(b.ID), Num: b.Num, Parent: fork.ID(b.PreviousID), Block: b}
	newHead, err := c.ForkDB.PushBlock(item)
	if err != nil {
		return err
	}

	switch {
	case newHead.ID == item.ID && item.Parent == prevHead.ID:
		// Extends the main branch.
		if err := c.applyBlockSession(b, skip); err != nil {
			c.ForkDB.Remove(item.ID)
			c.ForkDB.SetHead(prevHead.ID)
			return err
		}
		return nil
	case newHead.ID == item.ID:
		// Higher head on a competing branch: switch forks.
		return c.switchForks(prevHead, newHead, skip)
	default:
		// Not higher: retained in the fork db, state untouched.
		return nil
	}
}

// switchForks pops to the common ancestor, applies the new branch, and
// restores the old branch wholesale if anything in the new branch
// fails.
func (c *Chain) switchForks(oldHead, newHead fork.Item, skip SkipFlags) error {
	branchNew, branchOld, err := c.ForkDB.FetchBranchFrom(newHead.ID, oldHead.ID)
	if err != nil {
		return err
	}
	c.log.Info("switching forks",
		"from", oldHead.Num, "to", newHead.Num, "pop", len(branchOld), "apply", len(branchNew))

	// PushBlock already moved the fork-db head to the new tip; point it
	// back at the old head so the pops walk the losing branch.
	c.ForkDB.SetHead(oldHead.ID)
	for range branchOld {
		c.popBlockLocked()
	}

	applied := 0
	var applyErr error
	for i := len(branchNew) - 1; i >= 0; i-- {
		blk := branchNew[i].Block.(*types.SignedBlock)
		if applyErr = c.applyBlockSession(blk, skip); applyErr != nil {
			break
		}
		c.ForkDB.SetHead(branchNew[i].ID)
		applied++
	}
	if applyErr == nil {
		return nil
	}

	// Failure: discard the bad branch from the tree, undo whatever part
	// of it applied, and reapply the original branch oldest-first.
	for i := range branchNew {
		c.ForkDB.Remove(branchNew[i].ID)
	}
	for ; applied > 0; applied-- {
		c.World.Store.UndoLast()
	}
	for i := len(branchOld) - 1; i >= 0; i-- {
		blk := branchOld[i].Block.(*types.SignedBlock)
		if _, err := c.ForkDB.PushBlock(branchOld[i]); err != nil {
			c.log.Error("re-inserting original branch failed", "block", branchOld[i].Num, "err", err)
			return err
		}
		if err := c.applyBlockSession(blk, skip); err != nil {
			// The original branch applied before; failing now is fatal.
			c.log.Error("restoring original branch failed", "block", branchOld[i].Num, "err", err)
			return err
		}
		c.ForkDB.SetHead(branchOld[i].ID)
	}
	return applyErr
}

// PopBlock undoes the head block: its state session is rolled back and
// its transactions queued for rebroadcast.
func (c *Chain) PopBlock() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closePendingSession()
	c.popBlockLocked()
	c.reapplyPending(SkipNothing)
}

func (c *Chain) popBlockLocked() {
	if c.World.Store.UndoDepth() == 0 {
		// Head is already irreversible; nothing can be popped.
		return
	}
	item, ok := c.ForkDB.PopBlock()
	if !ok {
		return
	}
	c.World.Store.UndoLast()
	if blk, ok := item.Block.(*types.SignedBlock); ok && blk != nil {
		for i, tx := range blk.Transactions {
			c.poppedTxs = append(c.poppedTxs, pendingTx{Tx: tx, ID: blk.TxIDs[i]})
		}
	}
}

// applyBlockSession wraps applyBlock in a base-level undo session,
// pushing it on success so one committed frame exists per block.
func (c *Chain) applyBlockSession(b *types.SignedBlock, skip SkipFlags) error {
	sess := c.World.Store.StartSession()
	defer sess.Close()

	c.blockVirtualOps = c.blockVirtualOps[:0]
	c.virtualOpSeq = 0

	if err := c.applyBlock(b, skip); err != nil {
		return err
	}
	sess.Push()
	c.migrateIrreversible()
	return nil
}

func (c *Chain) applyBlock(b *types.SignedBlock, skip SkipFlags) error {
	w := c.World
	g := w.globals()

	_ = c.Hub.PreApplyBlock.Emit(signals.BlockNotification{BlockNum: uint64(b.Num), BlockID: b.ID})

	trusted := b.Num <= c.ForkDB.HighestCheckpoint()

	if !trusted {
		if b.PreviousID != g.HeadBlockID {
			return errors.Wrapf(ErrInvalidHeader, "block %d links to %x, head is %x",
				b.Num, b.PreviousID[:4], g.HeadBlockID[:4])
		}
		if b.Timestamp <= g.Time {
			return errors.Wrapf(ErrInvalidHeader, "block %d timestamp not after head time", b.Num)
		}
		if !skip.Has(SkipWitnessScheduleCheck) {
			if scheduled := c.scheduledWitnessAt(b.Timestamp, g); scheduled != "" && scheduled != b.Witness {
				return errors.Wrapf(ErrWrongWitness, "slot belongs to %s, block signed by %s", scheduled, b.Witness)
			}
		}
		if !skip.Has(SkipMerkleCheck) {
			if root := ComputeMerkleRoot(b.TxIDs); root != b.MerkleRoot {
				if _, tolerated := c.cfg.KnownBadMerkle[b.ID]; !tolerated {
					return errors.Wrapf(ErrMerkleMismatch, "block %d", b.Num)
				}
			}
		}
	}

	// Missed-slot accounting.
	missed := consensus.MissedSlots(g.Time, b.Timestamp)
	if g.HeadBlockNumber == 0 {
		missed = 0 // first block establishes the clock
	}
	c.chargeMissedSlots(g, missed)

	bitmap := consensus.UpdateRecentSlotsFilled(g.RecentSlotsFilled, missed)
	w.Globals.Modify(w.globals(), func(p *objects.DynamicGlobalProperties) {
		p.HeadBlockNumber = b.Num
		p.HeadBlockID = b.ID
		p.Time = b.Timestamp
		p.CurrentWitness = b.Witness
		p.CurrentAslot += uint64(missed) + 1
		p.RecentSlotsFilled = bitmap
		p.ParticipationCount = consensus.ParticipationPercent(bitmap)
	})

	// TaPoS ring entry.
	if summary, ok := w.BlockSummaries.Find(state.ID(b.Num % BlockSummaryRingSize)); ok {
		w.BlockSummaries.Modify(summary, func(s *objects.BlockSummary) {
			s.BlockID = b.ID
		})
	}

	c.processHeaderExtensions(b)

	for i, tx := range b.Transactions {
		c.currentTxIndex = i
		txSess := w.Store.StartSession()
		if err := c.applyTransaction(tx, b.TxIDs[i], skip); err != nil {
			txSess.Undo()
			return errors.Wrapf(err, "block %d transaction %d", b.Num, i)
		}
		txSess.Push()
	}
	c.currentTxIndex = -1

	if wt, ok := w.GetWitness(b.Witness); ok {
		w.Witnesses.Modify(wt, func(p *objects.Witness) {
			p.LastConfirmedBlockNum = b.Num
		})
	}

	c.ms.ClearExpiredTransactions(b.Timestamp)
	_ = c.Hub.GenerateOptionalActions.Emit(signals.BlockNotification{BlockNum: uint64(b.Num), BlockID: b.ID})
	if err := c.ms.Run(maintenance.BlockContext{
		Now:                  b.Timestamp,
		BlockNum:             b.Num,
		Witness:              b.Witness,
		RequiredActions:      b.Extensions.RequiredActions,
		OptionalActions:      b.Extensions.OptionalActions,
		LastIrreversibleTime: c.lastIrreversibleTime(),
	}); err != nil {
		return err
	}

	c.updateLastIrreversibleBlock()

	if c.cfg.DoValidateInvariants && !skip.Has(SkipValidateInvariants) {
		if err := w.ValidateInvariants(); err != nil {
			return err
		}
	}

	_ = c.Hub.PostApplyBlock.Emit(signals.BlockNotification{BlockNum: uint64(b.Num), BlockID: b.ID})
	return nil
}

// chargeMissedSlots increments each missing scheduled witness's miss
// counter; witnesses far behind with healthy participation are shut
// down (signing key cleared) via a virtual op.
func (c *Chain) chargeMissedSlots(g objects.DynamicGlobalProperties, missed int64) {
	if missed <= 0 {
		return
	}
	sched, ok := c.World.WitnessSchedule.Find(0)
	if !ok || len(sched.CurrentShuffledWitnesses) == 0 {
		return
	}
	n := uint64(len(sched.CurrentShuffledWitnesses))
	for i := int64(0); i < missed; i++ {
		slot := (g.CurrentAslot + uint64(i) + 1) % n
		name := sched.CurrentShuffledWitnesses[slot]
		wt, ok := c.World.GetWitness(name)
		if !ok {
			continue
		}
		wt = c.World.Witnesses.Modify(wt, func(p *objects.Witness) {
			p.TotalMissed++
		})
		if wt.TotalMissed%100 == 0 && g.ParticipationCount > 90 {
			c.World.Witnesses.Modify(wt, func(p *objects.Witness) {
				p.SigningKey = types.PublicKey{}
			})
			c.emitVirtual(types.ShutdownWitnessOp{Owner: name})
		}
	}
}

// scheduledWitnessAt resolves which witness owns the slot a timestamp
// falls in.
func (c *Chain) scheduledWitnessAt(when int64, g objects.DynamicGlobalProperties) string {
	sched, ok := c.World.WitnessSchedule.Find(0)
	if !ok || len(sched.CurrentShuffledWitnesses) == 0 {
		return ""
	}
	slots := consensus.SlotsSinceGenesis(g.Time, when)
	aslot := g.CurrentAslot + uint64(slots)
	return sched.CurrentShuffledWitnesses[aslot%uint64(len(sched.CurrentShuffledWitnesses))]
}

// processHeaderExtensions records the producing witness's reported
// version and hardfork vote.
func (c *Chain) processHeaderExtensions(b *types.SignedBlock) {
	ext := b.Extensions
	if ext.ReportedVersion == ([3]uint16{}) && ext.HardforkVersionVote == 0 {
		return
	}
	wt, ok := c.World.GetWitness(b.Witness)
	if !ok {
		return
	}
	c.World.Witnesses.Modify(wt, func(p *objects.Witness) {
		if ext.ReportedVersion != ([3]uint16{}) {
			p.RunningVersion = ext.ReportedVersion
		}
		if ext.HardforkVersionVote != 0 {
			p.HardforkVersionVote = ext.HardforkVersionVote
			p.HardforkTimeVote = ext.HardforkTimeVote
		}
	})
}

func (c *Chain) applyTransaction(tx types.SignedTransaction, txID types.TxID, skip SkipFlags) error {
	w := c.World
	_ = c.Hub.PreApplyTx.Emit(signals.TransactionNotification{TxID: txID, BlockNum: uint64(w.globals().HeadBlockNumber)})

	if !skip.Has(SkipValidate) {
		for _, op := range tx.Operations {
			if err := op.Validate(); err != nil {
				return err
			}
		}
	}

	if !skip.Has(SkipTransactionDupeCheck) {
		dup := false
		w.Transactions.Range(func(t objects.TransactionRecord) bool {
			if t.TxID == txID {
				dup = true
				return false
			}
			return true
		})
		if dup {
			return ErrDuplicateTransaction
		}
	}

	if !skip.Has(SkipAuthorityCheck) && !skip.Has(SkipTransactionSignatures) {
		required := map[string]types.AuthorityLevel{}
		for _, op := range tx.Operations {
			for account, level := range op.RequiredAuthorities() {
				if existing, ok := required[account]; !ok || level > existing {
					required[account] = level
				}
			}
		}
		if err := w.VerifyAuthority(required, tx.SigningKeys); err != nil {
			return err
		}
	}

	if !skip.Has(SkipTaposCheck) {
		summary, ok := w.BlockSummaries.Find(state.ID(tx.RefBlockNum))
		if !ok {
			return ErrTaposMismatch
		}
		id := summary.BlockID
		prefix := uint32(id[4])<<24 | uint32(id[5])<<16 | uint32(id[6])<<8 | uint32(id[7])
		if prefix != tx.RefBlockPrefix {
			return ErrTaposMismatch
		}
	}

	now := w.Now()
	if tx.Expiration <= now || tx.Expiration > now+MaxTimeUntilExpiration {
		return ErrTransactionExpired
	}

	w.Transactions.Create(func(t *objects.TransactionRecord) {
		t.TxID = txID
		t.Expiration = tx.Expiration
	})

	for opIdx, op := range tx.Operations {
		n := signals.OperationNotification{
			BlockNum: uint64(w.globals().HeadBlockNumber),
			TxIndex:  c.currentTxIndex,
			OpIndex:  opIdx,
			Op:       op,
		}
		if err := c.Hub.PreApplyOp.Emit(n); err != nil {
			return err
		}
		if err := c.Registry.Dispatch(w, op); err != nil {
			return err
		}
		_ = c.Hub.PostApplyOp.Emit(n)
	}

	_ = c.Hub.PostApplyTx.Emit(signals.TransactionNotification{TxID: txID, BlockNum: uint64(w.globals().HeadBlockNumber)})
	return nil
}

// PushTransaction applies a loose transaction against the lazily-opened
// pending session.
func (c *Chain) PushTransaction(tx types.SignedTransaction, txID types.TxID, skip SkipFlags) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pushTransactionLocked(tx, txID, skip, true)
}

func (c *Chain) pushTransactionLocked(tx types.SignedTransaction, txID types.TxID, skip SkipFlags, keep bool) error {
	if c.pendingSession == nil {
		c.pendingSession = c.World.Store.StartSession()
	}
	nested := c.World.Store.StartSession()
	c.currentTxIndex = len(c.pendingTxs)
	if err := c.applyTransaction(tx, txID, skip); err != nil {
		nested.Undo()
		return err
	}
	nested.Push()
	if keep {
		c.pendingTxs = append(c.pendingTxs, pendingTx{Tx: tx, ID: txID})
	}
	return nil
}

func (c *Chain) closePendingSession() {
	if c.pendingSession != nil {
		c.pendingSession.Undo()
		c.pendingSession = nil
	}
}

// reapplyPending replays the pending queue (plus transactions popped off
// a losing fork) against a fresh session; failures are dropped.
func (c *Chain) reapplyPending(skip SkipFlags) {
	queue := append(c.poppedTxs, c.pendingTxs...)
	c.poppedTxs = nil
	c.pendingTxs = nil
	for _, p := range queue {
		if err := c.pushTransactionLocked(p.Tx, p.ID, skip, true); err != nil {
			c.log.Debug("dropping pending transaction", "err", err)
		}
	}
}

// PendingTransactions returns the current pending queue.
func (c *Chain) PendingTransactions() []types.SignedTransaction {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]types.SignedTransaction, 0, len(c.pendingTxs))
	for _, p := range c.pendingTxs {
		out = append(out, p.Tx)
	}
	return out
}

// updateLastIrreversibleBlock advances irreversibility: the scheduled
// witnesses' last-confirmed heights, sorted ascending, at the
// (1 - IRREVERSIBLE_THRESHOLD) order statistic.
func (c *Chain) updateLastIrreversibleBlock() {
	w := c.World
	sched, ok := w.WitnessSchedule.Find(0)
	if !ok || len(sched.CurrentShuffledWitnesses) == 0 {
		return
	}
	confirms := make([]uint32, 0, len(sched.CurrentShuffledWitnesses))
	for _, name := range sched.CurrentShuffledWitnesses {
		if wt, ok := w.GetWitness(name); ok {
			confirms = append(confirms, wt.LastConfirmedBlockNum)
		}
	}
	if len(confirms) == 0 {
		return
	}
	sort.Slice(confirms, func(i, j int) bool { return confirms[i] < confirms[j] })
	offset := (10000 - consensus.IrreversibleThresholdPercent) * len(confirms) / 10000
	lib := confirms[offset]

	g := w.globals()
	if lib > g.LastIrreversibleBlockNum {
		w.Globals.Modify(g, func(p *objects.DynamicGlobalProperties) {
			p.LastIrreversibleBlockNum = lib
		})
		_ = c.Hub.OnIrreversibleBlock.Emit(signals.BlockNotification{BlockNum: uint64(lib)})
	}
}

func (c *Chain) lastIrreversibleTime() int64 {
	g := c.World.globals()
	if item, ok := c.ForkDB.FetchBlockOnMainBranchByNumber(g.LastIrreversibleBlockNum); ok {
		if blk, ok := item.Block.(*types.SignedBlock); ok && blk != nil {
			return blk.Timestamp
		}
	}
	return 0
}

// migrateIrreversible appends newly-irreversible blocks to the block
// log, commits their undo history away, and lets the fork db trim.
func (c *Chain) migrateIrreversible() {
	g := c.World.globals()
	lib := g.LastIrreversibleBlockNum

	if c.BlockLog != nil && !c.cfg.SkipFlags.Has(SkipBlockLog) {
		for next := c.BlockLog.Head() + 1; next <= lib; next++ {
			item, ok := c.ForkDB.FetchBlockOnMainBranchByNumber(next)
			if !ok {
				break
			}
			blk, ok := item.Block.(*types.SignedBlock)
			if !ok || blk == nil {
				break
			}
			data, err := EncodeBlock(blk)
			if err != nil {
				c.log.Error("encoding block for log", "num", next, "err", err)
				break
			}
			if err := c.BlockLog.Append(data); err != nil {
				c.log.Error("appending block to log", "num", next, "err", err)
				break
			}
		}
	}
	c.World.Store.Commit(uint64(lib))
}

// GenerateBlock assembles a block at the given timestamp from the due
// automated actions and the pending transaction queue, then applies it.
// The production scheduler proper is external; this is the minimal
// producer used by reindex bootstrapping and tests.
func (c *Chain) GenerateBlock(when int64, witness string, skip SkipFlags) (*types.SignedBlock, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	g := c.World.globals()
	txs := make([]types.SignedTransaction, 0, len(c.pendingTxs))
	txIDs := make([]types.TxID, 0, len(c.pendingTxs))
	for _, p := range c.pendingTxs {
		txs = append(txs, p.Tx)
		txIDs = append(txIDs, p.ID)
	}

	// The pending session must be undone before peeking at the due
	// actions so generation sees post-block state, then re-opened by
	// reapplyPending below.
	c.closePendingSession()

	header := types.BlockHeader{
		PreviousID: g.HeadBlockID,
		Timestamp:  when,
		Witness:    witness,
		Extensions: types.BlockHeaderExtensions{
			RequiredActions: c.ms.DueRequiredActions(when),
			OptionalActions: c.ms.DueOptionalActions(when),
		},
	}
	b := &types.SignedBlock{
		BlockHeader:  header,
		Num:          g.HeadBlockNumber + 1,
		Transactions: txs,
		TxIDs:        txIDs,
		MerkleRoot:   ComputeMerkleRoot(txIDs),
	}
	b.ID = MakeBlockID(b.Num, DigestBlockHeader(header))

	err := c.pushBlockLocked(b, skip)
	c.reapplyPending(skip)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Reindex replays the block log from the start against a fresh state:
// the caller constructs a new Chain and hands it the log.
func (c *Chain) Reindex(stopAt uint32) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.BlockLog == nil {
		return errors.New("chain: reindex requires a block log")
	}
	head := c.BlockLog.Head()
	if stopAt > 0 && stopAt < head {
		head = stopAt
	}
	_ = c.Hub.PreReindex.Emit(signals.ReindexNotification{StartBlockNum: 1, EndBlockNum: uint64(head)})

	for n := uint32(1); n <= head; n++ {
		data, err := c.BlockLog.ReadBlockByNum(n)
		if err != nil {
			return errors.Wrapf(ErrBlockLogCorrupt, "reading block %d: %v", n, err)
		}
		blk, err := DecodeBlock(data)
		if err != nil {
			return errors.Wrapf(ErrBlockLogCorrupt, "decoding block %d: %v", n, err)
		}
		if blk.Num != n {
			return errors.Wrapf(ErrBlockLogCorrupt, "entry %d holds block %d", n, blk.Num)
		}
		if err := c.applyBlockSession(blk, ReplaySkipFlags); err != nil {
			return errors.Wrapf(err, "replaying block %d", n)
		}
		if c.cfg.BenchmarkInterval > 0 && n%c.cfg.BenchmarkInterval == 0 && c.cfg.BenchmarkFunc != nil {
			c.cfg.BenchmarkFunc(n)
		}
	}

	// Seed the fork db at the replayed head so live sync can continue.
	g := c.World.globals()
	c.ForkDB.Reset(fork.Item{ID: fork.ID(g.HeadBlockID), Num: g.HeadBlockNumber})

	_ = c.Hub.PostReindex.Emit(signals.ReindexNotification{StartBlockNum: 1, EndBlockNum: uint64(head)})
	c.log.Info("reindex complete", "head", g.HeadBlockNumber)
	return nil
}
