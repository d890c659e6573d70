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

// Package maintenance implements the fixed post-block maintenance
// sequence: the per-block sweep that pays inflation, cashes out content
// rewards, processes vesting withdrawals and savings, settles
// conversions, expires orders and governance requests, advances the SST
// lifecycle and applies eligible hardforks. Unlike core/evaluator, which
// is written against a narrow per-operation Context interface (one
// entity touched per call), maintenance runs bulk sweeps over entire
// tables every block, so it is handed the concrete *state.Table pointers
// directly by core/chain's World.
package maintenance

import (
	"github.com/erigontech/erigon-lib/log/v3"

	"github.com/fresszonesongs/freezone/core/consensus"
	"github.com/fresszonesongs/freezone/core/objects"
	"github.com/fresszonesongs/freezone/core/orderbook"
	"github.com/fresszonesongs/freezone/core/sst"
	"github.com/fresszonesongs/freezone/core/state"
	"github.com/fresszonesongs/freezone/core/types"
)

// ProposalMaintenanceIntervalSeconds gates the daily proposal-payment
// sweep; every other step runs on every block.
const ProposalMaintenanceIntervalSeconds = 24 * 60 * 60

// State bundles every table and engine the maintenance loop touches. All
// of it is owned and constructed by core/chain; maintenance never creates
// a table itself.
type State struct {
	Store *state.Store

	Globals         *state.Table[objects.DynamicGlobalProperties]
	FeedHistory     *state.Table[objects.FeedHistory]
	HardforkProp    *state.Table[objects.HardforkProperty]
	NAIPool         *state.Table[objects.NAIPool]
	RequiredActions *state.Table[objects.PendingAction]
	OptionalActions *state.Table[objects.PendingAction]

	Accounts        *state.Table[objects.Account]
	Witnesses       *state.Table[objects.Witness]
	WitnessesByVote *state.TBTreeIndex[objects.Witness]
	WitnessSchedule *state.Table[objects.WitnessSchedule]
	BlockSummaries  *state.Table[objects.BlockSummary]
	Transactions    *state.Table[objects.TransactionRecord]

	WithdrawRoutes        *state.Table[objects.WithdrawRouteEntry]
	Delegations           *state.Table[objects.VestingDelegation]
	DelegationExpirations *state.Table[objects.VestingDelegationExpiration]

	Comments     *state.Table[objects.Comment]
	CommentVotes *state.Table[objects.CommentVote]
	RewardFunds  *state.Table[objects.RewardFund]

	Market           *orderbook.Book
	ConvertRequests  *state.Table[objects.ConvertRequest]
	Escrows          *state.Table[objects.Escrow]
	SavingsWithdraws *state.Table[objects.SavingsWithdraw]
	LiquidityRewards *state.Table[objects.LiquidityRewardBalance]

	RecoveryRequests       *state.Table[objects.AccountRecoveryRequest]
	ChangeRecoveryRequests *state.Table[objects.ChangeRecoveryAccountRequest]
	OwnerAuthHistories     *state.Table[objects.OwnerAuthorityHistory]
	DeclineVotingRequests  *state.Table[objects.DeclineVotingRightsRequest]

	Proposals     *state.Table[objects.Proposal]
	ProposalVotes *state.Table[objects.ProposalVote]

	SST        *sst.Engine
	Hardforks  consensus.Table
	HFVotesFor func() []consensus.WitnessVersionVote

	Emit func(types.VirtualOp)
	Log  log.Logger
}

// BlockContext carries what the maintenance loop needs from the block
// that was just applied: its time and producer, plus the automated
// actions the block header carried.
type BlockContext struct {
	Now             int64
	BlockNum        uint32
	Witness         string
	RequiredActions []types.Action
	OptionalActions []types.Action
	// LastIrreversibleTime is the timestamp of the last-irreversible
	// block, used by the optional-action garbage collection cutoff.
	LastIrreversibleTime int64
}

// Run executes the fixed post-block sequence. The leading steps (global
// properties, signing-witness stats, block summary and transaction
// expiry) are performed by core/chain inline with block application
// since they need the raw block. Every step is individually
// undoable: the caller has already opened an undo session for the
// enclosing block. A non-nil error aborts the block.
func (s *State) Run(bc BlockContext) error {
	s.clearExpiredOrders(bc.Now)
	s.clearExpiredDelegations(bc.Now)
	s.updateWitnessSchedule(bc)
	s.updateMedianFeed()
	s.updateVirtualSupply()
	s.clearNullAccountBalance()
	s.processFunds(bc)
	s.processConversions(bc.Now)
	s.processCommentCashout(bc.Now)
	s.processVestingWithdrawals(bc.Now)
	s.processSavingsWithdrawals(bc.Now)
	s.processSubsidizedAccounts(bc)
	s.payLiquidityReward(bc)
	s.updateVirtualSupply()
	s.processAccountRecovery(bc.Now)
	s.processEscrowRatificationExpiration(bc.Now)
	s.processDeclineVotingRights(bc.Now)
	s.processProposals(bc.Now)
	s.generateRequiredActions(bc.Now)
	s.generateOptionalActions(bc.Now)
	if err := s.processRequiredActions(bc); err != nil {
		return err
	}
	if err := s.processOptionalActions(bc); err != nil {
		return err
	}
	s.applyEligibleHardforks(bc.Now)
	return nil
}

func (s *State) globals() objects.DynamicGlobalProperties {
	g, ok := s.Globals.Find(0)
	if !ok {
		panic("maintenance: dynamic global properties row missing")
	}
	return g
}

func (s *State) emit(op types.VirtualOp) {
	if s.Emit != nil {
		s.Emit(op)
	}
}

func (s *State) logger() log.Logger {
	if s.Log != nil {
		return s.Log
	}
	return log.Root()
}

// ClearExpiredTransactions drops dedup rows past their replay-
// protection window. Exported because core/chain runs it inline with
// block application, before this package's Run sequence.
func (s *State) ClearExpiredTransactions(now int64) {
	var expired []objects.TransactionRecord
	s.Transactions.Range(func(t objects.TransactionRecord) bool {
		if t.Expiration <= now {
			expired = append(expired, t)
		}
		return true
	})
	for _, t := range expired {
		s.Transactions.Remove(t)
	}
}

// step 5: clearExpiredOrders cancels resting limit orders past their
// expiration and returns the unsold balance to the owner.
func (s *State) clearExpiredOrders(now int64) {
	orderbook.ExpireOrders(s.Market, now, func(o objects.LimitOrder) {
		s.creditBalance(o.Owner, o.AmountForSale())
	})
}

// step 6: clearExpiredDelegations returns vesting shares that finished
// their return-period wait back into the delegator's free balance.
func (s *State) clearExpiredDelegations(now int64) {
	var matured []objects.VestingDelegationExpiration
	s.DelegationExpirations.Range(func(e objects.VestingDelegationExpiration) bool {
		if e.Expiration <= now {
			matured = append(matured, e)
		}
		return true
	})
	for _, e := range matured {
		acc, ok := s.findAccount(e.Delegator)
		if ok {
			s.Accounts.Modify(acc, func(a *objects.Account) {
				a.DelegatedVestingShares = a.DelegatedVestingShares.Sub(e.VestingShares)
			})
		}
		s.emit(types.ReturnVestingDelegationOp{Account: e.Delegator, VestingShares: e.VestingShares})
		s.DelegationExpirations.Remove(e)
	}
}

func (s *State) findAccount(name string) (objects.Account, bool) {
	var found objects.Account
	var ok bool
	s.Accounts.Range(func(a objects.Account) bool {
		if a.Name == name {
			found, ok = a, true
			return false
		}
		return true
	})
	return found, ok
}

func (s *State) creditBalance(account string, amount types.Asset) {
	acc, ok := s.findAccount(account)
	if !ok {
		return
	}
	s.Accounts.Modify(acc, func(a *objects.Account) {
		if amount.Symbol.Equal(types.Dollar) {
			a.DollarBalance = a.DollarBalance.Add(amount)
		} else {
			a.Balance = a.Balance.Add(amount)
		}
	})
}

// updateVirtualSupply recomputes
// virtual_supply = current_supply + dollar_supply * median_price.
func (s *State) updateVirtualSupply() {
	g := s.globals()
	fh, ok := s.FeedHistory.Find(0)
	virtual := g.CurrentSupply
	if ok && !fh.CurrentMedianHistory.IsNull() && g.DollarSupply.Amount > 0 {
		inNative := fh.CurrentMedianHistory.Mul(g.DollarSupply)
		virtual = virtual.Add(types.NewAsset(inNative.Amount, types.Native))
	}
	if virtual.Amount == g.VirtualSupply.Amount {
		return
	}
	s.Globals.Modify(g, func(p *objects.DynamicGlobalProperties) {
		p.VirtualSupply = virtual
	})
}
