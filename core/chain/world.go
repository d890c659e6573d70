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

// Package chain is the top-level engine: it owns the object
// store and every table, implements the evaluator Context, applies
// blocks and transactions under undo sessions, orchestrates fork
// switches, recomputes irreversibility and drives the post-block
// maintenance loop. It is the only package that wires the others
// together.
package chain

import (
	"sort"

	"github.com/erigontech/erigon-lib/log/v3"

	"github.com/fresszonesongs/freezone/core/consensus"
	"github.com/fresszonesongs/freezone/core/maintenance"
	"github.com/fresszonesongs/freezone/core/objects"
	"github.com/fresszonesongs/freezone/core/orderbook"
	"github.com/fresszonesongs/freezone/core/sst"
	"github.com/fresszonesongs/freezone/core/state"
	"github.com/fresszonesongs/freezone/core/types"
)

// World owns every object table and implements evaluator.Context. A
// single World backs the whole engine; evaluators see it through the
// Context interface, maintenance sees the concrete tables.
type World struct {
	Store *state.Store

	Globals         *state.Table[objects.DynamicGlobalProperties]
	FeedHistory     *state.Table[objects.FeedHistory]
	HardforkProp    *state.Table[objects.HardforkProperty]
	NAIPool         *state.Table[objects.NAIPool]
	RequiredActions *state.Table[objects.PendingAction]
	OptionalActions *state.Table[objects.PendingAction]

	Accounts        *state.Table[objects.Account]
	Witnesses       *state.Table[objects.Witness]
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

	SSTEngine *sst.Engine

	AccountsByName *state.GBTreeIndex[objects.Account]
	WitnessByOwner *state.GBTreeIndex[objects.Witness]
	WitnessByVotes *state.TBTreeIndex[objects.Witness]

	emit func(types.VirtualOp)
	log  log.Logger
}

// NewWorld registers every table on a fresh store.
func NewWorld(store *state.Store, logger log.Logger) *World {
	if logger == nil {
		logger = log.Root()
	}
	w := &World{Store: store, log: logger}

	w.Globals = state.NewTable[objects.DynamicGlobalProperties](store, "dynamic_global_properties")
	w.FeedHistory = state.NewTable[objects.FeedHistory](store, "feed_history")
	w.HardforkProp = state.NewTable[objects.HardforkProperty](store, "hardfork_property")
	w.NAIPool = state.NewTable[objects.NAIPool](store, "nai_pool")
	w.RequiredActions = state.NewTable[objects.PendingAction](store, "pending_required_action")
	w.OptionalActions = state.NewTable[objects.PendingAction](store, "pending_optional_action")

	w.Accounts = state.NewTable[objects.Account](store, "account")
	w.AccountsByName = state.NewGBTreeIndex[objects.Account]("by_name", func(a, b objects.Account) bool {
		return a.Name < b.Name
	})
	w.Accounts.AddIndex(w.AccountsByName)

	w.Witnesses = state.NewTable[objects.Witness](store, "witness")
	w.WitnessByOwner = state.NewGBTreeIndex[objects.Witness]("by_owner", func(a, b objects.Witness) bool {
		return a.Owner < b.Owner
	})
	w.Witnesses.AddIndex(w.WitnessByOwner)
	// Vote-rank ordering is read from the top (scheduling slate) and the
	// bottom (eviction), so it lives on the both-ends tree. Ties break
	// by name, ascending when walked from the top.
	w.WitnessByVotes = state.NewTBTreeIndex[objects.Witness]("by_votes", func(a, b objects.Witness) bool {
		if a.Votes != b.Votes {
			return a.Votes < b.Votes
		}
		return a.Owner > b.Owner
	})
	w.Witnesses.AddIndex(w.WitnessByVotes)

	w.WitnessSchedule = state.NewTable[objects.WitnessSchedule](store, "witness_schedule")
	w.BlockSummaries = state.NewTable[objects.BlockSummary](store, "block_summary")
	w.Transactions = state.NewTable[objects.TransactionRecord](store, "transaction")

	w.WithdrawRoutes = state.NewTable[objects.WithdrawRouteEntry](store, "withdraw_vesting_route")
	w.Delegations = state.NewTable[objects.VestingDelegation](store, "vesting_delegation")
	w.DelegationExpirations = state.NewTable[objects.VestingDelegationExpiration](store, "vesting_delegation_expiration")

	w.Comments = state.NewTable[objects.Comment](store, "comment")
	w.CommentVotes = state.NewTable[objects.CommentVote](store, "comment_vote")
	w.RewardFunds = state.NewTable[objects.RewardFund](store, "reward_fund")

	w.Market = orderbook.NewBook(store)
	w.ConvertRequests = state.NewTable[objects.ConvertRequest](store, "convert_request")
	w.Escrows = state.NewTable[objects.Escrow](store, "escrow")
	w.SavingsWithdraws = state.NewTable[objects.SavingsWithdraw](store, "savings_withdraw")
	w.LiquidityRewards = state.NewTable[objects.LiquidityRewardBalance](store, "liquidity_reward_balance")

	w.RecoveryRequests = state.NewTable[objects.AccountRecoveryRequest](store, "account_recovery_request")
	w.ChangeRecoveryRequests = state.NewTable[objects.ChangeRecoveryAccountRequest](store, "change_recovery_account_request")
	w.OwnerAuthHistories = state.NewTable[objects.OwnerAuthorityHistory](store, "owner_authority_history")
	w.DeclineVotingRequests = state.NewTable[objects.DeclineVotingRightsRequest](store, "decline_voting_rights_request")

	w.Proposals = state.NewTable[objects.Proposal](store, "proposal")
	w.ProposalVotes = state.NewTable[objects.ProposalVote](store, "proposal_vote")

	w.SSTEngine = sst.NewEngine(store)
	w.SSTEngine.CreditNative = func(account string, amount int64) {
		if acc, ok := w.FindAccount(account); ok {
			w.Accounts.Modify(acc, func(a *objects.Account) {
				a.Balance = a.Balance.Add(types.NewAsset(amount, types.Native))
			})
		}
	}
	return w
}

// MaintenanceState exposes the table set in the shape core/maintenance
// consumes.
func (w *World) MaintenanceState(hardforks consensus.Table, emit func(types.VirtualOp)) *maintenance.State {
	return &maintenance.State{
		Store:                  w.Store,
		Globals:                w.Globals,
		FeedHistory:            w.FeedHistory,
		HardforkProp:           w.HardforkProp,
		NAIPool:                w.NAIPool,
		RequiredActions:        w.RequiredActions,
		OptionalActions:        w.OptionalActions,
		Accounts:               w.Accounts,
		Witnesses:              w.Witnesses,
		WitnessesByVote:        w.WitnessByVotes,
		WitnessSchedule:        w.WitnessSchedule,
		BlockSummaries:         w.BlockSummaries,
		Transactions:           w.Transactions,
		WithdrawRoutes:         w.WithdrawRoutes,
		Delegations:            w.Delegations,
		DelegationExpirations:  w.DelegationExpirations,
		Comments:               w.Comments,
		CommentVotes:           w.CommentVotes,
		RewardFunds:            w.RewardFunds,
		Market:                 w.Market,
		ConvertRequests:        w.ConvertRequests,
		Escrows:                w.Escrows,
		SavingsWithdraws:       w.SavingsWithdraws,
		LiquidityRewards:       w.LiquidityRewards,
		RecoveryRequests:       w.RecoveryRequests,
		ChangeRecoveryRequests: w.ChangeRecoveryRequests,
		OwnerAuthHistories:     w.OwnerAuthHistories,
		DeclineVotingRequests:  w.DeclineVotingRequests,
		Proposals:              w.Proposals,
		ProposalVotes:          w.ProposalVotes,
		SST:                    w.SSTEngine,
		Hardforks:              hardforks,
		Emit:                   emit,
		Log:                    w.log,
	}
}

// Globals returns the singleton; it must exist after genesis.
func (w *World) globals() objects.DynamicGlobalProperties {
	g, ok := w.Globals.Find(0)
	if !ok {
		panic("chain: dynamic global properties missing; genesis not run")
	}
	return g
}

// Now is the head block time; evaluators never see wall-clock time.
func (w *World) Now() int64 { return w.globals().Time }

func (w *World) HasHardfork(i uint32) bool {
	hp, ok := w.HardforkProp.Find(0)
	if !ok {
		return false
	}
	return consensus.HasHardfork(hp.LastHardfork, i)
}

func (w *World) SetEmitter(emit func(types.VirtualOp)) { w.emit = emit }

func (w *World) Emit(op types.VirtualOp) {
	if w.emit != nil {
		w.emit(op)
	}
}

// --- accounts ---

func (w *World) FindAccount(name string) (objects.Account, bool) {
	var found objects.Account
	var ok bool
	w.AccountsByName.AscendRange(objects.Account{Name: name}, func(a objects.Account) bool {
		if a.Name == name {
			found, ok = a, true
		}
		return false
	})
	return found, ok
}

func (w *World) GetAccount(name string) (objects.Account, error) {
	acc, ok := w.FindAccount(name)
	if !ok {
		return objects.Account{}, state.ErrNotFound
	}
	return acc, nil
}

// CreateAccount applies the zero-balance defaults for every built-in
// symbol before the caller's init, so later balance Adds never see an
// unset symbol.
func (w *World) CreateAccount(init func(*objects.Account)) objects.Account {
	return w.Accounts.Create(func(a *objects.Account) {
		applyAccountDefaults(a, w.Now())
		init(a)
	})
}

func (w *World) ModifyAccount(acc objects.Account, mutator func(*objects.Account)) objects.Account {
	return w.Accounts.Modify(acc, mutator)
}

// --- witnesses ---

func (w *World) GetWitness(owner string) (objects.Witness, bool) {
	var found objects.Witness
	var ok bool
	w.WitnessByOwner.AscendRange(objects.Witness{Owner: owner}, func(wt objects.Witness) bool {
		if wt.Owner == owner {
			found, ok = wt, true
		}
		return false
	})
	return found, ok
}

func (w *World) CreateWitness(init func(*objects.Witness)) objects.Witness {
	return w.Witnesses.Create(init)
}

func (w *World) ModifyWitness(wt objects.Witness, mutator func(*objects.Witness)) objects.Witness {
	return w.Witnesses.Modify(wt, mutator)
}

// PublishFeed appends a price publication to the history ring,
// normalized so Base is always the native side.
func (w *World) PublishFeed(rate types.Price) {
	if !rate.Base.Symbol.Equal(types.Native) {
		rate = rate.Invert()
	}
	fh, ok := w.FeedHistory.Find(0)
	if !ok {
		return
	}
	w.FeedHistory.Modify(fh, func(f *objects.FeedHistory) {
		f.PriceHistory = append(f.PriceHistory, rate)
		if len(f.PriceHistory) > maintenance.FeedHistoryWindow {
			f.PriceHistory = f.PriceHistory[len(f.PriceHistory)-maintenance.FeedHistoryWindow:]
		}
	})
}

// --- withdraw routes ---

func (w *World) WithdrawRoutesFor(account string) []objects.WithdrawRouteEntry {
	var out []objects.WithdrawRouteEntry
	w.WithdrawRoutes.Range(func(r objects.WithdrawRouteEntry) bool {
		if r.FromAccount == account {
			out = append(out, r)
		}
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (w *World) SetWithdrawRoute(from, to string, percent uint16, autoVest bool) error {
	var existing *objects.WithdrawRouteEntry
	w.WithdrawRoutes.Range(func(r objects.WithdrawRouteEntry) bool {
		if r.FromAccount == from && r.ToAccount == to {
			existing = &r
			return false
		}
		return true
	})
	if existing != nil {
		if percent == 0 {
			w.WithdrawRoutes.Remove(*existing)
			return nil
		}
		w.WithdrawRoutes.Modify(*existing, func(r *objects.WithdrawRouteEntry) {
			r.Percent = percent
			r.AutoVest = autoVest
		})
		return nil
	}
	if percent == 0 {
		return nil
	}
	w.WithdrawRoutes.Create(func(r *objects.WithdrawRouteEntry) {
		r.FromAccount = from
		r.ToAccount = to
		r.Percent = percent
		r.AutoVest = autoVest
	})
	return nil
}

// --- delegations ---

func (w *World) CreateDelegation(delegator, delegatee string, shares types.Asset, minTime int64) objects.VestingDelegation {
	return w.Delegations.Create(func(d *objects.VestingDelegation) {
		d.Delegator = delegator
		d.Delegatee = delegatee
		d.VestingShares = shares
		d.MinDelegationTime = minTime
	})
}

func (w *World) FindDelegation(delegator, delegatee string) (objects.VestingDelegation, bool) {
	var found objects.VestingDelegation
	var ok bool
	w.Delegations.Range(func(d objects.VestingDelegation) bool {
		if d.Delegator == delegator && d.Delegatee == delegatee {
			found, ok = d, true
			return false
		}
		return true
	})
	return found, ok
}

func (w *World) ModifyDelegation(d objects.VestingDelegation, mutator func(*objects.VestingDelegation)) objects.VestingDelegation {
	return w.Delegations.Modify(d, mutator)
}

func (w *World) RemoveDelegation(d objects.VestingDelegation) { w.Delegations.Remove(d) }

func (w *World) CreateDelegationExpiration(delegator string, shares types.Asset, expiration int64) {
	w.DelegationExpirations.Create(func(e *objects.VestingDelegationExpiration) {
		e.Delegator = delegator
		e.VestingShares = shares
		e.Expiration = expiration
	})
}

// --- comments ---

func (w *World) GetComment(author, permlink string) (objects.Comment, bool) {
	var found objects.Comment
	var ok bool
	w.Comments.Range(func(c objects.Comment) bool {
		if c.Author == author && c.Permlink == permlink {
			found, ok = c, true
			return false
		}
		return true
	})
	return found, ok
}

func (w *World) CreateComment(init func(*objects.Comment)) objects.Comment {
	return w.Comments.Create(init)
}

func (w *World) ModifyComment(c objects.Comment, mutator func(*objects.Comment)) objects.Comment {
	return w.Comments.Modify(c, mutator)
}

func (w *World) RemoveComment(c objects.Comment) {
	var votes []objects.CommentVote
	w.CommentVotes.Range(func(v objects.CommentVote) bool {
		if v.Comment == c.ID {
			votes = append(votes, v)
		}
		return true
	})
	for _, v := range votes {
		w.CommentVotes.Remove(v)
	}
	w.Comments.Remove(c)
}

// GetCommentVote resolves the "author/permlink" composite key the
// evaluator uses into the vote row.
func (w *World) GetCommentVote(commentKey, voter string) (objects.CommentVote, bool) {
	c, ok := w.commentByKey(commentKey)
	if !ok {
		return objects.CommentVote{}, false
	}
	var found objects.CommentVote
	var have bool
	w.CommentVotes.Range(func(v objects.CommentVote) bool {
		if v.Comment == c.ID && v.Voter == voter {
			found, have = v, true
			return false
		}
		return true
	})
	return found, have
}

func (w *World) UpsertCommentVote(commentKey string, voter string, rshares int64, weight uint64, percent int16) {
	c, ok := w.commentByKey(commentKey)
	if !ok {
		return
	}
	if existing, have := w.GetCommentVote(commentKey, voter); have {
		w.CommentVotes.Modify(existing, func(v *objects.CommentVote) {
			v.Rshares = rshares
			v.Weight = weight
			v.VotePercent = percent
			v.NumChanges++
			v.LastUpdate = w.Now()
		})
		return
	}
	w.CommentVotes.Create(func(v *objects.CommentVote) {
		v.Comment = c.ID
		v.Voter = voter
		v.Symbol = types.Native
		v.Rshares = rshares
		v.Weight = weight
		v.VotePercent = percent
		v.LastUpdate = w.Now()
	})
}

func (w *World) commentByKey(key string) (objects.Comment, bool) {
	for i := 0; i < len(key); i++ {
		if key[i] == '/' {
			return w.GetComment(key[:i], key[i+1:])
		}
	}
	return objects.Comment{}, false
}

// --- conversions, escrow, savings ---

// ConversionDelaySeconds is freezone_CONVERSION_DELAY: 3.5 days.
const ConversionDelaySeconds = 3*24*60*60 + 12*60*60

func (w *World) CreateConvertRequest(owner string, requestID uint32, amount types.Asset) {
	w.ConvertRequests.Create(func(r *objects.ConvertRequest) {
		r.Owner = owner
		r.RequestID = requestID
		r.Amount = amount
		r.Conversion = w.Now() + ConversionDelaySeconds
	})
}

func (w *World) CreateEscrow(init func(*objects.Escrow)) objects.Escrow {
	return w.Escrows.Create(init)
}

func (w *World) FindEscrow(from, to, agent string, id uint32) (objects.Escrow, bool) {
	var found objects.Escrow
	var ok bool
	w.Escrows.Range(func(e objects.Escrow) bool {
		if e.From == from && e.To == to && e.Agent == agent && e.EscrowID == id {
			found, ok = e, true
			return false
		}
		return true
	})
	return found, ok
}

func (w *World) ModifyEscrow(e objects.Escrow, mutator func(*objects.Escrow)) objects.Escrow {
	return w.Escrows.Modify(e, mutator)
}

func (w *World) RemoveEscrow(e objects.Escrow) { w.Escrows.Remove(e) }

// SavingsWithdrawDelaySeconds is freezone_SAVINGS_WITHDRAW_TIME: 3 days.
const SavingsWithdrawDelaySeconds = 3 * 24 * 60 * 60

func (w *World) CreateSavingsWithdraw(from, to, memo string, requestID uint32, amount types.Asset) {
	w.SavingsWithdraws.Create(func(s *objects.SavingsWithdraw) {
		s.From = from
		s.To = to
		s.Memo = memo
		s.RequestID = requestID
		s.Amount = amount
		s.Completion = w.Now() + SavingsWithdrawDelaySeconds
	})
}

func (w *World) FindSavingsWithdraw(from string, requestID uint32) (objects.SavingsWithdraw, bool) {
	var found objects.SavingsWithdraw
	var ok bool
	w.SavingsWithdraws.Range(func(s objects.SavingsWithdraw) bool {
		if s.From == from && s.RequestID == requestID {
			found, ok = s, true
			return false
		}
		return true
	})
	return found, ok
}

func (w *World) RemoveSavingsWithdraw(s objects.SavingsWithdraw) { w.SavingsWithdraws.Remove(s) }

// --- recovery, decline-voting ---

// RecoveryAccountChangeDelaySeconds is freezone_OWNER_AUTH_RECOVERY_PERIOD.
const RecoveryAccountChangeDelaySeconds = 30 * 24 * 60 * 60

func (w *World) SetRecoveryAccount(account, newRecovery string, effectiveOn int64) {
	var existing *objects.ChangeRecoveryAccountRequest
	w.ChangeRecoveryRequests.Range(func(r objects.ChangeRecoveryAccountRequest) bool {
		if r.AccountToRecover == account {
			existing = &r
			return false
		}
		return true
	})
	if existing != nil {
		w.ChangeRecoveryRequests.Modify(*existing, func(r *objects.ChangeRecoveryAccountRequest) {
			r.RecoveryAccount = newRecovery
			r.EffectiveOn = effectiveOn
		})
		return
	}
	w.ChangeRecoveryRequests.Create(func(r *objects.ChangeRecoveryAccountRequest) {
		r.AccountToRecover = account
		r.RecoveryAccount = newRecovery
		r.EffectiveOn = effectiveOn
	})
}

func (w *World) RequestAccountRecovery(accountToRecover string, newOwner types.Authority, expires int64) {
	w.RecoveryRequests.Create(func(r *objects.AccountRecoveryRequest) {
		r.AccountToRecover = accountToRecover
		r.NewOwnerAuthority = newOwner
		r.Expires = expires
	})
}

func (w *World) RecoverAccount(accountToRecover string, newOwner, recentOwner types.Authority) error {
	var req *objects.AccountRecoveryRequest
	w.RecoveryRequests.Range(func(r objects.AccountRecoveryRequest) bool {
		if r.AccountToRecover == accountToRecover {
			req = &r
			return false
		}
		return true
	})
	if req == nil {
		return state.ErrNotFound
	}
	acc, ok := w.FindAccount(accountToRecover)
	if !ok {
		return state.ErrNotFound
	}
	w.OwnerAuthHistories.Create(func(h *objects.OwnerAuthorityHistory) {
		h.Account = accountToRecover
		h.PreviousOwnerAuthority = acc.Owner
		h.LastValidTime = w.Now()
	})
	w.Accounts.Modify(acc, func(a *objects.Account) {
		a.Owner = newOwner
		a.LastAccountRecoveryTime = w.Now()
	})
	w.RecoveryRequests.Remove(*req)
	return nil
}

func (w *World) RequestDeclineVotingRights(account string, effective int64) {
	w.DeclineVotingRequests.Create(func(r *objects.DeclineVotingRightsRequest) {
		r.Account = account
		r.Effective = effective
	})
}

// --- proposals ---

// CreateProposal allocates the user-visible proposal id off the primary
// key when the caller did not choose one.
func (w *World) CreateProposal(init func(*objects.Proposal)) objects.Proposal {
	p := w.Proposals.Create(init)
	if p.ProposalID == 0 {
		p = w.Proposals.Modify(p, func(m *objects.Proposal) {
			m.ProposalID = uint32(p.ID) + 1
		})
	}
	return p
}

func (w *World) FindProposal(id uint32) (objects.Proposal, bool) {
	var found objects.Proposal
	var ok bool
	w.Proposals.Range(func(p objects.Proposal) bool {
		if p.ProposalID == id {
			found, ok = p, true
			return false
		}
		return true
	})
	return found, ok
}

func (w *World) VoteProposal(proposalID uint32, voter string, approve bool) error {
	p, ok := w.FindProposal(proposalID)
	if !ok {
		return state.ErrNotFound
	}
	var existing *objects.ProposalVote
	w.ProposalVotes.Range(func(v objects.ProposalVote) bool {
		if v.ProposalID == p.ID && v.Voter == voter {
			existing = &v
			return false
		}
		return true
	})
	if approve {
		if existing == nil {
			w.ProposalVotes.Create(func(v *objects.ProposalVote) {
				v.ProposalID = p.ID
				v.Voter = voter
			})
		}
		return nil
	}
	if existing != nil {
		w.ProposalVotes.Remove(*existing)
	}
	return nil
}

func (w *World) RemoveProposal(id uint32) {
	p, ok := w.FindProposal(id)
	if !ok {
		return
	}
	var votes []objects.ProposalVote
	w.ProposalVotes.Range(func(v objects.ProposalVote) bool {
		if v.ProposalID == p.ID {
			votes = append(votes, v)
		}
		return true
	})
	for _, v := range votes {
		w.ProposalVotes.Remove(v)
	}
	w.Proposals.Remove(p)
}

// --- SST ---

func (w *World) SST() *sst.Engine { return w.SSTEngine }

// ReserveSSTSymbol pops the next pre-generated NAI from the pool,
// checking the creation fee against the configured minimum.
func (w *World) ReserveSSTSymbol(controlAccount string, fee types.Asset) (types.NAI, error) {
	g := w.globals()
	if fee.Amount < g.SstCreationFee.Amount {
		return 0, ErrInsufficientFee
	}
	pool, ok := w.NAIPool.Find(0)
	if !ok || len(pool.Available) == 0 {
		return 0, ErrNAIPoolExhausted
	}
	nai := pool.Available[0]
	w.NAIPool.Modify(pool, func(p *objects.NAIPool) {
		p.Available = p.Available[1:]
	})
	return nai, nil
}
