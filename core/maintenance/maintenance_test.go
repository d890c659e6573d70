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

package maintenance

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fresszonesongs/freezone/core/objects"
	"github.com/fresszonesongs/freezone/core/orderbook"
	"github.com/fresszonesongs/freezone/core/sst"
	"github.com/fresszonesongs/freezone/core/state"
	"github.com/fresszonesongs/freezone/core/types"
)

const t0 = int64(1_600_000_000)

type testHarness struct {
	*State
	ops []types.VirtualOp
}

func newTestState(t *testing.T) *testHarness {
	t.Helper()
	store := state.NewStore(nil)

	witnesses := state.NewTable[objects.Witness](store, "witness")
	witnessesByVote := state.NewTBTreeIndex[objects.Witness]("by_votes", func(a, b objects.Witness) bool {
		if a.Votes != b.Votes {
			return a.Votes < b.Votes
		}
		return a.Owner > b.Owner
	})
	witnesses.AddIndex(witnessesByVote)

	h := &testHarness{}
	h.State = &State{
		Store:                  store,
		Globals:                state.NewTable[objects.DynamicGlobalProperties](store, "dgp"),
		FeedHistory:            state.NewTable[objects.FeedHistory](store, "feed"),
		HardforkProp:           state.NewTable[objects.HardforkProperty](store, "hardfork"),
		NAIPool:                state.NewTable[objects.NAIPool](store, "nai"),
		RequiredActions:        state.NewTable[objects.PendingAction](store, "required"),
		OptionalActions:        state.NewTable[objects.PendingAction](store, "optional"),
		Accounts:               state.NewTable[objects.Account](store, "account"),
		Witnesses:              witnesses,
		WitnessesByVote:        witnessesByVote,
		WitnessSchedule:        state.NewTable[objects.WitnessSchedule](store, "schedule"),
		BlockSummaries:         state.NewTable[objects.BlockSummary](store, "summary"),
		Transactions:           state.NewTable[objects.TransactionRecord](store, "transaction"),
		WithdrawRoutes:         state.NewTable[objects.WithdrawRouteEntry](store, "route"),
		Delegations:            state.NewTable[objects.VestingDelegation](store, "delegation"),
		DelegationExpirations:  state.NewTable[objects.VestingDelegationExpiration](store, "delegation_exp"),
		Comments:               state.NewTable[objects.Comment](store, "comment"),
		CommentVotes:           state.NewTable[objects.CommentVote](store, "comment_vote"),
		RewardFunds:            state.NewTable[objects.RewardFund](store, "reward_fund"),
		Market:                 orderbook.NewBook(store),
		ConvertRequests:        state.NewTable[objects.ConvertRequest](store, "convert"),
		Escrows:                state.NewTable[objects.Escrow](store, "escrow"),
		SavingsWithdraws:       state.NewTable[objects.SavingsWithdraw](store, "savings"),
		LiquidityRewards:       state.NewTable[objects.LiquidityRewardBalance](store, "liquidity"),
		RecoveryRequests:       state.NewTable[objects.AccountRecoveryRequest](store, "recovery"),
		ChangeRecoveryRequests: state.NewTable[objects.ChangeRecoveryAccountRequest](store, "change_recovery"),
		OwnerAuthHistories:     state.NewTable[objects.OwnerAuthorityHistory](store, "owner_history"),
		DeclineVotingRequests:  state.NewTable[objects.DeclineVotingRightsRequest](store, "decline"),
		Proposals:              state.NewTable[objects.Proposal](store, "proposal"),
		ProposalVotes:          state.NewTable[objects.ProposalVote](store, "proposal_vote"),
		SST:                    sst.NewEngine(store),
	}
	h.Emit = func(op types.VirtualOp) { h.ops = append(h.ops, op) }

	h.Globals.Create(func(g *objects.DynamicGlobalProperties) {
		g.Time = t0
		g.CurrentSupply = types.NewAsset(0, types.Native)
		g.DollarSupply = types.NewAsset(0, types.Dollar)
		g.VirtualSupply = types.NewAsset(0, types.Native)
		g.TotalVestingFund = types.NewAsset(0, types.Native)
		g.TotalVestingShares = types.NewAsset(0, types.NativeVesting)
		g.PendingRewardedVestingFund = types.NewAsset(0, types.Native)
		g.PendingRewardedVestingShares = types.NewAsset(0, types.NativeVesting)
		g.SbdPrintRate = 10000
		g.NextMaintenanceTime = t0 + 24*60*60
	})
	h.FeedHistory.Create(func(f *objects.FeedHistory) {})
	h.HardforkProp.Create(func(p *objects.HardforkProperty) {})
	return h
}

func (h *testHarness) addAccount(name string, balance int64) objects.Account {
	return h.Accounts.Create(func(a *objects.Account) {
		a.Name = name
		a.Balance = types.NewAsset(balance, types.Native)
		a.DollarBalance = types.NewAsset(0, types.Dollar)
		a.SavingsBalance = types.NewAsset(0, types.Native)
		a.SavingsDollarBalance = types.NewAsset(0, types.Dollar)
		a.RewardDollarBalance = types.NewAsset(0, types.Dollar)
		a.RewardVestingBalance = types.NewAsset(0, types.Native)
		a.RewardVestingShares = types.NewAsset(0, types.NativeVesting)
		a.VestingShares = types.NewAsset(0, types.NativeVesting)
		a.DelegatedVestingShares = types.NewAsset(0, types.NativeVesting)
		a.ReceivedVestingShares = types.NewAsset(0, types.NativeVesting)
		a.VestingWithdrawRate = types.NewAsset(0, types.NativeVesting)
		a.WithdrawnThisPeriod = types.NewAsset(0, types.NativeVesting)
		a.NextVestingWithdrawal = maxTimePoint
		a.CanVote = true
	})
}

func (h *testHarness) setVesting(name string, shares int64) {
	acc, ok := h.findAccount(name)
	if !ok {
		panic("no account " + name)
	}
	h.Accounts.Modify(acc, func(a *objects.Account) {
		a.VestingShares = types.NewAsset(shares, types.NativeVesting)
	})
}

func (h *testHarness) setMedianFeed(base, quote int64) {
	fh, _ := h.FeedHistory.Find(0)
	h.FeedHistory.Modify(fh, func(f *objects.FeedHistory) {
		f.CurrentMedianHistory = types.Price{
			Base:  types.NewAsset(base, types.Native),
			Quote: types.NewAsset(quote, types.Dollar),
		}
	})
}

func TestVestingWithdrawalFullCycle(t *testing.T) {
	h := newTestState(t)
	const shares = 1_300_000
	const rate = shares / 13

	h.addAccount("alice", 0)
	acc, _ := h.findAccount("alice")
	h.Accounts.Modify(acc, func(a *objects.Account) {
		a.VestingShares = types.NewAsset(shares, types.NativeVesting)
		a.VestingWithdrawRate = types.NewAsset(rate, types.NativeVesting)
		a.ToWithdraw = shares
		a.NextVestingWithdrawal = t0 + VestingWithdrawIntervalSeconds
	})

	g, _ := h.Globals.Find(0)
	h.Globals.Modify(g, func(p *objects.DynamicGlobalProperties) {
		// 1:1 vesting price so withdrawn value is easy to assert.
		p.TotalVestingFund = types.NewAsset(shares, types.Native)
		p.TotalVestingShares = types.NewAsset(shares, types.NativeVesting)
	})

	for week := 1; week <= 13; week++ {
		h.processVestingWithdrawals(t0 + int64(week)*VestingWithdrawIntervalSeconds)
	}

	acc, _ = h.findAccount("alice")
	require.Zero(t, acc.VestingShares.Amount)
	require.Equal(t, maxTimePoint, acc.NextVestingWithdrawal)
	require.Equal(t, int64(shares), acc.Balance.Amount, "full vesting value converted to liquid")

	g, _ = h.Globals.Find(0)
	require.Zero(t, g.TotalVestingShares.Amount)
	require.Zero(t, g.TotalVestingFund.Amount)

	fills := 0
	for _, op := range h.ops {
		if _, ok := op.(types.FillVestingWithdrawOp); ok {
			fills++
		}
	}
	require.Equal(t, 13, fills)
}

func TestVestingWithdrawalRoutes(t *testing.T) {
	h := newTestState(t)
	h.addAccount("alice", 0)
	h.addAccount("bob", 0)

	const shares = 1_300_000
	acc, _ := h.findAccount("alice")
	h.Accounts.Modify(acc, func(a *objects.Account) {
		a.VestingShares = types.NewAsset(shares, types.NativeVesting)
		a.VestingWithdrawRate = types.NewAsset(shares/13, types.NativeVesting)
		a.ToWithdraw = shares
		a.NextVestingWithdrawal = t0 + VestingWithdrawIntervalSeconds
	})
	g, _ := h.Globals.Find(0)
	h.Globals.Modify(g, func(p *objects.DynamicGlobalProperties) {
		p.TotalVestingFund = types.NewAsset(shares, types.Native)
		p.TotalVestingShares = types.NewAsset(shares, types.NativeVesting)
	})
	// Half to bob as vesting, rest converts for alice.
	h.WithdrawRoutes.Create(func(r *objects.WithdrawRouteEntry) {
		r.FromAccount = "alice"
		r.ToAccount = "bob"
		r.Percent = 5000
		r.AutoVest = true
	})

	h.processVestingWithdrawals(t0 + VestingWithdrawIntervalSeconds)

	quantum := int64(shares / 13)
	bob, _ := h.findAccount("bob")
	require.Equal(t, quantum/2, bob.VestingShares.Amount)

	alice, _ := h.findAccount("alice")
	require.Equal(t, quantum-quantum/2, alice.Balance.Amount)
	require.Equal(t, int64(shares)-quantum, alice.VestingShares.Amount)
}

func TestCommentCashoutWithCurationAndBeneficiary(t *testing.T) {
	h := newTestState(t)
	h.addAccount("author", 0)
	h.addAccount("voter", 0)
	h.addAccount("benefactor", 0)
	h.setVesting("voter", 10_000)
	h.setMedianFeed(1000, 1000) // 1 native = 1 dollar

	g, _ := h.Globals.Find(0)
	h.Globals.Modify(g, func(p *objects.DynamicGlobalProperties) {
		p.TotalVestingFund = types.NewAsset(1_000_000, types.Native)
		p.TotalVestingShares = types.NewAsset(1_000_000, types.NativeVesting)
	})

	h.RewardFunds.Create(func(f *objects.RewardFund) {
		f.Name = ContentRewardFundName
		f.RewardBalance = types.NewAsset(1_000_000, types.Native)
		f.RecentClaims = types.Uint256FromInt64(0)
		f.LastUpdate = t0
		f.AuthorRewardCurve = types.CurveLinear
		f.CurationRewardCurve = types.CurveLinear
		f.PercentCurationRewards = 2500
	})

	c := h.Comments.Create(func(c *objects.Comment) {
		c.Author = "author"
		c.Permlink = "post"
		c.NetRshares = 10_000
		c.AbsRshares = 10_000
		c.CashoutTime = t0 + 1
		c.AllowCurationRewards = true
		c.PercentDollars = 10000
		c.MaxAcceptedPayout = types.NewAsset(1_000_000_000, types.Dollar)
		c.TotalVoteWeight = 10_000
		c.Beneficiaries = []types.Beneficiary{{Account: "benefactor", Weight: 2500}}
	})
	h.CommentVotes.Create(func(v *objects.CommentVote) {
		v.Comment = c.ID
		v.Voter = "voter"
		v.Rshares = 10_000
		v.Weight = 10_000
	})

	fundBefore, _ := h.findRewardFund(ContentRewardFundName)
	h.processCommentCashout(t0 + 2)

	var author, curation, benefactor bool
	for _, op := range h.ops {
		switch op.(type) {
		case types.AuthorRewardOp:
			author = true
		case types.CurationRewardOp:
			curation = true
		case types.CommentBenefactorRewardOp:
			benefactor = true
		}
	}
	require.True(t, author, "author_reward emitted")
	require.True(t, curation, "curation_reward emitted")
	require.True(t, benefactor, "comment_benefactor_reward emitted")

	closed, _ := h.Comments.Find(c.ID)
	require.Zero(t, closed.NetRshares)
	require.Equal(t, objects.CashoutTimeNever, closed.CashoutTime)

	fundAfter, _ := h.findRewardFund(ContentRewardFundName)
	require.Less(t, fundAfter.RewardBalance.Amount, fundBefore.RewardBalance.Amount)
	require.GreaterOrEqual(t, fundAfter.RewardBalance.Amount, int64(0))

	voter, _ := h.findAccount("voter")
	require.Positive(t, voter.RewardVestingShares.Amount)
	ben, _ := h.findAccount("benefactor")
	require.Positive(t, ben.RewardVestingShares.Amount)
}

func TestNegativeRsharesCloseWithoutPayout(t *testing.T) {
	h := newTestState(t)
	h.addAccount("author", 0)
	h.RewardFunds.Create(func(f *objects.RewardFund) {
		f.Name = ContentRewardFundName
		f.RewardBalance = types.NewAsset(500, types.Native)
		f.RecentClaims = types.Uint256FromInt64(0)
		f.LastUpdate = t0
		f.AuthorRewardCurve = types.CurveLinear
	})
	c := h.Comments.Create(func(c *objects.Comment) {
		c.Author = "author"
		c.Permlink = "downvoted"
		c.NetRshares = -500
		c.CashoutTime = t0 + 1
	})

	h.processCommentCashout(t0 + 2)

	closed, _ := h.Comments.Find(c.ID)
	require.Equal(t, objects.CashoutTimeNever, closed.CashoutTime)
	fund, _ := h.findRewardFund(ContentRewardFundName)
	require.Equal(t, int64(500), fund.RewardBalance.Amount, "negative rshares earn nothing")
}

func TestProcessConversionsAtMedianPrice(t *testing.T) {
	h := newTestState(t)
	h.addAccount("carol", 0)
	h.setMedianFeed(2000, 1000) // 2 native per dollar

	g, _ := h.Globals.Find(0)
	h.Globals.Modify(g, func(p *objects.DynamicGlobalProperties) {
		p.DollarSupply = types.NewAsset(500, types.Dollar)
		p.CurrentSupply = types.NewAsset(10_000, types.Native)
	})
	h.ConvertRequests.Create(func(r *objects.ConvertRequest) {
		r.Owner = "carol"
		r.RequestID = 7
		r.Amount = types.NewAsset(500, types.Dollar)
		r.Conversion = t0
	})

	h.processConversions(t0 + 1)

	carol, _ := h.findAccount("carol")
	require.Equal(t, int64(1000), carol.Balance.Amount, "500 dollars at 2 native/dollar")
	g, _ = h.Globals.Find(0)
	require.Zero(t, g.DollarSupply.Amount)
	require.Equal(t, int64(11_000), g.CurrentSupply.Amount)
	require.Zero(t, h.ConvertRequests.Len())

	var filled bool
	for _, op := range h.ops {
		if f, ok := op.(types.FillConvertRequestOp); ok {
			filled = true
			require.Equal(t, uint32(7), f.RequestID)
		}
	}
	require.True(t, filled)
}

func TestEscrowRatificationExpiry(t *testing.T) {
	h := newTestState(t)
	h.addAccount("from", 0)
	h.Escrows.Create(func(e *objects.Escrow) {
		e.From = "from"
		e.To = "to"
		e.Agent = "agent"
		e.Steem = types.NewAsset(700, types.Native)
		e.Sbd = types.NewAsset(30, types.Dollar)
		e.PendingFee = types.NewAsset(5, types.Native)
		e.RatificationDeadline = t0
	})

	h.processEscrowRatificationExpiration(t0 + 1)

	from, _ := h.findAccount("from")
	require.Equal(t, int64(705), from.Balance.Amount)
	require.Equal(t, int64(30), from.DollarBalance.Amount)
	require.Zero(t, h.Escrows.Len())
}

func TestClearNullAccountBalanceReducesSupply(t *testing.T) {
	h := newTestState(t)
	h.addAccount(NullAccountName, 900)
	g, _ := h.Globals.Find(0)
	h.Globals.Modify(g, func(p *objects.DynamicGlobalProperties) {
		p.CurrentSupply = types.NewAsset(900, types.Native)
	})

	h.clearNullAccountBalance()

	g, _ = h.Globals.Find(0)
	require.Zero(t, g.CurrentSupply.Amount)
	null, _ := h.findAccount(NullAccountName)
	require.Zero(t, null.Balance.Amount)
}

func TestSbdPrintRateInterpolation(t *testing.T) {
	h := newTestState(t)
	g, _ := h.Globals.Find(0)
	h.Globals.Modify(g, func(p *objects.DynamicGlobalProperties) {
		p.SbdStartPercent = 900
		p.SbdStopPercent = 1000
		p.VirtualSupply = types.NewAsset(100_000, types.Native)
		p.DollarSupply = types.NewAsset(9_500, types.Dollar)
	})
	// 1:1 feed: debt ratio = 9500/100000 = 950 bps, midway between the
	// thresholds -> print rate 50%.
	h.updateSbdPrintRate(types.Price{
		Base:  types.NewAsset(1000, types.Native),
		Quote: types.NewAsset(1000, types.Dollar),
	})

	g, _ = h.Globals.Find(0)
	require.Equal(t, uint16(5000), g.SbdPrintRate)
}
