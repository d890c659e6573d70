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
	"sort"

	"github.com/holiman/uint256"

	"github.com/fresszonesongs/freezone/core/objects"
	"github.com/fresszonesongs/freezone/core/types"
	"github.com/fresszonesongs/freezone/core/vesting"
)

// RecentClaimsDecaySeconds is freezone_RECENT_RSHARES_DECAY_TIME_HF19: the
// window over which the reward fund's recent-claims accumulator decays.
const RecentClaimsDecaySeconds = 15 * 24 * 60 * 60

// step 13: processCommentCashout pays out every comment whose cashout
// time has arrived: author share from the reward fund proportional to
// curve-adjusted rshares, curation pool to voters by recorded weight,
// beneficiary cuts off the author share. Payouts land in the pending
// reward balances (claimed later by claim_reward_balance).
func (s *State) processCommentCashout(now int64) {
	fund, ok := s.findRewardFund(ContentRewardFundName)
	if !ok {
		return
	}

	var due []objects.Comment
	s.Comments.Range(func(c objects.Comment) bool {
		if c.CashoutTime <= now && c.CashoutTime != objects.CashoutTimeNever {
			due = append(due, c)
		}
		return true
	})
	if len(due) == 0 {
		return
	}
	// Deterministic iteration: by cashout time, then id.
	sort.Slice(due, func(i, j int) bool {
		if due[i].CashoutTime != due[j].CashoutTime {
			return due[i].CashoutTime < due[j].CashoutTime
		}
		return due[i].ID < due[j].ID
	})

	fund = s.decayRecentClaims(fund, now)

	// First pass: accumulate the total claims this block adds, so every
	// comment in the batch pays out against the same denominator — the
	// source adds all due claims to recent_claims before paying any of
	// them.
	claims := make([]*uint256.Int, len(due))
	totalAdded := uint256.NewInt(0)
	for i, c := range due {
		claims[i] = types.EvaluateRewardCurve(c.NetRshares, fund.AuthorRewardCurve, fund.ContentConstant)
		totalAdded.Add(totalAdded, claims[i])
	}
	recent := new(uint256.Int).Add(fund.RecentClaims, totalAdded)
	s.RewardFunds.Modify(fund, func(f *objects.RewardFund) {
		f.RecentClaims = recent
		f.LastUpdate = now
	})

	for i, c := range due {
		s.cashoutOne(c, claims[i], recent, now)
	}
}

// decayRecentClaims applies the linear decay of the recent-claims
// accumulator over the elapsed interval since the fund's last update.
func (s *State) decayRecentClaims(fund objects.RewardFund, now int64) objects.RewardFund {
	elapsed := now - fund.LastUpdate
	if elapsed <= 0 || fund.RecentClaims.IsZero() {
		return fund
	}
	if elapsed > RecentClaimsDecaySeconds {
		elapsed = RecentClaimsDecaySeconds
	}
	decay := new(uint256.Int).Mul(fund.RecentClaims, uint256.NewInt(uint64(elapsed)))
	decay.Div(decay, uint256.NewInt(RecentClaimsDecaySeconds))
	remaining := new(uint256.Int).Sub(fund.RecentClaims, decay)
	return s.RewardFunds.Modify(fund, func(f *objects.RewardFund) {
		f.RecentClaims = remaining
		f.LastUpdate = now
	})
}

func (s *State) cashoutOne(c objects.Comment, claim, recentClaims *uint256.Int, now int64) {
	if c.NetRshares <= 0 || claim.IsZero() || recentClaims.IsZero() {
		// Negative or zero rshares earn nothing; the comment still closes.
		s.closeComment(c, now)
		s.emit(types.CommentPayoutUpdateOp{Author: c.Author, Permlink: c.Permlink})
		return
	}
	fund, ok := s.findRewardFund(ContentRewardFundName)
	if !ok {
		return
	}

	// payout = claim * fund_balance / recent_claims, in 256-bit width.
	payoutU := new(uint256.Int).Mul(claim, uint256.NewInt(uint64(fund.RewardBalance.Amount)))
	payoutU.Div(payoutU, recentClaims)
	payout := int64(payoutU.Uint64())
	if payout > fund.RewardBalance.Amount {
		payout = fund.RewardBalance.Amount
	}

	// Cap by max_accepted_payout (expressed in dollars, compared at the
	// median feed).
	if fh, ok := s.FeedHistory.Find(0); ok && !fh.CurrentMedianHistory.IsNull() && c.MaxAcceptedPayout.Amount >= 0 {
		payoutDollars := fh.CurrentMedianHistory.Mul(types.NewAsset(payout, types.Native))
		if payoutDollars.Amount > c.MaxAcceptedPayout.Amount {
			capped := fh.CurrentMedianHistory.Invert().Mul(c.MaxAcceptedPayout)
			payout = capped.Amount
		}
	}
	if payout <= 0 {
		s.closeComment(c, now)
		s.emit(types.CommentPayoutUpdateOp{Author: c.Author, Permlink: c.Permlink})
		return
	}

	curationPool := int64(0)
	if c.AllowCurationRewards {
		curationPool = payout * int64(fund.PercentCurationRewards) / 10000
	}
	curationPaid := s.payCurators(c, curationPool)
	authorTokens := payout - curationPaid

	// Beneficiaries take their weight off the author share.
	beneficiaryPaid := int64(0)
	for _, b := range c.Beneficiaries {
		cut := authorTokens * int64(b.Weight) / 10000
		if cut <= 0 {
			continue
		}
		beneficiaryPaid += cut
		s.payRewardShare(b.Account, c, cut, true)
	}
	authorTokens -= beneficiaryPaid

	s.payAuthor(c, authorTokens)

	s.RewardFunds.Modify(fund, func(f *objects.RewardFund) {
		f.RewardBalance = f.RewardBalance.Sub(types.NewAsset(payout, types.Native))
	})
	s.closeComment(c, now)
	s.emit(types.CommentPayoutUpdateOp{Author: c.Author, Permlink: c.Permlink})
}

// payCurators splits the curation pool among the comment's voters
// proportional to their recorded weights, paid as pending reward vesting.
// Returns the amount actually paid (rounding dust stays with the author).
func (s *State) payCurators(c objects.Comment, pool int64) int64 {
	if pool <= 0 || c.TotalVoteWeight == 0 {
		return 0
	}
	var votes []objects.CommentVote
	s.CommentVotes.Range(func(v objects.CommentVote) bool {
		if v.Comment == c.ID && v.Weight > 0 {
			votes = append(votes, v)
		}
		return true
	})
	sort.Slice(votes, func(i, j int) bool { return votes[i].ID < votes[j].ID })

	paid := int64(0)
	for _, v := range votes {
		claim := mulDiv(pool, int64(v.Weight), int64(c.TotalVoteWeight))
		if claim <= 0 {
			continue
		}
		paid += claim
		shares := s.payRewardVesting(v.Voter, claim)
		s.emit(types.CurationRewardOp{
			Curator:      v.Voter,
			Author:       c.Author,
			Permlink:     c.Permlink,
			Reward:       shares,
			RewardShares: v.Rshares,
		})
	}
	return paid
}

// payAuthor splits the author's tokens per percent_dollars and the
// global print rate: the dollar half prints as SBD while the print rate
// allows; everything that cannot print vests alongside the vesting half.
func (s *State) payAuthor(c objects.Comment, tokens int64) {
	if tokens <= 0 {
		return
	}
	g := s.globals()
	dollarHalf := tokens * int64(c.PercentDollars) / 20000
	printed := dollarHalf * int64(g.SbdPrintRate) / 10000

	var dollarPayout types.Asset
	fh, _ := s.FeedHistory.Find(0)
	if printed > 0 && !fh.CurrentMedianHistory.IsNull() {
		dollarPayout = fh.CurrentMedianHistory.Mul(types.NewAsset(printed, types.Native))
		s.Globals.Modify(g, func(p *objects.DynamicGlobalProperties) {
			p.DollarSupply = p.DollarSupply.Add(dollarPayout)
			p.CurrentSupply = p.CurrentSupply.Sub(types.NewAsset(printed, types.Native))
		})
		if acc, ok := s.findAccount(c.Author); ok {
			s.Accounts.Modify(acc, func(a *objects.Account) {
				a.RewardDollarBalance = a.RewardDollarBalance.Add(dollarPayout)
			})
		}
	} else {
		printed = 0
		dollarPayout = types.NewAsset(0, types.Dollar)
	}

	vestingValue := tokens - printed
	shares := s.payRewardVesting(c.Author, vestingValue)
	s.emit(types.AuthorRewardOp{
		Author:        c.Author,
		Permlink:      c.Permlink,
		DollarPayout:  dollarPayout,
		VestingPayout: types.NewAsset(vestingValue, types.Native),
		VestingShares: shares,
	})
}

// payRewardShare pays a beneficiary cut, fully vested, and emits the
// benefactor virtual op.
func (s *State) payRewardShare(account string, c objects.Comment, tokens int64, benefactor bool) {
	shares := s.payRewardVesting(account, tokens)
	if benefactor {
		s.emit(types.CommentBenefactorRewardOp{
			Benefactor:    account,
			Author:        c.Author,
			Permlink:      c.Permlink,
			VestingPayout: shares,
		})
	}
}

// payRewardVesting converts tokens to pending reward vesting shares at
// the current vesting price, credits the account's pending reward
// balance and the global pending-reward aggregates. Returns the shares
// created. Pending rewards join the real vesting fund only on
// claim_reward_balance.
func (s *State) payRewardVesting(account string, tokens int64) types.Asset {
	g := s.globals()
	if tokens <= 0 {
		return types.NewAsset(0, types.NativeVesting)
	}
	pay := types.NewAsset(tokens, types.Native)
	shares := vesting.SharesForLiquid(pay, g.TotalVestingFund, g.TotalVestingShares, types.NativeVesting)
	if acc, ok := s.findAccount(account); ok {
		s.Accounts.Modify(acc, func(a *objects.Account) {
			a.RewardVestingShares = a.RewardVestingShares.Add(shares)
			a.RewardVestingBalance = a.RewardVestingBalance.Add(pay)
		})
	}
	s.Globals.Modify(g, func(p *objects.DynamicGlobalProperties) {
		p.PendingRewardedVestingShares = p.PendingRewardedVestingShares.Add(shares)
		p.PendingRewardedVestingFund = p.PendingRewardedVestingFund.Add(pay)
	})
	return shares
}

// closeComment zeroes the comment's reward accumulators and pins its
// cashout time to the never sentinel; its votes' weights are spent.
func (s *State) closeComment(c objects.Comment, now int64) {
	s.Comments.Modify(c, func(m *objects.Comment) {
		m.NetRshares = 0
		m.AbsRshares = 0
		m.VoteRshares = 0
		m.TotalVoteWeight = 0
		m.CashoutTime = objects.CashoutTimeNever
		m.LastPayout = now
	})
}
