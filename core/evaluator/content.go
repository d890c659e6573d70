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

package evaluator

import (
	"github.com/fresszonesongs/freezone/core/objects"
	"github.com/fresszonesongs/freezone/core/types"
)

// CashoutWindowSeconds is freezone_CASHOUT_WINDOW_SECONDS: the time between a
// root post's creation and its reward payout in core/maintenance.
const CashoutWindowSeconds = 7 * 24 * 60 * 60

// Vote100Percent is freezone_100_PERCENT, the fixed-point denominator shared
// by vote weights and beneficiary/curation percentages.
const Vote100Percent = 10000

func evalComment(ctx Context, operation types.Operation) error {
	op := operation.(types.CommentOp)
	if _, err := ctx.GetAccount(op.Author); err != nil {
		return err
	}

	existing, found := ctx.GetComment(op.Author, op.Permlink)
	if found {
		if existing.CashoutTime == objects.CashoutTimeNever {
			return ErrWrongPhase
		}
		ctx.ModifyComment(existing, func(c *objects.Comment) {})
		return nil
	}

	rootAuthor, rootPermlink := op.Author, op.Permlink
	if op.ParentAuthor != "" {
		parent, ok := ctx.GetComment(op.ParentAuthor, op.ParentPermlink)
		if !ok {
			return ErrUnknownEntity
		}
		if _, err := ctx.GetAccount(op.ParentAuthor); err != nil {
			return err
		}
		rootAuthor, rootPermlink = parent.RootAuthor, parent.RootPermlink
		if rootAuthor == "" {
			rootAuthor, rootPermlink = parent.Author, parent.Permlink
		}
		ctx.ModifyComment(parent, func(c *objects.Comment) { c.Children++ })
	}

	ctx.CreateComment(func(c *objects.Comment) {
		c.Author = op.Author
		c.Permlink = op.Permlink
		c.ParentAuthor = op.ParentAuthor
		c.ParentPermlink = op.ParentPermlink
		c.RootAuthor = rootAuthor
		c.RootPermlink = rootPermlink
		c.Created = ctx.Now()
		c.CashoutTime = ctx.Now() + CashoutWindowSeconds
		c.LastPayout = 0
		c.AllowVotes = true
		c.AllowCurationRewards = true
		c.PercentDollars = Vote100Percent
		c.MaxAcceptedPayout = types.NewAsset(1_000_000_000_000, types.Dollar)
	})
	return nil
}

func evalCommentOptions(ctx Context, operation types.Operation) error {
	op := operation.(types.CommentOptionsOp)
	c, ok := ctx.GetComment(op.Author, op.Permlink)
	if !ok {
		return ErrUnknownEntity
	}
	if c.CashoutTime == objects.CashoutTimeNever {
		return ErrWrongPhase
	}
	ctx.ModifyComment(c, func(c *objects.Comment) {
		c.MaxAcceptedPayout = op.MaxAcceptedPayout
		c.PercentDollars = op.PercentDollars
		c.AllowVotes = op.AllowVotes
		c.AllowCurationRewards = op.AllowCurationRewards
		c.Beneficiaries = op.Beneficiaries
	})
	return nil
}

func evalDeleteComment(ctx Context, operation types.Operation) error {
	op := operation.(types.DeleteCommentOp)
	c, ok := ctx.GetComment(op.Author, op.Permlink)
	if !ok {
		return ErrUnknownEntity
	}
	if c.Children > 0 {
		return ErrWrongPhase
	}
	if c.NetRshares > 0 {
		return ErrWrongPhase
	}
	ctx.RemoveComment(c)
	return nil
}

func evalVote(ctx Context, operation types.Operation) error {
	op := operation.(types.VoteOp)
	voter, err := ctx.GetAccount(op.Voter)
	if err != nil {
		return err
	}
	c, ok := ctx.GetComment(op.Author, op.Permlink)
	if !ok {
		return ErrUnknownEntity
	}
	if !c.AllowVotes {
		return ErrWrongPhase
	}
	if c.CashoutTime == objects.CashoutTimeNever {
		return ErrWrongPhase
	}

	commentKey := op.Author + "/" + op.Permlink
	existing, hadVote := ctx.GetCommentVote(commentKey, op.Voter)

	effectiveStake := voter.VestingShares.Amount -
		voter.DelegatedVestingShares.Amount + voter.ReceivedVestingShares.Amount
	votingMana := regenerateMana(voter.VotingManaBar, effectiveStake, ctx.Now())
	downvoteMana := regenerateMana(voter.DownvoteManaBar, effectiveStake*DownvotePoolPercent/Vote100Percent, ctx.Now())

	mana := votingMana
	if op.Weight < 0 {
		mana = downvoteMana
	}
	usedMana := (mana * int64(abs16(op.Weight))) / Vote100Percent
	rshares := (voter.VestingShares.Amount * int64(op.Weight)) / Vote100Percent
	if usedMana < 0 {
		usedMana = 0
	}

	ctx.ModifyAccount(voter, func(a *objects.Account) {
		if op.Weight < 0 {
			a.DownvoteManaBar.CurrentMana = downvoteMana - usedMana
			a.DownvoteManaBar.LastUpdate = ctx.Now()
			a.VotingManaBar.CurrentMana = votingMana
			a.VotingManaBar.LastUpdate = ctx.Now()
		} else {
			a.VotingManaBar.CurrentMana = votingMana - usedMana
			a.VotingManaBar.LastUpdate = ctx.Now()
			a.DownvoteManaBar.CurrentMana = downvoteMana
			a.DownvoteManaBar.LastUpdate = ctx.Now()
		}
	})

	var oldRshares int64
	if hadVote {
		oldRshares = existing.Rshares
	}
	delta := rshares - oldRshares

	// Curation weight decays through the reverse auction: a vote cast
	// immediately after the post claims almost nothing, ramping linearly
	// to full weight at the window's close.
	curationWeight := reverseAuctionWeight(absInt64(rshares), c.Created, ctx.Now())
	if hadVote {
		// A changed vote forfeits its curation claim.
		curationWeight = 0
	}

	ctx.ModifyComment(c, func(c *objects.Comment) {
		c.NetRshares += delta
		if rshares > 0 {
			c.AbsRshares += absInt64(rshares) - absInt64(oldRshares)
			c.VoteRshares += delta
		}
		c.TotalVoteWeight += curationWeight
	})

	ctx.UpsertCommentVote(commentKey, op.Voter, rshares, curationWeight, op.Weight)
	return nil
}

// ReverseAuctionWindowSeconds is freezone_REVERSE_AUCTION_WINDOW_SECONDS_HF21.
const ReverseAuctionWindowSeconds = 5 * 60

// reverseAuctionWeight scales a vote's curation claim by
// min(1, elapsed/window) since the comment's creation.
func reverseAuctionWeight(rshares, created, now int64) uint64 {
	if rshares <= 0 {
		return 0
	}
	elapsed := now - created
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed >= ReverseAuctionWindowSeconds {
		return uint64(rshares)
	}
	return uint64(rshares * elapsed / ReverseAuctionWindowSeconds)
}

func evalClaimRewardBalance(ctx Context, operation types.Operation) error {
	op := operation.(types.ClaimRewardBalanceOp)
	if _, err := ctx.GetAccount(op.Account); err != nil {
		return err
	}
	return ctx.AdjustRewardBalance(op.Account, op.RewardLiquid, op.RewardDollar, op.RewardVesting)
}

// VoteRegenerationSeconds is the period over which a drained mana bar
// refills from zero to its ceiling.
const VoteRegenerationSeconds = 5 * 24 * 60 * 60

// DownvotePoolPercent sizes the downvote bar relative to the upvote bar.
const DownvotePoolPercent = 2500

// regenerateMana refills a bar linearly toward max over
// VoteRegenerationSeconds, saturating at max.
func regenerateMana(bar objects.ManaBar, max, now int64) int64 {
	if max <= 0 {
		return 0
	}
	elapsed := now - bar.LastUpdate
	if elapsed <= 0 {
		if bar.CurrentMana > max {
			return max
		}
		return bar.CurrentMana
	}
	regen := max * elapsed / VoteRegenerationSeconds
	mana := bar.CurrentMana + regen
	if mana > max {
		mana = max
	}
	return mana
}

func abs16(v int16) int16 {
	if v < 0 {
		return -v
	}
	return v
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
