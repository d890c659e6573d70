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

package objects

import (
	"github.com/holiman/uint256"

	"github.com/fresszonesongs/freezone/core/state"
	"github.com/fresszonesongs/freezone/core/types"
)

// CashoutTimeNever is the sentinel cashout_time written once a comment
// has paid out.
const CashoutTimeNever int64 = 1 << 62

// Comment is a post or reply. Beneficiaries and the percent-dollars split
// are fixed by comment_options before the first vote with a non-zero
// rshares contribution.
type Comment struct {
	state.Base
	Author         string
	Permlink       string
	ParentAuthor   string
	ParentPermlink string
	RootAuthor     string
	RootPermlink   string

	NetRshares    int64
	AbsRshares    int64
	VoteRshares   int64
	Children      uint32

	Created     int64
	CashoutTime int64
	LastPayout  int64

	MaxAcceptedPayout    types.Asset
	PercentDollars       uint16
	AllowVotes           bool
	AllowCurationRewards bool
	Beneficiaries        []types.Beneficiary

	TotalVoteWeight uint64
}

// CommentVote is the (comment, voter) relation recording one vote's
// weight contribution, used by the curation-reward pass.
type CommentVote struct {
	state.Base
	Comment     state.ID
	Voter       string
	Symbol      types.Symbol
	Rshares     int64
	Weight      uint64
	VotePercent int16
	NumChanges  uint8
	LastUpdate  int64
}

// RewardFund tracks one reward pool's recent-claims accumulator and curve
// configuration; there is one per (symbol) — native content rewards use
// "post" and SSTs get their own fund keyed by symbol in the sst package.
type RewardFund struct {
	state.Base
	Name                 string
	RewardBalance        types.Asset
	RecentClaims         *uint256.Int
	LastUpdate           int64
	AuthorRewardCurve    types.RewardCurve
	CurationRewardCurve  types.RewardCurve
	PercentCurationRewards uint16
	ContentConstant      *uint256.Int
}
