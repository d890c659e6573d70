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
	"github.com/fresszonesongs/freezone/core/state"
	"github.com/fresszonesongs/freezone/core/types"
)

// LimitOrder is one resting order in the order book. Indexed both
// by price ascending and by expiration.
type LimitOrder struct {
	state.Base
	Owner        string
	OrderID      uint32
	ForSale      int64 // remaining amount of Sell.Symbol
	Sell         types.Asset
	SellPrice    types.Price
	Created      int64
	Expiration   int64
}

func (o LimitOrder) AmountForSale() types.Asset {
	return types.NewAsset(o.ForSale, o.Sell.Symbol)
}

// AmountToReceive is for_sale converted at the order's sell price.
func (o LimitOrder) AmountToReceive() types.Asset {
	return o.SellPrice.Mul(o.AmountForSale())
}

// ConvertRequest is a pending dollar->native conversion.
type ConvertRequest struct {
	state.Base
	Owner     string
	RequestID uint32
	Amount    types.Asset
	Conversion int64 // due time
}

// Escrow holds funds between from and to under an agent, and tracks
// which of to/agent have ratified it.
type Escrow struct {
	state.Base
	From, To, Agent      string
	EscrowID             uint32
	Sbd, Steem           types.Asset // dollar / native amounts held
	PendingFee           types.Asset
	ToApproved           bool
	AgentApproved        bool
	Disputed             bool
	RatificationDeadline int64
	EscrowExpiration     int64
}

func (e Escrow) IsApproved() bool { return e.ToApproved && e.AgentApproved }

// SavingsWithdraw is a maturing transfer-from-savings request.
type SavingsWithdraw struct {
	state.Base
	From, To  string
	Memo      string
	RequestID uint32
	Amount    types.Asset
	Completion int64
}

// VestingDelegation is an active delegator -> delegatee vesting grant.
type VestingDelegation struct {
	state.Base
	Delegator     string
	Delegatee     string
	VestingShares types.Asset
	MinDelegationTime int64
}

// VestingDelegationExpiration is a delegation pending return; it still
// counts against the delegator's delegated total until Expiration passes.
type VestingDelegationExpiration struct {
	state.Base
	Delegator     string
	VestingShares types.Asset
	Expiration    int64
}

// AccountRecoveryRequest is a pending owner-authority change proposed by
// the account's configured recovery account.
type AccountRecoveryRequest struct {
	state.Base
	AccountToRecover string
	NewOwnerAuthority types.Authority
	Expires          int64
}

// ChangeRecoveryAccountRequest delays a recovery-account change by the
// configured owner-authority history window.
type ChangeRecoveryAccountRequest struct {
	state.Base
	AccountToRecover string
	RecoveryAccount  string
	EffectiveOn      int64
}

// OwnerAuthorityHistory retains past owner authorities so a recovery can
// roll back an attacker's key change within the tracking window.
type OwnerAuthorityHistory struct {
	state.Base
	Account         string
	PreviousOwnerAuthority types.Authority
	LastValidTime   int64
}

// DeclineVotingRightsRequest matures one block after the configured delay
// and clears the account's voting rights permanently.
type DeclineVotingRightsRequest struct {
	state.Base
	Account string
	Effective int64
}

// BlockSummary is one entry of the TaPoS anti-replay ring.
type BlockSummary struct {
	state.Base
	BlockID [32]byte
}

// TransactionRecord is a dedup-index row: the transaction is known until
// it expires.
type TransactionRecord struct {
	state.Base
	TxID       [32]byte
	Expiration int64
}

// Proposal is a treasury-funding governance proposal.
type Proposal struct {
	state.Base
	ProposalID  uint32
	Creator     string
	Receiver    string
	StartDate   int64
	EndDate     int64
	DailyPay    types.Asset
	Subject     string
	TotalVotes  uint64
}

type ProposalVote struct {
	state.Base
	ProposalID state.ID
	Voter      string
}

// LiquidityRewardBalance accumulates one account's market-making volume
// toward the periodic top-of-book liquidity reward (pre-hardfork only).
// Volume decays by resetting after a payout.
type LiquidityRewardBalance struct {
	state.Base
	Owner            string
	SteemVolume      int64
	SbdVolume        int64
	WeightUpdateTime int64
}

// LiquidityWeight is the reward ranking metric: min(steem, sbd) volume
// dominates so one-sided volume cannot farm the reward.
func (l LiquidityRewardBalance) LiquidityWeight() int64 {
	min, max := l.SteemVolume, l.SbdVolume
	if min > max {
		min, max = max, min
	}
	return min*min + min*max
}
