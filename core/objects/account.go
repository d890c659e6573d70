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

// Package objects holds the object-store schemas shared by the
// evaluator, maintenance, orderbook and sst packages: accounts,
// witnesses, comments, orders, escrows and the other persistent
// entities. Every type embeds state.Base and is registered into one or
// more state.Table instances by core/chain at engine construction.
package objects

import (
	"github.com/holiman/uint256"

	"github.com/fresszonesongs/freezone/core/state"
	"github.com/fresszonesongs/freezone/core/types"
)

// MaxProxyRecursionDepth bounds the proxied-vote chain, freezone_MAX_PROXY_RECURSION_DEPTH.
const MaxProxyRecursionDepth = 4

// ManaBar models a regenerating resource pool (voting power, downvote
// power): current amount and the time it was last updated. The ceiling
// is not stored on the bar.
type ManaBar struct {
	CurrentMana  int64
	LastUpdate   int64
}

// WithdrawRouteEntry is one row of an account's configured withdraw
// routing table; the live rows live in their own table so iteration by
// from-account is a secondary-index range scan.
type WithdrawRouteEntry struct {
	state.Base
	FromAccount string
	ToAccount   string
	Percent     uint16
	AutoVest    bool
}

// Account is the chain's core identity and balance-holding object.
type Account struct {
	state.Base
	Name    string
	MemoKey types.PublicKey
	Proxy   string // "" means no proxy

	Owner   types.Authority
	Active  types.Authority
	Posting types.Authority

	Balance        types.Asset // native, liquid
	DollarBalance  types.Asset // dollar, liquid
	SavingsBalance       types.Asset
	SavingsDollarBalance types.Asset
	SavingsWithdrawRequests uint8
	SbdSecondsLastUpdate    int64
	SbdSeconds              *uint256.Int

	RewardDollarBalance  types.Asset
	RewardVestingBalance types.Asset
	RewardVestingShares  types.Asset

	VestingShares          types.Asset
	DelegatedVestingShares types.Asset
	ReceivedVestingShares  types.Asset
	VestingWithdrawRate    types.Asset
	NextVestingWithdrawal  int64
	WithdrawnThisPeriod    types.Asset
	ToWithdraw             int64

	VotingManaBar    ManaBar
	DownvoteManaBar  ManaBar
	ProxiedVSFVotes  [MaxProxyRecursionDepth]int64

	WitnessesVotedFor int32
	CanVote           bool

	RecoveryAccount string
	LastAccountRecoveryTime int64

	Created int64
}

// Witness holds one block producer's identity, schedule state and
// subsidy pool.
type Witness struct {
	state.Base
	Owner               string
	SigningKey          types.PublicKey
	Url                 string
	Votes               int64
	VirtualLastUpdate   int64
	VirtualPosition     int64
	VirtualSchedulingTime int64
	LastConfirmedBlockNum uint32
	TotalMissed         uint64
	RunningVersion      [3]uint16
	HardforkVersionVote uint32
	HardforkTimeVote    int64

	AvailableSubsidies int64

	ProposedProps ChainProperties
	LastSbdFeed   types.Price
	SbdFeedTime   int64

	Category int // elected, timeshare, miner
}

const (
	WitnessElected = iota
	WitnessTimeshare
	WitnessMiner
)

// WitnessSchedule is the singleton holding the current round's shuffled
// producer list and account-subsidy dynamics parameters.
type WitnessSchedule struct {
	state.Base
	CurrentShuffledWitnesses []string
	NumScheduledWitnesses    uint8
	CurrentVirtualTime       int64
	MedianProps              ChainProperties
	MaxVotedWitnesses        uint8
	MaxMinerWitnesses        uint8
	MaxRunnerWitnesses       uint8
	WitnessPayNormalizationFactor int64

	MinWitnessAccountSubsidyDecay uint32
	MaxWitnessAccountSubsidyDecay uint32
	AccountSubsidyPool            int64
	AccountSubsidyRd               ResourceDynamicsParams
	WitnessAccountSubsidyRd        ResourceDynamicsParams
}

// ChainProperties is the set of witness-median-voted parameters.
type ChainProperties struct {
	AccountCreationFee types.Asset
	MaximumBlockSize   uint32
	SbdInterestRate    uint16
}

// ResourceDynamicsParams parameterizes the two-level subsidy decay
// described in the supplemented witness-subsidy feature.
type ResourceDynamicsParams struct {
	ResourceUnit      int64
	BudgetPerTime     int64
	PoolEqEe          int64
	MaxPool           int64
	DecayPer10kBlocks uint32
}
