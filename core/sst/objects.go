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

// Package sst implements the per-user-token lifecycle state machine:
// setup, ICO, tiers, the emission engine, contributor payout and the
// launch-success vesting ballast.
package sst

import (
	"github.com/holiman/uint256"

	"github.com/fresszonesongs/freezone/core/state"
	"github.com/fresszonesongs/freezone/core/types"
)

// Phase is the SST lifecycle state; it only ever advances.
type Phase uint8

const (
	PhaseSetup Phase = iota
	PhaseSetupCompleted
	PhaseIco
	PhaseIcoCompleted
	PhaseLaunchFailed
	PhaseLaunchSuccess
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseSetupCompleted:
		return "setup_completed"
	case PhaseIco:
		return "ico"
	case PhaseIcoCompleted:
		return "ico_completed"
	case PhaseLaunchFailed:
		return "launch_failed"
	case PhaseLaunchSuccess:
		return "launch_success"
	default:
		return "unknown"
	}
}

// BallastSupplyPercentBasisPoints is SST_BALLAST_SUPPLY_PERCENT
// (freezone_1_PERCENT / 10), basis points out of 10000.
const BallastSupplyPercentBasisPoints = 10

// InitialVestingPerUnit is SST_INITIAL_VESTING_PER_UNIT.
const InitialVestingPerUnit = 1_000_000

// MaxIcoTiers is SST_MAX_ICO_TIERS.
const MaxIcoTiers = 10

// EmitIndefinitely mirrors types.SSTEmitIndefinitely for readability
// within this package.
const EmitIndefinitely = types.SSTEmitIndefinitely

// MarketMaker tracks one SST's built-in two-sided liquidity pool, seeded
// by $market_maker emission-unit routing.
type MarketMaker struct {
	SteemBalance types.Asset
	TokenBalance types.Asset
	ReserveRatio uint16
}

// SetupParameters are the admin knobs fixed for the token's lifetime once
// SST_setup_operation closes the setup phase.
type SetupParameters struct {
	AllowVoting         bool
	AllowDownvotes      bool
	WindowSeconds       uint32
	RegenerationSeconds uint32
	VotesPerRegeneration uint32
	ContentConstant     *uint256.Int
	PercentCurationRewards uint16
	AuthorRewardCurve   types.RewardCurve
	CurationRewardCurve types.RewardCurve
	MaxSupply           int64
}

// Token is the SST_Token object: one row per user-defined asset.
type Token struct {
	state.Base
	LiquidSymbol   types.NAI
	ControlAccount string
	Phase          Phase

	CurrentSupply int64

	VestingFund   int64
	VestingShares int64
	BallastFund   int64
	BallastShares int64

	PendingRewardVestingFund   int64
	PendingRewardVestingShares int64
	RewardBalance              int64
	RecentClaims               *uint256.Int
	LastRewardUpdate           int64
	LastVirtualEmissionTime    int64

	MarketMaker MarketMaker
	Setup       SetupParameters
}

// IcoState is the SST_ICO object: one per token during its contribution
// window.
type IcoState struct {
	state.Base
	SymbolNai             types.NAI
	ContributionBeginTime int64
	ContributionEndTime   int64
	LaunchTime            int64
	SteemSatoshiMin       int64
	MinUnitRatio           uint32
	MaxUnitRatio           uint32
	TotalContributed       int64
	ProcessedContributions uint32
	// ProcessedOffset is the satoshi prefix already settled by payout
	// actions, locating the next contribution within the tier partition.
	ProcessedOffset int64
}

// IcoTier is one prefix-sum tier of the contribution curve.
type IcoTier struct {
	state.Base
	SymbolNai        types.NAI
	TierIndex        uint8
	SteemSatoshiCap  int64
	GenerationUnit   GenerationUnit
}

// GenerationUnit is the pair of unit-target -> weight routing maps used
// both by ICO tiers and by emission schedules.
type GenerationUnit struct {
	SteemUnit map[string]uint16
	TokenUnit map[string]uint16
}

// EmissionSchedule is an SST_Token_Emissions object.
type EmissionSchedule struct {
	state.Base
	SymbolNai       types.NAI
	ScheduleTime    int64
	Emit            GenerationUnit
	IntervalSeconds uint32
	EmissionCount   uint32
	LepTime         int64
	RepTime         int64
	LepAbs          int64
	RepAbs          int64
	LepRel          int64 // basis points of current supply
	RepRel          int64
	FloorEmissions  bool
}

// Contribution is an SST_Contribution object keyed by (symbol,
// contributor, contribution_id).
type Contribution struct {
	state.Base
	SymbolNai      types.NAI
	Contributor    string
	ContributionID uint32
	Amount         int64
}

// RegularBalance is a per-(account, SST) liquid/vesting balance row.
type RegularBalance struct {
	state.Base
	Account       string
	SymbolNai     types.NAI
	Liquid        int64
	VestingShares int64
	VestingWithdrawRate int64
	NextVestingWithdrawal int64
	Withdrawn     int64
	ToWithdraw    int64
}

// RewardsBalance is a per-(account, SST) pending-reward row, mirroring
// the native token's separate reward_*_balance fields.
type RewardsBalance struct {
	state.Base
	Account             string
	SymbolNai           types.NAI
	PendingLiquid       int64
	PendingVestingShares int64
	PendingVestingValue  int64
}
