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

// DynamicGlobalProperties is the chain-wide singleton. There is
// always exactly one row, at ID 0.
type DynamicGlobalProperties struct {
	state.Base
	HeadBlockNumber uint32
	HeadBlockID     [32]byte
	Time            int64
	CurrentWitness  string

	CurrentSupply       types.Asset
	DollarSupply         types.Asset
	TotalVestingFund     types.Asset
	TotalVestingShares   types.Asset
	PendingRewardedVestingShares types.Asset
	PendingRewardedVestingFund  types.Asset

	VirtualSupply types.Asset

	InflationRateStartPercent uint32
	InflationRateStopPercent  uint32
	InflationNarrowingPeriod  uint32

	MaximumBlockSize uint32
	CurrentAslot     uint64
	RecentSlotsFilled [2]uint64 // 128-bit bitmap split into two words
	ParticipationCount uint8

	LastIrreversibleBlockNum uint32
	LastMaintenanceTime      int64
	NextMaintenanceTime      int64

	SbdPrintRate       uint16
	SbdStartPercent    uint32
	SbdStopPercent     uint32

	AvailableAccountSubsidies int64

	RequiredActionsPartitionPercent uint8

	SstCreationFee types.Asset
}

// FeedHistory is the singleton ring of recently published price feeds.
type FeedHistory struct {
	state.Base
	PriceHistory []types.Price
	CurrentMedianHistory types.Price
}

// HardforkProperty is the singleton hardfork-activation tracker.
type HardforkProperty struct {
	state.Base
	LastHardfork        uint32
	ProcessedHardforks  []int64
	CurrentHardforkVersion [3]uint16
	NextHardforkVersion    [3]uint16
	NextHardforkTime       int64
}

// NAIPool is the singleton bounded pool of pre-generated numerical asset
// identifiers ready to be claimed by the next SST_create_operation.
type NAIPool struct {
	state.Base
	Available []types.NAI
}

// PendingAction is the shared shape for both the required and optional
// automated-action queues; a boolean tag could work but two tables
// (one per queue, created by core/chain) keep the secondary "by execution
// time" orderings from mixing required and optional dispatch.
type PendingAction struct {
	state.Base
	ExecutionTime int64
	Hash          [32]byte
	Action        types.Action
}
