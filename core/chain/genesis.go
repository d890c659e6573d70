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

package chain

import (
	"github.com/fresszonesongs/freezone/core/consensus"
	"github.com/fresszonesongs/freezone/core/maintenance"
	"github.com/fresszonesongs/freezone/core/objects"
	"github.com/fresszonesongs/freezone/core/types"
)

// InitWitnessName produces every block until real witnesses are voted in.
const InitWitnessName = "initminer"

// BlockSummaryRingSize is the 2^16 TaPoS ring.
const BlockSummaryRingSize = 1 << 16

// GenesisTime is the timestamp of block 0 for a fresh chain.
const GenesisTime = 1_451_606_400 // 2016-01-01T00:00:00Z

// Default inflation parameters (basis points) and narrowing period.
const (
	DefaultInflationStart     = 978
	DefaultInflationStop      = 95
	DefaultInflationNarrowing = 250_000
)

// Default SBD debt-ratio thresholds (basis points of virtual supply).
const (
	DefaultSbdStartPercent = 900
	DefaultSbdStopPercent  = 1000
)

// InitGenesis populates an empty store: the singletons, the init
// witness, the burn and treasury accounts, the reward fund, the TaPoS
// ring and the NAI pool. Runs outside any session — genesis is
// irreversible.
func (w *World) InitGenesis(cfg Config) {
	if _, ok := w.Globals.Find(0); ok {
		return
	}

	w.Globals.Create(func(g *objects.DynamicGlobalProperties) {
		g.HeadBlockNumber = 0
		g.Time = GenesisTime
		g.CurrentWitness = InitWitnessName
		g.CurrentSupply = types.NewAsset(cfg.InitialSupply, types.Native)
		g.DollarSupply = types.NewAsset(cfg.SbdInitialSupply, types.Dollar)
		g.VirtualSupply = types.NewAsset(cfg.InitialSupply, types.Native)
		g.TotalVestingFund = types.NewAsset(0, types.Native)
		g.TotalVestingShares = types.NewAsset(0, types.NativeVesting)
		g.PendingRewardedVestingFund = types.NewAsset(0, types.Native)
		g.PendingRewardedVestingShares = types.NewAsset(0, types.NativeVesting)
		g.InflationRateStartPercent = DefaultInflationStart
		g.InflationRateStopPercent = DefaultInflationStop
		g.InflationNarrowingPeriod = DefaultInflationNarrowing
		g.MaximumBlockSize = 65536
		g.SbdPrintRate = 10000
		g.SbdStartPercent = DefaultSbdStartPercent
		g.SbdStopPercent = DefaultSbdStopPercent
		g.LastMaintenanceTime = GenesisTime
		g.NextMaintenanceTime = GenesisTime + 24*60*60
		g.RequiredActionsPartitionPercent = 25
		g.SstCreationFee = types.NewAsset(1000, types.Dollar)
	})

	w.FeedHistory.Create(func(f *objects.FeedHistory) {})
	w.HardforkProp.Create(func(h *objects.HardforkProperty) {})

	// Pre-generate a bounded pool of NAIs for future SST creation.
	w.NAIPool.Create(func(p *objects.NAIPool) {
		p.Available = make([]types.NAI, 0, 10)
		for i := 0; i < 10; i++ {
			p.Available = append(p.Available, types.NAI(0x400000+i))
		}
	})

	// The full TaPoS ring up front so the ring index is always valid.
	for i := 0; i < BlockSummaryRingSize; i++ {
		w.BlockSummaries.Create(func(b *objects.BlockSummary) {})
	}

	w.createGenesisAccount(InitWitnessName, cfg.InitialSupply)
	w.createGenesisAccount(NullAccountName, 0)
	w.createGenesisAccount(maintenance.TreasuryAccountName, 0)

	if cfg.InitPublicKey != (types.PublicKey{}) {
		initAuth := types.Authority{
			WeightThreshold: 1,
			KeyAuths:        []types.KeyAuthority{{Key: cfg.InitPublicKey, Weight: 1}},
		}
		if acc, ok := w.FindAccount(InitWitnessName); ok {
			w.Accounts.Modify(acc, func(a *objects.Account) {
				a.Owner = initAuth
				a.Active = initAuth
				a.Posting = initAuth
				a.MemoKey = cfg.InitPublicKey
			})
		}
	}

	w.Witnesses.Create(func(wt *objects.Witness) {
		wt.Owner = InitWitnessName
		wt.SigningKey = cfg.InitPublicKey
		wt.Category = objects.WitnessElected
		wt.ProposedProps = objects.ChainProperties{
			AccountCreationFee: types.NewAsset(100, types.Native),
			MaximumBlockSize:   65536,
		}
	})
	w.WitnessSchedule.Create(func(s *objects.WitnessSchedule) {
		s.CurrentShuffledWitnesses = []string{InitWitnessName}
		s.NumScheduledWitnesses = 1
		s.MaxVotedWitnesses = consensus.MaxWitnesses - 1
		s.MaxRunnerWitnesses = 1
	})

	w.RewardFunds.Create(func(f *objects.RewardFund) {
		f.Name = "post"
		f.RewardBalance = types.NewAsset(0, types.Native)
		f.RecentClaims = types.Uint256FromInt64(0)
		f.LastUpdate = GenesisTime
		f.AuthorRewardCurve = types.CurveQuadratic
		f.CurationRewardCurve = types.CurveSquareRoot
		f.PercentCurationRewards = 2500
		f.ContentConstant = types.ContentConstantHF0
	})

	w.Store.SetRevision(0)
	w.log.Info("genesis initialized", "initial_supply", cfg.InitialSupply, "sbd_initial_supply", cfg.SbdInitialSupply)
}

func (w *World) createGenesisAccount(name string, balance int64) {
	w.Accounts.Create(func(a *objects.Account) {
		applyAccountDefaults(a, GenesisTime)
		a.Name = name
		a.Balance = types.NewAsset(balance, types.Native)
		a.CanVote = name != NullAccountName
	})
}

// applyAccountDefaults zeroes every built-in balance with its proper
// symbol so later Adds never mix a zero-value symbol.
func applyAccountDefaults(a *objects.Account, now int64) {
	a.Balance = types.NewAsset(0, types.Native)
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
	a.NextVestingWithdrawal = int64(1) << 62
	a.SbdSecondsLastUpdate = now
	a.SbdSeconds = types.Uint256FromInt64(0)
	a.CanVote = true
	a.Created = now
}
