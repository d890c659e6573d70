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
	"math/big"

	"github.com/fresszonesongs/freezone/core/consensus"
	"github.com/fresszonesongs/freezone/core/objects"
	"github.com/fresszonesongs/freezone/core/types"
	"github.com/fresszonesongs/freezone/core/vesting"
)

// BlocksPerYear at the 3-second block interval.
const BlocksPerYear = 365 * 24 * 60 * 60 / consensus.BlockIntervalSeconds

// Per-block inflation split, basis points of each block's new supply.
const (
	ContentRewardPercent = 6500
	VestingFundPercent   = 1500
	SpsFundPercent       = 1000
	// witness reward is the remainder
)

// TreasuryAccountName receives the SPS share of inflation and funds
// accepted proposals.
const TreasuryAccountName = "freezone.dao"

// ContentRewardFundName is the native token's reward fund row.
const ContentRewardFundName = "post"

// step 11: processFunds mints one block's inflation on the narrowing
// schedule and splits it into content reward, vesting reward, treasury
// and witness pay.
func (s *State) processFunds(bc BlockContext) {
	g := s.globals()
	if g.VirtualSupply.Amount <= 0 {
		return
	}

	rate := currentInflationRate(g, bc.BlockNum)
	newSupply := mulDiv(g.VirtualSupply.Amount, rate, 10000*BlocksPerYear)
	if newSupply <= 0 {
		return
	}

	contentReward := newSupply * ContentRewardPercent / 10000
	vestingReward := newSupply * VestingFundPercent / 10000
	spsReward := newSupply * SpsFundPercent / 10000
	witnessReward := newSupply - contentReward - vestingReward - spsReward

	if fund, ok := s.findRewardFund(ContentRewardFundName); ok {
		s.RewardFunds.Modify(fund, func(f *objects.RewardFund) {
			f.RewardBalance = f.RewardBalance.Add(types.NewAsset(contentReward, types.Native))
		})
	} else {
		// No reward fund configured (stripped-down test chains): the
		// content share is minted into the vesting fund instead so supply
		// still reconciles.
		vestingReward += contentReward
		contentReward = 0
	}

	// The treasury share is minted as dollars at the median feed when one
	// exists; otherwise it stays native.
	spsNative := types.NewAsset(spsReward, types.Native)
	fh, _ := s.FeedHistory.Find(0)
	if treasury, ok := s.findAccount(TreasuryAccountName); ok {
		if !fh.CurrentMedianHistory.IsNull() {
			spsDollars := fh.CurrentMedianHistory.Mul(spsNative)
			s.Accounts.Modify(treasury, func(a *objects.Account) {
				a.DollarBalance = a.DollarBalance.Add(spsDollars)
			})
			s.Globals.Modify(s.globals(), func(p *objects.DynamicGlobalProperties) {
				p.DollarSupply = p.DollarSupply.Add(spsDollars)
			})
			spsReward = 0 // not minted as native
		} else {
			s.Accounts.Modify(treasury, func(a *objects.Account) {
				a.Balance = a.Balance.Add(spsNative)
			})
		}
	} else {
		spsReward = 0
	}

	// Witness pay is vested to the producer.
	g = s.globals()
	witnessShares := types.NewAsset(0, types.NativeVesting)
	if witness, ok := s.findAccount(bc.Witness); ok && witnessReward > 0 {
		pay := types.NewAsset(witnessReward, types.Native)
		witnessShares = vesting.SharesForLiquid(pay, g.TotalVestingFund, g.TotalVestingShares, types.NativeVesting)
		s.Accounts.Modify(witness, func(a *objects.Account) {
			a.VestingShares = a.VestingShares.Add(witnessShares)
		})
		s.Globals.Modify(g, func(p *objects.DynamicGlobalProperties) {
			p.TotalVestingFund = p.TotalVestingFund.Add(pay)
			p.TotalVestingShares = p.TotalVestingShares.Add(witnessShares)
		})
		s.emit(types.ProducerRewardOp{Producer: bc.Witness, VestingShares: witnessShares})
	} else {
		witnessReward = 0
	}

	minted := contentReward + vestingReward + spsReward + witnessReward
	g = s.globals()
	s.Globals.Modify(g, func(p *objects.DynamicGlobalProperties) {
		p.CurrentSupply = p.CurrentSupply.Add(types.NewAsset(minted, types.Native))
		p.TotalVestingFund = p.TotalVestingFund.Add(types.NewAsset(vestingReward, types.Native))
		p.VirtualSupply = p.VirtualSupply.Add(types.NewAsset(minted, types.Native))
	})
}

// currentInflationRate is the narrowing schedule
// max(start - block_height / narrowing_period, stop), in basis points.
func currentInflationRate(g objects.DynamicGlobalProperties, blockNum uint32) int64 {
	start := int64(g.InflationRateStartPercent)
	stop := int64(g.InflationRateStopPercent)
	narrow := int64(g.InflationNarrowingPeriod)
	if narrow == 0 {
		return stop
	}
	rate := start - int64(blockNum)/narrow
	if rate < stop {
		rate = stop
	}
	return rate
}

func (s *State) findRewardFund(name string) (objects.RewardFund, bool) {
	var found objects.RewardFund
	var ok bool
	s.RewardFunds.Range(func(f objects.RewardFund) bool {
		if f.Name == name {
			found, ok = f, true
			return false
		}
		return true
	})
	return found, ok
}

// step 12: processConversions settles every convert request whose
// 3.5-day delay has elapsed, at the current median price.
func (s *State) processConversions(now int64) {
	fh, ok := s.FeedHistory.Find(0)
	if !ok || fh.CurrentMedianHistory.IsNull() {
		return
	}
	var due []objects.ConvertRequest
	s.ConvertRequests.Range(func(r objects.ConvertRequest) bool {
		if r.Conversion <= now {
			due = append(due, r)
		}
		return true
	})
	for _, r := range due {
		out := fh.CurrentMedianHistory.Mul(r.Amount)
		s.creditBalance(r.Owner, out)
		g := s.globals()
		s.Globals.Modify(g, func(p *objects.DynamicGlobalProperties) {
			p.DollarSupply = p.DollarSupply.Sub(r.Amount)
			p.CurrentSupply = p.CurrentSupply.Add(out)
		})
		s.emit(types.FillConvertRequestOp{
			Owner:     r.Owner,
			RequestID: r.RequestID,
			AmountIn:  r.Amount,
			AmountOut: out,
		})
		s.ConvertRequests.Remove(r)
	}
}

// step 16: processSubsidizedAccounts applies the resource-dynamics decay
// to the global and per-witness account-subsidy pools and recharges the
// producing witness.
func (s *State) processSubsidizedAccounts(bc BlockContext) {
	sched, ok := s.WitnessSchedule.Find(0)
	if !ok {
		return
	}
	rd := sched.AccountSubsidyRd
	if rd.BudgetPerTime == 0 && rd.DecayPer10kBlocks == 0 {
		return
	}

	s.WitnessSchedule.Modify(sched, func(w *objects.WitnessSchedule) {
		w.AccountSubsidyPool = decayPool(w.AccountSubsidyPool, rd)
	})
	g := s.globals()
	s.Globals.Modify(g, func(p *objects.DynamicGlobalProperties) {
		p.AvailableAccountSubsidies = decayPool(p.AvailableAccountSubsidies, rd)
	})

	wrd := sched.WitnessAccountSubsidyRd
	if w, ok := s.findWitness(bc.Witness); ok {
		s.Witnesses.Modify(w, func(p *objects.Witness) {
			p.AvailableSubsidies = decayPool(p.AvailableSubsidies, wrd)
		})
	}
}

// decayPool advances a resource pool one block: add the per-block
// budget, subtract the proportional decay, clamp at the configured max.
func decayPool(pool int64, rd objects.ResourceDynamicsParams) int64 {
	pool += rd.BudgetPerTime
	pool -= mulDiv(pool, int64(rd.DecayPer10kBlocks), 10000*10000)
	if rd.MaxPool > 0 && pool > rd.MaxPool {
		pool = rd.MaxPool
	}
	if pool < 0 {
		pool = 0
	}
	return pool
}

func (s *State) findWitness(owner string) (objects.Witness, bool) {
	var found objects.Witness
	var ok bool
	s.Witnesses.Range(func(w objects.Witness) bool {
		if w.Owner == owner {
			found, ok = w, true
			return false
		}
		return true
	})
	return found, ok
}

// LiquidityRewardIntervalBlocks is freezone_LIQUIDITY_REWARD_BLOCKS: the
// period between top-of-book liquidity payouts.
const LiquidityRewardIntervalBlocks = 60 * 60 / consensus.BlockIntervalSeconds

// LiquidityRewardHardforkDisable is the hardfork index after which the
// liquidity reward is retired.
const LiquidityRewardHardforkDisable = 2

// LiquidityRewardAmount is the fixed per-interval payout.
const LiquidityRewardAmount = 1200_000 // 1200.000 native satoshi

// step 17: payLiquidityReward pays the top liquidity provider on the
// interval boundary and resets their volume accumulators.
func (s *State) payLiquidityReward(bc BlockContext) {
	hp, ok := s.HardforkProp.Find(0)
	if ok && consensus.HasHardfork(hp.LastHardfork, LiquidityRewardHardforkDisable) {
		return
	}
	if bc.BlockNum == 0 || bc.BlockNum%LiquidityRewardIntervalBlocks != 0 {
		return
	}

	var best objects.LiquidityRewardBalance
	var found bool
	s.LiquidityRewards.Range(func(l objects.LiquidityRewardBalance) bool {
		if l.LiquidityWeight() <= 0 {
			return true
		}
		if !found || l.LiquidityWeight() > best.LiquidityWeight() {
			best, found = l, true
		}
		return true
	})
	if !found {
		return
	}

	reward := types.NewAsset(LiquidityRewardAmount, types.Native)
	s.creditBalance(best.Owner, reward)
	g := s.globals()
	s.Globals.Modify(g, func(p *objects.DynamicGlobalProperties) {
		p.CurrentSupply = p.CurrentSupply.Add(reward)
		p.VirtualSupply = p.VirtualSupply.Add(reward)
	})
	s.LiquidityRewards.Modify(best, func(l *objects.LiquidityRewardBalance) {
		l.SteemVolume = 0
		l.SbdVolume = 0
		l.WeightUpdateTime = bc.Now
	})
	s.logger().Debug("paid liquidity reward", "owner", best.Owner, "amount", reward)
}

// mulDiv computes a*b/c in 128-bit intermediate width.
func mulDiv(a, b, c int64) int64 {
	if c == 0 {
		return 0
	}
	r := new(big.Int).Mul(big.NewInt(a), big.NewInt(b))
	r.Div(r, big.NewInt(c))
	return r.Int64()
}
