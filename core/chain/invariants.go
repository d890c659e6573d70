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
	"github.com/pkg/errors"

	"github.com/fresszonesongs/freezone/core/objects"
	"github.com/fresszonesongs/freezone/core/sst"
	"github.com/fresszonesongs/freezone/core/types"
)

// ValidateInvariants walks every holder location and checks the supply
// and vote-weight conservation laws. A violation is fatal to the engine.
func (w *World) ValidateInvariants() error {
	g := w.globals()

	var nativeTotal, dollarTotal int64
	var vestingSharesTotal, rewardVestingSharesTotal int64

	w.Accounts.Range(func(a objects.Account) bool {
		nativeTotal += a.Balance.Amount + a.SavingsBalance.Amount + a.RewardVestingBalance.Amount
		dollarTotal += a.DollarBalance.Amount + a.SavingsDollarBalance.Amount + a.RewardDollarBalance.Amount
		vestingSharesTotal += a.VestingShares.Amount
		rewardVestingSharesTotal += a.RewardVestingShares.Amount
		return true
	})

	w.Market.Orders.Range(func(o objects.LimitOrder) bool {
		if o.Sell.Symbol.Equal(types.Dollar) {
			dollarTotal += o.ForSale
		} else if o.Sell.Symbol.Equal(types.Native) {
			nativeTotal += o.ForSale
		}
		return true
	})

	w.ConvertRequests.Range(func(r objects.ConvertRequest) bool {
		dollarTotal += r.Amount.Amount
		return true
	})

	w.Escrows.Range(func(e objects.Escrow) bool {
		nativeTotal += e.Steem.Amount
		dollarTotal += e.Sbd.Amount
		if e.PendingFee.Symbol.Equal(types.Dollar) {
			dollarTotal += e.PendingFee.Amount
		} else if e.PendingFee.Symbol.Equal(types.Native) {
			nativeTotal += e.PendingFee.Amount
		}
		return true
	})

	w.SavingsWithdraws.Range(func(s objects.SavingsWithdraw) bool {
		if s.Amount.Symbol.Equal(types.Dollar) {
			dollarTotal += s.Amount.Amount
		} else {
			nativeTotal += s.Amount.Amount
		}
		return true
	})

	w.RewardFunds.Range(func(f objects.RewardFund) bool {
		nativeTotal += f.RewardBalance.Amount
		return true
	})

	w.SSTEngine.Contributions.Range(func(c sst.Contribution) bool {
		nativeTotal += c.Amount
		return true
	})
	w.SSTEngine.Tokens.Range(func(t sst.Token) bool {
		nativeTotal += t.MarketMaker.SteemBalance.Amount
		return true
	})

	// The vesting fund and pending-reward fund hold native backing.
	nativeTotal += g.TotalVestingFund.Amount
	// RewardVestingBalance above double-counts against the pending fund;
	// it IS the pending fund broken out per account, so use the per-
	// account sum and skip the aggregate.

	if nativeTotal != g.CurrentSupply.Amount {
		return errors.Wrapf(ErrInvariantViolation,
			"native holdings %d != current_supply %d", nativeTotal, g.CurrentSupply.Amount)
	}
	if dollarTotal != g.DollarSupply.Amount {
		return errors.Wrapf(ErrInvariantViolation,
			"dollar holdings %d != dollar_supply %d", dollarTotal, g.DollarSupply.Amount)
	}
	if vestingSharesTotal != g.TotalVestingShares.Amount {
		return errors.Wrapf(ErrInvariantViolation,
			"vesting shares %d != total_vesting_shares %d", vestingSharesTotal, g.TotalVestingShares.Amount)
	}
	if rewardVestingSharesTotal != g.PendingRewardedVestingShares.Amount {
		return errors.Wrapf(ErrInvariantViolation,
			"reward vesting shares %d != pending_rewarded_vesting_shares %d",
			rewardVestingSharesTotal, g.PendingRewardedVestingShares.Amount)
	}

	// Witness votes bounded by total stake.
	var witnessErr error
	w.Witnesses.Range(func(wt objects.Witness) bool {
		if wt.Votes > g.TotalVestingShares.Amount {
			witnessErr = errors.Wrapf(ErrInvariantViolation,
				"witness %s votes %d exceed total vesting shares", wt.Owner, wt.Votes)
			return false
		}
		return true
	})
	if witnessErr != nil {
		return witnessErr
	}

	// Withdraw route percents per account sum to <= 100%.
	routeTotals := map[string]uint32{}
	w.WithdrawRoutes.Range(func(r objects.WithdrawRouteEntry) bool {
		routeTotals[r.FromAccount] += uint32(r.Percent)
		return true
	})
	for from, total := range routeTotals {
		if total > 10000 {
			return errors.Wrapf(ErrInvariantViolation,
				"withdraw routes of %s sum to %d basis points", from, total)
		}
	}

	// Per-SST supply conservation.
	var sstErr error
	w.SSTEngine.Tokens.Range(func(t sst.Token) bool {
		var liquid, shares int64
		w.SSTEngine.Regular.Range(func(r sst.RegularBalance) bool {
			if r.SymbolNai == t.LiquidSymbol {
				liquid += r.Liquid
				shares += r.VestingShares
			}
			return true
		})
		liquid += t.MarketMaker.TokenBalance.Amount + t.RewardBalance + t.VestingFund
		if liquid != t.CurrentSupply {
			sstErr = errors.Wrapf(ErrInvariantViolation,
				"sst %d holdings %d != current_supply %d", t.LiquidSymbol, liquid, t.CurrentSupply)
			return false
		}
		if shares != t.VestingShares {
			sstErr = errors.Wrapf(ErrInvariantViolation,
				"sst %d vesting shares %d != total %d", t.LiquidSymbol, shares, t.VestingShares)
			return false
		}
		return true
	})
	return sstErr
}
