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
	"math/big"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/fresszonesongs/freezone/core/objects"
	"github.com/fresszonesongs/freezone/core/sst"
	"github.com/fresszonesongs/freezone/core/state"
	"github.com/fresszonesongs/freezone/core/types"
	"github.com/fresszonesongs/freezone/core/vesting"
)

// SecondsPerYear for SBD interest accrual.
const SecondsPerYear = 365 * 24 * 60 * 60

// NullAccountName is the burn sink; balances written here are destroyed
// by the per-block null-account sweep.
const NullAccountName = "null"

// VestingInjectionStopBlock disables the historical 90%-to-vesting
// minting rule from this height on.
const VestingInjectionStopBlock = 7_000_000

// AdjustBalance applies a liquid balance delta. Negative deltas
// fail with ErrInsufficientFunds. Dollar deltas first settle accrued
// interest over the elapsed sbd_seconds interval. SST symbols route to
// the per-(account, SST) balance rows.
func (w *World) AdjustBalance(account string, delta types.Asset) error {
	acc, ok := w.FindAccount(account)
	if !ok {
		return ErrNotFoundAccount(account)
	}
	if delta.Symbol.IsSST() {
		return w.adjustSSTBalance(acc, delta)
	}
	if delta.Symbol.Equal(types.Dollar) {
		acc = w.settleSbdInterest(acc)
		if acc.DollarBalance.Amount+delta.Amount < 0 {
			return ErrInsufficientFunds
		}
		w.Accounts.Modify(acc, func(a *objects.Account) {
			a.DollarBalance = a.DollarBalance.Add(delta)
		})
		return nil
	}
	if acc.Balance.Amount+delta.Amount < 0 {
		return ErrInsufficientFunds
	}
	w.Accounts.Modify(acc, func(a *objects.Account) {
		a.Balance = a.Balance.Add(delta)
	})
	return nil
}

func (w *World) adjustSSTBalance(acc objects.Account, delta types.Asset) error {
	e := w.SSTEngine
	if delta.Amount >= 0 {
		e.CreditLiquid(acc.Name, delta.Symbol.Nai, delta.Amount)
		return nil
	}
	row, ok := e.FindRegularBalance(acc.Name, delta.Symbol.Nai)
	if !ok || row.Liquid+delta.Amount < 0 {
		return ErrInsufficientFunds
	}
	e.Regular.Modify(row, func(r *sst.RegularBalance) { r.Liquid += delta.Amount })
	return nil
}

// settleSbdInterest credits interest accrued since the last dollar
// balance touch: balance * rate * elapsed / seconds-per-year, growing
// the dollar supply.
func (w *World) settleSbdInterest(acc objects.Account) objects.Account {
	now := w.Now()
	elapsed := now - acc.SbdSecondsLastUpdate
	if elapsed <= 0 || acc.DollarBalance.Amount <= 0 {
		return w.Accounts.Modify(acc, func(a *objects.Account) {
			a.SbdSecondsLastUpdate = now
		})
	}
	rate := w.sbdInterestRate()
	if rate == 0 {
		return w.Accounts.Modify(acc, func(a *objects.Account) {
			a.SbdSecondsLastUpdate = now
		})
	}
	interest := new(big.Int).Mul(big.NewInt(acc.DollarBalance.Amount), big.NewInt(int64(rate)))
	interest.Mul(interest, big.NewInt(elapsed))
	interest.Div(interest, big.NewInt(10000*SecondsPerYear))
	pay := types.NewAsset(interest.Int64(), types.Dollar)
	acc = w.Accounts.Modify(acc, func(a *objects.Account) {
		a.DollarBalance = a.DollarBalance.Add(pay)
		a.SbdSecondsLastUpdate = now
		a.SbdSeconds = uint256.NewInt(0)
	})
	if pay.Amount > 0 {
		g := w.globals()
		w.Globals.Modify(g, func(p *objects.DynamicGlobalProperties) {
			p.DollarSupply = p.DollarSupply.Add(pay)
			p.VirtualSupply = p.VirtualSupply.Add(types.NewAsset(pay.Amount, types.Native))
		})
		w.Emit(types.InterestOp{Owner: acc.Name, Interest: pay})
	}
	return acc
}

func (w *World) sbdInterestRate() uint16 {
	sched, ok := w.WitnessSchedule.Find(0)
	if !ok {
		return 0
	}
	return sched.MedianProps.SbdInterestRate
}

// AdjustSavingsBalance applies a savings delta, same rules as
// AdjustBalance minus SST support (savings hold only the two built-ins).
func (w *World) AdjustSavingsBalance(account string, delta types.Asset) error {
	acc, ok := w.FindAccount(account)
	if !ok {
		return ErrNotFoundAccount(account)
	}
	if delta.Symbol.Equal(types.Dollar) {
		if acc.SavingsDollarBalance.Amount+delta.Amount < 0 {
			return ErrInsufficientFunds
		}
		w.Accounts.Modify(acc, func(a *objects.Account) {
			a.SavingsDollarBalance = a.SavingsDollarBalance.Add(delta)
		})
		return nil
	}
	if acc.SavingsBalance.Amount+delta.Amount < 0 {
		return ErrInsufficientFunds
	}
	w.Accounts.Modify(acc, func(a *objects.Account) {
		a.SavingsBalance = a.SavingsBalance.Add(delta)
	})
	return nil
}

// AdjustRewardBalance claims pending rewards into the dollar/vesting
// balances: the dollar and vesting deltas are the amounts being claimed
// (positive) and must not exceed the pending balances. The liquid delta
// is only checked to be non-negative; no pending liquid reward balance
// exists, so nothing is credited for it.
func (w *World) AdjustRewardBalance(account string, liquid, dollar, vestingShares types.Asset) error {
	acc, ok := w.FindAccount(account)
	if !ok {
		return ErrNotFoundAccount(account)
	}
	if dollar.Amount > acc.RewardDollarBalance.Amount ||
		vestingShares.Amount > acc.RewardVestingShares.Amount ||
		dollar.Amount < 0 || vestingShares.Amount < 0 || liquid.Amount < 0 {
		return ErrInsufficientFunds
	}

	// Claimed vesting shares move from the pending-reward pool into the
	// real vesting fund at the recorded value ratio.
	g := w.globals()
	var claimedValue types.Asset
	if vestingShares.Amount > 0 && acc.RewardVestingShares.Amount > 0 {
		claimedValue = types.NewAsset(
			mulDivInt64(acc.RewardVestingBalance.Amount, vestingShares.Amount, acc.RewardVestingShares.Amount),
			types.Native)
	} else {
		claimedValue = types.NewAsset(0, types.Native)
	}

	w.Accounts.Modify(acc, func(a *objects.Account) {
		a.DollarBalance = a.DollarBalance.Add(dollar)
		a.RewardDollarBalance = a.RewardDollarBalance.Sub(dollar)
		a.VestingShares = a.VestingShares.Add(vestingShares)
		a.RewardVestingShares = a.RewardVestingShares.Sub(vestingShares)
		a.RewardVestingBalance = a.RewardVestingBalance.Sub(claimedValue)
	})
	w.Globals.Modify(g, func(p *objects.DynamicGlobalProperties) {
		p.PendingRewardedVestingShares = p.PendingRewardedVestingShares.Sub(vestingShares)
		p.PendingRewardedVestingFund = p.PendingRewardedVestingFund.Sub(claimedValue)
		p.TotalVestingShares = p.TotalVestingShares.Add(vestingShares)
		p.TotalVestingFund = p.TotalVestingFund.Add(claimedValue)
	})
	return nil
}

// AdjustSupply mutates the global supply counters. When
// adjustVesting is set and the delta is positive native, 90% of the
// minted quantity also enters the vesting fund — the historical vesting
// injection rule, disabled after VestingInjectionStopBlock.
func (w *World) AdjustSupply(delta types.Asset, adjustVesting bool) error {
	g := w.globals()
	injectVesting := adjustVesting && delta.Amount > 0 &&
		delta.Symbol.Equal(types.Native) && g.HeadBlockNumber < VestingInjectionStopBlock
	w.Globals.Modify(g, func(p *objects.DynamicGlobalProperties) {
		if delta.Symbol.Equal(types.Dollar) {
			p.DollarSupply = p.DollarSupply.Add(delta)
			return
		}
		p.CurrentSupply = p.CurrentSupply.Add(delta)
		p.VirtualSupply = p.VirtualSupply.Add(delta)
		if injectVesting {
			p.TotalVestingFund = p.TotalVestingFund.Add(delta.MulRatio(9, 10))
		}
	})
	return nil
}

// CreateVestingShares converts a liquid native amount into vesting
// shares for the account at the current global price, growing the
// vesting fund and share totals.
func (w *World) CreateVestingShares(account string, liquid types.Asset) (types.Asset, error) {
	acc, ok := w.FindAccount(account)
	if !ok {
		return types.Asset{}, ErrNotFoundAccount(account)
	}
	g := w.globals()
	shares := vesting.SharesForLiquid(liquid, g.TotalVestingFund, g.TotalVestingShares, types.NativeVesting)
	w.Accounts.Modify(acc, func(a *objects.Account) {
		a.VestingShares = a.VestingShares.Add(shares)
	})
	w.Globals.Modify(g, func(p *objects.DynamicGlobalProperties) {
		p.TotalVestingFund = p.TotalVestingFund.Add(liquid)
		p.TotalVestingShares = p.TotalVestingShares.Add(shares)
	})
	return shares, nil
}

// VestingSharePrice is get_vesting_share_price for the native token.
func (w *World) VestingSharePrice() types.Price {
	g := w.globals()
	return vesting.Price(vesting.EffectiveTotals{
		Fund:   g.TotalVestingFund,
		Shares: g.TotalVestingShares,
	}, types.Native, types.NativeVesting)
}

func mulDivInt64(a, b, c int64) int64 {
	if c == 0 {
		return 0
	}
	r := new(big.Int).Mul(big.NewInt(a), big.NewInt(b))
	r.Div(r, big.NewInt(c))
	return r.Int64()
}

// ErrNotFoundAccount wraps the unknown-entity kind with the name for
// error context.
func ErrNotFoundAccount(name string) error {
	return errors.Wrapf(state.ErrNotFound, "account %q", name)
}
