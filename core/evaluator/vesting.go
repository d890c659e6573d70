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

// VestingWithdrawIntervals is freezone_VESTING_WITHDRAW_INTERVALS: a withdraw
// completes over this many weekly installments.
const VestingWithdrawIntervals = 13

// VestingWithdrawIntervalSeconds is freezone_VESTING_WITHDRAW_INTERVAL_SECONDS.
const VestingWithdrawIntervalSeconds = 7 * 24 * 60 * 60

func evalWithdrawVesting(ctx Context, operation types.Operation) error {
	op := operation.(types.WithdrawVestingOp)
	acc, err := ctx.GetAccount(op.Account)
	if err != nil {
		return err
	}
	available := acc.VestingShares.Amount - acc.DelegatedVestingShares.Amount
	if op.VestingShares.Amount > available {
		return ErrInsufficientFunds
	}

	if op.VestingShares.IsZero() {
		ctx.ModifyAccount(acc, func(a *objects.Account) {
			a.VestingWithdrawRate = types.NewAsset(0, op.VestingShares.Symbol)
			a.ToWithdraw = 0
			a.NextVestingWithdrawal = maxTimePoint
		})
		return nil
	}

	perInterval := op.VestingShares.Amount / VestingWithdrawIntervals
	if perInterval == 0 {
		perInterval = op.VestingShares.Amount
	}
	ctx.ModifyAccount(acc, func(a *objects.Account) {
		a.VestingWithdrawRate = types.NewAsset(perInterval, op.VestingShares.Symbol)
		a.ToWithdraw = op.VestingShares.Amount
		a.WithdrawnThisPeriod = types.NewAsset(0, op.VestingShares.Symbol)
		a.NextVestingWithdrawal = ctx.Now() + VestingWithdrawIntervalSeconds
	})
	return nil
}

// maxTimePoint is the sentinel "never" time used for next_vesting_withdrawal
// and comment cashout_time once they are no longer pending.
const maxTimePoint = int64(1) << 62

func evalSetWithdrawVestingRoute(ctx Context, operation types.Operation) error {
	op := operation.(types.SetWithdrawVestingRouteOp)
	if _, err := ctx.GetAccount(op.Route.FromAccount); err != nil {
		return err
	}
	if _, err := ctx.GetAccount(op.Route.ToAccount); err != nil {
		return err
	}
	existing := ctx.WithdrawRoutesFor(op.Route.FromAccount)
	var total uint32
	for _, r := range existing {
		if r.ToAccount == op.Route.ToAccount {
			continue
		}
		total += uint32(r.Percent)
	}
	if total+uint32(op.Route.Percent) > 10000 {
		return ErrCapExceeded
	}
	return ctx.SetWithdrawRoute(op.Route.FromAccount, op.Route.ToAccount, op.Route.Percent, op.Route.AutoVest)
}

// DelegationReturnPeriodSeconds is freezone_DELEGATION_RETURN_PERIOD_HF20:
// the delay before a reduced delegation's shares are usable again.
const DelegationReturnPeriodSeconds = 5 * 24 * 60 * 60

func evalDelegateVestingShares(ctx Context, operation types.Operation) error {
	op := operation.(types.DelegateVestingSharesOp)
	delegator, err := ctx.GetAccount(op.Delegator)
	if err != nil {
		return err
	}
	if _, err := ctx.GetAccount(op.Delegatee); err != nil {
		return err
	}

	existing, found := ctx.FindDelegation(op.Delegator, op.Delegatee)
	var currentShares int64
	if found {
		currentShares = existing.VestingShares.Amount
	}
	delta := op.VestingShares.Amount - currentShares

	if delta > 0 {
		available := delegator.VestingShares.Amount - delegator.DelegatedVestingShares.Amount
		if delta > available {
			return ErrInsufficientFunds
		}
		ctx.ModifyAccount(delegator, func(a *objects.Account) {
			a.DelegatedVestingShares = a.DelegatedVestingShares.Add(types.NewAsset(delta, op.VestingShares.Symbol))
		})
		if found {
			ctx.ModifyDelegation(existing, func(d *objects.VestingDelegation) { d.VestingShares = op.VestingShares })
		} else {
			ctx.CreateDelegation(op.Delegator, op.Delegatee, op.VestingShares, ctx.Now())
		}
		return nil
	}

	if delta == 0 {
		return nil
	}

	// A reduction does not free the shares immediately: they remain
	// encumbered for DelegationReturnPeriodSeconds to prevent a
	// delegate/undelegate/vote-then-undelegate attack.
	returning := -delta
	if op.VestingShares.IsZero() {
		ctx.RemoveDelegation(existing)
	} else {
		ctx.ModifyDelegation(existing, func(d *objects.VestingDelegation) { d.VestingShares = op.VestingShares })
	}
	ctx.CreateDelegationExpiration(op.Delegator, types.NewAsset(returning, op.VestingShares.Symbol), ctx.Now()+DelegationReturnPeriodSeconds)
	return nil
}
