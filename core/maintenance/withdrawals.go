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
	"sort"

	"github.com/fresszonesongs/freezone/core/objects"
	"github.com/fresszonesongs/freezone/core/types"
	"github.com/fresszonesongs/freezone/core/vesting"
)

// VestingWithdrawIntervalSeconds mirrors the evaluator-side constant; the
// two packages agree on the weekly cadence.
const VestingWithdrawIntervalSeconds = 7 * 24 * 60 * 60

// maxTimePoint is the "never" sentinel for next_vesting_withdrawal.
const maxTimePoint = int64(1) << 62

// step 14: processVestingWithdrawals fills one withdraw quantum for every
// account whose next_vesting_withdrawal has arrived, routing per the
// account's withdraw-route table.
func (s *State) processVestingWithdrawals(now int64) {
	var due []objects.Account
	s.Accounts.Range(func(a objects.Account) bool {
		if a.NextVestingWithdrawal <= now && a.NextVestingWithdrawal != maxTimePoint {
			due = append(due, a)
		}
		return true
	})
	sort.Slice(due, func(i, j int) bool {
		if due[i].NextVestingWithdrawal != due[j].NextVestingWithdrawal {
			return due[i].NextVestingWithdrawal < due[j].NextVestingWithdrawal
		}
		return due[i].ID < due[j].ID
	})
	for _, acc := range due {
		s.fillVestingWithdraw(acc, now)
	}
}

func (s *State) fillVestingWithdraw(acc objects.Account, now int64) {
	g := s.globals()

	toWithdraw := acc.VestingWithdrawRate.Amount
	if remaining := acc.ToWithdraw - acc.WithdrawnThisPeriod.Amount; toWithdraw > remaining {
		toWithdraw = remaining
	}
	if toWithdraw > acc.VestingShares.Amount {
		toWithdraw = acc.VestingShares.Amount
	}
	if toWithdraw <= 0 {
		s.finishWithdraw(acc)
		return
	}

	routes := s.routesFor(acc.Name)

	depositedShares := int64(0)
	convertedShares := int64(0)
	totalConvertedNative := int64(0)

	// Routed portions first: auto-vest routes move shares, others convert
	// at the current vesting price.
	for _, r := range routes {
		portion := mulDiv(toWithdraw, int64(r.Percent), 10000)
		if portion <= 0 {
			continue
		}
		to, ok := s.findAccount(r.ToAccount)
		if !ok {
			continue
		}
		if r.AutoVest {
			depositedShares += portion
			s.Accounts.Modify(to, func(a *objects.Account) {
				a.VestingShares = a.VestingShares.Add(types.NewAsset(portion, types.NativeVesting))
			})
			s.emit(types.FillVestingWithdrawOp{
				FromAccount: acc.Name,
				ToAccount:   r.ToAccount,
				Withdrawn:   types.NewAsset(portion, types.NativeVesting),
				Deposited:   types.NewAsset(portion, types.NativeVesting),
			})
		} else {
			converted := vesting.LiquidForShares(
				types.NewAsset(portion, types.NativeVesting),
				g.TotalVestingFund, g.TotalVestingShares, types.Native)
			convertedShares += portion
			totalConvertedNative += converted.Amount
			s.Accounts.Modify(to, func(a *objects.Account) {
				a.Balance = a.Balance.Add(converted)
			})
			s.emit(types.FillVestingWithdrawOp{
				FromAccount: acc.Name,
				ToAccount:   r.ToAccount,
				Withdrawn:   types.NewAsset(portion, types.NativeVesting),
				Deposited:   converted,
			})
		}
	}

	// The remainder converts to liquid for the withdrawing account.
	remainder := toWithdraw - depositedShares - convertedShares
	if remainder > 0 {
		converted := vesting.LiquidForShares(
			types.NewAsset(remainder, types.NativeVesting),
			g.TotalVestingFund, g.TotalVestingShares, types.Native)
		convertedShares += remainder
		totalConvertedNative += converted.Amount
		s.Accounts.Modify(s.mustAccount(acc.Name), func(a *objects.Account) {
			a.Balance = a.Balance.Add(converted)
		})
		s.emit(types.FillVestingWithdrawOp{
			FromAccount: acc.Name,
			ToAccount:   acc.Name,
			Withdrawn:   types.NewAsset(remainder, types.NativeVesting),
			Deposited:   converted,
		})
	}

	// Deduct the shares and advance (or finish) the schedule.
	acc = s.mustAccount(acc.Name)
	newWithdrawn := acc.WithdrawnThisPeriod.Amount + toWithdraw
	finished := newWithdrawn >= acc.ToWithdraw || acc.VestingShares.Amount-toWithdraw <= 0
	s.Accounts.Modify(acc, func(a *objects.Account) {
		a.VestingShares = a.VestingShares.Sub(types.NewAsset(toWithdraw, types.NativeVesting))
		a.WithdrawnThisPeriod = types.NewAsset(newWithdrawn, types.NativeVesting)
		if finished {
			a.VestingWithdrawRate = types.NewAsset(0, types.NativeVesting)
			a.ToWithdraw = 0
			a.WithdrawnThisPeriod = types.NewAsset(0, types.NativeVesting)
			a.NextVestingWithdrawal = maxTimePoint
		} else {
			a.NextVestingWithdrawal = a.NextVestingWithdrawal + VestingWithdrawIntervalSeconds
		}
	})

	// Converted shares leave the vesting pool; auto-vested shares stay.
	s.Globals.Modify(s.globals(), func(p *objects.DynamicGlobalProperties) {
		p.TotalVestingShares = p.TotalVestingShares.Sub(types.NewAsset(convertedShares, types.NativeVesting))
		p.TotalVestingFund = p.TotalVestingFund.Sub(types.NewAsset(totalConvertedNative, types.Native))
	})
}

func (s *State) finishWithdraw(acc objects.Account) {
	s.Accounts.Modify(acc, func(a *objects.Account) {
		a.VestingWithdrawRate = types.NewAsset(0, types.NativeVesting)
		a.ToWithdraw = 0
		a.WithdrawnThisPeriod = types.NewAsset(0, types.NativeVesting)
		a.NextVestingWithdrawal = maxTimePoint
	})
}

func (s *State) mustAccount(name string) objects.Account {
	acc, ok := s.findAccount(name)
	if !ok {
		panic("maintenance: account vanished mid-sweep: " + name)
	}
	return acc
}

func (s *State) routesFor(from string) []objects.WithdrawRouteEntry {
	var out []objects.WithdrawRouteEntry
	s.WithdrawRoutes.Range(func(r objects.WithdrawRouteEntry) bool {
		if r.FromAccount == from {
			out = append(out, r)
		}
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// step 15: processSavingsWithdrawals completes matured transfer-from-
// savings requests.
func (s *State) processSavingsWithdrawals(now int64) {
	var due []objects.SavingsWithdraw
	s.SavingsWithdraws.Range(func(w objects.SavingsWithdraw) bool {
		if w.Completion <= now {
			due = append(due, w)
		}
		return true
	})
	sort.Slice(due, func(i, j int) bool {
		if due[i].Completion != due[j].Completion {
			return due[i].Completion < due[j].Completion
		}
		return due[i].ID < due[j].ID
	})
	for _, w := range due {
		s.creditBalance(w.To, w.Amount)
		if from, ok := s.findAccount(w.From); ok && from.SavingsWithdrawRequests > 0 {
			s.Accounts.Modify(from, func(a *objects.Account) {
				a.SavingsWithdrawRequests--
			})
		}
		s.emit(types.FillTransferFromSavingsOp{
			From:      w.From,
			To:        w.To,
			Amount:    w.Amount,
			RequestID: w.RequestID,
			Memo:      w.Memo,
		})
		s.SavingsWithdraws.Remove(w)
	}
}
