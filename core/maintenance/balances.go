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
	"github.com/fresszonesongs/freezone/core/objects"
	"github.com/fresszonesongs/freezone/core/types"
)

// NullAccountName is the sink every burned balance (the "null" account)
// accumulates in; clearing it removes those funds from supply entirely
// rather than letting them sit idle forever.
const NullAccountName = "null"

func (s *State) clearNullAccountBalance() {
	acc, ok := s.findAccount(NullAccountName)
	if !ok {
		return
	}
	if acc.Balance.IsZero() && acc.DollarBalance.IsZero() && acc.VestingShares.IsZero() {
		return
	}

	var cleared []types.Asset
	if !acc.Balance.IsZero() {
		cleared = append(cleared, acc.Balance)
	}
	if !acc.DollarBalance.IsZero() {
		cleared = append(cleared, acc.DollarBalance)
	}
	if !acc.VestingShares.IsZero() {
		cleared = append(cleared, acc.VestingShares)
	}

	g := s.globals()
	s.Globals.Modify(g, func(p *objects.DynamicGlobalProperties) {
		if !acc.VestingShares.IsZero() {
			p.TotalVestingShares = p.TotalVestingShares.Sub(acc.VestingShares)
		}
		if !acc.Balance.IsZero() {
			p.CurrentSupply = p.CurrentSupply.Sub(acc.Balance)
		}
		if !acc.DollarBalance.IsZero() {
			p.DollarSupply = p.DollarSupply.Sub(acc.DollarBalance)
		}
	})

	s.Accounts.Modify(acc, func(a *objects.Account) {
		a.Balance = types.NewAsset(0, types.Native)
		a.DollarBalance = types.NewAsset(0, types.Dollar)
		a.VestingShares = types.NewAsset(0, types.NativeVesting)
	})

	s.emit(types.ClearNullAccountBalanceOp{TotalCleared: cleared})
}
