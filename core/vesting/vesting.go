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

// Package vesting implements the single vesting-share <-> liquid
// conversion formula shared by the native token and every SST. It has
// no state-store dependency: callers supply
// the effective fund/shares totals (which already include any launch
// ballast) and get back a converted Asset.
package vesting

import (
	"math/big"

	"github.com/fresszonesongs/freezone/core/types"
)

// SharesForLiquid computes S = L * totalSharesEffective / totalFundEffective.
// Matches freezone_chain::util::asset::to_vest / the SST equivalent.
func SharesForLiquid(liquid types.Asset, totalFundEffective, totalSharesEffective types.Asset, sharesSymbol types.Symbol) types.Asset {
	if totalFundEffective.Amount == 0 {
		return types.NewAsset(liquid.Amount, sharesSymbol)
	}
	num := new(big.Int).Mul(big.NewInt(liquid.Amount), big.NewInt(totalSharesEffective.Amount))
	num.Div(num, big.NewInt(totalFundEffective.Amount))
	return types.NewAsset(num.Int64(), sharesSymbol)
}

// LiquidForShares is the inverse conversion, used by withdrawals and the
// downvote-weight/vesting-share "price" queries.
func LiquidForShares(shares types.Asset, totalFundEffective, totalSharesEffective types.Asset, liquidSymbol types.Symbol) types.Asset {
	if totalSharesEffective.Amount == 0 {
		return types.NewAsset(shares.Amount, liquidSymbol)
	}
	num := new(big.Int).Mul(big.NewInt(shares.Amount), big.NewInt(totalFundEffective.Amount))
	num.Div(num, big.NewInt(totalSharesEffective.Amount))
	return types.NewAsset(num.Int64(), liquidSymbol)
}

// EffectiveTotals bundles the observable fund/shares totals with any
// ballast (injected at SST launch success, or historically for the
// native token) folded in, so the two Convert functions above never need
// to know where the ballast comes from.
type EffectiveTotals struct {
	Fund      types.Asset
	Shares    types.Asset
	BallastFund   types.Asset
	BallastShares types.Asset
}

func (t EffectiveTotals) Effective() (fund, shares types.Asset) {
	fund = t.Fund
	shares = t.Shares
	if !t.BallastFund.IsZero() {
		fund = fund.Add(t.BallastFund)
	}
	if !t.BallastShares.IsZero() {
		shares = shares.Add(t.BallastShares)
	}
	return fund, shares
}

// Price returns the current liquid-per-share ratio as a types.Price,
// i.e. "get_vesting_share_price" for whichever totals are supplied.
func Price(totals EffectiveTotals, liquidSymbol, sharesSymbol types.Symbol) types.Price {
	fund, shares := totals.Effective()
	if shares.Amount == 0 {
		return types.Price{
			Base:  types.NewAsset(1_000_000, sharesSymbol),
			Quote: types.NewAsset(1_000_000, liquidSymbol),
		}
	}
	return types.Price{Base: shares, Quote: fund}
}
