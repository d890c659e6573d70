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

package vesting

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fresszonesongs/freezone/core/types"
)

func TestSharesForLiquidAtRatio(t *testing.T) {
	fund := types.NewAsset(1000, types.Native)
	shares := types.NewAsset(2_000_000, types.NativeVesting)

	got := SharesForLiquid(types.NewAsset(10, types.Native), fund, shares, types.NativeVesting)
	require.Equal(t, int64(20_000), got.Amount)
	require.Equal(t, types.NativeVesting, got.Symbol)
}

func TestEmptyFundBootstrapsOneToOne(t *testing.T) {
	zeroFund := types.NewAsset(0, types.Native)
	zeroShares := types.NewAsset(0, types.NativeVesting)
	got := SharesForLiquid(types.NewAsset(123, types.Native), zeroFund, zeroShares, types.NativeVesting)
	require.Equal(t, int64(123), got.Amount)
}

func TestRoundTripLosesAtMostRounding(t *testing.T) {
	fund := types.NewAsset(999_983, types.Native)
	shares := types.NewAsset(777_777_777, types.NativeVesting)

	in := types.NewAsset(54_321, types.Native)
	s := SharesForLiquid(in, fund, shares, types.NativeVesting)
	back := LiquidForShares(s, fund, shares, types.Native)
	require.LessOrEqual(t, back.Amount, in.Amount)
	require.GreaterOrEqual(t, back.Amount, in.Amount-1, "round trip loses at most one satoshi")
}

func TestEffectiveTotalsFoldBallast(t *testing.T) {
	totals := EffectiveTotals{
		Fund:          types.NewAsset(100, types.Native),
		Shares:        types.NewAsset(1000, types.NativeVesting),
		BallastFund:   types.NewAsset(10, types.Native),
		BallastShares: types.NewAsset(500, types.NativeVesting),
	}
	fund, shares := totals.Effective()
	require.Equal(t, int64(110), fund.Amount)
	require.Equal(t, int64(1500), shares.Amount)

	p := Price(totals, types.Native, types.NativeVesting)
	require.Equal(t, int64(1500), p.Base.Amount)
	require.Equal(t, int64(110), p.Quote.Amount)
}
