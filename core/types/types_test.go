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

package types

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestTickPricingBoundary(t *testing.T) {
	mk := func(quote int64) Price {
		return Price{
			Base:  NewAsset(12345, Native),
			Quote: NewAsset(quote, Dollar),
		}
	}
	for _, quote := range []int64{1, 10, 100, 1000, 1_000_000} {
		require.True(t, mk(quote).IsPowerOfTenDenominator(), "quote %d", quote)
	}
	for _, quote := range []int64{0, -10, 3, 15, 110, 999} {
		require.False(t, mk(quote).IsPowerOfTenDenominator(), "quote %d", quote)
	}
}

func TestPriceMulAndInvert(t *testing.T) {
	p := Price{
		Base:  NewAsset(1000, Native),
		Quote: NewAsset(500, Dollar),
	}
	out := p.Mul(NewAsset(2000, Native))
	require.Equal(t, int64(1000), out.Amount)
	require.Equal(t, Dollar, out.Symbol)

	// An asset of the quote symbol converts via the inverse.
	back := p.Mul(NewAsset(1000, Dollar))
	require.Equal(t, int64(2000), back.Amount)
	require.Equal(t, Native, back.Symbol)
}

func TestAssetSymbolMismatchPanics(t *testing.T) {
	require.Panics(t, func() {
		_ = NewAsset(1, Native).Add(NewAsset(1, Dollar))
	})
}

func TestAssetMulRatio(t *testing.T) {
	a := NewAsset(1_000_000_000_000, Native)
	require.Equal(t, int64(900_000_000_000), a.MulRatio(9, 10).Amount)
}

func TestEvaluateRewardCurve(t *testing.T) {
	require.True(t, EvaluateRewardCurve(-5, CurveLinear, nil).IsZero())
	require.Equal(t, uint64(1000), EvaluateRewardCurve(1000, CurveLinear, nil).Uint64())
	require.Equal(t, uint64(100), EvaluateRewardCurve(10_000, CurveSquareRoot, nil).Uint64())

	// Convergent linear: rshares^2 / (c + rshares) approaches linear for
	// rshares >> c.
	c := uint256.NewInt(100)
	got := EvaluateRewardCurve(1000, CurveConvergentLinear, c)
	require.Equal(t, uint64(1000*1000/(100+1000)), got.Uint64())
}

func TestNumFromID(t *testing.T) {
	var id BlockID
	id[0], id[1], id[2], id[3] = 0x00, 0x01, 0x02, 0x03
	require.Equal(t, uint32(0x010203), NumFromID(id))
}

func TestSymbolVariants(t *testing.T) {
	require.True(t, Native.VestingVariant().Vesting)
	require.False(t, NativeVesting.LiquidVariant().Vesting)
	require.True(t, Symbol{Nai: NAI(0x400001)}.IsSST())
	require.False(t, Native.IsSST())
	require.False(t, Dollar.IsSST())
}

func TestOperationValidateRejectsBadInput(t *testing.T) {
	require.Error(t, TransferOp{From: "a", To: "b", Amount: NewAsset(0, Native)}.Validate())
	require.NoError(t, TransferOp{From: "a", To: "b", Amount: NewAsset(1, Native)}.Validate())

	require.Error(t, VoteOp{Voter: "v", Author: "a", Permlink: "p", Weight: 10001}.Validate())
	require.NoError(t, VoteOp{Voter: "v", Author: "a", Permlink: "p", Weight: -10000}.Validate())

	bad := LimitOrderCreateOp{
		Owner:        "a",
		AmountToSell: NewAsset(100, Native),
		MinToReceive: NewAsset(33, Dollar),
	}
	require.Error(t, bad.Validate(), "non-power-of-ten denominator on a tick-priced market")
	good := bad
	good.MinToReceive = NewAsset(100, Dollar)
	require.NoError(t, good.Validate())

	require.Error(t, ConvertOp{Owner: "a", Amount: NewAsset(5, Native)}.Validate())
	require.NoError(t, ConvertOp{Owner: "a", Amount: NewAsset(5, Dollar)}.Validate())
}
