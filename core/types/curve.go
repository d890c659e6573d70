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

import "github.com/holiman/uint256"

// RewardCurve selects the shape used to turn raw rshares into reward
// "claims" against the reward fund's recent-claims accumulator.
type RewardCurve int

const (
	CurveQuadratic RewardCurve = iota
	CurveLinear
	CurveSquareRoot
	CurveConvergentLinear
)

// ContentConstantHF0 is freezone_CONTENT_CONSTANT_HF0 from config.hpp: the
// variable term of the quadratic curve.
var ContentConstantHF0 = uint256.NewInt(2000000000000)

// EvaluateRewardCurve mirrors util::evaluate_reward_curve: it maps rshares
// (always >= 0 by the time it reaches here; negative rshares earn no
// reward) into a claims value accumulated by the reward fund's
// recent_claims/total payout split. All arithmetic is carried in 256-bit
// width to avoid overflow when rshares is squared.
func EvaluateRewardCurve(rshares int64, curve RewardCurve, varCoeff *uint256.Int) *uint256.Int {
	if rshares <= 0 {
		return uint256.NewInt(0)
	}
	r := uint256.NewInt(uint64(rshares))
	switch curve {
	case CurveLinear:
		return r
	case CurveSquareRoot:
		return isqrt(r)
	case CurveConvergentLinear:
		// evaluation: rshares^2 / (varCoeff + rshares)
		sq := new(uint256.Int).Mul(r, r)
		denom := new(uint256.Int).Add(varCoeff, r)
		if denom.IsZero() {
			return uint256.NewInt(0)
		}
		return new(uint256.Int).Div(sq, denom)
	case CurveQuadratic:
		fallthrough
	default:
		// (rshares + 2*varCoeff) * rshares  -- matches the quadratic curve's
		// evaluate_reward_curve(rshares) = (rshares + 2*C) * rshares
		two := uint256.NewInt(2)
		term := new(uint256.Int).Mul(two, varCoeff)
		term.Add(term, r)
		return term.Mul(term, r)
	}
}

// isqrt computes the integer square root via Newton's method, used by the
// square-root curve variant.
func isqrt(n *uint256.Int) *uint256.Int {
	if n.IsZero() {
		return uint256.NewInt(0)
	}
	x := new(uint256.Int).Set(n)
	y := new(uint256.Int).Add(x, uint256.NewInt(1))
	y.Rsh(y, 1)
	for y.Lt(x) {
		x.Set(y)
		y.Div(n, x)
		y.Add(y, x)
		y.Rsh(y, 1)
	}
	return x
}
