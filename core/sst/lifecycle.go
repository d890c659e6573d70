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

package sst

import (
	"github.com/fresszonesongs/freezone/core/types"
)

// EvaluateIco runs the SST_ico_evaluation_action: ico -> ico_completed if
// the hard-cap minimum cleared, else -> launch_failed. Returns whether
// the evaluation succeeded.
func (e *Engine) EvaluateIco(symbol types.NAI) (Token, bool, error) {
	token, ok := e.findToken(symbol)
	if !ok || token.Phase != PhaseIco {
		return token, false, errWrongPhase
	}
	ico, ok := e.findIco(symbol)
	if !ok {
		return token, false, errNoIco
	}
	success := ico.TotalContributed >= ico.SteemSatoshiMin
	if success {
		token = e.Tokens.Modify(token, func(t *Token) { t.Phase = PhaseIcoCompleted })
	} else {
		token = e.Tokens.Modify(token, func(t *Token) { t.Phase = PhaseLaunchFailed })
	}
	return token, success, nil
}

// LaunchToken runs the SST_token_launch_action: ico_completed ->
// launch_success. Contributor payouts, founder payout and ballast
// installation follow as their own required-action chain, one
// contribution per action, not part of one atomic transition.
func (e *Engine) LaunchToken(symbol types.NAI) (Token, error) {
	token, ok := e.findToken(symbol)
	if !ok || token.Phase != PhaseIcoCompleted {
		return token, errWrongPhase
	}
	return e.Tokens.Modify(token, func(t *Token) { t.Phase = PhaseLaunchSuccess }), nil
}

// NextRefund returns the next unrefunded contribution for a failed ICO,
// in contribution order, or ok=false once none remain (at which point the
// ICO objects may be removed).
func (e *Engine) NextRefund(symbol types.NAI) (Contribution, bool) {
	return e.nextContribution(symbol)
}

// nextContribution picks the lowest-id remaining contribution; both the
// refund chain and the contributor-payout chain drain in this order.
func (e *Engine) nextContribution(symbol types.NAI) (Contribution, bool) {
	cs := e.contributionsFor(symbol)
	if len(cs) == 0 {
		return Contribution{}, false
	}
	best := cs[0]
	for _, c := range cs[1:] {
		if c.ContributionID < best.ContributionID {
			best = c
		}
	}
	return best, true
}

// ApplyRefund removes the contribution row; the caller credits the
// contributor's native balance back and emits the virtual op.
func (e *Engine) ApplyRefund(c Contribution) {
	e.Contributions.Remove(c)
}

// TeardownIco removes the ico state and its tiers once every contribution
// has been refunded.
func (e *Engine) TeardownIco(symbol types.NAI) {
	if ico, ok := e.findIco(symbol); ok {
		e.Icos.Remove(ico)
	}
	for _, t := range e.tiersFor(symbol) {
		e.Tiers.Remove(t)
	}
}

// InstallBallast installs the launch-success vesting ballast: fund =
// current_supply * BallastSupplyPercentBasisPoints / 10000, shares =
// fund * InitialVestingPerUnit. This closes the launch_success
// transition.
func (e *Engine) InstallBallast(symbol types.NAI) (Token, error) {
	token, ok := e.findToken(symbol)
	if !ok || token.Phase != PhaseLaunchSuccess {
		return token, errWrongPhase
	}
	ballastFund := token.CurrentSupply * BallastSupplyPercentBasisPoints / 10000
	ballastShares := ballastFund * InitialVestingPerUnit
	return e.Tokens.Modify(token, func(t *Token) {
		t.BallastFund = ballastFund
		t.BallastShares = ballastShares
	}), nil
}
