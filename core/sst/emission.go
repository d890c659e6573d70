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
	"math/big"
	"strings"

	"github.com/fresszonesongs/freezone/core/types"
)

// NextEmissionTime returns the earliest schedule_time + k*interval that
// is <= headTime and strictly after the token's last virtual emission,
// bounded by the schedule's emission count. ok=false means nothing is
// due for this token.
func (e *Engine) NextEmissionTime(token Token, headTime int64) (EmissionSchedule, int64, bool) {
	var bestSched EmissionSchedule
	var bestTime int64
	found := false
	e.Emissions.Range(func(sched EmissionSchedule) bool {
		if sched.SymbolNai != token.LiquidSymbol {
			return true
		}
		t, ok := nextFire(sched, token.LastVirtualEmissionTime, headTime)
		if ok && (!found || t < bestTime) {
			bestSched, bestTime, found = sched, t, true
		}
		return true
	})
	return bestSched, bestTime, found
}

func nextFire(sched EmissionSchedule, lastEmission, headTime int64) (int64, bool) {
	if sched.ScheduleTime > headTime {
		return 0, false
	}
	interval := int64(sched.IntervalSeconds)
	if interval <= 0 {
		if sched.ScheduleTime > lastEmission {
			return sched.ScheduleTime, true
		}
		return 0, false
	}
	// Smallest k with schedule_time + k*interval > lastEmission.
	k := int64(0)
	if lastEmission >= sched.ScheduleTime {
		k = (lastEmission-sched.ScheduleTime)/interval + 1
	}
	if sched.EmissionCount != EmitIndefinitely && k >= int64(sched.EmissionCount) {
		return 0, false
	}
	t := sched.ScheduleTime + k*interval
	if t > headTime {
		return 0, false
	}
	return t, true
}

// EmissionAmount computes the tokens one firing of sched emits at time t
// against currentSupply: a single (absolute + relative) amount when the
// endpoints coincide, otherwise both components linearly interpolated in
// time between the left and right endpoints. Relative components are
// basis points of current supply. With floor_emissions each fractional
// contribution floors independently.
func EmissionAmount(sched EmissionSchedule, t, currentSupply int64) int64 {
	abs, rel := sched.LepAbs, sched.LepRel
	if sched.LepTime != sched.RepTime {
		span := sched.RepTime - sched.LepTime
		pos := t - sched.LepTime
		if pos < 0 {
			pos = 0
		}
		if pos > span {
			pos = span
		}
		abs = interpolate(sched.LepAbs, sched.RepAbs, pos, span)
		rel = interpolate(sched.LepRel, sched.RepRel, pos, span)
	}
	relAmount := muldiv(currentSupply, rel, 10000)
	if sched.FloorEmissions {
		// interpolate and muldiv already truncate each term toward zero.
		return abs + relAmount
	}
	return abs + relAmount
}

func interpolate(left, right, pos, span int64) int64 {
	if span == 0 {
		return left
	}
	return left + muldiv(right-left, pos, span)
}

func muldiv(a, b, c int64) int64 {
	if c == 0 {
		return 0
	}
	r := new(big.Int).Mul(big.NewInt(a), big.NewInt(b))
	r.Div(r, big.NewInt(c))
	return r.Int64()
}

// ProcessEmission fires the next due emission for the token: computes
// the amount, routes it through the schedule's token-unit map, and
// advances current supply and the virtual-emission clock. Returns the
// tokens emitted.
func (e *Engine) ProcessEmission(symbol types.NAI, headTime int64) (int64, error) {
	token, ok := e.findToken(symbol)
	if !ok || token.Phase != PhaseLaunchSuccess {
		return 0, errWrongPhase
	}
	sched, fireTime, due := e.NextEmissionTime(token, headTime)
	if !due {
		return 0, errNoEmissionDue
	}

	amount := EmissionAmount(sched, fireTime, token.CurrentSupply)
	if token.Setup.MaxSupply > 0 && token.CurrentSupply+amount > token.Setup.MaxSupply {
		amount = token.Setup.MaxSupply - token.CurrentSupply
	}
	if amount < 0 {
		amount = 0
	}

	// Only what actually routes enters the supply: per-target flooring
	// can drop dust below the computed amount.
	var routed int64
	weightSum := sumWeights(sched.Emit.TokenUnit)
	if amount > 0 && weightSum > 0 {
		for _, tw := range sortedUnitEntries(sched.Emit.TokenUnit) {
			share := muldiv(amount, int64(tw.weight), int64(weightSum))
			e.routeTokens(symbol, tw.target, share)
			if share > 0 {
				routed += share
			}
		}
	}

	e.Tokens.Modify(e.mustToken(symbol), func(t *Token) {
		t.CurrentSupply += routed
		t.LastVirtualEmissionTime = fireTime
	})
	return routed, nil
}

type unitEntry struct {
	target string
	weight uint16
}

// sortedUnitEntries iterates a generation-unit map deterministically.
func sortedUnitEntries(m map[string]uint16) []unitEntry {
	out := make([]unitEntry, 0, len(m))
	for t, w := range m {
		out = append(out, unitEntry{t, w})
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1].target > out[j].target; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// routeTokens applies one unit-target's share of an emission or payout:
// the sentinels route to the token's own pools, everything else to a
// per-account balance row (liquid, or vesting when the target carries
// the vesting suffix).
func (e *Engine) routeTokens(symbol types.NAI, target string, amount int64) {
	if amount <= 0 {
		return
	}
	switch target {
	case UnitTargetMarketMaker:
		e.Tokens.Modify(e.mustToken(symbol), func(t *Token) {
			t.MarketMaker.TokenBalance.Amount += amount
		})
	case UnitTargetRewards:
		e.Tokens.Modify(e.mustToken(symbol), func(t *Token) {
			t.RewardBalance += amount
		})
	case UnitTargetVesting:
		e.Tokens.Modify(e.mustToken(symbol), func(t *Token) {
			t.VestingFund += amount
		})
	default:
		name, vest := parseAccountTarget(target)
		if vest {
			e.CreditVesting(name, symbol, amount)
		} else {
			e.CreditLiquid(name, symbol, amount)
		}
	}
}

// Unit-target sentinels.
const (
	UnitTargetMarketMaker = "$market_maker"
	UnitTargetRewards     = "$rewards"
	UnitTargetVesting     = "$vesting"
	UnitTargetFrom        = "$from"
	UnitTargetFromVesting = "$from.vesting"
)

// parseAccountTarget resolves "$!name.vesting" and "name.vesting" forms
// to (name, vesting=true), plain names to (name, false).
func parseAccountTarget(target string) (string, bool) {
	t := strings.TrimPrefix(target, "$!")
	if strings.HasSuffix(t, ".vesting") {
		return strings.TrimSuffix(t, ".vesting"), true
	}
	return t, false
}

func (e *Engine) mustToken(symbol types.NAI) Token {
	t, ok := e.findToken(symbol)
	if !ok {
		panic("sst: token vanished mid-operation")
	}
	return t
}

// CreditLiquid adds liquid SST to an account's regular balance row,
// creating the row on first touch.
func (e *Engine) CreditLiquid(account string, symbol types.NAI, amount int64) {
	if amount == 0 {
		return
	}
	if row, ok := e.findRegular(account, symbol); ok {
		e.Regular.Modify(row, func(r *RegularBalance) { r.Liquid += amount })
		return
	}
	e.Regular.Create(func(r *RegularBalance) {
		r.Account = account
		r.SymbolNai = symbol
		r.Liquid = amount
		r.NextVestingWithdrawal = neverTimePoint
	})
}

// CreditVesting converts liquid value into vesting shares at the token's
// effective (ballast-inclusive) price and credits them to the account,
// growing the token's vesting fund and share totals.
func (e *Engine) CreditVesting(account string, symbol types.NAI, liquidValue int64) int64 {
	if liquidValue <= 0 {
		return 0
	}
	token := e.mustToken(symbol)
	effFund := token.VestingFund + token.BallastFund
	effShares := token.VestingShares + token.BallastShares
	var shares int64
	if effFund == 0 {
		shares = liquidValue * InitialVestingPerUnit
	} else {
		shares = muldiv(liquidValue, effShares, effFund)
	}
	e.Tokens.Modify(token, func(t *Token) {
		t.VestingFund += liquidValue
		t.VestingShares += shares
	})
	if row, ok := e.findRegular(account, symbol); ok {
		e.Regular.Modify(row, func(r *RegularBalance) { r.VestingShares += shares })
	} else {
		e.Regular.Create(func(r *RegularBalance) {
			r.Account = account
			r.SymbolNai = symbol
			r.VestingShares = shares
			r.NextVestingWithdrawal = neverTimePoint
		})
	}
	return shares
}

const neverTimePoint = int64(1) << 62

// FindRegularBalance looks up the per-(account, SST) regular balance row.
func (e *Engine) FindRegularBalance(account string, symbol types.NAI) (RegularBalance, bool) {
	return e.findRegular(account, symbol)
}

func (e *Engine) findRegular(account string, symbol types.NAI) (RegularBalance, bool) {
	var found RegularBalance
	var ok bool
	e.Regular.Range(func(r RegularBalance) bool {
		if r.Account == account && r.SymbolNai == symbol {
			found, ok = r, true
			return false
		}
		return true
	})
	return found, ok
}
