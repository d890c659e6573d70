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
	"sort"

	"github.com/fresszonesongs/freezone/core/types"
)

// ContributionPayout is the result of routing one contribution through
// the tier/generation-unit math: a map of unit-target -> token units
// (liquid unless the target names a vesting suffix), plus the native-side
// routing for the same contribution's steem_unit map.
type ContributionPayout struct {
	TokenPayouts map[string]int64 // unit-target -> token amount
	SteemPayouts map[string]int64 // unit-target -> native satoshi
}

// PayoutContribution implements the contributor payout formula for
// one contribution whose satoshis occupy [offset, offset+amount) of the
// ICO's prefix-partitioned funding range: each tier band the
// contribution overlaps converts its portion through that tier's
// generation unit at the ICO's effective unit ratio.
func (e *Engine) PayoutContribution(symbol types.NAI, c Contribution, offset int64) ContributionPayout {
	out := ContributionPayout{TokenPayouts: map[string]int64{}, SteemPayouts: map[string]int64{}}
	ico, ok := e.findIco(symbol)
	if !ok {
		return out
	}
	tiers := e.tiersFor(symbol)
	ratio := unitRatio(ico.MinUnitRatio, ico.MaxUnitRatio)

	pos := offset
	end := offset + c.Amount
	floor := int64(0)
	for _, tier := range tiers {
		if pos >= end {
			break
		}
		cap := tier.SteemSatoshiCap
		if cap <= pos {
			floor = cap
			continue
		}
		bandStart := pos
		if floor > bandStart {
			bandStart = floor
		}
		bandEnd := end
		if cap < bandEnd {
			bandEnd = cap
		}
		inBand := bandEnd - bandStart
		if inBand <= 0 {
			floor = cap
			continue
		}

		steemUnitSum := sumWeights(tier.GenerationUnit.SteemUnit)
		if steemUnitSum > 0 {
			units := inBand / int64(steemUnitSum)
			for _, tw := range sortedUnitEntries(tier.GenerationUnit.SteemUnit) {
				out.SteemPayouts[tw.target] += inBand * int64(tw.weight) / int64(steemUnitSum)
			}
			tokenUnits := units * int64(ratio)
			for _, tw := range sortedUnitEntries(tier.GenerationUnit.TokenUnit) {
				out.TokenPayouts[tw.target] += tokenUnits * int64(tw.weight)
			}
		}

		pos = bandEnd
		floor = cap
	}
	return out
}

// unitRatio picks the effective ratio within [min, max]; the reference
// engine uses the midpoint when no market-responsive override is
// configured.
func unitRatio(min, max uint32) uint32 {
	if max < min {
		return min
	}
	return min + (max-min)/2
}

func sumWeights(m map[string]uint16) uint64 {
	var sum uint64
	for _, w := range m {
		sum += uint64(w)
	}
	return sum
}

// NextContributorPayout returns the next unsettled contribution of a
// successful ICO in contribution order, or ok=false once every
// contribution has paid out.
func (e *Engine) NextContributorPayout(symbol types.NAI) (Contribution, bool) {
	return e.nextContribution(symbol)
}

// ApplyContributorPayout settles one contribution: tokens minted per the
// tier math go to the resolved unit targets, native-side satoshis route
// to the market maker or named accounts via the CreditNative hook. The
// contribution row is consumed and the ICO's processed offset advances.
// Returns the tokens minted.
func (e *Engine) ApplyContributorPayout(symbol types.NAI, c Contribution) (int64, error) {
	token, ok := e.findToken(symbol)
	if !ok || token.Phase != PhaseLaunchSuccess {
		return 0, errWrongPhase
	}
	ico, ok := e.findIco(symbol)
	if !ok {
		return 0, errNoIco
	}

	payout := e.PayoutContribution(symbol, c, ico.ProcessedOffset)

	var minted int64
	for _, tw := range sortedPayoutEntries(payout.TokenPayouts) {
		target, vest := resolvePayoutTarget(tw.target, c.Contributor, token.ControlAccount)
		switch target {
		case UnitTargetMarketMaker:
			e.Tokens.Modify(e.mustToken(symbol), func(t *Token) {
				t.MarketMaker.TokenBalance.Amount += tw.amount
			})
		case UnitTargetRewards:
			e.Tokens.Modify(e.mustToken(symbol), func(t *Token) {
				t.RewardBalance += tw.amount
			})
		case UnitTargetVesting:
			e.Tokens.Modify(e.mustToken(symbol), func(t *Token) {
				t.VestingFund += tw.amount
			})
		default:
			if vest {
				e.CreditVesting(target, symbol, tw.amount)
			} else {
				e.CreditLiquid(target, symbol, tw.amount)
			}
		}
		minted += tw.amount
	}

	for _, sw := range sortedPayoutEntries(payout.SteemPayouts) {
		target, _ := resolvePayoutTarget(sw.target, c.Contributor, token.ControlAccount)
		if target == UnitTargetMarketMaker {
			e.Tokens.Modify(e.mustToken(symbol), func(t *Token) {
				t.MarketMaker.SteemBalance.Amount += sw.amount
			})
			continue
		}
		if e.CreditNative != nil {
			e.CreditNative(target, sw.amount)
		}
	}

	e.Contributions.Remove(c)
	e.Icos.Modify(icoByID(e.Icos, ico.ID), func(i *IcoState) {
		i.ProcessedContributions++
		i.ProcessedOffset += c.Amount
	})
	e.Tokens.Modify(e.mustToken(symbol), func(t *Token) {
		t.CurrentSupply += minted
	})
	return minted, nil
}

type payoutEntry struct {
	target string
	amount int64
}

func sortedPayoutEntries(m map[string]int64) []payoutEntry {
	out := make([]payoutEntry, 0, len(m))
	for t, a := range m {
		out = append(out, payoutEntry{t, a})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].target < out[j].target })
	return out
}

// resolvePayoutTarget maps the routing sentinels to concrete accounts:
// $from/$contributor to the contributor, $founder to the control
// account, optionally with a vesting suffix. Sentinels that route to
// token-internal pools pass through unchanged.
func resolvePayoutTarget(target, contributor, controlAccount string) (string, bool) {
	switch target {
	case UnitTargetMarketMaker, UnitTargetRewards, UnitTargetVesting:
		return target, false
	case UnitTargetFrom, "$contributor":
		return contributor, false
	case UnitTargetFromVesting, "$contributor.vesting":
		return contributor, true
	case "$founder":
		return controlAccount, false
	case "$founder.vesting":
		return controlAccount, true
	}
	name, vest := parseAccountTarget(target)
	return name, vest
}
