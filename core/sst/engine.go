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
	"github.com/holiman/uint256"

	"github.com/fresszonesongs/freezone/core/state"
	"github.com/fresszonesongs/freezone/core/types"
)

// Engine owns every SST table and implements the lifecycle transitions,
// the contributor/founder payout formula, and the emission engine. It is
// constructed once by core/chain and driven by core/maintenance (for
// scheduled actions) and core/evaluator (for user-submitted operations).
type Engine struct {
	Tokens        *state.Table[Token]
	Icos          *state.Table[IcoState]
	Tiers         *state.Table[IcoTier]
	Emissions     *state.Table[EmissionSchedule]
	Contributions *state.Table[Contribution]
	Regular       *state.Table[RegularBalance]
	Rewards       *state.Table[RewardsBalance]

	ByExecutionTime *state.GBTreeIndex[EmissionSchedule]

	// CreditNative routes a native-side ICO payout (the steem_unit map's
	// non-market-maker targets) to a named account. Supplied by
	// core/chain, which owns the account table.
	CreditNative func(account string, amount int64)
}

func NewEngine(store *state.Store) *Engine {
	e := &Engine{
		Tokens:        state.NewTable[Token](store, "sst_token"),
		Icos:          state.NewTable[IcoState](store, "sst_ico"),
		Tiers:         state.NewTable[IcoTier](store, "sst_ico_tier"),
		Emissions:     state.NewTable[EmissionSchedule](store, "sst_emission"),
		Contributions: state.NewTable[Contribution](store, "sst_contribution"),
		Regular:       state.NewTable[RegularBalance](store, "sst_regular_balance"),
		Rewards:       state.NewTable[RewardsBalance](store, "sst_rewards_balance"),
	}
	e.ByExecutionTime = state.NewGBTreeIndex[EmissionSchedule]("by_schedule_time", func(a, b EmissionSchedule) bool {
		if a.ScheduleTime != b.ScheduleTime {
			return a.ScheduleTime < b.ScheduleTime
		}
		return a.ID < b.ID
	})
	e.Emissions.AddIndex(e.ByExecutionTime)
	return e
}

func (e *Engine) findToken(symbol types.NAI) (Token, bool) {
	var found Token
	var ok bool
	e.Tokens.Range(func(t Token) bool {
		if t.LiquidSymbol == symbol {
			found, ok = t, true
			return false
		}
		return true
	})
	return found, ok
}

func (e *Engine) findIco(symbol types.NAI) (IcoState, bool) {
	var found IcoState
	var ok bool
	e.Icos.Range(func(i IcoState) bool {
		if i.SymbolNai == symbol {
			found, ok = i, true
			return false
		}
		return true
	})
	return found, ok
}

func (e *Engine) tiersFor(symbol types.NAI) []IcoTier {
	var out []IcoTier
	e.Tiers.Range(func(t IcoTier) bool {
		if t.SymbolNai == symbol {
			out = append(out, t)
		}
		return true
	})
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1].TierIndex > out[j].TierIndex; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

func (e *Engine) contributionsFor(symbol types.NAI) []Contribution {
	var out []Contribution
	e.Contributions.Range(func(c Contribution) bool {
		if c.SymbolNai == symbol {
			out = append(out, c)
		}
		return true
	})
	return out
}

// CreateToken allocates a new Token row in PhaseSetup for an SST_create_operation.
func (e *Engine) CreateToken(controlAccount string, symbol types.NAI) Token {
	return e.Tokens.Create(func(t *Token) {
		t.ControlAccount = controlAccount
		t.LiquidSymbol = symbol
		t.Phase = PhaseSetup
		t.RecentClaims = uint256.NewInt(0)
	})
}

// Setup finalizes the setup phase: records the ICO window/tiers/unit
// ratios and moves the token to setup_completed. It schedules no action
// itself; core/maintenance enqueues the SSTIcoLaunchAction once
// ContributionBeginTime is reached.
func (e *Engine) Setup(token Token, begin, end, launch int64, satoshiMin int64, minRatio, maxRatio uint32, tiers []IcoTier) (Token, IcoState) {
	token = e.Tokens.Modify(token, func(t *Token) { t.Phase = PhaseSetupCompleted })
	ico := e.Icos.Create(func(i *IcoState) {
		i.SymbolNai = token.LiquidSymbol
		i.ContributionBeginTime = begin
		i.ContributionEndTime = end
		i.LaunchTime = launch
		i.SteemSatoshiMin = satoshiMin
		i.MinUnitRatio = minRatio
		i.MaxUnitRatio = maxRatio
	})
	for idx := range tiers {
		tiers[idx].SymbolNai = token.LiquidSymbol
		tiers[idx].TierIndex = uint8(idx)
		e.Tiers.Create(func(t *IcoTier) { *t = tiers[idx] })
	}
	return token, ico
}

// LaunchIco moves setup_completed -> ico (SSTIcoLaunchAction).
func (e *Engine) LaunchIco(symbol types.NAI) (Token, bool) {
	token, ok := e.findToken(symbol)
	if !ok || token.Phase != PhaseSetupCompleted {
		return token, false
	}
	return e.Tokens.Modify(token, func(t *Token) { t.Phase = PhaseIco }), true
}

// Contribute records a contribution during the ico phase, debiting is the
// caller's responsibility (core/evaluator adjusts the contributor's
// native balance before calling this).
func (e *Engine) Contribute(symbol types.NAI, contributor string, contributionID uint32, amount int64) (Contribution, error) {
	ico, ok := e.findIco(symbol)
	if !ok {
		return Contribution{}, errNoIco
	}
	tiers := e.tiersFor(symbol)
	var hardCap int64
	if len(tiers) > 0 {
		hardCap = tiers[len(tiers)-1].SteemSatoshiCap
	}
	if ico.TotalContributed+amount > hardCap {
		return Contribution{}, errHardCapExceeded
	}
	c := e.Contributions.Create(func(c *Contribution) {
		c.SymbolNai = symbol
		c.Contributor = contributor
		c.ContributionID = contributionID
		c.Amount = amount
	})
	e.Icos.Modify(icoByID(e.Icos, ico.ID), func(i *IcoState) { i.TotalContributed += amount })
	return c, nil
}

func icoByID(t *state.Table[IcoState], id state.ID) IcoState {
	o, _ := t.Find(id)
	return o
}

// FindContribution looks up one contribution by its (symbol, contributor,
// contribution-id) key.
func (e *Engine) FindContribution(symbol types.NAI, contributor string, contributionID uint32) (Contribution, bool) {
	var found Contribution
	var ok bool
	e.Contributions.Range(func(c Contribution) bool {
		if c.SymbolNai == symbol && c.Contributor == contributor && c.ContributionID == contributionID {
			found, ok = c, true
			return false
		}
		return true
	})
	return found, ok
}
