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

package evaluator

import (
	"strings"

	"github.com/fresszonesongs/freezone/core/sst"
	"github.com/fresszonesongs/freezone/core/types"
)

func findToken(e *sst.Engine, symbol types.NAI) (sst.Token, bool) {
	var found sst.Token
	var ok bool
	e.Tokens.Range(func(t sst.Token) bool {
		if t.LiquidSymbol == symbol {
			found, ok = t, true
			return false
		}
		return true
	})
	return found, ok
}

func evalSSTCreate(ctx Context, operation types.Operation) error {
	op := operation.(types.SSTCreateOp)
	if _, err := ctx.GetAccount(op.ControlAccount); err != nil {
		return err
	}
	symbol, err := ctx.ReserveSSTSymbol(op.ControlAccount, op.CreationFee)
	if err != nil {
		return err
	}
	if symbol != op.SymbolNai {
		return ErrUnknownEntity
	}
	if err := ctx.AdjustBalance(op.ControlAccount, op.CreationFee.Negate()); err != nil {
		return err
	}
	// The creation fee is burned: it sits on the null account until the
	// per-block sweep destroys it.
	if err := ctx.AdjustBalance(burnAccountName, op.CreationFee); err != nil {
		return err
	}
	ctx.SST().CreateToken(op.ControlAccount, symbol)
	return nil
}

// burnAccountName matches the chain's null-account sink.
const burnAccountName = "null"

func evalSSTSetup(ctx Context, operation types.Operation) error {
	op := operation.(types.SSTSetupOp)
	engine := ctx.SST()
	token, ok := findToken(engine, op.SymbolNai)
	if !ok {
		return ErrUnknownEntity
	}
	if token.ControlAccount != op.ControlAccount {
		return ErrUnknownEntity
	}
	if token.Phase != sst.PhaseSetup {
		return ErrWrongPhase
	}

	tiers := make([]sst.IcoTier, len(op.ICOTiers))
	for i, t := range op.ICOTiers {
		// generation_policy 0 splits each unit nine ways to the
		// contributor and one to the founder; policy 1 is flat. The
		// contributed native always seeds the token's market maker.
		unit := sst.GenerationUnit{
			SteemUnit: map[string]uint16{sst.UnitTargetMarketMaker: 1},
			TokenUnit: map[string]uint16{"$contributor": 9, "$founder": 1},
		}
		if t.GenerationPolicy == 1 {
			unit.TokenUnit = map[string]uint16{"$contributor": 1}
		}
		tiers[i] = sst.IcoTier{
			SteemSatoshiCap: t.SoftCapAmount,
			GenerationUnit:  unit,
		}
	}

	engine.Tokens.Modify(token, func(t *sst.Token) { t.Setup.MaxSupply = op.MaxSupply })
	token, _ = findToken(engine, op.SymbolNai)
	engine.Setup(token, op.ContributionBeginTime, op.ContributionEndTime, op.LaunchTime, op.SteemSatoshiMin, op.MinUnitRatio, op.MaxUnitRatio, tiers)
	return nil
}

func evalSSTSetupEmissions(ctx Context, operation types.Operation) error {
	op := operation.(types.SSTSetupEmissionsOp)
	engine := ctx.SST()
	token, ok := findToken(engine, op.SymbolNai)
	if !ok {
		return ErrUnknownEntity
	}
	if token.ControlAccount != op.ControlAccount {
		return ErrUnknownEntity
	}

	vesting := map[string]uint16{}
	liquid := map[string]uint16{}
	for _, u := range op.VestingUnits {
		vesting[u.UnitTarget] = u.Shares
	}
	for _, u := range op.LiquidUnits {
		liquid[u.UnitTarget] = u.Shares
	}

	// Merge the vesting and liquid share maps into one token-side unit:
	// vesting targets keep their .vesting suffix so the emission router
	// converts them at apply time.
	tokenUnit := map[string]uint16{}
	for target, shares := range liquid {
		tokenUnit[target] = shares
	}
	for target, shares := range vesting {
		if strings.HasPrefix(target, "$") {
			tokenUnit[target] = shares
		} else {
			tokenUnit[target+".vesting"] = shares
		}
	}

	engine.Emissions.Create(func(e *sst.EmissionSchedule) {
		e.SymbolNai = op.SymbolNai
		e.ScheduleTime = op.ScheduleTime
		e.IntervalSeconds = op.IntervalSeconds
		e.EmissionCount = op.EmissionCount
		e.LepTime = op.ScheduleTime
		e.RepTime = op.ScheduleTime
		e.LepAbs = op.TokensPerInterval
		e.RepAbs = op.TokensPerInterval
		e.Emit = sst.GenerationUnit{TokenUnit: tokenUnit}
	})
	return nil
}

func evalSSTSetSetupParameters(ctx Context, operation types.Operation) error {
	op := operation.(types.SSTSetSetupParametersOp)
	engine := ctx.SST()
	token, ok := findToken(engine, op.SymbolNai)
	if !ok {
		return ErrUnknownEntity
	}
	if token.ControlAccount != op.ControlAccount {
		return ErrUnknownEntity
	}
	if token.Phase != sst.PhaseSetup {
		return ErrWrongPhase
	}
	engine.Tokens.Modify(token, func(t *sst.Token) { t.Setup.AllowVoting = op.AllowVoting })
	return nil
}

func evalSSTSetRuntimeParameters(ctx Context, operation types.Operation) error {
	op := operation.(types.SSTSetRuntimeParametersOp)
	engine := ctx.SST()
	token, ok := findToken(engine, op.SymbolNai)
	if !ok {
		return ErrUnknownEntity
	}
	if token.ControlAccount != op.ControlAccount {
		return ErrUnknownEntity
	}
	engine.Tokens.Modify(token, func(t *sst.Token) {
		t.Setup.PercentCurationRewards = op.PercentCurationRewards
	})
	return nil
}

func evalSSTContribute(ctx Context, operation types.Operation) error {
	op := operation.(types.SSTContributeOp)
	if _, err := ctx.GetAccount(op.Contributor); err != nil {
		return err
	}
	engine := ctx.SST()
	token, ok := findToken(engine, op.SymbolNai)
	if !ok {
		return ErrUnknownEntity
	}
	if token.Phase != sst.PhaseIco {
		return ErrWrongPhase
	}
	if err := ctx.AdjustBalance(op.Contributor, op.Contribution.Negate()); err != nil {
		return err
	}
	c, err := engine.Contribute(op.SymbolNai, op.Contributor, op.ContributionID, op.Contribution.Amount)
	if err != nil {
		if rerr := ctx.AdjustBalance(op.Contributor, op.Contribution); rerr != nil {
			return rerr
		}
		return err
	}
	ctx.Emit(types.SSTContributionOp{
		Contributor:    op.Contributor,
		SymbolNai:      op.SymbolNai,
		ContributionID: c.ContributionID,
		Contribution:   op.Contribution,
	})
	return nil
}
