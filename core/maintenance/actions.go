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
	"crypto/sha256"
	"fmt"
	"sort"

	"github.com/pkg/errors"

	"github.com/fresszonesongs/freezone/core/consensus"
	"github.com/fresszonesongs/freezone/core/objects"
	"github.com/fresszonesongs/freezone/core/sst"
	"github.com/fresszonesongs/freezone/core/state"
	"github.com/fresszonesongs/freezone/core/types"
)

// ErrRequiredActionMismatch aborts a block that carries required actions
// out of order, or omits a due one.
var ErrRequiredActionMismatch = errors.New("maintenance: block's required actions do not match the pending queue")

// ErrUnknownOptionalAction aborts a block carrying an optional action
// that was never scheduled.
var ErrUnknownOptionalAction = errors.New("maintenance: optional action does not match any pending record")

// ActionHash is the identity under which pending actions are queued and
// matched against block-carried actions.
func ActionHash(a types.Action) [32]byte {
	return sha256.Sum256([]byte(fmt.Sprintf("%s|%+v", a.Kind(), a)))
}

// step 23: generateRequiredActions advances the SST lifecycle by
// enqueueing whichever transition each token is due for: ICO launch at
// the contribution window's open, evaluation at its close, token launch
// at launch time, and the refund chain for failed launches. Actions
// enqueued here become due one block later, so the producer that built
// this block's header (before this step ran) and the validators that
// re-run it stay in agreement about which actions the header must carry.
func (s *State) generateRequiredActions(now int64) {
	due := now + consensus.BlockIntervalSeconds
	s.SST.Tokens.Range(func(t sst.Token) bool {
		switch t.Phase {
		case sst.PhaseSetupCompleted:
			if ico, ok := s.icoFor(t.LiquidSymbol); ok && ico.ContributionBeginTime <= now {
				s.enqueueRequired(due, types.SSTIcoLaunchAction{
					ControlAccount: t.ControlAccount, SymbolNai: t.LiquidSymbol,
				})
			}
		case sst.PhaseIco:
			if ico, ok := s.icoFor(t.LiquidSymbol); ok && ico.ContributionEndTime <= now {
				s.enqueueRequired(due, types.SSTIcoEvaluationAction{
					ControlAccount: t.ControlAccount, SymbolNai: t.LiquidSymbol,
				})
			}
		case sst.PhaseIcoCompleted:
			if ico, ok := s.icoFor(t.LiquidSymbol); ok && ico.LaunchTime <= now {
				s.enqueueRequired(due, types.SSTTokenLaunchAction{
					ControlAccount: t.ControlAccount, SymbolNai: t.LiquidSymbol,
				})
			}
		case sst.PhaseLaunchSuccess:
			// One contribution settles per action; once the ICO drains,
			// the founder payout closes the launch. The chain ends when
			// the founder action removes the ICO bookkeeping.
			if _, ok := s.icoFor(t.LiquidSymbol); !ok {
				break
			}
			if c, ok := s.SST.NextContributorPayout(t.LiquidSymbol); ok {
				s.enqueueRequired(due, types.SSTContributorPayoutAction{
					SymbolNai:      t.LiquidSymbol,
					Contributor:    c.Contributor,
					ContributionID: c.ContributionID,
				})
			} else {
				s.enqueueRequired(due, types.SSTFounderPayoutAction{
					ControlAccount: t.ControlAccount, SymbolNai: t.LiquidSymbol,
				})
			}
		case sst.PhaseLaunchFailed:
			if c, ok := s.SST.NextRefund(t.LiquidSymbol); ok {
				s.enqueueRequired(due, types.SSTRefundAction{
					SymbolNai:      t.LiquidSymbol,
					Contributor:    c.Contributor,
					ContributionID: c.ContributionID,
					Amount:         types.NewAsset(c.Amount, types.Native),
				})
			}
		}
		return true
	})
}

// step 24: generateOptionalActions enqueues due SST emissions; external
// generators hook the chain-level GenerateOptionalActions signal, which
// core/chain fires around this step.
func (s *State) generateOptionalActions(now int64) {
	s.SST.Tokens.Range(func(t sst.Token) bool {
		if t.Phase != sst.PhaseLaunchSuccess {
			return true
		}
		_, fireTime, due := s.SST.NextEmissionTime(t, now)
		if !due {
			return true
		}
		// The record is queued at head time, not the (possibly long past)
		// schedule slot, so the irreversibility GC cannot collect it
		// before any block had a chance to carry it.
		s.enqueueOptional(now, types.SSTTokenEmissionAction{
			ControlAccount: t.ControlAccount,
			SymbolNai:      t.LiquidSymbol,
			ScheduleTime:   fireTime,
		})
		return true
	})
}

func (s *State) icoFor(symbol types.NAI) (sst.IcoState, bool) {
	var found sst.IcoState
	var ok bool
	s.SST.Icos.Range(func(i sst.IcoState) bool {
		if i.SymbolNai == symbol {
			found, ok = i, true
			return false
		}
		return true
	})
	return found, ok
}

func (s *State) enqueueRequired(execTime int64, a types.Action) {
	h := ActionHash(a)
	if s.pendingByHash(s.RequiredActions, h) != nil {
		return
	}
	s.RequiredActions.Create(func(p *objects.PendingAction) {
		p.ExecutionTime = execTime
		p.Hash = h
		p.Action = a
	})
}

func (s *State) enqueueOptional(execTime int64, a types.Action) {
	h := ActionHash(a)
	if s.pendingByHash(s.OptionalActions, h) != nil {
		return
	}
	s.OptionalActions.Create(func(p *objects.PendingAction) {
		p.ExecutionTime = execTime
		p.Hash = h
		p.Action = a
	})
}

func (s *State) pendingByHash(table *state.Table[objects.PendingAction], h [32]byte) *objects.PendingAction {
	var found *objects.PendingAction
	table.Range(func(p objects.PendingAction) bool {
		if p.Hash == h {
			found = &p
			return false
		}
		return true
	})
	return found
}

// DueRequiredActions returns the pending required actions whose
// execution time has arrived, oldest first. Block producers call this to
// fill the header's required-actions extension; the consumer side
// (processRequiredActions) demands exactly this sequence.
func (s *State) DueRequiredActions(now int64) []types.Action {
	pending := s.duePending(s.RequiredActions, now)
	out := make([]types.Action, 0, len(pending))
	for _, p := range pending {
		out = append(out, p.Action)
	}
	return out
}

// DueOptionalActions mirrors DueRequiredActions for the optional queue.
func (s *State) DueOptionalActions(now int64) []types.Action {
	pending := s.duePending(s.OptionalActions, now)
	out := make([]types.Action, 0, len(pending))
	for _, p := range pending {
		out = append(out, p.Action)
	}
	return out
}

func (s *State) duePending(table *state.Table[objects.PendingAction], now int64) []objects.PendingAction {
	var due []objects.PendingAction
	table.Range(func(p objects.PendingAction) bool {
		if p.ExecutionTime <= now {
			due = append(due, p)
		}
		return true
	})
	sort.Slice(due, func(i, j int) bool {
		if due[i].ExecutionTime != due[j].ExecutionTime {
			return due[i].ExecutionTime < due[j].ExecutionTime
		}
		return due[i].ID < due[j].ID
	})
	return due
}

// step 25: processRequiredActions consumes the block's carried required
// actions: each must exactly match the earliest due pending action, and
// no due pending action may be left out.
func (s *State) processRequiredActions(bc BlockContext) error {
	due := s.duePending(s.RequiredActions, bc.Now)
	if len(bc.RequiredActions) < len(due) {
		return errors.Wrapf(ErrRequiredActionMismatch,
			"block carries %d required actions, %d are due", len(bc.RequiredActions), len(due))
	}
	for i, carried := range bc.RequiredActions {
		if i >= len(due) {
			return errors.Wrap(ErrRequiredActionMismatch, "block carries a required action that is not pending")
		}
		if ActionHash(carried) != due[i].Hash {
			return errors.Wrapf(ErrRequiredActionMismatch, "position %d", i)
		}
		if err := s.dispatchAction(carried, bc.Now); err != nil {
			return err
		}
		s.RequiredActions.Remove(due[i])
	}
	return nil
}

// step 26: processOptionalActions dispatches the block's carried
// optional actions (which must each match a pending record by hash) and
// garbage-collects records the supermajority has irreversibly skipped.
func (s *State) processOptionalActions(bc BlockContext) error {
	for _, carried := range bc.OptionalActions {
		h := ActionHash(carried)
		p := s.pendingByHash(s.OptionalActions, h)
		if p == nil {
			return ErrUnknownOptionalAction
		}
		if err := s.dispatchAction(carried, bc.Now); err != nil {
			return err
		}
		s.OptionalActions.Remove(*p)
	}

	var stale []objects.PendingAction
	s.OptionalActions.Range(func(p objects.PendingAction) bool {
		if p.ExecutionTime < bc.LastIrreversibleTime {
			stale = append(stale, p)
		}
		return true
	})
	for _, p := range stale {
		s.OptionalActions.Remove(p)
	}
	return nil
}

// dispatchAction is the action-side analogue of the evaluator registry:
// an exhaustive switch over the closed action union.
func (s *State) dispatchAction(a types.Action, now int64) error {
	switch act := a.(type) {
	case types.SSTIcoLaunchAction:
		if _, ok := s.SST.LaunchIco(act.SymbolNai); !ok {
			return errors.Errorf("sst ico launch: token %d not in setup_completed", act.SymbolNai)
		}
		s.emit(types.SSTIcoLaunchOp{ControlAccount: act.ControlAccount, SymbolNai: act.SymbolNai})
		return nil

	case types.SSTIcoEvaluationAction:
		_, success, err := s.SST.EvaluateIco(act.SymbolNai)
		if err != nil {
			return err
		}
		s.logger().Info("sst ico evaluated", "symbol", act.SymbolNai, "success", success)
		return nil

	case types.SSTTokenLaunchAction:
		if _, err := s.SST.LaunchToken(act.SymbolNai); err != nil {
			return err
		}
		s.emit(types.SSTTokenLaunchOp{ControlAccount: act.ControlAccount, SymbolNai: act.SymbolNai, Success: true})
		return nil

	case types.SSTContributorPayoutAction:
		c, ok := s.SST.FindContribution(act.SymbolNai, act.Contributor, act.ContributionID)
		if !ok {
			return errors.Errorf("sst contributor payout: contribution %s/%d not found",
				act.Contributor, act.ContributionID)
		}
		if _, err := s.SST.ApplyContributorPayout(act.SymbolNai, c); err != nil {
			return err
		}
		return nil

	case types.SSTFounderPayoutAction:
		if _, err := s.SST.InstallBallast(act.SymbolNai); err != nil {
			return err
		}
		s.SST.TeardownIco(act.SymbolNai)
		s.emit(types.SSTFounderRewardOp{
			Founder:   act.ControlAccount,
			SymbolNai: act.SymbolNai,
			Payout:    types.Asset{Symbol: types.Symbol{Nai: act.SymbolNai}},
		})
		return nil

	case types.SSTRefundAction:
		c, ok := s.SST.FindContribution(act.SymbolNai, act.Contributor, act.ContributionID)
		if !ok {
			return errors.Errorf("sst refund: contribution %s/%d not found", act.Contributor, act.ContributionID)
		}
		s.SST.ApplyRefund(c)
		s.creditBalance(act.Contributor, act.Amount)
		s.emit(types.SSTRefundOp{
			Contributor:    act.Contributor,
			SymbolNai:      act.SymbolNai,
			ContributionID: act.ContributionID,
			Amount:         act.Amount,
		})
		if _, more := s.SST.NextRefund(act.SymbolNai); !more {
			s.SST.TeardownIco(act.SymbolNai)
		}
		return nil

	case types.SSTTokenEmissionAction:
		emitted, err := s.SST.ProcessEmission(act.SymbolNai, now)
		if err != nil {
			return err
		}
		s.emit(types.SSTTokenEmissionOp{
			ControlAccount: act.ControlAccount,
			SymbolNai:      act.SymbolNai,
			TokensEmitted:  types.Asset{Amount: emitted, Symbol: types.Symbol{Nai: act.SymbolNai}},
		})
		return nil
	}
	return errors.Errorf("maintenance: unknown action kind %s", a.Kind())
}
