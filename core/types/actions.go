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

// ActionKind tags the closed action union. Unlike operations, actions are
// never user-signed: they are enqueued by the maintenance loop and fall
// due one block after they are queued. Once due, a required action must
// be carried by the block; an optional one may be skipped until the
// last-irreversible cutoff garbage-collects it.
type ActionKind string

const (
	ActionSSTIcoLaunch         ActionKind = "sst_ico_launch"
	ActionSSTIcoEvaluation     ActionKind = "sst_ico_evaluation"
	ActionSSTTokenLaunch       ActionKind = "sst_token_launch"
	ActionSSTContributorPayout ActionKind = "sst_contributor_payout"
	ActionSSTFounderPayout     ActionKind = "sst_founder_payout"
	ActionSSTRefund            ActionKind = "sst_refund"
	ActionSSTTokenEmission     ActionKind = "sst_token_emission"
)

// Action is the interface every concrete action type implements. Actions
// carry no author-supplied authority: they are internal to the engine.
type Action interface {
	Kind() ActionKind
}

// Required reports whether an action must be processed as soon as it
// falls due: ICO launch/evaluation and refunds are required; emissions
// may be deferred under load.
func Required(a Action) bool {
	switch a.Kind() {
	case ActionSSTTokenEmission:
		return false
	default:
		return true
	}
}

type SSTIcoLaunchAction struct {
	ControlAccount string
	SymbolNai      NAI
}

func (a SSTIcoLaunchAction) Kind() ActionKind { return ActionSSTIcoLaunch }

// SSTIcoEvaluationAction fires once at contribution_end_time to decide
// between launch_success and launch_failed per the accumulated contributions.
type SSTIcoEvaluationAction struct {
	ControlAccount string
	SymbolNai      NAI
}

func (a SSTIcoEvaluationAction) Kind() ActionKind { return ActionSSTIcoEvaluation }

type SSTTokenLaunchAction struct {
	ControlAccount string
	SymbolNai      NAI
}

func (a SSTTokenLaunchAction) Kind() ActionKind { return ActionSSTTokenLaunch }

// SSTContributorPayoutAction settles one contribution of a successful
// ICO; the launch schedules these one at a time, in contribution order,
// so payout work stays bounded per block.
type SSTContributorPayoutAction struct {
	SymbolNai      NAI
	Contributor    string
	ContributionID uint32
}

func (a SSTContributorPayoutAction) Kind() ActionKind { return ActionSSTContributorPayout }

// SSTFounderPayoutAction closes the launch once every contribution has
// settled: founder routing is finalized, the vesting ballast installed,
// and the ICO bookkeeping removed.
type SSTFounderPayoutAction struct {
	ControlAccount string
	SymbolNai      NAI
}

func (a SSTFounderPayoutAction) Kind() ActionKind { return ActionSSTFounderPayout }

// SSTRefundAction returns one contributor's native contribution when an
// ICO fails to clear its minimum tier.
type SSTRefundAction struct {
	SymbolNai      NAI
	Contributor    string
	ContributionID uint32
	Amount         Asset
}

func (a SSTRefundAction) Kind() ActionKind { return ActionSSTRefund }

// SSTTokenEmissionAction mints and distributes one scheduled emission for
// an SST that has completed its ICO.
type SSTTokenEmissionAction struct {
	ControlAccount string
	SymbolNai      NAI
	ScheduleTime   int64
}

func (a SSTTokenEmissionAction) Kind() ActionKind { return ActionSSTTokenEmission }
