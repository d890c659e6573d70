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
	"github.com/fresszonesongs/freezone/core/consensus"
	"github.com/fresszonesongs/freezone/core/objects"
	"github.com/fresszonesongs/freezone/core/types"
)

// step 27: applyEligibleHardforks applies, in order, every hardfork
// whose activation condition is satisfied: wall-clock time alone for the
// pre-gating forks, wall-clock plus witness supermajority after.
func (s *State) applyEligibleHardforks(now int64) {
	hp, ok := s.HardforkProp.Find(0)
	if !ok {
		return
	}
	for {
		votes := s.witnessVersionVotes()
		hf, eligible := s.Hardforks.NextEligible(hp.LastHardfork, now, votes)
		if !eligible {
			return
		}
		hp = s.HardforkProp.Modify(hp, func(p *objects.HardforkProperty) {
			p.LastHardfork = hf.Index + 1
			p.ProcessedHardforks = append(p.ProcessedHardforks, now)
			p.CurrentHardforkVersion = hf.Version
		})
		s.runHardforkMigration(hf)
		s.emit(types.HardforkOp{HardforkID: hf.Index})
		s.logger().Info("applied hardfork", "index", hf.Index, "version", hf.Version)
	}
}

// witnessVersionVotes gathers the scheduled witnesses' version votes for
// the supermajority tally; HFVotesFor lets core/chain substitute the
// exact last-scheduled slate when it differs from the current ranking.
func (s *State) witnessVersionVotes() []consensus.WitnessVersionVote {
	if s.HFVotesFor != nil {
		return s.HFVotesFor()
	}
	sched, ok := s.WitnessSchedule.Find(0)
	if !ok {
		return nil
	}
	votes := make([]consensus.WitnessVersionVote, 0, len(sched.CurrentShuffledWitnesses))
	for _, name := range sched.CurrentShuffledWitnesses {
		if w, ok := s.findWitness(name); ok {
			votes = append(votes, consensus.WitnessVersionVote{
				Witness:             w.Owner,
				RunningVersion:      w.RunningVersion,
				HardforkVersionVote: w.HardforkVersionVote,
				HardforkTimeVote:    w.HardforkTimeVote,
			})
		}
	}
	return votes
}

// runHardforkMigration performs the one-time state rewrite a hardfork
// activation carries. Migrations are keyed by index; unknown indexes are
// version bumps with no data migration.
func (s *State) runHardforkMigration(hf consensus.Hardfork) {
	switch hf.Index {
	case 1:
		// The first gated fork switches the content reward curve from
		// quadratic to convergent-linear.
		if fund, ok := s.findRewardFund(ContentRewardFundName); ok {
			s.RewardFunds.Modify(fund, func(f *objects.RewardFund) {
				f.AuthorRewardCurve = types.CurveConvergentLinear
				f.CurationRewardCurve = types.CurveSquareRoot
			})
		}
	case 3:
		// Treasury activation: create the DAO account if genesis predates it.
		if _, ok := s.findAccount(TreasuryAccountName); !ok {
			s.Accounts.Create(func(a *objects.Account) {
				a.Name = TreasuryAccountName
				a.Balance = types.NewAsset(0, types.Native)
				a.DollarBalance = types.NewAsset(0, types.Dollar)
				a.VestingShares = types.NewAsset(0, types.NativeVesting)
				a.NextVestingWithdrawal = maxTimePoint
				a.CanVote = false
			})
		}
	}
}
