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

// Package consensus implements the hardfork table and activation
// gating, plus the witness-schedule round-boundary and missed-slot
// math. A hardfork's fields are only trusted once its activation
// condition holds.
package consensus

// HardforkRequiredWitnesses is freezone_HARDFORK_REQUIRED_WITNESSES: the number
// of the last-scheduled witnesses whose version votes are tallied for
// supermajority gating.
const HardforkRequiredWitnesses = 17

// SupermajorityGatedFromHF is the index of the first hardfork whose
// activation requires both a witness supermajority vote and wall-clock
// time; earlier hardforks in the table activate on wall-clock alone.
const SupermajorityGatedFromHF = 1

// Hardfork describes one version bump: its semantic version tuple and
// the wall-clock time after which it is eligible to activate.
type Hardfork struct {
	Index       uint32
	Version     [3]uint16
	ActivationTime int64
}

// Table is the full ordered hardfork sequence the engine enforces. It is
// supplied by configuration rather than hardcoded, but a canonical
// default is provided here the way config.hpp defines compiled-in
// defaults for a reference network.
type Table struct {
	Hardforks []Hardfork
}

// HasHardfork reports has_hardfork(i): true once the table has recorded i
// as processed, i.e. i is strictly less than the count of hardforks the
// engine has already applied.
func HasHardfork(processedCount uint32, i uint32) bool {
	return i < processedCount
}

// WitnessVersionVote is one scheduled witness's self-reported running
// version and hardfork vote, used by the supermajority tally.
type WitnessVersionVote struct {
	Witness             string
	RunningVersion      [3]uint16
	HardforkVersionVote uint32
	HardforkTimeVote    int64
}

// EligibleToActivate decides whether hardfork hf may apply given the
// current wall-clock time and (for gated hardforks) the version votes of
// the most recently scheduled witnesses.
func (t Table) EligibleToActivate(hf Hardfork, now int64, votes []WitnessVersionVote) bool {
	if now < hf.ActivationTime {
		return false
	}
	if hf.Index < SupermajorityGatedFromHF {
		return true
	}
	return supermajorityVotedFor(hf, votes)
}

func supermajorityVotedFor(hf Hardfork, votes []WitnessVersionVote) bool {
	if len(votes) == 0 {
		return false
	}
	n := len(votes)
	if n > HardforkRequiredWitnesses {
		votes = votes[n-HardforkRequiredWitnesses:]
		n = HardforkRequiredWitnesses
	}
	threshold := (n*2)/3 + 1
	count := 0
	for _, v := range votes {
		if v.HardforkVersionVote >= hf.Index && v.HardforkTimeVote <= hf.ActivationTime {
			count++
		}
	}
	return count >= threshold
}

// NextEligible scans the table from processedCount forward and returns
// the next hardfork ready to apply, if any. Maintenance step 27 loops
// this until it returns ok=false.
func (t Table) NextEligible(processedCount uint32, now int64, votes []WitnessVersionVote) (Hardfork, bool) {
	if int(processedCount) >= len(t.Hardforks) {
		return Hardfork{}, false
	}
	hf := t.Hardforks[processedCount]
	if !t.EligibleToActivate(hf, now, votes) {
		return Hardfork{}, false
	}
	return hf, true
}
