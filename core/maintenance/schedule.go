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
	"sort"

	"github.com/fresszonesongs/freezone/core/consensus"
	"github.com/fresszonesongs/freezone/core/objects"
	"github.com/fresszonesongs/freezone/core/types"
)

// updateWitnessSchedule re-ranks witnesses by vote weight, picks the top
// MaxVotedWitnesses by votes (no separate miner or timeshare slate is
// selected) and reshuffles them for the next round using
// the previous head block id as the shuffle seed. Runs only at round
// boundaries.
func (s *State) updateWitnessSchedule(bc BlockContext) {
	sched, ok := s.WitnessSchedule.Find(0)
	if !ok {
		return
	}
	if n := uint32(sched.NumScheduledWitnesses); n > 0 && bc.BlockNum%n != 0 {
		return
	}
	now := bc.Now

	// Walk the vote-rank ordering from the top: highest votes first,
	// ties by name.
	var all []objects.Witness
	s.WitnessesByVote.Descend(func(w objects.Witness) bool {
		all = append(all, w)
		return true
	})

	max := int(sched.MaxVotedWitnesses)
	if max == 0 || max > len(all) {
		max = len(all)
	}
	names := make([]string, 0, max)
	for _, w := range all[:max] {
		names = append(names, w.Owner)
	}

	g := s.globals()
	seed := consensus.NewShuffleSeed(g.HeadBlockID)
	shuffled := consensus.ShuffleWitnesses(names, seed)

	medianProps := medianChainProperties(all[:max])

	s.WitnessSchedule.Modify(sched, func(w *objects.WitnessSchedule) {
		w.CurrentShuffledWitnesses = shuffled
		w.NumScheduledWitnesses = uint8(len(shuffled))
		w.CurrentVirtualTime = now
		w.MedianProps = medianProps
	})
	if medianProps.MaximumBlockSize > 0 && medianProps.MaximumBlockSize != g.MaximumBlockSize {
		s.Globals.Modify(s.globals(), func(p *objects.DynamicGlobalProperties) {
			p.MaximumBlockSize = medianProps.MaximumBlockSize
		})
	}
}

// medianChainProperties takes the per-field median of the scheduled
// witnesses' proposed parameters: each field medians independently
// rather than electing one witness's whole bundle.
func medianChainProperties(scheduled []objects.Witness) objects.ChainProperties {
	if len(scheduled) == 0 {
		return objects.ChainProperties{}
	}
	fees := make([]int64, 0, len(scheduled))
	sizes := make([]uint32, 0, len(scheduled))
	rates := make([]uint16, 0, len(scheduled))
	for _, w := range scheduled {
		fees = append(fees, w.ProposedProps.AccountCreationFee.Amount)
		sizes = append(sizes, w.ProposedProps.MaximumBlockSize)
		rates = append(rates, w.ProposedProps.SbdInterestRate)
	}
	sort.Slice(fees, func(i, j int) bool { return fees[i] < fees[j] })
	sort.Slice(sizes, func(i, j int) bool { return sizes[i] < sizes[j] })
	sort.Slice(rates, func(i, j int) bool { return rates[i] < rates[j] })
	mid := len(scheduled) / 2
	return objects.ChainProperties{
		AccountCreationFee: types.NewAsset(fees[mid], types.Native),
		MaximumBlockSize:   sizes[mid],
		SbdInterestRate:    rates[mid],
	}
}
