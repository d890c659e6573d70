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

package consensus

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMissedSlots(t *testing.T) {
	head := int64(1_000_000)
	require.Equal(t, int64(0), MissedSlots(head, head+BlockIntervalSeconds))
	require.Equal(t, int64(1), MissedSlots(head, head+2*BlockIntervalSeconds))
	require.Equal(t, int64(9), MissedSlots(head, head+10*BlockIntervalSeconds))
	require.Equal(t, int64(0), MissedSlots(head, head), "non-advancing time misses nothing")
}

func TestUpdateRecentSlotsFilledSetsLSB(t *testing.T) {
	bitmap := UpdateRecentSlotsFilled([2]uint64{0, 0}, 0)
	require.Equal(t, uint64(1), bitmap[1])

	// One missed slot: previous fill shifts up two, LSB set.
	bitmap = UpdateRecentSlotsFilled(bitmap, 1)
	require.Equal(t, uint64(0b101), bitmap[1])
}

func TestUpdateRecentSlotsFilledCarriesAcrossWords(t *testing.T) {
	bitmap := [2]uint64{0, 1 << 63}
	out := UpdateRecentSlotsFilled(bitmap, 0)
	require.Equal(t, uint64(1), out[0], "high bit of the low word carries into the high word")
	require.Equal(t, uint64(1), out[1])
}

func TestParticipationPercent(t *testing.T) {
	require.Equal(t, uint8(100), ParticipationPercent([2]uint64{^uint64(0), ^uint64(0)}))
	require.Equal(t, uint8(0), ParticipationPercent([2]uint64{0, 0}))
	require.Equal(t, uint8(50), ParticipationPercent([2]uint64{^uint64(0), 0}))
}

func TestShuffleIsDeterministic(t *testing.T) {
	names := []string{"a", "b", "c", "d", "e"}
	var id [32]byte
	id[7] = 42

	first := ShuffleWitnesses(names, NewShuffleSeed(id))
	second := ShuffleWitnesses(names, NewShuffleSeed(id))
	require.Equal(t, first, second, "same seed, same order")
	require.ElementsMatch(t, names, first)
	require.Equal(t, []string{"a", "b", "c", "d", "e"}, names, "input untouched")
}

func TestSupermajorityGating(t *testing.T) {
	table := Table{Hardforks: []Hardfork{
		{Index: 0, Version: [3]uint16{0, 1, 0}, ActivationTime: 100},
		{Index: 1, Version: [3]uint16{0, 2, 0}, ActivationTime: 200},
	}}

	// Pre-gating fork: wall clock alone.
	require.False(t, table.EligibleToActivate(table.Hardforks[0], 99, nil))
	require.True(t, table.EligibleToActivate(table.Hardforks[0], 100, nil))

	// Gated fork: wall clock is necessary but not sufficient.
	require.False(t, table.EligibleToActivate(table.Hardforks[1], 300, nil))

	votes := make([]WitnessVersionVote, 0, 21)
	for i := 0; i < 21; i++ {
		v := WitnessVersionVote{HardforkVersionVote: 1, HardforkTimeVote: 200}
		if i >= 17 {
			v.HardforkVersionVote = 0 // dissenters
		}
		votes = append(votes, v)
	}
	// 13 of the tallied last-17 approve: above the 2/3+1 = 12 threshold.
	require.True(t, table.EligibleToActivate(table.Hardforks[1], 300, votes))

	for i := range votes {
		votes[i].HardforkVersionVote = 0
	}
	require.False(t, table.EligibleToActivate(table.Hardforks[1], 300, votes))
}

func TestNextEligibleWalksInOrder(t *testing.T) {
	table := Table{Hardforks: []Hardfork{
		{Index: 0, ActivationTime: 100},
		{Index: 0x7fffffff, ActivationTime: 1 << 60},
	}}
	hf, ok := table.NextEligible(0, 150, nil)
	require.True(t, ok)
	require.Equal(t, uint32(0), hf.Index)

	_, ok = table.NextEligible(1, 150, nil)
	require.False(t, ok, "second fork's time has not come")

	_, ok = table.NextEligible(2, 1<<61, nil)
	require.False(t, ok, "table exhausted")
}
