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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fresszonesongs/freezone/core/state"
	"github.com/fresszonesongs/freezone/core/types"
)

const testNai = types.NAI(0x400001)

const (
	tBegin  = int64(1000)
	tEnd    = int64(2000)
	tLaunch = int64(3000)
)

func setupIcoEngine(t *testing.T, satoshiMin int64) *Engine {
	t.Helper()
	store := state.NewStore(nil)
	e := NewEngine(store)
	token := e.CreateToken("creator", testNai)
	tiers := []IcoTier{{
		SteemSatoshiCap: 10_000,
		GenerationUnit: GenerationUnit{
			SteemUnit: map[string]uint16{UnitTargetMarketMaker: 1},
			TokenUnit: map[string]uint16{UnitTargetFrom: 1},
		},
	}}
	e.Setup(token, tBegin, tEnd, tLaunch, satoshiMin, 1, 1, tiers)
	_, ok := e.LaunchIco(testNai)
	require.True(t, ok)
	return e
}

func TestIcoSuccessPath(t *testing.T) {
	e := setupIcoEngine(t, 1000)

	_, err := e.Contribute(testNai, "a", 0, 600)
	require.NoError(t, err)
	_, err = e.Contribute(testNai, "b", 1, 500)
	require.NoError(t, err)

	_, success, err := e.EvaluateIco(testNai)
	require.NoError(t, err)
	require.True(t, success, "1100 >= 1000 clears the minimum")

	_, err = e.LaunchToken(testNai)
	require.NoError(t, err)

	var nativeRouted int64
	e.CreditNative = func(account string, amount int64) { nativeRouted += amount }

	// Payouts drain one contribution at a time, in contribution order.
	var minted int64
	var order []string
	for {
		c, ok := e.NextContributorPayout(testNai)
		if !ok {
			break
		}
		order = append(order, c.Contributor)
		m, err := e.ApplyContributorPayout(testNai, c)
		require.NoError(t, err)
		minted += m
	}
	require.Equal(t, []string{"a", "b"}, order)
	require.Equal(t, int64(1100), minted, "1:1 generation unit at ratio 1")

	a, ok := e.FindRegularBalance("a", testNai)
	require.True(t, ok)
	require.Equal(t, int64(600), a.Liquid)
	b, ok := e.FindRegularBalance("b", testNai)
	require.True(t, ok)
	require.Equal(t, int64(500), b.Liquid)

	token, _ := e.findToken(testNai)
	require.Equal(t, PhaseLaunchSuccess, token.Phase)
	require.Equal(t, int64(1100), token.MarketMaker.SteemBalance.Amount)
	require.Zero(t, nativeRouted, "all native routed to the market maker")
	require.Zero(t, e.Contributions.Len(), "contribution rows consumed")

	_, err = e.InstallBallast(testNai)
	require.NoError(t, err)
	token, _ = e.findToken(testNai)
	expectedBallast := int64(1100) * BallastSupplyPercentBasisPoints / 10000
	require.Equal(t, expectedBallast, token.BallastFund)
	require.Equal(t, expectedBallast*InitialVestingPerUnit, token.BallastShares)
}

func TestIcoExactMinimumSucceedsOneBelowFails(t *testing.T) {
	exact := setupIcoEngine(t, 1000)
	_, err := exact.Contribute(testNai, "a", 0, 1000)
	require.NoError(t, err)
	_, success, err := exact.EvaluateIco(testNai)
	require.NoError(t, err)
	require.True(t, success)

	below := setupIcoEngine(t, 1000)
	_, err = below.Contribute(testNai, "a", 0, 999)
	require.NoError(t, err)
	_, success, err = below.EvaluateIco(testNai)
	require.NoError(t, err)
	require.False(t, success)
}

func TestIcoFailureRefundChain(t *testing.T) {
	e := setupIcoEngine(t, 1000)
	_, err := e.Contribute(testNai, "a", 0, 400)
	require.NoError(t, err)
	_, err = e.Contribute(testNai, "b", 1, 500)
	require.NoError(t, err)

	_, success, err := e.EvaluateIco(testNai)
	require.NoError(t, err)
	require.False(t, success, "900 < 1000")
	token, _ := e.findToken(testNai)
	require.Equal(t, PhaseLaunchFailed, token.Phase)

	// Refunds drain in contribution order.
	var refunded []string
	for {
		c, ok := e.NextRefund(testNai)
		if !ok {
			break
		}
		refunded = append(refunded, c.Contributor)
		e.ApplyRefund(c)
	}
	require.Equal(t, []string{"a", "b"}, refunded)

	e.TeardownIco(testNai)
	require.Zero(t, e.Icos.Len())
	require.Zero(t, e.Tiers.Len())
}

func TestContributionHardCap(t *testing.T) {
	e := setupIcoEngine(t, 1000)
	_, err := e.Contribute(testNai, "whale", 0, 10_000)
	require.NoError(t, err)
	_, err = e.Contribute(testNai, "late", 1, 1)
	require.ErrorIs(t, err, errHardCapExceeded)
}

func TestPayoutSpansTiers(t *testing.T) {
	store := state.NewStore(nil)
	e := NewEngine(store)
	token := e.CreateToken("creator", testNai)
	// Tier 1: [0, 1000) pays 1 token per satoshi; tier 2: [1000, 3000)
	// pays 2 per satoshi (weight 2).
	tiers := []IcoTier{
		{
			SteemSatoshiCap: 1000,
			GenerationUnit: GenerationUnit{
				SteemUnit: map[string]uint16{UnitTargetMarketMaker: 1},
				TokenUnit: map[string]uint16{UnitTargetFrom: 1},
			},
		},
		{
			SteemSatoshiCap: 3000,
			GenerationUnit: GenerationUnit{
				SteemUnit: map[string]uint16{UnitTargetMarketMaker: 1},
				TokenUnit: map[string]uint16{UnitTargetFrom: 2},
			},
		},
	}
	e.Setup(token, tBegin, tEnd, tLaunch, 0, 1, 1, tiers)

	c := Contribution{SymbolNai: testNai, Contributor: "a", Amount: 2000}
	payout := e.PayoutContribution(testNai, c, 500)

	// [500,1000) hits tier 1 -> 500 tokens; [1000,2500) hits tier 2 ->
	// 1500 units x weight 2 = 3000 tokens.
	require.Equal(t, int64(500+3000), payout.TokenPayouts[UnitTargetFrom])
	require.Equal(t, int64(2000), payout.SteemPayouts[UnitTargetMarketMaker])
}

func TestEmissionScheduleNextFire(t *testing.T) {
	sched := EmissionSchedule{
		ScheduleTime:    1000,
		IntervalSeconds: 100,
		EmissionCount:   3,
	}

	fire, ok := nextFire(sched, 0, 1000)
	require.True(t, ok)
	require.Equal(t, int64(1000), fire)

	fire, ok = nextFire(sched, 1000, 1500)
	require.True(t, ok)
	require.Equal(t, int64(1100), fire)

	// Third and last emission at 1200; afterwards the schedule is spent.
	_, ok = nextFire(sched, 1200, 5000)
	require.False(t, ok)

	sched.EmissionCount = EmitIndefinitely
	fire, ok = nextFire(sched, 1200, 5000)
	require.True(t, ok)
	require.Equal(t, int64(1300), fire)
}

func TestEmissionAmountInterpolation(t *testing.T) {
	flat := EmissionSchedule{LepTime: 100, RepTime: 100, LepAbs: 50, LepRel: 100}
	// 50 absolute + 1% of 10000 supply.
	require.Equal(t, int64(150), EmissionAmount(flat, 100, 10_000))

	ramp := EmissionSchedule{
		LepTime: 0, RepTime: 100,
		LepAbs: 0, RepAbs: 100,
	}
	require.Equal(t, int64(0), EmissionAmount(ramp, 0, 0))
	require.Equal(t, int64(50), EmissionAmount(ramp, 50, 0))
	require.Equal(t, int64(100), EmissionAmount(ramp, 100, 0))
	require.Equal(t, int64(100), EmissionAmount(ramp, 500, 0), "clamped past the right endpoint")
}

func TestProcessEmissionRoutesAndAdvances(t *testing.T) {
	store := state.NewStore(nil)
	e := NewEngine(store)
	token := e.CreateToken("creator", testNai)
	e.Tokens.Modify(token, func(tk *Token) {
		tk.Phase = PhaseLaunchSuccess
		tk.CurrentSupply = 1000
	})
	e.Emissions.Create(func(s *EmissionSchedule) {
		s.SymbolNai = testNai
		s.ScheduleTime = 500
		s.IntervalSeconds = 100
		s.EmissionCount = EmitIndefinitely
		s.LepTime = 500
		s.RepTime = 500
		s.LepAbs = 90
		s.Emit = GenerationUnit{TokenUnit: map[string]uint16{
			UnitTargetRewards: 1,
			"holder":          2,
		}}
	})

	emitted, err := e.ProcessEmission(testNai, 500)
	require.NoError(t, err)
	require.Equal(t, int64(90), emitted)

	tk, _ := e.findToken(testNai)
	require.Equal(t, int64(1090), tk.CurrentSupply)
	require.Equal(t, int64(30), tk.RewardBalance)
	require.Equal(t, int64(500), tk.LastVirtualEmissionTime)

	holder, ok := e.FindRegularBalance("holder", testNai)
	require.True(t, ok)
	require.Equal(t, int64(60), holder.Liquid)

	// Same instant again: nothing further is due.
	_, err = e.ProcessEmission(testNai, 500)
	require.ErrorIs(t, err, errNoEmissionDue)
}

func TestCreditVestingUsesBallastPrice(t *testing.T) {
	store := state.NewStore(nil)
	e := NewEngine(store)
	token := e.CreateToken("creator", testNai)
	e.Tokens.Modify(token, func(tk *Token) {
		tk.Phase = PhaseLaunchSuccess
		tk.BallastFund = 10
		tk.BallastShares = 10_000
	})

	shares := e.CreditVesting("a", testNai, 5)
	require.Equal(t, int64(5*10_000/10), shares, "ballast sets the share price")

	tk, _ := e.findToken(testNai)
	require.Equal(t, int64(5), tk.VestingFund)
	require.Equal(t, shares, tk.VestingShares)
}

func TestPhaseOnlyAdvances(t *testing.T) {
	e := setupIcoEngine(t, 0)
	// ico -> setup-side admin transitions must be rejected.
	_, ok := e.LaunchIco(testNai)
	require.False(t, ok, "token already past setup_completed")

	_, _, err := e.EvaluateIco(testNai)
	require.NoError(t, err)

	_, _, err = e.EvaluateIco(testNai)
	require.ErrorIs(t, err, errWrongPhase, "evaluation cannot run twice")
}
