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

	"github.com/fresszonesongs/freezone/core/objects"
	"github.com/fresszonesongs/freezone/core/types"
)

// FeedHistoryWindow is freezone_FEED_HISTORY_WINDOW: the number of published
// feeds averaged into the current median price.
const FeedHistoryWindow = 7 * 24 // one per hour, a week of history

// DollarSupplyCapPercent is freezone_SBD_STOP_PERCENT's companion market-cap
// rule: the median feed may not imply the dollar supply exceeds this
// share of the total market cap; the price is clamped upward instead.
const DollarSupplyCapPercent = 1000 // basis points = 10%

// updateMedianFeed recomputes the published-price median from the feed
// history ring, applies the dollar-cap clamp, and re-derives the
// continuous sbd_print_rate by linear interpolation between the start
// and stop thresholds. Witnesses append their own feed to PriceHistory
// outside this package (feed-publish path of witness_update).
func (s *State) updateMedianFeed() {
	fh, ok := s.FeedHistory.Find(0)
	if !ok || len(fh.PriceHistory) == 0 {
		return
	}

	history := fh.PriceHistory
	if len(history) > FeedHistoryWindow {
		history = history[len(history)-FeedHistoryWindow:]
	}
	sorted := append([]types.Price{}, history...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Quote.Amount*sorted[j].Base.Amount < sorted[j].Quote.Amount*sorted[i].Base.Amount
	})
	median := sorted[len(sorted)/2]

	g := s.globals()
	median = clampFeedToDollarCap(median, g)

	s.FeedHistory.Modify(fh, func(f *objects.FeedHistory) {
		f.CurrentMedianHistory = median
	})
	s.updateSbdPrintRate(median)
}

// clampFeedToDollarCap enforces the market-cap rule: if at the
// median price the dollar supply would exceed DollarSupplyCapPercent of
// total market cap, raise the implied native price (the clamp raises
// dollars-per-native by scaling the dollar quote up) until the cap
// holds. A null feed passes through untouched.
func clampFeedToDollarCap(median types.Price, g objects.DynamicGlobalProperties) types.Price {
	if median.IsNull() || g.DollarSupply.Amount <= 0 || g.CurrentSupply.Amount <= 0 {
		return median
	}
	// Express the feed so Base is native, Quote is dollars.
	if !median.Base.Symbol.Equal(types.Native) {
		median = median.Invert()
	}
	// dollar supply in native terms at this feed.
	dollarInNative := median.Invert().Mul(g.DollarSupply)
	capNative := g.CurrentSupply.Amount * DollarSupplyCapPercent / 10000
	if dollarInNative.Amount <= capNative || capNative <= 0 {
		return median
	}
	// Minimum dollars-per-native that keeps the cap: scale the quote up.
	scaled := median.Quote.Amount * dollarInNative.Amount / capNative
	if scaled <= median.Quote.Amount {
		scaled = median.Quote.Amount + 1
	}
	return types.Price{
		Base:  median.Base,
		Quote: types.NewAsset(scaled, median.Quote.Symbol),
	}
}

// updateSbdPrintRate linearly interpolates the print rate between 100%
// (debt ratio at or below sbd_start_percent) and 0% (at or above
// sbd_stop_percent).
func (s *State) updateSbdPrintRate(median types.Price) {
	g := s.globals()
	if median.IsNull() || g.VirtualSupply.Amount <= 0 {
		return
	}
	if !median.Base.Symbol.Equal(types.Native) {
		median = median.Invert()
	}
	dollarInNative := median.Invert().Mul(g.DollarSupply)
	ratio := dollarInNative.Amount * 10000 / g.VirtualSupply.Amount // basis points

	var printRate uint16
	switch {
	case ratio <= int64(g.SbdStartPercent):
		printRate = 10000
	case ratio >= int64(g.SbdStopPercent):
		printRate = 0
	default:
		span := int64(g.SbdStopPercent) - int64(g.SbdStartPercent)
		printRate = uint16((int64(g.SbdStopPercent) - ratio) * 10000 / span)
	}
	if printRate == g.SbdPrintRate {
		return
	}
	s.Globals.Modify(g, func(p *objects.DynamicGlobalProperties) {
		p.SbdPrintRate = printRate
	})
}
