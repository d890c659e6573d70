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

// Package orderbook implements limit order matching: orders are
// kept sorted by price and by expiration in core/state secondary
// indexes, and apply_order walks the opposing side from best price until
// the new order is exhausted or no more overlap exists.
package orderbook

import (
	"math/big"

	"github.com/fresszonesongs/freezone/core/objects"
	"github.com/fresszonesongs/freezone/core/state"
	"github.com/fresszonesongs/freezone/core/types"
)

// Book wraps the order table and its two secondary orderings for one
// market side-agnostic pool. The engine keeps a single Book for the
// native/dollar market; no per-SST Book is created.
type Book struct {
	Orders       *state.Table[objects.LimitOrder]
	ByPrice      *state.GBTreeIndex[objects.LimitOrder]
	ByExpiration *state.GBTreeIndex[objects.LimitOrder]
}

func NewBook(store *state.Store) *Book {
	orders := state.NewTable[objects.LimitOrder](store, "limit_order")
	byPrice := state.NewGBTreeIndex[objects.LimitOrder]("by_price", func(a, b objects.LimitOrder) bool {
		pa := priceRatio(a.SellPrice)
		pb := priceRatio(b.SellPrice)
		if pa != pb {
			return pa < pb
		}
		return a.ID < b.ID
	})
	byExpiration := state.NewGBTreeIndex[objects.LimitOrder]("by_expiration", func(a, b objects.LimitOrder) bool {
		if a.Expiration != b.Expiration {
			return a.Expiration < b.Expiration
		}
		return a.ID < b.ID
	})
	orders.AddIndex(byPrice)
	orders.AddIndex(byExpiration)
	return &Book{Orders: orders, ByPrice: byPrice, ByExpiration: byExpiration}
}

// priceRatio reduces a Price to a comparable float64 for ordering
// purposes only; the actual fill math always uses the exact integer
// Price, never this approximation.
func priceRatio(p types.Price) float64 {
	if p.Base.Amount == 0 {
		return 0
	}
	return float64(p.Quote.Amount) / float64(p.Base.Amount)
}

// Fill is one match outcome, used by the caller to emit a FillOrderOp and
// adjust both parties' balances. MakerRefunded is non-zero when the
// maker's post-fill remainder rounded to a zero receive and was
// cancelled; the caller returns it to the maker.
type Fill struct {
	TakerOrder     objects.LimitOrder
	MakerOrder     objects.LimitOrder
	TakerPays      types.Asset
	MakerPays      types.Asset
	TakerExhausted bool
	MakerExhausted bool
	MakerRefunded  types.Asset
}

// Match attempts to fill newOrder against opposing resting orders in
// opposingBook, best price first, until newOrder is exhausted or the best
// opposing price no longer crosses. It mutates the opposing book's table
// via Modify/Remove (newOrder is not stored) and returns the list of
// fills for virtual-op emission.
func Match(newOrder objects.LimitOrder, opposing *Book) (remaining objects.LimitOrder, fills []Fill) {
	remaining = newOrder

	var candidates []objects.LimitOrder
	opposing.ByPrice.AscendRange(objects.LimitOrder{}, func(o objects.LimitOrder) bool {
		candidates = append(candidates, o)
		return true
	})

	for _, maker := range candidates {
		if remaining.ForSale <= 0 {
			break
		}
		// Only opposing-side orders: the maker must be selling what the
		// taker wants to receive (the book holds both sides of a market).
		if !maker.Sell.Symbol.Equal(remaining.SellPrice.Quote.Symbol) {
			continue
		}
		// Crossing condition: the maker's offered rate must meet the
		// taker's demanded rate.
		if !crosses(remaining.SellPrice, maker.SellPrice) {
			continue
		}

		takerAsk := remaining.AmountForSale()
		makerAsk := maker.AmountForSale()

		takerReceives := maker.SellPrice.Mul(takerAsk)
		makerReceives := remaining.SellPrice.Mul(makerAsk)

		var takerPays, makerPays types.Asset
		takerExhausted, makerExhausted := false, false

		if takerReceives.Amount <= makerAsk.Amount {
			takerPays = takerAsk
			makerPays = takerReceives
			takerExhausted = true
			if takerReceives.Amount == makerAsk.Amount {
				makerExhausted = true
			}
		} else {
			takerPays = makerReceives
			makerPays = makerAsk
			makerExhausted = true
		}

		fills = append(fills, Fill{
			TakerOrder: remaining, MakerOrder: maker,
			TakerPays: takerPays, MakerPays: makerPays,
			TakerExhausted: takerExhausted, MakerExhausted: makerExhausted,
		})

		remaining.ForSale -= takerPays.Amount
		if makerExhausted {
			opposing.Orders.Remove(maker)
		} else {
			updated := opposing.Orders.Modify(maker, func(o *objects.LimitOrder) {
				o.ForSale -= makerPays.Amount
			})
			// The zero-receive dust rule applies to both sides: a maker
			// remainder that can no longer buy a whole unit is cancelled
			// and refunded rather than left resting unsellable.
			if updated.AmountToReceive().Amount == 0 {
				opposing.Orders.Remove(updated)
				fills[len(fills)-1].MakerRefunded = updated.AmountForSale()
			}
		}
		if takerExhausted {
			break
		}
	}
	return remaining, fills
}

// crosses reports whether a resting order at makerPrice would trade with
// a taker at takerPrice. The taker sells takerPrice.Base demanding
// takerPrice.Quote; the maker offers makerPrice.Base per makerPrice.Quote
// of the same pair seen from the other side. They cross when
// maker.base/maker.quote >= taker.quote/taker.base, cross-multiplied to
// stay in integers.
func crosses(takerPrice, makerPrice types.Price) bool {
	lhs := new(big.Int).Mul(big.NewInt(makerPrice.Base.Amount), big.NewInt(takerPrice.Base.Amount))
	rhs := new(big.Int).Mul(big.NewInt(makerPrice.Quote.Amount), big.NewInt(takerPrice.Quote.Amount))
	return lhs.Cmp(rhs) >= 0
}

// ExpireOrders cancels every order whose expiration has passed, invoking
// refund for each so the caller can credit the seller's for-sale balance
// back and emit whatever bookkeeping virtual op it needs.
func ExpireOrders(book *Book, headTime int64, refund func(objects.LimitOrder)) {
	var expired []objects.LimitOrder
	book.ByExpiration.AscendRange(objects.LimitOrder{}, func(o objects.LimitOrder) bool {
		if o.Expiration >= headTime {
			return false
		}
		expired = append(expired, o)
		return true
	})
	for _, o := range expired {
		refund(o)
		book.Orders.Remove(o)
	}
}
