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

package orderbook

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fresszonesongs/freezone/core/objects"
	"github.com/fresszonesongs/freezone/core/state"
	"github.com/fresszonesongs/freezone/core/types"
)

func restOrder(book *Book, owner string, id uint32, sell types.Asset, receive types.Asset, expiration int64) objects.LimitOrder {
	return book.Orders.Create(func(o *objects.LimitOrder) {
		o.Owner = owner
		o.OrderID = id
		o.ForSale = sell.Amount
		o.Sell = sell
		o.SellPrice = types.Price{Base: sell, Quote: receive}
		o.Expiration = expiration
	})
}

// Alice sells 1.5 native asking 0.5 dollar per native; Bob sells 0.75
// dollar at the inverse price. Exact cross: Alice nets 0.75 dollar, Bob
// nets 1.5 native, both orders leave the book.
func TestMatchExactCross(t *testing.T) {
	store := state.NewStore(nil)
	book := NewBook(store)

	restOrder(book, "alice", 1,
		types.NewAsset(1500, types.Native),
		types.NewAsset(750, types.Dollar),
		1<<62)

	taker := objects.LimitOrder{
		Owner:   "bob",
		OrderID: 2,
		ForSale: 750,
		Sell:    types.NewAsset(750, types.Dollar),
		SellPrice: types.Price{
			Base:  types.NewAsset(750, types.Dollar),
			Quote: types.NewAsset(1500, types.Native),
		},
	}

	remaining, fills := Match(taker, book)
	require.Len(t, fills, 1)
	require.Zero(t, remaining.ForSale, "taker fully filled")
	require.True(t, fills[0].MakerExhausted)
	require.True(t, fills[0].TakerExhausted)

	// Bob pays 0.75 dollar, receives 1.5 native; Alice the converse.
	require.Equal(t, int64(750), fills[0].TakerPays.Amount)
	require.Equal(t, types.Dollar, fills[0].TakerPays.Symbol)
	require.Equal(t, int64(1500), fills[0].MakerPays.Amount)
	require.Equal(t, types.Native, fills[0].MakerPays.Symbol)

	require.Zero(t, book.Orders.Len(), "maker removed from the book")
}

func TestMatchPartialLeavesRemainder(t *testing.T) {
	store := state.NewStore(nil)
	book := NewBook(store)

	maker := restOrder(book, "alice", 1,
		types.NewAsset(1500, types.Native),
		types.NewAsset(750, types.Dollar),
		1<<62)

	taker := objects.LimitOrder{
		Owner:   "bob",
		OrderID: 2,
		ForSale: 1000,
		Sell:    types.NewAsset(1000, types.Dollar),
		SellPrice: types.Price{
			Base:  types.NewAsset(1000, types.Dollar),
			Quote: types.NewAsset(2000, types.Native),
		},
	}

	remaining, fills := Match(taker, book)
	require.Len(t, fills, 1)
	require.True(t, fills[0].MakerExhausted)
	require.False(t, fills[0].TakerExhausted)
	require.Equal(t, int64(250), remaining.ForSale, "unmatched dollars stay with the taker")

	_, found := book.Orders.Find(maker.ID)
	require.False(t, found)
}

// A maker ground down to a remainder whose receive side rounds to zero
// is cancelled on that match step, not left resting unsellable.
func TestMakerDustCancelledAndRefunded(t *testing.T) {
	store := state.NewStore(nil)
	book := NewBook(store)

	// Alice prices 1000 native per dollar but offers 1500: after a
	// one-dollar fill her 500-native remainder cannot buy a whole unit.
	book.Orders.Create(func(o *objects.LimitOrder) {
		o.Owner = "alice"
		o.OrderID = 1
		o.ForSale = 1500
		o.Sell = types.NewAsset(1500, types.Native)
		o.SellPrice = types.Price{
			Base:  types.NewAsset(1000, types.Native),
			Quote: types.NewAsset(1, types.Dollar),
		}
		o.Expiration = 1 << 62
	})

	taker := objects.LimitOrder{
		Owner:   "bob",
		OrderID: 2,
		ForSale: 1,
		Sell:    types.NewAsset(1, types.Dollar),
		SellPrice: types.Price{
			Base:  types.NewAsset(1, types.Dollar),
			Quote: types.NewAsset(1000, types.Native),
		},
	}

	remaining, fills := Match(taker, book)
	require.Len(t, fills, 1)
	require.Zero(t, remaining.ForSale)
	require.False(t, fills[0].MakerExhausted)
	require.Equal(t, int64(500), fills[0].MakerRefunded.Amount)
	require.Equal(t, types.Native, fills[0].MakerRefunded.Symbol)
	require.Zero(t, book.Orders.Len(), "dust maker removed from the book")
}

func TestNoCrossNoFill(t *testing.T) {
	store := state.NewStore(nil)
	book := NewBook(store)

	// Maker demands 1 dollar per native; taker only offers 0.25.
	restOrder(book, "alice", 1,
		types.NewAsset(1000, types.Native),
		types.NewAsset(1000, types.Dollar),
		1<<62)

	taker := objects.LimitOrder{
		Owner:   "bob",
		OrderID: 2,
		ForSale: 500,
		Sell:    types.NewAsset(500, types.Dollar),
		SellPrice: types.Price{
			Base:  types.NewAsset(500, types.Dollar),
			Quote: types.NewAsset(2000, types.Native),
		},
	}

	remaining, fills := Match(taker, book)
	require.Empty(t, fills)
	require.Equal(t, int64(500), remaining.ForSale)
	require.Equal(t, 1, book.Orders.Len())
}

func TestExpireOrdersRefunds(t *testing.T) {
	store := state.NewStore(nil)
	book := NewBook(store)

	restOrder(book, "alice", 1,
		types.NewAsset(100, types.Native),
		types.NewAsset(50, types.Dollar),
		1000)
	restOrder(book, "bob", 2,
		types.NewAsset(200, types.Native),
		types.NewAsset(100, types.Dollar),
		3000)

	var refunded []string
	ExpireOrders(book, 2000, func(o objects.LimitOrder) {
		refunded = append(refunded, o.Owner)
	})

	require.Equal(t, []string{"alice"}, refunded)
	require.Equal(t, 1, book.Orders.Len())
}
