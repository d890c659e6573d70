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

package chain

import (
	"github.com/fresszonesongs/freezone/core/objects"
	"github.com/fresszonesongs/freezone/core/orderbook"
	"github.com/fresszonesongs/freezone/core/types"
)

// LiquidityRewardMinAgeSeconds: fills of orders younger than this accrue
// no liquidity-reward volume.
const LiquidityRewardMinAgeSeconds = 60

// CreateOrder debits the seller, attempts an immediate match against
// the opposing side, and leaves any remainder resting unless
// fill-or-kill. Fill proceeds credit both parties and emit fill_order
// ops.
func (w *World) CreateOrder(owner string, orderID uint32, toSell, minReceive types.Asset, fillOrKill bool, expiration int64) error {
	if err := w.AdjustBalance(owner, toSell.Negate()); err != nil {
		return err
	}
	newOrder := objects.LimitOrder{
		Owner:      owner,
		OrderID:    orderID,
		ForSale:    toSell.Amount,
		Sell:       toSell,
		SellPrice:  types.Price{Base: toSell, Quote: minReceive},
		Created:    w.Now(),
		Expiration: expiration,
	}

	remaining, fills := orderbook.Match(newOrder, w.Market)
	for _, f := range fills {
		// The taker's pays were already escrowed above; the maker's when
		// their order was created. Credit each side's receives.
		if err := w.AdjustBalance(f.MakerOrder.Owner, f.TakerPays); err != nil {
			return err
		}
		if err := w.AdjustBalance(owner, f.MakerPays); err != nil {
			return err
		}
		if f.MakerRefunded.Amount > 0 {
			// Maker dust cancelled inside the match; return the escrow.
			if err := w.AdjustBalance(f.MakerOrder.Owner, f.MakerRefunded); err != nil {
				return err
			}
		}
		w.accrueLiquidityVolume(f.MakerOrder, f.TakerPays)
		w.Emit(types.FillOrderOp{
			CurrentOwner:   owner,
			CurrentOrderID: orderID,
			CurrentPays:    f.TakerPays,
			OpenOwner:      f.MakerOrder.Owner,
			OpenOrderID:    f.MakerOrder.OrderID,
			OpenPays:       f.MakerPays,
		})
	}

	if remaining.ForSale > 0 {
		// A remainder whose receive side rounds to zero is refunded
		// rather than left resting unsellable.
		receives := remaining.SellPrice.Mul(types.NewAsset(remaining.ForSale, toSell.Symbol))
		if fillOrKill || receives.Amount == 0 {
			if err := w.AdjustBalance(owner, types.NewAsset(remaining.ForSale, toSell.Symbol)); err != nil {
				return err
			}
			if fillOrKill {
				return ErrFillOrKillUnfilled
			}
			return nil
		}
		w.Market.Orders.Create(func(o *objects.LimitOrder) {
			*o = remaining
		})
	}
	return nil
}

// CancelOrder refunds the unsold remainder and removes the order.
func (w *World) CancelOrder(owner string, orderID uint32) error {
	var found *objects.LimitOrder
	w.Market.Orders.Range(func(o objects.LimitOrder) bool {
		if o.Owner == owner && o.OrderID == orderID {
			found = &o
			return false
		}
		return true
	})
	if found == nil {
		return ErrNotFoundAccount(owner) // unknown-entity kind; context names the owner
	}
	if err := w.AdjustBalance(owner, found.AmountForSale()); err != nil {
		return err
	}
	w.Market.Orders.Remove(*found)
	return nil
}

// accrueLiquidityVolume records the maker-side fill volume toward the
// periodic liquidity reward, native/dollar market only.
func (w *World) accrueLiquidityVolume(maker objects.LimitOrder, received types.Asset) {
	if w.Now()-maker.Created < LiquidityRewardMinAgeSeconds {
		return
	}
	if received.Symbol.IsSST() || maker.Sell.Symbol.IsSST() {
		return
	}
	var row *objects.LiquidityRewardBalance
	w.LiquidityRewards.Range(func(l objects.LiquidityRewardBalance) bool {
		if l.Owner == maker.Owner {
			row = &l
			return false
		}
		return true
	})
	apply := func(l *objects.LiquidityRewardBalance) {
		if received.Symbol.Equal(types.Dollar) {
			l.SbdVolume += received.Amount
		} else {
			l.SteemVolume += received.Amount
		}
		l.WeightUpdateTime = w.Now()
	}
	if row != nil {
		w.LiquidityRewards.Modify(*row, apply)
		return
	}
	w.LiquidityRewards.Create(func(l *objects.LiquidityRewardBalance) {
		l.Owner = maker.Owner
		apply(l)
	})
}
