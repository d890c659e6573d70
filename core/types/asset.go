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

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
)

// Asset is a signed, fixed-point quantity of a Symbol. Amount is in the
// symbol's smallest unit (its Precision decimal places).
type Asset struct {
	Amount int64
	Symbol Symbol
}

func NewAsset(amount int64, sym Symbol) Asset { return Asset{Amount: amount, Symbol: sym} }

func (a Asset) IsZero() bool { return a.Amount == 0 }

func (a Asset) Negative() bool { return a.Amount < 0 }

func (a Asset) String() string {
	return fmt.Sprintf("%d %s", a.Amount, a.Symbol)
}

func (a Asset) mustSameSymbol(b Asset) {
	if !a.Symbol.Equal(b.Symbol) {
		panic(fmt.Sprintf("asset symbol mismatch: %s vs %s", a.Symbol, b.Symbol))
	}
}

func (a Asset) Add(b Asset) Asset {
	a.mustSameSymbol(b)
	return Asset{Amount: a.Amount + b.Amount, Symbol: a.Symbol}
}

func (a Asset) Sub(b Asset) Asset {
	a.mustSameSymbol(b)
	return Asset{Amount: a.Amount - b.Amount, Symbol: a.Symbol}
}

func (a Asset) Negate() Asset {
	return Asset{Amount: -a.Amount, Symbol: a.Symbol}
}

func (a Asset) LessThan(b Asset) bool {
	a.mustSameSymbol(b)
	return a.Amount < b.Amount
}

// MulRatio computes a * num / den using 128-bit intermediate precision so
// large balances times large ratios do not overflow int64.
func (a Asset) MulRatio(num, den uint64) Asset {
	prod := new(big.Int).Mul(big.NewInt(a.Amount), new(big.Int).SetUint64(num))
	prod.Div(prod, new(big.Int).SetUint64(den))
	return Asset{Amount: prod.Int64(), Symbol: a.Symbol}
}

// Price is a ratio of two assets of different symbols: base/quote.
type Price struct {
	Base  Asset
	Quote Asset
}

// IsNull reports an uninitialized (zero-quote) price, used as the "no feed
// published yet" sentinel for the median price.
func (p Price) IsNull() bool { return p.Quote.Amount == 0 }

// Mul converts an amount of p.Base's symbol into p.Quote's symbol.
func (p Price) Mul(a Asset) Asset {
	if !a.Symbol.Equal(p.Base.Symbol) {
		if a.Symbol.Equal(p.Quote.Symbol) {
			return p.Invert().Mul(a)
		}
		panic("price: asset symbol does not match either side")
	}
	num := new(big.Int).Mul(big.NewInt(a.Amount), big.NewInt(p.Quote.Amount))
	num.Div(num, big.NewInt(p.Base.Amount))
	return Asset{Amount: num.Int64(), Symbol: p.Quote.Symbol}
}

func (p Price) Invert() Price {
	return Price{Base: p.Quote, Quote: p.Base}
}

// IsPowerOfTenDenominator reports whether quote.Amount is a power of
// 10, the tick-pricing boundary rule.
func (p Price) IsPowerOfTenDenominator() bool {
	n := p.Quote.Amount
	if n <= 0 {
		return false
	}
	for n%10 == 0 {
		n /= 10
	}
	return n == 1
}

// Uint256FromInt64 widens a possibly-negative int64 magnitude into a
// uint256, panicking on negative input. Used for the unsigned 128-bit
// accumulators (recent_claims, total_claims).
func Uint256FromInt64(v int64) *uint256.Int {
	if v < 0 {
		panic("Uint256FromInt64: negative input")
	}
	return uint256.NewInt(uint64(v))
}
