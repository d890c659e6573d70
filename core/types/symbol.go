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

// Package types holds the value types shared across the chain engine:
// asset symbols, prices, authorities and the closed operation/action
// unions. These have no dependency on the object store or evaluators.
package types

import "fmt"

// NAI is the numerical asset identifier that uniquely names a token,
// native or user-defined (SST). The vesting variant of a token shares
// its NAI and is flagged by Symbol.Vesting.
type NAI uint32

const (
	// NativeNAI identifies the chain's native token.
	NativeNAI NAI = 0x3f1000
	// NativeVestingNAI is NativeNAI with bit 0 set. The NativeVesting
	// symbol does not use it: it is NativeNAI with Vesting set.
	NativeVestingNAI NAI = 0x3f1001
	// DollarNAI identifies the dollar-pegged token.
	DollarNAI NAI = 0x3f2000
)

// Symbol names a fungible asset: its NAI, decimal precision and whether
// it denotes the vesting variant of that NAI.
type Symbol struct {
	Nai       NAI
	Precision uint8
	Vesting   bool
}

func (s Symbol) String() string {
	suffix := ""
	if s.Vesting {
		suffix = ".vesting"
	}
	return fmt.Sprintf("@%06x%s", uint32(s.Nai), suffix)
}

// IsSST reports whether the symbol names a user-defined token rather than
// one of the two built-in assets.
func (s Symbol) IsSST() bool {
	return s.Nai != NativeNAI && s.Nai != DollarNAI
}

func (s Symbol) Equal(o Symbol) bool {
	return s.Nai == o.Nai && s.Precision == o.Precision && s.Vesting == o.Vesting
}

// LiquidVariant returns the non-vesting symbol for the same NAI.
func (s Symbol) LiquidVariant() Symbol {
	s.Vesting = false
	return s
}

// VestingVariant returns the vesting symbol for the same NAI.
func (s Symbol) VestingVariant() Symbol {
	s.Vesting = true
	return s
}

var (
	Native        = Symbol{Nai: NativeNAI, Precision: 3}
	NativeVesting = Symbol{Nai: NativeNAI, Precision: 6, Vesting: true}
	Dollar        = Symbol{Nai: DollarNAI, Precision: 3}
)

// IsTickPricing reports whether prices quoted against sym must have a
// denominator that is a power of 10; SBD and SST markets restrict price
// denominators this way.
func IsTickPricing(base, quote Symbol) bool {
	return base.Equal(Dollar) || quote.Equal(Dollar) || base.IsSST() || quote.IsSST()
}
