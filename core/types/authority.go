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

// PublicKey is an opaque, comparable public key. Real key material and
// signature verification live with the wallet and key-management layer;
// the engine only needs equality and a verify hook.
type PublicKey [33]byte

// AccountAuthAuthority weights either a key or another account in an
// authority's set of approvers.
type AccountAuthAuthority struct {
	Account string
	Weight  uint16
}

type KeyAuthority struct {
	Key    PublicKey
	Weight uint16
}

// Authority is a weighted threshold set of keys and/or accounts; an
// account carries one each for owner, active and posting.
type Authority struct {
	WeightThreshold uint32
	AccountAuths    []AccountAuthAuthority
	KeyAuths        []KeyAuthority
}

// IsImpossible reports an authority that can never be satisfied: the sum
// of all weights is below the threshold.
func (a Authority) IsImpossible() bool {
	var total uint32
	for _, aa := range a.AccountAuths {
		total += uint32(aa.Weight)
	}
	for _, ka := range a.KeyAuths {
		total += uint32(ka.Weight)
	}
	return total < a.WeightThreshold
}

// AuthorityLevel names which of an account's three authorities is
// required by an operation.
type AuthorityLevel int

const (
	PostingAuthority AuthorityLevel = iota
	ActiveAuthority
	OwnerAuthority
)

func (l AuthorityLevel) String() string {
	switch l {
	case PostingAuthority:
		return "posting"
	case ActiveAuthority:
		return "active"
	case OwnerAuthority:
		return "owner"
	default:
		return "unknown"
	}
}
