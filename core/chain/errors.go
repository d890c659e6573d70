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

import "github.com/pkg/errors"

// The error kinds surfaced by this package. Transaction-level
// failures roll back the transaction's nested session; block-level
// failures roll back the whole block session.
var (
	ErrInsufficientFunds    = errors.New("chain: insufficient funds")
	ErrInsufficientFee      = errors.New("chain: fee below the configured minimum")
	ErrNAIPoolExhausted     = errors.New("chain: no numerical asset identifiers available")
	ErrDuplicateTransaction = errors.New("chain: duplicate transaction")
	ErrTaposMismatch        = errors.New("chain: transaction reference block mismatch")
	ErrTransactionExpired   = errors.New("chain: transaction expired or expiration too far ahead")
	ErrMissingAuthority     = errors.New("chain: required authority not satisfied by signatures")
	ErrAuthorityTooDeep     = errors.New("chain: authority resolution exceeded recursion limits")
	ErrMerkleMismatch       = errors.New("chain: transaction merkle root mismatch")
	ErrInvalidHeader        = errors.New("chain: block header does not link to the current head")
	ErrWrongWitness         = errors.New("chain: block signed by a witness not scheduled for its slot")
	ErrInvariantViolation   = errors.New("chain: state invariant violated")
	ErrBlockLogCorrupt      = errors.New("chain: block log entry does not match expected height")
	ErrFillOrKillUnfilled   = errors.New("chain: fill-or-kill order could not be fully filled")
)
