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

package evaluator

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/fresszonesongs/freezone/core/types"
)

// ErrInsufficientFunds, ErrUnknownEntity, ErrWrongPhase and
// ErrCapExceeded are the evaluator-level precondition failures.
var (
	ErrInsufficientFunds = errors.New("evaluator: insufficient funds")
	ErrUnknownEntity     = errors.New("evaluator: unknown entity")
	ErrWrongPhase        = errors.New("evaluator: operation not valid in current phase")
	ErrCapExceeded       = errors.New("evaluator: cap exceeded")
	ErrAlreadyExists     = errors.New("evaluator: entity already exists")
)

func errUnknownOperation(kind types.OpKind) error {
	return fmt.Errorf("evaluator: no evaluator registered for %s", kind)
}
