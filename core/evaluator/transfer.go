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
	"github.com/fresszonesongs/freezone/core/types"
)

func evalTransfer(ctx Context, operation types.Operation) error {
	op := operation.(types.TransferOp)
	if _, err := ctx.GetAccount(op.From); err != nil {
		return err
	}
	if _, err := ctx.GetAccount(op.To); err != nil {
		return err
	}
	if err := ctx.AdjustBalance(op.From, op.Amount.Negate()); err != nil {
		return err
	}
	return ctx.AdjustBalance(op.To, op.Amount)
}

func evalTransferToVesting(ctx Context, operation types.Operation) error {
	op := operation.(types.TransferToVestingOp)
	to := op.To
	if to == "" {
		to = op.From
	}
	if _, err := ctx.GetAccount(op.From); err != nil {
		return err
	}
	if _, err := ctx.GetAccount(to); err != nil {
		return err
	}
	if err := ctx.AdjustBalance(op.From, op.Amount.Negate()); err != nil {
		return err
	}
	_, err := ctx.CreateVestingShares(to, op.Amount)
	return err
}

func evalTransferToSavings(ctx Context, operation types.Operation) error {
	op := operation.(types.TransferToSavingsOp)
	if _, err := ctx.GetAccount(op.From); err != nil {
		return err
	}
	if _, err := ctx.GetAccount(op.To); err != nil {
		return err
	}
	if err := ctx.AdjustBalance(op.From, op.Amount.Negate()); err != nil {
		return err
	}
	return ctx.AdjustSavingsBalance(op.To, op.Amount)
}

func evalTransferFromSavings(ctx Context, operation types.Operation) error {
	op := operation.(types.TransferFromSavingsOp)
	if _, err := ctx.GetAccount(op.From); err != nil {
		return err
	}
	if _, err := ctx.GetAccount(op.To); err != nil {
		return err
	}
	if err := ctx.AdjustSavingsBalance(op.From, op.Amount.Negate()); err != nil {
		return err
	}
	ctx.CreateSavingsWithdraw(op.From, op.To, op.Memo, op.RequestID, op.Amount)
	return nil
}

func evalCancelTransferFromSavings(ctx Context, operation types.Operation) error {
	op := operation.(types.CancelTransferFromSavingsOp)
	w, ok := ctx.FindSavingsWithdraw(op.From, op.RequestID)
	if !ok {
		return ErrUnknownEntity
	}
	if err := ctx.AdjustSavingsBalance(w.From, w.Amount); err != nil {
		return err
	}
	ctx.RemoveSavingsWithdraw(w)
	return nil
}
