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
	"github.com/fresszonesongs/freezone/core/objects"
	"github.com/fresszonesongs/freezone/core/types"
)

func evalLimitOrderCreate(ctx Context, operation types.Operation) error {
	op := operation.(types.LimitOrderCreateOp)
	if _, err := ctx.GetAccount(op.Owner); err != nil {
		return err
	}
	// CreateOrder escrows the for-sale amount itself.
	return ctx.CreateOrder(op.Owner, op.OrderID, op.AmountToSell, op.MinToReceive, op.FillOrKill, op.Expiration)
}

func evalLimitOrderCancel(ctx Context, operation types.Operation) error {
	op := operation.(types.LimitOrderCancelOp)
	return ctx.CancelOrder(op.Owner, op.OrderID)
}

func evalConvert(ctx Context, operation types.Operation) error {
	op := operation.(types.ConvertOp)
	if _, err := ctx.GetAccount(op.Owner); err != nil {
		return err
	}
	if err := ctx.AdjustBalance(op.Owner, op.Amount.Negate()); err != nil {
		return err
	}
	ctx.CreateConvertRequest(op.Owner, op.RequestID, op.Amount)
	return nil
}

func evalEscrowTransfer(ctx Context, operation types.Operation) error {
	op := operation.(types.EscrowTransferOp)
	if _, err := ctx.GetAccount(op.From); err != nil {
		return err
	}
	if _, err := ctx.GetAccount(op.To); err != nil {
		return err
	}
	if _, err := ctx.GetAccount(op.Agent); err != nil {
		return err
	}
	if _, found := ctx.FindEscrow(op.From, op.To, op.Agent, op.EscrowID); found {
		return ErrAlreadyExists
	}
	if err := ctx.AdjustBalance(op.From, op.Amount.Negate()); err != nil {
		return err
	}
	if err := ctx.AdjustBalance(op.From, op.DollarAmount.Negate()); err != nil {
		return err
	}
	if err := ctx.AdjustBalance(op.From, op.Fee.Negate()); err != nil {
		return err
	}
	ctx.CreateEscrow(func(e *objects.Escrow) {
		e.From = op.From
		e.To = op.To
		e.Agent = op.Agent
		e.EscrowID = op.EscrowID
		e.Steem = op.Amount
		e.Sbd = op.DollarAmount
		e.PendingFee = op.Fee
		e.RatificationDeadline = op.RatificationDeadline
		e.EscrowExpiration = op.EscrowExpiration
	})
	return nil
}

func evalEscrowApprove(ctx Context, operation types.Operation) error {
	op := operation.(types.EscrowApproveOp)
	e, ok := ctx.FindEscrow(op.From, op.To, op.Agent, op.EscrowID)
	if !ok {
		return ErrUnknownEntity
	}
	if !op.Approve {
		ctx.RemoveEscrow(e)
		if err := ctx.AdjustBalance(op.From, e.Steem); err != nil {
			return err
		}
		if err := ctx.AdjustBalance(op.From, e.Sbd); err != nil {
			return err
		}
		return ctx.AdjustBalance(op.From, e.PendingFee)
	}
	ctx.ModifyEscrow(e, func(e *objects.Escrow) {
		switch op.Who {
		case op.To:
			e.ToApproved = true
		case op.Agent:
			e.AgentApproved = true
		}
	})
	e, _ = ctx.FindEscrow(op.From, op.To, op.Agent, op.EscrowID)
	if e.IsApproved() && !e.PendingFee.IsZero() {
		fee := e.PendingFee
		ctx.ModifyEscrow(e, func(e *objects.Escrow) {
			e.PendingFee = types.NewAsset(0, fee.Symbol)
		})
		return ctx.AdjustBalance(op.Agent, fee)
	}
	return nil
}

func evalEscrowDispute(ctx Context, operation types.Operation) error {
	op := operation.(types.EscrowDisputeOp)
	e, ok := ctx.FindEscrow(op.From, op.To, op.Agent, op.EscrowID)
	if !ok {
		return ErrUnknownEntity
	}
	if !e.IsApproved() {
		return ErrWrongPhase
	}
	ctx.ModifyEscrow(e, func(e *objects.Escrow) { e.Disputed = true })
	return nil
}

func evalEscrowRelease(ctx Context, operation types.Operation) error {
	op := operation.(types.EscrowReleaseOp)
	e, ok := ctx.FindEscrow(op.From, op.To, op.Agent, op.EscrowID)
	if !ok {
		return ErrUnknownEntity
	}
	if op.Amount.Amount > e.Steem.Amount || op.DollarAmount.Amount > e.Sbd.Amount {
		return ErrInsufficientFunds
	}
	remainingSteem := e.Steem.Sub(op.Amount)
	remainingSbd := e.Sbd.Sub(op.DollarAmount)
	if remainingSteem.IsZero() && remainingSbd.IsZero() {
		ctx.RemoveEscrow(e)
	} else {
		ctx.ModifyEscrow(e, func(e *objects.Escrow) {
			e.Steem = remainingSteem
			e.Sbd = remainingSbd
		})
	}
	if err := ctx.AdjustBalance(op.Receiver, op.Amount); err != nil {
		return err
	}
	return ctx.AdjustBalance(op.Receiver, op.DollarAmount)
}
