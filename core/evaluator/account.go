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

func evalAccountCreate(ctx Context, operation types.Operation) error {
	op := operation.(types.AccountCreateOp)
	if _, ok := ctx.FindAccount(op.NewAccount); ok {
		return ErrAlreadyExists
	}
	if _, err := ctx.GetAccount(op.Creator); err != nil {
		return err
	}
	if err := ctx.AdjustBalance(op.Creator, op.Fee.Negate()); err != nil {
		return err
	}
	ctx.CreateAccount(func(a *objects.Account) {
		a.Name = op.NewAccount
		a.MemoKey = op.MemoKey
		a.Owner = op.Owner
		a.Active = op.Active
		a.Posting = op.Posting
		a.VotingManaBar = objects.ManaBar{LastUpdate: ctx.Now()}
		a.DownvoteManaBar = objects.ManaBar{LastUpdate: ctx.Now()}
		a.RecoveryAccount = op.Creator
	})
	// The creation fee vests to the new account.
	if op.Fee.Amount > 0 {
		if _, err := ctx.CreateVestingShares(op.NewAccount, op.Fee); err != nil {
			return err
		}
	}
	return nil
}

func evalAccountUpdate(ctx Context, operation types.Operation) error {
	op := operation.(types.AccountUpdateOp)
	acc, err := ctx.GetAccount(op.Account)
	if err != nil {
		return err
	}
	ctx.ModifyAccount(acc, func(a *objects.Account) {
		if op.Owner != nil {
			a.Owner = *op.Owner
		}
		if op.Active != nil {
			a.Active = *op.Active
		}
		if op.Posting != nil {
			a.Posting = *op.Posting
		}
		if (op.MemoKey != types.PublicKey{}) {
			a.MemoKey = op.MemoKey
		}
	})
	return nil
}

func evalAccountWitnessVote(ctx Context, operation types.Operation) error {
	op := operation.(types.AccountWitnessVoteOp)
	voter, err := ctx.GetAccount(op.Account)
	if err != nil {
		return err
	}
	w, ok := ctx.GetWitness(op.Witness)
	if !ok {
		return ErrUnknownEntity
	}
	weight := voter.VestingShares.Amount + voter.ProxiedVSFVotes[0]
	delta := weight
	if !op.Approve {
		delta = -delta
	}
	ctx.ModifyWitness(w, func(w *objects.Witness) { w.Votes += delta })
	return nil
}

func evalAccountWitnessProxy(ctx Context, operation types.Operation) error {
	op := operation.(types.AccountWitnessProxyOp)
	acc, err := ctx.GetAccount(op.Account)
	if err != nil {
		return err
	}
	if op.Proxy != "" {
		if _, err := ctx.GetAccount(op.Proxy); err != nil {
			return err
		}
	}
	ctx.ModifyAccount(acc, func(a *objects.Account) { a.Proxy = op.Proxy })
	return nil
}

func evalDeclineVotingRights(ctx Context, operation types.Operation) error {
	op := operation.(types.DeclineVotingRightsOp)
	acc, err := ctx.GetAccount(op.Account)
	if err != nil {
		return err
	}
	if !op.Decline {
		return nil
	}
	const declineVotingRightsDelaySeconds = 30 * 24 * 60 * 60
	ctx.RequestDeclineVotingRights(acc.Name, ctx.Now()+declineVotingRightsDelaySeconds)
	return nil
}

func evalChangeRecoveryAccount(ctx Context, operation types.Operation) error {
	op := operation.(types.ChangeRecoveryAccountOp)
	const ownerAuthRecoveryDelaySeconds = 30 * 24 * 60 * 60
	ctx.SetRecoveryAccount(op.AccountToRecover, op.NewRecoveryAccount, ctx.Now()+ownerAuthRecoveryDelaySeconds)
	return nil
}

func evalRequestAccountRecovery(ctx Context, operation types.Operation) error {
	op := operation.(types.RequestAccountRecoveryOp)
	const accountRecoveryRequestExpirationSeconds = 24 * 60 * 60
	ctx.RequestAccountRecovery(op.AccountToRecover, op.NewOwnerAuthority, ctx.Now()+accountRecoveryRequestExpirationSeconds)
	return nil
}

func evalRecoverAccount(ctx Context, operation types.Operation) error {
	op := operation.(types.RecoverAccountOp)
	return ctx.RecoverAccount(op.AccountToRecover, op.NewOwnerAuthority, op.RecentOwnerAuthority)
}
