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

func evalCreateProposal(ctx Context, operation types.Operation) error {
	op := operation.(types.CreateProposalOp)
	if _, err := ctx.GetAccount(op.Creator); err != nil {
		return err
	}
	if _, err := ctx.GetAccount(op.Receiver); err != nil {
		return err
	}
	ctx.CreateProposal(func(p *objects.Proposal) {
		p.Creator = op.Creator
		p.Receiver = op.Receiver
		p.StartDate = op.StartDate
		p.EndDate = op.EndDate
		p.DailyPay = op.DailyPay
		p.Subject = op.Subject
	})
	return nil
}

func evalUpdateProposalVotes(ctx Context, operation types.Operation) error {
	op := operation.(types.UpdateProposalVotesOp)
	if _, err := ctx.GetAccount(op.Voter); err != nil {
		return err
	}
	for _, id := range op.ProposalIDs {
		if _, ok := ctx.FindProposal(id); !ok {
			continue
		}
		if err := ctx.VoteProposal(id, op.Voter, op.Approve); err != nil {
			return err
		}
	}
	return nil
}

func evalRemoveProposal(ctx Context, operation types.Operation) error {
	op := operation.(types.RemoveProposalOp)
	for _, id := range op.ProposalIDs {
		p, ok := ctx.FindProposal(id)
		if !ok {
			continue
		}
		if p.Creator != op.ProposalOwner {
			return ErrUnknownEntity
		}
		ctx.RemoveProposal(id)
	}
	return nil
}
