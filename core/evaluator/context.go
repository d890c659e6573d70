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

// Package evaluator implements per-operation evaluators and their
// dispatch table. Evaluators never touch the object
// store directly: they are written against the Context interface, which
// core/chain's World implements, keeping the state-transition logic
// independent of the concrete state backend.
package evaluator

import (
	"github.com/fresszonesongs/freezone/core/objects"
	"github.com/fresszonesongs/freezone/core/sst"
	"github.com/fresszonesongs/freezone/core/types"
)

// Context is every piece of mutable state and chain configuration an
// evaluator may touch. All mutation happens inside the caller's already-
// open undo session; evaluators never open or close sessions themselves.
type Context interface {
	Now() int64
	HasHardfork(i uint32) bool

	// Accounts
	GetAccount(name string) (objects.Account, error)
	FindAccount(name string) (objects.Account, bool)
	CreateAccount(init func(*objects.Account)) objects.Account
	ModifyAccount(acc objects.Account, mutator func(*objects.Account)) objects.Account

	// Balances & supply
	AdjustBalance(account string, delta types.Asset) error
	AdjustSavingsBalance(account string, delta types.Asset) error
	AdjustRewardBalance(account string, liquid, dollar, vesting types.Asset) error
	AdjustSupply(delta types.Asset, adjustVesting bool) error
	CreateVestingShares(account string, liquid types.Asset) (types.Asset, error)
	VestingSharePrice() types.Price

	// Witnesses
	GetWitness(owner string) (objects.Witness, bool)
	CreateWitness(init func(*objects.Witness)) objects.Witness
	ModifyWitness(w objects.Witness, mutator func(*objects.Witness)) objects.Witness
	// PublishFeed appends a price publication to the feed history ring
	// the maintenance median aggregates.
	PublishFeed(rate types.Price)

	// Withdraw routes
	WithdrawRoutesFor(account string) []objects.WithdrawRouteEntry
	SetWithdrawRoute(from, to string, percent uint16, autoVest bool) error

	// Vesting delegation
	CreateDelegation(delegator, delegatee string, shares types.Asset, minTime int64) objects.VestingDelegation
	FindDelegation(delegator, delegatee string) (objects.VestingDelegation, bool)
	ModifyDelegation(d objects.VestingDelegation, mutator func(*objects.VestingDelegation)) objects.VestingDelegation
	RemoveDelegation(d objects.VestingDelegation)
	CreateDelegationExpiration(delegator string, shares types.Asset, expiration int64)

	// Comments & votes
	GetComment(author, permlink string) (objects.Comment, bool)
	CreateComment(init func(*objects.Comment)) objects.Comment
	ModifyComment(c objects.Comment, mutator func(*objects.Comment)) objects.Comment
	RemoveComment(c objects.Comment)
	GetCommentVote(commentID, voter string) (objects.CommentVote, bool)
	UpsertCommentVote(commentID string, voter string, rshares int64, weight uint64, percent int16)

	// Orders
	CreateOrder(owner string, orderID uint32, toSell, minReceive types.Asset, fillOrKill bool, expiration int64) error
	CancelOrder(owner string, orderID uint32) error

	// Conversions
	CreateConvertRequest(owner string, requestID uint32, amount types.Asset)

	// Escrow
	CreateEscrow(init func(*objects.Escrow)) objects.Escrow
	FindEscrow(from, to, agent string, id uint32) (objects.Escrow, bool)
	ModifyEscrow(e objects.Escrow, mutator func(*objects.Escrow)) objects.Escrow
	RemoveEscrow(e objects.Escrow)

	// Savings
	CreateSavingsWithdraw(from, to, memo string, requestID uint32, amount types.Asset)
	FindSavingsWithdraw(from string, requestID uint32) (objects.SavingsWithdraw, bool)
	RemoveSavingsWithdraw(w objects.SavingsWithdraw)

	// Recovery / decline-voting
	SetRecoveryAccount(account, newRecovery string, effectiveOn int64)
	RequestAccountRecovery(accountToRecover string, newOwner types.Authority, expires int64)
	RecoverAccount(accountToRecover string, newOwner, recentOwner types.Authority) error
	RequestDeclineVotingRights(account string, effective int64)

	// Proposals
	CreateProposal(init func(*objects.Proposal)) objects.Proposal
	FindProposal(id uint32) (objects.Proposal, bool)
	VoteProposal(proposalID uint32, voter string, approve bool) error
	RemoveProposal(id uint32)

	// SST
	SST() *sst.Engine
	ReserveSSTSymbol(controlAccount string, fee types.Asset) (types.NAI, error)

	Emit(op types.VirtualOp)
}

// Evaluator is the per-operation handler signature; op is already
// structurally validated and its authorities already
// resolved by the time dispatch calls it.
type Evaluator func(ctx Context, op types.Operation) error

// Registry is the OpKind -> Evaluator dispatch table (design note "sum
// types for operations": exhaustive match replaces reflection-based
// visitors).
type Registry struct {
	handlers map[types.OpKind]Evaluator
}

func NewRegistry() *Registry {
	r := &Registry{handlers: make(map[types.OpKind]Evaluator)}
	r.registerDefaults()
	return r
}

func (r *Registry) Register(kind types.OpKind, eval Evaluator) {
	r.handlers[kind] = eval
}

func (r *Registry) Dispatch(ctx Context, op types.Operation) error {
	h, ok := r.handlers[op.Kind()]
	if !ok {
		return errUnknownOperation(op.Kind())
	}
	return h(ctx, op)
}

func (r *Registry) registerDefaults() {
	r.Register(types.OpAccountCreate, evalAccountCreate)
	r.Register(types.OpAccountUpdate, evalAccountUpdate)
	r.Register(types.OpTransfer, evalTransfer)
	r.Register(types.OpTransferToVesting, evalTransferToVesting)
	r.Register(types.OpWithdrawVesting, evalWithdrawVesting)
	r.Register(types.OpSetWithdrawVestingRoute, evalSetWithdrawVestingRoute)
	r.Register(types.OpDelegateVestingShares, evalDelegateVestingShares)
	r.Register(types.OpWitnessUpdate, evalWitnessUpdate)
	r.Register(types.OpFeedPublish, evalFeedPublish)
	r.Register(types.OpAccountWitnessVote, evalAccountWitnessVote)
	r.Register(types.OpAccountWitnessProxy, evalAccountWitnessProxy)
	r.Register(types.OpComment, evalComment)
	r.Register(types.OpCommentOptions, evalCommentOptions)
	r.Register(types.OpDeleteComment, evalDeleteComment)
	r.Register(types.OpVote, evalVote)
	r.Register(types.OpClaimRewardBalance, evalClaimRewardBalance)
	r.Register(types.OpEscrowTransfer, evalEscrowTransfer)
	r.Register(types.OpEscrowApprove, evalEscrowApprove)
	r.Register(types.OpEscrowDispute, evalEscrowDispute)
	r.Register(types.OpEscrowRelease, evalEscrowRelease)
	r.Register(types.OpLimitOrderCreate, evalLimitOrderCreate)
	r.Register(types.OpLimitOrderCancel, evalLimitOrderCancel)
	r.Register(types.OpConvert, evalConvert)
	r.Register(types.OpTransferToSavings, evalTransferToSavings)
	r.Register(types.OpTransferFromSavings, evalTransferFromSavings)
	r.Register(types.OpCancelTransferFromSavings, evalCancelTransferFromSavings)
	r.Register(types.OpDeclineVotingRights, evalDeclineVotingRights)
	r.Register(types.OpChangeRecoveryAccount, evalChangeRecoveryAccount)
	r.Register(types.OpRequestAccountRecovery, evalRequestAccountRecovery)
	r.Register(types.OpRecoverAccount, evalRecoverAccount)
	r.Register(types.OpCreateProposal, evalCreateProposal)
	r.Register(types.OpUpdateProposalVotes, evalUpdateProposalVotes)
	r.Register(types.OpRemoveProposal, evalRemoveProposal)

	r.Register(types.OpSSTCreate, evalSSTCreate)
	r.Register(types.OpSSTSetup, evalSSTSetup)
	r.Register(types.OpSSTSetupEmissions, evalSSTSetupEmissions)
	r.Register(types.OpSSTSetSetupParameters, evalSSTSetSetupParameters)
	r.Register(types.OpSSTSetRuntimeParameters, evalSSTSetRuntimeParameters)
	r.Register(types.OpSSTContribute, evalSSTContribute)
}
