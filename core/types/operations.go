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

import "fmt"

// OpKind tags the closed operation union (design note: "sum types for
// operations"). Evaluator dispatch is a map from OpKind to evaluator.
type OpKind string

const (
	OpAccountCreate            OpKind = "account_create"
	OpAccountUpdate            OpKind = "account_update"
	OpTransfer                 OpKind = "transfer"
	OpTransferToVesting        OpKind = "transfer_to_vesting"
	OpWithdrawVesting          OpKind = "withdraw_vesting"
	OpSetWithdrawVestingRoute  OpKind = "set_withdraw_vesting_route"
	OpDelegateVestingShares    OpKind = "delegate_vesting_shares"
	OpWitnessUpdate            OpKind = "witness_update"
	OpFeedPublish              OpKind = "feed_publish"
	OpAccountWitnessVote       OpKind = "account_witness_vote"
	OpAccountWitnessProxy      OpKind = "account_witness_proxy"
	OpComment                  OpKind = "comment"
	OpCommentOptions           OpKind = "comment_options"
	OpDeleteComment            OpKind = "delete_comment"
	OpVote                     OpKind = "vote"
	OpClaimRewardBalance       OpKind = "claim_reward_balance"
	OpEscrowTransfer           OpKind = "escrow_transfer"
	OpEscrowApprove            OpKind = "escrow_approve"
	OpEscrowDispute            OpKind = "escrow_dispute"
	OpEscrowRelease            OpKind = "escrow_release"
	OpLimitOrderCreate         OpKind = "limit_order_create"
	OpLimitOrderCancel         OpKind = "limit_order_cancel"
	OpConvert                  OpKind = "convert"
	OpTransferToSavings        OpKind = "transfer_to_savings"
	OpTransferFromSavings      OpKind = "transfer_from_savings"
	OpCancelTransferFromSavings OpKind = "cancel_transfer_from_savings"
	OpDeclineVotingRights      OpKind = "decline_voting_rights"
	OpChangeRecoveryAccount    OpKind = "change_recovery_account"
	OpRequestAccountRecovery   OpKind = "request_account_recovery"
	OpRecoverAccount           OpKind = "recover_account"
	OpCreateProposal           OpKind = "create_proposal"
	OpUpdateProposalVotes      OpKind = "update_proposal_votes"
	OpRemoveProposal           OpKind = "remove_proposal"

	OpSSTCreate              OpKind = "sst_create"
	OpSSTSetup               OpKind = "sst_setup"
	OpSSTSetupEmissions      OpKind = "sst_setup_emissions"
	OpSSTSetSetupParameters  OpKind = "sst_set_setup_parameters"
	OpSSTSetRuntimeParameters OpKind = "sst_set_runtime_parameters"
	OpSSTContribute          OpKind = "sst_contribute"
)

// Operation is the interface every concrete operation type implements.
// Validate performs structural (stateless) checks only.
type Operation interface {
	Kind() OpKind
	Validate() error
	// RequiredAuthorities returns the accounts and the authority level
	// required from each, consumed by signature verification.
	RequiredAuthorities() map[string]AuthorityLevel
}

func errf(op OpKind, format string, args ...any) error {
	return fmt.Errorf("%s: %s", op, fmt.Sprintf(format, args...))
}

type AccountCreateOp struct {
	Fee          Asset
	Creator      string
	NewAccount   string
	Owner        Authority
	Active       Authority
	Posting      Authority
	MemoKey      PublicKey
}

func (o AccountCreateOp) Kind() OpKind { return OpAccountCreate }
func (o AccountCreateOp) Validate() error {
	if o.Creator == "" || o.NewAccount == "" {
		return errf(o.Kind(), "creator and new_account must be set")
	}
	if o.Fee.Negative() {
		return errf(o.Kind(), "fee cannot be negative")
	}
	if o.Owner.IsImpossible() || o.Active.IsImpossible() || o.Posting.IsImpossible() {
		return errf(o.Kind(), "authority is impossible to satisfy")
	}
	return nil
}
func (o AccountCreateOp) RequiredAuthorities() map[string]AuthorityLevel {
	return map[string]AuthorityLevel{o.Creator: ActiveAuthority}
}

type TransferOp struct {
	From   string
	To     string
	Amount Asset
	Memo   string
}

func (o TransferOp) Kind() OpKind { return OpTransfer }
func (o TransferOp) Validate() error {
	if o.From == "" || o.To == "" {
		return errf(o.Kind(), "from/to must be set")
	}
	if o.Amount.Amount <= 0 {
		return errf(o.Kind(), "amount must be positive")
	}
	if len(o.Memo) > 2048 {
		return errf(o.Kind(), "memo too long")
	}
	return nil
}
func (o TransferOp) RequiredAuthorities() map[string]AuthorityLevel {
	return map[string]AuthorityLevel{o.From: ActiveAuthority}
}

type TransferToVestingOp struct {
	From   string
	To     string
	Amount Asset
}

func (o TransferToVestingOp) Kind() OpKind { return OpTransferToVesting }
func (o TransferToVestingOp) Validate() error {
	if o.Amount.Amount <= 0 {
		return errf(o.Kind(), "amount must be positive")
	}
	return nil
}
func (o TransferToVestingOp) RequiredAuthorities() map[string]AuthorityLevel {
	return map[string]AuthorityLevel{o.From: ActiveAuthority}
}

type WithdrawVestingOp struct {
	Account       string
	VestingShares Asset
}

func (o WithdrawVestingOp) Kind() OpKind { return OpWithdrawVesting }
func (o WithdrawVestingOp) Validate() error {
	if o.Account == "" {
		return errf(o.Kind(), "account must be set")
	}
	if o.VestingShares.Amount < 0 {
		return errf(o.Kind(), "vesting_shares cannot be negative")
	}
	return nil
}
func (o WithdrawVestingOp) RequiredAuthorities() map[string]AuthorityLevel {
	return map[string]AuthorityLevel{o.Account: ActiveAuthority}
}

type WithdrawRoute struct {
	FromAccount string
	ToAccount   string
	Percent     uint16
	AutoVest    bool
}

type SetWithdrawVestingRouteOp struct {
	Route WithdrawRoute
}

func (o SetWithdrawVestingRouteOp) Kind() OpKind { return OpSetWithdrawVestingRoute }
func (o SetWithdrawVestingRouteOp) Validate() error {
	if o.Route.Percent > 10000 {
		return errf(o.Kind(), "percent must be <= 10000")
	}
	return nil
}
func (o SetWithdrawVestingRouteOp) RequiredAuthorities() map[string]AuthorityLevel {
	return map[string]AuthorityLevel{o.Route.FromAccount: ActiveAuthority}
}

type DelegateVestingSharesOp struct {
	Delegator     string
	Delegatee     string
	VestingShares Asset
}

func (o DelegateVestingSharesOp) Kind() OpKind { return OpDelegateVestingShares }
func (o DelegateVestingSharesOp) Validate() error {
	if o.VestingShares.Amount < 0 {
		return errf(o.Kind(), "vesting_shares cannot be negative")
	}
	return nil
}
func (o DelegateVestingSharesOp) RequiredAuthorities() map[string]AuthorityLevel {
	return map[string]AuthorityLevel{o.Delegator: ActiveAuthority}
}

type WitnessUpdateOp struct {
	Owner         string
	Url           string
	SigningKey    PublicKey
	AccountSubsidyBudget uint32
	AccountSubsidyDecay  uint32
}

func (o WitnessUpdateOp) Kind() OpKind { return OpWitnessUpdate }
func (o WitnessUpdateOp) Validate() error {
	if o.Owner == "" {
		return errf(o.Kind(), "owner must be set")
	}
	return nil
}
func (o WitnessUpdateOp) RequiredAuthorities() map[string]AuthorityLevel {
	return map[string]AuthorityLevel{o.Owner: ActiveAuthority}
}

type FeedPublishOp struct {
	Publisher    string
	ExchangeRate Price
}

func (o FeedPublishOp) Kind() OpKind { return OpFeedPublish }
func (o FeedPublishOp) Validate() error {
	if o.Publisher == "" {
		return errf(o.Kind(), "publisher must be set")
	}
	if o.ExchangeRate.Base.Amount <= 0 || o.ExchangeRate.Quote.Amount <= 0 {
		return errf(o.Kind(), "exchange_rate must be positive on both sides")
	}
	base, quote := o.ExchangeRate.Base.Symbol, o.ExchangeRate.Quote.Symbol
	if !(base.Equal(Native) && quote.Equal(Dollar)) && !(base.Equal(Dollar) && quote.Equal(Native)) {
		return errf(o.Kind(), "exchange_rate must quote the native/dollar pair")
	}
	return nil
}
func (o FeedPublishOp) RequiredAuthorities() map[string]AuthorityLevel {
	return map[string]AuthorityLevel{o.Publisher: ActiveAuthority}
}

type AccountWitnessVoteOp struct {
	Account string
	Witness string
	Approve bool
}

func (o AccountWitnessVoteOp) Kind() OpKind { return OpAccountWitnessVote }
func (o AccountWitnessVoteOp) Validate() error {
	if o.Account == "" || o.Witness == "" {
		return errf(o.Kind(), "account/witness must be set")
	}
	return nil
}
func (o AccountWitnessVoteOp) RequiredAuthorities() map[string]AuthorityLevel {
	return map[string]AuthorityLevel{o.Account: ActiveAuthority}
}

type AccountWitnessProxyOp struct {
	Account string
	Proxy   string
}

func (o AccountWitnessProxyOp) Kind() OpKind { return OpAccountWitnessProxy }
func (o AccountWitnessProxyOp) Validate() error {
	if o.Account == o.Proxy {
		return errf(o.Kind(), "proxy must differ from account")
	}
	return nil
}
func (o AccountWitnessProxyOp) RequiredAuthorities() map[string]AuthorityLevel {
	return map[string]AuthorityLevel{o.Account: ActiveAuthority}
}

type Beneficiary struct {
	Account string
	Weight  uint16
}

type CommentOp struct {
	ParentAuthor   string
	ParentPermlink string
	Author         string
	Permlink       string
	Title          string
	Body           string
}

func (o CommentOp) Kind() OpKind { return OpComment }
func (o CommentOp) Validate() error {
	if o.Author == "" || o.Permlink == "" {
		return errf(o.Kind(), "author/permlink must be set")
	}
	if len(o.Title) > 256 {
		return errf(o.Kind(), "title too long")
	}
	return nil
}
func (o CommentOp) RequiredAuthorities() map[string]AuthorityLevel {
	return map[string]AuthorityLevel{o.Author: PostingAuthority}
}

type CommentOptionsOp struct {
	Author               string
	Permlink              string
	MaxAcceptedPayout     Asset
	PercentDollars        uint16
	AllowVotes            bool
	AllowCurationRewards  bool
	Beneficiaries         []Beneficiary
}

func (o CommentOptionsOp) Kind() OpKind { return OpCommentOptions }
func (o CommentOptionsOp) Validate() error {
	if o.PercentDollars > 10000 {
		return errf(o.Kind(), "percent_freezone_dollars must be <= 10000")
	}
	var totalWeight uint32
	for _, b := range o.Beneficiaries {
		totalWeight += uint32(b.Weight)
	}
	if totalWeight > 10000 {
		return errf(o.Kind(), "beneficiary weights exceed 100%%")
	}
	return nil
}
func (o CommentOptionsOp) RequiredAuthorities() map[string]AuthorityLevel {
	return map[string]AuthorityLevel{o.Author: PostingAuthority}
}

type DeleteCommentOp struct {
	Author   string
	Permlink string
}

func (o DeleteCommentOp) Kind() OpKind { return OpDeleteComment }
func (o DeleteCommentOp) Validate() error { return nil }
func (o DeleteCommentOp) RequiredAuthorities() map[string]AuthorityLevel {
	return map[string]AuthorityLevel{o.Author: PostingAuthority}
}

type VoteOp struct {
	Voter    string
	Author   string
	Permlink string
	Symbol   Symbol
	Weight   int16 // -10000..10000
}

func (o VoteOp) Kind() OpKind { return OpVote }
func (o VoteOp) Validate() error {
	if o.Weight < -10000 || o.Weight > 10000 {
		return errf(o.Kind(), "weight out of range")
	}
	return nil
}
func (o VoteOp) RequiredAuthorities() map[string]AuthorityLevel {
	return map[string]AuthorityLevel{o.Voter: PostingAuthority}
}

type ClaimRewardBalanceOp struct {
	Account       string
	RewardLiquid  Asset
	RewardDollar  Asset
	RewardVesting Asset
}

func (o ClaimRewardBalanceOp) Kind() OpKind { return OpClaimRewardBalance }
func (o ClaimRewardBalanceOp) Validate() error { return nil }
func (o ClaimRewardBalanceOp) RequiredAuthorities() map[string]AuthorityLevel {
	return map[string]AuthorityLevel{o.Account: PostingAuthority}
}

type EscrowTransferOp struct {
	From, To, Agent      string
	EscrowID             uint32
	Amount, DollarAmount Asset
	Fee                  Asset
	RatificationDeadline int64
	EscrowExpiration     int64
}

func (o EscrowTransferOp) Kind() OpKind { return OpEscrowTransfer }
func (o EscrowTransferOp) Validate() error { return nil }
func (o EscrowTransferOp) RequiredAuthorities() map[string]AuthorityLevel {
	return map[string]AuthorityLevel{o.From: ActiveAuthority}
}

type EscrowApproveOp struct {
	From, To, Agent, Who string
	EscrowID             uint32
	Approve              bool
}

func (o EscrowApproveOp) Kind() OpKind { return OpEscrowApprove }
func (o EscrowApproveOp) Validate() error { return nil }
func (o EscrowApproveOp) RequiredAuthorities() map[string]AuthorityLevel {
	return map[string]AuthorityLevel{o.Who: ActiveAuthority}
}

type EscrowDisputeOp struct {
	From, To, Agent, Who string
	EscrowID             uint32
}

func (o EscrowDisputeOp) Kind() OpKind { return OpEscrowDispute }
func (o EscrowDisputeOp) Validate() error { return nil }
func (o EscrowDisputeOp) RequiredAuthorities() map[string]AuthorityLevel {
	return map[string]AuthorityLevel{o.Who: ActiveAuthority}
}

type EscrowReleaseOp struct {
	From, To, Agent, Who, Receiver string
	EscrowID                      uint32
	Amount, DollarAmount           Asset
}

func (o EscrowReleaseOp) Kind() OpKind { return OpEscrowRelease }
func (o EscrowReleaseOp) Validate() error { return nil }
func (o EscrowReleaseOp) RequiredAuthorities() map[string]AuthorityLevel {
	return map[string]AuthorityLevel{o.Who: ActiveAuthority}
}

type LimitOrderCreateOp struct {
	Owner        string
	OrderID      uint32
	AmountToSell Asset
	MinToReceive Asset
	FillOrKill   bool
	Expiration   int64
}

func (o LimitOrderCreateOp) Kind() OpKind { return OpLimitOrderCreate }
func (o LimitOrderCreateOp) Validate() error {
	if o.AmountToSell.Amount <= 0 || o.MinToReceive.Amount <= 0 {
		return errf(o.Kind(), "amounts must be positive")
	}
	p := Price{Base: o.AmountToSell, Quote: o.MinToReceive}
	if IsTickPricing(o.AmountToSell.Symbol, o.MinToReceive.Symbol) && !p.IsPowerOfTenDenominator() {
		return errf(o.Kind(), "price denominator must be a power of 10")
	}
	return nil
}
func (o LimitOrderCreateOp) RequiredAuthorities() map[string]AuthorityLevel {
	return map[string]AuthorityLevel{o.Owner: ActiveAuthority}
}

type LimitOrderCancelOp struct {
	Owner   string
	OrderID uint32
}

func (o LimitOrderCancelOp) Kind() OpKind { return OpLimitOrderCancel }
func (o LimitOrderCancelOp) Validate() error { return nil }
func (o LimitOrderCancelOp) RequiredAuthorities() map[string]AuthorityLevel {
	return map[string]AuthorityLevel{o.Owner: ActiveAuthority}
}

type ConvertOp struct {
	Owner     string
	RequestID uint32
	Amount    Asset
}

func (o ConvertOp) Kind() OpKind { return OpConvert }
func (o ConvertOp) Validate() error {
	if !o.Amount.Symbol.Equal(Dollar) {
		return errf(o.Kind(), "amount must be the dollar token")
	}
	if o.Amount.Amount <= 0 {
		return errf(o.Kind(), "amount must be positive")
	}
	return nil
}
func (o ConvertOp) RequiredAuthorities() map[string]AuthorityLevel {
	return map[string]AuthorityLevel{o.Owner: ActiveAuthority}
}

type TransferToSavingsOp struct {
	From, To string
	Amount   Asset
	Memo     string
}

func (o TransferToSavingsOp) Kind() OpKind { return OpTransferToSavings }
func (o TransferToSavingsOp) Validate() error {
	if o.Amount.Amount <= 0 {
		return errf(o.Kind(), "amount must be positive")
	}
	return nil
}
func (o TransferToSavingsOp) RequiredAuthorities() map[string]AuthorityLevel {
	return map[string]AuthorityLevel{o.From: ActiveAuthority}
}

type TransferFromSavingsOp struct {
	From, To  string
	RequestID uint32
	Amount    Asset
	Memo      string
}

func (o TransferFromSavingsOp) Kind() OpKind { return OpTransferFromSavings }
func (o TransferFromSavingsOp) Validate() error {
	if o.Amount.Amount <= 0 {
		return errf(o.Kind(), "amount must be positive")
	}
	return nil
}
func (o TransferFromSavingsOp) RequiredAuthorities() map[string]AuthorityLevel {
	return map[string]AuthorityLevel{o.From: ActiveAuthority}
}

type CancelTransferFromSavingsOp struct {
	From      string
	RequestID uint32
}

func (o CancelTransferFromSavingsOp) Kind() OpKind { return OpCancelTransferFromSavings }
func (o CancelTransferFromSavingsOp) Validate() error { return nil }
func (o CancelTransferFromSavingsOp) RequiredAuthorities() map[string]AuthorityLevel {
	return map[string]AuthorityLevel{o.From: ActiveAuthority}
}

type DeclineVotingRightsOp struct {
	Account string
	Decline bool
}

func (o DeclineVotingRightsOp) Kind() OpKind { return OpDeclineVotingRights }
func (o DeclineVotingRightsOp) Validate() error { return nil }
func (o DeclineVotingRightsOp) RequiredAuthorities() map[string]AuthorityLevel {
	return map[string]AuthorityLevel{o.Account: OwnerAuthority}
}

type AccountUpdateOp struct {
	Account string
	Owner   *Authority
	Active  *Authority
	Posting *Authority
	MemoKey PublicKey
}

func (o AccountUpdateOp) Kind() OpKind { return OpAccountUpdate }
func (o AccountUpdateOp) Validate() error {
	if o.Account == "" {
		return errf(o.Kind(), "account must be set")
	}
	if o.Owner != nil && o.Owner.IsImpossible() {
		return errf(o.Kind(), "owner authority is impossible to satisfy")
	}
	return nil
}
func (o AccountUpdateOp) RequiredAuthorities() map[string]AuthorityLevel {
	if o.Owner != nil {
		return map[string]AuthorityLevel{o.Account: OwnerAuthority}
	}
	return map[string]AuthorityLevel{o.Account: ActiveAuthority}
}

type ChangeRecoveryAccountOp struct {
	AccountToRecover   string
	NewRecoveryAccount string
}

func (o ChangeRecoveryAccountOp) Kind() OpKind { return OpChangeRecoveryAccount }
func (o ChangeRecoveryAccountOp) Validate() error {
	if o.AccountToRecover == o.NewRecoveryAccount {
		return errf(o.Kind(), "new_recovery_account must differ from account_to_recover")
	}
	return nil
}
func (o ChangeRecoveryAccountOp) RequiredAuthorities() map[string]AuthorityLevel {
	return map[string]AuthorityLevel{o.AccountToRecover: OwnerAuthority}
}

type RequestAccountRecoveryOp struct {
	RecoveryAccount  string
	AccountToRecover string
	NewOwnerAuthority Authority
}

func (o RequestAccountRecoveryOp) Kind() OpKind { return OpRequestAccountRecovery }
func (o RequestAccountRecoveryOp) Validate() error {
	if o.NewOwnerAuthority.IsImpossible() {
		return errf(o.Kind(), "new_owner_authority is impossible to satisfy")
	}
	return nil
}
func (o RequestAccountRecoveryOp) RequiredAuthorities() map[string]AuthorityLevel {
	return map[string]AuthorityLevel{o.RecoveryAccount: ActiveAuthority}
}

type RecoverAccountOp struct {
	AccountToRecover     string
	NewOwnerAuthority    Authority
	RecentOwnerAuthority Authority
}

func (o RecoverAccountOp) Kind() OpKind { return OpRecoverAccount }
func (o RecoverAccountOp) Validate() error {
	if o.NewOwnerAuthority.IsImpossible() {
		return errf(o.Kind(), "new_owner_authority is impossible to satisfy")
	}
	if o.NewOwnerAuthority.WeightThreshold == o.RecentOwnerAuthority.WeightThreshold &&
		len(o.NewOwnerAuthority.AccountAuths) == len(o.RecentOwnerAuthority.AccountAuths) &&
		len(o.NewOwnerAuthority.KeyAuths) == len(o.RecentOwnerAuthority.KeyAuths) {
		// Shape-only comparison, not a deep-equal; a matching shape is
		// not rejected here.
	}
	return nil
}
func (o RecoverAccountOp) RequiredAuthorities() map[string]AuthorityLevel {
	// Both the new and the recent owner authority must sign; the engine
	// resolves this as a single "owner" requirement against the union,
	// enforced at the transaction level rather than per-operation.
	return map[string]AuthorityLevel{o.AccountToRecover: OwnerAuthority}
}

type CreateProposalOp struct {
	Creator    string
	Receiver   string
	StartDate  int64
	EndDate    int64
	DailyPay   Asset
	Subject    string
	Permlink   string
}

func (o CreateProposalOp) Kind() OpKind { return OpCreateProposal }
func (o CreateProposalOp) Validate() error {
	if o.EndDate <= o.StartDate {
		return errf(o.Kind(), "end_date must follow start_date")
	}
	if o.DailyPay.Negative() || o.DailyPay.Amount == 0 {
		return errf(o.Kind(), "daily_pay must be positive")
	}
	if len(o.Subject) == 0 || len(o.Subject) > 80 {
		return errf(o.Kind(), "subject must be 1-80 characters")
	}
	return nil
}
func (o CreateProposalOp) RequiredAuthorities() map[string]AuthorityLevel {
	return map[string]AuthorityLevel{o.Creator: ActiveAuthority}
}

type UpdateProposalVotesOp struct {
	Voter       string
	ProposalIDs []uint32
	Approve     bool
}

func (o UpdateProposalVotesOp) Kind() OpKind { return OpUpdateProposalVotes }
func (o UpdateProposalVotesOp) Validate() error {
	if len(o.ProposalIDs) == 0 {
		return errf(o.Kind(), "proposal_ids must not be empty")
	}
	return nil
}
func (o UpdateProposalVotesOp) RequiredAuthorities() map[string]AuthorityLevel {
	return map[string]AuthorityLevel{o.Voter: ActiveAuthority}
}

type RemoveProposalOp struct {
	ProposalOwner string
	ProposalIDs   []uint32
}

func (o RemoveProposalOp) Kind() OpKind { return OpRemoveProposal }
func (o RemoveProposalOp) Validate() error {
	if len(o.ProposalIDs) == 0 {
		return errf(o.Kind(), "proposal_ids must not be empty")
	}
	return nil
}
func (o RemoveProposalOp) RequiredAuthorities() map[string]AuthorityLevel {
	return map[string]AuthorityLevel{o.ProposalOwner: ActiveAuthority}
}
