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

// VirtualOp is a notification emitted alongside state changes the engine
// makes on its own (reward payouts, fills, hardfork activation). Virtual
// ops are never part of consensus state and are never replayed from a
// block log; they exist purely as an event stream for downstream
// consumers.
type VirtualOp interface {
	VirtualOpName() string
}

type AuthorRewardOp struct {
	Author        string
	Permlink      string
	DollarPayout  Asset
	VestingPayout Asset
	VestingShares Asset
	SSTPayout     Asset
}

func (AuthorRewardOp) VirtualOpName() string { return "author_reward" }

type CurationRewardOp struct {
	Curator       string
	Author        string
	Permlink      string
	Reward        Asset
	RewardShares  int64
}

func (CurationRewardOp) VirtualOpName() string { return "curation_reward" }

type CommentBenefactorRewardOp struct {
	Benefactor    string
	Author        string
	Permlink      string
	DollarPayout  Asset
	VestingPayout Asset
	SSTPayout     Asset
}

func (CommentBenefactorRewardOp) VirtualOpName() string { return "comment_benefactor_reward" }

type CommentPayoutUpdateOp struct {
	Author   string
	Permlink string
}

func (CommentPayoutUpdateOp) VirtualOpName() string { return "comment_payout_update" }

type FillVestingWithdrawOp struct {
	FromAccount   string
	ToAccount     string
	Withdrawn     Asset
	Deposited     Asset
}

func (FillVestingWithdrawOp) VirtualOpName() string { return "fill_vesting_withdraw" }

type FillOrderOp struct {
	CurrentOwner  string
	CurrentOrderID uint32
	CurrentPays   Asset
	OpenOwner     string
	OpenOrderID   uint32
	OpenPays      Asset
}

func (FillOrderOp) VirtualOpName() string { return "fill_order" }

type InterestOp struct {
	Owner    string
	Interest Asset
}

func (InterestOp) VirtualOpName() string { return "interest" }

type FillConvertRequestOp struct {
	Owner       string
	RequestID   uint32
	AmountIn    Asset
	AmountOut   Asset
}

func (FillConvertRequestOp) VirtualOpName() string { return "fill_convert_request" }

type HardforkOp struct {
	HardforkID uint32
}

func (HardforkOp) VirtualOpName() string { return "hardfork" }

type ProducerRewardOp struct {
	Producer      string
	VestingShares Asset
}

func (ProducerRewardOp) VirtualOpName() string { return "producer_reward" }

type ReturnVestingDelegationOp struct {
	Account       string
	VestingShares Asset
}

func (ReturnVestingDelegationOp) VirtualOpName() string { return "return_vesting_delegation" }

type ClearNullAccountBalanceOp struct {
	TotalCleared []Asset
}

func (ClearNullAccountBalanceOp) VirtualOpName() string { return "clear_null_account_balance" }

type ShutdownWitnessOp struct {
	Owner string
}

func (ShutdownWitnessOp) VirtualOpName() string { return "shutdown_witness" }

type FillTransferFromSavingsOp struct {
	From      string
	To        string
	Amount    Asset
	RequestID uint32
	Memo      string
}

func (FillTransferFromSavingsOp) VirtualOpName() string { return "fill_transfer_from_savings" }

type SSTIcoLaunchOp struct {
	ControlAccount string
	SymbolNai      NAI
}

func (SSTIcoLaunchOp) VirtualOpName() string { return "sst_ico_launch" }

type SSTTokenLaunchOp struct {
	ControlAccount string
	SymbolNai      NAI
	Success        bool
}

func (SSTTokenLaunchOp) VirtualOpName() string { return "sst_token_launch" }

type SSTContributionOp struct {
	Contributor    string
	SymbolNai      NAI
	ContributionID uint32
	Contribution   Asset
}

func (SSTContributionOp) VirtualOpName() string { return "sst_contribution" }

type SSTRefundOp struct {
	Contributor    string
	SymbolNai      NAI
	ContributionID uint32
	Amount         Asset
}

func (SSTRefundOp) VirtualOpName() string { return "sst_refund" }

type SSTTokenEmissionOp struct {
	ControlAccount string
	SymbolNai      NAI
	TokensEmitted  Asset
}

func (SSTTokenEmissionOp) VirtualOpName() string { return "sst_token_emission" }

type SSTFounderRewardOp struct {
	Founder   string
	SymbolNai NAI
	Payout    Asset
}

func (SSTFounderRewardOp) VirtualOpName() string { return "sst_founder_reward" }
