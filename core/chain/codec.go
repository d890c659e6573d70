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

import (
	"bytes"
	"crypto/sha256"
	"encoding/gob"

	"github.com/pkg/errors"

	"github.com/fresszonesongs/freezone/core/types"
)

// The block log only needs a self-describing round-trippable encoding,
// so the engine uses gob with every concrete operation/action variant
// registered. External wire compatibility is the caller's concern.
func init() {
	gob.Register(types.AccountCreateOp{})
	gob.Register(types.AccountUpdateOp{})
	gob.Register(types.TransferOp{})
	gob.Register(types.TransferToVestingOp{})
	gob.Register(types.WithdrawVestingOp{})
	gob.Register(types.SetWithdrawVestingRouteOp{})
	gob.Register(types.DelegateVestingSharesOp{})
	gob.Register(types.WitnessUpdateOp{})
	gob.Register(types.FeedPublishOp{})
	gob.Register(types.AccountWitnessVoteOp{})
	gob.Register(types.AccountWitnessProxyOp{})
	gob.Register(types.CommentOp{})
	gob.Register(types.CommentOptionsOp{})
	gob.Register(types.DeleteCommentOp{})
	gob.Register(types.VoteOp{})
	gob.Register(types.ClaimRewardBalanceOp{})
	gob.Register(types.EscrowTransferOp{})
	gob.Register(types.EscrowApproveOp{})
	gob.Register(types.EscrowDisputeOp{})
	gob.Register(types.EscrowReleaseOp{})
	gob.Register(types.LimitOrderCreateOp{})
	gob.Register(types.LimitOrderCancelOp{})
	gob.Register(types.ConvertOp{})
	gob.Register(types.TransferToSavingsOp{})
	gob.Register(types.TransferFromSavingsOp{})
	gob.Register(types.CancelTransferFromSavingsOp{})
	gob.Register(types.DeclineVotingRightsOp{})
	gob.Register(types.ChangeRecoveryAccountOp{})
	gob.Register(types.RequestAccountRecoveryOp{})
	gob.Register(types.RecoverAccountOp{})
	gob.Register(types.CreateProposalOp{})
	gob.Register(types.UpdateProposalVotesOp{})
	gob.Register(types.RemoveProposalOp{})
	gob.Register(types.SSTCreateOp{})
	gob.Register(types.SSTSetupOp{})
	gob.Register(types.SSTSetupEmissionsOp{})
	gob.Register(types.SSTSetSetupParametersOp{})
	gob.Register(types.SSTSetRuntimeParametersOp{})
	gob.Register(types.SSTContributeOp{})

	gob.Register(types.SSTIcoLaunchAction{})
	gob.Register(types.SSTIcoEvaluationAction{})
	gob.Register(types.SSTTokenLaunchAction{})
	gob.Register(types.SSTContributorPayoutAction{})
	gob.Register(types.SSTFounderPayoutAction{})
	gob.Register(types.SSTRefundAction{})
	gob.Register(types.SSTTokenEmissionAction{})
}

// EncodeBlock serializes a block for the append-only log.
func EncodeBlock(b *types.SignedBlock) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(b); err != nil {
		return nil, errors.Wrap(err, "encoding block")
	}
	return buf.Bytes(), nil
}

// DecodeBlock is EncodeBlock's inverse, used by reindex.
func DecodeBlock(data []byte) (*types.SignedBlock, error) {
	var b types.SignedBlock
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&b); err != nil {
		return nil, errors.Wrap(err, "decoding block")
	}
	return &b, nil
}

// ComputeMerkleRoot folds the transaction ids pairwise, duplicating the
// odd leaf.
func ComputeMerkleRoot(txIDs []types.TxID) [32]byte {
	if len(txIDs) == 0 {
		return [32]byte{}
	}
	level := make([][32]byte, len(txIDs))
	for i, id := range txIDs {
		level[i] = id
	}
	for len(level) > 1 {
		var next [][32]byte
		for i := 0; i < len(level); i += 2 {
			j := i + 1
			if j == len(level) {
				j = i
			}
			pair := append(append([]byte{}, level[i][:]...), level[j][:]...)
			next = append(next, sha256.Sum256(pair))
		}
		level = next
	}
	return level[0]
}

// MakeBlockID derives a block id with the height packed big-endian into
// the first four bytes, matching types.NumFromID.
func MakeBlockID(num uint32, headerDigest [32]byte) types.BlockID {
	var id types.BlockID
	copy(id[:], headerDigest[:])
	id[0] = byte(num >> 24)
	id[1] = byte(num >> 16)
	id[2] = byte(num >> 8)
	id[3] = byte(num)
	return id
}

// DigestBlockHeader hashes the identifying header fields for MakeBlockID.
func DigestBlockHeader(h types.BlockHeader) [32]byte {
	var buf bytes.Buffer
	_ = gob.NewEncoder(&buf).Encode(struct {
		Previous  types.BlockID
		Timestamp int64
		Witness   string
	}{h.PreviousID, h.Timestamp, h.Witness})
	return sha256.Sum256(buf.Bytes())
}
