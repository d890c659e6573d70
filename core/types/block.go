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

// BlockID is a block's content hash. The engine treats it as opaque;
// NumFromID recovers the height packed into its first 4 bytes
// (the TaPoS "block_num mod 2^16" trick generalizes this).
type BlockID [32]byte

// NumFromID extracts the big-endian height packed into the first four
// bytes of a block id.
func NumFromID(id BlockID) uint32 {
	return uint32(id[0])<<24 | uint32(id[1])<<16 | uint32(id[2])<<8 | uint32(id[3])
}

// BlockHeaderExtensions carries the optional per-block extension
// fields: version reporting, hardfork vote, and the two automated-
// action queues this block includes.
type BlockHeaderExtensions struct {
	ReportedVersion     [3]uint16
	HardforkVersionVote uint32
	HardforkTimeVote    int64
	RequiredActions     []Action
	OptionalActions     []Action
}

// BlockHeader is the signed portion of a block identifying it within the
// chain: previous block, timestamp, scheduled witness and extensions.
type BlockHeader struct {
	PreviousID BlockID
	Timestamp  int64
	Witness    string
	Extensions BlockHeaderExtensions
}

// SignedTransaction is a transaction plus the signatures authorizing
// it. Signature verification itself lives with the wallet layer; the
// engine only needs the declared signer set its authority resolution
// consumes, supplied out of band by the caller.
type SignedTransaction struct {
	RefBlockNum    uint16
	RefBlockPrefix uint32
	Expiration     int64
	Operations     []Operation
	SigningKeys    []PublicKey // keys the caller has already verified signed this transaction
}

// TxID is an opaque transaction identity used by the dedup index; the
// engine treats it as a value computed by the caller's serialization
// layer and supplied alongside the transaction.
type TxID [32]byte

// SignedBlock is one complete, independently-verifiable unit of the
// chain: a header plus its ordered transactions and a witness signature
// the caller has already (or will, skip_flags permitting) verify.
type SignedBlock struct {
	BlockHeader
	ID           BlockID
	Num          uint32
	Transactions []SignedTransaction
	TxIDs        []TxID
	MerkleRoot   [32]byte
	WitnessSig   []byte
}
