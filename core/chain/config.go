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
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/fresszonesongs/freezone/core/consensus"
	"github.com/fresszonesongs/freezone/core/types"
)

// SkipFlags controls which verification classes the engine omits, used
// during trusted replay and checkpoint-bounded sync.
type SkipFlags uint32

const (
	SkipNothing               SkipFlags = 0
	SkipWitnessSignature      SkipFlags = 1 << iota
	SkipTransactionSignatures
	SkipTransactionDupeCheck
	SkipTaposCheck
	SkipMerkleCheck
	SkipWitnessScheduleCheck
	SkipAuthorityCheck
	SkipValidate
	SkipValidateInvariants
	SkipBlockLog
	SkipForkDB
	SkipBlockSizeCheck
	SkipUndoHistoryCheck
)

// ReplaySkipFlags is the trusted-reindex bundle: everything signature,
// dedup and fork related is skipped because the block log is the
// authority being replayed.
const ReplaySkipFlags = SkipWitnessSignature | SkipTransactionSignatures |
	SkipTransactionDupeCheck | SkipTaposCheck | SkipMerkleCheck |
	SkipWitnessScheduleCheck | SkipAuthorityCheck | SkipValidate |
	SkipBlockLog | SkipForkDB

func (f SkipFlags) Has(flag SkipFlags) bool { return f&flag != 0 }

// Config is everything the engine accepts at open. Storage-layout
// fields configure the external store backend and are passed through
// untouched; the reference in-memory backend ignores them.
type Config struct {
	DataDir                 string `yaml:"data_dir"`
	SharedMemDir            string `yaml:"shared_mem_dir"`
	SharedFileSize          uint64 `yaml:"shared_file_size"`
	SharedFileFullThreshold uint16 `yaml:"shared_file_full_threshold"`
	SharedFileScaleRate     uint16 `yaml:"shared_file_scale_rate"`

	ChainID [32]byte `yaml:"-"`
	// ChainIDHex is the config-file form of ChainID.
	ChainIDHex string `yaml:"chain_id"`

	// Genesis parameters, used once when the store is empty.
	InitialSupply    int64 `yaml:"initial_supply"`
	SbdInitialSupply int64 `yaml:"sbd_initial_supply"`
	// InitPublicKey seeds the init witness's authorities and signing key.
	InitPublicKey types.PublicKey `yaml:"-"`

	DoValidateInvariants bool `yaml:"do_validate_invariants"`

	ReplayInMemory      bool     `yaml:"replay_in_memory"`
	ReplayMemoryIndices []string `yaml:"replay_memory_indices"`
	StopAtBlock         uint32   `yaml:"stop_at_block"`

	SkipFlags SkipFlags `yaml:"skip_flags"`

	SpsRemoveThreshold int `yaml:"sps_remove_threshold"`

	// OwnerAuthHistoryTrackingStartBlock is carried as configuration per
	// the design note: owner-authority history rows are only written at
	// or above this height.
	OwnerAuthHistoryTrackingStartBlock uint32 `yaml:"owner_auth_history_tracking_start_block"`

	// BenchmarkInterval, in blocks, triggers the benchmark callback; zero
	// disables it.
	BenchmarkInterval uint32 `yaml:"benchmark_interval"`
	BenchmarkFunc     func(blockNum uint32) `yaml:"-"`

	// Hardforks is the ordered activation table; empty means no hardforks
	// beyond genesis behavior.
	Hardforks consensus.Table `yaml:"-"`

	// Checkpoints pins required block ids by height.
	Checkpoints map[uint32]types.BlockID `yaml:"-"`

	// KnownBadMerkle lists block ids whose merkle mismatch is tolerated
	//.
	KnownBadMerkle map[types.BlockID]struct{} `yaml:"-"`

	// MaxUndoHistory bounds the fork db retention window.
	MaxUndoHistory uint32 `yaml:"max_undo_history"`
}

// DefaultConfig mirrors the reference network's compiled-in defaults.
func DefaultConfig() Config {
	return Config{
		SharedFileSize:       54 * 1024 * 1024 * 1024,
		DoValidateInvariants: false,
		SpsRemoveThreshold:   200,
		MaxUndoHistory:       10000,
		InitialSupply:        0,
		SbdInitialSupply:     0,
	}
}

// LoadConfig reads a yaml config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "reading config %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config %s", path)
	}
	return cfg, nil
}
