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

// freezoned is the reference process hosting the core chain engine:
// config, genesis, block-log replay. Network ingress (p2p, RPC) is out
// of scope for the core and would be wired here by an embedding
// node.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	erigonlog "github.com/erigontech/erigon-lib/log/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/fresszonesongs/freezone/core/blocklog"
	"github.com/fresszonesongs/freezone/core/chain"
	"github.com/fresszonesongs/freezone/log"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type flags struct {
	dataDir    string
	configPath string
	verbosity  int
	replay     bool
	stopAt     uint32
	validate   bool
}

func rootCommand() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "freezoned",
		Short: "freezone core chain engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(f)
		},
	}
	registerFlags(cmd.Flags(), &f)
	return cmd
}

func registerFlags(fs *pflag.FlagSet, f *flags) {
	fs.StringVar(&f.dataDir, "datadir", "freezone-data", "data directory for the block log and state files")
	fs.StringVar(&f.configPath, "config", "", "yaml config file (optional)")
	fs.IntVar(&f.verbosity, "verbosity", int(erigonlog.LvlInfo), "log verbosity (0=crit .. 5=trace)")
	fs.BoolVar(&f.replay, "replay", false, "rebuild state by replaying the block log")
	fs.Uint32Var(&f.stopAt, "stop-at-block", 0, "stop replay at this height (0 = full log)")
	fs.BoolVar(&f.validate, "validate-invariants", false, "run the invariant validator after every block")
}

func run(f flags) error {
	log.Setup(erigonlog.Lvl(f.verbosity))
	logger := log.New("freezoned")

	cfg := chain.DefaultConfig()
	if f.configPath != "" {
		loaded, err := chain.LoadConfig(f.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	cfg.DataDir = f.dataDir
	cfg.DoValidateInvariants = cfg.DoValidateInvariants || f.validate
	if f.stopAt > 0 {
		cfg.StopAtBlock = f.stopAt
	}

	if err := os.MkdirAll(f.dataDir, 0o755); err != nil {
		return err
	}
	blockLog, err := blocklog.Open(filepath.Join(f.dataDir, "block_log"))
	if err != nil {
		return err
	}
	defer blockLog.Close()

	engine := chain.New(cfg, blockLog, logger)
	engine.Hub.PostApplyBlock.Connect(0, engine.Hub.LogEachBlock)

	if f.replay {
		if err := engine.Reindex(cfg.StopAtBlock); err != nil {
			return err
		}
		if cfg.DoValidateInvariants {
			if err := engine.World.ValidateInvariants(); err != nil {
				return err
			}
		}
	}

	logger.Info("engine ready",
		"head", blockLog.Head(),
		"datadir", f.dataDir,
	)
	// Without a network frontend there is no further work: embedding
	// processes call engine.PushBlock / engine.PushTransaction.
	return nil
}
