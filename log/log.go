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

// Package log is a thin façade over erigon-lib's log/v3, fixing the
// engine's default logger fields the way erigon's cmd/ binaries configure
// their root logger before any subsystem starts logging.
package log

import (
	"os"

	"github.com/erigontech/erigon-lib/log/v3"
)

// New returns a logger pre-bound with component=<component> and whatever
// extra key/value pairs the caller supplies (e.g. the chain_id).
func New(component string, kv ...any) log.Logger {
	l := log.Root().New(append([]any{"component", component}, kv...)...)
	return l
}

// Setup installs a leveled console handler on the root logger, matching
// erigon's cmd/utils logging setup, so a bare `freezoned` run has
// readable output without extra flags.
func Setup(verbosity log.Lvl) {
	handler := log.LvlFilterHandler(verbosity, log.StreamHandler(os.Stderr, log.TerminalFormat(false)))
	log.Root().SetHandler(handler)
}
