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
	"github.com/pkg/errors"

	"github.com/fresszonesongs/freezone/core/types"
)

// Cost bounds for the authority-resolution BFS.
const (
	MaxSigCheckDepth    = 2
	MaxSigCheckAccounts = 125
)

// VerifyAuthority checks that the supplied signing keys satisfy every
// (account, level) requirement the transaction's operations declared.
// Account-auth entries recurse into the referenced account's authority
// of the same-or-stronger level, bounded by depth and total accounts
// expanded.
func (w *World) VerifyAuthority(required map[string]types.AuthorityLevel, keys []types.PublicKey) error {
	keySet := make(map[types.PublicKey]struct{}, len(keys))
	for _, k := range keys {
		keySet[k] = struct{}{}
	}
	for account, level := range required {
		budget := MaxSigCheckAccounts
		ok, err := w.satisfies(account, level, keySet, 0, &budget)
		if err != nil {
			return err
		}
		if !ok {
			return errors.Wrapf(ErrMissingAuthority, "%s authority of %q", level, account)
		}
	}
	return nil
}

func (w *World) satisfies(account string, level types.AuthorityLevel, keys map[types.PublicKey]struct{}, depth int, budget *int) (bool, error) {
	if *budget <= 0 {
		return false, ErrAuthorityTooDeep
	}
	*budget--
	acc, ok := w.FindAccount(account)
	if !ok {
		return false, ErrNotFoundAccount(account)
	}
	auth := acc.Posting
	switch level {
	case types.ActiveAuthority:
		auth = acc.Active
	case types.OwnerAuthority:
		auth = acc.Owner
	}

	// Stronger authorities satisfy weaker requirements: try owner and
	// active for a posting requirement, owner for an active one.
	if w.authorityMet(auth, level, keys, depth, budget) {
		return true, nil
	}
	if level == types.PostingAuthority && w.authorityMet(acc.Active, types.ActiveAuthority, keys, depth, budget) {
		return true, nil
	}
	if level != types.OwnerAuthority && w.authorityMet(acc.Owner, types.OwnerAuthority, keys, depth, budget) {
		return true, nil
	}
	return false, nil
}

// authorityMet sums the weights of satisfied key and account entries
// against the threshold.
func (w *World) authorityMet(auth types.Authority, level types.AuthorityLevel, keys map[types.PublicKey]struct{}, depth int, budget *int) bool {
	if auth.WeightThreshold == 0 {
		return false
	}
	var total uint32
	for _, ka := range auth.KeyAuths {
		if _, ok := keys[ka.Key]; ok {
			total += uint32(ka.Weight)
			if total >= auth.WeightThreshold {
				return true
			}
		}
	}
	if depth >= MaxSigCheckDepth {
		return false
	}
	for _, aa := range auth.AccountAuths {
		ok, err := w.satisfies(aa.Account, level, keys, depth+1, budget)
		if err != nil || !ok {
			continue
		}
		total += uint32(aa.Weight)
		if total >= auth.WeightThreshold {
			return true
		}
	}
	return false
}
