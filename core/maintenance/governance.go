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

package maintenance

import (
	"sort"

	"github.com/fresszonesongs/freezone/core/objects"
	"github.com/fresszonesongs/freezone/core/state"
)

// OwnerAuthRecoveryWindowSeconds is freezone_OWNER_AUTH_RECOVERY_PERIOD: how
// long a previous owner authority stays usable for recovery.
const OwnerAuthRecoveryWindowSeconds = 30 * 24 * 60 * 60

// step 19: processAccountRecovery expires stale recovery requests, drops
// owner-authority history outside the recovery window, and applies
// matured change-recovery-account requests.
func (s *State) processAccountRecovery(now int64) {
	var expired []objects.AccountRecoveryRequest
	s.RecoveryRequests.Range(func(r objects.AccountRecoveryRequest) bool {
		if r.Expires <= now {
			expired = append(expired, r)
		}
		return true
	})
	for _, r := range expired {
		s.RecoveryRequests.Remove(r)
	}

	var stale []objects.OwnerAuthorityHistory
	s.OwnerAuthHistories.Range(func(h objects.OwnerAuthorityHistory) bool {
		if h.LastValidTime+OwnerAuthRecoveryWindowSeconds <= now {
			stale = append(stale, h)
		}
		return true
	})
	for _, h := range stale {
		s.OwnerAuthHistories.Remove(h)
	}

	var matured []objects.ChangeRecoveryAccountRequest
	s.ChangeRecoveryRequests.Range(func(r objects.ChangeRecoveryAccountRequest) bool {
		if r.EffectiveOn <= now {
			matured = append(matured, r)
		}
		return true
	})
	for _, r := range matured {
		if acc, ok := s.findAccount(r.AccountToRecover); ok {
			s.Accounts.Modify(acc, func(a *objects.Account) {
				a.RecoveryAccount = r.RecoveryAccount
			})
		}
		s.ChangeRecoveryRequests.Remove(r)
	}
}

// step 20: processEscrowRatificationExpiration dissolves escrows whose
// ratification deadline passed without both approvals, refunding from.
func (s *State) processEscrowRatificationExpiration(now int64) {
	var lapsed []objects.Escrow
	s.Escrows.Range(func(e objects.Escrow) bool {
		if !e.IsApproved() && e.RatificationDeadline <= now {
			lapsed = append(lapsed, e)
		}
		return true
	})
	for _, e := range lapsed {
		if !e.Steem.IsZero() {
			s.creditBalance(e.From, e.Steem)
		}
		if !e.Sbd.IsZero() {
			s.creditBalance(e.From, e.Sbd)
		}
		if !e.PendingFee.IsZero() {
			s.creditBalance(e.From, e.PendingFee)
		}
		s.Escrows.Remove(e)
	}
}

// step 21: processDeclineVotingRights applies matured decline requests:
// proxied votes removed, witness votes cleared, can_vote permanently off.
func (s *State) processDeclineVotingRights(now int64) {
	var matured []objects.DeclineVotingRightsRequest
	s.DeclineVotingRequests.Range(func(r objects.DeclineVotingRightsRequest) bool {
		if r.Effective <= now {
			matured = append(matured, r)
		}
		return true
	})
	for _, r := range matured {
		acc, ok := s.findAccount(r.Account)
		if ok {
			s.clearWitnessVotes(acc)
			s.Accounts.Modify(s.mustAccount(acc.Name), func(a *objects.Account) {
				a.CanVote = false
				a.Proxy = ""
				for i := range a.ProxiedVSFVotes {
					a.ProxiedVSFVotes[i] = 0
				}
			})
		}
		s.DeclineVotingRequests.Remove(r)
	}
}

// clearWitnessVotes removes this account's vote weight from every
// witness it voted for. The engine tracks per-witness accumulated votes
// only (not the vote edges) at this layer; the weight removed is the
// account's full effective stake spread over its votes.
func (s *State) clearWitnessVotes(acc objects.Account) {
	if acc.WitnessesVotedFor == 0 {
		return
	}
	weight := acc.VestingShares.Amount
	var witnesses []objects.Witness
	s.Witnesses.Range(func(w objects.Witness) bool {
		witnesses = append(witnesses, w)
		return true
	})
	for _, w := range witnesses {
		if w.Votes >= weight {
			s.Witnesses.Modify(w, func(p *objects.Witness) { p.Votes -= weight })
		}
	}
	s.Accounts.Modify(s.mustAccount(acc.Name), func(a *objects.Account) {
		a.WitnessesVotedFor = 0
	})
}

// step 22: processProposals runs once per daily maintenance period:
// recompute vote totals, pay active proposals from the treasury, remove
// finished ones.
func (s *State) processProposals(now int64) {
	g := s.globals()
	if now < g.NextMaintenanceTime {
		return
	}
	s.Globals.Modify(g, func(p *objects.DynamicGlobalProperties) {
		p.LastMaintenanceTime = g.NextMaintenanceTime
		p.NextMaintenanceTime = g.NextMaintenanceTime + ProposalMaintenanceIntervalSeconds
	})

	treasury, ok := s.findAccount(TreasuryAccountName)
	if !ok {
		return
	}

	var all []objects.Proposal
	s.Proposals.Range(func(p objects.Proposal) bool {
		all = append(all, p)
		return true
	})
	sort.Slice(all, func(i, j int) bool { return all[i].ProposalID < all[j].ProposalID })

	for i := range all {
		all[i] = s.Proposals.Modify(all[i], func(p *objects.Proposal) {
			p.TotalVotes = s.tallyProposalVotes(all[i].ID)
		})
	}

	// Highest-voted first; each funded up to its daily pay while the
	// treasury lasts.
	sort.SliceStable(all, func(i, j int) bool { return all[i].TotalVotes > all[j].TotalVotes })
	budget := treasury.DollarBalance
	for _, p := range all {
		if p.EndDate <= now {
			s.removeProposal(p)
			continue
		}
		if p.StartDate > now || p.TotalVotes == 0 {
			continue
		}
		pay := p.DailyPay
		if pay.Amount > budget.Amount {
			pay = budget
		}
		if pay.Amount <= 0 {
			continue
		}
		budget = budget.Sub(pay)
		s.creditBalance(p.Receiver, pay)
		s.Accounts.Modify(s.mustAccount(TreasuryAccountName), func(a *objects.Account) {
			a.DollarBalance = a.DollarBalance.Sub(pay)
		})
	}
}

func (s *State) tallyProposalVotes(id state.ID) uint64 {
	var total uint64
	s.ProposalVotes.Range(func(v objects.ProposalVote) bool {
		if v.ProposalID != id {
			return true
		}
		if acc, ok := s.findAccount(v.Voter); ok {
			total += uint64(acc.VestingShares.Amount)
		}
		return true
	})
	return total
}

func (s *State) removeProposal(p objects.Proposal) {
	var votes []objects.ProposalVote
	s.ProposalVotes.Range(func(v objects.ProposalVote) bool {
		if v.ProposalID == p.ID {
			votes = append(votes, v)
		}
		return true
	})
	for _, v := range votes {
		s.ProposalVotes.Remove(v)
	}
	s.Proposals.Remove(p)
}
