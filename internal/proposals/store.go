package proposals

import (
	"context"
	"log"
	"sync"

	"github.com/kbrewster21/league-office-go/internal/trade"
)

// Store is the REST-backed proposal store used by leagues whose trade
// plumbing is a per-team proposal list. The local map only ever reflects
// confirmed remote state: a mutation is applied locally in the continuation
// of a successful remote call, never optimistically, so the UI can never show
// a trade the service rejected.
type Store struct {
	client Client

	mu     sync.RWMutex
	byTeam map[int][]trade.Proposal
}

func NewStore(client Client) *Store {
	return &Store{
		client: client,
		byTeam: make(map[int][]trade.Proposal),
	}
}

// Bootstrap replaces each listed team's bucket with the service's current
// view. Proposals that have vanished from the service without an observed
// terminal action are simply dropped here: a lost proposal is treated as
// cancelled, never retried automatically.
func (s *Store) Bootstrap(ctx context.Context, teamIDs []int) error {
	fetched := make(map[int][]trade.Proposal, len(teamIDs))
	for _, id := range teamIDs {
		list, err := s.client.ListProposals(ctx, id)
		if err != nil {
			return err
		}
		fetched[id] = list
	}

	s.mu.Lock()
	for id, list := range fetched {
		s.byTeam[id] = list
	}
	s.mu.Unlock()
	return nil
}

// ProposalsFor returns a copy of a team's outstanding proposals.
func (s *Store) ProposalsFor(teamID int) []trade.Proposal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]trade.Proposal, len(s.byTeam[teamID]))
	copy(out, s.byTeam[teamID])
	return out
}

// Propose creates the proposal remotely and, on success only, appends the
// server's copy to the proposer's bucket.
func (s *Store) Propose(ctx context.Context, p trade.Proposal) error {
	if trade.ResolvePartyKey(p, trade.RoleSender) == "" ||
		trade.ResolvePartyKey(p, trade.RoleRecipient) == "" {
		log.Printf("proposals: dropping unroutable proposal %s", p.ID)
		return nil
	}

	created, err := s.client.CreateProposal(ctx, p)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.byTeam[created.ProposingTeamID] = append(s.byTeam[created.ProposingTeamID], created)
	s.mu.Unlock()
	return nil
}

// The five terminal-ish actions share one post-condition: after the remote
// call resolves, the proposal is gone from the proposer's bucket no matter
// which verb fired.

func (s *Store) Accept(ctx context.Context, p trade.Proposal) error {
	if err := s.client.AcceptProposal(ctx, p.ID); err != nil {
		return err
	}
	s.removeLocal(p)
	return nil
}

func (s *Store) Reject(ctx context.Context, p trade.Proposal) error {
	if err := s.client.RejectProposal(ctx, p.ID); err != nil {
		return err
	}
	s.removeLocal(p)
	return nil
}

func (s *Store) Cancel(ctx context.Context, p trade.Proposal) error {
	if err := s.client.CancelProposal(ctx, p.ID); err != nil {
		return err
	}
	s.removeLocal(p)
	return nil
}

func (s *Store) Sync(ctx context.Context, p trade.Proposal) error {
	if err := s.client.ConfirmAcceptedTrade(ctx, p.ID); err != nil {
		return err
	}
	s.removeLocal(p)
	return nil
}

func (s *Store) Veto(ctx context.Context, p trade.Proposal) error {
	if err := s.client.VetoAcceptedTrade(ctx, p.ID); err != nil {
		return err
	}
	s.removeLocal(p)
	return nil
}

func (s *Store) removeLocal(p trade.Proposal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bucket := s.byTeam[p.ProposingTeamID]
	kept := bucket[:0]
	for _, existing := range bucket {
		if existing.ID != p.ID {
			kept = append(kept, existing)
		}
	}
	s.byTeam[p.ProposingTeamID] = kept
}
