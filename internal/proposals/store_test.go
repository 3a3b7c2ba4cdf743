package proposals

import (
	"context"
	"errors"
	"testing"

	"github.com/kbrewster21/league-office-go/internal/trade"
)

type fakeClient struct {
	listed  map[int][]trade.Proposal
	created []trade.Proposal
	actions []string
	err     error
}

func (f *fakeClient) ListProposals(ctx context.Context, teamID int) ([]trade.Proposal, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.listed[teamID], nil
}

func (f *fakeClient) CreateProposal(ctx context.Context, p trade.Proposal) (trade.Proposal, error) {
	if f.err != nil {
		return trade.Proposal{}, f.err
	}
	f.created = append(f.created, p)
	return p, nil
}

func (f *fakeClient) action(verb, id string) error {
	if f.err != nil {
		return f.err
	}
	f.actions = append(f.actions, verb+":"+id)
	return nil
}

func (f *fakeClient) AcceptProposal(ctx context.Context, id string) error {
	return f.action("accept", id)
}
func (f *fakeClient) RejectProposal(ctx context.Context, id string) error {
	return f.action("reject", id)
}
func (f *fakeClient) CancelProposal(ctx context.Context, id string) error {
	return f.action("cancel", id)
}
func (f *fakeClient) ConfirmAcceptedTrade(ctx context.Context, id string) error {
	return f.action("confirm", id)
}
func (f *fakeClient) VetoAcceptedTrade(ctx context.Context, id string) error {
	return f.action("veto", id)
}

func sampleProposal() trade.Proposal {
	return trade.Proposal{
		ID:              "trade_1700000000_abc1234",
		ProposingTeamID: 1,
		RecipientTeamID: 2,
		ProposingTeamOptions: []trade.Asset{
			{Kind: trade.AssetPlayer, TeamID: 1, RefID: "p1"},
		},
		RecipientTeamOptions: []trade.Asset{
			{Kind: trade.AssetDraftPick, TeamID: 2, RefID: "d1"},
		},
	}
}

func TestPropose_AppendsOnlyAfterRemoteSuccess(t *testing.T) {
	client := &fakeClient{}
	s := NewStore(client)
	p := sampleProposal()

	if err := s.Propose(context.Background(), p); err != nil {
		t.Fatalf("propose: %v", err)
	}

	got := s.ProposalsFor(1)
	if len(got) != 1 || got[0].ID != p.ID {
		t.Fatalf("proposer bucket = %+v", got)
	}
	if len(client.created) != 1 {
		t.Fatalf("remote create not called")
	}
}

func TestPropose_RemoteFailureLeavesMapUntouched(t *testing.T) {
	client := &fakeClient{err: errors.New("503")}
	s := NewStore(client)

	if err := s.Propose(context.Background(), sampleProposal()); err == nil {
		t.Fatal("expected remote error to propagate")
	}
	if got := s.ProposalsFor(1); len(got) != 0 {
		t.Fatalf("no optimistic add allowed, bucket = %+v", got)
	}
}

func TestPropose_UnroutableIsNoOp(t *testing.T) {
	client := &fakeClient{}
	s := NewStore(client)

	if err := s.Propose(context.Background(), trade.Proposal{ID: "x"}); err != nil {
		t.Fatalf("unroutable propose should be a nil no-op, got %v", err)
	}
	if len(client.created) != 0 {
		t.Fatal("unroutable proposal reached the remote service")
	}
}

func TestAllFiveActions_SharePostCondition(t *testing.T) {
	p := sampleProposal()
	actions := []struct {
		name string
		call func(*Store) error
	}{
		{"accept", func(s *Store) error { return s.Accept(context.Background(), p) }},
		{"reject", func(s *Store) error { return s.Reject(context.Background(), p) }},
		{"cancel", func(s *Store) error { return s.Cancel(context.Background(), p) }},
		{"sync", func(s *Store) error { return s.Sync(context.Background(), p) }},
		{"veto", func(s *Store) error { return s.Veto(context.Background(), p) }},
	}

	for _, a := range actions {
		client := &fakeClient{}
		s := NewStore(client)
		if err := s.Propose(context.Background(), p); err != nil {
			t.Fatalf("%s: seed propose: %v", a.name, err)
		}

		if err := a.call(s); err != nil {
			t.Fatalf("%s: %v", a.name, err)
		}
		for _, remaining := range s.ProposalsFor(p.ProposingTeamID) {
			if remaining.ID == p.ID {
				t.Errorf("%s: proposal still present in proposer bucket", a.name)
			}
		}
	}
}

func TestAction_RemoteFailureKeepsProposal(t *testing.T) {
	client := &fakeClient{}
	s := NewStore(client)
	p := sampleProposal()
	if err := s.Propose(context.Background(), p); err != nil {
		t.Fatalf("seed propose: %v", err)
	}

	client.err = errors.New("timeout")
	if err := s.Accept(context.Background(), p); err == nil {
		t.Fatal("expected remote error to propagate")
	}

	got := s.ProposalsFor(p.ProposingTeamID)
	if len(got) != 1 || got[0].ID != p.ID {
		t.Fatalf("local state changed on remote failure: %+v", got)
	}
}

func TestBootstrap_ReplacesBucketsWithServiceView(t *testing.T) {
	remote := sampleProposal()
	client := &fakeClient{listed: map[int][]trade.Proposal{
		1: {remote},
		2: nil,
	}}
	s := NewStore(client)

	// Seed a stale local entry that the service no longer knows about. It
	// must be dropped, not retried.
	stale := sampleProposal()
	stale.ID = "trade_1600000000_dead001"
	if err := s.Propose(context.Background(), stale); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := s.Bootstrap(context.Background(), []int{1, 2}); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	got := s.ProposalsFor(1)
	if len(got) != 1 || got[0].ID != remote.ID {
		t.Fatalf("bucket after bootstrap = %+v", got)
	}
}

func TestConcurrentSecondProposalBetweenSamePair(t *testing.T) {
	client := &fakeClient{}
	s := NewStore(client)

	first := sampleProposal()
	second := sampleProposal()
	second.ID = "trade_1700000001_def5678"

	if err := s.Propose(context.Background(), first); err != nil {
		t.Fatalf("first: %v", err)
	}
	if err := s.Propose(context.Background(), second); err != nil {
		t.Fatalf("second: %v", err)
	}

	if got := s.ProposalsFor(1); len(got) != 2 {
		t.Fatalf("both proposals should coexist, bucket = %+v", got)
	}
}
