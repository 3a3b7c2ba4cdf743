package trade

import "context"

// Backend is the capability a league's trade plumbing must provide. Two
// implementations exist: the REST-indexed proposal store used by the football
// leagues and the war-room document store used during live drafts. Callers
// (the settlement controller, handlers) only ever see this interface.
type Backend interface {
	// Propose registers a new proposal with both parties.
	Propose(ctx context.Context, p Proposal) error
	// Accept moves the proposal out of both parties' pending lists and into
	// the commissioner's approval queue.
	Accept(ctx context.Context, p Proposal) error
	// Reject removes the proposal from both parties' pending lists.
	Reject(ctx context.Context, p Proposal) error
	// Cancel withdraws the proposal; same removals as Reject.
	Cancel(ctx context.Context, p Proposal) error
	// Sync confirms a commissioner approval and retires the proposal.
	Sync(ctx context.Context, p Proposal) error
	// Veto discards an accepted proposal from the approval queue.
	Veto(ctx context.Context, p Proposal) error
}

// Settler applies an approved proposal's asset transfers to the rosters and
// pick ledger. Implemented over Postgres in internal/store.
type Settler interface {
	Apply(ctx context.Context, p Proposal) error
}

// Notifier announces a successful transition. Failures are the notifier's
// problem; a trade state change is never rolled back because a message did
// not send.
type Notifier func(leagueID string, p Proposal, event string)
