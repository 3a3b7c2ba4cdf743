package trade

import (
	"context"
	"errors"
	"log"
	"sync"
)

var (
	// ErrNotRecipient is returned when a team tries to accept a proposal it
	// sent itself, or one addressed to somebody else.
	ErrNotRecipient = errors.New("trade: only the recipient may accept a proposal")
	// ErrNotProposer is returned when a team other than the proposer tries to
	// withdraw a proposal.
	ErrNotProposer = errors.New("trade: only the proposer may cancel a proposal")
	// ErrNotParty is returned when a team outside the negotiation tries to
	// reject it.
	ErrNotParty = errors.New("trade: team is not a party to this proposal")
)

// Controller drives the negotiation state machine for one league. It owns no
// storage of its own beyond the per-proposal state it has observed; the
// injected Backend is the source of truth for list membership.
//
// Redelivered actions on proposals already in a terminal state are absorbed
// as no-ops, so a retried POST cannot double-apply a transition.
type Controller struct {
	leagueID string
	backend  Backend
	settler  Settler
	notify   Notifier

	mu     sync.Mutex
	states map[string]State
}

// NewController wires a controller to a league's backend. settler and notify
// may be nil (a war-room league defers settlement to the commissioner's REST
// league view; notifications are optional everywhere).
func NewController(leagueID string, backend Backend, settler Settler, notify Notifier) *Controller {
	return &Controller{
		leagueID: leagueID,
		backend:  backend,
		settler:  settler,
		notify:   notify,
		states:   make(map[string]State),
	}
}

// LeagueID identifies which league this controller serves.
func (c *Controller) LeagueID() string { return c.leagueID }

// StateOf reports the last state this controller observed for a proposal.
// Unknown proposals (bootstrapped elsewhere) report StateProposed.
func (c *Controller) StateOf(id string) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.states[id]; ok {
		return s
	}
	return StateProposed
}

func (c *Controller) setState(id string, s State) {
	c.mu.Lock()
	c.states[id] = s
	c.mu.Unlock()
}

func (c *Controller) terminal(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.states[id].Terminal()
}

func (c *Controller) fire(p Proposal, event string) {
	if c.notify != nil {
		c.notify(c.leagueID, p, event)
	}
}

// Propose creates a new proposal and routes it to the recipient. A proposal
// that cannot be routed to both parties is dropped as a logged no-op before
// any remote call; absent identity data is a data problem, not a crash.
func (c *Controller) Propose(ctx context.Context, p Proposal) (Proposal, error) {
	if p.ID == "" {
		p.ID = NewID()
	}
	if ResolvePartyKey(p, RoleSender) == "" || ResolvePartyKey(p, RoleRecipient) == "" {
		log.Printf("trade: proposal %s has no routable parties, dropping", p.ID)
		return p, nil
	}
	if err := c.backend.Propose(ctx, p); err != nil {
		return p, err
	}
	c.setState(p.ID, StateProposed)
	c.fire(p, "proposed")
	return p, nil
}

// Accept is a recipient-only action: the proposer may never accept its own
// outgoing proposal. On success the proposal leaves both pending lists and
// waits in the commissioner queue.
func (c *Controller) Accept(ctx context.Context, p Proposal, actingTeamID int) error {
	if c.terminal(p.ID) {
		return nil
	}
	if actingTeamID == p.ProposingTeamID || actingTeamID != p.RecipientTeamID {
		return ErrNotRecipient
	}
	p.IsAccepted = true
	p.IsRejected = false
	if err := c.backend.Accept(ctx, p); err != nil {
		return err
	}
	c.setState(p.ID, StatePendingAdminApproval)
	c.fire(p, "accepted")
	return nil
}

// Reject may come from either side of the table.
func (c *Controller) Reject(ctx context.Context, p Proposal, actingTeamID int) error {
	if c.terminal(p.ID) {
		return nil
	}
	if actingTeamID != p.ProposingTeamID && actingTeamID != p.RecipientTeamID {
		return ErrNotParty
	}
	p.IsRejected = true
	p.IsAccepted = false
	if err := c.backend.Reject(ctx, p); err != nil {
		return err
	}
	c.setState(p.ID, StateRejected)
	c.fire(p, "rejected")
	return nil
}

// Cancel withdraws an outgoing proposal. Proposer-only.
func (c *Controller) Cancel(ctx context.Context, p Proposal, actingTeamID int) error {
	if c.terminal(p.ID) {
		return nil
	}
	if actingTeamID != p.ProposingTeamID {
		return ErrNotProposer
	}
	if err := c.backend.Cancel(ctx, p); err != nil {
		return err
	}
	c.setState(p.ID, StateCancelled)
	c.fire(p, "cancelled")
	return nil
}

// Approve is the commissioner's terminal yes: asset transfers are applied
// first, then the proposal is retired from the queue. A settlement failure
// leaves the proposal queued so the commissioner can retry or veto.
func (c *Controller) Approve(ctx context.Context, p Proposal) error {
	if c.terminal(p.ID) {
		return nil
	}
	if c.settler != nil {
		if err := c.settler.Apply(ctx, p); err != nil {
			return err
		}
	}
	if err := c.backend.Sync(ctx, p); err != nil {
		return err
	}
	c.setState(p.ID, StateApproved)
	c.fire(p, "approved")
	return nil
}

// Veto is the commissioner's terminal no: the proposal leaves the queue and
// no list regains it.
func (c *Controller) Veto(ctx context.Context, p Proposal) error {
	if c.terminal(p.ID) {
		return nil
	}
	if err := c.backend.Veto(ctx, p); err != nil {
		return err
	}
	c.setState(p.ID, StateVetoed)
	c.fire(p, "vetoed")
	return nil
}
