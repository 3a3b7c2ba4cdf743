package warroom

import (
	"context"
	"log"

	"github.com/kbrewster21/league-office-go/internal/trade"
	"golang.org/x/sync/errgroup"
)

// Store is the document-backed trade plumbing used during live drafts. Each
// team owns one war-room document per negotiation context; one shared queue
// document holds proposals both sides accepted, awaiting the commissioner.
//
// The accept transition is two removals plus one append and is not atomic: a
// crash in between can strand a proposal outside every list. That matches the
// legacy system's observable behavior on purpose. The reconcile worker counts
// such orphans as lost; nothing ever retries them automatically, because a
// retry risks double-applying asset transfers.
type Store struct {
	docs      DocService
	contextID string
}

// NewStore binds the store to one negotiation context (a draft-day event).
func NewStore(docs DocService, contextID string) *Store {
	return &Store{docs: docs, contextID: contextID}
}

func (s *Store) roomDoc(partyKey string) string { return s.contextID + ":" + partyKey }
func (s *Store) queueDoc() string               { return s.contextID + ":approved" }

// WarRoom fetches a team's current war-room document.
func (s *Store) WarRoom(ctx context.Context, partyKey string) (Document, error) {
	return s.docs.Get(ctx, CollWarRooms, s.roomDoc(partyKey))
}

// Queue fetches the shared approval queue.
func (s *Store) Queue(ctx context.Context) (Document, error) {
	return s.docs.Get(ctx, CollTradeQueues, s.queueDoc())
}

// WatchQueue streams the approval queue for the commissioner's live view.
func (s *Store) WatchQueue(ctx context.Context) (<-chan Document, error) {
	return s.docs.Watch(ctx, CollTradeQueues, s.queueDoc())
}

// pendingShape strips the acceptance flags so removals match the value that
// was originally appended to the lists. Remove-by-value only works if the
// bytes agree.
func pendingShape(p trade.Proposal) trade.Proposal {
	p.IsAccepted = false
	p.IsRejected = false
	return p
}

func (s *Store) routes(p trade.Proposal) (sender, recipient string, ok bool) {
	sender = trade.ResolvePartyKey(p, trade.RoleSender)
	recipient = trade.ResolvePartyKey(p, trade.RoleRecipient)
	if sender == "" || recipient == "" {
		log.Printf("warroom: dropping unroutable proposal %s", p.ID)
		return "", "", false
	}
	return sender, recipient, true
}

// Propose appends the offer to the proposer's own sentRequests and,
// independently, to the recipient's requests. Both writes are set-adds, so
// concurrent proposals from other teams are preserved.
func (s *Store) Propose(ctx context.Context, p trade.Proposal) error {
	if p.ID == "" {
		p.ID = trade.NewID()
	}
	sender, recipient, ok := s.routes(p)
	if !ok {
		return nil
	}
	offer := pendingShape(p)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.docs.ArrayUnion(gctx, CollWarRooms, s.roomDoc(sender), FieldSentRequests, offer)
	})
	g.Go(func() error {
		return s.docs.ArrayUnion(gctx, CollWarRooms, s.roomDoc(recipient), FieldRequests, offer)
	})
	return g.Wait()
}

// removeFromBothRooms takes the offer out of the sender's sentRequests and
// the recipient's requests, by value. Unrelated concurrent removals from the
// same lists are unaffected.
func (s *Store) removeFromBothRooms(ctx context.Context, p trade.Proposal, sender, recipient string) error {
	offer := pendingShape(p)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.docs.ArrayRemove(gctx, CollWarRooms, s.roomDoc(sender), FieldSentRequests, offer)
	})
	g.Go(func() error {
		return s.docs.ArrayRemove(gctx, CollWarRooms, s.roomDoc(recipient), FieldRequests, offer)
	})
	return g.Wait()
}

// Accept moves the offer from both war rooms into the approval queue. The
// queue append only happens once both removals have resolved.
func (s *Store) Accept(ctx context.Context, p trade.Proposal) error {
	sender, recipient, ok := s.routes(p)
	if !ok {
		return nil
	}
	if err := s.removeFromBothRooms(ctx, p, sender, recipient); err != nil {
		return err
	}
	queued := p
	queued.IsAccepted = true
	queued.IsRejected = false
	return s.docs.ArrayUnion(ctx, CollTradeQueues, s.queueDoc(), FieldApprovedRequests, queued)
}

// Reject removes the offer from both war rooms. The queue is never touched.
func (s *Store) Reject(ctx context.Context, p trade.Proposal) error {
	sender, recipient, ok := s.routes(p)
	if !ok {
		return nil
	}
	return s.removeFromBothRooms(ctx, p, sender, recipient)
}

// Cancel is the proposer withdrawing: the same removals as Reject.
func (s *Store) Cancel(ctx context.Context, p trade.Proposal) error {
	sender, recipient, ok := s.routes(p)
	if !ok {
		return nil
	}
	return s.removeFromBothRooms(ctx, p, sender, recipient)
}

// Sync retires an approved proposal from the queue. By ID, not value: the
// commissioner's view may hold a serialized copy that differs from the stored
// entry everywhere except the ID.
func (s *Store) Sync(ctx context.Context, p trade.Proposal) error {
	return s.docs.ArrayRemoveByID(ctx, CollTradeQueues, s.queueDoc(), FieldApprovedRequests, p.ID)
}

// Veto discards an accepted proposal from the queue. No list regains it.
func (s *Store) Veto(ctx context.Context, p trade.Proposal) error {
	return s.docs.ArrayRemoveByID(ctx, CollTradeQueues, s.queueDoc(), FieldApprovedRequests, p.ID)
}
