package warroom

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/kbrewster21/league-office-go/internal/trade"
)

// memDocs is an in-memory DocService with the same set semantics the real
// document database provides: add-if-absent, remove-matching-value. It also
// records every mutation in order so tests can assert sequencing.
type memDocs struct {
	mu   sync.Mutex
	docs map[string]*Document // "collection/docID"
	ops  []string
}

func newMemDocs() *memDocs {
	return &memDocs{docs: make(map[string]*Document)}
}

func key(collection, docID string) string { return collection + "/" + docID }

func (m *memDocs) doc(collection, docID string) *Document {
	k := key(collection, docID)
	if m.docs[k] == nil {
		m.docs[k] = &Document{}
	}
	return m.docs[k]
}

func (m *memDocs) fieldSlice(d *Document, field string) *[]trade.Proposal {
	switch field {
	case FieldSentRequests:
		return &d.SentRequests
	case FieldRequests:
		return &d.Requests
	case FieldApprovedRequests:
		return &d.ApprovedRequests
	}
	panic("unknown field " + field)
}

func (m *memDocs) Get(ctx context.Context, collection, docID string) (Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.doc(collection, docID), nil
}

func (m *memDocs) Watch(ctx context.Context, collection, docID string) (<-chan Document, error) {
	ch := make(chan Document)
	close(ch)
	return ch, nil
}

func (m *memDocs) ArrayUnion(ctx context.Context, collection, docID, field string, value any) error {
	p := value.(trade.Proposal)
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.fieldSlice(m.doc(collection, docID), field)
	for _, existing := range *list {
		if reflect.DeepEqual(existing, p) {
			return nil
		}
	}
	*list = append(*list, p)
	m.ops = append(m.ops, fmt.Sprintf("union:%s/%s.%s:%s", collection, docID, field, p.ID))
	return nil
}

func (m *memDocs) ArrayRemove(ctx context.Context, collection, docID, field string, value any) error {
	p := value.(trade.Proposal)
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.fieldSlice(m.doc(collection, docID), field)
	kept := (*list)[:0]
	for _, existing := range *list {
		if !reflect.DeepEqual(existing, p) {
			kept = append(kept, existing)
		}
	}
	*list = kept
	m.ops = append(m.ops, fmt.Sprintf("remove:%s/%s.%s:%s", collection, docID, field, p.ID))
	return nil
}

func (m *memDocs) ArrayRemoveByID(ctx context.Context, collection, docID, field, tradeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.fieldSlice(m.doc(collection, docID), field)
	kept := (*list)[:0]
	for _, existing := range *list {
		if existing.ID != tradeID {
			kept = append(kept, existing)
		}
	}
	*list = kept
	m.ops = append(m.ops, fmt.Sprintf("removeByID:%s/%s.%s:%s", collection, docID, field, tradeID))
	return nil
}

func (m *memDocs) contains(collection, docID, field, tradeID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range *m.fieldSlice(m.doc(collection, docID), field) {
		if p.ID == tradeID {
			return true
		}
	}
	return false
}

func offerBetween(senderID, recipientID int) trade.Proposal {
	return trade.Proposal{
		ID:              trade.NewID(),
		ProposingTeamID: senderID,
		RecipientTeamID: recipientID,
		ProposingTeamOptions: []trade.Asset{
			{Kind: trade.AssetPlayer, TeamID: senderID, RefID: "p1"},
		},
		RecipientTeamOptions: []trade.Asset{
			{Kind: trade.AssetDraftPick, TeamID: recipientID, RefID: "d1"},
		},
	}
}

func TestPropose_LandsInBothWarRooms(t *testing.T) {
	docs := newMemDocs()
	s := NewStore(docs, "draft-2026")
	p := offerBetween(1, 2)

	if err := s.Propose(context.Background(), p); err != nil {
		t.Fatalf("propose: %v", err)
	}

	if !docs.contains(CollWarRooms, "draft-2026:1", FieldSentRequests, p.ID) {
		t.Error("sender's sentRequests missing the offer")
	}
	if !docs.contains(CollWarRooms, "draft-2026:2", FieldRequests, p.ID) {
		t.Error("recipient's requests missing the offer")
	}
}

func TestPropose_SetUnionConvergence(t *testing.T) {
	// Two teams propose to the same recipient concurrently; both offers must
	// survive regardless of apply order.
	docs := newMemDocs()
	s := NewStore(docs, "draft-2026")
	a := offerBetween(1, 3)
	b := offerBetween(2, 3)

	var wg sync.WaitGroup
	for _, p := range []trade.Proposal{a, b} {
		wg.Add(1)
		go func(p trade.Proposal) {
			defer wg.Done()
			if err := s.Propose(context.Background(), p); err != nil {
				t.Errorf("propose %s: %v", p.ID, err)
			}
		}(p)
	}
	wg.Wait()

	for _, p := range []trade.Proposal{a, b} {
		if !docs.contains(CollWarRooms, "draft-2026:3", FieldRequests, p.ID) {
			t.Errorf("recipient lost offer %s under concurrency", p.ID)
		}
	}
}

func TestPropose_DuplicateAppendIsAbsorbed(t *testing.T) {
	docs := newMemDocs()
	s := NewStore(docs, "draft-2026")
	p := offerBetween(1, 2)

	for i := 0; i < 2; i++ {
		if err := s.Propose(context.Background(), p); err != nil {
			t.Fatalf("propose #%d: %v", i, err)
		}
	}

	room, _ := s.WarRoom(context.Background(), "1")
	if len(room.SentRequests) != 1 {
		t.Fatalf("set-add should dedupe, sentRequests = %d entries", len(room.SentRequests))
	}
}

func TestPropose_UnroutableIsNoOp(t *testing.T) {
	docs := newMemDocs()
	s := NewStore(docs, "draft-2026")

	if err := s.Propose(context.Background(), trade.Proposal{}); err != nil {
		t.Fatalf("unroutable propose should be a nil no-op, got %v", err)
	}
	if len(docs.ops) != 0 {
		t.Fatalf("no document writes expected, got %v", docs.ops)
	}
}

func TestAccept_MutualExclusivityAndQueueGating(t *testing.T) {
	docs := newMemDocs()
	s := NewStore(docs, "draft-2026")
	p := offerBetween(1, 2)

	if err := s.Propose(context.Background(), p); err != nil {
		t.Fatalf("propose: %v", err)
	}
	if err := s.Accept(context.Background(), p); err != nil {
		t.Fatalf("accept: %v", err)
	}

	if docs.contains(CollWarRooms, "draft-2026:1", FieldSentRequests, p.ID) {
		t.Error("offer still in sender's sentRequests after accept")
	}
	if docs.contains(CollWarRooms, "draft-2026:2", FieldRequests, p.ID) {
		t.Error("offer still in recipient's requests after accept")
	}
	if !docs.contains(CollTradeQueues, "draft-2026:approved", FieldApprovedRequests, p.ID) {
		t.Error("offer missing from approval queue after accept")
	}

	// The queue append must come after both war-room removals.
	var removals, queueAt int
	queueAt = -1
	for i, op := range docs.ops {
		if op == fmt.Sprintf("remove:%s/draft-2026:1.%s:%s", CollWarRooms, FieldSentRequests, p.ID) ||
			op == fmt.Sprintf("remove:%s/draft-2026:2.%s:%s", CollWarRooms, FieldRequests, p.ID) {
			removals = i
		}
		if op == fmt.Sprintf("union:%s/draft-2026:approved.%s:%s", CollTradeQueues, FieldApprovedRequests, p.ID) {
			queueAt = i
		}
	}
	if queueAt < 0 {
		t.Fatal("queue append never happened")
	}
	if queueAt < removals {
		t.Fatalf("queue append at op %d before last removal at %d: %v", queueAt, removals, docs.ops)
	}
}

func TestReject_RemovesFromBothListsOnly(t *testing.T) {
	docs := newMemDocs()
	s := NewStore(docs, "draft-2026")
	p := offerBetween(1, 2)

	if err := s.Propose(context.Background(), p); err != nil {
		t.Fatalf("propose: %v", err)
	}
	if err := s.Reject(context.Background(), p); err != nil {
		t.Fatalf("reject: %v", err)
	}

	if docs.contains(CollWarRooms, "draft-2026:1", FieldSentRequests, p.ID) ||
		docs.contains(CollWarRooms, "draft-2026:2", FieldRequests, p.ID) {
		t.Error("offer survived reject")
	}
	if docs.contains(CollTradeQueues, "draft-2026:approved", FieldApprovedRequests, p.ID) {
		t.Error("reject must never touch the queue")
	}
}

func TestCancel_QueueNeverTouched(t *testing.T) {
	docs := newMemDocs()
	s := NewStore(docs, "draft-2026")
	p := offerBetween(1, 2)

	if err := s.Propose(context.Background(), p); err != nil {
		t.Fatalf("propose: %v", err)
	}
	if err := s.Cancel(context.Background(), p); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	if docs.contains(CollWarRooms, "draft-2026:1", FieldSentRequests, p.ID) ||
		docs.contains(CollWarRooms, "draft-2026:2", FieldRequests, p.ID) {
		t.Error("offer survived cancel")
	}
	queue, _ := s.Queue(context.Background())
	if len(queue.ApprovedRequests) != 0 {
		t.Error("cancel must never touch the queue")
	}
}

func TestVeto_MatchesByIDNotValue(t *testing.T) {
	docs := newMemDocs()
	s := NewStore(docs, "draft-2026")
	p := offerBetween(1, 2)

	if err := s.Propose(context.Background(), p); err != nil {
		t.Fatalf("propose: %v", err)
	}
	if err := s.Accept(context.Background(), p); err != nil {
		t.Fatalf("accept: %v", err)
	}

	// The commissioner's copy round-tripped through JSON and differs from the
	// stored entry in everything but the ID.
	adminCopy := trade.Proposal{ID: p.ID}
	if err := s.Veto(context.Background(), adminCopy); err != nil {
		t.Fatalf("veto: %v", err)
	}

	if docs.contains(CollTradeQueues, "draft-2026:approved", FieldApprovedRequests, p.ID) {
		t.Error("veto by ID failed to clear the queue entry")
	}
	if docs.contains(CollWarRooms, "draft-2026:1", FieldSentRequests, p.ID) ||
		docs.contains(CollWarRooms, "draft-2026:2", FieldRequests, p.ID) {
		t.Error("veto must not resurrect the offer in any war room")
	}
}

func TestConcurrentUnrelatedRemovals_BothSucceed(t *testing.T) {
	docs := newMemDocs()
	s := NewStore(docs, "draft-2026")
	a := offerBetween(1, 3)
	b := offerBetween(2, 3)

	for _, p := range []trade.Proposal{a, b} {
		if err := s.Propose(context.Background(), p); err != nil {
			t.Fatalf("propose: %v", err)
		}
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); _ = s.Reject(context.Background(), a) }()
	go func() { defer wg.Done(); _ = s.Reject(context.Background(), b) }()
	wg.Wait()

	room, _ := s.WarRoom(context.Background(), "3")
	if len(room.Requests) != 0 {
		t.Fatalf("concurrent removals clobbered each other, requests = %+v", room.Requests)
	}
}

func TestFullNegotiation_ExampleScenario(t *testing.T) {
	// Team 1 offers player P1 for team 2's pick D1; team 2 accepts; the
	// commissioner vetoes. The trade dies and nothing regains it.
	docs := newMemDocs()
	s := NewStore(docs, "draft-2026")
	p := offerBetween(1, 2)

	if err := s.Propose(context.Background(), p); err != nil {
		t.Fatalf("propose: %v", err)
	}
	if err := s.Accept(context.Background(), p); err != nil {
		t.Fatalf("accept: %v", err)
	}
	queue, _ := s.Queue(context.Background())
	if len(queue.ApprovedRequests) != 1 || queue.ApprovedRequests[0].ID != p.ID {
		t.Fatalf("queue after accept = %+v", queue.ApprovedRequests)
	}
	if !queue.ApprovedRequests[0].IsAccepted {
		t.Error("queued copy should carry the accepted flag")
	}

	if err := s.Veto(context.Background(), p); err != nil {
		t.Fatalf("veto: %v", err)
	}
	queue, _ = s.Queue(context.Background())
	if len(queue.ApprovedRequests) != 0 {
		t.Fatalf("queue after veto = %+v", queue.ApprovedRequests)
	}
	for _, partyKey := range []string{"1", "2"} {
		room, _ := s.WarRoom(context.Background(), partyKey)
		if len(room.SentRequests)+len(room.Requests) != 0 {
			t.Errorf("war room %s regained entries after veto: %+v", partyKey, room)
		}
	}
}
