package warroom

import (
	"context"

	"github.com/kbrewster21/league-office-go/internal/trade"
)

// Collection and field names shared with the document database.
const (
	CollWarRooms    = "war_rooms"
	CollTradeQueues = "trade_queues"

	FieldSentRequests     = "sentRequests"
	FieldRequests         = "requests"
	FieldApprovedRequests = "approvedRequests"
)

// Document is the shape of both a team's war room and the shared approval
// queue. A war room uses sentRequests/requests; the queue only uses
// approvedRequests.
type Document struct {
	SentRequests     []trade.Proposal `bson:"sentRequests" json:"sentRequests"`
	Requests         []trade.Proposal `bson:"requests" json:"requests"`
	ApprovedRequests []trade.Proposal `bson:"approvedRequests" json:"approvedRequests"`
}

// DocService is the document database surface the store needs. Membership
// changes go through merge primitives only, set-add and remove-matching,
// never whole-document writes: two clients editing the same list cannot
// clobber each other's entries.
type DocService interface {
	Get(ctx context.Context, collection, docID string) (Document, error)
	// Watch streams the document after each change, for live views.
	Watch(ctx context.Context, collection, docID string) (<-chan Document, error)
	// ArrayUnion appends value to a list field iff not already present.
	ArrayUnion(ctx context.Context, collection, docID, field string, value any) error
	// ArrayRemove removes entries equal to value from a list field.
	ArrayRemove(ctx context.Context, collection, docID, field string, value any) error
	// ArrayRemoveByID removes entries whose proposal ID matches, regardless
	// of the rest of the entry's fields.
	ArrayRemoveByID(ctx context.Context, collection, docID, field, tradeID string) error
}
