package docstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/kbrewster21/league-office-go/internal/warroom"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Merge implements warroom.DocService over MongoDB. $addToSet and $pull give
// the set-union/set-remove semantics the war rooms depend on: two clients
// editing the same list concurrently both land, because neither ever writes
// the whole list back.
type Merge struct {
	db *mongo.Database
}

func NewMerge(db *mongo.Database) *Merge {
	return &Merge{db: db}
}

func (m *Merge) Get(ctx context.Context, collection, docID string) (warroom.Document, error) {
	var doc warroom.Document
	err := m.db.Collection(collection).FindOne(ctx, bson.M{"_id": docID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// A missing document reads as empty lists, same as a fresh team.
		return warroom.Document{}, nil
	}
	if err != nil {
		return warroom.Document{}, fmt.Errorf("docstore: get %s/%s: %w", collection, docID, err)
	}
	return doc, nil
}

func (m *Merge) ArrayUnion(ctx context.Context, collection, docID, field string, value any) error {
	_, err := m.db.Collection(collection).UpdateOne(ctx,
		bson.M{"_id": docID},
		bson.M{"$addToSet": bson.M{field: value}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("docstore: union %s/%s.%s: %w", collection, docID, field, err)
	}
	return nil
}

func (m *Merge) ArrayRemove(ctx context.Context, collection, docID, field string, value any) error {
	_, err := m.db.Collection(collection).UpdateOne(ctx,
		bson.M{"_id": docID},
		bson.M{"$pull": bson.M{field: value}},
	)
	if err != nil {
		return fmt.Errorf("docstore: remove %s/%s.%s: %w", collection, docID, field, err)
	}
	return nil
}

func (m *Merge) ArrayRemoveByID(ctx context.Context, collection, docID, field, tradeID string) error {
	_, err := m.db.Collection(collection).UpdateOne(ctx,
		bson.M{"_id": docID},
		bson.M{"$pull": bson.M{field: bson.M{"id": tradeID}}},
	)
	if err != nil {
		return fmt.Errorf("docstore: remove by id %s/%s.%s: %w", collection, docID, field, err)
	}
	return nil
}

// Watch streams the document after every change via a change stream. The
// channel closes when ctx is cancelled or the stream dies.
func (m *Merge) Watch(ctx context.Context, collection, docID string) (<-chan warroom.Document, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "fullDocument._id", Value: docID}}}},
	}
	stream, err := m.db.Collection(collection).Watch(ctx, pipeline,
		options.ChangeStream().SetFullDocument(options.UpdateLookup))
	if err != nil {
		return nil, fmt.Errorf("docstore: watch %s/%s: %w", collection, docID, err)
	}

	ch := make(chan warroom.Document, 1)
	go func() {
		defer close(ch)
		defer stream.Close(context.Background())
		for stream.Next(ctx) {
			var event struct {
				FullDocument warroom.Document `bson:"fullDocument"`
			}
			if err := stream.Decode(&event); err != nil {
				continue
			}
			select {
			case ch <- event.FullDocument:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}
