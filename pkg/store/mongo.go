package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoCollection = "documents"

// MongoStore keeps documents in a MongoDB collection so that several serve
// instances can share them.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB at uri and uses the given database.
// The connection is verified before the store is returned.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(mongoCollection),
	}, nil
}

// Get retrieves a document by ID.
func (s *MongoStore) Get(ctx context.Context, id string) (*Document, error) {
	var doc Document
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if doc.IsExpired() {
		_, _ = s.coll.DeleteOne(ctx, bson.M{"_id": id})
		return nil, ErrExpired
	}
	return &doc, nil
}

// Put stores a document, replacing any existing one with the same ID.
func (s *MongoStore) Put(ctx context.Context, doc *Document) error {
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	return err
}

// Delete removes a document.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// List returns document metadata (HTML projected out), newest first.
func (s *MongoStore) List(ctx context.Context, limit int) ([]*Document, error) {
	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetProjection(bson.M{"html": 0})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []*Document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := docs[:0]
	for _, doc := range docs {
		if !doc.IsExpired() {
			out = append(out, doc)
		}
	}
	return out, nil
}

// Cleanup removes expired documents. Documents without an expiry are kept.
func (s *MongoStore) Cleanup(ctx context.Context) error {
	filter := bson.M{"expires_at": bson.M{
		"$gt": time.Time{},
		"$lt": time.Now(),
	}}
	_, err := s.coll.DeleteMany(ctx, filter)
	return err
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
