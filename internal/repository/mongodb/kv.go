// Package mongodb stores each key as one document of a MongoDB collection.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"hiveportal/internal/domain"
)

const (
	// CollectionName is the collection holding one document per key.
	CollectionName = "kv_store"

	// maxDocumentBytes is the server's BSON document limit.
	maxDocumentBytes = 16 << 20
	// documentOverhead covers field names, the timestamp and BSON framing.
	documentOverhead = 128
)

// Server error codes that mean the value could not fit.
var quotaCodes = []int{
	10334, // BSONObjectTooLarge
	14031, // OutOfDiskSpace
	12501, // quota exceeded
}

type kvDocument struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type kvStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// Connect opens a client against uri and pings the primary.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}
	return client, nil
}

// NewKVStore returns a domain.KVStore backed by the kv_store collection of database.
// Close disconnects the client.
func NewKVStore(client *mongo.Client, database string) domain.KVStore {
	return &kvStore{
		client: client,
		coll:   client.Database(database).Collection(CollectionName),
	}
}

func (s *kvStore) Get(ctx context.Context, key string) ([]byte, error) {
	var doc kvDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", key, err)
	}
	return []byte(doc.Value), nil
}

func (s *kvStore) Set(ctx context.Context, key string, value []byte) error {
	if err := checkDocumentSize(key, value); err != nil {
		return err
	}
	doc := kvDocument{Key: key, Value: string(value), UpdatedAt: time.Now().UTC()}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return mapWriteErr(key, err)
	}
	return nil
}

func (s *kvStore) Delete(ctx context.Context, key string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *kvStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func checkDocumentSize(key string, value []byte) error {
	size := len(key) + len(value) + documentOverhead
	if size > maxDocumentBytes {
		return fmt.Errorf("set %q: document of %d bytes exceeds %d: %w", key, size, maxDocumentBytes, domain.ErrQuotaExceeded)
	}
	return nil
}

func mapWriteErr(key string, err error) error {
	var se mongo.ServerError
	if errors.As(err, &se) {
		for _, code := range quotaCodes {
			if se.HasErrorCode(code) {
				return fmt.Errorf("write %s: %v: %w", key, err, domain.ErrQuotaExceeded)
			}
		}
	}
	return fmt.Errorf("write %s: %w", key, err)
}
