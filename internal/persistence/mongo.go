// Package persistence stores completed matches for history/replay, the
// way the teacher's common/database package wraps the mongo driver for
// every node that needs durable storage.
package persistence

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/lamyinia/mahjongmatch/internal/config"
	"github.com/lamyinia/mahjongmatch/internal/tile"
)

// MatchRecord is the durable summary of one completed match.
type MatchRecord struct {
	MatchID   uint32      `bson:"matchId"`
	Players   [4]string   `bson:"players"` // indexed by tile.Wind
	Winner    *tile.Wind  `bson:"winner,omitempty"`
	EndedAt   time.Time   `bson:"endedAt"`
}

// Store wraps the mongo client and the matches collection.
type Store struct {
	cli        *mongo.Client
	db         *mongo.Database
	collection *mongo.Collection
}

// NewStore connects to mongo per conf and fails fast if it can't reach
// the primary, matching the teacher's connect-or-fatal startup pattern
// for durable storage dependencies.
func NewStore(conf config.MongoConf) (*Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Client().ApplyURI(conf.Url)
	if conf.MinPoolSize > 0 {
		opts.SetMinPoolSize(uint64(conf.MinPoolSize))
	}
	if conf.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(uint64(conf.MaxPoolSize))
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("persistence: connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("persistence: ping: %w", err)
	}

	db := client.Database(conf.Db)
	return &Store{cli: client, db: db, collection: db.Collection("matches")}, nil
}

// SaveMatch persists a completed match's record.
func (s *Store) SaveMatch(ctx context.Context, rec MatchRecord) error {
	_, err := s.collection.InsertOne(ctx, rec)
	if err != nil {
		return fmt.Errorf("persistence: save match %d: %w", rec.MatchID, err)
	}
	return nil
}

// MatchHistory returns the most recent matches userID played in, newest
// first.
func (s *Store) MatchHistory(ctx context.Context, userID string, limit int64) ([]MatchRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "endedAt", Value: -1}}).SetLimit(limit)
	cursor, err := s.collection.Find(ctx, bson.M{"players": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("persistence: query history for %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var records []MatchRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("persistence: decode history for %s: %w", userID, err)
	}
	return records, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.cli.Disconnect(ctx)
}
