// Package repository persists respondents, their raw answers and their
// finalized results. Lookups that find nothing return a nil value and a nil error.
package repository

import (
	"context"
	"io"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store bundles the three repositories of one backend
type Store struct {
	Respondents RespondentRepo
	Responses   ResponseRepo
	Results     ResultRepo

	closer io.Closer
}

// NewStore assembles a store from individual repositories
func NewStore(respondents RespondentRepo, responses ResponseRepo, results ResultRepo, closer io.Closer) *Store {
	return &Store{
		Respondents: respondents,
		Responses:   responses,
		Results:     results,
		closer:      closer,
	}
}

// NewMongoStore creates the mongo-backed store
func NewMongoStore(db *mongo.Database) *Store {
	return NewStore(NewRespondentRepo(db), NewResponseRepo(db), NewResultRepo(db), nil)
}

// Close releases the backend if it owns one
func (s *Store) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func createIndex(ctx context.Context, coll *mongo.Collection, keys bson.D, unique bool) {
	opts := options.Index().SetUnique(unique)
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: keys, Options: opts})
	if err != nil {
		log.Printf("Warning: failed to create index on %s: %v", coll.Name(), err)
	}
}
