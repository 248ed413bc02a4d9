package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SetupIndexes creates the notes indexes. It is idempotent: creating an
// index that already exists with the same spec is a no-op in mongo.
func (r *NotesRepo) SetupIndexes(ctx context.Context) ([]string, error) {
	noteIndexes := []mongo.IndexModel{
		// list by owner in insertion order
		{
			Keys: bson.D{
				{Key: "user", Value: 1},
				{Key: "_id", Value: 1},
			},
			Options: options.Index().
				SetName("user_notes_order"),
		},
	}

	names, err := r.MongoCollection.Indexes().CreateMany(ctx, noteIndexes)
	if err != nil {
		return nil, fmt.Errorf("failed to create notes indexes: %w", err)
	}
	return names, nil
}
