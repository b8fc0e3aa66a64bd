package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"techquiz-core/models"
)

// MongoStore keeps attempts in the "attempts" collection. Attempt ids are
// UUID strings, stored as-is in _id.
type MongoStore struct {
	Col *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{Col: db.Collection("attempts")}
}

func (s *MongoStore) Save(ctx context.Context, att *models.Attempt) error {
	_, err := s.Col.ReplaceOne(
		ctx,
		bson.M{"_id": att.ID},
		att,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (s *MongoStore) Find(ctx context.Context, id string) (*models.Attempt, error) {
	var att models.Attempt
	err := s.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&att)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &att, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	_, err := s.Col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
