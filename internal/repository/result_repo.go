package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"leadstyle/internal/model"
)

// ResultRepo handles persistence of finalized results
type ResultRepo interface {
	// SaveOnce stores the result unless the respondent already has one, in
	// which case the existing result is returned with created=false.
	SaveOnce(ctx context.Context, result *model.StoredResult) (stored *model.StoredResult, created bool, err error)
	GetByRespondent(ctx context.Context, respondentID string) (*model.StoredResult, error)
	List(ctx context.Context) ([]*model.StoredResult, error)
}

type resultRepo struct {
	collection *mongo.Collection
}

// NewResultRepo creates a new result repository
func NewResultRepo(db *mongo.Database) ResultRepo {
	repo := &resultRepo{
		collection: db.Collection("results"),
	}
	createIndex(context.Background(), repo.collection, bson.D{{Key: "respondentId", Value: 1}}, true)
	createIndex(context.Background(), repo.collection, bson.D{{Key: "createdAt", Value: -1}}, false)
	return repo
}

func (r *resultRepo) SaveOnce(ctx context.Context, result *model.StoredResult) (*model.StoredResult, bool, error) {
	if result.ID == "" {
		result.ID = uuid.NewString()
	}
	if result.CreatedAt.IsZero() {
		result.CreatedAt = time.Now().UTC()
	}

	filter := bson.M{"respondentId": result.RespondentID}
	update := bson.M{"$setOnInsert": result}
	res, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return nil, false, err
	}
	if err == nil && res.UpsertedCount == 1 {
		return result, true, nil
	}

	// lost the race or already finalized
	existing, err := r.GetByRespondent(ctx, result.RespondentID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *resultRepo) GetByRespondent(ctx context.Context, respondentID string) (*model.StoredResult, error) {
	var result model.StoredResult
	err := r.collection.FindOne(ctx, bson.M{"respondentId": respondentID}).Decode(&result)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *resultRepo) List(ctx context.Context) ([]*model.StoredResult, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []*model.StoredResult
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}
