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

// ResponseRepo handles persistence of raw answers.
// A respondent has at most one response per question; saving again replaces it.
type ResponseRepo interface {
	Save(ctx context.Context, response *model.Response) error
	GetByRespondent(ctx context.Context, respondentID string) ([]*model.Response, error)
}

type responseRepo struct {
	collection *mongo.Collection
}

// NewResponseRepo creates a new response repository
func NewResponseRepo(db *mongo.Database) ResponseRepo {
	repo := &responseRepo{
		collection: db.Collection("responses"),
	}
	createIndex(context.Background(), repo.collection, bson.D{
		{Key: "respondentId", Value: 1},
		{Key: "questionId", Value: 1},
	}, true)
	return repo
}

func (r *responseRepo) Save(ctx context.Context, response *model.Response) error {
	if response.AnsweredAt.IsZero() {
		response.AnsweredAt = time.Now().UTC()
	}
	filter := bson.M{"respondentId": response.RespondentID, "questionId": response.QuestionID}
	update := bson.M{
		"$set": bson.M{
			"answer":     response.Answer,
			"answeredAt": response.AnsweredAt,
		},
		"$setOnInsert": bson.M{"_id": uuid.NewString()},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var saved model.Response
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&saved); err != nil {
		return err
	}
	response.ID = saved.ID
	return nil
}

func (r *responseRepo) GetByRespondent(ctx context.Context, respondentID string) ([]*model.Response, error) {
	opts := options.Find().SetSort(bson.D{{Key: "questionId", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"respondentId": respondentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var responses []*model.Response
	if err := cursor.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}
