package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"leadstyle/internal/model"
)

// RespondentRepo handles persistence of respondents
type RespondentRepo interface {
	Create(ctx context.Context, respondent *model.Respondent) error
	GetByID(ctx context.Context, id string) (*model.Respondent, error)
	List(ctx context.Context) ([]*model.Respondent, error)
}

type respondentRepo struct {
	collection *mongo.Collection
}

// NewRespondentRepo creates a new respondent repository
func NewRespondentRepo(db *mongo.Database) RespondentRepo {
	repo := &respondentRepo{
		collection: db.Collection("respondents"),
	}
	createIndex(context.Background(), repo.collection, bson.D{{Key: "createdAt", Value: -1}}, false)
	return repo
}

func (r *respondentRepo) Create(ctx context.Context, respondent *model.Respondent) error {
	if respondent.CreatedAt.IsZero() {
		respondent.CreatedAt = time.Now().UTC()
	}
	_, err := r.collection.InsertOne(ctx, respondent)
	return err
}

func (r *respondentRepo) GetByID(ctx context.Context, id string) (*model.Respondent, error) {
	var respondent model.Respondent
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&respondent)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &respondent, nil
}

func (r *respondentRepo) List(ctx context.Context) ([]*model.Respondent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var respondents []*model.Respondent
	if err := cursor.All(ctx, &respondents); err != nil {
		return nil, err
	}
	return respondents, nil
}
