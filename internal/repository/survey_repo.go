package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/model"
)

// ErrVersionConflict is returned when a survey changed since it was loaded
var ErrVersionConflict = errors.New("survey was modified concurrently")

// SurveyRepo handles MongoDB operations for survey documents
type SurveyRepo interface {
	Create(ctx context.Context, survey *model.Survey) (*model.SurveyDocument, error)
	GetByID(ctx context.Context, id string) (*model.SurveyDocument, error)
	List(ctx context.Context) ([]*model.SurveyDocument, error)
	// Update stores survey if the document is still at expectedVersion and
	// returns the new version
	Update(ctx context.Context, id string, survey *model.Survey, expectedVersion int64) (int64, error)
	Delete(ctx context.Context, id string) error
}

type surveyRepo struct {
	collection *mongo.Collection
}

// NewSurveyRepo creates a new survey repository
func NewSurveyRepo(db *mongo.Database) SurveyRepo {
	return &surveyRepo{
		collection: db.Collection("surveys"),
	}
}

func (r *surveyRepo) Create(ctx context.Context, survey *model.Survey) (*model.SurveyDocument, error) {
	now := time.Now()
	doc := &model.SurveyDocument{
		Survey:    *survey,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, errors.New("unexpected inserted id type")
	}
	doc.ID = oid.Hex()
	return doc, nil
}

func (r *surveyRepo) GetByID(ctx context.Context, id string) (*model.SurveyDocument, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// not an id we could have issued
		return nil, nil
	}

	var doc model.SurveyDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	doc.ID = id
	return &doc, nil
}

func (r *surveyRepo) List(ctx context.Context) ([]*model.SurveyDocument, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := []*model.SurveyDocument{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *surveyRepo) Update(ctx context.Context, id string, survey *model.Survey, expectedVersion int64) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, ErrVersionConflict
	}

	next := expectedVersion + 1
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oid, "version": expectedVersion},
		bson.M{"$set": bson.M{
			"survey":    survey,
			"version":   next,
			"updatedAt": time.Now(),
		}},
	)
	if err != nil {
		return 0, err
	}
	if result.MatchedCount == 0 {
		return 0, ErrVersionConflict
	}
	return next, nil
}

func (r *surveyRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
