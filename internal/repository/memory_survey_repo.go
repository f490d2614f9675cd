package repository

import (
	"context"
	"slices"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/model"
)

type memorySurveyRepo struct {
	mu   sync.RWMutex
	docs map[string]*model.SurveyDocument
}

// NewMemorySurveyRepo creates a process-local survey repository
func NewMemorySurveyRepo() SurveyRepo {
	return &memorySurveyRepo{docs: make(map[string]*model.SurveyDocument)}
}

func (r *memorySurveyRepo) Create(_ context.Context, survey *model.Survey) (*model.SurveyDocument, error) {
	now := time.Now()
	doc := &model.SurveyDocument{
		ID:        primitive.NewObjectID().Hex(),
		Survey:    *survey.Clone(),
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	r.mu.Lock()
	r.docs[doc.ID] = doc
	r.mu.Unlock()
	return copyDocument(doc), nil
}

func (r *memorySurveyRepo) GetByID(_ context.Context, id string) (*model.SurveyDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[id]
	if !ok {
		return nil, nil
	}
	return copyDocument(doc), nil
}

func (r *memorySurveyRepo) List(_ context.Context) ([]*model.SurveyDocument, error) {
	r.mu.RLock()
	docs := make([]*model.SurveyDocument, 0, len(r.docs))
	for _, doc := range r.docs {
		docs = append(docs, copyDocument(doc))
	}
	r.mu.RUnlock()

	slices.SortFunc(docs, func(a, b *model.SurveyDocument) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return docs, nil
}

func (r *memorySurveyRepo) Update(_ context.Context, id string, survey *model.Survey, expectedVersion int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok || doc.Version != expectedVersion {
		return 0, ErrVersionConflict
	}
	doc.Survey = *survey.Clone()
	doc.Version++
	doc.UpdatedAt = time.Now()
	return doc.Version, nil
}

func (r *memorySurveyRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	delete(r.docs, id)
	r.mu.Unlock()
	return nil
}

func copyDocument(doc *model.SurveyDocument) *model.SurveyDocument {
	out := *doc
	out.Survey = *doc.Survey.Clone()
	return &out
}
