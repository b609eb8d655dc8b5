package repository

import (
	"context"
	"errors"

	"kitnotes/model"

	"go.mongodb.org/mongo-driver/bson"
)

// NotebookRepo maps Records onto the "Notebook" collection. Titles and
// contents pass through untouched; encoding is the caller's business.
type NotebookRepo struct {
	Store RecordStore
}

func GetNotebookRepo(store RecordStore) *NotebookRepo {
	return &NotebookRepo{Store: store}
}

// FindByAuthor returns up to limit records written by author, in store order.
func (r *NotebookRepo) FindByAuthor(ctx context.Context, author string, limit int) ([]model.Record, error) {
	docs, err := r.Store.Query(ctx, NotebookCollection, bson.M{"author": author}, limit)
	if err != nil {
		return nil, err
	}

	records := make([]model.Record, 0, len(docs))
	for _, doc := range docs {
		var record model.Record
		if err := fromDocument(doc, &record); err != nil {
			return nil, err
		}
		if record.Tags == nil {
			record.Tags = []string{}
		}
		records = append(records, record)
	}
	return records, nil
}

// Create stores record and returns the id assigned by the store.
func (r *NotebookRepo) Create(ctx context.Context, record *model.Record) (string, error) {
	if record.Author == "" {
		return "", errors.New("author is required")
	}

	doc, err := toDocument(record)
	if err != nil {
		return "", err
	}
	return r.Store.Create(ctx, NotebookCollection, doc)
}

// Update overwrites every field of the stored record with the same id.
func (r *NotebookRepo) Update(ctx context.Context, record *model.Record) error {
	if record.ID == "" {
		return errors.New("record id is required")
	}

	doc, err := toDocument(record)
	if err != nil {
		return err
	}
	return r.Store.Update(ctx, NotebookCollection, record.ID, doc)
}

func (r *NotebookRepo) Delete(ctx context.Context, id string) error {
	return r.Store.Delete(ctx, NotebookCollection, id)
}
