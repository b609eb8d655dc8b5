package repository

import (
	"context"
	"errors"

	"kitnotes/model"

	"go.mongodb.org/mongo-driver/bson"
)

// TagsRepo maps TagSets onto the "Tags" collection.
type TagsRepo struct {
	Store RecordStore
}

func GetTagsRepo(store RecordStore) *TagsRepo {
	return &TagsRepo{Store: store}
}

func (r *TagsRepo) FindByUsername(ctx context.Context, username string) ([]model.TagSet, error) {
	docs, err := r.Store.Query(ctx, TagsCollection, bson.M{"username": username}, 0)
	if err != nil {
		return nil, err
	}

	sets := make([]model.TagSet, 0, len(docs))
	for _, doc := range docs {
		var set model.TagSet
		if err := fromDocument(doc, &set); err != nil {
			return nil, err
		}
		if set.Notebook == nil {
			set.Notebook = []string{}
		}
		sets = append(sets, set)
	}
	return sets, nil
}

func (r *TagsRepo) Create(ctx context.Context, set *model.TagSet) (string, error) {
	if set.Username == "" {
		return "", errors.New("username is required")
	}

	doc, err := toDocument(set)
	if err != nil {
		return "", err
	}
	return r.Store.Create(ctx, TagsCollection, doc)
}

func (r *TagsRepo) Update(ctx context.Context, set *model.TagSet) error {
	if set.ObjectID == "" {
		return errors.New("tag set id is required")
	}

	doc, err := toDocument(set)
	if err != nil {
		return err
	}
	return r.Store.Update(ctx, TagsCollection, set.ObjectID, doc)
}
