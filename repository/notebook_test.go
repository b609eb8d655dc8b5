package repository

import (
	"context"
	"testing"

	"kitnotes/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotebookRepo(t *testing.T) {
	ctx := context.Background()
	repo := GetNotebookRepo(NewMemoryStore())

	record := &model.Record{
		Author:   "alice",
		Title:    "t%2520",
		Content:  "c",
		Tags:     []string{"work", "idea"},
		Created:  1700000000000,
		LastEdit: 1700000000000,
		Star:     true,
	}

	id, err := repo.Create(ctx, record)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	_, err = repo.Create(ctx, &model.Record{Title: "orphan"})
	assert.Error(t, err, "records need an author")

	records, err := repo.FindByAuthor(ctx, "alice", 1000)
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "t%2520", got.Title)
	assert.Equal(t, []string{"work", "idea"}, got.Tags)
	assert.Equal(t, int64(1700000000000), got.LastEdit)
	assert.True(t, got.Star)

	got.Title = "renamed"
	got.Tags = nil
	got.Star = false
	require.NoError(t, repo.Update(ctx, &got))

	records, err = repo.FindByAuthor(ctx, "alice", 1000)
	require.NoError(t, err)
	assert.Equal(t, "renamed", records[0].Title)
	assert.Equal(t, []string{}, records[0].Tags)
	assert.False(t, records[0].Star)

	assert.Error(t, repo.Update(ctx, &model.Record{Author: "alice"}))

	others, err := repo.FindByAuthor(ctx, "bob", 1000)
	require.NoError(t, err)
	assert.Empty(t, others)

	require.NoError(t, repo.Delete(ctx, id))
	assert.ErrorIs(t, repo.Delete(ctx, id), ErrDocumentNotFound)
}

func TestTagsRepo(t *testing.T) {
	ctx := context.Background()
	repo := GetTagsRepo(NewMemoryStore())

	sets, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, sets)

	id, err := repo.Create(ctx, &model.TagSet{Username: "alice", Notebook: []string{"work"}})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &model.TagSet{})
	assert.Error(t, err)

	require.NoError(t, repo.Update(ctx, &model.TagSet{ObjectID: id, Username: "alice", Notebook: []string{"work", "idea"}}))
	assert.Error(t, repo.Update(ctx, &model.TagSet{Username: "alice"}))

	sets, err = repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, model.TagSet{ObjectID: id, Username: "alice", Notebook: []string{"work", "idea"}}, sets[0])
}
