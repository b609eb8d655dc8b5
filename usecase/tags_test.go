package usecase_test

import (
	"context"
	"errors"
	"testing"

	"kitnotes/model"
	"kitnotes/repository"
	"kitnotes/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveTags_CreatesThenUpdates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Open(ctx, alice)
	require.NoError(t, err)
	f.store.Reset()

	toast, err := f.svc.SaveTags(ctx, alice, []string{"work", "idea"})
	require.NoError(t, err)
	assert.Equal(t, usecase.ToastTagsAdded, toast)
	assert.Equal(t, []string{"query:Tags", "create:Tags", "query:Tags"}, f.store.Calls())
	assert.ElementsMatch(t, []string{"work", "idea"}, f.svc.LoadTags(ctx, alice))

	state, err := f.svc.State(ctx, alice)
	require.NoError(t, err)
	require.NotEmpty(t, state.Notebook.TagsBmob.ObjectID)
	created := state.Notebook.TagsBmob.ObjectID

	f.store.Reset()
	_, err = f.svc.SaveTags(ctx, alice, []string{"work"})
	require.NoError(t, err)
	assert.Equal(t, []string{"query:Tags", "update:Tags", "query:Tags"}, f.store.Calls())

	sets, err := repository.GetTagsRepo(f.store).FindByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, created, sets[0].ObjectID)
	assert.Equal(t, []string{"work"}, sets[0].Notebook)
}

func TestSaveTags_Failure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.store.Fail("create:Tags", errors.New("write concern"))

	_, err := f.svc.SaveTags(ctx, alice, []string{"work"})
	var remote *usecase.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, usecase.ToastTagsSaveFailed, remote.Toast)

	state, err := f.svc.State(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, state.Notebook.Tags)
}

func TestSaveTags_UpdatesTagSetCreatedElsewhere(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	other := f.replica()

	_, err := f.svc.Open(ctx, alice)
	require.NoError(t, err)
	_, err = other.SaveTags(ctx, alice, []string{"work"})
	require.NoError(t, err)

	_, err = f.svc.SaveTags(ctx, alice, []string{"idea"})
	require.NoError(t, err)

	sets, err := repository.GetTagsRepo(f.store).FindByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, []string{"idea"}, sets[0].Notebook)
	assert.Equal(t, []string{"idea"}, other.LoadTags(ctx, alice))
}

func TestSaveTags_LookupFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Open(ctx, alice)
	require.NoError(t, err)
	f.store.Fail("query:Tags", errors.New("timeout"))

	_, err = f.svc.SaveTags(ctx, alice, []string{"work"})
	var remote *usecase.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, usecase.ToastTagsSaveFailed, remote.Toast)
	assert.NotContains(t, f.store.Calls(), "create:Tags")
}

func TestSaveTags_Anonymous(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.SaveTags(context.Background(), model.Anonymous, []string{"work"})
	assert.ErrorIs(t, err, usecase.ErrAuthenticationMissing)
	assert.Empty(t, f.store.Calls())
}

func TestLoadTags_FailureIsSwallowed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.SaveTags(ctx, alice, []string{"work", "idea"})
	require.NoError(t, err)

	f.store.Fail("query:Tags", errors.New("timeout"))
	assert.Equal(t, []string{"work", "idea"}, f.svc.LoadTags(ctx, alice))
}

func TestPruneEmptyTags(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, model.Record{Author: "alice", Tags: []string{"work", "idea"}})
	f.seed(t, model.Record{Author: "alice", Tags: []string{"idea", "later"}})
	f.seed(t, model.Record{Author: "alice"})
	f.seed(t, model.Record{Author: "bob", Tags: []string{"bob-only"}})

	_, err := f.svc.SaveTags(ctx, alice, []string{"work", "idea", "later", "stale", "old"})
	require.NoError(t, err)
	_, err = f.svc.SelectTags(ctx, alice, []string{"stale", "later", "work"})
	require.NoError(t, err)

	toast, err := f.svc.PruneEmptyTags(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, usecase.ToastEmptyTagsCleared, toast)

	state, err := f.svc.State(ctx, alice)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"work", "idea", "later"}, state.Notebook.Tags)
	assert.Len(t, state.Notebook.Tags, 3)
	assert.Equal(t, []string{"work", "later"}, state.Notebook.STags)

	value, ok, err := f.prefs.Get(ctx, "p_n_select_tags_alice")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `["work","later"]`, value)
}

func TestPruneEmptyTags_CreatesMissingTagSet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, model.Record{Author: "alice", Tags: []string{"solo"}})

	_, err := f.svc.Open(ctx, alice)
	require.NoError(t, err)
	f.store.Reset()

	_, err = f.svc.PruneEmptyTags(ctx, alice)
	require.NoError(t, err)
	assert.Contains(t, f.store.Calls(), "create:Tags")
	assert.NotContains(t, f.store.Calls(), "update:Tags")

	state, err := f.svc.State(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, []string{"solo"}, state.Notebook.Tags)
	assert.Empty(t, state.Notebook.STags)
}

func TestPruneEmptyTags_FailureKeepsSelection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, model.Record{Author: "alice", Tags: []string{"work"}})

	_, err := f.svc.SelectTags(ctx, alice, []string{"gone"})
	require.NoError(t, err)
	f.store.Fail("create:Tags", errors.New("offline"))

	_, err = f.svc.PruneEmptyTags(ctx, alice)
	var remote *usecase.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, usecase.ToastTagsSaveFailed, remote.Toast)

	state, err := f.svc.State(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, []string{"gone"}, state.Notebook.STags)
}
