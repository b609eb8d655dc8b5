package usecase

import (
	"context"

	"kitnotes/model"
	"kitnotes/store"

	"go.uber.org/zap"
)

// LoadTags refreshes the user's tag vocabulary. Failures are logged and the
// previous vocabulary is returned.
func (svc *NotebookService) LoadTags(ctx context.Context, user model.User) []string {
	if !user.Login {
		return []string{}
	}

	st := svc.Sessions.Get(user.Username)
	sets, err := svc.TagSets.FindByUsername(ctx, user.Username)
	if err != nil {
		svc.log().Warn("failed to load tags", zap.String("username", user.Username), zap.Error(err))
		return st.State().Notebook.Tags
	}
	return st.Dispatch(store.ChangeTags{TagSets: sets}).Notebook.Tags
}

// SaveTags replaces the user's vocabulary with tags, creating the TagSet on
// first use, and returns the toast to show.
func (svc *NotebookService) SaveTags(ctx context.Context, user model.User, tags []string) (string, error) {
	if err := svc.saveTags(ctx, user, tags); err != nil {
		return "", err
	}
	return ToastTagsAdded, nil
}

func (svc *NotebookService) saveTags(ctx context.Context, user model.User, tags []string) error {
	st, err := svc.session(ctx, user)
	if err != nil {
		return err
	}

	// Another server may have created the TagSet since this session loaded.
	sets, err := svc.TagSets.FindByUsername(ctx, user.Username)
	if err != nil {
		svc.log().Error("failed to load tags before saving", zap.String("username", user.Username), zap.Error(err))
		return remoteFailure("save tags", ToastTagsSaveFailed, err)
	}
	current := st.Dispatch(store.ChangeTags{TagSets: sets}).Notebook.TagsBmob
	set := &model.TagSet{
		Username: user.Username,
		Notebook: append([]string{}, tags...),
	}

	if current.ObjectID == "" {
		_, err = svc.TagSets.Create(ctx, set)
	} else {
		set.ObjectID = current.ObjectID
		err = svc.TagSets.Update(ctx, set)
	}
	if err != nil {
		svc.log().Error("failed to save tags", zap.String("username", user.Username), zap.Error(err))
		return remoteFailure("save tags", ToastTagsSaveFailed, err)
	}

	svc.LoadTags(ctx, user)
	return nil
}

// PruneEmptyTags shrinks the vocabulary to the tags actually used by the
// user's records, then narrows the remembered filter to that vocabulary.
func (svc *NotebookService) PruneEmptyTags(ctx context.Context, user model.User) (string, error) {
	st, err := svc.session(ctx, user)
	if err != nil {
		return "", err
	}

	vocabulary := UnionTags(st.State().Notebook.List)
	if err := svc.saveTags(ctx, user, vocabulary); err != nil {
		return "", err
	}

	persisted := svc.persistedSelection(ctx, user)
	if _, err := svc.SelectTags(ctx, user, IntersectTags(vocabulary, persisted)); err != nil {
		return "", err
	}
	return ToastEmptyTagsCleared, nil
}
