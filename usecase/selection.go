package usecase

import (
	"context"

	"kitnotes/model"
	"kitnotes/services"
	"kitnotes/store"

	"go.uber.org/zap"
)

// SelectTags sets the user's tag filter and remembers it. A failed write to
// the preference store is logged; the filter still applies to the session.
func (svc *NotebookService) SelectTags(ctx context.Context, user model.User, tags []string) ([]string, error) {
	if !user.Login {
		return nil, ErrAuthenticationMissing
	}

	next := svc.Sessions.Get(user.Username).Dispatch(store.SelectTags{Tags: tags})
	key := services.SelectedTagsKey(user.Username)
	if err := services.SetJSON(ctx, svc.Prefs, key, next.Notebook.STags); err != nil {
		svc.log().Warn("failed to persist selected tags", zap.String("username", user.Username), zap.Error(err))
	}
	return next.Notebook.STags, nil
}

func (svc *NotebookService) persistedSelection(ctx context.Context, user model.User) []string {
	var tags []string
	key := services.SelectedTagsKey(user.Username)
	if err := services.GetJSON(ctx, svc.Prefs, key, &tags, "[]"); err != nil {
		svc.log().Warn("failed to read selected tags", zap.String("username", user.Username), zap.Error(err))
	}
	if tags == nil {
		tags = []string{}
	}
	return tags
}

func (svc *NotebookService) rehydrateSelection(ctx context.Context, user model.User) []string {
	tags := svc.persistedSelection(ctx, user)
	return svc.Sessions.Get(user.Username).Dispatch(store.SelectTags{Tags: tags}).Notebook.STags
}
