package usecase

import (
	"context"
	"errors"
	"time"

	"kitnotes/model"
	"kitnotes/services"
	"kitnotes/store"
	"kitnotes/utils"

	"go.uber.org/zap"
)

// MaxRecords caps a single list query.
const MaxRecords = 1000

type RecordRepository interface {
	FindByAuthor(ctx context.Context, author string, limit int) ([]model.Record, error)
	Create(ctx context.Context, record *model.Record) (string, error)
	Update(ctx context.Context, record *model.Record) error
	Delete(ctx context.Context, id string) error
}

type TagSetRepository interface {
	FindByUsername(ctx context.Context, username string) ([]model.TagSet, error)
	Create(ctx context.Context, set *model.TagSet) (string, error)
	Update(ctx context.Context, set *model.TagSet) error
}

// NotebookService keeps each user's notebook state in sync with the record
// store: records, the tag vocabulary and the selected tag filter.
type NotebookService struct {
	Records  RecordRepository
	TagSets  TagSetRepository
	Prefs    services.PreferenceStore
	Sessions *store.Registry
	Logger   *zap.Logger
	Now      func() time.Time
}

func NewNotebookService(
	records RecordRepository,
	tagSets TagSetRepository,
	prefs services.PreferenceStore,
	sessions *store.Registry,
	logger *zap.Logger,
) *NotebookService {
	return &NotebookService{
		Records:  records,
		TagSets:  tagSets,
		Prefs:    prefs,
		Sessions: sessions,
		Logger:   logger,
		Now:      time.Now,
	}
}

func (svc *NotebookService) now() time.Time {
	if svc.Now == nil {
		return time.Now()
	}
	return svc.Now()
}

func (svc *NotebookService) log() *zap.Logger {
	if svc.Logger == nil {
		return zap.NewNop()
	}
	return svc.Logger
}

// Open mounts the notebook for user: records, tag vocabulary and the
// remembered tag filter. Anonymous users get an empty notebook.
func (svc *NotebookService) Open(ctx context.Context, user model.User) (store.State, error) {
	if !user.Login {
		st := svc.Sessions.Get("")
		return st.Dispatch(store.UpdateNotebook{List: []model.Record{}}), ErrAuthenticationMissing
	}

	st := svc.Sessions.Get(user.Username)
	st.Dispatch(store.LoadRepos{})
	if _, err := svc.LoadAll(ctx, user); err != nil {
		st.Dispatch(store.LoadReposError{Err: err})
		return st.State(), err
	}
	st.Dispatch(store.LoadReposSuccess{Username: user.Username})
	st.Dispatch(store.GetUserInfo{User: user})

	svc.LoadTags(ctx, user)
	svc.rehydrateSelection(ctx, user)

	return st.State(), nil
}

// session returns the user's store, mounting it first when it was never
// loaded or was loaded for a different identity.
func (svc *NotebookService) session(ctx context.Context, user model.User) (*store.Store, error) {
	if !user.Login {
		return nil, ErrAuthenticationMissing
	}

	st := svc.Sessions.Get(user.Username)
	if st.State().Mounted(user) {
		return st, nil
	}
	if _, err := svc.Open(ctx, user); err != nil {
		return nil, err
	}
	return st, nil
}

// State returns the user's mounted notebook state.
func (svc *NotebookService) State(ctx context.Context, user model.User) (store.State, error) {
	st, err := svc.session(ctx, user)
	if err != nil {
		return store.State{}, err
	}
	return st.State(), nil
}

// LoadAll fetches the user's records, sorts and decodes them, and replaces
// the list in state. On failure the list is left as it was.
func (svc *NotebookService) LoadAll(ctx context.Context, user model.User) ([]model.Record, error) {
	if !user.Login {
		return nil, ErrAuthenticationMissing
	}

	records, err := svc.Records.FindByAuthor(ctx, user.Username, MaxRecords)
	if err != nil {
		svc.log().Error("failed to load notes", zap.String("username", user.Username), zap.Error(err))
		return nil, remoteFailure("load notes", ToastLoadFailed, err)
	}

	SortRecords(records)
	for i := range records {
		svc.decode(&records[i])
	}

	svc.Sessions.Get(user.Username).Dispatch(store.UpdateNotebook{List: records})
	return records, nil
}

// Create stores an empty note, reloads the list and returns the new id with
// the location of its editor.
func (svc *NotebookService) Create(ctx context.Context, user model.User) (id, location string, err error) {
	if !user.Login {
		return "", "", ErrAuthenticationMissing
	}

	now := svc.now().UnixMilli()
	record := &model.Record{
		Author:   user.Username,
		Created:  now,
		LastEdit: now,
		Title:    "",
		Content:  "",
		Tags:     []string{},
	}

	id, err = svc.Records.Create(ctx, record)
	if err != nil {
		svc.log().Error("failed to create note", zap.String("username", user.Username), zap.Error(err))
		return "", "", remoteFailure("create note", ToastCreateFailed, err)
	}

	if _, err := svc.LoadAll(ctx, user); err != nil {
		return "", "", err
	}
	return id, DetailLocation(id, true), nil
}

// Save writes a snapshot of record with a fresh lastEdit. record itself is
// never modified. Author and creation time come from the stored copy.
func (svc *NotebookService) Save(ctx context.Context, user model.User, record *model.Record) error {
	st, err := svc.session(ctx, user)
	if err != nil {
		return err
	}
	if record == nil {
		return ErrRecordNotFound
	}
	existing, err := svc.findRecord(ctx, user, st, record.ID)
	if err != nil {
		return err
	}

	snapshot := record.Clone()
	snapshot.Author = existing.Author
	snapshot.Created = existing.Created
	snapshot.LastEdit = svc.now().UnixMilli()
	snapshot.Title = utils.EncodeTwice(record.Title)
	snapshot.Content = utils.EncodeTwice(record.Content)
	if snapshot.Tags == nil {
		snapshot.Tags = []string{}
	}

	if err := svc.Records.Update(ctx, snapshot); err != nil {
		svc.log().Error("failed to save note",
			zap.String("username", user.Username),
			zap.String("id", record.ID),
			zap.Error(err))
		return remoteFailure("save note", ToastSaveFailed, err)
	}

	_, err = svc.LoadAll(ctx, user)
	return err
}

// ToggleStar pins or unpins a record and returns it as reloaded.
func (svc *NotebookService) ToggleStar(ctx context.Context, user model.User, id string) (*model.Record, error) {
	record, err := svc.Get(ctx, user, id)
	if err != nil {
		return nil, err
	}
	record.Star = !record.Star
	if err := svc.Save(ctx, user, record); err != nil {
		return nil, err
	}
	return svc.Get(ctx, user, id)
}

// Delete removes a record, reloads the list and returns the index location.
func (svc *NotebookService) Delete(ctx context.Context, user model.User, id string) (string, error) {
	st, err := svc.session(ctx, user)
	if err != nil {
		return "", err
	}
	if _, err := svc.findRecord(ctx, user, st, id); err != nil {
		return "", err
	}

	if err := svc.Records.Delete(ctx, id); err != nil {
		svc.log().Error("failed to delete note",
			zap.String("username", user.Username),
			zap.String("id", id),
			zap.Error(err))
		return "", remoteFailure("delete note", ToastDeleteFailed, err)
	}

	if _, err := svc.LoadAll(ctx, user); err != nil {
		return "", err
	}
	return IndexLocation(), nil
}

// Get returns a copy of one of the user's records.
func (svc *NotebookService) Get(ctx context.Context, user model.User, id string) (*model.Record, error) {
	st, err := svc.session(ctx, user)
	if err != nil {
		return nil, err
	}
	return svc.findRecord(ctx, user, st, id)
}

// findRecord looks id up in the session's list. The record may have been
// written through another server, so a miss reloads the list once before
// giving up.
func (svc *NotebookService) findRecord(ctx context.Context, user model.User, st *store.Store, id string) (*model.Record, error) {
	if record, ok := st.State().FindRecord(id); ok {
		return record, nil
	}
	if _, err := svc.LoadAll(ctx, user); err != nil {
		return nil, err
	}
	if record, ok := st.State().FindRecord(id); ok {
		return record, nil
	}
	return nil, ErrRecordNotFound
}

// View resolves a notebook location against the user's records. The record
// is returned for detail views.
func (svc *NotebookService) View(ctx context.Context, user model.User, location string) (model.ViewState, *model.Record, error) {
	var list []model.Record
	st, err := svc.session(ctx, user)
	switch {
	case err == nil:
		list = st.State().Notebook.List
	case !errors.Is(err, ErrAuthenticationMissing):
		return model.ViewState{}, nil, err
	}

	path, rawQuery := ParseLocation(location)
	view := ResolveView(path, rawQuery, list)
	if view.IsIndexView {
		return view, nil, nil
	}
	record, _ := st.State().FindRecord(view.ActiveRecordID)
	return view, record, nil
}

// decode turns stored title and content back into text. Fields that do not
// decode are kept as stored.
func (svc *NotebookService) decode(record *model.Record) {
	if title, err := utils.DecodeTwice(record.Title); err == nil {
		record.Title = title
	} else {
		svc.log().Warn("undecodable note title", zap.String("id", record.ID), zap.Error(err))
	}
	if content, err := utils.DecodeTwice(record.Content); err == nil {
		record.Content = content
	} else {
		svc.log().Warn("undecodable note content", zap.String("id", record.ID), zap.Error(err))
	}
}
