package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"kitnotes/model"
	"kitnotes/repository"
	"kitnotes/services"
	"kitnotes/store"
	"kitnotes/usecase"
	"kitnotes/utils"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

var (
	alice = model.User{ObjectID: "u-alice", Username: "alice", Login: true}
	bob   = model.User{ObjectID: "u-bob", Username: "bob", Login: true}
)

// recordingStore wraps a RecordStore, logging every call as "op:collection"
// and failing the calls listed in fail.
type recordingStore struct {
	repository.RecordStore

	mu    sync.Mutex
	calls []string
	fail  map[string]error
}

func (s *recordingStore) record(call string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
	return s.fail[call]
}

func (s *recordingStore) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func (s *recordingStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

func (s *recordingStore) Fail(call string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail[call] = err
}

func (s *recordingStore) Query(ctx context.Context, collection string, filter bson.M, limit int) ([]bson.M, error) {
	if err := s.record("query:" + collection); err != nil {
		return nil, err
	}
	return s.RecordStore.Query(ctx, collection, filter, limit)
}

func (s *recordingStore) Create(ctx context.Context, collection string, fields bson.M) (string, error) {
	if err := s.record("create:" + collection); err != nil {
		return "", err
	}
	return s.RecordStore.Create(ctx, collection, fields)
}

func (s *recordingStore) Update(ctx context.Context, collection, id string, fields bson.M) error {
	if err := s.record("update:" + collection); err != nil {
		return err
	}
	return s.RecordStore.Update(ctx, collection, id, fields)
}

func (s *recordingStore) Delete(ctx context.Context, collection, id string) error {
	if err := s.record("delete:" + collection); err != nil {
		return err
	}
	return s.RecordStore.Delete(ctx, collection, id)
}

type fixture struct {
	svc      *usecase.NotebookService
	store    *recordingStore
	prefs    *services.MemoryPreferences
	sessions *store.Registry
	notes    *repository.NotebookRepo
	clock    time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		store:    &recordingStore{RecordStore: repository.NewMemoryStore(), fail: map[string]error{}},
		prefs:    services.NewMemoryPreferences(),
		sessions: store.NewRegistry(),
		clock:    time.UnixMilli(1_700_000_000_000),
	}
	f.notes = repository.GetNotebookRepo(f.store)
	f.svc = usecase.NewNotebookService(f.notes, repository.GetTagsRepo(f.store), f.prefs, f.sessions, zap.NewNop())
	// every call moves the clock one second forward
	var mu sync.Mutex
	f.svc.Now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		f.clock = f.clock.Add(time.Second)
		return f.clock
	}
	return f
}

// replica is a second service on the same record and preference stores with
// its own session state, like another server behind the load balancer.
func (f *fixture) replica() *usecase.NotebookService {
	return usecase.NewNotebookService(f.notes, repository.GetTagsRepo(f.store), f.prefs, store.NewRegistry(), zap.NewNop())
}

// seed stores a record the way a previous save would have: encoded twice.
func (f *fixture) seed(t *testing.T, r model.Record) string {
	t.Helper()
	r.Title = utils.EncodeTwice(r.Title)
	r.Content = utils.EncodeTwice(r.Content)
	if r.Tags == nil {
		r.Tags = []string{}
	}
	id, err := f.notes.Create(context.Background(), &r)
	require.NoError(t, err)
	return id
}

func (f *fixture) stored(t *testing.T, author string) map[string]model.Record {
	t.Helper()
	records, err := f.notes.FindByAuthor(context.Background(), author, 0)
	require.NoError(t, err)
	out := make(map[string]model.Record, len(records))
	for _, r := range records {
		out[r.ID] = r
	}
	return out
}

func ids(list []model.Record) []string {
	out := make([]string, len(list))
	for i := range list {
		out[i] = list[i].ID
	}
	return out
}
