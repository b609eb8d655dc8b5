// Package store holds per-user application state. State changes only by
// dispatching an Action through Reduce, and every dispatch yields a new State
// value; slices inside a returned State are never written again.
package store

import "kitnotes/model"

type State struct {
	Loading     bool
	Err         error
	CurrentUser string
	User        model.User
	Notebook    NotebookState
}

// NotebookState is the notebook slice: the sorted, decoded record list, the
// tag vocabulary with the TagSet it came from, and the selected tag filter.
type NotebookState struct {
	List     []model.Record
	Tags     []string
	TagsBmob model.TagSet
	STags    []string
}

func InitialState() State {
	return State{
		Notebook: NotebookState{
			List:  []model.Record{},
			Tags:  []string{},
			STags: []string{},
		},
	}
}

// Mounted reports whether the state has been loaded for user.
func (s State) Mounted(user model.User) bool {
	return s.User.Login && s.User.Same(user)
}

// FindRecord returns a copy of the record with the given id.
func (s State) FindRecord(id string) (*model.Record, bool) {
	for i := range s.Notebook.List {
		if s.Notebook.List[i].ID == id {
			return s.Notebook.List[i].Clone(), true
		}
	}
	return nil, false
}
