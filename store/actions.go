package store

import "kitnotes/model"

// Action is the closed set of state transitions. Every implementation lives
// in this file and Reduce handles each one.
type Action interface {
	Type() string
	isAction()
}

const (
	TypeLoadRepos        = "app/LOAD_REPOS"
	TypeLoadReposSuccess = "app/LOAD_REPOS_SUCCESS"
	TypeLoadReposError   = "app/LOAD_REPOS_ERROR"
	TypeGetUserInfo      = "app/GET_USER_INFO"
	TypeUpdateNotebook   = "notebook/UPDATE_NOTEBOOK"
	TypeSelectTags       = "notebook/SELECT_TAGS"
	TypeChangeTags       = "notebook/CHANGE_TAGS"
)

// LoadRepos marks the start of a load.
type LoadRepos struct{}

type LoadReposSuccess struct{ Username string }

type LoadReposError struct{ Err error }

// GetUserInfo binds the signed-in identity to the state.
type GetUserInfo struct{ User model.User }

// UpdateNotebook replaces the record list.
type UpdateNotebook struct{ List []model.Record }

// SelectTags replaces the tag filter.
type SelectTags struct{ Tags []string }

// ChangeTags carries the result of a TagSet query; the first set wins.
type ChangeTags struct{ TagSets []model.TagSet }

func (LoadRepos) Type() string        { return TypeLoadRepos }
func (LoadReposSuccess) Type() string { return TypeLoadReposSuccess }
func (LoadReposError) Type() string   { return TypeLoadReposError }
func (GetUserInfo) Type() string      { return TypeGetUserInfo }
func (UpdateNotebook) Type() string   { return TypeUpdateNotebook }
func (SelectTags) Type() string       { return TypeSelectTags }
func (ChangeTags) Type() string       { return TypeChangeTags }

func (LoadRepos) isAction()        {}
func (LoadReposSuccess) isAction() {}
func (LoadReposError) isAction()   {}
func (GetUserInfo) isAction()      {}
func (UpdateNotebook) isAction()   {}
func (SelectTags) isAction()       {}
func (ChangeTags) isAction()       {}
