package store

import "kitnotes/model"

// Reduce returns the state that follows s after a. s is not modified.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case LoadRepos:
		s.Loading = true
		s.Err = nil
	case LoadReposSuccess:
		s.Loading = false
		s.CurrentUser = a.Username
	case LoadReposError:
		s.Loading = false
		s.Err = a.Err
	case GetUserInfo:
		s.User = a.User
	case UpdateNotebook:
		s.Notebook.List = cloneRecords(a.List)
	case SelectTags:
		s.Notebook.STags = cloneStrings(a.Tags)
	case ChangeTags:
		if len(a.TagSets) == 0 {
			s.Notebook.TagsBmob = model.TagSet{}
			s.Notebook.Tags = []string{}
			break
		}
		s.Notebook.TagsBmob = a.TagSets[0].Clone()
		s.Notebook.Tags = cloneStrings(a.TagSets[0].Notebook)
	}
	return s
}

func cloneRecords(list []model.Record) []model.Record {
	out := make([]model.Record, len(list))
	for i := range list {
		out[i] = *list[i].Clone()
	}
	return out
}

func cloneStrings(list []string) []string {
	out := make([]string, len(list))
	copy(out, list)
	return out
}
