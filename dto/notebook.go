package dto

import (
	"kitnotes/model"
	"kitnotes/store"
	"kitnotes/usecase"
)

// SaveRecordRequest is the editable part of a record. Author and timestamps
// are never taken from the client.
type SaveRecordRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags" binding:"omitempty,max=200,dive,tag"`
	Star    bool     `json:"star"`
}

// ToRecord applies the request to a copy of current.
func (r SaveRecordRequest) ToRecord(current *model.Record) *model.Record {
	record := current.Clone()
	record.Title = r.Title
	record.Content = r.Content
	record.Tags = append([]string{}, r.Tags...)
	record.Star = r.Star
	return record
}

type TagsRequest struct {
	Tags []string `json:"tags" binding:"max=500,dive,tag"`
}

// SelectionRequest names tags to filter by. They are matched as plain strings
// against stored records, so the tag rule does not apply.
type SelectionRequest struct {
	Tags []string `json:"tags" binding:"max=500"`
}

type NotebookResponse struct {
	List     []model.Record `json:"list"`
	Tags     []string       `json:"tags"`
	STags    []string       `json:"sTags"`
	TagsBmob model.TagSet   `json:"tagsBmob"`
	Total    int            `json:"total"`
}

// ToNotebookResponse shows the list narrowed by the selected tags; Total is
// the unfiltered count.
func ToNotebookResponse(state store.State) NotebookResponse {
	return NotebookResponse{
		List:     nonNilRecords(usecase.FilterByTags(state.Notebook.List, state.Notebook.STags)),
		Tags:     nonNilStrings(state.Notebook.Tags),
		STags:    nonNilStrings(state.Notebook.STags),
		TagsBmob: state.Notebook.TagsBmob,
		Total:    len(state.Notebook.List),
	}
}

func EmptyNotebookResponse() NotebookResponse {
	return ToNotebookResponse(store.InitialState())
}

type CreateRecordResponse struct {
	ID       string `json:"id"`
	Location string `json:"location"`
}

type LocationResponse struct {
	Location string `json:"location"`
}

type ViewResponse struct {
	View   model.ViewState `json:"view"`
	Record *model.Record   `json:"record,omitempty"`
}

type TagsResponse struct {
	Tags []string `json:"tags"`
}

func nonNilRecords(list []model.Record) []model.Record {
	if list == nil {
		return []model.Record{}
	}
	return list
}

func nonNilStrings(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
