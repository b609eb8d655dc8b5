package usecase

import (
	"encoding/json"
	"net/url"
	"strings"

	"kitnotes/model"
)

const (
	IndexPath  = "/kit/notebook"
	DetailPath = "/kit/notebook/detail/"
)

// IndexLocation is where the client goes after a delete.
func IndexLocation() string {
	return "#" + IndexPath
}

// DetailLocation points the client at one record, optionally in edit mode.
func DetailLocation(id string, edit bool) string {
	location := "#" + DetailPath + "?id=" + url.QueryEscape(id)
	if edit {
		location += "&edit=true"
	}
	return location
}

// ParseLocation splits a hash-style location such as
// "#/kit/notebook/detail/?id=abc&edit=true" into path and raw query.
func ParseLocation(location string) (path, rawQuery string) {
	location = strings.TrimPrefix(location, "#")
	path, rawQuery, _ = strings.Cut(location, "?")
	return path, rawQuery
}

// ResolveView derives the view from the URL. A detail URL naming a record
// that is not in list falls back to the index view.
func ResolveView(path, rawQuery string, list []model.Record) model.ViewState {
	if path != DetailPath {
		return model.ViewState{IsIndexView: true}
	}

	query, _ := url.ParseQuery(rawQuery)
	id := query.Get("id")
	if id == "" {
		return model.ViewState{IsIndexView: true}
	}

	for i := range list {
		if list[i].ID == id {
			return model.ViewState{
				ActiveRecordID: id,
				EditMode:       parseEditFlag(query.Get("edit")),
			}
		}
	}
	return model.ViewState{IsIndexView: true}
}

// parseEditFlag reads the flag as a JSON literal and applies JavaScript
// truthiness. Anything unparsable is false.
func parseEditFlag(raw string) bool {
	if raw == "" {
		return false
	}

	var v interface{}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return false
	}

	switch val := v.(type) {
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		return val != ""
	case nil:
		return false
	default:
		return true
	}
}
