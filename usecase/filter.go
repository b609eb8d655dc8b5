package usecase

import (
	"sort"

	"kitnotes/model"
)

// SortRecords orders starred records first, then by lastEdit, newest first.
// Records that tie keep their relative order.
func SortRecords(list []model.Record) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Star != list[j].Star {
			return list[i].Star
		}
		return list[i].LastEdit > list[j].LastEdit
	})
}

// FilterByTags keeps the records sharing at least one tag with selected.
// An empty selection keeps everything.
func FilterByTags(list []model.Record, selected []string) []model.Record {
	if len(selected) == 0 {
		return list
	}

	want := make(map[string]struct{}, len(selected))
	for _, tag := range selected {
		want[tag] = struct{}{}
	}

	out := make([]model.Record, 0, len(list))
	for i := range list {
		if list[i].HasAnyTag(want) {
			out = append(out, list[i])
		}
	}
	return out
}

// UnionTags collects every tag used by list, without duplicates, in order of
// first appearance.
func UnionTags(list []model.Record) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for i := range list {
		for _, tag := range list[i].Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}
	return out
}

// IntersectTags returns the tags of a that also appear in b, in a's order.
func IntersectTags(a, b []string) []string {
	in := make(map[string]struct{}, len(b))
	for _, tag := range b {
		in[tag] = struct{}{}
	}

	seen := make(map[string]struct{})
	out := []string{}
	for _, tag := range a {
		if _, ok := in[tag]; !ok {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
