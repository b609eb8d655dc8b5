package model

// ViewState is derived from the notebook URL on every request and never stored.
type ViewState struct {
	IsIndexView    bool   `json:"isIndexView"`
	ActiveRecordID string `json:"activeRecordId,omitempty"`
	EditMode       bool   `json:"editMode"`
}
