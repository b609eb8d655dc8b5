package model

// TagSet is the per-user tag vocabulary. ObjectID stays empty until the set
// has been created in the record store.
type TagSet struct {
	ObjectID string   `bson:"_id,omitempty" json:"objectId,omitempty"`
	Username string   `bson:"username" json:"username"`
	Notebook []string `bson:"notebook" json:"notebook"`
}

func (t TagSet) Clone() TagSet {
	if t.Notebook != nil {
		t.Notebook = append([]string{}, t.Notebook...)
	}
	return t
}
