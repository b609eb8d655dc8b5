package model

// Record is a single notebook entry. Title and Content hold plain text in
// memory; the stored form is double URI-encoded.
type Record struct {
	ID       string   `bson:"_id,omitempty" json:"objectId"`
	Author   string   `bson:"author" json:"author"`
	Title    string   `bson:"title" json:"title"`
	Content  string   `bson:"content" json:"content"`
	Tags     []string `bson:"tags" json:"tags"`
	Created  int64    `bson:"created" json:"created"`
	LastEdit int64    `bson:"lastEdit" json:"lastEdit"`
	Star     bool     `bson:"star" json:"star"`
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	c := *r
	if r.Tags != nil {
		c.Tags = append([]string{}, r.Tags...)
	}
	return &c
}

// HasAnyTag reports whether at least one of the record's tags is in set.
func (r *Record) HasAnyTag(set map[string]struct{}) bool {
	for _, tag := range r.Tags {
		if _, ok := set[tag]; ok {
			return true
		}
	}
	return false
}
