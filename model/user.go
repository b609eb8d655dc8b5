package model

// User is the signed-in identity as carried by the access token.
type User struct {
	ObjectID string `json:"objectId"`
	Username string `json:"username"`
	Login    bool   `json:"login"`
}

// Anonymous is the identity used when a request carries no token.
var Anonymous = User{}

// Same reports whether u and other describe the same signed-in identity.
func (u User) Same(other User) bool {
	return u.Login == other.Login &&
		u.Username == other.Username &&
		u.ObjectID == other.ObjectID
}
