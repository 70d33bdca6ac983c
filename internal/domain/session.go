package domain

import "time"

// Session is the in-memory authentication state. User is nil whenever Token
// is empty.
type Session struct {
	Token         string
	User          UserProfile
	UserFetchedAt time.Time
}

func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}

func (s Session) IsAdmin() bool {
	return s.User != nil && s.User.IsAdmin()
}
