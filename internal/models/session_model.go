package models

// AuthUser is the identity reported by the authentication service.
type AuthUser struct {
	UID          string
	Email        string
	IsAnonymous  bool
	IDToken      string
	RefreshToken string
}

// Session is the identity a browser context currently recognizes. The zero value means
// nobody is signed in.
type Session struct {
	UserID      string `json:"userId,omitempty"`
	Email       string `json:"email,omitempty"`
	IsAnonymous bool   `json:"isAnonymous"`
}

// SessionFromUser converts an auth notification into a Session. A nil user yields the
// signed-out session.
func SessionFromUser(u *AuthUser) Session {
	if u == nil {
		return Session{}
	}
	return Session{UserID: u.UID, Email: u.Email, IsAnonymous: u.IsAnonymous}
}

// HasUser reports whether any identity, anonymous or not, is present.
func (s Session) HasUser() bool { return s.UserID != "" }

// SignedIn reports whether an explicit, non-anonymous sign-in is present.
func (s Session) SignedIn() bool { return s.UserID != "" && !s.IsAnonymous }
