package domain

// Session is the in-app record of an authenticated identity, issued by the
// API on login. It is either wholly absent (logged out) or fully populated;
// a partial session (token without user id) must be treated as absent.
type Session struct {
	Token  string `json:"token"`
	UserID int    `json:"id"`
	Email  string `json:"email"`
}

// IsValid reports whether the session is fully populated. Readers that gate
// on authentication must use this, never the token field alone.
func (s Session) IsValid() bool {
	return s.Token != "" && s.UserID != 0 && s.Email != ""
}
