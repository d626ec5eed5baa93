package models

// Viewer is the identity a request is evaluated for.
// The zero value is the anonymous viewer.
type Viewer struct {
	ID       uint
	Username string
}

// Anonymous returns the viewer used when no session is present.
func Anonymous() Viewer {
	return Viewer{}
}

// NewViewer returns a viewer bound to the given user.
func NewViewer(u *User) Viewer {
	if u == nil {
		return Anonymous()
	}
	return Viewer{ID: u.ID, Username: u.Username}
}

// IsAnonymous reports whether the viewer carries no identity.
func (v Viewer) IsAnonymous() bool {
	return v.ID == 0
}
