package domain

// Identity is what a verified bearer token asserts about its holder.
type Identity struct {
	UserID  string
	IsAdmin bool
}

// LandingPath is where the client should send the holder after login.
func (i Identity) LandingPath() string {
	if i.IsAdmin {
		return "/admin"
	}
	return "/"
}
