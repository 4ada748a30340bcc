// Package navigation decides, once per navigation, whether a caller may open a client route.
package navigation

import (
	"strings"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// Access classifies who may open a route.
type Access string

const (
	AccessPublic    Access = "public"
	AccessGuestOnly Access = "guest_only"
	AccessAdminOnly Access = "admin_only"
)

const (
	PathHome     = "/"
	PathLogin    = "/login"
	PathRegister = "/register"
	PathAdmin    = "/admin"
)

var routes = map[string]Access{
	PathHome:     AccessPublic,
	PathLogin:    AccessGuestOnly,
	PathRegister: AccessGuestOnly,
	PathAdmin:    AccessAdminOnly,
}

// Decision is the outcome of a capability check.
type Decision struct {
	Path       string `json:"path"`
	Allowed    bool   `json:"allowed"`
	RedirectTo string `json:"redirectTo,omitempty"`
}

// AccessFor returns the access class of path. Unknown paths are public.
func AccessFor(path string) Access {
	if access, ok := routes[normalize(path)]; ok {
		return access
	}
	return AccessPublic
}

// Resolve evaluates path for the caller; identity is nil for anonymous callers.
func Resolve(path string, identity *domain.Identity) Decision {
	path = normalize(path)
	decision := Decision{Path: path, Allowed: true}

	switch AccessFor(path) {
	case AccessAdminOnly:
		switch {
		case identity == nil:
			decision.Allowed, decision.RedirectTo = false, PathLogin
		case !identity.IsAdmin:
			decision.Allowed, decision.RedirectTo = false, PathHome
		}
	case AccessGuestOnly:
		if identity != nil && identity.IsAdmin {
			decision.Allowed, decision.RedirectTo = false, PathAdmin
		}
	}
	return decision
}

func normalize(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return PathHome
	}
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}
