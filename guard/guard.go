// Package guard derives access decisions from the current session.
package guard

import "github.com/jrsteele09/stitch-smart/users"

// Permissions are the capability flags consumed by routing and views
type Permissions struct {
	IsAuthenticated bool `json:"isAuthenticated"`
	IsAdmin         bool `json:"isAdmin"`
}

// FromSession computes the flags for the signed-in account, or for an
// anonymous visitor when user is nil.
func FromSession(user *users.User) Permissions {
	if user == nil {
		return Permissions{}
	}
	return Permissions{
		IsAuthenticated: true,
		IsAdmin:         user.Role == users.RoleAdministrator,
	}
}

// RouteClass groups views by who may see them
type RouteClass int

const (
	// RoutePublic is visible to everyone
	RoutePublic RouteClass = iota
	// RoutePublicOnly is only for anonymous visitors, e.g. the login view
	RoutePublicOnly
	// RouteAuthenticated requires a session
	RouteAuthenticated
	// RouteAdmin requires a session with the administrator role
	RouteAdmin
)

func (c RouteClass) String() string {
	switch c {
	case RoutePublic:
		return "public"
	case RoutePublicOnly:
		return "public-only"
	case RouteAuthenticated:
		return "authenticated"
	case RouteAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// Decision is what the router should do with a request
type Decision int

const (
	Allow Decision = iota
	RedirectLogin
	RedirectHome
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect-login"
	case RedirectHome:
		return "redirect-home"
	default:
		return "unknown"
	}
}

// Decide maps a route class and the visitor's flags to a decision.
// A signed-in non-admin hitting an admin route is sent to login, not to an
// unauthorized page.
func Decide(class RouteClass, perms Permissions) Decision {
	switch class {
	case RoutePublic:
		return Allow
	case RoutePublicOnly:
		if perms.IsAuthenticated {
			return RedirectHome
		}
		return Allow
	case RouteAuthenticated:
		if !perms.IsAuthenticated {
			return RedirectLogin
		}
		return Allow
	case RouteAdmin:
		if !perms.IsAuthenticated || !perms.IsAdmin {
			return RedirectLogin
		}
		return Allow
	default:
		return RedirectLogin
	}
}
