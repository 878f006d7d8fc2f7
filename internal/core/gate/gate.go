// Package gate decides whether a request may reach its route given the
// caller's session. It performs no I/O; the session is resolved beforehand.
package gate

import "strings"

const (
	DashboardPath = "/dashboard"
	LoginPath     = "/login"
)

// SessionState is what the gate knows about the caller.
type SessionState struct {
	Authenticated bool
	UserID        string
}

type Decision int

const (
	Allow Decision = iota
	RedirectToLogin
	RedirectToDashboard
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectToLogin:
		return "redirect_login"
	case RedirectToDashboard:
		return "redirect_dashboard"
	default:
		return "unknown"
	}
}

// Location is the redirect target of d, or "" for Allow.
func (d Decision) Location() string {
	switch d {
	case RedirectToLogin:
		return LoginPath
	case RedirectToDashboard:
		return DashboardPath
	default:
		return ""
	}
}

// Decide applies the access rules:
//   - the dashboard and everything below it require a session
//   - a signed in user visiting the login page is sent to the dashboard
//   - every other path is public
func Decide(state SessionState, path string) Decision {
	switch {
	case Protected(path):
		if state.Authenticated {
			return Allow
		}
		return RedirectToLogin
	case path == LoginPath:
		if state.Authenticated {
			return RedirectToDashboard
		}
		return Allow
	default:
		return Allow
	}
}

// Protected reports whether path is the dashboard or nested below it.
func Protected(path string) bool {
	return path == DashboardPath || strings.HasPrefix(path, DashboardPath+"/")
}
