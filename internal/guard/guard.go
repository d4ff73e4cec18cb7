// Package guard holds the route guard decisions. Each guard is a pure
// function of session state; the pages map the decision to a navigation
// effect. Guards compose by declaration in a page's nav hook, not by
// inheritance.
package guard

import (
	"github.com/deciflow/deciflow/internal/model"
	"github.com/deciflow/deciflow/internal/session"
)

// Decision is what a guard wants done before the page renders.
type Decision int

const (
	Allow Decision = iota
	RedirectLogin
	RedirectHome
	// Forbidden renders a 403 view in place, it does not redirect.
	Forbidden
)

// Auth protects authenticated pages. An unauthenticated store gets one
// hydrate attempt from local storage before the redirect verdict.
func Auth(s *session.Store) Decision {
	if !s.Authenticated() {
		s.Hydrate()
	}
	if !s.Authenticated() {
		return RedirectLogin
	}
	return Allow
}

// Guest keeps authenticated users away from the login page.
func Guest(s *session.Store) Decision {
	if s.Authenticated() {
		return RedirectHome
	}
	return Allow
}

// Role checks the page's required-roles list. An empty list allows anyone;
// otherwise a user whose role is not listed gets a 403.
func Role(s *session.Store, required ...model.RoleName) Decision {
	if len(required) == 0 {
		return Allow
	}
	if !s.HasRole(required...) {
		return Forbidden
	}
	return Allow
}
