package main

import (
	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/deciflow/deciflow/internal/guard"
	"github.com/deciflow/deciflow/internal/model"
)

// requireAuth redirects to the login page when no session can be restored.
// It returns false when the page should stop rendering.
func requireAuth(ctx app.Context) bool {
	bootstrap(ctx)
	if guard.Auth(store) == guard.RedirectLogin {
		ctx.Navigate("/login")
		return false
	}
	return true
}

// requireGuest keeps signed-in users away from the login page.
func requireGuest(ctx app.Context) bool {
	bootstrap(ctx)
	if guard.Guest(store) == guard.RedirectHome {
		ctx.Navigate("/")
		return false
	}
	return true
}

// requireRole reports whether the current user may see the page. A false
// result means the page renders its 403 view instead of redirecting.
func requireRole(ctx app.Context, roles ...model.RoleName) bool {
	bootstrap(ctx)
	return guard.Role(store, roles...) != guard.Forbidden
}
