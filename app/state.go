package main

import (
	"sync"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/deciflow/deciflow/internal/api"
	"github.com/deciflow/deciflow/internal/session"
)

// The client talks to the same-origin /api prefix; the host server proxies
// it to the backend.
const apiBase = "/api"

// Shared client state. The session store is the only mutable piece; the
// services are stateless endpoint wrappers.
var (
	store       = session.NewStore(nil)
	gateway     = api.New(apiBase, store)
	authSvc     = api.NewAuthService(gateway, store)
	requestsSvc = api.NewRequestsService(gateway)
	approvals   = api.NewApprovalsService(gateway)
	attachments = api.NewAttachmentsService(gateway)
	rulesSvc    = api.NewRulesService(gateway)
	auditSvc    = api.NewAuditService(gateway)

	bootstrapOnce sync.Once
)

// bootstrap binds the session store to browser local storage and wires the
// global 401 handling. It runs once, from the first page that mounts;
// guards call it so auth state is hydrated before any redirect decision.
func bootstrap(ctx app.Context) {
	bootstrapOnce.Do(func() {
		store.Bind(ctx.LocalStorage())
		store.Hydrate()

		gateway.OnUnauthorized(func() {
			// Clear reports true only for the first 401 of a burst, so an
			// expired token produces exactly one logout and one redirect no
			// matter how many in-flight calls it failed.
			if store.Clear() {
				app.Window().Get("location").Set("href", "/login")
			}
		})

		// The cached profile may be stale; refresh it in the background so
		// role gating catches up. A 401 here goes through the handler above.
		if store.Authenticated() {
			ctx.Async(func() {
				authSvc.FetchMe(ctx)
			})
		}
	})
}
