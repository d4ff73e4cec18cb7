package main

import "github.com/maxence-charriere/go-app/v10/pkg/app"

func main() {
	app.Route("/", func() app.Composer { return &RequestsPage{} })
	app.Route("/login", func() app.Composer { return &LoginPage{} })
	app.Route("/requests", func() app.Composer { return &RequestsPage{} })
	app.Route("/requests/new", func() app.Composer { return &RequestFormPage{} })
	app.RouteWithRegexp(`^/requests/\d+$`, func() app.Composer { return &RequestDetailPage{} })
	app.RouteWithRegexp(`^/requests/\d+/edit$`, func() app.Composer { return &RequestFormPage{} })
	app.Route("/inbox", func() app.Composer { return &InboxPage{} })
	app.Route("/rules", func() app.Composer { return &RulesPage{} })
	app.Route("/audit", func() app.Composer { return &AuditPage{} })
	app.RunWhenOnBrowser()
}
