package main

import (
	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/deciflow/deciflow/internal/files"
)

type LoginPage struct {
	app.Compo

	email    string
	password string
	errMsg   string
	busy     bool
}

func (p *LoginPage) OnNav(ctx app.Context) {
	requireGuest(ctx)
}

func (p *LoginPage) submit(ctx app.Context, e app.Event) {
	e.PreventDefault()

	if !files.ValidEmail(p.email) {
		p.errMsg = "Please enter a valid email address"
		return
	}
	if p.password == "" {
		p.errMsg = "Password is required"
		return
	}

	p.busy = true
	p.errMsg = ""
	ctx.Async(func() {
		_, err := authSvc.Login(ctx, p.email, p.password)
		ctx.Dispatch(func(ctx app.Context) {
			p.busy = false
			if err != nil {
				p.errMsg = err.Error()
				return
			}
			ctx.Navigate("/")
		})
	})
}

func (p *LoginPage) Render() app.UI {
	return app.Div().Class("auth-page").Body(
		app.Div().Class("auth-card").Body(
			app.H1().Text("DeciFlow"),
			app.P().Class("auth-subtitle").Text("Purchase request management"),
			errorBanner(p.errMsg),
			app.Form().OnSubmit(p.submit).Body(
				app.Label().For("email").Text("Email"),
				app.Input().ID("email").Type("email").Value(p.email).
					Placeholder("you@company.com").
					OnInput(func(ctx app.Context, e app.Event) {
						p.email = ctx.JSSrc().Get("value").String()
					}),
				app.Label().For("password").Text("Password"),
				app.Input().ID("password").Type("password").Value(p.password).
					OnInput(func(ctx app.Context, e app.Event) {
						p.password = ctx.JSSrc().Get("value").String()
					}),
				app.Button().Type("submit").Class("btn btn-primary").
					Disabled(p.busy).
					Text("Sign in"),
			),
		),
	)
}
