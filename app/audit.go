package main

import (
	"fmt"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/deciflow/deciflow/internal/format"
	"github.com/deciflow/deciflow/internal/model"
)

// AuditPage shows the system-wide audit log. Only super admins can see it.
type AuditPage struct {
	app.Compo

	page    *model.Paginated[model.AuditLog]
	allowed bool
	loaded  bool
	errMsg  string
}

func (p *AuditPage) OnNav(ctx app.Context) {
	if !requireAuth(ctx) {
		return
	}
	p.allowed = requireRole(ctx, model.RoleSuperAdmin)
	if !p.allowed {
		p.loaded = true
		return
	}
	p.load(ctx, model.DefaultPage)
}

func (p *AuditPage) load(ctx app.Context, page int) {
	ctx.Async(func() {
		logs, err := auditSvc.Logs(ctx, page, model.DefaultPerPage)
		ctx.Dispatch(func(ctx app.Context) {
			p.loaded = true
			if err != nil {
				p.errMsg = err.Error()
				return
			}
			p.errMsg = ""
			p.page = logs
		})
	})
}

func (p *AuditPage) Render() app.UI {
	if !p.allowed {
		return layout(forbiddenView())
	}
	if !p.loaded {
		return layout(loadingView())
	}

	return layout(app.Div().Class("audit").Body(
		app.H1().Text("Audit Log"),
		errorBanner(p.errMsg),
		p.renderTable(),
	))
}

func (p *AuditPage) renderTable() app.UI {
	if p.page == nil || len(p.page.Data) == 0 {
		return app.P().Class("empty").Text("No audit entries.")
	}

	return app.Div().Body(
		app.Table().Class("audit-table").Body(
			app.THead().Body(app.Tr().Body(
				app.Th().Text("When"),
				app.Th().Text("User"),
				app.Th().Text("Action"),
				app.Th().Text("Request"),
				app.Th().Text("Transition"),
			)),
			app.TBody().Body(
				app.Range(p.page.Data).Slice(func(i int) app.UI {
					return p.renderRow(p.page.Data[i])
				}),
			),
		),
		paginationBar(p.page.CurrentPage, p.page.LastPage, func(ctx app.Context, page int) {
			p.load(ctx, page)
		}),
	)
}

func (p *AuditPage) renderRow(entry model.AuditLog) app.UI {
	user := fmt.Sprintf("#%d", entry.UserID)
	if entry.User != nil {
		user = entry.User.Name
	}
	transition := ""
	if entry.FromStatus != nil && entry.ToStatus != nil {
		transition = fmt.Sprintf("%s to %s", *entry.FromStatus, *entry.ToStatus)
	}

	return app.Tr().Body(
		app.Td().Text(format.Date(entry.CreatedAt, format.LocaleEN, format.DateLong)),
		app.Td().Text(user),
		app.Td().Text(entry.Action),
		app.Td().Body(
			app.A().Href(fmt.Sprintf("/requests/%d", entry.RequestID)).
				Text(fmt.Sprintf("#%d", entry.RequestID)),
		),
		app.Td().Text(transition),
	)
}
