package main

import (
	"fmt"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/deciflow/deciflow/internal/api"
	"github.com/deciflow/deciflow/internal/model"
)

type RequestsPage struct {
	app.Compo

	filters api.RequestFilters
	page    *model.Paginated[model.Request]
	loaded  bool
	errMsg  string
}

func (p *RequestsPage) OnNav(ctx app.Context) {
	if !requireAuth(ctx) {
		return
	}
	p.load(ctx)
}

func (p *RequestsPage) load(ctx app.Context) {
	filters := p.filters
	ctx.Async(func() {
		page, err := requestsSvc.List(ctx, filters)
		ctx.Dispatch(func(ctx app.Context) {
			p.loaded = true
			if err != nil {
				p.errMsg = err.Error()
				return
			}
			p.errMsg = ""
			p.page = page
		})
	})
}

func (p *RequestsPage) setStatus(ctx app.Context, status string) {
	p.filters.Status = model.RequestStatus(status)
	p.filters.Page = 0
	p.load(ctx)
}

func (p *RequestsPage) setCategory(ctx app.Context, category string) {
	p.filters.Category = model.RequestCategory(category)
	p.filters.Page = 0
	p.load(ctx)
}

func (p *RequestsPage) setPage(ctx app.Context, page int) {
	p.filters.Page = page
	p.load(ctx)
}

var allStatuses = []model.RequestStatus{
	model.StatusDraft, model.StatusSubmitted, model.StatusInReview,
	model.StatusApproved, model.StatusRejected, model.StatusReturned,
	model.StatusCancelled, model.StatusArchived,
}

var allCategories = []model.RequestCategory{
	model.CategoryEquipment, model.CategorySoftware,
	model.CategoryService, model.CategoryTravel,
}

func (p *RequestsPage) Render() app.UI {
	if !p.loaded {
		return layout(loadingView())
	}

	return layout(app.Div().Class("requests-page").Body(
		app.Div().Class("page-head").Body(
			app.H1().Text("Purchase Requests"),
			app.Button().Class("btn btn-primary").Text("New Request").
				OnClick(func(ctx app.Context, e app.Event) {
					ctx.Navigate("/requests/new")
				}),
		),
		errorBanner(p.errMsg),
		app.Div().Class("filters").Body(
			app.Select().Class("filter").
				OnChange(func(ctx app.Context, e app.Event) {
					p.setStatus(ctx, ctx.JSSrc().Get("value").String())
				}).
				Body(
					app.Option().Value("").Text("All statuses").Selected(p.filters.Status == ""),
					app.Range(allStatuses).Slice(func(i int) app.UI {
						s := allStatuses[i]
						return app.Option().Value(string(s)).Text(string(s)).
							Selected(p.filters.Status == s)
					}),
				),
			app.Select().Class("filter").
				OnChange(func(ctx app.Context, e app.Event) {
					p.setCategory(ctx, ctx.JSSrc().Get("value").String())
				}).
				Body(
					app.Option().Value("").Text("All categories").Selected(p.filters.Category == ""),
					app.Range(allCategories).Slice(func(i int) app.UI {
						c := allCategories[i]
						return app.Option().Value(string(c)).Text(string(c)).
							Selected(p.filters.Category == c)
					}),
				),
		),
		p.renderList(),
	))
}

func (p *RequestsPage) renderList() app.UI {
	if p.page == nil || len(p.page.Data) == 0 {
		return app.P().Class("empty").Text("No requests found.")
	}

	return app.Div().Body(
		app.Div().Class("request-list").Body(
			app.Range(p.page.Data).Slice(func(i int) app.UI {
				req := p.page.Data[i]
				return requestCard(req, func(ctx app.Context) {
					ctx.Navigate(fmt.Sprintf("/requests/%d", req.ID))
				})
			}),
		),
		paginationBar(p.page.CurrentPage, p.page.LastPage, p.setPage),
	)
}
