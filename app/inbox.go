package main

import (
	"fmt"
	"time"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/deciflow/deciflow/internal/format"
	"github.com/deciflow/deciflow/internal/model"
)

// InboxPage lists the requests waiting on the signed-in approver. Actions
// can be taken inline; reject and return require a comment.
type InboxPage struct {
	app.Compo

	items    []model.Request
	loaded   bool
	errMsg   string
	comments map[int64]string
	busyID   int64
}

func (p *InboxPage) OnNav(ctx app.Context) {
	if !requireAuth(ctx) {
		return
	}
	if p.comments == nil {
		p.comments = map[int64]string{}
	}
	p.load(ctx)
}

func (p *InboxPage) load(ctx app.Context) {
	ctx.Async(func() {
		items, err := approvals.Inbox(ctx)
		ctx.Dispatch(func(ctx app.Context) {
			p.loaded = true
			if err != nil {
				p.errMsg = err.Error()
				return
			}
			p.errMsg = ""
			p.items = items
		})
	})
}

func (p *InboxPage) act(ctx app.Context, id int64, do func() error) {
	p.busyID = id
	ctx.Async(func() {
		err := do()
		ctx.Dispatch(func(ctx app.Context) {
			p.busyID = 0
			if err != nil {
				p.errMsg = err.Error()
				return
			}
			delete(p.comments, id)
			p.load(ctx)
		})
	})
}

func (p *InboxPage) Render() app.UI {
	if !store.CanApprove() {
		return layout(forbiddenView())
	}
	if !p.loaded {
		return layout(loadingView())
	}

	return layout(app.Div().Class("inbox").Body(
		app.H1().Text("Approval Inbox"),
		errorBanner(p.errMsg),
		app.If(len(p.items) == 0, func() app.UI {
			return app.P().Class("empty").Text("Nothing waiting for your approval.")
		}).Else(func() app.UI {
			return app.Div().Class("inbox-list").Body(
				app.Range(p.items).Slice(func(i int) app.UI {
					return p.renderItem(p.items[i])
				}),
			)
		}),
	))
}

func (p *InboxPage) renderItem(req model.Request) app.UI {
	id := req.ID
	comment := p.comments[id]
	busy := p.busyID == id

	return app.Div().Class("inbox-item").Body(
		app.Div().Class("inbox-item-head").Body(
			app.A().Href(fmt.Sprintf("/requests/%d", id)).Class("inbox-item-title").Text(req.Title),
			statusBadge(req.Status),
		),
		app.Div().Class("inbox-item-meta").Body(
			app.Span().Text(format.Currency(req.Amount, format.LocaleEN)),
			app.Span().Text(string(req.Category)),
			app.If(req.User != nil, func() app.UI {
				return app.Span().Text(req.User.Name)
			}),
			app.Span().Text(format.RelativeTime(req.CreatedAt, time.Now(), format.LocaleEN)),
		),
		app.Textarea().Class("comment-box").Placeholder("Comment (required for reject/return)").
			Text(comment).
			OnInput(func(ctx app.Context, e app.Event) {
				p.comments[id] = ctx.JSSrc().Get("value").String()
			}),
		app.Div().Class("inbox-item-actions").Body(
			app.Button().Class("btn btn-success").Text("Approve").Disabled(busy).
				OnClick(func(ctx app.Context, e app.Event) {
					p.act(ctx, id, func() error {
						_, err := approvals.Approve(ctx, id, p.comments[id])
						return err
					})
				}),
			app.Button().Class("btn btn-danger").Text("Reject").Disabled(busy || comment == "").
				OnClick(func(ctx app.Context, e app.Event) {
					p.act(ctx, id, func() error {
						_, err := approvals.Reject(ctx, id, p.comments[id])
						return err
					})
				}),
			app.Button().Class("btn").Text("Return").Disabled(busy || comment == "").
				OnClick(func(ctx app.Context, e app.Event) {
					p.act(ctx, id, func() error {
						_, err := approvals.Return(ctx, id, p.comments[id])
						return err
					})
				}),
		),
	)
}
