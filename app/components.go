package main

import (
	"fmt"
	"time"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/deciflow/deciflow/internal/format"
	"github.com/deciflow/deciflow/internal/model"
)

// statusColors maps a request status to its badge style.
var statusColors = map[model.RequestStatus]string{
	model.StatusDraft:     "default",
	model.StatusSubmitted: "processing",
	model.StatusInReview:  "warning",
	model.StatusApproved:  "success",
	model.StatusRejected:  "error",
	model.StatusReturned:  "orange",
	model.StatusCancelled: "default",
	model.StatusArchived:  "default",
}

func statusBadge(status model.RequestStatus) app.UI {
	color := statusColors[status]
	if color == "" {
		color = "default"
	}
	return app.Span().
		Class("badge badge-" + color).
		Text(string(status))
}

func stepBadge(status model.StepStatus) app.UI {
	return app.Span().
		Class("badge step-" + string(status)).
		Text(string(status))
}

// layout wraps a page in the shared navigation shell. Links are gated by the
// cached role, which is a display convenience only.
func layout(content app.UI) app.UI {
	user := store.User()

	navLink := func(href, label string) app.UI {
		return app.A().Class("nav-link").Href(href).Text(label)
	}

	return app.Div().Class("page").Body(
		app.Header().Class("topbar").Body(
			app.A().Class("brand").Href("/").Text("DeciFlow"),
			app.Nav().Class("nav").Body(
				navLink("/requests", "Requests"),
				app.If(store.CanApprove(), func() app.UI {
					return navLink("/inbox", "Inbox")
				}),
				app.If(store.IsAdmin(), func() app.UI {
					return navLink("/rules", "Rules")
				}),
				app.If(store.IsSuperAdmin(), func() app.UI {
					return navLink("/audit", "Audit")
				}),
			),
			app.If(user != nil, func() app.UI {
				return app.Div().Class("user-menu").Body(
					app.Span().Class("user-name").Text(user.Name),
					app.Span().Class("user-role").Text(string(user.Role.Name)),
					app.Button().Class("btn btn-link").Text("Sign out").
						OnClick(func(ctx app.Context, e app.Event) {
							ctx.Async(func() {
								authSvc.Logout(ctx)
								ctx.Dispatch(func(ctx app.Context) {
									ctx.Navigate("/login")
								})
							})
						}),
				)
			}),
		),
		app.Main().Class("content").Body(content),
	)
}

func loadingView() app.UI {
	return app.Div().Class("loading-overlay").Body(
		app.Div().Class("loading-spinner"),
	)
}

func errorBanner(msg string) app.UI {
	if msg == "" {
		return app.Div()
	}
	return app.Div().Class("banner banner-error").Text(msg)
}

func forbiddenView() app.UI {
	return app.Div().Class("forbidden").Body(
		app.H1().Text("403"),
		app.P().Text("Access denied - insufficient permissions"),
	)
}

// paginationBar renders prev/next controls for a pagination envelope.
func paginationBar(current, last int, onPage func(app.Context, int)) app.UI {
	if last <= 1 {
		return app.Div()
	}
	return app.Div().Class("pagination").Body(
		app.Button().Class("btn").Text("Previous").
			Disabled(current <= 1).
			OnClick(func(ctx app.Context, e app.Event) {
				onPage(ctx, current-1)
			}),
		app.Span().Class("pagination-info").Text(fmt.Sprintf("Page %d of %d", current, last)),
		app.Button().Class("btn").Text("Next").
			Disabled(current >= last).
			OnClick(func(ctx app.Context, e app.Event) {
				onPage(ctx, current+1)
			}),
	)
}

// approvalTimeline renders the steps of a request's approval chain in step
// order.
func approvalTimeline(steps []model.ApprovalStep) app.UI {
	if len(steps) == 0 {
		return app.P().Class("empty").Text("No approval steps yet.")
	}
	return app.Ol().Class("timeline").Body(
		app.Range(steps).Slice(func(i int) app.UI {
			step := steps[i]
			return app.Li().Class("timeline-step timeline-"+string(step.Status)).Body(
				app.Div().Class("timeline-head").Body(
					app.Span().Class("step-number").Text(fmt.Sprintf("Step %d", step.StepNumber)),
					app.Span().Class("step-role").Text(string(step.ApproverRole)),
					stepBadge(step.Status),
				),
				app.If(step.Approver != nil, func() app.UI {
					return app.Div().Class("step-approver").Text(step.Approver.Name)
				}),
				app.If(step.Comment != "", func() app.UI {
					return app.Div().Class("step-comment").Text(step.Comment)
				}),
				app.If(step.ApprovedAt != nil, func() app.UI {
					return app.Div().Class("step-date").
						Text(format.Date(*step.ApprovedAt, format.LocaleEN, format.DateLong))
				}),
			)
		}),
	)
}

// requestCard is the list/inbox rendering of a single request.
func requestCard(req model.Request, onOpen func(app.Context)) app.UI {
	return app.Div().Class("request-card").
		OnClick(func(ctx app.Context, e app.Event) {
			onOpen(ctx)
		}).
		Body(
			app.Div().Class("card-head").Body(
				app.Span().Class("card-title").Text(format.Truncate(req.Title, 50)),
				statusBadge(req.Status),
			),
			app.Div().Class("card-meta").Body(
				app.Span().Class("card-amount").Text(format.Currency(req.Amount, format.LocaleEN)),
				app.Span().Class("card-category").Text(string(req.Category)),
				app.If(req.Urgency == model.UrgencyUrgent, func() app.UI {
					return app.Span().Class("badge badge-error").Text("URGENT")
				}),
			),
			app.Div().Class("card-date").
				Text(format.RelativeTime(req.CreatedAt, time.Now(), format.LocaleEN)),
		)
}
