package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/deciflow/deciflow/internal/format"
	"github.com/deciflow/deciflow/internal/model"
)

type RequestDetailPage struct {
	app.Compo

	requestID int64
	request   *model.Request
	loaded    bool
	errMsg    string
	comment   string
	busy      bool
}

func (p *RequestDetailPage) OnNav(ctx app.Context) {
	if !requireAuth(ctx) {
		return
	}
	p.requestID = requestIDFromPath(ctx.Page().URL().Path)
	p.load(ctx)
}

func requestIDFromPath(path string) int64 {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 {
		return 0
	}
	id, _ := strconv.ParseInt(parts[1], 10, 64)
	return id
}

func (p *RequestDetailPage) load(ctx app.Context) {
	id := p.requestID
	ctx.Async(func() {
		req, err := requestsSvc.Get(ctx, id)
		ctx.Dispatch(func(ctx app.Context) {
			p.loaded = true
			if err != nil {
				p.errMsg = err.Error()
				return
			}
			p.errMsg = ""
			p.request = req
		})
	})
}

// runAction executes a lifecycle or approval action and reloads the request
// with whatever state the backend returns.
func (p *RequestDetailPage) runAction(ctx app.Context, action func() (*model.Request, error)) {
	p.busy = true
	ctx.Async(func() {
		req, err := action()
		ctx.Dispatch(func(ctx app.Context) {
			p.busy = false
			if err != nil {
				p.errMsg = err.Error()
				return
			}
			p.errMsg = ""
			p.comment = ""
			p.request = req
			p.load(ctx)
		})
	})
}

func (p *RequestDetailPage) Render() app.UI {
	if !p.loaded {
		return layout(loadingView())
	}
	if p.request == nil {
		return layout(errorBanner(p.errMsg))
	}

	req := p.request
	return layout(app.Div().Class("request-detail").Body(
		errorBanner(p.errMsg),
		app.Div().Class("page-head").Body(
			app.H1().Text(req.Title),
			statusBadge(req.Status),
		),
		p.renderFields(req),
		p.renderActions(req),
		app.H2().Text("Approval Steps"),
		approvalTimeline(req.ApprovalSteps),
		app.H2().Text("Attachments"),
		p.renderAttachments(req),
		app.H2().Text("History"),
		p.renderAudit(req.AuditLogs),
	))
}

func (p *RequestDetailPage) renderFields(req *model.Request) app.UI {
	field := func(label, value string) app.UI {
		if value == "" {
			return app.Div()
		}
		return app.Div().Class("field").Body(
			app.Span().Class("field-label").Text(label),
			app.Span().Class("field-value").Text(value),
		)
	}

	return app.Div().Class("fields").Body(
		field("Amount", format.Currency(req.Amount, format.LocaleEN)),
		field("Category", string(req.Category)),
		field("Urgency", string(req.Urgency)),
		field("Urgency reason", req.UrgencyReason),
		field("Vendor", req.VendorName),
		field("Travel dates", travelDates(req)),
		field("Created", format.Date(req.CreatedAt, format.LocaleEN, format.DateLong)),
		app.Div().Class("field field-wide").Body(
			app.Span().Class("field-label").Text("Description"),
			app.P().Class("field-value").Text(req.Description),
		),
	)
}

func travelDates(req *model.Request) string {
	if req.TravelStartDate == "" {
		return ""
	}
	return req.TravelStartDate + " - " + req.TravelEndDate
}

func (p *RequestDetailPage) renderActions(req *model.Request) app.UI {
	canEdit := store.CanEditRequest(req.UserID, req.Status)
	isOwner := store.User() != nil && store.User().ID == req.UserID
	cancellable := isOwner && (req.Status == model.StatusDraft ||
		req.Status == model.StatusSubmitted || req.Status == model.StatusInReview)
	archivable := store.IsAdmin() && (req.Status == model.StatusApproved ||
		req.Status == model.StatusRejected || req.Status == model.StatusCancelled)
	actionable := store.CanApprove() &&
		(req.Status == model.StatusSubmitted || req.Status == model.StatusInReview)

	return app.Div().Class("actions").Body(
		app.If(canEdit, func() app.UI {
			return app.Button().Class("btn").Text("Edit").Disabled(p.busy).
				OnClick(func(ctx app.Context, e app.Event) {
					ctx.Navigate(fmt.Sprintf("/requests/%d/edit", req.ID))
				})
		}),
		app.If(canEdit, func() app.UI {
			return app.Button().Class("btn btn-primary").Text("Submit for approval").Disabled(p.busy).
				OnClick(func(ctx app.Context, e app.Event) {
					p.runAction(ctx, func() (*model.Request, error) {
						return requestsSvc.Submit(ctx, req.ID)
					})
				})
		}),
		app.If(cancellable && req.Status != model.StatusDraft, func() app.UI {
			return app.Button().Class("btn btn-danger").Text("Cancel request").Disabled(p.busy).
				OnClick(func(ctx app.Context, e app.Event) {
					p.runAction(ctx, func() (*model.Request, error) {
						return requestsSvc.Cancel(ctx, req.ID)
					})
				})
		}),
		app.If(archivable, func() app.UI {
			return app.Button().Class("btn").Text("Archive").Disabled(p.busy).
				OnClick(func(ctx app.Context, e app.Event) {
					p.runAction(ctx, func() (*model.Request, error) {
						return requestsSvc.Archive(ctx, req.ID)
					})
				})
		}),
		app.If(actionable, func() app.UI {
			return p.renderApprovalActions(req)
		}),
	)
}

func (p *RequestDetailPage) renderApprovalActions(req *model.Request) app.UI {
	return app.Div().Class("approval-actions").Body(
		app.Textarea().Class("comment-box").Placeholder("Comment (required for reject/return)").
			Text(p.comment).
			OnInput(func(ctx app.Context, e app.Event) {
				p.comment = ctx.JSSrc().Get("value").String()
			}),
		app.Button().Class("btn btn-success").Text("Approve").Disabled(p.busy).
			OnClick(func(ctx app.Context, e app.Event) {
				p.runAction(ctx, func() (*model.Request, error) {
					return approvals.Approve(ctx, req.ID, p.comment)
				})
			}),
		app.Button().Class("btn btn-danger").Text("Reject").Disabled(p.busy || p.comment == "").
			OnClick(func(ctx app.Context, e app.Event) {
				p.runAction(ctx, func() (*model.Request, error) {
					return approvals.Reject(ctx, req.ID, p.comment)
				})
			}),
		app.Button().Class("btn").Text("Return to requester").Disabled(p.busy || p.comment == "").
			OnClick(func(ctx app.Context, e app.Event) {
				p.runAction(ctx, func() (*model.Request, error) {
					return approvals.Return(ctx, req.ID, p.comment)
				})
			}),
	)
}

func (p *RequestDetailPage) renderAttachments(req *model.Request) app.UI {
	isOwner := store.User() != nil && store.User().ID == req.UserID

	return app.Div().Class("attachments").Body(
		app.If(len(req.Attachments) == 0, func() app.UI {
			return app.P().Class("empty").Text("No attachments.")
		}).Else(func() app.UI {
			return app.Ul().Class("attachment-list").Body(
				app.Range(req.Attachments).Slice(func(i int) app.UI {
					att := req.Attachments[i]
					return app.Li().Class("attachment").Body(
						app.Span().Class("attachment-name").Text(att.FileName),
						app.Span().Class("attachment-size").Text(format.FileSize(att.FileSize)),
						app.Button().Class("btn btn-link").Text("Download").
							OnClick(func(ctx app.Context, e app.Event) {
								p.download(ctx, att)
							}),
						app.If(isOwner && req.Status == model.StatusDraft, func() app.UI {
							return app.Button().Class("btn btn-link").Text("Delete").
								OnClick(func(ctx app.Context, e app.Event) {
									p.deleteAttachment(ctx, att.ID)
								})
						}),
					)
				}),
			)
		}),
		app.If(isOwner && req.Status == model.StatusDraft, func() app.UI {
			return &FileUpload{
				RequestID: req.ID,
				OnUploaded: func(ctx app.Context) {
					p.load(ctx)
				},
			}
		}),
	)
}

func (p *RequestDetailPage) download(ctx app.Context, att model.Attachment) {
	ctx.Async(func() {
		data, err := attachments.Download(ctx, att.ID)
		ctx.Dispatch(func(ctx app.Context) {
			if err != nil {
				p.errMsg = err.Error()
				return
			}
			saveFile(att.FileName, att.MimeType, data)
		})
	})
}

func (p *RequestDetailPage) deleteAttachment(ctx app.Context, id int64) {
	ctx.Async(func() {
		err := attachments.Delete(ctx, id)
		ctx.Dispatch(func(ctx app.Context) {
			if err != nil {
				p.errMsg = err.Error()
				return
			}
			p.load(ctx)
		})
	})
}

func (p *RequestDetailPage) renderAudit(logs []model.AuditLog) app.UI {
	if len(logs) == 0 {
		return app.P().Class("empty").Text("No history yet.")
	}
	return app.Ul().Class("audit-list").Body(
		app.Range(logs).Slice(func(i int) app.UI {
			entry := logs[i]
			return app.Li().Class("audit-entry").Body(
				app.Span().Class("audit-action").Text(entry.Action),
				app.If(entry.FromStatus != nil && entry.ToStatus != nil, func() app.UI {
					return app.Span().Class("audit-transition").
						Text(fmt.Sprintf("%s to %s", *entry.FromStatus, *entry.ToStatus))
				}),
				app.If(entry.User != nil, func() app.UI {
					return app.Span().Class("audit-user").Text(entry.User.Name)
				}),
				app.Span().Class("audit-date").
					Text(format.Date(entry.CreatedAt, format.LocaleEN, format.DateLong)),
			)
		}),
	)
}
