package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/deciflow/deciflow/internal/files"
	"github.com/deciflow/deciflow/internal/model"
)

// RequestFormPage handles both /requests/new and /requests/{id}/edit. In
// edit mode the existing draft is loaded and the fields prefilled.
type RequestFormPage struct {
	app.Compo

	editID int64
	loaded bool
	busy   bool
	errMsg string

	title       string
	description string
	category    string
	amount      string
	vendor      string
	urgency     string
	reason      string
	travelFrom  string
	travelTo    string
}

func (p *RequestFormPage) OnNav(ctx app.Context) {
	if !requireAuth(ctx) {
		return
	}
	path := ctx.Page().URL().Path
	if strings.HasSuffix(path, "/edit") {
		p.editID = requestIDFromPath(path)
		p.loadDraft(ctx)
		return
	}
	p.editID = 0
	p.loaded = true
	p.urgency = string(model.UrgencyNormal)
}

func (p *RequestFormPage) loadDraft(ctx app.Context) {
	id := p.editID
	ctx.Async(func() {
		req, err := requestsSvc.Get(ctx, id)
		ctx.Dispatch(func(ctx app.Context) {
			p.loaded = true
			if err != nil {
				p.errMsg = err.Error()
				return
			}
			if !store.CanEditRequest(req.UserID, req.Status) {
				ctx.Navigate(fmt.Sprintf("/requests/%d", req.ID))
				return
			}
			p.title = req.Title
			p.description = req.Description
			p.category = string(req.Category)
			p.amount = strconv.FormatInt(req.Amount, 10)
			p.vendor = req.VendorName
			p.urgency = string(req.Urgency)
			p.reason = req.UrgencyReason
			p.travelFrom = req.TravelStartDate
			p.travelTo = req.TravelEndDate
		})
	})
}

func (p *RequestFormPage) validate() string {
	if strings.TrimSpace(p.title) == "" {
		return "Title is required."
	}
	if p.category == "" {
		return "Category is required."
	}
	amount, err := strconv.ParseInt(p.amount, 10, 64)
	if err != nil || !files.ValidAmount(amount) {
		return "Amount must be a positive number of yen."
	}
	if p.urgency == string(model.UrgencyUrgent) && strings.TrimSpace(p.reason) == "" {
		return "An urgent request needs a reason."
	}
	if p.category == string(model.CategoryTravel) {
		if p.travelFrom == "" || p.travelTo == "" {
			return "Travel requests need start and end dates."
		}
		if p.travelTo < p.travelFrom {
			return "Travel end date must not be before the start date."
		}
	}
	return ""
}

func (p *RequestFormPage) input() model.RequestInput {
	amount, _ := strconv.ParseInt(p.amount, 10, 64)
	in := model.RequestInput{
		Title:       strings.TrimSpace(p.title),
		Description: strings.TrimSpace(p.description),
		Category:    model.RequestCategory(p.category),
		Amount:      amount,
		VendorName:  strings.TrimSpace(p.vendor),
		Urgency:     model.Urgency(p.urgency),
	}
	if in.Urgency == model.UrgencyUrgent {
		in.UrgencyReason = strings.TrimSpace(p.reason)
	}
	if in.Category == model.CategoryTravel {
		in.TravelStartDate = p.travelFrom
		in.TravelEndDate = p.travelTo
	}
	return in
}

func (p *RequestFormPage) submit(ctx app.Context) {
	if msg := p.validate(); msg != "" {
		p.errMsg = msg
		return
	}
	p.busy = true
	in := p.input()
	id := p.editID
	ctx.Async(func() {
		var (
			req *model.Request
			err error
		)
		if id != 0 {
			req, err = requestsSvc.Update(ctx, id, in)
		} else {
			req, err = requestsSvc.Create(ctx, in)
		}
		ctx.Dispatch(func(ctx app.Context) {
			p.busy = false
			if err != nil {
				p.errMsg = err.Error()
				return
			}
			ctx.Navigate(fmt.Sprintf("/requests/%d", req.ID))
		})
	})
}

func (p *RequestFormPage) bind(dst *string) app.EventHandler {
	return func(ctx app.Context, e app.Event) {
		*dst = ctx.JSSrc().Get("value").String()
	}
}

func (p *RequestFormPage) submitLabel() string {
	if p.busy {
		return "Saving..."
	}
	return "Save draft"
}

func (p *RequestFormPage) Render() app.UI {
	if !p.loaded {
		return layout(loadingView())
	}

	heading := "New Purchase Request"
	if p.editID != 0 {
		heading = "Edit Purchase Request"
	}

	return layout(app.Div().Class("request-form").Body(
		app.H1().Text(heading),
		errorBanner(p.errMsg),
		app.Form().OnSubmit(func(ctx app.Context, e app.Event) {
			e.PreventDefault()
			p.submit(ctx)
		}).Body(
			app.Label().For("title").Text("Title"),
			app.Input().ID("title").Type("text").Value(p.title).OnInput(p.bind(&p.title)),

			app.Label().For("description").Text("Description"),
			app.Textarea().ID("description").Text(p.description).OnInput(p.bind(&p.description)),

			app.Label().For("category").Text("Category"),
			app.Select().ID("category").OnChange(p.bind(&p.category)).Body(
				app.Option().Value("").Text("Select a category").Selected(p.category == ""),
				app.Range(allCategories).Slice(func(i int) app.UI {
					c := string(allCategories[i])
					return app.Option().Value(c).Text(c).Selected(p.category == c)
				}),
			),

			app.Label().For("amount").Text("Amount (JPY)"),
			app.Input().ID("amount").Type("number").Min(1).Value(p.amount).OnInput(p.bind(&p.amount)),

			app.Label().For("vendor").Text("Vendor"),
			app.Input().ID("vendor").Type("text").Value(p.vendor).OnInput(p.bind(&p.vendor)),

			app.Label().For("urgency").Text("Urgency"),
			app.Select().ID("urgency").OnChange(p.bind(&p.urgency)).Body(
				app.Option().Value(string(model.UrgencyNormal)).Text("Normal").
					Selected(p.urgency == string(model.UrgencyNormal)),
				app.Option().Value(string(model.UrgencyUrgent)).Text("Urgent").
					Selected(p.urgency == string(model.UrgencyUrgent)),
			),

			app.If(p.urgency == string(model.UrgencyUrgent), func() app.UI {
				return app.Div().Body(
					app.Label().For("reason").Text("Urgency reason"),
					app.Textarea().ID("reason").Text(p.reason).OnInput(p.bind(&p.reason)),
				)
			}),

			app.If(p.category == string(model.CategoryTravel), func() app.UI {
				return app.Div().Class("travel-dates").Body(
					app.Label().For("travel-from").Text("Travel start"),
					app.Input().ID("travel-from").Type("date").Value(p.travelFrom).OnInput(p.bind(&p.travelFrom)),
					app.Label().For("travel-to").Text("Travel end"),
					app.Input().ID("travel-to").Type("date").Value(p.travelTo).OnInput(p.bind(&p.travelTo)),
				)
			}),

			app.Button().Type("submit").Class("btn btn-primary").Disabled(p.busy).
				Text(p.submitLabel()),
		),
	))
}
