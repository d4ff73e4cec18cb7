package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/deciflow/deciflow/internal/format"
	"github.com/deciflow/deciflow/internal/model"
)

// RulesPage lets admins manage the approval routing rules. The backend is
// the only evaluator of rules; this page just edits the set.
type RulesPage struct {
	app.Compo

	rules   []model.Rule
	allowed bool
	loaded  bool
	errMsg  string
	busy    bool
	editing bool
	editID  int64

	name      string
	minAmount string
	maxAmount string
	category  string
	steps     []model.RuleStep
	active    bool
}

func (p *RulesPage) OnNav(ctx app.Context) {
	if !requireAuth(ctx) {
		return
	}
	p.allowed = requireRole(ctx, model.RoleSuperAdmin, model.RoleDeptAdmin)
	if !p.allowed {
		p.loaded = true
		return
	}
	p.load(ctx)
}

func (p *RulesPage) load(ctx app.Context) {
	ctx.Async(func() {
		rules, err := rulesSvc.List(ctx)
		ctx.Dispatch(func(ctx app.Context) {
			p.loaded = true
			if err != nil {
				p.errMsg = err.Error()
				return
			}
			p.errMsg = ""
			p.rules = rules
		})
	})
}

func (p *RulesPage) startCreate() {
	p.editing = true
	p.editID = 0
	p.name = ""
	p.minAmount = "0"
	p.maxAmount = ""
	p.category = ""
	p.steps = []model.RuleStep{{Step: 1, Role: model.RoleApprover}}
	p.active = true
}

func (p *RulesPage) startEdit(rule model.Rule) {
	p.editing = true
	p.editID = rule.ID
	p.name = rule.Name
	p.minAmount = strconv.FormatInt(rule.MinAmount, 10)
	p.maxAmount = ""
	if rule.MaxAmount != nil {
		p.maxAmount = strconv.FormatInt(*rule.MaxAmount, 10)
	}
	p.category = ""
	if rule.Category != nil {
		p.category = string(*rule.Category)
	}
	p.steps = append([]model.RuleStep(nil), rule.ApprovalSteps...)
	p.active = rule.IsActive
}

func (p *RulesPage) input() (model.RuleInput, string) {
	name := strings.TrimSpace(p.name)
	if name == "" {
		return model.RuleInput{}, "Rule name is required."
	}
	minAmount, err := strconv.ParseInt(p.minAmount, 10, 64)
	if err != nil || minAmount < 0 {
		return model.RuleInput{}, "Minimum amount must be zero or more."
	}
	in := model.RuleInput{
		Name:          name,
		MinAmount:     minAmount,
		ApprovalSteps: p.steps,
		IsActive:      p.active,
	}
	if p.maxAmount != "" {
		maxAmount, err := strconv.ParseInt(p.maxAmount, 10, 64)
		if err != nil || maxAmount < minAmount {
			return model.RuleInput{}, "Maximum amount must be at least the minimum."
		}
		in.MaxAmount = &maxAmount
	}
	if p.category != "" {
		c := model.RequestCategory(p.category)
		in.Category = &c
	}
	if len(in.ApprovalSteps) == 0 {
		return model.RuleInput{}, "A rule needs at least one approval step."
	}
	return in, ""
}

func (p *RulesPage) save(ctx app.Context) {
	in, msg := p.input()
	if msg != "" {
		p.errMsg = msg
		return
	}
	p.busy = true
	id := p.editID
	ctx.Async(func() {
		var err error
		if id != 0 {
			_, err = rulesSvc.Update(ctx, id, in)
		} else {
			_, err = rulesSvc.Create(ctx, in)
		}
		ctx.Dispatch(func(ctx app.Context) {
			p.busy = false
			if err != nil {
				p.errMsg = err.Error()
				return
			}
			p.editing = false
			p.load(ctx)
		})
	})
}

func (p *RulesPage) remove(ctx app.Context, id int64) {
	p.busy = true
	ctx.Async(func() {
		err := rulesSvc.Delete(ctx, id)
		ctx.Dispatch(func(ctx app.Context) {
			p.busy = false
			if err != nil {
				p.errMsg = err.Error()
				return
			}
			p.load(ctx)
		})
	})
}

func (p *RulesPage) Render() app.UI {
	if !p.allowed {
		return layout(forbiddenView())
	}
	if !p.loaded {
		return layout(loadingView())
	}

	return layout(app.Div().Class("rules").Body(
		app.Div().Class("page-head").Body(
			app.H1().Text("Approval Rules"),
			app.Button().Class("btn btn-primary").Text("New rule").Disabled(p.busy).
				OnClick(func(ctx app.Context, e app.Event) {
					p.startCreate()
				}),
		),
		errorBanner(p.errMsg),
		app.If(p.editing, func() app.UI {
			return p.renderForm()
		}),
		p.renderList(),
	))
}

func (p *RulesPage) renderList() app.UI {
	if len(p.rules) == 0 {
		return app.P().Class("empty").Text("No rules configured.")
	}
	return app.Table().Class("rules-table").Body(
		app.THead().Body(app.Tr().Body(
			app.Th().Text("Name"),
			app.Th().Text("Range"),
			app.Th().Text("Category"),
			app.Th().Text("Steps"),
			app.Th().Text("Active"),
			app.Th(),
		)),
		app.TBody().Body(
			app.Range(p.rules).Slice(func(i int) app.UI {
				return p.renderRow(p.rules[i])
			}),
		),
	)
}

func (p *RulesPage) renderRow(rule model.Rule) app.UI {
	rangeText := format.Currency(rule.MinAmount, format.LocaleEN) + " and up"
	if rule.MaxAmount != nil {
		rangeText = fmt.Sprintf("%s - %s",
			format.Currency(rule.MinAmount, format.LocaleEN),
			format.Currency(*rule.MaxAmount, format.LocaleEN))
	}
	category := "Any"
	if rule.Category != nil {
		category = string(*rule.Category)
	}
	chain := make([]string, 0, len(rule.ApprovalSteps))
	for _, s := range rule.ApprovalSteps {
		chain = append(chain, string(s.Role))
	}
	active := "No"
	if rule.IsActive {
		active = "Yes"
	}

	return app.Tr().Body(
		app.Td().Text(rule.Name),
		app.Td().Text(rangeText),
		app.Td().Text(category),
		app.Td().Text(strings.Join(chain, ", ")),
		app.Td().Text(active),
		app.Td().Body(
			app.Button().Class("btn btn-link").Text("Edit").Disabled(p.busy).
				OnClick(func(ctx app.Context, e app.Event) {
					p.startEdit(rule)
				}),
			app.Button().Class("btn btn-link").Text("Delete").Disabled(p.busy).
				OnClick(func(ctx app.Context, e app.Event) {
					p.remove(ctx, rule.ID)
				}),
		),
	)
}

var stepRoles = []model.RoleName{
	model.RoleApprover,
	model.RoleDeptAdmin,
	model.RoleSuperAdmin,
}

func (p *RulesPage) renderForm() app.UI {
	heading := "New Rule"
	if p.editID != 0 {
		heading = "Edit Rule"
	}

	return app.Div().Class("rule-form").Body(
		app.H2().Text(heading),
		app.Label().For("rule-name").Text("Name"),
		app.Input().ID("rule-name").Type("text").Value(p.name).
			OnInput(func(ctx app.Context, e app.Event) {
				p.name = ctx.JSSrc().Get("value").String()
			}),

		app.Label().For("rule-min").Text("Minimum amount (JPY)"),
		app.Input().ID("rule-min").Type("number").Min(0).Value(p.minAmount).
			OnInput(func(ctx app.Context, e app.Event) {
				p.minAmount = ctx.JSSrc().Get("value").String()
			}),

		app.Label().For("rule-max").Text("Maximum amount (blank for none)"),
		app.Input().ID("rule-max").Type("number").Min(0).Value(p.maxAmount).
			OnInput(func(ctx app.Context, e app.Event) {
				p.maxAmount = ctx.JSSrc().Get("value").String()
			}),

		app.Label().For("rule-category").Text("Category"),
		app.Select().ID("rule-category").
			OnChange(func(ctx app.Context, e app.Event) {
				p.category = ctx.JSSrc().Get("value").String()
			}).
			Body(
				app.Option().Value("").Text("Any category").Selected(p.category == ""),
				app.Range(allCategories).Slice(func(i int) app.UI {
					c := string(allCategories[i])
					return app.Option().Value(c).Text(c).Selected(p.category == c)
				}),
			),

		app.Label().Text("Approval steps"),
		app.Range(p.steps).Slice(func(i int) app.UI {
			return p.renderStep(i)
		}),
		app.Button().Class("btn btn-link").Text("Add step").
			OnClick(func(ctx app.Context, e app.Event) {
				p.steps = append(p.steps, model.RuleStep{
					Step: len(p.steps) + 1,
					Role: model.RoleApprover,
				})
			}),

		app.Label().Body(
			app.Input().Type("checkbox").Checked(p.active).
				OnChange(func(ctx app.Context, e app.Event) {
					p.active = ctx.JSSrc().Get("checked").Bool()
				}),
			app.Text("Active"),
		),

		app.Div().Class("rule-form-actions").Body(
			app.Button().Class("btn btn-primary").Text("Save").Disabled(p.busy).
				OnClick(func(ctx app.Context, e app.Event) {
					p.save(ctx)
				}),
			app.Button().Class("btn").Text("Cancel").Disabled(p.busy).
				OnClick(func(ctx app.Context, e app.Event) {
					p.editing = false
				}),
		),
	)
}

func (p *RulesPage) renderStep(i int) app.UI {
	step := p.steps[i]
	return app.Div().Class("rule-step").Body(
		app.Span().Class("rule-step-number").Text(fmt.Sprintf("Step %d", step.Step)),
		app.Select().
			OnChange(func(ctx app.Context, e app.Event) {
				p.steps[i].Role = model.RoleName(ctx.JSSrc().Get("value").String())
			}).
			Body(
				app.Range(stepRoles).Slice(func(j int) app.UI {
					r := stepRoles[j]
					return app.Option().Value(string(r)).Text(string(r)).Selected(step.Role == r)
				}),
			),
		app.If(len(p.steps) > 1, func() app.UI {
			return app.Button().Class("btn btn-link").Text("Remove").
				OnClick(func(ctx app.Context, e app.Event) {
					p.steps = append(p.steps[:i], p.steps[i+1:]...)
					for j := range p.steps {
						p.steps[j].Step = j + 1
					}
				})
		}),
	)
}
