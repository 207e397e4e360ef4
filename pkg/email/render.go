package email

import "strings"

// Context data for template rendering. A nil context leaves its placeholders
// unresolved so the fallback column of the rule table fills them in. A context
// that supplies an empty string counts as resolved and is kept as-is.

type PropertyContext struct {
	Address      string
	ResidentName string
	MonthlyFee   string
}

type MaintenanceContext struct {
	RequestTitle string
	Status       string
	Notes        string
}

type FinancialContext struct {
	CurrentBalance string
	DueDate        string
}

type RenderContext struct {
	Property    *PropertyContext
	Maintenance *MaintenanceContext
	Financial   *FinancialContext
}

// placeholderRule binds one vocabulary token to its context resolver and the
// fallback used when the resolver has nothing to offer.
type placeholderRule struct {
	name     string
	resolve  func(ctx RenderContext) (string, bool)
	fallback string
}

// The fixed placeholder vocabulary. Tokens outside this table are left
// verbatim in the rendered text.
var placeholderRules = []placeholderRule{
	{
		name: "property_address",
		resolve: func(ctx RenderContext) (string, bool) {
			if ctx.Property == nil {
				return "", false
			}
			return ctx.Property.Address, true
		},
	},
	{
		name: "resident_name",
		resolve: func(ctx RenderContext) (string, bool) {
			if ctx.Property == nil {
				return "", false
			}
			return ctx.Property.ResidentName, true
		},
	},
	{
		name: "monthly_fee",
		resolve: func(ctx RenderContext) (string, bool) {
			if ctx.Property == nil {
				return "", false
			}
			return ctx.Property.MonthlyFee, true
		},
	},
	{
		name: "current_balance",
		resolve: func(ctx RenderContext) (string, bool) {
			if ctx.Financial == nil {
				return "", false
			}
			return ctx.Financial.CurrentBalance, true
		},
		fallback: "0.00",
	},
	{
		name: "due_date",
		resolve: func(ctx RenderContext) (string, bool) {
			if ctx.Financial == nil {
				return "", false
			}
			return ctx.Financial.DueDate, true
		},
		fallback: "End of Month",
	},
	{
		name: "request_title",
		resolve: func(ctx RenderContext) (string, bool) {
			if ctx.Maintenance == nil {
				return "", false
			}
			return ctx.Maintenance.RequestTitle, true
		},
	},
	{
		name: "status",
		resolve: func(ctx RenderContext) (string, bool) {
			if ctx.Maintenance == nil {
				return "", false
			}
			return ctx.Maintenance.Status, true
		},
	},
	{
		name: "notes",
		resolve: func(ctx RenderContext) (string, bool) {
			if ctx.Maintenance == nil {
				return "", false
			}
			return ctx.Maintenance.Notes, true
		},
	},
}

// Render substitutes every recognized {{placeholder}} in text. Context values
// win; the fallback fills only placeholders whose context is absent. Pure
// function: no side effects, same input and context produce the same output.
func Render(text string, ctx RenderContext) string {
	for _, rule := range placeholderRules {
		token := "{{" + rule.name + "}}"
		if !strings.Contains(text, token) {
			continue
		}
		value, ok := rule.resolve(ctx)
		if !ok {
			value = rule.fallback
		}
		text = strings.ReplaceAll(text, token, value)
	}
	return text
}
