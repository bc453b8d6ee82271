package engine

// PromptContext is what a prompt check can observe about the current
// authorization: which prompts were requested, which the engine still
// lists as unresolved, and the session account if one exists.
type PromptContext struct {
	SessionAccountID string

	requested map[string]bool
	resolved  map[string]bool
}

// Has reports whether the prompt was requested for this authorization.
func (c *PromptContext) Has(name string) bool {
	return c.requested[name]
}

// Pending reports whether the prompt is still outstanding.
func (c *PromptContext) Pending(name string) bool {
	return c.requested[name] && !c.resolved[name]
}

// CheckFunc reports whether its prompt must still be shown.
type CheckFunc func(ctx *PromptContext) bool

// Check is a named condition attached to a prompt policy.
type Check struct {
	Name        string
	Description string
	Failed      CheckFunc
}

// PromptPolicy describes one prompt the engine may raise and the checks
// deciding whether it is required.
type PromptPolicy struct {
	Name        string
	Requestable bool
	Checks      []Check
}

func (p PromptPolicy) required(ctx *PromptContext) bool {
	for _, check := range p.Checks {
		if check.Failed(ctx) {
			return true
		}
	}
	return false
}

// LoginPrompt is the base login policy: required whenever login was
// requested explicitly or no session account exists yet.
func LoginPrompt() PromptPolicy {
	return PromptPolicy{
		Name:        PromptLogin,
		Requestable: true,
		Checks: []Check{{
			Name:        "no_session",
			Description: "End-User authentication is required",
			Failed: func(ctx *PromptContext) bool {
				return ctx.Has(PromptLogin) || ctx.SessionAccountID == ""
			},
		}},
	}
}

// SelectAccountPrompt is the custom account-selection policy. Its only
// check keeps the prompt visible while the engine still lists it as
// outstanding and pending; it carries no further business condition.
func SelectAccountPrompt() PromptPolicy {
	return PromptPolicy{
		Name:        PromptSelectAccount,
		Requestable: true,
		Checks: []Check{{
			Name:        "select_account_prompt",
			Description: "Select Account prompt was not resolved",
			Failed: func(ctx *PromptContext) bool {
				return ctx.Has(PromptSelectAccount) && ctx.Pending(PromptSelectAccount)
			},
		}},
	}
}

// DefaultPrompts is the policy set this service hands the engine.
// Login stays first: an unauthenticated user must sign in before an
// account-selection prompt can be considered.
func DefaultPrompts() []PromptPolicy {
	return []PromptPolicy{
		LoginPrompt(),
		SelectAccountPrompt(),
	}
}
