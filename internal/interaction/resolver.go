// Package interaction decides how a pending authorization interaction
// is resolved: automatically from the session, through a login form, or
// not at all.
package interaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomas-padrieza/mock-oidc-provider/internal/account"
	"github.com/tomas-padrieza/mock-oidc-provider/internal/engine"
)

// ErrPromptMismatch is returned when a login form is submitted against
// an interaction whose pending prompt is not login. The interaction
// stays pending.
var ErrPromptMismatch = errors.New("interaction: submission does not match the pending prompt")

type DecisionKind int

const (
	// Finished: the interaction was auto-resolved; nothing to render.
	Finished DecisionKind = iota
	// RenderLogin: the caller must show the sign-in form.
	RenderLogin
	// PassThrough: the prompt is none of ours; defer to the engine.
	PassThrough
)

// Decision tells the transport layer what to do with an interaction.
type Decision struct {
	Kind    DecisionKind
	UID     string
	Client  *engine.Client
	Details map[string]any
	Params  map[string]string
}

// Resolver mediates between the engine's pending interactions and the
// account directory.
type Resolver struct {
	directory *account.Directory
	engine    engine.Engine
}

func NewResolver(dir *account.Directory, eng engine.Engine) *Resolver {
	return &Resolver{
		directory: dir,
		engine:    eng,
	}
}

// Resolve inspects the pending interaction for uid.
//
// A select_account prompt with a session account finishes immediately
// with that account, replacing any prior submission. A login prompt, or
// select_account without a session account, asks for the sign-in form.
// Any other prompt is left to the engine.
func (r *Resolver) Resolve(ctx context.Context, uid string) (*Decision, error) {
	details, err := r.engine.InteractionDetails(ctx, uid)
	if err != nil {
		return nil, err
	}

	if details.Prompt.Name == engine.PromptSelectAccount && details.SessionAccountID != "" {
		result := engine.Result{
			engine.PromptSelectAccount: {AccountID: details.SessionAccountID},
		}
		if err := r.engine.FinishInteraction(ctx, uid, result, false); err != nil {
			return nil, fmt.Errorf("interaction: failed to finish %s: %w", uid, err)
		}
		return &Decision{Kind: Finished, UID: uid}, nil
	}

	switch details.Prompt.Name {
	case engine.PromptSelectAccount, engine.PromptLogin:
		client, err := r.engine.FindClient(ctx, details.ClientID())
		if err != nil {
			return nil, err
		}
		return &Decision{
			Kind:    RenderLogin,
			UID:     uid,
			Client:  client,
			Details: details.Prompt.Details,
			Params:  details.Params,
		}, nil
	default:
		return &Decision{Kind: PassThrough, UID: uid}, nil
	}
}

// SubmitLogin validates a login form submission and finishes the
// interaction on success. Credential failures and prompt mismatches
// leave the interaction pending and retryable.
func (r *Resolver) SubmitLogin(ctx context.Context, uid, login, password string) error {
	details, err := r.engine.InteractionDetails(ctx, uid)
	if err != nil {
		return err
	}

	if details.Prompt.Name != engine.PromptLogin {
		return ErrPromptMismatch
	}

	acc, err := r.directory.ValidateCredentials(login, password)
	if err != nil {
		return err
	}

	result := engine.Result{
		engine.PromptLogin: {AccountID: acc.AccountID()},
	}
	return r.engine.FinishInteraction(ctx, uid, result, false)
}
