// Package engine defines the boundary to the Authorization Engine: the
// external OIDC protocol component that issues codes and tokens and
// owns interaction state. This service configures and queries the
// engine but never reimplements its token or grant lifecycle.
package engine

import (
	"context"
	"errors"

	"github.com/zitadel/oidc/v3/pkg/oidc"

	"github.com/tomas-padrieza/mock-oidc-provider/internal/account"
)

// Prompt names this service resolves itself. Anything else is passed
// through to the engine's default handling.
const (
	PromptLogin         = string(oidc.PromptLogin)
	PromptSelectAccount = string(oidc.PromptSelectAccount)
)

var (
	// ErrInteractionNotFound is returned for an unknown or expired uid.
	ErrInteractionNotFound = errors.New("engine: interaction not found")

	// ErrNoPromptRequired means the authorization needs no user
	// interaction at all.
	ErrNoPromptRequired = errors.New("engine: no prompt requires resolution")
)

// Prompt is the named reason an interaction is paused, plus any detail
// the engine wants displayed to the user.
type Prompt struct {
	Name    string         `json:"name"`
	Details map[string]any `json:"details,omitempty"`
}

// PendingInteraction is the engine's read-only view of one paused
// authorization attempt.
type PendingInteraction struct {
	UID              string
	Prompt           Prompt
	Params           map[string]string
	SessionAccountID string
}

// ClientID returns the requesting client's identifier from the
// authorization parameters.
func (p *PendingInteraction) ClientID() string {
	return p.Params["client_id"]
}

// Resolution is the outcome recorded for a single prompt.
type Resolution struct {
	AccountID string `json:"accountId"`
}

// Result maps prompt names to their resolutions, mirroring the shape
// the engine expects when an interaction finishes.
type Result map[string]Resolution

// Client is an OAuth client registered with the engine.
type Client struct {
	ID            string
	Secret        string
	RedirectURIs  []string
	ResponseTypes []string
	GrantTypes    []string
}

// Engine is the interaction surface this service consumes.
type Engine interface {
	// InteractionDetails returns the pending interaction for uid.
	InteractionDetails(ctx context.Context, uid string) (*PendingInteraction, error)

	// FinishInteraction records the result for uid. When mergeWithLast
	// is false the result replaces any prior submission entirely.
	FinishInteraction(ctx context.Context, uid string, result Result, mergeWithLast bool) error

	// FindClient looks up a registered client by id.
	FindClient(ctx context.Context, clientID string) (*Client, error)
}

// Account is the capability the engine needs from a directory entry:
// an opaque identifier and a claims projection. Any concrete type
// satisfying it is substitutable.
type Account interface {
	AccountID() string
	Claims() account.Claims
}

// AccountFinder is the outbound callback the engine invokes whenever it
// materializes claims for an authenticated session.
type AccountFinder func(ctx context.Context, id string) (Account, bool)
