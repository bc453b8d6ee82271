package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tomas-padrieza/mock-oidc-provider/internal/account"
)

const interactionTTL = time.Hour

// AuthRequest is the slice of an inbound authorization request the
// interaction machinery needs: who is asking, which prompts were
// requested, and whether a session already picked an account.
type AuthRequest struct {
	ClientID         string
	Prompts          []string
	SessionAccountID string
}

// Local is a process-local Authorization Engine covering only the
// interaction surface this service consumes. Code and token issuance
// belong to a real protocol engine and are deliberately absent.
type Local struct {
	cfg     Config
	store   Store
	clients map[string]Client
}

func NewLocal(cfg Config, store Store) *Local {
	clients := make(map[string]Client, len(cfg.Clients))
	for _, c := range cfg.Clients {
		clients[c.ID] = c
	}
	return &Local{
		cfg:     cfg,
		store:   store,
		clients: clients,
	}
}

// NewInteraction evaluates the prompt policies against the request and
// pauses the authorization on the first prompt that requires
// resolution. Returns ErrNoPromptRequired when none does.
func (e *Local) NewInteraction(ctx context.Context, req AuthRequest) (string, error) {
	requested := make(map[string]bool, len(req.Prompts))
	for _, name := range req.Prompts {
		requested[name] = true
	}

	pctx := &PromptContext{
		SessionAccountID: req.SessionAccountID,
		requested:        requested,
		resolved:         make(map[string]bool),
	}

	var prompt *PromptPolicy
	for i := range e.cfg.Prompts {
		if e.cfg.Prompts[i].required(pctx) {
			prompt = &e.cfg.Prompts[i]
			break
		}
	}
	if prompt == nil {
		return "", ErrNoPromptRequired
	}

	in := Interaction{
		UID: uuid.NewString(),
		Prompt: Prompt{
			Name:    prompt.Name,
			Details: map[string]any{},
		},
		Params:           map[string]string{"client_id": req.ClientID},
		SessionAccountID: req.SessionAccountID,
		ExpiresAt:        time.Now().Add(interactionTTL),
	}

	if err := e.store.Create(ctx, in); err != nil {
		return "", err
	}

	return in.UID, nil
}

func (e *Local) InteractionDetails(ctx context.Context, uid string) (*PendingInteraction, error) {
	in, err := e.load(ctx, uid)
	if err != nil {
		return nil, err
	}

	return &PendingInteraction{
		UID:              in.UID,
		Prompt:           in.Prompt,
		Params:           in.Params,
		SessionAccountID: in.SessionAccountID,
	}, nil
}

func (e *Local) FinishInteraction(ctx context.Context, uid string, result Result, mergeWithLast bool) error {
	in, err := e.load(ctx, uid)
	if err != nil {
		return err
	}

	if mergeWithLast && in.Result != nil {
		merged := make(Result, len(in.Result)+len(result))
		for name, res := range in.Result {
			merged[name] = res
		}
		for name, res := range result {
			merged[name] = res
		}
		result = merged
	}

	in.Result = result
	in.Finished = true

	return e.store.Update(ctx, *in)
}

func (e *Local) FindClient(ctx context.Context, clientID string) (*Client, error) {
	c, ok := e.clients[clientID]
	if !ok {
		return nil, fmt.Errorf("engine: unknown client: %s", clientID)
	}
	return &c, nil
}

// Claims resolves an account id through the configured finder and
// projects it, the way a real engine materializes session claims.
func (e *Local) Claims(ctx context.Context, accountID string) (account.Claims, bool) {
	if e.cfg.FindAccount == nil {
		return account.Claims{}, false
	}
	acc, ok := e.cfg.FindAccount(ctx, accountID)
	if !ok {
		return account.Claims{}, false
	}
	return acc.Claims(), true
}

func (e *Local) load(ctx context.Context, uid string) (*Interaction, error) {
	in, err := e.store.Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	if in == nil {
		return nil, ErrInteractionNotFound
	}
	return in, nil
}
