package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomas-padrieza/mock-oidc-provider/internal/account"
)

func newLocalEngine(t *testing.T, find AccountFinder) (*Local, *MemoryStore) {
	t.Helper()

	store := NewMemoryStore()
	eng := NewLocal(Config{
		Issuer: "https://idp.example.com",
		Clients: []Client{
			NewClient("web-app", "top-secret", []string{"https://app.example.com/cb"}),
		},
		Scopes:        DefaultScopes(),
		ClaimsByScope: DefaultClaims(),
		PKCERequired:  true,
		Prompts:       DefaultPrompts(),
		FindAccount:   find,
	}, store)

	return eng, store
}

func TestNewInteraction_LoginWhenNoSession(t *testing.T) {
	eng, _ := newLocalEngine(t, nil)
	ctx := context.Background()

	uid, err := eng.NewInteraction(ctx, AuthRequest{ClientID: "web-app"})
	require.NoError(t, err)
	require.NotEmpty(t, uid)

	details, err := eng.InteractionDetails(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, PromptLogin, details.Prompt.Name)
	assert.Equal(t, "web-app", details.ClientID())
	assert.Empty(t, details.SessionAccountID)
}

func TestNewInteraction_SelectAccountWithSession(t *testing.T) {
	eng, _ := newLocalEngine(t, nil)
	ctx := context.Background()

	uid, err := eng.NewInteraction(ctx, AuthRequest{
		ClientID:         "web-app",
		Prompts:          []string{PromptSelectAccount},
		SessionAccountID: "alice",
	})
	require.NoError(t, err)

	details, err := eng.InteractionDetails(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, PromptSelectAccount, details.Prompt.Name)
	assert.Equal(t, "alice", details.SessionAccountID)
}

func TestNewInteraction_NothingToResolve(t *testing.T) {
	eng, _ := newLocalEngine(t, nil)

	_, err := eng.NewInteraction(context.Background(), AuthRequest{
		ClientID:         "web-app",
		SessionAccountID: "alice",
	})
	assert.ErrorIs(t, err, ErrNoPromptRequired)
}

func TestFinishInteraction(t *testing.T) {
	eng, store := newLocalEngine(t, nil)
	ctx := context.Background()

	uid, err := eng.NewInteraction(ctx, AuthRequest{ClientID: "web-app"})
	require.NoError(t, err)

	result := Result{PromptLogin: {AccountID: "alice"}}
	require.NoError(t, eng.FinishInteraction(ctx, uid, result, false))

	in, err := store.Get(ctx, uid)
	require.NoError(t, err)
	require.NotNil(t, in)
	assert.True(t, in.Finished)
	assert.Equal(t, result, in.Result)
}

func TestFinishInteraction_ReplacesPriorSubmissionByDefault(t *testing.T) {
	eng, store := newLocalEngine(t, nil)
	ctx := context.Background()

	uid, err := eng.NewInteraction(ctx, AuthRequest{ClientID: "web-app"})
	require.NoError(t, err)

	require.NoError(t, eng.FinishInteraction(ctx, uid, Result{PromptLogin: {AccountID: "alice"}}, false))
	require.NoError(t, eng.FinishInteraction(ctx, uid, Result{PromptSelectAccount: {AccountID: "bob"}}, false))

	in, err := store.Get(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, Result{PromptSelectAccount: {AccountID: "bob"}}, in.Result)
}

func TestFinishInteraction_MergeWithLastSubmission(t *testing.T) {
	eng, store := newLocalEngine(t, nil)
	ctx := context.Background()

	uid, err := eng.NewInteraction(ctx, AuthRequest{ClientID: "web-app"})
	require.NoError(t, err)

	require.NoError(t, eng.FinishInteraction(ctx, uid, Result{PromptLogin: {AccountID: "alice"}}, false))
	require.NoError(t, eng.FinishInteraction(ctx, uid, Result{PromptSelectAccount: {AccountID: "alice"}}, true))

	in, err := store.Get(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, Result{
		PromptLogin:         {AccountID: "alice"},
		PromptSelectAccount: {AccountID: "alice"},
	}, in.Result)
}

func TestFinishInteraction_UnknownUID(t *testing.T) {
	eng, _ := newLocalEngine(t, nil)

	err := eng.FinishInteraction(context.Background(), "missing", Result{}, false)
	assert.ErrorIs(t, err, ErrInteractionNotFound)
}

func TestFindClient(t *testing.T) {
	eng, _ := newLocalEngine(t, nil)
	ctx := context.Background()

	client, err := eng.FindClient(ctx, "web-app")
	require.NoError(t, err)
	assert.Equal(t, "web-app", client.ID)
	assert.Equal(t, []string{"code"}, client.ResponseTypes)
	assert.Equal(t, []string{"authorization_code"}, client.GrantTypes)

	_, err = eng.FindClient(ctx, "nope")
	assert.Error(t, err)
}

func TestClaims_UsesTheConfiguredFinder(t *testing.T) {
	dir := account.NewDirectory()
	dir.Create("alice", account.UserProfile{
		FirstName: "Alice",
		LastName:  "Smith",
		Username:  "alice",
		Email:     "alice@example.com",
		Roles:     []string{"admin"},
		Password:  "wonderland",
	})

	eng, _ := newLocalEngine(t, func(ctx context.Context, id string) (Account, bool) {
		acc, err := dir.FindByID(id)
		if err != nil {
			return nil, false
		}
		return acc, true
	})

	claims, ok := eng.Claims(context.Background(), "alice")
	require.True(t, ok)
	assert.Equal(t, "alice", claims.Sub)
	assert.Equal(t, "alice@example.com", claims.Email)

	_, ok = eng.Claims(context.Background(), "ghost")
	assert.False(t, ok)
}
