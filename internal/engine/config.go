package engine

import "github.com/zitadel/oidc/v3/pkg/oidc"

// Config is everything this service supplies to the Authorization
// Engine at startup: registered clients, the scope/claim surface, the
// interaction policy and the account lookup callback.
type Config struct {
	Issuer        string
	Clients       []Client
	Scopes        []string
	ClaimsByScope map[string][]string
	PKCERequired  bool
	Prompts       []PromptPolicy
	FindAccount   AccountFinder
}

// DefaultScopes lists the scopes this provider supports.
func DefaultScopes() []string {
	return []string{oidc.ScopeOpenID, oidc.ScopeEmail, oidc.ScopeProfile}
}

// DefaultClaims maps each supported scope to the claims it releases.
func DefaultClaims() map[string][]string {
	return map[string][]string{
		oidc.ScopeOpenID:  {"sub"},
		oidc.ScopeEmail:   {"email"},
		oidc.ScopeProfile: {"firstName", "lastName", "email", "username", "roles"},
	}
}

// NewClient fills in the authorization-code defaults every client of
// this provider uses.
func NewClient(id, secret string, redirectURIs []string) Client {
	return Client{
		ID:            id,
		Secret:        secret,
		RedirectURIs:  redirectURIs,
		ResponseTypes: []string{string(oidc.ResponseTypeCode)},
		GrantTypes:    []string{string(oidc.GrantTypeCode)},
	}
}
