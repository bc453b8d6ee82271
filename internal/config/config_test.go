package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ISSUER", "https://idp.example.com")
	t.Setenv("CLIENT_ID", "web-app")
	t.Setenv("CLIENT_SECRET", "top-secret")
	t.Setenv("REDIRECT_URIS", "https://app.example.com/cb")
	t.Setenv("APP_PORT", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("INITIAL_USERS_FILE", "")
	t.Setenv("USER_MANAGEMENT_ENABLED", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("REDIS_PASSWORD", "")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.AppPort)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "./store/users.json", cfg.InitialUsersFile)
	assert.True(t, cfg.UserManagementEnabled)
	assert.Equal(t, "https://idp.example.com", cfg.Issuer)
	assert.Equal(t, []string{"https://app.example.com/cb"}, cfg.RedirectURIs)
}

func TestLoad_RedirectURIs(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "single",
			raw:  "https://app.example.com/cb",
			want: []string{"https://app.example.com/cb"},
		},
		{
			name: "comma separated",
			raw:  "https://a.example.com/cb, https://b.example.com/cb",
			want: []string{"https://a.example.com/cb", "https://b.example.com/cb"},
		},
		{
			name: "newline separated",
			raw:  "https://a.example.com/cb\nhttps://b.example.com/cb\n",
			want: []string{"https://a.example.com/cb", "https://b.example.com/cb"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv("REDIRECT_URIS", tt.raw)

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.RedirectURIs)
		})
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"missing issuer", "ISSUER", ""},
		{"relative issuer", "ISSUER", "idp.example.com"},
		{"missing client id", "CLIENT_ID", ""},
		{"missing client secret", "CLIENT_SECRET", ""},
		{"missing redirect uris", "REDIRECT_URIS", ""},
		{"non-url redirect uri", "REDIRECT_URIS", "https://ok.example.com/cb,not a url"},
		{"non-numeric port", "APP_PORT", "https"},
		{"unknown env", "APP_ENV", "staging"},
		{"bad bool", "USER_MANAGEMENT_ENABLED", "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_UserManagementDisabled(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("USER_MANAGEMENT_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.UserManagementEnabled)
}
