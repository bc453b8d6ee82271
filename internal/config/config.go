package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	AppPort string
	AppEnv  string

	Issuer       string
	ClientID     string
	ClientSecret string
	RedirectURIs []string

	InitialUsersFile string

	UserManagementEnabled bool

	// Optional. When set, interaction state lives in Redis instead of memory.
	RedisAddr     string
	RedisPassword string
}

const (
	defaultPort      = "3000"
	defaultEnv       = "development"
	defaultUsersFile = "./store/users.json"
)

// Load reads configuration from the environment and validates it.
// It never exits: the caller decides whether a config error is fatal.
func Load() (Config, error) {

	cfg := Config{
		AppPort: getOrDefault("APP_PORT", defaultPort),
		AppEnv:  getOrDefault("APP_ENV", defaultEnv),

		Issuer:       os.Getenv("ISSUER"),
		ClientID:     os.Getenv("CLIENT_ID"),
		ClientSecret: os.Getenv("CLIENT_SECRET"),

		InitialUsersFile: getOrDefault("INITIAL_USERS_FILE", defaultUsersFile),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}

	if _, err := strconv.Atoi(cfg.AppPort); err != nil {
		return Config{}, fmt.Errorf("config: APP_PORT must be numeric, got %q", cfg.AppPort)
	}

	switch cfg.AppEnv {
	case "development", "production", "test":
	default:
		return Config{}, fmt.Errorf("config: APP_ENV must be development, production or test, got %q", cfg.AppEnv)
	}

	if err := requireURL("ISSUER", cfg.Issuer); err != nil {
		return Config{}, err
	}

	if cfg.ClientID == "" {
		return Config{}, fmt.Errorf("config: CLIENT_ID is required")
	}
	if cfg.ClientSecret == "" {
		return Config{}, fmt.Errorf("config: CLIENT_SECRET is required")
	}

	uris, err := parseRedirectURIs(os.Getenv("REDIRECT_URIS"))
	if err != nil {
		return Config{}, err
	}
	cfg.RedirectURIs = uris

	enabled, err := parseBoolOrDefault("USER_MANAGEMENT_ENABLED", true)
	if err != nil {
		return Config{}, err
	}
	cfg.UserManagementEnabled = enabled

	return cfg, nil
}

// parseRedirectURIs accepts one URI, or several separated by newlines
// or commas. Every entry must be an absolute URL.
func parseRedirectURIs(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("config: REDIRECT_URIS is required")
	}

	sep := ","
	if strings.Contains(raw, "\n") {
		sep = "\n"
	}

	var uris []string
	for _, part := range strings.Split(raw, sep) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if err := requireURL("REDIRECT_URIS", part); err != nil {
			return nil, err
		}
		uris = append(uris, part)
	}

	if len(uris) == 0 {
		return nil, fmt.Errorf("config: REDIRECT_URIS is required")
	}

	return uris, nil
}

func requireURL(name, value string) error {
	if value == "" {
		return fmt.Errorf("config: %s is required", name)
	}
	u, err := url.Parse(value)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("config: %s must be an absolute URL, got %q", name, value)
	}
	return nil
}

func parseBoolOrDefault(name string, def bool) (bool, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("config: %s must be a boolean, got %q", name, raw)
	}
	return v, nil
}

func getOrDefault(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}
