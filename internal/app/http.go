package app

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/tomas-padrieza/mock-oidc-provider/internal/account"
	"github.com/tomas-padrieza/mock-oidc-provider/internal/config"
	"github.com/tomas-padrieza/mock-oidc-provider/internal/engine"
	"github.com/tomas-padrieza/mock-oidc-provider/internal/handler"
	"github.com/tomas-padrieza/mock-oidc-provider/internal/interaction"
	"github.com/tomas-padrieza/mock-oidc-provider/internal/logger"
	"github.com/tomas-padrieza/mock-oidc-provider/internal/redis"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	// ----------------------------
	// Account directory
	// ----------------------------

	directory := account.NewDirectory()

	if err := account.LoadInitialUsers(cfg.InitialUsersFile, directory); err != nil {
		return nil, nil, err
	}

	logger.Info("initial users loaded", map[string]any{
		"file":  cfg.InitialUsersFile,
		"count": directory.Len(),
	})

	// ----------------------------
	// Authorization engine
	// ----------------------------

	store, cleanup, err := setupInteractionStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	eng := engine.NewLocal(engine.Config{
		Issuer: cfg.Issuer,
		Clients: []engine.Client{
			engine.NewClient(cfg.ClientID, cfg.ClientSecret, cfg.RedirectURIs),
		},
		Scopes:        engine.DefaultScopes(),
		ClaimsByScope: engine.DefaultClaims(),
		PKCERequired:  true,
		Prompts:       engine.DefaultPrompts(),
		FindAccount: func(ctx context.Context, id string) (engine.Account, bool) {
			acc, err := directory.FindByID(id)
			if err != nil {
				return nil, false
			}
			return acc, true
		},
	}, store)

	// ----------------------------
	// Router
	// ----------------------------

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	handler.LoadTemplates(router)

	resolver := interaction.NewResolver(directory, eng)
	h := handler.NewHandler(directory, resolver, cfg.UserManagementEnabled)
	h.RegisterRoutes(router)

	return router, cleanup, nil
}

// setupInteractionStore picks the engine's interaction store: Redis
// when configured, otherwise in-memory.
func setupInteractionStore(cfg config.Config) (engine.Store, func() error, error) {
	if cfg.RedisAddr == "" {
		return engine.NewMemoryStore(), nil, nil
	}

	client, err := redis.New(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("redis ready", map[string]any{"addr": cfg.RedisAddr})

	return engine.NewRedisStore(client.Client), client.Close, nil
}
