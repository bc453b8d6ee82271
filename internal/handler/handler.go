package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tomas-padrieza/mock-oidc-provider/internal/account"
	"github.com/tomas-padrieza/mock-oidc-provider/internal/engine"
	"github.com/tomas-padrieza/mock-oidc-provider/internal/interaction"
	"github.com/tomas-padrieza/mock-oidc-provider/internal/logger"
)

type Handler struct {
	directory      *account.Directory
	resolver       *interaction.Resolver
	userManagement bool
}

func NewHandler(
	dir *account.Directory,
	resolver *interaction.Resolver,
	userManagement bool,
) *Handler {
	return &Handler{
		directory:      dir,
		resolver:       resolver,
		userManagement: userManagement,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	i := r.Group("/interaction", setNoCache)
	i.GET("/:uid", h.getInteraction)
	i.POST("/:uid/login", h.postLogin)

	if h.userManagement {
		r.POST("/user", h.createUser)
		r.PUT("/user/:sub", h.updateUser)
		r.GET("/user/:username", h.getUser)
	}
}

// setNoCache keeps interaction pages out of any intermediary cache.
func setNoCache(c *gin.Context) {
	c.Header("cache-control", "no-store")
	c.Next()
}

func (h *Handler) getInteraction(c *gin.Context) {
	uid := c.Param("uid")

	decision, err := h.resolver.Resolve(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, engine.ErrInteractionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "interaction not found"})
			return
		}
		logger.Error("failed to resolve interaction", map[string]any{
			"uid":   uid,
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "interaction failed"})
		return
	}

	switch decision.Kind {
	case interaction.Finished:
		c.JSON(http.StatusOK, gin.H{"status": "resolved", "uid": uid})
	case interaction.RenderLogin:
		c.HTML(http.StatusOK, "sign-in.html", gin.H{
			"uid":     decision.UID,
			"client":  decision.Client,
			"details": decision.Details,
			"params":  decision.Params,
		})
	default:
		// Not a prompt we handle; the engine's own mount takes over.
		c.JSON(http.StatusNotFound, gin.H{"error": "unsupported prompt"})
	}
}

type loginForm struct {
	Login    string `form:"login" binding:"required"`
	Password string `form:"password" binding:"required"`
}

func (h *Handler) postLogin(c *gin.Context) {
	uid := c.Param("uid")

	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderLoginError(c, http.StatusBadRequest, uid)
		return
	}

	err := h.resolver.SubmitLogin(c.Request.Context(), uid, form.Login, form.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"status": "resolved", "uid": uid})
	case errors.Is(err, engine.ErrInteractionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "interaction not found"})
	case errors.Is(err, interaction.ErrPromptMismatch):
		h.renderLoginError(c, http.StatusBadRequest, uid)
	case errors.Is(err, account.ErrInvalidCredentials):
		h.renderLoginError(c, http.StatusUnauthorized, uid)
	default:
		logger.Error("failed to finish login interaction", map[string]any{
			"uid":   uid,
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "interaction failed"})
	}
}

// renderLoginError shows the retryable sign-in error view; the
// interaction itself stays pending.
func (h *Handler) renderLoginError(c *gin.Context, status int, uid string) {
	c.HTML(status, "signin-error.html", gin.H{"uid": uid})
}

func (h *Handler) createUser(c *gin.Context) {
	var profile account.UserProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request"})
		return
	}
	if err := profile.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request"})
		return
	}

	// Convention: new accounts are stored under their username.
	h.directory.Create(profile.Username, profile)

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) updateUser(c *gin.Context) {
	sub := c.Param("sub")

	var patch account.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request"})
		return
	}

	if _, err := h.directory.UpdatePartial(sub, patch); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) getUser(c *gin.Context) {
	username := c.Param("username")

	acc, err := h.directory.FindByUsername(username)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	// The stored password is never serialized here; only the claims
	// projection leaves the directory.
	c.JSON(http.StatusOK, gin.H{
		"accountId": acc.AccountID(),
		"claims":    acc.Claims(),
	})
}
