package auth

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/logto-io/go/v2/client"
	"github.com/onside-finance/onside/internal/config"
	"github.com/onside-finance/onside/internal/models"
	"github.com/onside-finance/onside/internal/services"
	"go.uber.org/zap"
)

// LogtoHandler drives the optional OIDC browser login. A successful login
// provisions a local account named after the subject claim.
type LogtoHandler struct {
	config *config.LogtoConfig
	users  *services.UserService
}

func NewLogtoHandler(cfg *config.LogtoConfig, users *services.UserService) *LogtoHandler {
	return &LogtoHandler{config: cfg, users: users}
}

func (h *LogtoHandler) client(ctx *gin.Context) *client.LogtoClient {
	logtoConfig := &client.LogtoConfig{
		Endpoint:  h.config.Endpoint,
		AppId:     h.config.AppID,
		AppSecret: h.config.AppSecret,
	}
	return client.NewLogtoClient(logtoConfig, NewSessionStorage(sessions.Default(ctx)))
}

// Login godoc
// @Summary Start OIDC login
// @Tags auth
// @Success 307
// @Router /auth/login [get]
func (h *LogtoHandler) Login(ctx *gin.Context) {
	signInURI, err := h.client(ctx).SignIn(&client.SignInOptions{
		RedirectUri: h.config.RedirectURI,
	})
	if err != nil {
		zap.L().Error("failed to initiate sign-in", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to initiate sign-in."})
		return
	}

	ctx.Redirect(http.StatusTemporaryRedirect, signInURI)
}

// Callback godoc
// @Summary Finish OIDC login
// @Tags auth
// @Success 302
// @Router /auth/callback [get]
func (h *LogtoHandler) Callback(ctx *gin.Context) {
	logtoClient := h.client(ctx)

	if err := logtoClient.HandleSignInCallback(ctx.Request); err != nil {
		zap.L().Warn("sign-in callback failed", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Failed to handle sign-in callback."})
		return
	}

	if _, ok := h.SessionUser(ctx); !ok {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load the signed-in user."})
		return
	}

	ctx.Redirect(http.StatusFound, "/")
}

// Logout godoc
// @Summary End the OIDC session
// @Tags auth
// @Success 307
// @Router /auth/logout [get]
func (h *LogtoHandler) Logout(ctx *gin.Context) {
	signOutURI, err := h.client(ctx).SignOut(h.config.PostLogoutURI)
	if err != nil {
		zap.L().Error("failed to initiate sign-out", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to initiate sign-out."})
		return
	}

	ctx.Redirect(http.StatusTemporaryRedirect, signOutURI)
}

// SessionUser resolves the local user behind an authenticated Logto session.
func (h *LogtoHandler) SessionUser(ctx *gin.Context) (*models.User, bool) {
	logtoClient := h.client(ctx)
	if !logtoClient.IsAuthenticated() {
		return nil, false
	}

	claims, err := logtoClient.GetIdTokenClaims()
	if err != nil {
		zap.L().Warn("failed to read id token claims", zap.Error(err))
		return nil, false
	}

	user, err := h.users.GetOrCreate(claims.Sub, "")
	if err != nil {
		zap.L().Error("failed to provision session user", zap.String("sub", claims.Sub), zap.Error(err))
		return nil, false
	}

	return user, true
}
