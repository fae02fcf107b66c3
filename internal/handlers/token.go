package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/onside-finance/onside/internal/services"
)

type TokenHandler struct {
	tokenService *services.TokenService
}

func NewTokenHandler(tokenService *services.TokenService) *TokenHandler {
	return &TokenHandler{tokenService: tokenService}
}

type CreateTokenRequest struct {
	ExpiresIn string `json:"expires_in" example:"24h"`
}

type CreateTokenResponse struct {
	ID        uint   `json:"id"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

type TokenListResponse struct {
	ID         uint    `json:"id"`
	ExpiresAt  string  `json:"expires_at"`
	CreatedAt  string  `json:"created_at"`
	LastUsedAt *string `json:"last_used_at"`
}

// CreateToken godoc
// @Summary Create API token
// @Description Create a new API token. expires_in is a Go duration such as 24h; omitted means the server default.
// @Tags tokens
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTokenRequest false "Token expiration"
// @Success 201 {object} CreateTokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /tokens/ [post]
func (h *TokenHandler) CreateToken(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}

	var req CreateTokenRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	var duration time.Duration
	if req.ExpiresIn != "" {
		d, err := time.ParseDuration(req.ExpiresIn)
		if err != nil || d <= 0 {
			respondValidation(c, map[string]string{"expires_in": "Use a positive duration like 24h or 720h."})
			return
		}
		duration = d
	}

	token, err := h.tokenService.GenerateToken(user, duration)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreateTokenResponse{
		ID:        token.ID,
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// ListTokens godoc
// @Summary List API tokens
// @Description List the caller's API tokens. Token values are never returned again.
// @Tags tokens
// @Produce json
// @Security BearerAuth
// @Success 200 {array} TokenListResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /tokens/ [get]
func (h *TokenHandler) ListTokens(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}

	tokens, err := h.tokenService.ListUserTokens(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]TokenListResponse, len(tokens))
	for i, token := range tokens {
		response[i] = TokenListResponse{
			ID:        token.ID,
			ExpiresAt: token.ExpiresAt.UTC().Format(time.RFC3339),
			CreatedAt: token.CreatedAt.UTC().Format(time.RFC3339),
		}
		if token.LastUsedAt != nil {
			used := token.LastUsedAt.UTC().Format(time.RFC3339)
			response[i].LastUsedAt = &used
		}
	}

	c.JSON(http.StatusOK, response)
}

// DeleteToken godoc
// @Summary Delete API token
// @Description Revoke one of the caller's API tokens
// @Tags tokens
// @Security BearerAuth
// @Param id path int true "Token ID"
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /tokens/{id}/ [delete]
func (h *TokenHandler) DeleteToken(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.tokenService.DeleteToken(id, user.ID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
