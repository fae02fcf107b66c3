package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/onside-finance/onside/internal/metrics"
	"github.com/onside-finance/onside/internal/schemas"
	"github.com/onside-finance/onside/internal/services"
)

// UserHandler serves the caller's own account. Other accounts are invisible:
// any id but the caller's is a 404.
type UserHandler struct {
	userService  *services.UserService
	tokenService *services.TokenService
	metrics      *metrics.Collector
}

func NewUserHandler(userService *services.UserService, tokenService *services.TokenService, collector *metrics.Collector) *UserHandler {
	return &UserHandler{
		userService:  userService,
		tokenService: tokenService,
		metrics:      collector,
	}
}

type TokenAuthResponse struct {
	Token string `json:"token"`
}

// Register godoc
// @Summary Register a user
// @Description Create a user together with its profile. Omitted profile fields take their defaults.
// @Tags users
// @Accept json
// @Produce json
// @Param request body schemas.UserCreate true "New user"
// @Success 201 {object} schemas.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/ [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req schemas.UserCreate
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Register(req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.metrics.RecordWrite("user", "create")
	c.JSON(http.StatusCreated, schemas.NewUserResponse(*user))
}

// ObtainToken godoc
// @Summary Obtain an API token
// @Description Exchange a username and password for a token usable as "Authorization: Token <token>"
// @Tags auth
// @Accept json
// @Produce json
// @Param request body schemas.LoginRequest true "Credentials"
// @Success 200 {object} TokenAuthResponse
// @Failure 400 {object} ErrorResponse
// @Router /api-token-auth/ [post]
func (h *UserHandler) ObtainToken(c *gin.Context) {
	var req schemas.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Authenticate(req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.tokenService.GenerateToken(user, 0)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, TokenAuthResponse{Token: token.Token})
}

// List godoc
// @Summary List users
// @Description Returns a one-element list holding the caller
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} schemas.UserResponse
// @Failure 401 {object} ErrorResponse
// @Router /users/ [get]
func (h *UserHandler) List(c *gin.Context) {
	current, ok := caller(c)
	if !ok {
		return
	}

	user, err := h.userService.Get(current.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, []schemas.UserResponse{schemas.NewUserResponse(*user)})
}

// Me godoc
// @Summary Current user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} schemas.UserResponse
// @Failure 401 {object} ErrorResponse
// @Router /users/me/ [get]
func (h *UserHandler) Me(c *gin.Context) {
	current, ok := caller(c)
	if !ok {
		return
	}

	user, err := h.userService.Get(current.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, schemas.NewUserResponse(*user))
}

// Get godoc
// @Summary Get a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} schemas.UserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /users/{id}/ [get]
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := h.ownID(c)
	if !ok {
		return
	}

	user, err := h.userService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, schemas.NewUserResponse(*user))
}

// Replace godoc
// @Summary Replace a user
// @Description Full update of the user fields plus any supplied profile fields, applied atomically
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body schemas.UserReplace true "User"
// @Success 200 {object} schemas.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /users/{id}/ [put]
func (h *UserHandler) Replace(c *gin.Context) {
	id, ok := h.ownID(c)
	if !ok {
		return
	}

	var req schemas.UserReplace
	if !bindJSON(c, &req) {
		return
	}

	h.update(c, id, req.AsPatch())
}

// Patch godoc
// @Summary Partially update a user
// @Description Updates only the supplied user and profile fields, applied atomically
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body schemas.UserPatch true "Fields to change"
// @Success 200 {object} schemas.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /users/{id}/ [patch]
func (h *UserHandler) Patch(c *gin.Context) {
	id, ok := h.ownID(c)
	if !ok {
		return
	}

	var req schemas.UserPatch
	if !bindJSON(c, &req) {
		return
	}

	h.update(c, id, req)
}

// Delete godoc
// @Summary Delete a user
// @Description Deletes the user with its profile, transactions, subscriptions, goals and tokens
// @Tags users
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /users/{id}/ [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := h.ownID(c)
	if !ok {
		return
	}

	if err := h.userService.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	h.metrics.RecordWrite("user", "delete")
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) update(c *gin.Context, id uint, patch schemas.UserPatch) {
	user, err := h.userService.Update(id, patch)
	if err != nil {
		respondError(c, err)
		return
	}

	h.metrics.RecordWrite("user", "update")
	c.JSON(http.StatusOK, schemas.NewUserResponse(*user))
}

func (h *UserHandler) ownID(c *gin.Context) (uint, bool) {
	current, ok := caller(c)
	if !ok {
		return 0, false
	}
	id, ok := pathID(c)
	if !ok {
		return 0, false
	}
	if id != current.ID {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found."})
		return 0, false
	}
	return id, true
}
