package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/onside-finance/onside/internal/middleware"
	"github.com/onside-finance/onside/internal/models"
	"github.com/onside-finance/onside/internal/schemas"
	"github.com/onside-finance/onside/internal/services"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

type idURI struct {
	ID uint `uri:"id" binding:"required"`
}

// bindJSON binds and validates the body, writing a 400 on failure.
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		respondValidation(c, schemas.FromBindingError(err))
		return false
	}
	if v, ok := obj.(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			respondValidation(c, schemas.FromBindingError(err))
			return false
		}
	}
	return true
}

// pathID reads the :id segment. Anything that is not a positive integer
// cannot name a record, so it is a 404.
func pathID(c *gin.Context) (uint, bool) {
	var uri idURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found."})
		return 0, false
	}
	return uri.ID, true
}

func caller(c *gin.Context) (*models.User, bool) {
	user := middleware.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication credentials were not provided."})
		return nil, false
	}
	return user, true
}

func respondValidation(c *gin.Context, fields schemas.FieldErrors) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid input.", Fields: fields})
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrRecordNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrTokenNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found."})
	case errors.Is(err, services.ErrUsernameTaken):
		respondValidation(c, schemas.FieldErrors{"username": "A user with that username already exists."})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:  err.Error(),
			Fields: map[string]string{schemas.NonFieldErrors: "Unable to log in with provided credentials."},
		})
	case errors.Is(err, services.ErrInvalidExport):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid export data."})
	default:
		_ = c.Error(err)
		zap.L().Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "A server error occurred."})
	}
}
