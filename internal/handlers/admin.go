package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/onside-finance/onside/internal/models"
	"github.com/onside-finance/onside/internal/schemas"
	"github.com/onside-finance/onside/internal/services"
)

// AdminHandler exposes read-only views across all users.
type AdminHandler struct {
	userService        *services.UserService
	transactionService *services.RecordService[models.Transaction]
}

func NewAdminHandler(userService *services.UserService, transactionService *services.RecordService[models.Transaction]) *AdminHandler {
	return &AdminHandler{
		userService:        userService,
		transactionService: transactionService,
	}
}

// ListUsers godoc
// @Summary List all users (Admin)
// @Description Every user with its profile
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} schemas.UserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.List()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, schemas.NewUserResponses(users))
}

// ListTransactions godoc
// @Summary List all transactions (Admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} schemas.TransactionResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/transactions [get]
func (h *AdminHandler) ListTransactions(c *gin.Context) {
	transactions, err := h.transactionService.ListAll()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, schemas.NewTransactionResponses(transactions))
}
