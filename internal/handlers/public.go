package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/onside-finance/onside/internal/schemas"
	"github.com/onside-finance/onside/internal/services"
	"gorm.io/gorm"
)

type PublicHandler struct {
	db             *gorm.DB
	summaryService *services.SummaryService
}

func NewPublicHandler(db *gorm.DB, summaryService *services.SummaryService) *PublicHandler {
	return &PublicHandler{
		db:             db,
		summaryService: summaryService,
	}
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

type SummaryResponse struct {
	Currency          string `json:"currency"`
	Income            string `json:"income" example:"1000.00"`
	Expense           string `json:"expense" example:"16.75"`
	Balance           string `json:"balance" example:"983.25"`
	BudgetLimit       string `json:"budget_limit" example:"500.00"`
	BudgetRemaining   string `json:"budget_remaining" example:"483.25"`
	TransactionCount  int64  `json:"transaction_count"`
	SubscriptionCount int64  `json:"subscription_count"`
	GoalCount         int64  `json:"goal_count"`
}

// Health godoc
// @Summary Health check
// @Description Liveness plus a database ping
// @Tags public
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *PublicHandler) Health(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Database: "unreachable"})
		return
	}

	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Database: "ok"})
}

// Summary godoc
// @Summary Dashboard totals
// @Description Income and expense totals, balance and remaining budget for the caller
// @Tags summary
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SummaryResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /summary/ [get]
func (h *PublicHandler) Summary(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}

	summary, err := h.summaryService.ForUser(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SummaryResponse{
		Currency:          summary.Currency,
		Income:            schemas.FormatMoney(summary.Income),
		Expense:           schemas.FormatMoney(summary.Expense),
		Balance:           schemas.FormatMoney(summary.Balance),
		BudgetLimit:       schemas.FormatMoney(summary.BudgetLimit),
		BudgetRemaining:   schemas.FormatMoney(summary.BudgetRemaining),
		TransactionCount:  summary.TransactionCount,
		SubscriptionCount: summary.SubscriptionCount,
		GoalCount:         summary.GoalCount,
	})
}
