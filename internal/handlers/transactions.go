package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/onside-finance/onside/internal/metrics"
	"github.com/onside-finance/onside/internal/models"
	"github.com/onside-finance/onside/internal/schemas"
	"github.com/onside-finance/onside/internal/services"
)

type TransactionHandler struct {
	service *services.RecordService[models.Transaction]
	metrics *metrics.Collector
}

func NewTransactionHandler(service *services.RecordService[models.Transaction], collector *metrics.Collector) *TransactionHandler {
	return &TransactionHandler{service: service, metrics: collector}
}

// List godoc
// @Summary List transactions
// @Description The caller's transactions, newest date first
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} schemas.TransactionResponse
// @Failure 401 {object} ErrorResponse
// @Router /transactions/ [get]
func (h *TransactionHandler) List(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}

	items, err := h.service.List(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, schemas.NewTransactionResponses(items))
}

// Create godoc
// @Summary Create a transaction
// @Description Amount is signed with at most two decimal places; type is income or expense. A supplied user field is ignored.
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body schemas.TransactionInput true "Transaction"
// @Success 201 {object} schemas.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /transactions/ [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}

	var req schemas.TransactionInput
	if !bindJSON(c, &req) {
		return
	}

	record := req.ToModel(user.ID)
	if err := h.service.Create(record); err != nil {
		respondError(c, err)
		return
	}

	h.metrics.RecordWrite("transaction", "create")
	c.JSON(http.StatusCreated, schemas.NewTransactionResponse(*record))
}

// Get godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transaction ID"
// @Success 200 {object} schemas.TransactionResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /transactions/{id}/ [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	record, err := h.service.Get(user.ID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, schemas.NewTransactionResponse(*record))
}

// Replace godoc
// @Summary Replace a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transaction ID"
// @Param request body schemas.TransactionInput true "Transaction"
// @Success 200 {object} schemas.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /transactions/{id}/ [put]
func (h *TransactionHandler) Replace(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req schemas.TransactionInput
	if !bindJSON(c, &req) {
		return
	}

	record, err := h.service.Update(user.ID, id, req.Apply)
	if err != nil {
		respondError(c, err)
		return
	}

	h.metrics.RecordWrite("transaction", "update")
	c.JSON(http.StatusOK, schemas.NewTransactionResponse(*record))
}

// Patch godoc
// @Summary Partially update a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transaction ID"
// @Param request body schemas.TransactionPatch true "Fields to change"
// @Success 200 {object} schemas.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /transactions/{id}/ [patch]
func (h *TransactionHandler) Patch(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req schemas.TransactionPatch
	if !bindJSON(c, &req) {
		return
	}

	record, err := h.service.Update(user.ID, id, req.Apply)
	if err != nil {
		respondError(c, err)
		return
	}

	h.metrics.RecordWrite("transaction", "update")
	c.JSON(http.StatusOK, schemas.NewTransactionResponse(*record))
}

// Delete godoc
// @Summary Delete a transaction
// @Tags transactions
// @Security BearerAuth
// @Param id path int true "Transaction ID"
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /transactions/{id}/ [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(user.ID, id); err != nil {
		respondError(c, err)
		return
	}

	h.metrics.RecordWrite("transaction", "delete")
	c.Status(http.StatusNoContent)
}
