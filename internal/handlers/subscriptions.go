package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/onside-finance/onside/internal/metrics"
	"github.com/onside-finance/onside/internal/models"
	"github.com/onside-finance/onside/internal/schemas"
	"github.com/onside-finance/onside/internal/services"
)

type SubscriptionHandler struct {
	service *services.RecordService[models.Subscription]
	metrics *metrics.Collector
}

func NewSubscriptionHandler(service *services.RecordService[models.Subscription], collector *metrics.Collector) *SubscriptionHandler {
	return &SubscriptionHandler{service: service, metrics: collector}
}

// List godoc
// @Summary List subscriptions
// @Description The caller's subscriptions, soonest next billing date first
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} schemas.SubscriptionResponse
// @Failure 401 {object} ErrorResponse
// @Router /subscriptions/ [get]
func (h *SubscriptionHandler) List(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}

	items, err := h.service.List(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, schemas.NewSubscriptionResponses(items))
}

// Create godoc
// @Summary Create a subscription
// @Description A supplied user field is ignored.
// @Tags subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body schemas.SubscriptionInput true "Subscription"
// @Success 201 {object} schemas.SubscriptionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /subscriptions/ [post]
func (h *SubscriptionHandler) Create(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}

	var req schemas.SubscriptionInput
	if !bindJSON(c, &req) {
		return
	}

	record := req.ToModel(user.ID)
	if err := h.service.Create(record); err != nil {
		respondError(c, err)
		return
	}

	h.metrics.RecordWrite("subscription", "create")
	c.JSON(http.StatusCreated, schemas.NewSubscriptionResponse(*record))
}

// Get godoc
// @Summary Get a subscription
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subscription ID"
// @Success 200 {object} schemas.SubscriptionResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /subscriptions/{id}/ [get]
func (h *SubscriptionHandler) Get(c *gin.Context) {
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

	c.JSON(http.StatusOK, schemas.NewSubscriptionResponse(*record))
}

// Replace godoc
// @Summary Replace a subscription
// @Tags subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subscription ID"
// @Param request body schemas.SubscriptionInput true "Subscription"
// @Success 200 {object} schemas.SubscriptionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /subscriptions/{id}/ [put]
func (h *SubscriptionHandler) Replace(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req schemas.SubscriptionInput
	if !bindJSON(c, &req) {
		return
	}

	record, err := h.service.Update(user.ID, id, req.Apply)
	if err != nil {
		respondError(c, err)
		return
	}

	h.metrics.RecordWrite("subscription", "update")
	c.JSON(http.StatusOK, schemas.NewSubscriptionResponse(*record))
}

// Patch godoc
// @Summary Partially update a subscription
// @Tags subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subscription ID"
// @Param request body schemas.SubscriptionPatch true "Fields to change"
// @Success 200 {object} schemas.SubscriptionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /subscriptions/{id}/ [patch]
func (h *SubscriptionHandler) Patch(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req schemas.SubscriptionPatch
	if !bindJSON(c, &req) {
		return
	}

	record, err := h.service.Update(user.ID, id, req.Apply)
	if err != nil {
		respondError(c, err)
		return
	}

	h.metrics.RecordWrite("subscription", "update")
	c.JSON(http.StatusOK, schemas.NewSubscriptionResponse(*record))
}

// Delete godoc
// @Summary Delete a subscription
// @Tags subscriptions
// @Security BearerAuth
// @Param id path int true "Subscription ID"
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /subscriptions/{id}/ [delete]
func (h *SubscriptionHandler) Delete(c *gin.Context) {
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

	h.metrics.RecordWrite("subscription", "delete")
	c.Status(http.StatusNoContent)
}
