package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/onside-finance/onside/internal/metrics"
	"github.com/onside-finance/onside/internal/models"
	"github.com/onside-finance/onside/internal/schemas"
	"github.com/onside-finance/onside/internal/services"
)

type GoalHandler struct {
	service *services.RecordService[models.Goal]
	metrics *metrics.Collector
}

func NewGoalHandler(service *services.RecordService[models.Goal], collector *metrics.Collector) *GoalHandler {
	return &GoalHandler{service: service, metrics: collector}
}

// List godoc
// @Summary List goals
// @Description The caller's goals in creation order
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Success 200 {array} schemas.GoalResponse
// @Failure 401 {object} ErrorResponse
// @Router /goals/ [get]
func (h *GoalHandler) List(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}

	items, err := h.service.List(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, schemas.NewGoalResponses(items))
}

// Create godoc
// @Summary Create a goal
// @Description current_amount defaults to 0 and icon to 💰. current_amount may exceed target_amount.
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body schemas.GoalInput true "Goal"
// @Success 201 {object} schemas.GoalResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /goals/ [post]
func (h *GoalHandler) Create(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}

	var req schemas.GoalInput
	if !bindJSON(c, &req) {
		return
	}

	record := req.ToModel(user.ID)
	if err := h.service.Create(record); err != nil {
		respondError(c, err)
		return
	}

	h.metrics.RecordWrite("goal", "create")
	c.JSON(http.StatusCreated, schemas.NewGoalResponse(*record))
}

// Get godoc
// @Summary Get a goal
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param id path int true "Goal ID"
// @Success 200 {object} schemas.GoalResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /goals/{id}/ [get]
func (h *GoalHandler) Get(c *gin.Context) {
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

	c.JSON(http.StatusOK, schemas.NewGoalResponse(*record))
}

// Replace godoc
// @Summary Replace a goal
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Goal ID"
// @Param request body schemas.GoalInput true "Goal"
// @Success 200 {object} schemas.GoalResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /goals/{id}/ [put]
func (h *GoalHandler) Replace(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req schemas.GoalInput
	if !bindJSON(c, &req) {
		return
	}

	record, err := h.service.Update(user.ID, id, req.Apply)
	if err != nil {
		respondError(c, err)
		return
	}

	h.metrics.RecordWrite("goal", "update")
	c.JSON(http.StatusOK, schemas.NewGoalResponse(*record))
}

// Patch godoc
// @Summary Partially update a goal
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Goal ID"
// @Param request body schemas.GoalPatch true "Fields to change"
// @Success 200 {object} schemas.GoalResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /goals/{id}/ [patch]
func (h *GoalHandler) Patch(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req schemas.GoalPatch
	if !bindJSON(c, &req) {
		return
	}

	record, err := h.service.Update(user.ID, id, req.Apply)
	if err != nil {
		respondError(c, err)
		return
	}

	h.metrics.RecordWrite("goal", "update")
	c.JSON(http.StatusOK, schemas.NewGoalResponse(*record))
}

// Delete godoc
// @Summary Delete a goal
// @Tags goals
// @Security BearerAuth
// @Param id path int true "Goal ID"
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /goals/{id}/ [delete]
func (h *GoalHandler) Delete(c *gin.Context) {
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

	h.metrics.RecordWrite("goal", "delete")
	c.Status(http.StatusNoContent)
}
