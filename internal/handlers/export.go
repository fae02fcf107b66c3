package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/onside-finance/onside/internal/services"
)

type ExportHandler struct {
	exportService *services.ExportService
}

func NewExportHandler(exportService *services.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

type VerifyExportResponse struct {
	Valid bool `json:"valid"`
}

// Export godoc
// @Summary Export the caller's records
// @Description Transactions, subscriptions and goals in one document with an HMAC-SHA256 signature
// @Tags export
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.UserExport
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /export/ [get]
func (h *ExportHandler) Export(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}

	export, err := h.exportService.Export(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="onside-export.json"`)
	c.JSON(http.StatusOK, export)
}

// VerifyExport godoc
// @Summary Verify an export signature
// @Tags export
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body services.UserExport true "Export document with signature"
// @Success 200 {object} VerifyExportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /export/verify/ [post]
func (h *ExportHandler) VerifyExport(c *gin.Context) {
	var export services.UserExport
	if err := c.ShouldBindJSON(&export); err != nil {
		respondError(c, services.ErrInvalidExport)
		return
	}

	valid, err := h.exportService.Verify(&export)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, VerifyExportResponse{Valid: valid})
}
