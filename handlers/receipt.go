package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"receiptsplit-backend/models"
	"receiptsplit-backend/services"
	"receiptsplit-backend/utils"
)

// POST /api/receipts/preview
// Totals raw OCR/manual items before any split exists, with tax estimated at
// the region rate.
func PreviewReceipt(c *gin.Context) {
	var req models.ReceiptPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	taxRate := services.ResolveTaxRate(req.Region)
	summary := services.SummarizeReceiptItems(req.Items, taxRate)

	utils.SuccessResponse(c, http.StatusOK, "", summary)
}

// GET /api/regions
func GetRegions(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "", models.Regions)
}
