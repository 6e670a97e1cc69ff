package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"receiptsplit-backend/database"
	"receiptsplit-backend/engine"
	"receiptsplit-backend/models"
	"receiptsplit-backend/services"
	"receiptsplit-backend/utils"
)

// POST /api/splits/:id/items
func AddItem(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	split, ok := loadOwnedSplit(c, userID)
	if !ok {
		return
	}

	var req models.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	item := models.Item{
		SplitID:     split.ID,
		Name:        req.Name,
		Price:       req.Price,
		Quantity:    quantity,
		HasTax:      req.HasTax,
		TaxAmount:   req.TaxAmount,
		Discount:    req.Discount,
		Deposit:     req.Deposit,
		SplitMode:   models.SplitModeEqual,
		Assignments: []models.Assignment{},
	}

	if item.HasTax && item.TaxAmount == nil {
		item.TaxAmount = estimateItemTax(req, split.Region)
	}

	if err := database.DB.Create(&item).Error; err != nil {
		utils.InternalError(c, "Failed to add item")
		return
	}

	refreshSplitTotals(split.ID)
	services.InvalidateTotals(c.Request.Context(), split.ID)

	utils.SuccessResponse(c, http.StatusCreated, "Item added", item)
}

// PUT /api/splits/:id/items/:itemId
func UpdateItem(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	split, ok := loadOwnedSplit(c, userID)
	if !ok {
		return
	}

	item, ok := findSplitItem(c, split)
	if !ok {
		return
	}

	var req models.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	updates := map[string]interface{}{
		"name":       req.Name,
		"price":      req.Price,
		"has_tax":    req.HasTax,
		"tax_amount": req.TaxAmount,
		"discount":   req.Discount,
		"deposit":    req.Deposit,
	}
	if req.Quantity > 0 {
		updates["quantity"] = req.Quantity
	}
	if !req.HasTax {
		updates["tax_amount"] = nil
	} else if req.TaxAmount == nil {
		updates["tax_amount"] = estimateItemTax(req, split.Region)
	}

	if err := database.DB.Model(&item).Updates(updates).Error; err != nil {
		utils.InternalError(c, "Failed to update item")
		return
	}

	refreshSplitTotals(split.ID)
	services.InvalidateTotals(c.Request.Context(), split.ID)

	utils.SuccessResponse(c, http.StatusOK, "Item updated", buildItemResponse(item.ID))
}

// DELETE /api/splits/:id/items/:itemId
func DeleteItem(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	split, ok := loadOwnedSplit(c, userID)
	if !ok {
		return
	}

	item, ok := findSplitItem(c, split)
	if !ok {
		return
	}

	database.DB.Where("item_id = ?", item.ID).Delete(&models.Assignment{})
	database.DB.Delete(&item)

	refreshSplitTotals(split.ID)
	services.InvalidateTotals(c.Request.Context(), split.ID)

	utils.SuccessResponse(c, http.StatusOK, "Item deleted", nil)
}

// PUT /api/splits/:id/items/:itemId/mode
func SetItemSplitMode(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	split, ok := loadOwnedSplit(c, userID)
	if !ok {
		return
	}

	item, ok := findSplitItem(c, split)
	if !ok {
		return
	}

	var req models.SetSplitModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if item.SplitMode != req.SplitMode {
		engine.SetSplitMode(&item, req.SplitMode)
		database.DB.Model(&models.Item{}).Where("id = ?", item.ID).Update("split_mode", req.SplitMode)
		// Weights from the previous mode are cleared, members stay assigned.
		database.DB.Model(&models.Assignment{}).Where("item_id = ?", item.ID).
			Updates(map[string]interface{}{"ratio": nil, "quantity": nil})
	}

	services.InvalidateTotals(c.Request.Context(), split.ID)

	utils.SuccessResponse(c, http.StatusOK, "Split mode updated", buildItemResponse(item.ID))
}

// POST /api/splits/:id/items/:itemId/assignments
func AssignItem(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	split, ok := loadOwnedSplit(c, userID)
	if !ok {
		return
	}

	item, ok := findSplitItem(c, split)
	if !ok {
		return
	}

	memberID, req, ok := bindAssignRequest(c, split)
	if !ok {
		return
	}

	assignment := models.Assignment{
		ItemID:   item.ID,
		MemberID: memberID,
		Ratio:    req.Ratio,
		Quantity: req.Quantity,
	}

	// Duplicate assignment is idempotent, not an error.
	if engine.Assign(&item, assignment) {
		if err := database.DB.Create(&assignment).Error; err != nil {
			utils.InternalError(c, "Failed to assign member")
			return
		}
	}

	services.InvalidateTotals(c.Request.Context(), split.ID)

	utils.SuccessResponse(c, http.StatusOK, "Member assigned", buildItemResponse(item.ID))
}

// DELETE /api/splits/:id/items/:itemId/assignments/:memberId
func UnassignItem(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	split, ok := loadOwnedSplit(c, userID)
	if !ok {
		return
	}

	item, ok := findSplitItem(c, split)
	if !ok {
		return
	}

	memberID, err := uuid.Parse(c.Param("memberId"))
	if err != nil {
		utils.BadRequest(c, "Invalid member ID")
		return
	}

	if engine.Unassign(&item, memberID) {
		database.DB.Where("item_id = ? AND member_id = ?", item.ID, memberID).Delete(&models.Assignment{})
	}

	services.InvalidateTotals(c.Request.Context(), split.ID)

	utils.SuccessResponse(c, http.StatusOK, "Member unassigned", buildItemResponse(item.ID))
}

// POST /api/splits/:id/items/:itemId/assignments/toggle
func ToggleAssignment(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	split, ok := loadOwnedSplit(c, userID)
	if !ok {
		return
	}

	item, ok := findSplitItem(c, split)
	if !ok {
		return
	}

	memberID, req, ok := bindAssignRequest(c, split)
	if !ok {
		return
	}

	if engine.Toggle(&item, memberID) {
		assignment := models.Assignment{
			ItemID:   item.ID,
			MemberID: memberID,
			Ratio:    req.Ratio,
			Quantity: req.Quantity,
		}
		if err := database.DB.Create(&assignment).Error; err != nil {
			utils.InternalError(c, "Failed to assign member")
			return
		}
	} else {
		database.DB.Where("item_id = ? AND member_id = ?", item.ID, memberID).Delete(&models.Assignment{})
	}

	services.InvalidateTotals(c.Request.Context(), split.ID)

	utils.SuccessResponse(c, http.StatusOK, "Assignment toggled", buildItemResponse(item.ID))
}

// ---------------------------------------------------------------------------
// helpers

func findSplitItem(c *gin.Context, split models.Split) (models.Item, bool) {
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		utils.BadRequest(c, "Invalid item ID")
		return models.Item{}, false
	}

	for _, item := range split.Items {
		if item.ID == itemID {
			return item, true
		}
	}

	utils.NotFound(c, "Item not found")
	return models.Item{}, false
}

func bindAssignRequest(c *gin.Context, split models.Split) (uuid.UUID, models.AssignRequest, bool) {
	var req models.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return uuid.Nil, req, false
	}

	memberID, err := uuid.Parse(req.MemberID)
	if err != nil {
		utils.BadRequest(c, "Invalid member ID")
		return uuid.Nil, req, false
	}

	if !containsMember(orderedMemberIDs(split), memberID) {
		utils.BadRequest(c, "Member is not on this split")
		return uuid.Nil, req, false
	}

	return memberID, req, true
}

// estimateItemTax is the regional estimate applied whenever a taxable item
// arrives without an explicit tax amount, same as ingestion does for OCR
// lines.
func estimateItemTax(req models.ItemRequest, region string) *float64 {
	item := models.Item{Price: req.Price, Discount: req.Discount, Deposit: req.Deposit}
	taxAmount := utils.Percentage(engine.EffectivePrice(item), services.ResolveTaxRate(region))
	return &taxAmount
}

func buildItemResponse(itemID uuid.UUID) models.Item {
	var item models.Item
	database.DB.Preload("Assignments").First(&item, itemID)
	return item
}

// refreshSplitTotals recomputes the split's stored receipt-level totals after
// an item mutation. Tax on items carrying an amount is summed as-is.
func refreshSplitTotals(splitID uuid.UUID) {
	var items []models.Item
	database.DB.Where("split_id = ?", splitID).Find(&items)

	var subtotal, totalTax float64
	for _, item := range items {
		subtotal += item.Price * float64(item.Quantity)
		if item.HasTax && item.TaxAmount != nil {
			totalTax += *item.TaxAmount
		}
	}

	var totalDiscount, totalDeposit float64
	for _, item := range items {
		if item.Discount != nil {
			totalDiscount += *item.Discount
		}
		if item.Deposit != nil {
			totalDeposit += *item.Deposit
		}
	}

	database.DB.Model(&models.Split{}).Where("id = ?", splitID).Updates(map[string]interface{}{
		"subtotal":  subtotal,
		"total_tax": totalTax,
		"total":     subtotal + totalTax + totalDeposit - totalDiscount,
	})
}
