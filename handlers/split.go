package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"receiptsplit-backend/database"
	"receiptsplit-backend/engine"
	"receiptsplit-backend/models"
	"receiptsplit-backend/services"
	"receiptsplit-backend/utils"
)

// POST /api/splits
func CreateSplit(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var req models.CreateSplitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if req.Region != "" {
		if _, ok := models.RegionByID(req.Region); !ok {
			utils.BadRequest(c, "Unknown region")
			return
		}
	}

	memberIDs, err := parseMemberIDs(req.Members)
	if err != nil {
		utils.BadRequest(c, "Invalid member ID")
		return
	}

	// Members must belong to this account.
	memberNames := make([]string, 0, len(memberIDs))
	for _, memberID := range memberIDs {
		var member models.Member
		if err := database.DB.Where("id = ? AND user_id = ?", memberID, userID).First(&member).Error; err != nil {
			utils.BadRequest(c, "Member not found: "+memberID.String())
			return
		}
		memberNames = append(memberNames, member.Name)
	}

	taxRate := services.ResolveTaxRate(req.Region)
	items := services.ConvertReceiptItems(req.Items, taxRate)
	summary := services.SummarizeReceiptItems(req.Items, taxRate)

	split := models.Split{
		UserID:    userID,
		Name:      utils.GenerateSplitName(memberNames),
		StoreName: req.StoreName,
		Region:    req.Region,
		Status:    models.SplitStatusDraft,
		ImageURL:  req.ImageURL,
		Subtotal:  summary.Subtotal,
		TotalTax:  summary.TotalTax,
		Total:     summary.GrandTotal,
	}

	if req.PayerID != "" {
		payerID, err := uuid.Parse(req.PayerID)
		if err != nil || !containsMember(memberIDs, payerID) {
			utils.BadRequest(c, "Payer must be one of the split members")
			return
		}
		split.PayerID = &payerID
	}

	if err := database.DB.Create(&split).Error; err != nil {
		utils.InternalError(c, "Failed to create split")
		return
	}

	for i := range items {
		items[i].SplitID = split.ID
		database.DB.Create(&items[i])
	}
	for position, memberID := range memberIDs {
		database.DB.Create(&models.SplitMember{
			SplitID:  split.ID,
			MemberID: memberID,
			Position: position,
		})
	}

	response := buildSplitResponse(split.ID)
	utils.SuccessResponse(c, http.StatusCreated, "Split created", response)
}

// GET /api/splits
func GetSplits(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var pagination utils.PaginationQuery
	c.ShouldBindQuery(&pagination)

	var splits []models.Split
	database.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Preload("Items").
		Preload("Members").
		Find(&splits)

	summaries := make([]models.SplitSummaryResponse, len(splits))
	for i, s := range splits {
		summaries[i] = models.SplitSummaryResponse{
			ID:          s.ID,
			Name:        s.Name,
			StoreName:   s.StoreName,
			Status:      s.Status,
			Total:       s.Total,
			ItemCount:   len(s.Items),
			MemberCount: len(s.Members),
			CreatedAt:   s.CreatedAt,
		}
	}

	utils.SuccessResponse(c, http.StatusOK, "", summaries)
}

// GET /api/splits/stats
func GetSplitStats(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var splits []models.Split
	database.DB.Where("user_id = ? AND created_at >= ?", userID, monthStart).
		Preload("Items").
		Find(&splits)

	stats := models.MonthlyStats{Count: len(splits)}
	for _, s := range splits {
		stats.Total += s.Total
		stats.Items += len(s.Items)
	}

	utils.SuccessResponse(c, http.StatusOK, "", stats)
}

// GET /api/splits/:id
func GetSplit(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	split, ok := loadOwnedSplit(c, userID)
	if !ok {
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", toSplitResponse(split))
}

// PUT /api/splits/:id
func UpdateSplit(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	split, ok := loadOwnedSplit(c, userID)
	if !ok {
		return
	}

	var req models.UpdateSplitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.StoreName != "" {
		updates["store_name"] = req.StoreName
	}
	if req.Region != "" {
		if _, ok := models.RegionByID(req.Region); !ok {
			utils.BadRequest(c, "Unknown region")
			return
		}
		updates["region"] = req.Region
	}
	if req.PayerID != "" {
		payerID, err := uuid.Parse(req.PayerID)
		if err != nil || !containsMember(orderedMemberIDs(split), payerID) {
			utils.BadRequest(c, "Payer must be one of the split members")
			return
		}
		updates["payer_id"] = payerID
	}

	completing := req.Status == models.SplitStatusCompleted && split.Status != models.SplitStatusCompleted
	if req.Status != "" {
		updates["status"] = req.Status
	}

	database.DB.Model(&split).Updates(updates)

	if completing {
		notifySplitCompleted(split.ID, userID)
	}

	response := buildSplitResponse(split.ID)
	utils.SuccessResponse(c, http.StatusOK, "Split updated", response)
}

// DELETE /api/splits/:id
func DeleteSplit(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	split, ok := loadOwnedSplit(c, userID)
	if !ok {
		return
	}

	itemIDs := make([]uuid.UUID, len(split.Items))
	for i, item := range split.Items {
		itemIDs[i] = item.ID
	}
	if len(itemIDs) > 0 {
		database.DB.Where("item_id IN ?", itemIDs).Delete(&models.Assignment{})
	}
	database.DB.Where("split_id = ?", split.ID).Delete(&models.Item{})
	database.DB.Where("split_id = ?", split.ID).Delete(&models.SplitMember{})
	database.DB.Delete(&split)

	services.InvalidateTotals(c.Request.Context(), split.ID)

	utils.SuccessResponse(c, http.StatusOK, "Split deleted", nil)
}

// GET /api/splits/:id/totals
func GetSplitTotals(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	split, ok := loadOwnedSplit(c, userID)
	if !ok {
		return
	}

	if totals, hit := services.GetCachedMemberTotals(c.Request.Context(), split.ID); hit {
		utils.SuccessResponse(c, http.StatusOK, "", totals)
		return
	}

	totals := engine.ComputeMemberTotals(split.Items, orderedMemberIDs(split), paidByMember(split))
	services.CacheMemberTotals(c.Request.Context(), split.ID, totals)

	utils.SuccessResponse(c, http.StatusOK, "", totals)
}

// GET /api/splits/:id/progress
func GetSplitProgress(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	split, ok := loadOwnedSplit(c, userID)
	if !ok {
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", engine.Progress(split.Items))
}

// POST /api/splits/:id/split-evenly
func SplitEvenly(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	split, ok := loadOwnedSplit(c, userID)
	if !ok {
		return
	}

	memberIDs := orderedMemberIDs(split)
	if len(memberIDs) == 0 {
		utils.BadRequest(c, "Split has no members")
		return
	}

	engine.SplitEvenly(split.Items, memberIDs)

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		for i := range split.Items {
			if err := tx.Where("item_id = ?", split.Items[i].ID).Delete(&models.Assignment{}).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Item{}).Where("id = ?", split.Items[i].ID).
				Update("split_mode", models.SplitModeEqual).Error; err != nil {
				return err
			}
			for j := range split.Items[i].Assignments {
				if err := tx.Create(&split.Items[i].Assignments[j]).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		utils.InternalError(c, "Failed to split evenly")
		return
	}

	services.InvalidateTotals(c.Request.Context(), split.ID)

	utils.SuccessResponse(c, http.StatusOK, "Split evenly", buildSplitResponse(split.ID))
}

// PUT /api/splits/:id/members/:memberId/paid
func MarkMemberPaid(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	split, ok := loadOwnedSplit(c, userID)
	if !ok {
		return
	}

	memberID, err := uuid.Parse(c.Param("memberId"))
	if err != nil {
		utils.BadRequest(c, "Invalid member ID")
		return
	}

	var req models.MarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	result := database.DB.Model(&models.SplitMember{}).
		Where("split_id = ? AND member_id = ?", split.ID, memberID).
		Update("is_paid", req.IsPaid)
	if result.Error != nil || result.RowsAffected == 0 {
		utils.NotFound(c, "Member not on this split")
		return
	}

	services.InvalidateTotals(c.Request.Context(), split.ID)

	// Once every member has paid, the split itself is settled.
	var unpaid int64
	database.DB.Model(&models.SplitMember{}).
		Where("split_id = ? AND is_paid = ?", split.ID, false).
		Count(&unpaid)
	if unpaid == 0 {
		database.DB.Model(&split).Update("status", models.SplitStatusPaid)
	}

	if req.IsPaid {
		notifyMemberPaid(split, memberID, userID)
	}

	utils.SuccessResponse(c, http.StatusOK, "Payment status updated", nil)
}

// ---------------------------------------------------------------------------
// helpers

func parseMemberIDs(ids []string) ([]uuid.UUID, error) {
	parsed := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, err
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		parsed = append(parsed, id)
	}
	return parsed, nil
}

func containsMember(memberIDs []uuid.UUID, id uuid.UUID) bool {
	for _, m := range memberIDs {
		if m == id {
			return true
		}
	}
	return false
}

// loadOwnedSplit fetches the split in the :id param with items, assignments
// and members loaded, enforcing ownership. Writes the error response itself.
func loadOwnedSplit(c *gin.Context, userID uuid.UUID) (models.Split, bool) {
	splitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid split ID")
		return models.Split{}, false
	}

	var split models.Split
	err = database.DB.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Items.Assignments").
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Members.Member").
		Where("id = ? AND user_id = ?", splitID, userID).
		First(&split).Error
	if err != nil {
		utils.NotFound(c, "Split not found")
		return models.Split{}, false
	}

	return split, true
}

// orderedMemberIDs preserves the order members were added to the split;
// totals are reported in this order.
func orderedMemberIDs(split models.Split) []uuid.UUID {
	ids := make([]uuid.UUID, len(split.Members))
	for i, m := range split.Members {
		ids[i] = m.MemberID
	}
	return ids
}

func paidByMember(split models.Split) map[uuid.UUID]bool {
	paid := make(map[uuid.UUID]bool, len(split.Members))
	for _, m := range split.Members {
		paid[m.MemberID] = m.IsPaid
	}
	return paid
}

func buildSplitResponse(splitID uuid.UUID) models.SplitResponse {
	var split models.Split
	err := database.DB.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Items.Assignments").
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Members.Member").
		First(&split, splitID).Error
	if err != nil {
		return models.SplitResponse{}
	}
	return toSplitResponse(split)
}

func toSplitResponse(split models.Split) models.SplitResponse {
	return models.SplitResponse{
		ID:        split.ID,
		Name:      split.Name,
		StoreName: split.StoreName,
		Region:    split.Region,
		Status:    split.Status,
		PayerID:   split.PayerID,
		ImageURL:  split.ImageURL,
		Subtotal:  split.Subtotal,
		TotalTax:  split.TotalTax,
		Total:     split.Total,
		Items:     split.Items,
		Members:   split.Members,
		CreatedAt: split.CreatedAt,
		UpdatedAt: split.UpdatedAt,
	}
}

func notifySplitCompleted(splitID, userID uuid.UUID) {
	var split models.Split
	err := database.DB.
		Preload("Items.Assignments").
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Members.Member").
		First(&split, splitID).Error
	if err != nil {
		return
	}

	var owner models.User
	if err := database.DB.First(&owner, userID).Error; err != nil {
		return
	}

	totals := engine.ComputeMemberTotals(split.Items, orderedMemberIDs(split), paidByMember(split))
	membersByID := make(map[string]models.Member, len(split.Members))
	for _, sm := range split.Members {
		membersByID[sm.MemberID.String()] = sm.Member
	}

	go services.GetNotificationService().NotifySplitCompleted(split, totals, membersByID, owner)
}

func notifyMemberPaid(split models.Split, memberID, userID uuid.UUID) {
	var member models.Member
	if err := database.DB.First(&member, memberID).Error; err != nil {
		return
	}
	var owner models.User
	if err := database.DB.First(&owner, userID).Error; err != nil {
		return
	}

	totals := engine.ComputeMemberTotals(split.Items, []uuid.UUID{memberID}, nil)
	var owed float64
	if len(totals) > 0 {
		owed = totals[0].Total
	}

	go services.GetNotificationService().NotifyMemberPaid(split, member, owed, owner)
}
