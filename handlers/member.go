package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"receiptsplit-backend/database"
	"receiptsplit-backend/models"
	"receiptsplit-backend/services"
	"receiptsplit-backend/utils"
)

// POST /api/members
func CreateMember(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var req models.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	var count int64
	database.DB.Model(&models.Member{}).Where("user_id = ?", userID).Count(&count)

	member := models.Member{
		UserID:     userID,
		Name:       req.Name,
		Email:      req.Email,
		Color:      models.ColorForIndex(int(count)),
		IsFrequent: req.IsFrequent,
	}

	if err := database.DB.Create(&member).Error; err != nil {
		utils.InternalError(c, "Failed to create member")
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Member added", member)
}

// GET /api/members
func GetMembers(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var members []models.Member
	query := database.DB.Where("user_id = ?", userID).Order("created_at ASC")
	if c.Query("frequent") == "true" {
		query = query.Where("is_frequent = ?", true)
	}
	query.Find(&members)

	utils.SuccessResponse(c, http.StatusOK, "", members)
}

// PUT /api/members/:id
func UpdateMember(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid member ID")
		return
	}

	var member models.Member
	if err := database.DB.Where("id = ? AND user_id = ?", memberID, userID).First(&member).Error; err != nil {
		utils.NotFound(c, "Member not found")
		return
	}

	var req models.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.AvatarURL != "" {
		updates["avatar_url"] = req.AvatarURL
	}

	database.DB.Model(&member).Updates(updates)

	utils.SuccessResponse(c, http.StatusOK, "Member updated", member)
}

// PUT /api/members/:id/frequent
func ToggleFrequent(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid member ID")
		return
	}

	var member models.Member
	if err := database.DB.Where("id = ? AND user_id = ?", memberID, userID).First(&member).Error; err != nil {
		utils.NotFound(c, "Member not found")
		return
	}

	database.DB.Model(&member).Update("is_frequent", !member.IsFrequent)
	member.IsFrequent = !member.IsFrequent

	utils.SuccessResponse(c, http.StatusOK, "Member updated", member)
}

// DELETE /api/members/:id
func DeleteMember(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid member ID")
		return
	}

	var member models.Member
	if err := database.DB.Where("id = ? AND user_id = ?", memberID, userID).First(&member).Error; err != nil {
		utils.NotFound(c, "Member not found")
		return
	}

	var memberships []models.SplitMember
	database.DB.Where("member_id = ?", memberID).Find(&memberships)

	// Drop the member's claims so share math never sees a dangling member.
	database.DB.Where("member_id = ?", memberID).Delete(&models.Assignment{})
	database.DB.Where("member_id = ?", memberID).Delete(&models.SplitMember{})
	database.DB.Delete(&member)

	// Cached totals on those splits still count the deleted member's shares.
	for _, splitID := range splitIDsFromMemberships(memberships) {
		services.InvalidateTotals(c.Request.Context(), splitID)
	}

	utils.SuccessResponse(c, http.StatusOK, "Member deleted", nil)
}

func splitIDsFromMemberships(memberships []models.SplitMember) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(memberships))
	ids := make([]uuid.UUID, 0, len(memberships))
	for _, m := range memberships {
		if seen[m.SplitID] {
			continue
		}
		seen[m.SplitID] = true
		ids = append(ids, m.SplitID)
	}
	return ids
}
