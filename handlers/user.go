package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"receiptsplit-backend/database"
	"receiptsplit-backend/models"
	"receiptsplit-backend/utils"
)

type UpdateProfileRequest struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	Currency  string `json:"currency"`
	Region    string `json:"region"`
}

type UpdateFCMTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// GET /api/users/me
func GetProfile(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", user.ToResponse())
}

// PUT /api/users/me
func UpdateProfile(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.AvatarURL != "" {
		updates["avatar_url"] = req.AvatarURL
	}
	if req.Currency != "" {
		updates["currency"] = req.Currency
	}
	if req.Region != "" {
		if _, ok := models.RegionByID(req.Region); !ok {
			utils.BadRequest(c, "Unknown region")
			return
		}
		updates["region"] = req.Region
	}

	database.DB.Model(&user).Updates(updates)

	utils.SuccessResponse(c, http.StatusOK, "Profile updated", user.ToResponse())
}

// PUT /api/users/me/fcm-token
func UpdateFCMToken(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var req UpdateFCMTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	database.DB.Model(&models.User{}).Where("id = ?", userID).Update("fcm_token", req.Token)

	utils.SuccessResponse(c, http.StatusOK, "FCM token updated", nil)
}
