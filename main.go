package main

import (
	"receiptsplit-backend/config"
	"receiptsplit-backend/database"
	"receiptsplit-backend/handlers"
	"receiptsplit-backend/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Load configuration
	config.Load()

	// Connect to database
	database.Connect()

	// Connect to Redis (optional, won't crash if unavailable)
	database.ConnectRedis()

	// Setup router
	r := gin.Default()
	r.Use(middleware.CORSMiddleware())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": config.AppConfig.AppName,
		})
	})

	// ==========================================
	// AUTH ROUTES (public)
	// ==========================================
	auth := r.Group("/auth")
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", handlers.Login)
	}

	// ==========================================
	// API ROUTES (authenticated)
	// ==========================================
	api := r.Group("/api")
	api.Use(middleware.AuthRequired())
	{
		// User
		api.GET("/users/me", handlers.GetProfile)
		api.PUT("/users/me", handlers.UpdateProfile)
		api.PUT("/users/me/fcm-token", handlers.UpdateFCMToken)

		// Members
		api.POST("/members", handlers.CreateMember)
		api.GET("/members", handlers.GetMembers)
		api.PUT("/members/:id", handlers.UpdateMember)
		api.PUT("/members/:id/frequent", handlers.ToggleFrequent)
		api.DELETE("/members/:id", handlers.DeleteMember)

		// Receipts
		api.POST("/receipts/preview", handlers.PreviewReceipt)
		api.GET("/regions", handlers.GetRegions)

		// Splits (register /splits/stats before /splits/:id)
		api.GET("/splits/stats", handlers.GetSplitStats)
		api.POST("/splits", handlers.CreateSplit)
		api.GET("/splits", handlers.GetSplits)
		api.GET("/splits/:id", handlers.GetSplit)
		api.PUT("/splits/:id", handlers.UpdateSplit)
		api.DELETE("/splits/:id", handlers.DeleteSplit)
		api.GET("/splits/:id/totals", handlers.GetSplitTotals)
		api.GET("/splits/:id/progress", handlers.GetSplitProgress)
		api.POST("/splits/:id/split-evenly", handlers.SplitEvenly)
		api.PUT("/splits/:id/members/:memberId/paid", handlers.MarkMemberPaid)

		// Items
		api.POST("/splits/:id/items", handlers.AddItem)
		api.PUT("/splits/:id/items/:itemId", handlers.UpdateItem)
		api.DELETE("/splits/:id/items/:itemId", handlers.DeleteItem)
		api.PUT("/splits/:id/items/:itemId/mode", handlers.SetItemSplitMode)

		// Assignments
		api.POST("/splits/:id/items/:itemId/assignments", handlers.AssignItem)
		api.DELETE("/splits/:id/items/:itemId/assignments/:memberId", handlers.UnassignItem)
		api.POST("/splits/:id/items/:itemId/assignments/toggle", handlers.ToggleAssignment)
	}

	// Start server
	port := config.AppConfig.Port
	logrus.Infof("🚀 %s server starting on port %s", config.AppConfig.AppName, port)
	logrus.Infof("📡 Health check: http://%s:%s/health", config.AppConfig.AppURL, port)

	addr := "0.0.0.0:" + port
	if err := r.Run(addr); err != nil {
		logrus.Fatal("Failed to start server: ", err)
	}
}
