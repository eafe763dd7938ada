package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/lumina-app/lumina/internal/app/controllers"
	"github.com/lumina-app/lumina/internal/middleware"
	"github.com/lumina-app/lumina/internal/pkg/websocket"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	galleryController *controllers.GalleryController,
	interactionController *controllers.InteractionController,
	feedController *controllers.FeedController,
	adminController *controllers.AdminController,
	wsHandler *websocket.Handler,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/request-code", authController.RequestCode)
		auth.POST("/verify-code", authController.VerifyCode)
		auth.POST("/refresh", authController.RefreshToken)
		auth.POST("/logout", authController.Logout)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		users := authenticated.Group("/users")
		{
			users.GET("/me", userController.GetMe)
			users.PATCH("/me/username", userController.UpdateUsername)
			users.GET("/:userId", userController.GetProfile)
		}

		images := authenticated.Group("/images")
		{
			images.GET("", galleryController.GetPage)
			images.GET("/:imageId/interactions", interactionController.GetImageInteractions)
		}

		reactions := authenticated.Group("/reactions")
		{
			reactions.POST("/toggle", interactionController.ToggleReaction)
		}

		comments := authenticated.Group("/comments")
		{
			comments.POST("", interactionController.AddComment)
			comments.DELETE("/:commentId", interactionController.DeleteComment)
		}

		feed := authenticated.Group("/feed")
		{
			feed.GET("", feedController.GetFeed)
		}

		// Live subscriptions
		ws := authenticated.Group("/ws")
		{
			ws.GET("/feed", wsHandler.HandleFeed)
			ws.GET("/images/:imageId", wsHandler.HandleImage)
		}

		// Moderation routes, admin flag required
		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.AdminRequired())
		{
			admin.GET("/users", adminController.ListUsers)
			admin.DELETE("/users/:userId", adminController.DeleteUser)
			admin.POST("/users/:userId/ban", adminController.BanUser)
			admin.DELETE("/users/:userId/ban", adminController.UnbanUser)
			admin.DELETE("/reactions/:reactionId", adminController.DeleteReaction)
			admin.DELETE("/comments/:commentId", adminController.DeleteComment)
			admin.DELETE("/activities", adminController.ClearActivities)
			admin.DELETE("/activities/:activityId", adminController.DeleteActivity)
			admin.DELETE("/images/:imageId/reactions", adminController.PurgeImageReactions)
			admin.DELETE("/images/:imageId/comments", adminController.PurgeImageComments)
			admin.DELETE("/images/:imageId/interactions", adminController.PurgeImage)
		}
	}
}
