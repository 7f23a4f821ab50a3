package routes

import (
	"journal-management-api/controllers"
	"journal-management-api/middleware"
	"journal-management-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", controllers.Login)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Journal Management API is running",
				})
			})

			// Journal directory is public
			public.GET("/journals", controllers.GetJournals)
			public.GET("/journals/:journal_id", controllers.GetJournal)
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/profile", controllers.UpdateProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Submissions
			submissions := protected.Group("/submissions")
			{
				submissions.POST("", controllers.CreateSubmission)
				submissions.GET("", controllers.GetSubmissions)
				submissions.GET("/mine", controllers.GetMySubmissions)
				submissions.GET("/:id", controllers.GetSubmission)
				submissions.GET("/:id/rounds", controllers.GetReviewRounds)
				submissions.GET("/:id/decisions", controllers.GetEditorialHistory)
				submissions.GET("/:id/activity", controllers.GetActivityLog)

				// The workflow engine authorizes decisions itself (journal
				// editor roles or the site-admin override), so no route-level
				// role gate here.
				submissions.POST("/:id/decision", controllers.ApplyDecision)
				submissions.POST("/:id/recommendation", controllers.SendRecommendation)
			}

			// Editor dashboard: journal-scoped editorial roles, with the
			// site-admin override
			protected.GET("/journals/:journal_id/submissions",
				middleware.RequireJournalRoleFromRequest(controllers.Resolver(), "journal_id",
					models.RoleManager, models.RoleEditor, models.RoleSectionEditor, models.RoleGuestEditor),
				controllers.GetJournalSubmissions)

			// Role grant administration (site admin only)
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireSiteRole(controllers.Resolver(), models.RoleAdmin))
			{
				admin.POST("/role-grants", controllers.CreateRoleGrant)
				admin.DELETE("/role-grants/:grant_id", controllers.RevokeRoleGrant)
				admin.GET("/users/:user_id/role-grants", controllers.GetUserRoleGrants)
			}
		}

	}

	// 404 for unknown paths
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": "Endpoint not found"})
	})
}
