package routes

import (
	"os"
	"strconv"

	"campuscare-be/controllers"
	"campuscare-be/middlewares"

	"github.com/gin-gonic/gin"
)

// IssueRoutes sets up the issue routes
func IssueRoutes(r *gin.Engine) {
	dailyLimit := 10
	if v, err := strconv.Atoi(os.Getenv("ISSUE_DAILY_LIMIT")); err == nil && v > 0 {
		dailyLimit = v
	}

	issue := r.Group("/api/issue", middlewares.AuthMiddleware(), middlewares.LoadCurrentUser())
	{
		issue.POST("/create", middlewares.RequireVerified(), middlewares.IssueRateLimiter(dailyLimit), controllers.CreateIssue)
		issue.GET("/mine", controllers.GetMyIssues)
		issue.GET("/admin", middlewares.RequireAdmin(), controllers.GetAdminIssues)
		issue.GET("/:id", controllers.GetIssue)
		issue.PATCH("/:id/status", middlewares.RequireAdmin(), controllers.UpdateIssueStatus)
		issue.POST("/:id/comments", middlewares.RequireVerified(), controllers.AddIssueComment)
	}
}
