package routes

import (
	"campuscare-be/controllers"
	"campuscare-be/middlewares"

	"github.com/gin-gonic/gin"
)

// FileRoutes sets up the image upload/download routes
func FileRoutes(r *gin.Engine) {
	files := r.Group("/api/files")
	{
		files.POST("", middlewares.AuthMiddleware(), middlewares.LoadCurrentUser(), middlewares.RequireVerified(), controllers.UploadImage)
		files.GET("/:id", controllers.DownloadImage)
	}
}
